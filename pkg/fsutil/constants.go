package fsutil

// Permission bits used for everything the launcher writes below its data directories.
const (
	FileModeDefault = 0o644 // -rw-r--r--: app files and cached assets
	FileModeSecure  = 0o640 // -rw-r-----: settings and config
	FileModeExec    = 0o755 // -rwxr-xr-x: executables shipped inside apps

	DirModeDefault = 0o755 // drwxr-xr-x: app directories
	DirModeSecure  = 0o750 // drwxr-x---: state directory
	DirModePrivate = 0o700 // drwx------: temporary extraction directories
)
