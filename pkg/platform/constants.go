// Package platform provides constants and helpers for the operating-system specific
// behaviour of the launcher, such as device path matching and icon formats.
package platform

const (
	// OSWindows represents the Windows operating system.
	OSWindows = "windows"
	// OSLinux represents the Linux operating system.
	OSLinux = "linux"
	// OSDarwin represents the macOS operating system.
	OSDarwin = "darwin"
)

const (
	// IconICO is the default icon file name on Windows.
	IconICO = "icon.ico"
	// IconPNG is the default icon file name everywhere else.
	IconPNG = "icon.png"
)
