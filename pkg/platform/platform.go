package platform

import (
	"runtime"
	"strings"
)

// Current returns the operating system the launcher runs on.
func Current() string {
	return runtime.GOOS
}

// CaseInsensitiveDevicePaths reports whether serial device names on goos are matched
// without regard to case (COM3 and com3 name the same port on Windows).
func CaseInsensitiveDevicePaths(goos string) bool {
	return goos == OSWindows
}

// NormalizeDevicePath maps a device path to the key used to track it on goos.
func NormalizeDevicePath(goos, path string) string {
	if CaseInsensitiveDevicePaths(goos) {
		return strings.ToLower(path)
	}
	return path
}

// DefaultIconName returns the file name of the launcher's own icon on goos.
func DefaultIconName(goos string) string {
	if goos == OSWindows {
		return IconICO
	}
	return IconPNG
}
