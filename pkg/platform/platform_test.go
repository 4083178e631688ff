package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDevicePath(t *testing.T) {
	tests := []struct {
		name     string
		goos     string
		path     string
		expected string
	}{
		{
			name:     "windows lowercases",
			goos:     OSWindows,
			path:     "COM3",
			expected: "com3",
		},
		{
			name:     "linux keeps case",
			goos:     OSLinux,
			path:     "/dev/ttyACM0",
			expected: "/dev/ttyACM0",
		},
		{
			name:     "darwin keeps case",
			goos:     OSDarwin,
			path:     "/dev/tty.usbmodemF1",
			expected: "/dev/tty.usbmodemF1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeDevicePath(tt.goos, tt.path))
		})
	}
}

func TestDefaultIconName(t *testing.T) {
	assert.Equal(t, IconICO, DefaultIconName(OSWindows))
	assert.Equal(t, IconPNG, DefaultIconName(OSLinux))
	assert.Equal(t, IconPNG, DefaultIconName(OSDarwin))
}
