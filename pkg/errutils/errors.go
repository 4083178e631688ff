// Package errutils provides the error vocabulary shared by the launchpad packages.
// It defines sentinel errors for the expected failure cases (misuse of current state,
// missing resources, invalid configuration) and helpers for adding context while keeping
// errors.Is matching intact across the process boundary.
package errutils

import (
	"fmt"
)

// Common error types used throughout the application.
// Errors are grouped by their domain or functionality.
var (
	ErrAlreadyExists = fmt.Errorf("resource already exists")
	ErrValidation    = fmt.Errorf("validation failed")

	// Config errors are related to configuration file operations and validation.
	ErrEmptyConfigPath   = fmt.Errorf("config file path cannot be empty")
	ErrInvalidConfigPath = fmt.Errorf("invalid config file path")
	ErrConfigParse       = fmt.Errorf("failed to parse config")
	ErrConfigValidation  = fmt.Errorf("invalid configuration")
	ErrConfigEncode      = fmt.Errorf("failed to encode config")
	ErrConfigDirectory   = fmt.Errorf("failed to create config directory")
	ErrConfigFileCreate  = fmt.Errorf("failed to create config file")

	// ErrConfigFileExists is returned when attempting to create a configuration file that already exists.
	ErrConfigFileExists = fmt.Errorf("configuration file already exists (use --force to overwrite)")

	// ErrConfigFileRename is returned when renaming the temporary config file fails.
	ErrConfigFileRename = fmt.Errorf("failed to rename temporary config file")

	// ErrConfigMarshal is returned when marshaling the config to YAML fails.
	ErrConfigMarshal = fmt.Errorf("failed to marshal config to YAML")

	// ErrHTTPTimeoutNegative is returned when HTTP timeout is set to a negative value.
	ErrHTTPTimeoutNegative = fmt.Errorf("http_timeout cannot be negative")

	// ErrInvalidLogLevel is returned when an invalid log level is specified.
	ErrInvalidLogLevel = fmt.Errorf("invalid log level")

	// ErrInvalidLogFormat is returned when an invalid log format is specified.
	ErrInvalidLogFormat = fmt.Errorf("invalid log format")

	// ErrUnknownConfigKey is returned when an unknown configuration key is encountered.
	ErrUnknownConfigKey = fmt.Errorf("unknown configuration key")

	// ErrInvalidBoolValue is returned when an invalid boolean value is provided in the configuration.
	ErrInvalidBoolValue = fmt.Errorf("invalid boolean value")

	// Source errors.

	// ErrReservedSource is returned when trying to add or remove one of the built-in sources.
	ErrReservedSource = fmt.Errorf("source name is reserved")

	// ErrSourceExists is returned when a source URL or name is already registered.
	ErrSourceExists = fmt.Errorf("source already exists")

	// ErrSourceNotFound is returned when a source with the given name is not registered.
	ErrSourceNotFound = fmt.Errorf("source not found")

	// ErrSourceURLEmpty is returned when adding a source without an URL.
	ErrSourceURLEmpty = fmt.Errorf("source URL cannot be empty")

	// ErrInvalidResponse is returned when a response body cannot be decoded.
	ErrInvalidResponse = fmt.Errorf("invalid response body")

	// ErrSourceManifestInvalid is returned when a source.json cannot be used.
	ErrSourceManifestInvalid = fmt.Errorf("invalid source manifest")

	// App errors.

	// ErrAppNotInstalled is returned when an operation needs an installed app that is not there.
	ErrAppNotInstalled = fmt.Errorf("app is not installed")

	// ErrAppNotFound is returned when an app is unknown to its source.
	ErrAppNotFound = fmt.Errorf("app not found")

	// ErrAppExists is returned when installing would overwrite an existing local app.
	ErrAppExists = fmt.Errorf("app already exists")

	// ErrAppManifestInvalid is returned when an app folder or archive has no usable package.json.
	ErrAppManifestInvalid = fmt.Errorf("invalid app manifest")

	// ErrVersionNotFound is returned when a requested app version is not offered by the source.
	ErrVersionNotFound = fmt.Errorf("app version not found")

	// Window errors.

	// ErrNoAppWindow is returned when a display surface is not a tracked app window.
	ErrNoAppWindow = fmt.Errorf("no app window found")

	// ErrWindowFactory is returned when no window factory is configured.
	ErrWindowFactory = fmt.Errorf("window factory is not configured")

	// Serial port errors.

	// ErrPortBusy is returned when a port is in the middle of being opened.
	ErrPortBusy = fmt.Errorf("serial port is being opened")

	// ErrPortNotOpen is returned when an operation targets a port that is not open.
	ErrPortNotOpen = fmt.Errorf("serial port is not open")

	// ErrPortSettingsLocked is returned when changing options of a shared, locked port.
	ErrPortSettingsLocked = fmt.Errorf("serial port settings are locked")

	// ErrPortOptionsMismatch is returned when a port is already open with different options.
	ErrPortOptionsMismatch = fmt.Errorf("serial port is open with different options")

	// File and transfer errors.

	// ErrFileNotFound is returned when a required file cannot be found.
	ErrFileNotFound = fmt.Errorf("file not found")

	// ErrInvalidPath is returned when a file or directory path is invalid.
	ErrInvalidPath = fmt.Errorf("invalid path")

	// ErrEmptyPaths is returned when source or destination paths are empty in file operations.
	ErrEmptyPaths = fmt.Errorf("source and destination paths cannot be empty")

	// ErrFileHashMismatch is returned when a file's hash doesn't match the expected value.
	ErrFileHashMismatch = fmt.Errorf("file hash mismatch")

	// ErrDownloadFailed is returned when a download operation fails.
	ErrDownloadFailed = fmt.Errorf("download failed")

	// ErrProxyAuthRequired is returned when a proxy rejects the request for missing credentials.
	ErrProxyAuthRequired = fmt.Errorf("proxy authentication required")

	// Channel errors.

	// ErrUnknownChannel is returned when a request names a channel nobody handles.
	ErrUnknownChannel = fmt.Errorf("unknown channel")

	// ErrChannelClosed is returned when a request is made on a closed connection.
	ErrChannelClosed = fmt.Errorf("channel closed")
)

// Wrap wraps an error with additional context.
// This is useful for adding context to errors as they propagate up the call stack.
// If the error is nil, Wrap returns nil.
//
// Example:
//
//	if err := someOperation(); err != nil {
//	    return errutils.Wrap(err, "failed to perform operation")
//	}
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
// If the error is nil, Wrapf returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// ErrSourceNotFoundWithName creates an error for when a source with the given name is not registered.
func ErrSourceNotFoundWithName(name string) error {
	return fmt.Errorf("%w: %s", ErrSourceNotFound, name)
}

// ErrAppNotInstalledWithSpec creates an error naming the app and source that were expected on disk.
func ErrAppNotInstalledWithSpec(name, source string) error {
	return fmt.Errorf("tried to use app %s from source %s: %w", name, source, ErrAppNotInstalled)
}

// ErrInvalidLogLevelWithDetails is a helper to create a wrapped error with the invalid level and valid options.
func ErrInvalidLogLevelWithDetails(level string) error {
	return fmt.Errorf("%w: '%s', must be one of: error, warn, info, debug", ErrInvalidLogLevel, level)
}

// ErrInvalidLogFormatWithDetails is a helper to create a wrapped error with the invalid format and valid options.
func ErrInvalidLogFormatWithDetails(format string) error {
	return fmt.Errorf("%w: '%s', must be one of: text, json", ErrInvalidLogFormat, format)
}
