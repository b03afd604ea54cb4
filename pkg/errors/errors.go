// Package errors defines the error kinds shared across obstack packages.
package errors

import "fmt"

// Common error types.
var (
	// Config errors.
	ErrEmptyConfigPath   = fmt.Errorf("config file path cannot be empty")
	ErrInvalidConfigPath = fmt.Errorf("invalid config file path")
	ErrConfigParse       = fmt.Errorf("failed to parse config")
	ErrConfigValidation  = fmt.Errorf("invalid configuration")

	// Catalog errors.
	ErrUnknownPackage = fmt.Errorf("unknown package")
	ErrInvalidVersion = fmt.Errorf("invalid version")

	// Install errors.
	ErrMissingDependency       = fmt.Errorf("required dependency missing")
	ErrNetworkFailure          = fmt.Errorf("download failed")
	ErrChecksumMismatch        = fmt.Errorf("checksum mismatch")
	ErrVerificationUnavailable = fmt.Errorf("no checksum source available")
	ErrArchiveLayoutMismatch   = fmt.Errorf("unexpected archive layout")
	ErrPermissionDenied        = fmt.Errorf("permission denied")
	ErrSupervisorReload        = fmt.Errorf("supervisor reload failed")
	ErrServiceStart            = fmt.Errorf("service failed to start")
	ErrLayoutNotReady          = fmt.Errorf("directory layout not ready")
	ErrInvalidPath             = fmt.Errorf("invalid path")

	// Hook errors.
	ErrHookExecution = fmt.Errorf("error executing hook")
	ErrHookScript    = fmt.Errorf("hook script error")
	ErrHookLoad      = fmt.Errorf("failed to load hook")
)

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
