// Package errors provides sentinel errors for the snapbooth system.
// Handlers and services compare against these with errors.Is to pick
// status codes and logging levels.
package errors

import "errors"

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors.
var (
	// ErrNotFound indicates that a requested photo or code was not found.
	ErrNotFound = errors.New("not found")

	// ErrBusy indicates that a capture is already in progress.
	ErrBusy = errors.New("capture already in progress")

	// ErrClosed indicates an operation against a shut-down component.
	ErrClosed = errors.New("closed")

	// ErrInvalidInput indicates that provided input was invalid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCameraUnavailable indicates the capture hardware could not be used.
	ErrCameraUnavailable = errors.New("camera unavailable")
)
