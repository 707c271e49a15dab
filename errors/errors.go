// Package errors provides error handling for arcana.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := resolve(doc); err != nil {
//	    return errors.Wrap(err, "failed to resolve template")
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "check the $ref path in the template")
//
//	// Check errors
//	if errors.Is(err, errors.ErrNotFound) {
//	    // handle missing template key
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is            = crdb.Is
	IsAny         = crdb.IsAny
	As            = crdb.As
	Unwrap        = crdb.Unwrap
	UnwrapAll     = crdb.UnwrapAll
	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
	FlattenHints  = crdb.FlattenHints
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Common sentinel errors for use across arcana.
// Use these with errors.Is() for type-safe error checking.
// Wrap or Mark them to add context while preserving the type.
var (
	// ErrNotFound indicates a referenced template key or path does not exist
	ErrNotFound = New("not found")

	// ErrInvalidArgument indicates a caller passed a value outside the known domain
	// (for example a triangle pointer that is not one of the five life domains)
	ErrInvalidArgument = New("invalid argument")

	// ErrCyclicReference indicates a $ref chain that points back at itself
	ErrCyclicReference = New("cyclic reference")

	// ErrUnsupported indicates a file format or schema version arcana cannot read
	ErrUnsupported = New("unsupported")
)

// IsNotFoundError checks if an error is or wraps ErrNotFound
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsInvalidArgumentError checks if an error is or wraps ErrInvalidArgument
func IsInvalidArgumentError(err error) bool {
	return err != nil && Is(err, ErrInvalidArgument)
}

// NewNotFoundError creates a not-found error with a formatted message
func NewNotFoundError(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrNotFound)
}

// NewInvalidArgumentError creates an invalid-argument error with a formatted message
func NewInvalidArgumentError(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrInvalidArgument)
}
