// Package errors provides error handling for tokenfield.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints and details
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "check the fields catalog for a matching key")
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
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll

	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
	FlattenHints  = crdb.FlattenHints
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Common sentinel errors for use across tokenfield.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrUnknownField indicates a query or rule referenced a field key that
	// is not present in the catalog
	ErrUnknownField = New("unknown field")

	// ErrInvalidCatalog indicates a fields catalog failed structural checks
	// (duplicate keys, missing operators, unreadable file)
	ErrInvalidCatalog = New("invalid fields catalog")

	// ErrInvalidPattern indicates a pattern rule was constructed with a
	// regular expression that does not compile
	ErrInvalidPattern = New("invalid pattern")
)

// IsUnknownFieldError checks if an error is or wraps ErrUnknownField
func IsUnknownFieldError(err error) bool {
	return err != nil && Is(err, ErrUnknownField)
}

// IsInvalidCatalogError checks if an error is or wraps ErrInvalidCatalog
func IsInvalidCatalogError(err error) bool {
	return err != nil && Is(err, ErrInvalidCatalog)
}

// NewUnknownFieldError creates an unknown-field error naming the key
func NewUnknownFieldError(key string) error {
	return Wrap(ErrUnknownField, key)
}
