// Package errors provides error handling for sketchflow.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints and details
//
// It also defines the sentinel error kinds every generation failure is
// classified under. A failure at any stage aborts the request and is
// surfaced to the caller as-is, so callers branch on these with Is:
//
//	artifacts, err := gen.Generate(ctx, req)
//	if errors.IsUnknownAdapterError(err) {
//	    // list adapters, suggest a different --framework
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
	WithHint      = crdb.WithHint
	WithHintf     = crdb.WithHintf
	WithDetail    = crdb.WithDetail
	WithDetailf   = crdb.WithDetailf
	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
	FlattenHints  = crdb.FlattenHints
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Generation error kinds.
// Wrap these with errors.Wrap() or errors.Mark() to add context while preserving the kind.
var (
	// ErrValidation indicates the input does not match the sketch document schema
	ErrValidation = New("validation failed")

	// ErrUnsupportedSource indicates no parser matches and no fallback applies
	ErrUnsupportedSource = New("unsupported sketch source")

	// ErrUnknownLayoutEngine indicates the named layout engine is not registered
	ErrUnknownLayoutEngine = New("unknown layout engine")

	// ErrUnknownAdapter indicates no adapter is registered for the framework
	ErrUnknownAdapter = New("unknown framework adapter")

	// ErrAdapterGeneration indicates an adapter failed internally
	ErrAdapterGeneration = New("adapter generation failed")
)

// Common sentinel errors shared by the registries, the CLI and the server.
var (
	// ErrNotFound indicates the requested resource does not exist
	ErrNotFound = New("not found")

	// ErrInvalidRequest indicates the request was malformed or invalid
	ErrInvalidRequest = New("invalid request")

	// ErrConflict indicates a registration conflict (e.g., duplicate name)
	ErrConflict = New("conflict")
)

// IsValidationError checks if an error is or wraps ErrValidation
func IsValidationError(err error) bool {
	return err != nil && Is(err, ErrValidation)
}

// IsUnsupportedSourceError checks if an error is or wraps ErrUnsupportedSource
func IsUnsupportedSourceError(err error) bool {
	return err != nil && Is(err, ErrUnsupportedSource)
}

// IsUnknownLayoutEngineError checks if an error is or wraps ErrUnknownLayoutEngine
func IsUnknownLayoutEngineError(err error) bool {
	return err != nil && Is(err, ErrUnknownLayoutEngine)
}

// IsUnknownAdapterError checks if an error is or wraps ErrUnknownAdapter
func IsUnknownAdapterError(err error) bool {
	return err != nil && Is(err, ErrUnknownAdapter)
}

// IsAdapterGenerationError checks if an error is or wraps ErrAdapterGeneration
func IsAdapterGenerationError(err error) bool {
	return err != nil && Is(err, ErrAdapterGeneration)
}

// IsConflictError checks if an error is or wraps ErrConflict
func IsConflictError(err error) bool {
	return err != nil && Is(err, ErrConflict)
}

// IsInvalidRequestError checks if an error is or wraps ErrInvalidRequest
func IsInvalidRequestError(err error) bool {
	return err != nil && Is(err, ErrInvalidRequest)
}

// NewUnknownAdapterError creates an unknown-adapter error for the framework
func NewUnknownAdapterError(framework string) error {
	return Wrapf(ErrUnknownAdapter, "framework adapter '%s' is not registered", framework)
}

// NewUnsupportedSourceError creates an unsupported-source error for the source kind
func NewUnsupportedSourceError(kind string) error {
	return Wrapf(ErrUnsupportedSource, "no registered parser can handle source kind '%s'", kind)
}

// NewUnknownLayoutEngineError creates an unknown-layout-engine error for the name
func NewUnknownLayoutEngineError(name string) error {
	return Wrapf(ErrUnknownLayoutEngine, "layout engine '%s' is not registered", name)
}

// WrapAdapterGeneration marks err as an adapter-internal failure, keeping its message
func WrapAdapterGeneration(err error, framework string) error {
	if err == nil {
		return nil
	}
	if IsAdapterGenerationError(err) {
		return Wrapf(err, "adapter '%s'", framework)
	}
	return Wrapf(Mark(err, ErrAdapterGeneration), "adapter '%s'", framework)
}

// NewInvalidRequestError creates an invalid-request error with a formatted message
func NewInvalidRequestError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidRequest, Newf(format, args...).Error())
}
