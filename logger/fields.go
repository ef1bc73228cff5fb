package logger

import (
	"context"

	"go.uber.org/zap"
)

// Standard field names for structured logging across sketchflow.
// Use these constants instead of raw strings to keep keys consistent.
const (
	// Identity and context
	FieldRequestID  = "request_id"
	FieldDocumentID = "document_id"
	FieldComponent  = "component"

	// Pipeline stages
	FieldSourceKind   = "source_kind"
	FieldParser       = "parser"
	FieldLayoutEngine = "layout_engine"
	FieldFramework    = "framework"
	FieldFrameworks   = "frameworks"

	// Counts
	FieldNodeCount = "node_count"
	FieldFileCount = "file_count"
	FieldSkipped   = "skipped"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Files, paths and network
	FieldPath    = "path"
	FieldTarget  = "target"
	FieldAddress = "address"
	FieldMethod  = "method"
	FieldStatus  = "status"
	FieldClient  = "client"
)

type contextKey string

const (
	requestIDKey contextKey = "logger_request_id"
	componentKey contextKey = "logger_component"
)

// WithRequestID adds a request ID to the context for logging
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// WithComponent adds a component name to the context for logging
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, componentKey, component)
}

// FieldsFromContext extracts logging fields from context.
// Returns key-value pairs suitable for use with Infow/Errorw/etc.
func FieldsFromContext(ctx context.Context) []interface{} {
	var fields []interface{}

	if requestID, ok := ctx.Value(requestIDKey).(string); ok && requestID != "" {
		fields = append(fields, FieldRequestID, requestID)
	}
	if component, ok := ctx.Value(componentKey).(string); ok && component != "" {
		fields = append(fields, FieldComponent, component)
	}

	return fields
}

// FromContext returns base with the fields carried by ctx attached.
func FromContext(ctx context.Context, base *zap.SugaredLogger) *zap.SugaredLogger {
	base = OrNop(base)
	fields := FieldsFromContext(ctx)
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to hand a logger to a pipeline stage:
//
//	gen := codegen.New(parsers, layouts, adapters,
//	    codegen.WithLogger(logger.ComponentLogger("codegen")))
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}
