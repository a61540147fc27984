package logging

import (
	"context"

	"github.com/google/uuid"
)

// Context keys for common log fields.
type contextKey string

const (
	// RunIDKey is the context key for the identifier of one omg invocation.
	RunIDKey contextKey = "run_id"

	// BundleKey is the context key for the must-gather bundle root.
	BundleKey contextKey = "bundle"

	// DocumentKey is the context key for the snapshot document being processed.
	DocumentKey contextKey = "document"

	// CommandKey is the context key for the omg subcommand.
	CommandKey contextKey = "command"
)

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// WithRunID adds a run ID to the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// GetRunID retrieves the run ID from the context.
func GetRunID(ctx context.Context) string {
	if runID, ok := ctx.Value(RunIDKey).(string); ok {
		return runID
	}
	return ""
}

// WithBundle adds a bundle path to the context.
func WithBundle(ctx context.Context, bundle string) context.Context {
	return context.WithValue(ctx, BundleKey, bundle)
}

// GetBundle retrieves the bundle path from the context.
func GetBundle(ctx context.Context) string {
	if bundle, ok := ctx.Value(BundleKey).(string); ok {
		return bundle
	}
	return ""
}

// WithDocument adds a document path to the context.
func WithDocument(ctx context.Context, document string) context.Context {
	return context.WithValue(ctx, DocumentKey, document)
}

// GetDocument retrieves the document path from the context.
func GetDocument(ctx context.Context) string {
	if document, ok := ctx.Value(DocumentKey).(string); ok {
		return document
	}
	return ""
}

// WithCommand adds a command name to the context.
func WithCommand(ctx context.Context, command string) context.Context {
	return context.WithValue(ctx, CommandKey, command)
}

// GetCommand retrieves the command name from the context.
func GetCommand(ctx context.Context) string {
	if command, ok := ctx.Value(CommandKey).(string); ok {
		return command
	}
	return ""
}

// extractContextFields extracts common fields from context for logging.
// Returns a slice of key-value pairs suitable for logger.With().
func extractContextFields(ctx context.Context) []any {
	var fields []any

	if runID := GetRunID(ctx); runID != "" {
		fields = append(fields, "run_id", runID)
	}
	if command := GetCommand(ctx); command != "" {
		fields = append(fields, "command", command)
	}
	if bundle := GetBundle(ctx); bundle != "" {
		fields = append(fields, "bundle", bundle)
	}
	if document := GetDocument(ctx); document != "" {
		fields = append(fields, "document", document)
	}

	return fields
}
