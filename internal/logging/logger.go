// Package logging defines the structured-logging interface shared by the
// vault client and server, plus a log/slog backed implementation.
//
// Callers pass labels, ids and counts as attributes. Passwords, keys and
// decrypted entry content are never logged.
package logging

import "context"

// Logger is a context-aware, structured logger.
//
// The variadic args are key-value pairs, e.g.:
//
//	log.Info(ctx, "entry stored", "label", label)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given pairs.
	With(args ...any) Logger
}
