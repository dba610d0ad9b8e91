// Package logging holds the structured-logging contract the server wires
// through every component. The interface is slog-shaped so handlers,
// stores and repositories never depend on a concrete logging backend.
package logging

import "context"

// Logger is a context-aware, structured logger. Variadic args are
// alternating key-value pairs:
//
//	log.Info(ctx, "zone created", "id", zone.ID, "region", zone.Region)
type Logger interface {
	Info(ctx context.Context, msg string, args ...any)

	// Warn records unusual but non-fatal conditions, e.g. a cache miss
	// caused by a corrupt entry or a missing temp file on confirm.
	Warn(ctx context.Context, msg string, args ...any)

	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger carrying the given key-value pairs on
	// every record. Components tag themselves once at construction.
	With(args ...any) Logger
}
