package drawstore

import (
	"errors"
	"log/slog"
)

// storeConfig holds mutable state during Store construction.
type storeConfig struct {
	logger *slog.Logger
}

// Option is a function that configures a [Store] during construction.
//
// Option implements the functional options pattern. Options return an error
// if validation fails, which [New] passes back to the caller.
type Option func(*storeConfig) error

// WithLogger sets a custom [slog.Logger] for the store.
//
// The store logs deletions and renders at debug level, and recovered
// panics from the event sink at error level. If not specified,
// [slog.Default] is used.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
//	s, err := drawstore.New[string](ctx, drawstore.WithLogger(logger))
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *storeConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}
