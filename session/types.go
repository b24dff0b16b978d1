package session

import (
	"errors"
	"log/slog"

	"github.com/katalvlaran/terrapath/destination"
	"github.com/katalvlaran/terrapath/elevation"
)

// Sentinel errors for session operations.
var (
	// ErrNilDependency is returned when New receives a nil tracer, graph or drawer.
	ErrNilDependency = errors.New("session: tracer, graph and drawer are required")

	// ErrOutOfDomain indicates a position outside the terrain's local plane.
	ErrOutOfDomain = errors.New("session: position outside the terrain")

	// ErrUnknownDestination indicates a destination without a registered anchor.
	ErrUnknownDestination = errors.New("session: unknown destination")

	// ErrNotDrawing is returned when committing without an active path.
	ErrNotDrawing = errors.New("session: no path in progress")

	// ErrEmptyPath is returned when the path to commit has no length.
	ErrEmptyPath = errors.New("session: path has no length")
)

// Committed is a path accepted into the destination graph.
type Committed struct {
	From, To destination.ID
	Points   []elevation.Point
	Length   float64
}

// Option configures a Session.
type Option func(*Options)

// Options holds Session parameters.
type Options struct {
	// Logger receives an info record per commit and debug records otherwise.
	Logger *slog.Logger
}

// DefaultOptions returns Options with a discarding logger.
func DefaultOptions() Options {
	return Options{Logger: slog.New(slog.DiscardHandler)}
}

// WithLogger sets the session logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}
