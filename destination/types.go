package destination

import (
	"errors"
	"log/slog"
)

// Sentinel errors for graph operations.
var (
	// ErrDestinationNotFound indicates an id that was never created.
	ErrDestinationNotFound = errors.New("destination: destination not found")

	// ErrBadLength indicates a link length that is negative, NaN or infinite.
	ErrBadLength = errors.New("destination: link length must be finite and non-negative")

	// ErrNoPath indicates that no chain of links joins the two destinations.
	ErrNoPath = errors.New("destination: no path between destinations")
)

// ID identifies a destination. IDs are assigned in creation order from 0.
type ID int

// Destination is a named path endpoint.
type Destination struct {
	ID   ID
	Name string
	// Region is shared by all destinations of one connected component.
	Region int
	// Optional destinations are ignored by AreNecessaryDestinationsConnected.
	Optional bool
}

// Link is an undirected connection between two destinations, weighted by the
// length of the path that created it.
type Link struct {
	A, B   ID
	Length float64
}

// Option configures a Graph via functional arguments.
type Option func(*Options)

// Options holds Graph parameters.
type Options struct {
	// Logger receives debug records for created destinations and region merges.
	Logger *slog.Logger
}

// DefaultOptions returns Options with a discarding logger.
func DefaultOptions() Options {
	return Options{Logger: slog.New(slog.DiscardHandler)}
}

// WithLogger sets the graph logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}
