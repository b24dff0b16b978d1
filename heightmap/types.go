package heightmap

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/terrapath/elevation"
)

// Sentinel errors for heightmap decoding.
var (
	// ErrUnsupportedFormat wraps any failure to decode the image data.
	ErrUnsupportedFormat = errors.New("heightmap: unsupported or corrupt image")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("heightmap: invalid option supplied")
)

// Option configures decoding.
type Option func(*Options)

// Options holds decoding parameters.
type Options struct {
	// Field options are applied after the detected bit depth, so they may
	// override it.
	Field []elevation.Option

	// Width and Height, when both positive, are the declared resolution.
	Width, Height int

	// Logger receives a debug record per decoded image.
	Logger *slog.Logger

	err error
}

// DefaultOptions returns Options with no resolution and a discarding logger.
func DefaultOptions() Options {
	return Options{Logger: slog.New(slog.DiscardHandler)}
}

// WithFieldOptions forwards options to elevation.NewField.
func WithFieldOptions(opts ...elevation.Option) Option {
	return func(o *Options) {
		o.Field = append(o.Field, opts...)
	}
}

// WithResolution declares the expected pixel size of the heightmap.
func WithResolution(width, height int) Option {
	return func(o *Options) {
		if width <= 0 || height <= 0 {
			o.err = fmt.Errorf("%w: resolution must be positive (%dx%d)", ErrOptionViolation, width, height)
			return
		}
		o.Width, o.Height = width, height
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}
