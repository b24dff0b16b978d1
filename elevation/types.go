// Package elevation defines core types, options, and sentinel errors
// for the elevation subpackage of github.com/katalvlaran/terrapath.
package elevation

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Sentinel errors for elevation operations.
var (
	// ErrEmptyGrid indicates input grid has no rows or no columns.
	ErrEmptyGrid = errors.New("elevation: input grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("elevation: all rows must have the same length")
	// ErrSampleRange indicates a sample outside the normalized [0,1] range.
	ErrSampleRange = errors.New("elevation: samples must be normalized to [0,1]")
	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("elevation: invalid option supplied")
)

// Supported source precisions.
const (
	BitDepth8  = 8
	BitDepth16 = 16
)

// LocalBound is the terrain's local plane domain.
var LocalBound = orb.Bound{Min: orb.Point{-0.5, -0.5}, Max: orb.Point{0.5, 0.5}}

// Point is a position on the terrain: X and Y in local plane coordinates,
// Z the elevation in world units at (X,Y).
type Point struct {
	X, Y, Z float64
}

// XY drops the elevation.
func (p Point) XY() orb.Point {
	return orb.Point{p.X, p.Y}
}

// Distance returns the 3D Euclidean distance between p and o.
func (p Point) Distance(o Point) float64 {
	dx, dy, dz := o.X-p.X, o.Y-p.Y, o.Z-p.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// PlanarDistance returns the distance between p and o in the XY plane.
func (p Point) PlanarDistance(o Point) float64 {
	return planar.Distance(p.XY(), o.XY())
}

// InDomain reports whether p lies inside the local plane [-0.5,0.5]².
func InDomain(p orb.Point) bool {
	return LocalBound.Contains(p)
}

// Option configures a Field via functional arguments.
// Invalid values are recorded and surfaced as ErrOptionViolation by NewField.
type Option func(*Options)

// Options holds the tunable parameters of a Field.
type Options struct {
	// VerticalScale converts normalized height to world units. Must be > 0.
	VerticalScale float64
	// BitDepth records the raw source precision (8 or 16). Informational.
	BitDepth int
	// GradientEpsilon is the pixel offset used by central differences. Must be > 0.
	GradientEpsilon float64

	err error
}

// DefaultOptions returns Options with VerticalScale=1, BitDepth=8,
// GradientEpsilon=1 pixel.
func DefaultOptions() Options {
	return Options{
		VerticalScale:   1,
		BitDepth:        BitDepth8,
		GradientEpsilon: 1,
	}
}

// WithVerticalScale sets the normalized-to-world height factor.
func WithVerticalScale(s float64) Option {
	return func(o *Options) {
		if !(s > 0) || math.IsInf(s, 0) {
			o.err = fmt.Errorf("%w: vertical scale must be positive and finite (%v)", ErrOptionViolation, s)
			return
		}
		o.VerticalScale = s
	}
}

// WithBitDepth records whether the source was 8- or 16-bit.
func WithBitDepth(bits int) Option {
	return func(o *Options) {
		if bits != BitDepth8 && bits != BitDepth16 {
			o.err = fmt.Errorf("%w: bit depth must be 8 or 16 (%d)", ErrOptionViolation, bits)
			return
		}
		o.BitDepth = bits
	}
}

// WithGradientEpsilon sets the pixel offset for gradient estimation.
func WithGradientEpsilon(eps float64) Option {
	return func(o *Options) {
		if !(eps > 0) || math.IsInf(eps, 0) {
			o.err = fmt.Errorf("%w: gradient epsilon must be positive and finite (%v)", ErrOptionViolation, eps)
			return
		}
		o.GradientEpsilon = eps
	}
}

// Field is an immutable height grid. samples[y*width+x] holds the
// normalized height of pixel (x,y).
type Field struct {
	width, height int
	samples       []float64
	scale         float64
	bitDepth      int
	eps           float64
}
