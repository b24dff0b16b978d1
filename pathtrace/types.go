package pathtrace

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/katalvlaran/terrapath/elevation"
)

// Sentinel errors for tracer construction.
var (
	// ErrNilField is returned when New receives a nil field.
	ErrNilField = errors.New("pathtrace: elevation field is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("pathtrace: invalid option supplied")
)

// Solver and heuristic constants. Callers and tests depend on the exact
// values: they decide where approximate paths get truncated.
const (
	// MaxSteps caps the number of stepping iterations of a single trace.
	MaxSteps = 2000
	// CorrectionIterations bounds the slope-following search per step.
	CorrectionIterations = 8
	// MaxCorrection caps a single correction, in local units.
	MaxCorrection = 0.05
	// ElevationEpsilon is the accepted |height − target| after correction.
	ElevationEpsilon = 0.001
	// DivergenceSteps is how many step lengths past the best remaining
	// distance a trace may drift before it is abandoned.
	DivergenceSteps = 20
	// FlatGradient is the gradient magnitude under which terrain counts as flat.
	FlatGradient = 1e-9

	// DefaultStep is the planar step of the slope drawers.
	DefaultStep = 0.01
	// StraightStep is the minimum terrain step of a straight segment.
	StraightStep = 0.005
	// DefaultRailLength is the per-direction rail length, in pixels.
	DefaultRailLength = 2000.0

	// Cache tolerances.
	StartTolerance = 0.001
	EndTolerance   = 0.05
	ParamTolerance = 0.001

	// contourFlat is the pixel-gradient magnitude under which the contour
	// tracer falls back to a fixed direction.
	contourFlat = 0.0001
)

// Mode discriminates which algorithm produced a path.
type Mode int

const (
	// ModeConstantSlope is a path with a caller-supplied slope.
	ModeConstantSlope Mode = iota
	// ModeAutoSlope is a path whose slope was derived from its endpoints.
	ModeAutoSlope
	// ModeRail is the bidirectional contour trace.
	ModeRail
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case ModeConstantSlope:
		return "constant-slope"
	case ModeAutoSlope:
		return "auto-slope"
	case ModeRail:
		return "rail"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Termination records why a stepping trace stopped.
type Termination int

const (
	// TermNone means the trace has not run.
	TermNone Termination = iota
	// TermArrived means the goal came within one step.
	TermArrived
	// TermStuck means consecutive points moved less than half a step.
	TermStuck
	// TermDiverged means the trace drifted too far past its best approach.
	TermDiverged
	// TermStepCap means MaxSteps was reached.
	TermStepCap
	// TermDegenerate means a zero-length direction, a non-positive step or a
	// non-finite slope.
	TermDegenerate
	// TermOutOfDomain means start or goal lie outside the local plane.
	TermOutOfDomain
)

// String implements fmt.Stringer.
func (t Termination) String() string {
	switch t {
	case TermNone:
		return "none"
	case TermArrived:
		return "arrived"
	case TermStuck:
		return "stuck"
	case TermDiverged:
		return "diverged"
	case TermStepCap:
		return "step-cap"
	case TermDegenerate:
		return "degenerate"
	case TermOutOfDomain:
		return "out-of-domain"
	default:
		return fmt.Sprintf("Termination(%d)", int(t))
	}
}

// CacheKey identifies a constant- or auto-slope request.
// For ModeAutoSlope, Slope holds the maximum slope.
type CacheKey struct {
	Start, End  orb.Point
	Slope, Step float64
	Mode        Mode
}

// Matches reports whether k and o are interchangeable within the cache
// tolerances.
func (k CacheKey) Matches(o CacheKey) bool {
	return k.Mode == o.Mode &&
		planar.Distance(k.Start, o.Start) <= StartTolerance &&
		planar.Distance(k.End, o.End) <= EndTolerance &&
		math.Abs(k.Slope-o.Slope) <= ParamTolerance &&
		math.Abs(k.Step-o.Step) <= ParamTolerance
}

// Path is a traced polyline together with how it was produced.
// Paths are shared with the tracer cache; treat them as read-only.
type Path struct {
	Key         CacheKey
	Points      []elevation.Point
	Termination Termination
	// Steps counts raw stepping iterations, before truncation.
	Steps int
	// Slope is the slope actually used (the clamped one for ModeAutoSlope).
	Slope float64
}

// Empty reports whether the path has no points.
func (p *Path) Empty() bool {
	return p == nil || len(p.Points) == 0
}

// Last returns the final point and false when the path is empty.
func (p *Path) Last() (elevation.Point, bool) {
	if p.Empty() {
		return elevation.Point{}, false
	}
	return p.Points[len(p.Points)-1], true
}

// Option configures a Tracer via functional arguments.
type Option func(*Options)

// Options holds Tracer parameters and hooks.
type Options struct {
	// Logger receives debug records for cache hits, misses and rail rebuilds.
	Logger *slog.Logger

	// OnRecompute is called every time a full recomputation happens.
	OnRecompute func(mode Mode)

	// RailLength is the per-direction length of the rail, in pixels.
	RailLength float64

	err error
}

// DefaultOptions returns Options with a discarding logger, a no-op hook and
// DefaultRailLength.
func DefaultOptions() Options {
	return Options{
		Logger:      slog.New(slog.DiscardHandler),
		OnRecompute: func(Mode) {},
		RailLength:  DefaultRailLength,
	}
}

// WithLogger sets the logger used for debug records.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithOnRecompute registers a callback fired on every cache miss.
func WithOnRecompute(fn func(mode Mode)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnRecompute = fn
		}
	}
}

// WithRailLength sets the per-direction rail length in pixels.
func WithRailLength(pixels float64) Option {
	return func(o *Options) {
		if !(pixels > 0) || math.IsInf(pixels, 0) {
			o.err = fmt.Errorf("%w: rail length must be positive and finite (%v)", ErrOptionViolation, pixels)
			return
		}
		o.RailLength = pixels
	}
}
