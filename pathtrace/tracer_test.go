package pathtrace_test

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/terrapath/elevation"
	"github.com/katalvlaran/terrapath/pathtrace"
)

//----------------------------------------------------------------------------//
// Construction
//----------------------------------------------------------------------------//

func TestNew_Errors(t *testing.T) {
	tr, err := pathtrace.New(nil)
	assert.Nil(t, tr)
	assert.ErrorIs(t, err, pathtrace.ErrNilField)

	tr, err = pathtrace.New(flatField(t, 4), pathtrace.WithRailLength(0))
	assert.Nil(t, tr)
	assert.ErrorIs(t, err, pathtrace.ErrOptionViolation)
}

//----------------------------------------------------------------------------//
// Constant slope
//----------------------------------------------------------------------------//

// TestConstantSlope_FlatTerrain checks that a zero slope over flat ground
// walks the straight line and stops once the goal is within one step.
func TestConstantSlope_FlatTerrain(t *testing.T) {
	tr, _ := newTracer(t, flatField(t, 64))
	start := elevation.Point{X: -0.3, Y: 0}
	end := orb.Point{0.3, 0.1}
	const step = 0.01

	p := tr.ConstantSlope(start, end, 0, step)
	require.False(t, p.Empty())
	assert.Equal(t, pathtrace.TermArrived, p.Termination)
	assert.Equal(t, start, p.Points[0], "start must be kept verbatim")

	goal := elevation.Point{X: end[0], Y: end[1]}
	for i, pt := range p.Points {
		assert.InDelta(t, 0, distanceToLine(pt, start, goal), 1e-9, "point %d off the line", i)
		assert.Zero(t, pt.Z)
	}

	last, ok := p.Last()
	require.True(t, ok)
	assert.Less(t, last.PlanarDistance(goal), step)
	assert.InDelta(t, 60, p.Steps, 1)
}

func TestConstantSlope_OutOfDomain(t *testing.T) {
	tr, _ := newTracer(t, flatField(t, 16))

	p := tr.ConstantSlope(elevation.Point{X: 0.6}, orb.Point{0, 0}, 0, 0.01)
	assert.True(t, p.Empty())
	assert.Equal(t, pathtrace.TermOutOfDomain, p.Termination)

	p = tr.ConstantSlope(elevation.Point{}, orb.Point{0, -0.7}, 0, 0.01)
	assert.True(t, p.Empty())
	assert.Equal(t, pathtrace.TermOutOfDomain, p.Termination)
}

func TestConstantSlope_Degenerate(t *testing.T) {
	tr, _ := newTracer(t, flatField(t, 16))
	start := elevation.Point{X: 0.1, Y: 0.1}

	p := tr.ConstantSlope(start, start.XY(), 0.2, 0.01)
	assert.Equal(t, pathtrace.TermDegenerate, p.Termination)
	assert.Equal(t, []elevation.Point{start}, p.Points)

	p = tr.ConstantSlope(start, orb.Point{0.2, 0.2}, 0.2, 0)
	assert.Equal(t, pathtrace.TermDegenerate, p.Termination)
	assert.True(t, p.Empty())

	for _, slope := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		p = tr.ConstantSlope(start, orb.Point{0.2, 0.2}, slope, 0.01)
		assert.Equal(t, pathtrace.TermDegenerate, p.Termination, "slope=%v", slope)
		assert.Zero(t, p.Steps)
		assert.True(t, p.Empty())
	}
}

// TestConstantSlope_ContourStuck heads straight uphill with a zero slope:
// every proposal is pulled back onto the start contour, so the trace is
// stuck immediately and keeps only its closest approach.
func TestConstantSlope_ContourStuck(t *testing.T) {
	f := rampField(t, 64, 1)
	tr, _ := newTracer(t, f)
	start := f.Drape(orb.Point{-0.2, 0})

	p := tr.ConstantSlope(start, orb.Point{0.2, 0}, 0, 0.01)
	assert.Equal(t, pathtrace.TermStuck, p.Termination)
	assert.LessOrEqual(t, len(p.Points), 2)
	for _, pt := range p.Points {
		assert.InDelta(t, start.Z, pt.Z, pathtrace.ElevationEpsilon)
	}
}

// TestConstantSlope_ClimbsAtRequestedRate follows a ramp diagonally with a
// positive slope and checks each step gains roughly step·slope.
func TestConstantSlope_ClimbsAtRequestedRate(t *testing.T) {
	f := rampField(t, 128, 1)
	tr, _ := newTracer(t, f)
	start := f.Drape(orb.Point{-0.3, -0.3})
	const slope, step = 0.5, 0.01

	p := tr.ConstantSlope(start, orb.Point{0.3, 0.3}, slope, step)
	require.Greater(t, len(p.Points), 10)

	// Compare raw terrain heights away from the smoothed ends.
	for i := 2; i < 10; i++ {
		a, b := p.Points[i], p.Points[i+1]
		assert.InDelta(t, step*slope, f.HeightAtLocal(b.X, b.Y)-f.HeightAtLocal(a.X, a.Y), 2e-3, "step %d", i)
	}
}

// TestConstantSlope_StepCap uses a step far too small to reach the goal
// within MaxSteps: the trace must still return, truncated at its closest
// approach.
func TestConstantSlope_StepCap(t *testing.T) {
	tr, _ := newTracer(t, flatField(t, 32))
	end := orb.Point{0.4, 0}

	p := tr.ConstantSlope(elevation.Point{X: -0.4}, end, 0, 0.0001)
	assert.Equal(t, pathtrace.TermStepCap, p.Termination)
	assert.Equal(t, pathtrace.MaxSteps, p.Steps)
	assert.LessOrEqual(t, len(p.Points), pathtrace.MaxSteps+1)

	last, ok := p.Last()
	require.True(t, ok)
	goal := elevation.Point{X: end[0], Y: end[1]}
	for _, pt := range p.Points {
		assert.GreaterOrEqual(t, pt.PlanarDistance(goal), last.PlanarDistance(goal))
	}
}

// TestConstantSlope_DivergedKeepsClosestApproach asks for a steep climb
// toward a goal downhill: every corrected step moves away from the goal, so
// the trace diverges and only the start survives the cut.
func TestConstantSlope_DivergedKeepsClosestApproach(t *testing.T) {
	f := rampField(t, 128, 1)
	tr, _ := newTracer(t, f)
	start := f.Drape(orb.Point{0, 0})

	p := tr.ConstantSlope(start, orb.Point{-0.3, 0}, 5, 0.01)
	assert.Equal(t, pathtrace.TermDiverged, p.Termination)
	assert.Equal(t, 5, p.Steps)
	assert.Less(t, len(p.Points), p.Steps+1, "points past the closest approach must be dropped")
	assert.Equal(t, []elevation.Point{start}, p.Points)
}

// TestConstantSlope_StepCapOscillation descends a V-shaped valley toward a
// goal on the far flank. The descent cannot continue past the floor, so the
// trace bounces between the floor (0.05 from the goal) and one step up the
// far flank (0.04 from the goal) until MaxSteps. The final raw point is on
// the floor; the returned path must end on the flank instead.
func TestConstantSlope_StepCapOscillation(t *testing.T) {
	f := valleyField(t, 128)
	tr, _ := newTracer(t, f)
	end := orb.Point{-0.05, 0}
	goal := elevation.Point{X: end[0], Y: end[1]}

	p := tr.ConstantSlope(f.Drape(orb.Point{0.3, 0}), end, -2, 0.01)
	assert.Equal(t, pathtrace.TermStepCap, p.Termination)
	assert.Equal(t, pathtrace.MaxSteps, p.Steps)
	assert.Less(t, len(p.Points), p.Steps+1, "points past the closest approach must be dropped")

	last, ok := p.Last()
	require.True(t, ok)
	assert.InDelta(t, 0.04, last.PlanarDistance(goal), 1e-9)
	for i, pt := range p.Points {
		assert.GreaterOrEqual(t, pt.PlanarDistance(goal), last.PlanarDistance(goal)-1e-12, "point %d", i)
	}
}

//----------------------------------------------------------------------------//
// Auto slope
//----------------------------------------------------------------------------//

func TestAutoSlopeFor(t *testing.T) {
	assert.Equal(t, 0.1, pathtrace.AutoSlopeFor(0, 100, 10, 0.1))
	assert.Equal(t, -0.1, pathtrace.AutoSlopeFor(100, 0, 10, 0.1))
	assert.InDelta(t, 0.05, pathtrace.AutoSlopeFor(0, 0.5, 10, 0.1), 1e-12)
	assert.Equal(t, 0.1, pathtrace.AutoSlopeFor(0, 100, 10, -0.1), "max slope sign is ignored")
	assert.Zero(t, pathtrace.AutoSlopeFor(0, 100, 0, 0.1))
}

func TestAutoSlope_ClampsToMaxSlope(t *testing.T) {
	f := rampField(t, 64, 100)
	tr, _ := newTracer(t, f)
	start := f.Drape(orb.Point{-0.3, 0})

	p := tr.AutoSlope(start, orb.Point{0.3, 0}, 0.1, 0.01)
	assert.Equal(t, 0.1, p.Slope)
	assert.Equal(t, pathtrace.ModeAutoSlope, p.Key.Mode)
}

func TestAutoSlope_FlatTerrainUsesZeroSlope(t *testing.T) {
	tr, _ := newTracer(t, flatField(t, 32))

	p := tr.AutoSlope(elevation.Point{X: -0.2}, orb.Point{0.2, 0}, 1, 0.01)
	assert.Zero(t, p.Slope)
	assert.Equal(t, pathtrace.TermArrived, p.Termination)
}

//----------------------------------------------------------------------------//
// Cache
//----------------------------------------------------------------------------//

func TestCache_ReuseAndInvalidation(t *testing.T) {
	tr, counts := newTracer(t, flatField(t, 32))
	start := elevation.Point{X: -0.2}
	end := orb.Point{0.2, 0}

	first := tr.ConstantSlope(start, end, 0, 0.01)
	second := tr.ConstantSlope(start, end, 0, 0.01)
	assert.Same(t, first, second)
	assert.Equal(t, 1, counts[pathtrace.ModeConstantSlope])
	assert.Same(t, first, tr.CachedPath())

	// Within the end tolerance the cached path is reused.
	third := tr.ConstantSlope(start, orb.Point{0.2, 0.04}, 0, 0.01)
	assert.Same(t, first, third)
	assert.Equal(t, 1, counts[pathtrace.ModeConstantSlope])

	// Beyond it the slot is replaced.
	fourth := tr.ConstantSlope(start, orb.Point{0.2, 0.1}, 0, 0.01)
	assert.NotSame(t, first, fourth)
	assert.Equal(t, 2, counts[pathtrace.ModeConstantSlope])

	// Same parameters, other mode: the discriminant forces recomputation.
	tr.AutoSlope(start, orb.Point{0.2, 0.1}, 0, 0.01)
	assert.Equal(t, 1, counts[pathtrace.ModeAutoSlope])

	tr.ClearCache()
	assert.Nil(t, tr.CachedPath())
	tr.AutoSlope(start, orb.Point{0.2, 0.1}, 0, 0.01)
	assert.Equal(t, 2, counts[pathtrace.ModeAutoSlope])
}

func TestCacheKey_Matches(t *testing.T) {
	base := pathtrace.CacheKey{Start: orb.Point{0, 0}, End: orb.Point{0.2, 0.2}, Slope: 0.3, Step: 0.01}

	cases := []struct {
		name  string
		other pathtrace.CacheKey
		want  bool
	}{
		{"Identical", base, true},
		{"StartWithinTolerance", pathtrace.CacheKey{Start: orb.Point{0.0005, 0}, End: base.End, Slope: base.Slope, Step: base.Step}, true},
		{"StartMoved", pathtrace.CacheKey{Start: orb.Point{0.002, 0}, End: base.End, Slope: base.Slope, Step: base.Step}, false},
		{"EndMoved", pathtrace.CacheKey{Start: base.Start, End: orb.Point{0.2, 0.26}, Slope: base.Slope, Step: base.Step}, false},
		{"SlopeChanged", pathtrace.CacheKey{Start: base.Start, End: base.End, Slope: 0.302, Step: base.Step}, false},
		{"StepChanged", pathtrace.CacheKey{Start: base.Start, End: base.End, Slope: base.Slope, Step: 0.012}, false},
		{"ModeChanged", pathtrace.CacheKey{Start: base.Start, End: base.End, Slope: base.Slope, Step: base.Step, Mode: pathtrace.ModeAutoSlope}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, base.Matches(tc.other))
		})
	}
}

//----------------------------------------------------------------------------//
// Kernels
//----------------------------------------------------------------------------//

func TestTerminate_Priority(t *testing.T) {
	const step = 0.01
	cases := []struct {
		name                   string
		moved, remaining, best float64
		want                   pathtrace.Termination
	}{
		{"Keep", step, 0.5, 0.5, pathtrace.TermNone},
		{"Stuck", step / 4, 0.5, 0.5, pathtrace.TermStuck},
		{"StuckBeatsArrived", step / 4, step / 2, step / 2, pathtrace.TermStuck},
		{"Diverged", step, 0.5 + 21*step, 0.5, pathtrace.TermDiverged},
		{"StuckBeatsDiverged", step / 4, 0.5 + 21*step, 0.5, pathtrace.TermStuck},
		{"Arrived", step, step / 2, step / 2, pathtrace.TermArrived},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, pathtrace.Terminate(tc.moved, tc.remaining, tc.best, step))
		})
	}
}

func TestSmooth_InteriorOnly(t *testing.T) {
	in := []elevation.Point{{X: 0}, {X: 3, Y: 3, Z: 3}, {X: 6}, {X: 9, Z: 9}}
	out := pathtrace.Smooth(in)

	require.Len(t, out, 4)
	assert.Equal(t, in[0], out[0])
	assert.Equal(t, in[3], out[3])
	assert.Equal(t, elevation.Point{X: 3, Y: 1, Z: 1}, out[1])
	assert.Equal(t, elevation.Point{X: 6, Y: 1, Z: 4}, out[2])
	assert.Equal(t, 3.0, in[1].X, "input must not be modified")

	assert.Empty(t, pathtrace.Smooth(nil))
}

func TestModeAndTermination_String(t *testing.T) {
	assert.Equal(t, "rail", pathtrace.ModeRail.String())
	assert.Equal(t, "step-cap", pathtrace.TermStepCap.String())
	assert.Equal(t, "Mode(9)", pathtrace.Mode(9).String())
}
