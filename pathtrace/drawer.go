package pathtrace

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/katalvlaran/terrapath/elevation"
)

// Drawer is the capability every path-drawing variant offers to an
// interaction layer: start at an anchor, follow a cursor, commit, reset.
// Deciding when to call these stays with the caller.
type Drawer interface {
	// Start anchors a new path at a local position. It returns false and
	// stays idle when the position lies outside the local plane.
	Start(at orb.Point) bool
	// Update recomputes the live path toward cursor. An out-of-domain
	// cursor keeps the previous result.
	Update(cursor orb.Point) []elevation.Point
	// End stops drawing and returns the final path toward at.
	End(at orb.Point) []elevation.Point
	// Reset abandons the current path.
	Reset()
	// Drawing reports whether a path is in progress.
	Drawing() bool
	// Origin returns the anchor of the current or last path.
	Origin() elevation.Point
}

// drawState is the lifecycle shared by all drawers; compute supplies the
// variant-specific path.
type drawState struct {
	tracer  *Tracer
	origin  elevation.Point
	drawing bool
	current []elevation.Point
	compute func(origin elevation.Point, cursor orb.Point) []elevation.Point
}

// Start anchors a new path at at and clears the tracer cache.
// It reports false, leaving the drawer idle, when at is outside the plane.
func (d *drawState) Start(at orb.Point) bool {
	if !elevation.InDomain(at) {
		return false
	}
	d.tracer.ClearCache()
	d.origin = d.tracer.field.Drape(at)
	d.drawing = true
	d.current = nil

	return true
}

// Update recomputes the live path toward cursor. An out-of-domain cursor
// keeps the previous path.
func (d *drawState) Update(cursor orb.Point) []elevation.Point {
	if !d.drawing {
		return nil
	}
	if elevation.InDomain(cursor) {
		d.current = d.compute(d.origin, cursor)
	}
	return d.current
}

// End computes the final path toward at and leaves the drawer idle.
func (d *drawState) End(at orb.Point) []elevation.Point {
	if !d.drawing {
		return nil
	}
	d.drawing = false
	if elevation.InDomain(at) {
		d.current = d.compute(d.origin, at)
	}
	return d.current
}

// Reset drops the path in progress.
func (d *drawState) Reset() {
	d.drawing = false
	d.current = nil
}

// Drawing reports whether a path is in progress.
func (d *drawState) Drawing() bool { return d.drawing }

// Origin returns the draped start of the current path.
func (d *drawState) Origin() elevation.Point { return d.origin }

// StraightDrawer drapes straight segments over the terrain.
type StraightDrawer struct {
	drawState
}

// NewStraightDrawer returns a drawer producing Tracer.Straight paths.
func NewStraightDrawer(t *Tracer) *StraightDrawer {
	d := &StraightDrawer{drawState{tracer: t}}
	d.compute = func(origin elevation.Point, cursor orb.Point) []elevation.Point {
		return t.Straight(origin.XY(), cursor)
	}
	return d
}

// ConstantSlopeDrawer draws Tracer.ConstantSlope paths.
type ConstantSlopeDrawer struct {
	drawState
	Slope float64
	Step  float64
}

// NewConstantSlopeDrawer returns a constant-slope drawer. A non-positive
// step falls back to DefaultStep.
func NewConstantSlopeDrawer(t *Tracer, slope, step float64) *ConstantSlopeDrawer {
	if !(step > 0) {
		step = DefaultStep
	}
	d := &ConstantSlopeDrawer{drawState: drawState{tracer: t}, Slope: slope, Step: step}
	d.compute = func(origin elevation.Point, cursor orb.Point) []elevation.Point {
		return t.ConstantSlope(origin, cursor, d.Slope, d.Step).Points
	}
	return d
}

// AutoSlopeDrawer draws Tracer.AutoSlope paths.
type AutoSlopeDrawer struct {
	drawState
	MaxSlope float64
	Step     float64
}

// NewAutoSlopeDrawer returns an auto-slope drawer. A non-positive step falls
// back to DefaultStep.
func NewAutoSlopeDrawer(t *Tracer, maxSlope, step float64) *AutoSlopeDrawer {
	if !(step > 0) {
		step = DefaultStep
	}
	d := &AutoSlopeDrawer{drawState: drawState{tracer: t}, MaxSlope: maxSlope, Step: step}
	d.compute = func(origin elevation.Point, cursor orb.Point) []elevation.Point {
		return t.AutoSlope(origin, cursor, d.MaxSlope, d.Step).Points
	}
	return d
}

// RailDrawer follows a constant-grade rail through the anchor and cuts the
// active segment toward the cursor on every update.
type RailDrawer struct {
	drawState
	slope    float64
	maxSlope float64
	dirty    bool
}

// NewRailDrawer returns a rail drawer with an initial slope, adjustable
// within [-maxSlope, maxSlope].
func NewRailDrawer(t *Tracer, slope, maxSlope float64) *RailDrawer {
	d := &RailDrawer{drawState: drawState{tracer: t}, maxSlope: math.Abs(maxSlope)}
	d.slope = d.clamp(slope)
	d.compute = func(origin elevation.Point, cursor orb.Point) []elevation.Point {
		force := d.dirty
		d.dirty = false
		return t.ActiveSegment(origin, t.field.Drape(cursor), d.slope, force)
	}
	return d
}

// Slope returns the current rail grade.
func (d *RailDrawer) Slope() float64 { return d.slope }

// SetSlope changes the rail grade; the next update rebuilds the rail.
func (d *RailDrawer) SetSlope(s float64) {
	s = d.clamp(s)
	if s != d.slope {
		d.slope = s
		d.dirty = true
	}
}

// AdjustSlope shifts the rail grade by delta, clamped to the maximum.
func (d *RailDrawer) AdjustSlope(delta float64) {
	d.SetSlope(d.slope + delta)
}

func (d *RailDrawer) clamp(s float64) float64 {
	return math.Max(-d.maxSlope, math.Min(s, d.maxSlope))
}

var (
	_ Drawer = (*StraightDrawer)(nil)
	_ Drawer = (*ConstantSlopeDrawer)(nil)
	_ Drawer = (*AutoSlopeDrawer)(nil)
	_ Drawer = (*RailDrawer)(nil)
)
