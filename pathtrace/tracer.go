package pathtrace

import (
	"math"
	"sync"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/katalvlaran/terrapath/elevation"
)

// Tracer owns the path generation algorithms and their caches for one
// elevation field.
type Tracer struct {
	mu      sync.Mutex
	field   *elevation.Field
	options Options

	slot *Path // constant/auto-slope cache, nil when cleared
	rail *rail // bidirectional cache, nil when cleared
}

// New builds a Tracer over field.
// Returns ErrNilField if field is nil and ErrOptionViolation for invalid options.
func New(field *elevation.Field, opts ...Option) (*Tracer, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}
	if field == nil {
		return nil, ErrNilField
	}

	return &Tracer{field: field, options: cfg}, nil
}

// Field returns the traced elevation field.
func (t *Tracer) Field() *elevation.Field { return t.field }

// ClearCache drops the cached path and the cached rail. Call it when a new
// drawing session starts.
func (t *Tracer) ClearCache() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.slot = nil
	t.rail = nil
	t.options.Logger.Debug("path cache cleared")
}

// CachedPath returns the path currently held by the cache slot, or nil.
func (t *Tracer) CachedPath() *Path {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.slot
}

// ConstantSlope traces from start toward end, advancing step local units per
// iteration while gaining step·slope world units of height (negative slopes
// descend). A request matching the cached key returns the cached *Path.
//
// Out-of-domain start or end yields an empty path; start == end yields a
// path holding only start; the step cap yields a path truncated at its
// closest approach to end.
func (t *Tracer) ConstantSlope(start elevation.Point, end orb.Point, slope, step float64) *Path {
	key := CacheKey{Start: start.XY(), End: end, Slope: slope, Step: step, Mode: ModeConstantSlope}

	t.mu.Lock()
	defer t.mu.Unlock()

	if p := t.lookup(key); p != nil {
		return p
	}

	p := t.trace(start, end, slope, step)
	p.Key = key
	t.store(p)

	return p
}

// AutoSlope traces from start toward end with the slope that reaches end's
// terrain height in a straight ramp, clamped to [-maxSlope, maxSlope].
// Path.Slope reports the slope actually used.
func (t *Tracer) AutoSlope(start elevation.Point, end orb.Point, maxSlope, step float64) *Path {
	key := CacheKey{Start: start.XY(), End: end, Slope: maxSlope, Step: step, Mode: ModeAutoSlope}

	t.mu.Lock()
	defer t.mu.Unlock()

	if p := t.lookup(key); p != nil {
		return p
	}

	endZ := t.field.HeightAtLocal(end[0], end[1])
	slope := AutoSlopeFor(start.Z, endZ, planar.Distance(start.XY(), end), maxSlope)

	p := t.trace(start, end, slope, step)
	p.Key = key
	t.store(p)

	return p
}

// AutoSlopeFor returns (endZ − startZ) / planarDistance clamped to
// [-maxSlope, maxSlope]. A zero planar distance yields 0.
func AutoSlopeFor(startZ, endZ, planarDistance, maxSlope float64) float64 {
	if planarDistance <= 0 || math.IsNaN(planarDistance) {
		return 0
	}
	maxSlope = math.Abs(maxSlope)
	s := (endZ - startZ) / planarDistance

	return math.Max(-maxSlope, math.Min(s, maxSlope))
}

// lookup returns the cached path when key matches it. Caller holds t.mu.
func (t *Tracer) lookup(key CacheKey) *Path {
	if t.slot != nil && t.slot.Key.Matches(key) {
		t.options.Logger.Debug("path cache hit", "mode", key.Mode.String())
		return t.slot
	}
	return nil
}

// store replaces the cache slot wholesale. Caller holds t.mu.
func (t *Tracer) store(p *Path) {
	t.slot = p
	t.options.OnRecompute(p.Key.Mode)
	t.options.Logger.Debug("path recomputed",
		"mode", p.Key.Mode.String(),
		"points", len(p.Points),
		"steps", p.Steps,
		"termination", p.Termination.String(),
	)
}
