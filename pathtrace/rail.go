package pathtrace

import (
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb/planar"

	"github.com/katalvlaran/terrapath/elevation"
)

// railPointSize is the edge length of the box indexing one rail point.
const railPointSize = 1e-9

// rail is the cached full bidirectional trace plus a spatial index over its
// points, so every frame's nearest-index lookups stay logarithmic.
type rail struct {
	anchor elevation.Point
	slope  float64
	points []elevation.Point
	index  *rtreego.Rtree
}

// railEntry indexes one rail point by its position in the rail.
type railEntry struct {
	idx  int
	rect rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (e *railEntry) Bounds() rtreego.Rect {
	return e.rect
}

func newRail(anchor elevation.Point, slope float64, points []elevation.Point) *rail {
	tree := rtreego.NewTree(3, 25, 50)
	for i, p := range points {
		rect, err := rtreego.NewRect(
			rtreego.Point{p.X, p.Y, p.Z},
			[]float64{railPointSize, railPointSize, railPointSize},
		)
		if err != nil {
			continue
		}
		tree.Insert(&railEntry{idx: i, rect: rect})
	}

	return &rail{anchor: anchor, slope: slope, points: points, index: tree}
}

// nearest returns the index of the rail point closest to p, or -1.
func (r *rail) nearest(p elevation.Point) int {
	hit := r.index.NearestNeighbor(rtreego.Point{p.X, p.Y, p.Z})
	if hit == nil {
		return -1
	}
	return hit.(*railEntry).idx
}

// ActiveSegment returns the part of the rail running from the point nearest
// start to the point nearest cursor, in that order.
//
// The rail (Bidirectional from start with the tracer's rail length) is
// rebuilt when none is cached, when forceRecalc is set, or when start moved
// more than StartTolerance from the cached anchor. Callers force a rebuild
// after changing slope.
func (t *Tracer) ActiveSegment(start, cursor elevation.Point, slope float64, forceRecalc bool) []elevation.Point {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.rail == nil || forceRecalc || planar.Distance(t.rail.anchor.XY(), start.XY()) > StartTolerance {
		points := t.Bidirectional(start, slope, t.options.RailLength)
		t.rail = newRail(start, slope, points)
		t.options.OnRecompute(ModeRail)
		t.options.Logger.Debug("rail rebuilt", "points", len(points), "slope", slope, "forced", forceRecalc)
	}
	if len(t.rail.points) == 0 {
		return nil
	}

	from, to := t.rail.nearest(start), t.rail.nearest(cursor)
	if from < 0 || to < 0 {
		return nil
	}

	var segment []elevation.Point
	if from <= to {
		segment = make([]elevation.Point, 0, to-from+1)
		for i := from; i <= to; i++ {
			segment = append(segment, t.rail.points[i])
		}
	} else {
		segment = make([]elevation.Point, 0, from-to+1)
		for i := from; i >= to; i-- {
			segment = append(segment, t.rail.points[i])
		}
	}

	return segment
}

// Rail returns a copy of the cached rail points, or nil.
func (t *Tracer) Rail() []elevation.Point {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.rail == nil {
		return nil
	}
	out := make([]elevation.Point, len(t.rail.points))
	copy(out, t.rail.points)

	return out
}
