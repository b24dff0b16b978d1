package pathtrace

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/katalvlaran/terrapath/elevation"
)

// trace runs the stepping loop shared by ConstantSlope and AutoSlope.
// The returned path carries no key; the caller sets it.
//
// Complexity: O(MaxSteps × CorrectionIterations) samples.
func (t *Tracer) trace(start elevation.Point, end orb.Point, slope, step float64) *Path {
	p := &Path{Slope: slope}

	// 1) Reject inputs that would sample outside the field.
	if !elevation.InDomain(start.XY()) || !elevation.InDomain(end) {
		p.Termination = TermOutOfDomain
		return p
	}
	if !(step > 0) || math.IsInf(step, 0) || math.IsNaN(slope) || math.IsInf(slope, 0) {
		p.Termination = TermDegenerate
		return p
	}

	// 2) start == end: nothing to walk, the direction is undefined.
	best := planar.Distance(start.XY(), end)
	if best == 0 {
		p.Points = []elevation.Point{start}
		p.Termination = TermDegenerate
		return p
	}

	points := make([]elevation.Point, 1, 64)
	points[0] = start
	bestIdx := 0
	term := TermStepCap

	// 3) Step until a heuristic fires or the cap is reached.
	for p.Steps < MaxSteps {
		prev := points[len(points)-1]

		dx, dy := end[0]-prev.X, end[1]-prev.Y
		dist := math.Hypot(dx, dy)
		if dist == 0 {
			term = TermDegenerate
			break
		}
		dx, dy = dx/dist, dy/dist

		target := prev.Z + step*slope
		proposal := orb.Point{prev.X + dx*step, prev.Y + dy*step}
		next := t.followSlope(proposal, target)

		points = append(points, t.field.Drape(next))
		p.Steps++

		remaining := planar.Distance(next, end)
		if remaining < best {
			best, bestIdx = remaining, len(points)-1
		}

		if term = terminate(planar.Distance(prev.XY(), next), remaining, best, step); term != TermNone {
			break
		}
		term = TermStepCap
	}

	// 4) Later points may have overshot; keep the closest approach.
	p.Points = smooth(points[:bestIdx+1])
	p.Termination = term

	return p
}

// terminate evaluates the stopping heuristics in priority order:
// stuck, diverging, arrived. It returns TermNone to keep stepping.
func terminate(moved, remaining, best, step float64) Termination {
	switch {
	case moved < step/2:
		return TermStuck
	case remaining > best+DivergenceSteps*step:
		return TermDiverged
	case remaining < step:
		return TermArrived
	default:
		return TermNone
	}
}

// followSlope moves p with Newton-style corrections along the local gradient
// until its height is within ElevationEpsilon of target. Each correction is
// capped at MaxCorrection; flat terrain accepts p as-is. The point is kept
// inside the local domain so every sample stays defined.
func (t *Tracer) followSlope(p orb.Point, target float64) orb.Point {
	for i := 0; i < CorrectionIterations; i++ {
		diff := t.field.HeightAtLocal(p[0], p[1]) - target
		if math.Abs(diff) < ElevationEpsilon {
			break
		}

		gx, gy := t.field.GradientAt(p[0], p[1])
		g2 := gx*gx + gy*gy
		if math.Sqrt(g2) < FlatGradient {
			break
		}

		// Newton step toward the target height along the gradient.
		cx, cy := -diff*gx/g2, -diff*gy/g2
		if m := math.Hypot(cx, cy); m > MaxCorrection {
			cx, cy = cx*MaxCorrection/m, cy*MaxCorrection/m
		}

		p = clampToDomain(orb.Point{p[0] + cx, p[1] + cy})
	}

	return p
}

// smooth applies one 3-point moving average to the interior points of pts,
// reading from the unsmoothed input. Endpoints are untouched.
func smooth(pts []elevation.Point) []elevation.Point {
	out := make([]elevation.Point, len(pts))
	copy(out, pts)
	for i := 1; i < len(pts)-1; i++ {
		a, b, c := pts[i-1], pts[i], pts[i+1]
		out[i] = elevation.Point{
			X: (a.X + b.X + c.X) / 3,
			Y: (a.Y + b.Y + c.Y) / 3,
			Z: (a.Z + b.Z + c.Z) / 3,
		}
	}

	return out
}

func clampToDomain(p orb.Point) orb.Point {
	b := elevation.LocalBound
	return orb.Point{
		math.Max(b.Min[0], math.Min(p[0], b.Max[0])),
		math.Max(b.Min[1], math.Min(p[1], b.Max[1])),
	}
}
