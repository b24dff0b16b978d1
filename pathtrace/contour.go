package pathtrace

import (
	"math"
	"slices"

	"github.com/paulmach/orb"

	"github.com/katalvlaran/terrapath/elevation"
)

// Bidirectional traces a constant-grade contour line through start in both
// directions and joins them: reversed backward trace, start, forward trace.
//
// Each direction moves one pixel per step along
// normalize(contour·cos(atan slope) + gradient·sin(atan slope)), where the
// contour is the normalized pixel gradient rotated by 90° (the two
// directions use opposite rotations). A direction stops after maxLength
// pixels, when it leaves the grid interior [1, W−1)×[1, H−1), or when its
// heading reverses against the previous step (a ridge or valley).
//
// start is clamped into the local plane first; its Z is kept as given.
// maxLength must be positive and finite, otherwise the result is nil.
// Complexity: O(maxLength) samples per direction.
func (t *Tracer) Bidirectional(start elevation.Point, slope, maxLength float64) []elevation.Point {
	start.X = math.Max(-0.5, math.Min(start.X, 0.5))
	start.Y = math.Max(-0.5, math.Min(start.Y, 0.5))
	if math.IsNaN(start.X) || math.IsNaN(start.Y) || math.IsNaN(slope) {
		return nil
	}
	if !(maxLength > 0) || math.IsInf(maxLength, 0) {
		return nil
	}

	origin := t.field.LocalToPixel(start.XY())

	forward := t.traceContour(origin, slope, maxLength, false)
	backward := t.traceContour(origin, slope, maxLength, true)

	slices.Reverse(backward)
	out := make([]elevation.Point, 0, len(backward)+1+len(forward))
	out = append(out, backward...)
	out = append(out, start)
	out = append(out, forward...)

	return out
}

// traceContour walks one direction of the rail in pixel space.
func (t *Tracer) traceContour(pos orb.Point, slope, maxLength float64, reversePolarity bool) []elevation.Point {
	const stepSize = 1.0 // pixels

	var (
		out       []elevation.Point
		lastDir   orb.Point
		hasLast   bool
		travelled float64
	)
	w, h := float64(t.field.Width()), float64(t.field.Height())
	angle := math.Atan(slope)
	cosA, sinA := math.Cos(angle), math.Sin(angle)

	for travelled < maxLength {
		// 1) Unit gradient; flat terrain falls back to +y.
		g := t.field.PixelGradient(pos)
		if n := math.Hypot(g[0], g[1]); n < contourFlat {
			g = orb.Point{0, 1}
		} else {
			g = orb.Point{g[0] / n, g[1] / n}
		}

		// 2) Contour direction, perpendicular to the gradient.
		contour := orb.Point{-g[1], g[0]}
		if reversePolarity {
			contour = orb.Point{g[1], -g[0]}
		}

		// 3) Blend in the grade.
		move := orb.Point{contour[0]*cosA + g[0]*sinA, contour[1]*cosA + g[1]*sinA}
		n := math.Hypot(move[0], move[1])
		if n == 0 {
			break
		}
		move = orb.Point{move[0] / n, move[1] / n}

		// 4) Continuity: a reversed heading means a ridge or valley.
		if len(out) > 1 && hasLast && move[0]*lastDir[0]+move[1]*lastDir[1] < 0 {
			break
		}

		// 5) Step, staying one pixel inside the grid.
		pos = orb.Point{pos[0] + move[0]*stepSize, pos[1] + move[1]*stepSize}
		if pos[0] < 1 || pos[0] >= w-1 || pos[1] < 1 || pos[1] >= h-1 {
			break
		}

		out = append(out, t.field.PixelToLocal(pos))
		lastDir, hasLast = move, true
		travelled += stepSize
	}

	return out
}
