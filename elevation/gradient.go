package elevation

import (
	"github.com/paulmach/orb"
)

// GradientAt estimates the partial derivatives of world height with respect
// to local x and y at local coordinates (x,y). The central difference uses an
// offset of GradientEpsilon pixels on each side, so the estimate stays
// defined right up to the domain edge (pixel reads there contribute 0).
// Complexity: O(1).
func (f *Field) GradientAt(x, y float64) (gx, gy float64) {
	px, py := f.localToPixel(x, y)
	e := f.eps

	// Pixel-space differences over a span of 2e pixels.
	dx := f.Sample(px+e, py) - f.Sample(px-e, py)
	dy := f.Sample(px, py+e) - f.Sample(px, py-e)

	// 2e pixels correspond to 2e/Width local units along x (2e/Height along y).
	gx = dx * f.scale * float64(f.width) / (2 * e)
	gy = dy * f.scale * float64(f.height) / (2 * e)

	return gx, gy
}

// PixelGradient returns the raw central difference of normalized height in
// pixel space at (px,py). Only its direction is meaningful; the contour
// tracer normalizes it.
// Complexity: O(1).
func (f *Field) PixelGradient(p orb.Point) orb.Point {
	e := f.eps
	return orb.Point{
		f.Sample(p[0]+e, p[1]) - f.Sample(p[0]-e, p[1]),
		f.Sample(p[0], p[1]+e) - f.Sample(p[0], p[1]-e),
	}
}
