package elevation

import (
	"github.com/paulmach/orb"
)

// localToPixel maps local plane coordinates onto pixel coordinates.
func (f *Field) localToPixel(x, y float64) (float64, float64) {
	return (x + 0.5) * float64(f.width), (y + 0.5) * float64(f.height)
}

// LocalToPixel maps a local plane position onto pixel coordinates:
// [-0.5,0.5] → [0,Width] along x and [0,Height] along y.
func (f *Field) LocalToPixel(p orb.Point) orb.Point {
	px, py := f.localToPixel(p[0], p[1])
	return orb.Point{px, py}
}

// PixelToLocal maps pixel coordinates back onto the local plane and samples
// the world-unit height there.
func (f *Field) PixelToLocal(p orb.Point) Point {
	return Point{
		X: p[0]/float64(f.width) - 0.5,
		Y: p[1]/float64(f.height) - 0.5,
		Z: f.Sample(p[0], p[1]) * f.scale,
	}
}

// LocalFromUV converts texture coordinates (u,v) ∈ [0,1]² into a local
// terrain point. u and v are clamped to [0,1] first.
func (f *Field) LocalFromUV(u, v float64) Point {
	u = clamp(u, 0, 1)
	v = clamp(v, 0, 1)
	return f.PixelToLocal(orb.Point{u * float64(f.width), v * float64(f.height)})
}

// Drape lifts a local plane position onto the terrain surface.
func (f *Field) Drape(p orb.Point) Point {
	return Point{X: p[0], Y: p[1], Z: f.HeightAtLocal(p[0], p[1])}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
