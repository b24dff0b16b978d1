package elevation

import (
	"fmt"
	"math"
)

// NewField constructs a Field from a non-empty, rectangular 2D slice where
// samples[y][x] is the normalized height of pixel (x,y).
// It deep-copies the input to ensure immutability.
// Returns ErrEmptyGrid if the grid has no rows or no columns,
// ErrNonRectangular if any row length differs, ErrSampleRange if any sample
// lies outside [0,1], and ErrOptionViolation for invalid options.
// Complexity: O(W×H) time and memory.
func NewField(samples [][]float64, opts ...Option) (*Field, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}

	if len(samples) == 0 || len(samples[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(samples), len(samples[0])
	for _, row := range samples {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}

	// Deep copy into a flat row-major buffer.
	flat := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := samples[y][x]
			if math.IsNaN(v) || v < 0 || v > 1 {
				return nil, fmt.Errorf("%w: sample (%d,%d)=%v", ErrSampleRange, x, y, v)
			}
			flat[y*w+x] = v
		}
	}

	return &Field{
		width:    w,
		height:   h,
		samples:  flat,
		scale:    cfg.VerticalScale,
		bitDepth: cfg.BitDepth,
		eps:      cfg.GradientEpsilon,
	}, nil
}

// Width returns the number of pixel columns.
func (f *Field) Width() int { return f.width }

// Height returns the number of pixel rows.
func (f *Field) Height() int { return f.height }

// VerticalScale returns the normalized-to-world height factor.
func (f *Field) VerticalScale() float64 { return f.scale }

// BitDepth returns the raw source precision (8 or 16).
func (f *Field) BitDepth() int { return f.bitDepth }

// GradientEpsilon returns the pixel offset used for central differences.
func (f *Field) GradientEpsilon() float64 { return f.eps }

// InBounds reports whether pixel (x,y) lies within the grid.
func (f *Field) InBounds(x, y int) bool {
	return x >= 0 && x < f.width && y >= 0 && y < f.height
}

// Raw returns the normalized sample of pixel (x,y), or 0 outside the grid.
func (f *Field) Raw(x, y int) float64 {
	if !f.InBounds(x, y) {
		return 0
	}
	return f.samples[y*f.width+x]
}

// Sample returns the bilinear-interpolated normalized height at fractional
// pixel coordinates (x,y). The far neighbours are clamped to the last
// column/row; any remaining out-of-grid read contributes 0.
// At integer coordinates the raw sample is returned exactly.
// Complexity: O(1).
func (f *Field) Sample(x, y float64) float64 {
	if math.IsNaN(x) || math.IsNaN(y) {
		return 0
	}
	fx, fy := math.Floor(x), math.Floor(y)
	x0, y0 := int(fx), int(fy)
	x1 := min(x0+1, f.width-1)
	y1 := min(y0+1, f.height-1)
	sx, sy := x-fx, y-fy

	h00 := f.Raw(x0, y0)
	h10 := f.Raw(x1, y0)
	h01 := f.Raw(x0, y1)
	h11 := f.Raw(x1, y1)

	h0 := lerp(h00, h10, sx)
	h1 := lerp(h01, h11, sx)

	return lerp(h0, h1, sy)
}

// HeightAtLocal returns the world-unit height at local plane coordinates.
// Inputs outside [-0.5,0.5]² yield 0; the input itself is never clamped.
// Complexity: O(1).
func (f *Field) HeightAtLocal(x, y float64) float64 {
	if math.Abs(x) > 0.5 || math.Abs(y) > 0.5 || math.IsNaN(x) || math.IsNaN(y) {
		return 0
	}
	px, py := f.localToPixel(x, y)
	return f.Sample(px, py) * f.scale
}

// lerp mixes a and b by t, returning a exactly when t == 0.
func lerp(a, b, t float64) float64 {
	if t == 0 {
		return a
	}
	return a + (b-a)*t
}
