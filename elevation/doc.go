// Package elevation treats a 2D grid of normalized height samples as a
// continuous terrain surface, enabling bilinear height lookups and gradient
// estimation for path synthesis.
//
// What:
//
//   - Field wraps a rectangular [][]float64 grid of samples in [0,1] and a
//     vertical scale converting normalized height to world units.
//   - Sample interpolates bilinearly at fractional pixel coordinates.
//   - HeightAtLocal maps the terrain's local plane [-0.5,0.5]² onto the grid.
//   - GradientAt / PixelGradient estimate slopes by central differences.
//   - LocalToPixel, PixelToLocal and LocalFromUV convert between frames.
//
// Why:
//
//   - Path tracers need a cheap, bounded height oracle: every lookup is
//     defined everywhere, out-of-grid pixel reads return 0, never panic.
//   - The same field is shared read-only by every tracer and drawer.
//
// Frames:
//
//	local  (x,y) ∈ [-0.5,0.5]²          terrain plane, what callers pass in
//	pixel  (px,py) ∈ [0,Width)×[0,Height) grid space, px = (x+0.5)·Width
//	uv     (u,v) ∈ [0,1]²                 texture space used by terrain tags
//
// Complexity:
//
//   - NewField: O(W×H) time and memory (deep copy).
//   - Sample, HeightAtLocal, GradientAt: O(1).
//
// Errors:
//
//   - ErrEmptyGrid: input grid has no rows or no columns.
//   - ErrNonRectangular: rows have differing lengths.
//   - ErrSampleRange: a sample lies outside [0,1] or is NaN.
//   - ErrOptionViolation: an Option received an invalid value.
//
// A Field is immutable once built and safe for concurrent readers.
package elevation
