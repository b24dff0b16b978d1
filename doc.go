// Package terrapath draws walkable paths over heightmap terrain and keeps
// track of how the places they join are connected.
//
// What is terrapath?
//
//	A small, synchronous engine for path-drawing games and tools:
//		• Elevation fields: bilinear height sampling and gradients over a grid
//		• Path tracing: constant-slope, auto-slope, straight and contour rails
//		• Destinations: a region-merging graph with Dijkstra queries
//		• Sessions: start, preview, commit and cancel one drawn path
//		• Assets: PNG/TIFF/BMP heightmaps and HCL terrain descriptors
//
// Why terrapath?
//
//   - Bounded work per frame: every trace is capped, and results are cached
//     so an idle cursor costs a lookup
//   - Failure is data: out-of-domain and degenerate requests yield empty or
//     truncated paths with a termination reason, never panics
//   - Hooks and loggers are injected through functional options
//
// Packages:
//
//	elevation/    Field, local/pixel/uv frames, sampling, gradients
//	pathtrace/    Tracer, path caches, rail index, Drawer variants
//	destination/  Graph, region merge, shortest traversals, connectivity
//	session/      drawing control flow over a Drawer and a Graph
//	heightmap/    image decoding into Fields
//	descriptor/   HCL terrain descriptors and tags
//
// Coordinates:
//
//	local  (x, y) ∈ [-0.5, 0.5]²   what callers pass around
//	pixel  (px, py) ∈ [0, W]×[0, H]  where samples live
//	uv     (u, v) ∈ [0, 1]²        where descriptor tags live
//
//	go get github.com/katalvlaran/terrapath
package terrapath
