// Package pathtrace synthesizes traversable paths across an elevation.Field
// under slope constraints.
//
// Overview:
//
//   - ConstantSlope walks from a start point toward a goal in fixed planar
//     steps, gaining or losing height at a requested rate. Every proposed
//     step is corrected by a bounded Newton-style search along the local
//     gradient until its sampled height matches the target elevation.
//   - AutoSlope runs the same machinery with the straightest grade that
//     reaches the goal height, clamped to a maximum.
//   - Bidirectional traces a "rail": a constant-grade contour line running
//     both ways from an anchor. ActiveSegment cuts the live sub-range between
//     the anchor and a moving cursor out of the cached rail.
//   - Straight drapes a straight segment over the terrain.
//
// Stepping algorithm (ConstantSlope / AutoSlope), per step:
//
//  1. direction = normalize(goal − previous), zero length ⇒ stop.
//  2. target elevation = previous.Z + step·slope.
//  3. proposal = previous + step·direction.
//  4. slope-following search: up to 8 iterations, each correction capped at
//     0.05 local units, done once |height − target| < 0.001, and skipped on
//     flat terrain (the proposal is accepted as-is).
//  5. termination, in priority: stuck (moved < step/2), diverging
//     (remaining > best + 20·step), arrived (remaining < step); hard cap of
//     2000 steps regardless.
//
// After the loop the path is truncated at its closest approach to the goal
// and smoothed once with a 3-point moving average (endpoints untouched).
// The search is approximate by construction: convergence is not guaranteed
// and whatever the iteration caps leave is accepted.
//
// Caching:
//
//   - ConstantSlope and AutoSlope share one slot keyed by CacheKey. A request
//     whose key matches the slot (start ≤ 0.001, end ≤ 0.05, slope and step
//     ≤ 0.001, same Mode) returns the cached *Path itself.
//   - The rail has its own coarser cache, rebuilt only on ClearCache, an
//     explicit force, or an anchor move beyond 0.001.
//
// Failure handling:
//
//	Nothing in this package returns an error at trace time. Out-of-domain
//	inputs yield empty paths, degenerate inputs zero-length paths, and the
//	step cap a truncated path; Path.Termination records which happened.
//
// Thread safety:
//
//	A Tracer serializes its calls with a mutex: every trace is one
//	read-modify-write of the cache slot. Returned paths are shared with the
//	cache and must be treated as read-only.
package pathtrace
