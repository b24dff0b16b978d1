// Package destination tracks the endpoints of committed paths and the links
// between them.
//
// What:
//
//	A Graph holds destinations (named path endpoints) and undirected links
//	weighted by the length of the path that joined them. Every destination
//	carries a region id; two destinations are traversable from one another
//	exactly when they share a region.
//
// Why:
//
//   - Level logic asks "can I walk from A to B?" far more often than "how far".
//     Region ids answer the first question in O(1).
//   - Distances and routes come from Dijkstra over the link list when needed.
//   - Connectivity checks distinguish required destinations from optional
//     ones, so a level can be complete while optional spurs stay unlinked.
//
// Region merge:
//
//	CreateDestination hands out a fresh region per destination. AddLink
//	between two regions reassigns every destination of the larger-numbered
//	region to the smaller-numbered one. This is a linear scan per merge, not a
//	union-find; destination counts stay small.
//
// Complexity:
//
//   - CreateDestination, IsTraversable: O(1)
//   - AddLink: O(n) on merge, O(1) otherwise
//   - FindTraverseLength, FindTraverseNodes: O((V + E) log V)
//   - Are*Connected: O(n)
//
// Errors:
//
//   - ErrDestinationNotFound if an id was never created.
//   - ErrBadLength if a link length is negative, NaN or infinite.
//   - ErrNoPath if the endpoints are in different regions, or if the link
//     data disagrees with the region bookkeeping.
//
// Concurrency:
//
//	A Graph is safe for concurrent use. Queries take a read lock and never
//	mutate state.
package destination
