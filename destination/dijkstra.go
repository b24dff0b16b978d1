package destination

import (
	"container/heap"
	"fmt"
	"math"
	"slices"
)

// FindTraverseLength returns the shortest cumulative link length from a to b.
//
// Returns ErrDestinationNotFound for unknown ids and ErrNoPath when a and b
// are in different regions or no chain of links joins them.
// Complexity: O((V + E) log V).
func (g *Graph) FindTraverseLength(a, b ID) (float64, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	r, err := g.search(a, b)
	if err != nil {
		return 0, err
	}
	return r.dist[b], nil
}

// FindTraverseNodes returns the destinations along a shortest path from a to
// b, both included, in traversal order. Equal-cost alternatives may be
// returned in any order of preference.
//
// Errors are as for FindTraverseLength.
func (g *Graph) FindTraverseNodes(a, b ID) ([]ID, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	r, err := g.search(a, b)
	if err != nil {
		return nil, err
	}

	// Walk predecessors back from b, then reverse into start→end order.
	nodes := []ID{b}
	for v := b; v != a; {
		v = r.prev[v]
		nodes = append(nodes, v)
	}
	slices.Reverse(nodes)

	return nodes, nil
}

// search validates a and b and runs Dijkstra from a until b is settled.
// Caller holds g.mu for reading.
func (g *Graph) search(a, b ID) (*runner, error) {
	// 1) Validate endpoints.
	if !g.has(a) {
		return nil, fmt.Errorf("%w: %d", ErrDestinationNotFound, a)
	}
	if !g.has(b) {
		return nil, fmt.Errorf("%w: %d", ErrDestinationNotFound, b)
	}

	// 2) Different regions never share a path.
	if g.destinations[a].Region != g.destinations[b].Region {
		return nil, fmt.Errorf("%w: %d and %d are in different regions", ErrNoPath, a, b)
	}

	// 3) Run and check that the link data agrees with the regions.
	r := newRunner(g, a)
	r.process(b)
	if math.IsInf(r.dist[b], 1) {
		return nil, fmt.Errorf("%w: %d and %d share a region but no links join them", ErrNoPath, a, b)
	}

	return r, nil
}

// runner holds the mutable state for a single Dijkstra execution.
type runner struct {
	g       *Graph
	dist    []float64 // ID → best distance from the source
	prev    []ID      // ID → predecessor on the shortest path
	visited []bool    // ID → distance finalized
	pq      nodePQ
}

// newRunner sets every distance to +∞ except source, and seeds the heap.
func newRunner(g *Graph, source ID) *runner {
	n := len(g.destinations)
	r := &runner{
		g:       g,
		dist:    make([]float64, n),
		prev:    make([]ID, n),
		visited: make([]bool, n),
		pq:      make(nodePQ, 0, n),
	}
	for i := range r.dist {
		r.dist[i] = math.Inf(1)
		r.prev[i] = -1
	}
	r.dist[source] = 0

	heap.Init(&r.pq)
	heap.Push(&r.pq, &nodeItem{id: source, dist: 0})

	return r
}

// process settles vertices in distance order and stops once target is final.
func (r *runner) process(target ID) {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		u := item.id

		// Skip stale entries left by lazy decrease-key.
		if r.visited[u] {
			continue
		}
		r.visited[u] = true
		if u == target {
			return
		}

		r.relax(u)
	}
}

// relax improves the distances of u's neighbours through u.
func (r *runner) relax(u ID) {
	for _, idx := range r.g.adjacency[u] {
		l := r.g.links[idx]
		v := l.B
		if v == u {
			v = l.A
		}
		if r.visited[v] {
			continue
		}

		newDist := r.dist[u] + l.Length
		if newDist >= r.dist[v] {
			continue
		}
		r.dist[v] = newDist
		r.prev[v] = u
		heap.Push(&r.pq, &nodeItem{id: v, dist: newDist})
	}
}

// nodeItem is a destination and its tentative distance from the source.
type nodeItem struct {
	id   ID
	dist float64
}

// nodePQ is a min-heap of *nodeItem ordered by dist.
type nodePQ []*nodeItem

// Len returns the number of queued items.
func (pq nodePQ) Len() int { return len(pq) }

// Less orders items by ascending tentative distance.
func (pq nodePQ) Less(i, j int) bool { return pq[i].dist < pq[j].dist }

// Swap exchanges two items in the heap.
func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push appends an item; heap.Push restores the order.
func (pq *nodePQ) Push(x any) { *pq = append(*pq, x.(*nodeItem)) }

// Pop removes the last item; heap.Pop has already moved the minimum there.
func (pq *nodePQ) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
