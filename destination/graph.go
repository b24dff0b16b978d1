package destination

import (
	"fmt"
	"math"
	"sync"
)

// Graph is the destination graph: destinations, their links and the region
// bookkeeping that answers traversability.
type Graph struct {
	mu      sync.RWMutex
	options Options

	destinations []Destination // indexed by ID
	links        []Link
	adjacency    map[ID][]int // ID → indices into links
}

// NewGraph returns an empty graph.
func NewGraph(opts ...Option) *Graph {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Graph{
		options:   cfg,
		adjacency: make(map[ID][]int),
	}
}

// CreateDestination registers a destination in its own singleton region and
// returns its id.
func (g *Graph) CreateDestination(name string, optional bool) ID {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := ID(len(g.destinations))
	g.destinations = append(g.destinations, Destination{
		ID:       id,
		Name:     name,
		Region:   int(id),
		Optional: optional,
	})
	g.options.Logger.Debug("destination created", "id", int(id), "name", name, "optional", optional)

	return id
}

// AddLink appends an undirected link of the given length between a and b.
// If a and b lie in different regions, every destination of the larger region
// id is moved into the smaller one.
//
// Returns ErrDestinationNotFound for unknown ids and ErrBadLength for a
// length that is negative, NaN or infinite.
// Complexity: O(n) when regions merge, O(1) otherwise.
func (g *Graph) AddLink(a, b ID, length float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	// 1) Validate endpoints and weight.
	if !g.has(a) {
		return fmt.Errorf("%w: %d", ErrDestinationNotFound, a)
	}
	if !g.has(b) {
		return fmt.Errorf("%w: %d", ErrDestinationNotFound, b)
	}
	if length < 0 || math.IsNaN(length) || math.IsInf(length, 1) {
		return fmt.Errorf("%w: %d→%d length=%v", ErrBadLength, a, b, length)
	}

	// 2) Append to the edge list; both endpoints see the link.
	idx := len(g.links)
	g.links = append(g.links, Link{A: a, B: b, Length: length})
	g.adjacency[a] = append(g.adjacency[a], idx)
	if b != a {
		g.adjacency[b] = append(g.adjacency[b], idx)
	}

	// 3) Merge regions.
	ra, rb := g.destinations[a].Region, g.destinations[b].Region
	if ra == rb {
		return nil
	}
	from, into := max(ra, rb), min(ra, rb)
	for i := range g.destinations {
		if g.destinations[i].Region == from {
			g.destinations[i].Region = into
		}
	}
	g.options.Logger.Debug("regions merged", "from", from, "into", into, "link", idx)

	return nil
}

// IsTraversable reports whether both ids exist and share a region.
func (g *Graph) IsTraversable(a, b ID) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.has(a) && g.has(b) && g.destinations[a].Region == g.destinations[b].Region
}

// AreNecessaryDestinationsConnected reports whether every non-optional
// destination shares one region. It is true when there are none.
func (g *Graph) AreNecessaryDestinationsConnected() bool {
	return g.connected(func(d Destination) bool { return !d.Optional })
}

// AreAllDestinationsConnected reports whether every destination shares one
// region. It is true for an empty graph.
func (g *Graph) AreAllDestinationsConnected() bool {
	return g.connected(func(Destination) bool { return true })
}

func (g *Graph) connected(include func(Destination) bool) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	region, seen := 0, false
	for _, d := range g.destinations {
		if !include(d) {
			continue
		}
		if !seen {
			region, seen = d.Region, true
			continue
		}
		if d.Region != region {
			return false
		}
	}

	return true
}

// Destination returns the destination with the given id.
func (g *Graph) Destination(id ID) (Destination, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.has(id) {
		return Destination{}, false
	}
	return g.destinations[id], true
}

// Destinations returns a snapshot of all destinations in id order.
func (g *Graph) Destinations() []Destination {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Destination, len(g.destinations))
	copy(out, g.destinations)
	return out
}

// Links returns a snapshot of all links in insertion order.
func (g *Graph) Links() []Link {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Link, len(g.links))
	copy(out, g.links)
	return out
}

// Len returns the number of destinations.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.destinations)
}

// has reports whether id was created. Caller holds g.mu.
func (g *Graph) has(id ID) bool {
	return id >= 0 && int(id) < len(g.destinations)
}
