package session

import (
	"fmt"
	"sync"

	"github.com/paulmach/orb"

	"github.com/katalvlaran/terrapath/destination"
	"github.com/katalvlaran/terrapath/elevation"
	"github.com/katalvlaran/terrapath/pathtrace"
)

// Session is the drawing state of one player over one terrain.
type Session struct {
	mu      sync.Mutex
	tracer  *pathtrace.Tracer
	graph   *destination.Graph
	drawer  pathtrace.Drawer
	options Options

	anchors map[destination.ID]elevation.Point
	paths   []Committed

	origin  destination.ID
	drawing bool
}

// New returns a Session drawing with drawer over tracer's terrain and
// recording destinations in graph.
// Returns ErrNilDependency if any of them is nil.
func New(tracer *pathtrace.Tracer, graph *destination.Graph, drawer pathtrace.Drawer, opts ...Option) (*Session, error) {
	if tracer == nil || graph == nil || drawer == nil {
		return nil, ErrNilDependency
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Session{
		tracer:  tracer,
		graph:   graph,
		drawer:  drawer,
		options: cfg,
		anchors: make(map[destination.ID]elevation.Point),
	}, nil
}

// Register creates a destination anchored on the terrain at local position at.
// Level start and end markers are registered this way before drawing begins.
func (s *Session) Register(name string, optional bool, at orb.Point) (destination.ID, error) {
	if !elevation.InDomain(at) {
		return 0, fmt.Errorf("%w: %v", ErrOutOfDomain, at)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.graph.CreateDestination(name, optional)
	s.anchors[id] = s.tracer.Field().Drape(at)
	s.options.Logger.Debug("handle registered", "id", int(id), "name", name)

	return id, nil
}

// Anchor returns the terrain point a destination sits on.
func (s *Session) Anchor(id destination.ID) (elevation.Point, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.anchors[id]
	return p, ok
}

// Begin starts a new path at origin's anchor, abandoning any path in progress.
func (s *Session) Begin(origin destination.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	anchor, ok := s.anchors[origin]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownDestination, origin)
	}
	s.drawer.Reset()
	if !s.drawer.Start(anchor.XY()) {
		s.drawing = false
		return fmt.Errorf("%w: anchor of %d", ErrOutOfDomain, origin)
	}
	s.origin, s.drawing = origin, true

	return nil
}

// SetDrawer switches the path variant. Any path in progress is dropped.
// A nil drawer is ignored.
func (s *Session) SetDrawer(d pathtrace.Drawer) {
	if d == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.drawer.Reset()
	s.drawer, s.drawing = d, false
}

// Drawing reports whether a path is in progress.
func (s *Session) Drawing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.drawing
}

// Move updates the live path toward cursor and returns it for display.
// It returns nil when no path is in progress.
func (s *Session) Move(cursor orb.Point) []elevation.Point {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.drawing {
		return nil
	}
	return s.drawer.Update(cursor)
}

// Cancel drops the path in progress.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.drawer.Reset()
	s.drawing = false
}

// Commit ends the path at at and turns its last point into a new destination
// linked to the origin.
//
// Returns ErrNotDrawing when idle and ErrEmptyPath when the final path has no
// length; in both cases the graph is unchanged and the path is dropped.
func (s *Session) Commit(name string, optional bool, at orb.Point) (destination.ID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	points, length, err := s.finish(at)
	if err != nil {
		return 0, err
	}

	// 1) The new destination sits where the path actually ended.
	id := s.graph.CreateDestination(name, optional)
	s.anchors[id] = points[len(points)-1]

	// 2) Link it to the origin, weighted by walking distance.
	if err = s.graph.AddLink(s.origin, id, length); err != nil {
		return 0, err
	}
	s.record(id, points, length)

	return id, nil
}

// Connect ends the path on target's anchor and links origin and target.
// It returns the length of the committed link.
func (s *Session) Connect(target destination.ID) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	anchor, ok := s.anchors[target]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownDestination, target)
	}
	points, length, err := s.finish(anchor.XY())
	if err != nil {
		return 0, err
	}
	if err = s.graph.AddLink(s.origin, target, length); err != nil {
		return 0, err
	}
	s.record(target, points, length)

	return length, nil
}

// Paths returns the committed paths in commit order.
func (s *Session) Paths() []Committed {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Committed, len(s.paths))
	copy(out, s.paths)
	return out
}

// finish ends the drawer and validates the final path. Caller holds s.mu.
func (s *Session) finish(at orb.Point) ([]elevation.Point, float64, error) {
	if !s.drawing {
		return nil, 0, ErrNotDrawing
	}
	s.drawing = false

	points := s.drawer.End(at)
	length := pathtrace.Length(points)
	if len(points) < 2 || length == 0 {
		s.options.Logger.Debug("empty path dropped", "origin", int(s.origin), "points", len(points))
		return nil, 0, ErrEmptyPath
	}

	return points, length, nil
}

// record keeps a copy of a committed path. Caller holds s.mu.
func (s *Session) record(to destination.ID, points []elevation.Point, length float64) {
	kept := make([]elevation.Point, len(points))
	copy(kept, points)
	s.paths = append(s.paths, Committed{From: s.origin, To: to, Points: kept, Length: length})

	s.options.Logger.Info("path committed",
		"from", int(s.origin),
		"to", int(to),
		"points", len(points),
		"length", length,
	)
}
