// Package session drives one drawing interaction from anchor to committed
// destination.
//
// A Session ties a pathtrace.Drawer (which path variant is drawn), the
// pathtrace.Tracer behind it and a destination.Graph together:
//
//	Register  → fixed handles such as level start/end become destinations
//	Begin     → the drawer starts at a destination's anchor
//	Move      → live preview toward the cursor, once per frame
//	Commit    → the path's end becomes a new destination linked to the origin
//	Connect   → the path ends on an existing destination instead
//	Cancel    → the path is dropped
//
// Each committed link is weighted by the 3D length of its path, so graph
// distances are walking distances over the terrain.
//
// Deciding which destination the user grabbed, and when a cursor is close
// enough to snap onto one, stays with the caller.
package session
