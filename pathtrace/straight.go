package pathtrace

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/katalvlaran/terrapath/elevation"
)

// Straight drapes the straight segment start→end over the terrain, with
// points no further apart than StraightStep. Both ends are included.
// Out-of-domain endpoints yield nil. Straight does not touch the cache.
func (t *Tracer) Straight(start, end orb.Point) []elevation.Point {
	if !elevation.InDomain(start) || !elevation.InDomain(end) {
		return nil
	}

	n := int(planar.Distance(start, end)/StraightStep) + 2
	out := make([]elevation.Point, n)
	out[0] = t.field.Drape(start)
	for i := 1; i < n-1; i++ {
		s := float64(i) / float64(n-1)
		out[i] = t.field.Drape(orb.Point{
			end[0]*s + start[0]*(1-s),
			end[1]*s + start[1]*(1-s),
		})
	}
	out[n-1] = t.field.Drape(end)

	return out
}
