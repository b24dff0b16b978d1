package pathtrace

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/katalvlaran/terrapath/elevation"
)

// Length returns the 3D length of the polyline, the traversal length a
// committed path registers in the destination graph.
func Length(points []elevation.Point) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += points[i-1].Distance(points[i])
	}
	return total
}

// PlanarLength returns the length of the polyline projected onto the plane.
func PlanarLength(points []elevation.Point) float64 {
	ls := make(orb.LineString, len(points))
	for i, p := range points {
		ls[i] = p.XY()
	}
	return planar.Length(ls)
}

// MaxGrade returns the steepest |Δz| / planar distance over all segments.
// Segments without planar extent are skipped.
func MaxGrade(points []elevation.Point) float64 {
	var grade float64
	for i := 1; i < len(points); i++ {
		d := points[i-1].PlanarDistance(points[i])
		if d == 0 {
			continue
		}
		grade = math.Max(grade, math.Abs(points[i].Z-points[i-1].Z)/d)
	}
	return grade
}
