package pathtrace_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/terrapath/elevation"
	"github.com/katalvlaran/terrapath/pathtrace"
)

// gridOf builds an n×n grid from a height function of pixel coordinates.
func gridOf(n int, height func(x, y int) float64) [][]float64 {
	grid := make([][]float64, n)
	for y := range grid {
		grid[y] = make([]float64, n)
		for x := range grid[y] {
			grid[y][x] = height(x, y)
		}
	}
	return grid
}

// flatField returns an n×n field at height 0.
func flatField(t *testing.T, n int) *elevation.Field {
	t.Helper()
	f, err := elevation.NewField(gridOf(n, func(int, int) float64 { return 0 }))
	require.NoError(t, err)
	return f
}

// rampField returns an n×n field rising linearly along x from 0 to scale.
func rampField(t *testing.T, n int, scale float64) *elevation.Field {
	t.Helper()
	f, err := elevation.NewField(
		gridOf(n, func(x, _ int) float64 { return float64(x) / float64(n-1) }),
		elevation.WithVerticalScale(scale),
	)
	require.NoError(t, err)
	return f
}

// tentField returns an n×n field with a ridge along the column x = peak.
func tentField(t *testing.T, n, peak int) *elevation.Field {
	t.Helper()
	f, err := elevation.NewField(gridOf(n, func(x, _ int) float64 {
		return 1 - math.Abs(float64(x-peak))/float64(peak)
	}))
	require.NoError(t, err)
	return f
}

// valleyField returns an n×n V-shaped valley, floor along the column x = n/2,
// rising linearly to 1 at x = 0.
func valleyField(t *testing.T, n int) *elevation.Field {
	t.Helper()
	half := float64(n / 2)
	f, err := elevation.NewField(gridOf(n, func(x, _ int) float64 {
		return math.Abs(float64(x)-half) / half
	}))
	require.NoError(t, err)
	return f
}

// newTracer builds a tracer and counts recomputations per mode.
func newTracer(t *testing.T, f *elevation.Field, opts ...pathtrace.Option) (*pathtrace.Tracer, map[pathtrace.Mode]int) {
	t.Helper()
	counts := make(map[pathtrace.Mode]int)
	opts = append(opts, pathtrace.WithOnRecompute(func(m pathtrace.Mode) { counts[m]++ }))
	tr, err := pathtrace.New(f, opts...)
	require.NoError(t, err)
	return tr, counts
}

// distanceToLine is the perpendicular distance from p to the line through a and b.
func distanceToLine(p, a, b elevation.Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	return math.Abs(dy*(p.X-a.X)-dx*(p.Y-a.Y)) / math.Hypot(dx, dy)
}
