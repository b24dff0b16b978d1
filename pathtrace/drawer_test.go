package pathtrace_test

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/terrapath/pathtrace"
)

func TestDrawer_Lifecycle(t *testing.T) {
	tr, _ := newTracer(t, flatField(t, 32))
	drawers := map[string]pathtrace.Drawer{
		"Straight":      pathtrace.NewStraightDrawer(tr),
		"ConstantSlope": pathtrace.NewConstantSlopeDrawer(tr, 0, 0),
		"AutoSlope":     pathtrace.NewAutoSlopeDrawer(tr, 0.5, pathtrace.DefaultStep),
		"Rail":          pathtrace.NewRailDrawer(tr, 0, 1),
	}

	for name, d := range drawers {
		t.Run(name, func(t *testing.T) {
			// 1) Idle drawers ignore the cursor.
			assert.False(t, d.Drawing())
			assert.Nil(t, d.Update(orb.Point{0.1, 0.1}))
			assert.Nil(t, d.End(orb.Point{0.1, 0.1}))

			// 2) Out-of-domain anchors are rejected.
			assert.False(t, d.Start(orb.Point{0.7, 0}))
			assert.False(t, d.Drawing())

			// 3) A live path follows the cursor and survives leaving the plane.
			require.True(t, d.Start(orb.Point{-0.1, 0}))
			assert.True(t, d.Drawing())
			assert.Equal(t, orb.Point{-0.1, 0}, d.Origin().XY())

			live := d.Update(orb.Point{0, 0.1})
			require.NotEmpty(t, live)
			assert.Equal(t, live, d.Update(orb.Point{2, 2}))

			// 4) End commits and goes idle.
			final := d.End(orb.Point{0, 0.1})
			assert.NotEmpty(t, final)
			assert.False(t, d.Drawing())

			require.True(t, d.Start(orb.Point{0, 0}))
			d.Reset()
			assert.False(t, d.Drawing())
			assert.Nil(t, d.Update(orb.Point{0.1, 0}))
		})
	}
}

func TestConstantSlopeDrawer_ReusesCache(t *testing.T) {
	tr, counts := newTracer(t, flatField(t, 32))
	d := pathtrace.NewConstantSlopeDrawer(tr, 0, pathtrace.DefaultStep)
	assert.Equal(t, pathtrace.DefaultStep, d.Step)

	require.True(t, d.Start(orb.Point{-0.2, 0}))
	d.Update(orb.Point{0.2, 0})
	d.Update(orb.Point{0.2, 0.01})
	assert.Equal(t, 1, counts[pathtrace.ModeConstantSlope])

	// A new session starts from an empty cache.
	require.True(t, d.Start(orb.Point{-0.2, 0}))
	assert.Nil(t, tr.CachedPath())
	d.Update(orb.Point{0.2, 0})
	assert.Equal(t, 2, counts[pathtrace.ModeConstantSlope])
}

func TestRailDrawer_Slope(t *testing.T) {
	f := rampField(t, 64, 1)
	tr, counts := newTracer(t, f)

	d := pathtrace.NewRailDrawer(tr, 0.5, -0.2)
	assert.Equal(t, 0.2, d.Slope(), "initial slope is clamped")
	d.SetSlope(-5)
	assert.Equal(t, -0.2, d.Slope())
	d.AdjustSlope(0.2)
	assert.Zero(t, d.Slope())

	require.True(t, d.Start(orb.Point{0, 0}))
	d.Update(orb.Point{0, 0.2})
	d.Update(orb.Point{0, 0.3})
	assert.Equal(t, 1, counts[pathtrace.ModeRail])

	// Changing the grade rebuilds the rail once.
	d.SetSlope(0.1)
	d.Update(orb.Point{0, 0.3})
	d.Update(orb.Point{0, 0.3})
	assert.Equal(t, 2, counts[pathtrace.ModeRail])

	// Setting the same grade is not a change.
	d.SetSlope(0.1)
	d.Update(orb.Point{0, 0.3})
	assert.Equal(t, 2, counts[pathtrace.ModeRail])
}
