package tour

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/config"
	"github.com/Carmen-Shannon/oxy-tour/engine/material"
	"github.com/Carmen-Shannon/oxy-tour/engine/viewpoint"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func materials(n int) []material.Material {
	mats := make([]material.Material, n)
	for i := range mats {
		mats[i] = material.NewMaterial()
	}
	return mats
}

func TestLobbyScenario(t *testing.T) {
	tr := NewTour()
	table := viewpoint.DefaultTable()

	now := 0.0
	for _, section := range []int{0, 1, 2} {
		tr.SetSection(section)
		start := tr.Tick(now)
		require.True(t, start.Transitioning, "section %d", section)

		// lobby position and look-at moves both take 4000 ms
		now += 4000
		f := tr.Tick(now)
		vp := table.Lookup(viewpoint.SceneLobby, section)
		assert.False(t, f.Transitioning)
		assert.Equal(t, section, f.Section)
		assert.Equal(t, vp.Position, f.Position, "section %d", section)
		assert.Equal(t, vp.LookAt, f.LookAt, "section %d", section)
		assert.InDelta(t, common.Yaw(vp.Position, vp.LookAt), common.Yaw(f.Position, f.LookAt), 1e-5)

		now += 1000
	}
}

func TestFirstTickMovesToOpeningViewpoint(t *testing.T) {
	tr := NewTour(WithScene(viewpoint.SceneSiteB))
	f := tr.Tick(0)
	assert.True(t, f.Transitioning)
	assert.Equal(t, mgl32.Vec3{0, 2, 8}, f.Position)
	assert.Equal(t, viewpoint.SceneSiteB, f.Scene)

	// sites turn in 1500 ms
	f = tr.Tick(1500)
	assert.False(t, f.Transitioning)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, f.LookAt)
}

func TestRepeatedSectionDoesNotRestart(t *testing.T) {
	tr := NewTour()
	tr.Tick(0)
	tr.Tick(4000)

	tr.SetSection(1)
	tr.Tick(5000)
	before := tr.Rig().Transition()
	require.True(t, before.InProgress)

	tr.SetSection(1)
	f := tr.Tick(6000)
	after := tr.Rig().Transition()
	assert.Equal(t, before.StartMs, after.StartMs)
	assert.Equal(t, before.StartLookAt, after.StartLookAt)
	assert.True(t, f.Transitioning)
}

func TestSectionOutOfRangeClamps(t *testing.T) {
	tr := NewTour()
	tr.SetSection(3)
	assert.Equal(t, 3, tr.Section())
	tr.SetSection(7)
	assert.Equal(t, 0, tr.Section())
	tr.SetSection(-2)
	assert.Equal(t, 0, tr.Section())

	// the last declared lobby section has no viewpoint of its own
	tr.SetSection(6)
	tr.Tick(0)
	f := tr.Tick(4000)
	assert.Equal(t, viewpoint.DefaultTable().Lookup(viewpoint.SceneLobby, 0).Position, f.Position)
}

func TestSceneChangeResetsSectionAndReveal(t *testing.T) {
	tr := NewTour(WithScene(viewpoint.SceneSiteA))
	tr.RegisterMaterials(materials(2)...)
	tr.SetRevealRequested(true)
	f := tr.Tick(0)
	require.True(t, f.Reveal)

	tr.SetScene(viewpoint.SceneSiteB)
	assert.Equal(t, 0, tr.Section())
	f = tr.Tick(100)
	assert.False(t, f.Reveal)
	assert.Nil(t, f.ClipPlane)
	assert.Empty(t, f.Overlays)
	for _, c := range f.MaterialClips {
		assert.Empty(t, c.Planes)
	}
	assert.Equal(t, viewpoint.SceneSiteB, f.Scene)

	// returning to site A does not re-enable reveal on its own
	tr.SetScene(viewpoint.SceneSiteA)
	f = tr.Tick(200)
	assert.False(t, f.Reveal)
}

func TestRevealRequestedOffPrecondition(t *testing.T) {
	tr := NewTour()
	tr.RegisterMaterials(materials(3)...)
	tr.SetRevealRequested(true)

	f := tr.Tick(0)
	assert.False(t, f.Reveal)
	require.Len(t, f.MaterialClips, 3)
	for _, c := range f.MaterialClips {
		assert.Empty(t, c.Planes)
	}
}

func TestRevealLifecycle(t *testing.T) {
	tr := NewTour(WithScene(viewpoint.SceneSiteA))
	tr.RegisterMaterials(materials(3)...)
	tr.Tick(0)
	tr.Tick(4000)

	anchor := viewpoint.DefaultTable().Lookup(viewpoint.SceneSiteA, 0).LookAt
	tr.SetRevealRequested(true)
	f := tr.Tick(5000)
	require.True(t, f.Reveal)
	require.NotNil(t, f.ClipPlane)
	assert.Equal(t, anchor, f.ClipPlane.CoplanarPoint())
	for _, c := range f.MaterialClips {
		require.Len(t, c.Planes, 1)
		assert.Equal(t, anchor, c.Planes[0].CoplanarPoint())
	}
	assert.Len(t, f.Overlays, 2)

	// the vantage is reached in 2000 ms and the aim holds on the anchor
	tr.SetPointer(0.5, 0.5)
	f = tr.Tick(7000)
	assert.Equal(t, anchor.Add(mgl32.Vec3{15, 0, 0}), f.Position)
	assert.Equal(t, anchor, f.LookAt)
	f = tr.Tick(7100)
	assert.Equal(t, anchor, f.LookAt)

	// toggling off hands the camera back to the section viewpoint
	tr.SetRevealRequested(false)
	f = tr.Tick(8000)
	assert.False(t, f.Reveal)
	assert.True(t, f.Transitioning)
	assert.False(t, tr.Rig().Overridden())
	for _, c := range f.MaterialClips {
		assert.Empty(t, c.Planes)
	}
	f = tr.Tick(12000)
	assert.Equal(t, viewpoint.DefaultTable().Lookup(viewpoint.SceneSiteA, 0).Position, f.Position)
}

func TestRevealForceDeactivatedBySectionChange(t *testing.T) {
	tr := NewTour(WithScene(viewpoint.SceneSiteA))
	tr.RegisterMaterials(materials(1)...)
	tr.SetRevealRequested(true)
	require.True(t, tr.Tick(0).Reveal)

	tr.SetSection(2)
	f := tr.Tick(500)
	assert.False(t, f.Reveal)
	assert.Empty(t, f.MaterialClips[0].Planes)
	assert.Equal(t, viewpoint.DefaultTable().Lookup(viewpoint.SceneSiteA, 2).LookAt, tr.Rig().Transition().EndLookAt)

	// moving back to the qualifying section with the toggle still on re-enters reveal
	tr.SetSection(0)
	f = tr.Tick(1000)
	assert.True(t, f.Reveal)
}

func TestRevealBeforeMaterialsLoad(t *testing.T) {
	tr := NewTour(WithScene(viewpoint.SceneSiteA))
	tr.SetRevealRequested(true)
	f := tr.Tick(0)
	require.True(t, f.Reveal)
	assert.Empty(t, f.MaterialClips)

	tr.RegisterMaterials(materials(2)...)
	f = tr.Tick(16)
	require.Len(t, f.MaterialClips, 2)
	for _, c := range f.MaterialClips {
		assert.Len(t, c.Planes, 1)
	}
}

func TestSharedRegistry(t *testing.T) {
	reg := material.NewRegistry()
	reg.Register(materials(3)...)

	tr := NewTour(WithRegistry(reg), WithScene(viewpoint.SceneSiteA))
	assert.Same(t, reg, tr.Registry())

	tr.SetRevealRequested(true)
	f := tr.Tick(0)
	require.True(t, f.Reveal)
	assert.Len(t, f.MaterialClips, 3)
	assert.NotNil(t, reg.ClipPlane())
}

func assertVecNear(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-4, "component %d of %v vs %v", i, got, want)
	}
}

// settledSiteA returns a tour resting on the first site-A viewpoint at 4000 ms.
func settledSiteA(t *testing.T) *Tour {
	t.Helper()
	tr := NewTour(WithScene(viewpoint.SceneSiteA))
	tr.RegisterMaterials(materials(2)...)
	tr.Tick(0)
	require.False(t, tr.Tick(4000).Transitioning)
	return tr
}

func TestReloadedTimingsApplyToNextMove(t *testing.T) {
	tr := settledSiteA(t)

	cfg := config.Default()
	cfg.Timing.PositionMs = 1000
	cfg.Timing.SiteLookAtMs = 500
	tr.SetConfig(cfg)

	tr.SetSection(1)
	f := tr.Tick(5000)
	require.True(t, f.Transitioning)
	assert.Equal(t, 500.0, tr.Rig().Transition().DurationMs)

	f = tr.Tick(6000)
	assert.False(t, f.Transitioning)
	assertVecNear(t, viewpoint.DefaultTable().Lookup(viewpoint.SceneSiteA, 1).Position, f.Position)
}

func TestReloadedRevealOffset(t *testing.T) {
	tr := NewTour(WithScene(viewpoint.SceneSiteA))
	cfg := config.Default()
	cfg.Reveal.Offset = 40
	tr.SetConfig(cfg)

	tr.SetRevealRequested(true)
	require.True(t, tr.Tick(0).Reveal)
	f := tr.Tick(2000)

	anchor := viewpoint.DefaultTable().Lookup(viewpoint.SceneSiteA, 0).LookAt
	assertVecNear(t, anchor.Add(mgl32.Vec3{40, 0, 0}), f.Position)
	assert.Equal(t, anchor.Add(mgl32.Vec3{40, 0, 0}), tr.Overlay().Vantage().Position)
}

func TestReloadedViewpointsKeepRevealPlanesTogether(t *testing.T) {
	tr := settledSiteA(t)
	tr.SetRevealRequested(true)
	require.True(t, tr.Tick(5000).Reveal)
	old := viewpoint.DefaultTable().Lookup(viewpoint.SceneSiteA, 0).LookAt

	cfg := config.Default()
	cfg.Viewpoints = map[string][]config.ViewpointSpec{
		"redoubt-4": {{Position: [3]float32{150, 50, 100}, LookAt: [3]float32{30, 0, 100}}},
	}
	tr.SetConfig(cfg)

	onePoint := func(f Frame, want mgl32.Vec3) {
		t.Helper()
		require.True(t, f.Reveal)
		require.NotNil(t, f.ClipPlane)
		require.Len(t, f.Overlays, 2)
		assert.Equal(t, want, f.ClipPlane.CoplanarPoint())
		assert.Equal(t, want.Add(mgl32.Vec3{-1, 0, 0}), f.Overlays[0].Position)
		assert.Equal(t, want.Add(mgl32.Vec3{-0.5, -5, 0}), f.Overlays[1].Position)
		for _, c := range f.MaterialClips {
			require.Len(t, c.Planes, 1)
			assert.Equal(t, want, c.Planes[0].CoplanarPoint())
		}
	}

	// the active reveal stays on the anchor it was entered with
	onePoint(tr.Tick(5100), old)

	// re-entering picks up the reloaded look-at point
	tr.SetRevealRequested(false)
	tr.Tick(5200)
	tr.SetRevealRequested(true)
	onePoint(tr.Tick(5300), mgl32.Vec3{30, 0, 100})
}

func TestInvalidReloadKeepsPreviousConfig(t *testing.T) {
	tests := []struct {
		name       string
		viewpoints map[string][]config.ViewpointSpec
	}{
		{
			name: "position equals look-at",
			viewpoints: map[string][]config.ViewpointSpec{
				"redoubt-4": {{Position: [3]float32{1, 1, 1}, LookAt: [3]float32{1, 1, 1}}},
			},
		},
		{
			name: "empty scene",
			viewpoints: map[string][]config.ViewpointSpec{
				"redoubt-4": {},
			},
		},
		{
			name: "unknown scene",
			viewpoints: map[string][]config.ViewpointSpec{
				"redoubt-9": {{Position: [3]float32{0, 2, 8}, LookAt: [3]float32{0, 0, 0}}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := settledSiteA(t)
			cfg := config.Default()
			cfg.Timing.SiteLookAtMs = 100
			cfg.Reveal.Offset = 40
			cfg.Viewpoints = tt.viewpoints
			tr.SetConfig(cfg)

			table := viewpoint.DefaultTable()
			tr.SetSection(2)
			tr.Tick(5000)
			assert.Equal(t, 1500.0, tr.Rig().Transition().DurationMs)
			assert.Equal(t, table.Lookup(viewpoint.SceneSiteA, 2).LookAt, tr.Rig().Transition().EndLookAt)

			anchor := table.Lookup(viewpoint.SceneSiteA, 0).LookAt
			assert.Equal(t, anchor.Add(mgl32.Vec3{15, 0, 0}), tr.Overlay().Vantage().Position)
		})
	}
}
