package reveal

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/material"
	"github.com/Carmen-Shannon/oxy-tour/engine/viewpoint"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOverlay(n int) (*Overlay, []material.Material) {
	reg := material.NewRegistry()
	mats := make([]material.Material, n)
	for i := range mats {
		mats[i] = material.NewMaterial()
	}
	reg.Register(mats...)
	return NewOverlay(viewpoint.DefaultTable(), reg), mats
}

func TestRevealGatedOffPrecondition(t *testing.T) {
	for _, tc := range []struct {
		name    string
		scene   viewpoint.SceneID
		section int
	}{
		{"lobby", viewpoint.SceneLobby, 0},
		{"site A later section", viewpoint.SceneSiteA, 1},
		{"site B", viewpoint.SceneSiteB, 0},
		{"site C", viewpoint.SceneSiteC, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			o, mats := newTestOverlay(3)
			activated, _ := o.Update(true, tc.scene, tc.section)
			assert.False(t, activated)
			assert.False(t, o.Active())
			assert.Nil(t, o.State().ClipPlane)
			assert.Nil(t, o.Planes())
			for _, m := range mats {
				assert.Empty(t, m.ClipPlanes())
			}
		})
	}
}

func TestRevealInstallsOnePlanePerMaterial(t *testing.T) {
	o, mats := newTestOverlay(4)
	activated, deactivated := o.Update(true, viewpoint.SceneSiteA, 0)
	require.True(t, activated)
	assert.False(t, deactivated)

	anchor := viewpoint.DefaultTable().Lookup(viewpoint.SceneSiteA, 0).LookAt
	state := o.State()
	require.True(t, state.Active)
	require.NotNil(t, state.ClipPlane)
	assert.Equal(t, mgl32.Vec3{-1, 0, 0}, state.ClipPlane.Normal)
	assert.InDelta(t, 0, state.ClipPlane.DistanceToPoint(anchor), 1e-4)

	for _, m := range mats {
		planes := m.ClipPlanes()
		require.Len(t, planes, 1)
		assert.Equal(t, *state.ClipPlane, planes[0])
		assert.InDelta(t, 0, planes[0].DistanceToPoint(anchor), 1e-4)
	}

	// repeating the request is a no-op
	activated, _ = o.Update(true, viewpoint.SceneSiteA, 0)
	assert.False(t, activated)
	assert.Len(t, mats[0].ClipPlanes(), 1)
}

func TestRevealCoplanarPointIsAnchor(t *testing.T) {
	o, _ := newTestOverlay(1)
	o.Update(true, viewpoint.SceneSiteA, 0)

	plane := o.State().ClipPlane
	require.NotNil(t, plane)
	assert.Equal(t, mgl32.Vec3{0, 0, 100}, plane.CoplanarPoint())
	assert.Equal(t, o.Anchor(), plane.CoplanarPoint())
}

func TestRevealForceDeactivates(t *testing.T) {
	o, mats := newTestOverlay(2)
	o.Update(true, viewpoint.SceneSiteA, 0)
	require.True(t, o.Active())

	// still requested, but the section moved on
	_, deactivated := o.Update(true, viewpoint.SceneSiteA, 1)
	assert.True(t, deactivated)
	assert.False(t, o.Active())
	for _, m := range mats {
		assert.Empty(t, m.ClipPlanes())
	}
}

func TestRevealWithoutMaterials(t *testing.T) {
	o := NewOverlay(viewpoint.DefaultTable(), material.NewRegistry())
	activated, _ := o.Update(true, viewpoint.SceneSiteA, 0)
	assert.True(t, activated)
	assert.Len(t, o.Planes(), 2)
}

func TestRevealVantage(t *testing.T) {
	o, _ := newTestOverlay(0)
	v := o.Vantage()
	assert.Equal(t, mgl32.Vec3{0, 0, 100}, v.LookAt)
	assert.Equal(t, mgl32.Vec3{15, 0, 100}, v.Position)
	assert.True(t, o.State().ClipPlane == nil)
}

func TestOverlayPlanes(t *testing.T) {
	planes := OverlayPlanes(mgl32.Vec3{0, 0, 100})
	require.Len(t, planes, 2)

	soil, scan := planes[0], planes[1]
	assert.Equal(t, mgl32.Vec3{-1, 0, 100}, soil.Position)
	assert.Equal(t, float32(500), soil.Width)
	assert.Equal(t, float32(0.6), soil.Opacity)
	hex, err := common.ParseHexColor(SoilColor)
	require.NoError(t, err)
	for i := range hex {
		assert.InDelta(t, hex[i], soil.Color[i], 1e-6)
	}
	assert.Less(t, soil.RenderOrder, scan.RenderOrder)

	assert.Equal(t, mgl32.Vec3{-0.5, -5, 100}, scan.Position)
	assert.Equal(t, float32(15), scan.Width)
	assert.Equal(t, float32(10), scan.Height)
	assert.Equal(t, float32(0.95), scan.Opacity)
	assert.Equal(t, ScanTexture, scan.Texture)
}

func TestRevealCustomQualifier(t *testing.T) {
	table := viewpoint.DefaultTable()
	o := NewOverlay(table, material.NewRegistry(), WithQualifier(viewpoint.SceneSiteB, 2))

	assert.True(t, o.Qualifies(viewpoint.SceneSiteB, 2))
	assert.False(t, o.Qualifies(viewpoint.SceneSiteA, 0))
	assert.Equal(t, table.Lookup(viewpoint.SceneSiteB, 2).LookAt, o.Anchor())

	activated, _ := o.Update(true, viewpoint.SceneSiteA, 0)
	assert.False(t, activated)
	activated, _ = o.Update(true, viewpoint.SceneSiteB, 2)
	assert.True(t, activated)
}

func TestRevealTableSwapKeepsActiveAnchor(t *testing.T) {
	o, mats := newTestOverlay(2)
	o.Update(true, viewpoint.SceneSiteA, 0)
	old := mgl32.Vec3{0, 0, 100}

	moved := viewpoint.DefaultTable().With(viewpoint.SceneSiteA, []viewpoint.Viewpoint{
		{Position: mgl32.Vec3{150, 50, 100}, LookAt: mgl32.Vec3{30, 0, 100}},
	})
	o.SetTable(moved)
	o.SetOffset(40)

	assert.Equal(t, old, o.Anchor())
	assert.Equal(t, old, o.State().ClipPlane.CoplanarPoint())
	assert.Equal(t, old.Add(mgl32.Vec3{15, 0, 0}), o.Vantage().Position)
	assert.Equal(t, old.Add(mgl32.Vec3{-1, 0, 0}), o.Planes()[0].Position)
	for _, m := range mats {
		assert.Equal(t, old, m.ClipPlanes()[0].CoplanarPoint())
	}

	// the next activation picks up both the new table and the new offset
	o.Update(false, viewpoint.SceneSiteA, 0)
	o.Update(true, viewpoint.SceneSiteA, 0)
	next := mgl32.Vec3{30, 0, 100}
	assert.Equal(t, next, o.Anchor())
	assert.Equal(t, next.Add(mgl32.Vec3{40, 0, 0}), o.Vantage().Position)
	assert.Equal(t, next.Add(mgl32.Vec3{-1, 0, 0}), o.Planes()[0].Position)
	for _, m := range mats {
		assert.Equal(t, next, m.ClipPlanes()[0].CoplanarPoint())
	}
}
