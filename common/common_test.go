package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#6B4423")
	require.NoError(t, err)
	assert.InDelta(t, 107.0/255, c[0], 1e-6)
	assert.InDelta(t, 68.0/255, c[1], 1e-6)
	assert.InDelta(t, 35.0/255, c[2], 1e-6)
	assert.Equal(t, float32(1), c[3])

	c, err = ParseHexColor("ffffff80")
	require.NoError(t, err)
	assert.InDelta(t, 128.0/255, c[3], 1e-6)

	for _, bad := range []string{"", "#fff", "#gg0000", "#1234567"} {
		_, err := ParseHexColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, 3, Coalesce(0, 3, 4))
	assert.Equal(t, "", Coalesce("", ""))
}

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{0, 0},
		{math32.Pi, math32.Pi},
		{-math32.Pi, math32.Pi},
		{3 * math32.Pi / 2, -math32.Pi / 2},
		{-6.0, -6.0 + 2*math32.Pi},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, WrapAngle(tt.in), 1e-5, "WrapAngle(%v)", tt.in)
	}
}

func TestPlane(t *testing.T) {
	p := NewPlaneFromNormalAndCoplanarPoint(mgl32.Vec3{-2, 0, 0}, mgl32.Vec3{15, 2, 100})

	assert.Equal(t, mgl32.Vec3{-1, 0, 0}, p.Normal)
	assert.InDelta(t, 0, p.DistanceToPoint(mgl32.Vec3{15, -40, 3}), 1e-5)
	assert.True(t, p.Clipped(mgl32.Vec3{20, 0, 0}))
	assert.False(t, p.Clipped(mgl32.Vec3{10, 0, 0}))
	assert.True(t, p.CoplanarPoint().ApproxEqual(mgl32.Vec3{15, 2, 100}))
}

func TestIsFiniteVec3(t *testing.T) {
	assert.True(t, IsFiniteVec3(mgl32.Vec3{1, 2, 3}))
	assert.False(t, IsFiniteVec3(mgl32.Vec3{math32.NaN(), 0, 0}))
	assert.False(t, IsFiniteVec3(mgl32.Vec3{0, math32.Inf(1), 0}))
}
