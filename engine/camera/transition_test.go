package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aimAtYaw(cam mgl32.Vec3, yaw, radius, y float32) mgl32.Vec3 {
	return mgl32.Vec3{cam[0] + math32.Cos(yaw)*radius, y, cam[2] + math32.Sin(yaw)*radius}
}

func TestWrapAngleShortestDelta(t *testing.T) {
	delta := common.WrapAngle(-3.0 - 3.0)
	assert.InDelta(t, 2*math32.Pi-6, delta, 1e-4)
	assert.InDelta(t, 0.2832, delta, 1e-3)

	assert.InDelta(t, math32.Pi, common.WrapAngle(math32.Pi), 1e-5)
	assert.InDelta(t, math32.Pi, common.WrapAngle(-math32.Pi), 1e-5)
	assert.InDelta(t, 0.5, common.WrapAngle(0.5+4*math32.Pi), 1e-4)
}

func TestInterpolateAimTakesShortWay(t *testing.T) {
	cam := mgl32.Vec3{0, 0, 0}
	from := aimAtYaw(cam, 3.0, 10, 0)
	to := aimAtYaw(cam, -3.0, 10, 0)

	mid := InterpolateAim(cam, from, to, 0.5)
	// half of the 0.283 rad short turn from 3.0 lands on ±π, i.e. the -X axis
	assert.InDelta(t, -10, mid[0], 1e-3)
	assert.InDelta(t, 0, mid[2], 1e-2)

	for i := 0; i <= 20; i++ {
		e := float32(i) / 20
		p := InterpolateAim(cam, from, to, e)
		swept := math32.Abs(common.WrapAngle(common.Yaw(cam, p) - 3.0))
		assert.LessOrEqual(t, swept, float32(0.2833), "e=%v", e)
	}
}

func TestInterpolateAimRadiusAndHeight(t *testing.T) {
	cam := mgl32.Vec3{1, 5, 1}
	from := mgl32.Vec3{11, 0, 1}
	to := mgl32.Vec3{1, 10, 31}

	p := InterpolateAim(cam, from, to, 0.5)
	assert.InDelta(t, 20, common.HorizontalDistance(cam, p), 1e-3)
	assert.InDelta(t, 5, p[1], 1e-5)
	assert.InDelta(t, math32.Pi/4, common.Yaw(cam, p), 1e-4)
}

func TestTransitionProgressClamp(t *testing.T) {
	tr := NewTransition(mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}, 1000, 1500)

	assert.Equal(t, 0.0, tr.Progress(0))
	assert.Equal(t, 0.5, tr.Progress(1750))
	assert.Equal(t, 1.0, tr.Progress(1e12))

	p, done := tr.Sample(1e12, mgl32.Vec3{})
	assert.True(t, done)
	assert.False(t, tr.InProgress)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, p)

	// finished transitions keep reporting their end without completing again
	p, done = tr.Sample(2e12, mgl32.Vec3{})
	assert.False(t, done)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, p)
}

func TestTransitionZeroDuration(t *testing.T) {
	tr := NewTransition(mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}, 500, 0)
	p, done := tr.Sample(500, mgl32.Vec3{})
	require.True(t, done)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, p)
}

func TestTransitionFrozenClockNeverCompletes(t *testing.T) {
	tr := NewTransition(mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}, 500, 1000)
	for range 10 {
		p, done := tr.Sample(500, mgl32.Vec3{})
		assert.False(t, done)
		assertVecNear(t, mgl32.Vec3{1, 0, 0}, p, 1e-5)
	}
	assert.True(t, tr.InProgress)
}
