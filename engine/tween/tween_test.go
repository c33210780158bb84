package tween

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-6

func TestEaseEndpoints(t *testing.T) {
	for name, ease := range map[string]EaseFunc{
		"linear": Linear,
		"quad":   EaseInOutQuad,
		"cubic":  EaseInOutCubic,
	} {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, 0, ease(0), tol)
			assert.InDelta(t, 0.5, ease(0.5), tol)
			assert.InDelta(t, 1, ease(1), tol)
		})
	}
}

func TestEaseInOutCubicValues(t *testing.T) {
	assert.InDelta(t, 4*0.25*0.25*0.25, EaseInOutCubic(0.25), tol)
	assert.InDelta(t, 1-0.5*0.5*0.5/2, EaseInOutCubic(0.75), tol)

	// symmetric about the midpoint
	for _, x := range []float64{0.1, 0.2, 0.3, 0.4} {
		assert.InDelta(t, 1, EaseInOutCubic(x)+EaseInOutCubic(1-x), tol)
	}
}

func TestEaseInOutQuadValues(t *testing.T) {
	assert.InDelta(t, 0.125, EaseInOutQuad(0.25), tol)
	assert.InDelta(t, 0.875, EaseInOutQuad(0.75), tol)
}

func TestEaseMonotonic(t *testing.T) {
	for _, ease := range []EaseFunc{EaseInOutQuad, EaseInOutCubic} {
		prev := ease(0)
		for i := 1; i <= 100; i++ {
			v := ease(float64(i) / 100)
			assert.GreaterOrEqual(t, v, prev)
			prev = v
		}
	}
}

func TestVec3Sample(t *testing.T) {
	from := mgl32.Vec3{0, 0, 0}
	to := mgl32.Vec3{10, 20, -30}
	tw := NewVec3(from, to, 1000, 4000, Linear)
	require.True(t, tw.Active())

	v, done := tw.Sample(1000)
	assert.False(t, done)
	assert.Equal(t, from, v)

	v, done = tw.Sample(3000)
	assert.False(t, done)
	assert.True(t, v.ApproxEqual(mgl32.Vec3{5, 10, -15}))

	v, done = tw.Sample(5000)
	assert.True(t, done)
	assert.Equal(t, to, v)
	assert.False(t, tw.Active())

	// inactive tweens keep returning the end value
	v, done = tw.Sample(9000)
	assert.True(t, done)
	assert.Equal(t, to, v)
}

func TestVec3SampleBeforeStart(t *testing.T) {
	tw := NewVec3(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{2, 2, 2}, 500, 1000, EaseInOutQuad)
	v, done := tw.Sample(0)
	assert.False(t, done)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, v)
}

func TestVec3ZeroDuration(t *testing.T) {
	tw := NewVec3(mgl32.Vec3{}, mgl32.Vec3{1, 2, 3}, 0, 0, nil)
	v, done := tw.Sample(0)
	assert.True(t, done)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, v)
}

func TestVec3Stop(t *testing.T) {
	tw := NewVec3(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, 0, 100, Linear)
	tw.Stop()
	assert.False(t, tw.Active())
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, tw.Target())
}

func TestZeroVec3Inactive(t *testing.T) {
	var tw Vec3
	assert.False(t, tw.Active())
	_, done := tw.Sample(0)
	assert.True(t, done)
}
