package tween

import (
	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Vec3 interpolates a point from one value to another over a fixed duration.
// The zero value is an inactive tween.
type Vec3 struct {
	from       mgl32.Vec3
	to         mgl32.Vec3
	startMs    float64
	durationMs float64
	ease       EaseFunc
	active     bool
}

// NewVec3 starts a tween from `from` to `to` beginning at startMs.
// A nil ease defaults to Linear; a non-positive duration completes on the first sample.
//
// Parameters:
//   - from: the value at the start time
//   - to: the value once the duration has elapsed
//   - startMs: start time in milliseconds
//   - durationMs: duration in milliseconds
//   - ease: the easing curve applied to progress
//
// Returns:
//   - Vec3: the running tween
func NewVec3(from, to mgl32.Vec3, startMs, durationMs float64, ease EaseFunc) Vec3 {
	if ease == nil {
		ease = Linear
	}
	return Vec3{
		from:       from,
		to:         to,
		startMs:    startMs,
		durationMs: durationMs,
		ease:       ease,
		active:     true,
	}
}

// Active reports whether the tween is still running.
func (v *Vec3) Active() bool {
	return v.active
}

// Target returns the value the tween ends on.
func (v *Vec3) Target() mgl32.Vec3 {
	return v.to
}

// Progress returns the linear progress at nowMs, clamped to [0, 1].
//
// Parameters:
//   - nowMs: sample time in milliseconds
//
// Returns:
//   - float64: elapsed fraction of the duration
func (v *Vec3) Progress(nowMs float64) float64 {
	if v.durationMs <= 0 {
		return 1
	}
	return common.Clamp01((nowMs - v.startMs) / v.durationMs)
}

// Sample evaluates the tween at nowMs. Once progress reaches 1 the end value is returned
// exactly and the tween deactivates. Sampling an inactive tween returns its end value.
//
// Parameters:
//   - nowMs: sample time in milliseconds
//
// Returns:
//   - mgl32.Vec3: the interpolated value
//   - bool: true if the tween finished on or before this sample
func (v *Vec3) Sample(nowMs float64) (mgl32.Vec3, bool) {
	if !v.active {
		return v.to, true
	}
	t := v.Progress(nowMs)
	if t >= 1 {
		v.active = false
		return v.to, true
	}
	return common.LerpVec3(v.from, v.to, float32(v.ease(t))), false
}

// Stop deactivates the tween without reaching its end value.
func (v *Vec3) Stop() {
	v.active = false
}
