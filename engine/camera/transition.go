package camera

import (
	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/tween"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Transition is the look-at half of a scripted camera move. Camera position is tweened
// separately and may finish before or after the look-at does.
//
// The look-at is not interpolated component-wise. Heading, horizontal radius and height are
// interpolated relative to the camera's current position, so the aim turns the short way
// around and never sweeps through the camera.
type Transition struct {
	StartLookAt mgl32.Vec3
	EndLookAt   mgl32.Vec3
	StartMs     float64
	DurationMs  float64
	InProgress  bool
}

// NewTransition starts a look-at transition at startMs.
//
// Parameters:
//   - from: the aim at the moment the transition starts
//   - to: the aim once the transition completes
//   - startMs: start time in milliseconds
//   - durationMs: duration in milliseconds; non-positive completes on the first sample
//
// Returns:
//   - Transition: the running transition
func NewTransition(from, to mgl32.Vec3, startMs, durationMs float64) Transition {
	return Transition{
		StartLookAt: from,
		EndLookAt:   to,
		StartMs:     startMs,
		DurationMs:  durationMs,
		InProgress:  true,
	}
}

// Progress returns linear progress at nowMs, clamped to [0, 1]. It never extrapolates past 1.
//
// Parameters:
//   - nowMs: sample time in milliseconds
//
// Returns:
//   - float64: elapsed fraction of the duration
func (t *Transition) Progress(nowMs float64) float64 {
	if t.DurationMs <= 0 {
		return 1
	}
	return common.Clamp01((nowMs - t.StartMs) / t.DurationMs)
}

// Sample evaluates the aim at nowMs as seen from the camera position cam.
// When progress reaches 1 the transition ends, InProgress is cleared and EndLookAt is
// returned exactly.
//
// Parameters:
//   - nowMs: sample time in milliseconds
//   - cam: the camera position this frame
//
// Returns:
//   - mgl32.Vec3: the interpolated look-at point
//   - bool: true if the transition completed on this sample
func (t *Transition) Sample(nowMs float64, cam mgl32.Vec3) (mgl32.Vec3, bool) {
	if !t.InProgress {
		return t.EndLookAt, false
	}
	p := t.Progress(nowMs)
	if p >= 1 {
		t.InProgress = false
		return t.EndLookAt, true
	}
	return InterpolateAim(cam, t.StartLookAt, t.EndLookAt, float32(tween.EaseInOutCubic(p))), false
}

// InterpolateAim blends two look-at points around cam by heading, horizontal radius and height.
// The heading delta is wrapped into (-π, π] so the aim always takes the shorter turn.
//
// Parameters:
//   - cam: the camera position both points are measured from
//   - from: the aim at e = 0
//   - to: the aim at e = 1
//   - e: eased progress
//
// Returns:
//   - mgl32.Vec3: the blended aim
func InterpolateAim(cam, from, to mgl32.Vec3, e float32) mgl32.Vec3 {
	startYaw := common.Yaw(cam, from)
	delta := common.WrapAngle(common.Yaw(cam, to) - startYaw)
	yaw := startYaw + delta*e

	radius := common.Lerp(common.HorizontalDistance(cam, from), common.HorizontalDistance(cam, to), e)
	return mgl32.Vec3{
		cam[0] + math32.Cos(yaw)*radius,
		common.Lerp(from[1], to[1], e),
		cam[2] + math32.Sin(yaw)*radius,
	}
}
