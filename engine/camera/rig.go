package camera

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/tween"
	"github.com/go-gl/mathgl/mgl32"
)

// Defaults for the per-frame compositor and scripted moves.
const (
	DefaultPositionMs     = 4000
	DefaultLookDistance   = 50
	DefaultSmoothing      = 0.07
	DefaultParallaxWeight = 0.3
)

// Pointer is a normalized pointer offset, each axis nominally in [-0.5, 0.5].
type Pointer struct {
	X, Y float32
}

// Pose is the camera state produced by one Rig tick.
type Pose struct {
	Position      mgl32.Vec3
	LookAt        mgl32.Vec3
	Transitioning bool
}

// Rig owns every piece of persistent per-frame camera state: the position tween, the
// look-at transition, the scripted target, the eased parallax point and the aim applied
// on the last frame. It is the only writer of its Camera.
//
// A Rig is not safe for concurrent use; all calls are expected on the tick thread.
type Rig struct {
	camera Camera
	logger *slog.Logger

	position   tween.Vec3
	transition Transition

	// target is the scripted look-at the compositor drifts around.
	target mgl32.Vec3
	// eased is the smoothed parallax aim, carried across frames.
	eased mgl32.Vec3
	// aim is the look-at applied on the most recent tick.
	aim mgl32.Vec3

	pointer  Pointer
	invertY  bool
	override bool

	positionMs  float64
	maxParallax float32
	distance    float32
	smoothing   float32
	weight      float32
}

// NewRig creates a Rig driving cam. The scripted target, eased point and aim all start at
// the camera's current target.
//
// Parameters:
//   - cam: the camera the rig writes to
//   - options: functional options to configure the rig
//
// Returns:
//   - *Rig: the new rig, idle
func NewRig(cam Camera, options ...RigBuilderOption) *Rig {
	aim := cam.Target()
	r := &Rig{
		camera:      cam,
		logger:      slog.Default(),
		target:      aim,
		eased:       aim,
		aim:         aim,
		positionMs:  DefaultPositionMs,
		maxParallax: DefaultMaxParallax,
		distance:    DefaultLookDistance,
		smoothing:   DefaultSmoothing,
		weight:      DefaultParallaxWeight,
	}
	for _, option := range options {
		option(r)
	}
	cam.LookAt(r.aim)
	return r
}

// Camera returns the camera driven by the rig.
func (r *Rig) Camera() Camera {
	return r.camera
}

// MoveTo starts a scripted move: the position tweens to position over the rig's position
// duration and, independently, the aim transitions to lookAt over lookAtMs.
// Any in-flight move is replaced. The new transition starts from the aim applied on the
// last tick, wherever that was.
//
// Parameters:
//   - position: the destination camera position
//   - lookAt: the destination look-at point
//   - lookAtMs: look-at transition duration in milliseconds
//   - nowMs: the current time in milliseconds
func (r *Rig) MoveTo(position, lookAt mgl32.Vec3, lookAtMs, nowMs float64) {
	r.move(position, lookAt, r.positionMs, lookAtMs, nowMs)
}

// Override starts a move like MoveTo, with both halves using durationMs, and suspends the
// parallax compositor until Release. Once the look-at transition finishes the camera aims
// straight at lookAt.
//
// Parameters:
//   - position: the destination camera position
//   - lookAt: the point to hold the aim on
//   - durationMs: duration of both the position and look-at moves in milliseconds
//   - nowMs: the current time in milliseconds
func (r *Rig) Override(position, lookAt mgl32.Vec3, durationMs, nowMs float64) {
	r.override = true
	r.move(position, lookAt, durationMs, durationMs, nowMs)
}

// Release resumes the parallax compositor after an Override. The eased point is snapped to
// the current aim so the compositor picks up without a jump.
func (r *Rig) Release() {
	if !r.override {
		return
	}
	r.override = false
	r.eased = r.aim
}

// Overridden reports whether an Override is in effect.
func (r *Rig) Overridden() bool {
	return r.override
}

func (r *Rig) move(position, lookAt mgl32.Vec3, positionMs, lookAtMs, nowMs float64) {
	r.position = tween.NewVec3(r.camera.Position(), position, nowMs, positionMs, tween.EaseInOutQuad)
	r.transition = NewTransition(r.aim, lookAt, nowMs, lookAtMs)
	r.target = lookAt
	r.logger.Debug("camera transition started",
		"from", r.aim, "to", lookAt, "position", position,
		"lookAtMs", lookAtMs, "positionMs", positionMs, "override", r.override)
}

// SetPointer records the latest pointer offset. Only the most recent value is kept.
//
// Parameters:
//   - x, y: the normalized pointer offset
func (r *Rig) SetPointer(x, y float32) {
	r.pointer = Pointer{X: x, Y: y}
}

// SetInvertY selects the vertical parallax direction; detail scenes invert it.
//
// Parameters:
//   - invert: true to flip the vertical axis
func (r *Rig) SetInvertY(invert bool) {
	r.invertY = invert
}

// Transition returns a copy of the current look-at transition.
func (r *Rig) Transition() Transition {
	return r.transition
}

// Transitioning reports whether a look-at transition is in flight.
func (r *Rig) Transitioning() bool {
	return r.transition.InProgress
}

// Target returns the scripted look-at the rig is settled on or moving toward.
func (r *Rig) Target() mgl32.Vec3 {
	return r.target
}

// Eased returns the smoothed parallax point.
func (r *Rig) Eased() mgl32.Vec3 {
	return r.eased
}

// Aim returns the look-at applied on the most recent tick.
func (r *Rig) Aim() mgl32.Vec3 {
	return r.aim
}

// Tick advances the rig to nowMs and writes the resulting pose onto the camera.
//
// While a look-at transition is in flight it is followed exclusively. When it completes the
// eased point is snapped to its end so the next idle frame starts from the same aim.
// Under an Override the camera then holds its aim on the override target. Otherwise the
// compositor eases toward the pointer-deflected view ray and blends that with the target.
//
// The smoothing factor is applied once per tick, so the drift rate depends on tick rate.
//
// Parameters:
//   - nowMs: the current time in milliseconds
//
// Returns:
//   - Pose: the pose written onto the camera
func (r *Rig) Tick(nowMs float64) Pose {
	pos := r.camera.Position()
	if r.position.Active() {
		pos, _ = r.position.Sample(nowMs)
		r.camera.SetPosition(pos)
	}

	var lookAt mgl32.Vec3
	switch {
	case r.transition.InProgress:
		var done bool
		lookAt, done = r.transition.Sample(nowMs, pos)
		if done {
			r.eased = r.transition.EndLookAt
			r.logger.Debug("camera transition finished", "lookAt", lookAt)
		}
	case r.override:
		lookAt = r.target
	default:
		lookAt = r.composite(pos)
	}

	r.aim = lookAt
	r.camera.LookAt(lookAt)

	return Pose{
		Position:      pos,
		LookAt:        lookAt,
		Transitioning: r.transition.InProgress,
	}
}

// composite computes the idle look-at: the parallax ray cast from pos through the camera's
// current orientation, smoothed into the eased point and blended with the scripted target.
func (r *Rig) composite(pos mgl32.Vec3) mgl32.Vec3 {
	local := ParallaxDirection(r.pointer.X, r.pointer.Y, r.maxParallax, r.invertY)
	world := r.camera.Basis().Mul3x1(local)
	raw := pos.Add(world.Mul(r.distance))

	r.eased = common.LerpVec3(r.eased, raw, r.smoothing)
	return common.LerpVec3(r.target, r.eased, r.weight)
}
