package camera

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
)

// RigBuilderOption is a functional option for configuring a Rig.
type RigBuilderOption func(*Rig)

// WithLogger sets the logger used for transition events.
//
// Parameters:
//   - logger: the logger; nil keeps slog.Default()
//
// Returns:
//   - RigBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) RigBuilderOption {
	return func(r *Rig) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithPositionDuration sets how long scripted position moves take, in milliseconds.
//
// Parameters:
//   - ms: the position tween duration
//
// Returns:
//   - RigBuilderOption: option function to apply
func WithPositionDuration(ms float64) RigBuilderOption {
	return func(r *Rig) {
		r.positionMs = ms
	}
}

// WithParallax sets the per-axis pointer deflection limit and how far along the deflected
// view ray the raw look-at candidate is placed.
//
// Parameters:
//   - maxRad: the deflection limit in radians
//   - distance: the ray length in world units
//
// Returns:
//   - RigBuilderOption: option function to apply
func WithParallax(maxRad, distance float32) RigBuilderOption {
	return func(r *Rig) {
		r.maxParallax = maxRad
		r.distance = distance
	}
}

// WithSmoothing sets the per-tick smoothing factor of the eased point and the weight the
// eased point carries in the final blend with the scripted target.
//
// Parameters:
//   - smoothing: fraction of the remaining distance covered per tick
//   - weight: blend weight toward the eased point
//
// Returns:
//   - RigBuilderOption: option function to apply
func WithSmoothing(smoothing, weight float32) RigBuilderOption {
	return func(r *Rig) {
		r.smoothing = smoothing
		r.weight = weight
	}
}

// WithInitialAim overrides the starting target, eased point and aim.
//
// Parameters:
//   - aim: the initial look-at point
//
// Returns:
//   - RigBuilderOption: option function to apply
func WithInitialAim(aim mgl32.Vec3) RigBuilderOption {
	return func(r *Rig) {
		r.target = aim
		r.eased = aim
		r.aim = aim
	}
}
