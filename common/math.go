package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// WorldUp is the world-space up axis shared by every camera in the tour.
var WorldUp = mgl32.Vec3{0, 1, 0}

// Clamp bounds v to the closed interval [lo, hi].
//
// Parameters:
//   - v: the value to bound
//   - lo: the lower bound
//   - hi: the upper bound
//
// Returns:
//   - float32: v limited to [lo, hi]
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 bounds a float64 progress value to [0, 1].
//
// Parameters:
//   - t: the progress value
//
// Returns:
//   - float64: t limited to [0, 1]
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Lerp linearly interpolates between a and b.
//
// Parameters:
//   - a: the value at t = 0
//   - b: the value at t = 1
//   - t: interpolation factor
//
// Returns:
//   - float32: a + (b-a)*t
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// LerpVec3 linearly interpolates each component of a toward b.
//
// Parameters:
//   - a: the vector at t = 0
//   - b: the vector at t = 1
//   - t: interpolation factor
//
// Returns:
//   - mgl32.Vec3: the interpolated vector
func LerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return mgl32.Vec3{
		Lerp(a[0], b[0], t),
		Lerp(a[1], b[1], t),
		Lerp(a[2], b[2], t),
	}
}

// WrapAngle wraps an angle in radians into the half-open interval (-π, π].
// A delta produced this way always describes the shorter way around the circle.
//
// Parameters:
//   - a: the angle in radians
//
// Returns:
//   - float32: the equivalent angle in (-π, π]
func WrapAngle(a float32) float32 {
	m := math32.Mod(math32.Pi-a, 2*math32.Pi)
	if m < 0 {
		m += 2 * math32.Pi
	}
	return math32.Pi - m
}

// Yaw returns the horizontal heading (radians, atan2(dz, dx)) of the vector from `from` to `to`.
//
// Parameters:
//   - from: origin point
//   - to: destination point
//
// Returns:
//   - float32: heading in radians in the XZ plane
func Yaw(from, to mgl32.Vec3) float32 {
	return math32.Atan2(to[2]-from[2], to[0]-from[0])
}

// HorizontalDistance returns the length of the XZ projection of the vector from `from` to `to`.
//
// Parameters:
//   - from: origin point
//   - to: destination point
//
// Returns:
//   - float32: distance in the XZ plane
func HorizontalDistance(from, to mgl32.Vec3) float32 {
	return math32.Hypot(to[0]-from[0], to[2]-from[2])
}

// LookAtBasis computes a camera basis whose local -Z axis points from eye toward target.
// The returned matrix has columns right, up and backward, matching the LookAt view matrix
// convention, so multiplying a local direction by it yields the world-space direction.
// When eye and target coincide, ok is false and the identity basis is returned.
// A forward axis parallel to up is nudged along Z so the basis stays well-defined.
//
// Parameters:
//   - eye: camera position in world space
//   - target: point the camera faces
//   - up: up vector (typically WorldUp)
//
// Returns:
//   - mgl32.Mat3: the orientation basis (columns right, up, backward)
//   - bool: false if eye and target coincide
func LookAtBasis(eye, target, up mgl32.Vec3) (mgl32.Mat3, bool) {
	back := eye.Sub(target)
	if back.Len() < 1e-8 {
		return mgl32.Ident3(), false
	}
	back = back.Normalize()

	right := up.Cross(back)
	if right.Len() < 1e-8 {
		// forward is parallel to up
		if math32.Abs(up[2]) == 1 {
			back[0] += 0.0001
		} else {
			back[2] += 0.0001
		}
		back = back.Normalize()
		right = up.Cross(back)
	}
	right = right.Normalize()
	camUp := back.Cross(right)

	return mgl32.Mat3FromCols(right, camUp, back), true
}

// IsFiniteVec3 reports whether every component of v is a finite number.
//
// Parameters:
//   - v: the vector to check
//
// Returns:
//   - bool: false if any component is NaN or ±Inf
func IsFiniteVec3(v mgl32.Vec3) bool {
	for _, c := range v {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return false
		}
	}
	return true
}
