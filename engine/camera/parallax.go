package camera

import (
	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultMaxParallax is the largest deflection, per axis, the pointer can add to the view direction.
var DefaultMaxParallax = mgl32.DegToRad(20)

// ParallaxDirection maps a pointer offset to a unit view direction in camera-local space.
// The pointer components are expected in [-0.5, 0.5] but any value is accepted; each axis
// is scaled by maxRad and clamped to [-maxRad, maxRad]. Detail scenes flip the vertical axis.
// The local direction always has a -1 Z component before normalization, so it never
// points behind the camera.
//
// Parameters:
//   - x: horizontal pointer offset, positive to the right
//   - y: vertical pointer offset, positive downwards
//   - maxRad: the per-axis deflection limit
//   - invertY: true in the detail scenes
//
// Returns:
//   - mgl32.Vec3: the normalized camera-local direction
func ParallaxDirection(x, y, maxRad float32, invertY bool) mgl32.Vec3 {
	if invertY {
		y = -y
	}
	return mgl32.Vec3{
		common.Clamp(x*maxRad, -maxRad, maxRad),
		common.Clamp(y*maxRad, -maxRad, maxRad),
		-1,
	}.Normalize()
}

// NormalizePointer converts a cursor position in window pixels to the [-0.5, 0.5] range
// with the window centre at the origin. A zero-sized window yields the centre.
//
// Parameters:
//   - px, py: cursor position in pixels from the top-left corner
//   - width, height: window size in pixels
//
// Returns:
//   - x, y: the normalized pointer offset
func NormalizePointer(px, py float64, width, height int) (x, y float32) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	return float32(px/float64(width) - 0.5), float32(py/float64(height) - 0.5)
}
