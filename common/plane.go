package common

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Plane represents a plane in 3D space using the equation: dot(Normal, p) + Constant = 0.
// Points with a negative signed distance lie behind the plane; a renderer using the plane
// as a clip plane discards them.
//
// Origin is a reference point the plane was built through. It does not take part in the
// plane equation.
type Plane struct {
	Normal   mgl32.Vec3
	Constant float32
	Origin   mgl32.Vec3
}

// NewPlaneFromNormalAndCoplanarPoint builds a plane with the given normal passing through point.
// The normal is normalized; a zero normal yields a degenerate plane whose signed distance is
// Constant for every point.
//
// Parameters:
//   - normal: the plane normal (need not be unit length)
//   - point: any point lying on the plane
//
// Returns:
//   - Plane: the constructed plane
func NewPlaneFromNormalAndCoplanarPoint(normal, point mgl32.Vec3) Plane {
	if normal.Len() > 0 {
		normal = normal.Normalize()
	}
	return Plane{
		Normal:   normal,
		Constant: -point.Dot(normal),
		Origin:   point,
	}
}

// DistanceToPoint returns the signed distance from the plane to p.
//
// Parameters:
//   - point: the point to measure
//
// Returns:
//   - float32: positive in front of the plane, negative behind it
func (p Plane) DistanceToPoint(point mgl32.Vec3) float32 {
	return p.Normal.Dot(point) + p.Constant
}

// CoplanarPoint returns the projection of Origin onto the plane. For a plane built with
// NewPlaneFromNormalAndCoplanarPoint that is the point it was built through; for a plane with
// a zero Origin it is the point on the plane closest to the world origin.
//
// Returns:
//   - mgl32.Vec3: a point lying on the plane
func (p Plane) CoplanarPoint() mgl32.Vec3 {
	return p.Origin.Sub(p.Normal.Mul(p.DistanceToPoint(p.Origin)))
}

// Clipped reports whether a renderer using this plane as a clip plane would discard point.
//
// Parameters:
//   - point: the world-space point to test
//
// Returns:
//   - bool: true if the point lies strictly behind the plane
func (p Plane) Clipped(point mgl32.Vec3) bool {
	return p.DistanceToPoint(point) < 0
}
