// Package material holds the renderable surface handles the tour can clip, and the registry
// that installs and clears half-space clip planes on them.
package material

import (
	"github.com/Carmen-Shannon/oxy-tour/common"
)

// material is the implementation of the Material interface.
type material struct {
	name        string
	baseColor   [4]float32
	texturePath string
	doubleSided bool
	depthWrite  bool
	clipShadows bool
	clipPlanes  []common.Plane
	version     uint64
}

// Material is a renderable surface handle. Surface properties are set at load time; the
// render-state flags and clip planes are mutable so the registry can configure them.
//
// Every mutation bumps Version, which a renderer can compare against the value it last
// uploaded to decide whether the material needs rebuilding.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// BaseColor retrieves the albedo RGBA color of the material.
	//
	// Returns:
	//   - [4]float32: the base color as RGBA values
	BaseColor() [4]float32

	// TexturePath retrieves the base color texture reference, or "" if the material has none.
	//
	// Returns:
	//   - string: the texture path or data reference
	TexturePath() string

	// DoubleSided reports whether back faces are rendered.
	//
	// Returns:
	//   - bool: true if both faces render
	DoubleSided() bool

	// SetDoubleSided sets whether back faces are rendered.
	//
	// Parameters:
	//   - v: true to render both faces
	SetDoubleSided(v bool)

	// DepthWrite reports whether the material writes to the depth buffer.
	//
	// Returns:
	//   - bool: true if depth writes are enabled
	DepthWrite() bool

	// SetDepthWrite sets whether the material writes to the depth buffer.
	//
	// Parameters:
	//   - v: true to enable depth writes
	SetDepthWrite(v bool)

	// ClipShadows reports whether clip planes also apply to shadow casting.
	//
	// Returns:
	//   - bool: true if shadows are clipped
	ClipShadows() bool

	// ClipPlanes returns a copy of the planes geometry is clipped against. Geometry behind
	// any plane is discarded.
	//
	// Returns:
	//   - []common.Plane: the active clip planes, empty when unclipped
	ClipPlanes() []common.Plane

	// SetClipPlanes replaces the clip planes. Passing none restores unclipped rendering.
	//
	// Parameters:
	//   - planes: the new clip planes
	SetClipPlanes(planes ...common.Plane)

	// SetClipShadows sets whether clip planes also apply to shadow casting.
	//
	// Parameters:
	//   - v: true to clip shadows
	SetClipShadows(v bool)

	// Version returns a counter bumped by every render-state mutation.
	//
	// Returns:
	//   - uint64: the current version
	Version() uint64
}

var _ Material = &material{}

// NewMaterial creates a new Material with a white base color, single-sided, with depth
// writes enabled and no clip planes.
//
// Parameters:
//   - options: functional options to configure the material
//
// Returns:
//   - Material: the newly created material
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		baseColor:  [4]float32{1, 1, 1, 1},
		depthWrite: true,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) BaseColor() [4]float32 {
	return m.baseColor
}

func (m *material) TexturePath() string {
	return m.texturePath
}

func (m *material) DoubleSided() bool {
	return m.doubleSided
}

func (m *material) SetDoubleSided(v bool) {
	m.doubleSided = v
	m.version++
}

func (m *material) DepthWrite() bool {
	return m.depthWrite
}

func (m *material) SetDepthWrite(v bool) {
	m.depthWrite = v
	m.version++
}

func (m *material) ClipShadows() bool {
	return m.clipShadows
}

func (m *material) ClipPlanes() []common.Plane {
	return append([]common.Plane(nil), m.clipPlanes...)
}

func (m *material) SetClipPlanes(planes ...common.Plane) {
	m.clipPlanes = append(m.clipPlanes[:0], planes...)
	m.version++
}

func (m *material) SetClipShadows(v bool) {
	m.clipShadows = v
	m.version++
}

func (m *material) Version() uint64 {
	return m.version
}
