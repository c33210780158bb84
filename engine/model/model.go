package model

import (
	"github.com/Carmen-Shannon/oxy-tour/engine/material"
)

// model is the implementation of the Model interface.
type model struct {
	name           string
	source         string
	materials      []material.Material
	meshCount      int
	primitiveCount int
	boundingRadius float32
}

// Model defines the interface for a loaded 3D model.
// The tour only needs a model's materials, so a Model carries its scene-graph statistics and
// the materials its primitives reference. Mesh data stays with the external renderer.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Source retrieves the path or label the model was loaded from.
	//
	// Returns:
	//   - string: the source
	Source() string

	// Materials retrieves the distinct materials referenced by the model's primitives, in
	// first-use order. Primitives without a material share one default material.
	//
	// Returns:
	//   - []material.Material: the materials
	Materials() []material.Material

	// MeshCount returns the number of meshes reachable from the default scene.
	//
	// Returns:
	//   - int: the mesh count
	MeshCount() int

	// PrimitiveCount returns the number of primitives reachable from the default scene.
	//
	// Returns:
	//   - int: the primitive count
	PrimitiveCount() int

	// BoundingRadius returns the radius of a sphere around the origin containing every
	// primitive's position bounds, or 0 if the file carried no bounds.
	//
	// Returns:
	//   - float32: the bounding radius
	BoundingRadius() float32
}

var _ Model = &model{}

// NewModel creates a new Model instance with the specified options applied.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new instance of Model configured with the provided options
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Source() string {
	return m.source
}

func (m *model) Materials() []material.Material {
	out := make([]material.Material, len(m.materials))
	copy(out, m.materials)
	return out
}

func (m *model) MeshCount() int {
	return m.meshCount
}

func (m *model) PrimitiveCount() int {
	return m.primitiveCount
}

func (m *model) BoundingRadius() float32 {
	return m.boundingRadius
}
