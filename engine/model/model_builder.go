package model

import (
	"github.com/Carmen-Shannon/oxy-tour/engine/material"
)

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithSource is an option builder that records where the Model was loaded from.
//
// Parameters:
//   - source: the file path or reader label
//
// Returns:
//   - ModelBuilderOption: a function that applies the source option to a model
func WithSource(source string) ModelBuilderOption {
	return func(m *model) {
		m.source = source
	}
}

// WithMaterials is an option builder that sets the Model's materials. Nil entries are dropped.
//
// Parameters:
//   - mats: the materials, in first-use order
//
// Returns:
//   - ModelBuilderOption: a function that applies the materials option to a model
func WithMaterials(mats ...material.Material) ModelBuilderOption {
	return func(m *model) {
		m.materials = m.materials[:0]
		for _, mat := range mats {
			if mat != nil {
				m.materials = append(m.materials, mat)
			}
		}
	}
}

// WithCounts is an option builder that sets the mesh and primitive counts.
//
// Parameters:
//   - meshes: the number of meshes
//   - primitives: the number of primitives
//
// Returns:
//   - ModelBuilderOption: a function that applies the counts option to a model
func WithCounts(meshes, primitives int) ModelBuilderOption {
	return func(m *model) {
		m.meshCount = meshes
		m.primitiveCount = primitives
	}
}

// WithBoundingRadius is an option builder that sets the bounding sphere radius.
//
// Parameters:
//   - radius: the bounding radius to set
//
// Returns:
//   - ModelBuilderOption: a function that applies the bounding radius option to a model
func WithBoundingRadius(radius float32) ModelBuilderOption {
	return func(m *model) {
		m.boundingRadius = radius
	}
}
