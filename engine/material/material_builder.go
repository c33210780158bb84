package material

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithBaseColor is an option builder that sets the albedo RGBA color of the material.
//
// Parameters:
//   - color: the base color as RGBA float32 values
//
// Returns:
//   - MaterialBuilderOption: a function that applies the base color option to a material
func WithBaseColor(color [4]float32) MaterialBuilderOption {
	return func(m *material) {
		m.baseColor = color
	}
}

// WithTexturePath is an option builder that sets the base color texture reference.
//
// Parameters:
//   - path: the texture file path or data reference
//
// Returns:
//   - MaterialBuilderOption: a function that applies the texture option to a material
func WithTexturePath(path string) MaterialBuilderOption {
	return func(m *material) {
		m.texturePath = path
	}
}

// WithDoubleSided is an option builder that sets whether back faces render.
//
// Parameters:
//   - v: true to render both faces
//
// Returns:
//   - MaterialBuilderOption: a function that applies the option to a material
func WithDoubleSided(v bool) MaterialBuilderOption {
	return func(m *material) {
		m.doubleSided = v
	}
}
