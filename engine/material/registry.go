package material

import (
	"github.com/Carmen-Shannon/oxy-tour/common"
)

// Registry is the index of materials a clip plane applies to. Materials are registered once,
// after their model finishes loading, instead of being rediscovered on every toggle.
//
// A Registry is not safe for concurrent use; register from the tick thread.
type Registry struct {
	materials []Material
	seen      map[Material]struct{}
	plane     *common.Plane
}

// NewRegistry creates an empty registry with no active clip plane.
//
// Returns:
//   - *Registry: the new registry
func NewRegistry() *Registry {
	return &Registry{seen: make(map[Material]struct{})}
}

// Register adds materials to the registry. Each material is forced double-sided with depth
// writes on, so clipped geometry shows its inside faces. Materials already registered and nil
// entries are skipped. If a clip plane is active it is installed on the new materials.
//
// Parameters:
//   - mats: the materials to add
//
// Returns:
//   - int: the number of materials actually added
func (r *Registry) Register(mats ...Material) int {
	added := 0
	for _, m := range mats {
		if m == nil {
			continue
		}
		if _, ok := r.seen[m]; ok {
			continue
		}
		r.seen[m] = struct{}{}
		r.materials = append(r.materials, m)

		m.SetDoubleSided(true)
		m.SetDepthWrite(true)
		if r.plane != nil {
			m.SetClipPlanes(*r.plane)
			m.SetClipShadows(true)
		}
		added++
	}
	return added
}

// SetClipPlane installs p as the only clip plane on every registered material.
//
// Parameters:
//   - p: the half-space plane; geometry behind it is discarded
func (r *Registry) SetClipPlane(p common.Plane) {
	r.plane = &p
	for _, m := range r.materials {
		m.SetClipPlanes(p)
		m.SetClipShadows(true)
	}
}

// ClearClipPlane removes the clip plane from every registered material.
func (r *Registry) ClearClipPlane() {
	r.plane = nil
	for _, m := range r.materials {
		m.SetClipPlanes()
	}
}

// ClipPlane returns the active clip plane, or nil when none is installed.
//
// Returns:
//   - *common.Plane: a copy of the active plane, or nil
func (r *Registry) ClipPlane() *common.Plane {
	if r.plane == nil {
		return nil
	}
	p := *r.plane
	return &p
}

// Materials returns the registered materials in registration order.
//
// Returns:
//   - []Material: a copy of the registered list
func (r *Registry) Materials() []Material {
	return append([]Material(nil), r.materials...)
}

// Len returns the number of registered materials.
func (r *Registry) Len() int {
	return len(r.materials)
}
