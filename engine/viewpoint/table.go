// Package viewpoint holds the static per-scene camera tables: for each scene and section, the
// camera position and the point it should look at.
package viewpoint

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidViewpoint is wrapped by every defect reported from Table.Validate.
var ErrInvalidViewpoint = errors.New("invalid viewpoint")

// Viewpoint is a fixed camera position and look-at target for one section of one scene.
type Viewpoint struct {
	Position mgl32.Vec3
	LookAt   mgl32.Vec3
}

// Table maps every scene to its ordered list of viewpoints, indexed by section.
// A table is immutable once handed to the tour.
type Table struct {
	scenes map[SceneID][]Viewpoint
}

// NewTable builds a table from explicit per-scene viewpoint lists. The lists are copied.
//
// Parameters:
//   - scenes: viewpoints keyed by scene, ordered by section index
//
// Returns:
//   - *Table: the new table
func NewTable(scenes map[SceneID][]Viewpoint) *Table {
	t := &Table{scenes: make(map[SceneID][]Viewpoint, len(scenes))}
	for id, vps := range scenes {
		t.scenes[id] = append([]Viewpoint(nil), vps...)
	}
	return t
}

// DefaultTable returns the built-in viewpoints for every scene.
//
// The lobby table has six entries for seven declared sections; the last section
// falls back to the overview shot.
//
// Returns:
//   - *Table: the default table
func DefaultTable() *Table {
	return NewTable(map[SceneID][]Viewpoint{
		SceneLobby: {
			{Position: mgl32.Vec3{-8, 2, 20}, LookAt: mgl32.Vec3{20, 2, -100}},  // overview
			{Position: mgl32.Vec3{-4, 5, 20}, LookAt: mgl32.Vec3{112, 12, 20}},  // maps, turned right
			{Position: mgl32.Vec3{-3, 5, 20}, LookAt: mgl32.Vec3{-112, 12, 20}}, // plan, turned left
			{Position: mgl32.Vec3{-8, 2, 5}, LookAt: mgl32.Vec3{-8, 2, -100}},   // site A frame
			{Position: mgl32.Vec3{17, 2, 5}, LookAt: mgl32.Vec3{17, 2, -100}},   // site B frame
			{Position: mgl32.Vec3{42, 2, 5}, LookAt: mgl32.Vec3{42, 2, -100}},   // site C frame
		},
		SceneSiteA: {
			{Position: mgl32.Vec3{150, 50, 100}, LookAt: mgl32.Vec3{0, 0, 100}},
			{Position: mgl32.Vec3{-150, 55, 125}, LookAt: mgl32.Vec3{0, 32, -50}},
			{Position: mgl32.Vec3{125, 60, -200}, LookAt: mgl32.Vec3{0, 38, 50}},
			{Position: mgl32.Vec3{-175, 48, -150}, LookAt: mgl32.Vec3{0, 40, -25}},
		},
		SceneSiteB: {
			{Position: mgl32.Vec3{0, 2, 8}, LookAt: mgl32.Vec3{0, 0, 0}},
			{Position: mgl32.Vec3{-6, 3, 6}, LookAt: mgl32.Vec3{0, 0, 0}},
			{Position: mgl32.Vec3{-8, 2, 0}, LookAt: mgl32.Vec3{0, 0, 0}},
			{Position: mgl32.Vec3{-6, 4, -6}, LookAt: mgl32.Vec3{0, 0, 0}},
		},
		SceneSiteC: {
			{Position: mgl32.Vec3{0, 2, 8}, LookAt: mgl32.Vec3{0, 0, 0}},
			{Position: mgl32.Vec3{0, 5, 5}, LookAt: mgl32.Vec3{0, 0, 0}},
			{Position: mgl32.Vec3{5, 2, 5}, LookAt: mgl32.Vec3{0, 0, 0}},
			{Position: mgl32.Vec3{-5, 3, 5}, LookAt: mgl32.Vec3{0, 0, 0}},
		},
	})
}

// Lookup returns the viewpoint for a scene and section. It never fails: an out-of-range
// section clamps to index 0 and a scene without entries falls back to the site A table.
// If even that is empty, the zero Viewpoint is returned.
//
// Parameters:
//   - scene: the scene to look up
//   - section: the section index
//
// Returns:
//   - Viewpoint: the resolved viewpoint
func (t *Table) Lookup(scene SceneID, section int) Viewpoint {
	vps := t.scenes[scene]
	if len(vps) == 0 {
		vps = t.scenes[SceneSiteA]
	}
	if len(vps) == 0 {
		return Viewpoint{}
	}
	if section < 0 || section >= len(vps) {
		section = 0
	}
	return vps[section]
}

// Len returns the number of defined entries for a scene, which may be fewer than its
// SectionCount.
//
// Parameters:
//   - scene: the scene to measure
//
// Returns:
//   - int: the number of table entries
func (t *Table) Len(scene SceneID) int {
	return len(t.scenes[scene])
}

// Viewpoints returns a copy of the entries for a scene.
//
// Parameters:
//   - scene: the scene to copy
//
// Returns:
//   - []Viewpoint: the scene's viewpoints in section order
func (t *Table) Viewpoints(scene SceneID) []Viewpoint {
	return append([]Viewpoint(nil), t.scenes[scene]...)
}

// With returns a copy of the table with one scene's entries replaced.
//
// Parameters:
//   - scene: the scene to replace
//   - vps: the new viewpoints in section order
//
// Returns:
//   - *Table: the new table
func (t *Table) With(scene SceneID, vps []Viewpoint) *Table {
	next := NewTable(t.scenes)
	next.scenes[scene] = append([]Viewpoint(nil), vps...)
	return next
}

// Validate reports every configuration defect in the table: scenes with no entries,
// more entries than the scene has sections, non-finite coordinates, and viewpoints
// whose position equals their look-at point.
//
// Returns:
//   - error: nil, or all defects joined, each wrapping ErrInvalidViewpoint
func (t *Table) Validate() error {
	var errs []error
	for _, scene := range Scenes {
		vps := t.scenes[scene]
		if len(vps) == 0 {
			errs = append(errs, fmt.Errorf("%w: scene %s has no viewpoints", ErrInvalidViewpoint, scene))
			continue
		}
		if len(vps) > scene.SectionCount() {
			errs = append(errs, fmt.Errorf("%w: scene %s has %d viewpoints for %d sections",
				ErrInvalidViewpoint, scene, len(vps), scene.SectionCount()))
		}
		for i, vp := range vps {
			if !common.IsFiniteVec3(vp.Position) || !common.IsFiniteVec3(vp.LookAt) {
				errs = append(errs, fmt.Errorf("%w: %s[%d] has non-finite coordinates", ErrInvalidViewpoint, scene, i))
				continue
			}
			if vp.Position.ApproxEqual(vp.LookAt) {
				errs = append(errs, fmt.Errorf("%w: %s[%d] looks at its own position", ErrInvalidViewpoint, scene, i))
			}
		}
	}
	return errors.Join(errs...)
}
