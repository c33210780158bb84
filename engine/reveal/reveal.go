// Package reveal implements the ground-penetrating-radar view: a state that moves the camera to
// a side-on vantage, clips the model along a vertical plane through the qualifying look-at
// point and exposes the radar scan behind it.
package reveal

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/material"
	"github.com/Carmen-Shannon/oxy-tour/engine/viewpoint"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultOffset is how far along the offset axis the reveal vantage sits from the anchor.
const DefaultOffset = 15

// State is the reveal overlay's own state. ClipPlane is nil whenever Active is false. Anchor
// is the look-at point captured on activation; the clip plane, the vantage and the overlay
// planes all pass through it until reveal turns off.
type State struct {
	Active    bool
	ClipPlane *common.Plane
	Anchor    mgl32.Vec3
}

// Overlay owns the reveal State. It reads the viewpoint table to place its vantage and writes
// clip planes through the material registry; it never moves the camera itself.
type Overlay struct {
	table    *viewpoint.Table
	registry *material.Registry
	logger   *slog.Logger

	scene   viewpoint.SceneID
	section int
	offset  float32
	axis    mgl32.Vec3
	normal  mgl32.Vec3

	state   State
	vantage viewpoint.Viewpoint
}

// NewOverlay creates an inactive overlay. By default only the first section of site A
// qualifies, the vantage sits 15 units along +X from that section's look-at point and the
// clip plane faces -X.
//
// Parameters:
//   - table: the viewpoint table the qualifying look-at point is read from
//   - registry: the materials the clip plane is installed on
//   - options: functional options to configure the overlay
//
// Returns:
//   - *Overlay: the new overlay
func NewOverlay(table *viewpoint.Table, registry *material.Registry, options ...OverlayBuilderOption) *Overlay {
	o := &Overlay{
		table:    table,
		registry: registry,
		logger:   slog.Default(),
		scene:    viewpoint.SceneSiteA,
		section:  0,
		offset:   DefaultOffset,
		axis:     mgl32.Vec3{1, 0, 0},
		normal:   mgl32.Vec3{-1, 0, 0},
	}
	for _, option := range options {
		option(o)
	}
	return o
}

// SetTable swaps the viewpoint table. An active overlay keeps its anchor, and with it the clip
// plane, vantage and overlay planes, until it is deactivated.
//
// Parameters:
//   - table: the new table
func (o *Overlay) SetTable(table *viewpoint.Table) {
	o.table = table
}

// SetOffset changes how far the vantage sits from the anchor, keeping the offset axis. An
// active overlay keeps its current vantage; the new offset applies from the next activation.
//
// Parameters:
//   - offset: the distance in world units
func (o *Overlay) SetOffset(offset float32) {
	o.offset = offset
}

// Qualifies reports whether reveal is permitted for the scene and section.
//
// Parameters:
//   - scene: the current scene
//   - section: the current section index
//
// Returns:
//   - bool: true only for the qualifying pair
func (o *Overlay) Qualifies(scene viewpoint.SceneID, section int) bool {
	return scene == o.scene && section == o.section
}

// Anchor returns the point the clip plane passes through: the one captured on activation while
// reveal is on, otherwise the qualifying viewpoint's current look-at point.
func (o *Overlay) Anchor() mgl32.Vec3 {
	if o.state.Active {
		return o.state.Anchor
	}
	return o.table.Lookup(o.scene, o.section).LookAt
}

// Vantage returns the side-on camera pose used while reveal is active. While active it is the
// pose captured on activation.
//
// Returns:
//   - viewpoint.Viewpoint: position offset from the anchor, looking at the anchor
func (o *Overlay) Vantage() viewpoint.Viewpoint {
	if o.state.Active {
		return o.vantage
	}
	anchor := o.table.Lookup(o.scene, o.section).LookAt
	return viewpoint.Viewpoint{
		Position: anchor.Add(o.axis.Mul(o.offset)),
		LookAt:   anchor,
	}
}

// Update reconciles the overlay with the requested flag and the current scene and section.
// Reveal turns on only when requested under the qualifying pair; any other combination
// turns it off whatever the request says.
//
// Parameters:
//   - requested: the external reveal toggle
//   - scene: the current scene
//   - section: the current section index
//
// Returns:
//   - activated: true if this call turned reveal on
//   - deactivated: true if this call turned reveal off
func (o *Overlay) Update(requested bool, scene viewpoint.SceneID, section int) (activated, deactivated bool) {
	want := requested && o.Qualifies(scene, section)
	switch {
	case want && !o.state.Active:
		o.activate()
		return true, false
	case !want && o.state.Active:
		o.deactivate()
		return false, true
	}
	return false, false
}

func (o *Overlay) activate() {
	vantage := o.Vantage()
	plane := common.NewPlaneFromNormalAndCoplanarPoint(o.normal, vantage.LookAt)
	o.state = State{Active: true, ClipPlane: &plane, Anchor: vantage.LookAt}
	o.vantage = vantage
	o.registry.SetClipPlane(plane)
	o.logger.Debug("reveal activated", "anchor", vantage.LookAt, "materials", o.registry.Len())
}

func (o *Overlay) deactivate() {
	o.state = State{}
	o.vantage = viewpoint.Viewpoint{}
	o.registry.ClearClipPlane()
	o.logger.Debug("reveal deactivated", "materials", o.registry.Len())
}

// Active reports whether reveal is on.
func (o *Overlay) Active() bool {
	return o.state.Active
}

// State returns a copy of the overlay state.
func (o *Overlay) State() State {
	s := o.state
	if s.ClipPlane != nil {
		p := *s.ClipPlane
		s.ClipPlane = &p
	}
	return s
}

// Planes returns the translucent overlay planes to draw while reveal is active, or nil.
//
// Returns:
//   - []Plane: the soil and scan planes, in render order
func (o *Overlay) Planes() []Plane {
	if !o.state.Active {
		return nil
	}
	return OverlayPlanes(o.Anchor())
}
