// Package tour reconciles the tour's external inputs (scene, section, pointer, reveal toggle)
// with the camera rig and the reveal overlay, once per tick, and reports the result as a Frame
// for an external renderer.
package tour

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-tour/engine/camera"
	"github.com/Carmen-Shannon/oxy-tour/engine/config"
	"github.com/Carmen-Shannon/oxy-tour/engine/material"
	"github.com/Carmen-Shannon/oxy-tour/engine/reveal"
	"github.com/Carmen-Shannon/oxy-tour/engine/viewpoint"
	"github.com/go-gl/mathgl/mgl32"
)

// Initial aims before the first transition, per the scene the tour opens on.
var (
	lobbyInitialAim = mgl32.Vec3{17, 2, -100}
	siteInitialAim  = mgl32.Vec3{0, 2, 0}
)

// Tour is the single-threaded scene controller. Input setters only record the requested state;
// Tick applies whatever changed since the previous tick, advances the camera and returns the
// frame. Setting a value equal to the applied one never restarts a move.
//
// A Tour is not safe for concurrent use. Callers on other goroutines hand work to the tick
// thread instead of calling it directly.
type Tour struct {
	logger *slog.Logger
	cfg    config.Config
	table  *viewpoint.Table

	rig      *camera.Rig
	registry *material.Registry
	overlay  *reveal.Overlay

	// requested input
	scene           viewpoint.SceneID
	section         int
	revealRequested bool

	// applied state; appliedSection < 0 until the first tick
	appliedScene   viewpoint.SceneID
	appliedSection int
}

// NewTour creates a tour opening on the lobby, section 0. The camera starts at (0, 2, 8)
// aiming at the opening scene's initial point and moves to the first viewpoint on the first
// tick.
//
// Parameters:
//   - options: functional options to configure the tour
//
// Returns:
//   - *Tour: the new tour
func NewTour(options ...TourBuilderOption) *Tour {
	t := &Tour{
		logger:         slog.Default(),
		cfg:            config.Default(),
		registry:       material.NewRegistry(),
		appliedSection: -1,
	}
	for _, option := range options {
		option(t)
	}
	if t.table == nil {
		table, err := t.cfg.Table()
		if err != nil {
			t.logger.Warn("falling back to default viewpoints", "err", err)
			table = viewpoint.DefaultTable()
		}
		t.table = table
	}

	aim := lobbyInitialAim
	if t.scene.Detail() {
		aim = siteInitialAim
	}
	cam := camera.NewCamera(camera.WithPose(mgl32.Vec3{0, 2, 8}, aim))
	t.rig = camera.NewRig(cam,
		camera.WithLogger(t.logger),
		camera.WithPositionDuration(t.cfg.Timing.PositionMs),
		camera.WithParallax(t.cfg.MaxParallaxRad(), t.cfg.Parallax.Distance),
		camera.WithSmoothing(t.cfg.Parallax.Smoothing, t.cfg.Parallax.Blend),
	)
	t.rig.SetInvertY(t.scene.Detail())
	t.overlay = reveal.NewOverlay(t.table, t.registry,
		reveal.WithLogger(t.logger),
		reveal.WithOffset(t.cfg.Reveal.Offset, mgl32.Vec3{1, 0, 0}),
	)
	t.appliedScene = t.scene
	return t
}

// SetScene requests a scene change. A different scene resets the section to 0 and cancels
// any reveal request. Unknown scenes are ignored.
//
// Parameters:
//   - scene: the requested scene
func (t *Tour) SetScene(scene viewpoint.SceneID) {
	if !scene.Valid() || scene == t.scene {
		return
	}
	t.scene = scene
	t.section = 0
	t.revealRequested = false
}

// SetSection requests a section within the current scene. Indices outside the scene's section
// count are clamped to 0.
//
// Parameters:
//   - section: the requested section index
func (t *Tour) SetSection(section int) {
	if section < 0 || section >= t.scene.SectionCount() {
		section = 0
	}
	t.section = section
}

// SetPointer records the latest normalized pointer offset.
//
// Parameters:
//   - x, y: the pointer offset, nominally in [-0.5, 0.5]
func (t *Tour) SetPointer(x, y float32) {
	t.rig.SetPointer(x, y)
}

// SetRevealRequested records the external reveal toggle. It only takes effect for the
// qualifying scene and section.
//
// Parameters:
//   - on: the toggle state
func (t *Tour) SetRevealRequested(on bool) {
	t.revealRequested = on
}

// SetConfig swaps in a reloaded configuration. Timing and viewpoint changes take effect on the
// next move and reveal offset changes on the next activation; parallax tuning takes effect
// immediately. An active reveal keeps its anchor until it turns off. A config whose viewpoints
// fail validation is ignored as a whole.
//
// Parameters:
//   - cfg: the new, validated configuration
func (t *Tour) SetConfig(cfg config.Config) {
	table, err := cfg.Table()
	if err != nil {
		t.logger.Warn("ignoring config with invalid viewpoints", "err", err)
		return
	}
	t.cfg = cfg
	t.table = table
	t.overlay.SetTable(table)
	t.overlay.SetOffset(cfg.Reveal.Offset)
	camera.WithPositionDuration(cfg.Timing.PositionMs)(t.rig)
	camera.WithParallax(cfg.MaxParallaxRad(), cfg.Parallax.Distance)(t.rig)
	camera.WithSmoothing(cfg.Parallax.Smoothing, cfg.Parallax.Blend)(t.rig)
}

// RegisterMaterials adds loaded materials to the clip registry. Call it once per loaded model,
// from the tick thread. If reveal is active the new materials are clipped immediately.
//
// Parameters:
//   - mats: the model's materials
func (t *Tour) RegisterMaterials(mats ...material.Material) {
	n := t.registry.Register(mats...)
	t.logger.Debug("materials registered", "added", n, "total", t.registry.Len())
}

// Scene returns the requested scene.
func (t *Tour) Scene() viewpoint.SceneID {
	return t.scene
}

// Section returns the requested section.
func (t *Tour) Section() int {
	return t.section
}

// Rig returns the camera rig.
func (t *Tour) Rig() *camera.Rig {
	return t.rig
}

// Overlay returns the reveal overlay.
func (t *Tour) Overlay() *reveal.Overlay {
	return t.overlay
}

// Registry returns the material clip registry.
func (t *Tour) Registry() *material.Registry {
	return t.registry
}

// Tick applies pending input, advances the camera to nowMs and returns the frame.
//
// Reveal is reconciled before section moves: leaving the qualifying state clears the clip
// plane and hands the camera back to the section's viewpoint, and entering it sends the
// camera to the reveal vantage instead of the section's viewpoint.
//
// Parameters:
//   - nowMs: the current time in milliseconds
//
// Returns:
//   - Frame: everything the renderer needs for this frame
func (t *Tour) Tick(nowMs float64) Frame {
	changed := t.scene != t.appliedScene || t.section != t.appliedSection
	if t.scene != t.appliedScene {
		t.rig.SetInvertY(t.scene.Detail())
	}
	t.appliedScene, t.appliedSection = t.scene, t.section

	activated, deactivated := t.overlay.Update(t.revealRequested, t.scene, t.section)
	switch {
	case activated:
		v := t.overlay.Vantage()
		t.rig.Override(v.Position, v.LookAt, t.cfg.Timing.RevealMs, nowMs)
	case deactivated:
		t.rig.Release()
		t.moveToSection(nowMs)
	case changed && !t.overlay.Active():
		t.moveToSection(nowMs)
	}

	pose := t.rig.Tick(nowMs)
	return t.frame(nowMs, pose)
}

func (t *Tour) moveToSection(nowMs float64) {
	vp := t.table.Lookup(t.scene, t.section)
	t.rig.MoveTo(vp.Position, vp.LookAt, t.cfg.LookAtMs(t.scene), nowMs)
	t.logger.Debug("section applied", "scene", t.scene, "section", t.section)
}
