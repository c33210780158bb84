package tour

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-tour/engine/config"
	"github.com/Carmen-Shannon/oxy-tour/engine/material"
	"github.com/Carmen-Shannon/oxy-tour/engine/viewpoint"
)

// TourBuilderOption is a functional option for configuring a Tour.
type TourBuilderOption func(*Tour)

// WithLogger sets the logger shared by the tour, its rig and its overlay.
//
// Parameters:
//   - logger: the logger; nil keeps slog.Default()
//
// Returns:
//   - TourBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) TourBuilderOption {
	return func(t *Tour) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithConfig sets the configuration. Its viewpoint overrides are used unless WithTable is
// also given.
//
// Parameters:
//   - cfg: a validated configuration
//
// Returns:
//   - TourBuilderOption: option function to apply
func WithConfig(cfg config.Config) TourBuilderOption {
	return func(t *Tour) {
		t.cfg = cfg
	}
}

// WithTable sets the viewpoint table explicitly.
//
// Parameters:
//   - table: the viewpoint table
//
// Returns:
//   - TourBuilderOption: option function to apply
func WithTable(table *viewpoint.Table) TourBuilderOption {
	return func(t *Tour) {
		t.table = table
	}
}

// WithScene sets the scene the tour opens on.
//
// Parameters:
//   - scene: the opening scene; invalid scenes keep the lobby
//
// Returns:
//   - TourBuilderOption: option function to apply
func WithScene(scene viewpoint.SceneID) TourBuilderOption {
	return func(t *Tour) {
		if scene.Valid() {
			t.scene = scene
		}
	}
}

// WithRegistry sets the material registry, for materials registered before the tour exists.
//
// Parameters:
//   - registry: the registry
//
// Returns:
//   - TourBuilderOption: option function to apply
func WithRegistry(registry *material.Registry) TourBuilderOption {
	return func(t *Tour) {
		if registry != nil {
			t.registry = registry
		}
	}
}
