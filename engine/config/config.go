// Package config loads the tour's YAML configuration: window, timing, parallax and reveal
// tuning, and optional per-scene viewpoint overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/viewpoint"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure returned from Load and Parse.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the full tour configuration. Zero fields are replaced by their defaults.
type Config struct {
	Window     Window                     `yaml:"window"`
	Timing     Timing                     `yaml:"timing"`
	Parallax   Parallax                   `yaml:"parallax"`
	Reveal     Reveal                     `yaml:"reveal"`
	Profiling  bool                       `yaml:"profiling"`
	TickRate   float64                    `yaml:"tick_rate"`
	Model      string                     `yaml:"model"`
	Viewpoints map[string][]ViewpointSpec `yaml:"viewpoints"`
}

// Window configures the demo driver's window.
type Window struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Timing holds move durations in milliseconds. Position and look-at moves are timed
// independently.
type Timing struct {
	PositionMs     float64 `yaml:"position_ms"`
	LobbyLookAtMs  float64 `yaml:"lobby_look_at_ms"`
	SiteLookAtMs   float64 `yaml:"site_look_at_ms"`
	RevealMs       float64 `yaml:"reveal_ms"`
	PageDebounceMs float64 `yaml:"page_debounce_ms"`
}

// Parallax tunes the pointer-driven look-around.
type Parallax struct {
	MaxDegrees float32 `yaml:"max_degrees"`
	Distance   float32 `yaml:"distance"`
	Smoothing  float32 `yaml:"smoothing"`
	Blend      float32 `yaml:"blend"`
}

// Reveal tunes the GPR vantage.
type Reveal struct {
	Offset float32 `yaml:"offset"`
}

// ViewpointSpec is one viewpoint as written in the config file.
type ViewpointSpec struct {
	Position [3]float32 `yaml:"position"`
	LookAt   [3]float32 `yaml:"look_at"`
}

// Default returns the built-in configuration.
//
// Returns:
//   - Config: the defaults
func Default() Config {
	return Config{
		Window: Window{Title: "Oxy Tour", Width: 1280, Height: 720},
		Timing: Timing{
			PositionMs:     4000,
			LobbyLookAtMs:  4000,
			SiteLookAtMs:   1500,
			RevealMs:       2000,
			PageDebounceMs: 800,
		},
		Parallax: Parallax{MaxDegrees: 20, Distance: 50, Smoothing: 0.07, Blend: 0.3},
		Reveal:   Reveal{Offset: 15},
		TickRate: 60,
		Model:    "models/castle-placeholder.glb",
	}
}

// Load reads, decodes and validates the config file at path.
//
// Parameters:
//   - path: the YAML file
//
// Returns:
//   - Config: the config with defaults applied
//   - error: error if the file cannot be read, decoded or validated
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates a YAML config. Unknown keys are rejected; an empty document
// yields the defaults.
//
// Parameters:
//   - r: the YAML source
//
// Returns:
//   - Config: the config with defaults applied
//   - error: error if decoding or validation fails
func Parse(r io.Reader) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	d := Default()
	c.Window.Title = common.Coalesce(c.Window.Title, d.Window.Title)
	c.Window.Width = common.Coalesce(c.Window.Width, d.Window.Width)
	c.Window.Height = common.Coalesce(c.Window.Height, d.Window.Height)
	c.Timing.PositionMs = common.Coalesce(c.Timing.PositionMs, d.Timing.PositionMs)
	c.Timing.LobbyLookAtMs = common.Coalesce(c.Timing.LobbyLookAtMs, d.Timing.LobbyLookAtMs)
	c.Timing.SiteLookAtMs = common.Coalesce(c.Timing.SiteLookAtMs, d.Timing.SiteLookAtMs)
	c.Timing.RevealMs = common.Coalesce(c.Timing.RevealMs, d.Timing.RevealMs)
	c.Timing.PageDebounceMs = common.Coalesce(c.Timing.PageDebounceMs, d.Timing.PageDebounceMs)
	c.Parallax.MaxDegrees = common.Coalesce(c.Parallax.MaxDegrees, d.Parallax.MaxDegrees)
	c.Parallax.Distance = common.Coalesce(c.Parallax.Distance, d.Parallax.Distance)
	c.Parallax.Smoothing = common.Coalesce(c.Parallax.Smoothing, d.Parallax.Smoothing)
	c.Parallax.Blend = common.Coalesce(c.Parallax.Blend, d.Parallax.Blend)
	c.Reveal.Offset = common.Coalesce(c.Reveal.Offset, d.Reveal.Offset)
	c.TickRate = common.Coalesce(c.TickRate, d.TickRate)
	c.Model = common.Coalesce(c.Model, d.Model)
}

// Validate reports every out-of-range setting and viewpoint defect, joined.
//
// Returns:
//   - error: nil, or the joined defects, each wrapping ErrInvalidConfig
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	check(c.Timing.PositionMs >= 0, "timing.position_ms %v is negative", c.Timing.PositionMs)
	check(c.Timing.LobbyLookAtMs >= 0, "timing.lobby_look_at_ms %v is negative", c.Timing.LobbyLookAtMs)
	check(c.Timing.SiteLookAtMs >= 0, "timing.site_look_at_ms %v is negative", c.Timing.SiteLookAtMs)
	check(c.Timing.RevealMs >= 0, "timing.reveal_ms %v is negative", c.Timing.RevealMs)
	check(c.Timing.PageDebounceMs >= 0, "timing.page_debounce_ms %v is negative", c.Timing.PageDebounceMs)
	check(c.Parallax.MaxDegrees > 0 && c.Parallax.MaxDegrees < 90, "parallax.max_degrees %v must be in (0, 90)", c.Parallax.MaxDegrees)
	check(c.Parallax.Distance > 0, "parallax.distance %v must be positive", c.Parallax.Distance)
	check(c.Parallax.Smoothing > 0 && c.Parallax.Smoothing <= 1, "parallax.smoothing %v must be in (0, 1]", c.Parallax.Smoothing)
	check(c.Parallax.Blend >= 0 && c.Parallax.Blend <= 1, "parallax.blend %v must be in [0, 1]", c.Parallax.Blend)
	check(c.Reveal.Offset > 0, "reveal.offset %v must be positive", c.Reveal.Offset)
	check(c.TickRate > 0, "tick_rate %v must be positive", c.TickRate)

	for name := range c.Viewpoints {
		_, err := viewpoint.ParseSceneID(name)
		check(err == nil, "viewpoints: %v", err)
	}
	if len(errs) == 0 {
		if _, err := c.Table(); err != nil {
			errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidConfig, err))
		}
	}
	return errors.Join(errs...)
}

// Table builds the viewpoint table: the defaults with every configured scene replaced.
//
// Returns:
//   - *viewpoint.Table: the table
//   - error: error if a scene name is unknown or the table fails validation
func (c Config) Table() (*viewpoint.Table, error) {
	table := viewpoint.DefaultTable()
	for name, specs := range c.Viewpoints {
		scene, err := viewpoint.ParseSceneID(name)
		if err != nil {
			return nil, err
		}
		vps := make([]viewpoint.Viewpoint, len(specs))
		for i, s := range specs {
			vps[i] = viewpoint.Viewpoint{Position: mgl32.Vec3(s.Position), LookAt: mgl32.Vec3(s.LookAt)}
		}
		table = table.With(scene, vps)
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

// MaxParallaxRad returns the parallax deflection limit in radians.
func (c Config) MaxParallaxRad() float32 {
	return c.Parallax.MaxDegrees * math32.Pi / 180
}

// LookAtMs returns the look-at transition duration for a scene. The lobby turns slowly; the
// sites turn faster than the camera travels.
//
// Parameters:
//   - scene: the scene being entered
//
// Returns:
//   - float64: duration in milliseconds
func (c Config) LookAtMs(scene viewpoint.SceneID) float64 {
	if scene.Detail() {
		return c.Timing.SiteLookAtMs
	}
	return c.Timing.LobbyLookAtMs
}
