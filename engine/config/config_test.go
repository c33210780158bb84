package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-tour/engine/viewpoint"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmptyYieldsDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseOverrides(t *testing.T) {
	src := `
window: {title: Redoubts, width: 800, height: 600}
timing:
  site_look_at_ms: 4000
parallax: {max_degrees: 10}
profiling: true
viewpoints:
  redoubt-4:
    - {position: [10, 20, 30], look_at: [0, 0, 0]}
`
	cfg, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, "Redoubts", cfg.Window.Title)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 4000.0, cfg.Timing.SiteLookAtMs)
	assert.Equal(t, 4000.0, cfg.Timing.PositionMs, "unset fields keep defaults")
	assert.True(t, cfg.Profiling)
	assert.InDelta(t, mgl32.DegToRad(10), cfg.MaxParallaxRad(), 1e-6)

	table, err := cfg.Table()
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len(viewpoint.SceneSiteA))
	assert.Equal(t, mgl32.Vec3{10, 20, 30}, table.Lookup(viewpoint.SceneSiteA, 0).Position)
	assert.Equal(t, viewpoint.DefaultTable().Lookup(viewpoint.SceneLobby, 1), table.Lookup(viewpoint.SceneLobby, 1))
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse(strings.NewReader("camera_speed: 3\n"))
	assert.ErrorContains(t, err, "failed to decode config")
}

func TestValidateJoinsDefects(t *testing.T) {
	src := `
timing: {position_ms: -1}
parallax: {max_degrees: 120, smoothing: 2}
viewpoints:
  basement: []
`
	_, err := Parse(strings.NewReader(src))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	assert.ErrorContains(t, err, "timing.position_ms -1 is negative")
	assert.ErrorContains(t, err, "parallax.max_degrees 120")
	assert.ErrorContains(t, err, "parallax.smoothing 2")
	assert.ErrorContains(t, err, `unknown scene "basement"`)
}

func TestValidateRejectsMalformedViewpoints(t *testing.T) {
	src := `
viewpoints:
  lobby:
    - {position: [1, 1, 1], look_at: [1, 1, 1]}
`
	_, err := Parse(strings.NewReader(src))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	assert.True(t, errors.Is(err, viewpoint.ErrInvalidViewpoint))
}

func TestLookAtMs(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 4000.0, cfg.LookAtMs(viewpoint.SceneLobby))
	assert.Equal(t, 1500.0, cfg.LookAtMs(viewpoint.SceneSiteB))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tour.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tick_rate: 30\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 30.0, cfg.TickRate)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")
}

func TestWatchDeliversValidReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tour.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tick_rate: 30\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	updates, err := Watch(ctx, path, nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("tick_rate: 90\n"), 0o644))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-updates:
			if cfg.TickRate == 90 {
				cancel()
				return
			}
		case <-deadline:
			t.Fatal("no reload delivered")
		}
	}
}

func TestSampleConfigMatchesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "tour.yaml"))
	require.NoError(t, err)

	d := Default()
	assert.Equal(t, d.Window, cfg.Window)
	assert.Equal(t, d.Timing, cfg.Timing)
	assert.Equal(t, d.Parallax, cfg.Parallax)
	assert.Equal(t, d.Reveal, cfg.Reveal)
	assert.Equal(t, d.TickRate, cfg.TickRate)
	assert.Equal(t, d.Model, cfg.Model)

	table, err := cfg.Table()
	require.NoError(t, err)
	for i := range viewpoint.SceneSiteA.SectionCount() {
		assert.Equal(t, viewpoint.DefaultTable().Lookup(viewpoint.SceneSiteA, i), table.Lookup(viewpoint.SceneSiteA, i))
	}
}
