package renderer

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/reveal"
	"github.com/Carmen-Shannon/oxy-tour/engine/tour"
	"github.com/Carmen-Shannon/oxy-tour/engine/viewpoint"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogRenderer(t *testing.T) (Renderer, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	r, err := NewRenderer(BackendTypeLog, nil, WithLogger(logger), WithPresentMode(PresentModeUncapped))
	require.NoError(t, err)
	return r, &buf
}

func TestFrameStateSceneColor(t *testing.T) {
	s := NewFrameState(tour.Frame{Scene: viewpoint.SceneSiteA, Section: 2})

	assert.Equal(t, viewpoint.SceneSiteA, s.Scene)
	assert.Equal(t, 2, s.Section)
	assert.InDelta(t, 157.0/255, s.ClearColor[0], 1e-6)
	assert.InDelta(t, 180.0/255, s.ClearColor[1], 1e-6)
	assert.InDelta(t, 192.0/255, s.ClearColor[2], 1e-6)
	assert.Equal(t, float32(1), s.ClearColor[3])
	assert.Zero(t, s.Clip.Enabled)

	unknown := NewFrameState(tour.Frame{Scene: viewpoint.SceneID(42)})
	assert.InDelta(t, 26.0/255, unknown.ClearColor[0], 1e-6)
}

func TestFrameStateReveal(t *testing.T) {
	plane := common.NewPlaneFromNormalAndCoplanarPoint(mgl32.Vec3{1, 0, 0}, mgl32.Vec3{10, 0, 0})
	frame := tour.Frame{
		Scene:     viewpoint.SceneSiteA,
		Reveal:    true,
		ClipPlane: &plane,
		Overlays:  reveal.OverlayPlanes(mgl32.Vec3{10, 0, 0}),
		MaterialClips: []tour.MaterialClip{
			{Material: "stone", Planes: []common.Plane{plane}},
		},
	}

	s := NewFrameState(frame)
	assert.Equal(t, uint32(1), s.Clip.Enabled)
	assert.Equal(t, [4]float32{1, 0, 0, -10}, s.Clip.Plane)
	assert.Equal(t, 1, s.Materials)

	// 60% of the way from the site background to the soil color
	assert.InDelta(t, (157+(107-157)*0.6)/255, s.ClearColor[0], 1e-5)
	assert.InDelta(t, (180+(68-180)*0.6)/255, s.ClearColor[1], 1e-5)
	assert.InDelta(t, (192+(35-192)*0.6)/255, s.ClearColor[2], 1e-5)
}

func TestClipUniformLayout(t *testing.T) {
	u := GPUClipUniform{Plane: [4]float32{0, 1, 0, 2}, Enabled: 1}
	assert.Len(t, u.Bytes(), 32)
}

func TestLogRendererReportsChangesOnly(t *testing.T) {
	r, buf := newLogRenderer(t)
	assert.Equal(t, BackendTypeLog, r.BackendType())
	assert.Contains(t, buf.String(), "[Renderer] created")
	buf.Reset()

	frame := tour.Frame{Scene: viewpoint.SceneLobby}
	for range 3 {
		require.NoError(t, r.Draw(frame))
	}
	assert.Equal(t, 1, strings.Count(buf.String(), "[Renderer] frame"))

	frame.Section = 1
	frame.Transitioning = true
	require.NoError(t, r.Draw(frame))
	require.NoError(t, r.Draw(frame))
	assert.Equal(t, 2, strings.Count(buf.String(), "[Renderer] frame"))
	assert.Contains(t, buf.String(), "section=1")

	require.NoError(t, r.Resize(800, 600))
}

func TestRendererRelease(t *testing.T) {
	r, buf := newLogRenderer(t)
	require.NoError(t, r.Draw(tour.Frame{}))

	r.Release()
	r.Release()
	assert.Equal(t, 1, strings.Count(buf.String(), "[Renderer] released"))
	assert.ErrorIs(t, r.Draw(tour.Frame{}), errRendererReleased)
	assert.ErrorIs(t, r.Resize(1, 1), errRendererReleased)
}

func TestNewRendererErrors(t *testing.T) {
	_, err := NewRenderer(BackendTypeWGPU, nil)
	assert.ErrorContains(t, err, "window is required")

	_, err = NewRenderer(RendererBackendType(9), nil)
	assert.ErrorContains(t, err, "unknown renderer backend")
	assert.Equal(t, "backend(9)", RendererBackendType(9).String())
}
