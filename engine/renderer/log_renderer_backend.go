package renderer

import (
	"log/slog"
	"sync"
)

// logSummary is the part of a FrameState the log backend watches for changes.
type logSummary struct {
	scene         string
	section       int
	reveal        bool
	transitioning bool
	clip          bool
	materials     int
}

type logRendererBackendImpl struct {
	mu     *sync.Mutex
	logger *slog.Logger

	width, height int
	presentMode   PresentMode
	frames        uint64
	last          *logSummary
}

var _ RendererBackend = &logRendererBackendImpl{}

func newLogRendererBackend(logger *slog.Logger) *logRendererBackendImpl {
	return &logRendererBackendImpl{
		mu:     &sync.Mutex{},
		logger: logger,
	}
}

func (b *logRendererBackendImpl) ConfigureSurface(width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.width, b.height = width, height
	return nil
}

func (b *logRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.presentMode = mode
}

func (b *logRendererBackendImpl) DrawFrame(state FrameState) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.frames++
	s := logSummary{
		scene:         state.Scene.String(),
		section:       state.Section,
		reveal:        state.Reveal,
		transitioning: state.Transitioning,
		clip:          state.Clip.Enabled != 0,
		materials:     state.Materials,
	}
	if b.last != nil && *b.last == s {
		return nil
	}
	b.last = &s

	pos := state.Camera.CameraPosition
	b.logger.Info("[Renderer] frame",
		"frame", b.frames, "scene", s.scene, "section", s.section, "reveal", s.reveal,
		"transitioning", s.transitioning, "clip", s.clip, "materials", s.materials,
		"position", [3]float32{pos.X(), pos.Y(), pos.Z()})
	return nil
}

func (b *logRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.logger.Info("[Renderer] released", "frames", b.frames)
}
