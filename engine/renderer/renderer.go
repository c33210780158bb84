// Package renderer draws tour frames. The WebGPU backend clears the window to the scene's
// background and stages the camera and clip uniforms; the log backend reports frame state
// changes without a GPU.
package renderer

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/oxy-tour/engine/tour"
	"github.com/Carmen-Shannon/oxy-tour/engine/window"
)

var errRendererReleased = errors.New("renderer released")

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	logger      *slog.Logger
	backendType RendererBackendType
	backend     RendererBackend
	released    bool

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
}

// Renderer defines the interface for the rendering system.
//
// A Renderer takes the tour's per-tick Frame and puts it on screen through its backend.
// Calls are serialized, so Draw may run on a render goroutine while Resize arrives from the
// window's event loop.
type Renderer interface {
	// Draw prepares and draws one frame.
	//
	// Parameters:
	//   - frame: the tour frame to draw
	//
	// Returns:
	//   - error: error if the backend failed to draw, or the renderer was released
	Draw(frame tour.Frame) error

	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when the surface size should change.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: error if the surface cannot be reconfigured
	Resize(width, height int) error

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	// Takes effect on the next Resize.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// BackendType returns the backend this renderer was created with.
	BackendType() RendererBackendType

	// Release frees the backend. Later calls to Draw return an error.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer with the specified backend type.
// The WGPU backend needs a window to create its surface from; the log backend ignores it.
//
// Parameters:
//   - backendType: the type of rendering backend to use
//   - win: the window to draw into; may be nil for BackendTypeLog
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the new renderer with its surface configured
//   - error: error if the backend could not be created
func NewRenderer(backendType RendererBackendType, win window.Window, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:          &sync.Mutex{},
		logger:      slog.Default(),
		backendType: backendType,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	width, height := 0, 0
	switch backendType {
	case BackendTypeLog:
		r.backend = newLogRendererBackend(r.logger)
	case BackendTypeWGPU:
		if win == nil {
			return nil, fmt.Errorf("wgpu renderer: window is required")
		}
		backend, err := newWGPURendererBackend(win.SurfaceDescriptor(), r.forceFallbackAdapter)
		if err != nil {
			return nil, fmt.Errorf("wgpu renderer: %w", err)
		}
		r.backend = backend
		width, height = win.Width(), win.Height()
	default:
		return nil, fmt.Errorf("unknown renderer backend %d", backendType)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}

	if err := r.backend.ConfigureSurface(width, height); err != nil {
		r.backend.Release()
		return nil, err
	}
	r.logger.Info("[Renderer] created", "backend", backendType.String(), "width", width, "height", height)
	return r, nil
}

func (r *renderer) Draw(frame tour.Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return errRendererReleased
	}
	return r.backend.DrawFrame(NewFrameState(frame))
}

func (r *renderer) Resize(width, height int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return errRendererReleased
	}
	return r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.SetPresentMode(mode)
}

func (r *renderer) BackendType() RendererBackendType {
	return r.backendType
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return
	}
	r.released = true
	r.backend.Release()
}

// String returns the backend's name.
func (t RendererBackendType) String() string {
	switch t {
	case BackendTypeWGPU:
		return "wgpu"
	case BackendTypeLog:
		return "log"
	default:
		return fmt.Sprintf("backend(%d)", int(t))
	}
}
