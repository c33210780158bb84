package renderer

// RendererBackendType identifies the backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota

	// BackendTypeLog selects a headless backend that writes a line to the renderer's logger
	// whenever the drawn state changes. It needs no window.
	BackendTypeLog
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// RendererBackend is implemented by each backend. The Renderer serializes calls into it.
type RendererBackend interface {
	// ConfigureSurface (re)configures the presentation surface for the given size.
	//
	// Parameters:
	//   - width: the surface width in pixels
	//   - height: the surface height in pixels
	//
	// Returns:
	//   - error: error if the surface cannot be configured
	ConfigureSurface(width, height int) error

	// SetPresentMode sets the present mode used by the next ConfigureSurface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// DrawFrame draws one prepared frame and presents it.
	//
	// Parameters:
	//   - state: the frame to draw
	//
	// Returns:
	//   - error: error if the frame could not be drawn
	DrawFrame(state FrameState) error

	// Release frees every backend resource. The backend is unusable afterwards.
	Release()
}
