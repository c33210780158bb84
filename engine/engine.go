// Package engine runs the tour: a tick goroutine that applies queued input and advances the
// tour, a render goroutine that draws the latest frame, and the window's event loop on the
// calling thread.
package engine

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-tour/engine/profiler"
	"github.com/Carmen-Shannon/oxy-tour/engine/renderer"
	"github.com/Carmen-Shannon/oxy-tour/engine/tour"
	"github.com/Carmen-Shannon/oxy-tour/engine/window"
)

// engine is the implementation of the Engine interface.
type engine struct {
	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running atomic.Bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	logger   *slog.Logger
	window   window.Window
	tour     *tour.Tour
	renderer renderer.Renderer

	profiler         *profiler.Profiler
	profilingEnabled atomic.Bool

	engineTickRate   time.Duration
	renderFrameLimit atomic.Int64 // minimum frame duration in ns; 0 = uncapped
	tickCallback     func(frame tour.Frame)

	now   func() time.Time
	start time.Time

	postMu sync.Mutex
	posted []func()

	frameMu  sync.RWMutex
	frame    tour.Frame
	hasFrame bool
}

// Engine is the main entry point for the engine.
// It orchestrates the tick loop, render loop, and window management around a single Tour.
//
// The Tour is owned by the tick goroutine. Input from window callbacks or other goroutines
// reaches it through Post.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance, or nil when running headless
	Window() window.Window

	// Tour returns the tour the engine drives. Only touch it from functions passed to Post
	// or the tick callback.
	//
	// Returns:
	//   - *tour.Tour: the tour
	Tour() *tour.Tour

	// Renderer returns the renderer frames are drawn with.
	//
	// Returns:
	//   - renderer.Renderer: the renderer, or nil if frames are not drawn
	Renderer() renderer.Renderer

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in frames per second.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called on the tick goroutine after each tour tick.
	// Must be set before Run.
	//
	// Parameters:
	//   - callback: function receiving the frame the tick produced
	SetTickCallback(callback func(frame tour.Frame))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Post queues fn to run on the tick goroutine before the next tour tick.
	// Functions run in the order they were posted. Safe for concurrent use.
	//
	// Parameters:
	//   - fn: the function to run; nil is ignored
	Post(fn func())

	// Frame returns the most recent frame produced by the tick goroutine.
	//
	// Returns:
	//   - tour.Frame: the latest frame
	//   - bool: false until the first tick has run
	Frame() (tour.Frame, bool)

	// Run starts the engine loops. With a window it blocks until the window closes; without
	// one it blocks until Quit is called.
	Run()

	// Quit signals all engine goroutines to stop.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// The tour defaults to tour.NewTour() and the tick rate to 60Hz.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, etc.)
//
// Returns:
//   - Engine: a new engine instance configured with the provided options
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		logger:          slog.Default(),
		engineTickRate:  time.Second / 60,
		now:             time.Now,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.tour == nil {
		e.tour = tour.NewTour(tour.WithLogger(e.logger))
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger))
	}
	e.start = e.now()

	if e.window != nil {
		e.window.SetResizeCallback(func(width, height int) {
			if e.renderer != nil {
				if err := e.renderer.Resize(width, height); err != nil {
					e.logger.Warn("[Engine] resize failed", "width", width, "height", height, "err", err)
				}
			}
			if height <= 0 {
				return
			}
			aspect := float32(width) / float32(height)
			e.Post(func() {
				e.tour.Rig().Camera().SetAspect(aspect)
			})
		})
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Tour() *tour.Tour {
	return e.tour
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Run() {
	e.handle()
	if e.window != nil {
		e.window.ProcessMessages()
		e.signalQuit()
	}
	e.wg.Wait()
}

// Quit signals all engine goroutines to stop.
// Safe to call multiple times; subsequent calls are no-ops.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel exactly once, causing all goroutines
// selecting on it to exit.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.running.Store(false)
		close(e.quitChannel)
	})
}

// handle starts the engine goroutines. The render goroutine only runs when there is a
// renderer to draw with.
func (e *engine) handle() {
	e.running.Store(true)
	e.wg.Add(2)
	go e.handleEngine()
	go e.handleQuit()
	if e.renderer != nil {
		e.wg.Add(1)
		go e.handleRender()
	}
}

// handleEngine runs the tick loop at the configured tick rate.
func (e *engine) handleEngine() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			e.tick(e.elapsedMs())
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

// tick drains posted work, advances the tour and publishes the frame.
func (e *engine) tick(nowMs float64) tour.Frame {
	e.postMu.Lock()
	posted := e.posted
	e.posted = nil
	e.postMu.Unlock()

	for _, fn := range posted {
		fn()
	}

	frame := e.tour.Tick(nowMs)

	e.frameMu.Lock()
	e.frame = frame
	e.hasFrame = true
	e.frameMu.Unlock()

	if e.tickCallback != nil {
		e.tickCallback(frame)
	}
	return frame
}

// handleRender draws the latest frame as often as the frame limit allows.
// A panic here shuts the engine down instead of crashing the process.
func (e *engine) handleRender() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("[Engine] render goroutine recovered from panic", "panic", r)
			e.signalQuit()
		}
	}()

	var lastErr string
	for {
		select {
		case <-e.quitChannel:
			return
		default:
			frameStart := e.now()

			if frame, ok := e.Frame(); ok {
				if err := e.renderer.Draw(frame); err != nil {
					if err.Error() != lastErr {
						e.logger.Warn("[Engine] draw failed", "err", err)
						lastErr = err.Error()
					}
				} else {
					lastErr = ""
				}
			}

			if e.profilingEnabled.Load() {
				e.profiler.Tick()
			}

			// Sleep for remaining time if frame limit is set
			if limit := time.Duration(e.renderFrameLimit.Load()); limit > 0 {
				if remaining := limit - e.now().Sub(frameStart); remaining > 0 {
					time.Sleep(remaining)
				}
			}
		}
	}
}

// handleQuit waits for the quit signal.
func (e *engine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel
	e.logger.Info("[Engine] stopping")
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

// SetTickRate sets the engine tick rate in frames per second.
// If the engine is running, sends the new rate via channel for thread-safe update.
func (e *engine) SetTickRate(fps float64) {
	newRate := tickInterval(fps)

	if e.running.Load() {
		// Non-blocking send: if channel already has a pending value,
		// drain it and replace with the new rate.
		select {
		case e.tickRateChannel <- newRate:
		default:
			// Channel full, drain and resend
			select {
			case <-e.tickRateChannel:
			default:
			}
			e.tickRateChannel <- newRate
		}
	} else {
		// Not running yet, safe to set directly
		e.engineTickRate = newRate
	}
}

func (e *engine) SetTickCallback(callback func(frame tour.Frame)) {
	e.tickCallback = callback
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap (default).
func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit.Store(0)
		return
	}
	e.renderFrameLimit.Store(int64(tickInterval(fps)))
}

func (e *engine) Post(fn func()) {
	if fn == nil {
		return
	}
	e.postMu.Lock()
	e.posted = append(e.posted, fn)
	e.postMu.Unlock()
}

func (e *engine) Frame() (tour.Frame, bool) {
	e.frameMu.RLock()
	defer e.frameMu.RUnlock()
	return e.frame, e.hasFrame
}

func (e *engine) elapsedMs() float64 {
	return float64(e.now().Sub(e.start)) / float64(time.Millisecond)
}

// tickInterval converts a rate in Hz to a period, treating non-positive rates as 60Hz.
func tickInterval(fps float64) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Duration(float64(time.Second) / fps)
}
