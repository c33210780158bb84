// Command tour opens the virtual tour in a window. The wheel and arrow keys page through the
// current scene's sections, 1-4 switch scenes, G toggles the GPR reveal and the mouse drives
// the parallax look-around.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine"
	"github.com/Carmen-Shannon/oxy-tour/engine/camera"
	"github.com/Carmen-Shannon/oxy-tour/engine/config"
	"github.com/Carmen-Shannon/oxy-tour/engine/loader"
	"github.com/Carmen-Shannon/oxy-tour/engine/renderer"
	"github.com/Carmen-Shannon/oxy-tour/engine/tour"
	"github.com/Carmen-Shannon/oxy-tour/engine/viewpoint"
	"github.com/Carmen-Shannon/oxy-tour/engine/window"
)

const defaultConfigPath = "tour.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to the YAML config")
	backend := flag.String("renderer", "wgpu", "renderer backend: wgpu or log")
	sceneName := flag.String("scene", "lobby", "scene to open on")
	profiling := flag.Bool("profile", false, "log frame and memory stats every second")
	vsync := flag.Bool("vsync", true, "wait for vertical blank when presenting")
	software := flag.Bool("software", false, "force a software WebGPU adapter")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	opts := options{
		configPath: *configPath,
		backend:    *backend,
		scene:      *sceneName,
		profiling:  *profiling,
		vsync:      *vsync,
		software:   *software,
	}
	if err := run(logger, opts); err != nil {
		logger.Error("tour exited", "err", err)
		os.Exit(1)
	}
}

// options carries the command-line flags.
type options struct {
	configPath string
	backend    string
	scene      string
	profiling  bool
	vsync      bool
	software   bool
}

func run(logger *slog.Logger, opts options) error {
	cfg, watchConfig, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	scene, err := viewpoint.ParseSceneID(opts.scene)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
		window.WithSizeLimits(600, 400, 0, 0),
	)
	if err != nil {
		return err
	}

	rend, err := newRenderer(logger, opts, win)
	if err != nil {
		win.Close()
		return err
	}

	t := tour.NewTour(tour.WithLogger(logger), tour.WithConfig(cfg), tour.WithScene(scene))
	if w, h := win.Width(), win.Height(); h > 0 {
		t.Rig().Camera().SetAspect(float32(w) / float32(h))
	}

	eng := engine.NewEngine(
		engine.WithLogger(logger),
		engine.WithWindow(win),
		engine.WithTour(t),
		engine.WithRenderer(rend),
		engine.WithTickRate(cfg.TickRate),
		engine.WithProfiling(opts.profiling || cfg.Profiling),
	)
	if rend.BackendType() == renderer.BackendTypeLog {
		eng.SetRenderFrameLimit(cfg.TickRate)
	}

	setupInput(eng, scene, cfg.Timing.PageDebounceMs, opts.profiling || cfg.Profiling)
	loadModel(logger, eng, cfg.Model)

	if watchConfig {
		reloads, err := config.Watch(ctx, opts.configPath, logger)
		if err != nil {
			logger.Warn("config hot reload disabled", "err", err)
		} else {
			go forwardReloads(eng, reloads)
		}
	}

	// the window must be closed from its own thread
	win.SetUpdateCallback(func() {
		if ctx.Err() != nil {
			win.Close()
		}
	})

	logger.Info("starting tour", "scene", scene, "renderer", rend.BackendType().String(), "config", opts.configPath)
	eng.Run()

	rend.Release()
	return win.Close()
}

// loadConfig reads the config file. A missing file at the default path falls back to the
// built-in defaults and disables watching.
func loadConfig(path string) (config.Config, bool, error) {
	cfg, err := config.Load(path)
	switch {
	case err == nil:
		return cfg, true, nil
	case errors.Is(err, fs.ErrNotExist) && path == defaultConfigPath:
		return config.Default(), false, nil
	default:
		return config.Config{}, false, err
	}
}

// newRenderer creates the requested backend. A failed WebGPU setup falls back to the log
// backend so the tour still runs.
func newRenderer(logger *slog.Logger, opts options, win window.Window) (renderer.Renderer, error) {
	mode := renderer.PresentModeUncapped
	if opts.vsync {
		mode = renderer.PresentModeVSync
	}
	rendOpts := []renderer.RendererBuilderOption{
		renderer.WithLogger(logger),
		renderer.WithPresentMode(mode),
		renderer.WithForceSoftwareRenderer(opts.software),
	}

	switch opts.backend {
	case "log":
		return renderer.NewRenderer(renderer.BackendTypeLog, nil, rendOpts...)
	case "wgpu":
		r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, win, rendOpts...)
		if err == nil {
			return r, nil
		}
		logger.Warn("webgpu unavailable, falling back to log renderer", "err", err)
		return renderer.NewRenderer(renderer.BackendTypeLog, nil, rendOpts...)
	default:
		return nil, fmt.Errorf("unknown renderer %q", opts.backend)
	}
}

// setupInput wires window events to the tour. Callbacks run on the window thread and hand
// every tour change to the tick goroutine through Post.
//
// Parameters:
//   - eng: the engine instance providing the window and tour
//   - scene: the scene the tour opens on
//   - debounceMs: the wheel paging quiet period
//   - profiling: whether the profiler starts enabled; L toggles it
func setupInput(eng engine.Engine, scene viewpoint.SceneID, debounceMs float64, profiling bool) {
	win := eng.Window()
	t := eng.Tour()
	start := time.Now()
	pager := window.NewPager(scene.SectionCount(), debounceMs)
	reveal := false

	setSection := func(section int) {
		eng.Post(func() { t.SetSection(section) })
	}
	page := func(dir int) {
		n := scene.SectionCount()
		pager.Sync((pager.Section() + dir + n) % n)
		setSection(pager.Section())
	}

	win.SetScrollCallback(func(delta float32) {
		nowMs := float64(time.Since(start)) / float64(time.Millisecond)
		if section, changed := pager.Scroll(delta, nowMs); changed {
			setSection(section)
		}
	})

	win.SetKeyDownCallback(func(keyCode uint32) {
		switch keyCode {
		case common.Key1, common.Key2, common.Key3, common.Key4:
			next := viewpoint.Scenes[keyCode-common.Key1]
			if next == scene {
				return
			}
			scene = next
			reveal = false
			pager.Reset(scene.SectionCount())
			eng.Post(func() { t.SetScene(next) })
		case common.KeyDown, common.KeyRight, common.KeyPageDown, common.KeySpace:
			page(1)
		case common.KeyUp, common.KeyLeft, common.KeyPageUp:
			page(-1)
		case common.KeyL:
			profiling = !profiling
			if profiling {
				eng.EnableProfiler()
			} else {
				eng.DisableProfiler()
			}
		case common.KeyG:
			reveal = !reveal
			on := reveal
			eng.Post(func() { t.SetRevealRequested(on) })
		}
	})

	win.SetMouseMoveCallback(func(x, y float64) {
		w, h := win.LogicalSize()
		px, py := camera.NormalizePointer(x, y, w, h)
		eng.Post(func() { t.SetPointer(px, py) })
	})

	win.SetCursorLeaveCallback(func() {
		eng.Post(func() { t.SetPointer(0, 0) })
	})
}

// loadModel loads the tour model in the background and registers its materials for clipping
// once it arrives.
func loadModel(logger *slog.Logger, eng engine.Engine, path string) {
	if path == "" {
		return
	}
	ldr := loader.NewLoader(loader.BackendTypeGLTF, loader.WithLogger(logger))
	results := ldr.LoadAsync(path)
	go func() {
		for res := range results {
			if res.Err != nil {
				logger.Warn("tour model unavailable, reveal will not clip", "path", res.Path, "err", res.Err)
				continue
			}
			m := res.Model
			eng.Post(func() {
				eng.Tour().RegisterMaterials(m.Materials()...)
			})
		}
	}()
}

// forwardReloads applies hot-reloaded configs on the tick goroutine.
func forwardReloads(eng engine.Engine, reloads <-chan config.Config) {
	for cfg := range reloads {
		eng.Post(func() { eng.Tour().SetConfig(cfg) })
		eng.SetTickRate(cfg.TickRate)
	}
}
