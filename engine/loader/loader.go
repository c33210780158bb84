package loader

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-tour/engine/model"
	"golang.org/x/sync/singleflight"
)

// LoaderBackendType identifies the model file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeGLTF selects the glTF/GLB loader backend.
	BackendTypeGLTF LoaderBackendType = iota
)

// Result is the outcome of one asynchronous load.
type Result struct {
	Path  string
	Model model.Model
	Err   error
}

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	logger *slog.Logger

	modelCache map[string]model.Model
	inflight   singleflight.Group

	backend loaderBackend

	workers  int
	pool     worker.DynamicWorkerPool
	poolOnce sync.Once
	taskMu   sync.Mutex
	taskID   int
}

// Loader defines the public-facing interface for loading and caching 3D models.
// It abstracts the file format (glTF, GLB, etc.) behind a generic backend and
// manages a cache of previously loaded models. All methods are safe for concurrent use.
type Loader interface {
	// Load imports a model file and caches the result.
	// If the model is already cached (by file path), the cached version is returned.
	// Concurrent loads of the same path share one import.
	//
	// Parameters:
	//   - path: the file path to the model file
	//
	// Returns:
	//   - model.Model: the loaded and cached model
	//   - error: error if loading fails
	Load(path string) (model.Model, error)

	// LoadReader imports a model from a reader stream and caches it by the given name.
	//
	// Parameters:
	//   - name: the cache key for the loaded model
	//   - r: the reader providing model data
	//   - isGLB: true if the reader provides GLB binary data
	//
	// Returns:
	//   - model.Model: the loaded model
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader, isGLB bool) (model.Model, error)

	// LoadAsync submits one load per path to the loader's worker pool and returns a channel
	// that receives one Result per path, in completion order, and is closed afterwards.
	// The channel is buffered for every result, so an abandoned channel never blocks a worker.
	//
	// Parameters:
	//   - paths: the model files to load
	//
	// Returns:
	//   - <-chan Result: the results
	LoadAsync(paths ...string) <-chan Result

	// Get retrieves a cached model by name. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - model.Model: the cached model or nil
	Get(name string) model.Model

	// Models returns a copy of the model cache.
	//
	// Returns:
	//   - map[string]model.Model: all cached models keyed by name
	Models() map[string]model.Model
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the type of loader backend to use (e.g., BackendTypeGLTF)
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		logger:     slog.Default(),
		modelCache: make(map[string]model.Model),
		workers:    2,
	}

	switch backendType {
	case BackendTypeGLTF:
		l.backend = newGLTFLoaderBackend()
	}

	for _, option := range options {
		option(l)
	}
	return l
}

func (l *loader) Load(path string) (model.Model, error) {
	if cached := l.Get(path); cached != nil {
		return cached, nil
	}

	backend, err := l.resolveBackend(path)
	if err != nil {
		return nil, err
	}

	v, err, shared := l.inflight.Do(path, func() (any, error) {
		if cached := l.Get(path); cached != nil {
			return cached, nil
		}
		start := time.Now()
		m, err := backend.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
		l.store(path, m)
		l.logger.Info("[Loader] model loaded", "path", path, "materials", len(m.Materials()),
			"primitives", m.PrimitiveCount(), "elapsed", time.Since(start))
		return m, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		l.logger.Debug("[Loader] shared in-flight load", "path", path)
	}
	return v.(model.Model), nil
}

func (l *loader) LoadReader(name string, r io.Reader, isGLB bool) (model.Model, error) {
	if cached := l.Get(name); cached != nil {
		return cached, nil
	}

	m, err := l.backend.LoadReader(r, isGLB, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load from reader %q: %w", name, err)
	}

	l.store(name, m)
	return m, nil
}

func (l *loader) LoadAsync(paths ...string) <-chan Result {
	results := make(chan Result, len(paths))
	if len(paths) == 0 {
		close(results)
		return results
	}

	pool := l.workerPool()
	var wg sync.WaitGroup
	wg.Add(len(paths))
	for _, path := range paths {
		p := path
		pool.SubmitTask(worker.Task{
			ID: l.nextTaskID(),
			Do: func() (any, error) {
				defer wg.Done()
				m, err := l.Load(p)
				if err != nil {
					l.logger.Error("[Loader] async load failed", "path", p, "err", err)
				}
				results <- Result{Path: p, Model: m, Err: err}
				return m, err
			},
		})
	}

	go func() {
		wg.Wait()
		close(results)
	}()
	return results
}

func (l *loader) Get(name string) model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.modelCache[name]
}

func (l *loader) Models() map[string]model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]model.Model, len(l.modelCache))
	for k, v := range l.modelCache {
		result[k] = v
	}
	return result
}

func (l *loader) store(key string, m model.Model) {
	l.mu.Lock()
	l.modelCache[key] = m
	l.mu.Unlock()
}

// workerPool lazily creates the pool so loaders that never load asynchronously own no goroutines.
func (l *loader) workerPool() worker.DynamicWorkerPool {
	l.poolOnce.Do(func() {
		l.pool = worker.NewDynamicWorkerPool(l.workers, 64, 1*time.Second)
	})
	return l.pool
}

func (l *loader) nextTaskID() int {
	l.taskMu.Lock()
	defer l.taskMu.Unlock()
	l.taskID++
	return l.taskID
}

// resolveBackend selects an appropriate loader backend based on the file extension.
// Currently only glTF/GLB is supported.
func (l *loader) resolveBackend(path string) (loaderBackend, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".gltf", ".glb":
		return l.backend, nil
	default:
		return nil, fmt.Errorf("unsupported model format: %s", ext)
	}
}
