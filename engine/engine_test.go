package engine

import (
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-tour/engine/profiler"
	"github.com/Carmen-Shannon/oxy-tour/engine/renderer"
	"github.com/Carmen-Shannon/oxy-tour/engine/tour"
	"github.com/Carmen-Shannon/oxy-tour/engine/viewpoint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestEngine(t *testing.T, options ...EngineBuilderOption) *engine {
	t.Helper()
	options = append([]EngineBuilderOption{WithLogger(discard)}, options...)
	e, ok := NewEngine(options...).(*engine)
	require.True(t, ok)
	return e
}

func TestPostRunsInOrderBeforeTick(t *testing.T) {
	e := newTestEngine(t)

	_, ok := e.Frame()
	assert.False(t, ok)

	var order []int
	e.Post(func() { order = append(order, 1) })
	e.Post(nil)
	e.Post(func() {
		order = append(order, 2)
		e.Tour().SetScene(viewpoint.SceneSiteA)
		e.Tour().SetSection(2)
	})

	frame := e.tick(0)
	assert.Equal(t, []int{1, 2}, order)
	assert.Equal(t, viewpoint.SceneSiteA, frame.Scene)
	assert.Equal(t, 2, frame.Section)

	latest, ok := e.Frame()
	require.True(t, ok)
	assert.Equal(t, frame.Section, latest.Section)

	// posted work runs once
	e.tick(16)
	assert.Equal(t, []int{1, 2}, order)
}

func TestTickCallback(t *testing.T) {
	e := newTestEngine(t)
	var got []float64
	e.SetTickCallback(func(frame tour.Frame) { got = append(got, frame.NowMs) })

	e.tick(0)
	e.tick(16)
	assert.Equal(t, []float64{0, 16}, got)
}

func TestElapsedMs(t *testing.T) {
	clock := time.Unix(100, 0)
	e := newTestEngine(t, func(e *engine) { e.now = func() time.Time { return clock } })

	assert.Zero(t, e.elapsedMs())
	clock = clock.Add(1500 * time.Millisecond)
	assert.InDelta(t, 1500, e.elapsedMs(), 1e-9)
}

func TestSetTickRate(t *testing.T) {
	e := newTestEngine(t, WithTickRate(-5))
	assert.Equal(t, time.Second/60, e.engineTickRate)

	e.SetTickRate(30)
	assert.Equal(t, time.Second/30, e.engineTickRate)

	e.running.Store(true)
	e.SetTickRate(10)
	e.SetTickRate(20)
	assert.Equal(t, time.Second/30, e.engineTickRate)
	assert.Equal(t, 50*time.Millisecond, <-e.tickRateChannel)
	assert.Empty(t, e.tickRateChannel)
}

func TestSetRenderFrameLimit(t *testing.T) {
	e := newTestEngine(t, WithRenderFrameLimit(50))
	assert.Equal(t, int64(20*time.Millisecond), e.renderFrameLimit.Load())

	e.SetRenderFrameLimit(0)
	assert.Zero(t, e.renderFrameLimit.Load())
}

func TestRunHeadlessUntilQuit(t *testing.T) {
	r, err := renderer.NewRenderer(renderer.BackendTypeLog, nil, renderer.WithLogger(discard))
	require.NoError(t, err)
	defer r.Release()

	prof := profiler.NewProfiler(profiler.WithLogger(discard), profiler.WithInterval(time.Millisecond))
	e := newTestEngine(t, WithRenderer(r), WithTickRate(200), WithRenderFrameLimit(200),
		WithProfiling(true), WithProfiler(prof))
	assert.Same(t, r, e.Renderer())
	assert.Nil(t, e.Window())

	var ticks atomic.Int32
	e.SetTickCallback(func(tour.Frame) { ticks.Add(1) })
	e.Post(func() { e.Tour().SetSection(3) })

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()

	require.Eventually(t, func() bool { return ticks.Load() >= 10 }, 2*time.Second, 5*time.Millisecond)
	frame, ok := e.Frame()
	require.True(t, ok)
	assert.Equal(t, 3, frame.Section)

	e.Quit()
	e.Quit()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Quit")
	}
	assert.False(t, e.running.Load())
	assert.Greater(t, prof.Last().FPS, 0.0)
}
