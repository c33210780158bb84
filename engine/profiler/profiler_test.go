package profiler

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestProfiler(t *testing.T) (*Profiler, *fakeClock, *bytes.Buffer) {
	t.Helper()
	clock := &fakeClock{t: time.Unix(0, 0)}
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	p := NewProfiler(WithLogger(logger), func(p *Profiler) { p.now = clock.now })
	return p, clock, &buf
}

func TestProfilerReportsOncePerInterval(t *testing.T) {
	p, clock, buf := newTestProfiler(t)

	for range 59 {
		clock.advance(16 * time.Millisecond)
		require.False(t, p.Tick())
	}
	assert.Empty(t, buf.String())

	clock.advance(56 * time.Millisecond)
	require.True(t, p.Tick())

	s := p.Last()
	assert.InDelta(t, 60, s.FPS, 1e-9)
	assert.Equal(t, 56*time.Millisecond, s.MaxFrame)
	assert.Contains(t, buf.String(), "[Profiler] interval")
	assert.Contains(t, buf.String(), "fps=60")

	clock.advance(16 * time.Millisecond)
	assert.False(t, p.Tick())
}

func TestProfilerInterval(t *testing.T) {
	p, clock, _ := newTestProfiler(t)
	WithInterval(100 * time.Millisecond)(p)
	WithInterval(-1)(p)

	clock.advance(50 * time.Millisecond)
	assert.False(t, p.Tick())
	clock.advance(50 * time.Millisecond)
	assert.True(t, p.Tick())
	assert.InDelta(t, 20, p.Last().FPS, 1e-9)
}
