package runtime

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/easel/pkg/layout"
	"github.com/odvcencio/easel/pkg/renderer"
)

// syncBuffer is a goroutine-safe byte sink for the render loop.
type syncBuffer struct {
	mu  sync.Mutex
	buf strings.Builder
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func testConfig(sink io.Writer) Config {
	return Config{
		Sink:             sink,
		Width:            40,
		Height:           10,
		MinFrameInterval: time.Millisecond,
		Logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestSession_RendersUpdate(t *testing.T) {
	sink := &syncBuffer{}
	s, err := Start(testConfig(sink))
	require.NoError(t, err)

	s.UpdateText("hello")
	require.Eventually(t, func() bool { return s.Renders() >= 1 },
		time.Second, time.Millisecond)

	require.NoError(t, s.Stop())
	assert.Contains(t, sink.String(), "hello")
}

func TestSession_DetectsSizeFallback(t *testing.T) {
	sink := &syncBuffer{}
	s, err := Start(Config{Sink: sink, Logger: testConfig(sink).Logger})
	require.NoError(t, err)
	defer s.Stop()

	w, h := s.Size()
	assert.Equal(t, 80, w)
	assert.Equal(t, 24, h)
}

func TestSession_CoalescesBursts(t *testing.T) {
	sink := &syncBuffer{}
	cfg := testConfig(sink)
	cfg.MinFrameInterval = 50 * time.Millisecond
	s, err := Start(cfg)
	require.NoError(t, err)

	const updates = 100
	for i := 0; i < updates; i++ {
		s.UpdateText(fmt.Sprintf("update-%d", i))
	}
	require.NoError(t, s.Stop())

	// Earlier states were superseded before their repaint tick fired;
	// the final state always lands because Stop drains the pending slot.
	assert.Less(t, s.Renders(), updates)
	assert.Contains(t, sink.String(), "update-99")
}

func TestSession_TickRepaintsCurrentTree(t *testing.T) {
	sink := &syncBuffer{}
	s, err := Start(testConfig(sink))
	require.NoError(t, err)

	s.Update(&layout.Node{Text: "steady"})
	require.Eventually(t, func() bool { return s.Renders() >= 1 },
		time.Second, time.Millisecond)

	// A tick with unchanged content runs a pass but writes no new bytes.
	before := len(sink.String())
	s.Tick()
	require.Eventually(t, func() bool { return s.Renders() >= 2 },
		time.Second, time.Millisecond)
	require.NoError(t, s.Stop())

	// Only Stop's detach newline may follow.
	assert.Equal(t, before+1, len(sink.String()))
}

func TestSession_StaticPrecedesLive(t *testing.T) {
	sink := &syncBuffer{}
	s, err := Start(testConfig(sink))
	require.NoError(t, err)

	s.AppendStatic("completed: build")
	s.UpdateText("working...")
	require.Eventually(t, func() bool { return s.Renders() >= 1 },
		time.Second, time.Millisecond)
	require.NoError(t, s.Stop())

	out := sink.String()
	staticIdx := strings.Index(out, "completed: build")
	liveIdx := strings.Index(out, "working...")
	require.GreaterOrEqual(t, staticIdx, 0)
	require.GreaterOrEqual(t, liveIdx, 0)
	assert.Less(t, staticIdx, liveIdx, "static content must precede the live frame")
}

func TestSession_ObserverReceivesElapsed(t *testing.T) {
	sink := &syncBuffer{}
	s, err := Start(testConfig(sink))
	require.NoError(t, err)

	var mu sync.Mutex
	var calls int
	s.OnRender(func(elapsed time.Duration) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if elapsed < 0 {
			t.Error("negative elapsed time")
		}
	})

	s.UpdateText("observed")
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls >= 1
	}, time.Second, time.Millisecond)
	require.NoError(t, s.Stop())
}

func TestSession_ObserverPanicIsContained(t *testing.T) {
	sink := &syncBuffer{}
	s, err := Start(testConfig(sink))
	require.NoError(t, err)

	s.OnRender(func(time.Duration) { panic("observer bug") })
	s.UpdateText("first")
	require.Eventually(t, func() bool { return s.Renders() >= 1 },
		time.Second, time.Millisecond)

	// The loop survives and keeps rendering.
	s.UpdateText("second")
	require.Eventually(t, func() bool { return s.Renders() >= 2 },
		time.Second, time.Millisecond)
	require.NoError(t, s.Stop())
	assert.Contains(t, sink.String(), "second")
}

func TestSession_ClearOnExit(t *testing.T) {
	sink := &syncBuffer{}
	cfg := testConfig(sink)
	cfg.ClearOnExit = true
	s, err := Start(cfg)
	require.NoError(t, err)

	s.UpdateText("ephemeral")
	require.Eventually(t, func() bool { return s.Renders() >= 1 },
		time.Second, time.Millisecond)
	require.NoError(t, s.Stop())

	assert.True(t, strings.HasSuffix(sink.String(), "\x1b[J"),
		"output should end with an erase, got %q", sink.String())
}

// failSink breaks after the first successful write.
type failSink struct {
	mu     sync.Mutex
	writes int
}

func (f *failSink) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	if f.writes > 1 {
		return 0, errors.New("pipe closed")
	}
	return len(p), nil
}

func TestSession_BrokenSinkDoesNotKillLoop(t *testing.T) {
	sink := &failSink{}
	s, err := Start(testConfig(sink))
	require.NoError(t, err)

	s.UpdateText("one")
	require.Eventually(t, func() bool { return s.Renders() >= 1 },
		time.Second, time.Millisecond)

	s.UpdateText("two")
	require.Eventually(t, func() bool { return s.Err() != nil },
		time.Second, time.Millisecond)
	require.ErrorIs(t, s.Err(), renderer.ErrSinkBroken)

	// Stop still completes cleanly.
	require.NoError(t, s.Stop())
}

func TestSession_StopIsIdempotent(t *testing.T) {
	sink := &syncBuffer{}
	s, err := Start(testConfig(sink))
	require.NoError(t, err)

	s.UpdateText("x")
	require.NoError(t, s.Stop())
	require.NoError(t, s.Stop())
}
