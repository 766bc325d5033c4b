// Package runtime drives the render loop: it owns one session per mounted
// tree, coalesces bursts of updates into single repaints, and hands frames
// to the renderer. The loop goroutine is the only writer for a session;
// exclusivity is structural, not lock-based, so callers never see a mutex.
package runtime

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/term"

	"github.com/odvcencio/easel/pkg/layout"
	"github.com/odvcencio/easel/pkg/renderer"
)

// DefaultMinFrameInterval is the coalescing window between repaints.
const DefaultMinFrameInterval = 32 * time.Millisecond

var errNotTerminal = errors.New("sink is not a terminal")

// Config configures a render session.
type Config struct {
	// Sink receives terminal bytes. Defaults to os.Stdout.
	Sink io.Writer
	// Width and Height fix the grid size. Zero means detect from the
	// sink, falling back to 80x24 when it is not a terminal.
	Width  int
	Height int
	// MinFrameInterval bounds repaint frequency; updates arriving inside
	// the window are coalesced, last write wins.
	MinFrameInterval time.Duration
	// ClearOnExit erases the live region on Stop instead of leaving the
	// final frame visible.
	ClearOnExit bool
	// WatchResize tracks terminal size changes and repaints on SIGWINCH.
	WatchResize bool
	// Logger receives fault reports. Defaults to slog.Default().
	Logger *slog.Logger
}

// Session is one mounted rendering session, from Start to Stop. Exactly one
// render loop owns it; Update, Tick, and AppendStatic may be called from
// any goroutine and only deposit work for the loop to drain.
type Session struct {
	cfg    Config
	writer *renderer.Writer
	logger *slog.Logger

	mu       sync.Mutex
	root     *layout.Node
	dirty    bool
	staticQ  []string
	observer func(time.Duration)
	width    int
	height   int

	renders atomic.Int64

	frameCh  chan struct{}
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
	stopErr  error

	winch *resizeWatcher
}

// Start allocates a session and launches its render loop.
func Start(cfg Config) (*Session, error) {
	if cfg.Sink == nil {
		cfg.Sink = os.Stdout
	}
	if cfg.MinFrameInterval <= 0 {
		cfg.MinFrameInterval = DefaultMinFrameInterval
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	width, height := cfg.Width, cfg.Height
	if width <= 0 || height <= 0 {
		dw, dh := detectSize(cfg.Sink)
		if width <= 0 {
			width = dw
		}
		if height <= 0 {
			height = dh
		}
	}

	s := &Session{
		cfg:     cfg,
		writer:  renderer.NewWriter(cfg.Sink),
		logger:  logger,
		width:   width,
		height:  height,
		frameCh: make(chan struct{}, 1),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
	s.writer.SetLogger(logger)

	if cfg.WatchResize {
		s.winch = watchResize(cfg.Sink)
	}

	go s.loop()
	return s, nil
}

// Update replaces the pending tree and requests a repaint. Rapid successive
// updates overwrite each other; only the latest is painted.
func (s *Session) Update(root *layout.Node) {
	s.mu.Lock()
	s.root = root
	s.dirty = true
	s.mu.Unlock()
	s.requestFrame()
}

// UpdateText is a convenience for a single pre-styled text payload at the
// grid origin.
func (s *Session) UpdateText(text string) {
	s.Update(&layout.Node{Text: text})
}

// Tick requests a repaint of the current tree without changing it.
func (s *Session) Tick() {
	s.mu.Lock()
	s.dirty = true
	s.mu.Unlock()
	s.requestFrame()
}

// AppendStatic commits content permanently to the scrollback. It is written
// once, before the next live frame, and never repainted.
func (s *Session) AppendStatic(content string) {
	s.mu.Lock()
	s.staticQ = append(s.staticQ, content)
	s.dirty = true
	s.mu.Unlock()
	s.requestFrame()
}

// OnRender registers an observer called after each committed frame with the
// elapsed compute time. A panicking observer is contained and logged; it
// cannot unwind the render loop.
func (s *Session) OnRender(fn func(elapsed time.Duration)) {
	s.mu.Lock()
	s.observer = fn
	s.mu.Unlock()
}

// Renders returns the monotonically increasing count of committed passes.
func (s *Session) Renders() int {
	return int(s.renders.Load())
}

// Size returns the current grid dimensions.
func (s *Session) Size() (width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// Err returns the sink failure that suppressed output, if any.
func (s *Session) Err() error {
	return s.writer.Err()
}

// Stop tears the session down. It waits for the in-flight pass to finish,
// paints the final pending state once, then either clears the live region
// or advances past it per Config.ClearOnExit. Stop is idempotent.
func (s *Session) Stop() error {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		<-s.doneCh
		if s.winch != nil {
			s.winch.stop()
		}
		s.stopErr = s.writer.Detach(s.cfg.ClearOnExit)
	})
	return s.stopErr
}

// requestFrame signals the loop without blocking; a request already pending
// is sufficient.
func (s *Session) requestFrame() {
	select {
	case s.frameCh <- struct{}{}:
	default:
	}
}

func (s *Session) loop() {
	defer close(s.doneCh)

	var resize <-chan struct{}
	if s.winch != nil {
		resize = s.winch.ch
	}

	var last time.Time
	for {
		select {
		case <-s.frameCh:
			if wait := s.cfg.MinFrameInterval - time.Since(last); wait > 0 {
				time.Sleep(wait)
			}
			// Requests that arrived during the wait are covered by
			// this pass.
			select {
			case <-s.frameCh:
			default:
			}
			s.renderPending()
			last = time.Now()

		case <-resize:
			s.handleResize()

		case <-s.stopCh:
			// Final pass over whatever is still pending.
			s.renderPending()
			return
		}
	}
}

// renderPending drains the pending slot and commits one frame.
func (s *Session) renderPending() {
	s.mu.Lock()
	if !s.dirty {
		s.mu.Unlock()
		return
	}
	s.dirty = false
	root := s.root
	staticQ := s.staticQ
	s.staticQ = nil
	obs := s.observer
	width, height := s.width, s.height
	s.mu.Unlock()

	for _, entry := range staticQ {
		s.writer.AppendStatic(entry)
	}

	start := time.Now()
	frame := layout.Compose(root, width, height).String()
	if err := s.writer.Commit(frame); err != nil {
		// Reported once by the writer; the loop keeps running so Stop
		// semantics are unchanged.
		return
	}
	s.renders.Add(1)
	s.notify(obs, time.Since(start))
}

func (s *Session) notify(obs func(time.Duration), elapsed time.Duration) {
	if obs == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("render observer panicked", "panic", r)
		}
	}()
	obs(elapsed)
}

func (s *Session) handleResize() {
	width, height, err := sinkSize(s.cfg.Sink)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.width, s.height = width, height
	s.dirty = true
	s.mu.Unlock()

	// The terminal reflowed whatever was on screen; the baseline no
	// longer matches it. Best-effort erase, then a full repaint.
	s.writer.Clear()
	s.writer.Invalidate()
	s.requestFrame()
}

// detectSize queries the sink's terminal size, falling back to 80x24 for
// pipes and test doubles.
func detectSize(sink io.Writer) (int, int) {
	if f, ok := sink.(*os.File); ok {
		if w, h, err := term.GetSize(int(f.Fd())); err == nil && w > 0 && h > 0 {
			return w, h
		}
	}
	return 80, 24
}
