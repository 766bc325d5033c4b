package renderer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/odvcencio/easel/pkg/compositor"
)

// ErrSinkBroken marks a session whose output stream stopped accepting
// writes. The condition is reported once; later commits are suppressed
// rather than failing on every frame.
var ErrSinkBroken = errors.New("output sink broken")

// Writer transforms the terminal from one frame to the next with minimal
// control sequences. It is owned by a single render loop; per the session
// model there is exactly one writer per sink and no concurrent commits.
// Err is the exception and may be called from any goroutine.
type Writer struct {
	sink    io.Writer
	logger  *slog.Logger
	static  StaticLog
	prev    Frame
	started bool

	errMu sync.Mutex
	err   error
}

// NewWriter creates a writer committing frames to sink.
func NewWriter(sink io.Writer) *Writer {
	return &Writer{
		sink:   sink,
		logger: slog.Default(),
	}
}

// SetLogger replaces the logger used for fault reporting.
func (w *Writer) SetLogger(l *slog.Logger) {
	if l != nil {
		w.logger = l
	}
}

// AppendStatic queues content for the scrollback. It is flushed immediately
// before the next committed frame and excluded from all later diffing.
func (w *Writer) AppendStatic(content string) {
	w.static.Append(content)
}

// Err returns the sink failure that ended output for this session, if any.
// The failure is set by the render loop, so the read is synchronized.
func (w *Writer) Err() error {
	w.errMu.Lock()
	defer w.errMu.Unlock()
	return w.err
}

func (w *Writer) setErr(err error) {
	w.errMu.Lock()
	w.err = err
	w.errMu.Unlock()
}

// Commit writes the byte sequence that transforms the screen from the
// previous frame to this one. The first commit writes the frame verbatim;
// an identical frame writes nothing; a changed frame moves the cursor to
// the top of the live region, erases downward, and rewrites. Queued static
// content is flushed first and resets the diff baseline, since the cursor
// has moved past content that will not be repainted.
func (w *Writer) Commit(text string) error {
	if w.Err() != nil {
		return nil
	}

	frame := NewFrame(text)
	pending := w.static.Pending()

	if len(pending) == 0 && w.started && frame.Text == w.prev.Text {
		return nil
	}

	var buf bytes.Buffer
	w.eraseLive(&buf)

	if len(pending) > 0 {
		for _, entry := range pending {
			buf.WriteString(entry)
			if !strings.HasSuffix(entry, "\n") {
				buf.WriteByte('\n')
			}
		}
		w.static.MarkFlushed()
		w.prev = Frame{}
	}

	buf.WriteString(frame.Text)
	w.prev = frame
	w.started = true
	return w.flush(buf.Bytes())
}

// Clear erases the live region and empties the baseline.
func (w *Writer) Clear() error {
	if w.Err() != nil {
		return nil
	}
	var buf bytes.Buffer
	w.eraseLive(&buf)
	w.prev = Frame{}
	return w.flush(buf.Bytes())
}

// Invalidate forgets the baseline without touching the terminal. Used after
// a resize, when the reflowed screen no longer matches what was written.
func (w *Writer) Invalidate() {
	w.prev = Frame{}
}

// Detach finalizes session output. With clear set the live region is
// erased; otherwise the cursor is advanced past it so later shell output
// starts on a fresh line.
func (w *Writer) Detach(clear bool) error {
	if clear {
		return w.Clear()
	}
	if w.Err() == nil && w.prev.Lines > 0 {
		return w.flush([]byte("\n"))
	}
	return nil
}

// eraseLive emits the sequence that returns the cursor to the top of the
// live region and clears everything below it. After a frame write the
// cursor rests at the end of the last line, so the move is column zero
// then up (lines - 1).
func (w *Writer) eraseLive(buf *bytes.Buffer) {
	if w.prev.Lines == 0 {
		return
	}
	buf.WriteString(compositor.CursorLeft)
	buf.WriteString(compositor.CursorUp(w.prev.Lines - 1))
	buf.WriteString(compositor.EraseDown)
}

func (w *Writer) flush(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if _, err := w.sink.Write(b); err != nil {
		wrapped := fmt.Errorf("%w: %v", ErrSinkBroken, err)
		w.setErr(wrapped)
		w.logger.Warn("output sink failed, suppressing writes for this session", "err", err)
		return wrapped
	}
	return nil
}
