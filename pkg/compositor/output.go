// Package compositor provides a flicker-free terminal output grid. It holds
// whole styled lines rather than a cell-per-column matrix: color runs stay
// intact through every splice, and reads never have to re-derive escape
// state character by character.
package compositor

import (
	"strings"

	"github.com/odvcencio/easel/pkg/ansitext"
)

// Output is a fixed-size grid of styled lines built up by one compositing
// pass. It is owned exclusively by the render pass that created it: written
// via Write while compositing, read-only once serialized.
type Output struct {
	width  int
	height int
	lines  []string
}

// New creates an empty output grid with the given dimensions.
func New(width, height int) *Output {
	return &Output{
		width:  width,
		height: height,
		lines:  make([]string, height),
	}
}

// Size returns the grid dimensions.
func (o *Output) Size() (width, height int) {
	return o.width, o.height
}

// Write composites styled, possibly multi-line text into the grid with its
// top-left corner at visual column x, row y. Rows outside the grid are
// silently clipped; this models drawing against a fixed viewport, not a
// validation boundary.
func (o *Output) Write(x, y int, text string) {
	for i, line := range strings.Split(text, "\n") {
		row := y + i
		if row < 0 || row >= o.height {
			continue
		}
		o.lines[row] = insertAt(o.lines[row], x, line)
	}
}

// insertAt splices ins into row at visual column x. Short rows are padded
// with spaces up to x; when ins does not cover the rest of the row, the
// leftover tail is spliced back on. A wide glyph straddling a splice point
// is dropped by the slice, so the lost columns are re-padded with blanks to
// keep every surviving cluster at its original column. Styles never bleed
// across a splice point: each fragment is closed with a reset and the tail
// reopens its own escape state.
func insertAt(row string, x int, ins string) string {
	rowW := ansitext.Width(row)
	if x >= rowW {
		if pad := x - rowW; pad > 0 {
			return ansitext.CloseStyle(row) + strings.Repeat(" ", pad) + ins
		}
		return ansitext.CloseStyle(row) + ins
	}

	left := ansitext.Slice(row, 0, x)
	if leftW := ansitext.Width(left); leftW < x {
		left = ansitext.CloseStyle(left) + strings.Repeat(" ", x-leftW)
	}
	insW := ansitext.Width(ins)
	var tail string
	if end := x + insW; end < rowW {
		tail = ansitext.Slice(row, end, rowW)
		if tailW := ansitext.Width(tail); tailW < rowW-end {
			tail = strings.Repeat(" ", rowW-end-tailW) + tail
		}
	}
	return ansitext.CloseStyle(left) + ansitext.CloseStyle(ins) + tail
}

// lastVisibleRow returns the index of the last row with visible content
// after stripping escapes, or -1 if the grid is blank.
func (o *Output) lastVisibleRow() int {
	last := -1
	for i, line := range o.lines {
		if strings.TrimSpace(ansitext.Strip(line)) != "" {
			last = i
		}
	}
	return last
}

// String serializes the grid: rows through the last visible one, trailing
// spaces trimmed, joined by newlines. A blank grid yields the empty string.
func (o *Output) String() string {
	last := o.lastVisibleRow()
	if last < 0 {
		return ""
	}
	rows := make([]string, last+1)
	for i := range rows {
		rows[i] = strings.TrimRight(o.lines[i], " ")
	}
	return strings.Join(rows, "\n")
}

// StringHeight serializes exactly rows lines, truncating content below the
// cut or padding with blank lines, so a reserved vertical region keeps its
// height even when content is shorter.
func (o *Output) StringHeight(rows int) string {
	if rows <= 0 {
		return ""
	}
	out := make([]string, rows)
	for i := range out {
		if i < len(o.lines) {
			out[i] = strings.TrimRight(o.lines[i], " ")
		}
	}
	return strings.Join(out, "\n")
}

// Height returns the number of rows through the last visible one; 0 for a
// blank grid.
func (o *Output) Height() int {
	return o.lastVisibleRow() + 1
}
