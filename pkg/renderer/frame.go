// Package renderer turns a sequence of composited frames into minimal
// terminal writes. It repaints only when content changes, repositions the
// cursor with relative moves rather than clearing the screen, and keeps a
// write-once static region out of the repaint path entirely.
package renderer

import "strings"

// Frame is one immutable serialized snapshot of the live region, retained
// as the comparison baseline for the next commit.
type Frame struct {
	Text  string
	Lines int
}

// NewFrame builds a frame from serialized grid content. An empty string is
// the zero-height frame.
func NewFrame(text string) Frame {
	if text == "" {
		return Frame{}
	}
	return Frame{Text: text, Lines: strings.Count(text, "\n") + 1}
}
