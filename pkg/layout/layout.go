// Package layout is the boundary to the external flexbox solver. The
// solver hands back a tree of nodes whose positions are already resolved to
// character cells; this package only walks those positions into an output
// grid, and feeds intrinsic text measurements back so the solver can size
// text boxes. It performs no layout math of its own.
package layout

import (
	"strings"

	"github.com/odvcencio/easel/pkg/ansitext"
	"github.com/odvcencio/easel/pkg/compositor"
)

// Node is one solved box. X and Y are character-cell offsets relative to
// the parent. A node carries either a styled text payload or children;
// nothing here re-encodes styles, payloads pass through as received.
type Node struct {
	X, Y     int
	Text     string
	Children []*Node
}

// Compose walks a solved tree into a fresh output grid of the given size.
// A nil root yields a blank grid.
func Compose(root *Node, width, height int) *compositor.Output {
	out := compositor.New(width, height)
	if root != nil {
		root.draw(out, 0, 0)
	}
	return out
}

func (n *Node) draw(out *compositor.Output, ox, oy int) {
	x, y := ox+n.X, oy+n.Y
	if n.Text != "" {
		out.Write(x, y, n.Text)
	}
	for _, c := range n.Children {
		if c != nil {
			c.draw(out, x, y)
		}
	}
}

// TextSize returns the intrinsic width and height of a styled text payload:
// the widest line in visual columns and the line count.
func TextSize(s string) (width, height int) {
	if s == "" {
		return 0, 0
	}
	for _, line := range strings.Split(s, "\n") {
		if w := ansitext.Width(line); w > width {
			width = w
		}
		height++
	}
	return width, height
}

// WrappedTextSize measures s as it would render wrapped to maxWidth,
// soft-breaking at whitespace.
func WrappedTextSize(s string, maxWidth int) (width, height int) {
	if s == "" {
		return 0, 0
	}
	for _, line := range ansitext.Wrap(s, maxWidth, false) {
		if w := ansitext.Width(line); w > width {
			width = w
		}
		height++
	}
	return width, height
}
