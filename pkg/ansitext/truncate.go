package ansitext

// Anchor selects which part of a string Truncate replaces with the ellipsis.
type Anchor uint8

const (
	// End replaces the suffix: "Hello …".
	End Anchor = iota
	// Start replaces the prefix: "… World".
	Start
	// Middle removes content from the visual center: "Hel…rld".
	Middle
)

// ellipsis is the single replacement glyph, one column wide.
const ellipsis = "…"

// Truncate shortens s to at most width visual columns, marking the removed
// content with an ellipsis at the anchor point. Strings already within the
// limit are returned unchanged. A width of one or less yields the ellipsis
// alone regardless of anchor; this is the defined degenerate result, not an
// error. A style left open by the cut is closed with a reset so the result
// never bleeds into text appended after it.
func Truncate(s string, width int, anchor Anchor) string {
	w := Width(s)
	if w <= width {
		return s
	}
	if width <= 1 {
		return ellipsis
	}

	keep := width - 1
	switch anchor {
	case Start:
		return CloseStyle(ellipsis + Slice(s, w-keep, w))
	case Middle:
		pre := keep / 2
		post := keep - pre
		return CloseStyle(Slice(s, 0, pre) + ellipsis + Slice(s, w-post, w))
	default:
		return CloseStyle(Slice(s, 0, keep) + ellipsis)
	}
}
