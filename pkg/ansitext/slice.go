package ansitext

import "strings"

// Slice returns the substring of s covering visual columns [start, end).
// SGR sequences seen before start are replayed at the head of the result so
// the fragment opens with the style that was active at the cut, and escape
// sequences inside the range carry through verbatim. A grapheme cluster is
// never split: a wide glyph straddling either boundary is dropped rather
// than halved, which can make the result narrower than end-start.
func Slice(s string, start, end int) string {
	if s == "" || end <= start {
		return ""
	}
	if start < 0 {
		start = 0
	}

	var b strings.Builder
	var st styleState
	col := 0
	replayed := false

	for _, seg := range tokenize(s) {
		if seg.kind == segEscape {
			if col < start {
				st.observe(seg.str)
				continue
			}
			// Escapes at or past the cut carry through, including any
			// trailing reset sitting exactly on the end boundary.
			if !replayed {
				st.replay(&b)
				replayed = true
			}
			b.WriteString(seg.str)
			continue
		}

		if col >= end {
			break
		}
		if col+seg.width > end {
			// Cluster straddles the end boundary.
			break
		}
		if col >= start {
			if !replayed {
				st.replay(&b)
				replayed = true
			}
			b.WriteString(seg.str)
		}
		col += seg.width
	}
	return b.String()
}
