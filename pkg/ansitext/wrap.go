package ansitext

import "strings"

// Wrap breaks s into lines of at most width visual columns, preferring to
// break at whitespace. A single token wider than the limit overflows its
// line unless hard is set, in which case it is broken mid-token. Styles open
// at a soft break are closed with an SGR reset and reopened on the next
// line, so every returned line is self-contained. Existing newlines in s
// are respected. Wrapping always terminates: each pass over the input
// consumes at least one cluster.
//
// A non-positive width returns the input lines unmodified.
func Wrap(s string, width int, hard bool) []string {
	lines := strings.Split(s, "\n")
	if width <= 0 {
		return lines
	}
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, wrapLine(line, width, hard)...)
	}
	return out
}

func wrapLine(line string, width int, hard bool) []string {
	if Width(line) <= width {
		return []string{line}
	}

	var (
		lines []string
		cur   strings.Builder
		curW  int
		word  []segment
		wordW int
		st    styleState
	)

	pushLine := func() {
		text := strings.TrimRight(cur.String(), " ")
		if st.active() && Strip(text) != "" {
			text += sgrReset
		}
		lines = append(lines, text)
		cur.Reset()
		curW = 0
		st.replay(&cur)
	}

	appendSeg := func(seg segment) {
		cur.WriteString(seg.str)
		curW += seg.width
		if seg.kind == segEscape {
			st.observe(seg.str)
		}
	}

	flushWord := func() {
		if len(word) == 0 {
			return
		}
		switch {
		case hard && wordW > width:
			// Break the oversized token at column boundaries.
			for _, seg := range word {
				if seg.kind == segText && curW+seg.width > width {
					pushLine()
				}
				appendSeg(seg)
			}
		default:
			if curW > 0 && curW+wordW > width {
				pushLine()
			}
			for _, seg := range word {
				appendSeg(seg)
			}
		}
		word = word[:0]
		wordW = 0
	}

	for _, seg := range tokenize(line) {
		if seg.kind == segText && seg.str == " " {
			flushWord()
			if curW >= width {
				pushLine()
				continue // break point consumes the whitespace
			}
			appendSeg(seg)
			continue
		}
		word = append(word, seg)
		wordW += seg.width
	}
	flushWord()

	if curW > 0 || len(lines) == 0 {
		pushLine()
	}
	return lines
}
