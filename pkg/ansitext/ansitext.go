// Package ansitext measures and slices styled terminal text. Widths are
// counted in terminal columns: wide glyphs occupy two columns, combining
// marks and escape sequences occupy none. All operations are safe on text
// containing SGR color sequences and never split an escape sequence or a
// grapheme cluster.
package ansitext

import "strings"

// Width returns the visual width of s in terminal columns. Escape sequences
// and control characters count as zero, wide runes as two.
func Width(s string) int {
	if s == "" {
		return 0
	}
	if strings.IndexByte(s, esc) < 0 && isASCIIPrintable(s) {
		return len(s)
	}
	w := 0
	for _, seg := range tokenize(s) {
		w += seg.width
	}
	return w
}

// isASCIIPrintable is the fast path for plain text.
func isASCIIPrintable(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			return false
		}
	}
	return true
}

// Strip returns s with all escape sequences removed.
func Strip(s string) string {
	if strings.IndexByte(s, esc) < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, seg := range tokenize(s) {
		if seg.kind == segText {
			b.WriteString(seg.str)
		}
	}
	return b.String()
}

// Height returns the number of lines in s.
func Height(s string) int {
	return strings.Count(s, "\n") + 1
}

// FirstLine returns s up to the first newline.
func FirstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// CloseStyle returns s terminated with an SGR reset if any style sequence is
// still open at its end, so content appended after it is not bled into.
func CloseStyle(s string) string {
	if strings.IndexByte(s, esc) < 0 {
		return s
	}
	var st styleState
	for _, seg := range tokenize(s) {
		if seg.kind == segEscape {
			st.observe(seg.str)
		}
	}
	if st.active() {
		return s + sgrReset
	}
	return s
}
