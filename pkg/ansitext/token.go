package ansitext

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// segmentKind discriminates tokenizer output.
type segmentKind uint8

const (
	// segText is a single grapheme cluster occupying one or more columns.
	segText segmentKind = iota
	// segEscape is a complete escape sequence occupying zero columns.
	segEscape
)

// segment is one token of a styled string: either a grapheme cluster with a
// visual width, or an escape sequence with width zero. Splitting a string is
// only ever done between segments, never inside one.
type segment struct {
	kind  segmentKind
	str   string
	width int
}

const esc = '\x1b'

// tokenize splits a styled string into text and escape segments.
// Escape sequences are consumed whole: CSI sequences run to their final byte,
// OSC sequences to BEL or ST. A malformed sequence is consumed to the end of
// the string and treated as zero-width rather than rejected.
func tokenize(s string) []segment {
	segs := make([]segment, 0, len(s)/2)
	for i := 0; i < len(s); {
		if s[i] == esc {
			end := escapeEnd(s, i)
			segs = append(segs, segment{kind: segEscape, str: s[i:end]})
			i = end
			continue
		}
		next := strings.IndexByte(s[i:], esc)
		var run string
		if next < 0 {
			run = s[i:]
		} else {
			run = s[i : i+next]
		}
		g := uniseg.NewGraphemes(run)
		for g.Next() {
			cluster := g.Str()
			segs = append(segs, segment{kind: segText, str: cluster, width: clusterWidth(cluster)})
		}
		i += len(run)
	}
	return segs
}

// escapeEnd returns the index just past the escape sequence starting at i.
func escapeEnd(s string, i int) int {
	j := i + 1
	if j >= len(s) {
		return len(s)
	}
	switch s[j] {
	case '[':
		// CSI: parameter and intermediate bytes, then one final byte in @..~.
		for j++; j < len(s); j++ {
			if s[j] >= '@' && s[j] <= '~' {
				return j + 1
			}
		}
		return len(s)
	case ']':
		// OSC: terminated by BEL or ESC \.
		for j++; j < len(s); j++ {
			if s[j] == '\a' {
				return j + 1
			}
			if s[j] == esc && j+1 < len(s) && s[j+1] == '\\' {
				return j + 2
			}
		}
		return len(s)
	default:
		// Two-byte escape (ESC c, ESC 7, ...).
		return j + 1
	}
}

// clusterWidth returns the number of terminal columns a grapheme cluster
// occupies. Control characters measure zero.
func clusterWidth(cluster string) int {
	r := []rune(cluster)[0]
	if r < 0x20 || r == 0x7f {
		return 0
	}
	return runewidth.StringWidth(cluster)
}

const sgrReset = "\x1b[0m"

// isSGR reports whether an escape segment is a Select Graphic Rendition
// sequence. Only SGR sequences participate in style replay; cursor movement
// and other control sequences pass through untracked.
func isSGR(e string) bool {
	return strings.HasPrefix(e, "\x1b[") && strings.HasSuffix(e, "m")
}

// isSGRReset reports whether an SGR sequence resets all attributes.
func isSGRReset(e string) bool {
	return e == "\x1b[0m" || e == "\x1b[m"
}

// styleState tracks the SGR sequences currently in effect while scanning.
type styleState struct {
	open []string
}

func (st *styleState) observe(e string) {
	if !isSGR(e) {
		return
	}
	if isSGRReset(e) {
		st.open = st.open[:0]
		return
	}
	st.open = append(st.open, e)
}

func (st *styleState) active() bool { return len(st.open) > 0 }

// replay writes the open SGR sequences into b so a fragment starts with the
// style that was in effect at its split point.
func (st *styleState) replay(b *strings.Builder) {
	for _, e := range st.open {
		b.WriteString(e)
	}
}
