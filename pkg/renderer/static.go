package renderer

// StaticLog is an append-only record of content permanently committed to
// the terminal scrollback. Entries are written once, immediately before the
// next live frame, and are never part of the diff baseline afterwards. The
// log grows monotonically for the life of a session.
type StaticLog struct {
	entries []string
	flushed int
}

// Append adds finalized content to the log. Empty entries are dropped.
func (l *StaticLog) Append(content string) {
	if content == "" {
		return
	}
	l.entries = append(l.entries, content)
}

// Pending returns the entries not yet written to the terminal.
func (l *StaticLog) Pending() []string {
	return l.entries[l.flushed:]
}

// MarkFlushed records that all pending entries have been written.
func (l *StaticLog) MarkFlushed() {
	l.flushed = len(l.entries)
}

// Len returns the total number of entries ever appended.
func (l *StaticLog) Len() int {
	return len(l.entries)
}

// Reset discards the log. Used only on full remount.
func (l *StaticLog) Reset() {
	l.entries = nil
	l.flushed = 0
}
