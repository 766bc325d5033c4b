package compositor

import "fmt"

// ANSI escape sequences.
const (
	EraseDown  = "\x1b[J"
	EraseLine  = "\x1b[2K"
	CursorLeft = "\r"
	CursorHide = "\x1b[?25l"
	CursorShow = "\x1b[?25h"
	SGRReset   = "\x1b[0m"
)

// CursorUp moves the cursor up n lines. Zero or negative n is a no-op.
func CursorUp(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("\x1b[%dA", n)
}

// CursorDown moves the cursor down n lines.
func CursorDown(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("\x1b[%dB", n)
}
