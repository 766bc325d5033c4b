package ansitext

import "testing"

func TestSlice(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		start, end int
		want       string
	}{
		{"plain middle", "Hello World", 3, 8, "lo Wo"},
		{"plain prefix", "Hello World", 0, 5, "Hello"},
		{"plain suffix", "Hello World", 6, 11, "World"},
		{"full range", "Hello", 0, 5, "Hello"},
		{"empty range", "Hello", 3, 3, ""},
		{"inverted range", "Hello", 4, 2, ""},
		{"past the end", "ab", 5, 9, ""},
		{"wide runes aligned", "世界", 0, 2, "世"},
		{"wide rune straddles end", "世界", 0, 3, "世"},
		{"negative start", "Hello", -2, 3, "Hel"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slice(tt.in, tt.start, tt.end); got != tt.want {
				t.Errorf("Slice(%q, %d, %d) = %q, want %q", tt.in, tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestSliceReplaysActiveStyle(t *testing.T) {
	t.Run("style opened before start", func(t *testing.T) {
		got := Slice("\x1b[31mRed\x1b[0m", 1, 3)
		want := "\x1b[31med\x1b[0m"
		if got != want {
			t.Errorf("Slice = %q, want %q", got, want)
		}
	})
	t.Run("reset before start clears replay", func(t *testing.T) {
		got := Slice("\x1b[31mRed\x1b[0m plain", 4, 9)
		if got != "plain" {
			t.Errorf("Slice = %q, want %q", got, "plain")
		}
	})
	t.Run("escape inside range carries through", func(t *testing.T) {
		got := Slice("ab\x1b[1mcd\x1b[0mef", 1, 5)
		want := "b\x1b[1mcd\x1b[0me"
		if got != want {
			t.Errorf("Slice = %q, want %q", got, want)
		}
	})
	t.Run("trailing reset on end boundary included", func(t *testing.T) {
		got := Slice("\x1b[31mRed\x1b[0m", 0, 3)
		want := "\x1b[31mRed\x1b[0m"
		if got != want {
			t.Errorf("Slice = %q, want %q", got, want)
		}
	})
}

// Slicing any valid range of a column-aligned string yields exactly the
// requested width.
func TestSliceWidthRoundTrip(t *testing.T) {
	inputs := []string{
		"Hello World",
		"\x1b[32mgreen text here\x1b[0m",
		"mixed \x1b[1mbold\x1b[0m and plain",
	}
	for _, s := range inputs {
		w := Width(s)
		for a := 0; a <= w; a++ {
			for b := a; b <= w; b++ {
				got := Width(Slice(s, a, b))
				if got != b-a {
					t.Fatalf("Width(Slice(%q, %d, %d)) = %d, want %d", s, a, b, got, b-a)
				}
			}
		}
	}
}

func TestSliceFullRangePreservesContent(t *testing.T) {
	s := "pre \x1b[35mmagenta\x1b[0m post"
	got := Slice(s, 0, Width(s))
	if Strip(got) != Strip(s) {
		t.Errorf("full-range slice lost content: %q", got)
	}
}
