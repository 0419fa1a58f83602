package steep

import "github.com/charmbracelet/x/ansi"

// Helpers for view authors. Frames are plain strings, but they usually
// contain styled text; these measure and trim by visible columns rather
// than bytes.

// VisibleWidth returns the terminal display width of a string, ignoring
// ANSI escape sequences and accounting for wide characters.
func VisibleWidth(s string) int {
	return ansi.StringWidth(s)
}

// Truncate truncates s to at most maxWidth visible columns, appending
// tail (e.g. "…") if truncation occurred.
func Truncate(s string, maxWidth int, tail string) string {
	return ansi.Truncate(s, maxWidth, tail)
}

// PadRight pads s with spaces to exactly width visible columns,
// truncating if it is already wider.
func PadRight(s string, width int) string {
	w := ansi.StringWidth(s)
	if w > width {
		return ansi.Truncate(s, width, "")
	}
	for ; w < width; w++ {
		s += " "
	}
	return s
}
