// Package render provides text layout helpers for TUI components.
package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// Sanitize drops control characters and invalid UTF-8 from text that came
// from outside the program (manifests, translation overrides), and turns
// non-breaking spaces into plain spaces.
func Sanitize(s string) string {
	clean := true
	for _, r := range s {
		if r == utf8.RuneError || r == ' ' || (r != '\t' && unicode.IsControl(r)) {
			clean = false
			break
		}
	}
	if clean {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		switch {
		case r == utf8.RuneError && size <= 1:
		case r == ' ':
			b.WriteByte(' ')
		case r != '\t' && unicode.IsControl(r):
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Width returns the display width of s, ignoring ANSI escape sequences.
func Width(s string) int {
	return ansi.StringWidth(s)
}

// Truncate shortens plain text to maxWidth cells, ending with an ellipsis
// when cut.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return runewidth.Truncate(Sanitize(s), maxWidth, ellipsis)
}

// TruncateStyled is Truncate for text that already carries ANSI styling.
func TruncateStyled(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return ansi.Truncate(s, maxWidth, ellipsis)
}

// Pad fills s with trailing spaces up to width. Wider strings are returned
// unchanged.
func Pad(s string, width int) string {
	if gap := width - Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// PadLeft fills s with leading spaces up to width.
func PadLeft(s string, width int) string {
	if gap := width - Width(s); gap > 0 {
		return strings.Repeat(" ", gap) + s
	}
	return s
}

// Fit truncates then pads styled text to exactly width cells.
func Fit(s string, width int) string {
	return Pad(TruncateStyled(s, width), width)
}

// Align fits s into width, flush right for right-to-left layouts.
func Align(s string, width int, rtl bool) string {
	s = TruncateStyled(s, width)
	if rtl {
		return PadLeft(s, width)
	}
	return Pad(s, width)
}

// Center places s in the middle of width cells.
func Center(s string, width int) string {
	s = TruncateStyled(s, width)
	gap := width - Width(s)
	if gap <= 0 {
		return s
	}
	left := gap / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
}

// Row joins left and right content with enough spaces to span width.
// At least one space separates them. With rtl set the sides are swapped.
func Row(left, right string, width int, rtl bool) string {
	if rtl {
		left, right = right, left
	}
	gap := max(width-Width(left)-Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// Separator creates a horizontal rule of the specified width.
func Separator(width int) string {
	return strings.Repeat("─", max(width, 0))
}
