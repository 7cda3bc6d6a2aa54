// Package overlay draws popups on top of an already rendered view.
package overlay

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Compose draws overlay over base. Leading and trailing spaces of each
// overlay line are transparent; visually blank lines leave base untouched.
// Both strings may carry ANSI styling.
func Compose(base, overlay string, width int) string {
	baseLines := strings.Split(base, "\n")

	for i, line := range strings.Split(overlay, "\n") {
		if i >= len(baseLines) {
			break
		}
		plain := ansi.Strip(line)
		trimmed := strings.TrimLeft(plain, " ")
		if strings.TrimSpace(trimmed) == "" {
			continue
		}
		startCol := len(plain) - len(trimmed)
		endCol := min(startCol+ansi.StringWidth(strings.TrimRight(trimmed, " ")), width)
		if startCol >= endCol {
			continue
		}

		under := baseLines[i]
		if w := ansi.StringWidth(under); w < width {
			under += strings.Repeat(" ", width-w)
		}

		out := ansi.Cut(under, 0, startCol) + ansi.Cut(line, startCol, endCol)
		if endCol < width {
			out += ansi.Cut(under, endCol, width)
		}
		baseLines[i] = out
	}

	return strings.Join(baseLines, "\n")
}

// Center draws box in the middle of a width x height base.
func Center(base, box string, width, height int) string {
	lines := strings.Split(box, "\n")
	boxW := 0
	for _, l := range lines {
		boxW = max(boxW, ansi.StringWidth(l))
	}
	top := max((height-len(lines))/2, 0)
	indent := strings.Repeat(" ", max((width-boxW)/2, 0))

	placed := make([]string, 0, top+len(lines))
	for range top {
		placed = append(placed, "")
	}
	for _, l := range lines {
		placed = append(placed, indent+l)
	}
	return Compose(base, strings.Join(placed, "\n"), width)
}
