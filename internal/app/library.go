package app

import (
	"strings"

	"github.com/llehouerou/pageplayer/internal/icons"
	"github.com/llehouerou/pageplayer/internal/ui/render"
)

func (m *Model) moveCursor(delta int) {
	m.list.Move(delta, len(m.snap.Pages), m.libraryRows())
}

// jumpCursor puts the cursor on index and scrolls to it.
func (m *Model) jumpCursor(index int) {
	m.list.Jump(index, len(m.snap.Pages), m.libraryRows())
}

// syncCursor re-applies the list bounds after the catalog or layout changed.
func (m *Model) syncCursor() {
	m.list.ClampToBounds(len(m.snap.Pages))
	m.list.EnsureVisible(len(m.snap.Pages), m.libraryRows())
}

// libraryRows is the number of list rows that fit in the body.
func (m Model) libraryRows() int {
	return m.bodyHeight() - 2 // panel border
}

func (m Model) renderLibrary(width, height int) string {
	s := m.theme.S()
	inner := max(width-2, 0)
	rows := max(height-2, 0)
	rtl := m.bundle.RTL()

	var lines []string
	switch {
	case !m.synced, len(m.snap.Pages) == 0 && !m.catalogFailed:
		lines = append(lines, s.Muted.Render(render.Align(m.bundle.T("loadingLibrary"), inner, rtl)))
	case len(m.snap.Pages) == 0:
		lines = append(lines, s.Muted.Render(render.Align(m.bundle.T("emptyLibrary"), inner, rtl)))
	default:
		start, end := m.list.VisibleRange(len(m.snap.Pages), rows)
		for i := start; i < end; i++ {
			lines = append(lines, m.renderLibraryRow(i, inner))
		}
	}
	for len(lines) < rows {
		lines = append(lines, render.Pad("", inner))
	}

	return m.theme.Panel(true).Width(inner).Render(strings.Join(lines[:rows], "\n"))
}

func (m Model) renderLibraryRow(i, width int) string {
	s := m.theme.S()
	page := m.snap.Pages[i]
	label := m.bundle.PageTitle(page.ID)

	current := i == m.snap.State.CurrentIndex
	if current {
		label = icons.MarkCurrent(label)
	} else {
		label = "  " + label
	}
	line := render.Align(" "+label+" ", width, m.bundle.RTL())

	switch {
	case i == m.list.Pos():
		style := s.Cursor
		if current {
			style = style.Foreground(m.theme.Primary).Bold(true)
		}
		return style.Render(line)
	case current:
		return s.Playing.Render(line)
	default:
		return s.Base.Render(line)
	}
}
