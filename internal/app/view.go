package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/pageplayer/internal/playback"
	"github.com/llehouerou/pageplayer/internal/ui/overlay"
	"github.com/llehouerou/pageplayer/internal/ui/playerbar"
	"github.com/llehouerou/pageplayer/internal/ui/render"
	"github.com/llehouerou/pageplayer/internal/ui/styles"
)

const (
	headerHeight = 2
	footerHeight = 1
	libraryWidth = 30
)

// View renders the application UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	parts := []string{m.renderHeader()}

	body := m.renderBody()
	if m.showHelp {
		m.help.ShowAll = true
		popup := m.theme.Panel(true).Padding(0, 1).Render(m.help.View(m.helpKeys))
		body = overlay.Center(body, popup, m.width, m.bodyHeight())
	}
	parts = append(parts, body)

	if m.errorMsg != "" {
		parts = append(parts, m.renderBanner())
	}
	if bar := playerbar.Render(m.playerState(), m.theme, m.width); bar != "" {
		parts = append(parts, bar)
	}

	m.help.ShowAll = false
	parts = append(parts, render.Fit(m.help.View(m.helpKeys), m.width))

	return strings.Join(parts, "\n")
}

// bodyHeight is what remains between the header and the bottom rows.
func (m Model) bodyHeight() int {
	h := m.height - headerHeight - footerHeight - playerbar.Height(m.playerMode())
	if m.errorMsg != "" {
		h--
	}
	return max(h, 3)
}

func (m Model) renderHeader() string {
	s := m.theme.S()
	title := m.theme.Heading(m.bundle.T("appName"))

	themeKey := "themeLight"
	if m.theme.Name == styles.Dark {
		themeKey = "themeDark"
	}
	meta := s.Muted.Render(m.bundle.T("languageName") + " · " + m.bundle.T(themeKey))

	row := render.Fit(render.Row(title, meta, m.width, m.bundle.RTL()), m.width)
	return row + "\n" + s.Subtle.Render(render.Separator(m.width))
}

func (m Model) renderBody() string {
	height := m.bodyHeight()
	if !m.showLibrary {
		return m.renderNowPlaying(m.width, height)
	}
	if m.width < 2*libraryWidth {
		return m.renderLibrary(m.width, height)
	}

	library := m.renderLibrary(libraryWidth, height)
	now := m.renderNowPlaying(m.width-libraryWidth, height)
	if m.bundle.RTL() {
		return lipgloss.JoinHorizontal(lipgloss.Top, now, library)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, library, now)
}

func (m Model) renderNowPlaying(width, height int) string {
	s := m.theme.S()
	inner := max(width-2, 0)
	rows := max(height-2, 0)

	var lines []string
	if page, ok := m.snap.Page(); ok {
		lines = []string{
			m.theme.Heading(m.bundle.PageTitle(page.ID)),
			s.Muted.Render(m.bundle.PageBadge(m.snap.State.CurrentIndex+1, len(m.snap.Pages))),
			"",
			s.Base.Render(m.bundle.SurahReciter()),
		}
		if m.snap.Status == playback.StatusLoading {
			lines = append(lines, "", s.Subtle.Render(m.bundle.T("loading")))
		}
	}

	top := max((rows-len(lines))/2, 0)
	body := make([]string, 0, rows)
	for range top {
		body = append(body, "")
	}
	body = append(body, lines...)
	for i := range body {
		body[i] = render.Center(body[i], inner)
	}

	return m.theme.Panel(false).Width(inner).Render(fitHeight(strings.Join(body, "\n"), rows, inner))
}

func (m Model) renderBanner() string {
	text := render.Sanitize(m.errorMsg)
	return m.theme.S().Banner.Render(render.Align(text, m.width-2, m.bundle.RTL()))
}

// playerState builds the player bar input from the snapshot.
func (m Model) playerState() playerbar.State {
	page, ok := m.snap.Page()
	if !ok {
		return playerbar.State{Status: m.snap.Status}
	}
	st := m.snap.State
	return playerbar.State{
		Title:    m.bundle.PageTitle(page.ID),
		Badge:    m.bundle.PageBadge(st.CurrentIndex+1, len(m.snap.Pages)),
		Subtitle: m.bundle.SurahReciter(),
		Status:   m.snap.Status,
		Position: m.snap.Position,
		Duration: m.snap.Duration,
		Repeat:   st.RepeatMode,
		Labels: playerbar.Labels{
			Repeat: m.repeatLabel(st.RepeatMode),
			Speed:  m.bundle.Speed(st.Speed),
		},
		Speed:  st.Speed,
		Volume: st.Volume,
		Muted:  st.Muted,
		RTL:    m.bundle.RTL(),
		Mode:   m.playerMode(),
	}
}

func (m Model) repeatLabel(mode playback.RepeatMode) string {
	switch mode {
	case playback.RepeatPage:
		return m.bundle.T("repeatPage")
	case playback.RepeatAll:
		return m.bundle.T("repeatAll")
	default:
		return m.bundle.T("repeatOff")
	}
}

// fitHeight pads or cuts s to exactly rows lines of width cells.
func fitHeight(s string, rows, width int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > rows {
		lines = lines[:rows]
	}
	for len(lines) < rows {
		lines = append(lines, "")
	}
	for i, l := range lines {
		lines[i] = render.Fit(l, width)
	}
	return strings.Join(lines, "\n")
}
