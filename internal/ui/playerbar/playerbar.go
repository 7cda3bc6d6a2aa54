// Package playerbar renders the now-playing bar at the bottom of the screen.
package playerbar

import (
	"strings"
	"time"

	"github.com/llehouerou/pageplayer/internal/icons"
	"github.com/llehouerou/pageplayer/internal/playback"
	"github.com/llehouerou/pageplayer/internal/ui/render"
	"github.com/llehouerou/pageplayer/internal/ui/styles"
)

// DisplayMode controls the player bar appearance.
type DisplayMode int

const (
	ModeCompact  DisplayMode = iota // Single-line view
	ModeExpanded                    // Title, subtitle, progress and indicators
)

// State holds everything needed to render the player bar. Text fields are
// already translated.
type State struct {
	Title    string // "Page 12"
	Badge    string // "Page 3 of 48"
	Subtitle string // surah and reciter
	Status   playback.Status
	Position time.Duration
	Duration time.Duration // zero while unknown
	Repeat   playback.RepeatMode
	Labels   Labels
	Speed    float64
	Volume   float64
	Muted    bool
	RTL      bool
	Mode     DisplayMode
}

// Labels are the translated indicator strings.
type Labels struct {
	Repeat string // e.g. "Repeat: Page"
	Speed  string // e.g. "1.25x"
}

// Height returns the total height of the player bar for the given mode.
func Height(mode DisplayMode) int {
	if mode == ModeExpanded {
		return 6 // 4 content rows + 2 border rows
	}
	return 3 // top border + content + bottom border
}

// Render returns the player bar string for the given width. An idle engine
// with no page renders nothing.
func Render(s State, t *styles.Theme, width int) string {
	if s.Status == playback.StatusIdle && s.Title == "" {
		return ""
	}
	if s.Mode == ModeExpanded {
		return renderExpanded(s, t, width)
	}
	return renderCompact(s, t, width)
}

func renderCompact(s State, t *styles.Theme, width int) string {
	innerWidth := max(width-6, 0) // border + padding

	left := statusIcon(s.Status) + " " + t.S().Title.Render(render.Truncate(s.Title, 24))
	right := indicators(s, t)
	clock := t.S().Muted.Render(Clock(s.Position, s.Duration))

	fixed := render.Width(left) + render.Width(right) + render.Width(clock) + 6
	barWidth := innerWidth - fixed

	var parts []string
	if barWidth >= minBarWidth {
		parts = []string{left, ProgressBar(s.Position, s.Duration, barWidth, t), clock, right}
	} else {
		parts = []string{left, clock, right}
	}
	if s.RTL {
		reverse(parts)
	}
	content := render.Fit(strings.Join(parts, "  "), innerWidth)

	return t.Panel(false).Padding(0, 2).Width(width - 2).Render(content)
}

func renderExpanded(s State, t *styles.Theme, width int) string {
	innerWidth := max(width-6, 0)
	if innerWidth < 30 {
		return renderCompact(s, t, width)
	}

	title := statusIcon(s.Status) + " " + t.S().Title.Render(render.Sanitize(s.Title))
	badge := t.S().Muted.Render(render.Sanitize(s.Badge))
	subtitle := t.S().Subtle.Render(render.Truncate(s.Subtitle, innerWidth))

	lines := []string{
		render.Row(title, badge, innerWidth, s.RTL),
		render.Align(subtitle, innerWidth, s.RTL),
		RenderProgress(s, t, innerWidth),
		render.Align(indicators(s, t), innerWidth, !s.RTL),
	}
	for i, l := range lines {
		lines[i] = render.Fit(l, innerWidth)
	}

	return t.Panel(false).Padding(0, 2).Width(width - 2).Render(strings.Join(lines, "\n"))
}

func statusIcon(st playback.Status) string {
	switch st {
	case playback.StatusReadyPlaying:
		return icons.Play()
	case playback.StatusReadyPaused:
		return icons.Pause()
	case playback.StatusLoading:
		return icons.Loading()
	case playback.StatusError:
		return icons.Error()
	default:
		return icons.Stopped()
	}
}

func reverse(parts []string) {
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
}
