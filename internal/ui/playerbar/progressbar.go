package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/llehouerou/pageplayer/internal/ui/render"
	"github.com/llehouerou/pageplayer/internal/ui/styles"
)

const (
	filledBlock = "━"
	emptyBlock  = "─"
	minBarWidth = 5
)

// unknownClock is shown while the duration is not known yet.
const unknownClock = "--:--"

// FormatTime renders d as m:ss.
func FormatTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// Clock renders "position / duration", with placeholders until the
// duration is known.
func Clock(position, duration time.Duration) string {
	if duration <= 0 {
		return unknownClock + " / " + unknownClock
	}
	return FormatTime(position) + " / " + FormatTime(duration)
}

// Ratio returns how much of duration has been played, in [0, 1].
func Ratio(position, duration time.Duration) float64 {
	if duration <= 0 || position <= 0 {
		return 0
	}
	return min(float64(position)/float64(duration), 1)
}

// ProgressBar renders a bar of width cells.
func ProgressBar(position, duration time.Duration, width int, t *styles.Theme) string {
	if width <= 0 {
		return ""
	}
	filled := int(float64(width) * Ratio(position, duration))
	return t.S().Playing.Render(strings.Repeat(filledBlock, filled)) +
		t.S().Subtle.Render(strings.Repeat(emptyBlock, width-filled))
}

// RenderProgress renders "1:23  ━━━───  4:56" across width cells, falling
// back to the clock alone when too narrow for a bar.
func RenderProgress(s State, t *styles.Theme, width int) string {
	pos, dur := unknownClock, unknownClock
	if s.Duration > 0 {
		pos, dur = FormatTime(s.Position), FormatTime(s.Duration)
	}
	barWidth := width - render.Width(pos) - render.Width(dur) - 4
	if barWidth < minBarWidth {
		return t.S().Muted.Render(pos + " / " + dur)
	}

	left, right := pos, dur
	if s.RTL {
		left, right = right, left
	}
	return t.S().Muted.Render(left) + "  " +
		ProgressBar(s.Position, s.Duration, barWidth, t) + "  " +
		t.S().Muted.Render(right)
}
