package playerbar

import (
	"fmt"
	"math"
	"strings"

	"github.com/llehouerou/pageplayer/internal/icons"
	"github.com/llehouerou/pageplayer/internal/playback"
	"github.com/llehouerou/pageplayer/internal/ui/styles"
)

// VolumeText renders the volume indicator, e.g. "🔊 80%".
// A muted bar keeps showing the remembered level.
func VolumeText(volume float64, muted bool) string {
	pct := int(math.Round(playback.ClampVolume(volume) * 100))
	return fmt.Sprintf("%s %3d%%", icons.Volume(muted), pct)
}

// RepeatText renders the repeat indicator with its translated label.
func RepeatText(mode playback.RepeatMode, label string) string {
	return icons.Repeat(strings.ToLower(mode.String())) + " " + label
}

// SpeedText renders the speed indicator.
func SpeedText(label string) string {
	return icons.Speed() + " " + label
}

func indicators(s State, t *styles.Theme) string {
	repeat := RepeatText(s.Repeat, s.Labels.Repeat)
	if s.Repeat == playback.RepeatOff {
		repeat = t.S().Subtle.Render(repeat)
	} else {
		repeat = t.S().Playing.Render(repeat)
	}

	speed := SpeedText(s.Labels.Speed)
	if s.Speed == playback.DefaultSpeed {
		speed = t.S().Subtle.Render(speed)
	} else {
		speed = t.S().Warning.Render(speed)
	}

	vol := VolumeText(s.Volume, s.Muted)
	if s.Muted {
		vol = t.S().Warning.Render(vol)
	} else {
		vol = t.S().Muted.Render(vol)
	}

	return strings.Join([]string{repeat, speed, vol}, "  ")
}
