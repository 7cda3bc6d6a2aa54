// Package icons provides the glyphs used by the player bar and library.
package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	Play       string
	Pause      string
	Loading    string
	Stopped    string
	Error      string
	RepeatOff  string
	RepeatPage string
	RepeatAll  string
	Volume     string
	VolumeMute string
	Speed      string
	Current    string // marks the current page in the library
}

var (
	nerdIcons = Icons{
		Play:       "\uf04b", // nf-fa-play
		Pause:      "\uf04c", // nf-fa-pause
		Loading:    "󰔟",      // nf-md-timer_sand
		Stopped:    "\uf04d", // nf-fa-stop
		Error:      "\uf071", // nf-fa-warning
		RepeatOff:  "󰑗",      // nf-md-repeat_off
		RepeatPage: "󰑘",      // nf-md-repeat_once
		RepeatAll:  "󰑖",      // nf-md-repeat
		Volume:     "󰕾",      // nf-md-volume_high
		VolumeMute: "󰝟",      // nf-md-volume_mute
		Speed:      "󰓅",      // nf-md-speedometer
		Current:    "\uf001", // nf-fa-music
	}

	unicodeIcons = Icons{
		Play:       "▶",
		Pause:      "⏸",
		Loading:    "…",
		Stopped:    "■",
		Error:      "✕",
		RepeatOff:  "→",
		RepeatPage: "🔂",
		RepeatAll:  "🔁",
		Volume:     "🔊",
		VolumeMute: "🔇",
		Speed:      "×",
		Current:    "♪",
	}

	noneIcons = Icons{
		Play:       ">",
		Pause:      "||",
		Loading:    "..",
		Stopped:    "[]",
		Error:      "!",
		RepeatOff:  "[-]",
		RepeatPage: "[1]",
		RepeatAll:  "[R]",
		Volume:     "vol",
		VolumeMute: "mute",
		Speed:      "x",
		Current:    "*",
	}

	// current holds the active icon set
	current = unicodeIcons
)

// Init selects the icon set. Unknown styles select unicode.
// Call this once at startup with the config value.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleNone:
		current = noneIcons
	default:
		current = unicodeIcons
	}
}

// Current returns the active icon set.
func Current() Icons {
	return current
}

// Play returns the playing indicator.
func Play() string { return current.Play }

// Pause returns the paused indicator.
func Pause() string { return current.Pause }

// Loading returns the loading indicator.
func Loading() string { return current.Loading }

// Stopped returns the idle/ended indicator.
func Stopped() string { return current.Stopped }

// Error returns the error indicator.
func Error() string { return current.Error }

// Repeat returns the icon for a repeat mode name: "off", "page" or "all".
func Repeat(mode string) string {
	switch mode {
	case "page":
		return current.RepeatPage
	case "all":
		return current.RepeatAll
	default:
		return current.RepeatOff
	}
}

// Volume returns the volume icon, or the muted one.
func Volume(muted bool) string {
	if muted {
		return current.VolumeMute
	}
	return current.Volume
}

// Speed returns the playback rate marker.
func Speed() string { return current.Speed }

// MarkCurrent prefixes name with the current-page marker.
func MarkCurrent(name string) string {
	return current.Current + " " + name
}
