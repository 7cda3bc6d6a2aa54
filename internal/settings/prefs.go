package settings

import (
	"math"
	"strconv"

	"github.com/llehouerou/pageplayer/internal/playback"
)

// DefaultLanguage is used when no language was saved.
const DefaultLanguage = "en"

// Theme values.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Values is the validated snapshot of every persisted preference.
type Values struct {
	Language      string
	Theme         string // empty when the user never chose one
	Volume        float64
	Muted         bool
	RepeatMode    playback.RepeatMode
	Speed         float64
	LastPageIndex int
}

// PlaybackState converts the saved values into the engine's initial state.
func (v Values) PlaybackState() playback.PlaybackState {
	return playback.PlaybackState{
		CurrentIndex: v.LastPageIndex,
		RepeatMode:   v.RepeatMode,
		Speed:        v.Speed,
		Volume:       v.Volume,
		Muted:        v.Muted,
	}
}

// Prefs reads and writes typed preferences over a Store.
type Prefs struct {
	store Store
}

// Verify Prefs implements playback.Preferences at compile time.
var _ playback.Preferences = (*Prefs)(nil)

// NewPrefs wraps store.
func NewPrefs(store Store) *Prefs {
	return &Prefs{store: store}
}

// Load reads every key, falling back to defaults field by field when a value
// is missing or invalid. Only store failures are returned as errors.
func (p *Prefs) Load() (Values, error) {
	v := Values{
		Language:   DefaultLanguage,
		Volume:     playback.DefaultVolume,
		RepeatMode: playback.RepeatOff,
		Speed:      playback.DefaultSpeed,
	}

	raw, err := p.getAll()
	if err != nil {
		return v, err
	}

	if s := raw[KeyLanguage]; s != "" {
		v.Language = s
	}
	if s := raw[KeyTheme]; s == ThemeLight || s == ThemeDark {
		v.Theme = s
	}
	if f, err := strconv.ParseFloat(raw[KeyVolume], 64); err == nil && !math.IsNaN(f) {
		v.Volume = playback.ClampVolume(f)
	}
	v.Muted = raw[KeyMuted] == "true"
	if n, err := strconv.Atoi(raw[KeyRepeatMode]); err == nil && playback.RepeatMode(n).Valid() {
		v.RepeatMode = playback.RepeatMode(n)
	}
	if f, err := strconv.ParseFloat(raw[KeySpeed], 64); err == nil && playback.ValidSpeed(f) {
		v.Speed = f
	}
	if n, err := strconv.Atoi(raw[KeyLastPageIndex]); err == nil && n >= 0 {
		v.LastPageIndex = n
	}
	return v, nil
}

func (p *Prefs) getAll() (map[string]string, error) {
	keys := []string{KeyLanguage, KeyTheme, KeyVolume, KeyMuted, KeyRepeatMode, KeySpeed, KeyLastPageIndex}
	raw := make(map[string]string, len(keys))
	for _, k := range keys {
		s, ok, err := p.store.Get(k)
		if err != nil {
			return nil, err
		}
		if ok {
			raw[k] = s
		}
	}
	return raw, nil
}

// SavePageIndex persists the last played page index.
func (p *Prefs) SavePageIndex(index int) error {
	return p.store.Set(KeyLastPageIndex, strconv.Itoa(index))
}

// SaveRepeatMode persists the repeat mode as 0/1/2.
func (p *Prefs) SaveRepeatMode(mode playback.RepeatMode) error {
	return p.store.Set(KeyRepeatMode, strconv.Itoa(int(mode)))
}

// SaveSpeed persists the playback speed.
func (p *Prefs) SaveSpeed(speed float64) error {
	return p.store.Set(KeySpeed, formatFloat(speed))
}

// SaveVolume persists the remembered volume level and mute flag together.
func (p *Prefs) SaveVolume(volume float64, muted bool) error {
	return p.store.SetMany(map[string]string{
		KeyVolume: formatFloat(volume),
		KeyMuted:  strconv.FormatBool(muted),
	})
}

// SaveLanguage persists the interface language.
func (p *Prefs) SaveLanguage(lang string) error {
	return p.store.Set(KeyLanguage, lang)
}

// SaveTheme persists the colour theme.
func (p *Prefs) SaveTheme(theme string) error {
	return p.store.Set(KeyTheme, theme)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
