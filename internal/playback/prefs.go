package playback

// Preferences persists the engine-owned parts of the session.
type Preferences interface {
	SavePageIndex(index int) error
	SaveRepeatMode(mode RepeatMode) error
	SaveSpeed(speed float64) error
	SaveVolume(volume float64, muted bool) error
}

// nopPreferences discards everything.
type nopPreferences struct{}

func (nopPreferences) SavePageIndex(int) error { return nil }
func (nopPreferences) SaveRepeatMode(RepeatMode) error { return nil }
func (nopPreferences) SaveSpeed(float64) error { return nil }
func (nopPreferences) SaveVolume(float64, bool) error { return nil }
