package playback

import "fmt"

// SetRepeatMode sets and persists the repeat mode. No track transition.
func (e *Engine) SetRepeatMode(mode RepeatMode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidRepeatMode, int(mode))
	}
	e.state.RepeatMode = mode
	e.persist("save repeat mode", func() error { return e.prefs.SaveRepeatMode(mode) })
	e.emit(func(s *Subscription) { s.sendRepeat(RepeatModeChange{Mode: mode}) })
	return nil
}

// CycleRepeatMode advances Off → Page → All → Off.
func (e *Engine) CycleRepeatMode() RepeatMode {
	next := e.state.RepeatMode.Next()
	_ = e.SetRepeatMode(next)
	return next
}

// SetSpeed clamps x to [MinSpeed, MaxSpeed] and applies it.
func (e *Engine) SetSpeed(x float64) {
	speed := ClampSpeed(x)
	e.state.Speed = speed
	e.out.SetSpeed(speed)
	e.persist("save speed", func() error { return e.prefs.SaveSpeed(speed) })
	e.emit(func(s *Subscription) { s.sendSpeed(SpeedChange{Speed: speed}) })
}

// AdjustSpeed changes the speed by delta.
func (e *Engine) AdjustSpeed(delta float64) {
	e.SetSpeed(e.state.Speed + delta)
}

// SetVolume sets the level. Zero mutes but keeps the remembered level; any
// positive level unmutes.
func (e *Engine) SetVolume(v float64) {
	v = ClampVolume(v)
	if v == 0 {
		e.state.Muted = true
	} else {
		e.state.Volume = v
		e.state.Muted = false
	}
	e.applyVolume()
}

// AdjustVolume changes the remembered level by delta.
func (e *Engine) AdjustVolume(delta float64) {
	e.SetVolume(e.state.Volume + delta)
}

// SetMuted mutes or unmutes. Unmuting with a zero level restores a
// moderate level so the change is audible.
func (e *Engine) SetMuted(muted bool) {
	if !muted && e.state.Volume == 0 {
		e.state.Volume = unmuteVolume
	}
	e.state.Muted = muted
	e.applyVolume()
}

// ToggleMute flips the mute flag.
func (e *Engine) ToggleMute() {
	e.SetMuted(!e.state.Muted)
}

func (e *Engine) applyVolume() {
	volume, muted := e.state.Volume, e.state.Muted
	e.out.SetVolume(volume)
	e.out.SetMuted(muted)
	e.persist("save volume", func() error { return e.prefs.SaveVolume(volume, muted) })
	e.emit(func(s *Subscription) { s.sendVolume(VolumeChange{Volume: volume, Muted: muted}) })
}
