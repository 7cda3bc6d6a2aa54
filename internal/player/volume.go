package player

import (
	"math"

	"github.com/gopxl/beep/v2/speaker"
)

// SetVolume sets the volume level (0.0 to 1.0).
// If muted, only stores the level without applying it.
func (p *Player) SetVolume(level float64) {
	level = math.Min(math.Max(level, 0), 1)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = level
	if p.volume != nil {
		speaker.Lock()
		p.volume.Volume = levelToVolume(level)
		speaker.Unlock()
	}
}

// SetMuted silences output without forgetting the level.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
	if p.volume != nil {
		speaker.Lock()
		p.volume.Silent = muted
		speaker.Unlock()
	}
}

// SetSpeed changes the playback rate. Resampling shifts pitch with speed.
func (p *Player) SetSpeed(speed float64) {
	if speed <= 0 || math.IsNaN(speed) {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.speed = speed
	if p.resampler != nil {
		speaker.Lock()
		p.resampler.SetRatio(resampleRatio(p.format.SampleRate, speed))
		speaker.Unlock()
	}
}

// levelToVolume converts a 0.0-1.0 level to beep's Volume value.
// beep uses a logarithmic scale where Volume is in "decibels" with base 2.
// Volume = 0 means no change, -1 = half volume, -2 = quarter, etc.
// We map: 1.0 -> 0, 0.5 -> -1, 0.25 -> -2, 0 -> -10 (essentially silent)
func levelToVolume(level float64) float64 {
	if level <= 0 {
		return -10
	}
	if level >= 1 {
		return 0
	}
	return math.Log2(level)
}
