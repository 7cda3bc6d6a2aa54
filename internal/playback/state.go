// internal/playback/state.go
package playback

import "math"

// Status is the engine's view of the current track.
//
//	          LoadTrack
//	Idle ───────────────▶ Loading ──ready──▶ ReadyPaused ◀──pause── ReadyPlaying
//	                        ▲                     │        ──play──▶      │
//	                        │                     ▼                       │
//	                        └──── (transition) ── Ended ◀───── ended ─────┘
//
// Error is entered from any loaded status when the output reports a failure;
// the next LoadTrack leaves it. Ended is never observed at rest: the engine
// resolves it into a LoadTrack within the same call.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReadyPaused
	StatusReadyPlaying
	StatusEnded
	StatusError
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "Idle"
	case StatusLoading:
		return "Loading"
	case StatusReadyPaused:
		return "ReadyPaused"
	case StatusReadyPlaying:
		return "ReadyPlaying"
	case StatusEnded:
		return "Ended"
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// IsReady returns true if the media for the current track can be played.
func (s Status) IsReady() bool {
	return s == StatusReadyPaused || s == StatusReadyPlaying
}

// RepeatMode defines what happens when a track ends.
// Values match the persisted integers 0/1/2.
type RepeatMode int

const (
	RepeatOff RepeatMode = iota
	RepeatPage
	RepeatAll
)

// String returns the repeat mode name.
func (m RepeatMode) String() string {
	switch m {
	case RepeatOff:
		return "Off"
	case RepeatPage:
		return "Page"
	case RepeatAll:
		return "All"
	default:
		return "Unknown"
	}
}

// Valid reports whether m is one of the known modes.
func (m RepeatMode) Valid() bool {
	return m >= RepeatOff && m <= RepeatAll
}

// Next returns the mode that follows m in the Off → Page → All cycle.
func (m RepeatMode) Next() RepeatMode {
	return (m + 1) % 3
}

const (
	DefaultVolume = 0.8
	DefaultSpeed  = 1.0
	MinSpeed      = 0.5
	MaxSpeed      = 2.0

	// unmuteVolume is restored when unmuting with no remembered level.
	unmuteVolume = 0.5
)

// ClampSpeed bounds x to [MinSpeed, MaxSpeed]. NaN maps to DefaultSpeed.
func ClampSpeed(x float64) float64 {
	if math.IsNaN(x) {
		return DefaultSpeed
	}
	return math.Min(math.Max(x, MinSpeed), MaxSpeed)
}

// ValidSpeed reports whether x can be used without clamping.
func ValidSpeed(x float64) bool {
	return !math.IsNaN(x) && x >= MinSpeed && x <= MaxSpeed
}

// ClampVolume bounds v to [0, 1]. NaN maps to 0.
func ClampVolume(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Min(math.Max(v, 0), 1)
}

// PlaybackState is the mutable session state owned by the engine.
type PlaybackState struct {
	CurrentIndex int
	IsPlaying    bool
	RepeatMode   RepeatMode
	Speed        float64
	Volume       float64 // remembered level, kept while muted
	Muted        bool
}

// DefaultState returns the state used when nothing was persisted.
func DefaultState() PlaybackState {
	return PlaybackState{
		RepeatMode: RepeatOff,
		Speed:      DefaultSpeed,
		Volume:     DefaultVolume,
	}
}

// EffectiveVolume is the level actually sent to the output.
func (s PlaybackState) EffectiveVolume() float64 {
	if s.Muted {
		return 0
	}
	return s.Volume
}

// normalized applies the startup fallbacks for out-of-range values.
func (s PlaybackState) normalized() PlaybackState {
	if !ValidSpeed(s.Speed) {
		s.Speed = DefaultSpeed
	}
	if !s.RepeatMode.Valid() {
		s.RepeatMode = RepeatOff
	}
	if math.IsNaN(s.Volume) {
		s.Volume = DefaultVolume
	}
	s.Volume = ClampVolume(s.Volume)
	if s.CurrentIndex < 0 {
		s.CurrentIndex = 0
	}
	return s
}
