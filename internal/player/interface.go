// internal/player/interface.go
package player

import "time"

// EventKind identifies a media notification.
type EventKind int

const (
	EventReady EventKind = iota
	EventProgress
	EventEnded
	EventFailed
	EventPaused
	EventPlaying
	EventStalled
	EventWaiting
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventReady:
		return "ready"
	case EventProgress:
		return "progress"
	case EventEnded:
		return "ended"
	case EventFailed:
		return "failed"
	case EventPaused:
		return "paused"
	case EventPlaying:
		return "playing"
	case EventStalled:
		return "stalled"
	case EventWaiting:
		return "waiting"
	default:
		return "unknown"
	}
}

// Event is a notification from the output. Token is the load token the
// event belongs to; consumers drop events whose token is no longer current.
type Event struct {
	Token    uint64
	Kind     EventKind
	Err      error // set for EventFailed
	Position time.Duration
	Duration time.Duration
}

// Output is the audio resource the playback engine drives.
//
// Load and Play are asynchronous: Load reports through EventReady or
// EventFailed, and Play resolves through done, which may run on any
// goroutine (or synchronously).
type Output interface {
	Load(token uint64, ref string)
	Play(token uint64, done func(error))
	Pause()
	Ready() bool
	Position() time.Duration
	Duration() time.Duration
	SeekTo(pos time.Duration)
	SetVolume(level float64)
	SetMuted(muted bool)
	SetSpeed(speed float64)
	OnEvent(fn func(Event))
	Close()
}

// Verify Player implements Output at compile time.
var _ Output = (*Player)(nil)
