package playback

import (
	"time"

	"github.com/llehouerou/pageplayer/internal/catalog"
)

// PageChange is emitted by every LoadTrack, including reloads of the same
// page (repeat Page) and the end-of-catalog reset to page 0.
type PageChange struct {
	Previous int
	Index    int
	Page     catalog.Page
}

// PlayStateChange is emitted when the play intent flips.
type PlayStateChange struct {
	Playing bool
}

// StatusChange is emitted on every status transition.
type StatusChange struct {
	Previous Status
	Current  Status
}

// ProgressChange carries the current position. LoadTrack emits a zeroed one
// so displays reset before the new media is ready.
type ProgressChange struct {
	Position time.Duration
	Duration time.Duration
}

// RepeatModeChange is emitted when the repeat mode is set.
type RepeatModeChange struct {
	Mode RepeatMode
}

// SpeedChange is emitted when the playback speed is set.
type SpeedChange struct {
	Speed float64
}

// VolumeChange is emitted when the volume level or mute flag changes.
type VolumeChange struct {
	Volume float64
	Muted  bool
}

// ErrorEvent operations. Failed saves use "save <setting>".
const (
	OpCatalog = "catalog"
	OpPlay    = "play"
	OpMedia   = "media"
)

// ErrorEvent is a non-fatal error surfaced to the UI.
type ErrorEvent struct {
	Operation string // e.g. "play", "media", "save speed"
	Index     int
	Err       error
}
