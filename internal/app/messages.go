package app

import (
	"github.com/llehouerou/pageplayer/internal/playback"
)

// SnapshotMsg carries a fresh copy of the engine state.
type SnapshotMsg struct {
	Snapshot playback.Snapshot
	Err      error
}

// PageChangedMsg wraps a playback.PageChange notification.
type PageChangedMsg playback.PageChange

// StatusChangedMsg wraps a playback.StatusChange notification.
type StatusChangedMsg playback.StatusChange

// PlayStateChangedMsg wraps a playback.PlayStateChange notification.
type PlayStateChangedMsg playback.PlayStateChange

// ProgressMsg wraps a playback.ProgressChange notification.
type ProgressMsg playback.ProgressChange

// RepeatModeChangedMsg wraps a playback.RepeatModeChange notification.
type RepeatModeChangedMsg playback.RepeatModeChange

// SpeedChangedMsg wraps a playback.SpeedChange notification.
type SpeedChangedMsg playback.SpeedChange

// VolumeChangedMsg wraps a playback.VolumeChange notification.
type VolumeChangedMsg playback.VolumeChange

// EngineErrorMsg wraps a playback.ErrorEvent.
type EngineErrorMsg playback.ErrorEvent

// SessionClosedMsg is sent once the engine shuts down.
type SessionClosedMsg struct{}

// ErrorTimeoutMsg clears the error banner unless a newer error replaced it.
// The Version field is used to ignore stale timeouts.
type ErrorTimeoutMsg struct {
	Version int
}
