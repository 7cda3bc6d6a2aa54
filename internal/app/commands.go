package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	snapshotTimeout = 2 * time.Second
	errorDisplay    = 8 * time.Second
)

// FetchSnapshot returns a command that reads the engine state off the loop.
func (m Model) FetchSnapshot() tea.Cmd {
	session := m.session
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
		defer cancel()
		snap, err := session.Snapshot(ctx)
		return SnapshotMsg{Snapshot: snap, Err: err}
	}
}

// WatchEvents returns a command that waits for the next engine
// notification. Each handled notification re-arms it.
func (m Model) WatchEvents() tea.Cmd {
	sub := m.sub
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e := <-sub.PageChanged:
			return PageChangedMsg(e)
		case e := <-sub.StatusChanged:
			return StatusChangedMsg(e)
		case e := <-sub.PlayStateChanged:
			return PlayStateChangedMsg(e)
		case e := <-sub.ProgressChanged:
			return ProgressMsg(e)
		case e := <-sub.RepeatModeChanged:
			return RepeatModeChangedMsg(e)
		case e := <-sub.SpeedChanged:
			return SpeedChangedMsg(e)
		case e := <-sub.VolumeChanged:
			return VolumeChangedMsg(e)
		case e := <-sub.Error:
			return EngineErrorMsg(e)
		case <-sub.Done:
			return SessionClosedMsg{}
		}
	}
}

// ErrorTimeoutCmd returns a command that sends ErrorTimeoutMsg after the
// banner display time.
func ErrorTimeoutCmd(version int) tea.Cmd {
	return tea.Tick(errorDisplay, func(_ time.Time) tea.Msg {
		return ErrorTimeoutMsg{Version: version}
	})
}
