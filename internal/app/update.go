package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/pageplayer/internal/playback"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.syncCursor()
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case SnapshotMsg:
		return m.handleSnapshot(msg)

	case PageChangedMsg:
		return m.handlePageChanged(msg)

	case StatusChangedMsg:
		m.snap.Status = msg.Current
		return m, m.WatchEvents()

	case PlayStateChangedMsg:
		m.snap.State.IsPlaying = msg.Playing
		return m, m.WatchEvents()

	case ProgressMsg:
		m.snap.Position, m.snap.Duration = msg.Position, msg.Duration
		return m, m.WatchEvents()

	case RepeatModeChangedMsg:
		m.snap.State.RepeatMode = msg.Mode
		return m, m.WatchEvents()

	case SpeedChangedMsg:
		m.snap.State.Speed = msg.Speed
		return m, m.WatchEvents()

	case VolumeChangedMsg:
		m.snap.State.Volume, m.snap.State.Muted = msg.Volume, msg.Muted
		return m, m.WatchEvents()

	case EngineErrorMsg:
		if msg.Operation == playback.OpCatalog {
			m.catalogFailed = true
		}
		cmd := m.showError(m.engineErrorText(msg))
		m.log.Warn("playback error", "op", msg.Operation, "index", msg.Index, "err", msg.Err)
		return m, tea.Batch(cmd, m.WatchEvents())

	case ErrorTimeoutMsg:
		if msg.Version == m.errorVersion {
			m.errorMsg = ""
		}
		return m, nil

	case SessionClosedMsg:
		return m, nil
	}

	return m, nil
}

func (m Model) handleSnapshot(msg SnapshotMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.log.Error("read playback state", "err", msg.Err)
		return m, nil
	}
	// Start on the current page at first sync and when the catalog arrives.
	jump := !m.synced || len(m.snap.Pages) == 0
	m.snap = msg.Snapshot
	m.synced = true
	if jump {
		m.jumpCursor(m.snap.State.CurrentIndex)
	}
	m.syncCursor()
	return m, nil
}

func (m Model) handlePageChanged(msg PageChangedMsg) (tea.Model, tea.Cmd) {
	// The cursor follows playback unless the user moved it elsewhere.
	follow := m.list.Pos() == msg.Previous || m.list.Pos() == m.snap.State.CurrentIndex
	m.snap.State.CurrentIndex = msg.Index

	cmds := []tea.Cmd{m.WatchEvents()}
	if msg.Index >= len(m.snap.Pages) {
		// Catalog changed under us.
		cmds = append(cmds, m.FetchSnapshot())
	}
	if follow {
		m.jumpCursor(msg.Index)
	}
	m.syncCursor()
	return m, tea.Batch(cmds...)
}

// showError sets the banner and arms its timeout.
func (m *Model) showError(text string) tea.Cmd {
	m.errorMsg = text
	m.errorVersion++
	return ErrorTimeoutCmd(m.errorVersion)
}
