package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/pageplayer/internal/app/handler"
	"github.com/llehouerou/pageplayer/internal/errmsg"
	"github.com/llehouerou/pageplayer/internal/i18n"
	"github.com/llehouerou/pageplayer/internal/keymap"
	"github.com/llehouerou/pageplayer/internal/playback"
	"github.com/llehouerou/pageplayer/internal/ui/styles"
)

const (
	seekStep   = 5 * time.Second
	volumeStep = 0.05
	speedStep  = 0.25
)

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	contexts := []string{"global", "playback"}
	if m.showLibrary && !m.showHelp {
		contexts = append(contexts, "library")
	}
	action := m.keys.Resolve(msg.String(), contexts...)

	if m.showHelp {
		switch action { //nolint:exhaustive // the help overlay only closes
		case keymap.ActionQuit:
			return tea.Quit
		case keymap.ActionHelp, keymap.ActionDismissError:
			m.showHelp = false
		}
		return nil
	}

	_, cmd := handler.Chain(action, m.handleGlobal, m.handlePlayback, m.handleLibrary)
	return cmd
}

func (m *Model) handleGlobal(a keymap.Action) handler.Result {
	switch a { //nolint:exhaustive // only handling global actions
	case keymap.ActionQuit:
		return handler.Handled(tea.Quit)
	case keymap.ActionHelp:
		m.showHelp = true
		return handler.HandledNoCmd
	case keymap.ActionToggleLibrary:
		m.showLibrary = !m.showLibrary
		m.syncCursor()
		return handler.HandledNoCmd
	case keymap.ActionDismissError:
		m.errorMsg = ""
		return handler.HandledNoCmd
	case keymap.ActionToggleTheme:
		return handler.Handled(m.toggleTheme())
	case keymap.ActionCycleLanguage:
		return handler.Handled(m.cycleLanguage())
	}
	return handler.NotHandled
}

func (m *Model) handlePlayback(a keymap.Action) handler.Result {
	var fn func(*playback.Engine) error

	switch a { //nolint:exhaustive // only handling playback actions
	case keymap.ActionPlayPause:
		fn = (*playback.Engine).Toggle
	case keymap.ActionNextPage:
		fn = (*playback.Engine).Next
	case keymap.ActionPrevPage:
		fn = (*playback.Engine).Prev
	case keymap.ActionSeekForward:
		fn = seekBy(seekStep)
	case keymap.ActionSeekBack:
		fn = seekBy(-seekStep)
	case keymap.ActionCycleRepeat:
		fn = func(e *playback.Engine) error { e.CycleRepeatMode(); return nil }
	case keymap.ActionVolumeUp:
		fn = func(e *playback.Engine) error { e.AdjustVolume(volumeStep); return nil }
	case keymap.ActionVolumeDown:
		fn = func(e *playback.Engine) error { e.AdjustVolume(-volumeStep); return nil }
	case keymap.ActionToggleMute:
		fn = func(e *playback.Engine) error { e.ToggleMute(); return nil }
	case keymap.ActionSpeedUp:
		fn = func(e *playback.Engine) error { e.AdjustSpeed(speedStep); return nil }
	case keymap.ActionSpeedDown:
		fn = func(e *playback.Engine) error { e.AdjustSpeed(-speedStep); return nil }
	case keymap.ActionSpeedReset:
		fn = func(e *playback.Engine) error { e.SetSpeed(playback.DefaultSpeed); return nil }
	default:
		return handler.NotHandled
	}

	m.session.Post(fn)
	return handler.HandledNoCmd
}

func (m *Model) handleLibrary(a keymap.Action) handler.Result {
	switch a { //nolint:exhaustive // only handling library actions
	case keymap.ActionMoveUp:
		m.moveCursor(-1)
	case keymap.ActionMoveDown:
		m.moveCursor(1)
	case keymap.ActionJumpStart:
		m.list.JumpStart()
	case keymap.ActionJumpEnd:
		m.list.JumpEnd(len(m.snap.Pages), m.libraryRows())
	case keymap.ActionSelect:
		m.selectCursor()
	default:
		return handler.NotHandled
	}
	return handler.HandledNoCmd
}

// selectCursor plays the page under the cursor, or toggles playback when
// it is already the current page.
func (m *Model) selectCursor() {
	if len(m.snap.Pages) == 0 {
		return
	}
	idx := m.list.Pos()
	if idx == m.snap.State.CurrentIndex {
		m.session.Post((*playback.Engine).Toggle)
		return
	}
	m.session.Post(func(e *playback.Engine) error { return e.LoadTrack(idx, true) })
}

func seekBy(delta time.Duration) func(*playback.Engine) error {
	return func(e *playback.Engine) error {
		pos, _ := e.Progress()
		return e.Seek(pos + delta)
	}
}

func (m *Model) toggleTheme() tea.Cmd {
	next := m.theme.Name.Toggle()
	m.theme = styles.ForName(next)
	if m.prefs == nil {
		return nil
	}
	if err := m.prefs.SaveTheme(string(next)); err != nil {
		m.log.Error("save theme", "err", err)
		return m.showError(errmsg.Format(errmsg.OpThemeSave, err))
	}
	return nil
}

func (m *Model) cycleLanguage() tea.Cmd {
	lang := i18n.NextLanguage(m.bundle.Lang())
	bundle, err := i18n.Load(lang, m.i18nDir)
	m.bundle = bundle
	if err != nil {
		m.log.Warn("load translations", "lang", lang, "err", err)
		return m.showError(errmsg.FormatWith(errmsg.OpLanguageLoad, lang, err))
	}
	if m.prefs == nil {
		return nil
	}
	if err := m.prefs.SaveLanguage(bundle.Lang()); err != nil {
		m.log.Error("save language", "err", err)
		return m.showError(m.bundle.T("errorSettings"))
	}
	return nil
}
