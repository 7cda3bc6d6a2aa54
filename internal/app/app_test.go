package app

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/pageplayer/internal/playback"
	"github.com/llehouerou/pageplayer/internal/ui/styles"
)

func TestUpdate_WindowSizeMsg(t *testing.T) {
	h := newHarness(t, 3)
	h.send(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, 120, h.m.width)
	assert.Equal(t, 40, h.m.height)
}

func TestInit_ReturnsCommands(t *testing.T) {
	h := newHarness(t, 3)
	assert.NotNil(t, h.m.Init())
}

func TestSnapshot_SyncsCursorToCurrentPage(t *testing.T) {
	h := newHarness(t, 5)
	require.NoError(t, h.eng.LoadTrack(3, false))

	h.m.synced = false
	h.send(h.m.FetchSnapshot()())

	assert.True(t, h.m.synced)
	assert.Equal(t, 3, h.m.list.Pos())
	assert.Len(t, h.m.snap.Pages, 5)
}

func TestKeys_PlayPauseLoadsWithIntent(t *testing.T) {
	h := newHarness(t, 3)

	h.key(" ")
	h.pump()

	assert.True(t, h.eng.State().IsPlaying)
	assert.Equal(t, playback.StatusLoading, h.eng.Status())

	h.ready()
	require.True(t, h.out.ResolvePlay(nil))
	h.pump()

	assert.Equal(t, playback.StatusReadyPlaying, h.m.snap.Status)
	assert.True(t, h.m.snap.State.IsPlaying)
}

func TestKeys_Navigation(t *testing.T) {
	h := newHarness(t, 3)

	h.key("n")
	h.pump()
	assert.Equal(t, 1, h.eng.State().CurrentIndex)
	assert.Equal(t, 1, h.m.snap.State.CurrentIndex)

	h.key("p")
	h.key("p")
	h.pump()
	assert.Equal(t, 2, h.eng.State().CurrentIndex, "prev wraps around")
}

func TestKeys_Controls(t *testing.T) {
	tests := []struct {
		name  string
		keys  []string
		check func(t *testing.T, st playback.PlaybackState)
	}{
		{"cycle repeat", []string{"r"}, func(t *testing.T, st playback.PlaybackState) {
			assert.Equal(t, playback.RepeatPage, st.RepeatMode)
		}},
		{"cycle repeat twice", []string{"r", "r"}, func(t *testing.T, st playback.PlaybackState) {
			assert.Equal(t, playback.RepeatAll, st.RepeatMode)
		}},
		{"volume up", []string{"+"}, func(t *testing.T, st playback.PlaybackState) {
			assert.InDelta(t, 0.85, st.Volume, 1e-9)
		}},
		{"volume down", []string{"-", "-"}, func(t *testing.T, st playback.PlaybackState) {
			assert.InDelta(t, 0.7, st.Volume, 1e-9)
		}},
		{"mute", []string{"m"}, func(t *testing.T, st playback.PlaybackState) {
			assert.True(t, st.Muted)
			assert.InDelta(t, 0.8, st.Volume, 1e-9)
		}},
		{"speed up", []string{"]"}, func(t *testing.T, st playback.PlaybackState) {
			assert.InDelta(t, 1.25, st.Speed, 1e-9)
		}},
		{"speed clamps", []string{"[", "[", "[", "["}, func(t *testing.T, st playback.PlaybackState) {
			assert.InDelta(t, playback.MinSpeed, st.Speed, 1e-9)
		}},
		{"speed reset", []string{"]", "0"}, func(t *testing.T, st playback.PlaybackState) {
			assert.InDelta(t, 1.0, st.Speed, 1e-9)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, 3)
			for _, k := range tt.keys {
				h.key(k)
			}
			h.pump()
			tt.check(t, h.eng.State())
			tt.check(t, h.m.snap.State)
		})
	}
}

func TestKeys_Seek(t *testing.T) {
	h := newHarness(t, 3)
	h.ready()
	h.out.SetPosition(0)

	h.key("l")
	h.key("l")
	h.key("h")
	h.pump()

	seeks := h.out.SeekCalls()
	require.Len(t, seeks, 3)
	assert.Equal(t, seekStep, seeks[0])
	assert.Equal(t, 2*seekStep, seeks[1])
	assert.Equal(t, seekStep, seeks[2])
}

func TestLibrary_CursorAndSelect(t *testing.T) {
	h := newHarness(t, 4)

	h.key("j")
	h.key("j")
	assert.Equal(t, 2, h.m.list.Pos())
	assert.Equal(t, 0, h.eng.State().CurrentIndex, "moving the cursor does not change page")

	h.key("enter")
	h.pump()
	assert.Equal(t, 2, h.eng.State().CurrentIndex)
	assert.True(t, h.eng.State().IsPlaying)
	assert.Equal(t, 2, h.m.list.Pos())

	h.key("G")
	assert.Equal(t, 3, h.m.list.Pos())
	h.key("j")
	assert.Equal(t, 3, h.m.list.Pos(), "cursor stops at the last page")
	h.key("g")
	assert.Equal(t, 0, h.m.list.Pos())
}

func TestLibrary_SelectCurrentToggles(t *testing.T) {
	h := newHarness(t, 3)
	h.ready()

	h.key("enter")
	h.pump()
	require.Equal(t, 1, h.out.PlayCalls())
	require.True(t, h.out.ResolvePlay(nil))
	h.pump()
	assert.Equal(t, playback.StatusReadyPlaying, h.eng.Status())

	h.key("enter")
	h.pump()
	assert.Equal(t, playback.StatusReadyPaused, h.eng.Status())
	assert.Equal(t, 0, h.eng.State().CurrentIndex)
}

func TestLibrary_HiddenIgnoresLibraryKeys(t *testing.T) {
	h := newHarness(t, 3)
	h.send(tea.KeyMsg{Type: tea.KeyTab})
	require.False(t, h.m.showLibrary)

	h.key("j")
	assert.Equal(t, 0, h.m.list.Pos())
}

func TestPageChanged_CursorFollowsPlayback(t *testing.T) {
	h := newHarness(t, 5)

	h.key("n")
	h.pump()
	assert.Equal(t, 1, h.m.list.Pos())

	// Once the user moves away, playback no longer drags the cursor.
	h.key("j")
	h.key("j")
	h.key("n")
	h.pump()
	assert.Equal(t, 3, h.m.list.Pos())
	assert.Equal(t, 2, h.m.snap.State.CurrentIndex)
}

func TestTheme_TogglePersists(t *testing.T) {
	h := newHarness(t, 3)

	h.key("t")
	assert.Equal(t, styles.Dark, h.m.theme.Name)
	assert.Equal(t, "dark", h.prefs.theme)

	h.key("t")
	assert.Equal(t, styles.Light, h.m.theme.Name)
	assert.Equal(t, "light", h.prefs.theme)
}

func TestTheme_SaveErrorShowsBanner(t *testing.T) {
	h := newHarness(t, 3)
	h.prefs.err = errDisk

	cmd := h.key("t")
	assert.NotNil(t, cmd, "banner timeout should be scheduled")
	assert.Contains(t, h.m.errorMsg, "Failed to save theme")
	assert.Equal(t, styles.Dark, h.m.theme.Name, "theme applies even when saving fails")
}

func TestLanguage_CyclePersists(t *testing.T) {
	h := newHarness(t, 3)

	h.key("L")
	assert.Equal(t, "ar", h.m.bundle.Lang())
	assert.Equal(t, "ar", h.prefs.lang)
	assert.True(t, h.m.bundle.RTL())

	h.key("L")
	assert.Equal(t, "en", h.m.bundle.Lang())
}

func TestEngineError_BannerAndTimeout(t *testing.T) {
	h := newHarness(t, 3)
	h.ready()
	h.key(" ")
	require.True(t, h.out.ResolvePlay(errDisk))
	h.pump()

	assert.Equal(t, h.m.bundle.T("errorPlaybackRejected"), h.m.errorMsg)
	version := h.m.errorVersion

	h.send(ErrorTimeoutMsg{Version: version - 1})
	assert.NotEmpty(t, h.m.errorMsg, "stale timeout keeps the banner")

	h.send(ErrorTimeoutMsg{Version: version})
	assert.Empty(t, h.m.errorMsg)
}

func TestEngineErrorText(t *testing.T) {
	h := newHarness(t, 1)
	tests := []struct {
		name string
		ev   EngineErrorMsg
		want string
	}{
		{"rejected", EngineErrorMsg{Operation: playback.OpPlay, Err: &playback.RejectedError{Err: errDisk}}, h.m.bundle.T("errorPlaybackRejected")},
		{"media", EngineErrorMsg{Operation: playback.OpMedia, Err: &playback.MediaError{Err: errDisk}}, h.m.bundle.T("errorMedia")},
		{"catalog", EngineErrorMsg{Operation: playback.OpCatalog, Err: errDisk}, h.m.bundle.T("errorCatalog")},
		{"save", EngineErrorMsg{Operation: "save speed", Err: errDisk}, h.m.bundle.T("errorSettings")},
		{"other", EngineErrorMsg{Operation: "seek", Err: errDisk}, "Failed to seek: disk full"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, h.m.engineErrorText(tt.ev))
		})
	}
}

func TestDismissError(t *testing.T) {
	h := newHarness(t, 1)
	h.m.errorMsg = "boom"
	h.key("esc")
	assert.Empty(t, h.m.errorMsg)
}

func TestQuit(t *testing.T) {
	h := newHarness(t, 1)
	cmd := h.key("q")
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestHelp_OverlayCapturesKeys(t *testing.T) {
	h := newHarness(t, 3)

	h.key("?")
	require.True(t, h.m.showHelp)
	assert.Contains(t, ansi.Strip(h.m.View()), "Play/pause")

	h.key("n")
	h.pump()
	assert.Equal(t, 0, h.eng.State().CurrentIndex, "help overlay swallows playback keys")

	h.key("?")
	assert.False(t, h.m.showHelp)
}

func TestSessionClosed_StopsWatching(t *testing.T) {
	h := newHarness(t, 1)
	assert.Nil(t, h.send(SessionClosedMsg{}))
}

func TestView(t *testing.T) {
	h := newHarness(t, 48)
	h.ready()
	h.pump()

	view := h.m.View()
	lines := strings.Split(view, "\n")
	assert.Len(t, lines, 30)

	plain := ansi.Strip(view)
	for _, want := range []string{"Quran Page Player", "Page 1", "Page 1 of 48", "Abdul Rashid Sufi", "1:30", "Repeat: Off", "1.00x"} {
		assert.Contains(t, plain, want)
	}
}

func TestView_EmptyCatalog(t *testing.T) {
	h := newHarness(t, 0)
	assert.Contains(t, ansi.Strip(h.m.View()), h.m.bundle.T("loadingLibrary"))

	h.eng.OnCatalogUnavailable(errDisk)
	h.pump()
	plain := ansi.Strip(h.m.View())
	assert.Contains(t, plain, h.m.bundle.T("emptyLibrary"))
	assert.Contains(t, plain, h.m.bundle.T("errorCatalog"))
}

func TestView_ZeroSizeIsEmpty(t *testing.T) {
	h := newHarness(t, 1)
	h.send(tea.WindowSizeMsg{})
	assert.Empty(t, h.m.View())
}

func TestLibrary_ScrollKeepsCursorVisible(t *testing.T) {
	h := newHarness(t, 48)
	rows := h.m.libraryRows()
	require.Positive(t, rows)

	h.key("G")
	assert.Equal(t, 47, h.m.list.Pos())
	assert.Equal(t, 48-rows, h.m.list.Offset())
	assert.Contains(t, ansi.Strip(h.m.View()), "Page 48")

	h.key("g")
	assert.Equal(t, 0, h.m.list.Offset())
}

func TestCatalogArrivesLate_CursorOnRestoredPage(t *testing.T) {
	initial := playback.DefaultState()
	initial.CurrentIndex = 30
	h := newEmptyHarness(t, initial)
	h.send(tea.WindowSizeMsg{Width: 100, Height: 30})
	h.send(h.m.FetchSnapshot()())
	require.Empty(t, h.m.snap.Pages)
	assert.Contains(t, ansi.Strip(h.m.View()), h.m.bundle.T("loadingLibrary"))

	h.eng.SetCatalog(testPages(48))
	h.pump()
	h.send(h.m.FetchSnapshot()())

	assert.Equal(t, 30, h.m.list.Pos())
	start, end := h.m.list.VisibleRange(48, h.m.libraryRows())
	assert.True(t, start <= 30 && 30 < end, "restored page is visible (%d..%d)", start, end)
	assert.Contains(t, ansi.Strip(h.m.View()), "Page 31")
}
