package app

import (
	"context"
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/pageplayer/internal/catalog"
	"github.com/llehouerou/pageplayer/internal/i18n"
	"github.com/llehouerou/pageplayer/internal/logging"
	"github.com/llehouerou/pageplayer/internal/playback"
	"github.com/llehouerou/pageplayer/internal/player"
	"github.com/llehouerou/pageplayer/internal/ui/styles"
)

type immediate struct{}

func (immediate) Post(fn func()) { fn() }

// syncSession runs every call inline on the test goroutine.
type syncSession struct {
	eng *playback.Engine
}

func (s *syncSession) Post(fn func(*playback.Engine) error) { _ = fn(s.eng) }

func (s *syncSession) Snapshot(context.Context) (playback.Snapshot, error) {
	return s.eng.Snapshot(), nil
}

func (s *syncSession) Subscribe() *playback.Subscription { return s.eng.Subscribe() }

type prefsStub struct {
	theme, lang string
	err         error
}

func (p *prefsStub) SaveTheme(theme string) error {
	p.theme = theme
	return p.err
}

func (p *prefsStub) SaveLanguage(lang string) error {
	p.lang = lang
	return p.err
}

var errDisk = errors.New("disk full")

type harness struct {
	t     *testing.T
	m     Model
	eng   *playback.Engine
	out   *player.Mock
	prefs *prefsStub
}

func newHarness(t *testing.T, pages int) *harness {
	t.Helper()
	h := newEmptyHarness(t, playback.DefaultState())
	h.eng.SetCatalog(testPages(pages))
	h.send(tea.WindowSizeMsg{Width: 100, Height: 30})
	h.send(h.m.FetchSnapshot()())
	return h
}

// newEmptyHarness builds the model before any catalog is set, the way the
// program starts while pages are still loading.
func newEmptyHarness(t *testing.T, initial playback.PlaybackState) *harness {
	t.Helper()
	out := player.NewMock()
	eng := playback.New(out, nil, playback.Options{
		Initial:    initial,
		Dispatcher: immediate{},
		Logger:     logging.Discard(),
	})

	bundle, err := i18n.Load("en", "")
	if err != nil {
		t.Fatalf("i18n.Load: %v", err)
	}
	prefs := &prefsStub{}
	h := &harness{t: t, eng: eng, out: out, prefs: prefs}
	h.m = New(Options{
		Session: &syncSession{eng: eng},
		Prefs:   prefs,
		Bundle:  bundle,
		Theme:   styles.Light,
		Logger:  logging.Discard(),
	})
	return h
}

func testPages(n int) []catalog.Page {
	pages := make([]catalog.Page, n)
	for i := range pages {
		pages[i] = catalog.Page{ID: i + 1, AudioRef: fmt.Sprintf("audio/p%d.mp3", i+2)}
	}
	return pages
}

// send runs msg through Update and returns the command.
func (h *harness) send(msg tea.Msg) tea.Cmd {
	h.t.Helper()
	next, cmd := h.m.Update(msg)
	m, ok := next.(Model)
	if !ok {
		h.t.Fatal("Update should return Model")
	}
	h.m = m
	return cmd
}

func (h *harness) key(k string) tea.Cmd {
	h.t.Helper()
	switch k {
	case "enter":
		return h.send(tea.KeyMsg{Type: tea.KeyEnter})
	case "esc":
		return h.send(tea.KeyMsg{Type: tea.KeyEsc})
	default:
		return h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	}
}

// pump delivers pending engine notifications to the model.
func (h *harness) pump() {
	h.t.Helper()
	for range 64 {
		select {
		case <-h.m.sub.Done:
			return
		default:
		}
		msg, ok := h.poll()
		if !ok {
			return
		}
		h.send(msg)
	}
}

func (h *harness) poll() (tea.Msg, bool) {
	sub := h.m.sub
	select {
	case e := <-sub.PageChanged:
		return PageChangedMsg(e), true
	case e := <-sub.StatusChanged:
		return StatusChangedMsg(e), true
	case e := <-sub.PlayStateChanged:
		return PlayStateChangedMsg(e), true
	case e := <-sub.ProgressChanged:
		return ProgressMsg(e), true
	case e := <-sub.RepeatModeChanged:
		return RepeatModeChangedMsg(e), true
	case e := <-sub.SpeedChanged:
		return SpeedChangedMsg(e), true
	case e := <-sub.VolumeChanged:
		return VolumeChangedMsg(e), true
	case e := <-sub.Error:
		return EngineErrorMsg(e), true
	default:
		return nil, false
	}
}

// ready marks the current load as decoded.
func (h *harness) ready() {
	h.t.Helper()
	load, ok := h.out.LastLoad()
	if !ok {
		h.t.Fatal("no load issued")
	}
	h.out.SetReady(true)
	h.out.Emit(player.Event{Token: load.Token, Kind: player.EventReady, Duration: 90e9})
}
