package playback

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/llehouerou/pageplayer/internal/catalog"
	"github.com/llehouerou/pageplayer/internal/player"
)

// immediate runs posted work inline; tests drive the engine from one goroutine.
type immediate struct{}

func (immediate) Post(fn func()) { fn() }

type volumeSave struct {
	volume float64
	muted  bool
}

type prefsRecorder struct {
	pages   []int
	repeats []RepeatMode
	speeds  []float64
	volumes []volumeSave
	err     error
}

func (p *prefsRecorder) SavePageIndex(i int) error {
	p.pages = append(p.pages, i)
	return p.err
}

func (p *prefsRecorder) SaveRepeatMode(m RepeatMode) error {
	p.repeats = append(p.repeats, m)
	return p.err
}

func (p *prefsRecorder) SaveSpeed(s float64) error {
	p.speeds = append(p.speeds, s)
	return p.err
}

func (p *prefsRecorder) SaveVolume(v float64, m bool) error {
	p.volumes = append(p.volumes, volumeSave{v, m})
	return p.err
}

var errPersist = errors.New("store unavailable")

func testPages(n int) []catalog.Page {
	pages := make([]catalog.Page, n)
	for i := range pages {
		pages[i] = catalog.Page{
			ID:       i + 1,
			AudioRef: fmt.Sprintf("audio/p%d.mp3", i+2),
			CoverRef: catalog.DefaultCover,
		}
	}
	return pages
}

type fixture struct {
	t     *testing.T
	eng   *Engine
	out   *player.Mock
	prefs *prefsRecorder
	sub   *Subscription
}

// newFixture builds an engine over n pages starting from initial.
func newFixture(t *testing.T, n int, initial PlaybackState) *fixture {
	t.Helper()
	out := player.NewMock()
	prefs := &prefsRecorder{}
	eng := New(out, prefs, Options{Initial: initial, Dispatcher: immediate{}})
	f := &fixture{t: t, eng: eng, out: out, prefs: prefs, sub: eng.Subscribe()}
	eng.SetCatalog(testPages(n))
	return f
}

func (f *fixture) token() uint64 {
	f.t.Helper()
	l, ok := f.out.LastLoad()
	if !ok {
		f.t.Fatal("no load issued")
	}
	return l.Token
}

// ready reports the current load as playable.
func (f *fixture) ready() {
	f.t.Helper()
	f.out.SetReady(true)
	f.out.SetDuration(time.Minute)
	f.out.Emit(player.Event{Token: f.token(), Kind: player.EventReady, Duration: time.Minute})
}

// playing brings the fixture to ReadyPlaying on the current page.
func (f *fixture) playing() {
	f.t.Helper()
	f.ready()
	if err := f.eng.Play(); err != nil {
		f.t.Fatalf("Play() error = %v", err)
	}
	f.out.ResolvePlay(nil)
	if f.eng.Status() != StatusReadyPlaying {
		f.t.Fatalf("Status() = %v, want ReadyPlaying", f.eng.Status())
	}
}

func (f *fixture) assertCurrent(index int, playing bool) {
	f.t.Helper()
	st := f.eng.State()
	if st.CurrentIndex != index || st.IsPlaying != playing {
		f.t.Errorf("CurrentIndex/IsPlaying = %d/%v, want %d/%v", st.CurrentIndex, st.IsPlaying, index, playing)
	}
}

func drain[T any](ch <-chan T) []T {
	var out []T
	for {
		select {
		case v := <-ch:
			out = append(out, v)
		default:
			return out
		}
	}
}
