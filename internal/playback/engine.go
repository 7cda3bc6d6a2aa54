// Package playback owns the page player's session state and decides what
// plays next.
package playback

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/llehouerou/pageplayer/internal/catalog"
	"github.com/llehouerou/pageplayer/internal/player"
)

// Options configures an Engine.
type Options struct {
	// Initial is the restored session. Out-of-range values fall back to
	// defaults.
	Initial PlaybackState
	Logger  *slog.Logger
	// Dispatcher runs output callbacks on the engine's goroutine.
	Dispatcher Dispatcher
}

// Engine drives a player.Output through a catalog of pages.
//
// Engine is not safe for concurrent use: every method, and every callback
// from the output, must run on one goroutine. Use a Loop as the Dispatcher
// and call methods through Loop.Post or Loop.Do.
type Engine struct {
	out      player.Output
	prefs    Preferences
	dispatch Dispatcher
	log      *slog.Logger

	pages  []catalog.Page
	state  PlaybackState
	status Status

	// token identifies the current load; playSeq the latest play request.
	token   uint64
	playSeq uint64

	position time.Duration
	duration time.Duration

	subsMu sync.Mutex
	subs   []*Subscription
	closed bool
}

// New creates an idle engine and registers for out's media events.
func New(out player.Output, prefs Preferences, opts Options) *Engine {
	if prefs == nil {
		prefs = nopPreferences{}
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	e := &Engine{
		out:      out,
		prefs:    prefs,
		dispatch: opts.Dispatcher,
		log:      log.With("component", "playback"),
		state:    opts.Initial.normalized(),
		status:   StatusIdle,
	}
	e.state.IsPlaying = false

	out.OnEvent(func(ev player.Event) {
		e.dispatch.Post(func() { e.HandleMedia(ev) })
	})
	return e
}

// Subscribe returns a new notification subscription.
func (e *Engine) Subscribe() *Subscription {
	e.subsMu.Lock()
	defer e.subsMu.Unlock()
	sub := newSubscription()
	if e.closed {
		sub.close()
		return sub
	}
	e.subs = append(e.subs, sub)
	return sub
}

// Close releases the output and signals every subscriber.
func (e *Engine) Close() {
	e.subsMu.Lock()
	if e.closed {
		e.subsMu.Unlock()
		return
	}
	e.closed = true
	for _, sub := range e.subs {
		sub.close()
	}
	e.subs = nil
	e.subsMu.Unlock()

	e.token++
	e.out.Close()
}

// SetCatalog replaces the page list. An empty catalog leaves the engine
// Idle; otherwise the restored page is loaded paused.
func (e *Engine) SetCatalog(pages []catalog.Page) {
	e.pages = slices.Clone(pages)

	e.out.SetVolume(e.state.Volume)
	e.out.SetMuted(e.state.Muted)
	e.out.SetSpeed(e.state.Speed)

	if len(e.pages) == 0 {
		e.token++
		e.playSeq++
		e.out.Pause()
		e.setPlaying(false)
		e.setStatus(StatusIdle)
		return
	}

	idx := e.state.CurrentIndex
	if idx < 0 || idx >= len(e.pages) {
		e.log.Info("restored page out of range, starting at first page",
			"index", idx, "pages", len(e.pages))
		idx = 0
	}
	_ = e.LoadTrack(idx, false)
}

// OnCatalogUnavailable reports a failed catalog fetch. The engine stays Idle.
func (e *Engine) OnCatalogUnavailable(err error) {
	e.log.Error("catalog unavailable", "err", err)
	e.emitError(ErrorEvent{Operation: OpCatalog, Index: -1, Err: err})
}

// State returns a copy of the session state.
func (e *Engine) State() PlaybackState { return e.state }

// Status returns the current status.
func (e *Engine) Status() Status { return e.status }

// Len returns the number of pages in the catalog.
func (e *Engine) Len() int { return len(e.pages) }

// Pages returns a copy of the catalog.
func (e *Engine) Pages() []catalog.Page { return slices.Clone(e.pages) }

// CurrentPage returns the page at CurrentIndex.
func (e *Engine) CurrentPage() (catalog.Page, bool) {
	if e.state.CurrentIndex < 0 || e.state.CurrentIndex >= len(e.pages) {
		return catalog.Page{}, false
	}
	return e.pages[e.state.CurrentIndex], true
}

// Progress returns the last known position and duration.
func (e *Engine) Progress() (position, duration time.Duration) {
	return e.position, e.duration
}

// LoadTrack makes index the current page and requests its media. Any
// in-flight load or play request is superseded.
func (e *Engine) LoadTrack(index int, playIntent bool) error {
	if index < 0 || index >= len(e.pages) {
		return &IndexError{Index: index, Len: len(e.pages)}
	}

	prev := e.state.CurrentIndex
	page := e.pages[index]

	e.token++
	e.playSeq++
	e.state.CurrentIndex = index
	e.position, e.duration = 0, 0
	e.setStatus(StatusLoading)

	e.log.Debug("loading page", "index", index, "page", page.ID, "ref", page.AudioRef, "play", playIntent)
	e.out.Load(e.token, page.AudioRef)

	e.emitProgress()
	e.emit(func(s *Subscription) {
		s.sendPage(PageChange{Previous: prev, Index: index, Page: page})
	})
	e.persist("save page index", func() error { return e.prefs.SavePageIndex(index) })

	if !playIntent {
		e.out.Pause()
	}
	e.setPlaying(playIntent)
	return nil
}

// Play starts the current page. When the media is not ready it reloads the
// page with play intent instead.
func (e *Engine) Play() error {
	if len(e.pages) == 0 {
		return &IndexError{Index: e.state.CurrentIndex, Len: 0}
	}
	if !e.status.IsReady() || !e.out.Ready() {
		return e.LoadTrack(e.state.CurrentIndex, true)
	}
	e.requestPlay()
	return nil
}

// Pause stops playback and cancels any pending play request. Idempotent.
// Only ReadyPlaying moves to ReadyPaused; Error and Loading are kept.
func (e *Engine) Pause() {
	e.playSeq++
	e.out.Pause()
	e.setPlaying(false)
	if e.status == StatusReadyPlaying {
		e.setStatus(StatusReadyPaused)
	}
}

// Toggle pauses when playing and plays otherwise.
func (e *Engine) Toggle() error {
	if e.state.IsPlaying {
		e.Pause()
		return nil
	}
	return e.Play()
}

// Next moves to the following page, wrapping, and keeps the play intent.
func (e *Engine) Next() error {
	return e.step(1)
}

// Prev moves to the preceding page, wrapping, and keeps the play intent.
func (e *Engine) Prev() error {
	return e.step(-1)
}

func (e *Engine) step(delta int) error {
	n := len(e.pages)
	if n == 0 {
		return &IndexError{Index: e.state.CurrentIndex + delta, Len: 0}
	}
	next := ((e.state.CurrentIndex+delta)%n + n) % n
	return e.LoadTrack(next, e.state.IsPlaying)
}

// Seek jumps within the current page. It is ignored until media is ready.
func (e *Engine) Seek(pos time.Duration) error {
	if len(e.pages) == 0 {
		return &IndexError{Index: e.state.CurrentIndex, Len: 0}
	}
	if !e.status.IsReady() {
		return nil
	}
	pos = max(pos, 0)
	if e.duration > 0 {
		pos = min(pos, e.duration)
	}
	e.out.SeekTo(pos)
	e.position = pos
	e.emitProgress()
	return nil
}

// requestPlay asks the output to start and resolves on a later turn.
func (e *Engine) requestPlay() {
	e.playSeq++
	token, seq, index := e.token, e.playSeq, e.state.CurrentIndex
	e.setPlaying(true)
	e.out.Play(token, func(err error) {
		e.dispatch.Post(func() { e.resolvePlay(token, seq, index, err) })
	})
}

func (e *Engine) resolvePlay(token, seq uint64, index int, err error) {
	if token != e.token || seq != e.playSeq {
		e.log.Debug("dropping stale play result", "index", index, "err", err)
		return
	}
	if err != nil {
		e.log.Info("playback rejected", "index", index, "err", err)
		e.setStatus(StatusReadyPaused)
		e.setPlaying(false)
		e.emitError(ErrorEvent{Operation: OpPlay, Index: index, Err: &RejectedError{Index: index, Err: err}})
		return
	}
	e.setStatus(StatusReadyPlaying)
	e.setPlaying(true)
}

func (e *Engine) setStatus(s Status) {
	if s == e.status {
		return
	}
	prev := e.status
	e.status = s
	e.emit(func(sub *Subscription) { sub.sendStatus(StatusChange{Previous: prev, Current: s}) })
}

func (e *Engine) setPlaying(playing bool) {
	if playing == e.state.IsPlaying {
		return
	}
	e.state.IsPlaying = playing
	e.emit(func(sub *Subscription) { sub.sendPlayState(PlayStateChange{Playing: playing}) })
}

func (e *Engine) emitProgress() {
	ev := ProgressChange{Position: e.position, Duration: e.duration}
	e.emit(func(sub *Subscription) { sub.sendProgress(ev) })
}

func (e *Engine) emitError(ev ErrorEvent) {
	e.emit(func(sub *Subscription) { sub.sendError(ev) })
}

func (e *Engine) emit(fn func(*Subscription)) {
	e.subsMu.Lock()
	defer e.subsMu.Unlock()
	for _, sub := range e.subs {
		fn(sub)
	}
}

// persist runs save and reports failures without interrupting playback.
func (e *Engine) persist(op string, save func() error) {
	if err := save(); err != nil {
		e.log.Warn("could not persist preference", "op", op, "err", err)
		e.emitError(ErrorEvent{Operation: op, Index: e.state.CurrentIndex, Err: err})
	}
}
