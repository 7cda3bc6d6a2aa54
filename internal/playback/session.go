package playback

import (
	"context"
	"log/slog"
	"time"

	"github.com/llehouerou/pageplayer/internal/catalog"
)

// Snapshot is a point-in-time copy of everything a renderer shows.
type Snapshot struct {
	State    PlaybackState
	Status   Status
	Pages    []catalog.Page
	Position time.Duration
	Duration time.Duration
}

// Page returns the current page, if any.
func (s Snapshot) Page() (catalog.Page, bool) {
	i := s.State.CurrentIndex
	if i < 0 || i >= len(s.Pages) {
		return catalog.Page{}, false
	}
	return s.Pages[i], true
}

// Snapshot copies the engine's observable state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		State:    e.state,
		Status:   e.status,
		Pages:    e.Pages(),
		Position: e.position,
		Duration: e.duration,
	}
}

// Session is a goroutine-safe handle on an Engine owned by a Loop. Every
// call is marshalled onto the loop.
type Session struct {
	engine *Engine
	loop   *Loop
	log    *slog.Logger
}

// NewSession wraps engine, which must only be touched from loop.
func NewSession(engine *Engine, loop *Loop, log *slog.Logger) *Session {
	if log == nil {
		log = slog.Default()
	}
	return &Session{engine: engine, loop: loop, log: log.With("component", "session")}
}

// Post runs fn on the loop without waiting. A returned error is logged;
// user-visible failures already reach subscribers as ErrorEvents.
func (s *Session) Post(fn func(*Engine) error) {
	s.loop.Post(func() {
		if err := fn(s.engine); err != nil {
			s.log.Debug("command rejected", "err", err)
		}
	})
}

// Exec runs fn on the loop and waits for its result.
func (s *Session) Exec(ctx context.Context, fn func(*Engine) error) error {
	out, err := Call(ctx, s.loop, func() error { return fn(s.engine) })
	if err != nil {
		return err
	}
	return out
}

// Snapshot returns the engine state as seen from the loop.
func (s *Session) Snapshot(ctx context.Context) (Snapshot, error) {
	return Call(ctx, s.loop, s.engine.Snapshot)
}

// Subscribe registers a notification subscription. Safe from any goroutine.
func (s *Session) Subscribe() *Subscription {
	return s.engine.Subscribe()
}
