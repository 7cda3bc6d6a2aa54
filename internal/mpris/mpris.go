//go:build linux

// Package mpris exposes the player on the D-Bus MPRIS interface so desktop
// media keys and widgets can drive it.
package mpris

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/events"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/pageplayer/internal/catalog"
	"github.com/llehouerou/pageplayer/internal/playback"
)

const callTimeout = 2 * time.Second

// Session is the engine handle used by the adapter. *playback.Session
// implements it.
type Session interface {
	Exec(ctx context.Context, fn func(*playback.Engine) error) error
	Snapshot(ctx context.Context) (playback.Snapshot, error)
	Subscribe() *playback.Subscription
}

// Options describes how pages appear to MPRIS clients.
type Options struct {
	Title  func(catalog.Page) string // default "Page <id>"
	Artist string
	Album  string
	Logger *slog.Logger
}

// Adapter connects a playback session to MPRIS over D-Bus.
type Adapter struct {
	server *server.Server
	events *events.EventHandler
	sub    *playback.Subscription
	log    *slog.Logger
	done   chan struct{}
}

// New creates and starts a new MPRIS adapter.
func New(session Session, opts Options) (*Adapter, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	if opts.Title == nil {
		opts.Title = func(p catalog.Page) string { return fmt.Sprintf("Page %d", p.ID) }
	}

	a := &Adapter{
		sub:  session.Subscribe(),
		log:  log.With("component", "mpris"),
		done: make(chan struct{}),
	}
	a.server = server.NewServer("pageplayer", &rootAdapter{}, &playerAdapter{session: session, opts: opts})
	a.events = events.NewEventHandler(a.server)

	go func() {
		if err := a.server.Listen(); err != nil {
			a.log.Warn("mpris server stopped", "err", err)
		}
	}()
	go a.forward()

	return a, nil
}

// forward turns engine notifications into D-Bus property change signals.
func (a *Adapter) forward() {
	for {
		var err error
		select {
		case <-a.done:
			return
		case <-a.sub.Done:
			return
		case <-a.sub.PageChanged:
			err = a.events.Player.OnTitle()
		case <-a.sub.PlayStateChanged:
			err = a.events.Player.OnPlayPause()
		case <-a.sub.VolumeChanged:
			err = a.events.Player.OnVolume()
		case <-a.sub.RepeatModeChanged:
			err = a.events.Player.OnOptions()
		case <-a.sub.SpeedChanged:
			err = a.events.Player.OnOptions()
		}
		if err != nil {
			a.log.Debug("emit property change", "err", err)
		}
	}
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	close(a.done)
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // Not supported - app manages its own lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "Page Player", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file", "https"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/wav"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter and the loop
// status extension. Every call crosses onto the engine loop.
type playerAdapter struct {
	session Session
	opts    Options
}

func (p *playerAdapter) exec(fn func(*playback.Engine) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()
	return p.session.Exec(ctx, fn)
}

func (p *playerAdapter) snapshot() (playback.Snapshot, error) {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()
	return p.session.Snapshot(ctx)
}

func (p *playerAdapter) Next() error {
	return p.exec((*playback.Engine).Next)
}

func (p *playerAdapter) Previous() error {
	return p.exec((*playback.Engine).Prev)
}

func (p *playerAdapter) Pause() error {
	return p.exec(func(e *playback.Engine) error { e.Pause(); return nil })
}

func (p *playerAdapter) PlayPause() error {
	return p.exec((*playback.Engine).Toggle)
}

// Stop pauses and rewinds the current page.
func (p *playerAdapter) Stop() error {
	return p.exec(func(e *playback.Engine) error {
		e.Pause()
		return e.Seek(0)
	})
}

func (p *playerAdapter) Play() error {
	return p.exec(func(e *playback.Engine) error {
		if e.State().IsPlaying {
			return nil
		}
		return e.Play()
	})
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	return p.exec(func(e *playback.Engine) error {
		pos, _ := e.Progress()
		return e.Seek(pos + time.Duration(offset)*time.Microsecond)
	})
}

func (p *playerAdapter) SetPosition(trackID string, position types.Microseconds) error {
	return p.exec(func(e *playback.Engine) error {
		page, ok := e.CurrentPage()
		if !ok || trackID != formatTrackID(page.AudioRef) {
			return nil // stale request for another page
		}
		return e.Seek(time.Duration(position) * time.Microsecond)
	})
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	snap, err := p.snapshot()
	if err != nil {
		return types.PlaybackStatusStopped, err
	}
	return playbackStatus(snap), nil
}

func (p *playerAdapter) Rate() (float64, error) {
	snap, err := p.snapshot()
	if err != nil {
		return playback.DefaultSpeed, err
	}
	return snap.State.Speed, nil
}

func (p *playerAdapter) SetRate(rate float64) error {
	return p.exec(func(e *playback.Engine) error { e.SetSpeed(rate); return nil })
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	snap, err := p.snapshot()
	if err != nil {
		return types.Metadata{}, err
	}
	return metadata(snap, p.opts), nil
}

func (p *playerAdapter) Volume() (float64, error) {
	snap, err := p.snapshot()
	if err != nil {
		return 0, err
	}
	return snap.State.EffectiveVolume(), nil
}

func (p *playerAdapter) SetVolume(volume float64) error {
	return p.exec(func(e *playback.Engine) error { e.SetVolume(volume); return nil })
}

func (p *playerAdapter) Position() (int64, error) {
	snap, err := p.snapshot()
	if err != nil {
		return 0, err
	}
	return snap.Position.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return playback.MinSpeed, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return playback.MaxSpeed, nil
}

// Navigation wraps around, so any non-empty catalog can go both ways.
func (p *playerAdapter) CanGoNext() (bool, error) {
	return p.hasPages()
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return p.hasPages()
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.hasPages()
}

func (p *playerAdapter) hasPages() (bool, error) {
	snap, err := p.snapshot()
	if err != nil {
		return false, err
	}
	return len(snap.Pages) > 0, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

// LoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) LoopStatus() (types.LoopStatus, error) {
	snap, err := p.snapshot()
	if err != nil {
		return types.LoopStatusNone, err
	}
	return loopStatus(snap.State.RepeatMode), nil
}

// SetLoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) SetLoopStatus(status types.LoopStatus) error {
	mode := repeatMode(status)
	return p.exec(func(e *playback.Engine) error { return e.SetRepeatMode(mode) })
}

func playbackStatus(snap playback.Snapshot) types.PlaybackStatus {
	switch {
	case len(snap.Pages) == 0, snap.Status == playback.StatusIdle:
		return types.PlaybackStatusStopped
	case snap.State.IsPlaying:
		return types.PlaybackStatusPlaying
	default:
		return types.PlaybackStatusPaused
	}
}

func loopStatus(mode playback.RepeatMode) types.LoopStatus {
	switch mode {
	case playback.RepeatPage:
		return types.LoopStatusTrack
	case playback.RepeatAll:
		return types.LoopStatusPlaylist
	default:
		return types.LoopStatusNone
	}
}

func repeatMode(status types.LoopStatus) playback.RepeatMode {
	switch status {
	case types.LoopStatusTrack:
		return playback.RepeatPage
	case types.LoopStatusPlaylist:
		return playback.RepeatAll
	default:
		return playback.RepeatOff
	}
}

func metadata(snap playback.Snapshot, opts Options) types.Metadata {
	page, ok := snap.Page()
	if !ok {
		return types.Metadata{}
	}
	meta := types.Metadata{
		TrackId:     dbus.ObjectPath(formatTrackID(page.AudioRef)),
		Length:      types.Microseconds(snap.Duration.Microseconds()),
		Title:       opts.Title(page),
		Album:       opts.Album,
		TrackNumber: page.ID,
	}
	if opts.Artist != "" {
		meta.Artist = []string{opts.Artist}
	}
	if art := artURL(page.CoverRef); art != "" {
		meta.ArtUrl = art
	}
	return meta
}

func formatTrackID(ref string) string {
	h := fnv.New64a()
	h.Write([]byte(ref))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
