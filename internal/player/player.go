package player

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
)

// ErrNotLoaded is passed to a Play continuation when the requested token
// has no decoded media behind it.
var ErrNotLoaded = errors.New("media not loaded")

const (
	// speakerRate is the device rate; every source is resampled to it.
	speakerRate = beep.SampleRate(44100)

	progressInterval = 250 * time.Millisecond
	downloadTimeout  = 2 * time.Minute
)

var (
	speakerOnce sync.Once
	speakerErr  error
)

func initSpeaker() error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(speakerRate, speakerRate.N(time.Second/10))
	})
	return speakerErr
}

// Player is an Output backed by the beep speaker.
type Player struct {
	log    *slog.Logger
	client *http.Client

	mu         sync.Mutex
	token      uint64
	loadCancel context.CancelFunc
	stream     beep.StreamSeekCloser
	format     beep.Format
	resampler  *beep.Resampler
	ctrl       *beep.Ctrl
	volume     *effects.Volume
	playing    bool
	level      float64
	muted      bool
	speed      float64
	handler    func(Event)

	done      chan struct{}
	closeOnce sync.Once
}

// New creates a player. The speaker is opened on the first successful load.
func New(log *slog.Logger) *Player {
	if log == nil {
		log = slog.Default()
	}
	p := &Player{
		log:    log,
		client: &http.Client{Timeout: downloadTimeout},
		level:  1,
		speed:  1,
		done:   make(chan struct{}),
	}
	go p.progressLoop()
	return p
}

// OnEvent registers the media event handler.
func (p *Player) OnEvent(fn func(Event)) {
	p.mu.Lock()
	p.handler = fn
	p.mu.Unlock()
}

func (p *Player) emit(e Event) {
	p.mu.Lock()
	fn := p.handler
	p.mu.Unlock()
	if fn != nil {
		fn(e)
	}
}

// Load releases the current resource and starts decoding ref in the
// background. The result is reported as EventReady or EventFailed.
func (p *Player) Load(token uint64, ref string) {
	ctx, cancel := context.WithCancel(context.Background())

	p.mu.Lock()
	if p.loadCancel != nil {
		p.loadCancel()
	}
	p.loadCancel = cancel
	p.token = token
	p.releaseLocked()
	p.mu.Unlock()

	go p.load(ctx, token, ref)
}

func (p *Player) load(ctx context.Context, token uint64, ref string) {
	rc, err := openSource(ctx, p.client, p.log, ref)
	if err == nil {
		err = initSpeaker()
		if err != nil {
			rc.Close()
		}
	}
	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)
	if err == nil {
		stream, format, err = decode(rc, refExt(ref))
	}
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		p.log.Warn("load failed", "ref", ref, "err", err)
		p.emit(Event{Token: token, Kind: EventFailed, Err: err})
		return
	}

	p.mu.Lock()
	if token != p.token || ctx.Err() != nil {
		p.mu.Unlock()
		stream.Close()
		return
	}
	p.installLocked(token, stream, format)
	dur := format.SampleRate.D(stream.Len())
	p.mu.Unlock()

	p.emit(Event{Token: token, Kind: EventReady, Duration: dur})
}

// installLocked builds the streamer chain, paused, and hands it to the speaker.
func (p *Player) installLocked(token uint64, stream beep.StreamSeekCloser, format beep.Format) {
	p.stream = stream
	p.format = format
	p.resampler = beep.ResampleRatio(4, resampleRatio(format.SampleRate, p.speed), stream)
	p.ctrl = &beep.Ctrl{Streamer: p.resampler, Paused: true}
	p.volume = &effects.Volume{
		Streamer: p.ctrl,
		Base:     2,
		Volume:   levelToVolume(p.level),
		Silent:   p.muted,
	}
	p.playing = false

	speaker.Play(beep.Seq(p.volume, beep.Callback(func() {
		// Runs under the speaker lock.
		go p.finished(token)
	})))
}

// releaseLocked stops and closes the active resource, if any.
func (p *Player) releaseLocked() {
	if p.stream == nil {
		return
	}
	speaker.Clear()
	p.stream.Close()
	p.stream = nil
	p.resampler = nil
	p.ctrl = nil
	p.volume = nil
	p.playing = false
}

func (p *Player) finished(token uint64) {
	p.mu.Lock()
	if token != p.token {
		p.mu.Unlock()
		return
	}
	p.playing = false
	p.mu.Unlock()
	p.emit(Event{Token: token, Kind: EventEnded})
}

// Play resumes the loaded resource if it still belongs to token.
func (p *Player) Play(token uint64, done func(error)) {
	p.mu.Lock()
	if token != p.token || p.ctrl == nil {
		p.mu.Unlock()
		done(ErrNotLoaded)
		return
	}
	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()
	started := !p.playing
	p.playing = true
	p.mu.Unlock()

	done(nil)
	if started {
		p.emit(Event{Token: token, Kind: EventPlaying})
	}
}

// Pause halts output. It is a no-op when nothing is playing.
func (p *Player) Pause() {
	p.mu.Lock()
	if p.ctrl == nil || !p.playing {
		p.mu.Unlock()
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	p.playing = false
	token := p.token
	p.mu.Unlock()

	p.emit(Event{Token: token, Kind: EventPaused})
}

// Ready reports whether decoded media is installed.
func (p *Player) Ready() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stream != nil
}

// Position returns the current position in the source.
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.positionLocked()
}

func (p *Player) positionLocked() time.Duration {
	if p.stream == nil {
		return 0
	}
	speaker.Lock()
	pos := p.format.SampleRate.D(p.stream.Position())
	speaker.Unlock()
	return pos
}

// Duration returns the length of the loaded source.
func (p *Player) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stream == nil {
		return 0
	}
	return p.format.SampleRate.D(p.stream.Len())
}

// SeekTo moves to pos, clamped to the source bounds.
func (p *Player) SeekTo(pos time.Duration) {
	p.mu.Lock()
	if p.stream == nil {
		p.mu.Unlock()
		return
	}
	n := clampSample(p.format.SampleRate.N(pos), p.stream.Len())
	speaker.Lock()
	err := p.stream.Seek(n)
	speaker.Unlock()
	token := p.token
	cur := p.positionLocked()
	dur := p.format.SampleRate.D(p.stream.Len())
	p.mu.Unlock()

	if err != nil {
		p.log.Warn("seek failed", "pos", pos, "err", err)
		return
	}
	p.emit(Event{Token: token, Kind: EventProgress, Position: cur, Duration: dur})
}

func (p *Player) progressLoop() {
	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.done:
			return
		case <-ticker.C:
			p.mu.Lock()
			if !p.playing || p.stream == nil {
				p.mu.Unlock()
				continue
			}
			e := Event{
				Token:    p.token,
				Kind:     EventProgress,
				Position: p.positionLocked(),
				Duration: p.format.SampleRate.D(p.stream.Len()),
			}
			p.mu.Unlock()
			p.emit(e)
		}
	}
}

// Close releases the resource and stops background work.
func (p *Player) Close() {
	p.closeOnce.Do(func() {
		close(p.done)
		p.mu.Lock()
		if p.loadCancel != nil {
			p.loadCancel()
		}
		p.releaseLocked()
		p.mu.Unlock()
	})
}

// resampleRatio maps a source rate to the speaker rate, scaled by speed.
func resampleRatio(src beep.SampleRate, speed float64) float64 {
	return float64(src) / float64(speakerRate) * speed
}

// clampSample bounds n to a valid seek target for a stream of length.
func clampSample(n, length int) int {
	if length <= 0 {
		return 0
	}
	return min(max(n, 0), length-1)
}
