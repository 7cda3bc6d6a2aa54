package playback

import "github.com/llehouerou/pageplayer/internal/player"

// HandleMedia routes an output event. Events from superseded loads are
// dropped.
func (e *Engine) HandleMedia(ev player.Event) {
	if ev.Token != e.token {
		e.log.Debug("dropping stale media event", "kind", ev.Kind, "token", ev.Token, "current", e.token)
		return
	}

	switch ev.Kind {
	case player.EventReady:
		e.onReady(ev)
	case player.EventProgress:
		e.position, e.duration = ev.Position, ev.Duration
		e.emitProgress()
	case player.EventEnded:
		e.setStatus(StatusEnded)
		e.OnTrackEnded()
	case player.EventFailed:
		e.OnPlaybackFailed(ev.Err)
	case player.EventPaused:
		e.OnExternalPause()
	case player.EventPlaying:
		e.OnExternalPlaying()
	case player.EventStalled, player.EventWaiting:
		e.log.Debug("media buffering", "kind", ev.Kind, "index", e.state.CurrentIndex)
	}
}

func (e *Engine) onReady(ev player.Event) {
	if e.status != StatusLoading {
		return
	}
	e.duration = ev.Duration
	e.setStatus(StatusReadyPaused)
	e.emitProgress()
	if e.state.IsPlaying {
		e.requestPlay()
	}
}

// OnTrackEnded picks the next page according to the repeat mode.
func (e *Engine) OnTrackEnded() {
	n := len(e.pages)
	if n == 0 {
		return
	}
	i := e.state.CurrentIndex

	switch {
	case e.state.RepeatMode == RepeatPage:
		_ = e.LoadTrack(i, true)
	case e.state.RepeatMode == RepeatOff && i == n-1:
		// Last page with repeat off: show the first page, stopped.
		_ = e.LoadTrack(0, false)
	default:
		_ = e.LoadTrack((i+1)%n, true)
	}
}

// OnPlaybackFailed moves to Error and pauses. Navigation keeps working.
func (e *Engine) OnPlaybackFailed(cause error) {
	e.playSeq++
	e.out.Pause()
	e.setPlaying(false)
	e.setStatus(StatusError)

	index := e.state.CurrentIndex
	ref := ""
	if page, ok := e.CurrentPage(); ok {
		ref = page.AudioRef
	}
	e.log.Error("media error", "index", index, "ref", ref, "err", cause)
	e.emitError(ErrorEvent{Operation: OpMedia, Index: index, Err: &MediaError{Index: index, Ref: ref, Err: cause}})
}

// OnExternalPause reconciles with an output that paused on its own.
func (e *Engine) OnExternalPause() {
	e.setPlaying(false)
	if e.status == StatusReadyPlaying {
		e.setStatus(StatusReadyPaused)
	}
}

// OnExternalPlaying reconciles with an output that started on its own.
func (e *Engine) OnExternalPlaying() {
	if !e.status.IsReady() {
		return
	}
	e.setStatus(StatusReadyPlaying)
	e.setPlaying(true)
}
