package playback

const eventBufferSize = 16

// Subscription provides event channels for a subscriber.
type Subscription struct {
	PageChanged       <-chan PageChange
	PlayStateChanged  <-chan PlayStateChange
	StatusChanged     <-chan StatusChange
	ProgressChanged   <-chan ProgressChange
	RepeatModeChanged <-chan RepeatModeChange
	SpeedChanged      <-chan SpeedChange
	VolumeChanged     <-chan VolumeChange
	Error             <-chan ErrorEvent
	Done              <-chan struct{}

	pageCh     chan PageChange
	playCh     chan PlayStateChange
	statusCh   chan StatusChange
	progressCh chan ProgressChange
	repeatCh   chan RepeatModeChange
	speedCh    chan SpeedChange
	volumeCh   chan VolumeChange
	errorCh    chan ErrorEvent
	doneCh     chan struct{}
}

func newSubscription() *Subscription {
	s := &Subscription{
		pageCh:     make(chan PageChange, eventBufferSize),
		playCh:     make(chan PlayStateChange, eventBufferSize),
		statusCh:   make(chan StatusChange, eventBufferSize),
		progressCh: make(chan ProgressChange, eventBufferSize),
		repeatCh:   make(chan RepeatModeChange, eventBufferSize),
		speedCh:    make(chan SpeedChange, eventBufferSize),
		volumeCh:   make(chan VolumeChange, eventBufferSize),
		errorCh:    make(chan ErrorEvent, eventBufferSize),
		doneCh:     make(chan struct{}),
	}
	s.PageChanged = s.pageCh
	s.PlayStateChanged = s.playCh
	s.StatusChanged = s.statusCh
	s.ProgressChanged = s.progressCh
	s.RepeatModeChanged = s.repeatCh
	s.SpeedChanged = s.speedCh
	s.VolumeChanged = s.volumeCh
	s.Error = s.errorCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

// send delivers e without blocking; the event is dropped when ch is full.
func send[T any](ch chan T, e T) {
	select {
	case ch <- e:
	default:
	}
}

func (s *Subscription) sendPage(e PageChange) { send(s.pageCh, e) }
func (s *Subscription) sendPlayState(e PlayStateChange) { send(s.playCh, e) }
func (s *Subscription) sendStatus(e StatusChange) { send(s.statusCh, e) }
func (s *Subscription) sendProgress(e ProgressChange) { send(s.progressCh, e) }
func (s *Subscription) sendRepeat(e RepeatModeChange) { send(s.repeatCh, e) }
func (s *Subscription) sendSpeed(e SpeedChange) { send(s.speedCh, e) }
func (s *Subscription) sendVolume(e VolumeChange) { send(s.volumeCh, e) }
func (s *Subscription) sendError(e ErrorEvent) { send(s.errorCh, e) }
