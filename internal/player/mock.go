// internal/player/mock.go
package player

import "time"

// LoadCall records one Load request.
type LoadCall struct {
	Token uint64
	Ref   string
}

type pendingPlay struct {
	token uint64
	done  func(error)
}

// Mock is a test double for Output. Play continuations stay pending until
// the test resolves them.
type Mock struct {
	ready    bool
	position time.Duration
	duration time.Duration
	volume   float64
	muted    bool
	speed    float64
	handler  func(Event)
	closed   bool

	loads      []LoadCall
	pending    []pendingPlay
	playCalls  int
	pauseCalls int
	seekCalls  []time.Duration
}

// NewMock creates a new mock output for testing.
func NewMock() *Mock {
	return &Mock{volume: 1, speed: 1}
}

func (m *Mock) Load(token uint64, ref string) {
	m.loads = append(m.loads, LoadCall{Token: token, Ref: ref})
	m.ready = false
	m.position = 0
}

func (m *Mock) Play(token uint64, done func(error)) {
	m.playCalls++
	m.pending = append(m.pending, pendingPlay{token: token, done: done})
}

func (m *Mock) Pause() { m.pauseCalls++ }

func (m *Mock) Ready() bool { return m.ready }

func (m *Mock) Position() time.Duration { return m.position }

func (m *Mock) Duration() time.Duration { return m.duration }

func (m *Mock) SeekTo(pos time.Duration) {
	m.seekCalls = append(m.seekCalls, pos)
	m.position = pos
}

func (m *Mock) SetVolume(level float64) { m.volume = level }

func (m *Mock) SetMuted(muted bool) { m.muted = muted }

func (m *Mock) SetSpeed(speed float64) { m.speed = speed }

func (m *Mock) OnEvent(fn func(Event)) { m.handler = fn }

func (m *Mock) Close() { m.closed = true }

// Test helpers

func (m *Mock) SetReady(ready bool) { m.ready = ready }

func (m *Mock) SetDuration(d time.Duration) { m.duration = d }

func (m *Mock) SetPosition(d time.Duration) { m.position = d }

func (m *Mock) Loads() []LoadCall { return m.loads }

// LastLoad returns the most recent Load call.
func (m *Mock) LastLoad() (LoadCall, bool) {
	if len(m.loads) == 0 {
		return LoadCall{}, false
	}
	return m.loads[len(m.loads)-1], true
}

func (m *Mock) PlayCalls() int { return m.playCalls }

func (m *Mock) PauseCalls() int { return m.pauseCalls }

func (m *Mock) SeekCalls() []time.Duration { return m.seekCalls }

func (m *Mock) Volume() float64 { return m.volume }

func (m *Mock) Muted() bool { return m.muted }

func (m *Mock) Speed() float64 { return m.speed }

func (m *Mock) IsClosed() bool { return m.closed }

// PendingPlays returns how many Play continuations are unresolved.
func (m *Mock) PendingPlays() int { return len(m.pending) }

// ResolvePlay resolves the oldest pending Play with err.
func (m *Mock) ResolvePlay(err error) bool {
	if len(m.pending) == 0 {
		return false
	}
	p := m.pending[0]
	m.pending = m.pending[1:]
	p.done(err)
	return true
}

// Emit delivers e to the registered handler.
func (m *Mock) Emit(e Event) {
	if m.handler != nil {
		m.handler(e)
	}
}

// Verify Mock implements Output at compile time.
var _ Output = (*Mock)(nil)
