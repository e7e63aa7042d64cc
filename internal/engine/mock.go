package engine

import (
	"sync"
	"time"
)

// MockSink is a test double for Sink. Play results are scripted; when
// blocking mode is enabled, each Play call waits for ReleasePlay, which
// lets tests interleave skips with in-flight play attempts.
type MockSink struct {
	mu sync.Mutex

	events   Events
	loaded   string
	position time.Duration
	duration time.Duration
	volume   float64
	loop     bool

	loadErr  error
	playErr  error
	blocking bool
	pending  []chan error

	loadCalls  []string
	playCalls  int
	pauseCalls int
	seekCalls  []time.Duration
}

// NewMockSink creates a mock sink whose Play succeeds immediately.
func NewMockSink() *MockSink {
	return &MockSink{}
}

func (m *MockSink) AttachEvents(ev Events) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = ev
}

func (m *MockSink) Load(ref string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadCalls = append(m.loadCalls, ref)
	if m.loadErr != nil {
		return m.loadErr
	}
	m.loaded = ref
	m.position = 0
	return nil
}

func (m *MockSink) Play() error {
	m.mu.Lock()
	m.playCalls++
	if !m.blocking {
		err := m.playErr
		m.mu.Unlock()
		return err
	}
	ch := make(chan error, 1)
	m.pending = append(m.pending, ch)
	m.mu.Unlock()
	return <-ch
}

func (m *MockSink) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pauseCalls++
}

func (m *MockSink) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *MockSink) SetPosition(pos time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = pos
	m.seekCalls = append(m.seekCalls, pos)
}

func (m *MockSink) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration
}

func (m *MockSink) SetVolume(v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = v
}

func (m *MockSink) SetLoop(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loop = enabled
}

func (m *MockSink) Close() error { return nil }

// Test helpers

// SetLoadError makes subsequent Load calls fail.
func (m *MockSink) SetLoadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErr = err
}

// SetPlayError makes subsequent Play calls fail.
func (m *MockSink) SetPlayError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playErr = err
}

// Block makes Play calls wait until ReleasePlay provides their result.
func (m *MockSink) Block() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blocking = true
}

// ReleasePlay unblocks the oldest pending Play call with the given result.
func (m *MockSink) ReleasePlay(err error) {
	m.mu.Lock()
	if len(m.pending) == 0 {
		m.mu.Unlock()
		return
	}
	ch := m.pending[0]
	m.pending = m.pending[1:]
	m.mu.Unlock()
	ch <- err
}

// SimulateProgress delivers a progress event to the attached consumer.
func (m *MockSink) SimulateProgress(pos time.Duration) {
	m.mu.Lock()
	ev := m.events
	m.position = pos
	m.mu.Unlock()
	if ev != nil {
		ev.OnProgress(pos)
	}
}

// SimulateMetadata delivers a metadata event to the attached consumer.
func (m *MockSink) SimulateMetadata(duration time.Duration) {
	m.mu.Lock()
	ev := m.events
	m.duration = duration
	m.mu.Unlock()
	if ev != nil {
		ev.OnMetadataReady(duration)
	}
}

// SimulateEnded delivers an end-of-media event to the attached consumer.
func (m *MockSink) SimulateEnded() {
	m.mu.Lock()
	ev := m.events
	m.mu.Unlock()
	if ev != nil {
		ev.OnEnded()
	}
}

// Loaded returns the currently loaded source ref.
func (m *MockSink) Loaded() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loaded
}

// LoadCalls returns every ref passed to Load.
func (m *MockSink) LoadCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.loadCalls...)
}

// PlayCalls returns the number of Play invocations.
func (m *MockSink) PlayCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playCalls
}

// PauseCalls returns the number of Pause invocations.
func (m *MockSink) PauseCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pauseCalls
}

// SeekCalls returns every position passed to SetPosition.
func (m *MockSink) SeekCalls() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.seekCalls...)
}

// Volume returns the last volume set.
func (m *MockSink) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

// Loop returns the last loop flag set.
func (m *MockSink) Loop() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loop
}

// Verify MockSink implements Sink at compile time.
var _ Sink = (*MockSink)(nil)
