// Package engine implements the playback engine: it owns the active queue,
// drives the audio sink, and fans state changes out to presentation
// observers.
package engine

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomos/cadence/internal/core"
)

// Engine orchestrates the queue and the audio sink.
//
// All state transitions happen synchronously under one mutex, in response
// to discrete events: user commands, sink callbacks, timer ticks. The only
// asynchronous boundary is Sink.Play, which runs off the command path; its
// result is applied only if the load generation it belongs to is still the
// latest, so a stale play attempt can never corrupt the state of the track
// loaded after it (last-write-wins, no explicit cancellation).
type Engine struct {
	mu sync.Mutex

	sink      Sink
	queue     *core.Queue
	session   Session
	observers []Observer
	logger    *log.Logger

	// gen is bumped on every load; async play results carrying an older
	// generation are discarded.
	gen uint64

	// pendingEnded holds an end-of-media report that arrived while the
	// play result for the source was still in flight. Handled once
	// playback is confirmed, dropped on the next load.
	pendingEnded bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithObserver subscribes an observer at construction.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		e.observers = append(e.observers, o)
	}
}

// WithLogger sets the engine logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithVolume sets the initial volume (clamped to [0, 1]).
func WithVolume(v float64) Option {
	return func(e *Engine) {
		e.session.Volume = clampUnit(v)
	}
}

// New creates an engine bound to the given sink. The engine attaches
// itself as the sink's event consumer.
func New(sink Sink, opts ...Option) *Engine {
	e := &Engine{
		sink:  sink,
		queue: core.NewQueue(),
		session: Session{
			Status: core.StatusIdle,
			Volume: 1,
		},
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	sink.AttachEvents(e)
	sink.SetVolume(e.session.Volume)
	return e
}

// AddObserver subscribes an observer after construction. Views subscribe
// independently; the engine does not assume a fixed count.
func (e *Engine) AddObserver(o Observer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observers = append(e.observers, o)
}

// LoadAndPlay replaces the queue with the given tracks, moves the cursor
// to startIndex, loads the current track and starts playback. No-op on an
// empty track list.
func (e *Engine) LoadAndPlay(tracks []core.Track, startIndex int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(tracks) == 0 {
		return
	}
	e.queue.Set(tracks, startIndex)
	e.loadCurrentLocked()
}

// TogglePlayPause flips between playing and paused. No-op if the sink has
// no loaded source.
func (e *Engine) TogglePlayPause() {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.session.Status {
	case core.StatusPlaying:
		e.sink.Pause()
		e.setStatusLocked(core.StatusPaused)
	case core.StatusPaused, core.StatusEnded:
		e.startPlaybackLocked()
	default:
		// Idle, Loading, Error: nothing sensible to toggle.
	}
}

// SkipNext advances the queue and plays the resulting track. No-op on an
// empty queue.
func (e *Engine) SkipNext() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.skipNextLocked()
}

// SkipPrevious steps the queue back and plays the resulting track. No-op
// on an empty queue.
func (e *Engine) SkipPrevious() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.queue.Previous() == nil {
		return
	}
	e.loadCurrentLocked()
}

// ToggleShuffle flips queue shuffle and notifies observers.
func (e *Engine) ToggleShuffle() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	enabled := e.queue.ToggleShuffle()
	for _, o := range e.observers {
		o.ShuffleChanged(enabled)
	}
	return enabled
}

// ToggleRepeatOne flips repeat-one and notifies observers. The sink loop
// flag follows it so sinks with native looping restart seamlessly; the
// engine still handles end-of-media for sinks that do not.
func (e *Engine) ToggleRepeatOne() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.session.RepeatOne = !e.session.RepeatOne
	e.sink.SetLoop(e.session.RepeatOne)
	for _, o := range e.observers {
		o.RepeatChanged(e.session.RepeatOne)
	}
	return e.session.RepeatOne
}

// SeekToFraction positions playback at f (in [0, 1]) of the track
// duration. Silent no-op while the duration is unknown. This is the
// user-seek write path, distinct from the periodic position sync.
func (e *Engine) SeekToFraction(f float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session.Duration <= 0 {
		return
	}
	f = clampUnit(f)
	pos := time.Duration(f * float64(e.session.Duration))
	e.sink.SetPosition(pos)
	e.session.Position = pos
	e.notifyProgressLocked()
}

// SetSeeking marks the start or end of a user seek drag. While seeking is
// active, sink progress events are received but not applied, so exactly
// one writer controls the position at any instant.
func (e *Engine) SetSeeking(active bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session.Seeking = active
}

// SetVolume clamps v to [0, 1] and forwards it to the sink.
func (e *Engine) SetVolume(v float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.session.Volume = clampUnit(v)
	e.sink.SetVolume(e.session.Volume)
}

// NotifyExpandedViewOpened tells observers the expanded view became
// visible.
func (e *Engine) NotifyExpandedViewOpened() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, o := range e.observers {
		o.ExpandedViewOpened()
	}
}

// Session returns a snapshot of the playback session.
func (e *Engine) Session() Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session
}

// CurrentTrack returns a copy of the current track, or nil if the queue is
// empty.
func (e *Engine) CurrentTrack() *core.Track {
	e.mu.Lock()
	defer e.mu.Unlock()

	cur := e.queue.Current()
	if cur == nil {
		return nil
	}
	t := *cur
	return &t
}

// QueueTracks returns a copy of the queue contents.
func (e *Engine) QueueTracks() []core.Track {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queue.Tracks()
}

// QueueIndex returns the queue cursor (-1 if empty).
func (e *Engine) QueueIndex() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queue.CurrentIndex()
}

// Shuffle returns whether queue shuffle is enabled.
func (e *Engine) Shuffle() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queue.Shuffle()
}

// Close shuts down the sink.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sink.Close()
}

// OnProgress handles the periodic position report from the sink. Ignored
// while the user is dragging a seek control, and outside active playback.
func (e *Engine) OnProgress(pos time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session.Seeking {
		return
	}
	if !e.session.Status.IsActive() {
		return
	}
	e.session.Position = pos
	e.notifyProgressLocked()
}

// OnMetadataReady records the source duration reported by the sink.
func (e *Engine) OnMetadataReady(duration time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.session.Duration = duration
	e.notifyProgressLocked()
}

// OnEnded handles end of media: replay the current track under repeat-one,
// otherwise advance the queue as a forward skip.
func (e *Engine) OnEnded() {
	e.mu.Lock()
	defer e.mu.Unlock()

	// A very short source can drain before its play result has been
	// applied. Hold the report until playback is confirmed; the next
	// load clears it, which also covers a report trailing a superseded
	// source.
	if e.session.Status == core.StatusLoading {
		e.pendingEnded = true
		return
	}
	e.handleEndedLocked()
}

func (e *Engine) handleEndedLocked() {
	if e.session.RepeatOne {
		e.sink.SetPosition(0)
		e.session.Position = 0
		e.startPlaybackLocked()
		return
	}

	if e.queue.IsEmpty() {
		e.setStatusLocked(core.StatusEnded)
		return
	}
	e.skipNextLocked()
}

func (e *Engine) skipNextLocked() {
	if e.queue.Next() == nil {
		return
	}
	e.loadCurrentLocked()
}

// loadCurrentLocked loads the queue's current track into the sink and
// starts playback. Every call supersedes any in-flight load.
func (e *Engine) loadCurrentLocked() {
	track := e.queue.Current()
	if track == nil {
		return
	}

	e.gen++
	e.pendingEnded = false
	e.session.Position = 0
	e.session.Duration = 0
	e.setStatusLocked(core.StatusLoading)

	if err := e.sink.Load(track.AudioRef); err != nil {
		e.logger.Error("failed to load source", "ref", track.AudioRef, "err", err)
		e.setStatusLocked(core.StatusError)
		return
	}

	for _, o := range e.observers {
		o.TrackChanged(*track)
	}
	e.startPlaybackLocked()
}

// startPlaybackLocked issues Play off the command path and applies the
// result under the generation guard. On refusal the session reverts to
// Paused with a single status notification; the error never escapes.
func (e *Engine) startPlaybackLocked() {
	gen := e.gen
	go func() {
		err := e.sink.Play()

		e.mu.Lock()
		defer e.mu.Unlock()

		if gen != e.gen {
			// Superseded by a later load; discard.
			return
		}
		if err != nil {
			e.logger.Warn("playback refused", "err", err)
			e.pendingEnded = false
			e.setStatusLocked(core.StatusPaused)
			return
		}
		e.setStatusLocked(core.StatusPlaying)
		if e.pendingEnded {
			e.pendingEnded = false
			e.handleEndedLocked()
		}
	}()
}

func (e *Engine) setStatusLocked(s core.Status) {
	if e.session.Status == s {
		return
	}
	e.session.Status = s
	for _, o := range e.observers {
		o.StatusChanged(s)
	}
}

func (e *Engine) notifyProgressLocked() {
	for _, o := range e.observers {
		o.Progress(e.session.Position, e.session.Duration)
	}
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
