package engine

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/tomos/cadence/internal/core"
)

// recorder captures observer notifications for assertions.
type recorder struct {
	mu       sync.Mutex
	tracks   []core.Track
	statuses []core.Status
	progress []time.Duration
	shuffles []bool
	repeats  []bool
	expanded int
}

func (r *recorder) TrackChanged(t core.Track) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tracks = append(r.tracks, t)
}

func (r *recorder) StatusChanged(s core.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, s)
}

func (r *recorder) Progress(pos, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = append(r.progress, pos)
}

func (r *recorder) ShuffleChanged(on bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shuffles = append(r.shuffles, on)
}

func (r *recorder) RepeatChanged(on bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.repeats = append(r.repeats, on)
}

func (r *recorder) ExpandedViewOpened() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.expanded++
}

func (r *recorder) statusCount(s core.Status) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, got := range r.statuses {
		if got == s {
			n++
		}
	}
	return n
}

func (r *recorder) lastTrack() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.tracks) == 0 {
		return ""
	}
	return r.tracks[len(r.tracks)-1].ID
}

func (r *recorder) progressCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.progress)
}

func testTracks(ids ...string) []core.Track {
	tracks := make([]core.Track, len(ids))
	for i, id := range ids {
		tracks[i] = core.Track{ID: id, Title: id, AudioRef: id + ".mp3"}
	}
	return tracks
}

// waitFor polls until cond holds or the deadline passes.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func newTestEngine(t *testing.T) (*Engine, *MockSink, *recorder) {
	t.Helper()
	sink := NewMockSink()
	rec := &recorder{}
	e := New(sink, WithObserver(rec))
	return e, sink, rec
}

func TestLoadAndPlayStartsPlayback(t *testing.T) {
	e, sink, rec := newTestEngine(t)

	e.LoadAndPlay(testTracks("a", "b", "c"), 0)

	waitFor(t, "playing status", func() bool {
		return e.Session().Status == core.StatusPlaying
	})
	if got := sink.Loaded(); got != "a.mp3" {
		t.Errorf("loaded ref = %q, want a.mp3", got)
	}
	if rec.lastTrack() != "a" {
		t.Errorf("TrackChanged = %q, want a", rec.lastTrack())
	}
	if rec.statusCount(core.StatusLoading) != 1 {
		t.Errorf("Loading notifications = %d, want 1", rec.statusCount(core.StatusLoading))
	}
}

func TestLoadAndPlayEmptyIsNoop(t *testing.T) {
	e, sink, rec := newTestEngine(t)

	e.LoadAndPlay(nil, 0)

	if got := e.Session().Status; got != core.StatusIdle {
		t.Errorf("status = %s, want Idle", got)
	}
	if len(sink.LoadCalls()) != 0 {
		t.Error("Load called for empty queue")
	}
	if rec.lastTrack() != "" {
		t.Error("TrackChanged fired for empty queue")
	}
}

func TestTogglePlayPauseWithNothingLoaded(t *testing.T) {
	e, sink, _ := newTestEngine(t)

	e.TogglePlayPause()

	if sink.PlayCalls() != 0 || sink.PauseCalls() != 0 {
		t.Error("TogglePlayPause touched the sink with nothing loaded")
	}
	if got := e.Session().Status; got != core.StatusIdle {
		t.Errorf("status = %s, want Idle", got)
	}
}

func TestTogglePlayPauseFlipsState(t *testing.T) {
	e, sink, _ := newTestEngine(t)
	e.LoadAndPlay(testTracks("a"), 0)
	waitFor(t, "playing", func() bool { return e.Session().Status == core.StatusPlaying })

	e.TogglePlayPause()
	if got := e.Session().Status; got != core.StatusPaused {
		t.Fatalf("status = %s after pause, want Paused", got)
	}
	if sink.PauseCalls() != 1 {
		t.Errorf("PauseCalls = %d, want 1", sink.PauseCalls())
	}

	e.TogglePlayPause()
	waitFor(t, "resumed", func() bool { return e.Session().Status == core.StatusPlaying })
	if sink.PlayCalls() != 2 {
		t.Errorf("PlayCalls = %d, want 2", sink.PlayCalls())
	}
}

func TestPlayRefusalRevertsToPaused(t *testing.T) {
	e, sink, rec := newTestEngine(t)
	sink.SetPlayError(errors.New("output not ready"))

	e.LoadAndPlay(testTracks("a"), 0)

	waitFor(t, "paused status", func() bool {
		return e.Session().Status == core.StatusPaused
	})
	if got := rec.statusCount(core.StatusPaused); got != 1 {
		t.Errorf("Paused notifications = %d, want exactly 1", got)
	}
	if rec.statusCount(core.StatusPlaying) != 0 {
		t.Error("Playing notified despite refusal")
	}
}

func TestLoadFailureSetsError(t *testing.T) {
	e, sink, rec := newTestEngine(t)
	sink.SetLoadError(errors.New("bad ref"))

	e.LoadAndPlay(testTracks("a"), 0)

	if got := e.Session().Status; got != core.StatusError {
		t.Fatalf("status = %s, want Error", got)
	}
	if sink.PlayCalls() != 0 {
		t.Error("Play attempted after load failure")
	}
	if rec.lastTrack() != "" {
		t.Error("TrackChanged fired for failed load")
	}
}

func TestSkipNextAdvancesAndPlays(t *testing.T) {
	e, sink, rec := newTestEngine(t)
	e.LoadAndPlay(testTracks("a", "b", "c"), 0)
	waitFor(t, "playing", func() bool { return e.Session().Status == core.StatusPlaying })

	e.SkipNext()
	waitFor(t, "track b", func() bool { return rec.lastTrack() == "b" })
	if got := sink.Loaded(); got != "b.mp3" {
		t.Errorf("loaded ref = %q, want b.mp3", got)
	}
	if e.QueueIndex() != 1 {
		t.Errorf("QueueIndex = %d, want 1", e.QueueIndex())
	}
}

func TestSkipPreviousWraps(t *testing.T) {
	e, _, rec := newTestEngine(t)
	e.LoadAndPlay(testTracks("a", "b", "c"), 0)
	waitFor(t, "playing", func() bool { return e.Session().Status == core.StatusPlaying })

	e.SkipPrevious()
	waitFor(t, "track c", func() bool { return rec.lastTrack() == "c" })
	if e.QueueIndex() != 2 {
		t.Errorf("QueueIndex = %d, want 2", e.QueueIndex())
	}
}

func TestSkipOnEmptyQueueIsNoop(t *testing.T) {
	e, sink, _ := newTestEngine(t)

	e.SkipNext()
	e.SkipPrevious()

	if len(sink.LoadCalls()) != 0 {
		t.Error("skip on empty queue touched the sink")
	}
}

func TestSeekToFraction(t *testing.T) {
	e, sink, _ := newTestEngine(t)
	e.LoadAndPlay(testTracks("a"), 0)
	waitFor(t, "playing", func() bool { return e.Session().Status == core.StatusPlaying })
	sink.SimulateMetadata(200 * time.Second)

	e.SeekToFraction(0.5)

	seeks := sink.SeekCalls()
	if len(seeks) != 1 || seeks[0] != 100*time.Second {
		t.Errorf("SeekCalls = %v, want [100s]", seeks)
	}
	if got := e.Session().Position; got != 100*time.Second {
		t.Errorf("Position = %v, want 100s", got)
	}
}

func TestSeekWithUnknownDurationIsNoop(t *testing.T) {
	e, sink, _ := newTestEngine(t)
	e.LoadAndPlay(testTracks("a"), 0)
	waitFor(t, "playing", func() bool { return e.Session().Status == core.StatusPlaying })

	e.SeekToFraction(0.5)

	if len(sink.SeekCalls()) != 0 {
		t.Error("seek forwarded to sink while duration unknown")
	}
}

func TestSeekingSuppressesProgressEvents(t *testing.T) {
	e, sink, rec := newTestEngine(t)
	e.LoadAndPlay(testTracks("a"), 0)
	waitFor(t, "playing", func() bool { return e.Session().Status == core.StatusPlaying })
	sink.SimulateMetadata(200 * time.Second)
	before := rec.progressCount()

	e.SetSeeking(true)
	sink.SimulateProgress(30 * time.Second)
	sink.SimulateProgress(31 * time.Second)

	if got := e.Session().Position; got != 0 {
		t.Errorf("Position = %v while seeking, want 0 (unchanged)", got)
	}
	if rec.progressCount() != before {
		t.Error("progress events propagated to observers while seeking")
	}

	e.SetSeeking(false)
	sink.SimulateProgress(32 * time.Second)

	if got := e.Session().Position; got != 32*time.Second {
		t.Errorf("Position = %v after drag ended, want 32s", got)
	}
	if rec.progressCount() != before+1 {
		t.Error("progress event not propagated after drag ended")
	}
}

func TestRepeatOneReplaysSameTrack(t *testing.T) {
	e, sink, rec := newTestEngine(t)
	e.LoadAndPlay(testTracks("a", "b"), 0)
	waitFor(t, "playing", func() bool { return e.Session().Status == core.StatusPlaying })

	if on := e.ToggleRepeatOne(); !on {
		t.Fatal("ToggleRepeatOne = false, want true")
	}
	if !sink.Loop() {
		t.Error("sink loop flag not set")
	}

	sink.SimulateEnded()
	waitFor(t, "replay", func() bool { return sink.PlayCalls() == 2 })

	if e.QueueIndex() != 0 {
		t.Errorf("QueueIndex = %d after repeat-one end, want 0", e.QueueIndex())
	}
	if got := len(sink.LoadCalls()); got != 1 {
		t.Errorf("LoadCalls = %d, want 1 (no reload for repeat-one)", got)
	}
	if rec.lastTrack() != "a" {
		t.Errorf("last TrackChanged = %q, want a", rec.lastTrack())
	}
}

func TestRepeatOneReplayRefusedRevertsToPaused(t *testing.T) {
	e, sink, rec := newTestEngine(t)
	e.LoadAndPlay(testTracks("a"), 0)
	waitFor(t, "playing", func() bool { return e.Session().Status == core.StatusPlaying })
	e.ToggleRepeatOne()

	// A drained one-way stream refuses to replay.
	sink.SetPlayError(errors.New("stream played to completion"))
	sink.SimulateEnded()

	waitFor(t, "paused status", func() bool {
		return e.Session().Status == core.StatusPaused
	})
	if got := rec.statusCount(core.StatusPlaying); got != 1 {
		t.Errorf("Playing notifications = %d, want 1 (no phantom resume)", got)
	}
	if seeks := sink.SeekCalls(); len(seeks) != 1 || seeks[0] != 0 {
		t.Errorf("SeekCalls = %v, want [0]", seeks)
	}
}

func TestEndedDuringLoadIsDeferred(t *testing.T) {
	e, sink, rec := newTestEngine(t)
	sink.Block()

	e.LoadAndPlay(testTracks("a", "b"), 0)
	waitFor(t, "play pending", func() bool { return sink.PlayCalls() == 1 })

	// The source drains before its play result lands.
	sink.SimulateEnded()
	sink.ReleasePlay(nil)

	waitFor(t, "track b", func() bool { return rec.lastTrack() == "b" })
	waitFor(t, "second play pending", func() bool { return sink.PlayCalls() == 2 })
	sink.ReleasePlay(nil)

	waitFor(t, "playing", func() bool { return e.Session().Status == core.StatusPlaying })
	if e.QueueIndex() != 1 {
		t.Errorf("QueueIndex = %d, want 1", e.QueueIndex())
	}
}

func TestEndedAdvancesQueue(t *testing.T) {
	e, _, rec := newTestEngine(t)
	e.LoadAndPlay(testTracks("a", "b"), 0)
	waitFor(t, "playing", func() bool { return e.Session().Status == core.StatusPlaying })

	if rec.lastTrack() != "a" {
		t.Fatalf("setup: last track = %q, want a", rec.lastTrack())
	}

	e.OnEnded()

	waitFor(t, "track b", func() bool { return rec.lastTrack() == "b" })
	if e.QueueIndex() != 1 {
		t.Errorf("QueueIndex = %d, want 1", e.QueueIndex())
	}
}

func TestStalePlayResultIsDiscarded(t *testing.T) {
	e, sink, rec := newTestEngine(t)
	sink.Block()

	e.LoadAndPlay(testTracks("a", "b"), 0)
	waitFor(t, "first play pending", func() bool { return sink.PlayCalls() == 1 })

	// Supersede the pending load before its play resolves.
	e.SkipNext()
	waitFor(t, "second play pending", func() bool { return sink.PlayCalls() == 2 })

	// The stale result must not disturb the superseding load.
	sink.ReleasePlay(nil)
	time.Sleep(10 * time.Millisecond)
	if got := e.Session().Status; got != core.StatusLoading {
		t.Errorf("status = %s after stale play result, want Loading", got)
	}

	sink.ReleasePlay(nil)
	waitFor(t, "playing", func() bool { return e.Session().Status == core.StatusPlaying })
	if rec.lastTrack() != "b" {
		t.Errorf("last track = %q, want b", rec.lastTrack())
	}
}

func TestStaleRefusalDoesNotPauseNewTrack(t *testing.T) {
	e, sink, _ := newTestEngine(t)
	sink.Block()

	e.LoadAndPlay(testTracks("a", "b"), 0)
	waitFor(t, "first play pending", func() bool { return sink.PlayCalls() == 1 })
	e.SkipNext()
	waitFor(t, "second play pending", func() bool { return sink.PlayCalls() == 2 })

	sink.ReleasePlay(errors.New("refused"))
	time.Sleep(10 * time.Millisecond)
	if got := e.Session().Status; got == core.StatusPaused {
		t.Error("stale refusal paused the superseding load")
	}

	sink.ReleasePlay(nil)
	waitFor(t, "playing", func() bool { return e.Session().Status == core.StatusPlaying })
}

func TestSetVolumeClamps(t *testing.T) {
	e, sink, _ := newTestEngine(t)

	e.SetVolume(1.8)
	if got := sink.Volume(); got != 1 {
		t.Errorf("Volume = %v, want 1 (clamped)", got)
	}

	e.SetVolume(-0.2)
	if got := sink.Volume(); got != 0 {
		t.Errorf("Volume = %v, want 0 (clamped)", got)
	}

	e.SetVolume(0.35)
	if got := e.Session().Volume; got != 0.35 {
		t.Errorf("Session.Volume = %v, want 0.35", got)
	}
}

func TestToggleShuffleNotifiesObservers(t *testing.T) {
	e, _, rec := newTestEngine(t)

	if on := e.ToggleShuffle(); !on {
		t.Fatal("ToggleShuffle = false, want true")
	}
	rec.mu.Lock()
	shuffles := append([]bool(nil), rec.shuffles...)
	rec.mu.Unlock()
	if len(shuffles) != 1 || !shuffles[0] {
		t.Errorf("ShuffleChanged notifications = %v, want [true]", shuffles)
	}
}

func TestMultipleObserversAllNotified(t *testing.T) {
	sink := NewMockSink()
	compact := &recorder{}
	expanded := &recorder{}
	e := New(sink, WithObserver(compact), WithObserver(expanded))

	e.LoadAndPlay(testTracks("a"), 0)
	waitFor(t, "playing", func() bool { return e.Session().Status == core.StatusPlaying })

	if compact.lastTrack() != "a" || expanded.lastTrack() != "a" {
		t.Error("not every observer received TrackChanged")
	}

	e.NotifyExpandedViewOpened()
	if compact.expanded != 1 || expanded.expanded != 1 {
		t.Error("not every observer received ExpandedViewOpened")
	}
}

func TestSessionProgressFraction(t *testing.T) {
	s := Session{Position: 50 * time.Second, Duration: 200 * time.Second}
	if got := s.ProgressFraction(); got != 0.25 {
		t.Errorf("ProgressFraction = %v, want 0.25", got)
	}

	unknown := Session{Position: 50 * time.Second}
	if got := unknown.ProgressFraction(); got != 0 {
		t.Errorf("ProgressFraction = %v with unknown duration, want 0", got)
	}
}
