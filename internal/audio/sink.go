// Package audio implements the engine's Sink on top of the beep playback
// pipeline, decoding local files or HTTP streams and playing them through
// the system speaker.
package audio

import (
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"

	"github.com/tomos/cadence/internal/engine"
	cerr "github.com/tomos/cadence/internal/errors"
)

// The speaker runs at a fixed rate; sources are resampled to it, so the
// output device is initialized exactly once per process.
const outputRate = beep.SampleRate(44100)

const progressInterval = 500 * time.Millisecond

var speakerOnce sync.Once

// Sink plays audio through the beep speaker. It decodes one source at a
// time; loading a new source discards the previous one.
type Sink struct {
	mu sync.Mutex

	events engine.Events
	logger *log.Logger

	streamer beep.StreamSeekCloser
	format   beep.Format
	closer   io.Closer
	ctrl     *beep.Ctrl
	volume   *effects.Volume

	seekable bool
	duration time.Duration
	gain     float64
	loop     bool
	started  bool
	drained  bool

	// gen identifies the loaded source; trailing callbacks from a
	// discarded source are dropped.
	gen  uint64
	stop chan struct{}
}

// Option configures a Sink.
type Option func(*Sink)

// WithLogger sets the sink logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Sink) {
		s.logger = l
	}
}

// New creates a sink. The output device is opened lazily on first load.
func New(opts ...Option) *Sink {
	s := &Sink{
		gain:   1,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AttachEvents registers the event consumer.
func (s *Sink) AttachEvents(ev engine.Events) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = ev
}

// Load decodes ref (a file path or an http(s) URL) and prepares it for
// playback, replacing any previous source.
func (s *Sink) Load(ref string) error {
	var initErr error
	speakerOnce.Do(func() {
		initErr = speaker.Init(outputRate, outputRate.N(time.Second/10))
	})
	if initErr != nil {
		return fmt.Errorf("%w: %v", cerr.ErrOutputUnavailable, initErr)
	}

	rc, seekable, err := open(ref)
	if err != nil {
		return err
	}

	streamer, format, err := decode(ref, rc)
	if err != nil {
		rc.Close()
		return err
	}

	s.mu.Lock()
	s.discardLocked()

	s.gen++
	s.streamer = streamer
	s.format = format
	s.closer = rc
	s.seekable = seekable
	s.started = false
	s.drained = false
	s.duration = 0
	if seekable && streamer.Len() > 0 {
		s.duration = format.SampleRate.D(streamer.Len())
	}

	s.ctrl = &beep.Ctrl{Streamer: streamer}
	s.volume = &effects.Volume{
		Streamer: beep.Resample(4, format.SampleRate, outputRate, s.ctrl),
		Base:     2,
		Volume:   gainToVolume(s.gain),
		Silent:   s.gain <= 0,
	}

	duration := s.duration
	ev := s.events
	s.mu.Unlock()

	s.logger.Debug("source loaded", "ref", ref, "duration", duration)

	// Metadata is delivered off the caller's path.
	if ev != nil && duration > 0 {
		go ev.OnMetadataReady(duration)
	}
	return nil
}

// Play starts or resumes playback of the loaded source.
func (s *Sink) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.streamer == nil {
		return cerr.ErrNoSource
	}

	if s.started {
		speaker.Lock()
		s.ctrl.Paused = false
		speaker.Unlock()
		return nil
	}

	// A drained one-way stream cannot be replayed; re-queuing it would
	// only report another end of media.
	if s.drained && !s.seekable {
		return fmt.Errorf("%w: stream played to completion", cerr.ErrSourceDrained)
	}
	s.drained = false

	gen := s.gen
	s.stop = make(chan struct{})
	s.started = true

	speaker.Play(beep.Seq(s.volume, beep.Callback(func() {
		// Runs on the speaker goroutine; hand off immediately.
		go s.sourceEnded(gen)
	})))

	go s.progressLoop(gen, s.stop)
	return nil
}

// Pause suspends playback, keeping the source and position.
func (s *Sink) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctrl == nil {
		return
	}
	speaker.Lock()
	s.ctrl.Paused = true
	speaker.Unlock()
}

// Position returns the playback position within the source.
func (s *Sink) Position() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.positionLocked()
}

func (s *Sink) positionLocked() time.Duration {
	if s.streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := s.streamer.Position()
	speaker.Unlock()
	return s.format.SampleRate.D(pos)
}

// SetPosition seeks within the source. Non-seekable sources (network
// streams) keep their position; the attempt is logged and dropped.
func (s *Sink) SetPosition(pos time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.streamer == nil {
		return
	}
	if !s.seekable {
		s.logger.Debug("seek dropped: source not seekable")
		return
	}

	n := s.format.SampleRate.N(pos)
	if n < 0 {
		n = 0
	}
	if limit := s.streamer.Len(); limit > 0 && n >= limit {
		n = limit - 1
	}

	speaker.Lock()
	if err := s.streamer.Seek(n); err != nil {
		s.logger.Warn("seek failed", "err", err)
	}
	speaker.Unlock()
}

// Duration returns the source duration, or 0 while unknown.
func (s *Sink) Duration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.duration
}

// SetVolume sets output gain in [0, 1].
func (s *Sink) SetVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.gain = v
	if s.volume == nil {
		return
	}
	speaker.Lock()
	s.volume.Volume = gainToVolume(v)
	s.volume.Silent = v <= 0
	speaker.Unlock()
}

// SetLoop makes the sink restart the source on end of media instead of
// reporting it.
func (s *Sink) SetLoop(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loop = enabled
}

// Close stops playback and releases the source.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.discardLocked()
	return nil
}

// discardLocked drops the current source and stops its goroutines.
func (s *Sink) discardLocked() {
	if s.started {
		speaker.Clear()
	}
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
	if s.streamer != nil {
		s.streamer.Close()
		s.streamer = nil
	}
	if s.closer != nil {
		s.closer.Close()
		s.closer = nil
	}
	s.ctrl = nil
	s.volume = nil
	s.started = false
	s.drained = false
}

// sourceEnded handles end of media for the source identified by gen.
func (s *Sink) sourceEnded(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || s.streamer == nil {
		s.mu.Unlock()
		return
	}

	if s.loop && s.seekable {
		speaker.Lock()
		err := s.streamer.Seek(0)
		speaker.Unlock()
		if err == nil {
			speaker.Play(beep.Seq(s.volume, beep.Callback(func() {
				go s.sourceEnded(gen)
			})))
			s.mu.Unlock()
			return
		}
		s.logger.Warn("loop restart failed", "err", err)
	}

	// The mixer has dropped the drained streamer; a later Play must
	// re-queue it, not just unpause.
	s.started = false
	s.drained = true
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}

	ev := s.events
	s.mu.Unlock()

	if ev != nil {
		ev.OnEnded()
	}
}

// progressLoop reports the position periodically until the source is
// discarded.
func (s *Sink) progressLoop(gen uint64, stop <-chan struct{}) {
	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			if gen != s.gen || s.streamer == nil {
				s.mu.Unlock()
				return
			}
			paused := s.ctrl != nil && s.ctrl.Paused
			pos := s.positionLocked()
			ev := s.events
			s.mu.Unlock()

			if ev != nil && !paused {
				ev.OnProgress(pos)
			}
		}
	}
}

// open returns a reader for ref, reporting whether it supports seeking.
func open(ref string) (io.ReadCloser, bool, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		resp, err := http.Get(ref)
		if err != nil {
			return nil, false, err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, false, fmt.Errorf("fetch %s: %s", ref, resp.Status)
		}
		return resp.Body, false, nil
	}

	f, err := os.Open(ref)
	if err != nil {
		return nil, false, err
	}
	return f, true, nil
}

// decode picks a decoder by file extension.
func decode(ref string, rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
	switch ext(ref) {
	case ".mp3":
		return mp3.Decode(rc)
	case ".flac":
		return flac.Decode(rc)
	case ".ogg":
		return vorbis.Decode(rc)
	case ".wav":
		return wav.Decode(rc)
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %s", cerr.ErrUnsupportedFormat, ext(ref))
	}
}

func ext(ref string) string {
	return strings.ToLower(filepath.Ext(strings.SplitN(ref, "?", 2)[0]))
}

// gainToVolume converts linear gain in [0, 1] to beep's logarithmic
// volume: 1.0 -> 0, 0.5 -> -1, 0.25 -> -2.
func gainToVolume(gain float64) float64 {
	if gain <= 0 {
		return -10
	}
	if gain >= 1 {
		return 0
	}
	return math.Log2(gain)
}

// Verify Sink implements the engine contract at compile time.
var _ engine.Sink = (*Sink)(nil)
