package engine

import "time"

// Sink is the audio output capability the engine drives. Exactly one sink
// exists per engine; loading a new track assigns a fresh source to the same
// sink, it does not recreate it.
//
// Play may be refused by the platform (output device busy, not yet
// initialized). The engine treats that as a recoverable condition, never as
// a fatal error.
type Sink interface {
	// Load assigns a new source to the sink. The previous source, if any,
	// is discarded.
	Load(ref string) error

	// Play starts or resumes playback of the loaded source. It may block
	// while the output spins up, so the engine calls it off the command
	// path and applies the result afterwards.
	Play() error

	// Pause suspends playback, keeping the source and position.
	Pause()

	Position() time.Duration
	SetPosition(pos time.Duration)

	// Duration reports the source duration, or 0 while it is unknown.
	Duration() time.Duration

	// SetVolume sets output gain in [0, 1].
	SetVolume(v float64)

	// SetLoop makes the sink restart the source on end of media instead of
	// reporting it.
	SetLoop(enabled bool)

	// AttachEvents registers the consumer for sink events. The engine
	// attaches itself at construction.
	AttachEvents(ev Events)

	Close() error
}

// Events is the consumer side of sink notifications. The engine implements
// it; sink implementations call these as media events occur.
//
// Events must be delivered from the sink's own goroutines, never from
// inside a Sink method invoked by the engine: the engine serializes on a
// mutex that is held during those calls.
type Events interface {
	// OnProgress reports the playback position, periodically while the
	// source plays.
	OnProgress(pos time.Duration)

	// OnMetadataReady reports the source duration once it is known.
	OnMetadataReady(duration time.Duration)

	// OnEnded reports that the source played to completion.
	OnEnded()
}
