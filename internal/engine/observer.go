package engine

import (
	"time"

	"github.com/tomos/cadence/internal/core"
)

// Observer is notified of every playback state change. Any number of
// observers may subscribe (the compact player bar and the expanded overlay
// each subscribe independently); the engine never special-cases which
// observers exist.
//
// Observers are invoked synchronously on the engine's event path and must
// not call back into the engine.
type Observer interface {
	TrackChanged(track core.Track)
	StatusChanged(status core.Status)
	Progress(position, duration time.Duration)
	ShuffleChanged(enabled bool)
	RepeatChanged(repeatOne bool)

	// ExpandedViewOpened signals that the expanded view became visible, so
	// observers that lazy-load artwork or lyrics can react.
	ExpandedViewOpened()
}

// BaseObserver is a no-op Observer. Embed it to implement only the
// notifications a view cares about.
type BaseObserver struct{}

func (BaseObserver) TrackChanged(core.Track)     {}
func (BaseObserver) StatusChanged(core.Status)   {}
func (BaseObserver) Progress(_, _ time.Duration) {}
func (BaseObserver) ShuffleChanged(bool)         {}
func (BaseObserver) RepeatChanged(bool)          {}
func (BaseObserver) ExpandedViewOpened()         {}

// Verify BaseObserver implements Observer at compile time.
var _ Observer = BaseObserver{}
