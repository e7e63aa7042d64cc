package engine

import (
	"time"

	"github.com/tomos/cadence/internal/core"
)

// Session is the mutable playback state owned exclusively by the engine.
// Snapshots of it are handed out by value.
type Session struct {
	Status   core.Status
	Position time.Duration

	// Duration of the loaded source; 0 while unknown (before the sink has
	// reported metadata).
	Duration time.Duration

	// Volume is output gain in [0, 1].
	Volume float64

	RepeatOne bool

	// Seeking is true while the user is dragging a seek control. While
	// set, periodic sink progress updates are received but not applied, so
	// the displayed position cannot fight the drag.
	Seeking bool
}

// ProgressFraction returns position/duration in [0, 1], or 0 while the
// duration is unknown.
func (s Session) ProgressFraction() float64 {
	if s.Duration <= 0 {
		return 0
	}
	f := float64(s.Position) / float64(s.Duration)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
