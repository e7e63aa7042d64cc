package core

// Status represents the playback session state.
//
// Per-track lifecycle:
//
//	Idle → Loading → Playing
//	                 Paused   (play start refused, or user toggle)
//	                 Error    (source could not be loaded)
//	Playing → Ended           (end of media)
//
// On Ended the engine either replays the current track (repeat-one) or
// advances the queue as if the user had skipped forward.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusPlaying
	StatusPaused
	StatusEnded
	StatusError
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "Idle"
	case StatusLoading:
		return "Loading"
	case StatusPlaying:
		return "Playing"
	case StatusPaused:
		return "Paused"
	case StatusEnded:
		return "Ended"
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a track is loaded and playback is underway or
// paused.
func (s Status) IsActive() bool {
	return s == StatusLoading || s == StatusPlaying || s == StatusPaused
}
