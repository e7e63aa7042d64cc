package core

import "math/rand/v2"

// Queue is the playback queue: an ordered list of tracks plus a cursor and
// a shuffle flag. It holds pure data and navigation logic only; it never
// touches the audio output.
//
// The cursor is always a valid index while the queue is non-empty, and -1
// when it is empty. Callers replace the queue wholesale when starting a new
// listening context; elements are never mutated in place from outside.
type Queue struct {
	tracks  []Track
	current int // -1 if empty
	shuffle bool

	// intn draws a random index for shuffle navigation. Overridable so
	// tests can make shuffle deterministic.
	intn func(n int) int
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{
		current: -1,
		intn:    rand.IntN,
	}
}

// Set replaces the queue contents and moves the cursor to startIndex.
// A startIndex outside [0, len) is clamped to the nearest valid index;
// an empty track list leaves the queue empty with no cursor.
func (q *Queue) Set(tracks []Track, startIndex int) {
	q.tracks = make([]Track, len(tracks))
	copy(q.tracks, tracks)

	if len(q.tracks) == 0 {
		q.current = -1
		return
	}
	if startIndex < 0 {
		startIndex = 0
	}
	if startIndex >= len(q.tracks) {
		startIndex = len(q.tracks) - 1
	}
	q.current = startIndex
}

// Current returns the track at the cursor, or nil if the queue is empty.
func (q *Queue) Current() *Track {
	if q == nil || q.current < 0 || q.current >= len(q.tracks) {
		return nil
	}
	return &q.tracks[q.current]
}

// CurrentIndex returns the cursor position (-1 if empty).
func (q *Queue) CurrentIndex() int {
	if q == nil {
		return -1
	}
	return q.current
}

// Next advances the cursor and returns the new current track, or nil if
// the queue is empty.
//
// With shuffle on, the cursor jumps to a uniformly random index over the
// whole queue, including the current one, so the same track can play
// twice in a row. With shuffle off, navigation is cyclic.
func (q *Queue) Next() *Track {
	if q.IsEmpty() {
		return nil
	}
	if q.shuffle {
		q.current = q.intn(len(q.tracks))
	} else {
		q.current = (q.current + 1) % len(q.tracks)
	}
	return q.Current()
}

// Previous steps the cursor back cyclically and returns the new current
// track, or nil if the queue is empty.
//
// Previous ignores the shuffle flag: stepping back is always deterministic
// even while Next is random. Deliberate asymmetry with Next.
func (q *Queue) Previous() *Track {
	if q.IsEmpty() {
		return nil
	}
	q.current = (q.current - 1 + len(q.tracks)) % len(q.tracks)
	return q.Current()
}

// ToggleShuffle flips the shuffle flag and returns the new value. The
// cursor is left untouched.
func (q *Queue) ToggleShuffle() bool {
	q.shuffle = !q.shuffle
	return q.shuffle
}

// Shuffle returns whether shuffle is enabled.
func (q *Queue) Shuffle() bool {
	return q.shuffle
}

// Tracks returns a copy of all tracks in queue order.
func (q *Queue) Tracks() []Track {
	if q == nil {
		return nil
	}
	out := make([]Track, len(q.tracks))
	copy(out, q.tracks)
	return out
}

// Len returns the number of tracks in the queue.
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.tracks)
}

// IsEmpty returns true if the queue has no tracks.
func (q *Queue) IsEmpty() bool {
	return q.Len() == 0
}
