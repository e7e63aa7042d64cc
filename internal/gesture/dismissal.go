// Package gesture implements the swipe-to-dismiss state machine layered on
// the expanded view's lifecycle. It is independent of playback state: it
// only tracks drag input and decides whether the view closes.
package gesture

import (
	"sync"
	"time"
)

// State of the dismissal machine.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateDragging
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "Closed"
	case StateOpen:
		return "Open"
	case StateDragging:
		return "Dragging"
	default:
		return "Unknown"
	}
}

// Target classifies what a drag or scroll gesture lands on.
type Target int

const (
	TargetBackground Target = iota
	TargetSeekControl
)

const (
	// DefaultThreshold is the minimum drag distance, in device-independent
	// units along the dismissal axis, that closes the view.
	DefaultThreshold = 100.0

	// DefaultCloseDelay is how long gesture listeners stay attached after
	// the view closes, covering the closing animation.
	DefaultCloseDelay = 400 * time.Millisecond
)

// Dismissal is the swipe-to-close state machine for the expanded view.
//
//	Closed → Open → (Dragging) → Closed
//
// While open it captures scroll input so the background cannot move, with
// one exception: gestures on the seek control pass through, so the seek
// bar stays interactive. After a close decision, listener teardown is
// scheduled after the transition delay rather than performed immediately,
// so the closing animation still receives events.
type Dismissal struct {
	mu sync.Mutex

	state      State
	startPos   float64
	listening  bool
	threshold  float64
	closeDelay time.Duration
	detach     *time.Timer

	onClose  func()
	onDetach func()
}

// Option configures a Dismissal.
type Option func(*Dismissal)

// WithThreshold overrides the close threshold.
func WithThreshold(units float64) Option {
	return func(d *Dismissal) {
		if units > 0 {
			d.threshold = units
		}
	}
}

// WithCloseDelay overrides the listener teardown delay.
func WithCloseDelay(delay time.Duration) Option {
	return func(d *Dismissal) {
		if delay > 0 {
			d.closeDelay = delay
		}
	}
}

// WithOnClose registers a callback fired when a drag closes the view.
func WithOnClose(fn func()) Option {
	return func(d *Dismissal) {
		d.onClose = fn
	}
}

// WithOnDetach registers a callback fired when listeners are torn down.
func WithOnDetach(fn func()) Option {
	return func(d *Dismissal) {
		d.onDetach = fn
	}
}

// New creates a dismissal machine in the Closed state.
func New(opts ...Option) *Dismissal {
	d := &Dismissal{
		state:      StateClosed,
		threshold:  DefaultThreshold,
		closeDelay: DefaultCloseDelay,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Open transitions Closed → Open and attaches gesture listeners. If a
// teardown from a previous close is still pending, it is cancelled and the
// listeners are reused. No-op if already open.
func (d *Dismissal) Open() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != StateClosed {
		return
	}
	if d.detach != nil {
		d.detach.Stop()
		d.detach = nil
	}
	d.state = StateOpen
	d.listening = true
}

// DragStart records the gesture origin along the dismissal axis and
// transitions Open → Dragging. Ignored unless the view is open.
func (d *Dismissal) DragStart(pos float64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != StateOpen {
		return
	}
	d.state = StateDragging
	d.startPos = pos
}

// DragEnd finishes a drag. If the travel along the dismissal axis exceeds
// the threshold the view closes and true is returned; otherwise the view
// stays open. Ignored unless a drag is in progress.
func (d *Dismissal) DragEnd(pos float64) bool {
	d.mu.Lock()

	if d.state != StateDragging {
		d.mu.Unlock()
		return false
	}

	delta := pos - d.startPos
	if delta <= d.threshold {
		d.state = StateOpen
		d.mu.Unlock()
		return false
	}

	d.state = StateClosed
	d.detach = time.AfterFunc(d.closeDelay, d.teardown)
	onClose := d.onClose
	d.mu.Unlock()

	if onClose != nil {
		onClose()
	}
	return true
}

// Close dismisses the view without a gesture (close button, keyboard).
// Teardown is scheduled the same way as for a drag close. No-op if the
// view is already closed.
func (d *Dismissal) Close() {
	d.mu.Lock()

	if d.state == StateClosed {
		d.mu.Unlock()
		return
	}
	d.state = StateClosed
	d.detach = time.AfterFunc(d.closeDelay, d.teardown)
	onClose := d.onClose
	d.mu.Unlock()

	if onClose != nil {
		onClose()
	}
}

// teardown detaches gesture listeners once the closing animation is over.
func (d *Dismissal) teardown() {
	d.mu.Lock()

	if d.state != StateClosed {
		// Reopened during the delay; keep listeners.
		d.mu.Unlock()
		return
	}
	d.listening = false
	d.detach = nil
	onDetach := d.onDetach
	d.mu.Unlock()

	if onDetach != nil {
		onDetach()
	}
}

// CapturesScroll reports whether a scroll gesture on the given target must
// be suppressed. Background scroll is captured while the view is open; the
// seek control always stays interactive.
func (d *Dismissal) CapturesScroll(target Target) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state == StateClosed {
		return false
	}
	return target != TargetSeekControl
}

// State returns the current machine state.
func (d *Dismissal) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Listening reports whether gesture listeners are attached. Listeners
// outlive the Closed transition until the scheduled teardown runs.
func (d *Dismissal) Listening() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.listening
}

// Threshold returns the configured close threshold.
func (d *Dismissal) Threshold() float64 {
	return d.threshold
}
