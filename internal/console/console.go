// Package console prints playback events as terminal lines. It backs the
// non-interactive `cadence play` mode, where the engine runs without a UI.
package console

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/tomos/cadence/internal/core"
	"github.com/tomos/cadence/internal/engine"
)

// Printer is an engine observer that writes one line per event.
type Printer struct {
	engine.BaseObserver

	mu            sync.Mutex
	w             io.Writer
	showEmoji     bool
	showTimestamp bool
	now           func() time.Time
}

// Option configures a Printer.
type Option func(*Printer)

// WithEmoji enables emoji output.
func WithEmoji(enabled bool) Option {
	return func(p *Printer) {
		p.showEmoji = enabled
	}
}

// WithTimestamp enables timestamp output.
func WithTimestamp(enabled bool) Option {
	return func(p *Printer) {
		p.showTimestamp = enabled
	}
}

// NewPrinter creates a printer writing to w.
func NewPrinter(w io.Writer, opts ...Option) *Printer {
	p := &Printer{
		w:         w,
		showEmoji: true,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// TrackChanged prints the track now loaded.
func (p *Printer) TrackChanged(track core.Track) {
	desc := track.Title
	if artist := track.ArtistLine(); artist != "" {
		desc = artist + " - " + desc
	}
	p.line("🎵", "Now playing: "+desc)
}

// StatusChanged prints playback state transitions.
func (p *Printer) StatusChanged(status core.Status) {
	switch status {
	case core.StatusPlaying:
		p.line("▶️", "Playing")
	case core.StatusPaused:
		p.line("⏸️", "Paused")
	case core.StatusEnded:
		p.line("✅", "Queue finished")
	case core.StatusError:
		p.line("❌", "Playback error")
	}
}

// ShuffleChanged prints the shuffle setting.
func (p *Printer) ShuffleChanged(enabled bool) {
	p.line("🔀", "Shuffle "+onOff(enabled))
}

// RepeatChanged prints the repeat-one setting.
func (p *Printer) RepeatChanged(enabled bool) {
	p.line("🔂", "Repeat one "+onOff(enabled))
}

func (p *Printer) line(emoji, text string) {
	var parts []string
	if p.showTimestamp {
		parts = append(parts, p.now().Format("15:04:05"))
	}
	if p.showEmoji {
		parts = append(parts, emoji)
	}
	parts = append(parts, text)

	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.w, strings.Join(parts, " "))
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}

var _ engine.Observer = (*Printer)(nil)
