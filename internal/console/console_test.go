package console

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/tomos/cadence/internal/core"
)

func TestTrackChanged(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, WithEmoji(false))

	p.TrackChanged(core.Track{Title: "Holes", Artists: []string{"Mercury Rev"}})

	got := strings.TrimSpace(buf.String())
	if got != "Now playing: Mercury Rev - Holes" {
		t.Errorf("line = %q", got)
	}
}

func TestTrackChangedNoArtist(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, WithEmoji(false))
	p.TrackChanged(core.Track{Title: "field"})

	got := strings.TrimSpace(buf.String())
	if got != "Now playing: field" {
		t.Errorf("line = %q", got)
	}
}

func TestStatusLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, WithEmoji(false))

	p.StatusChanged(core.StatusPlaying)
	p.StatusChanged(core.StatusPaused)
	p.StatusChanged(core.StatusLoading) // silent
	p.StatusChanged(core.StatusEnded)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	want := []string{"Playing", "Paused", "Queue finished"}
	if len(lines) != len(want) {
		t.Fatalf("lines = %v, want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestTimestampPrefix(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, WithEmoji(false), WithTimestamp(true))
	p.now = func() time.Time {
		return time.Date(2025, 6, 1, 9, 30, 15, 0, time.UTC)
	}

	p.ShuffleChanged(true)

	got := strings.TrimSpace(buf.String())
	if got != "09:30:15 Shuffle on" {
		t.Errorf("line = %q", got)
	}
}
