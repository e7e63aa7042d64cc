package core

import (
	"strings"
	"time"
)

// Track represents a playable audio track. Tracks are created by whatever
// seeds the queue (library scan, playlist file) and are never mutated by
// the playback core.
type Track struct {
	ID         string        `json:"id" toml:"id"`
	Title      string        `json:"title" toml:"title"`
	Artists    []string      `json:"artists" toml:"artists"`
	Album      string        `json:"album" toml:"album"`
	Duration   time.Duration `json:"duration" toml:"duration"`
	AudioRef   string        `json:"audio_ref" toml:"audio_ref"`
	ArtworkRef string        `json:"artwork_ref,omitempty" toml:"artwork_ref,omitempty"`
}

// Artist returns the primary (first) artist, or "" if none are listed.
func (t Track) Artist() string {
	if len(t.Artists) == 0 {
		return ""
	}
	return t.Artists[0]
}

// ArtistLine returns all artists joined for display.
func (t Track) ArtistLine() string {
	return strings.Join(t.Artists, ", ")
}
