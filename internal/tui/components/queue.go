package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomos/cadence/internal/core"
	"github.com/tomos/cadence/internal/tui/styles"
)

// Queue displays the playback queue.
type Queue struct {
	styles styles.Styles
	offset int
}

// NewQueue creates a new Queue component.
func NewQueue(s styles.Styles) *Queue {
	return &Queue{styles: s}
}

// ScrollDown scrolls the queue down.
func (q *Queue) ScrollDown() {
	q.offset++
}

// ScrollUp scrolls the queue up.
func (q *Queue) ScrollUp() {
	if q.offset > 0 {
		q.offset--
	}
}

// Render renders the queue panel.
func (q *Queue) Render(tracks []core.Track, current int, width, height int, focused bool) string {
	s := q.styles
	title := s.PanelTitle("Queue", focused)

	var content string
	if len(tracks) == 0 {
		content = s.MutedText.Render("Queue is empty")
	} else {
		content = q.renderTracks(tracks, current, width-4, height-4)
	}

	panel := s.Panel(focused).
		Width(width).
		Height(height)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		content,
	))
}

func (q *Queue) renderTracks(tracks []core.Track, current, width, maxLines int) string {
	s := q.styles

	if q.offset >= len(tracks) {
		q.offset = 0
	}

	visibleCount := maxLines - 1 // Leave room for "more" indicator
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := q.offset
	end := start + visibleCount
	if end > len(tracks) {
		end = len(tracks)
	}

	lines := make([]string, 0, end-start+1)

	// Fixed overhead: "XX. " (4) + "▶ " or "  " (2) + " — " (3)
	const overhead = 9

	for i := start; i < end; i++ {
		track := tracks[i]
		num := fmt.Sprintf("%2d.", i+1)

		available := width - overhead
		title, artist := fitTitleArtist(track.Title, track.ArtistLine(), available)

		var line string
		if i == current {
			line = s.Playing.Render(fmt.Sprintf("%s ▶ %s — %s", num, title, artist))
		} else {
			line = fmt.Sprintf("%s   %s — %s",
				s.DimText.Render(num),
				title,
				s.MutedText.Render(artist))
		}

		lines = append(lines, line)
	}

	if end < len(tracks) {
		more := s.DimText.Render(fmt.Sprintf("    ... and %d more", len(tracks)-end))
		lines = append(lines, more)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// fitTitleArtist truncates a title/artist pair into the available width,
// giving the artist at least a third of the space.
func fitTitleArtist(title, artist string, available int) (string, string) {
	if len(title)+len(artist) <= available {
		return title, artist
	}

	minArtist := available / 3
	if minArtist < 10 {
		minArtist = 10
	}
	if minArtist > available-10 {
		minArtist = available - 10
	}

	artistSpace := minArtist
	if len(artist) < artistSpace {
		artistSpace = len(artist)
	}
	titleSpace := available - artistSpace

	return truncate(title, titleSpace), truncate(artist, artistSpace)
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
