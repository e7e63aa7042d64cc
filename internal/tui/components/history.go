package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomos/cadence/internal/core"
	"github.com/tomos/cadence/internal/tui/styles"
)

// HistoryEntry represents a track in play history.
type HistoryEntry struct {
	Track    core.Track
	PlayedAt time.Time
	Skipped  bool
}

// History displays recently played tracks.
type History struct {
	styles styles.Styles
}

// NewHistory creates a new History component.
func NewHistory(s styles.Styles) *History {
	return &History{styles: s}
}

// Render renders the history panel.
func (h *History) Render(entries []HistoryEntry, width, height int, focused bool) string {
	s := h.styles
	title := s.PanelTitle("History", focused)

	var content string
	if len(entries) == 0 {
		content = s.MutedText.Render("No history yet")
	} else {
		content = h.renderHistory(entries, width-4, height-4)
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

func (h *History) renderHistory(entries []HistoryEntry, width, maxLines int) string {
	s := h.styles
	lines := make([]string, 0, maxLines)

	// Fixed overhead: icon (2) + " — " (3) + padding for time (8)
	const overhead = 13

	for i, entry := range entries {
		if i >= maxLines {
			break
		}

		timeAgo := formatTimeAgo(entry.PlayedAt)

		icon := "✓"
		if entry.Skipped {
			icon = "⏭"
		}

		available := width - overhead - len(timeAgo)
		title, artist := fitTitleArtist(entry.Track.Title, entry.Track.ArtistLine(), available)

		trackInfo := fmt.Sprintf("%s — %s", title, artist)

		padding := width - 2 - len(title) - 3 - len(artist) - len(timeAgo)
		if padding < 1 {
			padding = 1
		}

		line := fmt.Sprintf("%s %s%s%s",
			s.DimText.Render(icon),
			trackInfo,
			lipgloss.NewStyle().Width(padding).Render(""),
			s.DimText.Render(timeAgo))

		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func formatTimeAgo(t time.Time) string {
	d := time.Since(t)

	if d < time.Minute {
		return "now"
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
	return t.Format("Jan 2")
}
