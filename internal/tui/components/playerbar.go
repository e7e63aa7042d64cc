package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomos/cadence/internal/core"
	"github.com/tomos/cadence/internal/engine"
	"github.com/tomos/cadence/internal/tui/styles"
)

// PlayerBar is the compact now-playing bar at the bottom of the screen.
// It stays visible while the expanded view is closed.
type PlayerBar struct {
	styles styles.Styles
}

// NewPlayerBar creates a new PlayerBar component.
func NewPlayerBar(s styles.Styles) *PlayerBar {
	return &PlayerBar{styles: s}
}

// Render renders the bar at the given width.
func (p *PlayerBar) Render(track *core.Track, sess engine.Session, shuffle bool, width int) string {
	s := p.styles

	if track == nil {
		return lipgloss.NewStyle().Width(width).Padding(0, 1).
			Render(s.MutedText.Render("Nothing playing. Press enter to expand, space to play."))
	}

	icon := s.StatusIcon(sess.Status == core.StatusPlaying)

	desc := track.Title
	if artist := track.ArtistLine(); artist != "" {
		desc += s.MutedText.Render(" — " + artist)
	}

	times := fmt.Sprintf("%s/%s", formatClock(sess.Position), formatClock(sess.Duration))

	var flags string
	if shuffle {
		flags += " " + s.Highlight.Render("⇄")
	}
	if sess.RepeatOne {
		flags += " " + s.Highlight.Render("⟳")
	}
	vol := s.DimText.Render(fmt.Sprintf("vol %d%%", int(sess.Volume*100)))

	// Progress bar takes whatever is left.
	fixed := lipgloss.Width(icon) + lipgloss.Width(desc) + len(times) +
		lipgloss.Width(flags) + lipgloss.Width(vol) + 8
	barWidth := width - fixed
	if barWidth < 8 {
		barWidth = 8
	}
	bar := s.ProgressBar(sess.ProgressFraction(), barWidth)

	line := fmt.Sprintf("%s %s  %s %s %s %s", icon, desc, times, bar, vol, flags)
	return lipgloss.NewStyle().Width(width).Padding(0, 1).Render(line)
}

// formatClock renders a duration as a fixed-width mm:ss clock. Zero means
// unknown and renders as a placeholder of the same width.
func formatClock(d time.Duration) string {
	if d <= 0 {
		return "--:--"
	}
	d = d.Round(time.Second)
	m := int(d / time.Minute)
	s := int((d % time.Minute) / time.Second)
	return fmt.Sprintf("%02d:%02d", m, s)
}
