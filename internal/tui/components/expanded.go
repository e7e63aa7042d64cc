package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomos/cadence/internal/core"
	"github.com/tomos/cadence/internal/engine"
	"github.com/tomos/cadence/internal/tui/styles"
)

const (
	expandedPadX = 2
	clockWidth   = 5

	// Row of the progress bar within the rendered overlay: border (1),
	// vertical padding (1), then title, artist, album and a blank line.
	progressRow = 6
)

// Expanded is the full-size now-playing overlay. The surrounding model
// routes mouse input using its geometry helpers: drags on the progress
// row seek, drags anywhere else feed the dismissal machine.
type Expanded struct {
	styles styles.Styles
}

// NewExpanded creates a new Expanded component.
func NewExpanded(s styles.Styles) *Expanded {
	return &Expanded{styles: s}
}

// Render renders the overlay at the given outer size.
func (e *Expanded) Render(track *core.Track, sess engine.Session, shuffle bool, width, height int) string {
	s := e.styles
	inner := width - 2*(1+expandedPadX)

	title := s.MutedText.Render("Nothing playing")
	artist, album := "", ""
	if track != nil {
		title = s.Title.Render(truncate(track.Title, inner))
		artist = s.Subtitle.Render(truncate(track.ArtistLine(), inner))
		album = s.DimText.Render(truncate(track.Album, inner))
	}

	barWidth := e.BarWidth(width)
	progress := fmt.Sprintf("%s %s %s",
		formatClock(sess.Position),
		s.ProgressBar(sess.ProgressFraction(), barWidth),
		formatClock(sess.Duration))

	controls := e.renderControls(sess, shuffle)
	hint := s.DimText.Render("drag down to close · esc")

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		artist,
		album,
		"",
		progress,
		"",
		controls,
		"",
		hint,
	)

	return s.FocusedBorder.
		Padding(1, expandedPadX).
		Width(width - 2).
		Height(height - 2).
		Render(content)
}

func (e *Expanded) renderControls(sess engine.Session, shuffle bool) string {
	s := e.styles

	mid := "▶"
	if sess.Status == core.StatusPlaying {
		mid = "⏸"
	}
	line := s.DimText.Render("⏮  ") + s.Playing.Render(mid) + s.DimText.Render("  ⏭")

	line += "   " + flag(s, "shuffle", shuffle)
	line += "  " + flag(s, "repeat", sess.RepeatOne)
	line += "  " + s.DimText.Render(fmt.Sprintf("vol %d%%", int(sess.Volume*100)))
	return line
}

func flag(s styles.Styles, name string, on bool) string {
	if on {
		return s.Highlight.Render(name + " on")
	}
	return s.DimText.Render(name + " off")
}

// ProgressRow returns the seek bar's row, relative to the overlay top.
func (e *Expanded) ProgressRow() int {
	return progressRow
}

// BarStart returns the seek bar's first column, relative to the overlay
// left edge.
func (e *Expanded) BarStart() int {
	return 1 + expandedPadX + clockWidth + 1
}

// BarWidth returns the seek bar width for the given overlay width.
func (e *Expanded) BarWidth(width int) int {
	w := width - 2*(1+expandedPadX) - 2*(clockWidth+1)
	if w < 8 {
		w = 8
	}
	return w
}

// FractionAt maps a column within the overlay to a seek fraction.
func (e *Expanded) FractionAt(x, width int) float64 {
	start := e.BarStart()
	barWidth := e.BarWidth(width)

	f := float64(x-start) / float64(barWidth)
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return f
}
