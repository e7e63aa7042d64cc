// Package styles defines the dashboard's lipgloss styles, built from the
// catppuccin palette selected in configuration.
package styles

import (
	"strings"

	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

// Styles holds the resolved color styles for one theme.
type Styles struct {
	Primary lipgloss.Color
	Green   lipgloss.Color
	Red     lipgloss.Color
	Amber   lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Dim     lipgloss.Color
	Border  lipgloss.Color

	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Label     lipgloss.Style
	Highlight lipgloss.Style
	MutedText lipgloss.Style
	DimText   lipgloss.Style
	Playing   lipgloss.Style
	Paused    lipgloss.Style
	Error     lipgloss.Style

	BorderStyle   lipgloss.Style
	FocusedBorder lipgloss.Style
}

// New builds the styles for the named catppuccin flavor. Unknown names
// fall back to mocha.
func New(theme string) Styles {
	f := catppuccin.Mocha
	switch theme {
	case "latte":
		f = catppuccin.Latte
	case "frappe":
		f = catppuccin.Frappe
	case "macchiato":
		f = catppuccin.Macchiato
	}

	s := Styles{
		Primary: lipgloss.Color(f.Mauve().Hex),
		Green:   lipgloss.Color(f.Green().Hex),
		Red:     lipgloss.Color(f.Red().Hex),
		Amber:   lipgloss.Color(f.Peach().Hex),
		Text:    lipgloss.Color(f.Text().Hex),
		Muted:   lipgloss.Color(f.Subtext0().Hex),
		Dim:     lipgloss.Color(f.Overlay0().Hex),
		Border:  lipgloss.Color(f.Surface1().Hex),
	}

	s.Title = lipgloss.NewStyle().Bold(true).Foreground(s.Text)
	s.Subtitle = lipgloss.NewStyle().Foreground(s.Muted)
	s.Label = lipgloss.NewStyle().Foreground(s.Dim)
	s.Highlight = lipgloss.NewStyle().Bold(true).Foreground(s.Primary)
	s.MutedText = lipgloss.NewStyle().Foreground(s.Muted)
	s.DimText = lipgloss.NewStyle().Foreground(s.Dim)
	s.Playing = lipgloss.NewStyle().Foreground(s.Green)
	s.Paused = lipgloss.NewStyle().Foreground(s.Amber)
	s.Error = lipgloss.NewStyle().Foreground(s.Red)

	s.BorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Border)
	s.FocusedBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Primary)

	return s
}

// Panel returns the panel style, bordered by focus.
func (s Styles) Panel(focused bool) lipgloss.Style {
	if focused {
		return s.FocusedBorder.Padding(0, 1)
	}
	return s.BorderStyle.Padding(0, 1)
}

// PanelTitle renders a panel title, highlighted when focused.
func (s Styles) PanelTitle(title string, focused bool) string {
	style := s.Label
	if focused {
		style = s.Highlight
	}
	return style.Render(" " + title + " ")
}

// ProgressBar renders a bar filled to fraction (in [0, 1]).
func (s Styles) ProgressBar(fraction float64, width int) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction * float64(width))
	if filled > width {
		filled = width
	}

	bar := lipgloss.NewStyle().Foreground(s.Primary).Render(strings.Repeat("━", filled)) +
		lipgloss.NewStyle().Foreground(s.Border).Render(strings.Repeat("─", width-filled))
	return bar
}

// StatusIcon returns the playback indicator.
func (s Styles) StatusIcon(playing bool) string {
	if playing {
		return s.Playing.Render("▶")
	}
	return s.Paused.Render("⏸")
}
