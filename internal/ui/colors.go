package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/ytspot/internal/tasks"
)

var styles = NewPalette(
	lipgloss.AdaptiveColor{Light: "#5A3FD1", Dark: "#7D56F4"},
	lipgloss.AdaptiveColor{Light: "#028A5B", Dark: "#04B575"},
	lipgloss.AdaptiveColor{Light: "#C00000", Dark: "#FF5F5F"},
	lipgloss.AdaptiveColor{Light: "#B36B00", Dark: "#FFA500"},
	lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#626262"},
)

// Palette holds the styles shared by every view of the wizard.
type Palette struct {
	title lipgloss.Style
	label lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
}

// NewPalette builds a [Palette] from accent, success, error, warning and muted colors.
func NewPalette(accent, success, failure, warning, muted lipgloss.TerminalColor) *Palette {
	return &Palette{
		title: lipgloss.NewStyle().Foreground(accent).Bold(true).MarginBottom(1),
		label: lipgloss.NewStyle().Foreground(accent).Bold(true),
		ok:    lipgloss.NewStyle().Foreground(success).Bold(true),
		err:   lipgloss.NewStyle().Foreground(failure).Bold(true),
		warn:  lipgloss.NewStyle().Foreground(warning),
		help:  lipgloss.NewStyle().Foreground(muted).Italic(true),
	}
}

// Update renders one line of the transfer log.
func (p *Palette) Update(u tasks.ProgressUpdate) string {
	switch u.Phase {
	case tasks.TrackSkipped:
		return p.warn.Render("  ! " + u.Message)
	case tasks.Finished:
		return p.ok.Render(u.Message)
	default:
		return "  + " + u.Message
	}
}

// Radio renders a two-state selector marker.
func (p *Palette) Radio(on bool) string {
	if on {
		return "(•)"
	}
	return "( )"
}
