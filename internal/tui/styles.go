package tui

import (
	"github.com/charmbracelet/lipgloss"

	"treeclip/internal/config"
)

// Styles holds the lipgloss styles for the listing, built from theme colors.
type Styles struct {
	// Title bar at the top of the listing
	Title lipgloss.Style

	// Cursor row highlight
	Cursor lipgloss.Style

	// Directory names
	Directory lipgloss.Style

	// Selection marks
	Selected lipgloss.Style

	// Plain file rows
	File lipgloss.Style

	// Help and status lines
	Help lipgloss.Style

	// Stale-listing warning
	Warning lipgloss.Style
}

// NewStyles builds the style set from the configured theme.
func NewStyles(cfg *config.Config) Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color(cfg.Theme.Cursor)).
			Padding(0, 1),
		Cursor: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color(cfg.Theme.Cursor)),
		Directory: lipgloss.NewStyle().
			Foreground(lipgloss.Color(cfg.Theme.Directory)).
			Bold(true),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(cfg.Theme.Selected)),
		File: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCCCCC")),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(cfg.Theme.Help)),
		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D08770")).
			Italic(true),
	}
}
