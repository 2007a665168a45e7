// Package tui binds a cycler to a terminal UI.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#FF6B6B") // Red - titles
	ColorSecondary = lipgloss.Color("#4ecdc4") // Teal - active text
	ColorAccent    = lipgloss.Color("#ffe66d") // Yellow - position marker
	ColorMuted     = lipgloss.Color("#666666") // Gray - help text, outgoing text
	ColorText      = lipgloss.Color("#f1faee") // Light text
	ColorBg        = lipgloss.Color("#1a1a2e") // Dark background
	ColorBorder    = lipgloss.Color("#3d5a80") // Border color
)

// Styles groups the styles the view renders with. Accent and background can
// be overridden by the profile.
type Styles struct {
	Title    lipgloss.Style
	Unit     lipgloss.Style
	Outgoing lipgloss.Style
	Banner   lipgloss.Style
	Frame    lipgloss.Style
	Dot      lipgloss.Style
	DotOn    lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
	Input    lipgloss.Style
}

// NewStyles builds the styles, replacing the accent and background colors
// when non-empty.
func NewStyles(accent, background string) Styles {
	acc := ColorSecondary
	if accent != "" {
		acc = lipgloss.Color(accent)
	}
	bg := ColorBg
	if background != "" {
		bg = lipgloss.Color(background)
	}

	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Background(bg).
			Padding(0, 1),
		Unit: lipgloss.NewStyle().
			Bold(true).
			Foreground(acc),
		Outgoing: lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true),
		Banner: lipgloss.NewStyle().
			Foreground(acc),
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 4).
			Align(lipgloss.Center),
		Dot: lipgloss.NewStyle().
			Foreground(ColorMuted),
		DotOn: lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true),
		Status: lipgloss.NewStyle().
			Foreground(ColorText).
			Italic(true),
		Error: lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true),
		Help: lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1),
		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent).
			Padding(0, 1),
	}
}
