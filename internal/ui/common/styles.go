package common

import "charm.land/lipgloss/v2"

// Styles contains all the application styles
type Styles struct {
	// Ticker frame
	Frame        lipgloss.Style
	FocusedFrame lipgloss.Style

	// Ticker content
	Content lipgloss.Style
	Paused  lipgloss.Style
	Title   lipgloss.Style

	// Status line
	Status     lipgloss.Style
	StatusKey  lipgloss.Style
	StatusWarn lipgloss.Style

	// Help bar
	Help          lipgloss.Style
	HelpKey       lipgloss.Style
	HelpDesc      lipgloss.Style
	HelpSeparator lipgloss.Style

	// Feedback
	Error lipgloss.Style
	Info  lipgloss.Style
}

// DefaultStyles returns the styles of the default theme.
func DefaultStyles() Styles {
	return StylesFor(GetTheme(ThemeGruvbox))
}

// StylesFor builds the styles of a theme.
func StylesFor(t Theme) Styles {
	c := t.Palette
	return Styles{
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c.Frame),

		FocusedFrame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c.FrameActive),

		Content: lipgloss.NewStyle().
			Foreground(c.Text),

		Paused: lipgloss.NewStyle().
			Foreground(c.Dim),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(c.Accent),

		Status: lipgloss.NewStyle().
			Foreground(c.Dim),

		StatusKey: lipgloss.NewStyle().
			Foreground(c.AccentAlt),

		StatusWarn: lipgloss.NewStyle().
			Foreground(c.Warn),

		Help: lipgloss.NewStyle().
			Foreground(c.Dim),

		HelpKey: lipgloss.NewStyle().
			Foreground(c.Accent).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(c.Dim),

		HelpSeparator: lipgloss.NewStyle().
			Foreground(c.Frame),

		Error: lipgloss.NewStyle().
			Foreground(c.Err),

		Info: lipgloss.NewStyle().
			Foreground(c.Note),
	}
}
