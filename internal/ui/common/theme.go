package common

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// ThemeID names a palette. It is what the settings file stores.
type ThemeID string

const (
	ThemeGruvbox     ThemeID = "gruvbox"
	ThemeTokyoNight  ThemeID = "tokyo-night"
	ThemeDracula     ThemeID = "dracula"
	ThemeGitHubLight ThemeID = "github-light"
)

// Palette holds the colors the ticker screen draws with.
type Palette struct {
	Text        color.Color // scrolling content
	Dim         color.Color // paused content, status and help text
	Frame       color.Color
	FrameActive color.Color // frame while the pointer is over the ticker
	Accent      color.Color // title and help keys
	AccentAlt   color.Color
	Warn        color.Color
	Err         color.Color
	Note        color.Color
}

// Theme is a named palette.
type Theme struct {
	ID      ThemeID
	Name    string
	Palette Palette
}

// hex lists a palette in Palette field order.
type hex [9]string

func (h hex) palette() Palette {
	c := func(i int) color.Color { return lipgloss.Color(h[i]) }
	return Palette{
		Text: c(0), Dim: c(1), Frame: c(2), FrameActive: c(3),
		Accent: c(4), AccentAlt: c(5), Warn: c(6), Err: c(7), Note: c(8),
	}
}

var themeTable = []struct {
	id   ThemeID
	name string
	hex  hex
}{
	{ThemeGruvbox, "Gruvbox", hex{"#ebdbb2", "#928374", "#3c3836", "#fe8019", "#fe8019", "#d3869b", "#fabd2f", "#fb4934", "#83a598"}},
	{ThemeTokyoNight, "Tokyo Night", hex{"#a9b1d6", "#565f89", "#292e42", "#7aa2f7", "#7aa2f7", "#bb9af7", "#e0af68", "#f7768e", "#7dcfff"}},
	{ThemeDracula, "Dracula", hex{"#f8f8f2", "#6272a4", "#44475a", "#bd93f9", "#bd93f9", "#ff79c6", "#f1fa8c", "#ff5555", "#8be9fd"}},
	{ThemeGitHubLight, "GitHub Light", hex{"#24292f", "#656d76", "#d0d7de", "#0969da", "#0969da", "#8250df", "#9a6700", "#cf222e", "#0969da"}},
}

// AvailableThemes returns the themes in cycling order.
func AvailableThemes() []Theme {
	out := make([]Theme, len(themeTable))
	for i, row := range themeTable {
		out[i] = Theme{ID: row.id, Name: row.name, Palette: row.hex.palette()}
	}
	return out
}

// GetTheme returns the theme for id, or the first theme when id is unknown.
func GetTheme(id ThemeID) Theme {
	themes := AvailableThemes()
	for _, t := range themes {
		if t.ID == id {
			return t
		}
	}
	return themes[0]
}

// NextTheme returns the theme after id, wrapping around.
func NextTheme(id ThemeID) Theme {
	themes := AvailableThemes()
	for i, t := range themes {
		if t.ID == id {
			return themes[(i+1)%len(themes)]
		}
	}
	return themes[0]
}
