package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pacman/internal/core"
)

type rgb struct{ r, g, b uint8 }

// Theme contains the board colors and the styles of the menus.
type Theme struct {
	Name string

	// Board colors at full brightness
	Colors map[core.Color]rgb

	// Menu styles
	MenuTitle  lipgloss.Style
	MenuActive lipgloss.Style
	MenuHint   lipgloss.Style
}

// DarkTheme is tuned for dark terminal backgrounds.
func DarkTheme() Theme {
	return Theme{
		Name: "dark",
		Colors: map[core.Color]rgb{
			core.ColorRed:        {0xff, 0x30, 0x30},
			core.ColorYellow:     {0xff, 0xe0, 0x00},
			core.ColorBlue:       {0x20, 0x40, 0xff},
			core.ColorMagenta:    {0xff, 0x80, 0xd0},
			core.ColorCyan:       {0x00, 0xe0, 0xff},
			core.ColorWhite:      {0xf0, 0xf0, 0xf0},
			core.ColorBrightBlue: {0x60, 0x80, 0xff},
			core.ColorGray:       {0x90, 0x90, 0x90},
		},
		MenuTitle:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuActive: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
		MenuHint:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// LightTheme uses deeper tones that stay visible on light backgrounds.
func LightTheme() Theme {
	return Theme{
		Name: "light",
		Colors: map[core.Color]rgb{
			core.ColorRed:        {0xc0, 0x10, 0x10},
			core.ColorYellow:     {0xb0, 0x80, 0x00},
			core.ColorBlue:       {0x10, 0x20, 0xb0},
			core.ColorMagenta:    {0xb0, 0x30, 0x90},
			core.ColorCyan:       {0x00, 0x80, 0x90},
			core.ColorWhite:      {0x30, 0x30, 0x30},
			core.ColorBrightBlue: {0x30, 0x50, 0xd0},
			core.ColorGray:       {0x70, 0x70, 0x70},
		},
		MenuTitle:  lipgloss.NewStyle().Foreground(lipgloss.Color("130")).Bold(true),
		MenuActive: lipgloss.NewStyle().Foreground(lipgloss.Color("25")).Bold(true),
		MenuHint:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	}
}

// ThemeByName resolves a theme setting. "system" and unknown names follow
// the terminal background.
func ThemeByName(name string) Theme {
	switch name {
	case "dark":
		return DarkTheme()
	case "light":
		return LightTheme()
	}
	if lipgloss.HasDarkBackground() {
		return DarkTheme()
	}
	return LightTheme()
}

// Global theme used by the menus (can be changed at runtime)
var currentTheme = DarkTheme()

// SetTheme sets the global theme.
func SetTheme(t Theme) {
	currentTheme = t
}

// GetTheme returns the current global theme.
func GetTheme() Theme {
	return currentTheme
}
