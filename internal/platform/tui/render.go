package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/games/pacman"
)

// Lux at which the palette reaches full brightness.
const fullBrightLux = 670.0

// minBrightness keeps the board readable in a dark room.
const minBrightness = 0.2

// Palette maps core.Color to lipgloss styles at one brightness level.
type Palette struct {
	brightness float64
	styles     map[core.Color]lipgloss.Style
}

// Brightness converts an ambient light reading to a palette scale in [0.2, 1].
func Brightness(lux float64) float64 {
	return core.ClampF(lux/fullBrightLux, minBrightness, 1)
}

// NewPalette builds a palette from theme scaled by brightness
// (clamped to [0.2, 1]).
func NewPalette(theme Theme, brightness float64) *Palette {
	brightness = core.ClampF(brightness, minBrightness, 1)

	p := &Palette{
		brightness: brightness,
		styles:     map[core.Color]lipgloss.Style{core.ColorDefault: lipgloss.NewStyle()},
	}
	for c, v := range theme.Colors {
		hex := fmt.Sprintf("#%02x%02x%02x", scale(v.r, brightness), scale(v.g, brightness), scale(v.b, brightness))
		p.styles[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
	}
	return p
}

// DefaultPalette is the full-brightness palette of the current theme.
func DefaultPalette() *Palette {
	return NewPalette(GetTheme(), 1)
}

// PaletteFor returns a theme palette for the current light reading,
// at full brightness when src is nil.
func PaletteFor(theme Theme, src pacman.AmbientLightSource) *Palette {
	if src == nil {
		return NewPalette(theme, 1)
	}
	return NewPalette(theme, Brightness(src.Lux()))
}

// Brightness returns the scale the palette was built with.
func (p *Palette) Brightness() float64 {
	return p.brightness
}

// Foreground returns the hex color used for c, or "" for the terminal default.
func (p *Palette) Foreground(c core.Color) string {
	if s, ok := p.styles[c]; ok {
		if col, ok := s.GetForeground().(lipgloss.Color); ok {
			return string(col)
		}
	}
	return ""
}

func (p *Palette) style(c core.Color) lipgloss.Style {
	if s, ok := p.styles[c]; ok {
		return s
	}
	return p.styles[core.ColorDefault]
}

func scale(v uint8, f float64) uint8 {
	return uint8(float64(v)*f + 0.5)
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen, p *Palette) string {
	if p == nil {
		p = DefaultPalette()
	}

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(p.style(startColor).Render(run.String()))
		}
	}
	return sb.String()
}
