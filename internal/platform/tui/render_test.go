package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-pacman/internal/core"
)

type fixedLux float64

func (l fixedLux) Lux() float64 { return float64(l) }

func TestBrightness(t *testing.T) {
	tests := []struct {
		lux  float64
		want float64
	}{
		{0, 0.2},
		{100, 0.2},
		{335, 0.5},
		{670, 1},
		{5000, 1},
	}
	for _, tc := range tests {
		if got := Brightness(tc.lux); got != tc.want {
			t.Errorf("Brightness(%v) = %v, expected %v", tc.lux, got, tc.want)
		}
	}
}

func TestPaletteDims(t *testing.T) {
	full := NewPalette(DarkTheme(), 1)
	if got := full.Foreground(core.ColorRed); got != "#ff3030" {
		t.Errorf("full red = %q", got)
	}

	half := PaletteFor(DarkTheme(), fixedLux(335))
	if half.Brightness() != 0.5 {
		t.Fatalf("brightness = %v", half.Brightness())
	}
	if got := half.Foreground(core.ColorRed); got != "#801818" {
		t.Errorf("half red = %q, expected #801818", got)
	}

	if got := NewPalette(DarkTheme(), 0).Brightness(); got != 0.2 {
		t.Errorf("brightness floor = %v, expected 0.2", got)
	}
	if got := PaletteFor(LightTheme(), nil).Brightness(); got != 1 {
		t.Errorf("no sensor should mean full brightness, got %v", got)
	}
	if got := full.Foreground(core.ColorDefault); got != "" {
		t.Errorf("default color should use the terminal's, got %q", got)
	}
}

func TestThemeByName(t *testing.T) {
	if ThemeByName("dark").Name != "dark" || ThemeByName("light").Name != "light" {
		t.Error("explicit themes not honoured")
	}
	if n := ThemeByName("system").Name; n != "dark" && n != "light" {
		t.Errorf("system theme resolved to %q", n)
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab")
	s.DrawTextColored(2, 0, "MM", core.ColorRed)
	s.DrawText(0, 1, "cd")

	out := RenderScreen(s, nil)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	for _, want := range []string{"ab", "MM", "cd"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %q", want, out)
		}
	}
}
