package pacman

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-pacman/internal/core"
)

// Each maze cell is drawn two characters wide so the board looks square.
const (
	cellW     = 2
	hudHeight = 2
)

// MinScreenSize returns the smallest screen the board fits on.
func MinScreenSize() (w, h int) {
	return Cols * cellW, Rows + hudHeight + 1
}

var ghostColors = map[GhostKind]core.Color{
	Chaser:      core.ColorRed,
	Opportunist: core.ColorCyan,
	Ambusher:    core.ColorMagenta,
}

func renderSnapshot(dst *core.Screen, s Snapshot, title string) {
	renderHUD(dst, s, title)

	minW, minH := MinScreenSize()
	if dst.Width() < minW || dst.Height() < minH {
		renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", minW, minH))
		return
	}

	offX := (dst.Width() - minW) / 2
	offY := hudHeight

	renderMaze(dst, s.Tiles, offX, offY)

	for _, g := range s.Ghosts {
		if !g.Alive {
			continue
		}
		ch, color := 'M', ghostColors[g.Kind]
		if g.Stunned {
			ch, color = 'm', core.ColorBrightBlue
		}
		dst.SetColored(offX+g.Pos.X*cellW, offY+g.Pos.Y, ch, color)
	}

	dst.SetColored(offX+s.Player.X*cellW, offY+s.Player.Y, playerRune(s.PlayerDir), core.ColorYellow)

	renderStatus(dst, s, offY+Rows)

	switch {
	case s.GameOver:
		renderOverlay(dst, "Game Over", fmt.Sprintf("Score: %d", s.Score))
	case s.Paused && s.ResumeIn > 0:
		secs := int((s.ResumeIn + 999_999_999) / 1_000_000_000)
		renderOverlay(dst, "Get ready", fmt.Sprintf("%d", secs))
	case s.Paused:
		renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func playerRune(d Direction) rune {
	switch d {
	case DirLeft:
		return '>'
	case DirUp:
		return 'V'
	case DirDown:
		return '^'
	default:
		return '<'
	}
}

// renderHUD draws the top status bar.
func renderHUD(dst *core.Screen, s Snapshot, title string) {
	hud := fmt.Sprintf(" %s  Score: %d  High: %d  Level: %s", title, s.Score, s.HighScore, s.LevelName)
	dst.DrawTextColored(0, 0, hud, core.ColorWhite)

	// Draw separator
	for x := range dst.Width() {
		dst.SetColored(x, 1, '─', core.ColorGray)
	}
}

// renderMaze draws walls, dots and pellets.
func renderMaze(dst *core.Screen, tiles [][]Tile, offX, offY int) {
	for y, row := range tiles {
		for x, t := range row {
			sx := offX + x*cellW
			sy := offY + y
			switch t {
			case TileWall:
				dst.SetColored(sx, sy, '█', core.ColorBlue)
				dst.SetColored(sx+1, sy, '█', core.ColorBlue)
			case TileDot:
				dst.SetColored(sx, sy, '·', core.ColorWhite)
			case TilePellet:
				dst.SetColored(sx, sy, '●', core.ColorWhite)
			}
		}
	}
}

// renderStatus draws power and dot counters under the maze.
func renderStatus(dst *core.Screen, s Snapshot, y int) {
	parts := []string{fmt.Sprintf("Dots: %d", s.DotsLeft)}
	if s.Powered {
		parts = append(parts, fmt.Sprintf("POWER %.1fs", s.PowerLeft.Seconds()))
	}
	dst.DrawTextCentered(y, strings.Join(parts, "   "))
}

// renderOverlay draws a centered overlay message.
func renderOverlay(dst *core.Screen, line1, line2 string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len([]rune(line1)), len([]rune(line2))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	for y := boxY; y < boxY+boxH; y++ {
		for x := boxX; x < boxX+boxW; x++ {
			isTopOrBottom := y == boxY || y == boxY+boxH-1
			isLeftOrRight := x == boxX || x == boxX+boxW-1
			switch {
			case isTopOrBottom && isLeftOrRight:
				dst.SetColored(x, y, '+', core.ColorYellow)
			case isTopOrBottom:
				dst.SetColored(x, y, '-', core.ColorYellow)
			case isLeftOrRight:
				dst.SetColored(x, y, '|', core.ColorYellow)
			default:
				dst.Set(x, y, ' ')
			}
		}
	}

	dst.DrawTextCentered(boxY+1, line1)
	dst.DrawTextCentered(boxY+3, line2)
}
