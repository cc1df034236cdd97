package pacman

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Level indices. The last one is generated rather than hand-authored.
const (
	LevelCorridors = iota
	LevelPillars
	LevelCross
	LevelProcedural

	LevelCount
)

// ErrUnknownLevel is returned for a level index outside [0, LevelCount).
var ErrUnknownLevel = errors.New("pacman: unknown level")

var levelNames = [LevelCount]string{
	LevelCorridors:  "Corridors",
	LevelPillars:    "Pillars",
	LevelCross:      "Cross",
	LevelProcedural: "Random",
}

// LevelName returns the display name of a level.
func LevelName(level int) string {
	if level < 0 || level >= LevelCount {
		return "Unknown"
	}
	return levelNames[level]
}

// ParseLevel accepts a level name (case-insensitive) or a 1-based number.
func ParseLevel(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if !ValidLevel(n - 1) {
			return 0, fmt.Errorf("%w: %d", ErrUnknownLevel, n)
		}
		return n - 1, nil
	}
	for i, name := range levelNames {
		if strings.EqualFold(name, s) {
			return i, nil
		}
	}
	if strings.EqualFold(s, "procedural") {
		return LevelProcedural, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

// ValidLevel reports whether level is a selectable level index.
func ValidLevel(level int) bool {
	return level >= 0 && level < LevelCount
}

// Fixed positions on every layout.
var (
	pelletCells = [4]Point{{2, 2}, {Cols - 3, 2}, {2, Rows - 3}, {Cols - 3, Rows - 3}}

	// playerSpawn is the nominal centre; layouts that wall it over move the
	// player to the nearest open cell.
	playerSpawn = Point{X: Cols / 2, Y: Rows / 2}

	// retreatCorner is where the Opportunist flees when the player is near.
	retreatCorner = Point{X: 1, Y: Rows - 2}
)

// PelletCells returns the four power pellet positions.
func PelletCells() []Point {
	return pelletCells[:]
}

// TemplateWalls returns the interior walls of a hand-authored template.
// It returns nil for the procedural level and unknown indices.
func TemplateWalls(level int) []Point {
	var walls []Point
	switch level {
	case LevelCorridors:
		// two horizontal bars above and below the centre
		for x := 3; x <= Cols-4; x++ {
			walls = append(walls, Point{x, 4}, Point{x, Rows - 5})
		}
	case LevelPillars:
		// two vertical pillars
		for y := 3; y <= Rows-4; y++ {
			walls = append(walls, Point{4, y}, Point{Cols - 5, y})
		}
	case LevelCross:
		// split bars plus a centre spine
		for x := 2; x <= 5; x++ {
			walls = append(walls, Point{x, 4}, Point{x, Rows - 5})
		}
		for x := Cols - 6; x <= Cols-3; x++ {
			walls = append(walls, Point{x, 4}, Point{x, Rows - 5})
		}
		for y := 6; y <= Rows-7; y++ {
			walls = append(walls, Point{Cols / 2, y})
		}
	}
	return walls
}

// BuildLayout produces a fresh grid for a level: wall border, dots on every
// interior cell, the level's walls, and pellets on the four fixed cells.
// procedural supplies the interior walls for LevelProcedural.
func BuildLayout(level int, procedural []Point) (*Grid, error) {
	if !ValidLevel(level) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLevel, level)
	}

	walls := procedural
	if level != LevelProcedural {
		walls = TemplateWalls(level)
	}

	g := NewGrid(Rows, Cols)
	for _, w := range walls {
		if g.InBounds(w) {
			g.Set(w, TileWall)
		}
	}
	for _, p := range pelletCells {
		if !g.IsWall(p) {
			g.Set(p, TilePellet)
		}
	}
	return g, nil
}

// PlayerSpawn returns the open cell the player starts on.
func PlayerSpawn(g *Grid) Point {
	return g.NearestOpen(playerSpawn)
}
