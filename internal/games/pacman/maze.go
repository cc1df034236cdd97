package pacman

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-pacman/internal/core"
)

// Board dimensions shared by every layout.
const (
	Rows = 17
	Cols = 15
)

// Tile is the content of one maze cell.
type Tile int

const (
	TileEmpty Tile = iota
	TileWall
	TileDot
	TilePellet
)

func (t Tile) String() string {
	switch t {
	case TileEmpty:
		return "empty"
	case TileWall:
		return "wall"
	case TileDot:
		return "dot"
	case TilePellet:
		return "pellet"
	default:
		return "unknown"
	}
}

// CollectResult reports what the player picked up on a cell.
type CollectResult int

const (
	CollectNone CollectResult = iota
	CollectDot
	CollectPellet
)

// Point is a cell coordinate: X is the column, Y is the row.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the neighbour of p one step in direction d.
func (p Point) Add(d Direction) Point {
	dx, dy := d.Delta()
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// DistSq returns the squared Euclidean distance between two points.
func (p Point) DistSq(o Point) int {
	dx, dy := p.X-o.X, p.Y-o.Y
	return dx*dx + dy*dy
}

// Manhattan returns the taxicab distance between two points.
func (p Point) Manhattan(o Point) int {
	return core.Abs(p.X-o.X) + core.Abs(p.Y-o.Y)
}

// Grid is a fixed-size maze. Indexing outside the grid is a logic error
// and panics; callers filter with InBounds first.
type Grid struct {
	rows  int
	cols  int
	tiles []Tile
}

// NewGrid creates a grid with a wall border and dots everywhere inside.
func NewGrid(rows, cols int) *Grid {
	g := &Grid{
		rows:  rows,
		cols:  cols,
		tiles: make([]Tile, rows*cols),
	}
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			t := TileDot
			if x == 0 || y == 0 || x == cols-1 || y == rows-1 {
				t = TileWall
			}
			g.tiles[y*cols+x] = t
		}
	}
	return g
}

// Rows returns the grid height.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the grid width.
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether p lies on the grid.
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.cols && p.Y >= 0 && p.Y < g.rows
}

func (g *Grid) index(p Point) int {
	if !g.InBounds(p) {
		panic(fmt.Sprintf("pacman: cell (%d,%d) outside %dx%d grid", p.X, p.Y, g.cols, g.rows))
	}
	return p.Y*g.cols + p.X
}

// At returns the tile at p.
func (g *Grid) At(p Point) Tile {
	return g.tiles[g.index(p)]
}

// Set overwrites the tile at p.
func (g *Grid) Set(p Point, t Tile) {
	g.tiles[g.index(p)] = t
}

// IsWall reports whether p is a wall.
func (g *Grid) IsWall(p Point) bool {
	return g.At(p) == TileWall
}

// IsOpen reports whether p is on the grid and not a wall.
func (g *Grid) IsOpen(p Point) bool {
	return g.InBounds(p) && !g.IsWall(p)
}

// CollectAt empties a dot or pellet cell and reports what was there.
func (g *Grid) CollectAt(p Point) CollectResult {
	switch g.At(p) {
	case TileDot:
		g.Set(p, TileEmpty)
		return CollectDot
	case TilePellet:
		g.Set(p, TileEmpty)
		return CollectPellet
	default:
		return CollectNone
	}
}

// Count returns how many cells hold the given tile.
func (g *Grid) Count(t Tile) int {
	n := 0
	for _, v := range g.tiles {
		if v == t {
			n++
		}
	}
	return n
}

// Tiles returns a row-major copy of the grid.
func (g *Grid) Tiles() [][]Tile {
	out := make([][]Tile, g.rows)
	for y := range out {
		out[y] = make([]Tile, g.cols)
		copy(out[y], g.tiles[y*g.cols:(y+1)*g.cols])
	}
	return out
}

// NearestOpen returns p if it is open, otherwise the first open cell found
// in growing square rings around it. Falls back to p when nothing is open.
func (g *Grid) NearestOpen(p Point) Point {
	if g.IsOpen(p) {
		return p
	}
	maxR := max(g.rows, g.cols)
	for r := 1; r <= maxR; r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				c := Point{X: p.X + dx, Y: p.Y + dy}
				if g.IsOpen(c) {
					return c
				}
			}
		}
	}
	return p
}

// Connected reports whether a flood fill from `from` reaches every
// non-wall cell of the grid.
func (g *Grid) Connected(from Point) bool {
	if !g.IsOpen(from) {
		return false
	}

	visited := make([]bool, len(g.tiles))
	queue := []Point{from}
	visited[g.index(from)] = true
	reached := 1

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range searchOrder {
			next := cur.Add(d)
			if !g.IsOpen(next) {
				continue
			}
			i := g.index(next)
			if visited[i] {
				continue
			}
			visited[i] = true
			reached++
			queue = append(queue, next)
		}
	}

	return reached == len(g.tiles)-g.Count(TileWall)
}

// String renders the grid as ASCII: '#' wall, '.' dot, 'o' pellet.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow((g.cols + 1) * g.rows)
	for y := 0; y < g.rows; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < g.cols; x++ {
			b.WriteRune(asciiTile(g.tiles[y*g.cols+x]))
		}
	}
	return b.String()
}

func asciiTile(t Tile) rune {
	switch t {
	case TileWall:
		return '#'
	case TileDot:
		return '.'
	case TilePellet:
		return 'o'
	default:
		return ' '
	}
}
