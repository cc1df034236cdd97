package pacman

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-pacman/internal/core"
)

// ErrGenerationExhausted is returned when no connected layout was found
// within the attempt budget.
var ErrGenerationExhausted = errors.New("pacman: procedural generation exhausted")

// GenParams tunes the procedural generator.
type GenParams struct {
	WallProbability float64
	MaxAttempts     int
}

// DefaultGenParams returns the stock generator settings.
func DefaultGenParams() GenParams {
	return GenParams{
		WallProbability: 0.25,
		MaxAttempts:     1000,
	}
}

// GenerateProceduralLayout returns the interior walls of a random layout
// that is mirrored left to right and fully connected. Candidates are drawn
// until one passes the flood fill or MaxAttempts is spent.
func GenerateProceduralLayout(rng *rand.Rand, p GenParams) ([]Point, error) {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = DefaultGenParams().MaxAttempts
	}

	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		walls := proceduralCandidate(rng, p.WallProbability)
		if layoutConnected(walls) {
			return walls, nil
		}
	}
	return nil, fmt.Errorf("%w after %d attempts", ErrGenerationExhausted, p.MaxAttempts)
}

// proceduralCandidate rolls walls on the left half and mirrors them.
func proceduralCandidate(rng *rand.Rand, prob float64) []Point {
	var walls []Point
	for y := 2; y <= Rows-3; y++ {
		for x := 2; x <= Cols/2; x++ {
			if reservedCell(x, y) {
				continue
			}
			if rng.Float64() >= prob {
				continue
			}
			walls = append(walls, Point{x, y})
			if mx := Cols - 1 - x; mx != x {
				walls = append(walls, Point{mx, y})
			}
		}
	}
	return walls
}

// reservedCell keeps the spawn area and the left ghost homes clear.
func reservedCell(x, y int) bool {
	if core.Abs(x-playerSpawn.X) <= 1 && core.Abs(y-playerSpawn.Y) <= 1 {
		return true
	}
	return (x <= 2 && y <= 2) || (x <= 2 && y >= Rows-3)
}

func layoutConnected(walls []Point) bool {
	g := NewGrid(Rows, Cols)
	for _, w := range walls {
		g.Set(w, TileWall)
	}
	return g.Connected(playerSpawn)
}
