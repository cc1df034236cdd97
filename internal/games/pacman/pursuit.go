package pacman

import (
	"math/rand"

	"github.com/vovakirdan/tui-pacman/internal/core"
)

// View is what a strategy may read when picking a target.
type View struct {
	Grid      *Grid
	Player    Point
	PlayerDir Direction

	// AmbushLookahead is how many cells ahead of the player the Ambusher aims.
	AmbushLookahead int
	// OpportunistRadius is the Manhattan distance under which the
	// Opportunist retreats instead of chasing.
	OpportunistRadius int
}

// Strategy picks a target cell for a ghost. Returning false means no
// target; the ghost then moves to a random candidate.
type Strategy interface {
	Target(g *Ghost, v View) (Point, bool)
}

// StrategyFunc adapts a plain function to Strategy.
type StrategyFunc func(g *Ghost, v View) (Point, bool)

// Target implements Strategy.
func (f StrategyFunc) Target(g *Ghost, v View) (Point, bool) {
	return f(g, v)
}

// ChaseStrategy targets the player directly.
func ChaseStrategy() Strategy {
	return StrategyFunc(func(_ *Ghost, v View) (Point, bool) {
		return v.Player, true
	})
}

// OpportunistStrategy chases from afar and retreats to the lower-left
// corner once the player is within the radius.
func OpportunistStrategy() Strategy {
	return StrategyFunc(func(g *Ghost, v View) (Point, bool) {
		if g.Pos.Manhattan(v.Player) > v.OpportunistRadius {
			return v.Player, true
		}
		return retreatCorner, true
	})
}

// AmbushStrategy targets the cell a few steps ahead of the player,
// clamped to the grid.
func AmbushStrategy() Strategy {
	return StrategyFunc(func(_ *Ghost, v View) (Point, bool) {
		dx, dy := v.PlayerDir.Delta()
		t := Point{
			X: v.Player.X + dx*v.AmbushLookahead,
			Y: v.Player.Y + dy*v.AmbushLookahead,
		}
		t.X = core.Clamp(t.X, 0, v.Grid.Cols()-1)
		t.Y = core.Clamp(t.Y, 0, v.Grid.Rows()-1)
		return t, true
	})
}

// DefaultStrategies returns the stock strategy for each kind.
func DefaultStrategies() map[GhostKind]Strategy {
	return map[GhostKind]Strategy{
		Chaser:      ChaseStrategy(),
		Opportunist: OpportunistStrategy(),
		Ambusher:    AmbushStrategy(),
	}
}

// candidateMoves lists the directions a ghost may take, in search order.
// Walls and cells held by other live ghosts are excluded. Reversing is
// dropped whenever another option exists.
func candidateMoves(g *Ghost, grid *Grid, ghosts []*Ghost) []Direction {
	cands := make([]Direction, 0, len(searchOrder))
	for _, d := range searchOrder {
		next := g.Pos.Add(d)
		if !grid.IsOpen(next) || occupied(next, g, ghosts) {
			continue
		}
		cands = append(cands, d)
	}

	if len(cands) > 1 && g.Dir != DirNone {
		back := g.Dir.Reverse()
		filtered := cands[:0]
		for _, d := range cands {
			if d != back {
				filtered = append(filtered, d)
			}
		}
		cands = filtered
	}
	return cands
}

func occupied(p Point, self *Ghost, ghosts []*Ghost) bool {
	for _, o := range ghosts {
		if o != self && o.Alive && o.Pos == p {
			return true
		}
	}
	return false
}

// chooseMove picks the candidate minimising squared distance to the
// strategy target. Ties keep the first in search order.
func chooseMove(g *Ghost, s Strategy, v View, ghosts []*Ghost, rng *rand.Rand) (Direction, bool) {
	cands := candidateMoves(g, v.Grid, ghosts)
	if len(cands) == 0 {
		return DirNone, false
	}

	target, ok := s.Target(g, v)
	if !ok {
		return cands[rng.Intn(len(cands))], true
	}

	best := cands[0]
	bestDist := g.Pos.Add(best).DistSq(target)
	for _, d := range cands[1:] {
		if dist := g.Pos.Add(d).DistSq(target); dist < bestDist {
			best, bestDist = d, dist
		}
	}
	return best, true
}
