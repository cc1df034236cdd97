package pacman

import "time"

// GhostKind selects a ghost's pursuit strategy.
type GhostKind int

const (
	Chaser GhostKind = iota
	Opportunist
	Ambusher
)

// ghostOrder is the fixed per-tick movement order.
var ghostOrder = [3]GhostKind{Chaser, Opportunist, Ambusher}

func (k GhostKind) String() string {
	switch k {
	case Chaser:
		return "chaser"
	case Opportunist:
		return "opportunist"
	case Ambusher:
		return "ambusher"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k GhostKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Ghost is one pursuer. StunnedUntil is measured in game time.
type Ghost struct {
	Kind         GhostKind
	Pos          Point
	Home         Point
	Dir          Direction
	Alive        bool
	StunnedUntil time.Duration
}

// homeCell returns the nominal home of each kind.
func homeCell(k GhostKind) Point {
	switch k {
	case Opportunist:
		return Point{X: Cols - 2, Y: 1}
	case Ambusher:
		return Point{X: 1, Y: Rows - 2}
	default:
		return Point{X: 1, Y: 1}
	}
}

func newGhost(k GhostKind, g *Grid) *Ghost {
	home := g.NearestOpen(homeCell(k))
	return &Ghost{
		Kind:  k,
		Pos:   home,
		Home:  home,
		Alive: true,
	}
}

// Stunned reports whether the ghost is frozen at game time now.
func (g *Ghost) Stunned(now time.Duration) bool {
	return g.Alive && now < g.StunnedUntil
}

func (g *Ghost) respawn() {
	g.Pos = g.Home
	g.Dir = DirNone
	g.Alive = true
	g.StunnedUntil = 0
}
