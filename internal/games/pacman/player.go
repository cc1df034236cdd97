package pacman

import "time"

// Player is the controllable actor. PowerExpiry is measured in game time.
type Player struct {
	Pos         Point
	Dir         Direction
	Next        Direction
	Powered     bool
	PowerExpiry time.Duration
}

// advance moves the player one cell and collects whatever is there.
// A buffered turn is taken as soon as it is open; otherwise the player
// keeps going and stops against walls.
func (p *Player) advance(g *Grid) CollectResult {
	if p.Next != DirNone && g.IsOpen(p.Pos.Add(p.Next)) {
		p.Dir = p.Next
		p.Next = DirNone
	}

	if p.Dir != DirNone {
		if next := p.Pos.Add(p.Dir); g.IsOpen(next) {
			p.Pos = next
		}
	}

	return g.CollectAt(p.Pos)
}
