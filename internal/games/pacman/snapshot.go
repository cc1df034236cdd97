package pacman

import "time"

// GhostView is the observable state of one ghost.
type GhostView struct {
	Kind    GhostKind `json:"kind"`
	Pos     Point     `json:"pos"`
	Dir     Direction `json:"dir"`
	Alive   bool      `json:"alive"`
	Stunned bool      `json:"stunned"`
}

// Snapshot is an immutable copy of the game state after a tick.
type Snapshot struct {
	Tick      uint64        `json:"tick"`
	Time      time.Duration `json:"time"`
	Level     int           `json:"level"`
	LevelName string        `json:"level_name"`

	Score     int `json:"score"`
	HighScore int `json:"high_score"`
	DotsLeft  int `json:"dots_left"`

	Player    Point         `json:"player"`
	PlayerDir Direction     `json:"player_dir"`
	Powered   bool          `json:"powered"`
	PowerLeft time.Duration `json:"power_left"`

	Ghosts []GhostView `json:"ghosts"`

	GameOver bool          `json:"game_over"`
	Paused   bool          `json:"paused"`
	ResumeIn time.Duration `json:"resume_in"`

	Tiles [][]Tile `json:"tiles"`
}

// Ghost returns the view of the given kind, if present.
func (s Snapshot) Ghost(k GhostKind) (GhostView, bool) {
	for _, g := range s.Ghosts {
		if g.Kind == k {
			return g, true
		}
	}
	return GhostView{}, false
}

// Snapshot returns the current state without advancing the simulation.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Tick:      e.tick,
		Time:      e.clock,
		Level:     e.level,
		LevelName: LevelName(e.level),
		Score:     e.score,
		HighScore: e.HighScore(),
		DotsLeft:  e.grid.Count(TileDot) + e.grid.Count(TilePellet),
		Player:    e.player.Pos,
		PlayerDir: e.player.Dir,
		Powered:   e.player.Powered,
		Ghosts:    make([]GhostView, 0, len(e.ghosts)),
		GameOver:  e.gameOver,
		Paused:    e.paused,
		Tiles:     e.grid.Tiles(),
	}
	if e.player.Powered {
		s.PowerLeft = max(e.player.PowerExpiry-e.clock, 0)
	}
	if e.resuming {
		s.ResumeIn = e.resumeLeft
	}
	for _, g := range e.ghosts {
		s.Ghosts = append(s.Ghosts, GhostView{
			Kind:    g.Kind,
			Pos:     g.Pos,
			Dir:     g.Dir,
			Alive:   g.Alive,
			Stunned: g.Stunned(e.clock),
		})
	}
	return s
}
