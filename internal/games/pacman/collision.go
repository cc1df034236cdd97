package pacman

// resolveCollisions runs after every actor has moved. Only ghosts sharing
// the player's cell collide; actors swapping cells pass through each other.
func (e *Engine) resolveCollisions() {
	for i, g := range e.ghosts {
		if !g.Alive || g.Pos != e.player.Pos {
			continue
		}

		if e.player.Powered {
			g.Alive = false
			e.addScore(e.cfg.Scoring.Capture)
			e.timers.schedule(timerEvent{
				due:   e.clock + e.cfg.Timing.Respawn(),
				epoch: e.epoch,
				kind:  timerRespawn,
				ghost: i,
			})
			e.logger.Info("ghost captured", "ghost", g.Kind, "score", e.score)
			continue
		}

		e.gameOver = true
		e.timers.schedule(timerEvent{
			due:   e.clock + e.cfg.Timing.GameOver(),
			epoch: e.epoch,
			kind:  timerGameOverReset,
		})
		e.logger.Info("game over", "ghost", g.Kind, "score", e.score, "level", e.level)
		return
	}
}
