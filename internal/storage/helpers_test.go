package storage

import "github.com/vovakirdan/tui-pacman/internal/core"

func pacmanRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1}
}

// stepFrame is a frame without input; the player stays on the spawn dot.
func stepFrame() core.InputFrame {
	return core.NewInputFrame()
}
