package pacman

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-pacman/internal/config"
)

func TestGenerateProceduralLayoutConnected(t *testing.T) {
	for seed := int64(1); seed <= 60; seed++ {
		rng := rand.New(rand.NewSource(seed))
		walls, err := GenerateProceduralLayout(rng, DefaultGenParams())
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}

		g, err := BuildLayout(LevelProcedural, walls)
		if err != nil {
			t.Fatalf("seed %d: BuildLayout: %v", seed, err)
		}
		if !g.Connected(PlayerSpawn(g)) {
			t.Fatalf("seed %d: layout not connected:\n%s", seed, g)
		}

		set := make(map[Point]bool, len(walls))
		for _, w := range walls {
			set[w] = true
		}
		for _, w := range walls {
			if !set[Point{Cols - 1 - w.X, w.Y}] {
				t.Fatalf("seed %d: wall %v has no mirror", seed, w)
			}
			if w.Y < 2 || w.Y > Rows-3 || w.X < 2 || w.X > Cols-3 {
				t.Fatalf("seed %d: wall %v outside candidate band", seed, w)
			}
			if reservedCell(w.X, w.Y) || reservedCell(Cols-1-w.X, w.Y) {
				t.Fatalf("seed %d: wall %v in reserved zone", seed, w)
			}
		}

		// spawn area stays clear, pellets survive
		if g.IsWall(playerSpawn) {
			t.Fatalf("seed %d: spawn walled", seed)
		}
		if got := g.Count(TilePellet); got != 4 {
			t.Fatalf("seed %d: pellet count %d", seed, got)
		}
	}
}

func TestGenerateProceduralLayoutDeterministic(t *testing.T) {
	a, err := GenerateProceduralLayout(rand.New(rand.NewSource(7)), DefaultGenParams())
	if err != nil {
		t.Fatal(err)
	}
	b, err := GenerateProceduralLayout(rand.New(rand.NewSource(7)), DefaultGenParams())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different layouts")
	}
}

func TestGenerateProceduralLayoutExhausted(t *testing.T) {
	// Every candidate becomes a wall, which seals the spawn area.
	p := GenParams{WallProbability: 1.0, MaxAttempts: 3}
	walls, err := GenerateProceduralLayout(rand.New(rand.NewSource(1)), p)
	if !errors.Is(err, ErrGenerationExhausted) {
		t.Fatalf("error = %v, expected ErrGenerationExhausted", err)
	}
	if walls != nil {
		t.Errorf("exhausted generation returned walls: %v", walls)
	}
}

func TestEngineFallsBackToTemplateWhenGenerationFails(t *testing.T) {
	cfg := config.DefaultPacmanConfig()
	cfg.Generator.WallProbability = 1.0
	cfg.Generator.MaxAttempts = 2

	e, err := NewEngine(cfg, WithSeed(1), WithLevel(LevelProcedural))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	want, _ := BuildLayout(LevelCorridors, nil)
	if !reflect.DeepEqual(e.grid.Tiles(), want.Tiles()) {
		t.Errorf("fallback layout differs from Corridors:\n%s", e.grid)
	}
	if e.Level() != LevelProcedural {
		t.Errorf("Level() = %d, fallback should keep the random level selected", e.Level())
	}
}
