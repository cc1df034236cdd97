package pacman

import (
	"errors"
	"strings"
	"testing"
)

func borderCells() int {
	return 2*Cols + 2*(Rows-2)
}

func TestBuildLayoutTemplates(t *testing.T) {
	tests := []struct {
		level     int
		name      string
		wallCount int
		wallAt    []Point
	}{
		{LevelCorridors, "Corridors", 18, []Point{{3, 4}, {11, 4}, {3, 12}, {11, 12}}},
		{LevelPillars, "Pillars", 22, []Point{{4, 3}, {4, 13}, {10, 3}, {10, 13}}},
		{LevelCross, "Cross", 21, []Point{{2, 4}, {5, 12}, {9, 4}, {12, 12}, {7, 6}, {7, 10}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, err := BuildLayout(tc.level, nil)
			if err != nil {
				t.Fatalf("BuildLayout(%d) error = %v", tc.level, err)
			}
			if LevelName(tc.level) != tc.name {
				t.Errorf("LevelName(%d) = %q, expected %q", tc.level, LevelName(tc.level), tc.name)
			}
			if got := g.Count(TileWall); got != borderCells()+tc.wallCount {
				t.Errorf("wall count = %d, expected %d", got, borderCells()+tc.wallCount)
			}
			for _, p := range tc.wallAt {
				if !g.IsWall(p) {
					t.Errorf("expected wall at %v", p)
				}
			}
			for _, p := range PelletCells() {
				if g.At(p) != TilePellet {
					t.Errorf("expected pellet at %v, got %v", p, g.At(p))
				}
			}

			// Border is always wall
			for x := 0; x < Cols; x++ {
				if !g.IsWall(Point{x, 0}) || !g.IsWall(Point{x, Rows - 1}) {
					t.Fatalf("border gap at column %d", x)
				}
			}
			for y := 0; y < Rows; y++ {
				if !g.IsWall(Point{0, y}) || !g.IsWall(Point{Cols - 1, y}) {
					t.Fatalf("border gap at row %d", y)
				}
			}

			// Every interior non-wall cell starts with a dot or pellet
			empty := g.Count(TileEmpty)
			if empty != 0 {
				t.Errorf("fresh layout has %d empty cells", empty)
			}

			if !g.Connected(PlayerSpawn(g)) {
				t.Error("template is not connected from spawn")
			}
		})
	}
}

func TestBuildLayoutUnknownLevel(t *testing.T) {
	for _, level := range []int{-1, LevelCount, 99} {
		if _, err := BuildLayout(level, nil); !errors.Is(err, ErrUnknownLevel) {
			t.Errorf("BuildLayout(%d) error = %v, expected ErrUnknownLevel", level, err)
		}
	}
	if LevelName(42) != "Unknown" {
		t.Errorf("LevelName(42) = %q", LevelName(42))
	}
}

func TestBuildLayoutSkipsWalledPellet(t *testing.T) {
	g, err := BuildLayout(LevelProcedural, []Point{{2, 2}})
	if err != nil {
		t.Fatal(err)
	}
	if !g.IsWall(Point{2, 2}) {
		t.Error("procedural wall over pellet cell should win")
	}
	if got := g.Count(TilePellet); got != 3 {
		t.Errorf("pellet count = %d, expected 3", got)
	}
}

func TestPlayerSpawnAvoidsWalls(t *testing.T) {
	g, err := BuildLayout(LevelCross, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !g.IsWall(playerSpawn) {
		t.Fatal("Cross template should wall the nominal spawn")
	}
	spawn := PlayerSpawn(g)
	if spawn != (Point{6, 7}) {
		t.Errorf("PlayerSpawn() = %v, expected (6,7)", spawn)
	}

	g, _ = BuildLayout(LevelCorridors, nil)
	if spawn := PlayerSpawn(g); spawn != (Point{7, 8}) {
		t.Errorf("PlayerSpawn() on open centre = %v, expected (7,8)", spawn)
	}
}

func TestCollectAt(t *testing.T) {
	g, _ := BuildLayout(LevelCorridors, nil)
	dot := Point{7, 8}
	pellet := Point{2, 2}
	wall := Point{0, 0}

	if got := g.CollectAt(dot); got != CollectDot {
		t.Errorf("CollectAt(dot) = %v, expected CollectDot", got)
	}
	if got := g.CollectAt(dot); got != CollectNone {
		t.Errorf("second CollectAt(dot) = %v, expected CollectNone", got)
	}
	if g.At(dot) != TileEmpty {
		t.Errorf("collected dot cell = %v, expected empty", g.At(dot))
	}
	if got := g.CollectAt(pellet); got != CollectPellet {
		t.Errorf("CollectAt(pellet) = %v, expected CollectPellet", got)
	}
	if got := g.CollectAt(wall); got != CollectNone || !g.IsWall(wall) {
		t.Errorf("CollectAt(wall) = %v, wall must stay", got)
	}
}

func TestGridOutOfBoundsPanics(t *testing.T) {
	g := NewGrid(Rows, Cols)
	for _, p := range []Point{{-1, 0}, {0, -1}, {Cols, 0}, {0, Rows}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("At(%v) should panic", p)
				}
			}()
			g.At(p)
		}()
	}
	if g.IsOpen(Point{-1, 3}) {
		t.Error("IsOpen outside the grid should be false")
	}
}

func TestConnectedDetectsPocket(t *testing.T) {
	g := NewGrid(Rows, Cols)
	if !g.Connected(playerSpawn) {
		t.Fatal("open grid should be connected")
	}

	// wall in a single cell at (3,3)
	for _, p := range []Point{{2, 3}, {4, 3}, {3, 2}, {3, 4}} {
		g.Set(p, TileWall)
	}
	if g.Connected(playerSpawn) {
		t.Error("enclosed pocket should break connectivity")
	}
	if g.Connected(Point{0, 0}) {
		t.Error("flood fill from a wall should report false")
	}
}

func TestNearestOpen(t *testing.T) {
	g := NewGrid(5, 5)
	g.Set(Point{2, 2}, TileWall)
	got := g.NearestOpen(Point{2, 2})
	if got == (Point{2, 2}) || g.IsWall(got) {
		t.Errorf("NearestOpen returned %v", got)
	}
	if d := got.Manhattan(Point{2, 2}); d > 2 {
		t.Errorf("NearestOpen too far: %v", got)
	}
	if got := g.NearestOpen(Point{1, 1}); got != (Point{1, 1}) {
		t.Errorf("NearestOpen of open cell = %v", got)
	}
}

func TestGridString(t *testing.T) {
	g, _ := BuildLayout(LevelCorridors, nil)
	lines := strings.Split(g.String(), "\n")
	if len(lines) != Rows {
		t.Fatalf("String() has %d lines, expected %d", len(lines), Rows)
	}
	if lines[0] != strings.Repeat("#", Cols) {
		t.Errorf("top border = %q", lines[0])
	}
	if lines[2][2] != 'o' {
		t.Errorf("pellet not drawn: %q", lines[2])
	}
	if lines[4][3] != '#' {
		t.Errorf("template wall not drawn: %q", lines[4])
	}
}

func TestTilesIsACopy(t *testing.T) {
	g, _ := BuildLayout(LevelCorridors, nil)
	tiles := g.Tiles()
	tiles[8][7] = TileWall
	if g.IsWall(Point{7, 8}) {
		t.Error("mutating Tiles() copy changed the grid")
	}
}

func TestDirectionFromDelta(t *testing.T) {
	tests := []struct {
		dx, dy int
		want   Direction
		ok     bool
	}{
		{0, -1, DirUp, true},
		{0, 1, DirDown, true},
		{-1, 0, DirLeft, true},
		{1, 0, DirRight, true},
		{0, 0, DirNone, false},
		{1, 1, DirNone, false},
		{2, 0, DirNone, false},
		{0, -3, DirNone, false},
	}
	for _, tc := range tests {
		got, ok := DirectionFromDelta(tc.dx, tc.dy)
		if got != tc.want || ok != tc.ok {
			t.Errorf("DirectionFromDelta(%d,%d) = %v,%v expected %v,%v", tc.dx, tc.dy, got, ok, tc.want, tc.ok)
		}
		if ok {
			dx, dy := got.Delta()
			if dx != tc.dx || dy != tc.dy {
				t.Errorf("%v.Delta() = %d,%d", got, dx, dy)
			}
			if got.Reverse().Reverse() != got {
				t.Errorf("%v reversed twice changed", got)
			}
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"corridors", LevelCorridors, false},
		{"Pillars", LevelPillars, false},
		{"CROSS", LevelCross, false},
		{"random", LevelProcedural, false},
		{"procedural", LevelProcedural, false},
		{"1", LevelCorridors, false},
		{" 4 ", LevelProcedural, false},
		{"0", 0, true},
		{"5", 0, true},
		{"spiral", 0, true},
	}
	for _, tc := range tests {
		got, err := ParseLevel(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrUnknownLevel) {
			t.Errorf("ParseLevel(%q) error %v is not ErrUnknownLevel", tc.in, err)
		}
		if err == nil && got != tc.want {
			t.Errorf("ParseLevel(%q) = %d, expected %d", tc.in, got, tc.want)
		}
	}
}
