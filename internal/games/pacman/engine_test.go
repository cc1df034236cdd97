package pacman

import (
	"context"
	"errors"
	"math/rand"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/tui-pacman/internal/config"
)

const step = 200 * time.Millisecond

// harness drives an engine with a virtual clock, one tick per step.
type harness struct {
	e   *Engine
	now time.Time
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	e, err := NewEngine(config.DefaultPacmanConfig(), append([]Option{WithSeed(1)}, opts...)...)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	h := &harness{e: e, now: time.Unix(1000, 0)}
	// anchor the clock so the first tick already advances game time
	e.started = true
	e.lastNow = h.now
	return h
}

func (h *harness) tick() Snapshot {
	h.now = h.now.Add(step)
	return h.e.Tick(h.now)
}

type memStore struct {
	high     int
	saved    []int
	settings Settings
	err      error
}

func (m *memStore) HighScore() (int, error) { return m.high, m.err }

func (m *memStore) SaveScore(score int) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, score)
	m.high = max(m.high, score)
	return nil
}

func (m *memStore) Settings() (Settings, error) { return m.settings, m.err }

func (m *memStore) SaveSettings(s Settings) error {
	m.settings = s
	return m.err
}

type runStore struct {
	memStore
	runs [][2]int
}

func (r *runStore) SaveRun(score, dots int) error {
	r.runs = append(r.runs, [2]int{score, dots})
	return nil
}

type chanSource chan Intent

func (c chanSource) Intents() <-chan Intent { return c }

// soloChaser replaces the ghost set with one chaser next to the spawn.
func soloChaser(e *Engine) *Ghost {
	g := &Ghost{Kind: Chaser, Pos: Point{8, 8}, Home: Point{1, 1}, Alive: true}
	e.ghosts = []*Ghost{g}
	return g
}

func TestThreeTicksRight(t *testing.T) {
	h := newHarness(t)
	if s := h.e.Snapshot(); s.Player != (Point{7, 8}) {
		t.Fatalf("spawn = %v, expected (7,8)", s.Player)
	}

	if !h.e.SetDirectionIntent(1, 0) {
		t.Fatal("SetDirectionIntent(1,0) rejected")
	}
	var s Snapshot
	for i := 0; i < 3; i++ {
		s = h.tick()
	}

	if s.Player != (Point{10, 8}) {
		t.Errorf("after 3 ticks player at %v, expected (10,8)", s.Player)
	}
	if s.Score != 3 {
		t.Errorf("score = %d, expected 3", s.Score)
	}
	if s.Tick != 3 {
		t.Errorf("tick = %d, expected 3", s.Tick)
	}
}

func TestPelletPowersUpAndStuns(t *testing.T) {
	h := newHarness(t)
	h.e.player.Pos = Point{2, 2}

	s := h.tick()
	if s.Score != 5 {
		t.Errorf("score = %d, expected pellet bonus 5", s.Score)
	}
	if !s.Powered || s.PowerLeft != 8*time.Second {
		t.Errorf("powered = %v left = %v, expected 8s of power", s.Powered, s.PowerLeft)
	}
	for _, g := range s.Ghosts {
		if !g.Stunned {
			t.Errorf("%v not stunned after power-up", g.Kind)
		}
		if g.Pos != homeCell(g.Kind) {
			t.Errorf("stunned %v moved to %v", g.Kind, g.Pos)
		}
	}
}

func TestPowerExpiresExactly(t *testing.T) {
	h := newHarness(t)
	h.e.ghosts = nil
	h.e.player.Pos = Point{2, 2}

	start := h.tick().Time
	expiry := start + 8*time.Second

	for {
		s := h.tick()
		if s.Time < expiry {
			if !s.Powered {
				t.Fatalf("power dropped early at %v", s.Time)
			}
			continue
		}
		if s.Powered {
			t.Errorf("still powered at expiry %v", s.Time)
		}
		if s.Time != expiry {
			t.Errorf("expiry observed at %v, expected %v", s.Time, expiry)
		}
		break
	}
}

func TestRepeatedPowerUpExtends(t *testing.T) {
	h := newHarness(t)
	h.e.ghosts = nil
	h.e.player.Pos = Point{2, 2}
	h.tick()

	for h.e.clock < 4200*time.Millisecond {
		h.tick()
	}
	h.e.powerUp()
	expiry := h.e.player.PowerExpiry

	for {
		s := h.tick()
		if s.Time < expiry && !s.Powered {
			t.Fatalf("power flipped off at %v before extended expiry %v", s.Time, expiry)
		}
		if s.Time >= expiry {
			if s.Powered {
				t.Errorf("powered after extended expiry")
			}
			break
		}
	}
}

func TestStunLastsHalfThePower(t *testing.T) {
	h := newHarness(t)
	h.e.player.Pos = Point{2, 2}
	start := h.tick().Time
	stunEnd := start + 4*time.Second

	for {
		s := h.tick()
		opp, _ := s.Ghost(Opportunist)
		if s.Time < stunEnd {
			if !opp.Stunned || opp.Pos != homeCell(Opportunist) {
				t.Fatalf("at %v opportunist stunned=%v pos=%v", s.Time, opp.Stunned, opp.Pos)
			}
			continue
		}
		if opp.Stunned {
			t.Error("stun should end at half the power duration")
		}
		if opp.Pos == homeCell(Opportunist) {
			t.Error("ghost should move on the tick the stun ends")
		}
		break
	}
}

func TestCaptureAndRespawn(t *testing.T) {
	h := newHarness(t)
	soloChaser(h.e)
	h.e.player.Powered = true
	h.e.player.PowerExpiry = time.Hour

	s := h.tick()
	g, _ := s.Ghost(Chaser)
	if g.Alive {
		t.Fatal("chaser should be captured on the player's cell")
	}
	if s.Score != 1+10 {
		t.Errorf("score = %d, expected dot + capture = 11", s.Score)
	}
	if s.GameOver {
		t.Fatal("powered collision must not end the game")
	}
	respawnAt := s.Time + 3*time.Second

	for {
		s = h.tick()
		g, _ = s.Ghost(Chaser)
		if s.Time < respawnAt {
			if g.Alive {
				t.Fatalf("respawned early at %v", s.Time)
			}
			continue
		}
		if !g.Alive || g.Pos != (Point{1, 1}) || g.Dir != DirNone || g.Stunned {
			t.Errorf("after respawn: %+v, expected alive at home with no direction", g)
		}
		break
	}
}

func TestGameOverThenAutoReset(t *testing.T) {
	store := &memStore{high: 50}
	h := newHarness(t, WithStore(store))
	soloChaser(h.e)

	s := h.tick()
	if !s.GameOver {
		t.Fatal("unpowered collision should end the game")
	}
	if s.Score != 1 {
		t.Fatalf("score = %d, expected 1", s.Score)
	}
	resetAt := s.Time + time.Second

	for {
		s = h.tick()
		if s.Time < resetAt {
			if !s.GameOver || s.Tick != 1 || s.Score != 1 {
				t.Fatalf("simulation ran during game over: %+v", s)
			}
			continue
		}
		break
	}

	if s.GameOver || s.Score != 0 || s.Tick != 0 {
		t.Errorf("after reset: gameOver=%v score=%d tick=%d", s.GameOver, s.Score, s.Tick)
	}
	if s.Player != (Point{7, 8}) || len(s.Ghosts) != 3 {
		t.Errorf("actors not respawned: player %v ghosts %d", s.Player, len(s.Ghosts))
	}
	if !reflect.DeepEqual(store.saved, []int{1}) {
		t.Errorf("saved scores = %v, expected [1]", store.saved)
	}
	if s.HighScore != 50 || h.e.HighScore() != 50 {
		t.Errorf("high score = %d, must never decrease from 50", s.HighScore)
	}
}

func TestResetDiscardsStaleTimers(t *testing.T) {
	h := newHarness(t)
	soloChaser(h.e)
	h.e.player.Powered = true
	h.e.player.PowerExpiry = time.Hour
	s := h.tick()
	respawnAt := s.Time + 3*time.Second

	if err := h.e.Reset(LevelCorridors); err != nil {
		t.Fatal(err)
	}
	for _, g := range h.e.ghosts {
		g.StunnedUntil = time.Hour
	}
	parked := h.e.ghosts[0]
	parked.Pos = Point{5, 6}
	parked.Dir = DirLeft

	for h.e.clock <= respawnAt {
		h.tick()
	}
	if parked.Pos != (Point{5, 6}) || parked.Dir != DirLeft {
		t.Errorf("stale respawn fired: ghost at %v dir %v", parked.Pos, parked.Dir)
	}
	if h.e.player.Powered {
		t.Error("reset should clear power")
	}
}

func TestPauseFreezesAndResumeCountsDown(t *testing.T) {
	h := newHarness(t)
	h.e.SetDirectionIntent(1, 0)
	before := h.tick()

	h.e.Pause()
	for i := 0; i < 5; i++ {
		s := h.tick()
		if !s.Paused || s.Player != before.Player || s.Time != before.Time || s.Tick != before.Tick {
			t.Fatalf("state changed while paused: %+v", s)
		}
	}

	// Intent written during the pause survives it
	h.e.SetDirectionIntent(0, 1)
	h.e.Resume()

	countdown := 0
	for {
		s := h.tick()
		countdown++
		if !s.Paused {
			break
		}
		if s.ResumeIn <= 0 {
			t.Fatalf("paused without countdown after %d ticks", countdown)
		}
		if countdown > 20 {
			t.Fatal("resume countdown never finished")
		}
	}
	if countdown != 15 {
		t.Errorf("countdown took %d ticks, expected 15 (3s)", countdown)
	}

	s := h.tick()
	if s.Player != (Point{before.Player.X, before.Player.Y + 1}) {
		t.Errorf("player at %v, expected the queued down turn from %v", s.Player, before.Player)
	}
	if s.Time != before.Time+step {
		t.Errorf("game time %v, expected %v: pause must not advance it", s.Time, before.Time+step)
	}
}

func TestResetCancelsResumeCountdown(t *testing.T) {
	h := newHarness(t)
	h.e.Pause()
	h.e.Resume()
	h.tick()

	if err := h.e.Reset(LevelPillars); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 30; i++ {
		s := h.tick()
		if !s.Paused || s.ResumeIn != 0 {
			t.Fatalf("reset should cancel the countdown, got paused=%v resumeIn=%v", s.Paused, s.ResumeIn)
		}
	}
}

func TestSetDirectionIntentValidation(t *testing.T) {
	h := newHarness(t)
	if !h.e.SetDirectionIntent(1, 0) {
		t.Fatal("valid intent rejected")
	}
	for _, d := range [][2]int{{0, 0}, {1, 1}, {-1, 1}, {2, 0}, {0, -2}} {
		if h.e.SetDirectionIntent(d[0], d[1]) {
			t.Errorf("SetDirectionIntent(%d,%d) accepted", d[0], d[1])
		}
	}
	if got := Direction(h.e.intent.Load()); got != DirRight {
		t.Errorf("invalid intents overwrote the pending one: %v", got)
	}
}

func TestConcurrentIntents(t *testing.T) {
	h := newHarness(t)
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if (i+j)%2 == 0 {
					h.e.SetDirectionIntent(0, 1)
				} else {
					h.e.SetDirectionIntent(-1, 0)
				}
			}
		}(i)
	}
	for i := 0; i < 20; i++ {
		h.tick()
	}
	wg.Wait()
}

func TestListen(t *testing.T) {
	h := newHarness(t)
	src := make(chanSource, 3)
	src <- Intent{DX: 0, DY: 1}
	src <- Intent{DX: 3, DY: 3}
	close(src)

	if err := h.e.Listen(context.Background(), src); err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	if got := Direction(h.e.intent.Load()); got != DirDown {
		t.Errorf("intent = %v, expected down", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := h.e.Listen(ctx, make(chanSource)); !errors.Is(err, context.Canceled) {
		t.Errorf("Listen() on cancelled ctx = %v", err)
	}
}

func TestSelectLevel(t *testing.T) {
	store := &memStore{}
	h := newHarness(t, WithStore(store))
	h.e.SetDirectionIntent(1, 0)
	h.tick()
	h.tick()

	if err := h.e.SelectLevel(7); !errors.Is(err, ErrUnknownLevel) {
		t.Fatalf("SelectLevel(7) error = %v", err)
	}
	if h.e.Level() != LevelCorridors || h.e.Score() != 2 {
		t.Error("failed SelectLevel must not touch the run")
	}

	if err := h.e.SelectLevel(LevelCross); err != nil {
		t.Fatal(err)
	}
	s := h.e.Snapshot()
	if s.Level != LevelCross || s.LevelName != "Cross" || s.Score != 0 {
		t.Errorf("after SelectLevel: level=%d name=%q score=%d", s.Level, s.LevelName, s.Score)
	}
	if s.Player != (Point{6, 7}) {
		t.Errorf("spawn on Cross = %v, expected (6,7)", s.Player)
	}
	if !reflect.DeepEqual(store.saved, []int{2}) {
		t.Errorf("saved = %v, expected the abandoned run's score", store.saved)
	}
}

func TestProceduralLayoutPersistsUntilRegenerated(t *testing.T) {
	h := newHarness(t)
	h.e.SetDirectionIntent(1, 0)
	h.tick()

	if err := h.e.RegenerateProceduralLayout(); err != nil {
		t.Fatal(err)
	}
	if h.e.Level() != LevelCorridors || h.e.Score() != 1 {
		t.Error("regenerating off the random level must not reset the run")
	}

	if err := h.e.SelectLevel(LevelProcedural); err != nil {
		t.Fatal(err)
	}
	first := h.e.grid.Tiles()

	_ = h.e.SelectLevel(LevelCorridors)
	_ = h.e.SelectLevel(LevelProcedural)
	if !reflect.DeepEqual(first, h.e.grid.Tiles()) {
		t.Error("procedural layout changed without regeneration")
	}

	if err := h.e.RegenerateProceduralLayout(); err != nil {
		t.Fatal(err)
	}
	if h.e.Level() != LevelProcedural {
		t.Errorf("level = %d after regenerate", h.e.Level())
	}
	if reflect.DeepEqual(first, h.e.grid.Tiles()) {
		t.Error("regenerate on the random level should rebuild it")
	}
	if !h.e.grid.Connected(h.e.player.Pos) {
		t.Error("regenerated layout not connected")
	}
}

func TestInvariantsUnderRandomPlay(t *testing.T) {
	for level := 0; level < LevelCount; level++ {
		h := newHarness(t, WithLevel(level), WithSeed(int64(level)+10))
		rng := rand.New(rand.NewSource(99))
		dirs := []Direction{DirUp, DirDown, DirLeft, DirRight}
		prev := h.e.Snapshot()

		for i := 0; i < 800; i++ {
			if i%3 == 0 {
				dx, dy := dirs[rng.Intn(len(dirs))].Delta()
				h.e.SetDirectionIntent(dx, dy)
			}
			s := h.tick()

			if h.e.grid.IsWall(s.Player) {
				t.Fatalf("level %d tick %d: player on wall %v", level, i, s.Player)
			}
			for _, g := range s.Ghosts {
				if g.Alive && h.e.grid.IsWall(g.Pos) {
					t.Fatalf("level %d tick %d: %v on wall %v", level, i, g.Kind, g.Pos)
				}
			}
			if s.Tick > prev.Tick && s.Score < prev.Score {
				t.Fatalf("level %d tick %d: score dropped %d -> %d", level, i, prev.Score, s.Score)
			}
			if s.HighScore < prev.HighScore {
				t.Fatalf("level %d tick %d: high score dropped", level, i)
			}
			prev = s
		}
	}
}

func TestDeterminism(t *testing.T) {
	run := func() []Snapshot {
		h := newHarness(t, WithLevel(LevelProcedural), WithSeed(2024))
		rng := rand.New(rand.NewSource(5))
		out := make([]Snapshot, 0, 300)
		for i := 0; i < 300; i++ {
			if i%4 == 0 {
				h.e.SetDirectionIntent([]int{-1, 1}[rng.Intn(2)], 0)
			}
			out = append(out, h.tick())
		}
		return out
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed and inputs produced different runs")
	}
}

func TestPersistence(t *testing.T) {
	t.Run("run recorder gets dots", func(t *testing.T) {
		store := &runStore{}
		h := newHarness(t, WithStore(store))
		h.e.SetDirectionIntent(1, 0)
		for i := 0; i < 3; i++ {
			h.tick()
		}
		h.e.Finish()
		h.e.Finish()
		if !reflect.DeepEqual(store.runs, [][2]int{{3, 3}}) {
			t.Errorf("runs = %v, expected one run of 3 points / 3 dots", store.runs)
		}
		if len(store.saved) != 0 {
			t.Errorf("SaveScore should not be used when SaveRun exists: %v", store.saved)
		}
	})

	t.Run("zero score is not saved", func(t *testing.T) {
		store := &memStore{}
		h := newHarness(t, WithStore(store))
		if err := h.e.Reset(LevelCorridors); err != nil {
			t.Fatal(err)
		}
		if len(store.saved) != 0 {
			t.Errorf("saved = %v", store.saved)
		}
	})

	t.Run("store errors do not stop play", func(t *testing.T) {
		store := &memStore{err: errors.New("disk full")}
		h := newHarness(t, WithStore(store))
		h.e.SetDirectionIntent(1, 0)
		h.tick()
		if err := h.e.Reset(LevelCorridors); err != nil {
			t.Fatalf("Reset() error = %v", err)
		}
		if s := h.tick(); s.GameOver {
			t.Error("unexpected game over")
		}
	})
}

func TestWithStrategyOverride(t *testing.T) {
	calls := 0
	corner := StrategyFunc(func(*Ghost, View) (Point, bool) {
		calls++
		return Point{1, 1}, true
	})
	h := newHarness(t, WithStrategy(Ambusher, corner))
	for i := 0; i < 5; i++ {
		h.tick()
	}
	if calls != 5 {
		t.Errorf("override called %d times, expected 5", calls)
	}
}

func TestTickIgnoresClockGoingBackwards(t *testing.T) {
	h := newHarness(t)
	h.tick()
	before := h.e.clock
	h.e.Tick(h.now.Add(-time.Minute))
	if h.e.clock != before {
		t.Errorf("clock moved backwards: %v -> %v", before, h.e.clock)
	}
}

func TestNewEngineRejectsUnknownLevel(t *testing.T) {
	if _, err := NewEngine(config.DefaultPacmanConfig(), WithLevel(-1)); !errors.Is(err, ErrUnknownLevel) {
		t.Errorf("NewEngine(level -1) error = %v", err)
	}
}

func TestMazeMatchesGrid(t *testing.T) {
	h := newHarness(t, WithLevel(LevelProcedural), WithSeed(5))
	maze := h.e.Maze()
	if maze != h.e.grid.String() {
		t.Error("Maze() should render the current grid")
	}
	if lines := strings.Split(maze, "\n"); len(lines) != Rows || len(lines[0]) != Cols {
		t.Errorf("maze is %d lines of %d", len(lines), len(lines[0]))
	}
}
