package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/games/pacman"
	"github.com/vovakirdan/tui-pacman/internal/storage"
)

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

type recorder struct {
	snaps []pacman.Snapshot
}

func (r *recorder) Publish(s pacman.Snapshot) { r.snaps = append(r.snaps, s) }

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func tick() TickMsg { return TickMsg(time.Now()) }

func TestModelTickStepsGame(t *testing.T) {
	feed := &recorder{}
	m := NewModel(pacman.New(), nil, testConfig(), WithPublisher(feed))
	if m.Init() == nil {
		t.Fatal("Init should start the tick loop")
	}

	m, cmd := update(t, m, tick())
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if m.State().Score != 1 {
		t.Errorf("score = %d after first tick, expected 1", m.State().Score)
	}
	if len(feed.snaps) != 1 || feed.snaps[0].Tick != 1 {
		t.Errorf("published %d snapshots", len(feed.snaps))
	}

	if !strings.Contains(m.View(), "Score: 1") {
		t.Error("view should show the HUD")
	}
}

func TestModelKeysReachGame(t *testing.T) {
	g := pacman.New()
	m := NewModel(g, nil, testConfig())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = update(t, m, tick())
	if got := g.Snapshot().Player; got != (pacman.Point{X: 8, Y: 8}) {
		t.Errorf("player at %v, expected (8,8)", got)
	}

	// Input is consumed by one tick
	if len(m.inputFrame.Actions) != 0 {
		t.Errorf("input frame not cleared: %v", m.inputFrame.Actions)
	}
}

func TestModelResizeKeepsRun(t *testing.T) {
	m := NewModel(pacman.New(), nil, testConfig())
	m, _ = update(t, m, tick())
	m, _ = update(t, m, tick())
	before := m.State().Score

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if m.game.State().Score != before {
		t.Errorf("resize reset the run: score %d -> %d", before, m.game.State().Score)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 40 {
		t.Errorf("screen not resized: %dx%d", m.screen.Width(), m.screen.Height())
	}
}

func TestModelBackOnlyWhenPaused(t *testing.T) {
	m := NewModel(pacman.New(), nil, testConfig())

	m, _ = update(t, m, runeKey('b'))
	if m.BackToMenu() {
		t.Fatal("back should be ignored while playing")
	}

	m, _ = update(t, m, runeKey('p'))
	m, _ = update(t, m, tick())
	if !m.State().Paused {
		t.Fatal("expected pause")
	}
	m, _ = update(t, m, runeKey('b'))
	if !m.BackToMenu() {
		t.Error("back should work while paused")
	}
	if _, cmd := update(t, m, tick()); cmd != nil {
		t.Error("ticks should stop after leaving the game")
	}
}

func TestModelQuitSavesRun(t *testing.T) {
	store := openStore(t)
	m := NewModel(pacman.New(), store, testConfig())
	m, _ = update(t, m, tick())

	m, cmd := update(t, m, runeKey('q'))
	if !m.IsQuitting() || cmd == nil {
		t.Fatal("q should quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quit")
	}

	high, err := store.HighScore("pacman")
	if err != nil || high != 1 {
		t.Errorf("HighScore() = %d, %v; expected the run to be saved", high, err)
	}
}

func TestModelUsesStoredTheme(t *testing.T) {
	store := openStore(t)
	if err := store.SaveSettings(pacman.Settings{Theme: "light", Difficulty: "normal"}); err != nil {
		t.Fatal(err)
	}

	m := NewModel(pacman.New(), store, testConfig(), WithLight(fixedLux(10)))
	if m.theme.Name != "light" {
		t.Errorf("theme = %q, expected light", m.theme.Name)
	}
	if m.light != nil {
		t.Error("ambient theming is off, sensor should be ignored")
	}

	if err := store.ApplySetting(storage.KeyAmbientTheme, "true"); err != nil {
		t.Fatal(err)
	}
	m = NewModel(pacman.New(), store, testConfig(), WithLight(fixedLux(10)))
	if m.light == nil {
		t.Error("ambient theming is on, sensor should be kept")
	}
}

func TestModelPausedViewShowsKeys(t *testing.T) {
	m := NewModel(pacman.New(), nil, testConfig())
	if strings.Contains(m.View(), "new maze") {
		t.Error("key help should only show while paused")
	}

	m, _ = update(t, m, runeKey('p'))
	m, _ = update(t, m, tick())
	view := m.View()
	for _, want := range []string{"pause", "restart", "new maze", "quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("paused view missing %q", want)
		}
	}
}
