package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/games/pacman"
	"github.com/vovakirdan/tui-pacman/internal/registry"
	"github.com/vovakirdan/tui-pacman/internal/storage"
)

// Publisher receives every snapshot the model produces, e.g. a feed hub.
type Publisher interface {
	Publish(s pacman.Snapshot)
}

// Optional game capabilities the platform wires when present.
type (
	persistable interface {
		SetPersistence(pacman.PersistenceStore)
	}
	loggable interface {
		SetLogger(*log.Logger)
	}
	snapshotter interface {
		Snapshot() pacman.Snapshot
	}
	finisher interface {
		Finish()
	}
)

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithLight dims the palette according to an ambient light sensor.
// Ignored when the stored settings turn ambient theming off.
func WithLight(src pacman.AmbientLightSource) ModelOption {
	return func(m *Model) { m.light = src }
}

// WithPublisher forwards each snapshot to p.
func WithPublisher(p Publisher) ModelOption {
	return func(m *Model) { m.feed = p }
}

// WithLogger routes game logs to l.
func WithLogger(l *log.Logger) ModelOption {
	return func(m *Model) { m.logger = l }
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	help       help.Model
	theme      Theme
	light      pacman.AmbientLightSource
	feed       Publisher
	logger     *log.Logger
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
// When store is non-nil the game's scores and settings go through it.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		help:       plainHelp(cfg.ScreenW),
		theme:      GetTheme(),
	}
	for _, opt := range opts {
		opt(&m)
	}

	if l, ok := game.(loggable); ok && m.logger != nil {
		l.SetLogger(m.logger)
	}
	if store != nil {
		if p, ok := game.(persistable); ok {
			p.SetPersistence(store.Keeper(game.ID()))
		}
		if st, err := store.LoadSettings(); err == nil {
			m.theme = ThemeByName(st.Theme)
			if !st.AmbientTheme {
				m.light = nil
			}
		}
	}

	// Start the game here: Init has a value receiver
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.game.TickInterval())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.finish()
		m.quitting = true
		return m, tea.Quit
	}

	// Back to the menu (B or Esc) only while paused or after game over
	if m.inputFrame.Has(core.ActionBack) {
		m.inputFrame.Clear()
		if m.gameState.Paused || m.gameState.GameOver {
			m.finish()
			m.backToMenu = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// handleResize processes window resize events.
// The maze has a fixed size, so the run continues.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.feed != nil {
		if s, ok := m.game.(snapshotter); ok {
			m.feed.Publish(s.Snapshot())
		}
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.game.TickInterval())
}

// finish persists the running session.
func (m Model) finish() {
	if f, ok := m.game.(finisher); ok {
		f.Finish()
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".pacman", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.gameState.Paused && m.screen.Height() > 0 {
		m.screen.DrawTextCentered(m.screen.Height()-1, m.help.View(m.keyMapper.Game))
	}
	return RenderScreen(m.screen, PaletteFor(m.theme, m.light))
}

// plainHelp returns a help bar without ANSI styling, so it can be drawn
// into the screen buffer.
func plainHelp(width int) help.Model {
	h := help.New()
	h.Styles = help.Styles{}
	h.Width = width
	return h
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// State returns the state after the latest tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program for one game.
// Returns true if the user asked to go back to the menu rather than quit.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) (backToMenu bool, err error) {
	model := NewModel(game, store, cfg, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(Model)
	return ok && m.BackToMenu(), nil
}
