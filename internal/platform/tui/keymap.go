package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pacman/internal/core"
)

// GameKeyMap holds the in-game bindings.
type GameKeyMap struct {
	Up, Down, Left, Right key.Binding
	Pause                 key.Binding
	Restart               key.Binding
	Regenerate            key.Binding
	Confirm               key.Binding
	Back                  key.Binding
	Quit                  key.Binding
}

// DefaultGameKeyMap binds both WASD and the arrow keys.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Up:         key.NewBinding(key.WithKeys("w", "up"), key.WithHelp("w/↑", "up")),
		Down:       key.NewBinding(key.WithKeys("s", "down"), key.WithHelp("s/↓", "down")),
		Left:       key.NewBinding(key.WithKeys("a", "left"), key.WithHelp("a/←", "left")),
		Right:      key.NewBinding(key.WithKeys("d", "right"), key.WithHelp("d/→", "right")),
		Pause:      key.NewBinding(key.WithKeys("p", " "), key.WithHelp("p", "pause")),
		Restart:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Regenerate: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new maze")),
		Confirm:    key.NewBinding(key.WithKeys("enter")),
		Back:       key.NewBinding(key.WithKeys("b", "esc"), key.WithHelp("esc", "menu (paused)")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Restart, k.Regenerate, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		k.ShortHelp(),
	}
}

// MenuKeyMap holds the level picker bindings.
type MenuKeyMap struct {
	Up, Down   key.Binding
	Select     key.Binding
	Scoreboard key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// DefaultMenuKeyMap adds vim-style j/k to the arrows.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up:         key.NewBinding(key.WithKeys("w", "up", "k"), key.WithHelp("↑/↓", "navigate")),
		Down:       key.NewBinding(key.WithKeys("s", "down", "j")),
		Select:     key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "play")),
		Scoreboard: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "scores")),
		Back:       key.NewBinding(key.WithKeys("b", "esc")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Select, k.Scoreboard, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type actionBinding struct {
	binding key.Binding
	action  core.Action
}

// KeyMapper translates Bubble Tea key messages to platform actions.
type KeyMapper struct {
	Game GameKeyMap
	Menu MenuKeyMap

	actions []actionBinding
}

// NewKeyMapper creates a mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	return NewKeyMapperWith(DefaultGameKeyMap(), DefaultMenuKeyMap())
}

// NewKeyMapperWith creates a mapper with custom bindings.
func NewKeyMapperWith(game GameKeyMap, menu MenuKeyMap) *KeyMapper {
	return &KeyMapper{
		Game: game,
		Menu: menu,
		actions: []actionBinding{
			{game.Quit, core.ActionQuit},
			{game.Up, core.ActionUp},
			{game.Down, core.ActionDown},
			{game.Left, core.ActionLeft},
			{game.Right, core.ActionRight},
			{game.Pause, core.ActionPause},
			{game.Restart, core.ActionRestart},
			{game.Regenerate, core.ActionRegenerate},
			{game.Confirm, core.ActionConfirm},
			{game.Back, core.ActionBack},
		},
	}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	for _, ab := range km.actions {
		if key.Matches(msg, ab.binding) {
			return ab.action, ab.action == core.ActionQuit
		}
	}
	return core.ActionNone, false
}

// MapKeyToFrame records the key's action in frame.
// Returns true if the key was a quit request, which is never recorded.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone && !isQuit {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction is a level picker action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	k := km.Menu
	switch {
	case key.Matches(msg, k.Quit):
		return MenuActionQuit
	case key.Matches(msg, k.Up):
		return MenuActionUp
	case key.Matches(msg, k.Down):
		return MenuActionDown
	case key.Matches(msg, k.Select):
		return MenuActionSelect
	case key.Matches(msg, k.Back):
		return MenuActionBack
	case key.Matches(msg, k.Scoreboard):
		return MenuActionScoreboard
	}
	return MenuActionNone
}
