package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/strafe/internal/core"
)

// Action is an arena command derived from a key press.
type Action int

const (
	ActionNone Action = iota
	ActionLeft
	ActionRight
	ActionUp
	ActionDown
	ActionFire
	ActionNextWeapon
	ActionDebug
	ActionRestart
	ActionQuit
)

// KeyMapper translates Bubble Tea key messages to arena actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) Action {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return ActionQuit
	case "a", "left", "h":
		return ActionLeft
	case "d", "right", "l":
		return ActionRight
	case "w", "up", "k":
		return ActionUp
	case "s", "down", "j":
		return ActionDown
	case " ", "space", "f":
		return ActionFire
	case "tab", "e":
		return ActionNextWeapon
	case "v":
		return ActionDebug
	case "r":
		return ActionRestart
	}
	return ActionNone
}

// KeyState turns discrete key presses into held keys. Terminals only report
// presses and auto-repeat, never releases, so a key counts as held for a
// window of ticks after its last press.
type KeyState struct {
	window                       int
	left, right, up, down, shoot int
}

// NewKeyState creates a key state with a hold window in ticks.
func NewKeyState(window int) *KeyState {
	if window < 1 {
		window = 1
	}
	return &KeyState{window: window}
}

// HoldWindow converts a hold duration in milliseconds to ticks.
func HoldWindow(tickRate, millis int) int {
	return max(1, tickRate*millis/1000)
}

// Press marks a key as held. A direction releases its opposite.
func (k *KeyState) Press(a Action) {
	switch a {
	case ActionLeft:
		k.left, k.right = k.window, 0
	case ActionRight:
		k.right, k.left = k.window, 0
	case ActionUp:
		k.up, k.down = k.window, 0
	case ActionDown:
		k.down, k.up = k.window, 0
	case ActionFire:
		k.shoot = k.window
	}
}

// Frame returns the keyboard half of an input frame for the current tick.
func (k *KeyState) Frame() core.InputFrame {
	return core.InputFrame{
		Left:  k.left > 0,
		Right: k.right > 0,
		Up:    k.up > 0,
		Down:  k.down > 0,
		Shoot: k.shoot > 0,
	}
}

// Decay ages every held key by one tick.
func (k *KeyState) Decay() {
	for _, v := range []*int{&k.left, &k.right, &k.up, &k.down, &k.shoot} {
		if *v > 0 {
			*v--
		}
	}
}

// Reset releases every key.
func (k *KeyState) Reset() {
	k.left, k.right, k.up, k.down, k.shoot = 0, 0, 0, 0, 0
}
