package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/space-shooter/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "left", "a", "h":
		return core.ActionLeft, false
	case "right", "d", "l":
		return core.ActionRight, false
	case " ", "up", "w", "k":
		return core.ActionFire, false
	case "r":
		return core.ActionRestart, false
	}

	return core.ActionNone, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}

// HeldKeys turns key press events into held actions.
// Terminals report presses and auto-repeats but never releases, so a press
// keeps its action active for a number of ticks and each repeat extends it.
type HeldKeys struct {
	holdTicks int
	remaining map[core.Action]int
}

// NewHeldKeys creates a latch holding each press for holdTicks ticks.
func NewHeldKeys(holdTicks int) *HeldKeys {
	return &HeldKeys{
		holdTicks: max(1, holdTicks),
		remaining: make(map[core.Action]int),
	}
}

// HoldTicksFor returns a hold long enough to bridge typical key-repeat gaps.
func HoldTicksFor(tickRate int) int {
	return max(1, tickRate/4)
}

// Press latches a held action. Pressing a direction releases the opposite one.
// Other actions are ignored.
func (h *HeldKeys) Press(a core.Action) {
	switch a {
	case core.ActionLeft:
		delete(h.remaining, core.ActionRight)
	case core.ActionRight:
		delete(h.remaining, core.ActionLeft)
	case core.ActionFire:
	default:
		return
	}
	h.remaining[a] = h.holdTicks
}

// Apply sets every latched action on frame and ages the latch by one tick.
func (h *HeldKeys) Apply(frame *core.InputFrame) {
	for a, n := range h.remaining {
		frame.Set(a)
		if n <= 1 {
			delete(h.remaining, a)
		} else {
			h.remaining[a] = n - 1
		}
	}
}

// Release drops every latched action.
func (h *HeldKeys) Release() {
	clear(h.remaining)
}
