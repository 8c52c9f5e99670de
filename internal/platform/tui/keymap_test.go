package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/space-shooter/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"a", runeKey('a'), core.ActionLeft, false},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"d", runeKey('d'), core.ActionRight, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionFire, false},
		{"r", runeKey('r'), core.ActionRestart, false},
		{"q", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('x'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey() = (%v, %v), expected (%v, %v)", action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionQuit},
		{runeKey('z'), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestHeldKeysExpire(t *testing.T) {
	h := NewHeldKeys(3)
	h.Press(core.ActionFire)

	for tick := range 3 {
		frame := core.NewInputFrame()
		h.Apply(&frame)
		if !frame.Has(core.ActionFire) {
			t.Fatalf("tick %d: fire should still be held", tick)
		}
	}

	frame := core.NewInputFrame()
	h.Apply(&frame)
	if frame.Has(core.ActionFire) {
		t.Error("fire should be released after the hold expires")
	}
}

func TestHeldKeysRepeatExtends(t *testing.T) {
	h := NewHeldKeys(2)
	h.Press(core.ActionLeft)

	frame := core.NewInputFrame()
	h.Apply(&frame)
	h.Press(core.ActionLeft)

	for tick := range 2 {
		frame := core.NewInputFrame()
		h.Apply(&frame)
		if !frame.Has(core.ActionLeft) {
			t.Fatalf("tick %d: repeat should extend the hold", tick)
		}
	}
}

func TestHeldKeysOppositeDirection(t *testing.T) {
	h := NewHeldKeys(10)
	h.Press(core.ActionLeft)
	h.Press(core.ActionFire)
	h.Press(core.ActionRight)

	frame := core.NewInputFrame()
	h.Apply(&frame)
	if frame.Has(core.ActionLeft) {
		t.Error("pressing right should release left")
	}
	if !frame.Has(core.ActionRight) || !frame.Has(core.ActionFire) {
		t.Error("right and fire should both be held")
	}
}

func TestHeldKeysIgnoresEvents(t *testing.T) {
	h := NewHeldKeys(10)
	h.Press(core.ActionRestart)
	h.Press(core.ActionQuit)

	frame := core.NewInputFrame()
	h.Apply(&frame)
	if len(frame.Actions) != 0 {
		t.Errorf("event actions should not latch, got %v", frame.Actions)
	}
}

func TestHeldKeysRelease(t *testing.T) {
	h := NewHeldKeys(10)
	h.Press(core.ActionLeft)
	h.Release()

	frame := core.NewInputFrame()
	h.Apply(&frame)
	if frame.Has(core.ActionLeft) {
		t.Error("Release() should drop held actions")
	}
}

func TestHoldTicksFor(t *testing.T) {
	if got := HoldTicksFor(60); got != 15 {
		t.Errorf("HoldTicksFor(60) = %d, expected 15", got)
	}
	if got := HoldTicksFor(0); got != 1 {
		t.Errorf("HoldTicksFor(0) = %d, expected 1", got)
	}
}
