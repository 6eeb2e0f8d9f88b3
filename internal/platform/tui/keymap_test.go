package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/downhill-drift/internal/core"
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
		{"a", runeKey('a'), core.ActionLeft, false},
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"d", runeKey('d'), core.ActionRight, false},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionPush, false},
		{"down arrow", tea.KeyMsg{Type: tea.KeyDown}, core.ActionPush, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"c", runeKey('c'), core.ActionControls, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"r", runeKey('r'), core.ActionRestart, false},
		{"t", runeKey('t'), core.ActionTitle, false},
		{"q", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('z'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action {
				t.Errorf("action = %v, want %v", action, tt.action)
			}
			if quit != tt.quit {
				t.Errorf("quit = %v, want %v", quit, tt.quit)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if km.MapKeyToFrame(runeKey('a'), &frame) {
		t.Error("a should not quit")
	}
	if km.MapKeyToFrame(runeKey('z'), &frame) {
		t.Error("unbound key should not quit")
	}
	if !frame.Has(core.ActionLeft) {
		t.Error("frame should have Left")
	}
	if len(frame.Actions) != 1 {
		t.Errorf("frame has %d actions, want 1", len(frame.Actions))
	}
}

func TestHeldKeysExpire(t *testing.T) {
	h := NewHeldKeys(60)
	want := int(holdWindow * 60 / time.Second)

	h.Press(core.ActionPush)
	for i := 0; i < want; i++ {
		frame := core.NewInputFrame()
		h.Apply(&frame)
		if !frame.Has(core.ActionPush) {
			t.Fatalf("tick %d: push released early", i)
		}
	}

	frame := core.NewInputFrame()
	h.Apply(&frame)
	if frame.Has(core.ActionPush) {
		t.Error("push still held after the hold window")
	}
}

func TestHeldKeysOpposites(t *testing.T) {
	h := NewHeldKeys(60)
	h.Press(core.ActionLeft)
	h.Press(core.ActionPush)
	h.Press(core.ActionRight)

	frame := core.NewInputFrame()
	h.Apply(&frame)
	if frame.Has(core.ActionLeft) {
		t.Error("right should cancel left")
	}
	if !frame.Has(core.ActionRight) || !frame.Has(core.ActionPush) {
		t.Errorf("held = %v, want Right and Push", frame.Actions)
	}
}

func TestHeldKeysIgnoreOneShots(t *testing.T) {
	h := NewHeldKeys(60)
	h.Press(core.ActionConfirm)
	h.Press(core.ActionRestart)

	frame := core.NewInputFrame()
	h.Apply(&frame)
	if len(frame.Actions) != 0 {
		t.Errorf("one-shot actions were held: %v", frame.Actions)
	}
}

func TestHeldKeysRelease(t *testing.T) {
	h := NewHeldKeys(30)
	h.Press(core.ActionLeft)
	h.Release()

	frame := core.NewInputFrame()
	h.Apply(&frame)
	if frame.Has(core.ActionLeft) {
		t.Error("left held after release")
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
		{runeKey('h'), MenuActionLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, MenuActionRight},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey('q'), MenuActionQuit},
		{runeKey('x'), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}
