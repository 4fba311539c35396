package core

import (
	"testing"
	"time"
)

func TestKeymapIntent(t *testing.T) {
	km := DefaultKeymap("f")

	f := NewInputFrame()
	f.Push(KeyDown("space"))
	f.Push(KeyDown("f"))
	f.SetHeld("s", true)

	in := km.Intent(f)
	if !in.Jump {
		t.Error("space should map to jump")
	}
	if !in.Interact {
		t.Error("rebound key f should map to interact")
	}
	if in.Slide {
		t.Error("held key without a key-down is not a press")
	}
	if !in.SlideHeld {
		t.Error("held s should report slide held")
	}
}

func TestKeymapRebind(t *testing.T) {
	km := DefaultKeymap("")
	if !km.Is(DefaultActionKey, ActionInteract) {
		t.Fatalf("default interact key should be %q", DefaultActionKey)
	}

	km.Rebind(ActionInteract, "x")
	if km.Is(DefaultActionKey, ActionInteract) {
		t.Error("old binding should be gone after Rebind")
	}
	if got := km.Keys(ActionInteract); len(got) != 1 || got[0] != "x" {
		t.Errorf("Keys(Interact) = %v, expected [x]", got)
	}
}

func TestKeyDownText(t *testing.T) {
	tests := []struct {
		key, text string
	}{
		{"a", "a"},
		{"space", " "},
		{"enter", ""},
		{"ctrl+c", ""},
	}
	for _, tc := range tests {
		if got := KeyDown(tc.key).Text; got != tc.text {
			t.Errorf("KeyDown(%q).Text = %q, expected %q", tc.key, got, tc.text)
		}
	}
}

func TestInputFrameClearKeepsHeld(t *testing.T) {
	f := NewInputFrame()
	f.Push(Event{Kind: EventQuit})
	f.SetHeld("down", true)

	if !f.HasQuit() {
		t.Fatal("HasQuit should see the quit event")
	}
	f.Clear()
	if f.HasQuit() || len(f.Events) != 0 {
		t.Error("Clear should drop events")
	}
	if !f.IsHeld("down") {
		t.Error("Clear should keep held keys")
	}
}

func TestNewTickNormalizesDelta(t *testing.T) {
	start := time.Unix(100, 0)

	tick := NewTick(start, start.Add(time.Second/30), 60)
	if tick.Delta < 1.99 || tick.Delta > 2.01 {
		t.Errorf("half-rate frame delta = %v, expected 2", tick.Delta)
	}

	stalled := NewTick(start, start.Add(time.Second), 60)
	if stalled.Delta != 4 {
		t.Errorf("stalled frame delta = %v, expected clamp to 4", stalled.Delta)
	}

	first := NewTick(time.Time{}, start, 60)
	if first.Delta != 1 {
		t.Errorf("first frame delta = %v, expected 1", first.Delta)
	}
}

func TestKeymapReserved(t *testing.T) {
	km := DefaultKeymap("f")
	for _, key := range []string{"p", "space", "w", "s", "enter", "esc", "ctrl+c", "tab", "backspace", ""} {
		if !km.Reserved(key) {
			t.Errorf("Reserved(%q) = false, expected true", key)
		}
	}
	for _, key := range []string{"f", "e", "x"} {
		if km.Reserved(key) {
			t.Errorf("Reserved(%q) = true, expected false", key)
		}
	}
}
