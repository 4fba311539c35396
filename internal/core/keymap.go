package core

// Action represents a semantic action, abstracted from physical key presses.
type Action int

const (
	ActionNone     Action = iota
	ActionUp              // Up arrow - menu navigation
	ActionDown            // Down arrow - menu navigation
	ActionJump            // Up, W, Space - jump
	ActionSlide           // Down, S - slide
	ActionInteract        // Rebindable action key - pick up, place, recycle
	ActionConfirm         // Enter - confirm selection in menu
	ActionBack            // Escape - go back
	ActionPause           // P - pause/unpause game
	ActionQuit            // Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionJump:
		return "Jump"
	case ActionSlide:
		return "Slide"
	case ActionInteract:
		return "Interact"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// DefaultActionKey is the interact binding used when settings carry none.
const DefaultActionKey = "e"

// Keymap resolves raw key identifiers to actions. Only the interact key
// is rebindable at runtime; the rest are fixed.
type Keymap struct {
	bindings map[Action][]string
}

// DefaultKeymap returns the standard bindings with the given interact key.
func DefaultKeymap(actionKey string) Keymap {
	if actionKey == "" {
		actionKey = DefaultActionKey
	}
	return Keymap{bindings: map[Action][]string{
		ActionUp:       {"up", "k"},
		ActionDown:     {"down", "j"},
		ActionJump:     {"up", "w", "space"},
		ActionSlide:    {"down", "s"},
		ActionInteract: {actionKey},
		ActionConfirm:  {"enter"},
		ActionBack:     {"esc"},
		ActionPause:    {"p"},
		ActionQuit:     {"ctrl+c"},
	}}
}

// Rebind replaces the keys bound to an action.
func (k *Keymap) Rebind(a Action, keys ...string) {
	if k.bindings == nil {
		k.bindings = make(map[Action][]string)
	}
	k.bindings[a] = append([]string(nil), keys...)
}

// Keys returns the keys bound to an action.
func (k Keymap) Keys(a Action) []string {
	return k.bindings[a]
}

// Is reports whether key is bound to action a.
func (k Keymap) Is(key string, a Action) bool {
	for _, b := range k.bindings[a] {
		if b == key {
			return true
		}
	}
	return false
}

// Reserved reports whether key cannot serve as the interact key: it is
// bound to a fixed action or used by text entry and focus.
func (k Keymap) Reserved(key string) bool {
	for a, keys := range k.bindings {
		if a == ActionInteract {
			continue
		}
		for _, b := range keys {
			if b == key {
				return true
			}
		}
	}
	return key == "" || key == "tab" || key == "backspace"
}

// Pressed reports whether any key bound to a went down this frame.
func (k Keymap) Pressed(f InputFrame, a Action) bool {
	for _, e := range f.Events {
		if e.Kind == EventKeyDown && k.Is(e.Key, a) {
			return true
		}
	}
	return false
}

// Released reports whether any key bound to a went up this frame.
func (k Keymap) Released(f InputFrame, a Action) bool {
	for _, e := range f.Events {
		if e.Kind == EventKeyUp && k.Is(e.Key, a) {
			return true
		}
	}
	return false
}

// Held reports whether any key bound to a is currently down.
func (k Keymap) Held(f InputFrame, a Action) bool {
	for _, key := range k.bindings[a] {
		if f.IsHeld(key) {
			return true
		}
	}
	return false
}

// Intent derives the gameplay intent for one frame.
func (k Keymap) Intent(f InputFrame) Intent {
	return Intent{
		Jump:      k.Pressed(f, ActionJump),
		Slide:     k.Pressed(f, ActionSlide),
		SlideHeld: k.Held(f, ActionSlide),
		SlideUp:   k.Released(f, ActionSlide),
		Interact:  k.Pressed(f, ActionInteract),
	}
}
