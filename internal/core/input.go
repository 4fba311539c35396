package core

// EventKind identifies a discrete input event.
type EventKind int

const (
	EventQuit EventKind = iota
	EventPointerMove
	EventPointerDown
	EventPointerUp
	EventKeyDown
	EventKeyUp
)

// Event is one discrete input event polled during a frame.
type Event struct {
	Kind EventKind
	X, Y int    // Pointer position in cells (pointer events)
	Key  string // Key identifier, e.g. "e", "space", "up" (key events)
	Text string // Printable text for the key, empty for control keys
}

// KeyDown builds a key-down event. Single printable characters carry
// themselves as text.
func KeyDown(key string) Event {
	e := Event{Kind: EventKeyDown, Key: key}
	if r := []rune(key); len(r) == 1 && r[0] >= ' ' {
		e.Text = key
	} else if key == "space" {
		e.Text = " "
	}
	return e
}

// InputFrame is the batch of input polled once per frame.
// Events are dispatched in arrival order; nothing is carried into the next frame.
type InputFrame struct {
	Events []Event
	// held reports keys the platform knows to be down right now.
	held map[string]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{held: make(map[string]bool)}
}

// Push appends an event to the frame.
func (f *InputFrame) Push(e Event) {
	f.Events = append(f.Events, e)
}

// SetHeld records whether a key is currently down.
func (f *InputFrame) SetHeld(key string, down bool) {
	if f.held == nil {
		f.held = make(map[string]bool)
	}
	if down {
		f.held[key] = true
	} else {
		delete(f.held, key)
	}
}

// IsHeld reports whether the key is currently down.
func (f InputFrame) IsHeld(key string) bool {
	return f.held[key]
}

// HasQuit reports whether the frame contains a quit request.
func (f InputFrame) HasQuit() bool {
	for _, e := range f.Events {
		if e.Kind == EventQuit {
			return true
		}
	}
	return false
}

// Clear resets the frame for the next tick. Held keys are kept.
func (f *InputFrame) Clear() {
	f.Events = f.Events[:0]
}

// Intent is the per-frame player intent handed to the simulation.
type Intent struct {
	Jump      bool // Jump pressed this frame
	Slide     bool // Slide pressed this frame
	SlideHeld bool // Slide key is reported as held
	SlideUp   bool // Slide key released this frame
	Interact  bool // Action key pressed this frame
}
