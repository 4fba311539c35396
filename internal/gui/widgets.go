package gui

import "github.com/vovakirdan/recycle-runner/internal/core"

// Widgets is a scene's ordered widget map. Pointer hit tests and focus
// order follow insertion order.
type Widgets struct {
	keys  []string
	items map[string]Widget
	hover *Button
	focus int // index into focusables; -1 when nothing is focused
}

// NewWidgets creates an empty widget map.
func NewWidgets() *Widgets {
	return &Widgets{items: make(map[string]Widget), focus: -1}
}

// Put inserts or replaces a widget.
func (w *Widgets) Put(key string, widget Widget) {
	if _, ok := w.items[key]; !ok {
		w.keys = append(w.keys, key)
	}
	w.items[key] = widget
}

// Get returns the widget under key.
func (w *Widgets) Get(key string) (Widget, bool) {
	widget, ok := w.items[key]
	return widget, ok
}

// Button returns the button under key, or nil.
func (w *Widgets) Button(key string) *Button {
	b, _ := w.items[key].(*Button)
	return b
}

// Label returns the label under key, or nil.
func (w *Widgets) Label(key string) *Label {
	l, _ := w.items[key].(*Label)
	return l
}

// Field returns the text field under key, or nil.
func (w *Widgets) Field(key string) *TextField {
	f, _ := w.items[key].(*TextField)
	return f
}

// Len returns the number of widgets.
func (w *Widgets) Len() int {
	return len(w.keys)
}

// Clear drops every widget and any pointer or focus state.
func (w *Widgets) Clear() {
	w.keys = nil
	w.items = make(map[string]Widget)
	w.hover = nil
	w.focus = -1
}

// Draw renders widgets in insertion order.
func (w *Widgets) Draw(dst *core.Screen) {
	for _, k := range w.keys {
		w.items[k].Draw(dst)
	}
}

// focusables returns buttons and text fields in insertion order.
func (w *Widgets) focusables() []Widget {
	var out []Widget
	for _, k := range w.keys {
		switch w.items[k].(type) {
		case *Button, *TextField:
			out = append(out, w.items[k])
		}
	}
	return out
}

// PointerMove updates hover. The first button under the pointer wins;
// the previously hovered button is unhovered when the pointer leaves it.
func (w *Widgets) PointerMove(x, y int) {
	var next *Button
	for _, k := range w.keys {
		b, ok := w.items[k].(*Button)
		if ok && b.Bounds().Contains(float64(x), float64(y)) {
			next = b
			break
		}
	}
	if w.hover != nil && w.hover != next {
		w.hover.Unhover()
	}
	if next != nil {
		next.Hover()
	}
	w.hover = next
}

// PointerDown presses the hovered button.
func (w *Widgets) PointerDown() {
	if w.hover != nil {
		w.hover.Click()
	}
}

// PointerUp releases the hovered button and returns its command if the
// press started on it.
func (w *Widgets) PointerUp() Command {
	if w.hover == nil {
		return CmdNone
	}
	if w.hover.Unclick() {
		return w.hover.Command
	}
	return CmdNone
}

// FocusNext moves keyboard focus forward, wrapping.
func (w *Widgets) FocusNext() {
	w.moveFocus(1)
}

// FocusPrev moves keyboard focus back, wrapping.
func (w *Widgets) FocusPrev() {
	w.moveFocus(-1)
}

// FocusFirst focuses the first focusable widget.
func (w *Widgets) FocusFirst() {
	w.setFocus(0)
}

func (w *Widgets) moveFocus(step int) {
	n := len(w.focusables())
	if n == 0 {
		return
	}
	if w.focus < 0 {
		if step > 0 {
			w.setFocus(0)
		} else {
			w.setFocus(n - 1)
		}
		return
	}
	w.setFocus(((w.focus+step)%n + n) % n)
}

func (w *Widgets) setFocus(i int) {
	fs := w.focusables()
	for j, f := range fs {
		focused := j == i
		switch f := f.(type) {
		case *Button:
			f.focused = focused
		case *TextField:
			f.focused = focused
		}
	}
	if i >= 0 && i < len(fs) {
		w.focus = i
	} else {
		w.focus = -1
	}
}

// Focused returns the focused widget, or nil.
func (w *Widgets) Focused() Widget {
	fs := w.focusables()
	if w.focus < 0 || w.focus >= len(fs) {
		return nil
	}
	return fs[w.focus]
}

// Activate returns the command of the focused button.
func (w *Widgets) Activate() Command {
	if b, ok := w.Focused().(*Button); ok {
		return b.Command
	}
	return CmdNone
}
