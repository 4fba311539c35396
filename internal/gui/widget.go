// Package gui implements the small widget set the scenes are built from:
// labels, buttons and a text field, kept in an ordered map that tracks
// pointer hover and keyboard focus.
package gui

import (
	"strings"

	"github.com/vovakirdan/recycle-runner/internal/core"
)

// Command is what activating a button asks the scene machine to do.
type Command int

const (
	CmdNone Command = iota
	CmdPlay
	CmdLeaderboard
	CmdSettings
	CmdExit
	CmdBack
	CmdRetry
	CmdSubmit
	CmdPause
	CmdResume
	CmdMenu
	CmdMusicDown
	CmdMusicUp
	CmdSFXDown
	CmdSFXUp
	CmdRebind
)

// String returns the command name used in logs.
func (c Command) String() string {
	switch c {
	case CmdNone:
		return "none"
	case CmdPlay:
		return "play"
	case CmdLeaderboard:
		return "leaderboard"
	case CmdSettings:
		return "settings"
	case CmdExit:
		return "exit"
	case CmdBack:
		return "back"
	case CmdRetry:
		return "retry"
	case CmdSubmit:
		return "submit"
	case CmdPause:
		return "pause"
	case CmdResume:
		return "resume"
	case CmdMenu:
		return "menu"
	case CmdMusicDown:
		return "music_down"
	case CmdMusicUp:
		return "music_up"
	case CmdSFXDown:
		return "sfx_down"
	case CmdSFXUp:
		return "sfx_up"
	case CmdRebind:
		return "rebind"
	default:
		return "unknown"
	}
}

// Widget is anything a scene draws in its widget map.
type Widget interface {
	Bounds() core.Rect
	SetPos(x, y int)
	Draw(dst *core.Screen)
}

// Label is static text with an opacity.
type Label struct {
	X, Y  int
	Text  string
	Color core.Color
	// Alpha is the opacity in [0, 255]. Below full opacity the label fades
	// along a gray ramp instead of using Color.
	Alpha float64
}

// NewLabel creates a fully opaque label.
func NewLabel(text string, color core.Color) *Label {
	return &Label{Text: text, Color: color, Alpha: 255}
}

// Bounds returns the text rectangle.
func (l *Label) Bounds() core.Rect {
	return core.NewRect(float64(l.X), float64(l.Y), float64(len([]rune(l.Text))), 1)
}

// SetPos moves the label.
func (l *Label) SetPos(x, y int) { l.X, l.Y = x, y }

// Draw renders the label at its opacity.
func (l *Label) Draw(dst *core.Screen) {
	if l.Alpha >= 255 {
		dst.DrawTextColored(l.X, l.Y, l.Text, l.Color)
		return
	}
	c, ok := core.FadeColor(l.Alpha)
	if !ok {
		return
	}
	dst.DrawTextColored(l.X, l.Y, l.Text, c)
}

// Button is a clickable label bound to a command.
type Button struct {
	X, Y    int
	Text    string
	Command Command

	hovered bool
	pressed bool
	focused bool
}

// NewButton creates a button.
func NewButton(text string, cmd Command) *Button {
	return &Button{Text: text, Command: cmd}
}

func (b *Button) face() string {
	if b.hovered || b.focused {
		return "> " + b.Text + " <"
	}
	return "[ " + b.Text + " ]"
}

// Bounds returns the clickable rectangle.
func (b *Button) Bounds() core.Rect {
	return core.NewRect(float64(b.X), float64(b.Y), float64(len([]rune(b.Text))+4), 1)
}

// SetPos moves the button.
func (b *Button) SetPos(x, y int) { b.X, b.Y = x, y }

// Hover marks the pointer as over the button.
func (b *Button) Hover() { b.hovered = true }

// Unhover clears hover and any press in progress.
func (b *Button) Unhover() {
	b.hovered = false
	b.pressed = false
}

// Click shows the pressed face.
func (b *Button) Click() { b.pressed = true }

// Unclick restores the face and reports whether a press was in progress.
func (b *Button) Unclick() bool {
	was := b.pressed
	b.pressed = false
	return was
}

// Hovered reports whether the pointer is over the button.
func (b *Button) Hovered() bool { return b.hovered }

// Pressed reports whether the button is held down.
func (b *Button) Pressed() bool { return b.pressed }

// Focused reports whether the button has keyboard focus.
func (b *Button) Focused() bool { return b.focused }

// Draw renders the button face.
func (b *Button) Draw(dst *core.Screen) {
	c := core.ColorDefault
	switch {
	case b.pressed:
		c = core.ColorBrightGreen
	case b.hovered || b.focused:
		c = core.ColorBrightYellow
	}
	dst.DrawTextColored(b.X, b.Y, b.face(), c)
}

// TextField is a single-line text input.
type TextField struct {
	X, Y  int
	Width int
	Max   int
	Value string

	focused bool
}

// NewTextField creates a field that holds at most max runes.
func NewTextField(width, max int) *TextField {
	return &TextField{Width: width, Max: max}
}

// Bounds returns the input rectangle.
func (t *TextField) Bounds() core.Rect {
	return core.NewRect(float64(t.X), float64(t.Y), float64(t.Width+2), 1)
}

// SetPos moves the field.
func (t *TextField) SetPos(x, y int) { t.X, t.Y = x, y }

// Type appends printable text up to the limit.
func (t *TextField) Type(text string) {
	for _, r := range text {
		if r < ' ' || r == 0x7f {
			continue
		}
		if t.Max > 0 && len([]rune(t.Value)) >= t.Max {
			return
		}
		t.Value += string(r)
	}
}

// Backspace removes the last rune.
func (t *TextField) Backspace() {
	r := []rune(t.Value)
	if len(r) > 0 {
		t.Value = string(r[:len(r)-1])
	}
}

// Text returns the trimmed value.
func (t *TextField) Text() string {
	return strings.TrimSpace(t.Value)
}

// Focused reports whether typing goes to the field.
func (t *TextField) Focused() bool { return t.focused }

// Draw renders the field with a cursor when focused.
func (t *TextField) Draw(dst *core.Screen) {
	shown := []rune(t.Value)
	if len(shown) > t.Width {
		shown = shown[len(shown)-t.Width:]
	}
	body := string(shown)
	if t.focused {
		body += "_"
	}
	pad := t.Width - len([]rune(body))
	if pad > 0 {
		body += strings.Repeat(" ", pad)
	}
	c := core.ColorDefault
	if t.focused {
		c = core.ColorBrightCyan
	}
	dst.DrawTextColored(t.X, t.Y, "["+body+"]", c)
}

// Stack centers widgets horizontally on centerX, one per row from top,
// with gap blank rows between them.
func Stack(centerX, top, gap int, widgets ...Widget) {
	y := top
	for _, w := range widgets {
		width := int(w.Bounds().W)
		w.SetPos(centerX-width/2, y)
		y += 1 + gap
	}
}
