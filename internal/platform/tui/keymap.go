package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/recycle-runner/internal/core"
)

// KeyName translates a Bubble Tea key message to the key identifier the
// keymap and scenes use.
func KeyName(msg tea.KeyMsg) string {
	switch k := msg.String(); k {
	case " ":
		return "space"
	default:
		return k
	}
}

// KeyEvent builds the key-down event for a key message.
func KeyEvent(msg tea.KeyMsg) core.Event {
	e := core.KeyDown(KeyName(msg))
	// Multi-rune pastes and IME input arrive as one message.
	if msg.Type == tea.KeyRunes && len(msg.Runes) > 1 {
		e.Text = string(msg.Runes)
	}
	return e
}

// PointerEvents translates a mouse message to pointer events. Every event
// carries a move first so hover is current before a press or release.
func PointerEvents(msg tea.MouseMsg) []core.Event {
	move := core.Event{Kind: core.EventPointerMove, X: msg.X, Y: msg.Y}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return []core.Event{move}
		}
		return []core.Event{move, {Kind: core.EventPointerDown, X: msg.X, Y: msg.Y}}
	case tea.MouseActionRelease:
		// Many terminals report releases without a button.
		return []core.Event{move, {Kind: core.EventPointerUp, X: msg.X, Y: msg.Y}}
	default:
		return []core.Event{move}
	}
}

// HelpKeyMap is the footer help for the active bindings.
type HelpKeyMap struct {
	Jump   key.Binding
	Slide  key.Binding
	Action key.Binding
	Pause  key.Binding
	Quit   key.Binding
}

// NewHelpKeyMap builds footer help from the keymap, so a rebound action
// key shows up immediately.
func NewHelpKeyMap(km core.Keymap) HelpKeyMap {
	binding := func(a core.Action, desc string) key.Binding {
		keys := km.Keys(a)
		label := strings.Join(keys[:min(len(keys), 2)], "/")
		return key.NewBinding(key.WithKeys(keys...), key.WithHelp(label, desc))
	}
	return HelpKeyMap{
		Jump:   binding(core.ActionJump, "jump"),
		Slide:  binding(core.ActionSlide, "slide"),
		Action: binding(core.ActionInteract, "pick up/place"),
		Pause:  binding(core.ActionPause, "pause"),
		Quit:   binding(core.ActionQuit, "quit"),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k HelpKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Jump, k.Slide, k.Action, k.Pause, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HelpKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Jump, k.Slide, k.Action},
		{k.Pause, k.Quit},
	}
}
