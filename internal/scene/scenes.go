package scene

import (
	"fmt"

	"github.com/vovakirdan/recycle-runner/internal/core"
	"github.com/vovakirdan/recycle-runner/internal/gui"
)

// scene is one tagged variant of the state machine.
type scene interface {
	kind() Kind
	widgets() *gui.Widgets
	layout(w, h int)
	key(m *Machine, e core.Event)
	// command handles a widget command; false falls through to the
	// machine's default handlers.
	command(m *Machine, cmd gui.Command) bool
	step(m *Machine, tick core.Tick, in core.InputFrame)
	render(m *Machine, dst *core.Screen)
}

// base carries the widget map and menu-style keyboard handling.
type base struct {
	w *gui.Widgets
}

func newBase() base { return base{w: gui.NewWidgets()} }

func (b *base) widgets() *gui.Widgets { return b.w }

func (b *base) layout(int, int) {}

func (b *base) key(m *Machine, e core.Event) {
	switch {
	case m.keymap.Is(e.Key, core.ActionUp):
		b.w.FocusPrev()
	case m.keymap.Is(e.Key, core.ActionDown), e.Key == "tab":
		b.w.FocusNext()
	case m.keymap.Is(e.Key, core.ActionConfirm):
		m.dispatch(b.w.Activate())
	case m.keymap.Is(e.Key, core.ActionBack):
		m.dispatch(gui.CmdBack)
	}
}

func (b *base) command(*Machine, gui.Command) bool { return false }

func (b *base) step(*Machine, core.Tick, core.InputFrame) {}

func (b *base) render(_ *Machine, dst *core.Screen) {
	b.w.Draw(dst)
}

// intro fades a two-line splash in and out, then opens the main menu.
type intro struct {
	base
	alpha float64
	delta float64
}

func newIntro(m *Machine) *intro {
	s := &intro{base: newBase(), alpha: 1, delta: m.tuning.Intro.DeltaAlpha}
	s.w.Put("studio", gui.NewLabel("AharaiTech Tel-Aviv", core.ColorBrightWhite))
	s.w.Put("presents", gui.NewLabel("Presents...", core.ColorBrightWhite))
	s.layout(m.runtime.ScreenW, m.runtime.ScreenH)
	s.fade()
	return s
}

func (s *intro) kind() Kind { return Intro }

func (s *intro) layout(w, h int) {
	studio := s.w.Label("studio")
	studio.SetPos((w-len(studio.Text))/2, h/2-1)
	presents := s.w.Label("presents")
	presents.SetPos(w/2, h/2+1)
}

func (s *intro) fade() {
	s.w.Label("studio").Alpha = s.alpha
	s.w.Label("presents").Alpha = s.alpha
}

// Any key skips the splash.
func (s *intro) key(m *Machine, _ core.Event) {
	m.Transition(MainMenu)
}

func (s *intro) step(m *Machine, tick core.Tick, _ core.InputFrame) {
	s.alpha += s.delta * tick.Delta
	if s.alpha >= 255 {
		s.alpha = 255
		if s.delta > 0 {
			s.delta = -s.delta
		}
	}
	s.fade()
	if s.alpha <= m.tuning.Intro.EndAlpha {
		m.Transition(MainMenu)
	}
}

// mainMenu shows the title, the best score and the top-level buttons.
type mainMenu struct {
	base
}

func newMainMenu(m *Machine) *mainMenu {
	s := &mainMenu{base: newBase()}
	s.w.Put("title", gui.NewLabel("RECYCLE RUNNER", core.ColorBrightGreen))
	s.w.Put("best", gui.NewLabel(fmt.Sprintf("High score: %d", m.leaderboard.Max()), core.ColorYellow))
	s.w.Put("play", gui.NewButton("Play", gui.CmdPlay))
	s.w.Put("leaderboard", gui.NewButton("Leaderboard", gui.CmdLeaderboard))
	s.w.Put("settings", gui.NewButton("Settings", gui.CmdSettings))
	s.w.Put("exit", gui.NewButton("Exit", gui.CmdExit))
	s.layout(m.runtime.ScreenW, m.runtime.ScreenH)
	s.w.FocusFirst()
	m.loop("main_menu")
	return s
}

func (s *mainMenu) kind() Kind { return MainMenu }

func (s *mainMenu) layout(w, h int) {
	top := h/2 - 6
	if top < 1 {
		top = 1
	}
	gui.Stack(w/2, top, 1,
		s.w.Label("title"),
		s.w.Label("best"),
		s.w.Button("play"),
		s.w.Button("leaderboard"),
		s.w.Button("settings"),
		s.w.Button("exit"),
	)
}

// The main menu has nowhere to go back to.
func (s *mainMenu) command(_ *Machine, cmd gui.Command) bool {
	return cmd == gui.CmdBack
}

// gameScene drives the active run.
type gameScene struct {
	base
}

func newGameScene(m *Machine) *gameScene {
	s := &gameScene{base: newBase()}
	s.w.Put("pause", gui.NewButton("II", gui.CmdPause))
	s.layout(m.runtime.ScreenW, m.runtime.ScreenH)
	m.loop("go")
	return s
}

func (s *gameScene) kind() Kind { return Game }

func (s *gameScene) layout(w, _ int) {
	b := s.w.Button("pause")
	b.SetPos(w-int(b.Bounds().W)-1, 1)
}

// Only pause keys are handled here; gameplay keys reach the simulation
// through the frame's intent.
func (s *gameScene) key(m *Machine, e core.Event) {
	if m.keymap.Is(e.Key, core.ActionPause) || m.keymap.Is(e.Key, core.ActionBack) {
		m.Transition(Pause)
	}
}

func (s *gameScene) step(m *Machine, tick core.Tick, in core.InputFrame) {
	res := m.game.Step(tick, m.keymap.Intent(in))
	for _, c := range res.Cues {
		m.play(string(c))
	}
	if res.State.GameOver {
		m.endRun()
		m.Transition(Lose)
	}
}

func (s *gameScene) render(m *Machine, dst *core.Screen) {
	m.game.Render(dst)
	s.w.Draw(dst)
}

// pause freezes the run under an overlay.
type pause struct {
	base
}

func newPause(m *Machine) *pause {
	s := &pause{base: newBase()}
	s.w.Put("title", gui.NewLabel("PAUSED", core.ColorBrightYellow))
	s.w.Put("resume", gui.NewButton("Resume", gui.CmdResume))
	s.w.Put("menu", gui.NewButton("Menu", gui.CmdMenu))
	s.layout(m.runtime.ScreenW, m.runtime.ScreenH)
	s.w.FocusFirst()
	return s
}

func (s *pause) kind() Kind { return Pause }

func (s *pause) layout(w, h int) {
	gui.Stack(w/2, h/2-2, 1, s.w.Label("title"), s.w.Button("resume"), s.w.Button("menu"))
}

func (s *pause) key(m *Machine, e core.Event) {
	if m.keymap.Is(e.Key, core.ActionPause) || m.keymap.Is(e.Key, core.ActionBack) {
		m.Transition(Game)
		return
	}
	s.base.key(m, e)
}

func (s *pause) command(m *Machine, cmd gui.Command) bool {
	if cmd == gui.CmdMenu {
		m.logger.Info("run abandoned", "run", m.runID, "score", m.game.State().Score)
	}
	return false
}

func (s *pause) render(m *Machine, dst *core.Screen) {
	m.game.Render(dst)
	title := s.w.Label("title")
	box := core.NewRect(float64(title.X-6), float64(title.Y-1), float64(len(title.Text)+12), 7)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	s.w.Draw(dst)
}
