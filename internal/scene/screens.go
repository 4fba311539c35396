package scene

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/recycle-runner/internal/core"
	"github.com/vovakirdan/recycle-runner/internal/gui"
	"github.com/vovakirdan/recycle-runner/internal/storage"
)

// NameLimit is the longest name the game over screen accepts.
const NameLimit = 12

// lose shows the final score and collects a leaderboard name.
type lose struct {
	base
	committed bool
}

func newLose(m *Machine) *lose {
	st := m.lastRun
	s := &lose{base: newBase()}
	s.w.Put("title", gui.NewLabel("GAME OVER", core.ColorBrightRed))
	s.w.Put("score", gui.NewLabel(fmt.Sprintf("Score: %d   Recycled: %d   Flipped: %d", st.Score, st.Recycled, st.Flipped), core.ColorDefault))
	s.w.Put("prompt", gui.NewLabel("Enter your name:", core.ColorGray))
	s.w.Put("name", gui.NewTextField(NameLimit, NameLimit))
	s.w.Put("submit", gui.NewButton("Submit", gui.CmdSubmit))
	s.w.Put("retry", gui.NewButton("Retry", gui.CmdRetry))
	s.w.Put("back", gui.NewButton("Back", gui.CmdBack))
	s.layout(m.runtime.ScreenW, m.runtime.ScreenH)
	s.w.FocusFirst()
	return s
}

func (s *lose) kind() Kind { return Lose }

func (s *lose) layout(w, h int) {
	top := h/2 - 7
	if top < 1 {
		top = 1
	}
	gui.Stack(w/2, top, 1,
		s.w.Label("title"),
		s.w.Label("score"),
		s.w.Label("prompt"),
		s.w.Field("name"),
		s.w.Button("submit"),
		s.w.Button("retry"),
		s.w.Button("back"),
	)
}

func (s *lose) key(m *Machine, e core.Event) {
	f := s.w.Field("name")
	if f.Focused() {
		switch e.Key {
		case "enter":
			m.dispatch(gui.CmdSubmit)
			return
		case "backspace":
			f.Backspace()
			return
		case "up", "down", "tab", "esc":
			s.base.key(m, e)
			return
		}
		if e.Text != "" {
			f.Type(e.Text)
		}
		return
	}
	s.base.key(m, e)
}

func (s *lose) command(m *Machine, cmd gui.Command) bool {
	switch cmd {
	case gui.CmdSubmit:
		if s.commit(m) {
			m.Transition(MainMenu)
		} else {
			s.w.Label("prompt").Text = "Name required:"
			s.w.Label("prompt").Color = core.ColorYellow
		}
		return true
	case gui.CmdRetry, gui.CmdBack:
		s.commit(m)
	}
	return false
}

// commit adds the typed name to the leaderboard once. It reports whether
// an entry was recorded.
func (s *lose) commit(m *Machine) bool {
	name := s.w.Field("name").Text()
	if name == "" || s.committed {
		return s.committed
	}
	m.leaderboard.Add(storage.Entry{Name: name, Score: m.lastRun.Score, RunID: m.runID})
	s.committed = true
	m.logger.Info("score submitted", "run", m.runID, "name", name, "score", m.lastRun.Score)
	return true
}

// LeaderboardRows is how many entries the leaderboard screen lists.
const LeaderboardRows = 10

// leaderboard lists the best runs.
type leaderboard struct {
	base
	rows int
}

func newLeaderboard(m *Machine) *leaderboard {
	s := &leaderboard{base: newBase()}
	s.w.Put("title", gui.NewLabel("LEADERBOARD", core.ColorBrightYellow))
	top := m.leaderboard.Top(LeaderboardRows)
	if len(top) == 0 {
		s.w.Put("row0", gui.NewLabel("No scores yet", core.ColorGray))
		s.rows = 1
	}
	for i, e := range top {
		c := core.ColorDefault
		if e.RunID != "" && e.RunID == m.runID {
			c = core.ColorBrightCyan
		}
		s.w.Put(fmt.Sprintf("row%d", i), gui.NewLabel(formatRow(i+1, e), c))
		s.rows++
	}
	s.w.Put("back", gui.NewButton("Back", gui.CmdBack))
	s.layout(m.runtime.ScreenW, m.runtime.ScreenH)
	s.w.FocusFirst()
	return s
}

func formatRow(rank int, e storage.Entry) string {
	name := e.Name
	if len([]rune(name)) > NameLimit {
		name = string([]rune(name)[:NameLimit])
	}
	dots := NameLimit + 2 - len([]rune(name))
	return fmt.Sprintf("%2d. %s %s %7d", rank, name, strings.Repeat(".", dots), e.Score)
}

func (s *leaderboard) kind() Kind { return Leaderboard }

func (s *leaderboard) layout(w, h int) {
	ws := []gui.Widget{s.w.Label("title")}
	for i := 0; i < s.rows; i++ {
		ws = append(ws, s.w.Label(fmt.Sprintf("row%d", i)))
	}
	ws = append(ws, s.w.Button("back"))
	top := (h - len(ws) - 2) / 2
	if top < 1 {
		top = 1
	}
	gui.Stack(w/2, top, 0, ws...)
	// Separate the title and the button from the list.
	s.w.Label("title").Y--
	s.w.Button("back").Y++
}

// VolumeStep is the settings adjustment increment.
const VolumeStep = 0.1

// settings adjusts volumes and opens the key binding screen.
type settings struct {
	base
}

func newSettings(m *Machine) *settings {
	s := &settings{base: newBase()}
	s.w.Put("title", gui.NewLabel("SETTINGS", core.ColorBrightYellow))
	s.w.Put("music", gui.NewLabel("", core.ColorDefault))
	s.w.Put("music-", gui.NewButton("-", gui.CmdMusicDown))
	s.w.Put("music+", gui.NewButton("+", gui.CmdMusicUp))
	s.w.Put("sfx", gui.NewLabel("", core.ColorDefault))
	s.w.Put("sfx-", gui.NewButton("-", gui.CmdSFXDown))
	s.w.Put("sfx+", gui.NewButton("+", gui.CmdSFXUp))
	s.w.Put("rebind", gui.NewButton("", gui.CmdRebind))
	s.w.Put("back", gui.NewButton("Back", gui.CmdBack))
	s.refresh(m)
	s.layout(m.runtime.ScreenW, m.runtime.ScreenH)
	s.w.FocusFirst()
	return s
}

func (s *settings) kind() Kind { return Settings }

func (s *settings) refresh(m *Machine) {
	s.w.Label("music").Text = "Music " + volumeBar(m.settings.MusicVolume)
	s.w.Label("sfx").Text = "SFX   " + volumeBar(m.settings.SFXVolume)
	s.w.Button("rebind").Text = "Action key: " + m.settings.ActionKeybind
}

func volumeBar(v float64) string {
	n := int(math.Round(v * 10))
	return fmt.Sprintf("%s%s %3d%%", strings.Repeat("■", n), strings.Repeat("□", 10-n), n*10)
}

func (s *settings) layout(w, h int) {
	top := h/2 - 5
	if top < 1 {
		top = 1
	}
	title := s.w.Label("title")
	title.SetPos(w/2-len(title.Text)/2, top)
	row := func(label, minus, plus string, y int) {
		l := s.w.Label(label)
		x := w/2 - 14
		s.w.Button(minus).SetPos(x, y)
		l.SetPos(x+6, y)
		s.w.Button(plus).SetPos(x+6+len([]rune(l.Text))+1, y)
	}
	row("music", "music-", "music+", top+2)
	row("sfx", "sfx-", "sfx+", top+4)
	gui.Stack(w/2, top+6, 1, s.w.Button("rebind"), s.w.Button("back"))
}

func (s *settings) command(m *Machine, cmd gui.Command) bool {
	st := &m.settings
	switch cmd {
	case gui.CmdMusicDown:
		st.MusicVolume = stepVolume(st.MusicVolume, -VolumeStep)
	case gui.CmdMusicUp:
		st.MusicVolume = stepVolume(st.MusicVolume, VolumeStep)
	case gui.CmdSFXDown:
		st.SFXVolume = stepVolume(st.SFXVolume, -VolumeStep)
	case gui.CmdSFXUp:
		st.SFXVolume = stepVolume(st.SFXVolume, VolumeStep)
	default:
		return false
	}
	m.mixer.SetVolume(st.MusicVolume, st.SFXVolume)
	m.logger.Debug("volume changed", "music", st.MusicVolume, "sfx", st.SFXVolume)
	s.refresh(m)
	s.layout(m.runtime.ScreenW, m.runtime.ScreenH)
	return true
}

// stepVolume moves v by d on a tenths grid inside [0, 1].
func stepVolume(v, d float64) float64 {
	return core.ClampF(math.Round((v+d)*10)/10, 0, 1)
}

// bindKey captures the next key press as the interact binding.
type bindKey struct {
	base
}

func newBindKey(m *Machine) *bindKey {
	s := &bindKey{base: newBase()}
	s.w.Put("title", gui.NewLabel("Press a key for the action", core.ColorBrightYellow))
	s.w.Put("current", gui.NewLabel("Current: "+m.settings.ActionKeybind, core.ColorGray))
	s.w.Put("hint", gui.NewLabel("esc cancels", core.ColorDarkGray))
	s.layout(m.runtime.ScreenW, m.runtime.ScreenH)
	return s
}

func (s *bindKey) kind() Kind { return BindKey }

func (s *bindKey) layout(w, h int) {
	gui.Stack(w/2, h/2-2, 1, s.w.Label("title"), s.w.Label("current"), s.w.Label("hint"))
}

func (s *bindKey) key(m *Machine, e core.Event) {
	if m.keymap.Is(e.Key, core.ActionBack) {
		m.Transition(Settings)
		return
	}
	if m.keymap.Reserved(e.Key) {
		hint := s.w.Label("hint")
		hint.Text = fmt.Sprintf("%q is taken, esc cancels", e.Key)
		hint.Color = core.ColorYellow
		s.layout(m.runtime.ScreenW, m.runtime.ScreenH)
		return
	}
	m.settings.ActionKeybind = e.Key
	m.keymap = core.DefaultKeymap(e.Key)
	m.logger.Info("action key bound", "key", e.Key)
	m.Transition(Settings)
}

// The bind screen has no buttons.
func (s *bindKey) command(*Machine, gui.Command) bool { return true }
