// Package scene implements the application state machine: intro splash,
// main menu, play session, pause, game over, leaderboard, settings and key
// binding. Exactly one scene is active; every transition tears the previous
// one down before the next is built.
package scene

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/recycle-runner/internal/assets"
	"github.com/vovakirdan/recycle-runner/internal/config"
	"github.com/vovakirdan/recycle-runner/internal/core"
	"github.com/vovakirdan/recycle-runner/internal/gui"
	"github.com/vovakirdan/recycle-runner/internal/registry"
	"github.com/vovakirdan/recycle-runner/internal/storage"
)

// Kind enumerates the scenes.
type Kind int

const (
	Intro Kind = iota
	MainMenu
	Game
	Pause
	Lose
	Leaderboard
	Settings
	BindKey
)

// String returns the scene name.
func (k Kind) String() string {
	switch k {
	case Intro:
		return "intro"
	case MainMenu:
		return "main_menu"
	case Game:
		return "game"
	case Pause:
		return "pause"
	case Lose:
		return "lose"
	case Leaderboard:
		return "leaderboard"
	case Settings:
		return "settings"
	case BindKey:
		return "bind_key"
	default:
		return "unknown"
	}
}

// transitions is the allowed transition table.
var transitions = map[Kind][]Kind{
	Intro:       {MainMenu},
	MainMenu:    {Game, Settings, Leaderboard},
	Game:        {Pause, Lose},
	Pause:       {Game, MainMenu},
	Lose:        {MainMenu, Game},
	Leaderboard: {MainMenu},
	Settings:    {MainMenu, BindKey},
	BindKey:     {Settings},
}

// Allowed reports whether the table permits from -> to.
func Allowed(from, to Kind) bool {
	for _, k := range transitions[from] {
		if k == to {
			return true
		}
	}
	return false
}

// RequiredSounds are the sounds the menus play.
var RequiredSounds = []string{"main_menu"}

// Deps are the collaborators a machine is built with.
type Deps struct {
	Runtime core.RuntimeConfig
	// Tuning is used as given; Preset is applied to tunings passed to
	// ApplyTuning later.
	Tuning      config.RunnerConfig
	Preset      config.DifficultyPreset
	Mode        string
	Assets      *assets.Catalog
	Mixer       assets.Mixer
	Settings    storage.Settings
	Leaderboard *storage.Leaderboard
	Logger      *log.Logger
	NewRunID    func() string
}

// Machine owns the active scene and everything that outlives a scene:
// settings, leaderboard, keymap and the current run.
type Machine struct {
	runtime     core.RuntimeConfig
	tuning      config.RunnerConfig
	pending     *config.RunnerConfig
	preset      config.DifficultyPreset
	mode        string
	catalog     *assets.Catalog
	mixer       assets.Mixer
	settings    storage.Settings
	leaderboard *storage.Leaderboard
	keymap      core.Keymap
	logger      *log.Logger
	newRunID    func() string

	scene      scene
	generation int // bumped on every transition
	running    bool
	now        time.Time

	game     registry.Game // alive in Game and Pause only
	runID    string
	runs     int64 // runs started, offsets the seed of each new run
	pausedAt time.Time
	lastRun  core.GameState
}

// New creates a machine in the intro scene.
func New(d Deps) (*Machine, error) {
	if !registry.Exists(d.Mode) {
		return nil, fmt.Errorf("scene: unknown mode %q", d.Mode)
	}
	if d.Assets == nil {
		return nil, fmt.Errorf("scene: no asset catalog")
	}
	if d.Mixer == nil {
		d.Mixer = assets.NopMixer{}
	}
	if d.Leaderboard == nil {
		d.Leaderboard = storage.NewLeaderboard(nil)
	}
	if d.Logger == nil {
		d.Logger = log.New(io.Discard)
	}
	if d.NewRunID == nil {
		d.NewRunID = uuid.NewString
	}
	settings := d.Settings.Normalize()

	m := &Machine{
		runtime:     d.Runtime,
		tuning:      d.Tuning,
		preset:      d.Preset,
		mode:        d.Mode,
		catalog:     d.Assets,
		mixer:       d.Mixer,
		settings:    settings,
		leaderboard: d.Leaderboard,
		keymap:      core.DefaultKeymap(settings.ActionKeybind),
		logger:      d.Logger,
		newRunID:    d.NewRunID,
		running:     true,
	}
	m.mixer.SetVolume(settings.MusicVolume, settings.SFXVolume)
	m.scene = newIntro(m)
	return m, nil
}

// Running reports whether the application should keep going.
func (m *Machine) Running() bool { return m.running }

// Kind returns the active scene.
func (m *Machine) Kind() Kind { return m.scene.kind() }

// Widgets returns the active scene's widget map.
func (m *Machine) Widgets() *gui.Widgets { return m.scene.widgets() }

// Game returns the current run, or nil outside game and pause.
func (m *Machine) Game() registry.Game { return m.game }

// RunID returns the ID of the current or most recent run.
func (m *Machine) RunID() string { return m.runID }

// LastRun returns the final counters of the most recent run.
func (m *Machine) LastRun() core.GameState { return m.lastRun }

// Settings returns the current settings.
func (m *Machine) Settings() storage.Settings { return m.settings }

// Leaderboard returns the in-memory leaderboard.
func (m *Machine) Leaderboard() *storage.Leaderboard { return m.leaderboard }

// Keymap returns the active key bindings.
func (m *Machine) Keymap() core.Keymap { return m.keymap }

// Runtime returns the current runtime config.
func (m *Machine) Runtime() core.RuntimeConfig { return m.runtime }

// Stop ends the application loop.
func (m *Machine) Stop() {
	if m.running {
		m.logger.Debug("stopping", "scene", m.scene.kind())
	}
	m.running = false
	m.mixer.Stop()
}

// Resize updates the screen size, re-lays out the active scene and moves a
// live run onto the new ground line.
func (m *Machine) Resize(w, h int) {
	m.runtime.ScreenW = w
	m.runtime.ScreenH = h
	if m.game != nil {
		m.game.Resize(w, h)
	}
	m.scene.layout(w, h)
}

// ApplyTuning validates a reloaded tuning and schedules it for the next
// game entry. A running session keeps the tuning it started with.
func (m *Machine) ApplyTuning(cfg config.RunnerConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := m.catalog.Require(cfg.Sprites(), nil); err != nil {
		return err
	}
	config.ApplyPreset(&cfg, m.preset)
	m.pending = &cfg
	m.logger.Info("config reloaded", "applies", "next run")
	return nil
}

// Step runs one frame: input is dispatched in arrival order, then the
// active scene advances. A transition ends input dispatch for the frame.
func (m *Machine) Step(tick core.Tick, in core.InputFrame) {
	if !m.running {
		return
	}
	m.now = tick.Now

	if in.HasQuit() || m.keymap.Pressed(in, core.ActionQuit) {
		m.Stop()
		return
	}

	gen := m.generation
	for _, e := range in.Events {
		w := m.scene.widgets()
		switch e.Kind {
		case core.EventPointerMove:
			w.PointerMove(e.X, e.Y)
		case core.EventPointerDown:
			w.PointerDown()
		case core.EventPointerUp:
			m.dispatch(w.PointerUp())
		case core.EventKeyDown:
			m.scene.key(m, e)
		}
		if m.generation != gen || !m.running {
			return
		}
	}

	m.scene.step(m, tick, in)
}

// Render draws the active scene.
func (m *Machine) Render(dst *core.Screen) {
	m.scene.render(m, dst)
}

// Transition tears down the active scene and builds the next one.
// Transitions outside the table are programming errors and panic.
func (m *Machine) Transition(to Kind) {
	from := m.scene.kind()
	if !Allowed(from, to) {
		panic(fmt.Sprintf("scene: invalid transition %s -> %s", from, to))
	}

	m.scene.widgets().Clear()
	keep := (from == Game && to == Pause) || (from == Pause && to == Game)
	if !keep && m.game != nil {
		m.game.Entities().Clear()
		m.game = nil
	}
	m.mixer.Stop()

	m.generation++
	m.logger.Debug("scene transition", "from", from, "to", to)
	m.scene = m.build(from, to)
}

func (m *Machine) build(from, to Kind) scene {
	switch to {
	case Intro:
		return newIntro(m)
	case MainMenu:
		return newMainMenu(m)
	case Game:
		if from == Pause {
			m.game.Resume(m.now.Sub(m.pausedAt))
		} else {
			m.startRun()
		}
		return newGameScene(m)
	case Pause:
		m.pausedAt = m.now
		return newPause(m)
	case Lose:
		return newLose(m)
	case Leaderboard:
		return newLeaderboard(m)
	case Settings:
		return newSettings(m)
	case BindKey:
		return newBindKey(m)
	}
	panic(fmt.Sprintf("scene: no builder for %s", to))
}

// startRun creates and resets a fresh session.
func (m *Machine) startRun() {
	if m.pending != nil {
		m.tuning = *m.pending
		m.pending = nil
	}
	g, err := registry.Create(m.mode)
	if err != nil {
		panic(err)
	}
	m.runID = m.newRunID()
	rt := m.runtime
	rt.Seed += m.runs
	m.runs++
	g.Reset(registry.Env{
		Runtime: rt,
		Tuning:  m.tuning,
		Assets:  m.catalog,
		Start:   m.now,
	})
	m.game = g
	m.logger.Debug("run started", "run", m.runID, "mode", m.mode, "seed", rt.Seed)
}

// endRun records the final counters of the current run.
func (m *Machine) endRun() {
	m.lastRun = m.game.State()
	m.logger.Info("session ended",
		"run", m.runID,
		"mode", m.mode,
		"score", m.lastRun.Score,
		"recycled", m.lastRun.Recycled,
		"flipped", m.lastRun.Flipped,
	)
}

// handlers resolve commands no scene overrides.
var handlers = map[gui.Command]func(m *Machine){
	gui.CmdPlay:        func(m *Machine) { m.Transition(Game) },
	gui.CmdRetry:       func(m *Machine) { m.Transition(Game) },
	gui.CmdResume:      func(m *Machine) { m.Transition(Game) },
	gui.CmdLeaderboard: func(m *Machine) { m.Transition(Leaderboard) },
	gui.CmdSettings:    func(m *Machine) { m.Transition(Settings) },
	gui.CmdRebind:      func(m *Machine) { m.Transition(BindKey) },
	gui.CmdPause:       func(m *Machine) { m.Transition(Pause) },
	gui.CmdMenu:        func(m *Machine) { m.Transition(MainMenu) },
	gui.CmdBack:        func(m *Machine) { m.Transition(MainMenu) },
	gui.CmdExit:        func(m *Machine) { m.Stop() },
}

func (m *Machine) dispatch(cmd gui.Command) {
	if cmd == gui.CmdNone {
		return
	}
	if m.scene.command(m, cmd) {
		return
	}
	if h, ok := handlers[cmd]; ok {
		h(m)
	}
}

// play fires a one-shot sound.
func (m *Machine) play(name string) {
	s, err := m.catalog.Sound(name)
	if err != nil {
		m.logger.Warn("sound unavailable", "err", err)
		return
	}
	m.mixer.Play(s, false)
}

// loop starts a music loop.
func (m *Machine) loop(name string) {
	s, err := m.catalog.Sound(name)
	if err != nil {
		m.logger.Warn("music unavailable", "err", err)
		return
	}
	m.mixer.Play(s, true)
}
