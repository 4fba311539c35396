package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/recycle-runner/internal/config"
	"github.com/vovakirdan/recycle-runner/internal/core"
	"github.com/vovakirdan/recycle-runner/internal/scene"
)

// ReloadMsg carries a config reload from the file watcher into the loop.
type ReloadMsg config.Reload

// Model is the Bubble Tea model driving a scene machine. Input arriving
// between ticks is batched into one frame.
type Model struct {
	machine  *scene.Machine
	screen   *core.Screen
	config   core.RuntimeConfig
	input    core.InputFrame
	prev     time.Time
	help     help.Model
	logger   *log.Logger
	quitting bool
}

// NewModel creates a model for the machine. One terminal row is kept for
// the help bar.
func NewModel(m *scene.Machine, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if logger == nil {
		logger = log.Default()
	}
	h := help.New()
	h.Width = cfg.ScreenW
	return Model{
		machine: m,
		screen:  core.NewScreen(cfg.ScreenW, playHeight(cfg.ScreenH)),
		config:  cfg,
		input:   core.NewInputFrame(),
		help:    h,
		logger:  logger,
	}
}

func playHeight(h int) int {
	if h > 1 {
		return h - 1
	}
	return h
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+s" {
			m.saveScreenshot()
			return m, nil
		}
		m.input.Push(KeyEvent(msg))
		return m, nil

	case tea.MouseMsg:
		for _, e := range PointerEvents(msg) {
			m.input.Push(e)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case ReloadMsg:
		m.handleReload(config.Reload(msg))
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, playHeight(msg.Height))
	m.machine.Resize(msg.Width, playHeight(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

func (m Model) handleReload(r config.Reload) {
	if r.Err != nil {
		m.logger.Warn("config reload failed", "path", r.Path, "err", r.Err)
		return
	}
	if err := m.machine.ApplyTuning(r.Config); err != nil {
		m.logger.Warn("config reload rejected", "path", r.Path, "err", err)
	}
}

func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	tick := core.NewTick(m.prev, now, m.config.TickRate)
	m.prev = now

	m.machine.Step(tick, m.input)
	m.input.Clear()

	if !m.machine.Running() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot writes the current frame as plain text.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.machine.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".recycle-runner", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	name := fmt.Sprintf("%s_%s.txt", m.machine.Kind(), time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600)
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the active scene and the help bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.screen.Clear()
	m.machine.Render(m.screen)
	bar := helpStyle.Render(m.help.View(NewHelpKeyMap(m.machine.Keymap())))
	return RenderScreen(m.screen) + "\n" + bar
}

// Machine returns the driven scene machine.
func (m Model) Machine() *scene.Machine { return m.machine }

// Run drives the machine in the terminal until it stops. Reloads from
// watcher, when set, are applied between frames.
func Run(m *scene.Machine, cfg core.RuntimeConfig, watcher *config.Watcher, logger *log.Logger) error {
	p := tea.NewProgram(
		NewModel(m, cfg, logger),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	if watcher != nil {
		go forwardReloads(p, watcher)
	}
	_, err := p.Run()
	return err
}

func forwardReloads(p *tea.Program, w *config.Watcher) {
	for r := range w.Reloads {
		p.Send(ReloadMsg(r))
	}
}
