package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/recycle-runner/internal/assets"
	"github.com/vovakirdan/recycle-runner/internal/config"
	"github.com/vovakirdan/recycle-runner/internal/core"
	"github.com/vovakirdan/recycle-runner/internal/games/runner"
	"github.com/vovakirdan/recycle-runner/internal/scene"
	"github.com/vovakirdan/recycle-runner/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.recycle-runner/host_key.
	HostKeyPath string

	// DBPath is the path to the shared leaderboard database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	TickRate int
	Tuning   config.RunnerConfig
	Preset   config.DifficultyPreset
	Mode     string
	Assets   *assets.Catalog
	Logger   *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.recycle-runner/leaderboard.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
		Tuning:      config.DefaultRunnerConfig(),
		Mode:        runner.ModeRecycle,
	}
}

// SSHServer serves one scene machine per SSH session. Sessions keep their
// own leaderboard snapshot and append new entries to the shared store when
// they end.
type SSHServer struct {
	config   SSHServerConfig
	server   *ssh.Server
	store    *storage.Store
	logger   *log.Logger
	sessions sync.Map // ssh.Session -> *scene.Machine
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "runner-ssh",
		})
	}
	if cfg.Assets == nil {
		catalog, err := assets.Default()
		if err != nil {
			return nil, err
		}
		cfg.Assets = catalog
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open leaderboard database", "error", err)
		// Sessions still play; scores stay in memory.
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".recycle-runner", "host_key")
	}
	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.sessionMiddleware,
		),
	)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// newMachine builds a session's scene machine over a fresh leaderboard read.
func (s *SSHServer) newMachine(sess ssh.Session, rt core.RuntimeConfig) (*scene.Machine, error) {
	lb := storage.NewLeaderboard(nil)
	if s.store != nil {
		loaded, err := s.store.LoadLeaderboard()
		if err != nil {
			s.logger.Warn("leaderboard partially loaded", "user", sess.User(), "err", err)
		}
		if loaded != nil {
			lb = loaded
		}
	}
	return scene.New(scene.Deps{
		Runtime:     rt,
		Tuning:      s.config.Tuning,
		Preset:      s.config.Preset,
		Mode:        s.config.Mode,
		Assets:      s.config.Assets,
		Mixer:       assets.NewBellMixer(sess),
		Settings:    storage.DefaultSettings(),
		Leaderboard: lb,
		Logger:      s.logger.With("user", sess.User()),
	})
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	rt := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  playHeight(pty.Window.Height),
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}
	m, err := s.newMachine(sess, rt)
	if err != nil {
		s.logger.Error("cannot start session", "user", sess.User(), "err", err)
		return nil, nil
	}
	s.sessions.Store(sess, m)

	rt.ScreenH = pty.Window.Height
	return NewModel(m, rt, s.logger), []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	}
}

// sessionMiddleware logs sessions and persists their new scores on exit.
func (s *SSHServer) sessionMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)

		if v, ok := s.sessions.LoadAndDelete(sess); ok {
			s.persist(sess, v.(*scene.Machine))
		}
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
	}
}

func (s *SSHServer) persist(sess ssh.Session, m *scene.Machine) {
	lb := m.Leaderboard()
	if s.store == nil || len(lb.Pending()) == 0 {
		return
	}
	if err := s.store.SaveLeaderboard(lb); err != nil {
		s.logger.Error("failed to save scores", "user", sess.User(), "err", err)
		return
	}
	s.logger.Info("scores saved", "user", sess.User())
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	if s.store != nil {
		s.store.Close()
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
