package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/recycle-runner/internal/assets"
	"github.com/vovakirdan/recycle-runner/internal/config"
	"github.com/vovakirdan/recycle-runner/internal/core"
	"github.com/vovakirdan/recycle-runner/internal/platform/tui"
	"github.com/vovakirdan/recycle-runner/internal/scene"
	"github.com/vovakirdan/recycle-runner/internal/storage"
)

var flagWatch bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Recycle Runner",
	Long: `Start the game at the intro screen.

Controls:
  Up/W/Space  - Jump
  Down/S      - Slide
  E           - Pick up, place a chair, recycle (rebindable in Settings)
  P/Esc       - Pause
  Ctrl+C      - Quit
  Mouse       - Click menu buttons

Difficulty options:
  easy   - Slower start, lower top speed, one extra life
  normal - Tuning as configured
  hard   - Faster start, higher top speed
  fixed  - No speed ramp

Examples:
  runner play
  runner play --difficulty easy
  runner play --mode classic
  runner play --config ./my-runner.yaml --watch`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the tuning file when it changes")
	rootCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the tuning file when it changes")
}

func runPlay(_ *cobra.Command, _ []string) {
	if err := play(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func play() error {
	logger, closeLog, err := openLogger(flagLogFile, flagLogLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	setup, err := loadGame()
	if err != nil {
		logger.Error("startup failed", "err", err)
		return err
	}

	settings, err := storage.LoadSettings(flagSettings)
	if err != nil {
		logger.Warn("settings unreadable, using defaults", "path", flagSettings, "err", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open leaderboard database", "err", err)
		// Play on; scores are kept for this process only.
		store = nil
	}
	lb := loadLeaderboard(store, logger)

	rt := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rt.ScreenW, rt.ScreenH = w, h
	}
	if flagFPS > 0 {
		rt.TickRate = flagFPS
	}
	rt.Seed = flagSeed
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}

	gameRT := rt
	gameRT.ScreenH--
	m, err := scene.New(scene.Deps{
		Runtime:     gameRT,
		Tuning:      setup.tuning,
		Preset:      setup.preset,
		Mode:        flagMode,
		Assets:      setup.catalog,
		Mixer:       assets.NewBellMixer(os.Stdout),
		Settings:    settings,
		Leaderboard: lb,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	var watcher *config.Watcher
	if flagWatch {
		if path := config.Resolve(flagConfig); path == "" {
			logger.Warn("nothing to watch, using embedded tuning")
		} else if watcher, err = config.Watch(path); err != nil {
			logger.Warn("cannot watch tuning file", "path", path, "err", err)
			watcher = nil
		} else {
			logger.Info("watching tuning file", "path", watcher.Path())
			//nolint:errcheck // Best-effort close on exit
			defer watcher.Close()
		}
	}

	logger.Info("starting", "mode", flagMode, "difficulty", setup.preset, "seed", rt.Seed)
	runErr := tui.Run(m, rt, watcher, logger)

	// Persist best-effort; a failed save never hides the run's outcome.
	if err := storage.SaveSettings(flagSettings, m.Settings()); err != nil {
		logger.Error("failed to save settings", "err", err)
	}
	if store != nil {
		if err := store.SaveLeaderboard(m.Leaderboard()); err != nil {
			logger.Error("failed to save leaderboard", "err", err)
		}
		store.Close()
	}
	return runErr
}

// loadLeaderboard reads what it can; unreadable rows are skipped and logged.
func loadLeaderboard(store *storage.Store, logger *log.Logger) *storage.Leaderboard {
	if store == nil {
		return storage.NewLeaderboard(nil)
	}
	lb, err := store.LoadLeaderboard()
	if errors.Is(err, storage.ErrCorrupt) {
		logger.Warn("leaderboard partially loaded", "err", err)
	} else if err != nil {
		logger.Warn("could not read leaderboard", "err", err)
	}
	if lb == nil {
		return storage.NewLeaderboard(nil)
	}
	return lb
}
