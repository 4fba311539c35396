// runner is a side-scrolling recycling game for the terminal.
//
// Usage:
//
//	runner                   - Play (same as "runner play")
//	runner play              - Play a run from the intro screen
//	runner modes             - List game modes
//	runner scores            - Show the leaderboard
//	runner serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible spawns
//	--db <path>          - Set leaderboard database path
//	--settings <path>    - Set settings file path
//	--config <path>      - Load tuning from a custom YAML file
//	--difficulty <name>  - Apply a difficulty preset
//	--mode <id>          - Pick the game mode
//	--log-file <path>    - Write logs to this file
//	--log-level <level>  - Minimum log level
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/recycle-runner/internal/assets"
	"github.com/vovakirdan/recycle-runner/internal/config"
	"github.com/vovakirdan/recycle-runner/internal/games/runner"
	"github.com/vovakirdan/recycle-runner/internal/registry"
	"github.com/vovakirdan/recycle-runner/internal/scene"
	"github.com/vovakirdan/recycle-runner/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagSettings   string
	flagConfig     string
	flagDifficulty string
	flagMode       string
	flagLogFile    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "runner",
	Short: "Recycle Runner - collect, carry and recycle on the run",
	Long: `Recycle Runner is a side-scrolling terminal game. Jump and slide past
the clutter, pick up chairs and bottles, put chairs on tables and empty your
bottles into bins.

Available commands:
  play     - Play (default)
  modes    - Show available game modes
  scores   - View the leaderboard
  serve    - Start SSH server for remote play

Examples:
  runner
  runner play --difficulty hard
  runner play --mode classic
  runner play --config ./runner.yaml --watch
  runner scores --tui
  runner serve --ssh :2222`,
	Run: runPlay,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.recycle-runner/leaderboard.db", "Path to leaderboard database")
	rootCmd.PersistentFlags().StringVar(&flagSettings, "settings", "~/.recycle-runner/settings.yaml", "Path to settings file")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagMode, "mode", runner.ModeRecycle, "Game mode (see 'runner modes')")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.recycle-runner/runner.log", "Log file path")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// openLogger opens the log file for appending. The terminal belongs to the
// game, so nothing is logged to it.
func openLogger(path, level string) (*log.Logger, func(), error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	path, err = storage.ExpandHome(path)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "runner",
		Level:           lvl,
	})
	//nolint:errcheck // Best-effort close on exit
	return logger, func() { f.Close() }, nil
}

// gameSetup is everything a scene machine needs that is read from disk.
type gameSetup struct {
	catalog *assets.Catalog
	tuning  config.RunnerConfig
	preset  config.DifficultyPreset
}

// loadGame resolves the mode, tuning and assets. Missing assets are fatal.
func loadGame() (gameSetup, error) {
	if !registry.Exists(flagMode) {
		return gameSetup{}, fmt.Errorf("unknown mode %q (run 'runner modes')", flagMode)
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return gameSetup{}, err
	}
	tuning, err := config.Load(flagConfig)
	if err != nil {
		return gameSetup{}, err
	}
	config.ApplyPreset(&tuning, preset)

	catalog, err := assets.Default()
	if err != nil {
		return gameSetup{}, fmt.Errorf("cannot load assets: %w", err)
	}
	sprites := append(append([]string{}, runner.RequiredSprites...), tuning.Sprites()...)
	sounds := append(append([]string{}, runner.RequiredSounds...), scene.RequiredSounds...)
	if err := catalog.Require(sprites, sounds); err != nil {
		return gameSetup{}, err
	}
	return gameSetup{catalog: catalog, tuning: tuning, preset: preset}, nil
}
