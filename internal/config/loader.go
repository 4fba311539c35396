package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

const fileName = "runner.yaml"

// DefaultRunnerConfig returns the hardcoded tuning.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Physics: PhysicsConfig{
			MaxVelocity:   0.11,
			VelocityAdd:   0.0045,
			JumpScale:     4,
			SlideDuration: 0.6,
		},
		Pace: PaceConfig{
			Initial:   0.4,
			Increment: 0.01,
			Max:       1.0,
		},
		Spawn: SpawnConfig{
			Grace: 1,
			Categories: []CategoryConfig{
				{Name: "obstacle", Rate: 2, Ramp: true, Pool: []PoolEntry{
					{Kind: "chair", Sprite: "chair"},
					{Kind: "table", Sprite: "table"},
				}},
				{Name: "recycle", Rate: 3, Ramp: true, Pool: []PoolEntry{
					{Kind: "bottle", Sprite: "bottle"},
					{Kind: "bin", Sprite: "bin"},
				}},
				{Name: "scenery", Rate: 5, Pool: []PoolEntry{
					{Kind: "decorative", Sprite: "cloud", Altitude: 10},
					{Kind: "decorative", Sprite: "cloud", Altitude: 14},
				}},
			},
		},
		Economy: EconomyConfig{
			Lives:         3,
			MaxChairs:     3,
			MaxBottles:    5,
			TableBonus:    100,
			BinMultiplier: 25,
			BottlePenalty: 50,
			ScoreRate:     0.1,
		},
		Player: PlayerConfig{
			X:            10,
			GroundOffset: 3,
		},
		Intro: IntroConfig{
			DeltaAlpha: 3,
			EndAlpha:   -10,
		},
	}
}

// DefaultYAML returns the embedded default tuning file.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}

// Load loads the runner tuning.
// Search order: customPath -> ~/.recycle-runner/configs/runner.yaml -> ./configs/runner.yaml -> embedded default
func Load(customPath string) (RunnerConfig, error) {
	// A custom path must load; errors are reported, not skipped
	if customPath != "" {
		return LoadFile(customPath)
	}

	for _, path := range searchPaths() {
		if cfg, err := LoadFile(path); err == nil {
			return cfg, nil
		}
	}

	cfg, err := parse(defaultRunnerYAML)
	if err != nil {
		return DefaultRunnerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// LoadFile reads and validates one tuning file. Missing keys keep their
// defaults.
func LoadFile(path string) (RunnerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunnerConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := parse(data)
	if err != nil {
		return RunnerConfig{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve returns the file Load would read, or "" when it would fall back
// to the embedded default.
func Resolve(customPath string) string {
	if customPath != "" {
		return customPath
	}
	for _, path := range searchPaths() {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func parse(data []byte) (RunnerConfig, error) {
	// Decode over the defaults; a categories list in the file replaces
	// the default list as a whole
	cfg := DefaultRunnerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func searchPaths() []string {
	var paths []string
	if p := userConfigPath(fileName); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", fileName))
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".recycle-runner", "configs", filename)
}
