// Package config provides YAML-based tuning for Recycle Runner: jump
// physics, pace ramp, spawn tables, the scoring economy and the intro fade.
package config

import (
	"errors"
	"fmt"
)

// RunnerConfig contains all tuning for a run.
type RunnerConfig struct {
	Physics PhysicsConfig `yaml:"physics"`
	Pace    PaceConfig    `yaml:"pace"`
	Spawn   SpawnConfig   `yaml:"spawn"`
	Economy EconomyConfig `yaml:"economy"`
	Player  PlayerConfig  `yaml:"player"`
	Intro   IntroConfig   `yaml:"intro"`
}

// PhysicsConfig defines the jump arc and slide length.
type PhysicsConfig struct {
	MaxVelocity   float64 `yaml:"max_velocity"`   // Upward velocity at take-off
	VelocityAdd   float64 `yaml:"velocity_add"`   // Velocity lost per frame
	JumpScale     float64 `yaml:"jump_scale"`     // Cells moved per unit velocity
	SlideDuration float64 `yaml:"slide_duration"` // Seconds; 0 = until released
}

// PaceConfig defines the shared obstacle velocity ramp.
type PaceConfig struct {
	Initial   float64 `yaml:"initial"`   // Cells per frame at game entry
	Increment float64 `yaml:"increment"` // Added per ramped spawn event
	Max       float64 `yaml:"max"`       // Ceiling
}

// SpawnConfig defines the spawn tables.
type SpawnConfig struct {
	Grace      int              `yaml:"grace"` // Quiet seconds after game entry
	Categories []CategoryConfig `yaml:"categories"`
}

// CategoryConfig is one spawn table.
type CategoryConfig struct {
	Name string      `yaml:"name"`
	Rate int         `yaml:"rate"` // Whole seconds between spawns
	Ramp bool        `yaml:"ramp"` // Bump pace on each spawn
	Pool []PoolEntry `yaml:"pool"`
}

// PoolEntry is one template of a spawn table.
type PoolEntry struct {
	Kind     string  `yaml:"kind"`     // chair, table, bottle, bin or decorative
	Sprite   string  `yaml:"sprite"`   // Catalog sprite name
	Altitude float64 `yaml:"altitude"` // Cells between ground and sprite bottom
}

// EconomyConfig defines lives, inventory limits and score rules.
type EconomyConfig struct {
	Lives         int     `yaml:"lives"`
	MaxChairs     int     `yaml:"max_chairs"`
	MaxBottles    int     `yaml:"max_bottles"`
	TableBonus    int     `yaml:"table_bonus"`
	BinMultiplier int     `yaml:"bin_multiplier"` // Points per recycled bottle
	BottlePenalty int     `yaml:"bottle_penalty"` // Points lost per missed bottle
	ScoreRate     float64 `yaml:"score_rate"`     // Points per frame survived
}

// PlayerConfig places the player.
type PlayerConfig struct {
	X            float64 `yaml:"x"`
	GroundOffset int     `yaml:"ground_offset"` // Rows below the ground line
}

// IntroConfig defines the splash fade.
type IntroConfig struct {
	DeltaAlpha float64 `yaml:"delta_alpha"` // Alpha change per frame
	EndAlpha   float64 `yaml:"end_alpha"`   // Advance once alpha falls below
}

// Validate reports tuning that cannot produce a playable run.
func (c RunnerConfig) Validate() error {
	var errs []error
	if c.Physics.MaxVelocity <= 0 || c.Physics.VelocityAdd <= 0 {
		errs = append(errs, errors.New("physics: max_velocity and velocity_add must be positive"))
	}
	if c.Pace.Initial <= 0 {
		errs = append(errs, errors.New("pace: initial must be positive"))
	}
	if c.Economy.Lives <= 0 {
		errs = append(errs, errors.New("economy: lives must be positive"))
	}
	for _, cat := range c.Spawn.Categories {
		if cat.Rate <= 0 {
			errs = append(errs, fmt.Errorf("spawn: category %q: rate must be positive", cat.Name))
		}
		if len(cat.Pool) == 0 {
			errs = append(errs, fmt.Errorf("spawn: category %q: empty pool", cat.Name))
		}
	}
	if c.Intro.DeltaAlpha <= 0 {
		errs = append(errs, errors.New("intro: delta_alpha must be positive"))
	}
	return errors.Join(errs...)
}

// Sprites returns every sprite name the spawn tables reference.
func (c RunnerConfig) Sprites() []string {
	seen := make(map[string]bool)
	var names []string
	for _, cat := range c.Spawn.Categories {
		for _, e := range cat.Pool {
			if !seen[e.Sprite] {
				seen[e.Sprite] = true
				names = append(names, e.Sprite)
			}
		}
	}
	return names
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a flag value to a preset. Empty means "use the file".
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// ApplyPreset modifies the pace ramp based on a difficulty preset.
func ApplyPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Pace.Initial *= 0.75
		cfg.Pace.Max *= 0.8
		cfg.Economy.Lives++
	case DifficultyHard:
		cfg.Pace.Initial *= 1.5
		cfg.Pace.Max *= 1.4
	case DifficultyFixed:
		cfg.Pace.Increment = 0
	}
}
