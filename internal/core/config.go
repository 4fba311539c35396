package core

import "time"

// RuntimeConfig contains configuration passed to the game at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Target frames per second (default 60)
	Seed     int64 // RNG seed for template selection
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Tick describes one rendered frame.
type Tick struct {
	// Now is the wall-clock time at the start of the frame.
	Now time.Time
	// Delta is the actual frame time normalized to the target frequency:
	// 1.0 means exactly one target frame elapsed.
	Delta float64
}

// NewTick builds a Tick from the previous frame time and the target rate.
// The delta is clamped to [0, 4] so a stalled terminal cannot teleport entities.
func NewTick(prev, now time.Time, tickRate int) Tick {
	if tickRate <= 0 {
		tickRate = 60
	}
	if prev.IsZero() {
		return Tick{Now: now, Delta: 1}
	}
	frame := time.Second / time.Duration(tickRate)
	delta := float64(now.Sub(prev)) / float64(frame)
	return Tick{Now: now, Delta: ClampF(delta, 0, 4)}
}

// Cue names a sound effect requested by the simulation.
type Cue string

// Sound cues emitted by the game.
const (
	CueFail    Cue = "fail"
	CuePickup  Cue = "pickup"
	CuePlace   Cue = "place"
	CueRecycle Cue = "recycle"
	CuePenalty Cue = "penalty"
	CueJump    Cue = "jump"
)

// GameState is a snapshot of the session counters.
type GameState struct {
	Score    int  // Rounded score as displayed
	Lives    int  // Remaining lives
	Bottles  int  // Bottles currently carried
	Chairs   int  // Chairs currently carried
	Recycled int  // Bottles delivered to bins this session
	Flipped  int  // Chairs placed on tables this session
	GameOver bool // Whether the session has ended
}

// StepResult is returned by Game.Step() after each frame.
type StepResult struct {
	State GameState
	Cues  []Cue
}
