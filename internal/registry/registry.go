// Package registry provides a global registry for game mode factories.
// Modes register themselves in init() functions, allowing the scene machine
// and the CLI to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/vovakirdan/recycle-runner/internal/assets"
	"github.com/vovakirdan/recycle-runner/internal/config"
	"github.com/vovakirdan/recycle-runner/internal/core"
	"github.com/vovakirdan/recycle-runner/internal/entity"
)

// Env is everything a mode needs to start a session.
type Env struct {
	Runtime core.RuntimeConfig
	Tuning  config.RunnerConfig
	Assets  *assets.Catalog // validated against Tuning.Sprites() by the caller
	Start   time.Time       // wall-clock time of game entry
}

// Game is the interface every play mode implements.
// Modes contain pure logic with no external dependencies (especially no Bubble Tea).
// The scene machine handles input mapping, timing, and rendering.
type Game interface {
	// ID returns a unique identifier for this mode (e.g., "recycle").
	// Used for CLI flags and logged with each session.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset starts a fresh session: counters zeroed, entity set emptied.
	Reset(env Env)

	// Step advances the simulation by one frame.
	Step(tick core.Tick, in core.Intent) core.StepResult

	// Render draws the current session into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current session counters.
	State() core.GameState

	// Resume accounts for time spent paused so spawn cadence skips it.
	Resume(pausedFor time.Duration)

	// Resize moves the running session onto a new screen size.
	Resize(w, h int)

	// Entities returns the active entity set owned by the session.
	Entities() *entity.Set
}

// ModeInfo describes a registered mode for listings.
type ModeInfo struct {
	ID    string
	Title string
}

// Factory builds a fresh, unreset mode.
type Factory func() Game

type entry struct {
	factory Factory
	title   string
}

var (
	mu    sync.RWMutex
	modes = map[string]entry{}
)

// Register makes a mode available under id. It is meant for init() and
// panics on a duplicate id.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, dup := modes[id]; dup {
		panic(fmt.Sprintf("registry: mode %q already registered", id))
	}
	modes[id] = entry{factory: f, title: f().Title()}
}

// List returns the registered modes ordered by id.
func List() []ModeInfo {
	mu.RLock()
	defer mu.RUnlock()

	ids := make([]string, 0, len(modes))
	for id := range modes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]ModeInfo, len(ids))
	for i, id := range ids {
		out[i] = ModeInfo{ID: id, Title: modes[id].title}
	}
	return out
}

// Create builds a new instance of mode id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := modes[id]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("registry: unknown mode %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := modes[id]
	return ok
}
