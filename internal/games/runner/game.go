// Package runner implements a Recycle Runner play session: the player runs
// along the ground while chairs, tables, bottles and bins scroll in from
// the right. Two modes are registered: "recycle", where obstacles are
// consumed by pressing the action key while touching them, and "classic",
// where touching any obstacle ends the run.
package runner

import (
	"time"

	"github.com/vovakirdan/recycle-runner/internal/assets"
	"github.com/vovakirdan/recycle-runner/internal/config"
	"github.com/vovakirdan/recycle-runner/internal/core"
	"github.com/vovakirdan/recycle-runner/internal/entity"
	"github.com/vovakirdan/recycle-runner/internal/registry"
	"github.com/vovakirdan/recycle-runner/internal/spawn"
)

// Mode IDs.
const (
	ModeRecycle = "recycle"
	ModeClassic = "classic"
)

// Sprites and sounds a session needs besides the spawn tables.
var (
	RequiredSprites = []string{"player_side", "player_jump", "player_hold", "carry_chair", "table_placed", "ground"}
	RequiredSounds  = []string{"go", "fail", "pickup", "place", "recycle", "penalty", "jump"}
)

// Game is one play session.
type Game struct {
	classic bool

	env     registry.Env
	economy config.EconomyConfig
	catalog *assets.Catalog

	player  *entity.Player
	set     *entity.Set
	pace    *entity.Pace
	spawner *spawn.Spawner
	groundY float64
	start   time.Time

	score    float64
	lives    int
	bottles  int
	recycled int
	flipped  int
	gameOver bool
	target   string // key of this frame's colliding obstacle
	placed   int    // placed-table key sequence
}

// New creates a session in the canonical action-gated mode.
func New() *Game {
	return &Game{set: entity.NewSet()}
}

// NewClassic creates a session where any contact ends the run.
func NewClassic() *Game {
	return &Game{classic: true, set: entity.NewSet()}
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	if g.classic {
		return ModeClassic
	}
	return ModeRecycle
}

// Title returns the display name for this mode.
func (g *Game) Title() string {
	if g.classic {
		return "Recycle Runner Classic"
	}
	return "Recycle Runner"
}

// Reset initializes or restarts the session.
func (g *Game) Reset(env registry.Env) {
	g.env = env
	g.catalog = env.Assets
	g.economy = env.Tuning.Economy
	g.start = env.Start

	g.score = 0
	g.lives = g.economy.Lives
	g.bottles = 0
	g.recycled = 0
	g.flipped = 0
	g.gameOver = false
	g.target = ""
	g.placed = 0
	g.set.Clear()

	g.groundY = float64(env.Runtime.ScreenH - env.Tuning.Player.GroundOffset)

	side := g.catalog.MustSprite("player_side")
	phys := env.Tuning.Physics
	tickRate := env.Runtime.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}
	g.player = entity.NewPlayer(env.Tuning.Player.X, g.groundY, entity.PlayerPoses{
		Side:  side,
		Jump:  g.catalog.MustSprite("player_jump"),
		Hold:  g.catalog.MustSprite("player_hold"),
		Slide: side.Rotate(),
		Carry: g.catalog.MustSprite("carry_chair"),
	}, entity.PlayerPhysics{
		MaxVelocity: phys.MaxVelocity,
		VelocityAdd: phys.VelocityAdd,
		JumpScale:   phys.JumpScale,
		SlideFrames: phys.SlideDuration * float64(tickRate),
	})

	p := env.Tuning.Pace
	g.pace = entity.NewPace(p.Initial, p.Increment, p.Max)
	g.spawner = spawn.New(g.categories(env.Tuning.Spawn), env.Tuning.Spawn.Grace, g.pace, env.Runtime.Seed)
}

// categories builds spawn tables whose templates sit just past the right
// edge, resting on the ground or floating at their altitude.
func (g *Game) categories(cfg config.SpawnConfig) []spawn.Category {
	x := float64(g.env.Runtime.ScreenW)
	cats := make([]spawn.Category, 0, len(cfg.Categories))
	for _, c := range cfg.Categories {
		pool := make([]*entity.Obstacle, 0, len(c.Pool))
		for _, e := range c.Pool {
			sprite := g.catalog.MustSprite(e.Sprite)
			pos := core.Vec2{X: x, Y: g.groundY - e.Altitude - sprite.Height()}
			o := entity.NewObstacle(pos, sprite, entity.ParseKind(e.Kind), g.pace)
			if g.classic && o.Kind != entity.KindDecorative {
				o.Collide = entity.CollideLose
			}
			pool = append(pool, o)
		}
		cats = append(cats, spawn.Category{Name: c.Name, Rate: c.Rate, Pool: pool, Ramp: c.Ramp})
	}
	return cats
}

// Step advances the session by one frame.
func (g *Game) Step(tick core.Tick, in core.Intent) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	var cues []core.Cue
	dt := tick.Delta

	if in.Jump && g.player.Jump() {
		cues = append(cues, core.CueJump)
	}
	if in.Slide || (in.SlideHeld && g.player.State() == entity.Sliding) {
		g.player.Slide()
	}
	if in.SlideUp {
		g.player.StopSliding()
	}

	g.spawner.Tick(g.start, tick.Now, g.set)

	g.player.Update(dt)
	g.score += g.economy.ScoreRate * dt

	cues = append(cues, g.sweep(dt)...)

	if !g.gameOver && g.target != "" {
		if g.classic {
			cues = append(cues, g.touch()...)
		} else if in.Interact {
			cues = append(cues, g.interact()...)
		}
	}

	return core.StepResult{State: g.State(), Cues: cues}
}

// State returns the current session counters.
func (g *Game) State() core.GameState {
	chairs := 0
	if g.player != nil {
		chairs = g.player.Carried()
	}
	return core.GameState{
		Score:    core.Round(g.score),
		Lives:    g.lives,
		Bottles:  g.bottles,
		Chairs:   chairs,
		Recycled: g.recycled,
		Flipped:  g.flipped,
		GameOver: g.gameOver,
	}
}

// Resume shifts the session start past the pause.
func (g *Game) Resume(pausedFor time.Duration) {
	if pausedFor > 0 {
		g.start = g.start.Add(pausedFor)
	}
}

// Resize puts the ground at the new screen bottom and moves everything in
// flight with it. New spawns enter past the new right edge.
func (g *Game) Resize(w, h int) {
	if g.player == nil {
		return
	}
	g.env.Runtime.ScreenW, g.env.Runtime.ScreenH = w, h
	ground := float64(h - g.env.Tuning.Player.GroundOffset)
	shift := core.Vec2{Y: ground - g.groundY}
	g.groundY = ground

	g.player.SetGround(ground)
	g.set.Each(func(_ string, b entity.Body) {
		if o, ok := b.(*entity.Obstacle); ok {
			o.Pos = o.Pos.Add(shift)
		}
	})
	g.spawner.SetCategories(g.categories(g.env.Tuning.Spawn))
}

// Entities returns the active entity set.
func (g *Game) Entities() *entity.Set {
	return g.set
}

// Player returns the runner.
func (g *Game) Player() *entity.Player {
	return g.player
}

// Target returns the key of the obstacle the player touched this frame.
func (g *Game) Target() string {
	return g.target
}

// Register both modes with the registry
func init() {
	registry.Register(ModeRecycle, func() registry.Game {
		return New()
	})
	registry.Register(ModeClassic, func() registry.Game {
		return NewClassic()
	})
}
