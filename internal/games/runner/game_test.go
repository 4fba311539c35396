package runner

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/recycle-runner/internal/assets"
	"github.com/vovakirdan/recycle-runner/internal/config"
	"github.com/vovakirdan/recycle-runner/internal/core"
	"github.com/vovakirdan/recycle-runner/internal/entity"
	"github.com/vovakirdan/recycle-runner/internal/registry"
)

var t0 = time.Unix(1_700_000_000, 0)

// quietEnv has no spawn tables, so tests control every obstacle.
func quietEnv(t *testing.T) registry.Env {
	t.Helper()
	catalog, err := assets.Default()
	if err != nil {
		t.Fatalf("assets.Default() error: %v", err)
	}
	tuning := config.DefaultRunnerConfig()
	tuning.Spawn.Categories = nil
	return registry.Env{
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1},
		Tuning:  tuning,
		Assets:  catalog,
		Start:   t0,
	}
}

func newGame(t *testing.T, env registry.Env) *Game {
	t.Helper()
	g := New()
	g.Reset(env)
	return g
}

// place puts an obstacle of kind resting on the ground at x.
func place(g *Game, key string, kind entity.Kind, x float64) *entity.Obstacle {
	sprite := g.catalog.MustSprite(kind.String())
	o := entity.NewObstacle(core.Vec2{X: x, Y: g.groundY - sprite.Height()}, sprite, kind, g.pace)
	if g.classic && kind != entity.KindDecorative {
		o.Collide = entity.CollideLose
	}
	g.Entities().Put(key, o)
	return o
}

func frame(i int) core.Tick {
	return core.Tick{Now: t0.Add(time.Duration(i) * time.Second / 60), Delta: 1}
}

func TestChairMissCostsOneLife(t *testing.T) {
	tests := []struct {
		name     string
		lives    int
		expected int
		gameOver bool
	}{
		{"lives remain", 3, 2, false},
		{"last life", 1, 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := quietEnv(t)
			env.Tuning.Economy.Lives = tc.lives
			g := newGame(t, env)
			place(g, "chair", entity.KindChair, 80)

			var res core.StepResult
			i := 0
			for ; g.Entities().Has("chair") && i < 1000; i++ {
				res = g.Step(frame(i), core.Intent{})
			}
			if g.Entities().Has("chair") {
				t.Fatal("chair never left the screen")
			}

			st := g.State()
			if st.Lives != tc.expected {
				t.Errorf("lives = %d, expected %d", st.Lives, tc.expected)
			}
			if st.GameOver != tc.gameOver {
				t.Errorf("GameOver = %v, expected %v", st.GameOver, tc.gameOver)
			}
			if len(res.Cues) == 0 || res.Cues[len(res.Cues)-1] != core.CueFail {
				t.Errorf("cues = %v, expected fail cue on the removal frame", res.Cues)
			}

			// Further frames must not take more lives
			g.Step(frame(i), core.Intent{})
			if g.State().Lives != tc.expected {
				t.Error("a removed chair was penalized twice")
			}
		})
	}
}

func TestBottlePickup(t *testing.T) {
	env := quietEnv(t)
	env.Tuning.Economy.ScoreRate = 0
	g := newGame(t, env)
	place(g, "bottle", entity.KindBottle, 11)

	res := g.Step(frame(0), core.Intent{Interact: true})

	if res.State.Bottles != 1 {
		t.Errorf("bottles = %d, expected 1", res.State.Bottles)
	}
	if g.Entities().Has("bottle") {
		t.Error("picked-up bottle should be removed")
	}
	if res.State.Score != 0 {
		t.Errorf("score = %d, expected unchanged 0", res.State.Score)
	}
	if len(res.Cues) != 1 || res.Cues[0] != core.CuePickup {
		t.Errorf("cues = %v, expected pickup", res.Cues)
	}
}

func TestCollisionAloneDoesNotConsume(t *testing.T) {
	g := newGame(t, quietEnv(t))
	place(g, "bottle", entity.KindBottle, 11)

	g.Step(frame(0), core.Intent{})
	if !g.Entities().Has("bottle") || g.State().Bottles != 0 {
		t.Error("touching without the action key should not collect")
	}
	if g.Target() != "bottle" {
		t.Errorf("Target() = %q, expected bottle", g.Target())
	}
}

func TestTableTakesCarriedChair(t *testing.T) {
	env := quietEnv(t)
	env.Tuning.Economy.ScoreRate = 0
	g := newGame(t, env)
	g.Player().PickUp()
	place(g, "table", entity.KindTable, 10)

	res := g.Step(frame(0), core.Intent{Interact: true})

	if res.State.Score != 100 {
		t.Errorf("score = %d, expected 100", res.State.Score)
	}
	if res.State.Chairs != 0 || g.Player().Holding() {
		t.Errorf("chairs = %d holding = %v, expected 0 false", res.State.Chairs, g.Player().Holding())
	}
	if res.State.Flipped != 1 {
		t.Errorf("flipped = %d, expected 1", res.State.Flipped)
	}
	if g.Entities().Has("table") {
		t.Error("table should be replaced")
	}
	b, ok := g.Entities().Get("placed:1")
	if !ok {
		t.Fatal("expected a placed table entity")
	}
	placed := b.(*entity.Obstacle)
	if placed.Kind != entity.KindDecorative || placed.Sprite.Name() != "table_placed" {
		t.Errorf("placed = %v %q, expected decorative table_placed", placed.Kind, placed.Sprite.Name())
	}

	// The placed table is never a target again
	g.Step(frame(1), core.Intent{Interact: true})
	if g.Target() != "" {
		t.Errorf("Target() = %q, decorative entities should be ignored", g.Target())
	}
}

func TestTableWithoutChairDoesNothing(t *testing.T) {
	env := quietEnv(t)
	env.Tuning.Economy.ScoreRate = 0
	g := newGame(t, env)
	place(g, "table", entity.KindTable, 10)

	res := g.Step(frame(0), core.Intent{Interact: true})
	if res.State.Score != 0 || !g.Entities().Has("table") || len(res.Cues) != 0 {
		t.Error("table without a carried chair should not resolve")
	}
}

func TestBinRecyclesBottles(t *testing.T) {
	env := quietEnv(t)
	env.Tuning.Economy.ScoreRate = 0
	g := newGame(t, env)
	g.bottles = 3
	place(g, "bin", entity.KindBin, 10)

	res := g.Step(frame(0), core.Intent{Interact: true})
	if res.State.Score != 75 {
		t.Errorf("score = %d, expected 3*25", res.State.Score)
	}
	if res.State.Bottles != 0 || res.State.Recycled != 3 {
		t.Errorf("bottles %d recycled %d, expected 0 3", res.State.Bottles, res.State.Recycled)
	}

	// Empty-handed at the bin: nothing
	res = g.Step(frame(1), core.Intent{Interact: true})
	if res.State.Score != 75 || len(res.Cues) != 0 {
		t.Error("bin with no bottles should not resolve")
	}
}

func TestInventoryLimits(t *testing.T) {
	env := quietEnv(t)
	g := newGame(t, env)
	for i := 0; i < env.Tuning.Economy.MaxChairs; i++ {
		g.Player().PickUp()
	}
	g.bottles = env.Tuning.Economy.MaxBottles

	place(g, "chair", entity.KindChair, 10)
	g.Step(frame(0), core.Intent{Interact: true})
	if !g.Entities().Has("chair") || g.Player().Carried() != env.Tuning.Economy.MaxChairs {
		t.Error("chair pickup at the limit should be refused")
	}

	g.Entities().Remove("chair")
	place(g, "bottle", entity.KindBottle, 11)
	g.Step(frame(1), core.Intent{Interact: true})
	if !g.Entities().Has("bottle") || g.State().Bottles != env.Tuning.Economy.MaxBottles {
		t.Error("bottle pickup at the limit should be refused")
	}
}

func TestFirstCollisionWins(t *testing.T) {
	g := newGame(t, quietEnv(t))
	place(g, "b", entity.KindBottle, 11)
	place(g, "a", entity.KindBottle, 12)

	res := g.Step(frame(0), core.Intent{Interact: true})
	if g.Entities().Has("b") || !g.Entities().Has("a") {
		t.Error("the first inserted obstacle should be the one consumed")
	}
	if res.State.Bottles != 1 {
		t.Errorf("bottles = %d, only one action resolves per press", res.State.Bottles)
	}
}

func TestBottleMissPenalty(t *testing.T) {
	env := quietEnv(t)
	env.Tuning.Economy.ScoreRate = 0
	g := newGame(t, env)
	o := place(g, "bottle", entity.KindBottle, -0.7)
	o.Pos.Y = 0 // out of the player's reach

	res := g.Step(frame(0), core.Intent{})
	if res.State.Score != -50 {
		t.Errorf("score = %d, expected -50", res.State.Score)
	}
	if res.State.Lives != env.Tuning.Economy.Lives {
		t.Error("bottle miss should not cost a life")
	}
}

func TestClassicContactEndsRun(t *testing.T) {
	g := NewClassic()
	g.Reset(quietEnv(t))
	place(g, "chair", entity.KindChair, 11)

	res := g.Step(frame(0), core.Intent{})
	if !res.State.GameOver {
		t.Fatal("contact in classic mode should end the run")
	}
	if len(res.Cues) != 1 || res.Cues[0] != core.CueFail {
		t.Errorf("cues = %v, expected fail", res.Cues)
	}

	// Steps after game over are inert
	before := g.State()
	g.Step(frame(1), core.Intent{Jump: true})
	if g.State() != before {
		t.Error("state changed after game over")
	}
}

func TestClassicMissNoPenalty(t *testing.T) {
	g := NewClassic()
	g.Reset(quietEnv(t))
	o := place(g, "chair", entity.KindChair, -2.9)
	o.Pos.Y = 0

	g.Step(frame(0), core.Intent{})
	if g.State().Lives != 3 || g.State().GameOver {
		t.Error("classic mode has no miss penalties")
	}
}

func TestJumpCueAndScoreRate(t *testing.T) {
	g := newGame(t, quietEnv(t))

	res := g.Step(frame(0), core.Intent{Jump: true})
	if len(res.Cues) != 1 || res.Cues[0] != core.CueJump {
		t.Errorf("cues = %v, expected jump", res.Cues)
	}
	if g.Player().State() != entity.Jumping {
		t.Error("player should be jumping")
	}

	res = g.Step(frame(1), core.Intent{Jump: true})
	if len(res.Cues) != 0 {
		t.Error("no jump cue while airborne")
	}

	for i := 2; i < 50; i++ {
		g.Step(frame(i), core.Intent{})
	}
	// 50 frames at 0.1 per frame
	if g.State().Score != 5 {
		t.Errorf("score = %d, expected 5", g.State().Score)
	}
}

func TestSpawnTablesFeedTheSet(t *testing.T) {
	env := quietEnv(t)
	env.Tuning = config.DefaultRunnerConfig()
	g := newGame(t, env)

	g.Step(core.Tick{Now: t0.Add(2 * time.Second), Delta: 1}, core.Intent{})
	if !g.Entities().Has("obstacle:2") {
		t.Fatalf("expected obstacle spawn at second 2, have %v", g.Entities().Keys())
	}
	if g.pace.Current() <= env.Tuning.Pace.Initial {
		t.Error("a ramped spawn should bump the pace")
	}

	b, _ := g.Entities().Get("obstacle:2")
	o := b.(*entity.Obstacle)
	if o.Pos.Y+o.Height() != g.groundY {
		t.Errorf("spawned obstacle bottom = %v, expected ground %v", o.Pos.Y+o.Height(), g.groundY)
	}
}

func TestResizeMovesGroundAndSpawnEdge(t *testing.T) {
	env := quietEnv(t)
	env.Tuning = config.DefaultRunnerConfig()
	g := newGame(t, env)
	chair := place(g, "chair", entity.KindChair, 50)

	g.Resize(120, 30)
	if g.groundY != 27 {
		t.Fatalf("ground = %v, expected 27", g.groundY)
	}
	if chair.Pos.Y+chair.Height() != g.groundY {
		t.Errorf("chair bottom = %v, expected the new ground", chair.Pos.Y+chair.Height())
	}
	if p := g.Player(); p.Pos.Y+p.Height() != g.groundY {
		t.Errorf("player feet = %v, expected the new ground", p.Pos.Y+p.Height())
	}

	g.Step(core.Tick{Now: t0.Add(2 * time.Second), Delta: 1}, core.Intent{})
	b, ok := g.Entities().Get("obstacle:2")
	if !ok {
		t.Fatalf("expected obstacle spawn at second 2, have %v", g.Entities().Keys())
	}
	o := b.(*entity.Obstacle)
	if o.Pos.X <= 119 || o.Pos.X > 120 {
		t.Errorf("spawn x = %v, expected just inside the new edge 120", o.Pos.X)
	}
	if o.Pos.Y+o.Height() != g.groundY {
		t.Errorf("spawn bottom = %v, expected ground %v", o.Pos.Y+o.Height(), g.groundY)
	}
}

func TestResumeShiftsSpawnClock(t *testing.T) {
	env := quietEnv(t)
	env.Tuning = config.DefaultRunnerConfig()
	g := newGame(t, env)

	g.Resume(10 * time.Second)
	g.Step(core.Tick{Now: t0.Add(12 * time.Second), Delta: 1}, core.Intent{})
	if !g.Entities().Has("obstacle:2") {
		t.Errorf("paused time should not count, have %v", g.Entities().Keys())
	}
}

func TestResetClearsSession(t *testing.T) {
	env := quietEnv(t)
	g := newGame(t, env)
	place(g, "bottle", entity.KindBottle, 11)
	g.Step(frame(0), core.Intent{Interact: true})
	g.Player().PickUp()

	g.Reset(env)
	st := g.State()
	if st.Score != 0 || st.Bottles != 0 || st.Chairs != 0 || st.Lives != 3 || st.GameOver {
		t.Errorf("state after reset = %+v", st)
	}
	if g.Entities().Len() != 0 {
		t.Error("reset should empty the entity set")
	}
}

func TestRenderDrawsHUD(t *testing.T) {
	g := newGame(t, quietEnv(t))
	place(g, "bin", entity.KindBin, 40)
	dst := core.NewScreen(80, 24)
	g.Render(dst)

	if got := dst.Row(0); !strings.Contains(got, "Score: 0") || !strings.Contains(got, "Bottles 0/5") {
		t.Errorf("HUD row = %q", got)
	}
	if dst.Get(0, 21) != '=' {
		t.Error("expected ground line on row 21")
	}
	if dst.Get(41, 19) != 'R' {
		t.Error("expected bin sprite")
	}
}

func TestModesRegistered(t *testing.T) {
	for _, id := range []string{ModeRecycle, ModeClassic} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q) error: %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, expected %q", g.ID(), id)
		}
	}
	if _, err := registry.Create("pinball"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
