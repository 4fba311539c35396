package scene

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/recycle-runner/internal/assets"
	"github.com/vovakirdan/recycle-runner/internal/config"
	"github.com/vovakirdan/recycle-runner/internal/core"
	"github.com/vovakirdan/recycle-runner/internal/entity"
	"github.com/vovakirdan/recycle-runner/internal/games/runner"
	"github.com/vovakirdan/recycle-runner/internal/gui"
	"github.com/vovakirdan/recycle-runner/internal/storage"
)

var t0 = time.Unix(1_700_000_000, 0)

type recMixer struct {
	plays []string
	loops []string
	stops int
	music float64
	sfx   float64
}

func (r *recMixer) Play(s *assets.Sound, loop bool) {
	if loop {
		r.loops = append(r.loops, s.Name)
	} else {
		r.plays = append(r.plays, s.Name)
	}
}

func (r *recMixer) Stop() { r.stops++ }

func (r *recMixer) SetVolume(music, sfx float64) { r.music, r.sfx = music, sfx }

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

type rig struct {
	t       *testing.T
	m       *Machine
	mixer   *recMixer
	catalog *assets.Catalog
	frame   int
}

// newRig runs the game with no spawn tables and a single life.
func newRig(t *testing.T, entries ...storage.Entry) *rig {
	t.Helper()
	tuning := config.DefaultRunnerConfig()
	tuning.Spawn.Categories = nil
	tuning.Economy.Lives = 1
	return newTunedRig(t, tuning, entries...)
}

func newTunedRig(t *testing.T, tuning config.RunnerConfig, entries ...storage.Entry) *rig {
	t.Helper()
	catalog, err := assets.Default()
	if err != nil {
		t.Fatalf("assets.Default() error: %v", err)
	}

	runs := 0
	mixer := &recMixer{}
	m, err := New(Deps{
		Runtime:     core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1},
		Tuning:      tuning,
		Mode:        runner.ModeRecycle,
		Assets:      catalog,
		Mixer:       mixer,
		Settings:    storage.DefaultSettings(),
		Leaderboard: storage.NewLeaderboard(entries),
		NewRunID: func() string {
			runs++
			return fmt.Sprintf("run-%d", runs)
		},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return &rig{t: t, m: m, mixer: mixer, catalog: catalog}
}

func (r *rig) step(events ...core.Event) {
	in := core.NewInputFrame()
	for _, e := range events {
		in.Push(e)
	}
	r.m.Step(core.Tick{Now: t0.Add(time.Duration(r.frame) * time.Second / 60), Delta: 1}, in)
	r.frame++
}

func (r *rig) press(keys ...string) {
	for _, k := range keys {
		r.step(core.KeyDown(k))
	}
}

func (r *rig) click(b *gui.Button) {
	r.t.Helper()
	if b == nil {
		r.t.Fatal("click on missing button")
	}
	r.step(
		core.Event{Kind: core.EventPointerMove, X: b.X + 1, Y: b.Y},
		core.Event{Kind: core.EventPointerDown},
		core.Event{Kind: core.EventPointerUp},
	)
}

func (r *rig) expect(k Kind) {
	r.t.Helper()
	if got := r.m.Kind(); got != k {
		r.t.Fatalf("scene = %s, expected %s", got, k)
	}
}

func (r *rig) toMenu() {
	r.t.Helper()
	r.press("space")
	r.expect(MainMenu)
}

func (r *rig) toGame() {
	r.t.Helper()
	r.toMenu()
	r.press("enter")
	r.expect(Game)
}

// placeChair drops a chair into the run at x, scrolling at the default pace.
func (r *rig) placeChair(key string, x float64) {
	p := config.DefaultRunnerConfig().Pace
	chair := r.catalog.MustSprite("chair")
	r.m.Game().Entities().Put(key, entity.NewObstacle(core.Vec2{X: x, Y: 0}, chair, entity.KindChair, entity.NewPace(p.Initial, 0, p.Max)))
}

// toLose runs a one-life session until a missed chair ends it.
func (r *rig) toLose() *entity.Set {
	r.t.Helper()
	r.toGame()
	set := r.m.Game().Entities()
	r.placeChair("chair", 2)
	for i := 0; i < 1000 && r.m.Kind() == Game; i++ {
		r.step()
	}
	r.expect(Lose)
	return set
}

func TestIntroFadesToMainMenu(t *testing.T) {
	r := newRig(t)
	studio := r.m.Widgets().Label("studio")

	frames := 0
	for r.m.Kind() == Intro && frames < 1000 {
		r.step()
		frames++
		if frames == 10 && studio.Alpha != 31 {
			t.Errorf("alpha after 10 frames = %v, expected 31", studio.Alpha)
		}
	}
	// 85 frames up to 255, then 89 down past -10
	if frames != 174 {
		t.Errorf("intro lasted %d frames, expected 174", frames)
	}
	r.expect(MainMenu)
	if !contains(r.mixer.loops, "main_menu") {
		t.Errorf("loops = %v, expected main menu music", r.mixer.loops)
	}
}

func TestIntroAnyKeySkips(t *testing.T) {
	r := newRig(t)
	r.press("x")
	r.expect(MainMenu)
}

func TestTransitionClearsWidgets(t *testing.T) {
	r := newRig(t)
	r.toMenu()
	menu := r.m.Widgets()
	stops := r.mixer.stops

	r.press("enter")
	r.expect(Game)
	if menu.Len() != 0 {
		t.Errorf("main menu widgets = %d after leaving, expected 0", menu.Len())
	}
	if r.mixer.stops != stops+1 {
		t.Errorf("mixer stops = %d, expected %d", r.mixer.stops, stops+1)
	}
	if !contains(r.mixer.loops, "go") {
		t.Errorf("loops = %v, expected game music", r.mixer.loops)
	}
}

func TestInvalidTransitionPanics(t *testing.T) {
	r := newRig(t)
	r.toMenu()

	defer func() {
		msg := fmt.Sprint(recover())
		if msg != "scene: invalid transition main_menu -> lose" {
			t.Errorf("panic = %q", msg)
		}
	}()
	r.m.Transition(Lose)
}

func TestTransitionTable(t *testing.T) {
	tests := []struct {
		from, to Kind
		expected bool
	}{
		{Intro, MainMenu, true},
		{Intro, Game, false},
		{MainMenu, Game, true},
		{Game, Pause, true},
		{Game, MainMenu, false},
		{Pause, MainMenu, true},
		{Lose, Game, true},
		{Settings, BindKey, true},
		{BindKey, MainMenu, false},
	}
	for _, tc := range tests {
		if got := Allowed(tc.from, tc.to); got != tc.expected {
			t.Errorf("Allowed(%s, %s) = %v, expected %v", tc.from, tc.to, got, tc.expected)
		}
	}
}

func TestPauseKeepsRun(t *testing.T) {
	r := newRig(t)
	r.toGame()
	g := r.m.Game()
	r.placeChair("chair", 60)
	r.step()

	r.press("p")
	r.expect(Pause)
	if r.m.Game() != g || !g.Entities().Has("chair") {
		t.Fatal("pause should keep the run and its entities")
	}

	body, _ := g.Entities().Get("chair")
	x := body.(*entity.Obstacle).Pos.X
	for i := 0; i < 30; i++ {
		r.step()
	}
	if got := body.(*entity.Obstacle).Pos.X; got != x {
		t.Errorf("chair moved from %v to %v while paused", x, got)
	}

	r.press("p")
	r.expect(Game)
	if r.m.Game() != g || !g.Entities().Has("chair") {
		t.Error("resume should continue the same run")
	}
}

func TestPauseMenuAbandonsRun(t *testing.T) {
	r := newRig(t)
	r.toGame()
	set := r.m.Game().Entities()
	r.placeChair("chair", 60)

	r.press("p", "down", "enter")
	r.expect(MainMenu)
	if set.Len() != 0 || r.m.Game() != nil {
		t.Error("leaving a paused run should clear its entities")
	}
}

func TestGameOverClearsRun(t *testing.T) {
	r := newRig(t)
	set := r.toLose()

	if set.Len() != 0 || r.m.Game() != nil {
		t.Error("game over should clear the run's entities")
	}
	if !r.m.LastRun().GameOver || r.m.LastRun().Lives != 0 {
		t.Errorf("last run = %+v, expected game over with no lives", r.m.LastRun())
	}
	if !contains(r.mixer.plays, "fail") {
		t.Errorf("plays = %v, expected fail cue", r.mixer.plays)
	}
}

func TestLoseSubmitsName(t *testing.T) {
	r := newRig(t)
	r.toLose()

	r.press("a", "d", "a", "enter")
	r.expect(MainMenu)

	lb := r.m.Leaderboard()
	if lb.Len() != 1 {
		t.Fatalf("leaderboard has %d entries, expected 1", lb.Len())
	}
	e := lb.Entries()[0]
	if e.Name != "ada" || e.Score != r.m.LastRun().Score || e.RunID != "run-1" {
		t.Errorf("entry = %+v", e)
	}
}

func TestLoseRequiresName(t *testing.T) {
	r := newRig(t)
	r.toLose()

	r.press("space", "enter")
	r.expect(Lose)
	if r.m.Leaderboard().Len() != 0 {
		t.Error("blank name should not be recorded")
	}
	if !strings.Contains(r.m.Widgets().Label("prompt").Text, "required") {
		t.Error("prompt should ask for a name")
	}
}

func TestLoseRetryCommitsOnce(t *testing.T) {
	r := newRig(t)
	r.toLose()

	// name -> submit -> retry
	r.press("b", "o", "down", "down", "enter")
	r.expect(Game)
	if r.m.Leaderboard().Len() != 1 {
		t.Errorf("leaderboard has %d entries, expected 1", r.m.Leaderboard().Len())
	}
	if r.m.RunID() != "run-2" {
		t.Errorf("retry run ID = %q, expected run-2", r.m.RunID())
	}
}

func TestLoseBackWithoutName(t *testing.T) {
	r := newRig(t)
	r.toLose()

	r.press("esc")
	r.expect(MainMenu)
	if r.m.Leaderboard().Len() != 0 {
		t.Error("leaving without a name should record nothing")
	}
}

func TestMainMenuShowsHighScore(t *testing.T) {
	r := newRig(t, storage.Entry{Name: "a", Score: 40}, storage.Entry{Name: "b", Score: 90})
	r.toMenu()

	if got := r.m.Widgets().Label("best").Text; got != "High score: 90" {
		t.Errorf("best = %q", got)
	}
}

func TestLeaderboardScreen(t *testing.T) {
	r := newRig(t, storage.Entry{Name: "low", Score: 5}, storage.Entry{Name: "high", Score: 500})
	r.toMenu()

	r.click(r.m.Widgets().Button("leaderboard"))
	r.expect(Leaderboard)
	if row := r.m.Widgets().Label("row0").Text; !strings.Contains(row, "high") || !strings.Contains(row, "500") {
		t.Errorf("first row = %q, expected the best run", row)
	}

	r.press("esc")
	r.expect(MainMenu)
}

func TestSettingsVolume(t *testing.T) {
	r := newRig(t)
	r.toMenu()
	r.click(r.m.Widgets().Button("settings"))
	r.expect(Settings)

	r.click(r.m.Widgets().Button("music+"))
	r.click(r.m.Widgets().Button("sfx-"))

	st := r.m.Settings()
	if st.MusicVolume != 0.6 || st.SFXVolume != 0.4 {
		t.Errorf("volumes = %v/%v, expected 0.6/0.4", st.MusicVolume, st.SFXVolume)
	}
	if r.mixer.music != 0.6 || r.mixer.sfx != 0.4 {
		t.Errorf("mixer volumes = %v/%v", r.mixer.music, r.mixer.sfx)
	}
	if !strings.Contains(r.m.Widgets().Label("music").Text, "60%") {
		t.Errorf("music label = %q", r.m.Widgets().Label("music").Text)
	}

	for i := 0; i < 8; i++ {
		r.click(r.m.Widgets().Button("music+"))
	}
	if r.m.Settings().MusicVolume != 1 {
		t.Errorf("music = %v, expected clamp at 1", r.m.Settings().MusicVolume)
	}
}

func TestRebindActionKey(t *testing.T) {
	r := newRig(t)
	r.toMenu()
	r.click(r.m.Widgets().Button("settings"))
	r.click(r.m.Widgets().Button("rebind"))
	r.expect(BindKey)

	r.press("p")
	r.expect(BindKey)
	if !strings.Contains(r.m.Widgets().Label("hint").Text, "taken") {
		t.Error("reserved key should be refused")
	}

	r.press("f")
	r.expect(Settings)
	km := r.m.Keymap()
	if r.m.Settings().ActionKeybind != "f" || !km.Is("f", core.ActionInteract) || km.Is("e", core.ActionInteract) {
		t.Errorf("binding = %q, expected f only", r.m.Settings().ActionKeybind)
	}
	if !strings.Contains(r.m.Widgets().Button("rebind").Text, ": f") {
		t.Errorf("rebind button = %q", r.m.Widgets().Button("rebind").Text)
	}
}

func TestBindKeyEscCancels(t *testing.T) {
	r := newRig(t)
	r.toMenu()
	r.click(r.m.Widgets().Button("settings"))
	r.click(r.m.Widgets().Button("rebind"))

	r.press("esc")
	r.expect(Settings)
	if r.m.Settings().ActionKeybind != core.DefaultActionKey {
		t.Error("cancel should keep the binding")
	}
}

func TestQuit(t *testing.T) {
	tests := []struct {
		name  string
		event core.Event
	}{
		{"ctrl+c", core.KeyDown("ctrl+c")},
		{"window close", core.Event{Kind: core.EventQuit}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newRig(t)
			r.toGame()
			r.step(tc.event)
			if r.m.Running() {
				t.Error("quit should stop the machine")
			}
		})
	}
}

func TestExitButton(t *testing.T) {
	r := newRig(t)
	r.toMenu()
	r.press("up", "enter")
	if r.m.Running() {
		t.Error("exit should stop the machine")
	}
}

func TestEventsAfterTransitionDropped(t *testing.T) {
	r := newRig(t)
	r.toMenu()
	r.step(core.KeyDown("enter"), core.KeyDown("esc"))
	r.expect(Game)
}

func TestApplyTuningOnNextRun(t *testing.T) {
	r := newRig(t)
	r.toGame()

	cfg := config.DefaultRunnerConfig()
	cfg.Spawn.Categories = nil
	cfg.Economy.Lives = 7
	if err := r.m.ApplyTuning(cfg); err != nil {
		t.Fatalf("ApplyTuning() error: %v", err)
	}
	if r.m.Game().State().Lives != 1 {
		t.Error("reload should not change the running session")
	}

	r.press("p", "down", "enter", "enter")
	r.expect(Game)
	if got := r.m.Game().State().Lives; got != 7 {
		t.Errorf("lives = %d in the next run, expected 7", got)
	}

	cfg.Economy.Lives = 0
	if err := r.m.ApplyTuning(cfg); err == nil {
		t.Error("invalid tuning should be rejected")
	}
}

func TestResizeRelayouts(t *testing.T) {
	r := newRig(t)
	r.toMenu()
	r.m.Resize(120, 40)

	play := r.m.Widgets().Button("play")
	if cx := play.X + int(play.Bounds().W)/2; cx != 60 {
		t.Errorf("play centered on %d, expected 60", cx)
	}
}

func TestResizeMovesLiveRun(t *testing.T) {
	r := newRig(t)
	r.toGame()
	r.placeChair("chair", 60)
	body, _ := r.m.Game().Entities().Get("chair")
	chair := body.(*entity.Obstacle)
	y := chair.Pos.Y

	r.m.Resize(100, 30)

	p := r.m.Game().(*runner.Game).Player()
	if p.GroundY != 27 {
		t.Errorf("player ground = %v, expected 27", p.GroundY)
	}
	if chair.Pos.Y != y+6 {
		t.Errorf("chair y = %v, expected %v", chair.Pos.Y, y+6)
	}
}

// spawnTrace plays a little over seconds of the current run and lists each
// spawn key with the height of the template it produced.
func (r *rig) spawnTrace(seconds int) []string {
	seen := map[string]bool{}
	var trace []string
	for i := 0; i < seconds*60+30; i++ {
		r.step()
		r.m.Game().Entities().Each(func(key string, b entity.Body) {
			if !seen[key] {
				seen[key] = true
				trace = append(trace, fmt.Sprintf("%s@%.0f", key, b.WorldHitbox().Y))
			}
		})
	}
	return trace
}

func TestRunsDrawDifferentTemplates(t *testing.T) {
	tuning := config.DefaultRunnerConfig()
	clouds := config.CategoryConfig{Name: "scenery", Rate: 1}
	for _, alt := range []float64{2, 5, 8, 11, 14} {
		clouds.Pool = append(clouds.Pool, config.PoolEntry{Kind: "decorative", Sprite: "cloud", Altitude: alt})
	}
	tuning.Spawn.Categories = []config.CategoryConfig{clouds}
	r := newTunedRig(t, tuning)

	r.toGame()
	first := r.spawnTrace(11)
	r.press("p", "down", "enter")
	r.expect(MainMenu)
	r.press("enter")
	r.expect(Game)
	second := r.spawnTrace(11)

	if len(first) != 11 || len(second) != 11 {
		t.Fatalf("spawned %d and %d clouds, expected 11 each", len(first), len(second))
	}
	if strings.Join(first, " ") == strings.Join(second, " ") {
		t.Errorf("both runs drew the same templates: %v", first)
	}
}

func TestRenderDrawsScene(t *testing.T) {
	r := newRig(t)
	r.toMenu()
	dst := core.NewScreen(80, 24)
	r.m.Render(dst)
	if !strings.Contains(dst.String(), "RECYCLE RUNNER") {
		t.Error("main menu should draw its title")
	}
}
