package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	def := DefaultRunnerConfig()

	if cfg.Physics != def.Physics {
		t.Errorf("physics = %+v, expected %+v", cfg.Physics, def.Physics)
	}
	if cfg.Pace != def.Pace {
		t.Errorf("pace = %+v, expected %+v", cfg.Pace, def.Pace)
	}
	if cfg.Economy != def.Economy {
		t.Errorf("economy = %+v, expected %+v", cfg.Economy, def.Economy)
	}
	if cfg.Intro != def.Intro || cfg.Player != def.Player {
		t.Error("intro or player section differs from hardcoded default")
	}
	if len(cfg.Spawn.Categories) != len(def.Spawn.Categories) {
		t.Fatalf("got %d spawn categories, expected %d", len(cfg.Spawn.Categories), len(def.Spawn.Categories))
	}
	for i, c := range cfg.Spawn.Categories {
		d := def.Spawn.Categories[i]
		if c.Name != d.Name || c.Rate != d.Rate || c.Ramp != d.Ramp || len(c.Pool) != len(d.Pool) {
			t.Errorf("category %d = %+v, expected %+v", i, c, d)
		}
	}
}

func TestLoadFilePartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runner.yaml")
	data := "pace:\n  initial: 0.7\n  max: 2\neconomy:\n  lives: 5\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if cfg.Pace.Initial != 0.7 || cfg.Pace.Max != 2 {
		t.Errorf("pace = %+v, expected overrides", cfg.Pace)
	}
	if cfg.Pace.Increment != 0.01 {
		t.Errorf("increment = %v, expected default 0.01", cfg.Pace.Increment)
	}
	if cfg.Economy.Lives != 5 || cfg.Economy.TableBonus != 100 {
		t.Errorf("economy = %+v, expected lives override and default bonus", cfg.Economy)
	}
	if len(cfg.Spawn.Categories) != 3 {
		t.Errorf("expected default spawn categories, got %d", len(cfg.Spawn.Categories))
	}
}

func TestLoadFileReplacesCategories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runner.yaml")
	data := `spawn:
  categories:
    - name: recycle
      rate: 1
      pool:
        - { kind: bottle, sprite: bottle }
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if len(cfg.Spawn.Categories) != 1 || cfg.Spawn.Categories[0].Name != "recycle" {
		t.Errorf("categories = %+v, expected only recycle", cfg.Spawn.Categories)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("economy:\n  lives: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(bad)
	if err == nil || !strings.Contains(err.Error(), "lives") {
		t.Errorf("Load() error = %v, expected lives validation error", err)
	}
}

func TestValidateRejectsBadCategory(t *testing.T) {
	cfg := DefaultRunnerConfig()
	cfg.Spawn.Categories = append(cfg.Spawn.Categories, CategoryConfig{Name: "broken"})
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "rate") || !strings.Contains(err.Error(), "empty pool") {
		t.Errorf("error %q should name both problems", err)
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset    DifficultyPreset
		initial   float64
		max       float64
		increment float64
	}{
		{"", 0.4, 1.0, 0.01},
		{DifficultyNormal, 0.4, 1.0, 0.01},
		{DifficultyEasy, 0.3, 0.8, 0.01},
		{DifficultyHard, 0.6, 1.4, 0.01},
		{DifficultyFixed, 0.4, 1.0, 0},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultRunnerConfig()
			ApplyPreset(&cfg, tc.preset)
			if !near(cfg.Pace.Initial, tc.initial) || !near(cfg.Pace.Max, tc.max) || cfg.Pace.Increment != tc.increment {
				t.Errorf("pace = %+v, expected initial %v max %v increment %v", cfg.Pace, tc.initial, tc.max, tc.increment)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset("hard"); err != nil || p != DifficultyHard {
		t.Errorf("ParsePreset(hard) = %q, %v", p, err)
	}
	if _, err := ParsePreset("insane"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestSprites(t *testing.T) {
	got := DefaultRunnerConfig().Sprites()
	expected := []string{"chair", "table", "bottle", "bin", "cloud"}
	if strings.Join(got, ",") != strings.Join(expected, ",") {
		t.Errorf("Sprites() = %v, expected %v", got, expected)
	}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runner.yaml")
	if err := os.WriteFile(path, DefaultYAML(), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := Watch(path)
	if err != nil {
		t.Fatalf("Watch() error: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("pace:\n  initial: 0.9\n  max: 1.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case r := <-w.Reloads:
		if r.Err != nil {
			t.Fatalf("reload error: %v", r.Err)
		}
		if r.Config.Pace.Initial != 0.9 {
			t.Errorf("reloaded pace.initial = %v, expected 0.9", r.Config.Pace.Initial)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}
}

func TestWatcherCloseClosesChannel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runner.yaml")
	if err := os.WriteFile(path, DefaultYAML(), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := Watch(path)
	if err != nil {
		t.Fatalf("Watch() error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
	if _, ok := <-w.Reloads; ok {
		t.Error("Reloads should be closed after Close")
	}
	if err := w.Close(); err != nil {
		t.Error("second Close should be a no-op")
	}
}

func near(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
