package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/recycle-runner/internal/core"
)

// Settings are the player preferences.
type Settings struct {
	MusicVolume   float64 `yaml:"music_volume"`
	SFXVolume     float64 `yaml:"sfx_volume"`
	ActionKeybind string  `yaml:"action_keybind"`
}

// DefaultSettings returns the settings used when none are saved.
func DefaultSettings() Settings {
	return Settings{
		MusicVolume:   0.5,
		SFXVolume:     0.5,
		ActionKeybind: core.DefaultActionKey,
	}
}

// Normalize clamps volumes to [0, 1] and restores the default keybind when
// the stored one is blank or taken by a fixed action.
func (s Settings) Normalize() Settings {
	s.MusicVolume = core.ClampF(s.MusicVolume, 0, 1)
	s.SFXVolume = core.ClampF(s.SFXVolume, 0, 1)
	s.ActionKeybind = strings.TrimSpace(s.ActionKeybind)
	if core.DefaultKeymap(core.DefaultActionKey).Reserved(s.ActionKeybind) {
		s.ActionKeybind = core.DefaultActionKey
	}
	return s
}

// LoadSettings reads settings from path. A missing file yields defaults
// and no error. An unreadable or corrupt file yields defaults and an error
// wrapping ErrCorrupt.
func LoadSettings(path string) (Settings, error) {
	path, err := ExpandHome(path)
	if err != nil {
		return DefaultSettings(), err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return DefaultSettings(), fmt.Errorf("%w: cannot read settings %s: %v", ErrCorrupt, path, err)
	}

	s := DefaultSettings()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("%w: cannot parse settings %s: %v", ErrCorrupt, path, err)
	}
	return s.Normalize(), nil
}

// SaveSettings writes settings to path by replacing the file atomically.
func SaveSettings(path string, s Settings) error {
	path, err := ExpandHome(path)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(s.Normalize())
	if err != nil {
		return fmt.Errorf("storage: cannot encode settings: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".settings-*.yaml")
	if err != nil {
		return fmt.Errorf("storage: cannot create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: cannot write settings: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: cannot sync settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: cannot close settings: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("storage: cannot replace settings: %w", err)
	}
	return nil
}
