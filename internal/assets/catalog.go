// Package assets provides the sprite and sound handles the game draws and
// plays. Handles are opaque to the simulation: it only reads sprite
// dimensions for hitboxes and layout.
package assets

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/recycle-runner/internal/core"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// ErrAssetMissing is returned when a named sprite or sound is not in the catalog.
var ErrAssetMissing = errors.New("asset missing")

// SoundKind distinguishes looping music from one-shot effects.
type SoundKind string

const (
	KindMusic SoundKind = "music"
	KindSFX   SoundKind = "sfx"
)

// Sound is a playable handle.
type Sound struct {
	Name string
	Kind SoundKind
}

type spriteDef struct {
	Color string   `yaml:"color"`
	Rows  []string `yaml:"rows"`
}

type soundDef struct {
	Kind SoundKind `yaml:"kind"`
}

type catalogFile struct {
	Sprites map[string]spriteDef `yaml:"sprites"`
	Sounds  map[string]soundDef  `yaml:"sounds"`
}

// Catalog resolves logical asset names to handles. Handles are created once
// and shared; callers never own pixel data.
type Catalog struct {
	sprites map[string]*Sprite
	sounds  map[string]*Sound
}

// Load parses a catalog from YAML.
func Load(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("assets: cannot parse catalog: %w", err)
	}

	c := &Catalog{
		sprites: make(map[string]*Sprite, len(f.Sprites)),
		sounds:  make(map[string]*Sound, len(f.Sounds)),
	}
	for name, def := range f.Sprites {
		if len(def.Rows) == 0 {
			return nil, fmt.Errorf("assets: sprite %q has no rows", name)
		}
		c.sprites[name] = NewSprite(name, core.ParseColor(def.Color), def.Rows...)
	}
	for name, def := range f.Sounds {
		kind := def.Kind
		if kind == "" {
			kind = KindSFX
		}
		c.sounds[name] = &Sound{Name: name, Kind: kind}
	}
	return c, nil
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Load(defaultCatalogYAML)
}

// Sprite returns the sprite registered under name.
func (c *Catalog) Sprite(name string) (*Sprite, error) {
	s, ok := c.sprites[name]
	if !ok {
		return nil, fmt.Errorf("assets: sprite %q: %w", name, ErrAssetMissing)
	}
	return s, nil
}

// Sound returns the sound registered under name.
func (c *Catalog) Sound(name string) (*Sound, error) {
	s, ok := c.sounds[name]
	if !ok {
		return nil, fmt.Errorf("assets: sound %q: %w", name, ErrAssetMissing)
	}
	return s, nil
}

// MustSprite returns the named sprite and panics if it is missing.
// Use only after Require has validated the catalog.
func (c *Catalog) MustSprite(name string) *Sprite {
	s, err := c.Sprite(name)
	if err != nil {
		panic(err)
	}
	return s
}

// Require checks that every listed sprite and sound exists.
// All missing names are reported together.
func (c *Catalog) Require(sprites, sounds []string) error {
	var errs []error
	for _, name := range sprites {
		if _, err := c.Sprite(name); err != nil {
			errs = append(errs, err)
		}
	}
	for _, name := range sounds {
		if _, err := c.Sound(name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
