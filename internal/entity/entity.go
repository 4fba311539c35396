// Package entity implements the simulated objects of a run: the positional
// base, scrolling obstacles, the player state machine and the ordered set
// that owns them for the lifetime of a scene.
package entity

import (
	"github.com/vovakirdan/recycle-runner/internal/assets"
	"github.com/vovakirdan/recycle-runner/internal/core"
)

// Body is anything the active set can update, draw and collide.
type Body interface {
	Update(dt float64)
	Draw(dst *core.Screen)
	WorldHitbox() core.Rect
}

// Entity is a positioned sprite with a local hitbox.
type Entity struct {
	Pos    core.Vec2
	Sprite *assets.Sprite
	// Hitbox is relative to Pos.
	Hitbox core.Rect
}

// New creates an entity whose hitbox covers the sprite bounds.
func New(pos core.Vec2, sprite *assets.Sprite) *Entity {
	return &Entity{Pos: pos, Sprite: sprite, Hitbox: sprite.Bounds()}
}

// Update is a no-op for static entities.
func (e *Entity) Update(float64) {}

// Draw blits the sprite at the entity position.
func (e *Entity) Draw(dst *core.Screen) {
	e.Sprite.Blit(dst, core.Round(e.Pos.X), core.Round(e.Pos.Y))
}

// WorldHitbox returns the hitbox translated by the current position.
func (e *Entity) WorldHitbox() core.Rect {
	return e.Hitbox.Translate(e.Pos)
}

// Width returns the sprite width.
func (e *Entity) Width() float64 {
	return e.Sprite.Width()
}

// Height returns the sprite height.
func (e *Entity) Height() float64 {
	return e.Sprite.Height()
}

// SetSprite swaps the sprite and resets the hitbox to its bounds.
func (e *Entity) SetSprite(s *assets.Sprite) {
	e.Sprite = s
	e.Hitbox = s.Bounds()
}

// Copy returns an independent entity sharing the sprite handle.
func (e *Entity) Copy() *Entity {
	c := *e
	return &c
}

// CollidesWith reports whether the world hitboxes of a and b overlap.
func CollidesWith(a, b Body) bool {
	return a.WorldHitbox().Intersects(b.WorldHitbox())
}
