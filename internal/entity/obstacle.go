package entity

import (
	"github.com/vovakirdan/recycle-runner/internal/assets"
	"github.com/vovakirdan/recycle-runner/internal/core"
)

// Kind tags what an obstacle is for resolution purposes.
type Kind int

const (
	KindDecorative Kind = iota
	KindChair
	KindTable
	KindBottle
	KindBin
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindDecorative:
		return "decorative"
	case KindChair:
		return "chair"
	case KindTable:
		return "table"
	case KindBottle:
		return "bottle"
	case KindBin:
		return "bin"
	default:
		return "unknown"
	}
}

// ParseKind maps a kind name to a Kind. Unknown names are decorative.
func ParseKind(name string) Kind {
	switch name {
	case "chair":
		return KindChair
	case "table":
		return KindTable
	case "bottle":
		return KindBottle
	case "bin":
		return KindBin
	default:
		return KindDecorative
	}
}

// CollideAction is what a terminal collision triggers. It is a value, so
// copies of a template never share state with it.
type CollideAction int

const (
	CollideNone CollideAction = iota
	// CollideLose ends the run on contact.
	CollideLose
)

// Obstacle is an entity that scrolls left at its velocity.
type Obstacle struct {
	Entity
	Kind Kind
	// Velocity overrides the shared pace when positive.
	Velocity float64
	Pace     *Pace
	Collide  CollideAction
}

// NewObstacle creates an obstacle template.
func NewObstacle(pos core.Vec2, sprite *assets.Sprite, kind Kind, pace *Pace) *Obstacle {
	return &Obstacle{Entity: *New(pos, sprite), Kind: kind, Pace: pace}
}

// Speed returns the horizontal speed in cells per normalized frame.
func (o *Obstacle) Speed() float64 {
	if o.Velocity > 0 {
		return o.Velocity
	}
	if o.Pace == nil {
		return 0
	}
	return o.Pace.Current()
}

// Update scrolls the obstacle left. Obstacles never move vertically.
func (o *Obstacle) Update(dt float64) {
	o.Pos.X -= o.Speed() * dt
}

// CollidesWith reports whether the obstacle overlaps other.
func (o *Obstacle) CollidesWith(other Body) bool {
	return CollidesWith(o, other)
}

// Offscreen reports whether the obstacle has fully left the left edge.
func (o *Obstacle) Offscreen() bool {
	return o.Pos.X+o.Width() < 0
}

// Copy returns an independent obstacle sharing sprite and pace,
// preserving kind and collide action.
func (o *Obstacle) Copy() *Obstacle {
	c := *o
	return &c
}
