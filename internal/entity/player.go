package entity

import (
	"github.com/vovakirdan/recycle-runner/internal/assets"
	"github.com/vovakirdan/recycle-runner/internal/core"
)

// PlayerState is the movement state of the player. Holding is tracked
// separately and overlays any of these.
type PlayerState int

const (
	Grounded PlayerState = iota
	Jumping
	Sliding
)

// String returns the state name.
func (s PlayerState) String() string {
	switch s {
	case Grounded:
		return "grounded"
	case Jumping:
		return "jumping"
	case Sliding:
		return "sliding"
	default:
		return "unknown"
	}
}

// PlayerPhysics holds the jump and slide constants.
type PlayerPhysics struct {
	MaxVelocity float64 // Upward velocity at take-off
	VelocityAdd float64 // Velocity lost per normalized frame
	JumpScale   float64 // Position change per unit velocity
	// SlideFrames is how long a slide lasts in normalized frames.
	// Zero means the slide lasts until StopSliding.
	SlideFrames float64
}

// PlayerPoses are the sprites the player swaps between.
type PlayerPoses struct {
	Side  *assets.Sprite
	Jump  *assets.Sprite
	Hold  *assets.Sprite
	Slide *assets.Sprite
	Carry *assets.Sprite // drawn once per carried chair above the head
}

// Player is the controllable runner.
type Player struct {
	Entity
	GroundY float64

	physics   PlayerPhysics
	poses     PlayerPoses
	state     PlayerState
	velocity  float64
	holding   bool
	carried   int
	slideLeft float64
}

// NewPlayer places a grounded player at x with its feet on groundY.
func NewPlayer(x, groundY float64, poses PlayerPoses, physics PlayerPhysics) *Player {
	p := &Player{
		GroundY:  groundY,
		physics:  physics,
		poses:    poses,
		velocity: physics.MaxVelocity,
	}
	p.Entity = *New(core.Vec2{X: x, Y: groundY - poses.Side.Height()}, poses.Side)
	return p
}

// State returns the movement state.
func (p *Player) State() PlayerState { return p.state }

// Holding reports whether the player is carrying chairs.
func (p *Player) Holding() bool { return p.holding }

// Carried returns the number of chairs carried.
func (p *Player) Carried() int { return p.carried }

// Velocity returns the current vertical velocity.
func (p *Player) Velocity() float64 { return p.velocity }

// restPose is the sprite used while grounded.
func (p *Player) restPose() *assets.Sprite {
	if p.holding && p.poses.Hold != nil {
		return p.poses.Hold
	}
	return p.poses.Side
}

// SetGround moves the ground line to y, carrying the player with it.
func (p *Player) SetGround(y float64) {
	p.Pos = p.Pos.Add(core.Vec2{Y: y - p.GroundY})
	p.GroundY = y
}

func (p *Player) ground() {
	p.Pos.Y = p.GroundY - p.Height()
}

// Jump takes off from the ground. Jumping out of a slide ends the slide
// first. Returns false if already airborne.
func (p *Player) Jump() bool {
	if p.state == Jumping {
		return false
	}
	if p.state == Sliding {
		p.StopSliding()
	}
	p.state = Jumping
	p.velocity = p.physics.MaxVelocity
	if p.poses.Jump != nil {
		p.SetSprite(p.poses.Jump)
	}
	return true
}

// Slide ducks into the slide pose. Only reachable from the ground.
// Sliding again while sliding restarts the slide timer.
func (p *Player) Slide() bool {
	switch p.state {
	case Jumping:
		return false
	case Sliding:
		p.slideLeft = p.physics.SlideFrames
		return true
	}
	p.state = Sliding
	p.slideLeft = p.physics.SlideFrames
	if p.poses.Slide != nil {
		p.SetSprite(p.poses.Slide)
	}
	p.ground()
	return true
}

// StopSliding restores the rest pose.
func (p *Player) StopSliding() {
	if p.state != Sliding {
		return
	}
	p.state = Grounded
	p.slideLeft = 0
	p.SetSprite(p.restPose())
	p.ground()
}

// Hold enters the carrying overlay.
func (p *Player) Hold() {
	p.holding = true
	if p.state == Grounded {
		p.SetSprite(p.restPose())
		p.ground()
	}
}

// Place leaves the carrying overlay.
func (p *Player) Place() {
	p.holding = false
	if p.state == Grounded {
		p.SetSprite(p.restPose())
		p.ground()
	}
}

// PickUp adds a carried chair and enters Holding.
func (p *Player) PickUp() {
	p.carried++
	p.Hold()
}

// DropOne removes one carried chair. Holding ends with the last one.
func (p *Player) DropOne() {
	if p.carried == 0 {
		return
	}
	p.carried--
	if p.carried == 0 {
		p.Place()
	}
}

// Update advances jump physics and the slide timer by dt normalized frames.
func (p *Player) Update(dt float64) {
	switch p.state {
	case Jumping:
		p.Pos.Y -= p.velocity * p.physics.JumpScale * dt
		p.velocity -= p.physics.VelocityAdd * dt
		if p.Pos.Y+p.Height() >= p.GroundY {
			p.land()
		}
	case Sliding:
		if p.physics.SlideFrames > 0 {
			p.slideLeft -= dt
			if p.slideLeft <= 0 {
				p.StopSliding()
			}
		}
	}
}

func (p *Player) land() {
	p.state = Grounded
	p.SetSprite(p.restPose())
	p.ground()
	p.velocity = p.physics.MaxVelocity
}

// Draw blits the player and the stack of carried chairs above it.
func (p *Player) Draw(dst *core.Screen) {
	p.Entity.Draw(dst)
	if p.poses.Carry == nil {
		return
	}
	x := core.Round(p.Pos.X)
	y := p.Pos.Y
	for i := 0; i < p.carried; i++ {
		y -= p.poses.Carry.Height()
		p.poses.Carry.Blit(dst, x, core.Round(y))
	}
}
