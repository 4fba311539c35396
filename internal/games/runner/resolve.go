package runner

import (
	"fmt"

	"github.com/vovakirdan/recycle-runner/internal/core"
	"github.com/vovakirdan/recycle-runner/internal/entity"
)

// sweep moves every obstacle, removes the ones that left the screen with
// their miss penalty, and records the first obstacle touching the player.
func (g *Game) sweep(dt float64) []core.Cue {
	var cues []core.Cue
	g.target = ""

	for _, k := range g.set.Obstacles() {
		o := k.Obstacle
		o.Update(dt)

		if o.Offscreen() {
			g.set.Remove(k.Key)
			if !g.classic {
				cues = append(cues, g.miss(o.Kind)...)
			}
			continue
		}

		if g.target == "" && o.Kind != entity.KindDecorative && o.CollidesWith(g.player) {
			g.target = k.Key
		}
	}
	return cues
}

// miss applies the penalty for an obstacle that left unconsumed.
func (g *Game) miss(kind entity.Kind) []core.Cue {
	switch kind {
	case entity.KindChair:
		if g.lives > 0 {
			g.lives--
		}
		if g.lives == 0 {
			g.gameOver = true
		}
		return []core.Cue{core.CueFail}
	case entity.KindBottle:
		g.score -= float64(g.economy.BottlePenalty)
		return []core.Cue{core.CuePenalty}
	case entity.KindTable, entity.KindBin, entity.KindDecorative:
		return nil
	}
	return nil
}

// touch resolves a contact in classic mode.
func (g *Game) touch() []core.Cue {
	o := g.targetObstacle()
	if o == nil || o.Collide != entity.CollideLose {
		return nil
	}
	g.gameOver = true
	return []core.Cue{core.CueFail}
}

// interact resolves one action press against the current target.
func (g *Game) interact() []core.Cue {
	o := g.targetObstacle()
	if o == nil {
		return nil
	}

	switch o.Kind {
	case entity.KindChair:
		if g.player.Carried() >= g.economy.MaxChairs {
			return nil
		}
		g.set.Remove(g.target)
		g.player.PickUp()
		return []core.Cue{core.CuePickup}

	case entity.KindBottle:
		if g.bottles >= g.economy.MaxBottles {
			return nil
		}
		g.set.Remove(g.target)
		g.bottles++
		return []core.Cue{core.CuePickup}

	case entity.KindTable:
		if g.player.Carried() < 1 {
			return nil
		}
		g.set.Remove(g.target)
		g.score += float64(g.economy.TableBonus)
		g.player.DropOne()
		g.flipped++
		g.placeTable(o)
		return []core.Cue{core.CuePlace}

	case entity.KindBin:
		if g.bottles == 0 {
			return nil
		}
		g.score += float64(g.bottles * g.economy.BinMultiplier)
		g.recycled += g.bottles
		g.bottles = 0
		return []core.Cue{core.CueRecycle}

	case entity.KindDecorative:
		return nil
	}
	return nil
}

// placeTable leaves a decorative table with a chair on it where the table was.
func (g *Game) placeTable(table *entity.Obstacle) {
	placed := table.Copy()
	placed.Kind = entity.KindDecorative
	placed.Collide = entity.CollideNone
	placed.SetSprite(g.catalog.MustSprite("table_placed"))
	g.placed++
	g.set.Put(fmt.Sprintf("placed:%d", g.placed), placed)
}

func (g *Game) targetObstacle() *entity.Obstacle {
	b, ok := g.set.Get(g.target)
	if !ok {
		return nil
	}
	o, _ := b.(*entity.Obstacle)
	return o
}
