package runner

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/recycle-runner/internal/core"
	"github.com/vovakirdan/recycle-runner/internal/entity"
)

// Render draws the current session to the screen.
func (g *Game) Render(dst *core.Screen) {
	// Ground
	ground := g.catalog.MustSprite("ground")
	y := core.Round(g.groundY)
	for x := 0; x < dst.Width(); x++ {
		ground.Blit(dst, x, y)
	}

	// Decorative entities behind, interactables in front
	g.set.Each(func(_ string, b entity.Body) {
		if o, ok := b.(*entity.Obstacle); ok && o.Kind == entity.KindDecorative {
			b.Draw(dst)
		}
	})
	g.set.Each(func(_ string, b entity.Body) {
		if o, ok := b.(*entity.Obstacle); !ok || o.Kind != entity.KindDecorative {
			b.Draw(dst)
		}
	})

	g.player.Draw(dst)
	g.drawHUD(dst)
}

// drawHUD renders the counters along the top row.
func (g *Game) drawHUD(dst *core.Screen) {
	st := g.State()
	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d ", st.Score))

	if !g.classic {
		lives := strings.Repeat("♥", st.Lives) + strings.Repeat("·", max(g.economy.Lives-st.Lives, 0))
		dst.DrawTextColored(16, 0, lives, core.ColorRed)
		status := fmt.Sprintf(" Bottles %d/%d  Chairs %d/%d ", st.Bottles, g.economy.MaxBottles, st.Chairs, g.economy.MaxChairs)
		dst.DrawText(18+g.economy.Lives, 0, status)
	}

	speed := fmt.Sprintf(" Spd: %.2f ", g.pace.Current())
	dst.DrawText(dst.Width()-len(speed)-2, 0, speed)

	if !g.classic && g.target != "" {
		if o := g.targetObstacle(); o != nil {
			dst.DrawTextColored(2, 1, hint(o.Kind), core.ColorGray)
		}
	}
}

func hint(kind entity.Kind) string {
	switch kind {
	case entity.KindChair:
		return "pick up the chair"
	case entity.KindTable:
		return "flip a chair onto the table"
	case entity.KindBottle:
		return "grab the bottle"
	case entity.KindBin:
		return "recycle your bottles"
	case entity.KindDecorative:
		return ""
	}
	return ""
}
