package assets

import "github.com/vovakirdan/recycle-runner/internal/core"

// Sprite is an immutable ASCII image. Spaces are transparent.
type Sprite struct {
	name  string
	color core.Color
	rows  [][]rune
	w, h  int
}

// NewSprite builds a sprite from text rows. Short rows are padded.
func NewSprite(name string, color core.Color, rows ...string) *Sprite {
	s := &Sprite{name: name, color: color, h: len(rows)}
	s.rows = make([][]rune, len(rows))
	for i, row := range rows {
		s.rows[i] = []rune(row)
		if len(s.rows[i]) > s.w {
			s.w = len(s.rows[i])
		}
	}
	for i := range s.rows {
		for len(s.rows[i]) < s.w {
			s.rows[i] = append(s.rows[i], ' ')
		}
	}
	return s
}

// Name returns the catalog name of the sprite.
func (s *Sprite) Name() string { return s.name }

// Width returns the sprite width in cells.
func (s *Sprite) Width() float64 { return float64(s.w) }

// Height returns the sprite height in cells.
func (s *Sprite) Height() float64 { return float64(s.h) }

// Bounds returns the sprite rectangle at the origin.
func (s *Sprite) Bounds() core.Rect {
	return core.NewRect(0, 0, float64(s.w), float64(s.h))
}

// Rotate returns a copy turned 90 degrees counterclockwise.
// Width and height swap.
func (s *Sprite) Rotate() *Sprite {
	out := &Sprite{name: s.name + "_rotated", color: s.color, w: s.h, h: s.w}
	out.rows = make([][]rune, out.h)
	for r := 0; r < out.h; r++ {
		out.rows[r] = make([]rune, out.w)
		for c := 0; c < out.w; c++ {
			out.rows[r][c] = s.rows[c][s.w-1-r]
		}
	}
	return out
}

// Blit draws the sprite with its top-left corner at (x, y).
func (s *Sprite) Blit(dst *core.Screen, x, y int) {
	for dy, row := range s.rows {
		for dx, r := range row {
			if r == ' ' {
				continue
			}
			dst.SetColored(x+dx, y+dy, r, s.color)
		}
	}
}
