// Package spawn generates obstacles from template pools on a per-category
// cadence keyed on whole elapsed seconds of the session.
package spawn

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/recycle-runner/internal/entity"
)

// Category is one spawn table: a rate in whole seconds and the templates
// a spawn picks from.
type Category struct {
	Name string
	Rate int
	Pool []*entity.Obstacle
	// Ramp bumps the shared pace on every spawn of this category.
	Ramp bool
}

// Spawner injects copies of category templates into an entity set.
type Spawner struct {
	categories []Category
	grace      int
	pace       *entity.Pace
	rng        *rand.Rand
	last       map[string]int // category -> last spawned second
}

// New creates a spawner. Seconds before grace never spawn, which also
// keeps second zero (a multiple of every rate) quiet.
func New(categories []Category, grace int, pace *entity.Pace, seed int64) *Spawner {
	if grace < 1 {
		grace = 1
	}
	s := &Spawner{
		categories: categories,
		grace:      grace,
		pace:       pace,
	}
	s.Reset(seed)
	return s
}

// Reset forgets spawn history and reseeds the template picker.
func (s *Spawner) Reset(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
	s.last = make(map[string]int, len(s.categories))
}

// SetCategories swaps the spawn tables, keeping spawn history and the
// picker state.
func (s *Spawner) SetCategories(categories []Category) {
	s.categories = categories
}

// Key returns the spawn key for a category and elapsed second.
func Key(category string, elapsed int) string {
	return fmt.Sprintf("%s:%d", category, elapsed)
}

// Elapsed returns whole seconds between start and now.
func Elapsed(start, now time.Time) int {
	d := now.Sub(start)
	if d < 0 {
		return 0
	}
	return int(d / time.Second)
}

// Tick spawns at most one obstacle per category for the current second
// and returns the keys it inserted. Running it again within the same second
// inserts nothing.
func (s *Spawner) Tick(start, now time.Time, set *entity.Set) []string {
	elapsed := Elapsed(start, now)
	if elapsed < s.grace {
		return nil
	}

	var spawned []string
	for _, c := range s.categories {
		if c.Rate <= 0 || len(c.Pool) == 0 || elapsed%c.Rate != 0 {
			continue
		}
		key := Key(c.Name, elapsed)
		if last, ok := s.last[c.Name]; (ok && last == elapsed) || set.Has(key) {
			continue
		}

		tmpl := c.Pool[s.rng.Intn(len(c.Pool))]
		set.Put(key, tmpl.Copy())
		s.last[c.Name] = elapsed
		spawned = append(spawned, key)

		if c.Ramp && s.pace != nil {
			s.pace.Bump()
		}
	}
	return spawned
}
