package storage

import (
	"sort"
	"time"
)

// Entry is one leaderboard record.
type Entry struct {
	Name      string
	Score     int
	RunID     string
	CreatedAt time.Time
}

// Leaderboard is the in-memory high-score table. It keeps storage order;
// nothing assumes it is sorted.
type Leaderboard struct {
	entries []Entry
	saved   int // entries[:saved] are already persisted
}

// NewLeaderboard wraps entries loaded from storage.
func NewLeaderboard(entries []Entry) *Leaderboard {
	return &Leaderboard{entries: entries, saved: len(entries)}
}

// Add appends an entry to be persisted at the next save.
func (l *Leaderboard) Add(e Entry) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	l.entries = append(l.entries, e)
}

// Len returns the number of entries.
func (l *Leaderboard) Len() int {
	return len(l.entries)
}

// Entries returns a copy of all entries in storage order.
func (l *Leaderboard) Entries() []Entry {
	return append([]Entry(nil), l.entries...)
}

// Max returns the highest score, or 0 when empty.
func (l *Leaderboard) Max() int {
	high := 0
	for i, e := range l.entries {
		if i == 0 || e.Score > high {
			high = e.Score
		}
	}
	return high
}

// Top returns up to n entries by score descending. Ties keep storage order.
func (l *Leaderboard) Top(n int) []Entry {
	sorted := l.Entries()
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Pending returns the entries added since the last save.
func (l *Leaderboard) Pending() []Entry {
	return append([]Entry(nil), l.entries[l.saved:]...)
}

// MarkSaved records that all current entries are persisted.
func (l *Leaderboard) MarkSaved() {
	l.saved = len(l.entries)
}
