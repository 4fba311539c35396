package entity

// Set is the active entity map of a scene. Iteration follows insertion
// order, which makes "first collision wins" deterministic.
type Set struct {
	keys  []string
	items map[string]Body
}

// NewSet creates an empty set.
func NewSet() *Set {
	return &Set{items: make(map[string]Body)}
}

// Put inserts or replaces a body. Replacing keeps the original position
// in iteration order.
func (s *Set) Put(key string, b Body) {
	if _, ok := s.items[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.items[key] = b
}

// Get returns the body under key.
func (s *Set) Get(key string) (Body, bool) {
	b, ok := s.items[key]
	return b, ok
}

// Has reports whether key is present.
func (s *Set) Has(key string) bool {
	_, ok := s.items[key]
	return ok
}

// Remove deletes key. Missing keys are ignored.
func (s *Set) Remove(key string) {
	if _, ok := s.items[key]; !ok {
		return
	}
	delete(s.items, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of bodies.
func (s *Set) Len() int {
	return len(s.keys)
}

// Keys returns a snapshot of the keys in insertion order.
func (s *Set) Keys() []string {
	return append([]string(nil), s.keys...)
}

// Each calls fn for every body in insertion order. The set may be
// modified from fn; removed bodies that were not yet visited are skipped.
func (s *Set) Each(fn func(key string, b Body)) {
	for _, k := range s.Keys() {
		if b, ok := s.items[k]; ok {
			fn(k, b)
		}
	}
}

// Obstacles returns the obstacles in insertion order with their keys.
func (s *Set) Obstacles() []Keyed {
	var out []Keyed
	for _, k := range s.keys {
		if o, ok := s.items[k].(*Obstacle); ok {
			out = append(out, Keyed{Key: k, Obstacle: o})
		}
	}
	return out
}

// Clear removes everything.
func (s *Set) Clear() {
	s.keys = nil
	s.items = make(map[string]Body)
}

// Keyed pairs an obstacle with its key in the set.
type Keyed struct {
	Key      string
	Obstacle *Obstacle
}
