package entity

// Pace is the shared obstacle velocity of a run. It grows by a fixed step
// per spawn event and never exceeds its ceiling.
type Pace struct {
	current   float64
	increment float64
	max       float64
}

// NewPace creates a pace starting at initial. A ceiling below initial is
// raised to initial.
func NewPace(initial, increment, max float64) *Pace {
	if max < initial {
		max = initial
	}
	if increment < 0 {
		increment = 0
	}
	return &Pace{current: initial, increment: increment, max: max}
}

// Current returns the current velocity.
func (p *Pace) Current() float64 {
	return p.current
}

// Max returns the ceiling.
func (p *Pace) Max() float64 {
	return p.max
}

// Bump advances the pace by one step.
func (p *Pace) Bump() {
	p.current += p.increment
	if p.current > p.max {
		p.current = p.max
	}
}
