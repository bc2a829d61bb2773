package simulation

import "time"

// Defaults used when a persona arrives empty or inverted.
const (
	DefaultIntervalMin = 120 * time.Second
	DefaultIntervalMax = 420 * time.Second
	DefaultMinWindow   = 1500 * time.Millisecond
	DefaultStepMin     = 1
	DefaultStepMax     = 2
)

// Persona fixes how a tracked value moves: how often it ticks, by how much, and
// how often a tick is skipped. It is assigned once per entity and never re-rolled.
type Persona struct {
	IntervalMin time.Duration `json:"intervalMin"`
	IntervalMax time.Duration `json:"intervalMax"`
	// MinWindow is the smallest jitter window added on top of IntervalMin.
	MinWindow  time.Duration `json:"minWindow"`
	StepMin    int           `json:"stepMin"`
	StepMax    int           `json:"stepMax"`
	IdleChance int           `json:"idleChance"` // percent, 0-100
}

// Delay draws the wait before the next tick from
// [IntervalMin, IntervalMin + max(MinWindow, IntervalMax-IntervalMin)).
func (p Persona) Delay(src Source) time.Duration {
	window := p.IntervalMax - p.IntervalMin
	if window < p.MinWindow {
		window = p.MinWindow
	}
	if window <= 0 {
		return p.IntervalMin
	}
	return p.IntervalMin + time.Duration(src.Int63n(int64(window)))
}

// Idle reports whether this tick should be skipped.
func (p Persona) Idle(src Source) bool {
	if p.IdleChance <= 0 {
		return false
	}
	return src.Float64()*100 < float64(p.IdleChance)
}

// Step draws a delta from [StepMin, StepMax].
func (p Persona) Step(src Source) int {
	return IntBetween(src, p.StepMin, p.StepMax)
}

// Normalize replaces missing or invalid like-counter parameters with defaults.
func (p Persona) Normalize() Persona {
	if p.IntervalMin <= 0 {
		p.IntervalMin = DefaultIntervalMin
	}
	if p.IntervalMax <= 0 {
		p.IntervalMax = DefaultIntervalMax
	}
	if p.MinWindow <= 0 {
		p.MinWindow = DefaultMinWindow
	}
	if p.StepMin <= 0 {
		p.StepMin = DefaultStepMin
	}
	if p.StepMax <= 0 {
		p.StepMax = DefaultStepMax
	}
	if p.StepMax < p.StepMin {
		p.StepMax = p.StepMin
	}
	if p.IdleChance < 0 {
		p.IdleChance = 0
	}
	if p.IdleChance > 100 {
		p.IdleChance = 100
	}
	return p
}

// NewLikePersona rolls the engagement profile of a freshly created post.
func NewLikePersona(src Source) Persona {
	lo := time.Duration(IntBetween(src, 120, 300)) * time.Second
	return Persona{
		IntervalMin: lo,
		IntervalMax: lo + time.Duration(IntBetween(src, 120, 480))*time.Second,
		MinWindow:   DefaultMinWindow,
		StepMin:     1,
		StepMax:     IntBetween(src, 1, 3),
		IdleChance:  IntBetween(src, 15, 45),
	}
}

// NewAdminPersona rolls the profile of the protected post's like ticker.
func NewAdminPersona(src Source) Persona {
	return Persona{
		IntervalMin: time.Duration(IntBetween(src, 180, 320)) * time.Second,
		IntervalMax: time.Duration(IntBetween(src, 360, 780)) * time.Second,
		MinWindow:   DefaultMinWindow,
		StepMin:     1,
		StepMax:     2,
		IdleChance:  IntBetween(src, 20, 45),
	}
}

// AmbientPersona ticks every period with a symmetric step of stepRange and never idles.
func AmbientPersona(period time.Duration, stepRange int) Persona {
	return Persona{
		IntervalMin: period,
		IntervalMax: period,
		StepMin:     -stepRange,
		StepMax:     stepRange,
	}
}
