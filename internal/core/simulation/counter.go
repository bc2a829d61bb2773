package simulation

import "sync"

// Bound decides what a drawn delta does to the current value.
type Bound interface {
	// Apply returns the next value and whether the counter has reached an absorbing state.
	Apply(current, delta int) (next int, done bool)
	// Reached reports whether current is already absorbing.
	Reached(current int) bool
}

type band struct{ lo, hi int }

// Band keeps the value inside [lo, hi] forever.
func Band(lo, hi int) Bound {
	if hi < lo {
		lo, hi = hi, lo
	}
	return band{lo: lo, hi: hi}
}

func (b band) Apply(current, delta int) (int, bool) { return Clamp(current+delta, b.lo, b.hi), false }
func (b band) Reached(int) bool                     { return false }

type ceiling struct{ target int }

// Ceiling only lets the value grow, never past target, and stops once target is hit.
func Ceiling(target int) Bound { return ceiling{target: target} }

func (c ceiling) Apply(current, delta int) (int, bool) {
	if delta < 0 {
		delta = 0
	}
	remaining := c.target - current
	if remaining < 0 {
		remaining = 0
	}
	if delta > remaining {
		delta = remaining
	}
	next := current + delta
	return next, next >= c.target
}

func (c ceiling) Reached(current int) bool { return current >= c.target }

type unbounded struct{}

// Unbounded only lets the value grow and never stops.
func Unbounded() Bound { return unbounded{} }

func (unbounded) Apply(current, delta int) (int, bool) {
	if delta < 0 {
		delta = 0
	}
	return current + delta, false
}

func (unbounded) Reached(int) bool { return false }

// ChangeFunc receives the new value and the applied delta.
type ChangeFunc func(value, delta int)

// Counter is one tracked value driven by a persona on a clock.
type Counter struct {
	clock    Clock
	src      Source
	persona  Persona
	bound    Bound
	onChange ChangeFunc

	mu      sync.Mutex
	current int
	timer   Timer
	running bool
	done    bool
	// gen identifies the current run; ticks from an earlier run are dropped.
	gen int
}

// NewCounter builds a stopped counter starting at initial.
func NewCounter(clock Clock, src Source, persona Persona, bound Bound, initial int, onChange ChangeFunc) *Counter {
	return &Counter{
		clock:    clock,
		src:      src,
		persona:  persona,
		bound:    bound,
		current:  initial,
		onChange: onChange,
	}
}

// Start schedules the first tick. It is a no-op if the counter runs or is absorbed.
func (c *Counter) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running || c.done {
		return
	}
	if c.bound.Reached(c.current) {
		c.done = true
		return
	}
	c.running = true
	c.gen++
	c.scheduleLocked()
}

// Stop cancels the pending tick.
func (c *Counter) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

func (c *Counter) stopLocked() {
	c.running = false
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// Value returns the current value.
func (c *Counter) Value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Done reports whether the counter hit an absorbing state.
func (c *Counter) Done() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// Running reports whether a tick is scheduled.
func (c *Counter) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

func (c *Counter) scheduleLocked() {
	gen := c.gen
	c.timer = c.clock.AfterFunc(c.persona.Delay(c.src), func() { c.tick(gen) })
}

func (c *Counter) tick(gen int) {
	c.mu.Lock()
	if !c.running || gen != c.gen {
		c.mu.Unlock()
		return
	}
	if c.persona.Idle(c.src) {
		c.scheduleLocked()
		c.mu.Unlock()
		return
	}
	prev := c.current
	next, done := c.bound.Apply(prev, c.persona.Step(c.src))
	c.current = next
	if done {
		c.done = true
		c.running = false
		c.timer = nil
	}
	c.mu.Unlock()

	if next != prev && !c.notify(next, next-prev) {
		c.stopRun(gen)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running && gen == c.gen {
		c.scheduleLocked()
	}
}

// stopRun stops the counter only if run gen is still the current one.
func (c *Counter) stopRun(gen int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen == c.gen {
		c.stopLocked()
	}
}

// notify runs the change handler; a panicking handler stops the counter quietly.
func (c *Counter) notify(value, delta int) (ok bool) {
	if c.onChange == nil {
		return true
	}
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	c.onChange(value, delta)
	return true
}
