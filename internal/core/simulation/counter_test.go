package simulation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func TestManualClock(t *testing.T) {
	clock := NewManualClock(epoch)
	var fired []string

	clock.AfterFunc(2*time.Second, func() { fired = append(fired, "b") })
	clock.AfterFunc(time.Second, func() { fired = append(fired, "a") })
	stopped := clock.AfterFunc(3*time.Second, func() { fired = append(fired, "c") })

	assert.True(t, stopped.Stop())
	assert.False(t, stopped.Stop())

	clock.Advance(1500 * time.Millisecond)
	assert.Equal(t, []string{"a"}, fired)
	assert.Equal(t, epoch.Add(1500*time.Millisecond), clock.Now())

	clock.Advance(time.Hour)
	assert.Equal(t, []string{"a", "b"}, fired)
	assert.Equal(t, 0, clock.Pending())
}

func TestManualClockFiresRescheduledTimers(t *testing.T) {
	clock := NewManualClock(epoch)
	count := 0
	var loop func()
	loop = func() {
		count++
		clock.AfterFunc(time.Second, loop)
	}
	clock.AfterFunc(time.Second, loop)

	clock.Advance(10 * time.Second)
	assert.Equal(t, 10, count)
	assert.Equal(t, 1, clock.Pending())
}

func TestConvergentCounter(t *testing.T) {
	clock := NewManualClock(epoch)
	persona := Persona{
		IntervalMin: 10 * time.Second,
		IntervalMax: 20 * time.Second,
		MinWindow:   DefaultMinWindow,
		StepMin:     1,
		StepMax:     3,
	}

	var seen []int
	counter := NewCounter(clock, NewSource(11), persona, Ceiling(30), 0, func(value, delta int) {
		seen = append(seen, value)
		assert.Greater(t, delta, 0)
	})
	counter.Start()
	require.True(t, counter.Running())

	for i := 0; i < 200 && !counter.Done(); i++ {
		clock.Advance(20 * time.Second)
	}

	require.True(t, counter.Done())
	assert.Equal(t, 30, counter.Value())
	assert.False(t, counter.Running())
	assert.Equal(t, 0, clock.Pending(), "no tick may be scheduled once the target is reached")

	prev := 0
	for _, v := range seen {
		assert.GreaterOrEqual(t, v, prev)
		assert.LessOrEqual(t, v, 30)
		prev = v
	}
	assert.Equal(t, 30, seen[len(seen)-1])
}

func TestConvergentCounterIdleSkips(t *testing.T) {
	clock := NewManualClock(epoch)
	persona := Persona{IntervalMin: time.Second, IntervalMax: 2 * time.Second, StepMin: 1, StepMax: 1, IdleChance: 100}
	changes := 0
	counter := NewCounter(clock, NewSource(1), persona, Ceiling(5), 0, func(int, int) { changes++ })
	counter.Start()

	clock.Advance(time.Minute)
	assert.Equal(t, 0, changes)
	assert.Equal(t, 0, counter.Value())
	assert.Equal(t, 1, clock.Pending(), "idle ticks keep rescheduling")
}

func TestCounterAlreadyAtTarget(t *testing.T) {
	clock := NewManualClock(epoch)
	counter := NewCounter(clock, NewSource(1), Persona{}.Normalize(), Ceiling(10), 12, nil)
	counter.Start()
	assert.True(t, counter.Done())
	assert.Equal(t, 0, clock.Pending())
}

func TestAmbientCounterStaysInBand(t *testing.T) {
	clock := NewManualClock(epoch)
	counter := NewCounter(clock, NewSource(9), AmbientPersona(7*time.Second, 5), Band(100, 150), 125, func(value, _ int) {
		assert.GreaterOrEqual(t, value, 100)
		assert.LessOrEqual(t, value, 150)
	})
	counter.Start()

	clock.Advance(2 * time.Hour)
	assert.False(t, counter.Done())
	assert.True(t, counter.Running())

	counter.Stop()
	assert.False(t, counter.Running())
	assert.Equal(t, 0, clock.Pending())
}

func TestUnboundedCounterOnlyGrows(t *testing.T) {
	clock := NewManualClock(epoch)
	persona := Persona{IntervalMin: time.Second, IntervalMax: time.Second, StepMin: -2, StepMax: 2}
	counter := NewCounter(clock, NewSource(4), persona, Unbounded(), 152, nil)
	counter.Start()

	prev := counter.Value()
	for i := 0; i < 50; i++ {
		clock.Advance(time.Second)
		assert.GreaterOrEqual(t, counter.Value(), prev)
		prev = counter.Value()
	}
}

func TestPanickingHandlerStopsCounter(t *testing.T) {
	clock := NewManualClock(epoch)
	persona := Persona{IntervalMin: time.Second, IntervalMax: time.Second, StepMin: 1, StepMax: 1}
	counter := NewCounter(clock, NewSource(1), persona, Unbounded(), 0, func(int, int) { panic("boom") })
	counter.Start()

	assert.NotPanics(t, func() { clock.Advance(5 * time.Second) })
	assert.False(t, counter.Running())
	assert.Equal(t, 0, clock.Pending())
}

func TestRestartFromHandlerKeepsOneLoop(t *testing.T) {
	clock := NewManualClock(epoch)
	persona := Persona{IntervalMin: time.Second, IntervalMax: time.Second, StepMin: 1, StepMax: 1}
	var counter *Counter
	restarted := false
	counter = NewCounter(clock, NewSource(1), persona, Unbounded(), 0, func(int, int) {
		if !restarted {
			restarted = true
			counter.Stop()
			counter.Start()
		}
	})
	counter.Start()

	clock.Advance(time.Second)
	require.True(t, restarted)
	assert.Equal(t, 1, clock.Pending(), "a restart must not leave a second loop behind")

	clock.Advance(10 * time.Second)
	assert.Equal(t, 11, counter.Value())
	assert.Equal(t, 1, clock.Pending())
}

func TestCeilingNeverLowersValue(t *testing.T) {
	next, done := Ceiling(10).Apply(15, 3)
	assert.Equal(t, 15, next)
	assert.True(t, done)

	next, done = Ceiling(10).Apply(8, 5)
	assert.Equal(t, 10, next)
	assert.True(t, done)
}
