package simulation

import (
	"math"
	"math/rand"
	"sync"
)

// Source is the randomness used by every simulation helper. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
	Int63n(n int64) int64
	Float64() float64
}

// lockedSource makes a *rand.Rand safe for timer goroutines.
type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSource returns a goroutine-safe source seeded with seed.
func NewSource(seed int64) Source {
	return &lockedSource{r: rand.New(rand.NewSource(seed))}
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Intn(n)
}

func (s *lockedSource) Int63n(n int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Int63n(n)
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

// Delta returns an integer uniformly distributed over [-r, r].
func Delta(src Source, r int) int {
	if r <= 0 {
		return 0
	}
	return src.Intn(2*r+1) - r
}

// IntBetween returns an integer uniformly distributed over [lo, hi].
func IntBetween(src Source, lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + src.Intn(hi-lo+1)
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Step moves current by a random delta in [-stepRange, stepRange] and keeps the
// result inside [base-variance, base+variance].
func Step(src Source, current, base, variance, stepRange int) int {
	if variance < 0 {
		variance = -variance
	}
	return Clamp(current+Delta(src, stepRange), base-variance, base+variance)
}

// StepRange is the per-tick step size for a band of the given variance:
// max(floor, round(variance*fraction)).
func StepRange(variance int, fraction float64, floor int) int {
	r := int(math.Round(float64(variance) * fraction))
	if r < floor {
		return floor
	}
	return r
}
