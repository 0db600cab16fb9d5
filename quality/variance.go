package quality

import (
	"math/rand"
	"sync"
)

// Variance injects the perturbation the heuristic sub-scores apply when real
// road data cannot speak for a route. Scoring stays inside its documented
// clamps for any implementation.
type Variance interface {
	// Jitter returns a value in [-scale, scale].
	Jitter(scale float64) float64
}

// NoVariance makes the engine fully deterministic.
type NoVariance struct{}

func (NoVariance) Jitter(scale float64) float64 { return 0 }

// SeededVariance draws reproducible jitter from one seeded source.
type SeededVariance struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewSeededVariance(seed int64) *SeededVariance {
	return &SeededVariance{rng: rand.New(rand.NewSource(seed))}
}

func (v *SeededVariance) Jitter(scale float64) float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.rng.Float64()*2*scale - scale
}
