package random

import (
	"math/rand/v2"
	"sync"
	"time"
)

// unit is the number of equally spaced points drawn from [0, 1], both
// endpoints included.
const unit = 1 << 53

// UniformSampler draws reals from closed intervals using a seeded PCG
// source. It is safe for concurrent use.
type UniformSampler struct {
	mu   sync.Mutex
	rng  *rand.Rand
	seed uint64
}

// NewUniformSampler returns a sampler seeded with seed. A zero seed picks a
// time-based one, readable through Seed.
func NewUniformSampler(seed uint64) *UniformSampler {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &UniformSampler{
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		seed: seed,
	}
}

func (s *UniformSampler) Seed() uint64 {
	return s.seed
}

// Uniform returns a value in [lo, hi]. Swapped bounds are reordered and a
// degenerate interval returns lo.
func (s *UniformSampler) Uniform(lo, hi float64) float64 {
	if hi < lo {
		lo, hi = hi, lo
	}
	if lo == hi {
		return lo
	}

	s.mu.Lock()
	n := s.rng.Uint64N(unit + 1)
	s.mu.Unlock()

	v := lo + (hi-lo)*(float64(n)/unit)
	return min(max(v, lo), hi)
}
