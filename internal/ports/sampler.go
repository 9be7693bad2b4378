package ports

// Source of uniform samples used to seed hub positions.
type Sampler interface {
	// Return a sample drawn uniformly from the closed interval [lo, hi].
	Uniform(lo, hi float64) float64
}
