package distance

import (
	"delivery-hub-service/internal/domain"
	"fmt"
)

type MockPair struct {
	From, To domain.Coordinates
	Miles    float64
}

// MockDistanceProvider serves fixed distances for known coordinate pairs.
// Lookups are symmetric and identical points are always 0 miles. Unknown
// pairs panic so tests notice a missing fixture immediately.
type MockDistanceProvider struct {
	m map[[2]domain.Coordinates]float64
}

func NewMockDistanceProvider(pairs []MockPair) *MockDistanceProvider {
	m := make(map[[2]domain.Coordinates]float64, 2*len(pairs))
	for _, p := range pairs {
		m[[2]domain.Coordinates{p.From, p.To}] = p.Miles
		m[[2]domain.Coordinates{p.To, p.From}] = p.Miles
	}
	return &MockDistanceProvider{m: m}
}

func (p *MockDistanceProvider) Distance(a, b domain.Coordinates) float64 {
	if a == b {
		return 0
	}

	d, ok := p.m[[2]domain.Coordinates{a, b}]
	if !ok {
		panic(fmt.Sprintf("mock distance provider: missing pair %v -> %v", a, b))
	}

	return d
}
