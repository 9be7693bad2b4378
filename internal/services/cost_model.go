package services

import (
	"delivery-hub-service/internal/domain"
	"delivery-hub-service/internal/ports"
	"fmt"
	"math"
)

// Strategy names a delivery cost model.
type Strategy string

const (
	// Every delivery goes out from the hub and back.
	StrategyRoundTrip Strategy = "round_trip"
	// One tour from the hub through every place in dataset order.
	StrategyChained Strategy = "chained"
	// Two hubs; each place is served by the nearer one.
	StrategyTwoHubNearest Strategy = "two_hub_nearest"
)

// AllStrategies lists the scenarios in the order the runner executes them.
var AllStrategies = []Strategy{StrategyRoundTrip, StrategyChained, StrategyTwoHubNearest}

func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(s); st {
	case StrategyRoundTrip, StrategyChained, StrategyTwoHubNearest:
		return st, nil
	}
	return "", fmt.Errorf("parse strategy: unknown strategy %q", s)
}

// Hubs returns how many hub coordinates the strategy optimizes.
func (s Strategy) Hubs() int {
	if s == StrategyTwoHubNearest {
		return 2
	}
	return 1
}

// Objective scores a tuple of hub coordinates; higher is better.
type Objective func(hubs []domain.Coordinates) float64

// CostModel scores hub positions against a fixed place set.
//
// Every score is the reciprocal of a total travel distance, so minimizing
// distance becomes maximizing score. A total of exactly zero yields +Inf
// rather than a division error. Each call increments the counter once.
type CostModel struct {
	places  []domain.Coordinates
	dist    ports.DistanceProvider
	counter *EvaluationCounter
}

// NewCostModel snapshots the place coordinates. A nil counter is replaced
// with a private one.
func NewCostModel(places domain.PlaceSet, dist ports.DistanceProvider, counter *EvaluationCounter) *CostModel {
	if counter == nil {
		counter = &EvaluationCounter{}
	}
	return &CostModel{
		places:  places.Coordinates(),
		dist:    dist,
		counter: counter,
	}
}

func (m *CostModel) Evaluations() int64 {
	return m.counter.Load()
}

// RoundTrip scores a hub that serves every place with an out-and-back trip.
func (m *CostModel) RoundTrip(hub domain.Coordinates) float64 {
	total := 0.0
	for _, p := range m.places {
		total += m.dist.Distance(p, hub)
	}
	return m.score(total)
}

// Chained scores a single tour that starts at the hub and visits the
// places in dataset order, ending at the last place.
func (m *CostModel) Chained(hub domain.Coordinates) float64 {
	total := 0.0
	prev := hub
	for _, p := range m.places {
		total += m.dist.Distance(prev, p)
		prev = p
	}
	return m.score(total)
}

// TwoHubNearest scores two hubs where each place is served by the closer
// one. Hub 1 is used only when it is strictly closer, so an equidistant
// place is charged to hub 2. Both distances are equal then, so the score
// does not depend on how ties are broken.
func (m *CostModel) TwoHubNearest(hub1, hub2 domain.Coordinates) float64 {
	total := 0.0
	for _, p := range m.places {
		d1 := m.dist.Distance(p, hub1)
		d2 := m.dist.Distance(p, hub2)
		if d1 < d2 {
			total += d1
		} else {
			total += d2
		}
	}
	return m.score(total)
}

// Objective adapts the strategy's cost function to the hill climber.
func (m *CostModel) Objective(s Strategy) (Objective, error) {
	switch s {
	case StrategyRoundTrip:
		return func(hubs []domain.Coordinates) float64 { return m.RoundTrip(hubs[0]) }, nil
	case StrategyChained:
		return func(hubs []domain.Coordinates) float64 { return m.Chained(hubs[0]) }, nil
	case StrategyTwoHubNearest:
		return func(hubs []domain.Coordinates) float64 { return m.TwoHubNearest(hubs[0], hubs[1]) }, nil
	}
	return nil, fmt.Errorf("cost model objective: unknown strategy %q", s)
}

func (m *CostModel) score(total float64) float64 {
	m.counter.Inc()
	if total == 0 {
		return math.Inf(1)
	}
	return 1 / total
}

// TotalDistance converts a score back into miles. An infinite score is a
// zero-distance layout.
func TotalDistance(score float64) float64 {
	if math.IsInf(score, 1) {
		return 0
	}
	return 1 / score
}
