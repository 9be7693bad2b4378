package services

import (
	"delivery-hub-service/internal/adapters/distance"
	"delivery-hub-service/internal/domain"
	"math"
	"testing"
)

func squarePlaces() domain.PlaceSet {
	return domain.PlaceSet{
		{Name: "SW", Type: domain.PlaceTown, Population: 100, Lat: 0, Lon: 0},
		{Name: "NW", Type: domain.PlaceTown, Population: 100, Lat: 0, Lon: 1},
		{Name: "SE", Type: domain.PlaceTown, Population: 100, Lat: 1, Lon: 0},
		{Name: "NE", Type: domain.PlaceTown, Population: 100, Lat: 1, Lon: 1},
	}
}

func TestCostModelRoundTripSumsDistances(t *testing.T) {
	places := squarePlaces()
	hub := domain.Coordinates{Lat: 0.25, Lon: 0.75}

	m := NewCostModel(places, distance.NewGreatCircle(), nil)

	want := 0.0
	for _, p := range places {
		want += domain.Distance(p.Coordinates(), hub)
	}

	got := TotalDistance(m.RoundTrip(hub))
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("round trip total = %v, want %v", got, want)
	}
}

func TestCostModelRoundTripDegenerate(t *testing.T) {
	places := domain.PlaceSet{{Name: "Only", Type: domain.PlaceCity, Population: 1, Lat: 52, Lon: -1}}
	counter := &EvaluationCounter{}
	m := NewCostModel(places, distance.NewGreatCircle(), counter)

	score := m.RoundTrip(domain.Coordinates{Lat: 52, Lon: -1})
	if !math.IsInf(score, 1) {
		t.Fatalf("score = %v, want +Inf", score)
	}
	if got := TotalDistance(score); got != 0 {
		t.Fatalf("total distance = %v, want 0", got)
	}
	if counter.Load() != 1 {
		t.Fatalf("evaluations = %d, want 1", counter.Load())
	}
}

func TestCostModelChainedDegenerate(t *testing.T) {
	only := domain.Coordinates{Lat: 52, Lon: -1}
	places := domain.PlaceSet{{Name: "Only", Type: domain.PlaceCity, Population: 1, Lat: only.Lat, Lon: only.Lon}}
	counter := &EvaluationCounter{}
	m := NewCostModel(places, distance.NewGreatCircle(), counter)

	score := m.Chained(only)
	if !math.IsInf(score, 1) {
		t.Fatalf("score = %v, want +Inf", score)
	}
	if got := TotalDistance(score); got != 0 {
		t.Fatalf("total distance = %v, want 0", got)
	}
	if counter.Load() != 1 {
		t.Fatalf("evaluations = %d, want 1", counter.Load())
	}
}

func TestCostModelTwoHubDegenerate(t *testing.T) {
	only := domain.Coordinates{Lat: 52, Lon: -1}
	places := domain.PlaceSet{{Name: "Only", Type: domain.PlaceTown, Population: 1, Lat: only.Lat, Lon: only.Lon}}
	m := NewCostModel(places, distance.NewGreatCircle(), nil)

	score := m.TwoHubNearest(only, only)
	if !math.IsInf(score, 1) {
		t.Fatalf("score = %v, want +Inf", score)
	}
	if got := TotalDistance(score); got != 0 {
		t.Fatalf("total distance = %v, want 0", got)
	}

	// One hub on the place is enough; the other is never chosen.
	if got := m.TwoHubNearest(domain.Coordinates{Lat: 10, Lon: 10}, only); !math.IsInf(got, 1) {
		t.Fatalf("score with second hub on the place = %v, want +Inf", got)
	}
}

func TestCostModelChainedTwoPlaces(t *testing.T) {
	h := domain.Coordinates{Lat: 10, Lon: 10}
	a := domain.Coordinates{Lat: 11, Lon: 10}
	b := domain.Coordinates{Lat: 11, Lon: 12}
	places := domain.PlaceSet{
		{Name: "A", Lat: a.Lat, Lon: a.Lon},
		{Name: "B", Lat: b.Lat, Lon: b.Lon},
	}

	provider := distance.NewMockDistanceProvider([]distance.MockPair{
		{From: h, To: a, Miles: 3},
		{From: a, To: b, Miles: 4},
		{From: h, To: b, Miles: 100},
	})

	m := NewCostModel(places, provider, nil)
	if got, want := m.Chained(h), 1/(3.0+4.0); got != want {
		t.Fatalf("chained score = %v, want %v", got, want)
	}

	gc := NewCostModel(places, distance.NewGreatCircle(), nil)
	want := 1 / (domain.Distance(h, a) + domain.Distance(a, b))
	if got := gc.Chained(h); got != want {
		t.Fatalf("great circle chained score = %v, want %v", got, want)
	}
}

func TestCostModelChainedKeepsDatasetOrder(t *testing.T) {
	h := domain.Coordinates{Lat: 0, Lon: 0}
	a := domain.Coordinates{Lat: 0, Lon: 1}
	b := domain.Coordinates{Lat: 0, Lon: 2}

	provider := distance.NewMockDistanceProvider([]distance.MockPair{
		{From: h, To: a, Miles: 1},
		{From: h, To: b, Miles: 2},
		{From: a, To: b, Miles: 1},
	})

	forward := NewCostModel(domain.PlaceSet{{Name: "A", Lat: 0, Lon: 1}, {Name: "B", Lat: 0, Lon: 2}}, provider, nil)
	reverse := NewCostModel(domain.PlaceSet{{Name: "B", Lat: 0, Lon: 2}, {Name: "A", Lat: 0, Lon: 1}}, provider, nil)

	if got := TotalDistance(forward.Chained(h)); math.Abs(got-2) > 1e-12 {
		t.Fatalf("forward chain = %v, want 2", got)
	}
	if got := TotalDistance(reverse.Chained(h)); math.Abs(got-3) > 1e-12 {
		t.Fatalf("reverse chain = %v, want 3 (no reordering)", got)
	}
}

func TestCostModelTwoHubSameHubEqualsRoundTrip(t *testing.T) {
	places := squarePlaces()
	m := NewCostModel(places, distance.NewGreatCircle(), nil)

	hubs := []domain.Coordinates{
		{Lat: 0.5, Lon: 0.5},
		{Lat: -3, Lon: 7},
		{Lat: 1, Lon: 1},
	}
	for _, h := range hubs {
		if two, one := m.TwoHubNearest(h, h), m.RoundTrip(h); two != one {
			t.Fatalf("hub %v: two-hub score %v != round trip score %v", h, two, one)
		}
	}
}

func TestCostModelTwoHubAssignsNearest(t *testing.T) {
	places := domain.PlaceSet{
		{Name: "West", Lat: 0, Lon: 0},
		{Name: "East", Lat: 0, Lon: 10},
	}
	m := NewCostModel(places, distance.NewGreatCircle(), nil)

	west := domain.Coordinates{Lat: 0, Lon: 1}
	east := domain.Coordinates{Lat: 0, Lon: 9}

	want := domain.Distance(west, places[0].Coordinates()) + domain.Distance(east, places[1].Coordinates())
	got := TotalDistance(m.TwoHubNearest(west, east))
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("two hub total = %v, want %v", got, want)
	}

	swapped := TotalDistance(m.TwoHubNearest(east, west))
	if math.Abs(swapped-want) > 1e-9 {
		t.Fatalf("hub order should not change the total: %v vs %v", swapped, want)
	}
}

func TestCostModelCountsEveryEvaluation(t *testing.T) {
	counter := &EvaluationCounter{}
	m := NewCostModel(squarePlaces(), distance.NewGreatCircle(), counter)
	h := domain.Coordinates{Lat: 0.3, Lon: 0.3}

	m.RoundTrip(h)
	m.Chained(h)
	m.TwoHubNearest(h, h)

	if got := m.Evaluations(); got != 3 {
		t.Fatalf("evaluations = %d, want 3", got)
	}

	counter.Reset()
	if got := counter.Load(); got != 0 {
		t.Fatalf("evaluations after reset = %d, want 0", got)
	}
}

func TestCostModelObjective(t *testing.T) {
	m := NewCostModel(squarePlaces(), distance.NewGreatCircle(), nil)
	h1 := domain.Coordinates{Lat: 0.2, Lon: 0.4}
	h2 := domain.Coordinates{Lat: 0.9, Lon: 0.1}

	for _, s := range AllStrategies {
		obj, err := m.Objective(s)
		if err != nil {
			t.Fatalf("objective %s: %v", s, err)
		}

		var want float64
		switch s {
		case StrategyRoundTrip:
			want = m.RoundTrip(h1)
		case StrategyChained:
			want = m.Chained(h1)
		case StrategyTwoHubNearest:
			want = m.TwoHubNearest(h1, h2)
		}
		if got := obj([]domain.Coordinates{h1, h2}[:s.Hubs()]); got != want {
			t.Fatalf("objective %s = %v, want %v", s, got, want)
		}
	}

	if _, err := m.Objective("nearest_depot"); err == nil {
		t.Fatalf("expected error for unknown strategy")
	}
}

func TestParseStrategy(t *testing.T) {
	for _, s := range AllStrategies {
		got, err := ParseStrategy(string(s))
		if err != nil || got != s {
			t.Fatalf("ParseStrategy(%q) = %q, %v", s, got, err)
		}
	}
	if _, err := ParseStrategy("three_hub"); err == nil {
		t.Fatalf("expected error for unknown strategy")
	}
	if StrategyTwoHubNearest.Hubs() != 2 || StrategyChained.Hubs() != 1 {
		t.Fatalf("unexpected hub arity")
	}
}
