package services

import (
	"delivery-hub-service/internal/domain"
	"strings"
	"testing"
)

func TestFingerprint(t *testing.T) {
	places := squarePlaces()

	if Fingerprint(places) != Fingerprint(append(domain.PlaceSet(nil), places...)) {
		t.Fatalf("equal sets gave different fingerprints")
	}

	reordered := domain.PlaceSet{places[1], places[0], places[2], places[3]}
	if Fingerprint(places) == Fingerprint(reordered) {
		t.Fatalf("order must change the fingerprint")
	}

	moved := append(domain.PlaceSet(nil), places...)
	moved[3].Lat += 1e-9
	if Fingerprint(places) == Fingerprint(moved) {
		t.Fatalf("coordinates must change the fingerprint")
	}
}

func TestResultKey(t *testing.T) {
	places := squarePlaces()
	opts := DefaultOptions()

	key := ResultKey(places, 42, []Strategy{StrategyRoundTrip, StrategyChained}, opts)
	want := "hubopt:results:" + Fingerprint(places) + ":42:round_trip,chained:"
	if !strings.HasPrefix(key, want) {
		t.Fatalf("key = %q, want prefix %q", key, want)
	}

	if ResultKey(places, 43, AllStrategies, opts) == ResultKey(places, 42, AllStrategies, opts) {
		t.Fatalf("seed must change the key")
	}

	other := opts
	other.Step = 0.05
	if ResultKey(places, 42, AllStrategies, other) == ResultKey(places, 42, AllStrategies, opts) {
		t.Fatalf("options must change the key")
	}

	parallel := opts
	parallel.Parallel = true
	if ResultKey(places, 42, AllStrategies, parallel) != ResultKey(places, 42, AllStrategies, opts) {
		t.Fatalf("parallel evaluation must not change the key")
	}
}
