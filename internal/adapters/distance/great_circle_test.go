package distance

import (
	"delivery-hub-service/internal/domain"
	"testing"
)

func TestGreatCircleMatchesDomainDistance(t *testing.T) {
	a := domain.Coordinates{Lat: 51.5074, Lon: -0.1278}
	b := domain.Coordinates{Lat: 53.4808, Lon: -2.2426}

	gc := NewGreatCircle()
	if got, want := gc.Distance(a, b), domain.Distance(a, b); got != want {
		t.Fatalf("distance = %v, want %v", got, want)
	}
}

func TestMockDistanceProviderSymmetric(t *testing.T) {
	a := domain.Coordinates{Lat: 1, Lon: 1}
	b := domain.Coordinates{Lat: 2, Lon: 2}

	p := NewMockDistanceProvider([]MockPair{{From: a, To: b, Miles: 12.5}})
	if got := p.Distance(b, a); got != 12.5 {
		t.Fatalf("reverse lookup = %v, want 12.5", got)
	}
	if got := p.Distance(a, a); got != 0 {
		t.Fatalf("identical points = %v, want 0", got)
	}
}
