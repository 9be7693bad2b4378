package domain

import (
	"math"
	"testing"
)

var samplePoints = []Coordinates{
	{Lat: 0, Lon: 0},
	{Lat: 51.5074, Lon: -0.1278},
	{Lat: 53.4808, Lon: -2.2426},
	{Lat: 55.9533, Lon: -3.1883},
	{Lat: -33.8688, Lon: 151.2093},
	{Lat: 89.9, Lon: 45},
	{Lat: -45, Lon: -179.5},
}

func TestDistanceIdentity(t *testing.T) {
	for _, p := range samplePoints {
		if d := Distance(p, p); math.Abs(d) > 1e-9 {
			t.Fatalf("Distance(%v, %v) = %v, want 0", p, p, d)
		}
	}
}

func TestDistanceSymmetry(t *testing.T) {
	for _, a := range samplePoints {
		for _, b := range samplePoints {
			ab := Distance(a, b)
			ba := Distance(b, a)
			if math.Abs(ab-ba) > 1e-9 {
				t.Fatalf("Distance(%v, %v) = %v but reverse = %v", a, b, ab, ba)
			}
		}
	}
}

func TestDistanceTriangleInequality(t *testing.T) {
	for _, a := range samplePoints {
		for _, b := range samplePoints {
			for _, c := range samplePoints {
				if Distance(a, c) > Distance(a, b)+Distance(b, c)+1e-6 {
					t.Fatalf("triangle inequality violated for %v %v %v", a, b, c)
				}
			}
		}
	}
}

func TestDistanceOneDegreeOfLatitude(t *testing.T) {
	want := EarthRadiusMiles * math.Pi / 180
	got := Distance(Coordinates{Lat: 10, Lon: 20}, Coordinates{Lat: 11, Lon: 20})
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("distance = %v, want %v", got, want)
	}
}

func TestDistanceAntipodal(t *testing.T) {
	want := EarthRadiusMiles * math.Pi
	got := Distance(Coordinates{Lat: 0, Lon: 0}, Coordinates{Lat: 0, Lon: 180})
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("distance = %v, want %v", got, want)
	}
}
