package geo

import (
	"math"
	"testing"
)

func TestDistanceMetersZero(t *testing.T) {
	p := Coordinates{Latitude: 0, Longitude: 0}
	if d := DistanceMeters(p, p); d != 0 {
		t.Errorf("DistanceMeters(p, p) = %v, want 0", d)
	}
}

func TestDistanceMetersOneDegreeLatitude(t *testing.T) {
	a := Coordinates{Latitude: 0, Longitude: 0}
	b := Coordinates{Latitude: 1, Longitude: 0}

	got := DistanceMeters(a, b)
	want := 111195.0
	if math.Abs(got-want)/want > 0.005 {
		t.Errorf("DistanceMeters 1 degree latitude = %v, want %v +-0.5%%", got, want)
	}
}

func TestDistanceMetersSymmetric(t *testing.T) {
	a := Coordinates{Latitude: -6.2088, Longitude: 106.8456}
	b := Coordinates{Latitude: -6.1751, Longitude: 106.8650}
	if ab, ba := DistanceMeters(a, b), DistanceMeters(b, a); ab != ba {
		t.Errorf("DistanceMeters not symmetric: %v vs %v", ab, ba)
	}
}

func TestDistanceMetersNaNPropagates(t *testing.T) {
	a := Coordinates{Latitude: math.NaN(), Longitude: 0}
	b := Coordinates{Latitude: 0, Longitude: 0}
	if d := DistanceMeters(a, b); !math.IsNaN(d) {
		t.Errorf("DistanceMeters with NaN input = %v, want NaN", d)
	}
}

func TestVerifyBoundaryInclusive(t *testing.T) {
	office := Coordinates{Latitude: 0, Longitude: 0}

	// ~50m north of the office: 50 / 111195 degrees of latitude
	cases := []struct {
		name   string
		meters float64
		radius int
		want   bool
	}{
		{"exactly on the radius", 50, 50, true},
		{"one meter outside", 51, 50, false},
		{"well inside", 10, 50, true},
		{"at the office", 0, 50, true},
	}

	for _, c := range cases {
		user := Coordinates{Latitude: c.meters / 111195.0, Longitude: 0}
		v := Verify(user, office, c.radius)
		if v.WithinRadius != c.want {
			t.Errorf("%s: Verify(%vm, r=%d).WithinRadius = %v, want %v (distance=%d)",
				c.name, c.meters, c.radius, v.WithinRadius, c.want, v.DistanceMeters)
		}
		if math.Abs(float64(v.DistanceMeters)-c.meters) > 1 {
			t.Errorf("%s: distance = %d, want ~%v", c.name, v.DistanceMeters, c.meters)
		}
	}
}

func TestVerifyNearbyOffice(t *testing.T) {
	office := Coordinates{Latitude: 37.7749, Longitude: -122.4194}
	user := Coordinates{Latitude: 37.7750, Longitude: -122.4194}

	v := Verify(user, office, 100)
	if !v.WithinRadius {
		t.Errorf("Verify ~11m away with 100m radius: WithinRadius = false, want true")
	}
	if v.DistanceMeters < 10 || v.DistanceMeters > 12 {
		t.Errorf("Verify ~11m away: distance = %d, want ~11", v.DistanceMeters)
	}
}
