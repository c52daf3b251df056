package geofence

import (
	"math"
	"testing"
)

var sekolah = Position{Latitude: 5.6147, Longitude: 115.8893}

// offsetNorth menggeser posisi ke utara sejauh meter (sepanjang meridian).
func offsetNorth(p Position, meter float64) Position {
	return Position{
		Latitude:  p.Latitude + meter/EarthRadiusMeter*180/math.Pi,
		Longitude: p.Longitude,
	}
}

func TestDistanceSymmetricAndZero(t *testing.T) {
	points := []Position{
		sekolah,
		{Latitude: -0.9416, Longitude: 100.37},
		{Latitude: 51.5, Longitude: -0.12},
		{Latitude: -33.86, Longitude: 151.2},
	}
	for _, a := range points {
		if d := Distance(a, a); d != 0 {
			t.Fatalf("expected zero distance for %v, got %f", a, d)
		}
		for _, b := range points {
			if Distance(a, b) != Distance(b, a) {
				t.Fatalf("distance not symmetric for %v and %v", a, b)
			}
		}
	}
}

func TestDistanceAlongMeridian(t *testing.T) {
	d := Distance(sekolah, offsetNorth(sekolah, 1000))
	if math.Abs(d-1000) > 0.01 {
		t.Fatalf("expected ~1000m got %f", d)
	}
}

func TestEvaluateUndeterminedWithoutPosition(t *testing.T) {
	res := Evaluate(nil, sekolah, 300)
	if res.Verdict != Undetermined {
		t.Fatalf("expected undetermined got %v", res.Verdict)
	}
}

func TestEvaluateRadius(t *testing.T) {
	at := sekolah
	if res := Evaluate(&at, sekolah, 300); res.Verdict != Inside || res.Distance != 0 {
		t.Fatalf("expected inside at target, got %+v", res)
	}

	far := offsetNorth(sekolah, 350)
	if res := Evaluate(&far, sekolah, 300); res.Verdict != Outside {
		t.Fatalf("expected 350m to be outside 300m radius, got %+v", res)
	}

	away := offsetNorth(sekolah, 1000)
	if res := Evaluate(&away, sekolah, 300); res.Verdict != Outside {
		t.Fatalf("expected 1000m to be outside, got %+v", res)
	}
}

func TestEvaluateBoundaryInclusive(t *testing.T) {
	edge := offsetNorth(sekolah, 300)
	radius := Distance(edge, sekolah)
	if res := Evaluate(&edge, sekolah, radius); res.Verdict != Inside {
		t.Fatalf("expected boundary to be inside, got %+v", res)
	}
}
