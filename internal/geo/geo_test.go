package geo

import (
	"math"
	"strings"
	"testing"
)

func TestDistanceKmSymmetricAndZero(t *testing.T) {
	points := []Point{
		{12.90, 77.60},
		{12.93, 77.62},
		{-33.8688, 151.2093},
		{51.5074, -0.1278},
		{0, 179.9},
		{0, -179.9},
	}
	for _, a := range points {
		if d := Distance(a, a); d != 0 {
			t.Errorf("Distance(%v, %v) = %v, want 0", a, a, d)
		}
		for _, b := range points {
			ab, ba := Distance(a, b), Distance(b, a)
			if math.Abs(ab-ba) > 1e-9 {
				t.Errorf("asymmetric distance %v -> %v: %v vs %v", a, b, ab, ba)
			}
			if ab < 0 {
				t.Errorf("negative distance %v -> %v: %v", a, b, ab)
			}
		}
	}
}

func TestDistanceKmKnownValues(t *testing.T) {
	cases := []struct {
		name       string
		a, b       Point
		want, tol  float64
	}{
		{"bengaluru short hop", Point{12.90, 77.60}, Point{12.93, 77.62}, 3.98, 0.05},
		{"one degree of latitude", Point{0, 0}, Point{1, 0}, 111.19, 0.01},
		{"across the antimeridian", Point{0, 179.5}, Point{0, -179.5}, 111.19, 0.01},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Distance(tc.a, tc.b)
			if math.Abs(got-tc.want) > tc.tol {
				t.Fatalf("got %.4f km, want %.4f ± %.2f", got, tc.want, tc.tol)
			}
		})
	}
}

func TestDistanceKmAntipodalIsFinite(t *testing.T) {
	half := math.Pi * EarthRadiusKm
	for lat := -89.0; lat <= 89; lat += 0.5 {
		for lon := 179.0; lon <= 180; lon += 0.25 {
			d := DistanceKm(-lat, 0, lat, lon)
			if math.IsNaN(d) || math.IsInf(d, 0) {
				t.Fatalf("DistanceKm(%v, 0, %v, %v) = %v", -lat, lat, lon, d)
			}
			if d < 0 || d > half+1e-6 {
				t.Fatalf("DistanceKm(%v, 0, %v, %v) = %v, outside [0, %v]", -lat, lat, lon, d, half)
			}
		}
	}

	for _, p := range []Point{{-88.5, 0}, {-87.5, 0}, {0, 0}, {45, 90}} {
		q := Point{Lat: -p.Lat, Lon: p.Lon + 180}
		if d := Distance(p, q); math.Abs(d-half) > 0.01 {
			t.Errorf("Distance(%v, %v) = %v, want %v", p, q, d, half)
		}
	}
}

func TestValidateCoordinates(t *testing.T) {
	if err := ValidateCoordinates(Point{12.9, 77.6}); err != nil {
		t.Fatalf("valid point rejected: %v", err)
	}
	if err := ValidateCoordinates(Point{91, 0}); err != ErrLatitudeRange {
		t.Fatalf("expected ErrLatitudeRange, got %v", err)
	}
	if err := ValidateCoordinates(Point{0, -181}); err != ErrLongitudeRange {
		t.Fatalf("expected ErrLongitudeRange, got %v", err)
	}
	if err := ValidateCoordinates(Point{math.NaN(), 0}); err != ErrLatitudeRange {
		t.Fatalf("expected ErrLatitudeRange for NaN, got %v", err)
	}
}

func TestRouteLineGeoJSON(t *testing.T) {
	wkbBytes, err := RouteLine(Point{12.90, 77.60}, Point{12.93, 77.62})
	if err != nil {
		t.Fatalf("route line: %v", err)
	}
	out, err := ToGeoJSON(wkbBytes)
	if err != nil {
		t.Fatalf("to geojson: %v", err)
	}
	if !strings.Contains(out, `"LineString"`) {
		t.Fatalf("expected a LineString, got %s", out)
	}
	// GeoJSON is lon,lat ordered
	if !strings.Contains(out, "[77.6,12.9]") {
		t.Fatalf("expected pickup as [lon,lat], got %s", out)
	}

	empty, err := ToGeoJSON(nil)
	if err != nil || empty != "" {
		t.Fatalf("empty input: got %q, %v", empty, err)
	}
}
