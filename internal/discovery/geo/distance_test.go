// internal/discovery/geo/distance_test.go
package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm_Identity(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{19.0760, 72.8777},
		{-33.8688, 151.2093},
		{89.9, -179.9},
	}

	for _, p := range points {
		assert.Equal(t, 0.0, DistanceKm(p[0], p[1], p[0], p[1]))
	}
}

func TestDistanceKm_Symmetry(t *testing.T) {
	pairs := []struct {
		a, b [2]float64
	}{
		{[2]float64{19.0760, 72.8777}, [2]float64{28.6139, 77.2090}},
		{[2]float64{51.5074, -0.1278}, [2]float64{40.7128, -74.0060}},
		{[2]float64{-1.2921, 36.8219}, [2]float64{35.6762, 139.6503}},
	}

	for _, p := range pairs {
		d1 := DistanceKm(p.a[0], p.a[1], p.b[0], p.b[1])
		d2 := DistanceKm(p.b[0], p.b[1], p.a[0], p.a[1])
		assert.InDelta(t, d1, d2, 1e-6)
	}
}

func TestDistanceKm_MumbaiToDelhi(t *testing.T) {
	// Haversine on a 6371 km sphere gives ~1148 km for Mumbai-Delhi; the
	// commonly quoted ~1160 km comes from ellipsoidal models.
	d := DistanceKm(19.0760, 72.8777, 28.6139, 77.2090)
	assert.InDelta(t, 1148.1, d, 2.0)
}

func TestDistanceKm_ShortDistance(t *testing.T) {
	// Two points ~1.11 km apart along a meridian (0.01 degrees of latitude).
	d := DistanceKm(12.9716, 77.5946, 12.9816, 77.5946)
	assert.InDelta(t, 1.112, d, 0.01)
}

func TestDistanceKm_NaNPropagation(t *testing.T) {
	assert.True(t, math.IsNaN(DistanceKm(math.NaN(), 0, 0, 0)))
	assert.True(t, math.IsNaN(DistanceKm(0, 0, 0, math.NaN())))
}
