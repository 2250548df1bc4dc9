package georuler

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fixture points near Washington, DC.
var (
	dcA = Point{Lon: -77.031669, Lat: 38.878605}
	dcB = Point{Lon: -77.029609, Lat: 38.881946}
)

func kmRuler() Ruler {
	return NewRuler(32.8351, Kilometers)
}

func TestDistance(t *testing.T) {
	d := kmRuler().Distance(dcA, dcB)

	// Reference value derived from the projection formulas at this latitude.
	assert.InDelta(t, 0.41771, d, 0.41771*0.003)
}

func TestDistanceSymmetry(t *testing.T) {
	r := kmRuler()
	assert.Equal(t, r.Distance(dcA, dcB), r.Distance(dcB, dcA))
}

func TestDistanceUnits(t *testing.T) {
	a := Point{Lon: 30.5, Lat: 32.8351}
	b := Point{Lon: 30.51, Lat: 32.8451}

	d := NewRuler(32.8351, Kilometers).Distance(a, b)
	d2 := NewRuler(32.8351, Miles).Distance(a, b)

	assert.InEpsilon(t, 1.609344, d/d2, 1e-12)
}

func TestDistanceUnitLinearity(t *testing.T) {
	units := []Unit{Kilometers, Miles, NauticalMiles, Meters, Yards, Feet, Inches}

	base := NewRuler(32.8351, Kilometers).Distance(dcA, dcB)
	for _, u := range units {
		t.Run(u.String(), func(t *testing.T) {
			d := NewRuler(32.8351, u).Distance(dcA, dcB)
			assert.InEpsilon(t, u.Multiplier(), d/base, 1e-10)
		})
	}
}

func TestBearing(t *testing.T) {
	r := kmRuler()

	b := r.Bearing(dcA, dcB)
	assert.Greater(t, b, 0.0) // northeast
	assert.Less(t, b, 90.0)

	// Reversing the points flips the bearing by 180 degrees.
	rev := r.Bearing(dcB, dcA)
	assert.InDelta(t, 0, math.Remainder(b-rev+180, 360), 1e-12)
}

func TestDestinationRoundTrip(t *testing.T) {
	r := kmRuler()
	origin := Point{Lon: -77.031669, Lat: 38.878605}

	for _, dist := range []float64{0.1, 1, 10, 100, 450} {
		for bearing := -180.0; bearing < 180; bearing += 45 {
			p := r.Destination(origin, dist, bearing)
			assert.InDelta(t, dist, r.Distance(origin, p), 1e-9)
		}
	}
}

func TestDestinationBearing(t *testing.T) {
	r := kmRuler()
	origin := Point{Lon: 30.5, Lat: 32.8351}

	for bearing := -150.0; bearing <= 180; bearing += 30 {
		p := r.Destination(origin, 5, bearing)
		assert.InDelta(t, 0, math.Remainder(bearing-r.Bearing(origin, p), 360), 1e-9)
	}
}

func TestOffset(t *testing.T) {
	r := kmRuler()
	origin := Point{Lon: 30.5, Lat: 32.8351}

	p := r.Offset(origin, 10, -5)
	assert.InDelta(t, 10, longDiff(p.Lon, origin.Lon)*r.kx, 1e-12)
	assert.InDelta(t, -5, (p.Lat-origin.Lat)*r.ky, 1e-12)
}

func TestNewRulerFromTile(t *testing.T) {
	r1 := NewRuler(50.5, Kilometers)
	r2, err := NewRulerFromTile(11041, 15, Kilometers)
	require.NoError(t, err)

	p1 := Point{Lon: 30.5, Lat: 50.5}
	p2 := Point{Lon: 30.51, Lat: 50.51}

	assert.InEpsilon(t, r1.Distance(p1, p2), r2.Distance(p1, p2), 2e-5)
}

func TestNewRulerFromTileInvalid(t *testing.T) {
	tests := []struct {
		name string
		y, z int
	}{
		{"negative y", -1, 10},
		{"negative z", 0, -1},
		{"z too large", 0, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRulerFromTile(tt.y, tt.z, Kilometers)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidTile)
		})
	}
}

func TestLongDiffWrap(t *testing.T) {
	assert.InDelta(t, -0.2, longDiff(179.9, -179.9), 1e-12)
	assert.InDelta(t, 0.2, longDiff(-179.9, 179.9), 1e-12)
	assert.InDelta(t, 0.1, longDiff(-179.95, -180.05), 1e-12)
}

func TestInterpolate(t *testing.T) {
	a := Point{Lon: 10, Lat: 20}
	b := Point{Lon: 12, Lat: 24}

	assert.Equal(t, a, Interpolate(a, b, 0))
	assert.Equal(t, Point{Lon: 11, Lat: 22}, Interpolate(a, b, 0.5))
	assert.Equal(t, b, Interpolate(a, b, 1))

	// Interpolation stays on the short arc across the antimeridian.
	mid := Interpolate(Point{Lon: 179.9, Lat: 0}, Point{Lon: -179.9, Lat: 0}, 0.5)
	assert.InDelta(t, 180.0, math.Abs(mid.Lon), 1e-12)
}

func TestParseUnit(t *testing.T) {
	tests := []struct {
		in   string
		want Unit
	}{
		{"kilometers", Kilometers},
		{"km", Kilometers},
		{"kilometres", Kilometers},
		{"miles", Miles},
		{"nauticalmiles", NauticalMiles},
		{"nmi", NauticalMiles},
		{"meters", Meters},
		{"metres", Meters},
		{"yards", Yards},
		{"feet", Feet},
		{"inches", Inches},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			u, err := ParseUnit(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, u)
		})
	}

	_, err := ParseUnit("furlongs")
	assert.Error(t, err)
}

func TestUnitRoundTrip(t *testing.T) {
	for _, u := range []Unit{Kilometers, Miles, NauticalMiles, Meters, Yards, Feet, Inches} {
		parsed, err := ParseUnit(u.String())
		require.NoError(t, err)
		assert.Equal(t, u, parsed)
	}
}
