package georuler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A short polyline near the reference latitude, built once with Destination
// so segment lengths are known by construction.
func testLine(r Ruler) Line {
	line := Line{{Lon: 30.5, Lat: 32.8351}}
	bearings := []float64{0, 45, 90, 45, -45, 0}
	for _, b := range bearings {
		line = append(line, r.Destination(line[len(line)-1], 2, b))
	}
	return line
}

func TestLineDistance(t *testing.T) {
	r := kmRuler()
	line := testLine(r)

	assert.InDelta(t, 12, r.LineDistance(line), 1e-9)
}

func TestLineDistanceDegenerate(t *testing.T) {
	r := kmRuler()

	assert.Zero(t, r.LineDistance(Line{}))
	assert.Zero(t, r.LineDistance(Line{{Lon: 1, Lat: 2}}))
}

func TestAlong(t *testing.T) {
	r := kmRuler()
	line := testLine(r)

	p := r.Along(line, 3)
	assert.InDelta(t, 3, r.LineDistance(r.LineSlice(line[0], p, line)), 1e-9)
}

func TestAlongBounds(t *testing.T) {
	r := kmRuler()
	line := testLine(r)

	assert.Equal(t, line[0], r.Along(line, 0))
	assert.Equal(t, line[0], r.Along(line, -5))
	assert.Equal(t, line[len(line)-1], r.Along(line, 1000))
}

func TestAlongEmptyLine(t *testing.T) {
	r := kmRuler()
	assert.Equal(t, Point{}, r.Along(Line{}, 7))
}

func TestPointOnLine(t *testing.T) {
	r := kmRuler()
	line := Line{dcA, dcB}

	res := r.PointOnLine(line, Point{Lon: -77.034076, Lat: 38.882017})

	assert.InEpsilon(t, -77.03052689033436, res.Point.Lon, 1e-6)
	assert.InEpsilon(t, 38.880457324462576, res.Point.Lat, 1e-6)
	assert.Equal(t, 0, res.Index)
	assert.InEpsilon(t, 0.5544221677861756, res.T, 1e-6)
}

func TestPointOnLineClampsT(t *testing.T) {
	r := kmRuler()
	line := Line{dcA, dcB}

	assert.Zero(t, r.PointOnLine(line, Point{Lon: -80, Lat: 38}).T)
	assert.Equal(t, 1.0, r.PointOnLine(line, Point{Lon: -75, Lat: 38}).T)
}

func TestPointOnLineEmpty(t *testing.T) {
	r := kmRuler()
	assert.Equal(t, LinePoint{}, r.PointOnLine(Line{}, dcA))
}

func TestPointOnLineTieBreak(t *testing.T) {
	r := kmRuler()
	// Two collinear segments sharing a vertex: the query point projects onto
	// the shared vertex from both, and the first segment must win.
	line := Line{
		{Lon: 30.0, Lat: 32.8},
		{Lon: 30.1, Lat: 32.8},
		{Lon: 30.2, Lat: 32.8},
	}

	res := r.PointOnLine(line, Point{Lon: 30.1, Lat: 32.9})
	assert.Equal(t, 0, res.Index)
	assert.InDelta(t, 1.0, res.T, 1e-12)
}

func TestPointToSegmentDistance(t *testing.T) {
	r := kmRuler()
	p := Point{Lon: -77.034076, Lat: 38.882017}

	d := r.PointToSegmentDistance(p, dcA, dcB)
	assert.InEpsilon(t, 0.37461484020420416, d, 1e-6)
}

func TestPointToSegmentDistanceDegenerate(t *testing.T) {
	r := kmRuler()
	a := Point{Lon: 30.5, Lat: 32.8351}

	// Zero-length segment falls back to plain point distance.
	assert.Equal(t, r.Distance(dcA, a), r.PointToSegmentDistance(dcA, a, a))
}

func TestLineSlice(t *testing.T) {
	r := kmRuler()
	line := testLine(r)
	total := r.LineDistance(line)

	start := r.Along(line, total*0.3)
	stop := r.Along(line, total*0.7)

	sliced := r.LineDistance(r.LineSlice(start, stop, line))
	assert.InDelta(t, total*0.4, sliced, 1e-9)
}

func TestLineSliceReversed(t *testing.T) {
	r := kmRuler()
	line := testLine(r)
	total := r.LineDistance(line)

	start := r.Along(line, total*0.3)
	stop := r.Along(line, total*0.7)

	forward := r.LineDistance(r.LineSlice(start, stop, line))
	backward := r.LineDistance(r.LineSlice(stop, start, line))
	assert.Equal(t, forward, backward)
}

func TestLineSliceCoincident(t *testing.T) {
	r := kmRuler()
	line := testLine(r)
	p := r.Along(line, 3)

	sliced := r.LineSlice(p, p, line)
	require.NotEmpty(t, sliced)
	assert.Zero(t, r.LineDistance(sliced))
}

func TestLineSliceEmpty(t *testing.T) {
	r := kmRuler()
	assert.Empty(t, r.LineSlice(dcA, dcB, Line{}))
}

func TestLineSliceAlong(t *testing.T) {
	r := kmRuler()
	line := testLine(r)
	total := r.LineDistance(line)

	sliced := r.LineDistance(r.LineSliceAlong(total*0.3, total*0.7, line))
	assert.InDelta(t, total*0.4, sliced, 1e-9)
}

func TestLineSliceAlongMatchesLineSlice(t *testing.T) {
	r := kmRuler()
	line := testLine(r)
	total := r.LineDistance(line)

	start := r.Along(line, total*0.3)
	stop := r.Along(line, total*0.7)

	byPoint := r.LineDistance(r.LineSlice(start, stop, line))
	byDist := r.LineDistance(r.LineSliceAlong(total*0.3, total*0.7, line))
	assert.InDelta(t, byPoint, byDist, 1e-9)
}

func TestLineSliceAlongOutOfRange(t *testing.T) {
	r := kmRuler()
	line := testLine(r)
	total := r.LineDistance(line)

	// Stop past the end: returns everything after start, no error.
	sliced := r.LineSliceAlong(total*0.5, total*10, line)
	assert.InDelta(t, total*0.5, r.LineDistance(sliced), 1e-9)

	// Entirely past the end: nothing collected.
	assert.Empty(t, r.LineSliceAlong(total+1, total+2, line))
}

func TestLineSliceAlongEmpty(t *testing.T) {
	r := kmRuler()
	assert.Empty(t, r.LineSliceAlong(0, 0, Line{}))
}
