package georuler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferPoint(t *testing.T) {
	r := kmRuler()
	p := Point{Lon: 30.5, Lat: 38.5}

	box := r.BufferPoint(p, 0.1)

	assert.InDelta(t, p.Lon, (box.Min.Lon+box.Max.Lon)/2, 1e-12)
	assert.InDelta(t, p.Lat, (box.Min.Lat+box.Max.Lat)/2, 1e-12)
	assert.InDelta(t, 0.1, (box.Max.Lon-p.Lon)*r.kx, 1e-12)
	assert.InDelta(t, 0.1, (box.Max.Lat-p.Lat)*r.ky, 1e-12)
}

func TestBufferBBox(t *testing.T) {
	r := kmRuler()
	box := Box{Min: Point{Lon: 30, Lat: 38}, Max: Point{Lon: 40, Lat: 39}}

	buffered := r.BufferBBox(box, 1)

	assert.InEpsilon(t, 29.989319515875376, buffered.Min.Lon, 1e-6)
	assert.InEpsilon(t, 37.99098271225711, buffered.Min.Lat, 1e-6)
	assert.InEpsilon(t, 40.01068048412462, buffered.Max.Lon, 1e-6)
	assert.InEpsilon(t, 39.00901728774289, buffered.Max.Lat, 1e-6)
}

func TestInsideBBox(t *testing.T) {
	box := Box{Min: Point{Lon: 30, Lat: 38}, Max: Point{Lon: 40, Lat: 39}}

	assert.True(t, InsideBBox(Point{Lon: 35, Lat: 38.5}, box))
	assert.False(t, InsideBBox(Point{Lon: 45, Lat: 45}, box))
	assert.False(t, InsideBBox(Point{Lon: 35, Lat: 39.5}, box))
	assert.False(t, InsideBBox(Point{Lon: 25, Lat: 38.5}, box))
}

func TestInsideBBoxAntimeridian(t *testing.T) {
	// A box straddling the ±180° boundary from 179.9°E to 179.9°W.
	box := Box{Min: Point{Lon: 179.9, Lat: -10}, Max: Point{Lon: -179.9, Lat: 10}}

	assert.True(t, InsideBBox(Point{Lon: 179.95, Lat: 0}, box))
	assert.True(t, InsideBBox(Point{Lon: -179.95, Lat: 0}, box))
	assert.True(t, InsideBBox(Point{Lon: 180, Lat: 5}, box))
	assert.False(t, InsideBBox(Point{Lon: 179.5, Lat: 0}, box))
	assert.False(t, InsideBBox(Point{Lon: -179.5, Lat: 0}, box))
	assert.False(t, InsideBBox(Point{Lon: 179.95, Lat: 20}, box))
}

func TestBufferPointContains(t *testing.T) {
	r := kmRuler()
	p := Point{Lon: 30.5, Lat: 38.5}
	box := r.BufferPoint(p, 1)

	assert.True(t, InsideBBox(p, box))
	assert.True(t, InsideBBox(r.Destination(p, 0.9, 45), box))
	assert.False(t, InsideBBox(r.Destination(p, 1.5, 90), box))
}

func BenchmarkDistance(b *testing.B) {
	r := kmRuler()
	for i := 0; i < b.N; i++ {
		r.Distance(dcA, dcB)
	}
}

func BenchmarkPointOnLine(b *testing.B) {
	r := kmRuler()
	line := testLine(r)
	for i := 0; i < b.N; i++ {
		r.PointOnLine(line, dcA)
	}
}
