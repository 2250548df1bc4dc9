package georuler

// BufferPoint returns a bounding box centered on p and expanded by the given
// distance on each side. The box is an axis-aligned rectangle in degree
// space, not a geodesic circle.
func (r Ruler) BufferPoint(p Point, buffer float64) Box {
	h := buffer / r.kx
	v := buffer / r.ky

	return Box{
		Min: Point{Lon: p.Lon - h, Lat: p.Lat - v},
		Max: Point{Lon: p.Lon + h, Lat: p.Lat + v},
	}
}

// BufferBBox returns the given box expanded by the given distance on each
// side.
func (r Ruler) BufferBBox(box Box, buffer float64) Box {
	h := buffer / r.kx
	v := buffer / r.ky

	return Box{
		Min: Point{Lon: box.Min.Lon - h, Lat: box.Min.Lat - v},
		Max: Point{Lon: box.Max.Lon + h, Lat: box.Max.Lat + v},
	}
}

// InsideBBox reports whether p lies inside the box. The longitude test is
// wrap-aware, so boxes that straddle the antimeridian behave correctly as
// long as their own min/max longitudes are expressed consistently.
func InsideBBox(p Point, box Box) bool {
	return p.Lat >= box.Min.Lat &&
		p.Lat <= box.Max.Lat &&
		longDiff(p.Lon, box.Min.Lon) >= 0 &&
		longDiff(p.Lon, box.Max.Lon) <= 0
}
