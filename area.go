package georuler

import "math"

// Area returns the area of a polygon. Ring 0 is the outer boundary and the
// areas of subsequent rings are subtracted as holes. The result is always
// non-negative; winding direction cannot be recovered from it.
func (r Ruler) Area(poly Polygon) float64 {
	sum := 0.0

	for i, ring := range poly {
		sign := 1.0
		if i != 0 {
			sign = -1.0
		}
		for j, k := 0, len(ring)-1; j < len(ring); k, j = j, j+1 {
			sum += longDiff(ring[j].Lon, ring[k].Lon) * (ring[j].Lat + ring[k].Lat) * sign
		}
	}

	return (math.Abs(sum) / 2.0) * r.kx * r.ky
}
