package georuler

import "math"

// LineDistance returns the total distance along a line. It is zero for empty
// and single-point lines.
func (r Ruler) LineDistance(line Line) float64 {
	total := 0.0
	for i := 1; i < len(line); i++ {
		total += r.Distance(line[i-1], line[i])
	}
	return total
}

// Along returns the point at the given distance along a line. Distances at
// or below zero yield the first point, distances past the total length yield
// the last point, and an empty line yields the zero point.
func (r Ruler) Along(line Line, dist float64) Point {
	if len(line) == 0 {
		return Point{}
	}
	if dist <= 0 {
		return line[0]
	}

	sum := 0.0
	for i := 0; i < len(line)-1; i++ {
		p0 := line[i]
		p1 := line[i+1]
		d := r.Distance(p0, p1)

		sum += d

		if sum > dist {
			return Interpolate(p0, p1, (dist-(sum-d))/d)
		}
	}

	return line[len(line)-1]
}

// PointToSegmentDistance returns the distance from p to the line segment
// between a and b.
func (r Ruler) PointToSegmentDistance(p, a, b Point) float64 {
	x := a.Lon
	y := a.Lat
	dx := longDiff(b.Lon, x) * r.kx
	dy := (b.Lat - y) * r.ky

	if dx != 0 || dy != 0 {
		t := (longDiff(p.Lon, x)*r.kx*dx + (p.Lat-y)*r.ky*dy) / (dx*dx + dy*dy)
		if t > 1 {
			x = b.Lon
			y = b.Lat
		} else if t > 0 {
			x += (dx / r.kx) * t
			y += (dy / r.ky) * t
		}
	}

	return r.Distance(p, Point{Lon: x, Lat: y})
}

// PointOnLine returns the closest point on the line to p, together with the
// index of the first vertex of the segment it falls on and the position t
// within that segment. Ties between segments keep the lowest index. An empty
// line yields a zero result.
func (r Ruler) PointOnLine(line Line, p Point) LinePoint {
	minDist := math.Inf(1)
	var minX, minY, minT float64
	minI := 0

	if len(line) == 0 {
		return LinePoint{}
	}

	for i := 0; i < len(line)-1; i++ {
		t := 0.0
		x := line[i].Lon
		y := line[i].Lat
		dx := longDiff(line[i+1].Lon, x) * r.kx
		dy := (line[i+1].Lat - y) * r.ky

		if dx != 0 || dy != 0 {
			t = (longDiff(p.Lon, x)*r.kx*dx + (p.Lat-y)*r.ky*dy) / (dx*dx + dy*dy)
			if t > 1 {
				x = line[i+1].Lon
				y = line[i+1].Lat
			} else if t > 0 {
				x += (dx / r.kx) * t
				y += (dy / r.ky) * t
			}
		}

		sqDist := r.squareDistance(p, Point{Lon: x, Lat: y})

		if sqDist < minDist {
			minDist = sqDist
			minX = x
			minY = y
			minI = i
			minT = t
		}
	}

	return LinePoint{
		Point: Point{Lon: minX, Lat: minY},
		Index: minI,
		T:     math.Max(0, math.Min(1, minT)),
	}
}

// LineSlice returns the part of the line between the start and stop points,
// or their closest points on the line. The slice always follows the line's
// forward direction, regardless of the order of start and stop.
func (r Ruler) LineSlice(start, stop Point, line Line) Line {
	if len(line) == 0 {
		return Line{}
	}

	p1 := r.PointOnLine(line, start)
	p2 := r.PointOnLine(line, stop)

	if p1.Index > p2.Index || (p1.Index == p2.Index && p1.T > p2.T) {
		p1, p2 = p2, p1
	}

	slice := Line{p1.Point}

	left := p1.Index + 1
	right := p2.Index

	if left <= right && line[left] != slice[0] {
		slice = append(slice, line[left])
	}
	for i := left + 1; i <= right; i++ {
		slice = append(slice, line[i])
	}

	if line[right] != p2.Point {
		slice = append(slice, p2.Point)
	}

	return slice
}

// LineSliceAlong returns the part of the line between two distances measured
// from its start. Out-of-range distances yield whatever portion exists; no
// error is raised.
func (r Ruler) LineSliceAlong(start, stop float64, line Line) Line {
	sum := 0.0
	var slice Line

	for i := 1; i < len(line); i++ {
		p0 := line[i-1]
		p1 := line[i]
		d := r.Distance(p0, p1)
		sum += d

		if sum > start && len(slice) == 0 {
			slice = append(slice, Interpolate(p0, p1, (start-(sum-d))/d))
		}

		if sum >= stop {
			slice = append(slice, Interpolate(p0, p1, (stop-(sum-d))/d))
			return slice
		}

		if sum > start {
			slice = append(slice, p1)
		}
	}

	return slice
}
