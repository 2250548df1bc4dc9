// Package georuler provides very fast approximations to common geodesic
// measurements, useful for performance-sensitive code that measures things
// on a city scale.
//
// The approximations are based on the WGS84 ellipsoid model of the Earth,
// projecting coordinates to a flat surface that approximates the ellipsoid
// around a certain latitude. For distances under 500 kilometers and not on
// the poles, the results are within a 0.1% margin of error compared to the
// Vincenty formulas, and usually much less for shorter distances.
package georuler

// Point is a geographic position in decimal degrees. Lon is the longitude
// axis, which wraps at the ±180° antimeridian; all measurements handle that
// wrap. Equality is exact bitwise equality of both fields.
type Point struct {
	Lon float64
	Lat float64
}

// Line is an ordered sequence of points connected consecutively.
// It may be empty, and no closure is assumed.
type Line []Point

// Ring is an ordered sequence of points where the last point is implicitly
// connected back to the first. It is used only as a polygon boundary.
type Ring []Point

// Polygon is an ordered sequence of rings. Ring 0 is the outer boundary,
// subsequent rings are holes subtracted from it.
type Polygon []Ring

// Box is an axis-aligned bounding rectangle in lon/lat degree space.
type Box struct {
	Min Point
	Max Point
}

// LinePoint is the result of Ruler.PointOnLine: the closest point on the
// line, the index of the first vertex of the segment containing it, and the
// position t within that segment, clamped to [0, 1].
type LinePoint struct {
	Point Point
	Index int
	T     float64
}
