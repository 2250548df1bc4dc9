package georuler

import (
	"errors"
	"fmt"
	"math"
)

// Values that define the WGS84 ellipsoid model of the Earth.
const (
	re  = 6378.137             // equatorial radius, km
	fe  = 1.0 / 298.257223563  // flattening
	e2  = fe * (2 - fe)        // eccentricity squared
	rad = math.Pi / 180.0
)

// ErrInvalidTile is returned by NewRulerFromTile for tile coordinates
// outside the supported range.
var ErrInvalidTile = errors.New("invalid tile coordinates")

// Ruler holds the two scale factors that convert longitude and latitude
// degrees into distance near a reference latitude. A Ruler is immutable
// after construction and safe for concurrent use.
type Ruler struct {
	kx float64 // longitude degrees to distance
	ky float64 // latitude degrees to distance
}

// NewRuler creates a Ruler valid for geodesic computations near the given
// latitude, expressed in decimal degrees. Latitudes of exactly ±90° are not
// validated and produce non-finite scale factors.
func NewRuler(latitude float64, unit Unit) Ruler {
	// Curvature formulas from https://en.wikipedia.org/wiki/Earth_radius#Meridional
	mul := rad * re * unit.Multiplier()
	coslat := math.Cos(latitude * rad)
	w2 := 1 / (1 - e2*(1-coslat*coslat))
	w := math.Sqrt(w2)

	return Ruler{
		kx: mul * w * coslat,        // normal radius of curvature
		ky: mul * w * w2 * (1 - e2), // meridional radius of curvature
	}
}

// NewRulerFromTile creates a Ruler valid for the given Web Mercator tile row
// y at zoom level z. It fails if y is negative or z is outside [0, 32).
func NewRulerFromTile(y, z int, unit Unit) (Ruler, error) {
	if y < 0 {
		return Ruler{}, fmt.Errorf("%w: y must be non-negative, got %d", ErrInvalidTile, y)
	}
	if z < 0 || z >= 32 {
		return Ruler{}, fmt.Errorf("%w: z must be in [0, 32), got %d", ErrInvalidTile, z)
	}

	n := math.Pi * (1.0 - 2.0*(float64(y)+0.5)/float64(int64(1)<<z))
	latitude := math.Atan(math.Sinh(n)) / rad

	return NewRuler(latitude, unit), nil
}

// longDiff is the shortest signed angular difference on the 360°-periodic
// longitude axis, in [-180, 180]. Every longitude subtraction must go
// through it so measurements stay correct across the antimeridian.
func longDiff(a, b float64) float64 {
	return math.Remainder(a-b, 360.0)
}

// squareDistance returns the square of the distance between two points.
func (r Ruler) squareDistance(a, b Point) float64 {
	dx := longDiff(a.Lon, b.Lon) * r.kx
	dy := (a.Lat - b.Lat) * r.ky
	return dx*dx + dy*dy
}

// Distance returns the distance between two points.
func (r Ruler) Distance(a, b Point) float64 {
	return math.Sqrt(r.squareDistance(a, b))
}

// Bearing returns the bearing from a to b in degrees, in (-180, 180].
func (r Ruler) Bearing(a, b Point) float64 {
	dx := longDiff(b.Lon, a.Lon) * r.kx
	dy := (b.Lat - a.Lat) * r.ky
	return math.Atan2(dx, dy) / rad
}

// Destination returns a new point at the given distance and bearing
// (in degrees) from the origin.
func (r Ruler) Destination(origin Point, dist, bearing float64) Point {
	a := bearing * rad
	return r.Offset(origin, math.Sin(a)*dist, math.Cos(a)*dist)
}

// Offset returns a new point at the given easting and northing offsets
// from the origin.
func (r Ruler) Offset(origin Point, dx, dy float64) Point {
	return Point{
		Lon: origin.Lon + dx/r.kx,
		Lat: origin.Lat + dy/r.ky,
	}
}

// Interpolate returns the point at position t along the segment from a to b,
// wrap-aware on the longitude axis. t is not clamped; callers pass the range
// they need.
func Interpolate(a, b Point, t float64) Point {
	dx := longDiff(b.Lon, a.Lon)
	dy := b.Lat - a.Lat

	return Point{
		Lon: a.Lon + dx*t,
		Lat: a.Lat + dy*t,
	}
}
