package geojson

import "github.com/mapsense/georuler"

// Measure annotates a feature's properties with its measurements in the
// ruler's unit: length for lines, area and perimeter for polygons. Point
// features are left untouched apart from the unit tag.
func Measure(ruler georuler.Ruler, unit georuler.Unit, f *Feature) error {
	if f.Properties == nil {
		f.Properties = make(map[string]interface{})
	}

	switch f.Geometry.Type {
	case "LineString":
		line, err := f.Geometry.Line()
		if err != nil {
			return err
		}
		f.Properties["length"] = ruler.LineDistance(line)

	case "Polygon":
		poly, err := f.Geometry.Polygon()
		if err != nil {
			return err
		}
		f.Properties["area"] = ruler.Area(poly)
		if len(poly) > 0 {
			f.Properties["perimeter"] = ruler.LineDistance(closeRing(poly[0]))
		}
	}

	f.Properties["unit"] = unit.String()
	return nil
}

// closeRing returns the ring as a line with an explicit closing segment.
func closeRing(ring georuler.Ring) georuler.Line {
	line := append(georuler.Line{}, georuler.Line(ring)...)
	if len(line) > 1 && line[0] != line[len(line)-1] {
		line = append(line, line[0])
	}
	return line
}
