// Package geojson handles geographic feature encoding and coordinate
// conversions between GeoJSON shapes and georuler value types.
package geojson

import (
	"encoding/json"
	"fmt"

	"github.com/mapsense/georuler"

	"github.com/twpayne/go-polyline"
)

// FeatureCollection represents a collection of geographic features.
// It follows the standard GeoJSON structure.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature represents a single geographic feature with geometry and properties.
type Feature struct {
	Properties map[string]interface{} `json:"properties,omitempty"`
	Type       string                 `json:"type"`
	Geometry   Geometry               `json:"geometry"`
}

// Geometry represents the geometry of a feature. Coordinates are kept raw
// because their nesting depth depends on Type.
type Geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// Point decodes a Point geometry.
func (g Geometry) Point() (georuler.Point, error) {
	if g.Type != "Point" {
		return georuler.Point{}, fmt.Errorf("expected Point geometry, got %q", g.Type)
	}

	var coords []float64
	if err := json.Unmarshal(g.Coordinates, &coords); err != nil {
		return georuler.Point{}, err
	}
	if len(coords) < 2 {
		return georuler.Point{}, fmt.Errorf("point needs 2 coordinates, got %d", len(coords))
	}

	return georuler.Point{Lon: coords[0], Lat: coords[1]}, nil
}

// Line decodes a LineString geometry.
func (g Geometry) Line() (georuler.Line, error) {
	if g.Type != "LineString" {
		return nil, fmt.Errorf("expected LineString geometry, got %q", g.Type)
	}

	var coords [][]float64
	if err := json.Unmarshal(g.Coordinates, &coords); err != nil {
		return nil, err
	}

	return toLine(coords)
}

// Polygon decodes a Polygon geometry.
func (g Geometry) Polygon() (georuler.Polygon, error) {
	if g.Type != "Polygon" {
		return nil, fmt.Errorf("expected Polygon geometry, got %q", g.Type)
	}

	var coords [][][]float64
	if err := json.Unmarshal(g.Coordinates, &coords); err != nil {
		return nil, err
	}

	poly := make(georuler.Polygon, 0, len(coords))
	for _, ring := range coords {
		line, err := toLine(ring)
		if err != nil {
			return nil, err
		}
		poly = append(poly, georuler.Ring(line))
	}

	return poly, nil
}

func toLine(coords [][]float64) (georuler.Line, error) {
	line := make(georuler.Line, 0, len(coords))
	for i, c := range coords {
		if len(c) < 2 {
			return nil, fmt.Errorf("position %d needs 2 coordinates, got %d", i, len(c))
		}
		line = append(line, georuler.Point{Lon: c[0], Lat: c[1]})
	}
	return line, nil
}

// NewPoint builds a Point geometry.
func NewPoint(p georuler.Point) Geometry {
	return Geometry{Type: "Point", Coordinates: mustCoords([]float64{p.Lon, p.Lat})}
}

// NewLine builds a LineString geometry.
func NewLine(line georuler.Line) Geometry {
	return Geometry{Type: "LineString", Coordinates: mustCoords(fromLine(line))}
}

// NewBox builds a Polygon geometry tracing the box counterclockwise.
func NewBox(box georuler.Box) Geometry {
	ring := [][]float64{
		{box.Min.Lon, box.Min.Lat},
		{box.Max.Lon, box.Min.Lat},
		{box.Max.Lon, box.Max.Lat},
		{box.Min.Lon, box.Max.Lat},
		{box.Min.Lon, box.Min.Lat},
	}
	return Geometry{Type: "Polygon", Coordinates: mustCoords([][][]float64{ring})}
}

func fromLine(line georuler.Line) [][]float64 {
	coords := make([][]float64, 0, len(line))
	for _, p := range line {
		coords = append(coords, []float64{p.Lon, p.Lat})
	}
	return coords
}

// Coordinate slices always marshal; anything else is a programming error.
func mustCoords(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}

// DecodePolyline decodes a Google encoded polyline into a line.
func DecodePolyline(encoded string) (georuler.Line, error) {
	if encoded == "" {
		return nil, fmt.Errorf("encoded polyline is empty")
	}

	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to decode polyline: %w", err)
	}

	line := make(georuler.Line, 0, len(coords))
	for _, c := range coords {
		// go-polyline yields [lat, lon] pairs
		line = append(line, georuler.Point{Lon: c[1], Lat: c[0]})
	}

	return line, nil
}
