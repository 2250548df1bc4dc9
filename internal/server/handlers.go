// Package server handles HTTP requests and middleware.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/mapsense/georuler"
	"github.com/mapsense/georuler/internal/geojson"
)

// HandleRegions serves the JSON list of configured regions.
func (s *ServerContext) HandleRegions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(s.Regions)
}

// HandleRegionOp dispatches measurement operations for specific regions.
//
// Path: /api/{region}/{operation}
func (s *ServerContext) HandleRegionOp(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")

	if len(parts) != 3 {
		http.NotFound(w, r)
		return
	}

	ruler, unit, ok := s.Ruler(parts[1])
	if !ok {
		http.NotFound(w, r)
		return
	}

	switch parts[2] {
	case "distance":
		s.handleDistance(w, r, ruler, unit)
	case "destination":
		s.handleDestination(w, r, ruler)
	case "buffer":
		s.handleBuffer(w, r, ruler)
	case "measure":
		s.handleMeasure(w, r, ruler, unit)
	case "point-on-line":
		s.handlePointOnLine(w, r, ruler, unit)
	case "slice":
		s.handleSlice(w, r, ruler)
	default:
		http.NotFound(w, r)
	}
}

func (s *ServerContext) handleDistance(w http.ResponseWriter, r *http.Request, ruler georuler.Ruler, unit georuler.Unit) {
	from, err := parsePoint(r.URL.Query().Get("from"))
	if err != nil {
		http.Error(w, "invalid from: "+err.Error(), http.StatusBadRequest)
		return
	}
	to, err := parsePoint(r.URL.Query().Get("to"))
	if err != nil {
		http.Error(w, "invalid to: "+err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, map[string]interface{}{
		"distance": ruler.Distance(from, to),
		"bearing":  ruler.Bearing(from, to),
		"unit":     unit.String(),
	})
}

func (s *ServerContext) handleDestination(w http.ResponseWriter, r *http.Request, ruler georuler.Ruler) {
	q := r.URL.Query()

	from, err := parsePoint(q.Get("from"))
	if err != nil {
		http.Error(w, "invalid from: "+err.Error(), http.StatusBadRequest)
		return
	}
	dist, err := strconv.ParseFloat(q.Get("dist"), 64)
	if err != nil {
		http.Error(w, "invalid dist: "+err.Error(), http.StatusBadRequest)
		return
	}
	bearing, err := strconv.ParseFloat(q.Get("bearing"), 64)
	if err != nil {
		http.Error(w, "invalid bearing: "+err.Error(), http.StatusBadRequest)
		return
	}

	p := ruler.Destination(from, dist, bearing)
	writeJSON(w, geojson.Feature{
		Type:     "Feature",
		Geometry: geojson.NewPoint(p),
	})
}

func (s *ServerContext) handleBuffer(w http.ResponseWriter, r *http.Request, ruler georuler.Ruler) {
	q := r.URL.Query()

	p, err := parsePoint(q.Get("point"))
	if err != nil {
		http.Error(w, "invalid point: "+err.Error(), http.StatusBadRequest)
		return
	}
	dist, err := strconv.ParseFloat(q.Get("dist"), 64)
	if err != nil {
		http.Error(w, "invalid dist: "+err.Error(), http.StatusBadRequest)
		return
	}

	box := ruler.BufferPoint(p, dist)
	writeJSON(w, geojson.Feature{
		Type:     "Feature",
		Geometry: geojson.NewBox(box),
		Properties: map[string]interface{}{
			"bbox": []float64{box.Min.Lon, box.Min.Lat, box.Max.Lon, box.Max.Lat},
		},
	})
}

// handleMeasure annotates each feature of the posted collection with its
// measurements: length for lines, area and perimeter for polygons.
func (s *ServerContext) handleMeasure(w http.ResponseWriter, r *http.Request, ruler georuler.Ruler, unit georuler.Unit) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}

	var fc geojson.FeatureCollection
	if err := json.NewDecoder(r.Body).Decode(&fc); err != nil {
		http.Error(w, "invalid GeoJSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	for i := range fc.Features {
		if err := geojson.Measure(ruler, unit, &fc.Features[i]); err != nil {
			http.Error(w, fmt.Sprintf("feature %d: %v", i, err), http.StatusBadRequest)
			return
		}
	}

	writeJSON(w, fc)
}

func (s *ServerContext) handlePointOnLine(w http.ResponseWriter, r *http.Request, ruler georuler.Ruler, unit georuler.Unit) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}

	p, err := parsePoint(r.URL.Query().Get("point"))
	if err != nil {
		http.Error(w, "invalid point: "+err.Error(), http.StatusBadRequest)
		return
	}

	line, err := decodeLineBody(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res := ruler.PointOnLine(line, p)
	writeJSON(w, map[string]interface{}{
		"point":    geojson.NewPoint(res.Point),
		"index":    res.Index,
		"t":        res.T,
		"distance": ruler.Distance(p, res.Point),
		"unit":     unit.String(),
	})
}

func (s *ServerContext) handleSlice(w http.ResponseWriter, r *http.Request, ruler georuler.Ruler) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}

	line, err := decodeLineBody(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	q := r.URL.Query()
	var sliced georuler.Line

	switch {
	case q.Has("start") && q.Has("stop"):
		start, err := parsePoint(q.Get("start"))
		if err != nil {
			http.Error(w, "invalid start: "+err.Error(), http.StatusBadRequest)
			return
		}
		stop, err := parsePoint(q.Get("stop"))
		if err != nil {
			http.Error(w, "invalid stop: "+err.Error(), http.StatusBadRequest)
			return
		}
		sliced = ruler.LineSlice(start, stop, line)

	case q.Has("start_dist") && q.Has("stop_dist"):
		start, err := strconv.ParseFloat(q.Get("start_dist"), 64)
		if err != nil {
			http.Error(w, "invalid start_dist: "+err.Error(), http.StatusBadRequest)
			return
		}
		stop, err := strconv.ParseFloat(q.Get("stop_dist"), 64)
		if err != nil {
			http.Error(w, "invalid stop_dist: "+err.Error(), http.StatusBadRequest)
			return
		}
		sliced = ruler.LineSliceAlong(start, stop, line)

	default:
		http.Error(w, "start/stop points or start_dist/stop_dist required", http.StatusBadRequest)
		return
	}

	writeJSON(w, geojson.Feature{
		Type:     "Feature",
		Geometry: geojson.NewLine(sliced),
	})
}

// decodeLineBody reads a LineString feature or bare geometry from the body.
func decodeLineBody(r *http.Request) (georuler.Line, error) {
	var body struct {
		Type        string          `json:"type"`
		Geometry    json.RawMessage `json:"geometry"`
		Polyline    string          `json:"polyline"`
		Coordinates json.RawMessage `json:"coordinates"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("invalid body: %w", err)
	}

	if body.Polyline != "" {
		return geojson.DecodePolyline(body.Polyline)
	}

	geom := geojson.Geometry{Type: body.Type, Coordinates: body.Coordinates}
	if body.Type == "Feature" {
		if err := json.Unmarshal(body.Geometry, &geom); err != nil {
			return nil, fmt.Errorf("invalid geometry: %w", err)
		}
	}

	line, err := geom.Line()
	if err != nil {
		return nil, err
	}
	return line, nil
}

func parsePoint(s string) (georuler.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return georuler.Point{}, fmt.Errorf("want lon,lat got %q", s)
	}

	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return georuler.Point{}, err
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return georuler.Point{}, err
	}

	return georuler.Point{Lon: lon, Lat: lat}, nil
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(v)
}
