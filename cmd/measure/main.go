package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mapsense/georuler"
	"github.com/mapsense/georuler/internal/config"
	"github.com/mapsense/georuler/internal/geojson"

	"github.com/jessevdk/go-flags"
	"github.com/tdewolff/minify/v2"
	mjson "github.com/tdewolff/minify/v2/json"
	"gopkg.in/yaml.v3"
)

type Options struct {
	Input    string `short:"i" long:"in"       description:"Input GeoJSON file path. Reads from stdin if empty"`
	Output   string `short:"o" long:"out"      description:"Output file path. Writes to stdout if empty"`
	Polyline string `short:"e" long:"polyline" description:"Google encoded polyline measured instead of GeoJSON input"`

	ConfigFile string  `short:"c" long:"config" env:"CONFIG_FILE" description:"Path to configuration file"`
	Region     string  `short:"r" long:"region" description:"Region name or alias from the configuration file"`
	Lat        float64 `long:"lat"              description:"Reference latitude used when no region is given"`
	Unit       string  `short:"u" long:"unit"   description:"Distance unit" default:"kilometers"`

	Buffer     float64  `short:"b" long:"buffer" description:"Buffer distance added as a bbox property on Point features"`
	Along      *float64 `long:"along"            description:"Mark the point at this distance along each LineString"`
	SliceStart *float64 `long:"slice-start"      description:"Trim each LineString to start at this distance"`
	SliceStop  *float64 `long:"slice-stop"       description:"Trim each LineString to stop at this distance"`

	Minify bool `short:"m" long:"minify" description:"Minify JSON output"`
	YAML   bool `short:"y" long:"yaml"   description:"Write YAML instead of JSON"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	ruler, unit, err := buildRuler(&opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fc, err := readInput(&opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}

	var marks []geojson.Feature

	for i := range fc.Features {
		f := &fc.Features[i]

		if f.Geometry.Type == "LineString" && opts.SliceStart != nil && opts.SliceStop != nil {
			line, err := f.Geometry.Line()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error slicing feature %d: %v\n", i, err)
				os.Exit(1)
			}
			f.Geometry = geojson.NewLine(ruler.LineSliceAlong(*opts.SliceStart, *opts.SliceStop, line))
		}

		if err := geojson.Measure(ruler, unit, f); err != nil {
			fmt.Fprintf(os.Stderr, "Error measuring feature %d: %v\n", i, err)
			os.Exit(1)
		}

		if f.Geometry.Type == "LineString" && opts.Along != nil {
			line, err := f.Geometry.Line()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error measuring feature %d: %v\n", i, err)
				os.Exit(1)
			}
			marks = append(marks, geojson.Feature{
				Type:       "Feature",
				Geometry:   geojson.NewPoint(ruler.Along(line, *opts.Along)),
				Properties: map[string]interface{}{"along": *opts.Along, "unit": unit.String()},
			})
		}

		if opts.Buffer > 0 && f.Geometry.Type == "Point" {
			p, err := f.Geometry.Point()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error measuring feature %d: %v\n", i, err)
				os.Exit(1)
			}
			box := ruler.BufferPoint(p, opts.Buffer)
			f.Properties["bbox"] = []float64{box.Min.Lon, box.Min.Lat, box.Max.Lon, box.Max.Lat}
		}
	}

	fc.Features = append(fc.Features, marks...)

	outputData, err := marshalOutput(fc, &opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling data: %v\n", err)
		os.Exit(1)
	}

	if opts.Minify && !opts.YAML {
		m := minify.New()
		m.AddFunc("application/json", mjson.Minify)
		outputData, err = m.Bytes("application/json", outputData)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error minifying output: %v\n", err)
			os.Exit(1)
		}
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, outputData, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Measured %d features to %s\n", len(fc.Features), opts.Output)
	} else {
		fmt.Println(string(outputData))
	}
}

// buildRuler resolves the ruler from a configured region or a raw latitude.
func buildRuler(opts *Options) (georuler.Ruler, georuler.Unit, error) {
	unit, err := georuler.ParseUnit(opts.Unit)
	if err != nil {
		return georuler.Ruler{}, unit, err
	}

	if opts.Region == "" {
		return georuler.NewRuler(opts.Lat, unit), unit, nil
	}

	if opts.ConfigFile == "" {
		return georuler.Ruler{}, unit, fmt.Errorf("--region requires --config")
	}

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return georuler.Ruler{}, unit, err
	}

	def, err := cfg.DefaultUnit()
	if err != nil {
		return georuler.Ruler{}, unit, err
	}

	for i := range cfg.Regions {
		region := &cfg.Regions[i]

		if !matchesRegion(region, opts.Region) {
			continue
		}

		unit, err := region.ResolveUnit(def)
		if err != nil {
			return georuler.Ruler{}, unit, err
		}
		ruler, err := region.Ruler(def)
		return ruler, unit, err
	}

	return georuler.Ruler{}, unit, fmt.Errorf("region %q not found in configuration", opts.Region)
}

func matchesRegion(region *config.Region, name string) bool {
	if region.Name == name {
		return true
	}
	for _, alias := range region.Aliases {
		if alias == name {
			return true
		}
	}
	return false
}

// marshalOutput encodes the collection as indented JSON or, with --yaml, as
// YAML. YAML goes through a generic JSON round trip so raw coordinate
// messages come out as plain sequences.
func marshalOutput(fc geojson.FeatureCollection, opts *Options) ([]byte, error) {
	if !opts.YAML {
		return json.MarshalIndent(fc, "", "  ")
	}

	data, err := json.Marshal(fc)
	if err != nil {
		return nil, err
	}
	var generic interface{}
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, err
	}
	return yaml.Marshal(generic)
}

// readInput assembles the feature collection to measure, from an encoded
// polyline, a file, or stdin.
func readInput(opts *Options) (geojson.FeatureCollection, error) {
	if opts.Polyline != "" {
		line, err := geojson.DecodePolyline(opts.Polyline)
		if err != nil {
			return geojson.FeatureCollection{}, err
		}

		return geojson.FeatureCollection{
			Type: "FeatureCollection",
			Features: []geojson.Feature{{
				Type:     "Feature",
				Geometry: geojson.NewLine(line),
			}},
		}, nil
	}

	var inputData []byte
	var err error

	if opts.Input != "" {
		inputData, err = os.ReadFile(opts.Input)
	} else {
		inputData, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return geojson.FeatureCollection{}, err
	}

	var fc geojson.FeatureCollection
	if err := json.Unmarshal(inputData, &fc); err != nil {
		return geojson.FeatureCollection{}, err
	}

	return fc, nil
}
