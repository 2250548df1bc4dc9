package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mapsense/georuler"
	"github.com/mapsense/georuler/internal/config"
	"github.com/mapsense/georuler/internal/geojson"
	"github.com/mapsense/georuler/internal/logger"
	"github.com/mapsense/georuler/internal/render"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Input  string `short:"i" long:"in"  description:"Input GeoJSON file path. Reads from stdin if empty"`
	Output string `short:"o" long:"out" description:"Output webp file path" default:"preview.webp"`

	ConfigFile string  `short:"c" long:"config" env:"CONFIG_FILE" description:"Path to configuration file"`
	Region     string  `short:"r" long:"region" description:"Region name or alias from the configuration file"`
	Lat        float64 `long:"lat"              description:"Reference latitude used when no region is given"`
	Unit       string  `short:"u" long:"unit"   description:"Distance unit" default:"kilometers"`

	Size   int     `short:"s" long:"size"   description:"Output image edge length in pixels" default:"512"`
	Stroke float64 `short:"w" long:"stroke" description:"Stroke width in pixels" default:"2"`
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

	opts.Logger.Setup()

	ruler, err := buildRuler(&opts)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build ruler")
	}

	var inputData []byte
	if opts.Input != "" {
		inputData, err = os.ReadFile(opts.Input)
	} else {
		inputData, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read input")
	}

	var fc geojson.FeatureCollection
	if err := json.Unmarshal(inputData, &fc); err != nil {
		log.Fatal().Err(err).Msg("Failed to parse GeoJSON")
	}

	style := render.DefaultStyle
	if opts.Size > 0 {
		style.Size = opts.Size
	}
	if opts.Stroke > 0 {
		style.StrokeWidth = opts.Stroke
	}

	img, err := render.Image(ruler, fc, style)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to render")
	}

	if err := render.Save(opts.Output, img); err != nil {
		log.Fatal().Err(err).Msg("Failed to write image")
	}

	log.Info().
		Str("path", opts.Output).
		Int("features", len(fc.Features)).
		Int("size", style.Size).
		Msg("Preview rendered")
}

// buildRuler resolves the ruler from a configured region or a raw latitude.
func buildRuler(opts *Options) (georuler.Ruler, error) {
	unit, err := georuler.ParseUnit(opts.Unit)
	if err != nil {
		return georuler.Ruler{}, err
	}

	if opts.Region == "" {
		return georuler.NewRuler(opts.Lat, unit), nil
	}

	if opts.ConfigFile == "" {
		return georuler.Ruler{}, fmt.Errorf("--region requires --config")
	}

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return georuler.Ruler{}, err
	}

	def, err := cfg.DefaultUnit()
	if err != nil {
		return georuler.Ruler{}, err
	}

	for i := range cfg.Regions {
		region := &cfg.Regions[i]
		if region.Name == opts.Region {
			return region.Ruler(def)
		}
		for _, alias := range region.Aliases {
			if alias == opts.Region {
				return region.Ruler(def)
			}
		}
	}

	return georuler.Ruler{}, fmt.Errorf("region %q not found in configuration", opts.Region)
}
