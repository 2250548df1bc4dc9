// Package config handles configuration loading and shared data structures.
package config

import (
	"fmt"
	"os"

	"github.com/mapsense/georuler"

	"gopkg.in/yaml.v3"
)

// Config represents the root configuration file structure.
type Config struct {
	Unit    string   `yaml:"unit,omitempty"`
	Regions []Region `yaml:"regions"`
}

// Tile identifies a Web Mercator tile row and zoom level used as an
// alternative way to pick a region's reference latitude.
type Tile struct {
	Y int `yaml:"y"`
	Z int `yaml:"z"`
}

// Region represents a single region of interest. Exactly one of Latitude or
// Tile must be set.
type Region struct {
	Latitude *float64 `yaml:"latitude,omitempty"`
	Tile     *Tile    `yaml:"tile,omitempty"`

	Name    string   `yaml:"name"`
	Unit    string   `yaml:"unit,omitempty"`
	Aliases []string `yaml:"aliases,omitempty"`
}

// Load reads and parses the YAML configuration file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// DefaultUnit resolves the config-wide unit, falling back to kilometers.
func (c *Config) DefaultUnit() (georuler.Unit, error) {
	if c.Unit == "" {
		return georuler.Kilometers, nil
	}
	return georuler.ParseUnit(c.Unit)
}

// ResolveUnit resolves the region's unit, falling back to the given default.
func (r *Region) ResolveUnit(def georuler.Unit) (georuler.Unit, error) {
	if r.Unit == "" {
		return def, nil
	}
	return georuler.ParseUnit(r.Unit)
}

// Ruler builds the measurement ruler for the region.
func (r *Region) Ruler(def georuler.Unit) (georuler.Ruler, error) {
	unit, err := r.ResolveUnit(def)
	if err != nil {
		return georuler.Ruler{}, err
	}

	switch {
	case r.Latitude != nil && r.Tile != nil:
		return georuler.Ruler{}, fmt.Errorf("region %q: latitude and tile are mutually exclusive", r.Name)
	case r.Latitude != nil:
		return georuler.NewRuler(*r.Latitude, unit), nil
	case r.Tile != nil:
		return georuler.NewRulerFromTile(r.Tile.Y, r.Tile.Z, unit)
	default:
		return georuler.Ruler{}, fmt.Errorf("region %q: latitude or tile is required", r.Name)
	}
}
