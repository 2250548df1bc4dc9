package server

import (
	"sort"

	"github.com/mapsense/georuler"
	"github.com/mapsense/georuler/internal/config"

	"github.com/rs/zerolog/log"
)

// RegionInfo is the public description of a configured region.
type RegionInfo struct {
	Name    string   `json:"name"`
	Unit    string   `json:"unit"`
	Aliases []string `json:"aliases,omitempty"`
}

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Regions      []RegionInfo
	NameResolver map[string]string
	rulers       map[string]georuler.Ruler
	units        map[string]georuler.Unit
}

// NewServerContext initializes the context and builds a ruler per configured
// region. Regions that fail to build are dropped with a warning.
func NewServerContext(cfg *config.Config) *ServerContext {
	log.Info().Int("config_regions_count", len(cfg.Regions)).Msg("Initializing server context")

	defaultUnit, err := cfg.DefaultUnit()
	if err != nil {
		log.Warn().Err(err).Msg("Invalid default unit, falling back to kilometers")
		defaultUnit = georuler.Kilometers
	}

	s := &ServerContext{
		NameResolver: make(map[string]string),
		rulers:       make(map[string]georuler.Ruler),
		units:        make(map[string]georuler.Unit),
	}

	for i := range cfg.Regions {
		region := &cfg.Regions[i]

		ruler, err := region.Ruler(defaultUnit)
		if err != nil {
			log.Warn().Err(err).Str("region", region.Name).Msg("Skipping region")
			continue
		}

		unit, _ := region.ResolveUnit(defaultUnit)

		s.rulers[region.Name] = ruler
		s.units[region.Name] = unit

		s.NameResolver[region.Name] = region.Name
		for _, alias := range region.Aliases {
			s.NameResolver[alias] = region.Name
		}

		s.Regions = append(s.Regions, RegionInfo{
			Name:    region.Name,
			Unit:    unit.String(),
			Aliases: region.Aliases,
		})

		log.Debug().
			Str("region", region.Name).
			Str("unit", unit.String()).
			Msg("Region validated and added to context")
	}

	sort.Slice(s.Regions, func(i, j int) bool {
		return s.Regions[i].Name < s.Regions[j].Name
	})

	log.Info().
		Int("valid_regions_count", len(s.Regions)).
		Msg("Server context initialized successfully")

	return s
}

// Ruler resolves a region name or alias to its ruler and unit.
func (s *ServerContext) Ruler(name string) (georuler.Ruler, georuler.Unit, bool) {
	real, ok := s.NameResolver[name]
	if !ok {
		return georuler.Ruler{}, georuler.Kilometers, false
	}
	return s.rulers[real], s.units[real], true
}
