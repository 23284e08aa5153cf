package services

import (
	"fmt"

	"dconn.dev/overworld/internal/generation"
	"dconn.dev/overworld/internal/models"
)

// BiomeService exposes the biome rule table
type BiomeService struct {
	biomes []models.Biome
}

// NewBiomeService flattens the rule table and resolved appearances once
func NewBiomeService(rules *generation.RuleTable, palette *generation.Palette) *BiomeService {
	rs := rules.Rules()
	biomes := make([]models.Biome, len(rs))
	for i, r := range rs {
		b := models.Biome{
			Name:        r.ID,
			Order:       i,
			Temperature: []float64{r.Temperature.Min, r.Temperature.Max},
			Humidity:    []float64{r.Humidity.Min, r.Humidity.Max},
			Chars:       r.Chars,
			Colors:      make([][3]uint8, len(r.Colors)),
		}
		if r.Elevation != nil {
			b.Elevation = []float64{r.Elevation.Min, r.Elevation.Max}
		}
		for j, c := range r.Colors {
			b.Colors[j] = [3]uint8{c.R, c.G, c.B}
		}
		if look, ok := palette.Appearance(r.ID); ok {
			b.Font = look.Font
			b.Glyphs = look.Glyphs
		}
		biomes[i] = b
	}
	return &BiomeService{biomes: biomes}
}

// GetAll returns all biomes in declaration order
func (s *BiomeService) GetAll() []models.Biome {
	return s.biomes
}

// GetByName returns a specific biome
func (s *BiomeService) GetByName(name string) (*models.Biome, error) {
	for i := range s.biomes {
		if s.biomes[i].Name == name {
			return &s.biomes[i], nil
		}
	}
	return nil, fmt.Errorf("biome not found: %s", name)
}
