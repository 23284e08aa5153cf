package generation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// echoResolver draws every char with one font
type echoResolver struct{ font string }

func (r echoResolver) Resolve(chars []string) (string, []string) {
	return r.font, chars
}

func fullRange() Range { return Range{Min: 0, Max: 1} }

func tierRule(id string, c RGB) BiomeRule {
	return BiomeRule{
		ID:          id,
		Temperature: fullRange(),
		Humidity:    fullRange(),
		Chars:       []string{"~", "≈"},
		Colors:      []RGB{c},
	}
}

// peakRule only matches high ground, so the table scan never picks it
// for lowland cells
func peakRule(id string, c RGB) BiomeRule {
	r := tierRule(id, c)
	r.Elevation = &Range{Min: 0.6, Max: 1}
	return r
}

// testRules returns a table with every tier biome plus two climate rules
func testRules(t *testing.T) *RuleTable {
	t.Helper()
	rules := []BiomeRule{
		tierRule(BiomeDeepOcean, RGB{0, 40, 120}),
		tierRule(BiomeOcean, RGB{0, 90, 180}),
		tierRule(BiomeBeach, RGB{230, 210, 150}),
		tierRule(BiomeRiver, RGB{60, 140, 220}),
		peakRule(BiomeMountain, RGB{130, 120, 110}),
		peakRule(BiomeSnowyPeaks, RGB{240, 240, 250}),
		peakRule(BiomeVolcanic, RGB{90, 30, 20}),
		{
			ID:          "desert",
			Temperature: Range{Min: 0.7, Max: 1.2},
			Humidity:    Range{Min: 0, Max: 0.3},
			Chars:       []string{"∙", "░"},
			Colors:      []RGB{{230, 190, 110}},
		},
		{
			ID:          "forest",
			Temperature: Range{Min: 0.3, Max: 0.7},
			Humidity:    Range{Min: 0.45, Max: 0.8},
			Chars:       []string{"♣", "♠"},
			Colors:      []RGB{{34, 120, 50}, {40, 130, 60}},
		},
		tierRule(BiomeGrassland, RGB{100, 180, 70}),
	}
	table, err := NewRuleTable(rules)
	require.NoError(t, err)
	return table
}

func testGeneratorConfig(seed int64) GeneratorConfig {
	return GeneratorConfig{
		Seed:        seed,
		ChunkSize:   DefaultChunkSize,
		ColorJitter: 10,
		Terrain:     DefaultTerrainConfig(),
		Thresholds:  DefaultThresholds(),
	}
}
