package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dconn.dev/overworld/internal/fonts"
	"dconn.dev/overworld/internal/generation"
)

func testRule(id string, elevation *generation.Range, chars ...string) generation.BiomeRule {
	return generation.BiomeRule{
		ID:          id,
		Elevation:   elevation,
		Temperature: generation.Range{Min: 0, Max: 1},
		Humidity:    generation.Range{Min: 0, Max: 1},
		Chars:       chars,
		Colors:      []generation.RGB{{R: 100, G: 150, B: 200}},
	}
}

func testSettings(t *testing.T, seed int64) WorldSettings {
	t.Helper()
	peaks := &generation.Range{Min: 0.6, Max: 1}
	rules, err := generation.NewRuleTable([]generation.BiomeRule{
		testRule(generation.BiomeDeepOcean, nil, "≈"),
		testRule(generation.BiomeOcean, nil, "~"),
		testRule(generation.BiomeBeach, nil, "."),
		testRule(generation.BiomeRiver, nil, "~"),
		testRule(generation.BiomeMountain, peaks, "^"),
		testRule(generation.BiomeSnowyPeaks, peaks, "*"),
		testRule(generation.BiomeVolcanic, peaks, "▲"),
		testRule("forest", &generation.Range{Min: 0.25, Max: 0.6}, "♣", "T"),
		testRule(generation.BiomeGrassland, nil, "\"", ","),
	})
	require.NoError(t, err)

	glyphs, err := fonts.NewSupportTable(
		fonts.NewListFace("ascii", []string{"~", ".", "^", "*", "T", "\"", ","}),
		fonts.NewListFace("symbols", []string{"≈", "▲", "♣", "T"}),
	)
	require.NoError(t, err)

	return WorldSettings{
		Generator: generation.GeneratorConfig{
			Seed:        seed,
			ChunkSize:   generation.DefaultChunkSize,
			ColorJitter: 10,
			Terrain:     generation.DefaultTerrainConfig(),
			Thresholds:  generation.DefaultThresholds(),
		},
		Rules:     rules,
		Glyphs:    glyphs,
		CacheSize: 16,
		Workers:   4,
	}
}

func newTestWorld(t *testing.T, seed int64, mutate func(*WorldSettings)) *WorldService {
	t.Helper()
	settings := testSettings(t, seed)
	if mutate != nil {
		mutate(&settings)
	}
	ws, err := NewWorldService(settings)
	require.NoError(t, err)
	return ws
}
