package generation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifierPrecedence(t *testing.T) {
	c := NewClassifier(testRules(t), DefaultThresholds())

	tests := []struct {
		name              string
		elev, temp, humid float64
		river             bool
		want              string
	}{
		{"river beats ocean", 0.05, 0.5, 0.5, true, BiomeRiver},
		{"river beats mountain", 0.9, 0.5, 0.5, true, BiomeRiver},
		{"deep ocean", 0.05, 0.5, 0.5, false, BiomeDeepOcean},
		{"ocean", 0.15, 0.5, 0.5, false, BiomeOcean},
		{"ocean at half threshold", 0.1, 0.5, 0.5, false, BiomeOcean},
		{"beach", 0.22, 0.9, 0.1, false, BiomeBeach},
		{"snowy peaks", 0.7, 0.2, 0.5, false, BiomeSnowyPeaks},
		{"volcanic", 0.7, 0.9, 0.5, false, BiomeVolcanic},
		{"mountain", 0.7, 0.5, 0.5, false, BiomeMountain},
		{"mountain tier is exclusive, table rule is not", 0.6, 0.5, 0.6, false, BiomeMountain},
		{"below the mountain threshold", 0.59, 0.5, 0.6, false, "forest"},
		{"desert", 0.4, 0.8, 0.1, false, "desert"},
		{"forest", 0.4, 0.5, 0.6, false, "forest"},
		{"fallback", 0.4, 0.1, 0.1, false, BiomeGrassland},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.elev, tt.temp, tt.humid, tt.river))
		})
	}
}

func TestClassifierGrasslandOnlyTable(t *testing.T) {
	table, err := NewRuleTable([]BiomeRule{{
		ID:          BiomeGrassland,
		Elevation:   &Range{Min: 0, Max: 1},
		Temperature: fullRange(),
		Humidity:    fullRange(),
		Chars:       []string{"\""},
		Colors:      []RGB{{100, 180, 70}},
	}})
	require.NoError(t, err)

	th := DefaultThresholds()
	th.Ocean = 0.2
	c := NewClassifier(table, th)

	for _, temp := range []float64{0, 0.5, 1} {
		for _, humid := range []float64{0, 0.5, 1} {
			assert.Equal(t, BiomeGrassland, c.Classify(0.5, temp, humid, false))
			assert.Equal(t, BiomeOcean, c.Classify(0.1, temp, humid, false))
		}
	}
}

func TestClassifierFirstMatchWins(t *testing.T) {
	rule := func(id string) BiomeRule {
		return BiomeRule{ID: id, Temperature: fullRange(), Humidity: fullRange(), Chars: []string{"x"}, Colors: []RGB{{}}}
	}

	ab, err := NewRuleTable([]BiomeRule{rule("a"), rule("b")})
	require.NoError(t, err)
	ba, err := NewRuleTable([]BiomeRule{rule("b"), rule("a")})
	require.NoError(t, err)

	assert.Equal(t, "a", NewClassifier(ab, DefaultThresholds()).Classify(0.4, 0.5, 0.5, false))
	assert.Equal(t, "b", NewClassifier(ba, DefaultThresholds()).Classify(0.4, 0.5, 0.5, false))
}

func TestClassifierSkipsWaterRules(t *testing.T) {
	// Ocean covers everything in the table but is only reachable by elevation
	table, err := NewRuleTable([]BiomeRule{
		tierRule(BiomeOcean, RGB{}),
		tierRule(BiomeRiver, RGB{}),
	})
	require.NoError(t, err)

	c := NewClassifier(table, DefaultThresholds())
	assert.Equal(t, BiomeGrassland, c.Classify(0.4, 0.5, 0.5, false))
}

func TestClassifierElevationRange(t *testing.T) {
	table, err := NewRuleTable([]BiomeRule{{
		ID:          "highland",
		Elevation:   &Range{Min: 0.5, Max: 0.6},
		Temperature: fullRange(),
		Humidity:    fullRange(),
		Chars:       []string{"n"},
		Colors:      []RGB{{}},
	}})
	require.NoError(t, err)

	c := NewClassifier(table, DefaultThresholds())
	assert.Equal(t, "highland", c.Classify(0.55, 0.5, 0.5, false))
	assert.Equal(t, BiomeGrassland, c.Classify(0.45, 0.5, 0.5, false))
}

func TestClassifyCellAppliesDrift(t *testing.T) {
	c := NewClassifier(testRules(t), DefaultThresholds())

	cell := Cell{Elevation: 0.4, Temperature: 0.6, Humidity: 0.1}
	assert.Equal(t, BiomeGrassland, c.ClassifyCell(cell))

	cell.TemperatureDrift = 0.15
	assert.Equal(t, "desert", c.ClassifyCell(cell))

	// Peaks ignore drift
	peak := Cell{Elevation: 0.9, Temperature: 0.25, TemperatureDrift: 0.2}
	assert.Equal(t, BiomeSnowyPeaks, c.ClassifyCell(peak))
}

func TestNewRuleTableValidation(t *testing.T) {
	valid := func() BiomeRule {
		return BiomeRule{ID: "x", Temperature: fullRange(), Humidity: fullRange(), Chars: []string{"x"}, Colors: []RGB{{}}}
	}

	tests := []struct {
		name   string
		mutate func(r *BiomeRule)
	}{
		{"no name", func(r *BiomeRule) { r.ID = "" }},
		{"inverted range", func(r *BiomeRule) { r.Temperature = Range{Min: 0.8, Max: 0.2} }},
		{"NaN bound", func(r *BiomeRule) { r.Humidity = Range{Min: math.NaN(), Max: 1} }},
		{"inverted elevation", func(r *BiomeRule) { r.Elevation = &Range{Min: 1, Max: 0} }},
		{"no chars", func(r *BiomeRule) { r.Chars = nil }},
		{"no colors", func(r *BiomeRule) { r.Colors = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid()
			tt.mutate(&r)
			_, err := NewRuleTable([]BiomeRule{r})
			assert.ErrorIs(t, err, ErrConfiguration)
		})
	}

	t.Run("duplicate", func(t *testing.T) {
		_, err := NewRuleTable([]BiomeRule{valid(), valid()})
		assert.ErrorIs(t, err, ErrConfiguration)
	})
}

func TestRuleTableIsImmutable(t *testing.T) {
	chars := []string{"a", "b"}
	table, err := NewRuleTable([]BiomeRule{{ID: "x", Temperature: fullRange(), Humidity: fullRange(), Chars: chars, Colors: []RGB{{}}}})
	require.NoError(t, err)

	chars[0] = "z"
	rule, ok := table.Get("x")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, rule.Chars)

	rules := table.Rules()
	rules[0].ID = "changed"
	_, ok = table.Get("x")
	assert.True(t, ok)
}

func TestRuleTableRequire(t *testing.T) {
	table := testRules(t)
	assert.NoError(t, table.Require(TierBiomes...))
	assert.ErrorIs(t, table.Require("lava"), ErrConfiguration)
}

func TestThresholdsValidate(t *testing.T) {
	assert.NoError(t, DefaultThresholds().Validate())

	th := DefaultThresholds()
	th.Mountain = 0.1
	assert.ErrorIs(t, th.Validate(), ErrConfiguration)

	th = DefaultThresholds()
	th.ColdPeak, th.HotPeak = 0.9, 0.1
	assert.ErrorIs(t, th.Validate(), ErrConfiguration)

	th = DefaultThresholds()
	th.Ocean = math.Inf(1)
	assert.ErrorIs(t, th.Validate(), ErrConfiguration)
}
