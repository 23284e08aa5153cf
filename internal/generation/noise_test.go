package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNoise = NoiseParams{Scale: 25, Octaves: 4, Persistence: 0.5, Lacunarity: 2.0}

func TestNoiseFieldDeterministic(t *testing.T) {
	a := NewNoiseField(42)
	b := NewNoiseField(42)

	for _, p := range []Point{{0, 0}, {13, -7}, {-1000, 250}, {99999, 3}} {
		assert.Equal(t, a.At(p.X, p.Y, testNoise), b.At(p.X, p.Y, testNoise), "at %v", p)
	}
}

func TestNoiseFieldRange(t *testing.T) {
	nf := NewNoiseField(7)
	f, err := nf.Sample(Bounds{-50, -50, 49, 49}, testNoise)
	require.NoError(t, err)

	lo, hi := 1.0, 0.0
	for _, row := range f.Values {
		for _, v := range row {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
			lo, hi = min(lo, v), max(hi, v)
		}
	}
	assert.Greater(t, hi-lo, 0.1, "noise should vary across a region")
}

func TestNoiseFieldWindowIndependent(t *testing.T) {
	nf := NewNoiseField(3)
	big, err := nf.Sample(Bounds{0, 0, 39, 39}, testNoise)
	require.NoError(t, err)
	small, err := nf.Sample(Bounds{20, 10, 29, 19}, testNoise)
	require.NoError(t, err)

	for y := 0; y < small.Height; y++ {
		for x := 0; x < small.Width; x++ {
			assert.Equal(t, big.At(20+x, 10+y), small.At(x, y))
		}
	}
}

func TestNoiseFieldSeedsDiffer(t *testing.T) {
	a, err := NewNoiseField(1).Sample(Bounds{0, 0, 15, 15}, testNoise)
	require.NoError(t, err)
	b, err := NewNoiseField(2).Sample(Bounds{0, 0, 15, 15}, testNoise)
	require.NoError(t, err)
	assert.NotEqual(t, a.Values, b.Values)
}

func TestNoiseZeroOctavesActsAsOne(t *testing.T) {
	nf := NewNoiseField(11)
	zero := NoiseParams{Scale: 30, Octaves: 0, Persistence: 0.5, Lacunarity: 2}
	one := NoiseParams{Scale: 30, Octaves: 1, Persistence: 0.5, Lacunarity: 2}
	assert.Equal(t, nf.At(17, 4, one), nf.At(17, 4, zero))
}

func TestNoiseParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		params NoiseParams
	}{
		{"zero scale", NoiseParams{Scale: 0, Octaves: 1, Lacunarity: 2}},
		{"negative octaves", NoiseParams{Scale: 10, Octaves: -1, Lacunarity: 2}},
		{"negative persistence", NoiseParams{Scale: 10, Octaves: 1, Persistence: -0.5, Lacunarity: 2}},
		{"zero lacunarity", NoiseParams{Scale: 10, Octaves: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.params.Validate(), ErrConfiguration)
			_, err := NewNoiseField(1).Sample(Bounds{0, 0, 1, 1}, tt.params)
			assert.ErrorIs(t, err, ErrConfiguration)
		})
	}
}

func TestSampleRejectsEmptyWindow(t *testing.T) {
	_, err := NewNoiseField(1).Sample(Bounds{5, 5, 4, 4}, testNoise)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestDeriveSeed(t *testing.T) {
	assert.Equal(t, DeriveSeed(42, 1), DeriveSeed(42, 1))
	assert.NotEqual(t, DeriveSeed(42, 1), DeriveSeed(42, 2))
	assert.NotEqual(t, DeriveSeed(42, 1), DeriveSeed(43, 1))
}
