package generation

import (
	"fmt"
	"math"

	"github.com/aquilax/go-perlin"
)

// NoiseParams controls fractal sampling of a NoiseField
type NoiseParams struct {
	Scale       float64 `json:"scale"`
	Octaves     int     `json:"octaves"`
	Persistence float64 `json:"persistence"`
	Lacunarity  float64 `json:"lacunarity"`
}

// Validate rejects parameters that cannot produce a bounded field
func (p NoiseParams) Validate() error {
	switch {
	case !finite(p.Scale) || p.Scale <= 0:
		return fmt.Errorf("%w: noise scale must be positive, got %v", ErrConfiguration, p.Scale)
	case p.Octaves < 0:
		return fmt.Errorf("%w: noise octaves must not be negative, got %d", ErrConfiguration, p.Octaves)
	case !finite(p.Persistence) || p.Persistence < 0:
		return fmt.Errorf("%w: noise persistence must not be negative, got %v", ErrConfiguration, p.Persistence)
	case !finite(p.Lacunarity) || p.Lacunarity <= 0:
		return fmt.Errorf("%w: noise lacunarity must be positive, got %v", ErrConfiguration, p.Lacunarity)
	}
	return nil
}

// NoiseField produces multi-octave fractal noise for one seed. Safe for
// concurrent use: the gradient tables are read-only after construction.
type NoiseField struct {
	seed   int64
	perlin *perlin.Perlin
}

// NewNoiseField creates a noise field for the given seed
func NewNoiseField(seed int64) *NoiseField {
	// One iteration per call; octaves are layered in At so that amplitude
	// and frequency follow NoiseParams rather than the library defaults.
	return &NoiseField{
		seed:   seed,
		perlin: perlin.NewPerlin(2, 2, 1, seed),
	}
}

// Seed returns the field's seed
func (n *NoiseField) Seed() int64 {
	return n.seed
}

// At returns the normalized [0,1] sample at a world coordinate. The result
// depends only on the seed, the coordinate and p. p must be valid.
func (n *NoiseField) At(x, y int, p NoiseParams) float64 {
	nx, ny := float64(x)/p.Scale, float64(y)/p.Scale

	layers := max(p.Octaves, 1)
	amplitude, frequency := 1.0, 1.0
	total, weight := 0.0, 0.0
	for i := 0; i < layers; i++ {
		total += n.perlin.Noise2D(nx*frequency, ny*frequency) * amplitude
		weight += amplitude
		amplitude *= p.Persistence
		frequency *= p.Lacunarity
	}

	// weight >= 1: the first layer always contributes amplitude 1.
	// Single-iteration 2D Perlin output lies within ±√½.
	v := total / weight * math.Sqrt2
	return clamp01((v + 1) / 2)
}

// Sample fills a field covering b. Sampling the same world coordinate from
// two different windows yields the same value.
func (n *NoiseField) Sample(b Bounds, p NoiseParams) (Field, error) {
	if err := p.Validate(); err != nil {
		return Field{}, err
	}
	if b.Empty() {
		return Field{}, fmt.Errorf("%w: empty sampling window %+v", ErrConfiguration, b)
	}

	f := NewField(b.Width(), b.Height())
	for dy := 0; dy < f.Height; dy++ {
		row := f.Values[dy]
		for dx := range row {
			row[dx] = n.At(b.MinX+dx, b.MinY+dy, p)
		}
	}
	return f, nil
}

// DeriveSeed mixes a salt into a base seed so that independent layers of
// the same world never share a gradient table.
func DeriveSeed(seed int64, salt uint64) int64 {
	return int64(mix64(uint64(seed) ^ (salt * 0x9e3779b97f4a7c15)))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
