package generation

import (
	"fmt"
)

// Layer salts keep every noise layer of a world on its own gradient table.
const (
	saltElevation uint64 = iota + 1
	saltMountain
	saltCoast
	saltTemperature
	saltHumidity
	saltTemperatureDrift
	saltHumidityDrift
	saltRiver // river systems use saltRiver, saltRiver+1, ...
)

// TerrainConfig holds the tuneable noise layers and post-processing
// parameters of the terrain generator.
type TerrainConfig struct {
	Elevation   NoiseParams `json:"elevation"`
	Mountain    NoiseParams `json:"mountain"`
	Coast       NoiseParams `json:"coast"`
	Temperature NoiseParams `json:"temperature"`
	Humidity    NoiseParams `json:"humidity"`
	River       NoiseParams `json:"river"`
	Regional    NoiseParams `json:"regional"`

	MountainMask  float64 `json:"mountain_mask"`  // mountain noise above this boosts elevation
	MountainBoost float64 `json:"mountain_boost"` // elevation multiplier under the mountain mask
	CoastMask     float64 `json:"coast_mask"`     // coast noise below this attenuates elevation
	CoastFactor   float64 `json:"coast_factor"`   // elevation multiplier under the coast mask

	ElevationSigma float64 `json:"elevation_sigma"`
	ClimateSigma   float64 `json:"climate_sigma"`

	RiverSeeds     int     `json:"river_seeds"`
	RiverThreshold float64 `json:"river_threshold"`

	RegionalStrength float64 `json:"regional_strength"`
}

// DefaultTerrainConfig returns the standard terrain parameters
func DefaultTerrainConfig() TerrainConfig {
	const elevationScale = 100.0
	return TerrainConfig{
		Elevation:   NoiseParams{Scale: elevationScale, Octaves: 4, Persistence: 0.5, Lacunarity: 2.0},
		Mountain:    NoiseParams{Scale: elevationScale * 2, Octaves: 2, Persistence: 0.5, Lacunarity: 2.0},
		Coast:       NoiseParams{Scale: elevationScale * 3, Octaves: 1, Persistence: 0.5, Lacunarity: 2.0},
		Temperature: NoiseParams{Scale: 150, Octaves: 2, Persistence: 0.6, Lacunarity: 2.0},
		Humidity:    NoiseParams{Scale: 120, Octaves: 2, Persistence: 0.6, Lacunarity: 2.0},
		River:       NoiseParams{Scale: 80, Octaves: 1, Persistence: 0.5, Lacunarity: 2.0},
		Regional:    NoiseParams{Scale: 300, Octaves: 1, Persistence: 0.5, Lacunarity: 2.0},

		MountainMask:  0.6,
		MountainBoost: 1.5,
		CoastMask:     0.4,
		CoastFactor:   0.5,

		ElevationSigma: 1.5,
		ClimateSigma:   2.0,

		RiverSeeds:     3,
		RiverThreshold: 0.55,

		RegionalStrength: 0.2,
	}
}

// Validate checks every layer and modifier
func (c TerrainConfig) Validate() error {
	layers := []struct {
		name   string
		params NoiseParams
	}{
		{"elevation", c.Elevation},
		{"mountain", c.Mountain},
		{"coast", c.Coast},
		{"temperature", c.Temperature},
		{"humidity", c.Humidity},
		{"river", c.River},
		{"regional", c.Regional},
	}
	for _, l := range layers {
		if err := l.params.Validate(); err != nil {
			return fmt.Errorf("%s layer: %w", l.name, err)
		}
	}

	switch {
	case c.MountainBoost < 0 || c.CoastFactor < 0:
		return fmt.Errorf("%w: elevation multipliers must not be negative", ErrConfiguration)
	case c.ElevationSigma < 0 || c.ClimateSigma < 0:
		return fmt.Errorf("%w: blur sigma must not be negative", ErrConfiguration)
	case c.RiverSeeds < 0:
		return fmt.Errorf("%w: river_seeds must not be negative, got %d", ErrConfiguration, c.RiverSeeds)
	case !finite(c.RiverThreshold) || !finite(c.RegionalStrength):
		return fmt.Errorf("%w: river_threshold and regional_strength must be finite", ErrConfiguration)
	}
	return nil
}

// TerrainMaps are the per-region maps consumed by classification. Every
// map shares Bounds' shape; index [y][x] is world (MinX+x, MinY+y).
type TerrainMaps struct {
	Bounds Bounds

	Elevation   Field
	Mountain    Field
	Coast       Field
	Temperature Field
	Humidity    Field

	TemperatureDrift Field
	HumidityDrift    Field

	River [][]bool
}

// Cell gathers everything the classifier needs for one local cell
func (m *TerrainMaps) Cell(x, y int) Cell {
	return Cell{
		Elevation:        m.Elevation.At(x, y),
		Temperature:      m.Temperature.At(x, y),
		Humidity:         m.Humidity.At(x, y),
		River:            m.River[y][x],
		TemperatureDrift: m.TemperatureDrift.At(x, y),
		HumidityDrift:    m.HumidityDrift.At(x, y),
	}
}

// TerrainGenerator builds TerrainMaps for arbitrary world regions
type TerrainGenerator struct {
	config TerrainConfig
	sched  *Scheduler
	halo   int

	elevation   *NoiseField
	mountain    *NoiseField
	coast       *NoiseField
	temperature *NoiseField
	humidity    *NoiseField
	tempDrift   *NoiseField
	humidDrift  *NoiseField
	rivers      []*NoiseField
}

// NewTerrainGenerator creates a generator for a world seed. A nil scheduler
// runs map tasks on a single worker.
func NewTerrainGenerator(seed int64, config TerrainConfig, sched *Scheduler) (*TerrainGenerator, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("terrain config: %w", err)
	}
	if sched == nil {
		sched = NewScheduler(1)
	}

	t := &TerrainGenerator{
		config:      config,
		sched:       sched,
		halo:        max(BlurRadius(config.ElevationSigma), BlurRadius(config.ClimateSigma)),
		elevation:   NewNoiseField(DeriveSeed(seed, saltElevation)),
		mountain:    NewNoiseField(DeriveSeed(seed, saltMountain)),
		coast:       NewNoiseField(DeriveSeed(seed, saltCoast)),
		temperature: NewNoiseField(DeriveSeed(seed, saltTemperature)),
		humidity:    NewNoiseField(DeriveSeed(seed, saltHumidity)),
		tempDrift:   NewNoiseField(DeriveSeed(seed, saltTemperatureDrift)),
		humidDrift:  NewNoiseField(DeriveSeed(seed, saltHumidityDrift)),
	}
	for i := 0; i < config.RiverSeeds; i++ {
		t.rivers = append(t.rivers, NewNoiseField(DeriveSeed(seed, saltRiver+uint64(i))))
	}
	return t, nil
}

// Config returns the generator's parameters
func (t *TerrainGenerator) Config() TerrainConfig {
	return t.config
}

// Generate produces all maps for region b
func (t *TerrainGenerator) Generate(b Bounds) (*TerrainMaps, error) {
	if b.Empty() {
		return nil, fmt.Errorf("%w: empty terrain region %+v", ErrConfiguration, b)
	}
	c := t.config

	// Smoothed layers are sampled with a halo so that a blurred cell only
	// ever sees its world neighbourhood, never the window edge.
	outer := b.Expand(t.halo)

	// 1. Raw noise layers, each into its own buffer
	var elev, mountain, coast, temp, humid, tempDrift, humidDrift Field
	riverNoise := make([]Field, len(t.rivers))

	tasks := []func() error{
		sampleTask(&elev, t.elevation, outer, c.Elevation),
		sampleTask(&mountain, t.mountain, outer, c.Mountain),
		sampleTask(&coast, t.coast, outer, c.Coast),
		sampleTask(&temp, t.temperature, outer, c.Temperature),
		sampleTask(&humid, t.humidity, outer, c.Humidity),
		sampleTask(&tempDrift, t.tempDrift, b, c.Regional),
		sampleTask(&humidDrift, t.humidDrift, b, c.Regional),
	}
	for i, nf := range t.rivers {
		tasks = append(tasks, sampleTask(&riverNoise[i], nf, b, c.River))
	}
	if err := t.sched.Run(MapTask, tasks...); err != nil {
		return nil, fmt.Errorf("sampling terrain noise: %w", err)
	}

	// 2. Masking and smoothing
	err := t.sched.Run(MapTask,
		func() error {
			elev = t.shapeElevation(elev, mountain, coast)
			return nil
		},
		func() error {
			temp = Blur(temp, c.ClimateSigma)
			return nil
		},
		func() error {
			humid = Blur(humid, c.ClimateSigma)
			return nil
		},
		func() error {
			tempDrift.Map(func(v float64) float64 { return v * c.RegionalStrength })
			humidDrift.Map(func(v float64) float64 { return v * c.RegionalStrength })
			return nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("smoothing terrain: %w", err)
	}

	w, h := b.Width(), b.Height()
	maps := &TerrainMaps{
		Bounds:           b,
		Elevation:        elev.Crop(t.halo, t.halo, w, h),
		Mountain:         mountain.Crop(t.halo, t.halo, w, h),
		Coast:            coast.Crop(t.halo, t.halo, w, h),
		Temperature:      temp.Crop(t.halo, t.halo, w, h),
		Humidity:         humid.Crop(t.halo, t.halo, w, h),
		TemperatureDrift: tempDrift,
		HumidityDrift:    humidDrift,
	}

	// 3. River systems over the final elevation
	if err := t.traceRivers(maps, riverNoise); err != nil {
		return nil, fmt.Errorf("tracing rivers: %w", err)
	}
	return maps, nil
}

func sampleTask(dst *Field, nf *NoiseField, b Bounds, p NoiseParams) func() error {
	return func() error {
		f, err := nf.Sample(b, p)
		if err != nil {
			return err
		}
		*dst = f
		return nil
	}
}

// shapeElevation boosts mountains, sinks coasts, then smooths and clamps
func (t *TerrainGenerator) shapeElevation(elev, mountain, coast Field) Field {
	c := t.config
	for y := 0; y < elev.Height; y++ {
		for x := 0; x < elev.Width; x++ {
			v := elev.Values[y][x]
			if mountain.Values[y][x] > c.MountainMask {
				v *= c.MountainBoost
			}
			if coast.Values[y][x] < c.CoastMask {
				v *= c.CoastFactor
			}
			elev.Values[y][x] = v
		}
	}
	smoothed := Blur(elev, c.ElevationSigma)
	smoothed.Map(clamp01)
	return smoothed
}

// traceRivers marks a cell as river when any river system's potential
// (1 - elevation) * noise exceeds the threshold.
func (t *TerrainGenerator) traceRivers(maps *TerrainMaps, riverNoise []Field) error {
	w, h := maps.Bounds.Width(), maps.Bounds.Height()
	systems := make([][][]bool, len(riverNoise))

	tasks := make([]func() error, len(riverNoise))
	for i, noise := range riverNoise {
		tasks[i] = func() error {
			hits := newBoolGrid(w, h)
			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					potential := (1 - maps.Elevation.At(x, y)) * noise.At(x, y)
					hits[y][x] = potential > t.config.RiverThreshold
				}
			}
			systems[i] = hits
			return nil
		}
	}
	if err := t.sched.Run(MapTask, tasks...); err != nil {
		return err
	}

	maps.River = newBoolGrid(w, h)
	for _, hits := range systems {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				maps.River[y][x] = maps.River[y][x] || hits[y][x]
			}
		}
	}
	return nil
}

func newBoolGrid(width, height int) [][]bool {
	grid := make([][]bool, height)
	for y := range grid {
		grid[y] = make([]bool, width)
	}
	return grid
}
