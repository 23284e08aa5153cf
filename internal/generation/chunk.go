package generation

import (
	"fmt"
)

// DefaultChunkSize is the edge length of a chunk in tiles
const DefaultChunkSize = 20

// Chunk is a fixed-size square of resolved tiles. It is filled by the
// generation pipeline, sealed, and read-only from then on.
type Chunk struct {
	Coord ChunkCoord
	Size  int

	tiles  [][]Tile
	biomes [][]string // parallel to tiles for biome-only lookups
	sealed bool
}

// NewChunk creates an empty chunk
func NewChunk(coord ChunkCoord, size int) *Chunk {
	tiles := make([][]Tile, size)
	biomes := make([][]string, size)
	for y := 0; y < size; y++ {
		tiles[y] = make([]Tile, size)
		biomes[y] = make([]string, size)
	}
	return &Chunk{Coord: coord, Size: size, tiles: tiles, biomes: biomes}
}

// SetTile stores a tile at local coordinates. Only the generation pipeline
// calls it; writing to a sealed chunk is a programming error.
func (c *Chunk) SetTile(x, y int, tile Tile) {
	if c.sealed {
		panic(fmt.Sprintf("chunk %s: SetTile(%d, %d) after seal", c.Coord, x, y))
	}
	c.tiles[y][x] = tile
	c.biomes[y][x] = tile.Biome
}

// Seal marks the chunk complete
func (c *Chunk) Seal() {
	c.sealed = true
}

// Sealed reports whether generation has finished
func (c *Chunk) Sealed() bool {
	return c.sealed
}

// Tile returns the tile at local coordinates
func (c *Chunk) Tile(x, y int) Tile {
	return c.tiles[y][x]
}

// Biome returns the biome at local coordinates
func (c *Chunk) Biome(x, y int) string {
	return c.biomes[y][x]
}

// Tiles returns a copy of the tile grid, indexed [y][x]
func (c *Chunk) Tiles() [][]Tile {
	out := make([][]Tile, c.Size)
	for y := range out {
		out[y] = append([]Tile(nil), c.tiles[y]...)
	}
	return out
}

// GeneratorConfig holds the world-wide generation settings
type GeneratorConfig struct {
	Seed        int64
	ChunkSize   int
	ColorJitter int
	Terrain     TerrainConfig
	Thresholds  Thresholds
}

// ChunkGenerator runs the chunk pipeline: terrain maps, then per-cell
// classification and tile assembly. Safe for concurrent use.
type ChunkGenerator struct {
	seed   int64
	size   int
	jitter int

	terrain    *TerrainGenerator
	classifier *Classifier
	palette    *Palette
	sched      *Scheduler
}

// NewChunkGenerator validates the configuration and prepares the pipeline
func NewChunkGenerator(config GeneratorConfig, rules *RuleTable, resolver GlyphResolver, sched *Scheduler) (*ChunkGenerator, error) {
	if config.ChunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", ErrConfiguration, config.ChunkSize)
	}
	if config.ColorJitter < 0 || config.ColorJitter > 255 {
		return nil, fmt.Errorf("%w: color jitter must be within [0, 255], got %d", ErrConfiguration, config.ColorJitter)
	}
	if rules == nil {
		return nil, fmt.Errorf("%w: no biome rule table", ErrConfiguration)
	}
	if err := config.Thresholds.Validate(); err != nil {
		return nil, err
	}
	if err := rules.Require(TierBiomes...); err != nil {
		return nil, err
	}
	if sched == nil {
		sched = NewScheduler(0)
	}

	terrain, err := NewTerrainGenerator(config.Seed, config.Terrain, sched)
	if err != nil {
		return nil, err
	}
	palette, err := NewPalette(rules, resolver)
	if err != nil {
		return nil, err
	}

	return &ChunkGenerator{
		seed:       config.Seed,
		size:       config.ChunkSize,
		jitter:     config.ColorJitter,
		terrain:    terrain,
		classifier: NewClassifier(rules, config.Thresholds),
		palette:    palette,
		sched:      sched,
	}, nil
}

// Size returns the chunk edge length
func (cg *ChunkGenerator) Size() int {
	return cg.size
}

// Seed returns the world seed
func (cg *ChunkGenerator) Seed() int64 {
	return cg.seed
}

// Terrain returns the terrain generator
func (cg *ChunkGenerator) Terrain() *TerrainGenerator {
	return cg.terrain
}

// Classifier returns the biome classifier
func (cg *ChunkGenerator) Classifier() *Classifier {
	return cg.classifier
}

// Palette returns the resolved biome appearances
func (cg *ChunkGenerator) Palette() *Palette {
	return cg.palette
}

// Generate produces a complete, sealed chunk
func (cg *ChunkGenerator) Generate(coord ChunkCoord) (*Chunk, error) {
	bounds := coord.Bounds(cg.size)

	// 1. Build every terrain map; returns only after all map tasks finish
	maps, err := cg.terrain.Generate(bounds)
	if err != nil {
		return nil, fmt.Errorf("chunk %s terrain: %w", coord, err)
	}

	// 2. Classify and assemble cells, one task per row
	chunk := NewChunk(coord, cg.size)
	rows := make([]func() error, cg.size)
	for y := 0; y < cg.size; y++ {
		rows[y] = func() error {
			return cg.assembleRow(chunk, maps, y)
		}
	}
	if err := cg.sched.Run(CellTask, rows...); err != nil {
		return nil, fmt.Errorf("chunk %s tiles: %w", coord, err)
	}

	// 3. Seal before anyone else can see it
	chunk.Seal()
	return chunk, nil
}

func (cg *ChunkGenerator) assembleRow(chunk *Chunk, maps *TerrainMaps, y int) error {
	for x := 0; x < cg.size; x++ {
		biome := cg.classifier.ClassifyCell(maps.Cell(x, y))

		look, ok := cg.palette.Appearance(biome)
		if !ok {
			return fmt.Errorf("%w: no appearance for biome %q", ErrConfiguration, biome)
		}

		wx, wy := maps.Bounds.MinX+x, maps.Bounds.MinY+y
		chunk.SetTile(x, y, assembleTile(look, biome, NewCellRNG(cg.seed, wx, wy), cg.jitter))
	}
	return nil
}
