package services

import (
	"fmt"
	"log"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"dconn.dev/overworld/internal/generation"
	"dconn.dev/overworld/internal/models"
)

// DefaultCacheSize is the number of chunks kept in memory
const DefaultCacheSize = 64

// WorldSettings is the immutable configuration a world is built from
type WorldSettings struct {
	Generator generation.GeneratorConfig
	Rules     *generation.RuleTable
	Glyphs    generation.GlyphResolver
	CacheSize int
	Workers   int
}

// WorldService is the world's query interface. Chunks are generated on
// first request and cached; every method is safe for concurrent use.
type WorldService struct {
	id        uuid.UUID
	rules     *generation.RuleTable
	generator *generation.ChunkGenerator
	sched     *generation.Scheduler
	cache     *ChunkCache

	flights   singleflight.Group
	generated atomic.Int64
}

// NewWorldService creates a new WorldService
func NewWorldService(settings WorldSettings) (*WorldService, error) {
	cacheSize := settings.CacheSize
	if cacheSize == 0 {
		cacheSize = DefaultCacheSize
	}
	if cacheSize < 0 {
		return nil, fmt.Errorf("%w: cache size must be positive, got %d", generation.ErrConfiguration, cacheSize)
	}

	sched := generation.NewScheduler(settings.Workers)
	generator, err := generation.NewChunkGenerator(settings.Generator, settings.Rules, settings.Glyphs, sched)
	if err != nil {
		return nil, err
	}

	ws := &WorldService{
		id:        uuid.New(),
		rules:     settings.Rules,
		generator: generator,
		sched:     sched,
		cache:     NewChunkCache(cacheSize),
	}

	log.Printf("World %s ready (seed %d, chunk size %d, %d biomes, %d workers, cache %d)",
		ws.id, generator.Seed(), generator.Size(), settings.Rules.Len(), sched.Workers(), cacheSize)
	return ws, nil
}

// ID identifies this world instance; it changes on every start
func (ws *WorldService) ID() uuid.UUID {
	return ws.id
}

// Seed returns the world seed
func (ws *WorldService) Seed() int64 {
	return ws.generator.Seed()
}

// ChunkSize returns the chunk edge length
func (ws *WorldService) ChunkSize() int {
	return ws.generator.Size()
}

// Rules returns the biome rule table
func (ws *WorldService) Rules() *generation.RuleTable {
	return ws.rules
}

// Palette returns the resolved biome appearances
func (ws *WorldService) Palette() *generation.Palette {
	return ws.generator.Palette()
}

// ChunkCoordOf returns the chunk containing a world position
func (ws *WorldService) ChunkCoordOf(wx, wy int) generation.ChunkCoord {
	coord, _, _ := generation.ChunkOf(wx, wy, ws.generator.Size())
	return coord
}

// GetChunk returns the chunk at chunk coordinates, generating it on a miss.
// Concurrent misses for the same chunk share one generation.
func (ws *WorldService) GetChunk(cx, cy int) (*generation.Chunk, error) {
	key := generation.ChunkCoord{X: cx, Y: cy}

	if chunk, ok := ws.cache.Get(key); ok {
		return chunk, nil
	}

	v, err, _ := ws.flights.Do(key.String(), func() (interface{}, error) {
		// A flight that finished just before this one may have published it
		if chunk, ok := ws.cache.Peek(key); ok {
			return chunk, nil
		}

		chunk, err := ws.generator.Generate(key)
		if err != nil {
			log.Printf("Error generating chunk %s: %v", key, err)
			return nil, err
		}
		ws.generated.Add(1)
		return ws.cache.Put(key, chunk), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*generation.Chunk), nil
}

// GetTile returns the tile at world coordinates
func (ws *WorldService) GetTile(wx, wy int) (generation.Tile, error) {
	coord, lx, ly := generation.ChunkOf(wx, wy, ws.generator.Size())
	chunk, err := ws.GetChunk(coord.X, coord.Y)
	if err != nil {
		return generation.Tile{}, err
	}
	return chunk.Tile(lx, ly), nil
}

// Biome returns the biome at world coordinates
func (ws *WorldService) Biome(wx, wy int) (string, error) {
	coord, lx, ly := generation.ChunkOf(wx, wy, ws.generator.Size())
	chunk, err := ws.GetChunk(coord.X, coord.Y)
	if err != nil {
		return "", err
	}
	return chunk.Biome(lx, ly), nil
}

// Generated returns how many chunks have been generated since start
func (ws *WorldService) Generated() int64 {
	return ws.generated.Load()
}

// CacheStats returns a snapshot of the chunk cache counters
func (ws *WorldService) CacheStats() CacheStats {
	return ws.cache.Stats()
}

// GetWorldResponse returns the world summary for the client
func (ws *WorldService) GetWorldResponse() *models.WorldResponse {
	stats := ws.cache.Stats()
	mapTasks, cellTasks := ws.sched.TaskCounts()

	return &models.WorldResponse{
		ID:        ws.id.String(),
		Seed:      ws.Seed(),
		ChunkSize: ws.ChunkSize(),
		Generated: ws.Generated(),
		Cache: models.CacheInfo{
			Size:      stats.Size,
			MaxSize:   stats.MaxSize,
			Hits:      stats.Hits,
			Misses:    stats.Misses,
			Evictions: stats.Evictions,
		},
		Tasks: models.TaskCounts{Map: mapTasks, Cell: cellTasks},
	}
}

// GetChunkResponse returns a chunk rendered for the client
func (ws *WorldService) GetChunkResponse(cx, cy int) (*models.ChunkResponse, error) {
	chunk, err := ws.GetChunk(cx, cy)
	if err != nil {
		return nil, err
	}

	tiles := make([][]models.RenderedTile, chunk.Size)
	for y := 0; y < chunk.Size; y++ {
		tiles[y] = make([]models.RenderedTile, chunk.Size)
		for x := 0; x < chunk.Size; x++ {
			tiles[y][x] = renderTile(chunk.Tile(x, y))
		}
	}

	return &models.ChunkResponse{
		X:     cx,
		Y:     cy,
		Size:  chunk.Size,
		Tiles: tiles,
	}, nil
}

// GetTileResponse returns one tile rendered for the client
func (ws *WorldService) GetTileResponse(wx, wy int) (*models.TileResponse, error) {
	tile, err := ws.GetTile(wx, wy)
	if err != nil {
		return nil, err
	}
	return &models.TileResponse{X: wx, Y: wy, RenderedTile: renderTile(tile)}, nil
}

func renderTile(t generation.Tile) models.RenderedTile {
	return models.RenderedTile{
		Character: t.Glyph,
		Color:     t.Color.Hex(),
		Font:      t.Font,
		Biome:     t.Biome,
	}
}
