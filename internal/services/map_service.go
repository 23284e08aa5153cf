package services

import (
	"fmt"

	"dconn.dev/overworld/internal/generation"
	"dconn.dev/overworld/internal/models"
)

// DefaultSpawnSearch bounds how many cells FindSpawn visits
const DefaultSpawnSearch = 10000

// MapService answers area queries over the world
type MapService struct {
	world       *WorldService
	spawnSearch int
}

// NewMapService creates a new MapService. maxSpawnSearch <= 0 uses the default.
func NewMapService(ws *WorldService, maxSpawnSearch int) *MapService {
	if maxSpawnSearch <= 0 {
		maxSpawnSearch = DefaultSpawnSearch
	}
	return &MapService{world: ws, spawnSearch: maxSpawnSearch}
}

// GetViewport returns the visible tiles around a center position
// width and height specify the viewport dimensions
func (s *MapService) GetViewport(center models.Position, width, height int) (*models.ViewportData, error) {
	halfWidth := width / 2
	halfHeight := height / 2
	viewport := &models.ViewportData{
		Tiles:   make([][]models.RenderedTile, height),
		CenterX: center.X,
		CenterY: center.Y,
		PlayerX: halfWidth,
		PlayerY: halfHeight,
	}

	for y := 0; y < height; y++ {
		viewport.Tiles[y] = make([]models.RenderedTile, width)
		for x := 0; x < width; x++ {
			tile, err := s.world.GetTile(center.X-halfWidth+x, center.Y-halfHeight+y)
			if err != nil {
				return nil, err
			}
			viewport.Tiles[y][x] = renderTile(tile)
		}
	}

	viewport.Biome = viewport.Tiles[halfHeight][halfWidth].Biome
	return viewport, nil
}

// FindSpawn returns the land cell nearest to the origin, searching
// breadth-first outward. It fails if no land is found within the bound.
func (s *MapService) FindSpawn() (models.Position, error) {
	start := generation.Point{}
	visited := map[generation.Point]bool{start: true}
	queue := []generation.Point{start}

	for checked := 0; len(queue) > 0 && checked < s.spawnSearch; checked++ {
		current := queue[0]
		queue = queue[1:]

		biome, err := s.world.Biome(current.X, current.Y)
		if err != nil {
			return models.Position{}, err
		}
		if IsLand(biome) {
			return models.Position{X: current.X, Y: current.Y}, nil
		}

		for _, next := range current.Adjacent() {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}

	return models.Position{}, fmt.Errorf("no land within %d cells of the origin", s.spawnSearch)
}

// IsLand reports whether a biome can be stood on
func IsLand(biome string) bool {
	switch biome {
	case generation.BiomeRiver, generation.BiomeOcean, generation.BiomeDeepOcean:
		return false
	}
	return true
}
