package models

// WorldResponse is the world manifest sent to the client
type WorldResponse struct {
	ID        string     `json:"id"` // changes on every server start
	Seed      int64      `json:"seed"`
	ChunkSize int        `json:"chunk_size"`
	Generated int64      `json:"generated"` // chunks generated since start
	Cache     CacheInfo  `json:"cache"`
	Tasks     TaskCounts `json:"tasks"`
}

// CacheInfo describes the chunk cache
type CacheInfo struct {
	Size      int   `json:"size"`
	MaxSize   int   `json:"max_size"`
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
}

// TaskCounts reports scheduler usage per task class
type TaskCounts struct {
	Map  int64 `json:"map"`
	Cell int64 `json:"cell"`
}

// ChunkResponse is what we send to the client for one chunk
type ChunkResponse struct {
	X     int              `json:"x"`
	Y     int              `json:"y"`
	Size  int              `json:"size"`
	Tiles [][]RenderedTile `json:"tiles"`
}

// TileResponse is a single tile at world coordinates
type TileResponse struct {
	X int `json:"x"`
	Y int `json:"y"`
	RenderedTile
}

// ViewportData represents the visible area around a position
type ViewportData struct {
	Tiles   [][]RenderedTile `json:"tiles"`
	CenterX int              `json:"center_x"` // world coordinates
	CenterY int              `json:"center_y"`
	PlayerX int              `json:"player_x"` // relative to viewport
	PlayerY int              `json:"player_y"` // relative to viewport
	Biome   string           `json:"biome"`    // biome under the center
}
