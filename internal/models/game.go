package models

// Position represents a coordinate in the world
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// RenderedTile represents a tile as sent to the client
type RenderedTile struct {
	Character string `json:"char"`
	Color     string `json:"color"`
	Font      string `json:"font"`
	Biome     string `json:"biome"`
}
