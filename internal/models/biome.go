package models

// Biome describes one rule of the biome table
type Biome struct {
	Name        string     `json:"name"`
	Order       int        `json:"order"` // position in the table; earlier rules win
	Elevation   []float64  `json:"elevation,omitempty"`
	Temperature []float64  `json:"temperature"`
	Humidity    []float64  `json:"humidity"`
	Chars       []string   `json:"chars"`
	Colors      [][3]uint8 `json:"colors"`
	Font        string     `json:"font"`   // font chosen for the biome
	Glyphs      []string   `json:"glyphs"` // chars that font can draw
}
