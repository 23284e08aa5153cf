package generation

import "fmt"

// FallbackGlyph is used when no font can draw any of a biome's chars
const FallbackGlyph = "."

// Tile is the resolved rendering data of one world cell
type Tile struct {
	Glyph string
	Color RGB
	Font  string
	Biome string
}

// GlyphResolver maps a biome's desired glyphs to a font and the subset of
// glyphs that font can draw. An empty result means none can be drawn.
type GlyphResolver interface {
	Resolve(chars []string) (font string, glyphs []string)
}

// Appearance is the resolved look of a biome
type Appearance struct {
	Font   string
	Glyphs []string
	Colors []RGB
}

// Palette holds the appearance of every biome in a rule table. It is built
// once per world and only read afterwards.
type Palette struct {
	entries map[string]Appearance
}

// NewPalette resolves glyph availability for every rule
func NewPalette(rules *RuleTable, resolver GlyphResolver) (*Palette, error) {
	if resolver == nil {
		return nil, fmt.Errorf("%w: no glyph resolver", ErrConfiguration)
	}

	p := &Palette{entries: make(map[string]Appearance, rules.Len())}
	for _, r := range rules.rules {
		font, glyphs := resolver.Resolve(r.Chars)
		if len(glyphs) == 0 {
			glyphs = []string{FallbackGlyph}
		}
		p.entries[r.ID] = Appearance{
			Font:   font,
			Glyphs: glyphs,
			Colors: r.Colors,
		}
	}
	return p, nil
}

// Appearance returns the look of a biome
func (p *Palette) Appearance(biome string) (Appearance, bool) {
	a, ok := p.entries[biome]
	return a, ok
}

// assembleTile picks a glyph and a jittered color for a cell. The choices
// are drawn from an RNG keyed by the world coordinate, so a regenerated
// chunk reproduces its tiles exactly.
func assembleTile(a Appearance, biome string, rng *RNG, jitter int) Tile {
	glyph := rng.Choice(a.Glyphs)
	base := a.Colors[rng.Intn(len(a.Colors))]

	return Tile{
		Glyph: glyph,
		Color: RGB{
			R: jitterChannel(base.R, rng, jitter),
			G: jitterChannel(base.G, rng, jitter),
			B: jitterChannel(base.B, rng, jitter),
		},
		Font:  a.Font,
		Biome: biome,
	}
}

func jitterChannel(c uint8, rng *RNG, jitter int) uint8 {
	if jitter <= 0 {
		return c
	}
	v := int(c) + rng.IntRange(-jitter, jitter)
	return uint8(min(255, max(0, v)))
}
