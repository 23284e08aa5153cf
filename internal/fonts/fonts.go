// Package fonts answers which glyphs a font can legibly draw. The world
// queries it once per biome to pick a font and the drawable subset of the
// biome's glyphs; it never loads fonts for display.
package fonts

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// Face reports glyph coverage for one named font
type Face interface {
	Name() string
	HasGlyph(r rune) bool
}

// SupportTable resolves glyphs against an ordered list of faces
type SupportTable struct {
	faces []Face
}

// NewSupportTable creates a table; face order decides ties
func NewSupportTable(faces ...Face) (*SupportTable, error) {
	if len(faces) == 0 {
		return nil, fmt.Errorf("font support table has no fonts")
	}
	seen := make(map[string]bool, len(faces))
	for _, f := range faces {
		if seen[f.Name()] {
			return nil, fmt.Errorf("font %q listed twice", f.Name())
		}
		seen[f.Name()] = true
	}
	return &SupportTable{faces: faces}, nil
}

// Fonts returns the font names in order
func (t *SupportTable) Fonts() []string {
	names := make([]string, len(t.faces))
	for i, f := range t.faces {
		names[i] = f.Name()
	}
	return names
}

// Supported returns the chars the named font can draw, in input order
func (t *SupportTable) Supported(font string, chars []string) []string {
	face := t.face(font)
	if face == nil {
		return nil
	}
	var out []string
	for _, c := range chars {
		if drawable(face, c) {
			out = append(out, c)
		}
	}
	return out
}

// FontFor returns the first font that can draw every char, or the first
// font when none can.
func (t *SupportTable) FontFor(chars []string) string {
	for _, f := range t.faces {
		all := true
		for _, c := range chars {
			if !drawable(f, c) {
				all = false
				break
			}
		}
		if all {
			return f.Name()
		}
	}
	return t.faces[0].Name()
}

// Resolve picks a font for chars and the subset it can draw
func (t *SupportTable) Resolve(chars []string) (string, []string) {
	font := t.FontFor(chars)
	return font, t.Supported(font, chars)
}

func (t *SupportTable) face(name string) Face {
	for _, f := range t.faces {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

// drawable accepts single-rune glyphs only
func drawable(f Face, glyph string) bool {
	r, size := utf8.DecodeRuneInString(glyph)
	if r == utf8.RuneError || size != len(glyph) {
		return false
	}
	return f.HasGlyph(r)
}

// ---- Declared coverage ----

// ListFace is a face whose coverage is declared up front
type ListFace struct {
	name  string
	runes map[rune]bool
}

// NewListFace creates a face supporting exactly the given glyphs
func NewListFace(name string, glyphs []string) *ListFace {
	f := &ListFace{name: name, runes: make(map[rune]bool, len(glyphs))}
	for _, g := range glyphs {
		for _, r := range g {
			f.runes[r] = true
		}
	}
	return f
}

func (f *ListFace) Name() string { return f.name }

func (f *ListFace) HasGlyph(r rune) bool { return f.runes[r] }

// ---- Real font files ----

// SFNTFace reads coverage from a TrueType/OpenType cmap
type SFNTFace struct {
	name string
	font *sfnt.Font

	mu  sync.Mutex
	buf sfnt.Buffer
}

// ParseFace parses font data
func ParseFace(name string, data []byte) (*SFNTFace, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font %q: %w", name, err)
	}
	return &SFNTFace{name: name, font: f}, nil
}

func (f *SFNTFace) Name() string { return f.name }

// HasGlyph reports whether the cmap maps r to a real glyph
func (f *SFNTFace) HasGlyph(r rune) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	idx, err := f.font.GlyphIndex(&f.buf, r)
	return err == nil && idx != 0
}

// NewGoFontTable builds a table from the Go fonts bundled with x/image,
// used when no font support file is configured.
func NewGoFontTable() (*SupportTable, error) {
	sources := []struct {
		name string
		data []byte
	}{
		{"goMono", gomono.TTF},
		{"goRegular", goregular.TTF},
		{"goMonoBold", gomonobold.TTF},
	}

	faces := make([]Face, 0, len(sources))
	for _, s := range sources {
		face, err := ParseFace(s.name, s.data)
		if err != nil {
			return nil, err
		}
		faces = append(faces, face)
	}
	return NewSupportTable(faces...)
}
