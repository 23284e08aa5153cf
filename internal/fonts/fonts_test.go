package fonts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePrefersFontSupportingEverything(t *testing.T) {
	table, err := NewSupportTable(
		NewListFace("basic", []string{"a", "b"}),
		NewListFace("wide", []string{"a", "b", "♣"}),
	)
	require.NoError(t, err)

	font, glyphs := table.Resolve([]string{"a", "♣"})
	assert.Equal(t, "wide", font)
	assert.Equal(t, []string{"a", "♣"}, glyphs)
}

func TestResolveFallsBackToFirstFont(t *testing.T) {
	table, err := NewSupportTable(
		NewListFace("basic", []string{"a"}),
		NewListFace("symbols", []string{"♣"}),
	)
	require.NoError(t, err)

	font, glyphs := table.Resolve([]string{"a", "♣", "z"})
	assert.Equal(t, "basic", font)
	assert.Equal(t, []string{"a"}, glyphs)

	font, glyphs = table.Resolve([]string{"z"})
	assert.Equal(t, "basic", font)
	assert.Empty(t, glyphs)
}

func TestSupportedRejectsMultiRuneGlyphs(t *testing.T) {
	table, err := NewSupportTable(NewListFace("f", []string{"a", "b"}))
	require.NoError(t, err)

	assert.Equal(t, []string{"a"}, table.Supported("f", []string{"ab", "a", ""}))
	assert.Nil(t, table.Supported("missing", []string{"a"}))
}

func TestNewSupportTableValidation(t *testing.T) {
	_, err := NewSupportTable()
	assert.Error(t, err)

	_, err = NewSupportTable(NewListFace("f", nil), NewListFace("f", nil))
	assert.Error(t, err)
}

func TestGoFontTable(t *testing.T) {
	table, err := NewGoFontTable()
	require.NoError(t, err)
	assert.Equal(t, []string{"goMono", "goRegular", "goMonoBold"}, table.Fonts())

	font, glyphs := table.Resolve([]string{"~", ".", "^"})
	assert.Equal(t, "goMono", font)
	assert.Equal(t, []string{"~", ".", "^"}, glyphs)

	// No Go font has emoji
	_, glyphs = table.Resolve([]string{"#", "🌲"})
	assert.Equal(t, []string{"#"}, glyphs)
}

func TestParseFaceRejectsGarbage(t *testing.T) {
	_, err := ParseFace("junk", []byte("not a font"))
	assert.Error(t, err)
}
