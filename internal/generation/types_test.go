package generation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloorDivAndMod(t *testing.T) {
	tests := []struct {
		a, b      int
		quot, rem int
	}{
		{0, 20, 0, 0},
		{19, 20, 0, 19},
		{20, 20, 1, 0},
		{-1, 20, -1, 19},
		{-20, 20, -1, 0},
		{-21, 20, -2, 19},
		{math.MaxInt, 20, math.MaxInt / 20, math.MaxInt % 20},
		{math.MinInt, 20, math.MinInt/20 - 1, 12},
		{math.MinInt, 1, math.MinInt, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.quot, FloorDiv(tt.a, tt.b), "FloorDiv(%d, %d)", tt.a, tt.b)
		assert.Equal(t, tt.rem, Mod(tt.a, tt.b), "Mod(%d, %d)", tt.a, tt.b)
		assert.Equal(t, tt.a, tt.quot*tt.b+tt.rem, "identity for %d", tt.a)
	}
}

func TestChunkOf(t *testing.T) {
	coord, lx, ly := ChunkOf(20, 0, 20)
	assert.Equal(t, ChunkCoord{1, 0}, coord)
	assert.Equal(t, 0, lx)
	assert.Equal(t, 0, ly)

	coord, lx, ly = ChunkOf(-1, -41, 20)
	assert.Equal(t, ChunkCoord{-1, -3}, coord)
	assert.Equal(t, 19, lx)
	assert.Equal(t, 19, ly)
}

func TestChunkCoordBounds(t *testing.T) {
	b := ChunkCoord{-1, 2}.Bounds(20)
	assert.Equal(t, Bounds{-20, 40, -1, 59}, b)
	assert.Equal(t, 20, b.Width())
	assert.Equal(t, 20, b.Height())
	assert.True(t, b.Contains(Point{-20, 59}))
	assert.False(t, b.Contains(Point{0, 40}))
	assert.Equal(t, "-1,2", ChunkCoord{-1, 2}.String())
}

func TestBoundsExpand(t *testing.T) {
	b := Bounds{0, 0, 9, 9}.Expand(5)
	assert.Equal(t, Bounds{-5, -5, 14, 14}, b)
	assert.Equal(t, 20, b.Width())
	assert.True(t, Bounds{0, 0, -1, 5}.Empty())
}

func TestRGBHex(t *testing.T) {
	assert.Equal(t, "#00ff0a", RGB{0, 255, 10}.Hex())
}
