package generation

import "fmt"

// Point represents a 2D world coordinate
type Point struct {
	X, Y int
}

// Add returns a new point offset by dx, dy
func (p Point) Add(dx, dy int) Point {
	return Point{p.X + dx, p.Y + dy}
}

// Adjacent returns the 4 cardinal neighbors
func (p Point) Adjacent() []Point {
	return []Point{
		{p.X, p.Y - 1}, // N
		{p.X + 1, p.Y}, // E
		{p.X, p.Y + 1}, // S
		{p.X - 1, p.Y}, // W
	}
}

// ChunkCoord identifies a chunk on the chunk grid
type ChunkCoord struct {
	X, Y int
}

func (c ChunkCoord) String() string {
	return fmt.Sprintf("%d,%d", c.X, c.Y)
}

// Bounds returns the world-space bounds covered by the chunk
func (c ChunkCoord) Bounds(size int) Bounds {
	minX, minY := c.X*size, c.Y*size
	return Bounds{minX, minY, minX + size - 1, minY + size - 1}
}

// ChunkOf converts a world coordinate into chunk and local coordinates.
func ChunkOf(wx, wy, size int) (ChunkCoord, int, int) {
	return ChunkCoord{FloorDiv(wx, size), FloorDiv(wy, size)}, Mod(wx, size), Mod(wy, size)
}

// FloorDiv divides rounding toward negative infinity. b must be positive.
// Never overflows: the quotient of any int by b >= 1 fits in an int.
func FloorDiv(a, b int) int {
	q := a / b
	if r := a % b; r < 0 {
		q--
	}
	return q
}

// Mod returns a modulo b in [0, b). b must be positive.
func Mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// Bounds represents a rectangular region, inclusive on both ends
type Bounds struct {
	MinX, MinY, MaxX, MaxY int
}

// Width returns the width of the bounds
func (b Bounds) Width() int {
	return b.MaxX - b.MinX + 1
}

// Height returns the height of the bounds
func (b Bounds) Height() int {
	return b.MaxY - b.MinY + 1
}

// Empty reports whether the bounds contain no cells
func (b Bounds) Empty() bool {
	return b.Width() <= 0 || b.Height() <= 0
}

// Contains checks if a point is within bounds
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Expand returns bounds grown by n tiles in each direction
func (b Bounds) Expand(n int) Bounds {
	return Bounds{b.MinX - n, b.MinY - n, b.MaxX + n, b.MaxY + n}
}

// RGB is a tile color
type RGB struct {
	R, G, B uint8
}

// Hex formats the color as #rrggbb
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
