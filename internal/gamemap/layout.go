package gamemap

import "math"

// Point is an integer grid coordinate.
type Point struct {
	X, Y int
}

// Dist returns the Euclidean distance between p and o.
func (p Point) Dist(o Point) float64 {
	return math.Hypot(float64(p.X-o.X), float64(p.Y-o.Y))
}

// Rect is an axis-aligned rectangle of floor cells, inclusive on all edges.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return (r.X1 + r.X2) / 2, (r.Y1 + r.Y2) / 2
}

// Intersects reports whether r overlaps other (inclusive edges).
func (r Rect) Intersects(other Rect) bool {
	return r.X1 <= other.X2 && r.X2 >= other.X1 &&
		r.Y1 <= other.Y2 && r.Y2 >= other.Y1
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X1 && x <= r.X2 && y >= r.Y1 && y <= r.Y2
}

// Width and Height count cells.
func (r Rect) Width() int  { return r.X2 - r.X1 + 1 }
func (r Rect) Height() int { return r.Y2 - r.Y1 + 1 }

// Layout is one generated level: the tile grid plus the metadata
// placement and the session need. A new Layout replaces the old one on
// every level transition; it is never edited into a different level.
type Layout struct {
	Width, Height int
	Tiles         [][]Tile
	Rooms         []Rect
	// FreeCells lists floor coordinates in row-major order.
	FreeCells []Point
	Start     Point
	// UpStairs and DownStairs are nil when the level has none.
	UpStairs   *Point
	DownStairs *Point
	// SpawnPoints is only set on arena layouts.
	SpawnPoints []Point
}

// New creates a Layout filled with walls.
func New(width, height int) *Layout {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = MakeWall()
		}
	}
	return &Layout{Width: width, Height: height, Tiles: tiles}
}

// InBounds reports whether (x, y) is within the map boundaries.
func (m *Layout) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// At returns a pointer to the tile at (x, y). Panics if out of bounds.
func (m *Layout) At(x, y int) *Tile {
	return &m.Tiles[y][x]
}

// Kind returns the tile kind at (x, y); out-of-bounds reads as wall.
func (m *Layout) Kind(x, y int) TileKind {
	if !m.InBounds(x, y) {
		return TileWall
	}
	return m.Tiles[y][x].Kind
}

// Set replaces the tile at (x, y).
func (m *Layout) Set(x, y int, t Tile) {
	m.Tiles[y][x] = t
}

// IsWalkable returns true when (x, y) is in bounds and walkable.
func (m *Layout) IsWalkable(x, y int) bool {
	if !m.InBounds(x, y) {
		return false
	}
	return m.Tiles[y][x].Walkable
}

// IsTransparent returns true when (x, y) is in bounds and transparent.
func (m *Layout) IsTransparent(x, y int) bool {
	if !m.InBounds(x, y) {
		return false
	}
	return m.Tiles[y][x].Transparent
}

// CollectFreeCells rebuilds FreeCells from the grid's plain floor tiles.
func (m *Layout) CollectFreeCells() {
	m.FreeCells = m.FreeCells[:0]
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.Tiles[y][x].Kind == TileFloor {
				m.FreeCells = append(m.FreeCells, Point{x, y})
			}
		}
	}
}

// FloorCount returns the number of walkable cells.
func (m *Layout) FloorCount() int {
	n := 0
	for y := range m.Tiles {
		for x := range m.Tiles[y] {
			if m.Tiles[y][x].Walkable {
				n++
			}
		}
	}
	return n
}
