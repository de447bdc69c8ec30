package gamemap

// TileKind identifies the type of a map tile.
type TileKind uint8

const (
	TileWall TileKind = iota
	TileFloor
	TileStairsUp
	TileStairsDown
	TileItem // floor carrying a ground item marker
)

var tileNames = [...]string{"wall", "floor", "upstairs", "downstairs", "item"}

func (k TileKind) String() string {
	if int(k) < len(tileNames) {
		return tileNames[k]
	}
	return "unknown"
}

// Tile holds the kind and movement/sight flags for one map cell.
type Tile struct {
	Kind        TileKind
	Walkable    bool
	Transparent bool
}

// MakeWall returns a blocking, opaque wall tile.
func MakeWall() Tile {
	return Tile{Kind: TileWall}
}

// MakeFloor returns a passable, transparent floor tile.
func MakeFloor() Tile {
	return Tile{Kind: TileFloor, Walkable: true, Transparent: true}
}

// MakeStairsDown returns a downward staircase tile.
func MakeStairsDown() Tile {
	return Tile{Kind: TileStairsDown, Walkable: true, Transparent: true}
}

// MakeStairsUp returns an upward staircase tile.
func MakeStairsUp() Tile {
	return Tile{Kind: TileStairsUp, Walkable: true, Transparent: true}
}

// MakeItemMarker returns a floor tile flagged as holding an item.
func MakeItemMarker() Tile {
	return Tile{Kind: TileItem, Walkable: true, Transparent: true}
}
