package render

import (
	"glyphcrawl/internal/game"

	"github.com/gdamore/tcell/v2"
)

// DepthTiles holds the glyphs used to draw one depth's terrain. Dim glyphs
// mark remembered cells outside the field of view.
type DepthTiles struct {
	Wall     string
	Floor    string
	DimWall  string
	DimFloor string
}

// Themes is indexed by depth; index 0 is the arena. Depths past the end
// reuse the last theme.
var Themes = []DepthTiles{
	{Wall: "🪨", Floor: "🟫", DimWall: "▓▓", DimFloor: "  "},
	{Wall: "🧱", Floor: "·", DimWall: "▓▓", DimFloor: "  "},
	{Wall: "🧱", Floor: "·", DimWall: "▓▓", DimFloor: "  "},
	{Wall: "🦴", Floor: "·", DimWall: "▓▓", DimFloor: "  "},
	{Wall: "🧊", Floor: "~", DimWall: "▓▓", DimFloor: "  "},
	{Wall: "🗿", Floor: "·", DimWall: "▓▓", DimFloor: "  "},
	{Wall: "⬛", Floor: "·", DimWall: "▓▓", DimFloor: "  "},
	{Wall: "🌑", Floor: "·", DimWall: "▓▓", DimFloor: "  "},
}

// ThemeFor returns the tile set for depth.
func ThemeFor(depth int) DepthTiles {
	if depth < 0 {
		depth = 0
	}
	if depth >= len(Themes) {
		depth = len(Themes) - 1
	}
	return Themes[depth]
}

// NamedColor resolves a W3C color name; unknown names draw white.
func NamedColor(name string) tcell.Color {
	if c := tcell.GetColor(name); c != tcell.ColorDefault {
		return c
	}
	return tcell.ColorWhite
}

// ToneColor is the message color for a tone.
func ToneColor(t game.Tone) tcell.Color {
	switch t {
	case game.ToneGood:
		return tcell.ColorGreen
	case game.ToneBad:
		return tcell.ColorRed
	case game.ToneWarning:
		return tcell.ColorYellow
	}
	return tcell.ColorLightGray
}
