package render

import (
	"glyphcrawl/assets"
	"glyphcrawl/internal/game"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// HUDRows is the number of rows reserved for the HUD at the bottom.
const HUDRows = 6

// Renderer draws game views onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	camera *Camera
}

func NewRenderer(screen tcell.Screen) *Renderer {
	w, h := screen.Size()
	return &Renderer{
		screen: screen,
		camera: NewCamera(0, 0, w, max(1, h-HUDRows)),
	}
}

// Resize adopts the screen's current size.
func (r *Renderer) Resize() {
	w, h := r.screen.Size()
	r.camera.ViewWidth, r.camera.ViewHeight = w, max(1, h-HUDRows)
}

// WorldToScreen converts map coordinates using the last frame's camera.
func (r *Renderer) WorldToScreen(wx, wy int) (sx, sy int, visible bool) {
	return r.camera.WorldToScreen(wx, wy)
}

// Draw renders a full frame: the map, entities, the HUD and, when
// showInventory is set, the inventory panel over the map.
func (r *Renderer) Draw(v game.View, showInventory bool) {
	r.screen.Clear()
	r.camera.Follow(v.Player.X, v.Player.Y, v.Width, v.Height)
	r.drawMap(v)
	r.drawEntities(v)
	r.drawHUD(v)
	if showInventory {
		r.drawInventory(v)
	}
	r.screen.Show()
}

func (r *Renderer) drawMap(v game.View) {
	depth := v.Depth
	if v.Mode == game.ModeArena {
		depth = 0
	}
	theme := ThemeFor(depth)
	lit := tcell.StyleDefault.Background(tcell.ColorBlack)
	dark := lit.Foreground(tcell.ColorDarkSlateGray)

	for y, row := range v.Map {
		seen := v.Seen[y]
		for x := 0; x < len(row); x++ {
			if row[x] == game.CodeUnknown {
				continue
			}
			sx, sy, onScreen := r.camera.WorldToScreen(x, y)
			if !onScreen {
				continue
			}
			visible := seen[x] == game.SeenVisible
			style := lit
			if !visible {
				style = dark
			}
			r.putGlyph(sx, sy, tileGlyph(row[x], visible, theme), style)
		}
	}
}

func tileGlyph(code byte, visible bool, theme DepthTiles) string {
	switch code {
	case game.CodeWall:
		if visible {
			return theme.Wall
		}
		return theme.DimWall
	case game.CodeStairsDown:
		return assets.GlyphStairsDown
	case game.CodeStairsUp:
		return assets.GlyphStairsUp
	}
	if visible {
		return theme.Floor
	}
	return theme.DimFloor
}

// drawEntities draws the view's entities in render order. The view only
// carries entities the player can see.
func (r *Renderer) drawEntities(v game.View) {
	for _, e := range v.Entities {
		sx, sy, onScreen := r.camera.WorldToScreen(e.X, e.Y)
		if !onScreen {
			continue
		}
		style := tcell.StyleDefault.Foreground(NamedColor(e.Color)).Background(tcell.ColorBlack)
		r.putGlyph(sx, sy, e.Symbol, style)
	}
}

// putGlyph draws one glyph, ASCII or a multi-rune emoji, at (x, y).
// Narrow glyphs are padded so every map cell covers two columns.
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	r.screen.SetContent(x, y, runes[0], runes[1:], style)
	if runewidth.StringWidth(glyph) < 2 {
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}

// putText writes text from column x and returns the column after it.
func (r *Renderer) putText(x, y int, text string, style tcell.Style) int {
	for _, ch := range text {
		r.screen.SetContent(x, y, ch, nil, style)
		x += max(1, runewidth.RuneWidth(ch))
	}
	return x
}
