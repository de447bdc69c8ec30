package render

// Camera translates between map cells and screen cells. Each map cell is
// two terminal columns wide so emoji and ASCII glyphs share one grid.
type Camera struct {
	OffsetX    int
	OffsetY    int
	ViewWidth  int // in terminal columns
	ViewHeight int // in terminal rows
}

// NewCamera creates a camera of the given size centred on (cx, cy).
func NewCamera(cx, cy, viewW, viewH int) *Camera {
	c := &Camera{ViewWidth: viewW, ViewHeight: viewH}
	c.Center(cx, cy)
	return c
}

// Center puts map cell (cx, cy) in the middle of the view.
func (c *Camera) Center(cx, cy int) {
	c.OffsetX = cx - c.ViewWidth/4
	c.OffsetY = cy - c.ViewHeight/2
}

// Follow centres on (cx, cy) but keeps a mapW x mapH map pinned to the
// top-left corner when it fits, so small maps do not drift.
func (c *Camera) Follow(cx, cy, mapW, mapH int) {
	c.Center(cx, cy)
	c.OffsetX = clampOffset(c.OffsetX, mapW, c.ViewWidth/2)
	c.OffsetY = clampOffset(c.OffsetY, mapH, c.ViewHeight)
}

func clampOffset(off, size, view int) int {
	if size <= view {
		return 0
	}
	return max(0, min(off, size-view))
}

// WorldToScreen converts map (wx, wy) to screen (sx, sy). visible is false
// when the result falls outside the viewport.
func (c *Camera) WorldToScreen(wx, wy int) (sx, sy int, visible bool) {
	sx = (wx - c.OffsetX) * 2
	sy = wy - c.OffsetY
	visible = sx >= 0 && sx+1 < c.ViewWidth && sy >= 0 && sy < c.ViewHeight
	return
}

// ScreenToWorld converts screen (sx, sy) to map coordinates.
func (c *Camera) ScreenToWorld(sx, sy int) (int, int) {
	return sx/2 + c.OffsetX, sy + c.OffsetY
}
