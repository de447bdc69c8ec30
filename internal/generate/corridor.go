package generate

import "glyphcrawl/internal/gamemap"

func carveH(m *gamemap.Layout, x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		if m.InBounds(x, y) {
			m.Set(x, y, gamemap.MakeFloor())
		}
	}
}

func carveV(m *gamemap.Layout, y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		if m.InBounds(x, y) {
			m.Set(x, y, gamemap.MakeFloor())
		}
	}
}

// carveRect floors every cell of r.
func carveRect(m *gamemap.Layout, r gamemap.Rect) {
	for y := r.Y1; y <= r.Y2; y++ {
		carveH(m, r.X1, r.X2, y)
	}
}

// carveLine floors n cells starting at (x, y) stepping by (dx, dy).
func carveLine(m *gamemap.Layout, x, y, dx, dy, n int) {
	if dy == 0 {
		carveH(m, x, x+dx*(n-1), y)
		return
	}
	carveV(m, y, y+dy*(n-1), x)
}
