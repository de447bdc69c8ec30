package generate

import "glyphcrawl/internal/gamemap"

// MaxArenaRings caps the obstacle rings an arena gains with waves.
const MaxArenaRings = 3

// Arena builds the fixed arena layout for wave: an open floor inside an
// outer wall, with one ring of pillars per wave (up to MaxArenaRings)
// centred on the start. Rings leave gates on both axes and a gap between
// every pair of pillars. Spawn points line the inside of the outer wall.
func Arena(width, height, wave int) *gamemap.Layout {
	m := gamemap.New(width, height)
	inner := gamemap.Rect{X1: 1, Y1: 1, X2: width - 2, Y2: height - 2}
	carveRect(m, inner)
	m.Rooms = []gamemap.Rect{inner}

	cx, cy := inner.Center()
	m.Start = gamemap.Point{X: cx, Y: cy}

	rings := ArenaRings(wave)
	for i := 1; i <= rings; i++ {
		rx := i * (width/2 - 2) / (rings + 1)
		ry := i * (height/2 - 2) / (rings + 1)
		if rx < 2 || ry < 2 {
			continue
		}
		ring := gamemap.Rect{X1: cx - rx, Y1: cy - ry, X2: cx + rx, Y2: cy + ry}
		for y := ring.Y1; y <= ring.Y2; y++ {
			for x := ring.X1; x <= ring.X2; x++ {
				onEdge := x == ring.X1 || x == ring.X2 || y == ring.Y1 || y == ring.Y2
				if !onEdge || x == cx || y == cy || (x+y)%2 != 0 {
					continue
				}
				m.Set(x, y, gamemap.MakeWall())
			}
		}
	}

	for y := inner.Y1; y <= inner.Y2; y++ {
		for x := inner.X1; x <= inner.X2; x++ {
			onEdge := x == inner.X1 || x == inner.X2 || y == inner.Y1 || y == inner.Y2
			if onEdge && (x+y)%3 == 0 && m.Kind(x, y) == gamemap.TileFloor {
				m.SpawnPoints = append(m.SpawnPoints, gamemap.Point{X: x, Y: y})
			}
		}
	}
	m.CollectFreeCells()
	return m
}

// ArenaRings reports how many pillar rings Arena draws for wave.
func ArenaRings(wave int) int {
	return min(MaxArenaRings, max(1, wave))
}
