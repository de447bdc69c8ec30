package system

import (
	"glyphcrawl/internal/gamemap"

	"github.com/zyedidia/generic/mapset"
)

// octant transform matrices.
// For each octant, a (dx, dy) sweep pair maps to a world offset via:
//
//	worldX = cx + dx*xx + dy*xy
//	worldY = cy + dx*yx + dy*yy
//
// where dx sweeps horizontally within the row and dy is the fixed row index.
var octants = [8][4]int{
	{1, 0, 0, 1},
	{0, 1, 1, 0},
	{0, -1, 1, 0},
	{-1, 0, 0, 1},
	{-1, 0, 0, -1},
	{0, -1, -1, 0},
	{0, 1, -1, 0},
	{1, 0, 0, -1},
}

// ComputeFOV runs recursive shadowcasting from origin and returns the set
// of visible cells. The origin is always visible.
func ComputeFOV(m *gamemap.Layout, origin gamemap.Point, radius int) mapset.Set[gamemap.Point] {
	visible := mapset.New[gamemap.Point]()
	if !m.InBounds(origin.X, origin.Y) {
		return visible
	}
	visible.Put(origin)
	for _, o := range octants {
		castLight(m, visible, origin.X, origin.Y, 1, 1.0, 0.0, radius, o[0], o[1], o[2], o[3])
	}
	return visible
}

// castLight lights one octant.
//   - j is the current row (distance from origin along the main axis)
//   - dy = -j is fixed for the inner sweep, dx runs from -j to 0
//   - lSlope = (dx - 0.5) / (dy + 0.5), rSlope = (dx + 0.5) / (dy - 0.5)
func castLight(m *gamemap.Layout, visible mapset.Set[gamemap.Point], cx, cy, row int, start, end float64, radius, xx, xy, yx, yy int) {
	if start < end {
		return
	}
	radiusSq := float64(radius * radius)
	newStart := start

	for j := row; j <= radius; j++ {
		dy := -j
		blocked := false

		for dx := -j; dx <= 0; dx++ {
			wx := cx + dx*xx + dy*xy
			wy := cy + dx*yx + dy*yy

			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)

			if start < rSlope {
				continue
			}
			if end > lSlope {
				break
			}

			if float64(dx*dx+dy*dy) < radiusSq && m.InBounds(wx, wy) {
				visible.Put(gamemap.Point{X: wx, Y: wy})
			}

			opaque := !m.IsTransparent(wx, wy)
			if blocked {
				if opaque {
					newStart = rSlope
				} else {
					blocked = false
					start = newStart
				}
			} else if opaque && j < radius {
				blocked = true
				castLight(m, visible, cx, cy, j+1, start, lSlope, radius, xx, xy, yx, yy)
				newStart = rSlope
			}
		}
		if blocked {
			break
		}
	}
}
