package generate

import (
	"sort"

	"glyphcrawl/internal/gamemap"
	"glyphcrawl/internal/logger"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
)

const stairRetries = 10

// placeStairs puts the downstairs in the room whose center is farthest from
// the start and, below the first level, the upstairs in the next-farthest
// room. Inside a room it tries random cells before settling on the center.
// When no room works it falls back to the farthest free floor cells. If the
// level has no spare floor at all the stairs are left out.
func placeStairs(m *gamemap.Layout, cfg *Config) {
	taken := mapset.New[gamemap.Point]()
	taken.Put(m.Start)

	rooms := make([]gamemap.Rect, len(m.Rooms))
	copy(rooms, m.Rooms)
	sort.SliceStable(rooms, func(i, j int) bool {
		return roomCenter(rooms[i]).Dist(m.Start) > roomCenter(rooms[j]).Dist(m.Start)
	})

	want := 1
	if cfg.Depth > 1 {
		want = 2
	}
	var spots []gamemap.Point
	for _, r := range rooms {
		if len(spots) == want {
			break
		}
		if p, ok := pickInRoom(m, cfg, r, taken); ok {
			spots = append(spots, p)
			taken.Put(p)
		}
	}
	if len(spots) < want {
		for _, p := range farthestFree(m, taken) {
			if len(spots) == want {
				break
			}
			spots = append(spots, p)
			taken.Put(p)
		}
	}

	if len(spots) > 0 {
		down := spots[0]
		m.Set(down.X, down.Y, gamemap.MakeStairsDown())
		m.DownStairs = &down
	}
	if want == 2 && len(spots) > 1 {
		up := spots[1]
		m.Set(up.X, up.Y, gamemap.MakeStairsUp())
		m.UpStairs = &up
	}
	if len(spots) < want {
		logger.Log.WithFields(logrus.Fields{
			"depth": cfg.Depth, "placed": len(spots), "wanted": want,
		}).Warn("not enough floor for stairs")
	}
}

func roomCenter(r gamemap.Rect) gamemap.Point {
	x, y := r.Center()
	return gamemap.Point{X: x, Y: y}
}

// pickInRoom tries random cells of r, then its center, skipping taken
// cells and anything that is not plain floor.
func pickInRoom(m *gamemap.Layout, cfg *Config, r gamemap.Rect, taken mapset.Set[gamemap.Point]) (gamemap.Point, bool) {
	usable := func(p gamemap.Point) bool {
		return m.Kind(p.X, p.Y) == gamemap.TileFloor && !taken.Has(p)
	}
	for i := 0; i < stairRetries; i++ {
		p := gamemap.Point{
			X: r.X1 + cfg.Rand.Intn(r.Width()),
			Y: r.Y1 + cfg.Rand.Intn(r.Height()),
		}
		if usable(p) {
			return p, true
		}
	}
	if c := roomCenter(r); usable(c) {
		return c, true
	}
	return gamemap.Point{}, false
}

// farthestFree lists untaken floor cells ordered by distance from the
// start, farthest first. Ties keep row-major order.
func farthestFree(m *gamemap.Layout, taken mapset.Set[gamemap.Point]) []gamemap.Point {
	var cells []gamemap.Point
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			p := gamemap.Point{X: x, Y: y}
			if m.Kind(x, y) == gamemap.TileFloor && !taken.Has(p) {
				cells = append(cells, p)
			}
		}
	}
	sort.SliceStable(cells, func(i, j int) bool {
		return cells[i].Dist(m.Start) > cells[j].Dist(m.Start)
	})
	return cells
}
