package generate

import (
	"glyphcrawl/internal/gamemap"
	"glyphcrawl/internal/logger"

	"github.com/sirupsen/logrus"
)

// wallCandidate is a wall cell next to dug floor from which a new feature
// may grow in direction (dx, dy).
type wallCandidate struct {
	p        gamemap.Point
	dx, dy   int
	priority bool // corridor end; prefer attaching a room
	fails    int
}

const maxCandidateFails = 4

type digger struct {
	cfg   *Config
	m     *gamemap.Layout
	walls []wallCandidate
	dug   int
}

// Standard digs a room-and-corridor level. The first room sits at the map
// center and every later room or corridor grows out of a wall of existing
// floor, so the level is connected by construction. Digging stops once
// DugPercentage of the interior is floor or MaxAttempts runs out. The start
// is the first room's center; stairs are then placed by placeStairs.
func Standard(cfg *Config) *gamemap.Layout {
	m := gamemap.New(cfg.Width, cfg.Height)
	d := &digger{cfg: cfg, m: m}
	d.firstRoom()

	target := int(float64((cfg.Width-2)*(cfg.Height-2)) * cfg.DugPercentage)
	for attempt := 0; d.dug < target && attempt < cfg.MaxAttempts && len(d.walls) > 0; attempt++ {
		i := cfg.Rand.Intn(len(d.walls))
		wc := d.walls[i]
		ok := false
		if wc.priority || cfg.Rand.Intn(2) == 0 {
			ok = d.tryRoom(wc)
		}
		if !ok {
			ok = d.tryCorridor(wc)
		}
		if ok {
			d.dropWall(i)
			continue
		}
		d.walls[i].fails++
		if d.walls[i].fails >= maxCandidateFails {
			d.dropWall(i)
		}
	}

	if len(m.Rooms) > 0 {
		cx, cy := m.Rooms[0].Center()
		m.Start = gamemap.Point{X: cx, Y: cy}
	}
	placeStairs(m, cfg)
	m.CollectFreeCells()

	logger.Log.WithFields(logrus.Fields{
		"depth": cfg.Depth, "rooms": len(m.Rooms), "floor": m.FloorCount(),
	}).Debug("level dug")
	return m
}

func (d *digger) dropWall(i int) {
	d.walls[i] = d.walls[len(d.walls)-1]
	d.walls = d.walls[:len(d.walls)-1]
}

func (d *digger) firstRoom() {
	rw := d.cfg.between(d.cfg.RoomWidth)
	rh := d.cfg.between(d.cfg.RoomHeight)
	rw = min(rw, d.m.Width-2)
	rh = min(rh, d.m.Height-2)
	x1 := max(1, d.m.Width/2-rw/2)
	y1 := max(1, d.m.Height/2-rh/2)
	d.addRoom(gamemap.Rect{X1: x1, Y1: y1, X2: x1 + rw - 1, Y2: y1 + rh - 1})
}

func (d *digger) addRoom(r gamemap.Rect) {
	carveRect(d.m, r)
	d.dug += r.Width() * r.Height()
	d.m.Rooms = append(d.m.Rooms, r)
	for x := r.X1; x <= r.X2; x++ {
		d.walls = append(d.walls,
			wallCandidate{p: gamemap.Point{X: x, Y: r.Y1 - 1}, dy: -1},
			wallCandidate{p: gamemap.Point{X: x, Y: r.Y2 + 1}, dy: 1},
		)
	}
	for y := r.Y1; y <= r.Y2; y++ {
		d.walls = append(d.walls,
			wallCandidate{p: gamemap.Point{X: r.X1 - 1, Y: y}, dx: -1},
			wallCandidate{p: gamemap.Point{X: r.X2 + 1, Y: y}, dx: 1},
		)
	}
}

// interior reports whether (x, y) is inside the map's outer wall ring.
func (d *digger) interior(x, y int) bool {
	return x >= 1 && y >= 1 && x <= d.m.Width-2 && y <= d.m.Height-2
}

// solid reports whether every cell of r is in bounds and wall.
func (d *digger) solid(r gamemap.Rect) bool {
	for y := r.Y1; y <= r.Y2; y++ {
		for x := r.X1; x <= r.X2; x++ {
			if !d.m.InBounds(x, y) || d.m.Kind(x, y) != gamemap.TileWall {
				return false
			}
		}
	}
	return true
}

// tryRoom attaches a room beyond the door cell wc.p.
func (d *digger) tryRoom(wc wallCandidate) bool {
	door := wc.p
	if !d.interior(door.X, door.Y) || d.m.Kind(door.X, door.Y) != gamemap.TileWall {
		return false
	}
	rw := d.cfg.between(d.cfg.RoomWidth)
	rh := d.cfg.between(d.cfg.RoomHeight)

	var r gamemap.Rect
	switch {
	case wc.dy < 0:
		r.Y2 = door.Y - 1
		r.Y1 = r.Y2 - rh + 1
		r.X1 = door.X - d.cfg.Rand.Intn(rw)
		r.X2 = r.X1 + rw - 1
	case wc.dy > 0:
		r.Y1 = door.Y + 1
		r.Y2 = r.Y1 + rh - 1
		r.X1 = door.X - d.cfg.Rand.Intn(rw)
		r.X2 = r.X1 + rw - 1
	case wc.dx < 0:
		r.X2 = door.X - 1
		r.X1 = r.X2 - rw + 1
		r.Y1 = door.Y - d.cfg.Rand.Intn(rh)
		r.Y2 = r.Y1 + rh - 1
	default:
		r.X1 = door.X + 1
		r.X2 = r.X1 + rw - 1
		r.Y1 = door.Y - d.cfg.Rand.Intn(rh)
		r.Y2 = r.Y1 + rh - 1
	}
	if !d.interior(r.X1, r.Y1) || !d.interior(r.X2, r.Y2) {
		return false
	}
	if !d.solid(gamemap.Rect{X1: r.X1 - 1, Y1: r.Y1 - 1, X2: r.X2 + 1, Y2: r.Y2 + 1}) {
		return false
	}
	d.m.Set(door.X, door.Y, gamemap.MakeFloor())
	d.dug++
	d.addRoom(r)
	return true
}

// tryCorridor digs a straight corridor starting at wc.p. Its end becomes a
// priority candidate so a room tends to grow there next.
func (d *digger) tryCorridor(wc wallCandidate) bool {
	n := d.cfg.between(d.cfg.CorridorLength)
	px, py := wc.dy, wc.dx // perpendicular
	for k := 0; k < n; k++ {
		x, y := wc.p.X+wc.dx*k, wc.p.Y+wc.dy*k
		if !d.interior(x, y) || d.m.Kind(x, y) != gamemap.TileWall {
			return false
		}
		if k > 0 && (d.m.Kind(x+px, y+py) != gamemap.TileWall || d.m.Kind(x-px, y-py) != gamemap.TileWall) {
			return false
		}
	}
	endX, endY := wc.p.X+wc.dx*(n-1), wc.p.Y+wc.dy*(n-1)
	if d.m.Kind(endX+wc.dx, endY+wc.dy) != gamemap.TileWall {
		return false
	}

	carveLine(d.m, wc.p.X, wc.p.Y, wc.dx, wc.dy, n)
	d.dug += n
	d.walls = append(d.walls,
		wallCandidate{p: gamemap.Point{X: endX + wc.dx, Y: endY + wc.dy}, dx: wc.dx, dy: wc.dy, priority: true},
		wallCandidate{p: gamemap.Point{X: endX + px, Y: endY + py}, dx: px, dy: py, priority: true},
		wallCandidate{p: gamemap.Point{X: endX - px, Y: endY - py}, dx: -px, dy: -py, priority: true},
	)
	return true
}
