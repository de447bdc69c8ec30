package generate

import (
	"glyphcrawl/internal/gamemap"
	"glyphcrawl/internal/logger"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
)

// MonsterSpawn describes one monster to create.
type MonsterSpawn struct {
	Entry  *MonsterEntry
	X, Y   int
	Forced bool // placed by a depth override
}

// ItemSpawn describes one item to create.
type ItemSpawn struct {
	Entry *ItemEntry
	X, Y  int
}

// PopulateResult is returned by Populate with entity spawn data.
type PopulateResult struct {
	Monsters []MonsterSpawn
	Items    []ItemSpawn
}

// cellPicker hands out distinct free cells in random order.
type cellPicker struct {
	cells    []gamemap.Point
	occupied mapset.Set[gamemap.Point]
}

func newCellPicker(cfg *Config, cells []gamemap.Point, occupied mapset.Set[gamemap.Point]) *cellPicker {
	shuffled := make([]gamemap.Point, len(cells))
	copy(shuffled, cells)
	cfg.Rand.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	return &cellPicker{cells: shuffled, occupied: occupied}
}

func (c *cellPicker) next() (gamemap.Point, bool) {
	for len(c.cells) > 0 {
		p := c.cells[len(c.cells)-1]
		c.cells = c.cells[:len(c.cells)-1]
		if c.occupied.Has(p) {
			continue
		}
		c.occupied.Put(p)
		return p, true
	}
	return gamemap.Point{}, false
}

// monsterByID returns the catalog entry with id, or nil.
func monsterByID(entries []MonsterEntry, id string) *MonsterEntry {
	for i := range entries {
		if entries[i].ID == id {
			return &entries[i]
		}
	}
	return nil
}

// Populate places monsters and items on free cells of m, never on the
// start or stairs. Depth overrides are rolled first and count toward
// MonsterCount; the rest are drawn with PickWeighted from the catalog
// entries whose depth window includes cfg.Depth.
func Populate(m *gamemap.Layout, cfg *Config) PopulateResult {
	var result PopulateResult
	occupied := mapset.New[gamemap.Point]()
	occupied.Put(m.Start)
	picker := newCellPicker(cfg, m.FreeCells, occupied)

	for _, ov := range cfg.Overrides {
		if !ov.applies(cfg.Depth) || cfg.Rand.Intn(100) >= ov.Chance {
			continue
		}
		entry := monsterByID(cfg.Monsters, ov.MonsterID)
		if entry == nil {
			logger.Log.WithField("monster", ov.MonsterID).Warn("override names unknown monster")
			continue
		}
		p, ok := picker.next()
		if !ok {
			break
		}
		result.Monsters = append(result.Monsters, MonsterSpawn{Entry: entry, X: p.X, Y: p.Y, Forced: true})
	}

	monsterWeight := func(e *MonsterEntry) int { return e.Weight(cfg.Depth) }
	monsters := make([]*MonsterEntry, len(cfg.Monsters))
	for i := range cfg.Monsters {
		monsters[i] = &cfg.Monsters[i]
	}
	for len(result.Monsters) < cfg.MonsterCount {
		entry, ok := PickWeighted(cfg.Rand, monsters, monsterWeight)
		if !ok {
			break
		}
		p, ok := picker.next()
		if !ok {
			break
		}
		result.Monsters = append(result.Monsters, MonsterSpawn{Entry: entry, X: p.X, Y: p.Y})
	}

	itemWeight := func(e *ItemEntry) int { return e.Weight(cfg.Depth) }
	items := make([]*ItemEntry, len(cfg.Items))
	for i := range cfg.Items {
		items[i] = &cfg.Items[i]
	}
	for len(result.Items) < cfg.ItemCount {
		entry, ok := PickWeighted(cfg.Rand, items, itemWeight)
		if !ok {
			break
		}
		p, ok := picker.next()
		if !ok {
			break
		}
		result.Items = append(result.Items, ItemSpawn{Entry: entry, X: p.X, Y: p.Y})
	}

	logger.Log.WithFields(logrus.Fields{
		"depth": cfg.Depth, "monsters": len(result.Monsters), "items": len(result.Items),
	}).Debug("level populated")
	return result
}

// ArenaWave picks 2+wave monsters for an arena wave and places them on the
// layout's spawn points, skipping cells in occupied (built with
// mapset.New). Catalog weights are taken at depth = wave.
func ArenaWave(m *gamemap.Layout, cfg *Config, wave int, occupied mapset.Set[gamemap.Point]) []MonsterSpawn {
	picker := newCellPicker(cfg, m.SpawnPoints, occupied)
	monsters := make([]*MonsterEntry, len(cfg.Monsters))
	for i := range cfg.Monsters {
		monsters[i] = &cfg.Monsters[i]
	}

	var spawns []MonsterSpawn
	for len(spawns) < 2+wave {
		entry, ok := PickWeighted(cfg.Rand, monsters, func(e *MonsterEntry) int { return e.Weight(wave) })
		if !ok {
			break
		}
		p, ok := picker.next()
		if !ok {
			break
		}
		spawns = append(spawns, MonsterSpawn{Entry: entry, X: p.X, Y: p.Y})
	}
	return spawns
}
