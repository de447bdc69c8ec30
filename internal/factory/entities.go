package factory

import (
	"glyphcrawl/assets"
	"glyphcrawl/internal/component"
	"glyphcrawl/internal/ecs"
	"glyphcrawl/internal/generate"
	"glyphcrawl/internal/logger"
	"glyphcrawl/internal/system"
)

// Render orders: higher draws on top.
const (
	orderItem    = 2
	orderMonster = 5
	orderPlayer  = 10
)

// NewPlayer creates the player entity at (x, y) from def. Starting items
// are added to the inventory and equipment pieces are equipped.
func NewPlayer(w *ecs.World, x, y int, def assets.PlayerDef) ecs.EntityID {
	id := w.CreateEntity()
	w.Add(id, component.Position{X: x, Y: y})
	w.Add(id, component.Health{Current: def.MaxHP, Max: def.MaxHP})
	w.Add(id, component.Renderable{
		Name:        def.Name,
		Symbol:      def.Symbol,
		Color:       "yellow",
		RenderOrder: orderPlayer,
	})
	w.Add(id, component.NewStats(def.Attack, def.Defense, def.MaxHP))
	w.Add(id, component.NewInventory(def.Capacity))
	w.Add(id, &component.Effects{})
	w.Add(id, component.Progress{Level: 1})
	w.Add(id, component.TagPlayer{})
	w.Add(id, component.TagBlocking{})

	for _, itemID := range def.StartItems {
		item, ok := assets.ItemByID(itemID)
		if !ok {
			logger.Log.WithField("item", itemID).Warn("unknown starting item")
			continue
		}
		if err := system.PickUp(w, id, item); err != nil {
			logger.Log.WithError(err).WithField("item", itemID).Warn("starting item not carried")
			continue
		}
		if item.Slot != component.SlotNone {
			if _, err := system.Equip(w, id, item); err != nil {
				logger.Log.WithError(err).WithField("item", itemID).Warn("starting item not equipped")
			}
		}
	}
	system.RecalculateStats(w, id)
	return id
}

// NewMonster creates a monster entity from a catalog entry.
func NewMonster(w *ecs.World, entry *generate.MonsterEntry, x, y int) ecs.EntityID {
	id := w.CreateEntity()
	w.Add(id, component.Position{X: x, Y: y})
	w.Add(id, component.Health{Current: entry.MaxHP, Max: entry.MaxHP})
	w.Add(id, component.Renderable{
		Name:        entry.Name,
		Symbol:      entry.Symbol,
		Color:       entry.Color,
		RenderOrder: orderMonster,
	})
	w.Add(id, component.NewStats(entry.Attack, entry.Defense, entry.MaxHP))
	behavior := component.BehaviorChase
	if entry.Stationary {
		behavior = component.BehaviorStationary
	}
	w.Add(id, component.AI{Behavior: behavior, SightRange: entry.SightRange})
	w.Add(id, &component.Effects{})
	w.Add(id, component.Reward{Exp: entry.Exp})
	if len(entry.Drops) > 0 {
		w.Add(id, component.Loot{Drops: entry.Drops})
	}
	w.Add(id, component.TagMonster{})
	w.Add(id, component.TagBlocking{})
	return id
}

// NewGroundItem places item on the floor at (x, y).
func NewGroundItem(w *ecs.World, item *component.Item, x, y int) ecs.EntityID {
	id := w.CreateEntity()
	w.Add(id, component.Position{X: x, Y: y})
	w.Add(id, component.Renderable{
		Name:        item.Name,
		Symbol:      item.Symbol,
		Color:       item.Color,
		RenderOrder: orderItem,
	})
	w.Add(id, component.GroundItem{Item: item})
	return id
}
