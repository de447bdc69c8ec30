package system

import (
	"errors"
	"slices"

	"glyphcrawl/internal/component"
	"glyphcrawl/internal/ecs"
	"glyphcrawl/internal/logger"

	"github.com/sirupsen/logrus"
)

var (
	ErrUnequippable = errors.New("item has no equipment slot")
	ErrNoInventory  = errors.New("entity has no inventory")
	ErrNotCarried   = errors.New("item is not in the inventory")
)

// Equip places item into its slot, first unequipping whatever occupies it.
// The item's equip bonus is snapshotted into Applied; that snapshot is what
// later gets reversed, even if the catalog entry changes meanwhile.
// replaced is the previous occupant, if any.
func Equip(w *ecs.World, id ecs.EntityID, item *component.Item) (replaced *component.Item, err error) {
	inv := InventoryOf(w, id)
	if inv == nil {
		return nil, ErrNoInventory
	}
	if item == nil || item.Slot == component.SlotNone {
		return nil, ErrUnequippable
	}
	if !slices.Contains(inv.Items, item) {
		return nil, ErrNotCarried
	}
	if cur := inv.Equipped[item.Slot]; cur != nil {
		if cur == item && item.Equipped {
			return nil, nil
		}
		if cur != item {
			Unequip(w, id, cur)
			replaced = cur
		}
	}

	item.Equipped = true
	item.Applied = item.EquipModifiers()
	inv.Equipped[item.Slot] = item
	RecalculateStats(w, id)

	logger.Log.WithFields(logrus.Fields{
		"entity": id, "item": item.ID, "slot": item.Slot,
	}).Debug("equipped")
	return replaced, nil
}

// Unequip clears item's slot and drops its applied snapshot. If item is not
// the slot's current occupant only the Equipped flag is cleared and false is
// returned.
func Unequip(w *ecs.World, id ecs.EntityID, item *component.Item) bool {
	if item == nil {
		return false
	}
	inv := InventoryOf(w, id)
	if inv == nil || inv.Equipped[item.Slot] != item {
		item.Equipped = false
		return false
	}
	delete(inv.Equipped, item.Slot)
	item.Equipped = false
	item.Applied = nil
	RecalculateStats(w, id)

	logger.Log.WithFields(logrus.Fields{
		"entity": id, "item": item.ID, "slot": item.Slot,
	}).Debug("unequipped")
	return true
}
