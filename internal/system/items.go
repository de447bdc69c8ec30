package system

import (
	"errors"
	"slices"

	"glyphcrawl/internal/component"
	"glyphcrawl/internal/ecs"
)

var (
	ErrNoItem        = errors.New("no item in that slot")
	ErrEquipInstead  = errors.New("item must be equipped, not used")
	ErrNotUsable     = errors.New("item has no use")
	ErrInventoryFull = errors.New("inventory is full")
)

// UseResult describes a consumed item.
type UseResult struct {
	Item   component.Item // copy taken before consumption
	Healed int
	Status *component.StatusEffect
	Merged bool
}

// UseItem consumes the n-th inventory item. Stackable items lose one unit
// and disappear at zero; others are removed outright.
func UseItem(w *ecs.World, id ecs.EntityID, n int) (UseResult, error) {
	inv := InventoryOf(w, id)
	if inv == nil {
		return UseResult{}, ErrNoInventory
	}
	item := inv.At(n)
	if item == nil {
		return UseResult{}, ErrNoItem
	}
	if item.Slot != component.SlotNone {
		return UseResult{}, ErrEquipInstead
	}
	if item.Heal <= 0 && item.Use == nil {
		return UseResult{}, ErrNotUsable
	}

	res := UseResult{Item: *item}
	if item.Heal > 0 {
		res.Healed = Heal(w, id, item.Heal)
	}
	if item.Use != nil {
		tmpl := item.Use.Clone()
		if tmpl.Source == "" {
			tmpl.Source = item.Name
		}
		res.Status, res.Merged = ApplyStatus(w, id, tmpl)
	}

	item.Quantity--
	if !item.Stackable || item.Quantity <= 0 {
		inv.Items = slices.Delete(inv.Items, n, n+1)
	}
	return res, nil
}

// DropItem removes the n-th inventory item, unequipping it first, and
// returns it so the caller can place it on the map.
func DropItem(w *ecs.World, id ecs.EntityID, n int) (*component.Item, error) {
	inv := InventoryOf(w, id)
	if inv == nil {
		return nil, ErrNoInventory
	}
	item := inv.At(n)
	if item == nil {
		return nil, ErrNoItem
	}
	if item.Equipped {
		Unequip(w, id, item)
	}
	inv.Items = slices.Delete(inv.Items, n, n+1)
	return item, nil
}

// PickUp moves item into the inventory. A stackable item merges into an
// existing stack with the same catalog ID.
func PickUp(w *ecs.World, id ecs.EntityID, item *component.Item) error {
	inv := InventoryOf(w, id)
	if inv == nil {
		return ErrNoInventory
	}
	if item.Stackable {
		for _, have := range inv.Items {
			if have.Stackable && have.ID == item.ID {
				have.Quantity += max(1, item.Quantity)
				return nil
			}
		}
	}
	if inv.Full() {
		return ErrInventoryFull
	}
	item.Equipped = false
	item.Applied = nil
	inv.Items = append(inv.Items, item)
	return nil
}
