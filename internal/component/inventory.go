package component

import "glyphcrawl/internal/ecs"

const CInventory ecs.ComponentType = 6

// Inventory is the player's backpack plus equipment slots. Equipped entries
// point into Items.
type Inventory struct {
	Items    []*Item
	Equipped map[Slot]*Item
	Capacity int
}

// NewInventory returns an empty inventory with the given capacity.
func NewInventory(capacity int) *Inventory {
	return &Inventory{Equipped: make(map[Slot]*Item), Capacity: capacity}
}

// At returns the item at index n, or nil.
func (inv *Inventory) At(n int) *Item {
	if n < 0 || n >= len(inv.Items) {
		return nil
	}
	return inv.Items[n]
}

// Weapon returns the hand-slot occupant, or nil.
func (inv *Inventory) Weapon() *Item { return inv.Equipped[SlotHand] }

// Full reports whether another distinct item would exceed capacity.
func (inv *Inventory) Full() bool {
	return inv.Capacity > 0 && len(inv.Items) >= inv.Capacity
}

func (*Inventory) Type() ecs.ComponentType { return CInventory }
