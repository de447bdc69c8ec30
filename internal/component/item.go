package component

import "glyphcrawl/internal/ecs"

// ItemKind categorises items.
type ItemKind string

const (
	KindPotion ItemKind = "potion"
	KindWeapon ItemKind = "weapon"
	KindArmor  ItemKind = "armor"
	KindScroll ItemKind = "scroll"
	KindFood   ItemKind = "food"
	KindMisc   ItemKind = "misc"
)

// Slot is an equipment attachment point. The empty slot means "not equippable".
type Slot string

const (
	SlotNone Slot = ""
	SlotHand Slot = "hand"
	SlotBody Slot = "body"
)

// Slots lists every equipment slot in display order.
var Slots = []Slot{SlotHand, SlotBody}

// Item is one inventory entry. Instances are owned by exactly one
// inventory; equipping flips Equipped rather than moving the item.
type Item struct {
	ID     string // catalog key
	Name   string
	Symbol string
	Color  string
	Kind   ItemKind
	Slot   Slot

	Stackable bool
	Quantity  int
	Equipped  bool

	// Modifiers is the equip-time bonus. When empty, the flat
	// Attack/Defense/MaxHP fields are used instead.
	Modifiers              Modifiers
	Attack, Defense, MaxHP int

	// OnHit is applied to a target struck by this item's wielder.
	OnHit *StatusTemplate

	// Consumable payload.
	Heal int
	Use  *StatusTemplate

	// Applied is the snapshot added to the owner's equipment bonuses while
	// equipped. It is authoritative for reversal.
	Applied Modifiers
}

// EquipModifiers returns the bonus this item grants when equipped, falling
// back to the flat fields.
func (it *Item) EquipModifiers() Modifiers {
	if len(it.Modifiers) > 0 {
		return it.Modifiers.Clone()
	}
	m := Modifiers{}
	if it.Attack != 0 {
		m[StatAttack] = it.Attack
	}
	if it.Defense != 0 {
		m[StatDefense] = it.Defense
	}
	if it.MaxHP != 0 {
		m[StatMaxHP] = it.MaxHP
	}
	return m
}

// Clone deep-copies an item (catalog template → owned instance).
func (it *Item) Clone() *Item {
	c := *it
	c.Modifiers = it.Modifiers.Clone()
	c.OnHit = it.OnHit.Clone()
	c.Use = it.Use.Clone()
	c.Applied = nil
	c.Equipped = false
	if c.Quantity < 1 {
		c.Quantity = 1
	}
	return &c
}

// CGroundItem is the ECS component type for items lying on the map.
const CGroundItem ecs.ComponentType = 10

// GroundItem wraps an item so it can sit on a floor tile.
type GroundItem struct{ Item *Item }

func (GroundItem) Type() ecs.ComponentType { return CGroundItem }
