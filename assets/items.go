package assets

import (
	"glyphcrawl/internal/component"
	"glyphcrawl/internal/generate"
)

func mods(attack, defense, maxHP int) component.Modifiers {
	m := component.Modifiers{}
	if attack != 0 {
		m[component.StatAttack] = attack
	}
	if defense != 0 {
		m[component.StatDefense] = defense
	}
	if maxHP != 0 {
		m[component.StatMaxHP] = maxHP
	}
	return m
}

// Items is the item catalog.
var Items = []generate.ItemEntry{
	{Item: component.Item{ID: "potion", Name: "healing potion", Symbol: "🧪", Color: "red", Kind: component.KindPotion,
		Stackable: true, Quantity: 1, Heal: 10},
		Spawn: generate.Spawn{MinDepth: 1, BaseWeight: 8}},
	{Item: component.Item{ID: "elixir", Name: "elixir of life", Symbol: "⚗", Color: "fuchsia", Kind: component.KindPotion,
		Stackable: true, Quantity: 1, Heal: 25,
		Use: &component.StatusTemplate{Type: component.StatusRegeneration, Duration: 10, Potency: 2}},
		Spawn: generate.Spawn{MinDepth: 5, BaseWeight: 1, DepthScaling: 1}},
	{Item: component.Item{ID: "antidote", Name: "regeneration draught", Symbol: "🍵", Color: "green", Kind: component.KindPotion,
		Stackable: true, Quantity: 1,
		Use: &component.StatusTemplate{Type: component.StatusRegeneration, Duration: 6, Potency: 1}},
		Spawn: generate.Spawn{MinDepth: 2, BaseWeight: 3}},
	{Item: component.Item{ID: "bread", Name: "loaf of bread", Symbol: "🍞", Color: "tan", Kind: component.KindFood,
		Stackable: true, Quantity: 1, Heal: 4},
		Spawn: generate.Spawn{MinDepth: 1, BaseWeight: 4}},
	{Item: component.Item{ID: "scroll_might", Name: "scroll of might", Symbol: "📜", Color: "gold", Kind: component.KindScroll,
		Stackable: true, Quantity: 1,
		Use: &component.StatusTemplate{Type: component.StatusStrength, Duration: 20, Potency: 3, Modifiers: mods(3, 0, 0)}},
		Spawn: generate.Spawn{MinDepth: 2, BaseWeight: 2, DepthScaling: 1}},
	{Item: component.Item{ID: "dagger", Name: "dagger", Symbol: "🔪", Color: "silver", Kind: component.KindWeapon,
		Slot: component.SlotHand, Quantity: 1, Modifiers: mods(1, 0, 0)},
		Spawn: generate.Spawn{MinDepth: 1, MaxDepth: 3, BaseWeight: 2}},
	{Item: component.Item{ID: "venom_dagger", Name: "venom dagger", Symbol: "🗡", Color: "green", Kind: component.KindWeapon,
		Slot: component.SlotHand, Quantity: 1, Modifiers: mods(2, 0, 0),
		OnHit: &component.StatusTemplate{Type: component.StatusPoison, Duration: 3, Potency: 2}},
		Spawn: generate.Spawn{MinDepth: 2, BaseWeight: 2}},
	{Item: component.Item{ID: "short_sword", Name: "short sword", Symbol: "⚔", Color: "silver", Kind: component.KindWeapon,
		Slot: component.SlotHand, Quantity: 1, Modifiers: mods(3, 0, 0)},
		Spawn: generate.Spawn{MinDepth: 2, BaseWeight: 3}},
	{Item: component.Item{ID: "war_axe", Name: "war axe", Symbol: "🪓", Color: "maroon", Kind: component.KindWeapon,
		Slot: component.SlotHand, Quantity: 1, Modifiers: mods(6, -1, 0),
		OnHit: &component.StatusTemplate{Type: component.StatusSundered, Duration: 4, Modifiers: mods(0, -2, 0)}},
		Spawn: generate.Spawn{MinDepth: 5, BaseWeight: 1, DepthScaling: 1}},
	{Item: component.Item{ID: "leather_armor", Name: "leather armor", Symbol: "🥋", Color: "tan", Kind: component.KindArmor,
		Slot: component.SlotBody, Quantity: 1, Modifiers: mods(0, 1, 0)},
		Spawn: generate.Spawn{MinDepth: 1, MaxDepth: 4, BaseWeight: 3}},
	{Item: component.Item{ID: "chain_mail", Name: "chain mail", Symbol: "🦺", Color: "silver", Kind: component.KindArmor,
		Slot: component.SlotBody, Quantity: 1, Modifiers: mods(0, 3, 5)},
		Spawn: generate.Spawn{MinDepth: 3, BaseWeight: 2}},
	{Item: component.Item{ID: "plate_armor", Name: "plate armor", Symbol: "🛡", Color: "white", Kind: component.KindArmor,
		Slot: component.SlotBody, Quantity: 1, Modifiers: mods(0, 5, 10)},
		Spawn: generate.Spawn{MinDepth: 6, BaseWeight: 1, DepthScaling: 1}},
	{Item: component.Item{ID: "gold_idol", Name: "gold idol", Symbol: "🗿", Color: "gold", Kind: component.KindMisc,
		Quantity: 1},
		Spawn: generate.Spawn{MinDepth: 3, BaseWeight: 1}},
}

// ItemByID returns a fresh instance of the catalog item with id.
func ItemByID(id string) (*component.Item, bool) {
	for i := range Items {
		if Items[i].Item.ID == id {
			return Items[i].Item.Clone(), true
		}
	}
	return nil, false
}
