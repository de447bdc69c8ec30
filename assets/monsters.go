package assets

import (
	"glyphcrawl/internal/component"
	"glyphcrawl/internal/generate"
)

// Monsters is the monster catalog.
var Monsters = []generate.MonsterEntry{
	{ID: "snake", Name: "snake", Symbol: "🐍", Color: "green", Attack: 3, Defense: 0, MaxHP: 5, Exp: 2, SightRange: 6,
		Spawn: generate.Spawn{MinDepth: 1, MaxDepth: 3, BaseWeight: 6, DepthScaling: -2}},
	{ID: "rat", Name: "rat", Symbol: "🐀", Color: "gray", Attack: 2, Defense: 0, MaxHP: 4, Exp: 1, SightRange: 5,
		Drops: []component.LootEntry{{ItemID: "bread", Chance: 20}},
		Spawn: generate.Spawn{MinDepth: 1, MaxDepth: 4, BaseWeight: 8, DepthScaling: -2}},
	{ID: "bat", Name: "bat", Symbol: "🦇", Color: "purple", Attack: 3, Defense: 1, MaxHP: 6, Exp: 3, SightRange: 8,
		Spawn: generate.Spawn{MinDepth: 1, MaxDepth: 6, BaseWeight: 4, DepthScaling: 1}},
	{ID: "goblin", Name: "goblin", Symbol: "👺", Color: "red", Attack: 5, Defense: 1, MaxHP: 10, Exp: 5, SightRange: 7,
		Drops: []component.LootEntry{{ItemID: "potion", Chance: 25}, {ItemID: "short_sword", Chance: 10}},
		Spawn: generate.Spawn{MinDepth: 2, MaxDepth: 7, BaseWeight: 5, DepthScaling: 1}},
	{ID: "spider", Name: "giant spider", Symbol: "🕷", Color: "maroon", Attack: 6, Defense: 2, MaxHP: 12, Exp: 7, SightRange: 6,
		Drops: []component.LootEntry{{ItemID: "venom_dagger", Chance: 15}},
		Spawn: generate.Spawn{MinDepth: 3, MaxDepth: 9, BaseWeight: 4, DepthScaling: 1}},
	{ID: "zombie", Name: "zombie", Symbol: "🧟", Color: "olive", Attack: 7, Defense: 3, MaxHP: 18, Exp: 9, SightRange: 5,
		Spawn: generate.Spawn{MinDepth: 4, BaseWeight: 4, DepthScaling: 1}},
	{ID: "ogre", Name: "ogre", Symbol: "👹", Color: "orange", Attack: 10, Defense: 4, MaxHP: 28, Exp: 14, SightRange: 6,
		Drops: []component.LootEntry{{ItemID: "chain_mail", Chance: 20}},
		Spawn: generate.Spawn{MinDepth: 5, BaseWeight: 3, DepthScaling: 1}},
	{ID: "eye", Name: "floating eye", Symbol: "👁", Color: "aqua", Attack: 8, Defense: 2, MaxHP: 14, Exp: 10, SightRange: 10, Stationary: true,
		Drops: []component.LootEntry{{ItemID: "scroll_might", Chance: 30}},
		Spawn: generate.Spawn{MinDepth: 4, BaseWeight: 2}},
	// Override-only monsters: zero base weight and a window that opens
	// far below anything reachable keep them out of weighted draws.
	{ID: "kraken", Name: "kraken", Symbol: "🐙", Color: "fuchsia", Attack: 12, Defense: 5, MaxHP: 40, Exp: 25, SightRange: 7,
		Drops: []component.LootEntry{{ItemID: "elixir", Chance: 50}},
		Spawn: generate.Spawn{MinDepth: 1000}},
	{ID: "shoggoth", Name: "shoggoth", Symbol: "🦠", Color: "lime", Attack: 14, Defense: 6, MaxHP: 55, Exp: 35, SightRange: 8,
		Drops: []component.LootEntry{{ItemID: "plate_armor", Chance: 40}},
		Spawn: generate.Spawn{MinDepth: 1000}},
	{ID: "hydra", Name: "hydra", Symbol: "🐉", Color: "teal", Attack: 16, Defense: 7, MaxHP: 70, Exp: 50, SightRange: 9,
		Drops: []component.LootEntry{{ItemID: "war_axe", Chance: 50}},
		Spawn: generate.Spawn{MinDepth: 1000}},
}

// Overrides force signature monsters onto particular depths.
var Overrides = []generate.Override{
	{MonsterID: "snake", MinDepth: 1, MaxDepth: 1, Chance: 100},
	{MonsterID: "kraken", MinDepth: 4, Chance: 30},
	{MonsterID: "shoggoth", MinDepth: 6, Chance: 25},
	{MonsterID: "hydra", MinDepth: 8, Chance: 20},
}

// MonsterByID returns the catalog entry with id.
func MonsterByID(id string) (generate.MonsterEntry, bool) {
	for _, m := range Monsters {
		if m.ID == id {
			return m, true
		}
	}
	return generate.MonsterEntry{}, false
}
