package system

import (
	"glyphcrawl/internal/component"
	"glyphcrawl/internal/ecs"
)

// statsOf returns the entity's Stats, or nil.
func statsOf(w *ecs.World, id ecs.EntityID) *component.Stats {
	if c := w.Get(id, component.CStats); c != nil {
		return c.(*component.Stats)
	}
	return nil
}

// EffectsOf returns the entity's Effects, or nil.
func EffectsOf(w *ecs.World, id ecs.EntityID) *component.Effects {
	if c := w.Get(id, component.CEffects); c != nil {
		return c.(*component.Effects)
	}
	return nil
}

// InventoryOf returns the entity's Inventory, or nil for monsters.
func InventoryOf(w *ecs.World, id ecs.EntityID) *component.Inventory {
	if c := w.Get(id, component.CInventory); c != nil {
		return c.(*component.Inventory)
	}
	return nil
}

// HealthOf returns the entity's Health and whether it has one.
func HealthOf(w *ecs.World, id ecs.EntityID) (component.Health, bool) {
	if c := w.Get(id, component.CHealth); c != nil {
		return c.(component.Health), true
	}
	return component.Health{}, false
}

// NameOf returns a display name for the entity.
func NameOf(w *ecs.World, id ecs.EntityID) string {
	if c := w.Get(id, component.CRenderable); c != nil {
		if r := c.(component.Renderable); r.Name != "" {
			return r.Name
		}
	}
	return "creature"
}

// StatOf returns the total for stat, or 0 when the entity has no stats.
func StatOf(w *ecs.World, id ecs.EntityID, stat component.Stat) int {
	if st := statsOf(w, id); st != nil {
		return st.Get(stat)
	}
	return 0
}

// Damage subtracts n HP (never below 0) and returns the new value.
func Damage(w *ecs.World, id ecs.EntityID, n int) int {
	hp, ok := HealthOf(w, id)
	if !ok {
		return 0
	}
	hp.Current -= n
	if hp.Current < 0 {
		hp.Current = 0
	}
	w.Add(id, hp)
	return hp.Current
}

// Heal adds up to n HP, capped at Max, and returns the amount restored.
func Heal(w *ecs.World, id ecs.EntityID, n int) int {
	hp, ok := HealthOf(w, id)
	if !ok || n <= 0 {
		return 0
	}
	before := hp.Current
	hp.Current += n
	if hp.Current > hp.Max {
		hp.Current = hp.Max
	}
	w.Add(id, hp)
	return hp.Current - before
}
