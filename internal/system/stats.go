package system

import (
	"glyphcrawl/internal/component"
	"glyphcrawl/internal/ecs"
)

// Breakdown splits a stat total into its layers.
type Breakdown struct {
	Base      int `json:"base"`
	Equipment int `json:"equipment"`
	Status    int `json:"status"`
	Total     int `json:"total"`
}

// RecalculateStats rebuilds the equipment and status bonus maps from the
// entity's live sources (equipped items' applied snapshots, active status
// modifiers) and sums base + equipment + status into Total. Nothing is
// adjusted incrementally, so repeated calls are idempotent.
//
// Health.Max follows the maxHp total and Current is clamped to it.
func RecalculateStats(w *ecs.World, id ecs.EntityID) {
	st := statsOf(w, id)
	if st == nil {
		return
	}

	equip := component.Modifiers{}
	if inv := InventoryOf(w, id); inv != nil {
		for slot, it := range inv.Equipped {
			if it == nil || !it.Equipped || it.Slot != slot {
				continue
			}
			it.Applied.AddTo(equip)
		}
	}

	status := component.Modifiers{}
	if eff := EffectsOf(w, id); eff != nil {
		for _, e := range eff.Active {
			e.Modifiers.AddTo(status)
		}
	}

	total := component.Modifiers{}
	for _, s := range component.TrackedStats {
		total[s] = 0
	}
	st.Base.AddTo(total)
	equip.AddTo(total)
	status.AddTo(total)

	st.Equipment = equip
	st.Status = status
	st.Total = total

	if hp, ok := HealthOf(w, id); ok {
		hp.Max = max(1, total[component.StatMaxHP])
		if hp.Current > hp.Max {
			hp.Current = hp.Max
		}
		w.Add(id, hp)
	}
}

// StatBreakdown reports base, equipment, status and total for one stat.
// It does not modify the entity.
func StatBreakdown(w *ecs.World, id ecs.EntityID, stat component.Stat) Breakdown {
	st := statsOf(w, id)
	if st == nil {
		return Breakdown{}
	}
	return Breakdown{
		Base:      st.Base[stat],
		Equipment: st.Equipment[stat],
		Status:    st.Status[stat],
		Total:     st.Total[stat],
	}
}
