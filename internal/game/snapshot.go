package game

import (
	"encoding/json"
	"fmt"
	"io"

	"glyphcrawl/assets"
	"glyphcrawl/internal/component"
	"glyphcrawl/internal/system"

	"github.com/google/uuid"
)

// SnapshotVersion is bumped whenever the snapshot layout changes.
const SnapshotVersion = 1

// Snapshot is the persisted state of a run. It stores the sources of the
// player's stats (base values, carried items, statuses) and never the
// derived totals; Restore rebuilds those by re-applying everything.
type Snapshot struct {
	Version   int            `json:"version"`
	SessionID uuid.UUID      `json:"sessionId"`
	Mode      Mode           `json:"mode"`
	Depth     int            `json:"depth"`
	Wave      int            `json:"wave,omitempty"`
	Score     int            `json:"score,omitempty"`
	Turns     int            `json:"turns"`
	Player    PlayerSnapshot `json:"player"`
}

// PlayerSnapshot is the player part of a Snapshot.
type PlayerSnapshot struct {
	Base      component.Modifiers       `json:"base"`
	HP        int                       `json:"hp"`
	Level     int                       `json:"level"`
	Exp       int                       `json:"exp"`
	Gold      int                       `json:"gold"`
	Kills     int                       `json:"kills"`
	Inventory []ItemSnapshot            `json:"inventory"`
	Equipment map[component.Slot]string `json:"equipment"`
	Statuses  []StatusSnapshot          `json:"statuses"`
}

// ItemSnapshot identifies a carried item by catalog ID.
type ItemSnapshot struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
	Equipped bool   `json:"equipped"`
}

// StatusSnapshot is a saved status. A nil Duration means permanent.
type StatusSnapshot struct {
	Type      component.StatusType `json:"type"`
	Duration  *int                 `json:"duration"`
	Potency   int                  `json:"potency"`
	Modifiers component.Modifiers  `json:"modifiers,omitempty"`
	Stackable bool                 `json:"stackable"`
	Source    string               `json:"source,omitempty"`
}

// Snapshot captures the run.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Version:   SnapshotVersion,
		SessionID: s.id,
		Mode:      s.mode,
		Depth:     s.depth,
		Wave:      s.wave,
		Score:     s.score,
		Turns:     s.turns,
	}
	p := &snap.Player
	if st, ok := s.world.Get(s.playerID, component.CStats).(*component.Stats); ok {
		p.Base = st.Base.Clone()
	}
	if hp, ok := system.HealthOf(s.world, s.playerID); ok {
		p.HP = hp.Current
	}
	if c := s.world.Get(s.playerID, component.CProgress); c != nil {
		prog := c.(component.Progress)
		p.Level, p.Exp, p.Gold, p.Kills = prog.Level, prog.Exp, prog.Gold, prog.Kills
	}
	if inv := system.InventoryOf(s.world, s.playerID); inv != nil {
		p.Equipment = make(map[component.Slot]string, len(inv.Equipped))
		for _, it := range inv.Items {
			p.Inventory = append(p.Inventory, ItemSnapshot{ID: it.ID, Quantity: it.Quantity, Equipped: it.Equipped})
		}
		for slot, it := range inv.Equipped {
			p.Equipment[slot] = it.ID
		}
	}
	if eff := system.EffectsOf(s.world, s.playerID); eff != nil {
		for _, e := range eff.Active {
			ss := StatusSnapshot{
				Type:      e.Type,
				Potency:   e.Potency,
				Modifiers: e.Modifiers.Clone(),
				Stackable: e.Stackable,
				Source:    e.Source,
			}
			if !e.IsPermanent() {
				d := e.Duration
				ss.Duration = &d
			}
			p.Statuses = append(p.Statuses, ss)
		}
	}
	return snap
}

// Restore replaces the player's state with snap and prepares a fresh
// level for the saved mode and depth. Items are rebuilt from the catalog,
// equipped items are re-equipped and statuses are re-applied without
// narration, so every total is recomputed from its sources.
func (s *Session) Restore(snap Snapshot) error {
	if snap.Version != SnapshotVersion {
		return fmt.Errorf("snapshot version %d, want %d", snap.Version, SnapshotVersion)
	}
	mode, err := ParseMode(string(snap.Mode))
	if err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	items, err := restoreItems(snap.Player.Inventory)
	if err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	if err := checkEquipment(items, snap.Player.Equipment); err != nil {
		return fmt.Errorf("restore: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.playerID
	st, ok := s.world.Get(id, component.CStats).(*component.Stats)
	inv := system.InventoryOf(s.world, id)
	if !ok || inv == nil {
		return fmt.Errorf("restore: player has no stats or inventory")
	}
	if inv.Capacity > 0 && len(items) > inv.Capacity {
		return fmt.Errorf("restore: %d items exceed capacity %d", len(items), inv.Capacity)
	}

	for _, it := range inv.Items {
		if it.Equipped {
			system.Unequip(s.world, id, it)
		}
	}
	inv.Items = nil
	system.ClearStatuses(s.world, id)
	st.Base = component.Modifiers{}
	for _, stat := range component.TrackedStats {
		st.Base[stat] = snap.Player.Base[stat]
	}
	system.RecalculateStats(s.world, id)

	inv.Items = items
	for _, it := range items {
		if it.Equipped {
			it.Equipped = false
			if _, err := system.Equip(s.world, id, it); err != nil {
				return fmt.Errorf("restore: equip %s: %w", it.ID, err)
			}
		}
	}
	for _, ss := range snap.Player.Statuses {
		system.ApplyStatus(s.world, id, ss.template())
	}
	system.RecalculateStats(s.world, id)

	s.world.Add(id, component.Progress{
		Level: max(1, snap.Player.Level),
		Exp:   snap.Player.Exp,
		Gold:  snap.Player.Gold,
		Kills: snap.Player.Kills,
	})
	if hp, ok := system.HealthOf(s.world, id); ok {
		hp.Current = min(max(1, snap.Player.HP), hp.Max)
		s.world.Add(id, hp)
	}
	s.turns = snap.Turns

	if mode == ModeArena {
		if err := s.startArena(snap.Wave, snap.Score); err != nil {
			return err
		}
	} else if err := s.prepareLevel(max(1, snap.Depth), false); err != nil {
		return err
	}
	s.log.WithField("from", snap.SessionID.String()).Info("session restored")
	return nil
}

func restoreItems(saved []ItemSnapshot) ([]*component.Item, error) {
	items := make([]*component.Item, 0, len(saved))
	for _, is := range saved {
		item, ok := assets.ItemByID(is.ID)
		if !ok {
			return nil, fmt.Errorf("unknown item %q", is.ID)
		}
		if item.Stackable {
			item.Quantity = max(1, is.Quantity)
		}
		item.Equipped = is.Equipped && item.Slot != component.SlotNone
		items = append(items, item)
	}
	return items, nil
}

// checkEquipment verifies that the slot map and the items' Equipped flags
// describe the same equipment. A nil map leaves the flags authoritative.
func checkEquipment(items []*component.Item, equipment map[component.Slot]string) error {
	if equipment == nil {
		return nil
	}
	matched := make(map[*component.Item]bool, len(equipment))
	for slot, id := range equipment {
		var found *component.Item
		for _, it := range items {
			if it.ID == id && it.Equipped && it.Slot == slot && !matched[it] {
				found = it
				break
			}
		}
		if found == nil {
			return fmt.Errorf("slot %s names %q, which is not an equipped item", slot, id)
		}
		matched[found] = true
	}
	for _, it := range items {
		if it.Equipped && !matched[it] {
			return fmt.Errorf("item %q is flagged equipped but missing from the slot map", it.ID)
		}
	}
	return nil
}

func (ss StatusSnapshot) template() *component.StatusTemplate {
	t := &component.StatusTemplate{
		Type:      ss.Type,
		Potency:   ss.Potency,
		Modifiers: ss.Modifiers.Clone(),
		Stackable: ss.Stackable,
		Source:    ss.Source,
	}
	if ss.Duration == nil {
		t.Permanent = true
	} else {
		t.Duration = float64(*ss.Duration)
	}
	return t
}

// Encode writes snap as JSON.
func (snap Snapshot) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

// DecodeSnapshot reads a snapshot written by Encode.
func DecodeSnapshot(r io.Reader) (Snapshot, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}
