package game

import (
	"bytes"
	"strings"
	"testing"

	"glyphcrawl/internal/component"
	"glyphcrawl/internal/generate"
	"glyphcrawl/internal/system"
)

func TestSnapshotRoundTrip(t *testing.T) {
	s, _, _ := newTestSession(t, ModeStandard)
	stage(s, ModeStandard, 2, 2)
	id := s.playerID
	for _, item := range []string{"chain_mail", "scroll_might", "potion"} {
		if err := system.PickUp(s.world, id, mustItem(t, item)); err != nil {
			t.Fatalf("PickUp %s: %v", item, err)
		}
	}
	inv := system.InventoryOf(s.world, id)
	if out := s.equip(2); !out.TurnUsed {
		t.Fatal("equip chain mail failed")
	}
	if out := s.useItem(3); !out.TurnUsed {
		t.Fatal("reading the scroll failed")
	}
	system.ApplyStatus(s.world, id, &component.StatusTemplate{
		Type: "blessed", Permanent: true, Modifiers: component.Modifiers{component.StatDefense: 1},
	})
	system.GrantExperience(s.world, s.rng, id, 10)
	system.Damage(s.world, id, 7)

	want := s.Player()
	snap := s.Snapshot()

	var buf bytes.Buffer
	if err := snap.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(buf.String(), `"duration": null`) {
		t.Error("permanent status should be saved with a null duration")
	}
	decoded, err := DecodeSnapshot(&buf)
	if err != nil {
		t.Fatalf("DecodeSnapshot: %v", err)
	}

	other, _, _ := newTestSession(t, ModeStandard)
	if err := other.Restore(decoded); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	got := other.Player()

	for _, st := range component.TrackedStats {
		if got.Stats[st] != want.Stats[st] {
			t.Errorf("%s = %+v; want %+v", st, got.Stats[st], want.Stats[st])
		}
	}
	if got.HP != want.HP || got.MaxHP != want.MaxHP {
		t.Errorf("hp %d/%d; want %d/%d", got.HP, got.MaxHP, want.HP, want.MaxHP)
	}
	if got.Level != want.Level || got.Exp != want.Exp || got.Gold != want.Gold {
		t.Errorf("progress %d/%d/%d; want %d/%d/%d", got.Level, got.Exp, got.Gold, want.Level, want.Exp, want.Gold)
	}
	if len(got.Inventory) != len(want.Inventory) {
		t.Fatalf("inventory len %d; want %d", len(got.Inventory), len(want.Inventory))
	}
	for i := range want.Inventory {
		g, w := got.Inventory[i], want.Inventory[i]
		if g.ID != w.ID || g.Quantity != w.Quantity || g.Equipped != w.Equipped {
			t.Errorf("item %d = %+v; want %+v", i, g, w)
		}
	}
	if len(got.Statuses) != len(want.Statuses) {
		t.Fatalf("statuses %+v; want %+v", got.Statuses, want.Statuses)
	}
	for i := range want.Statuses {
		if got.Statuses[i] != want.Statuses[i] {
			t.Errorf("status %d = %+v; want %+v", i, got.Statuses[i], want.Statuses[i])
		}
	}
	if other.Depth() != 1 || other.State() != StatePlaying {
		t.Errorf("restored depth %d state %v", other.Depth(), other.State())
	}
	if len(inv.Items) != len(want.Inventory) {
		t.Error("snapshot must not change the source inventory")
	}
}

func TestSnapshotIgnoresStoredTotals(t *testing.T) {
	s, _, _ := newTestSession(t, ModeStandard)
	stage(s, ModeStandard, 2, 2)
	snap := s.Snapshot()
	snap.Player.Base[component.StatAttack] = 9
	snap.Player.Inventory = []ItemSnapshot{{ID: "short_sword", Quantity: 1, Equipped: true}}
	snap.Player.Equipment = map[component.Slot]string{component.SlotHand: "short_sword"}

	if err := s.Restore(snap); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	b := s.Player().Stats[component.StatAttack]
	if b.Base != 9 || b.Equipment != 3 || b.Total != 12 {
		t.Errorf("attack = %+v; want 9 + 3 = 12", b)
	}
}

func TestRestoreRejectsUnknownItem(t *testing.T) {
	s, _, _ := newTestSession(t, ModeStandard)
	stage(s, ModeStandard, 2, 2)
	snap := s.Snapshot()
	snap.Player.Inventory = append(snap.Player.Inventory, ItemSnapshot{ID: "moon_rock", Quantity: 1})
	if err := s.Restore(snap); err == nil {
		t.Fatal("expected an error for an unknown item")
	}
	if n := len(system.InventoryOf(s.world, s.playerID).Items); n != 2 {
		t.Errorf("failed restore touched the inventory: %d items", n)
	}
}

func TestRestoreRejectsInconsistentEquipment(t *testing.T) {
	cases := []struct {
		name      string
		inventory []ItemSnapshot
		equipment map[component.Slot]string
	}{
		{
			name:      "slot names an uncarried item",
			inventory: []ItemSnapshot{{ID: "dagger", Quantity: 1, Equipped: true}},
			equipment: map[component.Slot]string{component.SlotHand: "short_sword"},
		},
		{
			name:      "flagged item missing from slots",
			inventory: []ItemSnapshot{{ID: "dagger", Quantity: 1, Equipped: true}, {ID: "chain_mail", Quantity: 1, Equipped: true}},
			equipment: map[component.Slot]string{component.SlotHand: "dagger"},
		},
		{
			name:      "item in the wrong slot",
			inventory: []ItemSnapshot{{ID: "dagger", Quantity: 1, Equipped: true}},
			equipment: map[component.Slot]string{component.SlotBody: "dagger"},
		},
		{
			name:      "slot names an unequipped item",
			inventory: []ItemSnapshot{{ID: "dagger", Quantity: 1}},
			equipment: map[component.Slot]string{component.SlotHand: "dagger"},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, _, _ := newTestSession(t, ModeStandard)
			stage(s, ModeStandard, 2, 2)
			before := s.Player()
			snap := s.Snapshot()
			snap.Player.Inventory = c.inventory
			snap.Player.Equipment = c.equipment
			if err := s.Restore(snap); err == nil {
				t.Fatal("expected an error")
			}
			if after := s.Player(); len(after.Inventory) != len(before.Inventory) {
				t.Errorf("failed restore touched the inventory: %d items", len(after.Inventory))
			}
		})
	}
}

func TestRestoreRejectsOverCapacityInventory(t *testing.T) {
	s, _, _ := newTestSession(t, ModeStandard)
	stage(s, ModeStandard, 2, 2)
	capacity := system.InventoryOf(s.world, s.playerID).Capacity
	if capacity <= 0 {
		t.Skip("inventory is unbounded")
	}
	snap := s.Snapshot()
	snap.Player.Equipment = nil
	snap.Player.Inventory = nil
	for i := 0; i <= capacity; i++ {
		snap.Player.Inventory = append(snap.Player.Inventory, ItemSnapshot{ID: "dagger", Quantity: 1})
	}
	if err := s.Restore(snap); err == nil {
		t.Fatal("expected an error for an over-capacity inventory")
	}
	if n := len(system.InventoryOf(s.world, s.playerID).Items); n != 2 {
		t.Errorf("failed restore touched the inventory: %d items", n)
	}
}

func TestRestoreArenaAtSavedWave(t *testing.T) {
	s, _, _ := newTestSession(t, ModeArena)
	snap := s.Snapshot()
	snap.Wave = 3
	snap.Score = 40

	other, _, _ := newTestSession(t, ModeStandard)
	if err := other.Restore(snap); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if other.mode != ModeArena || other.wave != 3 || other.clearedWave != 2 || other.score != 40 {
		t.Errorf("mode %v wave %d cleared %d score %d", other.mode, other.wave, other.clearedWave, other.score)
	}
	monsters := 0
	for _, id := range other.world.Query(component.CTagMonster) {
		if other.world.Alive(id) {
			monsters++
		}
	}
	if monsters != 5 {
		t.Errorf("monsters = %d, want 5", monsters)
	}
	want := generate.Arena(other.opts.Width, other.opts.Height, 3)
	for y := 0; y < want.Height; y++ {
		for x := 0; x < want.Width; x++ {
			if g, w := other.layout.At(x, y).Kind, want.At(x, y).Kind; g != w {
				t.Fatalf("tile (%d,%d) = %v, want %v", x, y, g, w)
			}
		}
	}
}
