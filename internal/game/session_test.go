package game

import (
	"errors"
	"testing"

	"glyphcrawl/internal/component"
	"glyphcrawl/internal/ecs"
	"glyphcrawl/internal/gamemap"
	"glyphcrawl/internal/system"
)

func TestNewRejectsTinyMap(t *testing.T) {
	_, err := New(Options{Width: 5, Height: 5})
	if !errors.Is(err, ErrNoLevel) {
		t.Fatalf("err = %v; want ErrNoLevel", err)
	}
}

func TestNewRejectsUnknownMode(t *testing.T) {
	if _, err := New(Options{Mode: "siege"}); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestHandleBeforeLevel(t *testing.T) {
	s, _, _ := newTestSession(t, ModeStandard)
	if _, err := s.Handle(Wait()); !errors.Is(err, ErrNoLevel) {
		t.Fatalf("err = %v; want ErrNoLevel", err)
	}
}

func TestStartStandard(t *testing.T) {
	s, rec, _ := newTestSession(t, ModeStandard)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.State() != StatePlaying || s.Depth() != 1 {
		t.Fatalf("state %v depth %d", s.State(), s.Depth())
	}
	pos := s.playerPos()
	if (gamemap.Point{X: pos.X, Y: pos.Y}) != s.layout.Start {
		t.Errorf("player at %v; want start %v", pos, s.layout.Start)
	}
	if !s.IsVisible(pos.X, pos.Y) {
		t.Error("player cell should be visible")
	}
	if len(s.world.Query(component.CTagMonster)) == 0 {
		t.Error("level 1 should have monsters (the snake is forced)")
	}
	if rec.prepared != 1 {
		t.Errorf("LevelPrepared fired %d times; want 1", rec.prepared)
	}
}

func TestPrepareLevelKeepsPlayer(t *testing.T) {
	s, _, _ := newTestSession(t, ModeStandard)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	player := s.playerID
	old := s.world.Query(component.CTagMonster)
	setHP(s, player, 9)

	if err := s.PrepareLevel(2); err != nil {
		t.Fatalf("PrepareLevel: %v", err)
	}
	if !s.world.Alive(player) || hpOf(s, player) != 9 {
		t.Fatalf("player should survive the transition with its HP")
	}
	for _, id := range old {
		if s.world.Alive(id) || s.sched.Contains(id) {
			t.Errorf("monster %d from the old level survived", id)
		}
	}
	monsters := s.world.Query(component.CTagMonster)
	if s.sched.Len() != len(monsters)+1 {
		t.Errorf("scheduler has %d entries; want %d monsters + player", s.sched.Len(), len(monsters))
	}
	if s.Depth() != 2 {
		t.Errorf("depth = %d; want 2", s.Depth())
	}
}

func TestPrepareLevelRejectsBadDepth(t *testing.T) {
	s, _, _ := newTestSession(t, ModeStandard)
	if err := s.PrepareLevel(0); !errors.Is(err, ErrNoLevel) {
		t.Fatalf("err = %v; want ErrNoLevel", err)
	}
	if s.State() != StateIdle {
		t.Errorf("a failed setup must leave the session idle, got %v", s.State())
	}
}

func TestInvalidActionsDoNotUseTurn(t *testing.T) {
	cases := []struct {
		name   string
		intent Intent
	}{
		{"walk into wall", Move(-1, 0)},
		{"use empty slot", UseItem(10)},
		{"use a weapon", UseItem(0)},
		{"equip a potion", Equip(1)},
		{"equip what is equipped", Equip(0)},
		{"equip empty slot", Equip(7)},
		{"unequip empty slot", Unequip(component.SlotBody)},
		{"drop empty slot", Drop(9)},
		{"descend off stairs", Descend()},
		{"ascend at depth 1", Ascend()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, _, _ := newTestSession(t, ModeStandard)
			stage(s, ModeStandard, 1, 1)
			rat := addMonster(t, s, "rat", 3, 1)
			ratPos := s.world.Get(rat, component.CPosition)
			hp := hpOf(s, s.playerID)

			out, err := s.Handle(tc.intent)
			if err != nil {
				t.Fatalf("Handle: %v", err)
			}
			if out.TurnUsed {
				t.Error("invalid action consumed a turn")
			}
			if s.turns != 0 || s.sched.Rounds() != 0 {
				t.Errorf("turns=%d rounds=%d; want 0", s.turns, s.sched.Rounds())
			}
			if got := s.world.Get(rat, component.CPosition); got != ratPos {
				t.Error("monster acted after an invalid action")
			}
			if hpOf(s, s.playerID) != hp {
				t.Error("player HP changed")
			}
			if msg := lastMessage(s); msg.Tone != ToneWarning {
				t.Errorf("last message %q has tone %v; want warning", msg.Text, msg.Tone)
			}
		})
	}
}

func TestMalformedIntents(t *testing.T) {
	cases := []Intent{
		Move(2, 0),
		Move(0, 0),
		{Kind: "dance"},
		{Kind: IntentUnequip},
	}
	for _, in := range cases {
		s, _, _ := newTestSession(t, ModeStandard)
		stage(s, ModeStandard, 2, 2)
		if _, err := s.Handle(in); !errors.Is(err, ErrInvalidIntent) {
			t.Errorf("Handle(%+v) err = %v; want ErrInvalidIntent", in, err)
		}
	}
}

func TestWaitRunsMonsters(t *testing.T) {
	s, _, _ := newTestSession(t, ModeStandard)
	stage(s, ModeStandard, 2, 2)
	rat := addMonster(t, s, "rat", 6, 2)

	out, err := s.Handle(Wait())
	if err != nil || !out.TurnUsed {
		t.Fatalf("Handle(Wait) = %+v, %v", out, err)
	}
	pos := s.world.Get(rat, component.CPosition).(component.Position)
	if pos.X != 5 || pos.Y != 2 {
		t.Errorf("rat at (%d,%d); want it to step to (5,2)", pos.X, pos.Y)
	}
	if s.sched.Rounds() != 1 {
		t.Errorf("rounds = %d; want 1", s.sched.Rounds())
	}
}

func TestMonsterKilledByStatusAfterActingIsHandledOnce(t *testing.T) {
	s, rec, _ := newTestSession(t, ModeStandard)
	stage(s, ModeStandard, 2, 2)
	rat := addMonster(t, s, "rat", 3, 2)
	system.ApplyStatus(s.world, rat, &component.StatusTemplate{
		Type: component.StatusPoison, Duration: 3, Potency: 10,
	})

	if _, err := s.Handle(Wait()); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	// The rat struck first (2 atk vs 2 def → 1 damage), then its poison
	// killed it.
	if hp := hpOf(s, s.playerID); hp != 29 {
		t.Errorf("player hp = %d; want 29", hp)
	}
	if len(rec.deaths) != 1 || rec.deaths[0].Entity != rat {
		t.Fatalf("deaths = %+v; want exactly the rat", rec.deaths)
	}
	if rec.deaths[0].Cause != "poison" {
		t.Errorf("cause = %q; want poison", rec.deaths[0].Cause)
	}
	if s.world.Alive(rat) || s.sched.Contains(rat) {
		t.Error("rat should be gone from world and scheduler")
	}

	s.handleDeath(rat, "again")
	if _, err := s.Handle(Wait()); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(rec.deaths) != 1 {
		t.Errorf("death handled %d times; want 1", len(rec.deaths))
	}
	prog := s.world.Get(s.playerID, component.CProgress).(component.Progress)
	if prog.Kills != 1 {
		t.Errorf("kills = %d; want 1", prog.Kills)
	}
}

func TestRoundSkipsMonsterKilledBeforeItsSlot(t *testing.T) {
	s, rec, _ := newTestSession(t, ModeStandard)
	stage(s, ModeStandard, 2, 2)
	first := addMonster(t, s, "rat", 3, 2)
	second := addMonster(t, s, "rat", 2, 3)
	acted := map[ecs.EntityID]int{}

	s.sched.Round(func(id ecs.EntityID) bool {
		acted[id]++
		if id == first {
			setHP(s, second, 0)
			s.handleDeath(second, "test")
		}
		return true
	})
	if acted[first] != 1 || acted[second] != 0 {
		t.Errorf("acted = %v; want only the first rat", acted)
	}
	if len(rec.deaths) != 1 {
		t.Errorf("deaths = %d; want 1", len(rec.deaths))
	}
}

func TestPlayerAttackAndCounter(t *testing.T) {
	s, _, _ := newTestSession(t, ModeStandard)
	stage(s, ModeStandard, 2, 2)
	goblin := addMonster(t, s, "goblin", 3, 2)

	out, err := s.Handle(Move(1, 0))
	if err != nil || !out.TurnUsed {
		t.Fatalf("Handle = %+v, %v", out, err)
	}
	// 6 atk (5 + dagger) vs 1 def → 5; goblin counters 5 vs 2 → 3 and then
	// strikes again on its own turn.
	if hp := hpOf(s, goblin); hp != 5 {
		t.Errorf("goblin hp = %d; want 5", hp)
	}
	if hp := hpOf(s, s.playerID); hp != 24 {
		t.Errorf("player hp = %d; want 24", hp)
	}
	pos := s.playerPos()
	if pos.X != 2 {
		t.Error("attacking must not move the player")
	}
}

func TestKillGrantsRewardAndLoot(t *testing.T) {
	s, rec, _ := newTestSession(t, ModeStandard)
	stage(s, ModeStandard, 2, 2)
	rat := addMonster(t, s, "rat", 3, 2)
	s.world.Add(rat, component.Loot{Drops: []component.LootEntry{{ItemID: "potion", Chance: 100}}})

	if _, err := s.Handle(Move(1, 0)); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(rec.deaths) != 1 {
		t.Fatalf("deaths = %d; want 1", len(rec.deaths))
	}
	prog := s.world.Get(s.playerID, component.CProgress).(component.Progress)
	if prog.Exp != 1 || prog.Gold < 1 || prog.Gold > 2 {
		t.Errorf("progress = %+v; want exp 1 and gold in [1,2]", prog)
	}
	if system.GroundItemAt(s.world, 3, 2) == ecs.NilEntity {
		t.Error("expected the potion to drop where the rat died")
	}
	if s.layout.Kind(3, 2) != gamemap.TileItem {
		t.Errorf("tile = %v; want item marker", s.layout.Kind(3, 2))
	}
}

func TestPickupOnStep(t *testing.T) {
	s, _, _ := newTestSession(t, ModeStandard)
	stage(s, ModeStandard, 2, 2)
	inv := system.InventoryOf(s.world, s.playerID)
	potions := inv.Items[1].Quantity

	potion := inv.Items[1].Clone()
	s.placeItem(potion, 3, 2)
	if _, err := s.Handle(Move(1, 0)); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if got := inv.Items[1].Quantity; got != potions+1 {
		t.Errorf("potions = %d; want %d", got, potions+1)
	}
	if s.layout.Kind(3, 2) != gamemap.TileFloor {
		t.Errorf("tile = %v; want floor after pickup", s.layout.Kind(3, 2))
	}
}

func TestUseEquipDrop(t *testing.T) {
	s, _, _ := newTestSession(t, ModeStandard)
	stage(s, ModeStandard, 2, 2)
	inv := system.InventoryOf(s.world, s.playerID)
	if err := system.PickUp(s.world, s.playerID, mustItem(t, "chain_mail")); err != nil {
		t.Fatalf("PickUp: %v", err)
	}
	setHP(s, s.playerID, 10)

	if out, _ := s.Handle(UseItem(1)); !out.TurnUsed {
		t.Fatal("drinking a potion should use a turn")
	}
	if hp := hpOf(s, s.playerID); hp != 20 {
		t.Errorf("hp = %d; want 20", hp)
	}
	// The potion stack is gone, so chain mail moved to index 1.
	if out, _ := s.Handle(Equip(1)); !out.TurnUsed {
		t.Fatal("equipping should use a turn")
	}
	if def := system.StatOf(s.world, s.playerID, component.StatDefense); def != 5 {
		t.Errorf("defense = %d; want 5", def)
	}
	if out, _ := s.Handle(Unequip(component.SlotBody)); !out.TurnUsed {
		t.Fatal("unequipping should use a turn")
	}
	if out, _ := s.Handle(Drop(1)); !out.TurnUsed {
		t.Fatal("dropping should use a turn")
	}
	if len(inv.Items) != 1 {
		t.Errorf("inventory has %d items; want 1", len(inv.Items))
	}
	if system.GroundItemAt(s.world, 2, 2) == ecs.NilEntity {
		t.Error("dropped item should lie under the player")
	}
}

func TestDescendAndAscend(t *testing.T) {
	s, _, _ := newTestSession(t, ModeStandard)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	down := s.layout.DownStairs
	if down == nil {
		t.Fatal("depth 1 should have downstairs")
	}
	s.world.Add(s.playerID, component.Position{X: down.X, Y: down.Y})

	out, err := s.Handle(Descend())
	if err != nil || !out.LevelChanged {
		t.Fatalf("Descend = %+v, %v", out, err)
	}
	if s.Depth() != 2 {
		t.Fatalf("depth = %d; want 2", s.Depth())
	}
	up := s.layout.UpStairs
	if up == nil {
		t.Fatal("depth 2 should have upstairs")
	}
	s.world.Add(s.playerID, component.Position{X: up.X, Y: up.Y})

	out, err = s.Handle(Ascend())
	if err != nil || !out.LevelChanged {
		t.Fatalf("Ascend = %+v, %v", out, err)
	}
	pos := s.playerPos()
	if s.layout.DownStairs != nil && (pos.X != s.layout.DownStairs.X || pos.Y != s.layout.DownStairs.Y) {
		t.Errorf("ascending should land on the downstairs, got (%d,%d)", pos.X, pos.Y)
	}
}

func TestPlayerDeathEndsGame(t *testing.T) {
	s, rec, _ := newTestSession(t, ModeStandard)
	stage(s, ModeStandard, 2, 2)
	addMonster(t, s, "ogre", 3, 2)
	setHP(s, s.playerID, 1)

	out, err := s.Handle(Wait())
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !out.GameOver || s.State() != StateDead {
		t.Fatalf("out = %+v state = %v; want game over", out, s.State())
	}
	if len(rec.overs) != 1 || rec.overs[0].CauseOfDeath != "ogre" {
		t.Errorf("game over events = %+v", rec.overs)
	}
	last := rec.deaths[len(rec.deaths)-1]
	if !last.Player {
		t.Error("expected a player death event")
	}
	if _, err := s.Handle(Wait()); !errors.Is(err, ErrGameOver) {
		t.Errorf("err = %v; want ErrGameOver", err)
	}
}

func TestPlayerPoisonDeathNamesCause(t *testing.T) {
	s, rec, _ := newTestSession(t, ModeStandard)
	stage(s, ModeStandard, 2, 2)
	setHP(s, s.playerID, 2)
	system.ApplyStatus(s.world, s.playerID, &component.StatusTemplate{
		Type: component.StatusPoison, Duration: 5, Potency: 3, Source: "venom",
	})

	out, _ := s.Handle(Wait())
	if !out.GameOver {
		t.Fatal("poison should have killed the player")
	}
	if got := rec.overs[0].CauseOfDeath; got != "poison (venom)" {
		t.Errorf("cause = %q; want %q", got, "poison (venom)")
	}
	if s.sched.Rounds() != 0 {
		t.Error("monsters must not act after the player died")
	}
}

func TestMessageLogCapped(t *testing.T) {
	s, _, _ := newTestSession(t, ModeStandard)
	for i := range MessageLimit + 10 {
		s.say(ToneInfo, "line %d", i)
	}
	msgs := s.Messages()
	if len(msgs) != MessageLimit {
		t.Fatalf("len = %d; want %d", len(msgs), MessageLimit)
	}
	if msgs[0].Text != "line 10" {
		t.Errorf("oldest = %q; want line 10", msgs[0].Text)
	}
}

func TestViewMatchesLayout(t *testing.T) {
	s, _, _ := newTestSession(t, ModeStandard)
	stage(s, ModeStandard, 2, 2)
	addMonster(t, s, "rat", 4, 4)

	v := s.View()
	if len(v.Map) != s.layout.Height || len(v.Seen) != s.layout.Height {
		t.Fatalf("rows = %d/%d; want %d", len(v.Map), len(v.Seen), s.layout.Height)
	}
	for y, row := range v.Map {
		if len(row) != s.layout.Width {
			t.Fatalf("row %d has %d cells; want %d", y, len(row), s.layout.Width)
		}
	}
	if v.Map[2][2] != CodeFloor || v.Seen[2][2] != SeenVisible {
		t.Errorf("player cell = %q/%q", v.Map[2][2], v.Seen[2][2])
	}
	if len(v.Entities) != 2 || v.Entities[len(v.Entities)-1].ID != s.playerID {
		t.Errorf("entities = %+v; want rat then player", v.Entities)
	}
	if v.Player.HP != 30 || v.Player.Stats[component.StatAttack].Total != 6 {
		t.Errorf("player view = %+v", v.Player)
	}
}
