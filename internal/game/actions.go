package game

import (
	"errors"

	"glyphcrawl/internal/component"
	"glyphcrawl/internal/ecs"
	"glyphcrawl/internal/gamemap"
	"glyphcrawl/internal/system"
)

// perform runs the player's part of a turn.
func (s *Session) perform(in Intent) Outcome {
	switch in.Kind {
	case IntentMove:
		return s.move(in.DX, in.DY)
	case IntentWait:
		s.say(ToneInfo, "You wait.")
		return Outcome{TurnUsed: true}
	case IntentUse:
		return s.useItem(in.Index)
	case IntentEquip:
		return s.equip(in.Index)
	case IntentUnequip:
		return s.unequip(in.Slot)
	case IntentDrop:
		return s.drop(in.Index)
	case IntentDescend:
		return s.descend()
	case IntentAscend:
		return s.ascend()
	}
	return Outcome{}
}

func (s *Session) move(dx, dy int) Outcome {
	result, target := system.TryMove(s.world, s.layout, s.playerID, dx, dy)
	switch result {
	case system.MoveOK:
		s.updateFOV()
		s.pickUp()
		return Outcome{TurnUsed: true}
	case system.MoveAttack:
		if !s.world.Has(target, component.CTagMonster) {
			s.warn("Something is in the way.")
			return Outcome{}
		}
		s.attack(target)
		return Outcome{TurnUsed: true}
	}
	s.warn("You can't go that way.")
	return Outcome{}
}

// attack resolves a player-initiated exchange with a monster.
func (s *Session) attack(target ecs.EntityID) {
	name := system.NameOf(s.world, target)
	res := system.Attack(s.world, s.playerID, target)
	s.run.DamageDealt += res.Hit.Damage
	if res.Hit.Killed {
		s.say(ToneGood, "You hit the %s for %d.", name, res.Hit.Damage)
		s.handleDeath(target, "you")
		return
	}
	s.say(ToneInfo, "You hit the %s for %d.", name, res.Hit.Damage)
	if res.Proc != nil {
		s.say(ToneGood, "The %s is afflicted with %s.", name, res.Proc.Type)
	}
	if res.Counter != nil {
		s.run.DamageTaken += res.Counter.Damage
		s.say(ToneBad, "The %s strikes back for %d.", name, res.Counter.Damage)
		if res.Counter.Killed {
			s.handleDeath(s.playerID, name)
		}
	}
}

// pickUp collects the item lying under the player, if any.
func (s *Session) pickUp() {
	pos := s.playerPos()
	id := system.GroundItemAt(s.world, pos.X, pos.Y)
	if id == ecs.NilEntity {
		return
	}
	item := s.world.Get(id, component.CGroundItem).(component.GroundItem).Item
	if err := system.PickUp(s.world, s.playerID, item); err != nil {
		s.warn("You see %s here, but your pack is full.", item.Name)
		return
	}
	s.world.DestroyEntity(id)
	s.unmarkItem(pos.X, pos.Y)
	s.say(ToneGood, "You pick up %s.", item.Name)
}

func (s *Session) useItem(n int) Outcome {
	res, err := system.UseItem(s.world, s.playerID, n)
	if err != nil {
		s.itemError(err, n)
		return Outcome{}
	}
	s.run.ItemsUsed[res.Item.Name]++
	switch {
	case res.Healed > 0:
		s.say(ToneGood, "You use %s and recover %d HP.", res.Item.Name, res.Healed)
	case res.Status == nil:
		s.say(ToneInfo, "You use %s.", res.Item.Name)
	}
	if res.Status != nil {
		if res.Merged {
			s.say(ToneGood, "Your %s is renewed.", res.Status.Type)
		} else {
			s.say(ToneGood, "You feel the %s take hold.", res.Status.Type)
		}
	}
	return Outcome{TurnUsed: true}
}

func (s *Session) equip(n int) Outcome {
	inv := system.InventoryOf(s.world, s.playerID)
	if inv == nil || inv.At(n) == nil {
		s.warn("You have no item in that slot.")
		return Outcome{}
	}
	item := inv.At(n)
	if item.Equipped {
		s.warn("You are already using %s.", item.Name)
		return Outcome{}
	}
	replaced, err := system.Equip(s.world, s.playerID, item)
	if err != nil {
		s.itemError(err, n)
		return Outcome{}
	}
	if replaced != nil {
		s.say(ToneInfo, "You put away %s.", replaced.Name)
	}
	s.say(ToneInfo, "You equip %s.", item.Name)
	return Outcome{TurnUsed: true}
}

func (s *Session) unequip(slot component.Slot) Outcome {
	inv := system.InventoryOf(s.world, s.playerID)
	if inv == nil || inv.Equipped[slot] == nil {
		s.warn("Nothing is equipped there.")
		return Outcome{}
	}
	item := inv.Equipped[slot]
	system.Unequip(s.world, s.playerID, item)
	s.say(ToneInfo, "You take off %s.", item.Name)
	return Outcome{TurnUsed: true}
}

func (s *Session) drop(n int) Outcome {
	item, err := system.DropItem(s.world, s.playerID, n)
	if err != nil {
		s.itemError(err, n)
		return Outcome{}
	}
	pos := s.playerPos()
	s.placeItem(item, pos.X, pos.Y)
	s.say(ToneInfo, "You drop %s.", item.Name)
	return Outcome{TurnUsed: true}
}

func (s *Session) itemError(err error, n int) {
	name := "that"
	if inv := system.InventoryOf(s.world, s.playerID); inv != nil && inv.At(n) != nil {
		name = inv.At(n).Name
	}
	switch {
	case errors.Is(err, system.ErrNoItem):
		s.warn("You have no item in that slot.")
	case errors.Is(err, system.ErrEquipInstead):
		s.warn("Equip %s instead.", name)
	case errors.Is(err, system.ErrUnequippable):
		s.warn("You can't equip %s.", name)
	case errors.Is(err, system.ErrNotUsable):
		s.warn("You can't use %s.", name)
	default:
		s.warn("You can't do that.")
	}
}

func (s *Session) descend() Outcome {
	if s.mode == ModeArena {
		s.warn("There is no way out of the arena.")
		return Outcome{}
	}
	pos := s.playerPos()
	if s.layout.Kind(pos.X, pos.Y) != gamemap.TileStairsDown {
		s.warn("There are no stairs down here.")
		return Outcome{}
	}
	if s.depth >= MaxDepth {
		s.warn("There is nowhere further to descend.")
		return Outcome{}
	}
	if err := s.prepareLevel(s.depth+1, false); err != nil {
		s.log.WithError(err).Error("descend failed")
		s.warn("The stairs are blocked.")
		return Outcome{}
	}
	return Outcome{TurnUsed: true, LevelChanged: true}
}

func (s *Session) ascend() Outcome {
	pos := s.playerPos()
	if s.mode == ModeArena || s.depth <= 1 || s.layout.Kind(pos.X, pos.Y) != gamemap.TileStairsUp {
		s.warn("There are no stairs up here.")
		return Outcome{}
	}
	if err := s.prepareLevel(s.depth-1, true); err != nil {
		s.log.WithError(err).Error("ascend failed")
		s.warn("The stairs are blocked.")
		return Outcome{}
	}
	return Outcome{TurnUsed: true, LevelChanged: true}
}
