package system

import (
	"glyphcrawl/internal/component"
	"glyphcrawl/internal/ecs"
	"glyphcrawl/internal/logger"

	"github.com/sirupsen/logrus"
)

// HitResult holds the outcome of one blow.
type HitResult struct {
	Attacker ecs.EntityID
	Defender ecs.EntityID
	Damage   int
	HPAfter  int
	Killed   bool
}

// AttackResult holds the outcome of a full exchange started by Attack.
type AttackResult struct {
	Hit HitResult
	// Proc is the status applied by the attacker's weapon, if any.
	Proc *component.StatusEffect
	// Counter is the defender's retaliation, nil when none happened.
	Counter *HitResult
}

// DamageFor is the damage formula: max(1, attack - defense).
func DamageFor(attack, defense int) int {
	return max(1, attack-defense)
}

// Strike resolves a single blow from attacker against defender using their
// current stat totals. It never removes the defender; death handling is the
// caller's job.
func Strike(w *ecs.World, attacker, defender ecs.EntityID) HitResult {
	dmg := DamageFor(StatOf(w, attacker, component.StatAttack), StatOf(w, defender, component.StatDefense))
	hp := Damage(w, defender, dmg)
	res := HitResult{Attacker: attacker, Defender: defender, Damage: dmg, HPAfter: hp, Killed: hp <= 0}
	logger.Log.WithFields(logrus.Fields{
		"attacker": attacker, "defender": defender, "damage": dmg, "hp": hp,
	}).Debug("strike")
	return res
}

// Attack resolves an exchange. If the defender survives and the attacker is
// the player, the equipped weapon's on-hit status is applied and then the
// defender strikes back. A killing blow ends the exchange immediately.
func Attack(w *ecs.World, attacker, defender ecs.EntityID) AttackResult {
	res := AttackResult{Hit: Strike(w, attacker, defender)}
	if res.Hit.Killed || !w.Has(attacker, component.CTagPlayer) {
		return res
	}
	if inv := InventoryOf(w, attacker); inv != nil {
		if weapon := inv.Weapon(); weapon != nil && weapon.OnHit != nil {
			tmpl := weapon.OnHit.Clone()
			if tmpl.Source == "" {
				tmpl.Source = weapon.Name
			}
			res.Proc, _ = ApplyStatus(w, defender, tmpl)
		}
	}
	counter := Strike(w, defender, attacker)
	res.Counter = &counter
	return res
}
