package system

import (
	"math/rand"

	"glyphcrawl/internal/component"
	"glyphcrawl/internal/ecs"
	"glyphcrawl/internal/logger"

	"github.com/sirupsen/logrus"
)

// Per-level stat growth.
const (
	LevelAttackGain  = 1
	LevelDefenseGain = 1
	LevelMaxHPGain   = 5
)

// ExpToLevel is the experience needed to leave level.
func ExpToLevel(level int) int { return level * 10 }

// RewardResult reports what a kill paid out.
type RewardResult struct {
	Exp    int
	Gold   int
	Levels []int // levels reached, in order
}

// GoldFor rolls a purse scaled by the experience value: [exp, 2*exp].
func GoldFor(rng *rand.Rand, exp int) int {
	if exp <= 0 {
		return 0
	}
	return exp + rng.Intn(exp+1)
}

// GrantExperience adds exp and gold to the player's progress and applies
// any level-ups that follow.
func GrantExperience(w *ecs.World, rng *rand.Rand, id ecs.EntityID, exp int) RewardResult {
	c := w.Get(id, component.CProgress)
	if c == nil {
		return RewardResult{}
	}
	prog := c.(component.Progress)
	res := RewardResult{Exp: exp, Gold: GoldFor(rng, exp)}
	prog.Exp += exp
	prog.Gold += res.Gold
	prog.Kills++
	w.Add(id, prog)
	res.Levels = CheckLevelUp(w, id)
	return res
}

// CheckLevelUp raises the level while exp >= level*10. Each level consumes
// its threshold, grows the base stats by fixed amounts and fully heals.
func CheckLevelUp(w *ecs.World, id ecs.EntityID) []int {
	c := w.Get(id, component.CProgress)
	st := statsOf(w, id)
	if c == nil || st == nil {
		return nil
	}
	prog := c.(component.Progress)
	var levels []int
	for prog.Exp >= ExpToLevel(prog.Level) {
		prog.Exp -= ExpToLevel(prog.Level)
		prog.Level++
		st.Base[component.StatAttack] += LevelAttackGain
		st.Base[component.StatDefense] += LevelDefenseGain
		st.Base[component.StatMaxHP] += LevelMaxHPGain
		levels = append(levels, prog.Level)
	}
	if len(levels) == 0 {
		return nil
	}
	w.Add(id, prog)
	RecalculateStats(w, id)
	if hp, ok := HealthOf(w, id); ok {
		hp.Current = hp.Max
		w.Add(id, hp)
	}
	logger.Log.WithFields(logrus.Fields{"entity": id, "level": prog.Level}).Info("level up")
	return levels
}
