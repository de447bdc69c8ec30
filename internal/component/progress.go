package component

import "glyphcrawl/internal/ecs"

const (
	CProgress ecs.ComponentType = 13
	CReward   ecs.ComponentType = 15
)

// Progress tracks the player's experience, level and purse.
type Progress struct {
	Level int
	Exp   int
	Gold  int
	Kills int
}

func (Progress) Type() ecs.ComponentType { return CProgress }

// Reward is the experience a monster is worth when killed.
type Reward struct {
	Exp int
}

func (Reward) Type() ecs.ComponentType { return CReward }
