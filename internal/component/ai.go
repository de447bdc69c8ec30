package component

import "glyphcrawl/internal/ecs"

const CAI ecs.ComponentType = 5

// AIBehavior describes how a monster acts each turn.
type AIBehavior uint8

const (
	BehaviorChase      AIBehavior = iota // move toward player, attack if adjacent
	BehaviorStationary                   // never moves, attacks if adjacent
)

type AI struct {
	Behavior   AIBehavior
	SightRange int
}

func (AI) Type() ecs.ComponentType { return CAI }
