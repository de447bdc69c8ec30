package component

import "glyphcrawl/internal/ecs"

const (
	CTagPlayer   ecs.ComponentType = 8
	CTagBlocking ecs.ComponentType = 9
	CTagMonster  ecs.ComponentType = 11
)

// TagPlayer marks the player-controlled entity.
type TagPlayer struct{}

func (TagPlayer) Type() ecs.ComponentType { return CTagPlayer }

// TagBlocking marks an entity that occupies its tile (blocks movement).
type TagBlocking struct{}

func (TagBlocking) Type() ecs.ComponentType { return CTagBlocking }

// TagMonster marks a hostile, scheduler-driven entity.
type TagMonster struct{}

func (TagMonster) Type() ecs.ComponentType { return CTagMonster }
