package component

import "glyphcrawl/internal/ecs"

const CHealth ecs.ComponentType = 2

// Health is kept in [0, Max]; Max mirrors the maxHp stat total.
type Health struct {
	Current, Max int
}

func (Health) Type() ecs.ComponentType { return CHealth }
