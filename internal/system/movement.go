package system

import (
	"glyphcrawl/internal/component"
	"glyphcrawl/internal/ecs"
	"glyphcrawl/internal/gamemap"
)

// MoveResult describes the outcome of a TryMove call.
type MoveResult uint8

const (
	MoveOK      MoveResult = iota // position updated
	MoveBlocked                   // wall or out-of-bounds
	MoveAttack                    // bumped a blocking entity
)

// TryMove attempts to move entity id by (dx, dy) on m.
// Returns the outcome and, for MoveAttack, the entity that was bumped.
func TryMove(w *ecs.World, m *gamemap.Layout, id ecs.EntityID, dx, dy int) (MoveResult, ecs.EntityID) {
	posComp := w.Get(id, component.CPosition)
	if posComp == nil {
		return MoveBlocked, ecs.NilEntity
	}
	pos := posComp.(component.Position)
	nx, ny := pos.X+dx, pos.Y+dy

	if other := BlockerAt(w, nx, ny, id); other != ecs.NilEntity {
		return MoveAttack, other
	}
	if !m.IsWalkable(nx, ny) {
		return MoveBlocked, ecs.NilEntity
	}
	w.Add(id, component.Position{X: nx, Y: ny})
	return MoveOK, ecs.NilEntity
}

// BlockerAt returns the blocking entity standing on (x, y), ignoring skip.
func BlockerAt(w *ecs.World, x, y int, skip ecs.EntityID) ecs.EntityID {
	for _, other := range w.Query(component.CTagBlocking, component.CPosition) {
		if other == skip {
			continue
		}
		p := w.Get(other, component.CPosition).(component.Position)
		if p.X == x && p.Y == y {
			return other
		}
	}
	return ecs.NilEntity
}

// GroundItemAt returns the first ground item entity on (x, y).
func GroundItemAt(w *ecs.World, x, y int) ecs.EntityID {
	for _, id := range w.Query(component.CGroundItem, component.CPosition) {
		p := w.Get(id, component.CPosition).(component.Position)
		if p.X == x && p.Y == y {
			return id
		}
	}
	return ecs.NilEntity
}
