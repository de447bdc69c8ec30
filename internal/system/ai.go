package system

import (
	"math"

	"glyphcrawl/internal/component"
	"glyphcrawl/internal/ecs"
	"glyphcrawl/internal/gamemap"
)

// MonsterAction reports what a monster did on its turn.
type MonsterAction struct {
	Moved    bool
	Attacked bool
	Hit      HitResult
}

// MonsterTurn runs one turn for the AI-controlled entity id against target.
// Chasers step toward a target within sight range and strike when adjacent;
// stationary monsters only strike. Monster blows never trigger
// counter-attacks or weapon procs.
func MonsterTurn(w *ecs.World, m *gamemap.Layout, id, target ecs.EntityID) MonsterAction {
	aiComp := w.Get(id, component.CAI)
	posComp := w.Get(id, component.CPosition)
	tposComp := w.Get(target, component.CPosition)
	if aiComp == nil || posComp == nil || tposComp == nil || !w.Alive(target) {
		return MonsterAction{}
	}
	ai := aiComp.(component.AI)
	pos := posComp.(component.Position)
	tpos := tposComp.(component.Position)

	dx := tpos.X - pos.X
	dy := tpos.Y - pos.Y
	if math.Hypot(float64(dx), float64(dy)) > float64(ai.SightRange) {
		return MonsterAction{}
	}
	if abs(dx) <= 1 && abs(dy) <= 1 {
		return MonsterAction{Attacked: true, Hit: Strike(w, id, target)}
	}
	if ai.Behavior == component.BehaviorStationary {
		return MonsterAction{}
	}

	stepX, stepY := sign(dx), sign(dy)
	for _, step := range [][2]int{{stepX, stepY}, {stepX, 0}, {0, stepY}} {
		if step[0] == 0 && step[1] == 0 {
			continue
		}
		if res, _ := TryMove(w, m, id, step[0], step[1]); res == MoveOK {
			return MonsterAction{Moved: true}
		}
	}
	return MonsterAction{}
}

func sign(v int) int {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
