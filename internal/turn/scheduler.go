// Package turn implements the round-robin turn scheduler.
//
// The scheduler is locked while it waits for the human player's input.
// Once the player's action resolves, Round unlocks it, lets every other
// scheduled entity act once and locks it again.
package turn

import (
	"slices"

	"glyphcrawl/internal/ecs"
	"glyphcrawl/internal/logger"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
)

// Scheduler orders entity turns.
type Scheduler struct {
	human   ecs.EntityID
	order   []ecs.EntityID
	pending []ecs.EntityID
	members mapset.Set[ecs.EntityID]
	moved   mapset.Set[ecs.EntityID]
	locked  bool
	inRound bool
	rounds  int
}

// New returns a locked scheduler whose lock holder is human.
func New(human ecs.EntityID) *Scheduler {
	s := &Scheduler{
		human:   human,
		members: mapset.New[ecs.EntityID](),
		moved:   mapset.New[ecs.EntityID](),
		locked:  true,
	}
	s.Add(human)
	return s
}

// Add schedules id. Entities added during a round first act next round.
// Adding a scheduled entity is a no-op.
func (s *Scheduler) Add(id ecs.EntityID) {
	if id == ecs.NilEntity || s.members.Has(id) {
		return
	}
	s.members.Put(id)
	if s.inRound {
		s.pending = append(s.pending, id)
		return
	}
	s.order = append(s.order, id)
}

// Remove unschedules id and reports whether it was scheduled. An entity
// removed mid-round is skipped when its slot comes up.
func (s *Scheduler) Remove(id ecs.EntityID) bool {
	if !s.members.Has(id) {
		return false
	}
	s.members.Remove(id)
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	if i := slices.Index(s.pending, id); i >= 0 {
		s.pending = slices.Delete(s.pending, i, i+1)
	}
	return true
}

// Contains reports whether id is scheduled.
func (s *Scheduler) Contains(id ecs.EntityID) bool { return s.members.Has(id) }

// Len returns the number of scheduled entities, pending ones included.
func (s *Scheduler) Len() int { return s.members.Size() }

// Entities returns the current round order followed by pending entities.
func (s *Scheduler) Entities() []ecs.EntityID {
	out := slices.Clone(s.order)
	return append(out, s.pending...)
}

// Clear drops everything except the human.
func (s *Scheduler) Clear() {
	s.order = s.order[:0]
	s.pending = s.pending[:0]
	s.members = mapset.New[ecs.EntityID]()
	s.Add(s.human)
}

func (s *Scheduler) Lock()        { s.locked = true }
func (s *Scheduler) Unlock()      { s.locked = false }
func (s *Scheduler) Locked() bool { return s.locked }

// Rounds returns how many rounds have completed.
func (s *Scheduler) Rounds() int { return s.rounds }

// Round unlocks the scheduler and gives every non-human entity one turn,
// in the order they were scheduled. It iterates a snapshot taken on entry
// and marks each entity moved before calling act, so an entity never acts
// twice in a round and entities removed mid-round are skipped. act returns
// false to stop the round early (the game ended). The scheduler is locked
// again on return. It returns the number of entities that acted.
//
// A nested call while a round is running does nothing.
func (s *Scheduler) Round(act func(id ecs.EntityID) bool) int {
	if s.inRound {
		return 0
	}
	s.Unlock()
	s.inRound = true
	s.moved = mapset.New[ecs.EntityID]()

	acted := 0
	for _, id := range slices.Clone(s.order) {
		if id == s.human || !s.members.Has(id) || s.moved.Has(id) {
			continue
		}
		s.moved.Put(id)
		acted++
		if !act(id) {
			break
		}
	}

	s.inRound = false
	s.order = append(s.order, s.pending...)
	s.pending = s.pending[:0]
	s.rounds++
	s.Lock()
	logger.Log.WithFields(logrus.Fields{"round": s.rounds, "acted": acted, "scheduled": s.Len()}).Debug("round complete")
	return acted
}
