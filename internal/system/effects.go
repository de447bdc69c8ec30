package system

import (
	"math"
	"slices"

	"glyphcrawl/internal/component"
	"glyphcrawl/internal/ecs"
	"glyphcrawl/internal/logger"

	"github.com/sirupsen/logrus"
)

// StatusEventKind classifies what happened to a status during resolution.
type StatusEventKind uint8

const (
	StatusTicked  StatusEventKind = iota // per-turn behavior ran
	StatusExpired                        // duration reached zero, effect removed
)

// StatusEvent is one observable step of ResolveStatuses.
type StatusEvent struct {
	Kind   StatusEventKind
	Effect component.StatusEffect // copy at the time of the event
	Amount int                    // HP lost (poison) or gained (regeneration)
}

// StatusReport summarises one ResolveStatuses pass.
type StatusReport struct {
	Events []StatusEvent
	Alive  bool
	// FatalCause is the first effect that brought HP to zero, if any.
	FatalCause *component.StatusEffect
}

// MaxStatusDuration caps finite durations.
const MaxStatusDuration = 1 << 20

// normalizeDuration turns a template duration into turns remaining. Only
// the Permanent flag or +Inf yields Permanent; negative, tiny and NaN
// durations last one turn.
func normalizeDuration(t *component.StatusTemplate) int {
	if t.Permanent || math.IsInf(t.Duration, 1) {
		return component.Permanent
	}
	if math.IsNaN(t.Duration) || t.Duration < 1 {
		return 1
	}
	if t.Duration >= MaxStatusDuration {
		return MaxStatusDuration
	}
	return max(1, int(math.Round(t.Duration)))
}

// ApplyStatus adds a status built from tmpl to the entity and returns the
// live effect. A non-stackable status merges into an existing non-stackable
// one of the same type: the longer duration wins (permanent dominates), the
// higher potency wins, and modifiers are replaced only when they differ.
// merged reports whether that happened.
//
// A nil template or one without a type is ignored and yields nil.
func ApplyStatus(w *ecs.World, id ecs.EntityID, tmpl *component.StatusTemplate) (eff *component.StatusEffect, merged bool) {
	if tmpl == nil || tmpl.Type == "" || !w.Alive(id) {
		return nil, false
	}
	effects := EffectsOf(w, id)
	if effects == nil {
		effects = &component.Effects{}
		w.Add(id, effects)
	}
	duration := normalizeDuration(tmpl)

	if !tmpl.Stackable {
		for _, e := range effects.Active {
			if e.Type != tmpl.Type || e.Stackable {
				continue
			}
			switch {
			case e.IsPermanent():
			case duration == component.Permanent:
				e.Duration = component.Permanent
			case duration > e.Duration:
				e.Duration = duration
			}
			e.Potency = max(e.Potency, tmpl.Potency)
			if !e.Modifiers.Equal(tmpl.Modifiers) {
				e.Modifiers = tmpl.Modifiers.Clone()
			}
			if tmpl.Source != "" {
				e.Source = tmpl.Source
			}
			RecalculateStats(w, id)
			logger.Log.WithFields(logrus.Fields{
				"entity": id, "status": e.Type, "duration": e.Duration, "potency": e.Potency,
			}).Debug("status merged")
			return e, true
		}
	}

	eff = &component.StatusEffect{
		Type:      tmpl.Type,
		Duration:  duration,
		Potency:   tmpl.Potency,
		Modifiers: tmpl.Modifiers.Clone(),
		Stackable: tmpl.Stackable,
		Source:    tmpl.Source,
	}
	effects.Active = append(effects.Active, eff)
	RecalculateStats(w, id)
	logger.Log.WithFields(logrus.Fields{
		"entity": id, "status": eff.Type, "duration": eff.Duration, "potency": eff.Potency,
	}).Debug("status applied")
	return eff, false
}

// RemoveStatus detaches eff from the entity and reverses its modifiers.
// It reports false when eff is not active on the entity.
func RemoveStatus(w *ecs.World, id ecs.EntityID, eff *component.StatusEffect) bool {
	effects := EffectsOf(w, id)
	if effects == nil || eff == nil {
		return false
	}
	i := slices.Index(effects.Active, eff)
	if i < 0 {
		return false
	}
	effects.Active = slices.Delete(effects.Active, i, i+1)
	RecalculateStats(w, id)
	return true
}

// ClearStatuses removes every active status.
func ClearStatuses(w *ecs.World, id ecs.EntityID) {
	if effects := EffectsOf(w, id); effects != nil {
		effects.Active = nil
		RecalculateStats(w, id)
	}
}

// FindStatus returns the first active effect of type t, or nil.
func FindStatus(w *ecs.World, id ecs.EntityID, t component.StatusType) *component.StatusEffect {
	effects := EffectsOf(w, id)
	if effects == nil {
		return nil
	}
	for _, e := range effects.Active {
		if e.Type == t {
			return e
		}
	}
	return nil
}

// afterTick runs once per ticked effect, before expiry is checked.
var afterTick = func(*ecs.World, ecs.EntityID, *component.StatusEffect) {}

// ResolveStatuses runs one end-of-turn pass over the entity's statuses.
// It walks a snapshot of the list taken on entry, so effects added while
// resolving wait for the next pass and effects removed meanwhile are
// skipped. Processing stops as soon as the entity dies.
func ResolveStatuses(w *ecs.World, id ecs.EntityID) StatusReport {
	report := StatusReport{Alive: true}
	if hp, ok := HealthOf(w, id); ok && hp.Current <= 0 {
		report.Alive = false
		return report
	}
	effects := EffectsOf(w, id)
	if effects == nil || len(effects.Active) == 0 {
		return report
	}

	snapshot := slices.Clone(effects.Active)
	for _, e := range snapshot {
		if !slices.Contains(effects.Active, e) {
			continue
		}

		amount := 0
		switch e.Type {
		case component.StatusPoison:
			amount = max(1, e.Potency)
			Damage(w, id, amount)
		case component.StatusRegeneration:
			amount = Heal(w, id, max(1, e.Potency))
		}
		if !e.IsPermanent() {
			e.Duration--
		}
		report.Events = append(report.Events, StatusEvent{Kind: StatusTicked, Effect: *e, Amount: amount})
		afterTick(w, id, e)

		hp, hasHP := HealthOf(w, id)
		if hasHP && hp.Current <= 0 && report.FatalCause == nil {
			report.FatalCause = e
		}
		if !e.IsPermanent() && e.Duration <= 0 {
			RemoveStatus(w, id, e)
			report.Events = append(report.Events, StatusEvent{Kind: StatusExpired, Effect: *e})
		}
		if hasHP && hp.Current <= 0 {
			report.Alive = false
			logger.Log.WithFields(logrus.Fields{"entity": id, "cause": e.Type}).Debug("status was fatal")
			break
		}
	}
	return report
}
