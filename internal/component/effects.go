package component

import "glyphcrawl/internal/ecs"

const CEffects ecs.ComponentType = 7

// StatusType tags a status effect. The set is open: unknown types tick
// without a numeric effect.
type StatusType string

const (
	StatusPoison       StatusType = "poison"
	StatusRegeneration StatusType = "regeneration"
	StatusStrength     StatusType = "strength"
	StatusSundered     StatusType = "sundered"
)

// Permanent is the Duration sentinel for effects that never expire.
const Permanent = -1

// StatusEffect is a timed modifier living on an entity.
// Modifiers is the applied snapshot owned by this effect; it is never shared
// with a catalog template.
type StatusEffect struct {
	Type      StatusType
	Duration  int // turns remaining, or Permanent
	Potency   int
	Modifiers Modifiers
	Stackable bool
	Source    string
}

// IsPermanent reports whether the effect never expires.
func (e *StatusEffect) IsPermanent() bool { return e.Duration == Permanent }

// StatusTemplate describes an effect before it is applied. Duration is
// normalised on application: Permanent or +Inf never expires, otherwise it
// rounds to a capped integer of at least 1 (NaN and negatives become 1).
type StatusTemplate struct {
	Type      StatusType
	Duration  float64
	Permanent bool
	Potency   int
	Modifiers Modifiers
	Stackable bool
	Source    string
}

// Clone deep-copies the template.
func (t *StatusTemplate) Clone() *StatusTemplate {
	if t == nil {
		return nil
	}
	c := *t
	c.Modifiers = t.Modifiers.Clone()
	return &c
}

// Effects lists active statuses in application order.
type Effects struct {
	Active []*StatusEffect
}

func (*Effects) Type() ecs.ComponentType { return CEffects }
