package component

import "glyphcrawl/internal/ecs"

const CStats ecs.ComponentType = 4

// Stat names a tracked numeric attribute.
type Stat string

const (
	StatAttack  Stat = "attack"
	StatDefense Stat = "defense"
	StatMaxHP   Stat = "maxHp"
)

// TrackedStats lists every stat the recalculation pass always materialises.
var TrackedStats = []Stat{StatAttack, StatDefense, StatMaxHP}

// Modifiers maps a stat to an integer delta.
type Modifiers map[Stat]int

// Clone returns an independent copy. A nil map clones to an empty one.
func (m Modifiers) Clone() Modifiers {
	out := make(Modifiers, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Equal reports whether both maps carry the same non-zero deltas.
func (m Modifiers) Equal(o Modifiers) bool {
	for k, v := range m {
		if o[k] != v {
			return false
		}
	}
	for k, v := range o {
		if m[k] != v {
			return false
		}
	}
	return true
}

// AddTo accumulates m into dst.
func (m Modifiers) AddTo(dst Modifiers) {
	for k, v := range m {
		dst[k] += v
	}
}

// Stats layers base values, equipment bonuses and status bonuses.
// Equipment, Status and Total are derived and only written by the
// recalculation pass in package system.
type Stats struct {
	Base      Modifiers
	Equipment Modifiers
	Status    Modifiers
	Total     Modifiers
}

// NewStats builds a Stats whose totals equal the given base values.
func NewStats(attack, defense, maxHP int) *Stats {
	base := Modifiers{StatAttack: attack, StatDefense: defense, StatMaxHP: maxHP}
	return &Stats{
		Base:      base,
		Equipment: Modifiers{},
		Status:    Modifiers{},
		Total:     base.Clone(),
	}
}

// Get returns the current total for stat.
func (s *Stats) Get(stat Stat) int { return s.Total[stat] }

func (*Stats) Type() ecs.ComponentType { return CStats }
