package game

import (
	"fmt"

	"glyphcrawl/internal/component"
)

// IntentKind names a player action.
type IntentKind string

const (
	IntentMove    IntentKind = "move"
	IntentWait    IntentKind = "wait"
	IntentUse     IntentKind = "use"
	IntentEquip   IntentKind = "equip"
	IntentUnequip IntentKind = "unequip"
	IntentDrop    IntentKind = "drop"
	IntentDescend IntentKind = "descend"
	IntentAscend  IntentKind = "ascend"
)

// Intent is one discrete player request. Index addresses the inventory,
// Slot the equipment.
type Intent struct {
	Kind  IntentKind     `json:"kind"`
	DX    int            `json:"dx,omitempty"`
	DY    int            `json:"dy,omitempty"`
	Index int            `json:"index,omitempty"`
	Slot  component.Slot `json:"slot,omitempty"`
}

func Move(dx, dy int) Intent             { return Intent{Kind: IntentMove, DX: dx, DY: dy} }
func Wait() Intent                       { return Intent{Kind: IntentWait} }
func UseItem(n int) Intent               { return Intent{Kind: IntentUse, Index: n} }
func Equip(n int) Intent                 { return Intent{Kind: IntentEquip, Index: n} }
func Unequip(slot component.Slot) Intent { return Intent{Kind: IntentUnequip, Slot: slot} }
func Drop(n int) Intent                  { return Intent{Kind: IntentDrop, Index: n} }
func Descend() Intent                    { return Intent{Kind: IntentDescend} }
func Ascend() Intent                     { return Intent{Kind: IntentAscend} }

// Validate rejects intents that cannot be expressed in play: unknown kinds
// and moves that are not a single step. Out-of-range inventory indexes are
// not malformed; they are narrated as invalid actions.
func (in Intent) Validate() error {
	switch in.Kind {
	case IntentMove:
		if in.DX < -1 || in.DX > 1 || in.DY < -1 || in.DY > 1 || (in.DX == 0 && in.DY == 0) {
			return fmt.Errorf("%w: move (%d,%d)", ErrInvalidIntent, in.DX, in.DY)
		}
	case IntentWait, IntentUse, IntentEquip, IntentDrop, IntentDescend, IntentAscend:
	case IntentUnequip:
		if in.Slot == component.SlotNone {
			return fmt.Errorf("%w: unequip without slot", ErrInvalidIntent)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidIntent, in.Kind)
	}
	return nil
}

// Outcome reports what an intent did.
type Outcome struct {
	TurnUsed     bool `json:"turnUsed"`
	LevelChanged bool `json:"levelChanged"`
	GameOver     bool `json:"gameOver"`
}
