// Package input turns terminal key events into session intents.
package input

import (
	"unicode"

	"glyphcrawl/internal/game"

	"github.com/gdamore/tcell/v2"
)

// Command is what a key press asks the front end to do.
type Command uint8

const (
	CmdNone Command = iota
	CmdIntent
	CmdInventory // toggle the inventory panel
	CmdQuit
)

// Verb is the inventory action waiting for an item number.
type Verb uint8

const (
	VerbNone Verb = iota
	VerbUse
	VerbEquip
	VerbDrop
	VerbUnequip
)

var moves = map[rune][2]int{
	'k': {0, -1}, 'j': {0, 1}, 'l': {1, 0}, 'h': {-1, 0},
	'y': {-1, -1}, 'u': {1, -1}, 'b': {-1, 1}, 'n': {1, 1},
}

// Mapper holds the small amount of modal state key handling needs: whether
// the inventory is open and which verb awaits an item number.
type Mapper struct {
	inventory bool
	verb      Verb
}

// InventoryOpen reports whether the inventory panel should be drawn.
func (m *Mapper) InventoryOpen() bool { return m.inventory }

// Pending returns the verb awaiting an item number.
func (m *Mapper) Pending() Verb { return m.verb }

// Key maps one key event. p is the player's current view, used to resolve
// item numbers into slots.
func (m *Mapper) Key(ev *tcell.EventKey, p game.PlayerView) (Command, game.Intent) {
	if m.inventory {
		return m.inventoryKey(ev, p)
	}

	switch ev.Key() {
	case tcell.KeyUp:
		return CmdIntent, game.Move(0, -1)
	case tcell.KeyDown:
		return CmdIntent, game.Move(0, 1)
	case tcell.KeyRight:
		return CmdIntent, game.Move(1, 0)
	case tcell.KeyLeft:
		return CmdIntent, game.Move(-1, 0)
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return CmdQuit, game.Intent{}
	case tcell.KeyRune:
	default:
		return CmdNone, game.Intent{}
	}

	r := ev.Rune()
	if d, ok := moves[unicode.ToLower(r)]; ok {
		return CmdIntent, game.Move(d[0], d[1])
	}
	switch r {
	case '.', '5':
		return CmdIntent, game.Wait()
	case '>':
		return CmdIntent, game.Descend()
	case '<':
		return CmdIntent, game.Ascend()
	case 'i', 'I':
		m.inventory = true
		return CmdInventory, game.Intent{}
	case 'q', 'Q':
		return CmdQuit, game.Intent{}
	}
	return CmdNone, game.Intent{}
}

func (m *Mapper) inventoryKey(ev *tcell.EventKey, p game.PlayerView) (Command, game.Intent) {
	if ev.Key() == tcell.KeyEscape || (ev.Key() == tcell.KeyRune && (ev.Rune() == 'i' || ev.Rune() == 'I')) {
		m.close()
		return CmdInventory, game.Intent{}
	}
	if ev.Key() != tcell.KeyRune {
		return CmdNone, game.Intent{}
	}

	switch r := ev.Rune(); {
	case r == 'u':
		m.verb = VerbUse
	case r == 'e':
		m.verb = VerbEquip
	case r == 'd':
		m.verb = VerbDrop
	case r == 't':
		m.verb = VerbUnequip
	case r >= '1' && r <= '9':
		return m.pick(int(r-'1'), p)
	}
	return CmdNone, game.Intent{}
}

// pick applies the pending verb to item n. Using an item without choosing
// a verb first defaults to use for consumables and equip for gear.
func (m *Mapper) pick(n int, p game.PlayerView) (Command, game.Intent) {
	if n >= len(p.Inventory) {
		return CmdNone, game.Intent{}
	}
	item := p.Inventory[n]
	verb := m.verb
	if verb == VerbNone {
		switch {
		case item.Equipped:
			verb = VerbUnequip
		case item.Slot != "":
			verb = VerbEquip
		default:
			verb = VerbUse
		}
	}
	m.close()

	switch verb {
	case VerbEquip:
		return CmdIntent, game.Equip(item.Index)
	case VerbDrop:
		return CmdIntent, game.Drop(item.Index)
	case VerbUnequip:
		return CmdIntent, game.Unequip(item.Slot)
	}
	return CmdIntent, game.UseItem(item.Index)
}

func (m *Mapper) close() {
	m.inventory = false
	m.verb = VerbNone
}
