package render

import (
	"fmt"
	"slices"
	"strings"

	"glyphcrawl/internal/component"
	"glyphcrawl/internal/game"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// HUDMessages is how many recent messages the HUD shows.
const HUDMessages = 3

func (r *Renderer) drawHUD(v game.View) {
	sw, sh := r.screen.Size()
	hudY := sh - HUDRows
	r.drawHLine(hudY, tcell.ColorGray)

	white := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	r.putText(0, hudY+1, runewidth.Truncate(StatusLine(v), sw, "…"), white)
	r.putText(0, hudY+2, runewidth.Truncate(EffectsLine(v.Player), sw, "…"),
		tcell.StyleDefault.Foreground(tcell.ColorLightCyan))

	msgs := v.Messages[max(0, len(v.Messages)-HUDMessages):]
	for i, m := range msgs {
		style := tcell.StyleDefault.Foreground(ToneColor(m.Tone))
		r.putText(0, hudY+3+i, runewidth.Truncate(m.Text, sw, "…"), style)
	}
}

// StatusLine summarises the player and the level on one line.
func StatusLine(v game.View) string {
	p := v.Player
	where := fmt.Sprintf("D%d %s", v.Depth, v.DepthName)
	if v.Mode == game.ModeArena {
		where = fmt.Sprintf("Wave %d  Score %d", v.Wave, v.Score)
	}
	return fmt.Sprintf("HP %d/%d  ATK %d  DEF %d  Lv %d (%d/%d)  Gold %d  %s  T%d",
		p.HP, p.MaxHP,
		p.Stats[component.StatAttack].Total, p.Stats[component.StatDefense].Total,
		p.Level, p.Exp, p.NextLevel, p.Gold, where, v.Turn)
}

// EffectsLine lists active statuses with their remaining turns.
func EffectsLine(p game.PlayerView) string {
	if len(p.Statuses) == 0 {
		return ""
	}
	parts := make([]string, 0, len(p.Statuses))
	for _, s := range p.Statuses {
		if s.Permanent {
			parts = append(parts, string(s.Type))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s(%d)", s.Type, s.Duration))
	}
	return strings.Join(parts, " ")
}

// InventoryLines is the text of the inventory panel. Items are keyed by
// their index so the input layer can map digits to them.
func InventoryLines(p game.PlayerView) []string {
	lines := []string{"Inventory  [u]se [e]quip [d]rop [t]ake off  [Esc] close"}
	if len(p.Inventory) == 0 {
		return append(lines, "  (empty)")
	}
	for _, it := range p.Inventory {
		line := fmt.Sprintf("  %d) %s %s", it.Index+1, it.Symbol, it.Name)
		if it.Quantity > 1 {
			line += fmt.Sprintf(" x%d", it.Quantity)
		}
		if it.Equipped {
			line += fmt.Sprintf(" [%s]", it.Slot)
		}
		lines = append(lines, line)
	}
	return lines
}

func (r *Renderer) drawInventory(v game.View) {
	lines := InventoryLines(v.Player)
	width := 0
	for _, l := range lines {
		width = max(width, runewidth.StringWidth(l))
	}
	sw, sh := r.screen.Size()
	width = min(width+2, sw)
	top := max(0, (sh-HUDRows-len(lines))/2)
	left := max(0, (sw-width)/2)

	bg := tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
	for i, l := range lines {
		for x := left; x < left+width; x++ {
			r.screen.SetContent(x, top+i, ' ', nil, bg)
		}
		r.putText(left+1, top+i, runewidth.Truncate(l, width-1, "…"), bg)
	}
}

// DrawEndScreen shows the run summary after death. The caller polls for
// the next key.
func (r *Renderer) DrawEndScreen(sum game.RunSummary) {
	r.screen.Clear()
	sw, _ := r.screen.Size()

	white := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	gold := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	dim := tcell.StyleDefault.Foreground(tcell.ColorLightYellow)
	green := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	red := tcell.StyleDefault.Foreground(tcell.ColorRed)

	label := func(y int, l, v string) {
		r.putText(2, y, l, dim)
		r.putText(22, y, v, white)
	}

	y := 1
	r.drawHLine(y, tcell.ColorGray)
	y += 2
	r.putText(2, y, "THE MINE CLAIMS YOU", gold)
	r.putText(max(0, sw-9), y, "[DEFEAT]", red)
	y += 2

	if sum.Mode == game.ModeArena {
		label(y, "Wave Reached:", fmt.Sprint(sum.Wave))
		y++
		label(y, "Score:", fmt.Sprint(sum.Score))
	} else {
		label(y, "Depth Reached:", fmt.Sprint(sum.DepthReached))
	}
	y++
	label(y, "Level:", fmt.Sprint(sum.Level))
	y++
	label(y, "Gold:", fmt.Sprint(sum.Gold))
	y++
	label(y, "Turns Survived:", fmt.Sprint(sum.Turns))
	y += 2

	total, breakdown := tally(sum.Kills)
	label(y, "Enemies Slain:", fmt.Sprint(total))
	y++
	if breakdown != "" {
		r.putText(4, y, runewidth.Truncate(breakdown, max(0, sw-6), "…"), dim)
		y++
	}
	y++
	items, _ := tally(sum.ItemsUsed)
	label(y, "Items Used:", fmt.Sprint(items))
	y++
	label(y, "Damage Dealt:", fmt.Sprint(sum.DamageDealt))
	y++
	label(y, "Damage Taken:", fmt.Sprint(sum.DamageTaken))
	y += 2
	if sum.CauseOfDeath != "" {
		label(y, "Killed By:", sum.CauseOfDeath)
		y += 2
	}
	r.drawHLine(y, tcell.ColorGray)
	y += 2
	r.putText(2, y, "[R] Try Again", green)
	r.putText(18, y, "[Q] Quit", red)
	r.screen.Show()
}

// tally sums counts and formats them highest first.
func tally(counts map[string]int) (int, string) {
	type entry struct {
		name  string
		count int
	}
	entries := make([]entry, 0, len(counts))
	total := 0
	for name, n := range counts {
		entries = append(entries, entry{name, n})
		total += n
	}
	slices.SortFunc(entries, func(a, b entry) int {
		if a.count != b.count {
			return b.count - a.count
		}
		return strings.Compare(a.name, b.name)
	})
	var sb strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&sb, "%s×%d  ", e.name, e.count)
	}
	return total, strings.TrimSpace(sb.String())
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}
