package render

import (
	"strings"
	"testing"

	"glyphcrawl/internal/component"
	"glyphcrawl/internal/game"
	"glyphcrawl/internal/system"

	"github.com/gdamore/tcell/v2"
)

func TestCameraRoundTrip(t *testing.T) {
	cases := []struct {
		name   string
		cx, cy int
		wx, wy int
	}{
		{"origin", 0, 0, 3, 4},
		{"centred", 20, 10, 22, 11},
		{"negative offset", 1, 1, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCamera(tc.cx, tc.cy, 80, 24)
			sx, sy, _ := c.WorldToScreen(tc.wx, tc.wy)
			if x, y := c.ScreenToWorld(sx, sy); x != tc.wx || y != tc.wy {
				t.Errorf("round trip (%d,%d) -> (%d,%d) -> (%d,%d)", tc.wx, tc.wy, sx, sy, x, y)
			}
		})
	}
}

func TestCameraFollowPinsSmallMaps(t *testing.T) {
	c := NewCamera(0, 0, 80, 24)
	c.Follow(5, 5, 30, 20)
	if c.OffsetX != 0 || c.OffsetY != 0 {
		t.Errorf("small map offset = (%d,%d), want (0,0)", c.OffsetX, c.OffsetY)
	}

	c.Follow(90, 5, 100, 20)
	if c.OffsetX != 60 {
		t.Errorf("right edge offset = %d, want 60", c.OffsetX)
	}
	if _, _, ok := c.WorldToScreen(99, 5); !ok {
		t.Error("last column should be on screen")
	}
}

func TestNamedColor(t *testing.T) {
	if NamedColor("red") != tcell.ColorRed {
		t.Error("red should resolve")
	}
	if NamedColor("no-such-color") != tcell.ColorWhite {
		t.Error("unknown names should fall back to white")
	}
}

func TestThemeFor(t *testing.T) {
	if ThemeFor(-3) != Themes[0] {
		t.Error("negative depth should use the arena theme")
	}
	if ThemeFor(99) != Themes[len(Themes)-1] {
		t.Error("deep levels should reuse the last theme")
	}
}

func testView() game.View {
	return game.View{
		Mode:      game.ModeStandard,
		State:     "playing",
		Depth:     2,
		DepthName: "Dripping Halls",
		Turn:      7,
		Width:     4,
		Height:    3,
		Map:       []string{"####", "#.>#", "####"},
		Seen:      []string{"2222", "2222", "1111"},
		Entities: []game.EntityView{
			{X: 1, Y: 1, Name: "you", Symbol: "@", Color: "gold", Order: 10},
		},
		Player: game.PlayerView{
			Name: "you", X: 1, Y: 1, HP: 17, MaxHP: 30, Level: 2, Exp: 3, NextLevel: 30, Gold: 9,
			Stats: map[component.Stat]system.Breakdown{
				component.StatAttack:  {Base: 5, Equipment: 2, Total: 7},
				component.StatDefense: {Base: 2, Total: 2},
			},
			Statuses: []game.StatusView{
				{Type: component.StatusPoison, Duration: 3, Potency: 1},
			},
			Inventory: []game.ItemView{
				{Index: 0, Name: "dagger", Symbol: "🗡", Quantity: 1, Equipped: true, Slot: component.SlotHand},
				{Index: 1, Name: "potion", Symbol: "🧪", Quantity: 2},
			},
		},
		Messages: []game.Message{
			{Text: "first", Tone: game.ToneInfo},
			{Text: "You feel sick.", Tone: game.ToneBad},
		},
	}
}

func TestStatusLine(t *testing.T) {
	line := StatusLine(testView())
	for _, want := range []string{"HP 17/30", "ATK 7", "DEF 2", "Lv 2", "Gold 9", "D2 Dripping Halls", "T7"} {
		if !strings.Contains(line, want) {
			t.Errorf("status line %q lacks %q", line, want)
		}
	}

	v := testView()
	v.Mode, v.Wave, v.Score = game.ModeArena, 3, 42
	if line := StatusLine(v); !strings.Contains(line, "Wave 3  Score 42") {
		t.Errorf("arena status line %q", line)
	}
}

func TestEffectsAndInventoryLines(t *testing.T) {
	v := testView()
	if got := EffectsLine(v.Player); got != "poison(3)" {
		t.Errorf("effects = %q", got)
	}
	lines := InventoryLines(v.Player)
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2", len(lines))
	}
	if !strings.Contains(lines[1], "1) 🗡 dagger [hand]") {
		t.Errorf("equipped line = %q", lines[1])
	}
	if !strings.Contains(lines[2], "2) 🧪 potion x2") {
		t.Errorf("stack line = %q", lines[2])
	}
}

func simScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	s.SetSize(80, 24)
	t.Cleanup(s.Fini)
	return s
}

func TestDrawPlacesPlayerAndMessages(t *testing.T) {
	s := simScreen(t)
	r := NewRenderer(s)
	r.Draw(testView(), false)

	sx, sy, ok := r.WorldToScreen(1, 1)
	if !ok {
		t.Fatal("player cell off screen")
	}
	if ch, _, _, _ := s.GetContent(sx, sy); ch != '@' {
		t.Errorf("player cell = %q, want '@'", ch)
	}

	_, h := s.Size()
	var row strings.Builder
	for x := range 20 {
		ch, _, _, _ := s.GetContent(x, h-2)
		row.WriteRune(ch)
	}
	if !strings.HasPrefix(row.String(), "You feel sick.") {
		t.Errorf("latest message row = %q", row.String())
	}
}

func TestTally(t *testing.T) {
	total, text := tally(map[string]int{"rat": 2, "goblin": 5, "bat": 2})
	if total != 9 {
		t.Errorf("total = %d", total)
	}
	if text != "goblin×5  bat×2  rat×2" {
		t.Errorf("breakdown = %q", text)
	}
}
