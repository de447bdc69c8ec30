package generate

import (
	"testing"

	"glyphcrawl/internal/gamemap"
)

func TestArenaRings(t *testing.T) {
	cases := []struct {
		wave, want int
	}{
		{0, 1}, {1, 1}, {2, 2}, {3, 3}, {7, 3},
	}
	for _, c := range cases {
		if got := ArenaRings(c.wave); got != c.want {
			t.Errorf("ArenaRings(%d) = %d, want %d", c.wave, got, c.want)
		}
	}
}

func TestArenaLayout(t *testing.T) {
	for wave := 1; wave <= 5; wave++ {
		m := Arena(40, 24, wave)
		if !m.IsWalkable(m.Start.X, m.Start.Y) {
			t.Fatalf("wave %d: start %v is not walkable", wave, m.Start)
		}
		if m.DownStairs != nil || m.UpStairs != nil {
			t.Errorf("wave %d: arena should have no stairs", wave)
		}
		if len(m.SpawnPoints) == 0 {
			t.Fatalf("wave %d: no spawn points", wave)
		}
		seen := reachable(m, m.Start)
		if len(seen) != m.FloorCount() {
			t.Errorf("wave %d: reached %d of %d floor cells", wave, len(seen), m.FloorCount())
		}
		for _, p := range m.SpawnPoints {
			if p.X != 1 && p.Y != 1 && p.X != m.Width-2 && p.Y != m.Height-2 {
				t.Errorf("wave %d: spawn point %v is not against the wall", wave, p)
			}
		}
	}
}

func TestArenaObstaclesGrowWithWave(t *testing.T) {
	walls := func(m *gamemap.Layout) int {
		n := 0
		for y := 1; y < m.Height-1; y++ {
			for x := 1; x < m.Width-1; x++ {
				if m.Kind(x, y) == gamemap.TileWall {
					n++
				}
			}
		}
		return n
	}
	w1, w3, w9 := walls(Arena(40, 24, 1)), walls(Arena(40, 24, 3)), walls(Arena(40, 24, 9))
	if !(w1 < w3) {
		t.Errorf("wave 3 should have more pillars than wave 1: %d vs %d", w3, w1)
	}
	if w3 != w9 {
		t.Errorf("rings are capped: wave 9 has %d pillars, wave 3 has %d", w9, w3)
	}
}
