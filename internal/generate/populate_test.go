package generate

import (
	"math/rand"
	"testing"

	"glyphcrawl/internal/gamemap"

	"github.com/zyedidia/generic/mapset"
)

func TestSpawnWeight(t *testing.T) {
	cases := []struct {
		name  string
		spawn Spawn
		depth int
		want  int
	}{
		{"below window", Spawn{MinDepth: 3, BaseWeight: 5}, 2, 0},
		{"above window", Spawn{MinDepth: 1, MaxDepth: 4, BaseWeight: 5}, 5, 0},
		{"open ended", Spawn{MinDepth: 1, BaseWeight: 5}, 50, 5},
		{"scales up", Spawn{MinDepth: 2, BaseWeight: 4, DepthScaling: 2}, 5, 10},
		{"scales down to floor", Spawn{MinDepth: 1, BaseWeight: 4, DepthScaling: -3}, 6, 1},
		{"zero base still one", Spawn{MinDepth: 1}, 1, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.spawn.Weight(tc.depth); got != tc.want {
				t.Errorf("Weight(%d) = %d, want %d", tc.depth, got, tc.want)
			}
		})
	}
}

func TestPickWeightedAllZero(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	_, ok := PickWeighted(rng, []int{0, 0, -3}, func(w int) int { return w })
	if ok {
		t.Error("all non-positive weights should pick nothing")
	}
	if _, ok := PickWeighted(rng, nil, func(w int) int { return w }); ok {
		t.Error("empty input should pick nothing")
	}
}

func TestPickWeightedDistribution(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	entries := []string{"common", "rare", "never"}
	weights := map[string]int{"common": 9, "rare": 1, "never": 0}
	counts := map[string]int{}
	for i := 0; i < 10000; i++ {
		e, ok := PickWeighted(rng, entries, func(s string) int { return weights[s] })
		if !ok {
			t.Fatal("expected a pick")
		}
		counts[e]++
	}
	if counts["never"] != 0 {
		t.Errorf("zero-weight entry picked %d times", counts["never"])
	}
	if counts["common"] < 8500 || counts["common"] > 9500 {
		t.Errorf("common picked %d/10000, want about 9000", counts["common"])
	}
}

func testCatalog() []MonsterEntry {
	return []MonsterEntry{
		{ID: "snake", MaxHP: 4, Spawn: Spawn{MinDepth: 1, MaxDepth: 3, BaseWeight: 5}},
		{ID: "rat", MaxHP: 3, Spawn: Spawn{MinDepth: 1, BaseWeight: 5}},
		{ID: "ogre", MaxHP: 20, Spawn: Spawn{MinDepth: 5, BaseWeight: 3}},
		{ID: "kraken", MaxHP: 30, Spawn: Spawn{MinDepth: 99}},
	}
}

func TestPopulateRespectsDepthWindow(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		cfg := testConfig(seed, 2)
		cfg.Monsters = testCatalog()
		m := Standard(cfg)
		res := Populate(m, cfg)
		if len(res.Monsters) != cfg.MonsterCount {
			t.Errorf("seed=%d: %d monsters, want %d", seed, len(res.Monsters), cfg.MonsterCount)
		}
		for _, s := range res.Monsters {
			if s.Entry.ID == "ogre" || s.Entry.ID == "kraken" {
				t.Errorf("seed=%d: %s spawned outside its depth window", seed, s.Entry.ID)
			}
		}
	}
}

func TestPopulateAvoidsStartStairsAndOverlap(t *testing.T) {
	cfg := testConfig(3, 4)
	cfg.Monsters = testCatalog()
	cfg.Items = []ItemEntry{{Spawn: Spawn{MinDepth: 1, BaseWeight: 1}}}
	m := Standard(cfg)
	res := Populate(m, cfg)

	seen := map[gamemap.Point]bool{}
	check := func(x, y int) {
		p := gamemap.Point{X: x, Y: y}
		if p == m.Start || m.Kind(x, y) != gamemap.TileFloor {
			t.Errorf("spawn at %v is on the start or not plain floor", p)
		}
		if seen[p] {
			t.Errorf("two spawns share %v", p)
		}
		seen[p] = true
	}
	for _, s := range res.Monsters {
		check(s.X, s.Y)
	}
	for _, s := range res.Items {
		check(s.X, s.Y)
	}
	if len(res.Items) != cfg.ItemCount {
		t.Errorf("%d items, want %d", len(res.Items), cfg.ItemCount)
	}
}

func TestPopulateOverrides(t *testing.T) {
	overrides := []Override{
		{MonsterID: "snake", MinDepth: 1, MaxDepth: 1, Chance: 100},
		{MonsterID: "kraken", MinDepth: 4, Chance: 100},
		{MonsterID: "missing", MinDepth: 1, Chance: 100},
	}
	cases := []struct {
		depth      int
		wantForced []string
	}{
		{1, []string{"snake"}},
		{3, nil},
		{4, []string{"kraken"}},
	}
	for _, tc := range cases {
		cfg := testConfig(5, tc.depth)
		cfg.Monsters = testCatalog()
		cfg.Overrides = overrides
		m := Standard(cfg)
		res := Populate(m, cfg)

		var forced []string
		for _, s := range res.Monsters {
			if s.Forced {
				forced = append(forced, s.Entry.ID)
			}
		}
		if len(forced) != len(tc.wantForced) {
			t.Errorf("depth %d: forced = %v, want %v", tc.depth, forced, tc.wantForced)
			continue
		}
		for i := range forced {
			if forced[i] != tc.wantForced[i] {
				t.Errorf("depth %d: forced = %v, want %v", tc.depth, forced, tc.wantForced)
			}
		}
	}
}

func TestArenaWave(t *testing.T) {
	cfg := testConfig(9, 1)
	cfg.Monsters = testCatalog()
	m := Arena(40, 24, 2)
	occupied := mapset.New[gamemap.Point]()
	occupied.Put(m.SpawnPoints[0])

	spawns := ArenaWave(m, cfg, 2, occupied)
	if len(spawns) != 4 {
		t.Fatalf("wave 2 spawned %d monsters, want 4", len(spawns))
	}
	spawnable := map[gamemap.Point]bool{}
	for _, p := range m.SpawnPoints {
		spawnable[p] = true
	}
	for _, s := range spawns {
		p := gamemap.Point{X: s.X, Y: s.Y}
		if !spawnable[p] || p == m.SpawnPoints[0] {
			t.Errorf("spawn %v not on a free spawn point", p)
		}
	}
}
