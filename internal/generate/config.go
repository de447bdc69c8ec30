package generate

import (
	"math/rand"

	"glyphcrawl/internal/component"
)

// Spawn holds the depth window and weighting shared by catalog entries.
type Spawn struct {
	MinDepth     int
	MaxDepth     int // 0 means no upper bound
	BaseWeight   int
	DepthScaling int
}

// Weight returns the selection weight at depth: zero outside the depth
// window, otherwise max(1, base + scaling*(depth-min)).
func (s Spawn) Weight(depth int) int {
	if depth < s.MinDepth || (s.MaxDepth > 0 && depth > s.MaxDepth) {
		return 0
	}
	return max(1, s.BaseWeight+s.DepthScaling*(depth-s.MinDepth))
}

// MonsterEntry describes one monster the populator may spawn.
type MonsterEntry struct {
	ID         string
	Name       string
	Symbol     string
	Color      string
	Attack     int
	Defense    int
	MaxHP      int
	Exp        int
	SightRange int
	Stationary bool
	Drops      []component.LootEntry
	Spawn
}

// ItemEntry describes one item the populator may spawn. Item is a
// template; placed items are deep copies.
type ItemEntry struct {
	Item component.Item
	Spawn
}

// Override forces a monster onto levels within a depth window with the
// given percent chance, ahead of weighted selection.
type Override struct {
	MonsterID string
	MinDepth  int
	MaxDepth  int // 0 means no upper bound
	Chance    int // 0–100
}

func (o Override) applies(depth int) bool {
	return depth >= o.MinDepth && (o.MaxDepth == 0 || depth <= o.MaxDepth)
}

// Config drives generation and population of one level.
type Config struct {
	Width, Height int
	Depth         int

	RoomWidth      [2]int // inclusive range
	RoomHeight     [2]int
	CorridorLength [2]int
	DugPercentage  float64
	MaxAttempts    int

	MonsterCount int
	ItemCount    int
	Monsters     []MonsterEntry
	Items        []ItemEntry
	Overrides    []Override

	Rand *rand.Rand
}

// DefaultConfig returns the standard digger settings for a level at depth.
// Catalogs are left empty for the caller to fill.
func DefaultConfig(width, height, depth int, rng *rand.Rand) *Config {
	return &Config{
		Width:          width,
		Height:         height,
		Depth:          depth,
		RoomWidth:      [2]int{3, 9},
		RoomHeight:     [2]int{3, 7},
		CorridorLength: [2]int{2, 6},
		DugPercentage:  0.2,
		MaxAttempts:    2000,
		MonsterCount:   3 + depth,
		ItemCount:      2 + depth/2,
		Rand:           rng,
	}
}

// between returns a uniform int in the inclusive range r.
func (c *Config) between(r [2]int) int {
	if r[1] <= r[0] {
		return r[0]
	}
	return r[0] + c.Rand.Intn(r[1]-r[0]+1)
}
