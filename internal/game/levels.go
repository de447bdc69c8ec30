package game

import (
	"math"
	"math/rand"

	"glyphcrawl/assets"
	"glyphcrawl/internal/generate"
)

// MaxDepth is the deepest standard level.
const MaxDepth = 10

// levelConfig builds the generation config for a standard level. Maps
// start at three quarters of the configured size and grow to full size at
// MaxDepth.
func levelConfig(depth, width, height int, rng *rand.Rand) *generate.Config {
	t := 0.0
	if MaxDepth > 1 {
		t = float64(min(depth, MaxDepth)-1) / float64(MaxDepth-1)
	}
	cfg := generate.DefaultConfig(
		lerpi(width*3/4, width, t),
		lerpi(height*3/4, height, t),
		depth, rng,
	)
	cfg.Monsters = assets.Monsters
	cfg.Items = assets.Items
	cfg.Overrides = assets.Overrides
	return cfg
}

// arenaConfig is the catalog config used to roll arena waves.
func arenaConfig(width, height, wave int, rng *rand.Rand) *generate.Config {
	cfg := generate.DefaultConfig(width, height, wave, rng)
	cfg.Monsters = assets.Monsters
	return cfg
}

func lerpi(a, b int, t float64) int {
	return int(math.Round(float64(a) + t*float64(b-a)))
}
