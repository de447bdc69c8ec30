package assets

// Glyphs used for map features and the player.
const (
	GlyphPlayer     = "🧙"
	GlyphStairsDown = "🔽"
	GlyphStairsUp   = "🔼"
	GlyphWall       = "🧱"
	GlyphFloor      = "·"
)

// PlayerDef holds the starting state of a new character.
type PlayerDef struct {
	Name      string
	Symbol    string
	Attack    int
	Defense   int
	MaxHP     int
	FOVRadius int
	Capacity  int
	// StartItems are catalog IDs placed in the starting inventory; the
	// ones with a slot start equipped.
	StartItems []string
}

// DefaultPlayer is the only playable character.
var DefaultPlayer = PlayerDef{
	Name:       "you",
	Symbol:     GlyphPlayer,
	Attack:     5,
	Defense:    2,
	MaxHP:      30,
	FOVRadius:  8,
	Capacity:   12,
	StartItems: []string{"dagger", "potion"},
}

// DepthNames label the first few levels; deeper levels reuse the last.
var DepthNames = []string{
	"",
	"Mossy Cellars",
	"Dripping Halls",
	"Bone Galleries",
	"Flooded Crypts",
	"Sunken Temple",
	"Black Vaults",
	"Deep Abyss",
}

// DepthName returns the display name of depth.
func DepthName(depth int) string {
	if depth <= 0 {
		return "Arena"
	}
	if depth < len(DepthNames) {
		return DepthNames[depth]
	}
	return DepthNames[len(DepthNames)-1]
}

// LoreOpening is shown when the game begins.
const LoreOpening = `Stairs spiral down into the old mine, and something
down there has learned to bite. Bring back what gold you can.
Press any key to begin...`
