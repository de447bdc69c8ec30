package game

import "glyphcrawl/internal/ecs"

// Tone colours a log message.
type Tone uint8

const (
	ToneInfo Tone = iota
	ToneGood
	ToneBad
	ToneWarning
)

var toneNames = [...]string{"info", "good", "bad", "warning"}

func (t Tone) String() string {
	if int(t) < len(toneNames) {
		return toneNames[t]
	}
	return "info"
}

// MarshalText encodes the tone by name so JSON clients get "warning"
// rather than 3.
func (t Tone) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText accepts the names produced by MarshalText.
func (t *Tone) UnmarshalText(b []byte) error {
	for i, n := range toneNames {
		if n == string(b) {
			*t = Tone(i)
			return nil
		}
	}
	*t = ToneInfo
	return nil
}

// Message is one line of the game log.
type Message struct {
	Text string `json:"text"`
	Tone Tone   `json:"tone"`
}

// MessageLimit caps the log length; older lines are dropped.
const MessageLimit = 50

// DeathEvent describes an entity leaving play.
type DeathEvent struct {
	Entity ecs.EntityID
	Name   string
	Cause  string
	Player bool
}

// Observer receives session events. Callbacks run while the session is
// locked, so implementations must not call back into the session.
type Observer interface {
	Message(Message)
	EntityDied(DeathEvent)
	LevelUp(level int)
	WaveCleared(wave, score int)
	GameOver(RunSummary)
	LevelPrepared(mode Mode, depth int)
}

// NopObserver ignores every event. Embed it to implement only some hooks.
type NopObserver struct{}

func (NopObserver) Message(Message)         {}
func (NopObserver) EntityDied(DeathEvent)   {}
func (NopObserver) LevelUp(int)             {}
func (NopObserver) WaveCleared(int, int)    {}
func (NopObserver) GameOver(RunSummary)     {}
func (NopObserver) LevelPrepared(Mode, int) {}
