package game

import (
	"os"
	"testing"
	"time"

	"glyphcrawl/assets"
	"glyphcrawl/internal/component"
	"glyphcrawl/internal/ecs"
	"glyphcrawl/internal/gamemap"
	"glyphcrawl/internal/generate"
	"glyphcrawl/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Silence()
	os.Exit(m.Run())
}

// fakeTimer collects callbacks so tests decide when they fire.
type fakeTimer struct {
	entries []*timerEntry
}

type timerEntry struct {
	delay   time.Duration
	fn      func()
	stopped bool
}

func (f *fakeTimer) AfterFunc(d time.Duration, fn func()) func() bool {
	e := &timerEntry{delay: d, fn: fn}
	f.entries = append(f.entries, e)
	return func() bool {
		was := !e.stopped
		e.stopped = true
		return was
	}
}

// pending counts callbacks that were neither stopped nor fired.
func (f *fakeTimer) pending() int {
	n := 0
	for _, e := range f.entries {
		if !e.stopped {
			n++
		}
	}
	return n
}

// fire runs every live callback once.
func (f *fakeTimer) fire() {
	entries := f.entries
	f.entries = nil
	for _, e := range entries {
		if !e.stopped {
			e.stopped = true
			e.fn()
		}
	}
}

// recorder is an Observer that remembers what it saw.
type recorder struct {
	NopObserver
	waves    []int
	deaths   []DeathEvent
	levelUps []int
	overs    []RunSummary
	prepared int
}

func (r *recorder) WaveCleared(wave, _ int)  { r.waves = append(r.waves, wave) }
func (r *recorder) EntityDied(ev DeathEvent) { r.deaths = append(r.deaths, ev) }
func (r *recorder) LevelUp(level int)        { r.levelUps = append(r.levelUps, level) }
func (r *recorder) GameOver(sum RunSummary)  { r.overs = append(r.overs, sum) }
func (r *recorder) LevelPrepared(Mode, int)  { r.prepared++ }

func newTestSession(t *testing.T, mode Mode) (*Session, *recorder, *fakeTimer) {
	t.Helper()
	rec := &recorder{}
	timer := &fakeTimer{}
	s, err := New(Options{Seed: 7, Mode: mode, Observer: rec, Timer: timer})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, rec, timer
}

func openMap(w, h int) *gamemap.Layout {
	m := gamemap.New(w, h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			m.Set(x, y, gamemap.MakeFloor())
		}
	}
	m.CollectFreeCells()
	return m
}

// stage replaces the level with an empty walled room and puts the player
// at (x, y).
func stage(s *Session, mode Mode, x, y int) {
	s.clearLevel()
	s.layout = openMap(12, 12)
	s.layout.Start = gamemap.Point{X: x, Y: y}
	s.mode = mode
	s.depth = 1
	if mode == ModeArena {
		s.depth = 0
		s.wave = 1
		s.clearedWave = 0
		s.score = 0
	}
	s.enter(gamemap.Point{X: x, Y: y})
}

func addMonster(t *testing.T, s *Session, id string, x, y int) ecs.EntityID {
	t.Helper()
	entry, ok := assets.MonsterByID(id)
	if !ok {
		t.Fatalf("unknown monster %q", id)
	}
	return s.spawnMonster(generate.MonsterSpawn{Entry: &entry, X: x, Y: y})
}

func hpOf(s *Session, id ecs.EntityID) int {
	return s.world.Get(id, component.CHealth).(component.Health).Current
}

func setHP(s *Session, id ecs.EntityID, n int) {
	hp := s.world.Get(id, component.CHealth).(component.Health)
	hp.Current = n
	s.world.Add(id, hp)
}

func lastMessage(s *Session) Message {
	if len(s.messages) == 0 {
		return Message{}
	}
	return s.messages[len(s.messages)-1]
}

func mustItem(t *testing.T, id string) *component.Item {
	t.Helper()
	item, ok := assets.ItemByID(id)
	if !ok {
		t.Fatalf("unknown item %q", id)
	}
	return item
}
