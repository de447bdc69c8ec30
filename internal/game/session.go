// Package game holds the session: the context object that owns one run's
// world, map, scheduler and message log, and resolves player intents into
// complete turns.
package game

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"glyphcrawl/assets"
	"glyphcrawl/internal/component"
	"glyphcrawl/internal/ecs"
	"glyphcrawl/internal/factory"
	"glyphcrawl/internal/gamemap"
	"glyphcrawl/internal/generate"
	"glyphcrawl/internal/logger"
	"glyphcrawl/internal/system"
	"glyphcrawl/internal/turn"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
)

// Mode selects the rule set of a session.
type Mode string

const (
	ModeStandard Mode = "standard"
	ModeArena    Mode = "arena"
)

// ParseMode accepts "standard" or "arena"; the empty string is standard.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeStandard:
		return ModeStandard, nil
	case ModeArena:
		return ModeArena, nil
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// State tracks the session state machine.
type State uint8

const (
	StateIdle    State = iota // no level prepared yet
	StatePlaying              // waiting for player input
	StateDead                 // the player died
	StateClosed
)

var stateNames = [...]string{"idle", "playing", "dead", "closed"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

var (
	ErrNoLevel       = errors.New("no level prepared")
	ErrNoScheduler   = errors.New("no turn scheduler")
	ErrGameOver      = errors.New("game over")
	ErrInvalidIntent = errors.New("invalid intent")
	ErrClosed        = errors.New("session closed")
)

const (
	DefaultWidth     = 60
	DefaultHeight    = 30
	MinWidth         = 20
	MinHeight        = 12
	DefaultWaveDelay = 2 * time.Second
)

// Timer schedules a delayed callback and returns a function that cancels
// it. The callback runs on its own goroutine.
type Timer interface {
	AfterFunc(d time.Duration, f func()) (stop func() bool)
}

type realTimer struct{}

func (realTimer) AfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// Options configures a new session. Zero values pick defaults.
type Options struct {
	Seed      int64 // 0 picks a time-based seed
	Mode      Mode
	Width     int
	Height    int
	FOVRadius int
	WaveDelay time.Duration
	Player    assets.PlayerDef
	Observer  Observer
	Timer     Timer
	// RecordRuns appends a summary line to the run log on game over.
	RecordRuns bool
}

func (o *Options) normalize() error {
	if o.Seed == 0 {
		o.Seed = time.Now().UnixNano()
	}
	mode, err := ParseMode(string(o.Mode))
	if err != nil {
		return err
	}
	o.Mode = mode
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Width < MinWidth || o.Height < MinHeight {
		return fmt.Errorf("%w: map %dx%d is below %dx%d", ErrNoLevel, o.Width, o.Height, MinWidth, MinHeight)
	}
	if o.Player.Name == "" {
		o.Player = assets.DefaultPlayer
	}
	if o.FOVRadius <= 0 {
		o.FOVRadius = o.Player.FOVRadius
	}
	if o.WaveDelay == 0 {
		o.WaveDelay = DefaultWaveDelay
	}
	if o.Observer == nil {
		o.Observer = NopObserver{}
	}
	if o.Timer == nil {
		o.Timer = realTimer{}
	}
	return nil
}

// Session is one run. All methods are safe for concurrent use; turn
// resolution and timer callbacks are serialised by a single mutex.
type Session struct {
	mu sync.Mutex

	id    uuid.UUID
	opts  Options
	obs   Observer
	timer Timer
	rng   *rand.Rand
	log   *logrus.Entry

	world    *ecs.World
	layout   *gamemap.Layout
	sched    *turn.Scheduler
	playerID ecs.EntityID

	mode        Mode
	state       State
	depth       int
	wave        int
	clearedWave int
	score       int
	turns       int

	waveGen  int
	stopWave func() bool

	visible  mapset.Set[gamemap.Point]
	explored mapset.Set[gamemap.Point]
	messages []Message
	run      RunSummary
}

// New creates a session with its player. No level exists until Start,
// PrepareLevel or StartArena is called.
func New(opts Options) (*Session, error) {
	if err := opts.normalize(); err != nil {
		return nil, err
	}
	id := uuid.New()
	s := &Session{
		id:       id,
		opts:     opts,
		obs:      opts.Observer,
		timer:    opts.Timer,
		rng:      rand.New(rand.NewSource(opts.Seed)),
		log:      logger.Log.WithField("session", id.String()),
		world:    ecs.NewWorld(),
		mode:     opts.Mode,
		visible:  mapset.New[gamemap.Point](),
		explored: mapset.New[gamemap.Point](),
		run:      newRunSummary(id.String(), opts.Mode),
	}
	s.playerID = factory.NewPlayer(s.world, 0, 0, opts.Player)
	s.sched = turn.New(s.playerID)
	s.log.WithFields(logrus.Fields{"mode": opts.Mode, "seed": opts.Seed}).Info("session created")
	return s, nil
}

// Start prepares the first level of the configured mode.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == ModeArena {
		return s.startArena(1, 0)
	}
	s.say(ToneInfo, "Use hjklyubn or arrow keys to move. > to descend.")
	return s.prepareLevel(1, false)
}

// PrepareLevel replaces the current level with a fresh standard level at
// depth. The player keeps their state; every other entity is discarded.
func (s *Session) PrepareLevel(depth int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prepareLevel(depth, false)
}

// StartArena replaces the current level with the arena and spawns wave 1.
func (s *Session) StartArena() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startArena(1, 0)
}

// Close cancels pending timers. Later intents fail with ErrClosed.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopWaveTimer()
	s.state = StateClosed
	s.log.Info("session closed")
}

// Handle resolves one player intent. Invalid actions are narrated with a
// warning and report TurnUsed false; errors are reserved for malformed
// intents and sessions that cannot take input.
func (s *Session) Handle(in Intent) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.state == StateClosed:
		return Outcome{}, ErrClosed
	case s.state == StateDead:
		return Outcome{GameOver: true}, ErrGameOver
	case s.sched == nil:
		return Outcome{}, ErrNoScheduler
	case s.layout == nil:
		return Outcome{}, ErrNoLevel
	}
	if err := in.Validate(); err != nil {
		return Outcome{}, err
	}

	out := s.perform(in)
	if s.state == StateDead {
		out.GameOver = true
		return out, nil
	}
	if out.TurnUsed && !out.LevelChanged {
		s.endTurn()
		out.GameOver = s.state == StateDead
	}
	return out, nil
}

func (s *Session) prepareLevel(depth int, ascending bool) error {
	if depth < 1 {
		return fmt.Errorf("%w: depth %d", ErrNoLevel, depth)
	}
	if s.sched == nil {
		return ErrNoScheduler
	}
	cfg := levelConfig(depth, s.opts.Width, s.opts.Height, s.rng)
	layout := generate.Standard(cfg)
	if layout == nil || layout.Width == 0 || layout.Height == 0 {
		return fmt.Errorf("%w: generation produced no map", ErrNoLevel)
	}

	s.stopWaveTimer()
	s.clearLevel()
	s.layout = layout
	s.mode = ModeStandard
	s.depth = depth
	s.wave = 0

	pop := generate.Populate(layout, cfg)
	for _, ms := range pop.Monsters {
		s.spawnMonster(ms)
	}
	for _, is := range pop.Items {
		s.placeItem(is.Entry.Item.Clone(), is.X, is.Y)
	}

	start := layout.Start
	if ascending && layout.DownStairs != nil {
		start = *layout.DownStairs
	}
	s.enter(start)
	s.run.DepthReached = max(s.run.DepthReached, depth)

	if depth == 1 && !ascending {
		s.say(ToneInfo, "You enter the %s.", assets.DepthName(depth))
	} else {
		s.say(ToneInfo, "You reach the %s (depth %d).", assets.DepthName(depth), depth)
	}
	s.log.WithFields(logrus.Fields{
		"depth": depth, "rooms": len(layout.Rooms), "monsters": len(pop.Monsters), "items": len(pop.Items),
	}).Info("level prepared")
	return nil
}

func (s *Session) startArena(wave, score int) error {
	if s.sched == nil {
		return ErrNoScheduler
	}
	s.stopWaveTimer()
	s.clearLevel()
	s.mode = ModeArena
	s.depth = 0
	s.wave = max(1, wave)
	s.clearedWave = s.wave - 1
	s.score = score
	s.layout = generate.Arena(s.opts.Width, s.opts.Height, s.wave)
	s.enter(s.layout.Start)
	s.say(ToneInfo, "You step into the arena.")
	s.spawnWave()
	s.updateFOV()
	s.log.WithField("wave", s.wave).Info("arena started")
	return nil
}

// clearLevel destroys every entity but the player and resets the scheduler.
func (s *Session) clearLevel() {
	for _, id := range s.world.Query(component.CPosition) {
		if id != s.playerID {
			s.world.DestroyEntity(id)
		}
	}
	s.sched.Clear()
	s.sched.Lock()
}

// enter puts the player on the new layout and starts play.
func (s *Session) enter(p gamemap.Point) {
	s.world.Add(s.playerID, component.Position{X: p.X, Y: p.Y})
	s.explored = mapset.New[gamemap.Point]()
	s.updateFOV()
	s.state = StatePlaying
	s.obs.LevelPrepared(s.mode, s.depth)
}

func (s *Session) spawnMonster(ms generate.MonsterSpawn) ecs.EntityID {
	id := factory.NewMonster(s.world, ms.Entry, ms.X, ms.Y)
	s.sched.Add(id)
	return id
}

// placeItem drops item on the floor and flags the tile.
func (s *Session) placeItem(item *component.Item, x, y int) {
	factory.NewGroundItem(s.world, item, x, y)
	if s.layout.Kind(x, y) == gamemap.TileFloor {
		s.layout.Set(x, y, gamemap.MakeItemMarker())
	}
}

// unmarkItem clears the item flag once nothing lies at (x, y).
func (s *Session) unmarkItem(x, y int) {
	if s.layout.Kind(x, y) == gamemap.TileItem && system.GroundItemAt(s.world, x, y) == ecs.NilEntity {
		s.layout.Set(x, y, gamemap.MakeFloor())
	}
}

// endTurn runs everything that follows a turn-consuming player action:
// the player's statuses, then one scheduler round in which every monster
// acts and then resolves its own statuses.
func (s *Session) endTurn() {
	s.turns++
	if !s.resolveStatuses(s.playerID) {
		return
	}
	s.sched.Round(s.monsterTurn)
	s.updateFOV()
}

func (s *Session) monsterTurn(id ecs.EntityID) bool {
	if !s.world.Alive(id) {
		return true
	}
	act := system.MonsterTurn(s.world, s.layout, id, s.playerID)
	if act.Attacked {
		name := system.NameOf(s.world, id)
		s.run.DamageTaken += act.Hit.Damage
		s.say(ToneBad, "The %s hits you for %d.", name, act.Hit.Damage)
		if act.Hit.Killed {
			s.handleDeath(s.playerID, name)
			return false
		}
	}
	s.resolveStatuses(id)
	return s.state != StateDead
}

// resolveStatuses ticks id's statuses, narrates what the player can
// perceive and handles a status death. It reports whether id survived.
func (s *Session) resolveStatuses(id ecs.EntityID) bool {
	rep := system.ResolveStatuses(s.world, id)
	isPlayer := id == s.playerID
	if isPlayer || s.canSee(id) {
		name := system.NameOf(s.world, id)
		for _, ev := range rep.Events {
			s.narrateStatus(name, isPlayer, ev)
		}
	}
	if isPlayer {
		for _, ev := range rep.Events {
			if ev.Kind == system.StatusTicked && ev.Effect.Type == component.StatusPoison {
				s.run.DamageTaken += ev.Amount
			}
		}
	}
	if !rep.Alive {
		cause := "wounds"
		if rep.FatalCause != nil {
			cause = statusCause(rep.FatalCause)
		}
		s.handleDeath(id, cause)
	}
	return rep.Alive
}

func (s *Session) narrateStatus(name string, isPlayer bool, ev system.StatusEvent) {
	switch ev.Kind {
	case system.StatusTicked:
		switch ev.Effect.Type {
		case component.StatusPoison:
			if isPlayer {
				s.say(ToneBad, "Poison burns you for %d.", ev.Amount)
			} else {
				s.say(ToneInfo, "The %s suffers %d poison damage.", name, ev.Amount)
			}
		case component.StatusRegeneration:
			if ev.Amount == 0 {
				return
			}
			if isPlayer {
				s.say(ToneGood, "You regenerate %d HP.", ev.Amount)
			} else {
				s.say(ToneInfo, "The %s regenerates.", name)
			}
		}
	case system.StatusExpired:
		if isPlayer {
			s.say(ToneInfo, "Your %s wears off.", ev.Effect.Type)
		} else {
			s.say(ToneInfo, "The %s is no longer affected by %s.", name, ev.Effect.Type)
		}
	}
}

func statusCause(e *component.StatusEffect) string {
	if e.Source != "" {
		return fmt.Sprintf("%s (%s)", e.Type, e.Source)
	}
	return string(e.Type)
}

// handleDeath removes a dead monster and pays out its reward, or ends the
// game when the player died. A monster is handled at most once: the
// scheduler membership check turns repeated deaths into no-ops.
func (s *Session) handleDeath(id ecs.EntityID, cause string) {
	if id == s.playerID {
		s.gameOver(cause)
		return
	}
	if !s.sched.Contains(id) || !s.world.Alive(id) {
		s.log.WithField("entity", id).Warn("death already handled")
		return
	}

	name := system.NameOf(s.world, id)
	var pos component.Position
	if c := s.world.Get(id, component.CPosition); c != nil {
		pos = c.(component.Position)
	}
	exp := 0
	if c := s.world.Get(id, component.CReward); c != nil {
		exp = c.(component.Reward).Exp
	}
	var drops []component.LootEntry
	if c := s.world.Get(id, component.CLoot); c != nil {
		drops = c.(component.Loot).Drops
	}

	s.sched.Remove(id)
	s.world.DestroyEntity(id)
	s.run.Kills[name]++
	s.say(ToneGood, "The %s dies.", name)
	s.obs.EntityDied(DeathEvent{Entity: id, Name: name, Cause: cause})
	s.dropLoot(drops, pos)

	reward := system.GrantExperience(s.world, s.rng, s.playerID, exp)
	if reward.Exp > 0 {
		s.say(ToneGood, "You gain %d exp and %d gold.", reward.Exp, reward.Gold)
	}
	for _, lvl := range reward.Levels {
		s.say(ToneGood, "You reach level %d!", lvl)
		s.obs.LevelUp(lvl)
	}
	s.log.WithFields(logrus.Fields{"entity": id, "name": name, "cause": cause}).Debug("monster died")

	if s.mode == ModeArena {
		s.score++
		s.checkWaveCleared()
	}
}

func (s *Session) dropLoot(drops []component.LootEntry, pos component.Position) {
	for _, d := range drops {
		if s.rng.Intn(100) >= d.Chance {
			continue
		}
		item, ok := assets.ItemByID(d.ItemID)
		if !ok {
			s.log.WithField("item", d.ItemID).Warn("loot names unknown item")
			continue
		}
		s.placeItem(item, pos.X, pos.Y)
		if s.visible.Has(gamemap.Point{X: pos.X, Y: pos.Y}) {
			s.say(ToneInfo, "Something drops: %s.", item.Name)
		}
	}
}

func (s *Session) gameOver(cause string) {
	if s.state == StateDead {
		return
	}
	s.state = StateDead
	s.stopWaveTimer()
	s.run.CauseOfDeath = cause
	summary := s.summary()
	s.say(ToneBad, "You die. Killed by %s.", cause)
	s.obs.EntityDied(DeathEvent{Entity: s.playerID, Name: system.NameOf(s.world, s.playerID), Cause: cause, Player: true})
	s.obs.GameOver(summary)
	if s.opts.RecordRuns {
		saveRunLog(summary)
	}
	s.log.WithFields(logrus.Fields{
		"cause": cause, "depth": summary.DepthReached, "wave": summary.Wave, "turns": summary.Turns,
	}).Info("game over")
}

// summary returns a copy of the run statistics.
func (s *Session) summary() RunSummary {
	sum := s.run
	sum.Mode = s.mode
	sum.Turns = s.turns
	sum.Wave = s.wave
	sum.Score = s.score
	if c := s.world.Get(s.playerID, component.CProgress); c != nil {
		prog := c.(component.Progress)
		sum.Level = prog.Level
		sum.Gold = prog.Gold
	}
	sum.Kills = make(map[string]int, len(s.run.Kills))
	for k, v := range s.run.Kills {
		sum.Kills[k] = v
	}
	sum.ItemsUsed = make(map[string]int, len(s.run.ItemsUsed))
	for k, v := range s.run.ItemsUsed {
		sum.ItemsUsed[k] = v
	}
	return sum
}

func (s *Session) playerPos() component.Position {
	c := s.world.Get(s.playerID, component.CPosition)
	if c == nil {
		return component.Position{}
	}
	return c.(component.Position)
}

func (s *Session) canSee(id ecs.EntityID) bool {
	c := s.world.Get(id, component.CPosition)
	if c == nil {
		return false
	}
	pos := c.(component.Position)
	return s.visible.Has(gamemap.Point{X: pos.X, Y: pos.Y})
}

func (s *Session) updateFOV() {
	if s.layout == nil {
		return
	}
	pos := s.playerPos()
	s.visible = system.ComputeFOV(s.layout, gamemap.Point{X: pos.X, Y: pos.Y}, s.opts.FOVRadius)
	s.visible.Each(func(p gamemap.Point) { s.explored.Put(p) })
}

func (s *Session) say(tone Tone, format string, args ...any) {
	msg := Message{Text: fmt.Sprintf(format, args...), Tone: tone}
	s.messages = append(s.messages, msg)
	if len(s.messages) > MessageLimit {
		s.messages = s.messages[len(s.messages)-MessageLimit:]
	}
	s.obs.Message(msg)
}

func (s *Session) warn(format string, args ...any) {
	s.say(ToneWarning, format, args...)
}
