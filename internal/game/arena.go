package game

import (
	"glyphcrawl/internal/component"
	"glyphcrawl/internal/gamemap"
	"glyphcrawl/internal/generate"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
)

// spawnWave places the current wave's monsters on free spawn points.
func (s *Session) spawnWave() {
	occupied := mapset.New[gamemap.Point]()
	for _, id := range s.world.Query(component.CTagBlocking, component.CPosition) {
		pos := s.world.Get(id, component.CPosition).(component.Position)
		occupied.Put(gamemap.Point{X: pos.X, Y: pos.Y})
	}
	cfg := arenaConfig(s.opts.Width, s.opts.Height, s.wave, s.rng)
	spawns := generate.ArenaWave(s.layout, cfg, s.wave, occupied)
	for _, sp := range spawns {
		s.spawnMonster(sp)
	}
	s.warn("Wave %d: %d monsters enter the arena.", s.wave, len(spawns))
	s.log.WithFields(logrus.Fields{"wave": s.wave, "monsters": len(spawns)}).Info("wave spawned")
}

// checkWaveCleared fires the wave-cleared event once per wave, when the
// last monster of the arena is gone, and schedules the next wave.
func (s *Session) checkWaveCleared() {
	if s.state != StatePlaying || s.clearedWave == s.wave {
		return
	}
	if len(s.world.Query(component.CTagMonster)) != 0 {
		return
	}
	s.clearedWave = s.wave
	s.score += s.wave * 10
	s.say(ToneGood, "Wave %d cleared! Score: %d.", s.wave, s.score)
	s.obs.WaveCleared(s.wave, s.score)
	s.log.WithFields(logrus.Fields{"wave": s.wave, "score": s.score}).Info("wave cleared")
	s.scheduleWave()
}

func (s *Session) scheduleWave() {
	s.stopWaveTimer()
	gen := s.waveGen
	s.stopWave = s.timer.AfterFunc(s.opts.WaveDelay, func() { s.nextWave(gen) })
}

// stopWaveTimer cancels a pending wave. Bumping the generation also
// disarms a callback that already started and waits for the lock.
func (s *Session) stopWaveTimer() {
	s.waveGen++
	if s.stopWave != nil {
		s.stopWave()
		s.stopWave = nil
	}
}

// nextWave is the timer callback that starts the following wave.
func (s *Session) nextWave(gen int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.waveGen || s.mode != ModeArena || s.state != StatePlaying {
		return
	}
	s.stopWave = nil
	s.wave++
	if generate.ArenaRings(s.wave) != generate.ArenaRings(s.wave-1) {
		s.reshapeArena()
	}
	s.spawnWave()
	s.updateFOV()
}

// reshapeArena rebuilds the arena for the current wave's ring count. The
// player moves to the centre if a pillar now stands on them; floor items
// caught inside pillars are lost.
func (s *Session) reshapeArena() {
	s.layout = generate.Arena(s.opts.Width, s.opts.Height, s.wave)
	pos := s.playerPos()
	if !s.layout.IsWalkable(pos.X, pos.Y) {
		s.world.Add(s.playerID, component.Position{X: s.layout.Start.X, Y: s.layout.Start.Y})
	}
	for _, id := range s.world.Query(component.CGroundItem, component.CPosition) {
		ipos := s.world.Get(id, component.CPosition).(component.Position)
		if !s.layout.IsWalkable(ipos.X, ipos.Y) {
			s.world.DestroyEntity(id)
			continue
		}
		if s.layout.Kind(ipos.X, ipos.Y) == gamemap.TileFloor {
			s.layout.Set(ipos.X, ipos.Y, gamemap.MakeItemMarker())
		}
	}
}
