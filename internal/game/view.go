package game

import (
	"slices"
	"strings"

	"glyphcrawl/assets"
	"glyphcrawl/internal/component"
	"glyphcrawl/internal/ecs"
	"glyphcrawl/internal/gamemap"
	"glyphcrawl/internal/system"

	"github.com/google/uuid"
)

// EntityView is the drawable part of an entity.
type EntityView struct {
	ID     ecs.EntityID `json:"id"`
	X      int          `json:"x"`
	Y      int          `json:"y"`
	Name   string       `json:"name"`
	Symbol string       `json:"symbol"`
	Color  string       `json:"color"`
	Order  int          `json:"order"`
}

// StatusView describes one active status.
type StatusView struct {
	Type      component.StatusType `json:"type"`
	Duration  int                  `json:"duration"`
	Permanent bool                 `json:"permanent"`
	Potency   int                  `json:"potency"`
	Source    string               `json:"source,omitempty"`
}

// ItemView describes one inventory entry.
type ItemView struct {
	Index    int            `json:"index"`
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Symbol   string         `json:"symbol"`
	Kind     string         `json:"kind"`
	Slot     component.Slot `json:"slot,omitempty"`
	Quantity int            `json:"quantity"`
	Equipped bool           `json:"equipped"`
}

// PlayerView is the HUD's view of the player.
type PlayerView struct {
	Name      string                              `json:"name"`
	X         int                                 `json:"x"`
	Y         int                                 `json:"y"`
	HP        int                                 `json:"hp"`
	MaxHP     int                                 `json:"maxHp"`
	Level     int                                 `json:"level"`
	Exp       int                                 `json:"exp"`
	NextLevel int                                 `json:"nextLevel"`
	Gold      int                                 `json:"gold"`
	Kills     int                                 `json:"kills"`
	Stats     map[component.Stat]system.Breakdown `json:"stats"`
	Statuses  []StatusView                        `json:"statuses"`
	Inventory []ItemView                          `json:"inventory"`
}

// Tile codes used in View.Map.
const (
	CodeUnknown    = ' '
	CodeWall       = '#'
	CodeFloor      = '.'
	CodeStairsUp   = '<'
	CodeStairsDown = '>'
	CodeItem       = '!'
)

// Seen codes used in View.Seen.
const (
	SeenNever   = '0'
	SeenMemory  = '1'
	SeenVisible = '2'
)

// View is a self-contained frame of everything a client may draw. Map and
// Seen are row strings; unexplored cells read CodeUnknown.
type View struct {
	SessionID string       `json:"sessionId"`
	Mode      Mode         `json:"mode"`
	State     string       `json:"state"`
	Depth     int          `json:"depth"`
	DepthName string       `json:"depthName"`
	Wave      int          `json:"wave,omitempty"`
	Score     int          `json:"score,omitempty"`
	Turn      int          `json:"turn"`
	Width     int          `json:"width"`
	Height    int          `json:"height"`
	Map       []string     `json:"map"`
	Seen      []string     `json:"seen"`
	Entities  []EntityView `json:"entities"`
	Player    PlayerView   `json:"player"`
	Messages  []Message    `json:"messages"`
}

func (s *Session) ID() uuid.UUID { return s.id }

func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.depth
}

// Wave returns the current arena wave and score.
func (s *Session) Wave() (wave, score int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wave, s.score
}

// Layout returns the current map. Callers must treat it as read-only.
func (s *Session) Layout() *gamemap.Layout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layout
}

// IsVisible reports whether the player currently sees (x, y).
func (s *Session) IsVisible(x, y int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible.Has(gamemap.Point{X: x, Y: y})
}

// IsExplored reports whether the player has ever seen (x, y) on this level.
func (s *Session) IsExplored(x, y int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.explored.Has(gamemap.Point{X: x, Y: y})
}

// Messages returns a copy of the message log, oldest first.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.messages)
}

// Entities returns every drawable entity on the level, lowest render
// order first.
func (s *Session) Entities() []EntityView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entities(false)
}

// Player returns the player's stats, statuses and inventory.
func (s *Session) Player() PlayerView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playerView()
}

// View builds a complete frame.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		SessionID: s.id.String(),
		Mode:      s.mode,
		State:     s.state.String(),
		Depth:     s.depth,
		DepthName: assets.DepthName(s.depth),
		Wave:      s.wave,
		Score:     s.score,
		Turn:      s.turns,
		Entities:  s.entities(true),
		Player:    s.playerView(),
		Messages:  slices.Clone(s.messages),
	}
	if s.layout == nil {
		return v
	}
	v.Width, v.Height = s.layout.Width, s.layout.Height
	v.Map = make([]string, s.layout.Height)
	v.Seen = make([]string, s.layout.Height)
	var row, seen strings.Builder
	for y := range s.layout.Height {
		row.Reset()
		seen.Reset()
		for x := range s.layout.Width {
			p := gamemap.Point{X: x, Y: y}
			switch {
			case s.visible.Has(p):
				seen.WriteByte(SeenVisible)
			case s.explored.Has(p):
				seen.WriteByte(SeenMemory)
			default:
				seen.WriteByte(SeenNever)
				row.WriteByte(CodeUnknown)
				continue
			}
			row.WriteByte(tileCode(s.layout.Kind(x, y)))
		}
		v.Map[y] = row.String()
		v.Seen[y] = seen.String()
	}
	return v
}

func tileCode(k gamemap.TileKind) byte {
	switch k {
	case gamemap.TileFloor:
		return CodeFloor
	case gamemap.TileStairsUp:
		return CodeStairsUp
	case gamemap.TileStairsDown:
		return CodeStairsDown
	case gamemap.TileItem:
		return CodeItem
	}
	return CodeWall
}

func (s *Session) entities(visibleOnly bool) []EntityView {
	var out []EntityView
	for _, id := range s.world.Query(component.CPosition, component.CRenderable) {
		pos := s.world.Get(id, component.CPosition).(component.Position)
		if visibleOnly && id != s.playerID && !s.visible.Has(gamemap.Point{X: pos.X, Y: pos.Y}) {
			continue
		}
		r := s.world.Get(id, component.CRenderable).(component.Renderable)
		out = append(out, EntityView{
			ID: id, X: pos.X, Y: pos.Y,
			Name: r.Name, Symbol: r.Symbol, Color: r.Color, Order: r.RenderOrder,
		})
	}
	slices.SortStableFunc(out, func(a, b EntityView) int { return a.Order - b.Order })
	return out
}

func (s *Session) playerView() PlayerView {
	pos := s.playerPos()
	pv := PlayerView{
		Name:  system.NameOf(s.world, s.playerID),
		X:     pos.X,
		Y:     pos.Y,
		Stats: make(map[component.Stat]system.Breakdown, len(component.TrackedStats)),
	}
	if hp, ok := system.HealthOf(s.world, s.playerID); ok {
		pv.HP, pv.MaxHP = hp.Current, hp.Max
	}
	if c := s.world.Get(s.playerID, component.CProgress); c != nil {
		prog := c.(component.Progress)
		pv.Level, pv.Exp, pv.Gold, pv.Kills = prog.Level, prog.Exp, prog.Gold, prog.Kills
		pv.NextLevel = system.ExpToLevel(prog.Level)
	}
	for _, st := range component.TrackedStats {
		pv.Stats[st] = system.StatBreakdown(s.world, s.playerID, st)
	}
	if eff := system.EffectsOf(s.world, s.playerID); eff != nil {
		for _, e := range eff.Active {
			pv.Statuses = append(pv.Statuses, StatusView{
				Type: e.Type, Duration: e.Duration, Permanent: e.IsPermanent(),
				Potency: e.Potency, Source: e.Source,
			})
		}
	}
	if inv := system.InventoryOf(s.world, s.playerID); inv != nil {
		for i, it := range inv.Items {
			pv.Inventory = append(pv.Inventory, ItemView{
				Index: i, ID: it.ID, Name: it.Name, Symbol: it.Symbol, Kind: string(it.Kind),
				Slot: it.Slot, Quantity: it.Quantity, Equipped: it.Equipped,
			})
		}
	}
	return pv
}
