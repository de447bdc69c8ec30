// Package tui plays a session on a tcell screen. It is shared by the local
// binary and the SSH server.
package tui

import (
	"errors"
	"strings"
	"sync"

	"glyphcrawl/assets"
	"glyphcrawl/internal/game"
	"glyphcrawl/internal/input"
	"glyphcrawl/internal/render"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
)

// waker redraws the screen when the session changes between key presses
// and records the run summary. Its callbacks run under the session lock,
// so they only post events.
type waker struct {
	game.NopObserver
	screen tcell.Screen

	mu      sync.Mutex
	summary *game.RunSummary
}

func (w *waker) Message(game.Message) { w.poke() }

func (w *waker) WaveCleared(int, int) { w.poke() }

func (w *waker) GameOver(sum game.RunSummary) {
	w.mu.Lock()
	w.summary = &sum
	w.mu.Unlock()
}

func (w *waker) take() *game.RunSummary {
	w.mu.Lock()
	defer w.mu.Unlock()
	sum := w.summary
	w.summary = nil
	return sum
}

func (w *waker) poke() {
	// A full queue already holds a pending redraw.
	_ = w.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// Run plays sessions built from opts on screen until the player quits or
// the screen is finalised. Dying offers a fresh run.
func Run(screen tcell.Screen, opts game.Options, log *logrus.Entry) error {
	if !intro(screen) {
		return nil
	}
	for {
		again, err := play(screen, opts, log)
		if err != nil || !again {
			return err
		}
	}
}

// intro shows the opening text and waits for a key. It reports false when
// the screen closed.
func intro(screen tcell.Screen) bool {
	screen.Clear()
	style := tcell.StyleDefault.Foreground(tcell.ColorLightYellow)
	for y, line := range strings.Split(assets.LoreOpening, "\n") {
		for x, ch := range line {
			screen.SetContent(2+x, 2+y, ch, nil, style)
		}
	}
	screen.Show()
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return false
		case *tcell.EventKey:
			return ev.Key() != tcell.KeyCtrlC
		case *tcell.EventResize:
			screen.Sync()
		}
	}
}

func play(screen tcell.Screen, opts game.Options, log *logrus.Entry) (bool, error) {
	w := &waker{screen: screen}
	opts.Observer = w
	sess, err := game.New(opts)
	if err != nil {
		return false, err
	}
	defer sess.Close()
	if err := sess.Start(); err != nil {
		return false, err
	}
	log = log.WithField("session", sess.ID().String())
	log.Info("run started")

	r := render.NewRenderer(screen)
	var keys input.Mapper
	for {
		v := sess.View()
		if v.State == game.StateDead.String() {
			if sum := w.take(); sum != nil {
				return endScreen(screen, r, *sum), nil
			}
		}
		r.Draw(v, keys.InventoryOpen())

		switch ev := screen.PollEvent().(type) {
		case nil:
			return false, nil
		case *tcell.EventResize:
			screen.Sync()
			r.Resize()
		case *tcell.EventKey:
			cmd, in := keys.Key(ev, v.Player)
			switch cmd {
			case input.CmdQuit:
				log.Info("player quit")
				return false, nil
			case input.CmdIntent:
				if _, err := sess.Handle(in); err != nil && !errors.Is(err, game.ErrInvalidIntent) {
					log.WithError(err).Debug("intent rejected")
				}
			}
		}
	}
}

// endScreen shows the summary and reports whether the player wants
// another run.
func endScreen(screen tcell.Screen, r *render.Renderer, sum game.RunSummary) bool {
	for {
		r.DrawEndScreen(sum)
		switch ev := screen.PollEvent().(type) {
		case nil:
			return false
		case *tcell.EventResize:
			screen.Sync()
			r.Resize()
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
				return false
			case ev.Rune() == 'r' || ev.Rune() == 'R':
				return true
			case ev.Rune() == 'q' || ev.Rune() == 'Q':
				return false
			}
		}
	}
}
