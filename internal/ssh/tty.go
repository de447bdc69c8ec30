// Package ssh adapts gliderlabs SSH sessions for terminal play.
package ssh

import (
	"io"
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// Tty implements tcell.Tty over one SSH channel, so every connection gets
// its own tcell.Screen.
type Tty struct {
	rw io.ReadWriteCloser

	mu     sync.Mutex
	window gossh.Window
	onSize func()
}

// NewTty wraps rw (normally the gossh.Session). win is the size from the
// PTY request; winCh delivers later resizes and is drained until closed.
func NewTty(rw io.ReadWriteCloser, win gossh.Window, winCh <-chan gossh.Window) *Tty {
	t := &Tty{rw: rw, window: win}
	if winCh != nil {
		go t.watch(winCh)
	}
	return t
}

func (t *Tty) watch(winCh <-chan gossh.Window) {
	for win := range winCh {
		t.mu.Lock()
		t.window = win
		cb := t.onSize
		t.mu.Unlock()
		if cb != nil {
			cb()
		}
	}
}

func (t *Tty) Read(b []byte) (int, error)  { return t.rw.Read(b) }
func (t *Tty) Write(b []byte) (int, error) { return t.rw.Write(b) }
func (t *Tty) Close() error                { return t.rw.Close() }

// The SSH channel is opened and torn down by the server, and writes are
// not buffered, so Start, Stop and Drain have nothing to do.
func (t *Tty) Start() error { return nil }
func (t *Tty) Stop() error  { return nil }
func (t *Tty) Drain() error { return nil }

// WindowSize returns the latest size reported by the client.
func (t *Tty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tcell.WindowSize{Width: t.window.Width, Height: t.window.Height}, nil
}

// NotifyResize registers tcell's resize callback.
func (t *Tty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.onSize = cb
	t.mu.Unlock()
}
