// glyphcrawl-server serves the game over SSH (terminal play) and
// WebSocket (JSON frames). Every connection gets its own session.
//
//	go build -o glyphcrawl-server ./cmd/server
//	./glyphcrawl-server [-ssh :2222] [-ws :8080] [-key host_key]
//
// Then connect with:
//
//	ssh -t -p 2222 localhost
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"
	"unicode"

	"glyphcrawl/internal/config"
	"glyphcrawl/internal/game"
	"glyphcrawl/internal/logger"
	internalssh "glyphcrawl/internal/ssh"
	"glyphcrawl/internal/transport/ws"
	"glyphcrawl/internal/tui"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
	"github.com/sirupsen/logrus"
	xssh "golang.org/x/crypto/ssh"
)

func main() {
	cfg, found, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	sshAddr := flag.String("ssh", cfg.SSHAddr, "SSH listen address (empty disables)")
	wsAddr := flag.String("ws", cfg.WSAddr, "WebSocket listen address (empty disables)")
	keyFile := flag.String("key", cfg.SSHHostKey, "PEM host key, generated when absent")
	seed := flag.Int64("seed", cfg.Seed, "World seed for every session (0 for random)")
	flag.Parse()
	cfg.Seed = *seed

	var out io.Writer
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat, out)
	if !found {
		logger.Log.Debug("no .env file, using the process environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	errc := make(chan error, 2)
	var shutdowns []func(context.Context) error

	if *wsAddr != "" {
		srv := &http.Server{Addr: *wsAddr, Handler: ws.NewMux(ws.NewHandler(cfg.Options()))}
		shutdowns = append(shutdowns, srv.Shutdown)
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Log.WithField("addr", *wsAddr).Info("websocket server listening")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errc <- fmt.Errorf("websocket: %w", err)
			}
		}()
	}

	if *sshAddr != "" {
		signer, err := loadOrCreateHostKey(*keyFile)
		if err != nil {
			logger.Log.WithError(err).Fatal("host key")
		}
		srv := &gossh.Server{
			Addr:            *sshAddr,
			Handler:         func(s gossh.Session) { handleSession(s, cfg.Options()) },
			PtyCallback:     func(gossh.Context, gossh.Pty) bool { return true },
			PasswordHandler: internalssh.PasswordHandler(cfg.SSHPasswordHash),
			HostSigners:     []gossh.Signer{signer},
		}
		shutdowns = append(shutdowns, srv.Shutdown)
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Log.WithFields(logrus.Fields{
				"addr":     *sshAddr,
				"password": cfg.SSHPasswordHash != "",
			}).Info("ssh server listening")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, gossh.ErrServerClosed) {
				errc <- fmt.Errorf("ssh: %w", err)
			}
		}()
	}

	if len(shutdowns) == 0 {
		logger.Log.Fatal("both -ssh and -ws are disabled")
	}

	select {
	case <-ctx.Done():
		logger.Log.Info("shutting down")
	case err := <-errc:
		logger.Log.WithError(err).Error("server failed")
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, shutdown := range shutdowns {
		if err := shutdown(shutdownCtx); err != nil {
			logger.Log.WithError(err).Warn("shutdown")
		}
	}
	wg.Wait()
}

// allowedTerms lists the TERM values we build screens for. TERM comes from
// the client and feeds a terminfo lookup, so anything else falls back.
var allowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"vt220":                 true,
	"rxvt-unicode":          true,
	"rxvt-unicode-256color": true,
}

const defaultTerm = "xterm-256color"

// maxNameBytes bounds the SSH user name echoed into logs.
const maxNameBytes = 16

// sanitizeName drops control characters and truncates to maxNameBytes
// without splitting a rune.
func sanitizeName(name string) string {
	var sb strings.Builder
	for _, r := range name {
		if unicode.IsControl(r) {
			continue
		}
		if sb.Len()+len(string(r)) > maxNameBytes {
			break
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// termMu serialises os.Setenv("TERM") around screen creation, since
// tcell reads TERM from the process environment.
var termMu sync.Mutex

// handleSession plays one run for an SSH connection. It blocks for the
// lifetime of the connection.
func handleSession(s gossh.Session, opts game.Options) {
	log := logger.Log.WithFields(logrus.Fields{
		"user":   sanitizeName(s.User()),
		"remote": s.RemoteAddr().String(),
	})
	pty, winCh, ok := s.Pty()
	if !ok {
		fmt.Fprintln(s, "glyphcrawl needs a terminal. Connect with: ssh -t -p <port> <host>")
		return
	}

	term := pty.Term
	if !allowedTerms[term] {
		log.WithField("term", term).Debug("unsupported TERM, using default")
		term = defaultTerm
	}

	screen, err := newScreen(internalssh.NewTty(s, pty.Window, winCh), term)
	if err != nil {
		log.WithError(err).Warn("screen setup failed")
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		return
	}
	defer screen.Fini()

	log.Info("player connected")
	if err := tui.Run(screen, opts, log); err != nil {
		log.WithError(err).Error("run failed")
	}
	log.Info("player disconnected")
}

func newScreen(tty tcell.Tty, term string) (tcell.Screen, error) {
	termMu.Lock()
	os.Setenv("TERM", term)
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	termMu.Unlock()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return screen, nil
}

// loadOrCreateHostKey loads a PEM private key from path, or generates an
// ed25519 key and saves it there.
func loadOrCreateHostKey(path string) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		signer, err := xssh.ParsePrivateKey(data)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		logger.Log.WithField("path", path).Info("loaded host key")
		return signer, nil
	}

	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	block, err := xssh.MarshalPrivateKey(key, "glyphcrawl server")
	if err != nil {
		return nil, fmt.Errorf("marshal host key: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		logger.Log.WithError(err).Warn("host key not saved")
		return signer, nil
	}
	if err := os.WriteFile(path, pem.EncodeToMemory(block), 0o600); err != nil {
		logger.Log.WithError(err).Warn("host key not saved")
		return signer, nil
	}
	logger.Log.WithField("path", path).Info("generated host key")
	return signer, nil
}
