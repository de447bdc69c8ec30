package main

import (
	"fmt"
	"io"
	"os"

	"glyphcrawl/internal/config"
	"glyphcrawl/internal/logger"
	"glyphcrawl/internal/tui"

	"github.com/gdamore/tcell/v2"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, _, err := config.Load()
	if err != nil {
		return err
	}

	// The screen owns the terminal, so logs go to a file or nowhere.
	out := io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat, out)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	return tui.Run(screen, cfg.Options(), logger.Log.WithField("frontend", "local"))
}
