// Package config reads runtime settings from the environment. A .env file
// in the working directory is loaded first when present; variables already
// set in the process environment win over it.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"glyphcrawl/internal/game"

	"github.com/joho/godotenv"
)

// Config holds every setting the binaries read at startup.
type Config struct {
	Seed      int64
	Mode      game.Mode
	Width     int
	Height    int
	FOVRadius int
	WaveDelay time.Duration

	LogLevel  string
	LogFormat string
	LogFile   string // empty discards logs in the local terminal binary

	SSHAddr         string
	SSHHostKey      string
	SSHPasswordHash string
	WSAddr          string

	RecordRuns bool
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Mode:       game.ModeStandard,
		Width:      game.DefaultWidth,
		Height:     game.DefaultHeight,
		WaveDelay:  game.DefaultWaveDelay,
		LogLevel:   "info",
		LogFormat:  "text",
		SSHAddr:    ":2222",
		SSHHostKey: ".ssh/glyphcrawl_host_ed25519",
		WSAddr:     ":8080",
		RecordRuns: true,
	}
}

// Load reads .env (if any) and then the environment. The bool result
// reports whether a .env file was found.
func Load() (Config, bool, error) {
	found := godotenv.Load() == nil
	cfg, err := FromEnv(os.Getenv)
	return cfg, found, err
}

// FromEnv builds a Config from getenv, starting from Defaults.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Defaults()
	r := reader{getenv: getenv}

	cfg.Seed = r.int64("CRAWL_SEED", cfg.Seed)
	cfg.Width = r.int("CRAWL_WIDTH", cfg.Width)
	cfg.Height = r.int("CRAWL_HEIGHT", cfg.Height)
	cfg.FOVRadius = r.int("CRAWL_FOV", cfg.FOVRadius)
	cfg.WaveDelay = r.duration("CRAWL_WAVE_DELAY", cfg.WaveDelay)
	cfg.RecordRuns = r.bool("CRAWL_RECORD_RUNS", cfg.RecordRuns)
	cfg.LogLevel = r.str("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = r.str("LOG_FORMAT", cfg.LogFormat)
	cfg.LogFile = r.str("LOG_FILE", cfg.LogFile)
	cfg.SSHAddr = r.str("CRAWL_SSH_ADDR", cfg.SSHAddr)
	cfg.SSHHostKey = r.str("CRAWL_SSH_KEY", cfg.SSHHostKey)
	cfg.SSHPasswordHash = r.str("CRAWL_SSH_PASSWORD_HASH", cfg.SSHPasswordHash)
	cfg.WSAddr = r.str("CRAWL_WS_ADDR", cfg.WSAddr)

	if v := getenv("CRAWL_MODE"); v != "" {
		mode, err := game.ParseMode(v)
		if err != nil {
			r.fail("CRAWL_MODE", err)
		} else {
			cfg.Mode = mode
		}
	}
	if r.err != nil {
		return Defaults(), r.err
	}
	return cfg, nil
}

// Options converts the game settings into session options.
func (c Config) Options() game.Options {
	return game.Options{
		Seed:       c.Seed,
		Mode:       c.Mode,
		Width:      c.Width,
		Height:     c.Height,
		FOVRadius:  c.FOVRadius,
		WaveDelay:  c.WaveDelay,
		RecordRuns: c.RecordRuns,
	}
}

// reader keeps the first parse error so FromEnv can report it once.
type reader struct {
	getenv func(string) string
	err    error
}

func (r *reader) fail(key string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("config: %s: %w", key, err)
	}
}

func (r *reader) str(key, def string) string {
	if v := r.getenv(key); v != "" {
		return v
	}
	return def
}

func (r *reader) int(key string, def int) int {
	v := r.getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(key, err)
		return def
	}
	return n
}

func (r *reader) int64(key string, def int64) int64 {
	v := r.getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		r.fail(key, err)
		return def
	}
	return n
}

func (r *reader) bool(key string, def bool) bool {
	v := r.getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.fail(key, err)
		return def
	}
	return b
}

func (r *reader) duration(key string, def time.Duration) time.Duration {
	v := r.getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.fail(key, err)
		return def
	}
	return d
}
