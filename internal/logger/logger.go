// Package logger holds the process-wide structured logger.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the shared logger. It is usable before Init with logrus defaults.
var Log = logrus.New()

// Init configures Log. level is a logrus level name ("debug", "info", ...)
// and falls back to info; format "json" selects the JSON formatter,
// anything else the text formatter. A nil out means stderr.
func Init(level, format string, out io.Writer) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	if strings.ToLower(format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if out == nil {
		out = os.Stderr
	}
	Log.SetOutput(out)
}

// Silence discards all output. Tests call it from TestMain.
func Silence() {
	Log.SetOutput(io.Discard)
	Log.SetLevel(logrus.PanicLevel)
}
