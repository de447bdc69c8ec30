package game

import (
	"encoding/json"
	"os"
	"path/filepath"

	"glyphcrawl/internal/logger"
)

// RunSummary records statistics gathered during one run.
type RunSummary struct {
	SessionID    string         `json:"sessionId"`
	Mode         Mode           `json:"mode"`
	DepthReached int            `json:"depthReached"`
	Wave         int            `json:"wave,omitempty"`
	Score        int            `json:"score,omitempty"`
	Level        int            `json:"level"`
	Gold         int            `json:"gold"`
	Turns        int            `json:"turns"`
	Kills        map[string]int `json:"kills"` // monster name → count
	ItemsUsed    map[string]int `json:"itemsUsed"`
	DamageDealt  int            `json:"damageDealt"`
	DamageTaken  int            `json:"damageTaken"`
	CauseOfDeath string         `json:"causeOfDeath"`
}

func newRunSummary(id string, mode Mode) RunSummary {
	return RunSummary{
		SessionID: id,
		Mode:      mode,
		Kills:     make(map[string]int),
		ItemsUsed: make(map[string]int),
	}
}

// saveRunLog appends the finished run as a single JSON line to runs.jsonl.
// A disk problem is logged and otherwise ignored.
func saveRunLog(run RunSummary) {
	if err := appendRunLog(run); err != nil {
		logger.Log.WithError(err).Warn("run log not saved")
	}
}

func appendRunLog(run RunSummary) error {
	dir, err := runLogDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(dir, "runs.jsonl"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := json.Marshal(run)
	if err != nil {
		return err
	}
	_, err = f.Write(append(data, '\n'))
	return err
}

// runLogDir returns the directory where run logs are stored:
// $XDG_DATA_HOME/glyphcrawl, defaulting to ~/.local/share/glyphcrawl.
func runLogDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "glyphcrawl"), nil
}
