// Package ws serves game sessions over WebSocket. Each connection owns one
// session; the client sends commands as JSON and receives full view frames.
package ws

import "glyphcrawl/internal/game"

// Command actions a client may send.
const (
	ActionIntent   = "intent"
	ActionView     = "view"
	ActionSnapshot = "snapshot"
	ActionRestore  = "restore"
)

// ClientCommand is one message from the client.
type ClientCommand struct {
	Action   string         `json:"action"`
	Intent   *game.Intent   `json:"intent,omitempty"`
	Snapshot *game.Snapshot `json:"snapshot,omitempty"`
}

// Response types sent to the client.
const (
	TypeView     = "view"
	TypeSnapshot = "snapshot"
	TypeError    = "error"
)

// ServerResponse is one message to the client. Outcome is set on the view
// that answers an intent.
type ServerResponse struct {
	Type     string         `json:"type"`
	View     *game.View     `json:"view,omitempty"`
	Outcome  *game.Outcome  `json:"outcome,omitempty"`
	Snapshot *game.Snapshot `json:"snapshot,omitempty"`
	Error    string         `json:"error,omitempty"`
}

func viewResponse(v game.View, out *game.Outcome) ServerResponse {
	return ServerResponse{Type: TypeView, View: &v, Outcome: out}
}

func errorResponse(err error) ServerResponse {
	return ServerResponse{Type: TypeError, Error: err.Error()}
}
