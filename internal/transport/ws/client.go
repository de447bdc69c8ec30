package ws

import (
	"errors"
	"time"

	"glyphcrawl/internal/game"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 16 << 10
)

var errNoPayload = errors.New("missing payload")

// client pumps one connection. Only writePump writes to conn.
type client struct {
	conn    *websocket.Conn
	session *game.Session
	send    chan ServerResponse
	notify  <-chan struct{}
	done    chan struct{}
	gone    chan struct{}
	log     *logrus.Entry
}

func newClient(conn *websocket.Conn, sess *game.Session, notify <-chan struct{}, log *logrus.Entry) *client {
	return &client{
		conn:    conn,
		session: sess,
		send:    make(chan ServerResponse, 16),
		notify:  notify,
		done:    make(chan struct{}),
		gone:    make(chan struct{}),
		log:     log,
	}
}

// readPump decodes commands until the connection fails, then closes the
// session.
func (c *client) readPump() {
	defer func() {
		close(c.done)
		c.session.Close()
		if err := c.conn.Close(); err != nil {
			c.log.WithError(err).Debug("close websocket")
		}
		c.log.Info("client disconnected")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.WithError(err).Warn("failed to set read deadline")
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	c.drain()
	c.push(viewResponse(c.session.View(), nil))
	for {
		var cmd ClientCommand
		if err := c.conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.WithError(err).Warn("websocket read failed")
			}
			return
		}
		if !c.push(c.dispatch(cmd)) {
			return
		}
	}
}

func (c *client) dispatch(cmd ClientCommand) ServerResponse {
	switch cmd.Action {
	case ActionIntent:
		if cmd.Intent == nil {
			return errorResponse(errNoPayload)
		}
		out, err := c.session.Handle(*cmd.Intent)
		if err != nil {
			return errorResponse(err)
		}
		c.drain()
		return viewResponse(c.session.View(), &out)
	case ActionView:
		c.drain()
		return viewResponse(c.session.View(), nil)
	case ActionSnapshot:
		snap := c.session.Snapshot()
		return ServerResponse{Type: TypeSnapshot, Snapshot: &snap}
	case ActionRestore:
		if cmd.Snapshot == nil {
			return errorResponse(errNoPayload)
		}
		if err := c.session.Restore(*cmd.Snapshot); err != nil {
			return errorResponse(err)
		}
		c.drain()
		return viewResponse(c.session.View(), nil)
	}
	return errorResponse(errors.New("unknown action " + cmd.Action))
}

// drain drops a pending wake-up; the frame about to be built includes it.
func (c *client) drain() {
	select {
	case <-c.notify:
	default:
	}
}

func (c *client) push(resp ServerResponse) bool {
	select {
	case c.send <- resp:
		return true
	case <-c.gone:
		return false
	}
}

// writePump sends responses, pushes a frame when the session changes on
// its own (arena waves) and keeps the connection alive with pings.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		close(c.gone)
		c.conn.Close()
	}()

	for {
		select {
		case resp := <-c.send:
			if err := c.write(resp); err != nil {
				c.log.WithError(err).Debug("write failed")
				return
			}
		case <-c.notify:
			if err := c.write(viewResponse(c.session.View(), nil)); err != nil {
				c.log.WithError(err).Debug("push failed")
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.WithError(err).Debug("ping failed")
				return
			}
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}

func (c *client) write(resp ServerResponse) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteJSON(resp)
}
