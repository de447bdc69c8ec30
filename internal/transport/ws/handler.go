package ws

import (
	"net/http"
	"strconv"

	"glyphcrawl/internal/game"
	"glyphcrawl/internal/logger"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Handler upgrades requests and runs one session per connection. The
// optional query parameters mode and seed override the base options.
type Handler struct {
	base game.Options
}

func NewHandler(base game.Options) *Handler {
	return &Handler{base: base}
}

// NewMux routes /ws to h and answers /health.
func NewMux(h *Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/ws", h)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return mux
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	opts, err := h.options(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	n := newNotifier()
	opts.Observer = n
	sess, err := game.New(opts)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.WithError(err).Warn("websocket upgrade failed")
		sess.Close()
		return
	}
	log := logger.Log.WithFields(logrus.Fields{
		"session": sess.ID().String(),
		"remote":  r.RemoteAddr,
	})
	if err := sess.Start(); err != nil {
		log.WithError(err).Error("session start failed")
		sess.Close()
		conn.Close()
		return
	}
	log.Info("client connected")

	c := newClient(conn, sess, n.ch, log)
	go c.writePump()
	go c.readPump()
}

func (h *Handler) options(r *http.Request) (game.Options, error) {
	opts := h.base
	q := r.URL.Query()
	if v := q.Get("mode"); v != "" {
		mode, err := game.ParseMode(v)
		if err != nil {
			return opts, err
		}
		opts.Mode = mode
	}
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return opts, err
		}
		opts.Seed = seed
	}
	return opts, nil
}

// notifier turns session events into a coalescing wake-up signal. It runs
// under the session lock, so it must never block or call back into the
// session.
type notifier struct {
	game.NopObserver
	ch chan struct{}
}

func newNotifier() *notifier {
	return &notifier{ch: make(chan struct{}, 1)}
}

func (n *notifier) Message(game.Message) { n.poke() }

func (n *notifier) WaveCleared(int, int) { n.poke() }

func (n *notifier) poke() {
	select {
	case n.ch <- struct{}{}:
	default:
	}
}
