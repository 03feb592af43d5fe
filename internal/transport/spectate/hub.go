package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	sendBuffer = 32
)

// Events carried by Message.
const (
	EventSnapshot = "snapshot"
	EventEnded    = "ended"
)

// ErrHubStopped is returned when the hub's Run loop is not running.
var ErrHubStopped = errors.New("spectate: hub stopped")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Watchers are read-only; any origin may watch.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Message is one frame sent to watchers.
type Message struct {
	SessionID string          `json:"session_id"`
	Event     string          `json:"event"`
	Data      json.RawMessage `json:"data,omitempty"`
}

type client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	sessionID string
}

type listRequest struct {
	reply chan []string
}

// Hub fans session snapshots out to watchers.
type Hub struct {
	register   chan *client
	unregister chan *client
	publish    chan *Message
	sessions   chan listRequest
	done       chan struct{}
	logger     *log.Logger
}

// NewHub creates a hub. Run must be called for it to do anything.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		register:   make(chan *client),
		unregister: make(chan *client),
		publish:    make(chan *Message),
		sessions:   make(chan listRequest),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run is the hub's event loop. It returns when ctx is cancelled, after
// disconnecting every watcher.
func (h *Hub) Run(ctx context.Context) {
	watchers := make(map[string]map[*client]bool)
	latest := make(map[string][]byte)

	drop := func(c *client) {
		clients, ok := watchers[c.sessionID]
		if !ok || !clients[c] {
			return
		}
		delete(clients, c)
		close(c.send)
		if len(clients) == 0 {
			delete(watchers, c.sessionID)
		}
		h.logger.Debug("watcher left", "session", c.sessionID, "remaining", len(clients))
	}

	fanout := func(sessionID string, data []byte) {
		for c := range watchers[sessionID] {
			select {
			case c.send <- data:
			default:
				// Slow watcher.
				drop(c)
			}
		}
	}

	defer func() {
		close(h.done)
		for _, clients := range watchers {
			for c := range clients {
				close(c.send)
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case c := <-h.register:
			data, live := latest[c.sessionID]
			if !live {
				// Unknown or finished session: the write pump closes the socket.
				close(c.send)
				h.logger.Debug("watcher refused", "session", c.sessionID)
				continue
			}
			if watchers[c.sessionID] == nil {
				watchers[c.sessionID] = make(map[*client]bool)
			}
			watchers[c.sessionID][c] = true
			c.send <- data
			h.logger.Debug("watcher joined", "session", c.sessionID, "watchers", len(watchers[c.sessionID]))

		case c := <-h.unregister:
			drop(c)

		case msg := <-h.publish:
			data, err := json.Marshal(msg)
			if err != nil {
				h.logger.Warn("cannot encode spectator message", "session", msg.SessionID, "err", err)
				continue
			}
			if msg.Event != EventEnded {
				latest[msg.SessionID] = data
				fanout(msg.SessionID, data)
				continue
			}

			// The session is over: send the last frame, then disconnect its
			// watchers. Their write pumps flush it before the close frame.
			delete(latest, msg.SessionID)
			fanout(msg.SessionID, data)
			for c := range watchers[msg.SessionID] {
				drop(c)
			}

		case req := <-h.sessions:
			ids := make([]string, 0, len(latest))
			for id := range latest {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			req.reply <- ids
		}
	}
}

func (h *Hub) send(ctx context.Context, msg *Message) error {
	select {
	case h.publish <- msg:
		return nil
	case <-h.done:
		return ErrHubStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Publish sends a snapshot of a session to its watchers and keeps it as the
// session's latest state. v is encoded as JSON.
func (h *Hub) Publish(ctx context.Context, sessionID string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("spectate: encode snapshot: %w", err)
	}
	return h.send(ctx, &Message{SessionID: sessionID, Event: EventSnapshot, Data: data})
}

// EndSession tells watchers that a session is over, disconnects them and
// forgets the session.
func (h *Hub) EndSession(ctx context.Context, sessionID string) error {
	return h.send(ctx, &Message{SessionID: sessionID, Event: EventEnded})
}

// Sessions returns the IDs of live sessions, sorted.
func (h *Hub) Sessions(ctx context.Context) ([]string, error) {
	req := listRequest{reply: make(chan []string, 1)}
	select {
	case h.sessions <- req:
	case <-h.done:
		return nil, ErrHubStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return <-req.reply, nil
}

// Handler returns the HTTP routes of the spectator feed.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /watch/{session}", func(w http.ResponseWriter, r *http.Request) {
		h.ServeWS(w, r, r.PathValue("session"))
	})
	mux.HandleFunc("GET /sessions", h.serveSessions)
	return mux
}

func (h *Hub) serveSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := h.Sessions(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string][]string{"sessions": ids}); err != nil {
		h.logger.Warn("cannot write session list", "err", err)
	}
}

// ServeWS upgrades the request and attaches a watcher to sessionID. Watchers
// of a session that is not live are disconnected right away.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, sessionID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "err", err)
		return
	}

	c := &client{
		hub:       h,
		conn:      conn,
		send:      make(chan []byte, sendBuffer),
		sessionID: sessionID,
	}

	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

// ListenAndServe serves the spectator feed on addr until ctx is cancelled.
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// readPump drains the connection so pongs and close frames are processed.
func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Debug("websocket read error", "session", c.sessionID, "err", err)
			}
			return
		}
	}
}

// writePump sends hub messages and pings to the connection.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
