package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

type board struct {
	Steps int    `json:"steps"`
	Board string `json:"board"`
}

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(log.New(io.Discard))
	go hub.Run(ctx)

	srv := httptest.NewServer(hub.Handler())
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, session string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/watch/" + session
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readUntil reads messages until match returns true or the deadline passes.
func readUntil(t *testing.T, conn *websocket.Conn, match func(Message) bool) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read: %v", err)
		}
		if match(msg) {
			return msg
		}
	}
}

func stepsOf(t *testing.T, msg Message) int {
	t.Helper()
	var b board
	if err := json.Unmarshal(msg.Data, &b); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	return b.Steps
}

func TestWatcherReceivesLatestAndUpdates(t *testing.T) {
	hub, srv := startHub(t)
	ctx := context.Background()

	if err := hub.Publish(ctx, "s1", board{Steps: 1, Board: "@$."}); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	conn := dial(t, srv, "s1")
	first := readUntil(t, conn, func(Message) bool { return true })
	if first.SessionID != "s1" || first.Event != EventSnapshot || stepsOf(t, first) != 1 {
		t.Errorf("expected latest snapshot on join, got %+v", first)
	}

	if err := hub.Publish(ctx, "s1", board{Steps: 2}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	readUntil(t, conn, func(m Message) bool { return m.Event == EventSnapshot && stepsOf(t, m) == 2 })
}

func TestWatcherOnlySeesItsSession(t *testing.T) {
	hub, srv := startHub(t)
	ctx := context.Background()

	hub.Publish(ctx, "a", board{Steps: 1})
	hub.Publish(ctx, "b", board{Steps: 100})

	conn := dial(t, srv, "a")
	readUntil(t, conn, func(m Message) bool { return stepsOf(t, m) == 1 })

	hub.Publish(ctx, "b", board{Steps: 101})
	hub.Publish(ctx, "a", board{Steps: 2})

	msg := readUntil(t, conn, func(Message) bool { return true })
	if msg.SessionID != "a" {
		t.Errorf("received message for session %q", msg.SessionID)
	}
}

func TestEndSession(t *testing.T) {
	hub, srv := startHub(t)
	ctx := context.Background()

	hub.Publish(ctx, "s1", board{Steps: 1})
	conn := dial(t, srv, "s1")
	readUntil(t, conn, func(m Message) bool { return m.Event == EventSnapshot })

	if err := hub.EndSession(ctx, "s1"); err != nil {
		t.Fatalf("EndSession: %v", err)
	}
	readUntil(t, conn, func(m Message) bool { return m.Event == EventEnded })

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	var closeErr *websocket.CloseError
	if !errors.As(err, &closeErr) {
		t.Fatalf("expected the hub to close the connection, got %v", err)
	}

	ids, err := hub.Sessions(ctx)
	if err != nil {
		t.Fatalf("Sessions: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("ended session should not be listed, got %v", ids)
	}
}

func TestWatcherOfUnknownSessionIsClosed(t *testing.T) {
	hub, srv := startHub(t)
	ctx := context.Background()

	hub.Publish(ctx, "live", board{Steps: 1})
	hub.Publish(ctx, "gone", board{Steps: 1})
	hub.EndSession(ctx, "gone")

	for _, session := range []string{"missing", "gone"} {
		t.Run(session, func(t *testing.T) {
			conn := dial(t, srv, session)
			conn.SetReadDeadline(time.Now().Add(2 * time.Second))
			_, _, err := conn.ReadMessage()
			var closeErr *websocket.CloseError
			if !errors.As(err, &closeErr) {
				t.Fatalf("expected close, got %v", err)
			}
		})
	}
}

func TestSessionsEndpoint(t *testing.T) {
	hub, srv := startHub(t)
	ctx := context.Background()

	hub.Publish(ctx, "zeta", board{})
	hub.Publish(ctx, "alpha", board{})

	resp, err := http.Get(srv.URL + "/sessions")
	if err != nil {
		t.Fatalf("GET /sessions: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		Sessions []string `json:"sessions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if strings.Join(body.Sessions, ",") != "alpha,zeta" {
		t.Errorf("unexpected sessions %v", body.Sessions)
	}
}

func TestStoppedHub(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(log.New(io.Discard))
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	if err := hub.Publish(context.Background(), "s", board{}); err != ErrHubStopped {
		t.Errorf("expected ErrHubStopped, got %v", err)
	}
	if _, err := hub.Sessions(context.Background()); err != ErrHubStopped {
		t.Errorf("expected ErrHubStopped, got %v", err)
	}
}

func TestPublishEncodeError(t *testing.T) {
	hub, _ := startHub(t)
	if err := hub.Publish(context.Background(), "s", make(chan int)); err == nil {
		t.Error("expected encode error")
	}
}
