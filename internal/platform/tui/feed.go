package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
)

const publishTimeout = time.Second

// Publisher receives session snapshots, such as the spectator hub.
type Publisher interface {
	Publish(ctx context.Context, sessionID string, v any) error
	EndSession(ctx context.Context, sessionID string) error
}

// Feed forwards the snapshots of one session to a Publisher.
// Only snapshots that differ from the previous one are sent.
type Feed struct {
	publisher Publisher
	sessionID string
	logger    *log.Logger

	last    sokoban.Snapshot
	started bool
}

// NewFeed creates a feed for sessionID. A nil publisher yields a nil feed,
// which is valid and does nothing.
func NewFeed(p Publisher, sessionID string, logger *log.Logger) *Feed {
	if p == nil {
		return nil
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Feed{publisher: p, sessionID: sessionID, logger: logger}
}

// SessionID returns the ID watchers use to follow this session.
func (f *Feed) SessionID() string {
	if f == nil {
		return ""
	}
	return f.sessionID
}

// Update publishes snap if it changed since the last call.
// Reports whether a snapshot was sent.
func (f *Feed) Update(snap sokoban.Snapshot) bool {
	if f == nil || (f.started && snap == f.last) {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := f.publisher.Publish(ctx, f.sessionID, snap); err != nil {
		f.logger.Warn("cannot publish snapshot", "session", f.sessionID, "err", err)
		return false
	}
	f.last = snap
	f.started = true
	return true
}

// Close tells watchers the session is over.
func (f *Feed) Close() {
	if f == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := f.publisher.EndSession(ctx, f.sessionID); err != nil {
		f.logger.Debug("cannot end spectator session", "session", f.sessionID, "err", err)
	}
}
