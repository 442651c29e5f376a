package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	sessionIdleTTL       = time.Hour
	sessionSweepInterval = 10 * time.Minute
)

// Manager hands out one Session per (franchise, week) pair and keeps it
// alive across requests, so every planner hitting the same week shares
// the same draft state and push subscriptions. Sessions nobody touched
// for a while are swept out, unless they hold unpublished drafts.
type Manager struct {
	roster    RosterSource
	feed      ShiftFeed
	publisher *Publisher
	auditCfg  AuditConfig
	loc       *time.Location
	logger    *slog.Logger

	mu       sync.Mutex
	sessions map[string]*Session

	stop     chan struct{}
	stopOnce sync.Once
}

func NewManager(roster RosterSource, feed ShiftFeed, publisher *Publisher, auditCfg AuditConfig, loc *time.Location, logger *slog.Logger) *Manager {
	m := &Manager{
		roster:    roster,
		feed:      feed,
		publisher: publisher,
		auditCfg:  auditCfg,
		loc:       loc,
		logger:    logger,
		sessions:  make(map[string]*Session),
		stop:      make(chan struct{}),
	}
	go m.sweep()
	return m
}

// Session returns the live session for the pair, starting one on first
// use. The ctx only bounds session startup, not its lifetime.
func (m *Manager) Session(ctx context.Context, franchiseID, weekID string) (*Session, error) {
	key := franchiseID + "/" + weekID

	m.mu.Lock()
	defer m.mu.Unlock()

	if session, ok := m.sessions[key]; ok {
		session.touch()
		return session, nil
	}

	session, err := NewSession(franchiseID, weekID, m.loc, m.publisher, m.auditCfg, m.logger)
	if err != nil {
		return nil, err
	}
	if err := session.Start(ctx, m.roster, m.feed); err != nil {
		return nil, err
	}
	m.sessions[key] = session
	return session, nil
}

// Drop closes and forgets the session for the pair, discarding its
// drafts.
func (m *Manager) Drop(franchiseID, weekID string) {
	key := franchiseID + "/" + weekID

	m.mu.Lock()
	defer m.mu.Unlock()

	if session, ok := m.sessions[key]; ok {
		session.Close()
		delete(m.sessions, key)
	}
}

func (m *Manager) sweep() {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.evictIdle(time.Now())
		}
	}
}

// evictIdle tears down sessions untouched for sessionIdleTTL. Sessions
// holding unpublished drafts are kept regardless of age, eviction must
// never lose a planner's pending work.
func (m *Manager) evictIdle(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, session := range m.sessions {
		if session.HasUnsavedChanges() {
			continue
		}
		if now.Sub(session.idleSince()) < sessionIdleTTL {
			continue
		}
		session.Close()
		delete(m.sessions, key)
		m.logger.Info("sesion inactiva cerrada", "key", key)
	}
}

// Close stops the sweeper and tears down every live session.
func (m *Manager) Close() {
	m.stopOnce.Do(func() { close(m.stop) })

	m.mu.Lock()
	defer m.mu.Unlock()

	for key, session := range m.sessions {
		session.Close()
		delete(m.sessions, key)
	}
}
