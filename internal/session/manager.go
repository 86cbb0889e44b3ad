package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/suPer8Hu/devopstile/internal/chat"
	"github.com/suPer8Hu/devopstile/internal/common"
	"go.uber.org/zap"
)

var ErrNotFound = errors.New("session not found")

type entry struct {
	store    *chat.Store
	lastSeen time.Time
}

// Manager owns one chat.Store per session. Sessions end explicitly or
// after ttl without any access; ending a session discards its state.
type Manager struct {
	newStore func() *chat.Store
	ttl      time.Duration
	now      func() time.Time
	log      *zap.Logger

	mu       sync.Mutex
	sessions map[string]*entry
}

// NewManager builds stores with newStore. A ttl <= 0 disables expiry.
func NewManager(newStore func() *chat.Store, ttl time.Duration, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		newStore: newStore,
		ttl:      ttl,
		now:      time.Now,
		log:      log,
		sessions: make(map[string]*entry),
	}
}

func (m *Manager) Start() (string, *chat.Store, error) {
	id, err := common.NewULID()
	if err != nil {
		return "", nil, err
	}
	st := m.newStore()

	m.mu.Lock()
	m.sessions[id] = &entry{store: st, lastSeen: m.now()}
	m.mu.Unlock()

	m.log.Debug("session started", zap.String("session_id", id))
	return id, st, nil
}

// Get returns the session's store and marks the session as used.
func (m *Manager) Get(id string) (*chat.Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	e.lastSeen = m.now()
	return e.store, nil
}

func (m *Manager) End(id string) error {
	m.mu.Lock()
	e, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	e.store.Close()
	m.log.Debug("session ended", zap.String("session_id", id))
	return nil
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep ends every session idle for longer than ttl.
func (m *Manager) Sweep() int {
	if m.ttl <= 0 {
		return 0
	}
	cutoff := m.now().Add(-m.ttl)

	var expired []*chat.Store
	m.mu.Lock()
	for id, e := range m.sessions {
		if e.lastSeen.Before(cutoff) {
			expired = append(expired, e.store)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, st := range expired {
		st.Close()
	}
	if len(expired) > 0 {
		m.log.Info("expired sessions", zap.Int("count", len(expired)))
	}
	return len(expired)
}

// Run sweeps every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			m.Sweep()
		}
	}
}

// Close ends every session.
func (m *Manager) Close() {
	m.mu.Lock()
	all := m.sessions
	m.sessions = make(map[string]*entry)
	m.mu.Unlock()

	for _, e := range all {
		e.store.Close()
	}
}
