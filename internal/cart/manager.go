package cart

import (
	"context"
	"sync"
	"time"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/pricing"
	"go.uber.org/zap"
)

const (
	DefaultIdleTimeout = 30 * time.Minute

	pruneThreshold = 4096
)

// Manager hands out one Store per client session, rehydrating it on first access.
// Sessions untouched for the idle timeout are dropped from memory; their carts stay in storage.
type Manager struct {
	storage Storage
	policy  pricing.Policy
	logger  *zap.Logger
	idle    time.Duration
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	store    *Store
	lastSeen time.Time
}

func NewManager(storage Storage, policy pricing.Policy, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		storage:  storage,
		policy:   policy,
		logger:   logger,
		idle:     DefaultIdleTimeout,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

// SetIdleTimeout changes how long an untouched session stays in memory. Values <= 0 are ignored.
func (m *Manager) SetIdleTimeout(d time.Duration) {
	if d <= 0 {
		return
	}
	m.mu.Lock()
	m.idle = d
	m.mu.Unlock()
}

// Session returns the store for sessionID. A store that cannot be loaded is not cached.
func (m *Manager) Session(ctx context.Context, sessionID string) (*Store, error) {
	if sessionID == "" {
		return nil, ErrMissingSession
	}

	m.mu.Lock()
	if s, ok := m.sessions[sessionID]; ok {
		s.lastSeen = m.now()
		m.mu.Unlock()
		return s.store, nil
	}
	m.mu.Unlock()

	// Loaded without the lock held; if another caller got there first, its store wins.
	loaded, err := Open(ctx, SessionKey(sessionID), m.storage, m.policy, m.logger)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	if s, ok := m.sessions[sessionID]; ok {
		s.lastSeen = now
		return s.store, nil
	}
	if len(m.sessions) >= pruneThreshold {
		m.pruneLocked(now)
	}
	m.sessions[sessionID] = &session{store: loaded, lastSeen: now}
	return loaded, nil
}

// Forget drops the in-memory copy of a session; the next access rehydrates from storage.
func (m *Manager) Forget(sessionID string) {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()
}

// PruneIdle forgets every session not accessed within the idle timeout and reports how many were dropped.
func (m *Manager) PruneIdle() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pruneLocked(m.now())
}

func (m *Manager) pruneLocked(now time.Time) int {
	n := 0
	for id, s := range m.sessions {
		if now.Sub(s.lastSeen) > m.idle {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// Run prunes idle sessions every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.PruneIdle(); n > 0 {
				m.logger.Debug("pruned idle cart sessions", zap.Int("count", n))
			}
		}
	}
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) Policy() pricing.Policy {
	return m.policy
}
