package tracker

import (
	"context"
	"sync"

	"dsaprep/internal/events"
	"dsaprep/internal/models"

	"go.uber.org/zap"
)

// ProfileStore fetches stored user profiles.
type ProfileStore interface {
	Profile(ctx context.Context, uid string) (*models.Profile, error)
}

// Manager owns one session per authenticated user, created lazily on
// first use. A page reload therefore always re-derives state from the
// store, never from local-only state.
type Manager struct {
	store    Store
	profiles ProfileStore
	logger   *zap.Logger
	publish  func(events.Event)

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(store Store, profiles ProfileStore, logger *zap.Logger, publish func(events.Event)) *Manager {
	return &Manager{
		store:    store,
		profiles: profiles,
		logger:   logger,
		publish:  publish,
		sessions: make(map[string]*Session),
	}
}

// Session returns the user's session, creating and loading it if needed.
func (m *Manager) Session(ctx context.Context, uid string) (*Session, error) {
	m.mu.Lock()
	if s, ok := m.sessions[uid]; ok {
		m.mu.Unlock()
		return s, nil
	}
	m.mu.Unlock()

	profile, err := m.profiles.Profile(ctx, uid)
	if err != nil {
		return nil, err
	}

	s := NewSession(m.store, m.logger, m.publish, profile)
	// topic load failures leave the session in its error state; the
	// session is still usable for retry via topic/goal selection
	_ = s.LoadTopics(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.sessions[uid]; ok {
		return existing, nil
	}
	m.sessions[uid] = s
	return s, nil
}

// Drop discards a user's session, e.g. on logout or account deletion.
func (m *Manager) Drop(uid string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, uid)
}
