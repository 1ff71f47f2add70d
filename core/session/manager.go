package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/freshmart/platform/core/event"
	"github.com/freshmart/platform/core/logger"
)

// Manager coordinates the session lifecycle: loading, guest fallback,
// authentication, partial user updates, and teardown.
//
// Storage failures on the read path are logged and absorbed: Current always
// hands back a usable session, falling back to an in-memory guest when the
// store is unreachable. The mutex also serves as the single-flight guard so
// concurrent first accesses mint exactly one guest session.
type Manager struct {
	store Store
	bus   *event.Bus
	log   *slog.Logger
	cfg   Config

	mu      sync.Mutex
	current *Session
}

// NewManager creates a session manager backed by the given store.
func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{
		store: store,
		log:   slog.Default(),
		cfg:   defaultConfig(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.cfg.GuestTTL > m.cfg.TTL {
		m.cfg.GuestTTL = m.cfg.TTL
	}
	return m
}

// Current returns the active session. When no session is stored, or the
// stored copy is malformed or expired, a fresh guest session is minted,
// persisted, and returned in its place. The only error returned is a
// failure to generate the guest token; storage trouble is absorbed.
func (m *Manager) Current(ctx context.Context) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sess := m.activeLocked(ctx); sess != nil {
		m.touchLocked(ctx, sess)
		return *sess, nil
	}

	return m.mintGuestLocked(ctx)
}

// Create builds an authenticated session for the given user, persists it,
// installs it as the current session, and publishes SessionCreated.
// The token is opaque: an empty one is generated, a provided one is stored
// as-is and never validated.
func (m *Manager) Create(ctx context.Context, user User, token string) (Session, error) {
	sess, err := New(user, token, m.cfg.TTL)
	if err != nil {
		return Session{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.installLocked(ctx, &sess)
	return sess, nil
}

// CreateGuest mints a guest session with the restricted permission set and
// the guest TTL, persists it, and installs it as the current session.
func (m *Manager) CreateGuest(ctx context.Context) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.mintGuestLocked(ctx)
}

// UpdateUser merges a partial user update into the current session and
// persists the result. Returns ErrNoActiveSession when nothing valid is
// active; it does not invent a guest session just to update it.
func (m *Manager) UpdateUser(ctx context.Context, upd UserUpdate) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess := m.activeLocked(ctx)
	if sess == nil {
		return Session{}, ErrNoActiveSession
	}

	sess.ApplyUserUpdate(upd)
	m.saveLocked(ctx, sess)
	return *sess, nil
}

// Clear removes persisted state, drops the in-memory copy, and publishes
// SessionCleared. The in-memory copy is dropped even when the store fails,
// so a subsequent Current never resurrects the previous user.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var cleared SessionCleared
	if m.current != nil {
		cleared.SessionID = m.current.ID
	}
	m.current = nil

	var storeErr error
	if err := m.store.Clear(ctx); err != nil {
		m.log.ErrorContext(ctx, "failed to clear persisted session",
			logger.Component("session"), logger.Error(err))
		storeErr = errors.Join(ErrClearSession, err)
	}

	m.publish(ctx, cleared)
	return storeErr
}

// activeLocked returns the valid, unexpired current session or nil.
// It consults the in-memory copy first and falls back to the store.
func (m *Manager) activeLocked(ctx context.Context) *Session {
	if m.current != nil {
		if m.current.Validate() == nil && !m.current.IsExpired() {
			return m.current
		}
		m.current = nil
	}

	stored, err := m.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			m.log.ErrorContext(ctx, "failed to load persisted session",
				logger.Component("session"), logger.Error(err))
		}
		return nil
	}

	if err := stored.Validate(); err != nil {
		m.log.WarnContext(ctx, "discarding invalid persisted session",
			logger.Component("session"), logger.Error(err))
		return nil
	}
	if stored.IsExpired() {
		m.log.InfoContext(ctx, "discarding expired persisted session",
			logger.Component("session"), logger.SessionID(stored.ID))
		return nil
	}

	m.current = &stored
	return m.current
}

// mintGuestLocked creates, persists, and installs a guest session.
func (m *Manager) mintGuestLocked(ctx context.Context) (Session, error) {
	sess, err := NewGuest(m.cfg.GuestTTL)
	if err != nil {
		return Session{}, err
	}

	m.installLocked(ctx, &sess)
	return sess, nil
}

// installLocked persists a freshly minted session, makes it current, and
// announces it. A failed save keeps the session in memory only; the caller
// still gets a usable session.
func (m *Manager) installLocked(ctx context.Context, sess *Session) {
	m.saveLocked(ctx, sess)
	m.current = sess
	m.publish(ctx, SessionCreated{Session: *sess})
}

// touchLocked refreshes activity on read paths and persists when the
// throttle interval has elapsed.
func (m *Manager) touchLocked(ctx context.Context, sess *Session) {
	if m.cfg.TouchInterval <= 0 {
		return
	}
	sess.Touch(m.cfg.TouchInterval)
	if sess.IsModified() {
		m.saveLocked(ctx, sess)
	}
}

// saveLocked persists the session, logging instead of propagating failures.
func (m *Manager) saveLocked(ctx context.Context, sess *Session) {
	if err := m.store.Save(ctx, *sess); err != nil {
		m.log.ErrorContext(ctx, "failed to persist session",
			logger.Component("session"),
			logger.SessionID(sess.ID),
			logger.Error(err))
		return
	}
	sess.markSaved()
}

func (m *Manager) publish(ctx context.Context, payload any) {
	if m.bus == nil {
		return
	}
	if err := m.bus.Publish(ctx, payload); err != nil {
		m.log.ErrorContext(ctx, "session event delivery failed",
			logger.Component("session"), logger.Error(err))
	}
}
