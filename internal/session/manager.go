// Package session issues, validates and revokes login sessions.
//
// The relational store is authoritative. The optional cache holds a
// derived snapshot of {expiry, user attributes} per session id and is
// populated lazily on the first validation after a miss.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"blog-api/internal/domain"
	"blog-api/internal/observability"
)

const (
	DefaultTTL      = 30 * 24 * time.Hour
	DefaultCacheTTL = 10 * time.Minute
)

// Manager implements the session lifecycle on top of a SessionRepository
// and an optional SessionCache.
type Manager struct {
	store    domain.SessionRepository
	cache    domain.SessionCache
	ttl      time.Duration
	cacheTTL time.Duration
	now      func() time.Time
	newID    func() (string, error)
	logger   *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithTTL sets the session lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) { m.ttl = ttl }
}

// WithCacheTTL caps how long a cache entry may live.
func WithCacheTTL(ttl time.Duration) Option {
	return func(m *Manager) { m.cacheTTL = ttl }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithIDGenerator replaces GenerateID.
func WithIDGenerator(gen func() (string, error)) Option {
	return func(m *Manager) { m.newID = gen }
}

// WithLogger sets the logger used for cache degradation warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// NewManager creates a session manager. cache may be nil to run store-only.
func NewManager(store domain.SessionRepository, cache domain.SessionCache, opts ...Option) *Manager {
	m := &Manager{
		store:    store,
		cache:    cache,
		ttl:      DefaultTTL,
		cacheTTL: DefaultCacheTTL,
		now:      time.Now,
		newID:    GenerateID,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// TTL returns the configured session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Now returns the manager's current time.
func (m *Manager) Now() time.Time {
	return m.now()
}

// RenewalThreshold is the remaining lifetime below which a valid session is
// extended and its cookie re-issued.
func (m *Manager) RenewalThreshold() time.Duration {
	return m.ttl / 2
}

func backendError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrAuthBackend, op, err)
}

// CreateSession persists a new session for userID expiring one TTL from now.
// The cache is not touched.
func (m *Manager) CreateSession(ctx context.Context, userID string) (*domain.Session, error) {
	id, err := m.newID()
	if err != nil {
		return nil, backendError("generate session id", err)
	}

	s := &domain.Session{
		ID:        id,
		UserID:    userID,
		ExpiresAt: m.now().Add(m.ttl),
		Fresh:     true,
	}
	if err := m.store.Create(ctx, s); err != nil {
		return nil, backendError("create session", err)
	}

	observability.SessionsCreated.Inc()
	return s, nil
}

// ValidateSession resolves sessionID to its session and owner. An unknown,
// orphaned or expired session yields (nil, nil, nil). Store and cache
// failures are returned wrapping domain.ErrAuthBackend and never read as
// an invalid session.
//
// A valid session with less than RenewalThreshold left is extended to one
// TTL from now and returned with Fresh set.
func (m *Manager) ValidateSession(ctx context.Context, sessionID string) (*domain.Session, *domain.User, error) {
	if sessionID == "" {
		observability.SessionValidations.WithLabelValues("invalid").Inc()
		return nil, nil, nil
	}

	s, user, err := m.lookup(ctx, sessionID)
	if err != nil {
		observability.SessionValidations.WithLabelValues("error").Inc()
		return nil, nil, err
	}
	if s == nil {
		observability.SessionValidations.WithLabelValues("invalid").Inc()
		return nil, nil, nil
	}

	now := m.now()
	if !s.ExpiresAt.After(now) {
		observability.SessionValidations.WithLabelValues("expired").Inc()
		if err := m.InvalidateSession(ctx, s.ID); err != nil {
			return nil, nil, err
		}
		return nil, nil, nil
	}

	if s.ExpiresAt.Sub(now) < m.RenewalThreshold() {
		if err := m.renew(ctx, s, now); err != nil {
			observability.SessionValidations.WithLabelValues("error").Inc()
			return nil, nil, err
		}
	}

	observability.SessionValidations.WithLabelValues("valid").Inc()
	return s, user, nil
}

// lookup reads the cache, falling back to the store and writing the result
// back on a miss.
func (m *Manager) lookup(ctx context.Context, sessionID string) (*domain.Session, *domain.User, error) {
	if m.cache != nil {
		entry, found, err := m.cache.Get(ctx, sessionID)
		if err != nil {
			return nil, nil, backendError("read session cache", err)
		}
		if found {
			observability.SessionValidations.WithLabelValues("cache_hit").Inc()
			s, user := fromCacheEntry(sessionID, entry)
			return s, user, nil
		}
	}

	if m.cache != nil {
		observability.SessionValidations.WithLabelValues("cache_miss").Inc()
	}
	s, user, err := m.store.GetWithUser(ctx, sessionID)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, backendError("read session", err)
	}

	entry := toCacheEntry(s, user)
	if m.cache != nil && s.ExpiresAt.After(m.now()) {
		if err := m.cache.Set(ctx, sessionID, entry, m.cacheLifetime(s.ExpiresAt)); err != nil {
			return nil, nil, backendError("write session cache", err)
		}
	}

	// Both paths return the same projection of the user.
	s, user = fromCacheEntry(s.ID, entry)
	return s, user, nil
}

// renew moves the expiry to one TTL from now. The expiry never moves backwards.
func (m *Manager) renew(ctx context.Context, s *domain.Session, now time.Time) error {
	next := now.Add(m.ttl)
	if next.Before(s.ExpiresAt) {
		next = s.ExpiresAt
	}

	if err := m.store.UpdateExpiration(ctx, s.ID, next); err != nil {
		return backendError("renew session", err)
	}
	if m.cache != nil {
		if err := m.cache.Delete(ctx, s.ID); err != nil {
			return backendError("evict session cache", err)
		}
	}

	s.ExpiresAt = next
	s.Fresh = true
	observability.SessionsRenewed.Inc()
	return nil
}

func (m *Manager) cacheLifetime(expiresAt time.Time) time.Duration {
	remaining := expiresAt.Sub(m.now())
	if remaining < m.cacheTTL {
		return remaining
	}
	return m.cacheTTL
}

// InvalidateSession deletes the session and its cache entry. Deleting a
// session that does not exist is not an error.
func (m *Manager) InvalidateSession(ctx context.Context, sessionID string) error {
	if err := m.store.Delete(ctx, sessionID); err != nil {
		return backendError("delete session", err)
	}
	if m.cache != nil {
		if err := m.cache.Delete(ctx, sessionID); err != nil {
			return backendError("evict session cache", err)
		}
	}
	observability.SessionsInvalidated.Inc()
	return nil
}

// InvalidateAllUserSessions deletes every session userID holds as of now,
// returning how many were removed. Sessions created after the enumeration
// survive.
func (m *Manager) InvalidateAllUserSessions(ctx context.Context, userID string) (int, error) {
	ids, err := m.store.ListIDsByUser(ctx, userID)
	if err != nil {
		return 0, backendError("list user sessions", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	if err := m.store.DeleteByIDs(ctx, ids); err != nil {
		return 0, backendError("delete user sessions", err)
	}
	if m.cache != nil {
		if err := m.cache.Delete(ctx, ids...); err != nil {
			return 0, backendError("evict session cache", err)
		}
	}

	observability.SessionsInvalidated.Add(float64(len(ids)))
	return len(ids), nil
}

// SweepExpiredSessions deletes every stored session whose expiry has passed.
// Cache entries are left to their own TTL.
func (m *Manager) SweepExpiredSessions(ctx context.Context) (int64, error) {
	n, err := m.store.DeleteExpired(ctx, m.now())
	if err != nil {
		return 0, backendError("sweep sessions", err)
	}
	observability.SessionsSwept.Add(float64(n))
	return n, nil
}

// RunSweeper calls SweepExpiredSessions every interval until ctx is done.
func (m *Manager) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := m.SweepExpiredSessions(ctx)
			if err != nil {
				m.logger.Error("session sweep failed", "error", err)
				continue
			}
			if n > 0 {
				m.logger.Info("swept expired sessions", "count", n)
			}
		}
	}
}

func toCacheEntry(s *domain.Session, u *domain.User) *domain.SessionCacheEntry {
	return &domain.SessionCacheEntry{
		ExpiresAt: s.ExpiresAt,
		User:      domain.NewCachedUserAttrs(u),
	}
}

func fromCacheEntry(sessionID string, e *domain.SessionCacheEntry) (*domain.Session, *domain.User) {
	s := &domain.Session{
		ID:        sessionID,
		UserID:    e.User.ID,
		ExpiresAt: e.ExpiresAt,
	}
	return s, e.User.User()
}
