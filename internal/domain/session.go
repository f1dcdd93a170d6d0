package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	// ErrAuthBackend reports that the session store or cache failed. It is never
	// a statement about the validity of a session.
	ErrAuthBackend = errors.New("authentication backend failure")
)

// Session represents a user session
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	// Fresh is set by validation when the expiry was extended and the
	// cookie must be re-issued. It is not persisted.
	Fresh bool `json:"-"`
}

// SessionRepository defines the interface for session data access
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	// GetWithUser joins the session with its owner. It returns
	// ErrSessionNotFound when either side is missing.
	GetWithUser(ctx context.Context, id string) (*Session, *User, error)
	UpdateExpiration(ctx context.Context, id string, expiresAt time.Time) error
	Delete(ctx context.Context, id string) error
	ListIDsByUser(ctx context.Context, userID string) ([]string, error)
	DeleteByIDs(ctx context.Context, ids []string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// SessionCacheEntry is the denormalised snapshot stored in the session cache.
type SessionCacheEntry struct {
	ExpiresAt time.Time       `json:"expiresAt"`
	User      CachedUserAttrs `json:"user"`
}

// CachedUserAttrs are the user attributes kept alongside a cached session.
type CachedUserAttrs struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Username      string    `json:"username"`
	Provider      string    `json:"provider"`
	EmailVerified bool      `json:"emailVerified"`
	HasPassword   bool      `json:"hasPassword"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewCachedUserAttrs projects u onto the attributes kept in the cache.
func NewCachedUserAttrs(u *User) CachedUserAttrs {
	return CachedUserAttrs{
		ID:            u.ID,
		Email:         u.Email,
		Username:      u.Username,
		Provider:      u.Provider,
		EmailVerified: u.EmailVerified,
		HasPassword:   u.HasPassword(),
		CreatedAt:     u.CreatedAt,
	}
}

// User rebuilds the cached user. PasswordHash stays empty; HasPassword
// still reports the cached flag.
func (a CachedUserAttrs) User() *User {
	return &User{
		ID:            a.ID,
		Email:         a.Email,
		Username:      a.Username,
		Provider:      a.Provider,
		EmailVerified: a.EmailVerified,
		CreatedAt:     a.CreatedAt,
		passwordSet:   a.HasPassword,
	}
}

// SessionCache is a disposable, write-through cache of session lookups.
// Get reports found=false on a miss; a miss is not an error.
type SessionCache interface {
	Get(ctx context.Context, sessionID string) (entry *SessionCacheEntry, found bool, err error)
	Set(ctx context.Context, sessionID string, entry *SessionCacheEntry, ttl time.Duration) error
	Delete(ctx context.Context, sessionIDs ...string) error
}
