package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"blog-api/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

// TestPassword is the plain-text password of every fixture user.
const TestPassword = "password123"

// Counter for generating unique IDs
var idCounter atomic.Int64

func nextID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, idCounter.Add(1))
}

// testPasswordHash is computed once at the cheapest cost.
var testPasswordHash = func() string {
	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
}()

// UserOptions allows customizing user fixture creation
type UserOptions struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Provider     string
	CreatedAt    time.Time
}

// NewTestUser creates a password user whose password is TestPassword.
func NewTestUser(opts ...func(*UserOptions)) *domain.User {
	o := &UserOptions{
		ID:           nextID("user"),
		PasswordHash: testPasswordHash,
		Provider:     domain.ProviderEmail,
	}
	o.Username = fmt.Sprintf("testuser%d", idCounter.Load())

	for _, opt := range opts {
		opt(o)
	}

	if o.Email == "" {
		o.Email = o.Username + "@example.com"
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}

	return &domain.User{
		ID:           o.ID,
		Email:        o.Email,
		Username:     o.Username,
		PasswordHash: o.PasswordHash,
		Provider:     o.Provider,
		CreatedAt:    o.CreatedAt,
	}
}

func WithUserID(id string) func(*UserOptions) {
	return func(o *UserOptions) { o.ID = id }
}

func WithUsername(username string) func(*UserOptions) {
	return func(o *UserOptions) { o.Username = username }
}

func WithEmail(email string) func(*UserOptions) {
	return func(o *UserOptions) { o.Email = email }
}

// WithProvider makes a provider-only account without a password.
func WithProvider(provider string) func(*UserOptions) {
	return func(o *UserOptions) {
		o.Provider = provider
		o.PasswordHash = ""
	}
}

// SeedUser stores user with a default profile.
func (m *MockUserRepository) SeedUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Users[user.ID] = user
	m.Profiles[user.ID] = &domain.Profile{
		UserID:    user.ID,
		Username:  user.Username,
		Name:      user.Username,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.CreatedAt,
	}
}

// NewTestSession creates a session for userID expiring in a day.
func NewTestSession(userID string) *domain.Session {
	return &domain.Session{
		ID:        nextID("session"),
		UserID:    userID,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
}

// PostOptions allows customizing post fixture creation
type PostOptions struct {
	ID        string
	AuthorID  string
	Title     string
	Published bool
}

// NewTestPost creates a draft by a fresh author unless overridden.
func NewTestPost(opts ...func(*PostOptions)) *domain.Post {
	o := &PostOptions{
		ID:       nextID("post"),
		AuthorID: nextID("user"),
		Title:    "A test post",
	}
	for _, opt := range opts {
		opt(o)
	}

	now := time.Now()
	p := &domain.Post{
		ID:        o.ID,
		AuthorID:  o.AuthorID,
		Title:     o.Title,
		Published: o.Published,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if o.Published {
		p.PublishedAt = &now
	}
	return p
}

func WithPostID(id string) func(*PostOptions) {
	return func(o *PostOptions) { o.ID = id }
}

func WithAuthor(authorID string) func(*PostOptions) {
	return func(o *PostOptions) { o.AuthorID = authorID }
}

func WithPublished() func(*PostOptions) {
	return func(o *PostOptions) { o.Published = true }
}

// ResetIDCounter resets the ID counter (useful for deterministic tests)
func ResetIDCounter() {
	idCounter.Store(0)
}
