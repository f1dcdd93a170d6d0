// Package testutil provides in-memory repositories, fixtures and HTTP
// helpers for handler and service tests.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"blog-api/internal/domain"
)

// ErrMockBackend stands in for a failing database or cache.
var ErrMockBackend = errors.New("mock: backend unavailable")

// MockUserRepository implements domain.UserRepository in memory. Profiles
// created with a user are kept alongside it.
type MockUserRepository struct {
	mu sync.RWMutex

	// Function overrides - set these to customize behavior
	CreateWithProfileFunc func(ctx context.Context, user *domain.User, profile *domain.Profile) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.User, error)
	GetByIdentifierFunc   func(ctx context.Context, identifier string) (*domain.User, error)
	UpdatePasswordFunc    func(ctx context.Context, userID, passwordHash string) error

	// In-memory storage keyed by user id
	Users    map[string]*domain.User
	Profiles map[string]*domain.Profile
}

var (
	_ domain.UserRepository    = (*MockUserRepository)(nil)
	_ domain.ProfileRepository = (*MockProfileRepository)(nil)
)

// NewMockUserRepository creates a new MockUserRepository with initialized maps
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:    make(map[string]*domain.User),
		Profiles: make(map[string]*domain.Profile),
	}
}

func (m *MockUserRepository) CreateWithProfile(ctx context.Context, user *domain.User, profile *domain.Profile) error {
	if m.CreateWithProfileFunc != nil {
		return m.CreateWithProfileFunc(ctx, user, profile)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.Users {
		if u.Email == user.Email {
			return &domain.ConflictError{Field: "email", Err: domain.ErrEmailExists}
		}
		if u.Username == user.Username {
			return &domain.ConflictError{Field: "username", Err: domain.ErrUsernameExists}
		}
	}

	if user.ID == "" {
		user.ID = nextID("user")
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	profile.UserID = user.ID
	profile.Username = user.Username
	profile.CreatedAt = user.CreatedAt
	profile.UpdatedAt = user.CreatedAt

	m.Users[user.ID] = user
	m.Profiles[user.ID] = profile
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	if user, ok := m.Users[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.Users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	if m.GetByIdentifierFunc != nil {
		return m.GetByIdentifierFunc(ctx, identifier)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.Users {
		if u.Username == identifier || u.Email == identifier {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, userID, passwordHash)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.Users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

// MockProfileRepository implements domain.ProfileRepository over the
// profiles held by a MockUserRepository.
type MockProfileRepository struct {
	Users *MockUserRepository

	UpdateFunc func(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.Profile, error)
}

// NewMockProfileRepository reads and writes the profiles of users.
func NewMockProfileRepository(users *MockUserRepository) *MockProfileRepository {
	return &MockProfileRepository{Users: users}
}

func (m *MockProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	m.Users.mu.RLock()
	defer m.Users.mu.RUnlock()

	if p, ok := m.Users.Profiles[userID]; ok {
		return p, nil
	}
	return nil, domain.ErrProfileNotFound
}

func (m *MockProfileRepository) GetByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	m.Users.mu.RLock()
	defer m.Users.mu.RUnlock()

	for _, p := range m.Users.Profiles {
		if p.Username == username {
			return p, nil
		}
	}
	return nil, domain.ErrProfileNotFound
}

func (m *MockProfileRepository) Update(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.Profile, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, userID, update)
	}
	m.Users.mu.Lock()
	defer m.Users.mu.Unlock()

	p, ok := m.Users.Profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	if update.Name != nil {
		p.Name = *update.Name
	}
	if update.Role != nil {
		p.Role = update.Role
	}
	if update.Bio != nil {
		p.Bio = update.Bio
	}
	if update.Website != nil {
		p.Website = update.Website
	}
	if update.Country != nil {
		p.Country = update.Country
	}
	if update.ProfileImage != nil {
		p.ProfileImage = update.ProfileImage
	}
	p.UpdatedAt = time.Now()
	return p, nil
}

// MockSessionRepository implements domain.SessionRepository in memory.
// GetWithUser joins against Users.
type MockSessionRepository struct {
	mu sync.RWMutex

	CreateFunc      func(ctx context.Context, session *domain.Session) error
	GetWithUserFunc func(ctx context.Context, id string) (*domain.Session, *domain.User, error)
	DeleteFunc      func(ctx context.Context, id string) error

	Sessions map[string]*domain.Session
	Users    *MockUserRepository
}

var _ domain.SessionRepository = (*MockSessionRepository)(nil)

func NewMockSessionRepository(users *MockUserRepository) *MockSessionRepository {
	return &MockSessionRepository{
		Sessions: make(map[string]*domain.Session),
		Users:    users,
	}
}

func (m *MockSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.Sessions[session.ID]; ok {
		return fmt.Errorf("mock: duplicate session id %q", session.ID)
	}
	stored := *session
	stored.Fresh = false
	m.Sessions[session.ID] = &stored
	return nil
}

func (m *MockSessionRepository) GetWithUser(ctx context.Context, id string) (*domain.Session, *domain.User, error) {
	if m.GetWithUserFunc != nil {
		return m.GetWithUserFunc(ctx, id)
	}
	m.mu.RLock()
	s, ok := m.Sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, nil, domain.ErrSessionNotFound
	}

	user, err := m.Users.GetByID(ctx, s.UserID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	copied := *s
	return &copied, user, nil
}

func (m *MockSessionRepository) UpdateExpiration(ctx context.Context, id string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.Sessions[id]; ok {
		s.ExpiresAt = expiresAt
	}
	return nil
}

func (m *MockSessionRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.Sessions, id)
	return nil
}

func (m *MockSessionRepository) ListIDsByUser(ctx context.Context, userID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var ids []string
	for id, s := range m.Sessions {
		if s.UserID == userID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (m *MockSessionRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range ids {
		delete(m.Sessions, id)
	}
	return nil
}

func (m *MockSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for id, s := range m.Sessions {
		if !s.ExpiresAt.After(now) {
			delete(m.Sessions, id)
			n++
		}
	}
	return n, nil
}

// Count returns the number of stored sessions.
func (m *MockSessionRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.Sessions)
}
