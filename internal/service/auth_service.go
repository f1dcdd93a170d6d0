package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"blog-api/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the work factor for new password hashes.
const DefaultBcryptCost = 12

// SessionManager is the part of the session lifecycle the auth flows drive.
type SessionManager interface {
	CreateSession(ctx context.Context, userID string) (*domain.Session, error)
	InvalidateSession(ctx context.Context, sessionID string) error
	InvalidateAllUserSessions(ctx context.Context, userID string) (int, error)
}

// SignupParams is a validated signup request.
type SignupParams struct {
	Email    string
	Username string
	Password string
	Name     string
}

type AuthService struct {
	userRepo    domain.UserRepository
	profileRepo domain.ProfileRepository
	sessions    SessionManager
	bcryptCost  int
}

// AuthOption configures an AuthService.
type AuthOption func(*AuthService)

// WithBcryptCost overrides DefaultBcryptCost.
func WithBcryptCost(cost int) AuthOption {
	return func(s *AuthService) { s.bcryptCost = cost }
}

func NewAuthService(userRepo domain.UserRepository, profileRepo domain.ProfileRepository, sessions SessionManager, opts ...AuthOption) *AuthService {
	s := &AuthService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		sessions:    sessions,
		bcryptCost:  DefaultBcryptCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Signup creates a password account with its profile and opens a session
// for it. A taken email or username is returned as *domain.ConflictError.
func (s *AuthService) Signup(ctx context.Context, p SignupParams) (*domain.User, *domain.Session, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), s.bcryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:        p.Email,
		Username:     p.Username,
		PasswordHash: string(hash),
		Provider:     domain.ProviderEmail,
	}
	profile := &domain.Profile{Name: p.Name}

	if err := s.userRepo.CreateWithProfile(ctx, user, profile); err != nil {
		return nil, nil, err
	}

	session, err := s.sessions.CreateSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	slog.Info("user signed up", slog.String("user_id", user.ID), slog.String("username", user.Username))
	return user, session, nil
}

// Login checks the password of the account matching identifier (email or
// username) and opens a session.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*domain.User, *domain.Session, error) {
	user, err := s.userRepo.GetByIdentifier(ctx, identifier)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, nil, err
	}

	if !user.HasPassword() {
		return nil, nil, domain.ErrIncorrectLoginMethod
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	session, err := s.sessions.CreateSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// Logout ends the given session.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.InvalidateSession(ctx, sessionID)
}

// Me returns the profile of the authenticated user.
func (s *AuthService) Me(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

// ChangePassword replaces the user's password, ends every session the user
// holds and opens a new one for the caller.
func (s *AuthService) ChangePassword(ctx context.Context, userID, current, next string) (*domain.Session, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.HasPassword() {
		return nil, domain.ErrIncorrectLoginMethod
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return nil, domain.ErrIncorrectPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return nil, err
	}

	revoked, err := s.sessions.InvalidateAllUserSessions(ctx, userID)
	if err != nil {
		return nil, err
	}
	slog.Info("password changed", slog.String("user_id", userID), slog.Int("sessions_revoked", revoked))

	return s.sessions.CreateSession(ctx, userID)
}

// RevokeUserSessions ends every session of the named user.
func (s *AuthService) RevokeUserSessions(ctx context.Context, username string) (int, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return 0, err
	}
	return s.sessions.InvalidateAllUserSessions(ctx, user.ID)
}
