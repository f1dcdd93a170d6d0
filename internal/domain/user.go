package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailExists          = errors.New("email already exists")
	ErrUsernameExists       = errors.New("username already exists")
	ErrInvalidCredentials   = errors.New("incorrect email/username or password")
	ErrIncorrectLoginMethod = errors.New("incorrect login method")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrIncorrectPassword    = errors.New("current password is incorrect")
)

// ProviderEmail marks accounts that authenticate with a password.
const ProviderEmail = "email"

// User represents an account. PasswordHash is empty for provider-only accounts.
type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Username      string    `json:"username"`
	PasswordHash  string    `json:"-"`
	Provider      string    `json:"provider"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`

	// passwordSet stands in for PasswordHash on users rebuilt from a
	// session cache entry, which never holds the hash.
	passwordSet bool
}

// HasPassword reports whether the user can log in with a password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != "" || u.passwordSet
}

// Profile holds the mutable, public attributes of a user.
type Profile struct {
	UserID       string    `json:"user_id"`
	Username     string    `json:"username,omitempty"`
	Name         string    `json:"name"`
	ProfileImage *string   `json:"profile_image"`
	Bio          *string   `json:"bio"`
	Website      *string   `json:"website"`
	Country      *string   `json:"country"`
	Role         *string   `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProfileUpdate is a partial update; nil fields are left untouched.
type ProfileUpdate struct {
	Name         *string
	Role         *string
	Bio          *string
	Website      *string
	Country      *string
	ProfileImage *string
}

// Empty reports whether the update carries no fields.
func (u ProfileUpdate) Empty() bool {
	return u.Name == nil && u.Role == nil && u.Bio == nil &&
		u.Website == nil && u.Country == nil && u.ProfileImage == nil
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// CreateWithProfile inserts the user and its profile atomically.
	CreateWithProfile(ctx context.Context, user *User, profile *Profile) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	// GetByIdentifier looks a user up by email or username.
	GetByIdentifier(ctx context.Context, identifier string) (*User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

// ProfileRepository defines the interface for profile data access
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	GetByUsername(ctx context.Context, username string) (*Profile, error)
	Update(ctx context.Context, userID string, update ProfileUpdate) (*Profile, error)
}
