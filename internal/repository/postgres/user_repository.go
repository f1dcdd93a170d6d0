package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"blog-api/internal/domain"

	"github.com/google/uuid"
)

const userColumns = `id, email, username, provider, COALESCE(password_hash, ''), email_verified, created_at`

// UserRepository implements domain.UserRepository for PostgreSQL
type UserRepository struct {
	db *sql.DB
	tx *TxManager
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db, tx: NewTxManager(db)}
}

// CreateWithProfile inserts the user and its profile in one transaction.
// A uniqueness violation is returned as *domain.ConflictError naming the column.
func (r *UserRepository) CreateWithProfile(ctx context.Context, user *domain.User, profile *domain.Profile) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Provider == "" {
		user.Provider = domain.ProviderEmail
	}

	return r.tx.WithTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
			INSERT INTO users (id, email, username, provider, password_hash)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING created_at
		`, user.ID, user.Email, user.Username, user.Provider, nullString(user.PasswordHash)).Scan(&user.CreatedAt)
		if err != nil {
			if IsUniqueViolation(err, "") {
				return mapUserConflict(err)
			}
			return fmt.Errorf("failed to create user: %w", err)
		}

		profile.UserID = user.ID
		err = tx.QueryRowContext(ctx, `
			INSERT INTO profiles (user_id, name)
			VALUES ($1, $2)
			RETURNING created_at, updated_at
		`, profile.UserID, profile.Name).Scan(&profile.CreatedAt, &profile.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

// GetByIdentifier retrieves a user whose email or username equals identifier.
func (r *UserRepository) GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1 OR username = $1 LIMIT 1`, identifier)
}

// UpdatePassword replaces the user's password hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $2 WHERE id = $1`, userID, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	user := &domain.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.Provider,
		&user.PasswordHash,
		&user.EmailVerified,
		&user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
