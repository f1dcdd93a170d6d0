package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"blog-api/internal/domain"
)

const profileSelect = `
	SELECT p.user_id, u.username, p.name, p.profile_image, p.bio, p.website, p.country, p.role,
		p.created_at, p.updated_at
	FROM profiles p
	INNER JOIN users u ON u.id = p.user_id
`

// ProfileRepository implements domain.ProfileRepository for PostgreSQL
type ProfileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new PostgreSQL profile repository
func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	return r.getOne(ctx, profileSelect+` WHERE p.user_id = $1`, userID)
}

func (r *ProfileRepository) GetByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	return r.getOne(ctx, profileSelect+` WHERE u.username = $1`, username)
}

// Update applies the non-nil fields of update and returns the stored profile.
func (r *ProfileRepository) Update(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.Profile, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE profiles SET
			name = COALESCE($2, name),
			role = COALESCE($3, role),
			bio = COALESCE($4, bio),
			website = COALESCE($5, website),
			country = COALESCE($6, country),
			profile_image = COALESCE($7, profile_image),
			updated_at = now()
		WHERE user_id = $1
	`, userID, update.Name, update.Role, update.Bio, update.Website, update.Country, update.ProfileImage)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return nil, domain.ErrProfileNotFound
	}

	return r.GetByUserID(ctx, userID)
}

func (r *ProfileRepository) getOne(ctx context.Context, query string, arg any) (*domain.Profile, error) {
	p := &domain.Profile{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&p.UserID,
		&p.Username,
		&p.Name,
		&p.ProfileImage,
		&p.Bio,
		&p.Website,
		&p.Country,
		&p.Role,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}
