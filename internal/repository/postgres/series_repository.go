package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"blog-api/internal/domain"
)

// SeriesRepository implements domain.SeriesRepository for PostgreSQL
type SeriesRepository struct {
	db *sql.DB
}

// NewSeriesRepository creates a new PostgreSQL series repository
func NewSeriesRepository(db *sql.DB) *SeriesRepository {
	return &SeriesRepository{db: db}
}

func (r *SeriesRepository) Create(ctx context.Context, series *domain.Series) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO series (id, author_id, title, description)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`, series.ID, series.AuthorID, series.Title, series.Description).Scan(&series.CreatedAt, &series.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create series: %w", err)
	}
	return nil
}

func (r *SeriesRepository) GetByID(ctx context.Context, id string) (*domain.Series, error) {
	s := &domain.Series{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, author_id, title, description, created_at, updated_at
		FROM series
		WHERE id = $1
	`, id).Scan(&s.ID, &s.AuthorID, &s.Title, &s.Description, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSeriesNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get series: %w", err)
	}
	return s, nil
}

func (r *SeriesRepository) Update(ctx context.Context, id string, update domain.SeriesUpdate) (*domain.Series, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE series SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			updated_at = now()
		WHERE id = $1
	`, id, update.Title, update.Description)
	if err := checkAffected(result, err, domain.ErrSeriesNotFound); err != nil {
		return nil, fmt.Errorf("failed to update series: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *SeriesRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM series WHERE id = $1`, id)
	if err := checkAffected(result, err, domain.ErrSeriesNotFound); err != nil {
		return fmt.Errorf("failed to delete series: %w", err)
	}
	return nil
}

// AddPost appends the post at the next free position.
func (r *SeriesRepository) AddPost(ctx context.Context, seriesID, postID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO post_series (series_id, post_id, position)
		SELECT $1, $2, COALESCE(MAX(position), 0) + 1
		FROM post_series
		WHERE series_id = $1
	`, seriesID, postID)
	switch {
	case err == nil:
		return nil
	case IsUniqueViolation(err, ""):
		return domain.ErrPostAlreadyInSeries
	case IsForeignKeyViolation(err):
		return domain.ErrPostNotFound
	default:
		return fmt.Errorf("failed to add post to series: %w", err)
	}
}

func (r *SeriesRepository) RemovePost(ctx context.Context, seriesID, postID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM post_series WHERE series_id = $1 AND post_id = $2`, seriesID, postID)
	if err := checkAffected(result, err, domain.ErrPostNotInSeries); err != nil {
		return fmt.Errorf("failed to remove post from series: %w", err)
	}
	return nil
}

// ListPosts returns the series' posts in position order.
func (r *SeriesRepository) ListPosts(ctx context.Context, seriesID string) ([]*domain.Post, error) {
	rows, err := r.db.QueryContext(ctx, postSelect+`
		INNER JOIN post_series ps ON ps.post_id = p.id
		WHERE ps.series_id = $1
		ORDER BY ps.position ASC
	`, seriesID)
	if err != nil {
		return nil, fmt.Errorf("failed to list series posts: %w", err)
	}
	defer rows.Close()

	posts := make([]*domain.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}
