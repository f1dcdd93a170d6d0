package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"blog-api/internal/domain"
)

const postSelect = `
	SELECT p.id, p.author_id, u.username, p.title, p.description, p.published, p.published_at,
		p.created_at, p.updated_at
	FROM posts p
	INNER JOIN users u ON u.id = p.author_id
`

type rowScanner interface {
	Scan(dest ...any) error
}

// PostRepository implements domain.PostRepository for PostgreSQL
type PostRepository struct {
	db *sql.DB
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{db: db}
}

// Create inserts a new draft.
func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO posts (id, author_id, title, description)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`, post.ID, post.AuthorID, post.Title, post.Description).Scan(&post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	post, err := scanPost(r.db.QueryRowContext(ctx, postSelect+` WHERE p.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

func (r *PostRepository) ListPublished(ctx context.Context, page domain.Page) ([]*domain.Post, error) {
	return r.list(ctx, postSelect+`
		WHERE p.published
		ORDER BY p.published_at DESC
		LIMIT $1 OFFSET $2
	`, page.Limit, page.Offset)
}

func (r *PostRepository) ListPublishedByAuthor(ctx context.Context, authorID string, page domain.Page) ([]*domain.Post, error) {
	return r.list(ctx, postSelect+`
		WHERE p.published AND p.author_id = $1
		ORDER BY p.published_at DESC
		LIMIT $2 OFFSET $3
	`, authorID, page.Limit, page.Offset)
}

func (r *PostRepository) ListDrafts(ctx context.Context, authorID string, page domain.Page) ([]*domain.Post, error) {
	return r.list(ctx, postSelect+`
		WHERE NOT p.published AND p.author_id = $1
		ORDER BY p.updated_at DESC
		LIMIT $2 OFFSET $3
	`, authorID, page.Limit, page.Offset)
}

func (r *PostRepository) ListSaved(ctx context.Context, userID string, page domain.Page) ([]*domain.Post, error) {
	return r.list(ctx, postSelect+`
		INNER JOIN saved_posts sp ON sp.post_id = p.id
		WHERE sp.user_id = $1 AND p.published
		ORDER BY sp.created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, page.Limit, page.Offset)
}

// UpdateMetadata applies the non-nil fields and returns the updated post.
func (r *PostRepository) UpdateMetadata(ctx context.Context, id string, update domain.PostMetadataUpdate) (*domain.Post, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE posts SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			updated_at = now()
		WHERE id = $1
	`, id, update.Title, update.Description)
	if err := checkAffected(result, err, domain.ErrPostNotFound); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return r.GetByID(ctx, id)
}

// Touch bumps updated_at after the body changed in the content store.
func (r *PostRepository) Touch(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE posts SET updated_at = now() WHERE id = $1`, id)
	if err := checkAffected(result, err, domain.ErrPostNotFound); err != nil {
		return fmt.Errorf("failed to touch post: %w", err)
	}
	return nil
}

func (r *PostRepository) Publish(ctx context.Context, id string, at time.Time) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE posts SET published = TRUE, published_at = $2, updated_at = $2
		WHERE id = $1 AND NOT published
	`, id, at)
	if err := checkAffected(result, err, domain.ErrPostAlreadyPublished); err != nil {
		return fmt.Errorf("failed to publish post: %w", err)
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err := checkAffected(result, err, domain.ErrPostNotFound); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}

// Save bookmarks a post for the user. Saving twice is a no-op.
func (r *PostRepository) Save(ctx context.Context, userID, postID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO saved_posts (user_id, post_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, userID, postID)
	if IsForeignKeyViolation(err) {
		return domain.ErrPostNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to save post: %w", err)
	}
	return nil
}

func (r *PostRepository) Unsave(ctx context.Context, userID, postID string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM saved_posts WHERE user_id = $1 AND post_id = $2`, userID, postID); err != nil {
		return fmt.Errorf("failed to unsave post: %w", err)
	}
	return nil
}

func (r *PostRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
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
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

func scanPost(row rowScanner) (*domain.Post, error) {
	post := &domain.Post{}
	err := row.Scan(
		&post.ID,
		&post.AuthorID,
		&post.AuthorUsername,
		&post.Title,
		&post.Description,
		&post.Published,
		&post.PublishedAt,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return post, nil
}

// checkAffected folds an Exec error and a zero row count into one error.
func checkAffected(result sql.Result, err error, notFound error) error {
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
