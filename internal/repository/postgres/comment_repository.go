package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"blog-api/internal/domain"

	"github.com/lib/pq"
)

const commentSelect = `
	SELECT c.id, c.post_id, c.author_id, u.username, c.parent_id, c.content, c.edited, c.mentions,
		c.created_at, c.updated_at
	FROM comments c
	INNER JOIN users u ON u.id = c.author_id
`

// CommentRepository implements domain.CommentRepository for PostgreSQL
type CommentRepository struct {
	db *sql.DB
}

// NewCommentRepository creates a new PostgreSQL comment repository
func NewCommentRepository(db *sql.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	if comment.Mentions == nil {
		comment.Mentions = []string{}
	}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO comments (id, post_id, author_id, parent_id, content, mentions)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, comment.ID, comment.PostID, comment.AuthorID, comment.ParentID, comment.Content,
		pq.StringArray(comment.Mentions)).Scan(&comment.CreatedAt, &comment.UpdatedAt)
	if IsForeignKeyViolation(err) {
		return domain.ErrPostNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	comment, err := scanComment(r.db.QueryRowContext(ctx, commentSelect+` WHERE c.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return comment, nil
}

// ListByPost returns the top-level comments of a post, oldest first.
func (r *CommentRepository) ListByPost(ctx context.Context, postID string, page domain.Page) ([]*domain.Comment, error) {
	return r.list(ctx, commentSelect+`
		WHERE c.post_id = $1 AND c.parent_id IS NULL
		ORDER BY c.created_at ASC
		LIMIT $2 OFFSET $3
	`, postID, page.Limit, page.Offset)
}

func (r *CommentRepository) ListReplies(ctx context.Context, parentID string, page domain.Page) ([]*domain.Comment, error) {
	return r.list(ctx, commentSelect+`
		WHERE c.parent_id = $1
		ORDER BY c.created_at ASC
		LIMIT $2 OFFSET $3
	`, parentID, page.Limit, page.Offset)
}

// UpdateContent replaces the content and mentions and marks the comment edited.
func (r *CommentRepository) UpdateContent(ctx context.Context, id, content string, mentions []string) (*domain.Comment, error) {
	if mentions == nil {
		mentions = []string{}
	}
	result, err := r.db.ExecContext(ctx, `
		UPDATE comments SET content = $2, mentions = $3, edited = TRUE, updated_at = now()
		WHERE id = $1
	`, id, content, pq.StringArray(mentions))
	if err := checkAffected(result, err, domain.ErrCommentNotFound); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err := checkAffected(result, err, domain.ErrCommentNotFound); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

// ThreadParticipants lists the usernames of the parent's author and of every reply author.
func (r *CommentRepository) ThreadParticipants(ctx context.Context, parentID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT u.username
		FROM comments c
		INNER JOIN users u ON u.id = c.author_id
		WHERE c.id = $1 OR c.parent_id = $1
	`, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list thread participants: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (r *CommentRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Comment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]*domain.Comment, 0)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

func scanComment(row rowScanner) (*domain.Comment, error) {
	c := &domain.Comment{}
	err := row.Scan(
		&c.ID,
		&c.PostID,
		&c.AuthorID,
		&c.AuthorUsername,
		&c.ParentID,
		&c.Content,
		&c.Edited,
		(*pq.StringArray)(&c.Mentions),
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}
