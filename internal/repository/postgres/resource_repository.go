package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"blog-api/internal/domain"
)

// ResourceRepository implements domain.ResourceChecker for PostgreSQL
type ResourceRepository struct {
	db *sql.DB
}

// NewResourceRepository creates a new PostgreSQL resource checker
func NewResourceRepository(db *sql.DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

// existsQuery picks the lookup for each resource variant. Only published
// posts are addressable.
func existsQuery(r domain.Resource) string {
	return domain.MatchResource(r, domain.ResourceCases[string]{
		Post: func(domain.PostResource) string {
			return `SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1 AND published)`
		},
		Comment: func(domain.CommentResource) string {
			return `SELECT EXISTS(SELECT 1 FROM comments WHERE id = $1)`
		},
		User: func(domain.UserResource) string {
			return `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`
		},
	})
}

func (r *ResourceRepository) Exists(ctx context.Context, res domain.Resource) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, existsQuery(res), res.ID()).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check %s existence: %w", res.Kind(), err)
	}
	return exists, nil
}
