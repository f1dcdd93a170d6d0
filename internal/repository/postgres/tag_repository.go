package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"blog-api/internal/domain"

	"github.com/lib/pq"
)

// TagRepository implements domain.TagRepository for PostgreSQL
type TagRepository struct {
	db *sql.DB
	tx *TxManager
}

// NewTagRepository creates a new PostgreSQL tag repository
func NewTagRepository(db *sql.DB) *TagRepository {
	return &TagRepository{db: db, tx: NewTxManager(db)}
}

// Replace swaps the post's tags for tags in one transaction.
func (r *TagRepository) Replace(ctx context.Context, postID string, tags []domain.Tag) error {
	names := make([]string, len(tags))
	originals := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
		originals[i] = t.Original
	}

	return r.tx.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM post_tags WHERE post_id = $1`, postID); err != nil {
			return fmt.Errorf("failed to clear tags: %w", err)
		}
		if len(tags) == 0 {
			return nil
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO post_tags (post_id, tag_name, original_tag)
			SELECT $1, t.name, t.original
			FROM unnest($2::text[], $3::text[]) AS t(name, original)
			ON CONFLICT DO NOTHING
		`, postID, pq.StringArray(names), pq.StringArray(originals)); err != nil {
			return fmt.Errorf("failed to insert tags: %w", err)
		}
		return nil
	})
}

func (r *TagRepository) ListByPost(ctx context.Context, postID string) ([]domain.Tag, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT tag_name, original_tag FROM post_tags WHERE post_id = $1 ORDER BY tag_name`, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	tags := make([]domain.Tag, 0)
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.Name, &t.Original); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}
