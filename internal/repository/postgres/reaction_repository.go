package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"blog-api/internal/domain"
)

// ReactionRepository implements domain.ReactionRepository for PostgreSQL
type ReactionRepository struct {
	db *sql.DB
}

// NewReactionRepository creates a new PostgreSQL reaction repository
func NewReactionRepository(db *sql.DB) *ReactionRepository {
	return &ReactionRepository{db: db}
}

func (r *ReactionRepository) Upsert(ctx context.Context, reaction *domain.Reaction) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO reactions (target_id, target_type, user_id, reaction)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (target_type, target_id, user_id)
		DO UPDATE SET reaction = EXCLUDED.reaction, created_at = now()
		RETURNING created_at
	`, reaction.Target.ID(), string(reaction.Target.Kind()), reaction.UserID, reaction.Reaction).Scan(&reaction.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save reaction: %w", err)
	}
	return nil
}

func (r *ReactionRepository) Delete(ctx context.Context, userID string, target domain.Resource) error {
	if _, err := r.db.ExecContext(ctx, `
		DELETE FROM reactions WHERE target_type = $1 AND target_id = $2 AND user_id = $3
	`, string(target.Kind()), target.ID(), userID); err != nil {
		return fmt.Errorf("failed to delete reaction: %w", err)
	}
	return nil
}

// Counts returns the number of reactions per kind on the target.
func (r *ReactionRepository) Counts(ctx context.Context, target domain.Resource) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT reaction, COUNT(*)
		FROM reactions
		WHERE target_type = $1 AND target_id = $2
		GROUP BY reaction
	`, string(target.Kind()), target.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to count reactions: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			reaction string
			n        int
		)
		if err := rows.Scan(&reaction, &n); err != nil {
			return nil, fmt.Errorf("failed to scan reaction count: %w", err)
		}
		counts[reaction] = n
	}
	return counts, rows.Err()
}
