package domain

import (
	"context"
	"time"
)

// Reactions allowed on posts.
var PostReactions = []string{
	"appreciate", "congrats", "fire", "strong", "heart",
	"wow", "like", "meh", "dislike", "angry",
}

// Reactions allowed on comments.
var CommentReactions = []string{"like", "dislike"}

// Reaction is a user's single reaction to a post or comment.
type Reaction struct {
	Target    Resource  `json:"-"`
	UserID    string    `json:"user_id"`
	Reaction  string    `json:"reaction"`
	CreatedAt time.Time `json:"created_at"`
}

// ReactionRepository defines the interface for reaction data access
type ReactionRepository interface {
	// Upsert replaces any previous reaction of the user on the same target.
	Upsert(ctx context.Context, reaction *Reaction) error
	Delete(ctx context.Context, userID string, target Resource) error
	Counts(ctx context.Context, target Resource) (map[string]int, error)
}
