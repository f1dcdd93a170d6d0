package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrNestedReply     = errors.New("replies can only be added to top-level comments")
)

// Comment is a comment on a post. Replies carry the id of their top-level parent.
type Comment struct {
	ID             string    `json:"id"`
	PostID         string    `json:"post_id"`
	AuthorID       string    `json:"author_id"`
	AuthorUsername string    `json:"author_username,omitempty"`
	ParentID       *string   `json:"parent_id"`
	Content        string    `json:"content"`
	Edited         bool      `json:"edited"`
	Mentions       []string  `json:"mentions"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	GetByID(ctx context.Context, id string) (*Comment, error)
	ListByPost(ctx context.Context, postID string, page Page) ([]*Comment, error)
	ListReplies(ctx context.Context, parentID string, page Page) ([]*Comment, error)
	UpdateContent(ctx context.Context, id, content string, mentions []string) (*Comment, error)
	Delete(ctx context.Context, id string) error
	// ThreadParticipants returns the usernames of the parent author and of every reply author.
	ThreadParticipants(ctx context.Context, parentID string) ([]string, error)
}

// Comment event types published to live subscribers of a post.
const (
	CommentCreated = "comment_created"
	CommentUpdated = "comment_updated"
	CommentDeleted = "comment_deleted"
)

// CommentEvent describes a change to a post's comments.
type CommentEvent struct {
	Type      string    `json:"type"`
	PostID    string    `json:"post_id"`
	CommentID string    `json:"comment_id"`
	Comment   *Comment  `json:"comment,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// EventPublisher fans comment events out to live subscribers.
type EventPublisher interface {
	Publish(ctx context.Context, event CommentEvent) error
}
