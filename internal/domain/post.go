package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrPostNotFound         = errors.New("post not found")
	ErrPostTooShort         = errors.New("post content must be at least 1000 characters long to publish")
	ErrPostAlreadyPublished = errors.New("post is already published")
)

// MinPublishLength is the minimum content length, in characters, of a published post.
const MinPublishLength = 1000

// Post represents a blog post or draft. The body lives in the content store.
type Post struct {
	ID             string     `json:"id"`
	AuthorID       string     `json:"author_id"`
	AuthorUsername string     `json:"author_username,omitempty"`
	Title          string     `json:"title"`
	Description    *string    `json:"description"`
	Published      bool       `json:"published"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	Content        string     `json:"content,omitempty"`
	Tags           []Tag      `json:"tags,omitempty"`
}

// PostMetadataUpdate is a partial update of title and description.
type PostMetadataUpdate struct {
	Title       *string
	Description *string
}

// Tag is a post tag. Name is the lower-cased key, Original keeps the author's spelling.
type Tag struct {
	Name     string `json:"name"`
	Original string `json:"original"`
}

// PostRepository defines the interface for post data access
type PostRepository interface {
	Create(ctx context.Context, post *Post) error
	GetByID(ctx context.Context, id string) (*Post, error)
	ListPublished(ctx context.Context, page Page) ([]*Post, error)
	ListPublishedByAuthor(ctx context.Context, authorID string, page Page) ([]*Post, error)
	ListDrafts(ctx context.Context, authorID string, page Page) ([]*Post, error)
	UpdateMetadata(ctx context.Context, id string, update PostMetadataUpdate) (*Post, error)
	Touch(ctx context.Context, id string) error
	Publish(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
	Save(ctx context.Context, userID, postID string) error
	Unsave(ctx context.Context, userID, postID string) error
	ListSaved(ctx context.Context, userID string, page Page) ([]*Post, error)
}

// TagRepository defines the interface for post tag data access
type TagRepository interface {
	Replace(ctx context.Context, postID string, tags []Tag) error
	ListByPost(ctx context.Context, postID string) ([]Tag, error)
}

// ContentStore persists post bodies outside the relational store.
type ContentStore interface {
	Put(ctx context.Context, key, content string) error
	// Get returns ErrContentNotFound when no object exists under key.
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

var ErrContentNotFound = errors.New("content not found")

// ContentKey is the object key of a post body.
func ContentKey(authorID, postID string) string {
	return authorID + "/" + postID
}
