package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrSeriesNotFound      = errors.New("series not found")
	ErrPostAlreadyInSeries = errors.New("post is already part of this series")
	ErrPostNotInSeries     = errors.New("post is not part of this series")
)

// Series groups an author's posts in a fixed order.
type Series struct {
	ID          string    `json:"id"`
	AuthorID    string    `json:"author_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SeriesUpdate is a partial update of a series.
type SeriesUpdate struct {
	Title       *string
	Description *string
}

// SeriesRepository defines the interface for series data access
type SeriesRepository interface {
	Create(ctx context.Context, series *Series) error
	GetByID(ctx context.Context, id string) (*Series, error)
	Update(ctx context.Context, id string, update SeriesUpdate) (*Series, error)
	Delete(ctx context.Context, id string) error
	// AddPost appends the post after the last position in the series.
	AddPost(ctx context.Context, seriesID, postID string) error
	RemovePost(ctx context.Context, seriesID, postID string) error
	ListPosts(ctx context.Context, seriesID string) ([]*Post, error)
}
