package service

import (
	"context"

	"blog-api/internal/domain"

	"github.com/google/uuid"
)

// CreateSeriesParams is a validated series.
type CreateSeriesParams struct {
	Title       string
	Description *string
}

type SeriesService struct {
	seriesRepo domain.SeriesRepository
	postRepo   domain.PostRepository
}

func NewSeriesService(seriesRepo domain.SeriesRepository, postRepo domain.PostRepository) *SeriesService {
	return &SeriesService{seriesRepo: seriesRepo, postRepo: postRepo}
}

func (s *SeriesService) Create(ctx context.Context, authorID string, p CreateSeriesParams) (*domain.Series, error) {
	series := &domain.Series{
		ID:          uuid.NewString(),
		AuthorID:    authorID,
		Title:       p.Title,
		Description: p.Description,
	}
	if err := s.seriesRepo.Create(ctx, series); err != nil {
		return nil, err
	}
	return series, nil
}

func (s *SeriesService) Get(ctx context.Context, seriesID string) (*domain.Series, error) {
	return s.seriesRepo.GetByID(ctx, seriesID)
}

// ListPosts returns the published posts of a series in series order.
func (s *SeriesService) ListPosts(ctx context.Context, seriesID string) ([]*domain.Post, error) {
	if _, err := s.seriesRepo.GetByID(ctx, seriesID); err != nil {
		return nil, err
	}
	posts, err := s.seriesRepo.ListPosts(ctx, seriesID)
	if err != nil {
		return nil, err
	}

	published := posts[:0]
	for _, p := range posts {
		if p.Published {
			published = append(published, p)
		}
	}
	return published, nil
}

func (s *SeriesService) owned(ctx context.Context, userID, seriesID string) (*domain.Series, error) {
	series, err := s.seriesRepo.GetByID(ctx, seriesID)
	if err != nil {
		return nil, err
	}
	if series.AuthorID != userID {
		return nil, domain.ErrForbidden
	}
	return series, nil
}

func (s *SeriesService) Update(ctx context.Context, userID, seriesID string, update domain.SeriesUpdate) (*domain.Series, error) {
	if _, err := s.owned(ctx, userID, seriesID); err != nil {
		return nil, err
	}
	return s.seriesRepo.Update(ctx, seriesID, update)
}

func (s *SeriesService) Delete(ctx context.Context, userID, seriesID string) error {
	if _, err := s.owned(ctx, userID, seriesID); err != nil {
		return err
	}
	return s.seriesRepo.Delete(ctx, seriesID)
}

// AddPost appends one of the owner's own posts to the series.
func (s *SeriesService) AddPost(ctx context.Context, userID, seriesID, postID string) error {
	if _, err := s.owned(ctx, userID, seriesID); err != nil {
		return err
	}
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return domain.ErrForbidden
	}
	return s.seriesRepo.AddPost(ctx, seriesID, postID)
}

func (s *SeriesService) RemovePost(ctx context.Context, userID, seriesID, postID string) error {
	if _, err := s.owned(ctx, userID, seriesID); err != nil {
		return err
	}
	return s.seriesRepo.RemovePost(ctx, seriesID, postID)
}
