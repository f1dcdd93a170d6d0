package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"blog-api/internal/domain"

	"github.com/google/uuid"
)

// CreatePostParams is a validated draft.
type CreatePostParams struct {
	Title       string
	Description *string
	Content     *string
}

type PostService struct {
	postRepo domain.PostRepository
	tagRepo  domain.TagRepository
	userRepo domain.UserRepository
	content  domain.ContentStore
	now      func() time.Time
}

func NewPostService(postRepo domain.PostRepository, tagRepo domain.TagRepository, userRepo domain.UserRepository, content domain.ContentStore) *PostService {
	return &PostService{
		postRepo: postRepo,
		tagRepo:  tagRepo,
		userRepo: userRepo,
		content:  content,
		now:      time.Now,
	}
}

// Create stores a new draft and, when given, its content.
func (s *PostService) Create(ctx context.Context, authorID string, p CreatePostParams) (*domain.Post, error) {
	post := &domain.Post{
		ID:          uuid.NewString(),
		AuthorID:    authorID,
		Title:       p.Title,
		Description: p.Description,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	if p.Content != nil {
		if err := s.content.Put(ctx, domain.ContentKey(authorID, post.ID), *p.Content); err != nil {
			if delErr := s.postRepo.Delete(ctx, post.ID); delErr != nil {
				slog.Error("failed to roll back draft", slog.String("post_id", post.ID), slog.String("error", delErr.Error()))
			}
			return nil, err
		}
		post.Content = *p.Content
	}
	return post, nil
}

// Get returns a post with its content and tags. Drafts are visible to
// their author only.
func (s *PostService) Get(ctx context.Context, viewerID, postID string) (*domain.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.Published && post.AuthorID != viewerID {
		return nil, domain.ErrPostNotFound
	}

	content, err := s.content.Get(ctx, domain.ContentKey(post.AuthorID, post.ID))
	if err != nil && !errors.Is(err, domain.ErrContentNotFound) {
		return nil, err
	}
	post.Content = content

	tags, err := s.tagRepo.ListByPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	post.Tags = tags
	return post, nil
}

func (s *PostService) ListPublished(ctx context.Context, page domain.Page) ([]*domain.Post, error) {
	return s.postRepo.ListPublished(ctx, page)
}

// ListByAuthor lists the published posts of the named user.
func (s *PostService) ListByAuthor(ctx context.Context, username string, page domain.Page) ([]*domain.Post, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.postRepo.ListPublishedByAuthor(ctx, user.ID, page)
}

func (s *PostService) ListDrafts(ctx context.Context, authorID string, page domain.Page) ([]*domain.Post, error) {
	return s.postRepo.ListDrafts(ctx, authorID, page)
}

func (s *PostService) ListSaved(ctx context.Context, userID string, page domain.Page) ([]*domain.Post, error) {
	return s.postRepo.ListSaved(ctx, userID, page)
}

// owned loads the post and checks that userID wrote it.
func (s *PostService) owned(ctx context.Context, userID, postID string) (*domain.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != userID {
		return nil, domain.ErrForbidden
	}
	return post, nil
}

func (s *PostService) UpdateMetadata(ctx context.Context, userID, postID string, update domain.PostMetadataUpdate) (*domain.Post, error) {
	if _, err := s.owned(ctx, userID, postID); err != nil {
		return nil, err
	}
	return s.postRepo.UpdateMetadata(ctx, postID, update)
}

// UpdateContent replaces the body of a post.
func (s *PostService) UpdateContent(ctx context.Context, userID, postID, content string) error {
	post, err := s.owned(ctx, userID, postID)
	if err != nil {
		return err
	}
	if err := s.content.Put(ctx, domain.ContentKey(post.AuthorID, post.ID), content); err != nil {
		return err
	}
	return s.postRepo.Touch(ctx, postID)
}

// Publish makes a draft public once its content is long enough.
func (s *PostService) Publish(ctx context.Context, userID, postID string) error {
	post, err := s.owned(ctx, userID, postID)
	if err != nil {
		return err
	}
	if post.Published {
		return domain.ErrPostAlreadyPublished
	}

	content, err := s.content.Get(ctx, domain.ContentKey(post.AuthorID, post.ID))
	if errors.Is(err, domain.ErrContentNotFound) {
		return domain.ErrPostTooShort
	}
	if err != nil {
		return err
	}
	if utf8.RuneCountInString(content) < domain.MinPublishLength {
		return domain.ErrPostTooShort
	}

	return s.postRepo.Publish(ctx, postID, s.now())
}

// Delete removes the post and its content.
func (s *PostService) Delete(ctx context.Context, userID, postID string) error {
	post, err := s.owned(ctx, userID, postID)
	if err != nil {
		return err
	}
	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}
	if err := s.content.Delete(ctx, domain.ContentKey(post.AuthorID, post.ID)); err != nil {
		slog.Error("failed to delete post content",
			slog.String("post_id", postID),
			slog.String("error", err.Error()))
	}
	return nil
}

// Save bookmarks a published post.
func (s *PostService) Save(ctx context.Context, userID, postID string) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if !post.Published {
		return domain.ErrPostNotFound
	}
	return s.postRepo.Save(ctx, userID, postID)
}

func (s *PostService) Unsave(ctx context.Context, userID, postID string) error {
	return s.postRepo.Unsave(ctx, userID, postID)
}

// ReplaceTags sets the tags of a post. Tags are keyed case-insensitively;
// the first spelling of a duplicate wins.
func (s *PostService) ReplaceTags(ctx context.Context, userID, postID string, names []string) ([]domain.Tag, error) {
	if _, err := s.owned(ctx, userID, postID); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(names))
	tags := make([]domain.Tag, 0, len(names))
	for _, name := range names {
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		tags = append(tags, domain.Tag{Name: key, Original: name})
	}

	if err := s.tagRepo.Replace(ctx, postID, tags); err != nil {
		return nil, fmt.Errorf("failed to replace tags: %w", err)
	}
	return tags, nil
}

// ListTags returns the tags of a published post.
func (s *PostService) ListTags(ctx context.Context, viewerID, postID string) ([]domain.Tag, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.Published && post.AuthorID != viewerID {
		return nil, domain.ErrPostNotFound
	}
	return s.tagRepo.ListByPost(ctx, postID)
}
