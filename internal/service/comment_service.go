package service

import (
	"context"
	"log/slog"
	"regexp"
	"slices"
	"time"

	"blog-api/internal/domain"

	"github.com/google/uuid"
)

var mentionPattern = regexp.MustCompile(`\s@([A-Za-z0-9_-]+)`)

// ExtractMentions returns the usernames mentioned as " @name" in content,
// in order of first appearance.
func ExtractMentions(content string) []string {
	var out []string
	for _, m := range mentionPattern.FindAllStringSubmatch(content, -1) {
		if !slices.Contains(out, m[1]) {
			out = append(out, m[1])
		}
	}
	return out
}

// FilterMentions keeps the participants that content mentions, in
// participant order.
func FilterMentions(content string, participants []string) []string {
	mentioned := ExtractMentions(content)
	out := make([]string, 0, len(mentioned))
	for _, p := range participants {
		if slices.Contains(mentioned, p) && !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	return out
}

type CommentService struct {
	commentRepo domain.CommentRepository
	postRepo    domain.PostRepository
	events      domain.EventPublisher
	now         func() time.Time
}

func NewCommentService(commentRepo domain.CommentRepository, postRepo domain.PostRepository, events domain.EventPublisher) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		events:      events,
		now:         time.Now,
	}
}

func (s *CommentService) publishedPost(ctx context.Context, postID string) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if !post.Published {
		return domain.ErrPostNotFound
	}
	return nil
}

// comment loads a comment and checks that it belongs to postID.
func (s *CommentService) comment(ctx context.Context, postID, commentID string) (*domain.Comment, error) {
	c, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if c.PostID != postID {
		return nil, domain.ErrCommentNotFound
	}
	return c, nil
}

// topLevel loads a top-level comment of postID.
func (s *CommentService) topLevel(ctx context.Context, postID, commentID string) (*domain.Comment, error) {
	c, err := s.comment(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}
	if c.ParentID != nil {
		return nil, domain.ErrNestedReply
	}
	return c, nil
}

// publish sends an event without failing the request that caused it.
func (s *CommentService) publish(ctx context.Context, eventType, postID, commentID string, c *domain.Comment) {
	event := domain.CommentEvent{
		Type:      eventType,
		PostID:    postID,
		CommentID: commentID,
		Comment:   c,
		Timestamp: s.now(),
	}
	if err := s.events.Publish(ctx, event); err != nil {
		slog.Error("failed to publish comment event",
			slog.String("type", eventType),
			slog.String("post_id", postID),
			slog.String("error", err.Error()))
	}
}

// List returns the top-level comments of a published post.
func (s *CommentService) List(ctx context.Context, postID string, page domain.Page) ([]*domain.Comment, error) {
	if err := s.publishedPost(ctx, postID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID, page)
}

// Create adds a top-level comment to a published post.
func (s *CommentService) Create(ctx context.Context, author *domain.User, postID, content string) (*domain.Comment, error) {
	if err := s.publishedPost(ctx, postID); err != nil {
		return nil, err
	}

	c := &domain.Comment{
		ID:             uuid.NewString(),
		PostID:         postID,
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
		Content:        content,
		Mentions:       []string{},
	}
	if err := s.commentRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.publish(ctx, domain.CommentCreated, postID, c.ID, c)
	return c, nil
}

// Update edits the caller's own comment. A reply's mentions are
// recomputed against its thread.
func (s *CommentService) Update(ctx context.Context, userID, postID, commentID, content string) (*domain.Comment, error) {
	c, err := s.comment(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}
	if c.AuthorID != userID {
		return nil, domain.ErrForbidden
	}

	mentions := []string{}
	if c.ParentID != nil {
		participants, err := s.commentRepo.ThreadParticipants(ctx, *c.ParentID)
		if err != nil {
			return nil, err
		}
		mentions = FilterMentions(content, participants)
	}

	updated, err := s.commentRepo.UpdateContent(ctx, commentID, content, mentions)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, domain.CommentUpdated, postID, commentID, updated)
	return updated, nil
}

// Delete removes the caller's own comment with its replies.
func (s *CommentService) Delete(ctx context.Context, userID, postID, commentID string) error {
	c, err := s.comment(ctx, postID, commentID)
	if err != nil {
		return err
	}
	if c.AuthorID != userID {
		return domain.ErrForbidden
	}
	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return err
	}

	s.publish(ctx, domain.CommentDeleted, postID, commentID, nil)
	return nil
}

// ListReplies returns the replies to a top-level comment, oldest first.
func (s *CommentService) ListReplies(ctx context.Context, postID, parentID string, page domain.Page) ([]*domain.Comment, error) {
	if _, err := s.topLevel(ctx, postID, parentID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListReplies(ctx, parentID, page)
}

// Mentionable returns the usernames a reply in the thread may mention.
func (s *CommentService) Mentionable(ctx context.Context, postID, parentID string) ([]string, error) {
	if _, err := s.topLevel(ctx, postID, parentID); err != nil {
		return nil, err
	}
	return s.commentRepo.ThreadParticipants(ctx, parentID)
}

// Reply answers a top-level comment. Mentions are kept only for users
// taking part in the thread.
func (s *CommentService) Reply(ctx context.Context, author *domain.User, postID, parentID, content string) (*domain.Comment, error) {
	parent, err := s.topLevel(ctx, postID, parentID)
	if err != nil {
		return nil, err
	}

	participants, err := s.commentRepo.ThreadParticipants(ctx, parent.ID)
	if err != nil {
		return nil, err
	}

	c := &domain.Comment{
		ID:             uuid.NewString(),
		PostID:         postID,
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
		ParentID:       &parent.ID,
		Content:        content,
		Mentions:       FilterMentions(content, participants),
	}
	if err := s.commentRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.publish(ctx, domain.CommentCreated, postID, c.ID, c)
	return c, nil
}
