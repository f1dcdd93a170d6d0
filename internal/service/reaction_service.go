package service

import (
	"context"
	"time"

	"blog-api/internal/domain"
)

type ReactionService struct {
	reactionRepo domain.ReactionRepository
	resources    domain.ResourceChecker
}

func NewReactionService(reactionRepo domain.ReactionRepository, resources domain.ResourceChecker) *ReactionService {
	return &ReactionService{reactionRepo: reactionRepo, resources: resources}
}

func (s *ReactionService) exists(ctx context.Context, target domain.Resource) error {
	ok, err := s.resources.Exists(ctx, target)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrResourceNotFound
	}
	return nil
}

// React sets the user's reaction on target, replacing any previous one.
func (s *ReactionService) React(ctx context.Context, userID string, target domain.Resource, reaction string) (*domain.Reaction, error) {
	if err := s.exists(ctx, target); err != nil {
		return nil, err
	}
	r := &domain.Reaction{
		Target:    target,
		UserID:    userID,
		Reaction:  reaction,
		CreatedAt: time.Now(),
	}
	if err := s.reactionRepo.Upsert(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *ReactionService) Remove(ctx context.Context, userID string, target domain.Resource) error {
	return s.reactionRepo.Delete(ctx, userID, target)
}

// Counts returns the number of each reaction on target.
func (s *ReactionService) Counts(ctx context.Context, target domain.Resource) (map[string]int, error) {
	if err := s.exists(ctx, target); err != nil {
		return nil, err
	}
	return s.reactionRepo.Counts(ctx, target)
}
