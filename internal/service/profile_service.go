package service

import (
	"context"

	"blog-api/internal/domain"
)

type ProfileService struct {
	profileRepo domain.ProfileRepository
}

func NewProfileService(profileRepo domain.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

func (s *ProfileService) Get(ctx context.Context, username string) (*domain.Profile, error) {
	return s.profileRepo.GetByUsername(ctx, username)
}

// Update applies a non-empty partial update to the user's profile.
func (s *ProfileService) Update(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.Profile, error) {
	if update.Empty() {
		return nil, domain.ErrInvalidInput
	}
	return s.profileRepo.Update(ctx, userID, update)
}
