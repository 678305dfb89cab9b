// Package service implements the application's business rules on top of the
// repository layer.
package service

import (
	"context"
	"errors"
	"fmt"

	"parlor/internal/featureflags"
	"parlor/internal/models"
	"parlor/internal/repository"
	"parlor/internal/validation"

	"gorm.io/gorm"
)

// forbiddenMessage is shared by every ownership failure, including attempts on
// resources that do not exist.
const forbiddenMessage = "Access to that post is not allowed from this account."

// profileCacheFlag gates the cache-aside read path for profiles.
const profileCacheFlag = "profile_cache"

type ProfileService struct {
	profileRepo repository.ProfileRepository
	ownerRepo   repository.OwnerRepository
	flags       *featureflags.Manager
}

type UpdateProfileInput struct {
	UserID    uint
	ProfileID uint
	Body      validation.Input
}

type DeleteProfileInput struct {
	UserID    uint
	ProfileID uint
}

func NewProfileService(
	profileRepo repository.ProfileRepository,
	ownerRepo repository.OwnerRepository,
	flags *featureflags.Manager,
) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		ownerRepo:   ownerRepo,
		flags:       flags,
	}
}

func profileNotFound(id uint) *models.AppError {
	return models.NewNotFoundError(fmt.Sprintf("A profile with an id of %d was not found.", id))
}

func (s *ProfileService) cacheEnabled(userID uint) bool {
	return s.flags != nil && s.flags.Enabled(profileCacheFlag, userID)
}

func (s *ProfileService) GetProfile(ctx context.Context, profileID, userID uint) (*models.Profile, error) {
	var profile *models.Profile
	var err error
	if s.cacheEnabled(userID) {
		profile, err = s.profileRepo.GetByIDCached(ctx, profileID)
	} else {
		profile, err = s.profileRepo.GetByID(ctx, profileID)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, profileNotFound(profileID)
		}
		return nil, models.NewInternalError("failed to load profile", err)
	}
	return profile, nil
}

func (s *ProfileService) checkOwner(ctx context.Context, userID uint, ref repository.OwnerRef) error {
	owned, err := s.ownerRepo.CheckOwner(ctx, userID, ref)
	if err != nil {
		return models.NewInternalError("ownership check failed", err)
	}
	if !owned {
		return models.NewForbiddenError(forbiddenMessage)
	}
	return nil
}

func (s *ProfileService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.Profile, error) {
	if err := s.checkOwner(ctx, in.UserID, repository.OwnerRef{ProfileID: &in.ProfileID}); err != nil {
		return nil, err
	}

	if msgs := validation.Evaluate(validation.ProfileRules(), in.Body); len(msgs) > 0 {
		return nil, models.NewValidationError(msgs...)
	}

	profile, err := s.profileRepo.GetByID(ctx, in.ProfileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, profileNotFound(in.ProfileID)
		}
		return nil, models.NewInternalError("failed to load profile", err)
	}

	profile.Name = in.Body.Str("name")
	profile.About = in.Body.Str("about")
	profile.Website = in.Body.Str("website")
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, models.NewInternalError("failed to update profile", err)
	}
	return profile, nil
}

// DeleteProfile removes the profile and returns its pre-deletion snapshot.
func (s *ProfileService) DeleteProfile(ctx context.Context, in DeleteProfileInput) (*models.Profile, error) {
	if err := s.checkOwner(ctx, in.UserID, repository.OwnerRef{ProfileID: &in.ProfileID}); err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByID(ctx, in.ProfileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, profileNotFound(in.ProfileID)
		}
		return nil, models.NewInternalError("failed to load profile", err)
	}

	if err := s.profileRepo.Delete(ctx, in.ProfileID); err != nil {
		return nil, models.NewInternalError("failed to delete profile", err)
	}
	return profile, nil
}
