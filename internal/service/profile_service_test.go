package service

import (
	"context"
	"testing"

	"parlor/internal/featureflags"
	"parlor/internal/models"
	"parlor/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileService(profileRepo *profileRepoStub, owner *ownerRepoStub, flags *featureflags.Manager) *ProfileService {
	return NewProfileService(profileRepo, owner, flags)
}

func TestProfileService_GetProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		svc := newProfileService(noopProfileRepo(), ownerAlways(true), nil)

		profile, err := svc.GetProfile(ctx, 3, 0)
		require.NoError(t, err)
		assert.Equal(t, uint(3), profile.ID)
	})

	t.Run("not found", func(t *testing.T) {
		svc := newProfileService(notFoundProfileRepo(), ownerAlways(true), nil)

		_, err := svc.GetProfile(ctx, 42, 0)
		assertAppError(t, err, models.CodeNotFound, "A profile with an id of 42 was not found.")
	})

	t.Run("cached path used when flag on", func(t *testing.T) {
		cachedCalls := 0
		profileRepo := noopProfileRepo()
		profileRepo.getByIDCachedFn = func(_ context.Context, id uint) (*models.Profile, error) {
			cachedCalls++
			return &models.Profile{ID: id, UserID: 1}, nil
		}
		svc := newProfileService(profileRepo, ownerAlways(true), featureflags.NewManager("profile_cache=on"))

		_, err := svc.GetProfile(ctx, 3, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, cachedCalls)
	})

	t.Run("uncached path when flag off", func(t *testing.T) {
		cachedCalls := 0
		profileRepo := noopProfileRepo()
		profileRepo.getByIDCachedFn = func(_ context.Context, id uint) (*models.Profile, error) {
			cachedCalls++
			return &models.Profile{ID: id, UserID: 1}, nil
		}
		svc := newProfileService(profileRepo, ownerAlways(true), featureflags.NewManager("profile_cache=off"))

		_, err := svc.GetProfile(ctx, 3, 1)
		require.NoError(t, err)
		assert.Equal(t, 0, cachedCalls)
	})
}

func TestProfileService_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("not owner", func(t *testing.T) {
		svc := newProfileService(noopProfileRepo(), ownerAlways(false), nil)

		_, err := svc.UpdateProfile(ctx, UpdateProfileInput{UserID: 2, ProfileID: 1, Body: validation.Input{"name": "x"}})
		assertAppError(t, err, models.CodeForbidden, "Access to that post is not allowed from this account.")
	})

	t.Run("name chain", func(t *testing.T) {
		svc := newProfileService(noopProfileRepo(), ownerAlways(true), nil)

		_, err := svc.UpdateProfile(ctx, UpdateProfileInput{UserID: 1, ProfileID: 1, Body: validation.Input{}})
		assertValidationError(t, err, "Name must exist.")

		_, err = svc.UpdateProfile(ctx, UpdateProfileInput{UserID: 1, ProfileID: 1, Body: validation.Input{"name": "   "}})
		assertValidationError(t, err, "Name must exist.")
	})

	t.Run("bad website", func(t *testing.T) {
		svc := newProfileService(noopProfileRepo(), ownerAlways(true), nil)

		_, err := svc.UpdateProfile(ctx, UpdateProfileInput{UserID: 1, ProfileID: 1, Body: validation.Input{
			"name":    "ada",
			"website": "not a url",
		}})
		assertValidationError(t, err, "Website must be a valid URL.")
	})

	t.Run("success", func(t *testing.T) {
		var saved *models.Profile
		profileRepo := noopProfileRepo()
		profileRepo.updateFn = func(_ context.Context, p *models.Profile) error {
			saved = p
			return nil
		}
		svc := newProfileService(profileRepo, ownerAlways(true), nil)

		profile, err := svc.UpdateProfile(ctx, UpdateProfileInput{UserID: 1, ProfileID: 1, Body: validation.Input{
			"name":    "Ada Lovelace",
			"about":   "first programmer",
			"website": "https://example.com",
		}})
		require.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", profile.Name)
		assert.Equal(t, "first programmer", saved.About)
		assert.Equal(t, "https://example.com", saved.Website)
	})
}

func TestProfileService_DeleteProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("not owner includes missing profile", func(t *testing.T) {
		svc := newProfileService(notFoundProfileRepo(), ownerAlways(false), nil)

		_, err := svc.DeleteProfile(ctx, DeleteProfileInput{UserID: 1, ProfileID: 42})
		assertAppError(t, err, models.CodeForbidden, "Access to that post is not allowed from this account.")
	})

	t.Run("returns pre-deletion snapshot", func(t *testing.T) {
		profileRepo := noopProfileRepo()
		profileRepo.getByIDFn = func(_ context.Context, id uint) (*models.Profile, error) {
			return &models.Profile{ID: id, UserID: 1, Name: "doomed"}, nil
		}
		svc := newProfileService(profileRepo, ownerAlways(true), nil)

		profile, err := svc.DeleteProfile(ctx, DeleteProfileInput{UserID: 1, ProfileID: 4})
		require.NoError(t, err)
		assert.Equal(t, "doomed", profile.Name)
	})
}
