package repository

import (
	"context"
	"errors"

	"parlor/internal/models"
	"parlor/internal/observability"

	"gorm.io/gorm"
)

// OwnerRef names the resource a caller wants to act on. At most one field is
// normally set; when several are, ProfileID wins over PostID over CommentID.
type OwnerRef struct {
	ProfileID *uint
	PostID    *uint
	CommentID *uint
}

// OwnerRepository resolves whether a user owns a referenced resource.
type OwnerRepository interface {
	CheckOwner(ctx context.Context, userID uint, ref OwnerRef) (bool, error)
}

type ownerRepository struct {
	db *gorm.DB
}

// NewOwnerRepository returns a new OwnerRepository implementation.
func NewOwnerRepository(db *gorm.DB) OwnerRepository {
	return &ownerRepository{db: db}
}

// CheckOwner walks from the referenced resource to its profile and compares
// the profile's user. A missing resource resolves to not-owned rather than an
// error, so callers cannot distinguish the two.
func (r *ownerRepository) CheckOwner(ctx context.Context, userID uint, ref OwnerRef) (bool, error) {
	ctx, span := observability.GetTraceLayer().TraceRepositoryMethod(ctx, "CheckOwner", "profiles")
	defer span.End()

	profileID, ok, err := r.resolveProfileID(ctx, ref)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	var profile models.Profile
	if err := r.db.WithContext(ctx).First(&profile, profileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return profile.UserID == userID, nil
}

func (r *ownerRepository) resolveProfileID(ctx context.Context, ref OwnerRef) (uint, bool, error) {
	switch {
	case ref.ProfileID != nil:
		return *ref.ProfileID, true, nil
	case ref.PostID != nil:
		var post models.Post
		if err := r.db.WithContext(ctx).First(&post, *ref.PostID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, false, nil
			}
			return 0, false, err
		}
		return post.ProfileID, true, nil
	case ref.CommentID != nil:
		var comment models.Comment
		if err := r.db.WithContext(ctx).First(&comment, *ref.CommentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, false, nil
			}
			return 0, false, err
		}
		return comment.ProfileID, true, nil
	default:
		return 0, false, nil
	}
}
