package service

import (
	"context"
	"errors"
	"fmt"

	"parlor/internal/models"
	"parlor/internal/observability"
	"parlor/internal/repository"
	"parlor/internal/validation"

	"gorm.io/gorm"
)

type PostService struct {
	postRepo    repository.PostRepository
	profileRepo repository.ProfileRepository
	ownerRepo   repository.OwnerRepository
}

type CreatePostInput struct {
	ProfileID uint
	Body      validation.Input
}

type UpdatePostInput struct {
	UserID uint
	PostID uint
	Body   validation.Input
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

func NewPostService(
	postRepo repository.PostRepository,
	profileRepo repository.ProfileRepository,
	ownerRepo repository.OwnerRepository,
) *PostService {
	return &PostService{
		postRepo:    postRepo,
		profileRepo: profileRepo,
		ownerRepo:   ownerRepo,
	}
}

func postNotFound(id uint) *models.AppError {
	return models.NewNotFoundError(fmt.Sprintf("No post with an id of %d found.", id))
}

func (s *PostService) checkOwner(ctx context.Context, userID uint, ref repository.OwnerRef) error {
	owned, err := s.ownerRepo.CheckOwner(ctx, userID, ref)
	if err != nil {
		return models.NewInternalError("ownership check failed", err)
	}
	if !owned {
		return models.NewForbiddenError(forbiddenMessage)
	}
	return nil
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	ctx, span := observability.GetTraceLayer().TraceServiceMethod(ctx, "PostService", "CreatePost")
	defer span.End()

	if msgs := validation.Evaluate(validation.TextRules(), in.Body); len(msgs) > 0 {
		return nil, models.NewValidationError(msgs...)
	}

	post := &models.Post{
		ProfileID: in.ProfileID,
		Text:      in.Body.Str("text"),
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, models.NewInternalError(
			"Something went wrong when trying to create that post. Please try again.", err)
	}
	observability.PostsCreated.Inc()
	return post, nil
}

func (s *PostService) GetPost(ctx context.Context, postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, postNotFound(postID)
		}
		return nil, models.NewInternalError("failed to load post", err)
	}
	return post, nil
}

// GetPostForViewer loads a post and marks whether the viewer's profile has
// liked it. A viewer without a profile reads the post with Liked false.
func (s *PostService) GetPostForViewer(ctx context.Context, userID, postID uint) (*models.Post, error) {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return post, nil
		}
		return nil, models.NewInternalError("failed to load profile", err)
	}

	liked, err := s.postRepo.IsLiked(ctx, profile.ID, postID)
	if err != nil {
		return nil, models.NewInternalError("failed to load post", err)
	}
	post.Liked = liked
	return post, nil
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	if err := s.checkOwner(ctx, in.UserID, repository.OwnerRef{PostID: &in.PostID}); err != nil {
		return nil, err
	}

	if in.Body.Str("text") == "" {
		return nil, models.NewValidationError("Post text must be included")
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, postNotFound(in.PostID)
		}
		return nil, models.NewInternalError("failed to load post", err)
	}

	post.Text = in.Body.Str("text")
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, models.NewInternalError("failed to update post", err)
	}
	return post, nil
}

// DeletePost removes the post and returns its pre-deletion snapshot.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) (*models.Post, error) {
	if err := s.checkOwner(ctx, in.UserID, repository.OwnerRef{PostID: &in.PostID}); err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, postNotFound(in.PostID)
		}
		return nil, models.NewInternalError("failed to load post", err)
	}

	if err := s.postRepo.Delete(ctx, in.PostID); err != nil {
		return nil, models.NewInternalError("failed to delete post", err)
	}
	return post, nil
}

// callerProfile resolves the profile that belongs to the authenticated user.
func (s *PostService) callerProfile(ctx context.Context, userID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewForbiddenError(forbiddenMessage)
		}
		return nil, models.NewInternalError("failed to load profile", err)
	}
	return profile, nil
}

func (s *PostService) LikePost(ctx context.Context, userID, postID uint) (*models.Post, error) {
	profile, err := s.callerProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if _, err := s.GetPost(ctx, postID); err != nil {
		return nil, err
	}

	if err := s.postRepo.Like(ctx, profile.ID, postID); err != nil {
		return nil, models.NewInternalError("failed to like post", err)
	}
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	post.Liked = true
	return post, nil
}

func (s *PostService) UnlikePost(ctx context.Context, userID, postID uint) (*models.Post, error) {
	profile, err := s.callerProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if _, err := s.GetPost(ctx, postID); err != nil {
		return nil, err
	}

	if err := s.postRepo.Unlike(ctx, profile.ID, postID); err != nil {
		return nil, models.NewInternalError("failed to unlike post", err)
	}
	return s.GetPost(ctx, postID)
}
