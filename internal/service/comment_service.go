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

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	profileRepo repository.ProfileRepository
	ownerRepo   repository.OwnerRepository
}

type CreateCommentInput struct {
	PostID    uint
	ProfileID uint
	Body      validation.Input
}

type CreateReplyInput struct {
	CommentID uint
	ProfileID uint
	Body      validation.Input
}

type UpdateCommentInput struct {
	UserID    uint
	CommentID uint
	Body      validation.Input
}

type DeleteCommentInput struct {
	UserID    uint
	CommentID uint
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	profileRepo repository.ProfileRepository,
	ownerRepo repository.OwnerRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		profileRepo: profileRepo,
		ownerRepo:   ownerRepo,
	}
}

func commentNotFound(id uint) *models.AppError {
	return models.NewNotFoundError(fmt.Sprintf("A comment with an id of %d was not found.", id))
}

func (s *CommentService) checkOwner(ctx context.Context, userID uint, ref repository.OwnerRef) error {
	owned, err := s.ownerRepo.CheckOwner(ctx, userID, ref)
	if err != nil {
		return models.NewInternalError("ownership check failed", err)
	}
	if !owned {
		return models.NewForbiddenError(forbiddenMessage)
	}
	return nil
}

// CreateComment attaches a comment to a post. Existence is checked post first,
// then profile, before the body is validated.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	ctx, span := observability.GetTraceLayer().TraceServiceMethod(ctx, "CommentService", "CreateComment")
	defer span.End()

	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError(fmt.Sprintf("A post with the id of %d was not found.", in.PostID))
		}
		return nil, models.NewInternalError("failed to load post", err)
	}
	if _, err := s.profileRepo.GetByID(ctx, in.ProfileID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, profileNotFound(in.ProfileID)
		}
		return nil, models.NewInternalError("failed to load profile", err)
	}

	if msgs := validation.Evaluate(validation.TextRules(), in.Body); len(msgs) > 0 {
		return nil, models.NewValidationError(msgs...)
	}

	postID := in.PostID
	comment := &models.Comment{
		Text:      in.Body.Str("text"),
		ProfileID: in.ProfileID,
		PostID:    &postID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, models.NewInternalError("failed to create comment", err)
	}
	observability.CommentsCreated.WithLabelValues("post").Inc()
	return comment, nil
}

// CreateReply attaches a comment to a parent comment. Existence is checked
// profile first, then the parent.
func (s *CommentService) CreateReply(ctx context.Context, in CreateReplyInput) (*models.Comment, error) {
	ctx, span := observability.GetTraceLayer().TraceServiceMethod(ctx, "CommentService", "CreateReply")
	defer span.End()

	if _, err := s.profileRepo.GetByID(ctx, in.ProfileID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, profileNotFound(in.ProfileID)
		}
		return nil, models.NewInternalError("failed to load profile", err)
	}
	if _, err := s.commentRepo.GetByID(ctx, in.CommentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commentNotFound(in.CommentID)
		}
		return nil, models.NewInternalError("failed to load comment", err)
	}

	if msgs := validation.Evaluate(validation.TextRules(), in.Body); len(msgs) > 0 {
		return nil, models.NewValidationError(msgs...)
	}

	parentID := in.CommentID
	comment := &models.Comment{
		Text:      in.Body.Str("text"),
		ProfileID: in.ProfileID,
		CommentID: &parentID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, models.NewInternalError("failed to create reply", err)
	}
	observability.CommentsCreated.WithLabelValues("reply").Inc()
	return comment, nil
}

func (s *CommentService) ListComments(ctx context.Context, postID uint) ([]models.CommentListItem, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("That post was not found in the database.")
		}
		return nil, models.NewInternalError("failed to load post", err)
	}
	items, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, models.NewInternalError("failed to list comments", err)
	}
	return items, nil
}

func (s *CommentService) ListReplies(ctx context.Context, commentID uint) ([]models.CommentListItem, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("That comment was not found in the database.")
		}
		return nil, models.NewInternalError("failed to load comment", err)
	}
	items, err := s.commentRepo.ListReplies(ctx, commentID)
	if err != nil {
		return nil, models.NewInternalError("failed to list replies", err)
	}
	return items, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	if err := s.checkOwner(ctx, in.UserID, repository.OwnerRef{CommentID: &in.CommentID}); err != nil {
		return nil, err
	}

	if msgs := validation.Evaluate(validation.TextRules(), in.Body); len(msgs) > 0 {
		return nil, models.NewValidationError(msgs...)
	}

	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commentNotFound(in.CommentID)
		}
		return nil, models.NewInternalError("failed to load comment", err)
	}

	comment.Text = in.Body.Str("text")
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, models.NewInternalError("failed to update comment", err)
	}
	return comment, nil
}

// DeleteComment removes the comment (and its replies) and returns the
// pre-deletion snapshot.
func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) (*models.Comment, error) {
	if err := s.checkOwner(ctx, in.UserID, repository.OwnerRef{CommentID: &in.CommentID}); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commentNotFound(in.CommentID)
		}
		return nil, models.NewInternalError("failed to load comment", err)
	}

	if err := s.commentRepo.Delete(ctx, in.CommentID); err != nil {
		return nil, models.NewInternalError("failed to delete comment", err)
	}
	return comment, nil
}
