package service

import (
	"context"
	"testing"

	"parlor/internal/models"
	"parlor/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn      func(context.Context, *models.Comment) error
	getByIDFn     func(context.Context, uint) (*models.Comment, error)
	listByPostFn  func(context.Context, uint) ([]models.CommentListItem, error)
	listRepliesFn func(context.Context, uint) ([]models.CommentListItem, error)
	updateFn      func(context.Context, *models.Comment) error
	deleteFn      func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]models.CommentListItem, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) ListReplies(ctx context.Context, commentID uint) ([]models.CommentListItem, error) {
	return s.listRepliesFn(ctx, commentID)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, c *models.Comment) error {
			c.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, Text: "existing", ProfileID: 1}, nil
		},
		listByPostFn:  func(_ context.Context, _ uint) ([]models.CommentListItem, error) { return nil, nil },
		listRepliesFn: func(_ context.Context, _ uint) ([]models.CommentListItem, error) { return nil, nil },
		updateFn:      func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn:      func(_ context.Context, _ uint) error { return nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn  func(context.Context, *models.Post) error
	getByIDFn func(context.Context, uint) (*models.Post, error)
	updateFn  func(context.Context, *models.Post) error
	deleteFn  func(context.Context, uint) error
	likeFn    func(context.Context, uint, uint) error
	unlikeFn  func(context.Context, uint, uint) error
	isLikedFn func(context.Context, uint, uint) (bool, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) Like(ctx context.Context, profileID, postID uint) error {
	return s.likeFn(ctx, profileID, postID)
}
func (s *postRepoStub) Unlike(ctx context.Context, profileID, postID uint) error {
	return s.unlikeFn(ctx, profileID, postID)
}
func (s *postRepoStub) IsLiked(ctx context.Context, profileID, postID uint) (bool, error) {
	return s.isLikedFn(ctx, profileID, postID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, p *models.Post) error {
			p.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id, ProfileID: 1, Text: "existing"}, nil
		},
		updateFn:  func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:  func(_ context.Context, _ uint) error { return nil },
		likeFn:    func(_ context.Context, _, _ uint) error { return nil },
		unlikeFn:  func(_ context.Context, _, _ uint) error { return nil },
		isLikedFn: func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
	}
}

// profileRepoStub is a stub for repository.ProfileRepository.
type profileRepoStub struct {
	createFn        func(context.Context, *models.Profile) error
	getByIDFn       func(context.Context, uint) (*models.Profile, error)
	getByIDCachedFn func(context.Context, uint) (*models.Profile, error)
	getByUserIDFn   func(context.Context, uint) (*models.Profile, error)
	updateFn        func(context.Context, *models.Profile) error
	deleteFn        func(context.Context, uint) error
}

func (s *profileRepoStub) Create(ctx context.Context, profile *models.Profile) error {
	return s.createFn(ctx, profile)
}
func (s *profileRepoStub) GetByID(ctx context.Context, id uint) (*models.Profile, error) {
	return s.getByIDFn(ctx, id)
}
func (s *profileRepoStub) GetByIDCached(ctx context.Context, id uint) (*models.Profile, error) {
	return s.getByIDCachedFn(ctx, id)
}
func (s *profileRepoStub) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.getByUserIDFn(ctx, userID)
}
func (s *profileRepoStub) Update(ctx context.Context, profile *models.Profile) error {
	return s.updateFn(ctx, profile)
}
func (s *profileRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopProfileRepo() *profileRepoStub {
	return &profileRepoStub{
		createFn: func(_ context.Context, p *models.Profile) error {
			p.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Profile, error) {
			return &models.Profile{ID: id, UserID: 1, Name: "ada"}, nil
		},
		getByIDCachedFn: func(_ context.Context, id uint) (*models.Profile, error) {
			return &models.Profile{ID: id, UserID: 1, Name: "ada"}, nil
		},
		getByUserIDFn: func(_ context.Context, userID uint) (*models.Profile, error) {
			return &models.Profile{ID: 1, UserID: userID, Name: "ada"}, nil
		},
		updateFn: func(_ context.Context, _ *models.Profile) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// ownerRepoStub is a stub for repository.OwnerRepository.
type ownerRepoStub struct {
	checkFn func(context.Context, uint, repository.OwnerRef) (bool, error)
}

func (s *ownerRepoStub) CheckOwner(ctx context.Context, userID uint, ref repository.OwnerRef) (bool, error) {
	return s.checkFn(ctx, userID, ref)
}

func ownerAlways(owned bool) *ownerRepoStub {
	return &ownerRepoStub{
		checkFn: func(_ context.Context, _ uint, _ repository.OwnerRef) (bool, error) {
			return owned, nil
		},
	}
}

func notFoundProfileRepo() *profileRepoStub {
	repo := noopProfileRepo()
	repo.getByIDFn = func(_ context.Context, _ uint) (*models.Profile, error) {
		return nil, gorm.ErrRecordNotFound
	}
	return repo
}

func notFoundPostRepo() *postRepoStub {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) {
		return nil, gorm.ErrRecordNotFound
	}
	return repo
}

func assertAppError(t *testing.T, err error, code string, message string) {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
	if message != "" {
		assert.Equal(t, message, appErr.UserMessages()[0])
	}
}

func assertValidationError(t *testing.T, err error, messages ...string) {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)
	if len(messages) > 0 {
		assert.Equal(t, messages, appErr.UserMessages())
	}
}
