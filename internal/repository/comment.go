package repository

import (
	"context"

	"parlor/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines persistence operations for comments and replies.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByPost(ctx context.Context, postID uint) ([]models.CommentListItem, error)
	ListReplies(ctx context.Context, commentID uint) ([]models.CommentListItem, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository returns a new CommentRepository implementation.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// commentRow is the flat scan target for the joined list queries.
type commentRow struct {
	ID        uint
	Text      string
	ProfileID uint
	Name      string
}

func (r *commentRepository) list(ctx context.Context, column string, id uint) ([]models.CommentListItem, error) {
	var rows []commentRow
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Select("comments.id, comments.text, comments.profile_id, profiles.name").
		Joins("JOIN profiles ON profiles.id = comments.profile_id").
		Where(column+" = ?", id).
		Order("comments.created_at asc, comments.id asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]models.CommentListItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, models.CommentListItem{
			ID:        row.ID,
			Text:      row.Text,
			ProfileID: row.ProfileID,
			Profile:   models.CommentAuthor{Name: row.Name},
		})
	}
	return items, nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID uint) ([]models.CommentListItem, error) {
	return r.list(ctx, "comments.post_id", postID)
}

func (r *commentRepository) ListReplies(ctx context.Context, commentID uint) ([]models.CommentListItem, error) {
	return r.list(ctx, "comments.comment_id", commentID)
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Comment{}, id).Error
	})
}
