package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/k4lib3/stackover/backend/internal/models"
)

type CommentRepo interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id int) (*models.Comment, error)
	// RankedByQuestion lists one question's comments ordered by net score,
	// ties broken by id.
	RankedByQuestion(ctx context.Context, questionID int) ([]models.Comment, error)
	// UpdateOwned mirrors QuestionRepo.UpdateOwned: absent and not-owned
	// both come back as ErrNotFound.
	UpdateOwned(ctx context.Context, id, authorID int, fields map[string]any) (*models.Comment, error)
	// Delete removes the comment and its votes.
	Delete(ctx context.Context, comment *models.Comment) error
}

type commentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) CommentRepo {
	return &commentRepo{db: db}
}

func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepo) GetByID(ctx context.Context, id int) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepo) RankedByQuestion(ctx context.Context, questionID int) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).Preload("User").
		Where("question_id = ?", questionID).
		Order(rankOrder).Find(&comments).Error
	return comments, err
}

func (r *commentRepo) UpdateOwned(ctx context.Context, id, authorID int, fields map[string]any) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Where("id = ? AND author_id = ?", id, authorID).
		First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if len(fields) > 0 {
		if err := r.db.WithContext(ctx).Model(&comment).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return &comment, nil
}

func (r *commentRepo) Delete(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", comment.ID).Delete(&models.CommentVote{}).Error; err != nil {
			return err
		}
		return tx.Delete(comment).Error
	})
}
