package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/k4lib3/stackover/backend/internal/models"
)

type BookmarkRepo interface {
	// Add marks the question as bookmarked by the user. Returns false with
	// a nil error when the bookmark already existed; adding is an
	// idempotent set insert. ErrNotFound when the question does not exist.
	Add(ctx context.Context, userID, questionID int) (created bool, err error)
	// Remove returns ErrNotFound when no such bookmark exists.
	Remove(ctx context.Context, userID, questionID int) error
	// Questions returns the user's bookmarked questions. Bookmarks whose
	// question has since been deleted are silently skipped.
	Questions(ctx context.Context, userID int) ([]models.Question, error)
}

type bookmarkRepo struct {
	db *gorm.DB
}

func NewBookmarkRepo(db *gorm.DB) BookmarkRepo {
	return &bookmarkRepo{db: db}
}

func (r *bookmarkRepo) Add(ctx context.Context, userID, questionID int) (bool, error) {
	var question models.Question
	if err := r.db.WithContext(ctx).First(&question, questionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}

	bookmark := models.Bookmark{UserID: userID, QuestionID: questionID}
	if err := r.db.WithContext(ctx).Create(&bookmark).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *bookmarkRepo) Remove(ctx context.Context, userID, questionID int) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND question_id = ?", userID, questionID).
		Delete(&models.Bookmark{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *bookmarkRepo) Questions(ctx context.Context, userID int) ([]models.Question, error) {
	var questions []models.Question
	// Inner join drops bookmarks pointing at deleted questions.
	err := r.db.WithContext(ctx).Model(&models.Question{}).Preload("User").
		Select("questions.*").
		Joins("JOIN bookmarks ON bookmarks.question_id = questions.id").
		Where("bookmarks.user_id = ?", userID).
		Order("bookmarks.created_at ASC, bookmarks.id ASC").
		Find(&questions).Error
	return questions, err
}
