package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/k4lib3/stackover/backend/internal/models"
)

// rankOrder sorts by net score with id as the tie breaker, so repeated
// listings of unchanged data come back in the same order.
const rankOrder = "(likes - dislikes) DESC, id ASC"

type QuestionRepo interface {
	Create(ctx context.Context, question *models.Question) error
	GetByID(ctx context.Context, id int) (*models.Question, error)
	// Ranked returns all questions ordered by likes - dislikes descending.
	Ranked(ctx context.Context) ([]models.Question, error)
	// SearchByTitle filters by case-insensitive substring match on the
	// title before ranking.
	SearchByTitle(ctx context.Context, title string) ([]models.Question, error)
	ByAuthor(ctx context.Context, authorID int) ([]models.Question, error)
	// UpdateOwned applies the given column updates to the question only if
	// it exists and belongs to authorID; both failures collapse into
	// ErrNotFound.
	UpdateOwned(ctx context.Context, id, authorID int, fields map[string]any) (*models.Question, error)
	// Delete removes the question together with its comments and all
	// votes referencing either. Bookmarks are left behind; listings skip
	// them.
	Delete(ctx context.Context, question *models.Question) error
	// GetAuthor resolves the question's author explicitly rather than
	// through lazy association traversal.
	GetAuthor(ctx context.Context, question *models.Question) (*models.User, error)
}

type questionRepo struct {
	db *gorm.DB
}

func NewQuestionRepo(db *gorm.DB) QuestionRepo {
	return &questionRepo{db: db}
}

func (r *questionRepo) Create(ctx context.Context, question *models.Question) error {
	return r.db.WithContext(ctx).Create(question).Error
}

func (r *questionRepo) GetByID(ctx context.Context, id int) (*models.Question, error) {
	var question models.Question
	if err := r.db.WithContext(ctx).First(&question, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

func (r *questionRepo) Ranked(ctx context.Context) ([]models.Question, error) {
	var questions []models.Question
	err := r.db.WithContext(ctx).Preload("User").Order(rankOrder).Find(&questions).Error
	return questions, err
}

func (r *questionRepo) SearchByTitle(ctx context.Context, title string) ([]models.Question, error) {
	var questions []models.Question
	err := r.db.WithContext(ctx).Preload("User").
		Where("title ILIKE ?", "%"+title+"%").
		Order(rankOrder).Find(&questions).Error
	return questions, err
}

func (r *questionRepo) ByAuthor(ctx context.Context, authorID int) ([]models.Question, error) {
	var questions []models.Question
	err := r.db.WithContext(ctx).Preload("User").
		Where("author_id = ?", authorID).
		Order("created_at DESC, id DESC").Find(&questions).Error
	return questions, err
}

func (r *questionRepo) UpdateOwned(ctx context.Context, id, authorID int, fields map[string]any) (*models.Question, error) {
	var question models.Question
	err := r.db.WithContext(ctx).
		Where("id = ? AND author_id = ?", id, authorID).
		First(&question).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if len(fields) > 0 {
		if err := r.db.WithContext(ctx).Model(&question).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return &question, nil
}

func (r *questionRepo) Delete(ctx context.Context, question *models.Question) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var commentIDs []int
		if err := tx.Model(&models.Comment{}).
			Where("question_id = ?", question.ID).
			Pluck("id", &commentIDs).Error; err != nil {
			return err
		}
		if len(commentIDs) > 0 {
			if err := tx.Where("comment_id IN ?", commentIDs).Delete(&models.CommentVote{}).Error; err != nil {
				return err
			}
			if err := tx.Where("question_id = ?", question.ID).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("question_id = ?", question.ID).Delete(&models.QuestionVote{}).Error; err != nil {
			return err
		}
		return tx.Delete(question).Error
	})
}

func (r *questionRepo) GetAuthor(ctx context.Context, question *models.Question) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, question.AuthorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
