package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/k4lib3/stackover/backend/internal/models"
)

// VoteRepo is the vote ledger. Casting inserts the ledger row and bumps the
// matching counter on the target in one transaction, so a partial write is
// never observable. First vote wins: a second cast by the same user fails
// with ErrDuplicateVote no matter which polarity it asks for.
type VoteRepo interface {
	CastQuestionVote(ctx context.Context, userID, questionID, voteType int) error
	CastCommentVote(ctx context.Context, userID, commentID, voteType int) error
}

type voteRepo struct {
	db *gorm.DB
}

func NewVoteRepo(db *gorm.DB) VoteRepo {
	return &voteRepo{db: db}
}

func counterColumn(voteType int) string {
	if voteType == models.Downvote {
		return "dislikes"
	}
	return "likes"
}

func (r *voteRepo) CastQuestionVote(ctx context.Context, userID, questionID, voteType int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var question models.Question
		if err := tx.First(&question, questionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		vote := models.QuestionVote{
			UserID:     userID,
			QuestionID: questionID,
			VoteType:   voteType,
		}
		if err := tx.Create(&vote).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateVote
			}
			return err
		}

		col := counterColumn(voteType)
		return tx.Model(&models.Question{}).Where("id = ?", questionID).
			UpdateColumn(col, gorm.Expr(fmt.Sprintf("%s + 1", col))).Error
	})
}

func (r *voteRepo) CastCommentVote(ctx context.Context, userID, commentID, voteType int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.First(&comment, commentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		vote := models.CommentVote{
			UserID:    userID,
			CommentID: commentID,
			VoteType:  voteType,
		}
		if err := tx.Create(&vote).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateVote
			}
			return err
		}

		col := counterColumn(voteType)
		return tx.Model(&models.Comment{}).Where("id = ?", commentID).
			UpdateColumn(col, gorm.Expr(fmt.Sprintf("%s + 1", col))).Error
	})
}
