package models

import "time"

// Vote polarity values stored in the ledgers.
const (
	Upvote   = 1
	Downvote = -1
)

// QuestionVote records one immutable vote by a user on a question. The
// composite unique index is the serialization point that makes concurrent
// duplicate casts resolve to exactly one row.
type QuestionVote struct {
	ID         int       `gorm:"primaryKey" json:"id"`
	UserID     int       `gorm:"not null;uniqueIndex:idx_question_vote" json:"user_id"`
	QuestionID int       `gorm:"not null;uniqueIndex:idx_question_vote" json:"question_id"`
	VoteType   int       `gorm:"not null" json:"vote_type"` // Upvote or Downvote
	CreatedAt  time.Time `json:"created_at"`
}

// CommentVote is the comment-scoped twin of QuestionVote.
type CommentVote struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	UserID    int       `gorm:"not null;uniqueIndex:idx_comment_vote" json:"user_id"`
	CommentID int       `gorm:"not null;uniqueIndex:idx_comment_vote" json:"comment_id"`
	VoteType  int       `gorm:"not null" json:"vote_type"`
	CreatedAt time.Time `json:"created_at"`
}
