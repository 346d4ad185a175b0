package models

import "time"

// Bookmark marks a question as saved by a user. Pure set membership: the
// unique index keeps one row per (user, question) pair.
type Bookmark struct {
	ID         int       `gorm:"primaryKey" json:"id"`
	UserID     int       `gorm:"not null;index;uniqueIndex:idx_user_question" json:"user_id"`
	QuestionID int       `gorm:"not null;uniqueIndex:idx_user_question" json:"question_id"`
	CreatedAt  time.Time `json:"created_at"`
}
