package models

import "time"

type Question struct {
	ID          int    `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"not null" json:"description"`
	AuthorID    int    `json:"author_id"`
	User        User   `gorm:"foreignKey:AuthorID" json:"user"`

	// Denormalized tallies of the vote ledger, maintained in the same
	// transaction as each ledger insert.
	Likes    int `gorm:"default:0" json:"likes"`
	Dislikes int `gorm:"default:0" json:"dislikes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateQuestionRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type UpdateQuestionRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
