package models

import "time"

type Question struct {
	ID            int       `gorm:"primaryKey" json:"id"`
	Content       string    `gorm:"not null" json:"content"`
	DatePublished time.Time `gorm:"not null" json:"date_published"`
	DateConcluded time.Time `gorm:"not null" json:"date_concluded"`

	// Answers are owned by the question; deleting a question removes them
	// (and their replies) at the database level.
	Answers []Answer `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateQuestionRequest struct {
	Content       string    `json:"content"`
	DatePublished time.Time `json:"date_published"`
	DateConcluded time.Time `json:"date_concluded"`
}
