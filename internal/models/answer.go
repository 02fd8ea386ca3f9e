package models

// Answer is one selectable option belonging to exactly one question.
// Replies reference answers by ID as both vote and prediction.
type Answer struct {
	ID         int    `gorm:"primaryKey" json:"id"`
	Content    string `gorm:"not null" json:"content"`
	QuestionID int    `gorm:"index;not null" json:"question"`
}

type CreateAnswerRequest struct {
	Content string `json:"content"`
}
