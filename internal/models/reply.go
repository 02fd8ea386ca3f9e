package models

// Reply is a user's vote (their own choice) and prediction (the answer they
// expect to win) for a question. The unique index on (user_id, question_id)
// is the authoritative guard against duplicate replies; validation merely
// pre-checks it.
//
// The JSON shape is a load-bearing contract: exactly id, user, question,
// vote, prediction, all flat identifiers.
type Reply struct {
	ID           int `gorm:"primaryKey" json:"id"`
	UserID       int `gorm:"not null;uniqueIndex:idx_replies_user_question" json:"user"`
	QuestionID   int `gorm:"not null;uniqueIndex:idx_replies_user_question;index" json:"question"`
	VoteID       int `gorm:"not null" json:"vote"`
	PredictionID int `gorm:"not null" json:"prediction"`

	Question Question `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"-"`
	Vote     Answer   `gorm:"foreignKey:VoteID" json:"-"`
	Pred     Answer   `gorm:"foreignKey:PredictionID" json:"-"`
}

type CreateReplyRequest struct {
	Vote       int `json:"vote"`
	Prediction int `json:"prediction"`
}

// UpdateReplyRequest carries a partial update; nil means "leave unchanged".
type UpdateReplyRequest struct {
	Vote       *int `json:"vote"`
	Prediction *int `json:"prediction"`
}
