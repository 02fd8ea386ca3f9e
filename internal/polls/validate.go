package polls

import (
	"fmt"

	"github.com/emilythestrangee/prediction-polls/backend/internal/models"
)

// ValidateCreate runs the ordered checks for a new reply. The order is part
// of the contract: first failure wins so error messages stay deterministic.
//
//  1. question must be Open (staff does not override this)
//  2. the user must not already have a reply (existing non-nil fails)
//  3. vote must name an answer of this question
//  4. prediction must name an answer of this question
//
// answers is the question's full answer set; membership is checked against
// it rather than a global lookup so cross-question references fail the same
// way as dangling ones.
func ValidateCreate(state State, existing *models.Reply, answers []models.Answer, voteID, predictionID int) error {
	switch state {
	case Concluded:
		return fmt.Errorf("%w: question has concluded", ErrQuestionNotOpen)
	case Unpublished:
		return fmt.Errorf("%w: question has not been published", ErrQuestionNotOpen)
	}
	if existing != nil {
		return ErrDuplicateReply
	}
	if !answerBelongs(answers, voteID) {
		return ErrInvalidVote
	}
	if !answerBelongs(answers, predictionID) {
		return ErrInvalidPrediction
	}
	return nil
}

// ValidateUpdate checks only the fields supplied; nil means "unchanged".
// Lifecycle and duplicate checks are deliberately not re-run here: only
// creation is gated on the question being open.
func ValidateUpdate(answers []models.Answer, voteID, predictionID *int) error {
	if voteID != nil && !answerBelongs(answers, *voteID) {
		return ErrInvalidVote
	}
	if predictionID != nil && !answerBelongs(answers, *predictionID) {
		return ErrInvalidPrediction
	}
	return nil
}

func answerBelongs(answers []models.Answer, id int) bool {
	for _, a := range answers {
		if a.ID == id {
			return true
		}
	}
	return false
}
