package polls

import "context"

// Record summarizes a user's history across the questions they replied to.
// Raw counts only; how to weight open vs. concluded questions into a score
// is the surrounding service's policy call.
type Record struct {
	QuestionsReplied        int `json:"questions_replied"`
	QuestionsConcluded      int `json:"questions_concluded"`
	VotesMatchingPrediction int `json:"votes_matching_prediction"`
	PredictionsCorrect      int `json:"predictions_correct"`
}

// UserRecord computes the caller's record. A prediction counts as correct
// when the question has concluded and the predicted answer is among the
// plurality vote winners (ties included).
func (s *Service) UserRecord(ctx context.Context, caller *Caller) (*Record, error) {
	if caller == nil {
		return nil, ErrUnauthenticated
	}
	replies, err := s.store.ListRepliesByUser(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	rec := &Record{}
	for _, r := range replies {
		q, err := s.store.GetQuestion(ctx, r.QuestionID)
		if err != nil {
			return nil, err
		}
		rec.QuestionsReplied++
		if r.VoteID == r.PredictionID {
			rec.VotesMatchingPrediction++
		}
		if Resolve(q, now) != Concluded {
			continue
		}
		rec.QuestionsConcluded++
		all, err := s.store.ListReplies(ctx, r.QuestionID)
		if err != nil {
			return nil, err
		}
		if pluralityWinners(all)[r.PredictionID] {
			rec.PredictionsCorrect++
		}
	}
	return rec, nil
}
