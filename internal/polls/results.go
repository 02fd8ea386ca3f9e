package polls

import (
	"context"
	"sort"

	"github.com/emilythestrangee/prediction-polls/backend/internal/models"
)

// AnswerTally is the per-answer slice of a question's results: how many
// replies voted for the answer and how many predicted it would win.
type AnswerTally struct {
	AnswerID    int    `json:"answer"`
	Content     string `json:"content"`
	Votes       int    `json:"votes"`
	Predictions int    `json:"predictions"`
}

// Results tallies votes and predictions per answer. Every answer of the
// question appears, zero-filled if nothing references it. Recomputed from
// the store on each call; no caching.
func (s *Service) Results(ctx context.Context, questionID int, caller *Caller) ([]AnswerTally, error) {
	if _, _, err := s.visibleQuestion(ctx, questionID, caller); err != nil {
		return nil, err
	}
	answers, err := s.store.ListAnswers(ctx, questionID)
	if err != nil {
		return nil, err
	}
	replies, err := s.store.ListReplies(ctx, questionID)
	if err != nil {
		return nil, err
	}

	byAnswer := make(map[int]*AnswerTally, len(answers))
	tallies := make([]AnswerTally, len(answers))
	for i, a := range answers {
		tallies[i] = AnswerTally{AnswerID: a.ID, Content: a.Content}
		byAnswer[a.ID] = &tallies[i]
	}
	for _, r := range replies {
		if t, ok := byAnswer[r.VoteID]; ok {
			t.Votes++
		}
		if t, ok := byAnswer[r.PredictionID]; ok {
			t.Predictions++
		}
	}
	sort.Slice(tallies, func(i, j int) bool { return tallies[i].AnswerID < tallies[j].AnswerID })
	return tallies, nil
}

// pluralityWinners returns the set of answer IDs holding the highest vote
// count among the given replies. Empty when there are no replies.
func pluralityWinners(replies []models.Reply) map[int]bool {
	counts := make(map[int]int)
	max := 0
	for _, r := range replies {
		counts[r.VoteID]++
		if counts[r.VoteID] > max {
			max = counts[r.VoteID]
		}
	}
	winners := make(map[int]bool)
	for id, n := range counts {
		if n == max && max > 0 {
			winners[id] = true
		}
	}
	return winners
}
