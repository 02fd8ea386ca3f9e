package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/prediction-polls/backend/internal/models"
	"github.com/emilythestrangee/prediction-polls/backend/internal/polls"
)

// runStoreContract exercises the Store behaviors the engine depends on.
// Both implementations must pass it unchanged.
func runStoreContract(t *testing.T, s polls.Store) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	q1 := &models.Question{Content: "question 1", DatePublished: now.Add(-48 * time.Hour), DateConcluded: now.Add(24 * time.Hour)}
	require.NoError(t, s.CreateQuestion(ctx, q1))
	require.NotZero(t, q1.ID)
	q2 := &models.Question{Content: "question 2", DatePublished: now.Add(-48 * time.Hour), DateConcluded: now.Add(24 * time.Hour)}
	require.NoError(t, s.CreateQuestion(ctx, q2))

	t.Run("questions", func(t *testing.T) {
		got, err := s.GetQuestion(ctx, q1.ID)
		require.NoError(t, err)
		assert.Equal(t, "question 1", got.Content)

		_, err = s.GetQuestion(ctx, 9999)
		assert.ErrorIs(t, err, polls.ErrNotFound)

		all, err := s.ListQuestions(ctx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(all), 2)
	})

	a1 := &models.Answer{Content: "answer 1", QuestionID: q1.ID}
	a2 := &models.Answer{Content: "answer 2", QuestionID: q1.ID}
	a3 := &models.Answer{Content: "answer 3", QuestionID: q2.ID}
	require.NoError(t, s.CreateAnswer(ctx, a1))
	require.NoError(t, s.CreateAnswer(ctx, a2))
	require.NoError(t, s.CreateAnswer(ctx, a3))

	t.Run("answers scoped to their question", func(t *testing.T) {
		as, err := s.ListAnswers(ctx, q1.ID)
		require.NoError(t, err)
		require.Len(t, as, 2)
		assert.Equal(t, a1.ID, as[0].ID)
		assert.Equal(t, a2.ID, as[1].ID)
	})

	t.Run("reply uniqueness and lookups", func(t *testing.T) {
		r1 := &models.Reply{UserID: 1, QuestionID: q1.ID, VoteID: a1.ID, PredictionID: a2.ID}
		require.NoError(t, s.CreateReply(ctx, r1))
		require.NotZero(t, r1.ID)

		dup := &models.Reply{UserID: 1, QuestionID: q1.ID, VoteID: a2.ID, PredictionID: a2.ID}
		assert.ErrorIs(t, s.CreateReply(ctx, dup), polls.ErrConflict)

		// Same user, different question is fine.
		r2 := &models.Reply{UserID: 1, QuestionID: q2.ID, VoteID: a3.ID, PredictionID: a3.ID}
		require.NoError(t, s.CreateReply(ctx, r2))

		found, err := s.FindReply(ctx, q1.ID, 1)
		require.NoError(t, err)
		assert.Equal(t, r1.ID, found.ID)

		_, err = s.FindReply(ctx, q1.ID, 42)
		assert.ErrorIs(t, err, polls.ErrNotFound)

		r3 := &models.Reply{UserID: 2, QuestionID: q1.ID, VoteID: a2.ID, PredictionID: a1.ID}
		require.NoError(t, s.CreateReply(ctx, r3))

		list, err := s.ListReplies(ctx, q1.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, r1.ID, list[0].ID, "creation order")
		assert.Equal(t, r3.ID, list[1].ID)

		mine, err := s.ListRepliesByUser(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, mine, 2)
	})

	t.Run("reply update and delete", func(t *testing.T) {
		r, err := s.FindReply(ctx, q1.ID, 1)
		require.NoError(t, err)

		r.VoteID = a2.ID
		require.NoError(t, s.UpdateReply(ctx, r))
		got, err := s.GetReply(ctx, r.ID)
		require.NoError(t, err)
		assert.Equal(t, a2.ID, got.VoteID)

		require.NoError(t, s.DeleteReply(ctx, r.ID))
		_, err = s.GetReply(ctx, r.ID)
		assert.ErrorIs(t, err, polls.ErrNotFound)
		assert.ErrorIs(t, s.DeleteReply(ctx, r.ID), polls.ErrNotFound)
	})
}

func runUserStoreContract(t *testing.T, s polls.UserStore) {
	ctx := context.Background()

	u := &models.User{Username: "contract_user", Email: "contract@example.com", Password: "x"}
	require.NoError(t, s.CreateUser(ctx, u))
	require.NotZero(t, u.ID)

	got, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "contract_user", got.Username)

	byEmail, err := s.FindUserByEmail(ctx, "contract@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	byName, err := s.FindUserByUsername(ctx, "contract_user")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)

	_, err = s.FindUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, polls.ErrNotFound)

	dup := &models.User{Username: "contract_user", Email: "other@example.com", Password: "x"}
	assert.ErrorIs(t, s.CreateUser(ctx, dup), polls.ErrConflict)
}
