package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/prediction-polls/backend/internal/testutil"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestCreateReply(t *testing.T) {
	env := testutil.New(t)
	user := env.SeedUser(t, "emily", false)
	token := env.Token(t, user)
	q, a1, a2 := env.OpenQuestion(t)

	w := env.Do(t, "POST", fmt.Sprintf("/api/questions/%d/replies", q.ID),
		map[string]int{"vote": a1.ID, "prediction": a2.ID}, token)

	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	// The reply wire shape is flat identifiers and nothing else.
	assert.Equal(t, float64(user.ID), body["user"])
	assert.Equal(t, float64(q.ID), body["question"])
	assert.Equal(t, float64(a1.ID), body["vote"])
	assert.Equal(t, float64(a2.ID), body["prediction"])
	assert.NotZero(t, body["id"])
	assert.Len(t, body, 5)
}

func TestCreateReplyAnonymous(t *testing.T) {
	env := testutil.New(t)
	q, a1, _ := env.OpenQuestion(t)

	w := env.Do(t, "POST", fmt.Sprintf("/api/questions/%d/replies", q.ID),
		map[string]int{"vote": a1.ID, "prediction": a1.ID}, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateReplyValidation(t *testing.T) {
	env := testutil.New(t)
	user := env.SeedUser(t, "emily", false)
	token := env.Token(t, user)
	q, a1, _ := env.OpenQuestion(t)
	_, oa1, _ := env.OpenQuestion(t)

	tests := []struct {
		name       string
		vote       int
		prediction int
		wantErr    string
	}{
		{"unknown vote", 9999, a1.ID, "Invalid vote."},
		{"unknown prediction", a1.ID, 9999, "Invalid prediction."},
		{"vote from another question", oa1.ID, a1.ID, "Invalid vote."},
		{"prediction from another question", a1.ID, oa1.ID, "Invalid prediction."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.Do(t, "POST", fmt.Sprintf("/api/questions/%d/replies", q.ID),
				map[string]int{"vote": tt.vote, "prediction": tt.prediction}, token)

			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.wantErr, decode(t, w)["error"])
		})
	}
}

func TestCreateReplyConcluded(t *testing.T) {
	env := testutil.New(t)
	user := env.SeedUser(t, "emily", false)
	token := env.Token(t, user)
	q, a1, _ := env.ConcludedQuestion(t)

	w := env.Do(t, "POST", fmt.Sprintf("/api/questions/%d/replies", q.ID),
		map[string]int{"vote": a1.ID, "prediction": a1.ID}, token)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["error"], "question has concluded")
}

func TestCreateReplyDuplicate(t *testing.T) {
	env := testutil.New(t)
	user := env.SeedUser(t, "emily", false)
	token := env.Token(t, user)
	q, a1, a2 := env.OpenQuestion(t)
	env.SeedReply(t, user.ID, q.ID, a1.ID, a2.ID)

	w := env.Do(t, "POST", fmt.Sprintf("/api/questions/%d/replies", q.ID),
		map[string]int{"vote": a2.ID, "prediction": a2.ID}, token)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateReplyUnpublishedMasked(t *testing.T) {
	env := testutil.New(t)
	q, a1, _ := env.UnpublishedQuestion(t)

	// Anonymous writers get the same 404 as readers; a 401 here would
	// reveal that the question exists.
	w := env.Do(t, "POST", fmt.Sprintf("/api/questions/%d/replies", q.ID),
		map[string]int{"vote": a1.ID, "prediction": a1.ID}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	user := env.SeedUser(t, "emily", false)
	w = env.Do(t, "POST", fmt.Sprintf("/api/questions/%d/replies", q.ID),
		map[string]int{"vote": a1.ID, "prediction": a1.ID}, env.Token(t, user))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetReplies(t *testing.T) {
	env := testutil.New(t)
	u1 := env.SeedUser(t, "emily", false)
	u2 := env.SeedUser(t, "sara", false)
	q, a1, a2 := env.OpenQuestion(t)

	w := env.Do(t, "GET", fmt.Sprintf("/api/questions/%d/replies", q.ID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())

	env.SeedReply(t, u1.ID, q.ID, a1.ID, a2.ID)
	env.SeedReply(t, u2.ID, q.ID, a2.ID, a1.ID)

	w = env.Do(t, "GET", fmt.Sprintf("/api/questions/%d/replies", q.ID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var replies []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &replies))
	require.Len(t, replies, 2)
	assert.Equal(t, float64(u1.ID), replies[0]["user"])
	assert.Equal(t, float64(u2.ID), replies[1]["user"])
}

func TestGetReply(t *testing.T) {
	env := testutil.New(t)
	user := env.SeedUser(t, "emily", false)
	q, a1, a2 := env.OpenQuestion(t)
	other, _, _ := env.OpenQuestion(t)
	r := env.SeedReply(t, user.ID, q.ID, a1.ID, a2.ID)

	w := env.Do(t, "GET", fmt.Sprintf("/api/questions/%d/replies/%d", q.ID, r.ID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(r.ID), decode(t, w)["id"])

	// The reply exists but not under that question.
	w = env.Do(t, "GET", fmt.Sprintf("/api/questions/%d/replies/%d", other.ID, r.ID), nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.Do(t, "GET", fmt.Sprintf("/api/questions/%d/replies/9999", q.ID), nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.Do(t, "GET", fmt.Sprintf("/api/questions/%d/replies/abc", q.ID), nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateReply(t *testing.T) {
	env := testutil.New(t)
	user := env.SeedUser(t, "emily", false)
	token := env.Token(t, user)
	q, a1, a2 := env.OpenQuestion(t)
	r := env.SeedReply(t, user.ID, q.ID, a1.ID, a2.ID)

	// Partial update: only the vote changes.
	w := env.Do(t, "PATCH", fmt.Sprintf("/api/questions/%d/replies/%d", q.ID, r.ID),
		map[string]int{"vote": a2.ID}, token)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(a2.ID), body["vote"])
	assert.Equal(t, float64(a2.ID), body["prediction"])
}

func TestUpdateReplyInvalidVote(t *testing.T) {
	env := testutil.New(t)
	user := env.SeedUser(t, "emily", false)
	q, a1, a2 := env.OpenQuestion(t)
	r := env.SeedReply(t, user.ID, q.ID, a1.ID, a2.ID)

	w := env.Do(t, "PATCH", fmt.Sprintf("/api/questions/%d/replies/%d", q.ID, r.ID),
		map[string]int{"vote": 9999}, env.Token(t, user))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid vote.", decode(t, w)["error"])
}

func TestUpdateReplyOwnership(t *testing.T) {
	env := testutil.New(t)
	owner := env.SeedUser(t, "emily", false)
	intruder := env.SeedUser(t, "sara", false)
	staff := env.SeedUser(t, "admin", true)
	q, a1, a2 := env.OpenQuestion(t)
	r := env.SeedReply(t, owner.ID, q.ID, a1.ID, a2.ID)
	path := fmt.Sprintf("/api/questions/%d/replies/%d", q.ID, r.ID)

	w := env.Do(t, "PATCH", path, map[string]int{"vote": a2.ID}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.Do(t, "PATCH", path, map[string]int{"vote": a2.ID}, env.Token(t, intruder))
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Staff get no override on other users' replies.
	w = env.Do(t, "PATCH", path, map[string]int{"vote": a2.ID}, env.Token(t, staff))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeleteReply(t *testing.T) {
	env := testutil.New(t)
	owner := env.SeedUser(t, "emily", false)
	intruder := env.SeedUser(t, "sara", false)
	q, a1, a2 := env.OpenQuestion(t)
	r := env.SeedReply(t, owner.ID, q.ID, a1.ID, a2.ID)
	path := fmt.Sprintf("/api/questions/%d/replies/%d", q.ID, r.ID)

	w := env.Do(t, "DELETE", path, nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.Do(t, "DELETE", path, nil, env.Token(t, intruder))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.Do(t, "DELETE", path, nil, env.Token(t, owner))
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = env.Do(t, "DELETE", path, nil, env.Token(t, owner))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
