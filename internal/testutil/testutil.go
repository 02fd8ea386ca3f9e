package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/prediction-polls/backend/internal/middleware"
	"github.com/emilythestrangee/prediction-polls/backend/internal/models"
	"github.com/emilythestrangee/prediction-polls/backend/internal/polls"
	"github.com/emilythestrangee/prediction-polls/backend/internal/server"
	"github.com/emilythestrangee/prediction-polls/backend/internal/store"
)

// Env is a fully wired service backed by the in-memory store, ready for
// httptest requests against the real router.
type Env struct {
	Store  *store.Memory
	Svc    *polls.Service
	Router *gin.Engine
}

func New(t *testing.T) *Env {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	st := store.NewMemory()
	svc := polls.NewService(st)
	return &Env{
		Store:  st,
		Svc:    svc,
		Router: server.New(svc, st).RegisterRoutes(),
	}
}

func (e *Env) SeedUser(t *testing.T, username string, staff bool) models.User {
	t.Helper()
	u := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "unused",
		IsStaff:  staff,
	}
	if err := e.Store.CreateUser(context.Background(), &u); err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
	return u
}

// Token issues a signed JWT for the user, as /api/login would.
func (e *Env) Token(t *testing.T, u models.User) string {
	t.Helper()
	token, err := middleware.GenerateToken(&u)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	return token
}

func (e *Env) SeedQuestion(t *testing.T, content string, published, concluded time.Time) models.Question {
	t.Helper()
	q := models.Question{Content: content, DatePublished: published, DateConcluded: concluded}
	if err := e.Store.CreateQuestion(context.Background(), &q); err != nil {
		t.Fatalf("Failed to seed question: %v", err)
	}
	return q
}

func (e *Env) SeedAnswer(t *testing.T, questionID int, content string) models.Answer {
	t.Helper()
	a := models.Answer{Content: content, QuestionID: questionID}
	if err := e.Store.CreateAnswer(context.Background(), &a); err != nil {
		t.Fatalf("Failed to seed answer: %v", err)
	}
	return a
}

func (e *Env) SeedReply(t *testing.T, userID, questionID, voteID, predictionID int) models.Reply {
	t.Helper()
	r := models.Reply{UserID: userID, QuestionID: questionID, VoteID: voteID, PredictionID: predictionID}
	if err := e.Store.CreateReply(context.Background(), &r); err != nil {
		t.Fatalf("Failed to seed reply: %v", err)
	}
	return r
}

// Do runs a request through the router. An empty token means anonymous.
func (e *Env) Do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	return w
}

// OpenQuestion seeds a question that is currently open with two answers.
func (e *Env) OpenQuestion(t *testing.T) (models.Question, models.Answer, models.Answer) {
	t.Helper()
	now := time.Now()
	q := e.SeedQuestion(t, "question 1", now.Add(-48*time.Hour), now.Add(24*time.Hour))
	a1 := e.SeedAnswer(t, q.ID, "answer 1")
	a2 := e.SeedAnswer(t, q.ID, "answer 2")
	return q, a1, a2
}

// ConcludedQuestion seeds a question whose conclusion instant has passed.
func (e *Env) ConcludedQuestion(t *testing.T) (models.Question, models.Answer, models.Answer) {
	t.Helper()
	now := time.Now()
	q := e.SeedQuestion(t, "concluded question", now.Add(-48*time.Hour), now.Add(-24*time.Hour))
	a1 := e.SeedAnswer(t, q.ID, "answer 1")
	a2 := e.SeedAnswer(t, q.ID, "answer 2")
	return q, a1, a2
}

// UnpublishedQuestion seeds a question that has not been published yet.
func (e *Env) UnpublishedQuestion(t *testing.T) (models.Question, models.Answer, models.Answer) {
	t.Helper()
	now := time.Now()
	q := e.SeedQuestion(t, "unpublished question", now.Add(24*time.Hour), now.Add(48*time.Hour))
	a1 := e.SeedAnswer(t, q.ID, "answer 1")
	a2 := e.SeedAnswer(t, q.ID, "answer 2")
	return q, a1, a2
}
