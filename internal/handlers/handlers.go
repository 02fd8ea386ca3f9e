package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/prediction-polls/backend/internal/polls"
)

// Handler combines all handler types
type Handler struct {
	Auth     *AuthHandler
	Question *QuestionHandler
	Reply    *ReplyHandler
	Results  *ResultsHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(svc *polls.Service, users polls.UserStore) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(users),
		Question: NewQuestionHandler(svc),
		Reply:    NewReplyHandler(svc),
		Results:  NewResultsHandler(svc),
	}
}

// respondError maps engine errors onto HTTP statuses. Validation failures
// carry their message through; they are user-facing, not log-only.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, polls.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, polls.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
	case errors.Is(err, polls.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only modify your own replies"})
	case errors.Is(err, polls.ErrQuestionNotOpen),
		errors.Is(err, polls.ErrInvalidQuestion),
		errors.Is(err, polls.ErrDuplicateReply),
		errors.Is(err, polls.ErrInvalidVote),
		errors.Is(err, polls.ErrInvalidPrediction):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		// Unexpected errors are logged, never echoed to the client.
		slog.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
