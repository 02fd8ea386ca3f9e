package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/prediction-polls/backend/internal/middleware"
	"github.com/emilythestrangee/prediction-polls/backend/internal/polls"
)

type ResultsHandler struct {
	svc *polls.Service
}

func NewResultsHandler(svc *polls.Service) *ResultsHandler {
	return &ResultsHandler{svc: svc}
}

// GetResults returns per-answer vote and prediction tallies for a question.
func (h *ResultsHandler) GetResults(c *gin.Context) {
	questionID, ok := pathID(c, "id")
	if !ok {
		return
	}
	tallies, err := h.svc.Results(c.Request.Context(), questionID, middleware.Caller(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tallies)
}

// GetRecord returns the caller's historical accuracy record (PROTECTED)
func (h *ResultsHandler) GetRecord(c *gin.Context) {
	record, err := h.svc.UserRecord(c.Request.Context(), middleware.Caller(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}
