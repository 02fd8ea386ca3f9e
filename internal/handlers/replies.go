package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/prediction-polls/backend/internal/middleware"
	"github.com/emilythestrangee/prediction-polls/backend/internal/models"
	"github.com/emilythestrangee/prediction-polls/backend/internal/polls"
)

type ReplyHandler struct {
	svc *polls.Service
}

func NewReplyHandler(svc *polls.Service) *ReplyHandler {
	return &ReplyHandler{svc: svc}
}

// GetReplies lists all replies to a question in creation order.
func (h *ReplyHandler) GetReplies(c *gin.Context) {
	questionID, ok := pathID(c, "id")
	if !ok {
		return
	}
	replies, err := h.svc.ListReplies(c.Request.Context(), questionID, middleware.Caller(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if replies == nil {
		replies = []models.Reply{}
	}
	c.JSON(http.StatusOK, replies)
}

// CreateReply records the caller's vote and prediction (PROTECTED)
func (h *ReplyHandler) CreateReply(c *gin.Context) {
	questionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input models.CreateReplyRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, err := h.svc.CreateReply(
		c.Request.Context(), questionID, middleware.Caller(c),
		input.Vote, input.Prediction,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reply)
}

// GetReply returns a single reply by ID
func (h *ReplyHandler) GetReply(c *gin.Context) {
	questionID, ok := pathID(c, "id")
	if !ok {
		return
	}
	replyID, ok := pathID(c, "replyId")
	if !ok {
		return
	}

	reply, err := h.svc.GetReply(c.Request.Context(), questionID, replyID, middleware.Caller(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}

// UpdateReply applies a partial update to a reply (PROTECTED - owner only)
func (h *ReplyHandler) UpdateReply(c *gin.Context) {
	questionID, ok := pathID(c, "id")
	if !ok {
		return
	}
	replyID, ok := pathID(c, "replyId")
	if !ok {
		return
	}

	var input models.UpdateReplyRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, err := h.svc.UpdateReply(
		c.Request.Context(), questionID, replyID, middleware.Caller(c),
		input.Vote, input.Prediction,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}

// DeleteReply deletes a reply (PROTECTED - owner only)
func (h *ReplyHandler) DeleteReply(c *gin.Context) {
	questionID, ok := pathID(c, "id")
	if !ok {
		return
	}
	replyID, ok := pathID(c, "replyId")
	if !ok {
		return
	}

	if err := h.svc.DeleteReply(c.Request.Context(), questionID, replyID, middleware.Caller(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
