package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/prediction-polls/backend/internal/middleware"
	"github.com/emilythestrangee/prediction-polls/backend/internal/models"
	"github.com/emilythestrangee/prediction-polls/backend/internal/polls"
)

type QuestionHandler struct {
	svc *polls.Service
}

func NewQuestionHandler(svc *polls.Service) *QuestionHandler {
	return &QuestionHandler{svc: svc}
}

func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return 0, false
	}
	return id, true
}

// GetQuestions lists the questions visible to the caller.
func (h *QuestionHandler) GetQuestions(c *gin.Context) {
	questions, err := h.svc.ListQuestions(c.Request.Context(), middleware.Caller(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

// GetQuestion returns a single question by ID
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	question, err := h.svc.GetQuestion(c.Request.Context(), id, middleware.Caller(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

// GetAnswers lists a question's answers, subject to question visibility.
func (h *QuestionHandler) GetAnswers(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	answers, err := h.svc.ListAnswers(c.Request.Context(), id, middleware.Caller(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, answers)
}

// CreateQuestion creates a new question (PROTECTED - staff only)
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var input models.CreateQuestionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}

	question, err := h.svc.CreateQuestion(
		c.Request.Context(), middleware.Caller(c),
		input.Content, input.DatePublished, input.DateConcluded,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, question)
}

// CreateAnswer adds an answer to a question (PROTECTED - staff only)
func (h *QuestionHandler) CreateAnswer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input models.CreateAnswerRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}

	answer, err := h.svc.CreateAnswer(c.Request.Context(), id, middleware.Caller(c), input.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, answer)
}
