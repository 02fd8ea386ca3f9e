package server

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/prediction-polls/backend/internal/database"
	"github.com/emilythestrangee/prediction-polls/backend/internal/handlers"
	"github.com/emilythestrangee/prediction-polls/backend/internal/middleware"
	"github.com/emilythestrangee/prediction-polls/backend/internal/polls"
	"github.com/emilythestrangee/prediction-polls/backend/internal/store"
)

type Server struct {
	handler *handlers.Handler
	health  func() map[string]string
}

// New wires a server around an engine and a user store. Tests construct it
// with the in-memory store; NewHTTPServer wires the real database.
func New(svc *polls.Service, users polls.UserStore) *Server {
	return &Server{
		handler: handlers.NewHandler(svc, users),
		health:  func() map[string]string { return map[string]string{"status": "ok"} },
	}
}

// NewHTTPServer creates and configures the production server
func NewHTTPServer() *http.Server {
	db := database.New()
	st := store.NewGorm(db.GetDB())

	newServer := &Server{
		handler: handlers.NewHandler(polls.NewService(st), st),
		health:  db.Health,
	}

	router := newServer.RegisterRoutes()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // local dev fallback
	}

	server := &http.Server{
		Addr:         "0.0.0.0:" + port,
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	fmt.Println("📝 Press Ctrl+C to stop the server")

	return server
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.Default()

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.health())
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/register", s.handler.Auth.Register)
		api.POST("/login", s.handler.Auth.Login)

		// Public reads carry an optional identity: staff tokens unlock
		// unpublished questions, everyone else gets the masked view.
		public := api.Group("")
		public.Use(middleware.OptionalAuth())
		{
			public.GET("/questions", s.handler.Question.GetQuestions)
			public.GET("/questions/:id", s.handler.Question.GetQuestion)
			public.GET("/questions/:id/answers", s.handler.Question.GetAnswers)
			public.GET("/questions/:id/replies", s.handler.Reply.GetReplies)
			public.GET("/questions/:id/replies/:replyId", s.handler.Reply.GetReply)
			public.GET("/questions/:id/results", s.handler.Results.GetResults)

			// Reply writes stay on optional auth: the engine checks question
			// visibility before authentication, so an anonymous write to an
			// unpublished question is masked as 404 instead of revealed by a
			// 401. Ownership and authentication are enforced by the engine.
			public.POST("/questions/:id/replies", s.handler.Reply.CreateReply)
			public.PATCH("/questions/:id/replies/:replyId", s.handler.Reply.UpdateReply)
			public.DELETE("/questions/:id/replies/:replyId", s.handler.Reply.DeleteReply)
		}

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/me", s.handler.Auth.GetMe)

			// Question authoring (staff enforced by the engine)
			protected.POST("/questions", s.handler.Question.CreateQuestion)
			protected.POST("/questions/:id/answers", s.handler.Question.CreateAnswer)

			protected.GET("/record", s.handler.Results.GetRecord)
		}
	}

	return r
}
