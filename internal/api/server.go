// Package api exposes the HTTP JSON interface.
package api

import (
	"net/http"

	"vocabquiz/internal/middleware"
	"vocabquiz/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server holds the HTTP handlers and their dependencies
type Server struct {
	authService *service.AuthService
	wordService *service.WordService
	quizService *service.QuizService
	logger      *zap.Logger
}

// NewServer creates a new HTTP server
func NewServer(
	authService *service.AuthService,
	wordService *service.WordService,
	quizService *service.QuizService,
	logger *zap.Logger,
) *Server {
	return &Server{
		authService: authService,
		wordService: wordService,
		quizService: quizService,
		logger:      logger,
	}
}

// Router builds the gin engine with every route registered
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(s.logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/signup", s.handleSignUp)
	auth.POST("/login", s.handleLogin)
	auth.GET("/me", middleware.JWTAuth(s.authService), s.handleMe)

	protected := api.Group("", middleware.JWTAuth(s.authService))

	words := protected.Group("/words")
	words.GET("", s.handleListWords)
	words.POST("", s.handleCreateWord)
	words.POST("/import", s.handleImportWords)
	words.GET("/:id", s.handleGetWord)
	words.PUT("/:id", s.handleUpdateWord)
	words.DELETE("/:id", s.handleDeleteWord)

	quiz := protected.Group("/quiz")
	quiz.POST("", s.handleStartQuiz)
	quiz.GET("/:id", s.handleGetQuiz)
	quiz.POST("/:id/answer", s.handleAnswer)
	quiz.POST("/:id/next", s.handleNext)
	quiz.POST("/:id/restart", s.handleRestart)
	quiz.DELETE("/:id", s.handleExitQuiz)

	return r
}
