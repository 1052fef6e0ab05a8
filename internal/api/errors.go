package api

import (
	"errors"
	"net/http"

	"vocabquiz/internal/importer"
	"vocabquiz/internal/middleware"
	"vocabquiz/internal/quiz"
	"vocabquiz/internal/repository"
	"vocabquiz/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusFor maps known errors to HTTP status codes; zero means unexpected
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrEmptyWord),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrWeakPassword),
		errors.Is(err, service.ErrNoValidRows),
		errors.Is(err, importer.ErrEmptySheet),
		errors.Is(err, importer.ErrUnsupportedFormat),
		errors.Is(err, quiz.ErrInvalidChoice):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrWordNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, repository.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, quiz.ErrAlreadyAnswered),
		errors.Is(err, quiz.ErrNotAnswered),
		errors.Is(err, quiz.ErrCompleted),
		errors.Is(err, quiz.ErrNotStarted):
		return http.StatusConflict
	case errors.Is(err, service.ErrNotEnoughWords):
		return http.StatusUnprocessableEntity
	}
	return 0
}

func (s *Server) respondError(c *gin.Context, err error) {
	if status := statusFor(err); status != 0 {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	s.logger.Error("Request failed",
		zap.String("path", c.FullPath()),
		zap.Int64("user_id", middleware.UserID(c)),
		zap.Error(err),
	)
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}
