package repository

import (
	"context"
	"errors"

	"vocabquiz/internal/domain"
	"vocabquiz/internal/quiz"
)

// ErrSessionNotFound is returned when a quiz session is missing or expired
var ErrSessionNotFound = errors.New("quiz session not found")

// ErrDuplicateEmail is returned when an account with the email already exists
var ErrDuplicateEmail = errors.New("email already registered")

// UserRepository defines account data operations
type UserRepository interface {
	CreateUser(ctx context.Context, email, passwordHash string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID int64) (*domain.User, error)
	GetUserByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error)
	LinkTelegram(ctx context.Context, userID, telegramID int64) error
}

// WordRepository defines word data operations. Every call is scoped to an owner.
type WordRepository interface {
	SaveWord(ctx context.Context, ownerID int64, input domain.WordInput) (*domain.Word, error)
	SaveWords(ctx context.Context, ownerID int64, inputs []domain.WordInput) (int, error)
	GetWord(ctx context.Context, ownerID, wordID int64) (*domain.Word, error)
	ListWords(ctx context.Context, ownerID int64, search string, limit, offset int) ([]domain.Word, error)
	CountWords(ctx context.Context, ownerID int64, search string) (int, error)
	UpdateWord(ctx context.Context, ownerID, wordID int64, input domain.WordInput) (*domain.Word, error)
	DeleteWord(ctx context.Context, ownerID, wordID int64) (bool, error)
	GetQuizWords(ctx context.Context, ownerID int64) ([]domain.Word, error)
}

// SessionStore keeps running quiz sessions
type SessionStore interface {
	SaveSession(ctx context.Context, session *quiz.Session) error
	GetSession(ctx context.Context, sessionID string) (*quiz.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
}
