package testutil

import (
	"context"

	"vocabquiz/internal/domain"
	"vocabquiz/internal/quiz"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, email, passwordHash string) (*domain.User, error) {
	args := m.Called(ctx, email, passwordHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) LinkTelegram(ctx context.Context, userID, telegramID int64) error {
	args := m.Called(ctx, userID, telegramID)
	return args.Error(0)
}

// MockWordRepository is a mock for WordRepository
type MockWordRepository struct {
	mock.Mock
}

func (m *MockWordRepository) SaveWord(ctx context.Context, ownerID int64, input domain.WordInput) (*domain.Word, error) {
	args := m.Called(ctx, ownerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Word), args.Error(1)
}

func (m *MockWordRepository) SaveWords(ctx context.Context, ownerID int64, inputs []domain.WordInput) (int, error) {
	args := m.Called(ctx, ownerID, inputs)
	return args.Int(0), args.Error(1)
}

func (m *MockWordRepository) GetWord(ctx context.Context, ownerID, wordID int64) (*domain.Word, error) {
	args := m.Called(ctx, ownerID, wordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Word), args.Error(1)
}

func (m *MockWordRepository) ListWords(ctx context.Context, ownerID int64, search string, limit, offset int) ([]domain.Word, error) {
	args := m.Called(ctx, ownerID, search, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Word), args.Error(1)
}

func (m *MockWordRepository) CountWords(ctx context.Context, ownerID int64, search string) (int, error) {
	args := m.Called(ctx, ownerID, search)
	return args.Int(0), args.Error(1)
}

func (m *MockWordRepository) UpdateWord(ctx context.Context, ownerID, wordID int64, input domain.WordInput) (*domain.Word, error) {
	args := m.Called(ctx, ownerID, wordID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Word), args.Error(1)
}

func (m *MockWordRepository) DeleteWord(ctx context.Context, ownerID, wordID int64) (bool, error) {
	args := m.Called(ctx, ownerID, wordID)
	return args.Bool(0), args.Error(1)
}

func (m *MockWordRepository) GetQuizWords(ctx context.Context, ownerID int64) ([]domain.Word, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Word), args.Error(1)
}

// MockSessionStore is a mock for SessionStore
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) SaveSession(ctx context.Context, session *quiz.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionStore) GetSession(ctx context.Context, sessionID string) (*quiz.Session, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quiz.Session), args.Error(1)
}

func (m *MockSessionStore) DeleteSession(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}
