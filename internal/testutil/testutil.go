package testutil

import (
	"fmt"
	"time"

	"vocabquiz/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestUser creates a test user
func NewTestUser(userID int64, email string) *domain.User {
	return &domain.User{
		ID:        userID,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
}

// NewTestWord creates a test word
func NewTestWord(id, ownerID int64, name, meaning string) *domain.Word {
	return &domain.Word{
		ID:        id,
		OwnerID:   ownerID,
		Name:      name,
		Meaning:   meaning,
		CreatedAt: time.Now().UTC(),
	}
}

// NewTestWords creates n distinct words named word1..wordN with meanings meaning1..meaningN
func NewTestWords(ownerID int64, n int) []domain.Word {
	words := make([]domain.Word, 0, n)
	for i := 1; i <= n; i++ {
		words = append(words, *NewTestWord(int64(i), ownerID, fmt.Sprintf("word%d", i), fmt.Sprintf("meaning%d", i)))
	}
	return words
}
