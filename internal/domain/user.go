package domain

import "time"

// User represents an account that owns words
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	TelegramID   *int64    `json:"telegram_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserState represents a bot user's current interaction state
type UserState string

const (
	StateIdle               UserState = "idle"
	StateWaitingCredentials UserState = "waiting_credentials"
	StateWaitingWord        UserState = "waiting_word"
	StateWaitingMeaning     UserState = "waiting_meaning"
	StateQuiz               UserState = "quiz"
)

// StateData holds temporary data for a bot user's current state
type StateData struct {
	State UserState
	// UserID is the linked account, zero until the chat is linked
	UserID               int64
	CurrentWord          string
	CurrentPronunciation string
	QuizSessionID        string
}
