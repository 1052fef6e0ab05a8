package quiz

import (
	"errors"
	"time"
)

// State is the lifecycle stage of a quiz session
type State string

const (
	StateLoading    State = "loading"
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
)

var (
	ErrNotStarted      = errors.New("quiz has no questions")
	ErrCompleted       = errors.New("quiz is already completed")
	ErrAlreadyAnswered = errors.New("question is already answered")
	ErrNotAnswered     = errors.New("question is not answered yet")
	ErrInvalidChoice   = errors.New("choice is not offered by the question")
)

// Session tracks one user's progress through a generated question set.
// Questions only move forward; a new set comes from Restart.
type Session struct {
	ID          string     `json:"id"`
	OwnerID     int64      `json:"owner_id"`
	Questions   []Question `json:"questions"`
	Index       int        `json:"index"`
	Score       int        `json:"score"`
	Answered    bool       `json:"answered"`
	Selected    string     `json:"selected,omitempty"`
	LastCorrect bool       `json:"last_correct"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewSession creates a session positioned at the first question
func NewSession(id string, ownerID int64, questions []Question) *Session {
	return &Session{
		ID:        id,
		OwnerID:   ownerID,
		Questions: questions,
		CreatedAt: time.Now(),
	}
}

// State returns the current lifecycle stage
func (s *Session) State() State {
	switch {
	case len(s.Questions) == 0:
		return StateLoading
	case s.Index >= len(s.Questions):
		return StateCompleted
	default:
		return StateInProgress
	}
}

// Total returns the number of questions in the session
func (s *Session) Total() int {
	return len(s.Questions)
}

// Current returns the question being asked, if any
func (s *Session) Current() (Question, bool) {
	if s.State() != StateInProgress {
		return Question{}, false
	}
	return s.Questions[s.Index], true
}

// Answer records choice for the current question and reports whether it was correct
func (s *Session) Answer(choice string) (bool, error) {
	if err := s.checkInProgress(); err != nil {
		return false, err
	}
	if s.Answered {
		return false, ErrAlreadyAnswered
	}

	q := s.Questions[s.Index]
	if !q.HasChoice(choice) {
		return false, ErrInvalidChoice
	}

	correct := q.IsCorrect(choice)
	if correct {
		s.Score++
	}

	s.Answered = true
	s.Selected = choice
	s.LastCorrect = correct

	return correct, nil
}

// Next moves past an answered question
func (s *Session) Next() error {
	if err := s.checkInProgress(); err != nil {
		return err
	}
	if !s.Answered {
		return ErrNotAnswered
	}

	s.Index++
	s.clearAnswer()
	return nil
}

// Restart replaces the question set and resets progress and score
func (s *Session) Restart(questions []Question) {
	s.Questions = questions
	s.Index = 0
	s.Score = 0
	s.clearAnswer()
}

func (s *Session) checkInProgress() error {
	switch s.State() {
	case StateLoading:
		return ErrNotStarted
	case StateCompleted:
		return ErrCompleted
	}
	return nil
}

func (s *Session) clearAnswer() {
	s.Answered = false
	s.Selected = ""
	s.LastCorrect = false
}
