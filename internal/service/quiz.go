package service

import (
	"context"
	"fmt"

	"vocabquiz/internal/domain"
	"vocabquiz/internal/quiz"
	"vocabquiz/internal/repository"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// ErrNotEnoughWords is returned when the owner has too few words with a meaning to build a quiz
var ErrNotEnoughWords = fmt.Errorf("at least %d words with a meaning are required for a quiz, please register more words", quiz.MinWords)

// QuizService runs quiz sessions over a user's words
type QuizService struct {
	wordRepo  repository.WordRepository
	store     repository.SessionStore
	generator *quiz.Generator
	logger    *zap.Logger
	newID     func() string
}

// NewQuizService creates a new quiz service
func NewQuizService(wordRepo repository.WordRepository, store repository.SessionStore, generator *quiz.Generator, logger *zap.Logger) *QuizService {
	return &QuizService{
		wordRepo:  wordRepo,
		store:     store,
		generator: generator,
		logger:    logger,
		newID:     uuid.NewString,
	}
}

// Start generates a question set from the owner's words and opens a session for it
func (s *QuizService) Start(ctx context.Context, ownerID int64) (*quiz.Session, error) {
	questions, err := s.questionsFor(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	session := quiz.NewSession(s.newID(), ownerID, questions)
	if err := s.store.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("Quiz started",
		zap.Int64("user_id", ownerID),
		zap.String("session_id", session.ID),
		zap.Int("questions", session.Total()),
	)
	return session, nil
}

// Get returns one of the owner's sessions
func (s *QuizService) Get(ctx context.Context, ownerID int64, sessionID string) (*quiz.Session, error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.OwnerID != ownerID {
		return nil, repository.ErrSessionNotFound
	}
	return session, nil
}

// Answer records a choice for the current question and reports whether it was correct
func (s *QuizService) Answer(ctx context.Context, ownerID int64, sessionID, choice string) (*quiz.Session, bool, error) {
	session, err := s.Get(ctx, ownerID, sessionID)
	if err != nil {
		return nil, false, err
	}

	correct, err := session.Answer(choice)
	if err != nil {
		return nil, false, err
	}

	if err := s.store.SaveSession(ctx, session); err != nil {
		return nil, false, err
	}
	return session, correct, nil
}

// Next advances past the answered question
func (s *QuizService) Next(ctx context.Context, ownerID int64, sessionID string) (*quiz.Session, error) {
	session, err := s.Get(ctx, ownerID, sessionID)
	if err != nil {
		return nil, err
	}

	if err := session.Next(); err != nil {
		return nil, err
	}

	if err := s.store.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	if session.State() == quiz.StateCompleted {
		s.logger.Info("Quiz completed",
			zap.Int64("user_id", ownerID),
			zap.String("session_id", sessionID),
			zap.Int("score", session.Score),
			zap.Int("total", session.Total()),
		)
	}
	return session, nil
}

// Restart regenerates the session's questions from the owner's current words and resets the score
func (s *QuizService) Restart(ctx context.Context, ownerID int64, sessionID string) (*quiz.Session, error) {
	session, err := s.Get(ctx, ownerID, sessionID)
	if err != nil {
		return nil, err
	}

	questions, err := s.questionsFor(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	session.Restart(questions)
	if err := s.store.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Exit discards one of the owner's sessions
func (s *QuizService) Exit(ctx context.Context, ownerID int64, sessionID string) error {
	if _, err := s.Get(ctx, ownerID, sessionID); err != nil {
		return err
	}
	return s.store.DeleteSession(ctx, sessionID)
}

func (s *QuizService) questionsFor(ctx context.Context, ownerID int64) ([]quiz.Question, error) {
	words, err := s.wordRepo.GetQuizWords(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	eligible := lo.CountBy(words, func(w domain.Word) bool {
		return w.Name != "" && w.Meaning != ""
	})
	if eligible < quiz.MinWords {
		return nil, ErrNotEnoughWords
	}

	return s.generator.Generate(words), nil
}
