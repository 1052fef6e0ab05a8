package service

import (
	"context"
	"errors"
	"io"
	"strings"

	"vocabquiz/internal/domain"
	"vocabquiz/internal/importer"
	"vocabquiz/internal/repository"

	"go.uber.org/zap"
)

// PageSize is the number of words shown per list page
const PageSize = 5

var (
	ErrEmptyWord    = errors.New("word and meaning cannot be empty")
	ErrWordNotFound = errors.New("word not found")
	ErrNoValidRows  = errors.New("no rows with both a word and a meaning")
)

// WordService handles word-related business logic
type WordService struct {
	wordRepo repository.WordRepository
	logger   *zap.Logger
}

// NewWordService creates a new word service
func NewWordService(wordRepo repository.WordRepository, logger *zap.Logger) *WordService {
	return &WordService{
		wordRepo: wordRepo,
		logger:   logger,
	}
}

// AddWord saves a new word for the owner
func (s *WordService) AddWord(ctx context.Context, ownerID int64, input domain.WordInput) (*domain.Word, error) {
	input, err := cleanInput(input)
	if err != nil {
		return nil, err
	}
	return s.wordRepo.SaveWord(ctx, ownerID, input)
}

// ImportWords bulk-saves the valid rows of a spreadsheet and returns how many were stored
func (s *WordService) ImportWords(ctx context.Context, ownerID int64, filename string, r io.Reader) (int, error) {
	inputs, err := importer.Parse(filename, r)
	if err != nil {
		return 0, err
	}
	if len(inputs) == 0 {
		return 0, ErrNoValidRows
	}

	count, err := s.wordRepo.SaveWords(ctx, ownerID, inputs)
	if err != nil {
		return 0, err
	}

	s.logger.Info("Words imported",
		zap.Int64("user_id", ownerID),
		zap.String("file", filename),
		zap.Int("count", count),
	)
	return count, nil
}

// ListWords returns one page of the owner's words, newest first, optionally filtered by search
func (s *WordService) ListWords(ctx context.Context, ownerID int64, page int, search string) (*domain.WordPage, error) {
	if page < 1 {
		page = 1
	}
	search = strings.TrimSpace(search)

	count, err := s.wordRepo.CountWords(ctx, ownerID, search)
	if err != nil {
		return nil, err
	}

	offset := (page - 1) * PageSize
	words, err := s.wordRepo.ListWords(ctx, ownerID, search, PageSize, offset)
	if err != nil {
		return nil, err
	}
	if words == nil {
		words = []domain.Word{}
	}

	return &domain.WordPage{
		Words:      words,
		Count:      count,
		Page:       page,
		TotalPages: (count + PageSize - 1) / PageSize,
	}, nil
}

// GetWord returns one of the owner's words
func (s *WordService) GetWord(ctx context.Context, ownerID, wordID int64) (*domain.Word, error) {
	word, err := s.wordRepo.GetWord(ctx, ownerID, wordID)
	if err != nil {
		return nil, err
	}
	if word == nil {
		return nil, ErrWordNotFound
	}
	return word, nil
}

// UpdateWord replaces the fields of one of the owner's words
func (s *WordService) UpdateWord(ctx context.Context, ownerID, wordID int64, input domain.WordInput) (*domain.Word, error) {
	input, err := cleanInput(input)
	if err != nil {
		return nil, err
	}

	word, err := s.wordRepo.UpdateWord(ctx, ownerID, wordID, input)
	if err != nil {
		return nil, err
	}
	if word == nil {
		return nil, ErrWordNotFound
	}
	return word, nil
}

// DeleteWord removes one of the owner's words
func (s *WordService) DeleteWord(ctx context.Context, ownerID, wordID int64) error {
	deleted, err := s.wordRepo.DeleteWord(ctx, ownerID, wordID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrWordNotFound
	}
	return nil
}

func cleanInput(input domain.WordInput) (domain.WordInput, error) {
	input = domain.WordInput{
		Name:          strings.TrimSpace(input.Name),
		Meaning:       strings.TrimSpace(input.Meaning),
		Pronunciation: strings.TrimSpace(input.Pronunciation),
	}
	if input.Name == "" || input.Meaning == "" {
		return input, ErrEmptyWord
	}
	return input, nil
}
