package quiz

import (
	"vocabquiz/internal/domain"

	"github.com/samber/lo"
)

// Direction tells which side of a word is shown and which is asked for
type Direction string

const (
	// MeaningToName shows the meaning and asks for the word
	MeaningToName Direction = "meaning_to_name"
	// NameToMeaning shows the word and asks for its meaning
	NameToMeaning Direction = "name_to_meaning"
)

// Question is a single multiple-choice question derived from a word
type Question struct {
	Word      domain.Word `json:"word"`
	Direction Direction   `json:"direction"`
	Prompt    string      `json:"prompt"`
	Answer    string      `json:"answer"`
	Choices   []string    `json:"choices"`
}

// IsCorrect reports whether choice matches the answer exactly
func (q Question) IsCorrect(choice string) bool {
	return choice == q.Answer
}

// HasChoice reports whether choice is one of the offered choices
func (q Question) HasChoice(choice string) bool {
	return lo.Contains(q.Choices, choice)
}
