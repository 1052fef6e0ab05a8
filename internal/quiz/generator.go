package quiz

import (
	"math/rand/v2"
	"sync"
	"time"

	"vocabquiz/internal/domain"

	"github.com/samber/lo"
)

const (
	// MinWords is the number of words with a meaning required before a quiz may start
	MinWords = 10
	// QuestionsPerDirection caps the questions built for each direction
	QuestionsPerDirection = 5
	// ChoiceCount is the number of choices per question when the pool allows it
	ChoiceCount = 4
)

type stringSet map[string]struct{}

// Generator builds quiz questions from a user's words.
// It is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewGenerator creates a generator driven by src.
// A nil src uses a PCG source seeded from the clock.
func NewGenerator(src rand.Source) *Generator {
	if src == nil {
		src = rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64())
	}
	return &Generator{rnd: rand.New(src)}
}

// Generate returns up to 2*QuestionsPerDirection questions in random order.
//
// Words sharing a meaning with a differently named word are never asked in
// the meaning-to-name direction. A word is used for at most one question.
// Small pools give fewer questions or fewer choices; Generate never fails.
func (g *Generator) Generate(words []domain.Word) []Question {
	g.mu.Lock()
	defer g.mu.Unlock()

	eligible := lo.Filter(words, func(w domain.Word, _ int) bool {
		return w.Name != "" && w.Meaning != ""
	})
	if len(eligible) == 0 {
		return []Question{}
	}

	namesByMeaning := make(map[string]stringSet)
	meaningsByName := make(map[string]stringSet)
	for _, w := range eligible {
		addToSet(namesByMeaning, w.Meaning, w.Name)
		addToSet(meaningsByName, w.Name, w.Meaning)
	}

	allNames := lo.Uniq(lo.Map(eligible, func(w domain.Word, _ int) string { return w.Name }))
	allMeanings := lo.Uniq(lo.Map(eligible, func(w domain.Word, _ int) string { return w.Meaning }))

	unambiguous := lo.Filter(eligible, func(w domain.Word, _ int) bool {
		return len(namesByMeaning[w.Meaning]) == 1
	})

	questions := make([]Question, 0, 2*QuestionsPerDirection)

	used := make(map[int64]struct{}, QuestionsPerDirection)
	for _, w := range sample(g.rnd, unambiguous, QuestionsPerDirection) {
		used[w.ID] = struct{}{}
		questions = append(questions, g.build(w, MeaningToName, w.Meaning, w.Name, allNames, namesByMeaning[w.Meaning]))
	}

	remaining := lo.Filter(eligible, func(w domain.Word, _ int) bool {
		_, ok := used[w.ID]
		return !ok
	})
	for _, w := range sample(g.rnd, remaining, QuestionsPerDirection) {
		questions = append(questions, g.build(w, NameToMeaning, w.Name, w.Meaning, allMeanings, meaningsByName[w.Name]))
	}

	Shuffle(g.rnd, questions)
	return questions
}

// build assembles one question. Wrong choices come from pool minus every
// value linked to the prompt, so only the answer can be right.
func (g *Generator) build(w domain.Word, dir Direction, prompt, answer string, pool []string, linked stringSet) Question {
	candidates := lo.Filter(pool, func(v string, _ int) bool {
		if v == answer {
			return false
		}
		_, ok := linked[v]
		return !ok
	})

	choices := append([]string{answer}, sample(g.rnd, candidates, ChoiceCount-1)...)
	Shuffle(g.rnd, choices)

	return Question{
		Word:      w,
		Direction: dir,
		Prompt:    prompt,
		Answer:    answer,
		Choices:   choices,
	}
}

func addToSet(m map[string]stringSet, key, value string) {
	set, ok := m[key]
	if !ok {
		set = make(stringSet)
		m[key] = set
	}
	set[value] = struct{}{}
}
