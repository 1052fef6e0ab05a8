package handler

import (
	"fmt"
	"strings"
	"time"

	"vocabquiz/internal/domain"
	"vocabquiz/internal/quiz"
	"vocabquiz/internal/service"
)

var timeNow = time.Now

func formatWord(w domain.Word) string {
	name := w.Name
	if w.Pronunciation != "" {
		name = fmt.Sprintf("%s [%s]", w.Name, w.Pronunciation)
	}
	return fmt.Sprintf("%s — %s", name, w.Meaning)
}

func formatWordPage(page *domain.WordPage, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📚 Your words (%d), page %d/%d:\n\n", page.Count, page.Page, page.TotalPages)

	first := (page.Page-1)*service.PageSize + 1
	for i, w := range page.Words {
		fmt.Fprintf(&b, "%d. %s (%s)\n", first+i, formatWord(w), w.AddedLabel(now))
	}

	b.WriteString("\nTap a word to delete it.")
	return b.String()
}

func formatSession(s *quiz.Session) string {
	q, ok := s.Current()
	if !ok {
		return fmt.Sprintf("🏁 Quiz finished!\n\nScore: %d/%d", s.Score, s.Total())
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🎯 Question %d/%d · Score %d\n\n", s.Index+1, s.Total(), s.Score)

	switch q.Direction {
	case quiz.MeaningToName:
		fmt.Fprintf(&b, "Which word means:\n\n%s", q.Prompt)
	default:
		fmt.Fprintf(&b, "What does this word mean?\n\n%s", q.Prompt)
		if q.Word.Pronunciation != "" {
			fmt.Fprintf(&b, " [%s]", q.Word.Pronunciation)
		}
	}

	if s.Answered {
		if s.LastCorrect {
			b.WriteString("\n\n✅ Correct!")
		} else {
			fmt.Fprintf(&b, "\n\n❌ Wrong. The answer is: %s", q.Answer)
		}
	}
	return b.String()
}
