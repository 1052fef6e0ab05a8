package handler

import (
	"strconv"
	"testing"

	"vocabquiz/internal/domain"
	"vocabquiz/internal/quiz"
	"vocabquiz/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
)

func TestCleanCallbackData(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "normal string",
			input:    "test_data",
			expected: "test_data",
		},
		{
			name:     "string with whitespace",
			input:    "  test_data  ",
			expected: "test_data",
		},
		{
			name:     "string with newline",
			input:    "test\ndata",
			expected: "testdata",
		},
		{
			name:     "string with tab",
			input:    "test\tdata",
			expected: "testdata",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "only whitespace",
			input:    "   ",
			expected: "",
		},
		{
			name:     "string with unprintable characters",
			input:    "test\x00data\x01",
			expected: "testdata",
		},
		{
			name:     "payload separator kept",
			input:    "\f12|3",
			expected: "12|3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := cleanCallbackData(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func buttons(markup *tele.ReplyMarkup) []tele.InlineButton {
	var all []tele.InlineButton
	for _, row := range markup.InlineKeyboard {
		all = append(all, row...)
	}
	return all
}

func TestWordPageMarkup(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		totalPages   int
		expectedNav  []string
		expectedData []string
	}{
		{
			name:         "single page has no navigation",
			page:         1,
			totalPages:   1,
			expectedNav:  nil,
			expectedData: nil,
		},
		{
			name:         "first page only goes forward",
			page:         1,
			totalPages:   3,
			expectedNav:  []string{"➡️"},
			expectedData: []string{"2"},
		},
		{
			name:         "middle page goes both ways",
			page:         2,
			totalPages:   3,
			expectedNav:  []string{"⬅️", "➡️"},
			expectedData: []string{"1", "3"},
		},
		{
			name:         "last page only goes back",
			page:         3,
			totalPages:   3,
			expectedNav:  []string{"⬅️"},
			expectedData: []string{"2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := &domain.WordPage{
				Words:      testutil.NewTestWords(1, 2),
				Count:      tt.totalPages * 5,
				Page:       tt.page,
				TotalPages: tt.totalPages,
			}

			markup := wordPageMarkup(page)

			var nav, navData []string
			var deletes []tele.InlineButton
			for _, btn := range buttons(markup) {
				switch btn.Unique {
				case btnWordsPage.Unique:
					nav = append(nav, btn.Text)
					navData = append(navData, btn.Data)
				case btnDeleteWord.Unique:
					deletes = append(deletes, btn)
				}
			}

			assert.Equal(t, tt.expectedNav, nav)
			assert.Equal(t, tt.expectedData, navData)
			require.Len(t, deletes, 2)
			assert.Equal(t, "🗑 word1", deletes[0].Text)
			assert.Equal(t, "1|"+strconv.Itoa(tt.page), deletes[0].Data)

			last := markup.InlineKeyboard[len(markup.InlineKeyboard)-1]
			assert.Equal(t, btnMainMenu.Unique, last[0].Unique)
		})
	}
}

func TestSessionMarkup(t *testing.T) {
	newSession := func() *quiz.Session {
		return quiz.NewSession("abc", 1, []quiz.Question{
			{Direction: quiz.NameToMeaning, Prompt: "本", Answer: "book", Choices: []string{"water", "book", "sky"}},
		})
	}

	t.Run("unanswered shows choices and exit", func(t *testing.T) {
		markup := sessionMarkup(newSession())

		all := buttons(markup)
		require.Len(t, all, 4)
		for i, choice := range []string{"water", "book", "sky"} {
			assert.Equal(t, btnQuizAnswer.Unique, all[i].Unique)
			assert.Equal(t, choice, all[i].Text)
			assert.Equal(t, "abc|"+strconv.Itoa(i), all[i].Data)
		}
		assert.Equal(t, btnQuizExit.Unique, all[3].Unique)
		assert.Equal(t, "abc", all[3].Data)
	})

	t.Run("answered shows next", func(t *testing.T) {
		session := newSession()
		_, err := session.Answer("water")
		require.NoError(t, err)

		all := buttons(sessionMarkup(session))

		require.Len(t, all, 2)
		assert.Equal(t, btnQuizNext.Unique, all[0].Unique)
		assert.Equal(t, btnQuizExit.Unique, all[1].Unique)
	})

	t.Run("completed shows restart", func(t *testing.T) {
		session := newSession()
		_, err := session.Answer("book")
		require.NoError(t, err)
		require.NoError(t, session.Next())

		all := buttons(sessionMarkup(session))

		require.Len(t, all, 2)
		assert.Equal(t, btnQuizRestart.Unique, all[0].Unique)
		assert.Equal(t, btnQuizExit.Unique, all[1].Unique)
	})
}

func TestChoiceAt(t *testing.T) {
	session := quiz.NewSession("abc", 1, []quiz.Question{
		{Prompt: "本", Answer: "book", Choices: []string{"water", "book"}},
	})

	tests := []struct {
		name     string
		index    int
		expected string
		ok       bool
	}{
		{name: "first", index: 0, expected: "water", ok: true},
		{name: "second", index: 1, expected: "book", ok: true},
		{name: "out of range", index: 2},
		{name: "negative", index: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			choice, ok := choiceAt(session, tt.index)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, choice)
		})
	}
}

func TestHandlerState(t *testing.T) {
	h := NewHandler(nil, nil, nil, nil, testutil.NewTestLogger())

	assert.Equal(t, domain.StateIdle, h.GetState(10).State)

	h.SetState(10, &domain.StateData{State: domain.StateWaitingMeaning, CurrentWord: "本"})
	assert.Equal(t, domain.StateWaitingMeaning, h.GetState(10).State)
	assert.Equal(t, "本", h.GetState(10).CurrentWord)
	assert.Equal(t, domain.StateIdle, h.GetState(11).State)

	h.ResetState(10)
	assert.Equal(t, domain.StateIdle, h.GetState(10).State)
}
