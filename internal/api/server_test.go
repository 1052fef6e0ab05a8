package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"vocabquiz/internal/domain"
	"vocabquiz/internal/quiz"
	"vocabquiz/internal/repository"
	"vocabquiz/internal/repository/memory"
	"vocabquiz/internal/service"
	"vocabquiz/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	router *gin.Engine
	users  *testutil.MockUserRepository
	words  *testutil.MockWordRepository
	auth   *service.AuthService
	token  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := testutil.NewTestLogger()
	users := new(testutil.MockUserRepository)
	words := new(testutil.MockWordRepository)

	auth := service.NewAuthService(users, "test-secret", time.Hour, logger)
	wordService := service.NewWordService(words, logger)
	quizService := service.NewQuizService(words, memory.NewSessionStore(time.Hour), quiz.NewGenerator(rand.NewPCG(3, 4)), logger)

	token, err := auth.IssueToken(123)
	require.NoError(t, err)

	return &testEnv{
		router: NewServer(auth, wordService, quizService, logger).Router(),
		users:  users,
		words:  words,
		auth:   auth,
		token:  token,
	}
}

func (e *testEnv) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.token)

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestSignUp(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		mockError      error
		setupMock      bool
		expectedStatus int
	}{
		{
			name:           "created",
			body:           gin.H{"email": "a@example.com", "password": "secret123"},
			setupMock:      true,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "email taken",
			body:           gin.H{"email": "a@example.com", "password": "secret123"},
			setupMock:      true,
			mockError:      repository.ErrDuplicateEmail,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "short password",
			body:           gin.H{"email": "a@example.com", "password": "123"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing fields",
			body:           gin.H{"email": "a@example.com"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			if tt.setupMock {
				var user *domain.User
				if tt.mockError == nil {
					user = testutil.NewTestUser(5, "a@example.com")
				}
				env.users.On("CreateUser", mock.Anything, "a@example.com", mock.AnythingOfType("string")).Return(user, tt.mockError)
			}

			w := env.do(http.MethodPost, "/api/auth/signup", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusCreated {
				resp := decode[authResponse](t, w)
				assert.Equal(t, int64(5), resp.User.ID)
				assert.NotContains(t, w.Body.String(), "password")

				userID, err := env.auth.ParseToken(resp.Token)
				require.NoError(t, err)
				assert.Equal(t, int64(5), userID)
			}
			env.users.AssertExpectations(t)
		})
	}
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := testutil.NewTestUser(5, "a@example.com")
	stored.PasswordHash = string(hash)

	tests := []struct {
		name           string
		password       string
		expectedStatus int
	}{
		{name: "valid", password: "secret123", expectedStatus: http.StatusOK},
		{name: "wrong password", password: "nope-nope", expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.users.On("GetUserByEmail", mock.Anything, "a@example.com").Return(stored, nil)

			w := env.do(http.MethodPost, "/api/auth/login", gin.H{"email": "a@example.com", "password": tt.password})

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestMe(t *testing.T) {
	env := newTestEnv(t)
	env.users.On("GetUserByID", mock.Anything, int64(123)).Return(testutil.NewTestUser(123, "me@example.com"), nil)

	w := env.do(http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "me@example.com", decode[domain.User](t, w).Email)

	env.token = "bogus"
	w = env.do(http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListWords(t *testing.T) {
	env := newTestEnv(t)
	env.words.On("CountWords", mock.Anything, int64(123), "boo").Return(7, nil)
	env.words.On("ListWords", mock.Anything, int64(123), "boo", 5, 5).Return(testutil.NewTestWords(123, 2), nil)

	w := env.do(http.MethodGet, "/api/words?page=2&q=boo", nil)

	require.Equal(t, http.StatusOK, w.Code)
	page := decode[domain.WordPage](t, w)
	assert.Equal(t, 7, page.Count)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Words, 2)
	env.words.AssertExpectations(t)
}

func TestListWords_Errors(t *testing.T) {
	t.Run("invalid page", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(http.MethodGet, "/api/words?page=abc", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("database error is hidden", func(t *testing.T) {
		env := newTestEnv(t)
		env.words.On("CountWords", mock.Anything, int64(123), "").Return(0, fmt.Errorf("connection refused"))

		w := env.do(http.MethodGet, "/api/words", nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
	})

	t.Run("no token", func(t *testing.T) {
		env := newTestEnv(t)
		env.token = ""

		w := env.do(http.MethodGet, "/api/words", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestCreateWord(t *testing.T) {
	tests := []struct {
		name           string
		body           gin.H
		expectedStatus int
	}{
		{
			name:           "created",
			body:           gin.H{"name": "本", "meaning": "book", "pronunciation": "hon"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing meaning",
			body:           gin.H{"name": "本"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.words.On("SaveWord", mock.Anything, int64(123), domain.WordInput{Name: "本", Meaning: "book", Pronunciation: "hon"}).
				Return(testutil.NewTestWord(1, 123, "本", "book"), nil).Maybe()

			w := env.do(http.MethodPost, "/api/words", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			env.words.AssertExpectations(t)
		})
	}
}

func TestWordByID(t *testing.T) {
	t.Run("get missing", func(t *testing.T) {
		env := newTestEnv(t)
		env.words.On("GetWord", mock.Anything, int64(123), int64(9)).Return(nil, nil)

		w := env.do(http.MethodGet, "/api/words/9", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(http.MethodGet, "/api/words/abc", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("update", func(t *testing.T) {
		env := newTestEnv(t)
		input := domain.WordInput{Name: "本", Meaning: "books"}
		env.words.On("UpdateWord", mock.Anything, int64(123), int64(9), input).
			Return(testutil.NewTestWord(9, 123, "本", "books"), nil)

		w := env.do(http.MethodPut, "/api/words/9", gin.H{"name": "本", "meaning": "books"})

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "books", decode[domain.Word](t, w).Meaning)
	})

	t.Run("delete", func(t *testing.T) {
		env := newTestEnv(t)
		env.words.On("DeleteWord", mock.Anything, int64(123), int64(9)).Return(true, nil)

		w := env.do(http.MethodDelete, "/api/words/9", nil)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func multipartRequest(t *testing.T, token, filename, content string) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/words/import", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestImportWords(t *testing.T) {
	tests := []struct {
		name           string
		filename       string
		content        string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "imported",
			filename:       "words.csv",
			content:        "本,book,hon\n水,water\n",
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"imported":2}`,
		},
		{
			name:           "no file",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unsupported format",
			filename:       "words.xls",
			content:        "data",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "empty sheet",
			filename:       "words.csv",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "no valid rows",
			filename:       "words.csv",
			content:        "only-name\n",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.words.On("SaveWords", mock.Anything, int64(123), mock.Anything).Return(2, nil).Maybe()

			w := httptest.NewRecorder()
			env.router.ServeHTTP(w, multipartRequest(t, env.token, tt.filename, tt.content))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}

// expectedAnswer relies on testutil.NewTestWords naming word N "wordN" with meaning "meaningN"
func expectedAnswer(q *questionView) string {
	if q.Direction == quiz.MeaningToName {
		return strings.Replace(q.Prompt, "meaning", "word", 1)
	}
	return strings.Replace(q.Prompt, "word", "meaning", 1)
}

func TestQuiz_NotEnoughWords(t *testing.T) {
	env := newTestEnv(t)
	env.words.On("GetQuizWords", mock.Anything, int64(123)).Return(testutil.NewTestWords(123, 9), nil)

	w := env.do(http.MethodPost, "/api/quiz", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "at least 10 words")
}

func TestQuiz_Flow(t *testing.T) {
	env := newTestEnv(t)
	env.words.On("GetQuizWords", mock.Anything, int64(123)).Return(testutil.NewTestWords(123, 10), nil)

	w := env.do(http.MethodPost, "/api/quiz", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	view := decode[sessionView](t, w)
	require.NotNil(t, view.Question)
	assert.Equal(t, quiz.StateInProgress, view.State)
	assert.Equal(t, 10, view.Total)
	assert.Equal(t, 1, view.Question.Number)
	assert.Empty(t, view.Question.Answer, "unanswered question must not reveal its answer")
	assert.Nil(t, view.Question.Correct)

	base := "/api/quiz/" + view.ID

	w = env.do(http.MethodPost, base+"/next", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.do(http.MethodPost, base+"/answer", gin.H{"choice": "not offered"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	answer := expectedAnswer(view.Question)
	w = env.do(http.MethodPost, base+"/answer", gin.H{"choice": answer})
	require.Equal(t, http.StatusOK, w.Code)
	view = decode[sessionView](t, w)
	require.NotNil(t, view.Question.Correct)
	assert.True(t, *view.Question.Correct)
	assert.Equal(t, answer, view.Question.Answer)
	assert.Equal(t, 1, view.Score)

	w = env.do(http.MethodPost, base+"/answer", gin.H{"choice": answer})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.do(http.MethodPost, base+"/next", nil)
	require.Equal(t, http.StatusOK, w.Code)
	view = decode[sessionView](t, w)
	assert.Equal(t, 2, view.Question.Number)
	assert.Equal(t, 1, view.Score)

	w = env.do(http.MethodPost, base+"/restart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	view = decode[sessionView](t, w)
	assert.Equal(t, 1, view.Question.Number)
	assert.Equal(t, 0, view.Score)

	env.token, _ = env.auth.IssueToken(456)
	w = env.do(http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	env.token, _ = env.auth.IssueToken(123)
	w = env.do(http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNewSessionView_Completed(t *testing.T) {
	session := quiz.NewSession("s1", 1, []quiz.Question{
		{Direction: quiz.NameToMeaning, Prompt: "本", Answer: "book", Choices: []string{"book"}},
	})
	_, err := session.Answer("book")
	require.NoError(t, err)
	require.NoError(t, session.Next())

	view := newSessionView(session)

	assert.Equal(t, quiz.StateCompleted, view.State)
	assert.Equal(t, 1, view.Score)
	assert.Equal(t, 1, view.Total)
	assert.Nil(t, view.Question)
}
