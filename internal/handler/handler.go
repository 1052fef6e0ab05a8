package handler

import (
	"context"
	"sync"
	"time"

	"vocabquiz/internal/domain"
	"vocabquiz/internal/middleware"
	"vocabquiz/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const requestTimeout = 10 * time.Second

// Handler manages all bot interactions
type Handler struct {
	bot         *tele.Bot
	authService *service.AuthService
	wordService *service.WordService
	quizService *service.QuizService
	logger      *zap.Logger

	// User states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex

	// Per-chat locks so double-tapped buttons are processed one at a time
	callbackLocks map[int64]*sync.Mutex
	callbackMux   sync.Mutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	authService *service.AuthService,
	wordService *service.WordService,
	quizService *service.QuizService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:           bot,
		authService:   authService,
		wordService:   wordService,
		quizService:   quizService,
		logger:        logger,
		states:        make(map[int64]*domain.StateData),
		callbackLocks: make(map[int64]*sync.Mutex),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	h.bot.Use(middleware.AuthMiddleware(h.authService, h.logger))

	// Commands
	h.bot.Handle("/start", h.handleStart)

	// Messages
	h.bot.Handle(tele.OnText, h.handleText)
	h.bot.Handle(tele.OnDocument, h.handleDocument)

	// Callback queries (inline buttons)
	h.bot.Handle(&btnAddWord, h.handleAddWord)
	h.bot.Handle(&btnMyWords, h.handleMyWords)
	h.bot.Handle(&btnQuiz, h.handleQuizStart)
	h.bot.Handle(&btnCancel, h.handleCancel)
	h.bot.Handle(&btnMainMenu, h.handleStart)
	h.bot.Handle(&btnWordsPage, h.handleWordsPage)
	h.bot.Handle(&btnDeleteWord, h.handleDeleteWord)
	h.bot.Handle(&btnQuizAnswer, h.handleQuizAnswer)
	h.bot.Handle(&btnQuizNext, h.handleQuizNext)
	h.bot.Handle(&btnQuizRestart, h.handleQuizRestart)
	h.bot.Handle(&btnQuizExit, h.handleQuizExit)

	// Anything left over
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// GetState returns user's current state
func (h *Handler) GetState(userID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	return state
}

// SetState sets user's state
func (h *Handler) SetState(userID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// ResetState resets user to idle state
func (h *Handler) ResetState(userID int64) {
	h.SetState(userID, &domain.StateData{State: domain.StateIdle})
}

// lockChat serializes callback processing for one chat; call the returned func to release
func (h *Handler) lockChat(chatID int64) func() {
	h.callbackMux.Lock()
	lock, exists := h.callbackLocks[chatID]
	if !exists {
		lock = &sync.Mutex{}
		h.callbackLocks[chatID] = lock
	}
	h.callbackMux.Unlock()

	lock.Lock()
	return lock.Unlock
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

// Inline keyboard buttons
var (
	btnAddWord = tele.Btn{
		Unique: "add_word",
		Text:   "➕ Add word",
	}
	btnMyWords = tele.Btn{
		Unique: "my_words",
		Text:   "📚 My words",
	}
	btnQuiz = tele.Btn{
		Unique: "quiz",
		Text:   "🎯 Quiz",
	}
	btnCancel = tele.Btn{
		Unique: "cancel",
		Text:   "❌ Cancel",
	}
	btnMainMenu = tele.Btn{
		Unique: "main_menu",
		Text:   "🏠 Main menu",
	}
	btnWordsPage = tele.Btn{
		Unique: "words_page",
	}
	btnDeleteWord = tele.Btn{
		Unique: "word_delete",
	}
	btnQuizAnswer = tele.Btn{
		Unique: "quiz_answer",
	}
	btnQuizNext = tele.Btn{
		Unique: "quiz_next",
		Text:   "➡️ Next",
	}
	btnQuizRestart = tele.Btn{
		Unique: "quiz_restart",
		Text:   "🔄 Restart",
	}
	btnQuizExit = tele.Btn{
		Unique: "quiz_exit",
		Text:   "🚪 Exit",
	}
)

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnAddWord),
		menu.Row(btnMyWords),
		menu.Row(btnQuiz),
	)
	return menu
}

func cancelMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnCancel))
	return markup
}

const (
	mainMenuText   = "🏠 Main menu\n\nChoose an action:"
	errorText      = "Something went wrong. Please try again later."
	loginPrompt    = "👋 Welcome! Send your account email and password separated by a space to link this chat:\n\nexample@mail.com mypassword"
	wordPrompt     = "Send a word. You can add its pronunciation in brackets: 本 [hon]"
	documentPrompt = "You can also send an .xlsx or .csv file: column A word, column B meaning, column C pronunciation."
)
