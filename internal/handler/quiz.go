package handler

import (
	"context"
	"errors"
	"strconv"

	"vocabquiz/internal/domain"
	"vocabquiz/internal/middleware"
	"vocabquiz/internal/quiz"
	"vocabquiz/internal/repository"
	"vocabquiz/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleQuizStart opens a new quiz session
func (h *Handler) handleQuizStart(c tele.Context) error {
	user := middleware.TelegramUser(c)

	unlock := h.lockChat(c.Sender().ID)
	defer unlock()

	ctx, cancel := requestContext()
	defer cancel()

	session, err := h.quizService.Start(ctx, user.ID)
	if errors.Is(err, service.ErrNotEnoughWords) {
		return alert(c, err.Error())
	}
	if err != nil {
		h.logger.Error("Failed to start quiz", zap.Error(err), zap.Int64("user_id", user.ID))
		return c.Respond(&tele.CallbackResponse{Text: "Error while starting the quiz"})
	}

	h.SetState(c.Sender().ID, &domain.StateData{
		State:         domain.StateQuiz,
		UserID:        user.ID,
		QuizSessionID: session.ID,
	})
	return h.renderSession(c, session)
}

// handleQuizAnswer records the tapped choice
func (h *Handler) handleQuizAnswer(c tele.Context) error {
	user := middleware.TelegramUser(c)

	args := callbackArgs(c)
	if len(args) != 2 {
		return c.Respond(&tele.CallbackResponse{Text: "Invalid answer"})
	}
	sessionID := args[0]
	index, err := strconv.Atoi(args[1])
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Invalid answer"})
	}

	unlock := h.lockChat(c.Sender().ID)
	defer unlock()

	ctx, cancel := requestContext()
	defer cancel()

	session, err := h.quizService.Get(ctx, user.ID, sessionID)
	if err != nil {
		return h.quizError(c, user.ID, err)
	}

	choice, ok := choiceAt(session, index)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "Invalid answer"})
	}

	session, _, err = h.quizService.Answer(ctx, user.ID, sessionID, choice)
	if err != nil {
		return h.quizError(c, user.ID, err)
	}
	return h.renderSession(c, session)
}

// handleQuizNext moves to the next question
func (h *Handler) handleQuizNext(c tele.Context) error {
	return h.quizStep(c, h.quizService.Next)
}

// handleQuizRestart regenerates the questions and resets the score
func (h *Handler) handleQuizRestart(c tele.Context) error {
	return h.quizStep(c, h.quizService.Restart)
}

// handleQuizExit discards the session and returns to the main menu
func (h *Handler) handleQuizExit(c tele.Context) error {
	user := middleware.TelegramUser(c)

	args := callbackArgs(c)
	if len(args) == 1 {
		ctx, cancel := requestContext()
		defer cancel()

		err := h.quizService.Exit(ctx, user.ID, args[0])
		if err != nil && !errors.Is(err, repository.ErrSessionNotFound) {
			h.logger.Error("Failed to exit quiz", zap.Error(err), zap.Int64("user_id", user.ID))
		}
	}

	h.SetState(c.Sender().ID, &domain.StateData{State: domain.StateIdle, UserID: user.ID})
	return h.render(c, mainMenuText, mainMenuMarkup())
}

func (h *Handler) quizStep(c tele.Context, step func(ctx context.Context, ownerID int64, sessionID string) (*quiz.Session, error)) error {
	user := middleware.TelegramUser(c)

	args := callbackArgs(c)
	if len(args) != 1 {
		return c.Respond(&tele.CallbackResponse{Text: "Invalid quiz"})
	}

	unlock := h.lockChat(c.Sender().ID)
	defer unlock()

	ctx, cancel := requestContext()
	defer cancel()

	session, err := step(ctx, user.ID, args[0])
	if err != nil {
		return h.quizError(c, user.ID, err)
	}
	return h.renderSession(c, session)
}

func (h *Handler) quizError(c tele.Context, userID int64, err error) error {
	switch {
	case errors.Is(err, repository.ErrSessionNotFound):
		return alert(c, "This quiz has expired. Start a new one from the main menu.")
	case errors.Is(err, service.ErrNotEnoughWords):
		return alert(c, err.Error())
	case errors.Is(err, quiz.ErrAlreadyAnswered),
		errors.Is(err, quiz.ErrNotAnswered),
		errors.Is(err, quiz.ErrCompleted),
		errors.Is(err, quiz.ErrInvalidChoice):
		// Stale button from an earlier render
		return c.Respond()
	}

	h.logger.Error("Quiz action failed", zap.Error(err), zap.Int64("user_id", userID))
	return c.Respond(&tele.CallbackResponse{Text: "Error, please try again"})
}

func (h *Handler) renderSession(c tele.Context, session *quiz.Session) error {
	return h.render(c, formatSession(session), sessionMarkup(session))
}

func sessionMarkup(session *quiz.Session) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}

	exit := markup.Data(btnQuizExit.Text, btnQuizExit.Unique, session.ID)

	q, ok := session.Current()
	switch {
	case !ok:
		rows = append(rows, markup.Row(
			markup.Data(btnQuizRestart.Text, btnQuizRestart.Unique, session.ID),
			exit,
		))
	case session.Answered:
		rows = append(rows, markup.Row(
			markup.Data(btnQuizNext.Text, btnQuizNext.Unique, session.ID),
			exit,
		))
	default:
		for i, choice := range q.Choices {
			rows = append(rows, markup.Row(
				markup.Data(choice, btnQuizAnswer.Unique, session.ID, strconv.Itoa(i)),
			))
		}
		rows = append(rows, markup.Row(exit))
	}

	markup.Inline(rows...)
	return markup
}

// choiceAt returns the choice behind a button index of the current question
func choiceAt(session *quiz.Session, index int) (string, bool) {
	q, ok := session.Current()
	if !ok || index < 0 || index >= len(q.Choices) {
		return "", false
	}
	return q.Choices[index], true
}
