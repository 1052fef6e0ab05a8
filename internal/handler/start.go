package handler

import (
	"errors"
	"fmt"
	"strings"

	"vocabquiz/internal/domain"
	"vocabquiz/internal/middleware"
	"vocabquiz/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	telegramID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("telegram_id", telegramID),
		zap.String("username", c.Sender().Username),
	)

	user := middleware.TelegramUser(c)
	if user == nil {
		// Request credentials
		h.SetState(telegramID, &domain.StateData{State: domain.StateWaitingCredentials})
		return c.Send(loginPrompt)
	}

	// Show main menu
	h.SetState(telegramID, &domain.StateData{State: domain.StateIdle, UserID: user.ID})
	return h.render(c, mainMenuText, mainMenuMarkup())
}

// handleLogin links the chat to an account using "email password" text
func (h *Handler) handleLogin(c tele.Context, text string) error {
	telegramID := c.Sender().ID

	email, password, ok := parseCredentials(text)
	if !ok {
		h.SetState(telegramID, &domain.StateData{State: domain.StateWaitingCredentials})
		return c.Send(loginPrompt)
	}

	ctx, cancel := requestContext()
	defer cancel()

	user, err := h.authService.LinkTelegram(ctx, email, password, telegramID)
	if errors.Is(err, service.ErrInvalidCredentials) {
		return c.Send("❌ Wrong email or password. Try again:")
	}
	if err != nil {
		h.logger.Error("Failed to link telegram account",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err),
		)
		return c.Send(errorText)
	}

	// The message holds a password
	if err := c.Delete(); err != nil {
		h.logger.Debug("Failed to delete credentials message", zap.Error(err))
	}

	h.SetState(telegramID, &domain.StateData{State: domain.StateIdle, UserID: user.ID})
	return c.Send(
		fmt.Sprintf("✅ Chat linked to %s\n\n%s", user.Email, mainMenuText),
		mainMenuMarkup(),
	)
}

// parseCredentials splits "email password" into its parts
func parseCredentials(text string) (email, password string, ok bool) {
	fields := strings.Fields(text)
	if len(fields) != 2 || !strings.Contains(fields[0], "@") {
		return "", "", false
	}
	return fields[0], fields[1], true
}
