package middleware

import (
	"context"
	"time"

	"vocabquiz/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// TelegramUserKey is the telebot context key holding the linked *domain.User
const TelegramUserKey = "user"

const lookupTimeout = 5 * time.Second

// TelegramUserLookup resolves the account linked to a Telegram user
type TelegramUserLookup interface {
	GetUserByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error)
}

// AuthMiddleware creates authentication middleware for the bot.
// Linked chats get their account stored under TelegramUserKey. Unlinked chats
// may only send /start and plain text, which carries their login.
func AuthMiddleware(users TelegramUserLookup, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil {
				return nil
			}

			ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
			defer cancel()

			user, err := users.GetUserByTelegramID(ctx, sender.ID)
			if err != nil {
				logger.Error("Failed to look up linked account in middleware",
					zap.Int64("telegram_id", sender.ID),
					zap.Error(err),
				)
				return c.Send("Something went wrong. Please try again later.")
			}

			if user != nil {
				c.Set(TelegramUserKey, user)
				return next(c)
			}

			if c.Callback() == nil && c.Message() != nil && c.Message().Document == nil {
				return next(c)
			}

			if c.Callback() != nil {
				_ = c.Respond()
			}
			return c.Send("Your chat is not linked yet. Send /start to log in.")
		}
	}
}

// TelegramUser returns the account stored by AuthMiddleware, or nil for an unlinked chat
func TelegramUser(c tele.Context) *domain.User {
	user, _ := c.Get(TelegramUserKey).(*domain.User)
	return user
}
