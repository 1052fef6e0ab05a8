package handler

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	"vocabquiz/internal/domain"
	"vocabquiz/internal/middleware"
	"vocabquiz/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// callbackArgs returns the cleaned payload values of a data button
func callbackArgs(c tele.Context) []string {
	if c.Callback() == nil {
		return nil
	}
	data := cleanCallbackData(c.Callback().Data)
	if data == "" {
		return nil
	}
	return strings.Split(data, "|")
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context) error {
	if err == nil {
		return nil
	}

	// Already edited by another callback
	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Message already modified by another callback, acknowledging",
			zap.Int64("telegram_id", c.Sender().ID),
			zap.String("callback_id", c.Callback().ID),
		)
		_ = c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("telegram_id", c.Sender().ID),
		zap.String("callback_id", c.Callback().ID),
	)
	// Always acknowledge callback before sending new message
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// render edits the message behind a callback, or sends a new one for plain messages
func (h *Handler) render(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	if c.Callback() != nil {
		if err := c.Edit(text, markup); err != nil {
			if handleErr := h.handleEditError(err, c); handleErr == nil {
				return nil
			}
			return c.Send(text, markup)
		}
		return c.Respond()
	}
	return c.Send(text, markup)
}

// alert answers a callback with a popup
func alert(c tele.Context, text string) error {
	return c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: true})
}

// handleCallback acknowledges callbacks no registered button claimed
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		return nil
	}

	h.logger.Warn("Unhandled callback",
		zap.String("data", cleanCallbackData(callback.Data)),
		zap.String("unique", callback.Unique),
		zap.Int64("telegram_id", c.Sender().ID),
	)
	return c.Respond(&tele.CallbackResponse{Text: "This button is no longer active"})
}

// handleCancel cancels current operation and resets state
func (h *Handler) handleCancel(c tele.Context) error {
	h.ResetState(c.Sender().ID)
	return h.render(c, mainMenuText, mainMenuMarkup())
}

// handleAddWord starts the word input flow
func (h *Handler) handleAddWord(c tele.Context) error {
	user := middleware.TelegramUser(c)
	h.SetState(c.Sender().ID, &domain.StateData{State: domain.StateWaitingWord, UserID: user.ID})
	return h.render(c, wordPrompt+"\n\n"+documentPrompt, cancelMarkup())
}

// handleMyWords shows the first page of the word list
func (h *Handler) handleMyWords(c tele.Context) error {
	return h.showWordsPage(c, 1)
}

// handleWordsPage handles page navigation
func (h *Handler) handleWordsPage(c tele.Context) error {
	args := callbackArgs(c)
	if len(args) != 1 {
		return c.Respond(&tele.CallbackResponse{Text: "Invalid page"})
	}

	page, err := strconv.Atoi(args[0])
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Invalid page"})
	}
	return h.showWordsPage(c, page)
}

// handleDeleteWord deletes a word and redraws the page it was on
func (h *Handler) handleDeleteWord(c tele.Context) error {
	user := middleware.TelegramUser(c)

	args := callbackArgs(c)
	if len(args) != 2 {
		return c.Respond(&tele.CallbackResponse{Text: "Invalid word"})
	}
	wordID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Invalid word"})
	}
	page, err := strconv.Atoi(args[1])
	if err != nil {
		page = 1
	}

	unlock := h.lockChat(c.Sender().ID)
	defer unlock()

	ctx, cancel := requestContext()
	defer cancel()

	err = h.wordService.DeleteWord(ctx, user.ID, wordID)
	if err != nil && !errors.Is(err, service.ErrWordNotFound) {
		h.logger.Error("Failed to delete word", zap.Error(err), zap.Int64("user_id", user.ID))
		return c.Respond(&tele.CallbackResponse{Text: "Error while deleting"})
	}

	h.logger.Info("Word deleted", zap.Int64("user_id", user.ID), zap.Int64("word_id", wordID))
	return h.showWordsPage(c, page)
}

func (h *Handler) showWordsPage(c tele.Context, page int) error {
	user := middleware.TelegramUser(c)

	ctx, cancel := requestContext()
	defer cancel()

	result, err := h.wordService.ListWords(ctx, user.ID, page, "")
	if err != nil {
		h.logger.Error("Failed to list words", zap.Error(err), zap.Int64("user_id", user.ID))
		return c.Respond(&tele.CallbackResponse{Text: "Error while loading"})
	}

	// The last word of the last page was deleted
	if len(result.Words) == 0 && result.TotalPages > 0 && page > result.TotalPages {
		return h.showWordsPage(c, result.TotalPages)
	}

	if result.Count == 0 {
		if c.Callback() != nil {
			return alert(c, "You have no saved words yet")
		}
		return c.Send("You have no saved words yet", mainMenuMarkup())
	}

	return h.render(c, formatWordPage(result, timeNow()), wordPageMarkup(result))
}

func wordPageMarkup(page *domain.WordPage) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}

	for _, word := range page.Words {
		btn := markup.Data("🗑 "+word.Name, btnDeleteWord.Unique,
			strconv.FormatInt(word.ID, 10), strconv.Itoa(page.Page))
		rows = append(rows, markup.Row(btn))
	}

	// Add pagination buttons
	if page.TotalPages > 1 {
		navRow := tele.Row{}
		if page.Page > 1 {
			navRow = append(navRow, markup.Data("⬅️", btnWordsPage.Unique, strconv.Itoa(page.Page-1)))
		}
		if page.Page < page.TotalPages {
			navRow = append(navRow, markup.Data("➡️", btnWordsPage.Unique, strconv.Itoa(page.Page+1)))
		}
		if len(navRow) > 0 {
			rows = append(rows, navRow)
		}
	}

	rows = append(rows, markup.Row(btnMainMenu))
	markup.Inline(rows...)
	return markup
}
