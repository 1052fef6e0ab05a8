package handler

import (
	"errors"
	"fmt"
	"strings"

	"vocabquiz/internal/domain"
	"vocabquiz/internal/importer"
	"vocabquiz/internal/middleware"
	"vocabquiz/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText handles all text messages based on state
func (h *Handler) handleText(c tele.Context) error {
	telegramID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	// Unlinked chats can only log in
	user := middleware.TelegramUser(c)
	if user == nil {
		return h.handleLogin(c, text)
	}

	state := h.GetState(telegramID)

	switch state.State {
	case domain.StateWaitingMeaning:
		// User sent the meaning, save the word
		input := domain.WordInput{
			Name:          state.CurrentWord,
			Meaning:       text,
			Pronunciation: state.CurrentPronunciation,
		}

		ctx, cancel := requestContext()
		defer cancel()

		word, err := h.wordService.AddWord(ctx, user.ID, input)
		if errors.Is(err, service.ErrEmptyWord) {
			return c.Send("The meaning cannot be empty. Send the meaning:", cancelMarkup())
		}
		if err != nil {
			h.logger.Error("Failed to save word",
				zap.Error(err),
				zap.Int64("user_id", user.ID),
			)
			return c.Send("Could not save the word. Please try again.")
		}

		h.logger.Info("Word saved",
			zap.Int64("user_id", user.ID),
			zap.Int64("word_id", word.ID),
		)

		// Reset to waiting for next word
		h.SetState(telegramID, &domain.StateData{State: domain.StateWaitingWord, UserID: user.ID})

		return c.Send(fmt.Sprintf("✅ Saved: %s\n\nSend the next word or return with /start", formatWord(*word)))

	default:
		// Any other state starts the word input flow
		name, pronunciation := parseWordLine(text)

		h.SetState(telegramID, &domain.StateData{
			State:                domain.StateWaitingMeaning,
			UserID:               user.ID,
			CurrentWord:          name,
			CurrentPronunciation: pronunciation,
		})

		return c.Send(fmt.Sprintf("Send the meaning of %s", name), cancelMarkup())
	}
}

// handleDocument bulk-imports words from an uploaded spreadsheet
func (h *Handler) handleDocument(c tele.Context) error {
	user := middleware.TelegramUser(c)
	doc := c.Message().Document

	reader, err := h.bot.File(&doc.File)
	if err != nil {
		h.logger.Error("Failed to download document", zap.Error(err), zap.Int64("user_id", user.ID))
		return c.Send(errorText)
	}
	defer reader.Close()

	ctx, cancel := requestContext()
	defer cancel()

	count, err := h.wordService.ImportWords(ctx, user.ID, doc.FileName, reader)
	switch {
	case errors.Is(err, importer.ErrUnsupportedFormat):
		return c.Send("Unsupported file. Send an .xlsx or .csv spreadsheet.")
	case errors.Is(err, importer.ErrEmptySheet):
		return c.Send("The spreadsheet is empty.")
	case errors.Is(err, service.ErrNoValidRows):
		return c.Send("No rows with both a word and a meaning were found.")
	case err != nil:
		h.logger.Error("Failed to import words",
			zap.Error(err),
			zap.Int64("user_id", user.ID),
			zap.String("file", doc.FileName),
		)
		return c.Send("Could not import the file. Please try again.")
	}

	return c.Send(fmt.Sprintf("✅ Imported %d words.", count), mainMenuMarkup())
}

// parseWordLine splits "word [pronunciation]" into its parts
func parseWordLine(text string) (name, pronunciation string) {
	open := strings.LastIndex(text, "[")
	if open > 0 && strings.HasSuffix(text, "]") {
		name = strings.TrimSpace(text[:open])
		if name != "" {
			return name, strings.TrimSpace(text[open+1 : len(text)-1])
		}
	}
	return text, ""
}
