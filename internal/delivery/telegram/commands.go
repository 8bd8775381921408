package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/daily-challenge-bot/internal/domain/entities"
	"github.com/aliskhannn/daily-challenge-bot/internal/service"
	"github.com/aliskhannn/daily-challenge-bot/internal/storage"
)

const msgChooseFormat = "🎯 <b>Choose a challenge format</b>"

// commandFormats maps the direct start commands to their format.
var commandFormats = map[string]entities.Format{
	"truefalse": entities.FormatTrueFalse,
	"choice":    entities.FormatSingleChoice,
	"multi":     entities.FormatMultiChoice,
	"match":     entities.FormatMatching,
}

func (h *Handler) handleCommand(ctx context.Context, chatID, userID int64, command string) {
	if format, ok := commandFormats[command]; ok {
		_ = h.withErrorHandling(h.startHandler(userID, format, 0))(ctx, chatID)
		return
	}

	switch command {
	case "start":
		msg := newHTMLMessage(chatID, msgWelcome)
		msg.ReplyMarkup = buildFormatKeyboard()
		h.send(msg)

	case "help":
		h.send(newHTMLMessage(chatID, msgHelp))

	case "play":
		msg := newHTMLMessage(chatID, msgChooseFormat)
		msg.ReplyMarkup = buildFormatKeyboard()
		h.send(msg)

	case "category":
		_ = h.withErrorHandling(h.categoryHandler(userID))(ctx, chatID)

	case "failed":
		_ = h.withErrorHandling(h.failedHandler(userID))(ctx, chatID)

	case "clear":
		_ = h.withErrorHandling(h.clearHandler(userID))(ctx, chatID)

	case "daily":
		_ = h.withErrorHandling(h.dailyHandler())(ctx, chatID)

	case "challenges":
		_ = h.withErrorHandling(h.challengesHandler(0, 0))(ctx, chatID)

	case "random":
		_ = h.withErrorHandling(h.randomChallengeHandler())(ctx, chatID)

	case "tip":
		_ = h.withErrorHandling(h.tipHandler())(ctx, chatID)

	default:
		h.send(newHTMLMessage(chatID, msgUnknownCommand))
	}
}

// startHandler starts a run of format. With a non-zero messageID the run
// replaces that message instead of being sent as a new one.
func (h *Handler) startHandler(userID int64, format entities.Format, messageID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		run, err := h.challenges.Start(ctx, userID, format)
		switch {
		case errors.Is(err, service.ErrNoQuestionsAvailable):
			h.reply(chatID, messageID, msgNoQuestions, nil)
			return nil
		case err != nil:
			return err
		}

		h.showRun(chatID, messageID, run)
		return nil
	}
}

// showRun renders run into messageID, or into a new message when messageID
// is zero, and remembers the message as the run's one.
func (h *Handler) showRun(chatID int64, messageID int, run storage.Run) {
	text, kb := renderRun(run)
	id, ok := h.reply(chatID, messageID, text, &kb)
	if !ok {
		return
	}
	if id != run.MessageID {
		h.challenges.AttachMessage(run.UserID, run.ID, id)
	}
}

// reply edits messageID or sends a new message when messageID is zero.
// It returns the id of the message showing text.
func (h *Handler) reply(chatID int64, messageID int, text string, kb *tgbotapi.InlineKeyboardMarkup) (int, bool) {
	if messageID != 0 {
		_, ok := h.send(newHTMLEdit(chatID, messageID, text, kb))
		return messageID, ok
	}

	msg := newHTMLMessage(chatID, text)
	if kb != nil {
		msg.ReplyMarkup = *kb
	}
	sent, ok := h.send(msg)
	return sent.MessageID, ok
}
