package telegram

import (
	"context"
	"fmt"
	"slices"

	"github.com/aliskhannn/daily-challenge-bot/internal/domain/entities"
)

func categoryText(current entities.Category) string {
	return fmt.Sprintf("⚙️ <b>Category</b>\n\nQuestions are taken from the <b>%s</b> bank. Choose another technology:", esc(current.Title()))
}

func (h *Handler) categoryHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		current, err := h.profile.Category(ctx, userID)
		if err != nil {
			return err
		}

		msg := newHTMLMessage(chatID, categoryText(current))
		msg.ReplyMarkup = buildCategoryKeyboard(current)
		h.send(msg)
		return nil
	}
}

func (h *Handler) handleCategoryCallback(ctx context.Context, chatID int64, messageID int, userID int64, name string) (string, error) {
	category := entities.Category(name)
	if !slices.Contains(entities.Categories, category) {
		return msgCategoryUnchanged, nil
	}

	if err := h.profile.SetCategory(ctx, userID, category); err != nil {
		return "", err
	}

	kb := buildCategoryKeyboard(category)
	h.reply(chatID, messageID, categoryText(category), &kb)
	return "Category: " + category.Title(), nil
}
