package telegram

import (
	"context"
	"fmt"
)

const msgClearConfirm = "🗑 Forget all of your failed questions?"

func (h *Handler) failedHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		groups, err := h.profile.FailedItems(ctx, userID)
		if err != nil {
			return err
		}

		if len(groups) == 0 {
			h.send(newHTMLMessage(chatID, msgNoFailedItems))
			return nil
		}

		h.send(newHTMLMessage(chatID, renderFailed(groups)))
		return nil
	}
}

func (h *Handler) clearHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		groups, err := h.profile.FailedItems(ctx, userID)
		if err != nil {
			return err
		}

		if len(groups) == 0 {
			h.send(newHTMLMessage(chatID, msgNoFailedItems))
			return nil
		}

		msg := newHTMLMessage(chatID, msgClearConfirm)
		msg.ReplyMarkup = buildClearKeyboard()
		h.send(msg)
		return nil
	}
}

func (h *Handler) handleClearCallback(ctx context.Context, chatID int64, messageID int, userID int64, sub string) (string, error) {
	switch sub {
	case clearConfirm:
		n, err := h.profile.ClearFailedItems(ctx, userID)
		if err != nil {
			return "", err
		}
		h.reply(chatID, messageID, fmt.Sprintf("🗑 Removed %d failed questions.", n), nil)
	case clearCancel:
		h.reply(chatID, messageID, msgClearCancelled, nil)
	default:
		return answerNotice(errInvalidCallback)
	}
	return "", nil
}
