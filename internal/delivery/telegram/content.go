package telegram

import (
	"context"
	"time"

	"github.com/aliskhannn/daily-challenge-bot/internal/domain/entities"
)

func (h *Handler) dailyHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		ch, ok := h.content.DailyChallenge(ctx, time.Now())
		if !ok {
			h.send(newHTMLMessage(chatID, msgNoDailyChallenge))
			return nil
		}

		h.sendChallenge(chatID, headerDaily, ch)
		return nil
	}
}

func (h *Handler) randomChallengeHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		ch, ok := h.content.RandomChallenge(ctx)
		if !ok {
			h.send(newHTMLMessage(chatID, msgNoChallenges))
			return nil
		}

		h.sendChallenge(chatID, headerRandom, ch)
		return nil
	}
}

// challengesHandler shows page of the challenge list. With a non-zero
// messageID the list replaces that message.
func (h *Handler) challengesHandler(page, messageID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		challenges := listableChallenges(h.content.Challenges(ctx))
		if len(challenges) == 0 {
			h.reply(chatID, messageID, msgNoChallenges, nil)
			return nil
		}

		page = min(page, pageCount(len(challenges))-1)
		kb := buildChallengeListKeyboard(challenges, page)
		h.reply(chatID, messageID, renderChallengeList(page, len(challenges)), &kb)
		return nil
	}
}

func (h *Handler) tipHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.send(newHTMLMessage(chatID, renderTip(h.content.RandomTip(ctx))))
		return nil
	}
}

func (h *Handler) sendChallenge(chatID int64, header string, ch entities.DailyChallenge) {
	msg := newHTMLMessage(chatID, renderChallenge(header, ch, false))
	msg.ReplyMarkup = buildChallengeKeyboard(ch, false)
	h.send(msg)
}

func (h *Handler) handleChallengeCallback(ctx context.Context, chatID int64, messageID int, data callbackData) (string, error) {
	ch, ok := h.content.Challenge(ctx, data.param(0))
	if !ok {
		return msgChallengeGone, nil
	}

	revealed := data.param(1) == challengeSolution
	kb := buildChallengeKeyboard(ch, revealed)
	h.reply(chatID, messageID, renderChallenge(headerChallenge, ch, revealed), &kb)
	return "", nil
}

func (h *Handler) handleChallengePageCallback(ctx context.Context, chatID int64, messageID int, data callbackData) (string, error) {
	page, err := data.intParam(0)
	if err != nil {
		return answerNotice(err)
	}
	return "", h.challengesHandler(page, messageID)(ctx, chatID)
}

// listableChallenges keeps the challenges list buttons can open.
func listableChallenges(all []entities.DailyChallenge) []entities.DailyChallenge {
	out := make([]entities.DailyChallenge, 0, len(all))
	for _, ch := range all {
		if linkable(ch) {
			out = append(out, ch)
		}
	}
	return out
}
