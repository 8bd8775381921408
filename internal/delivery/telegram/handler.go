package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Handler struct {
	bot        Bot
	logger     *zap.Logger
	profile    ProfileService
	challenges ChallengeService
	content    ContentService
}

func NewHandler(
	bot Bot,
	logger *zap.Logger,
	profile ProfileService,
	challenges ChallengeService,
	content ContentService,
) *Handler {
	return &Handler{
		bot:        bot,
		logger:     logger,
		profile:    profile,
		challenges: challenges,
		content:    content,
	}
}

// RegisterCommands publishes the command list shown in the Telegram menu.
func (h *Handler) RegisterCommands() error {
	_, err := h.bot.Request(tgbotapi.NewSetMyCommands(botCommands...))
	return err
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	from := update.Message.From
	chatID := update.Message.Chat.ID

	if err := h.profile.EnsureUser(ctx, from.ID, chatID, from.FirstName, from.UserName); err != nil {
		h.logger.Error("failed to ensure user",
			zap.Int64("user_id", from.ID),
			zap.Error(err),
		)
	}

	if !update.Message.IsCommand() {
		h.send(newHTMLMessage(chatID, msgUnknownCommand))
		return
	}

	h.handleCommand(ctx, chatID, from.ID, update.Message.Command())
}

func (h *Handler) sendError(chatID int64, err string) {
	msg := newHTMLMessage(chatID, err)
	h.send(msg)
}

func (h *Handler) send(c tgbotapi.Chattable) (tgbotapi.Message, bool) {
	sent, err := h.bot.Send(c)
	if err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return tgbotapi.Message{}, false
	}
	return sent, true
}

// answerCallback removes the loading indicator and shows notice, if any.
func (h *Handler) answerCallback(id, notice string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, notice)); err != nil {
		h.logger.Warn("callback answer error", zap.Error(err))
	}
}
