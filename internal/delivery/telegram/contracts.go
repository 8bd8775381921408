package telegram

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/daily-challenge-bot/internal/domain/entities"
	"github.com/aliskhannn/daily-challenge-bot/internal/engine"
	"github.com/aliskhannn/daily-challenge-bot/internal/service"
	"github.com/aliskhannn/daily-challenge-bot/internal/storage"
)

// Bot is the part of *tgbotapi.BotAPI the handler uses.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type ProfileService interface {
	EnsureUser(ctx context.Context, userID, chatID int64, firstName, username string) error
	Category(ctx context.Context, userID int64) (entities.Category, error)
	SetCategory(ctx context.Context, userID int64, category entities.Category) error
	FailedItems(ctx context.Context, userID int64) ([]service.FailedGroup, error)
	ClearFailedItems(ctx context.Context, userID int64) (int64, error)
}

type ChallengeService interface {
	Start(ctx context.Context, userID int64, format entities.Format) (storage.Run, error)
	AnswerTrueFalse(userID int64, ref service.Ref, value bool) (storage.Run, error)
	AnswerSingle(userID int64, ref service.Ref, optionIndex int) (storage.Run, error)
	ToggleOption(userID int64, ref service.Ref, optionIndex int) (storage.Run, error)
	SubmitMulti(userID int64, ref service.Ref) (storage.Run, error)
	SelectLeft(userID int64, ref service.Ref, index int) (storage.Run, error)
	SelectRight(userID int64, ref service.Ref, index int) (storage.Run, error)
	Restart(userID int64, runID string) (storage.Run, error)
	Result(userID int64, runID string) (engine.SessionResult, storage.Run, error)
	AttachMessage(userID int64, runID string, messageID int)
}

type ContentService interface {
	DailyChallenge(ctx context.Context, now time.Time) (entities.DailyChallenge, bool)
	Challenges(ctx context.Context) []entities.DailyChallenge
	Challenge(ctx context.Context, id string) (entities.DailyChallenge, bool)
	RandomChallenge(ctx context.Context) (entities.DailyChallenge, bool)
	RandomTip(ctx context.Context) entities.Tip
}
