package service

import (
	"context"

	"github.com/aliskhannn/daily-challenge-bot/internal/domain/entities"
	"github.com/aliskhannn/daily-challenge-bot/internal/engine"
)

// ProfileStore persists users, their settings and failed items.
type ProfileStore interface {
	EnsureUser(ctx context.Context, user *entities.User) error
	GetSettings(ctx context.Context, userID int64) (*entities.UserSettings, error)
	SetCategory(ctx context.Context, userID int64, category entities.Category) error
	AddFailedItem(ctx context.Context, item entities.FailedItem) error
	ListFailedItems(ctx context.Context, userID int64) ([]entities.FailedItem, error)
	ClearFailedItems(ctx context.Context, userID int64) (int64, error)
}

type SettingsReader interface {
	GetSettings(ctx context.Context, userID int64) (*entities.UserSettings, error)
}

// QuestionSource returns the full bank for a format and category.
type QuestionSource interface {
	Fetch(ctx context.Context, format entities.Format, category entities.Category) ([]entities.Question, error)
}

type ContentSource interface {
	DailyChallenges(ctx context.Context) []entities.DailyChallenge
	Tips(ctx context.Context) []entities.Tip
}

// RecorderFactory hands out failed item recorders bound to a user.
type RecorderFactory interface {
	Recorder(userID int64) engine.FailedItemRecorder
}
