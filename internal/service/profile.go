package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/daily-challenge-bot/internal/domain/entities"
	"github.com/aliskhannn/daily-challenge-bot/internal/repository"
)

// FailedGroup is the failed items of one format.
type FailedGroup struct {
	Format    entities.Format
	Questions []entities.Question
}

// ProfileService manages users, their category and their failed items.
type ProfileService struct {
	store  ProfileStore
	logger *zap.Logger
}

func NewProfileService(store ProfileStore, logger *zap.Logger) *ProfileService {
	return &ProfileService{store: store, logger: logger}
}

func (s *ProfileService) EnsureUser(ctx context.Context, userID, chatID int64, firstName, username string) error {
	user := entities.NewUser(userID, chatID)
	user.FirstName = firstName
	user.Username = username

	return s.store.EnsureUser(ctx, user)
}

// Category returns the user's category, or the default when none is stored.
func (s *ProfileService) Category(ctx context.Context, userID int64) (entities.Category, error) {
	settings, err := s.store.GetSettings(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrSettingsNotFound) {
			return entities.DefaultCategory, nil
		}
		return "", err
	}
	return settings.Category, nil
}

func (s *ProfileService) SetCategory(ctx context.Context, userID int64, category entities.Category) error {
	if err := s.store.SetCategory(ctx, userID, category); err != nil {
		return err
	}
	s.logger.Info("category changed", zap.Int64("user_id", userID), zap.String("category", string(category)))
	return nil
}

// FailedItems returns the user's failed questions grouped by format in menu order.
func (s *ProfileService) FailedItems(ctx context.Context, userID int64) ([]FailedGroup, error) {
	items, err := s.store.ListFailedItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	byFormat := make(map[entities.Format][]entities.Question)
	for _, item := range items {
		byFormat[item.Format] = append(byFormat[item.Format], item.Question())
	}

	groups := make([]FailedGroup, 0, len(byFormat))
	for _, f := range entities.Formats {
		if qs := byFormat[f]; len(qs) > 0 {
			groups = append(groups, FailedGroup{Format: f, Questions: qs})
		}
	}
	return groups, nil
}

// ClearFailedItems removes the user's failed items and returns how many were removed.
func (s *ProfileService) ClearFailedItems(ctx context.Context, userID int64) (int64, error) {
	n, err := s.store.ClearFailedItems(ctx, userID)
	if err != nil {
		return 0, err
	}
	s.logger.Info("failed items cleared", zap.Int64("user_id", userID), zap.Int64("count", n))
	return n, nil
}
