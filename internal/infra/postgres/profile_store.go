package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aliskhannn/daily-challenge-bot/internal/domain/entities"
)

// ProfileStore keeps users, their settings and failed items in PostgreSQL.
type ProfileStore struct {
	tr          *Transactor
	settings    *SettingsRepository
	failedItems *FailedItemRepository
}

func NewProfileStore(pool *pgxpool.Pool) *ProfileStore {
	return &ProfileStore{
		tr:          NewTransactor(pool),
		settings:    NewSettingsRepository(pool),
		failedItems: NewFailedItemRepository(pool),
	}
}

// EnsureUser saves the user and creates default settings in one transaction.
func (s *ProfileStore) EnsureUser(ctx context.Context, user *entities.User) error {
	return s.tr.WithinTx(ctx, func(ctx context.Context, tx DBTX) error {
		if err := NewUserRepository(tx).Upsert(ctx, user); err != nil {
			return err
		}
		return NewSettingsRepository(tx).CreateDefault(ctx, user.ID)
	})
}

func (s *ProfileStore) GetSettings(ctx context.Context, userID int64) (*entities.UserSettings, error) {
	return s.settings.GetByUserID(ctx, userID)
}

func (s *ProfileStore) SetCategory(ctx context.Context, userID int64, category entities.Category) error {
	return s.settings.UpdateCategory(ctx, userID, category)
}

func (s *ProfileStore) AddFailedItem(ctx context.Context, item entities.FailedItem) error {
	return s.failedItems.Add(ctx, item)
}

func (s *ProfileStore) ListFailedItems(ctx context.Context, userID int64) ([]entities.FailedItem, error) {
	return s.failedItems.List(ctx, userID)
}

func (s *ProfileStore) ClearFailedItems(ctx context.Context, userID int64) (int64, error) {
	return s.failedItems.Clear(ctx, userID)
}
