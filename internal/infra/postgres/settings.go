package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/daily-challenge-bot/internal/domain/entities"
	"github.com/aliskhannn/daily-challenge-bot/internal/repository"
)

// SettingsRepository provides access to user settings data in the database.
type SettingsRepository struct {
	db DBTX
}

func NewSettingsRepository(db DBTX) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// CreateDefault creates default settings for a user. Existing settings are kept.
func (r *SettingsRepository) CreateDefault(ctx context.Context, userID int64) error {
	query := `
		INSERT INTO user_settings (user_id, category, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (user_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, userID, string(entities.DefaultCategory))
	if err != nil {
		return fmt.Errorf("create settings: %w", err)
	}

	return nil
}

// GetByUserID retrieves settings for a user.
func (r *SettingsRepository) GetByUserID(ctx context.Context, userID int64) (*entities.UserSettings, error) {
	query := `
		SELECT user_id, category, created_at, updated_at
		FROM user_settings
		WHERE user_id = $1
	`

	var (
		settings entities.UserSettings
		category string
	)
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&settings.UserID,
		&category,
		&settings.CreatedAt,
		&settings.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrSettingsNotFound
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	settings.Category = entities.ParseCategory(category)

	return &settings, nil
}

// UpdateCategory changes the question bank category.
func (r *SettingsRepository) UpdateCategory(ctx context.Context, userID int64, category entities.Category) error {
	query := `
		UPDATE user_settings
		SET category = $1, updated_at = NOW()
		WHERE user_id = $2
	`

	result, err := r.db.Exec(ctx, query, string(category), userID)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}

	if result.RowsAffected() == 0 {
		return repository.ErrSettingsNotFound
	}

	return nil
}
