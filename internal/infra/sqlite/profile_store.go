package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aliskhannn/daily-challenge-bot/internal/domain/entities"
	"github.com/aliskhannn/daily-challenge-bot/internal/repository"
)

// ProfileStore keeps users, their settings and failed items in SQLite.
// Timestamps are stored as unix milliseconds.
type ProfileStore struct {
	db *sql.DB
}

func NewProfileStore(db *sql.DB) *ProfileStore {
	return &ProfileStore{db: db}
}

// EnsureUser saves the user and creates default settings in one transaction.
func (s *ProfileStore) EnsureUser(ctx context.Context, user *entities.User) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UnixMilli()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO users (id, chat_id, first_name, username, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE
		SET chat_id = excluded.chat_id,
		    first_name = excluded.first_name,
		    username = excluded.username`,
		user.ID, user.ChatID, user.FirstName, user.Username, now,
	)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}

	var createdAt int64
	if err := tx.QueryRowContext(ctx, `SELECT created_at FROM users WHERE id = ?`, user.ID).Scan(&createdAt); err != nil {
		return fmt.Errorf("read user: %w", err)
	}
	user.CreatedAt = time.UnixMilli(createdAt)

	_, err = tx.ExecContext(ctx, `
		INSERT INTO user_settings (user_id, category, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id) DO NOTHING`,
		user.ID, string(entities.DefaultCategory), now, now,
	)
	if err != nil {
		return fmt.Errorf("create settings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *ProfileStore) GetSettings(ctx context.Context, userID int64) (*entities.UserSettings, error) {
	var (
		settings             entities.UserSettings
		category             string
		createdAt, updatedAt int64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, category, created_at, updated_at
		FROM user_settings
		WHERE user_id = ?`, userID,
	).Scan(&settings.UserID, &category, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrSettingsNotFound
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}

	settings.Category = entities.ParseCategory(category)
	settings.CreatedAt = time.UnixMilli(createdAt)
	settings.UpdatedAt = time.UnixMilli(updatedAt)
	return &settings, nil
}

func (s *ProfileStore) SetCategory(ctx context.Context, userID int64, category entities.Category) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE user_settings
		SET category = ?, updated_at = ?
		WHERE user_id = ?`,
		string(category), time.Now().UnixMilli(), userID,
	)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if n == 0 {
		return repository.ErrSettingsNotFound
	}
	return nil
}

// AddFailedItem stores item. An item already logged for the user is ignored.
func (s *ProfileStore) AddFailedItem(ctx context.Context, item entities.FailedItem) error {
	createdAt := item.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO failed_items (user_id, format, descriptor, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, format, descriptor) DO NOTHING`,
		item.UserID, string(item.Format), item.Descriptor, createdAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("add failed item: %w", err)
	}
	return nil
}

// ListFailedItems returns the user's failed items ordered by format, oldest first.
func (s *ProfileStore) ListFailedItems(ctx context.Context, userID int64) ([]entities.FailedItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, format, descriptor, created_at
		FROM failed_items
		WHERE user_id = ?
		ORDER BY format, created_at, id`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list failed items: %w", err)
	}
	defer rows.Close()

	var items []entities.FailedItem
	for rows.Next() {
		var (
			item      entities.FailedItem
			format    string
			createdAt int64
		)
		if err := rows.Scan(&item.UserID, &format, &item.Descriptor, &createdAt); err != nil {
			return nil, fmt.Errorf("scan failed item: %w", err)
		}
		item.Format = entities.Format(format)
		item.CreatedAt = time.UnixMilli(createdAt)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list failed items: %w", err)
	}

	return items, nil
}

// ClearFailedItems removes every failed item of the user and returns how many were removed.
func (s *ProfileStore) ClearFailedItems(ctx context.Context, userID int64) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM failed_items WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("clear failed items: %w", err)
	}
	return result.RowsAffected()
}
