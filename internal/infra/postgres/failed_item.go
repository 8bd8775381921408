package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/daily-challenge-bot/internal/domain/entities"
)

// FailedItemRepository stores questions users answered incorrectly.
type FailedItemRepository struct {
	db DBTX
}

func NewFailedItemRepository(db DBTX) *FailedItemRepository {
	return &FailedItemRepository{db: db}
}

// Add stores item. An item already logged for the user is ignored.
func (r *FailedItemRepository) Add(ctx context.Context, item entities.FailedItem) error {
	query := `
		INSERT INTO failed_items (user_id, format, descriptor, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, format, descriptor) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, item.UserID, string(item.Format), item.Descriptor, item.CreatedAt)
	if err != nil {
		return fmt.Errorf("add failed item: %w", err)
	}

	return nil
}

// List returns the user's failed items ordered by format, oldest first.
func (r *FailedItemRepository) List(ctx context.Context, userID int64) ([]entities.FailedItem, error) {
	query := `
		SELECT user_id, format, descriptor, created_at
		FROM failed_items
		WHERE user_id = $1
		ORDER BY format, created_at, id
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list failed items: %w", err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entities.FailedItem, error) {
		var (
			item   entities.FailedItem
			format string
		)
		err := row.Scan(&item.UserID, &format, &item.Descriptor, &item.CreatedAt)
		item.Format = entities.Format(format)
		return item, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan failed items: %w", err)
	}

	return items, nil
}

// Clear removes every failed item of the user and returns how many were removed.
func (r *FailedItemRepository) Clear(ctx context.Context, userID int64) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM failed_items WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("clear failed items: %w", err)
	}

	return result.RowsAffected(), nil
}
