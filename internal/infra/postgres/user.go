package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/daily-challenge-bot/internal/domain/entities"
	"github.com/aliskhannn/daily-challenge-bot/internal/repository"
)

// UserRepository provides access to user data in the database.
type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// Upsert inserts the user or refreshes the chat and name fields.
// CreatedAt is set from the database.
func (r *UserRepository) Upsert(ctx context.Context, user *entities.User) error {
	query := `
		INSERT INTO users (id, chat_id, first_name, username)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET chat_id = EXCLUDED.chat_id,
		    first_name = EXCLUDED.first_name,
		    username = EXCLUDED.username
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query, user.ID, user.ChatID, user.FirstName, user.Username).Scan(&user.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}

	return nil
}

// Get returns the user with the given id.
func (r *UserRepository) Get(ctx context.Context, userID int64) (*entities.User, error) {
	query := `
		SELECT id, chat_id, first_name, username, created_at
		FROM users
		WHERE id = $1
	`

	var u entities.User
	err := r.db.QueryRow(ctx, query, userID).Scan(&u.ID, &u.ChatID, &u.FirstName, &u.Username, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &u, nil
}
