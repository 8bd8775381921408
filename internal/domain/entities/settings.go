package entities

import (
	"time"
)

// UserSettings stores user-specific preferences for challenges.
type UserSettings struct {
	UserID    int64
	Category  Category // question bank category used for every format
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUserSettings creates a new UserSettings instance with default values.
func NewUserSettings(userID int64) *UserSettings {
	now := time.Now()
	return &UserSettings{
		UserID:    userID,
		Category:  DefaultCategory,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
