package engine

import "github.com/aliskhannn/daily-challenge-bot/internal/domain/entities"

// FailedItemRecorder receives questions the user failed.
// RecordFailedItem is called inline with a transition and must not block;
// implementations hand the item off and drop it on failure.
type FailedItemRecorder interface {
	RecordFailedItem(item entities.FailedItem)
}

// RecorderFunc adapts a function to FailedItemRecorder.
type RecorderFunc func(item entities.FailedItem)

func (f RecorderFunc) RecordFailedItem(item entities.FailedItem) { f(item) }

type nopRecorder struct{}

func (nopRecorder) RecordFailedItem(entities.FailedItem) {}
