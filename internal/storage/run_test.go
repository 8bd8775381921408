package storage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/daily-challenge-bot/internal/domain/entities"
)

func TestRunStorage(t *testing.T) {
	s := NewRunStorage()

	_, ok := s.Get(1)
	assert.False(t, ok)

	s.Store(Run{ID: "0123456789abcdef", UserID: 1, Format: entities.FormatMultiChoice, Pending: map[int]struct{}{}})

	run, err := s.Update(1, func(r *Run) error {
		r.Pending[2] = struct{}{}
		r.MessageID = 55
		return nil
	})
	require.NoError(t, err)
	assert.True(t, run.IsPending(2))
	assert.Equal(t, 55, run.MessageID)
	assert.Equal(t, "01234567", run.ShortID())

	// Returned copies do not share the pending set.
	run.Pending[3] = struct{}{}
	stored, ok := s.Get(1)
	require.True(t, ok)
	assert.False(t, stored.IsPending(3))

	s.Delete(1)
	_, ok = s.Get(1)
	assert.False(t, ok)
}

func TestRunStorage_UpdateFailureKeepsRun(t *testing.T) {
	s := NewRunStorage()
	s.Store(Run{ID: "abc", UserID: 1, Pending: map[int]struct{}{}})

	_, err := s.Update(1, func(r *Run) error {
		r.Pending[1] = struct{}{}
		r.MessageID = 9
		return errors.New("rejected")
	})
	assert.Error(t, err)

	run, _ := s.Get(1)
	assert.False(t, run.IsPending(1))
	assert.Zero(t, run.MessageID)
	assert.Equal(t, "abc", run.ShortID())

	_, err = s.Update(2, func(*Run) error { return nil })
	assert.ErrorIs(t, err, ErrRunNotFound)
}
