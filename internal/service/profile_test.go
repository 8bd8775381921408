package service

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/daily-challenge-bot/internal/domain/entities"
	"github.com/aliskhannn/daily-challenge-bot/internal/questionsource"
	"github.com/aliskhannn/daily-challenge-bot/internal/repository"
)

type memoryProfileStore struct {
	users    map[int64]*entities.User
	settings map[int64]*entities.UserSettings
	failed   []entities.FailedItem
}

func newMemoryProfileStore() *memoryProfileStore {
	return &memoryProfileStore{
		users:    map[int64]*entities.User{},
		settings: map[int64]*entities.UserSettings{},
	}
}

func (m *memoryProfileStore) EnsureUser(_ context.Context, user *entities.User) error {
	m.users[user.ID] = user
	if _, ok := m.settings[user.ID]; !ok {
		m.settings[user.ID] = entities.NewUserSettings(user.ID)
	}
	return nil
}

func (m *memoryProfileStore) GetSettings(_ context.Context, userID int64) (*entities.UserSettings, error) {
	s, ok := m.settings[userID]
	if !ok {
		return nil, repository.ErrSettingsNotFound
	}
	return s, nil
}

func (m *memoryProfileStore) SetCategory(_ context.Context, userID int64, category entities.Category) error {
	s, ok := m.settings[userID]
	if !ok {
		return repository.ErrSettingsNotFound
	}
	s.Category = category
	return nil
}

func (m *memoryProfileStore) AddFailedItem(_ context.Context, item entities.FailedItem) error {
	m.failed = append(m.failed, item)
	return nil
}

func (m *memoryProfileStore) ListFailedItems(_ context.Context, userID int64) ([]entities.FailedItem, error) {
	var out []entities.FailedItem
	for _, it := range m.failed {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *memoryProfileStore) ClearFailedItems(_ context.Context, userID int64) (int64, error) {
	var kept []entities.FailedItem
	for _, it := range m.failed {
		if it.UserID != userID {
			kept = append(kept, it)
		}
	}
	n := int64(len(m.failed) - len(kept))
	m.failed = kept
	return n, nil
}

func TestProfileService_Category(t *testing.T) {
	store := newMemoryProfileStore()
	svc := NewProfileService(store, zap.NewNop())
	ctx := context.Background()

	c, err := svc.Category(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, entities.DefaultCategory, c)

	require.NoError(t, svc.EnsureUser(ctx, 5, 50, "Ada", "ada"))
	assert.Equal(t, "ada", store.users[5].Username)

	require.NoError(t, svc.SetCategory(ctx, 5, entities.CategoryFlutter))
	c, err = svc.Category(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, entities.CategoryFlutter, c)
}

func TestProfileService_FailedItems(t *testing.T) {
	store := newMemoryProfileStore()
	svc := NewProfileService(store, zap.NewNop())
	ctx := context.Background()

	add := func(q entities.Question) {
		item := entities.NewFailedItem(q)
		item.UserID = 1
		require.NoError(t, store.AddFailedItem(ctx, item))
	}
	add(entities.NewMatching("m", []entities.Pair{{Left: "a", Right: "b"}}))
	add(entities.NewTrueFalse("t1", true))
	add(entities.NewTrueFalse("t2", false))

	groups, err := svc.FailedItems(ctx, 1)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, entities.FormatTrueFalse, groups[0].Format)
	assert.Len(t, groups[0].Questions, 2)
	assert.Equal(t, entities.FormatMatching, groups[1].Format)

	n, err := svc.ClearFailedItems(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	groups, err = svc.FailedItems(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, groups)
}

type fakeContent struct {
	daily []entities.DailyChallenge
	tips  []entities.Tip
}

func (f fakeContent) DailyChallenges(context.Context) []entities.DailyChallenge { return f.daily }
func (f fakeContent) Tips(context.Context) []entities.Tip                       { return f.tips }

func TestContentService(t *testing.T) {
	sampler := questionsource.NewSampler(rand.New(rand.NewSource(1)), 10, 3)
	svc := NewContentService(fakeContent{
		daily: []entities.DailyChallenge{{ID: "a"}, {ID: "b"}},
		tips:  []entities.Tip{{ID: "t"}},
	}, sampler)
	ctx := context.Background()

	day := time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)
	first, ok := svc.DailyChallenge(ctx, day)
	require.True(t, ok)
	later, _ := svc.DailyChallenge(ctx, day.Add(10*time.Hour))
	next, _ := svc.DailyChallenge(ctx, day.Add(24*time.Hour))
	assert.Equal(t, first, later)
	assert.NotEqual(t, first, next)

	assert.Equal(t, "t", svc.RandomTip(ctx).ID)

	empty := NewContentService(fakeContent{}, sampler)
	_, ok = empty.DailyChallenge(ctx, day)
	assert.False(t, ok)
	assert.Equal(t, questionsource.DefaultTip(), empty.RandomTip(ctx))
}

func TestContentService_Challenges(t *testing.T) {
	sampler := questionsource.NewSampler(rand.New(rand.NewSource(1)), 10, 3)
	daily := []entities.DailyChallenge{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	svc := NewContentService(fakeContent{daily: daily}, sampler)
	ctx := context.Background()

	assert.Equal(t, daily, svc.Challenges(ctx))

	ch, ok := svc.Challenge(ctx, "b")
	require.True(t, ok)
	assert.Equal(t, "b", ch.ID)
	_, ok = svc.Challenge(ctx, "zz")
	assert.False(t, ok)

	for i := 0; i < 10; i++ {
		ch, ok = svc.RandomChallenge(ctx)
		require.True(t, ok)
		assert.Contains(t, daily, ch)
	}

	_, ok = NewContentService(fakeContent{}, sampler).RandomChallenge(ctx)
	assert.False(t, ok)
}
