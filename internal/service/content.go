package service

import (
	"context"
	"time"

	"github.com/aliskhannn/daily-challenge-bot/internal/domain/entities"
	"github.com/aliskhannn/daily-challenge-bot/internal/questionsource"
)

// ContentService serves daily challenges and programming tips.
type ContentService struct {
	source  ContentSource
	sampler *questionsource.Sampler
}

func NewContentService(source ContentSource, sampler *questionsource.Sampler) *ContentService {
	return &ContentService{source: source, sampler: sampler}
}

// DailyChallenge returns the challenge of the day: the same one for every
// user on a given UTC date.
func (s *ContentService) DailyChallenge(ctx context.Context, now time.Time) (entities.DailyChallenge, bool) {
	challenges := s.source.DailyChallenges(ctx)
	if len(challenges) == 0 {
		return entities.DailyChallenge{}, false
	}
	day := now.UTC().Unix() / int64(24*time.Hour/time.Second)
	return challenges[int(day%int64(len(challenges)))], true
}

// Challenges returns every published coding challenge in file order.
func (s *ContentService) Challenges(ctx context.Context) []entities.DailyChallenge {
	return s.source.DailyChallenges(ctx)
}

// Challenge looks a coding challenge up by id.
func (s *ContentService) Challenge(ctx context.Context, id string) (entities.DailyChallenge, bool) {
	for _, ch := range s.source.DailyChallenges(ctx) {
		if ch.ID == id {
			return ch, true
		}
	}
	return entities.DailyChallenge{}, false
}

// RandomChallenge returns a random coding challenge.
func (s *ContentService) RandomChallenge(ctx context.Context) (entities.DailyChallenge, bool) {
	return questionsource.Pick(s.sampler, s.source.DailyChallenges(ctx))
}

// RandomTip returns a random programming tip.
func (s *ContentService) RandomTip(ctx context.Context) entities.Tip {
	tip, ok := questionsource.Pick(s.sampler, s.source.Tips(ctx))
	if !ok {
		return questionsource.DefaultTip()
	}
	return tip
}
