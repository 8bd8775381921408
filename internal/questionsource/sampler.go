package questionsource

import (
	"math/rand"
	"slices"
	"sync"

	"github.com/aliskhannn/daily-challenge-bot/internal/domain/entities"
)

// Sampler picks a random subset of a bank for one session.
type Sampler struct {
	mu           sync.Mutex
	rng          *rand.Rand
	size         int
	matchingSize int
}

func NewSampler(rng *rand.Rand, size, matchingSize int) *Sampler {
	return &Sampler{rng: rng, size: size, matchingSize: matchingSize}
}

// Sample shuffles a copy of questions and keeps the session size for format.
func (s *Sampler) Sample(format entities.Format, questions []entities.Question) []entities.Question {
	n := s.size
	if format == entities.FormatMatching {
		n = s.matchingSize
	}

	out := slices.Clone(questions)

	s.mu.Lock()
	s.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	s.mu.Unlock()

	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Pick returns a random element of items.
func Pick[T any](s *Sampler, items []T) (T, bool) {
	var zero T
	if len(items) == 0 {
		return zero, false
	}
	s.mu.Lock()
	i := s.rng.Intn(len(items))
	s.mu.Unlock()
	return items[i], true
}
