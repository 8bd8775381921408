package storage

import (
	"errors"
	"maps"
	"sync"
	"time"

	"github.com/aliskhannn/daily-challenge-bot/internal/domain/entities"
	"github.com/aliskhannn/daily-challenge-bot/internal/engine"
)

var ErrRunNotFound = errors.New("run not found")

type RunStatus string

const (
	RunReady    RunStatus = "ready"
	RunComplete RunStatus = "complete"
)

// shortIDLen is the run id prefix carried in callback data.
const shortIDLen = 8

// Feedback describes the answer given to the previous question.
type Feedback struct {
	Question entities.Question
	Correct  bool
}

// Run is one user's play-through of a question set.
type Run struct {
	ID         string
	UserID     int64
	Format     entities.Format
	Category   entities.Category
	Status     RunStatus
	Controller *engine.Controller
	Session    engine.SessionState
	Item       engine.MatchItemState // current matching item, matching runs only
	Pending    map[int]struct{}      // toggled option indexes of the current multi choice question
	Last       *Feedback
	Outcome    engine.Outcome // outcome of the latest matching selection
	MessageID  int
	StartedAt  time.Time
}

// ShortID is the prefix of the run id used to detect stale buttons.
func (r Run) ShortID() string {
	if len(r.ID) <= shortIDLen {
		return r.ID
	}
	return r.ID[:shortIDLen]
}

// IsPending reports whether option i is toggled on.
func (r Run) IsPending(i int) bool {
	_, ok := r.Pending[i]
	return ok
}

func (r Run) clone() Run {
	r.Pending = maps.Clone(r.Pending)
	return r
}

// RunStorage keeps the active run of each user in memory.
type RunStorage struct {
	mu   sync.Mutex
	runs map[int64]Run
}

func NewRunStorage() *RunStorage {
	return &RunStorage{
		runs: make(map[int64]Run),
	}
}

// Store replaces the user's run.
func (s *RunStorage) Store(run Run) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.UserID] = run.clone()
}

// Get returns a copy of the user's run.
func (s *RunStorage) Get(userID int64) (Run, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	run, ok := s.runs[userID]
	if !ok {
		return Run{}, false
	}
	return run.clone(), true
}

// Update applies fn to a copy of the user's run and stores the result
// unless fn fails. The user's run is locked for the duration of fn.
func (s *RunStorage) Update(userID int64, fn func(run *Run) error) (Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, ok := s.runs[userID]
	if !ok {
		return Run{}, ErrRunNotFound
	}

	next := run.clone()
	if err := fn(&next); err != nil {
		return run.clone(), err
	}
	s.runs[userID] = next
	return next.clone(), nil
}

// Delete removes the user's run.
func (s *RunStorage) Delete(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.runs, userID)
}
