package engine

import (
	"fmt"
	"math/rand"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/daily-challenge-bot/internal/domain/entities"
)

// DefaultMatchingFailureThreshold is the number of wrong pair attempts after
// which a matching question is logged as failed.
const DefaultMatchingFailureThreshold = 3

// Controller drives sessions: start, submit, restart and the nested
// matching item. It holds no session state itself.
type Controller struct {
	grader     Grader
	aggregator *Aggregator
	recorder   FailedItemRecorder
	logger     *zap.Logger
	rng        *rand.Rand
	threshold  int
}

// Option configures a Controller.
type Option func(*Controller)

func WithGrader(g Grader) Option                { return func(c *Controller) { c.grader = g } }
func WithRecorder(r FailedItemRecorder) Option  { return func(c *Controller) { c.recorder = r } }
func WithLogger(l *zap.Logger) Option           { return func(c *Controller) { c.logger = l } }
func WithRand(r *rand.Rand) Option              { return func(c *Controller) { c.rng = r } }
func WithMatchingFailureThreshold(n int) Option { return func(c *Controller) { c.threshold = n } }

// NewController creates a Controller with the default grader, a no-op
// recorder and a nop logger unless overridden.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		grader:    NewDefaultGrader(),
		recorder:  nopRecorder{},
		logger:    zap.NewNop(),
		threshold: DefaultMatchingFailureThreshold,
	}
	for _, o := range opts {
		o(c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if c.threshold <= 0 {
		c.threshold = DefaultMatchingFailureThreshold
	}
	c.aggregator = NewAggregator(c.grader)
	return c
}

// Start begins a session over questions. The list is copied and stays
// fixed for the session's lifetime.
func (c *Controller) Start(questions []entities.Question) (SessionState, error) {
	if len(questions) == 0 {
		return SessionState{}, ErrEmptySet
	}
	return newSessionState(slices.Clone(questions)), nil
}

// Submit grades answer against the current question and advances by one.
func (c *Controller) Submit(state SessionState, answer entities.Answer) (SessionState, error) {
	q, ok := state.CurrentQuestion()
	if !ok {
		c.logger.Warn("submit on complete session", zap.Int("total", state.Total()))
		return state, ErrSessionComplete
	}
	if answer.Format != q.Format {
		c.logger.Warn("answer format mismatch",
			zap.String("question_format", string(q.Format)),
			zap.String("answer_format", string(answer.Format)),
		)
		return state, fmt.Errorf("%w: question is %s, answer is %s", ErrAnswerFormat, q.Format, answer.Format)
	}

	correct := c.grader.Grade(q, answer)
	next := state.advance(answer, correct)

	// Matching items are logged by attempt count while they are played.
	if !correct && q.Format != entities.FormatMatching {
		c.recordFailed(q)
	}

	return next, nil
}

// Restart returns a fresh session over the same question list.
func (c *Controller) Restart(state SessionState) SessionState {
	return newSessionState(state.questions)
}

// Aggregate builds the result summary of a complete session.
func (c *Controller) Aggregate(state SessionState) (SessionResult, error) {
	return c.aggregator.Aggregate(state)
}

// MatchStep is the outcome of one selection on a matching item.
// When the item completes, Session has already advanced and Advanced is set.
type MatchStep struct {
	Session  SessionState
	Item     MatchItemState
	Outcome  Outcome
	Advanced bool
}

// BeginItem prepares the matching item for the current question.
func (c *Controller) BeginItem(state SessionState) (MatchItemState, error) {
	q, ok := state.CurrentQuestion()
	if !ok {
		return MatchItemState{}, ErrSessionComplete
	}
	return InitItem(q, c.rng)
}

// SelectLeft selects a left item of the current matching question.
func (c *Controller) SelectLeft(state SessionState, item MatchItemState, index int) (MatchStep, error) {
	if err := c.checkMatching(state); err != nil {
		return MatchStep{Session: state, Item: item}, err
	}
	next, outcome, err := item.SelectLeft(index)
	if err != nil {
		c.logger.Warn("invalid left selection", zap.Int("index", index), zap.Error(err))
		return MatchStep{Session: state, Item: item}, err
	}
	return c.afterSelect(state, next, outcome)
}

// SelectRight selects a right item of the current matching question.
func (c *Controller) SelectRight(state SessionState, item MatchItemState, index int) (MatchStep, error) {
	if err := c.checkMatching(state); err != nil {
		return MatchStep{Session: state, Item: item}, err
	}
	next, outcome, err := item.SelectRight(index)
	if err != nil {
		c.logger.Warn("invalid right selection", zap.Int("index", index), zap.Error(err))
		return MatchStep{Session: state, Item: item}, err
	}
	return c.afterSelect(state, next, outcome)
}

func (c *Controller) checkMatching(state SessionState) error {
	q, ok := state.CurrentQuestion()
	if !ok {
		return ErrSessionComplete
	}
	if q.Format != entities.FormatMatching {
		return ErrNotMatching
	}
	return nil
}

func (c *Controller) afterSelect(state SessionState, item MatchItemState, outcome Outcome) (MatchStep, error) {
	step := MatchStep{Session: state, Item: item, Outcome: outcome}

	switch outcome {
	case OutcomeMismatched:
		if item.IncorrectAttempts() == c.threshold {
			c.recordFailed(item.Question())
		}
	case OutcomeMatched:
		if !item.IsComplete() {
			break
		}
		next, err := c.Submit(state, entities.MatchingAnswer(item.IncorrectAttempts()))
		if err != nil {
			return step, err
		}
		step.Session = next
		step.Advanced = true
	}

	return step, nil
}

func (c *Controller) recordFailed(q entities.Question) {
	c.logger.Debug("record failed item", zap.String("format", string(q.Format)))
	c.recorder.RecordFailedItem(entities.NewFailedItem(q))
}
