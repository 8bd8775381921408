package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/daily-challenge-bot/internal/domain/entities"
	"github.com/aliskhannn/daily-challenge-bot/internal/engine"
	"github.com/aliskhannn/daily-challenge-bot/internal/repository"
	"github.com/aliskhannn/daily-challenge-bot/internal/storage"
)

var (
	ErrNoQuestionsAvailable = errors.New("no questions available")
	ErrNoActiveRun          = errors.New("no active run")
	ErrStaleAction          = errors.New("action refers to a question that is no longer shown")
	ErrUnknownFormat        = errors.New("unknown format")
	ErrInvalidOption        = errors.New("invalid option")
	ErrNothingSelected      = errors.New("no option selected")
	ErrRunInProgress        = errors.New("run is not complete")
)

// Sampler picks the questions of one session from a bank.
type Sampler interface {
	Sample(format entities.Format, questions []entities.Question) []entities.Question
}

// Ref identifies the question an action was taken on.
type Ref struct {
	RunID string // short run id
	Index int    // question index
}

// RefOf returns the reference of the question currently shown by run.
func RefOf(run storage.Run) Ref {
	return Ref{RunID: run.ShortID(), Index: run.Session.CurrentIndex()}
}

// ChallengeService runs quiz sessions for users.
type ChallengeService struct {
	settings  SettingsReader
	source    QuestionSource
	sampler   Sampler
	recorders RecorderFactory
	runs      *storage.RunStorage
	logger    *zap.Logger
	threshold int
}

func NewChallengeService(
	settings SettingsReader,
	source QuestionSource,
	sampler Sampler,
	recorders RecorderFactory,
	runs *storage.RunStorage,
	logger *zap.Logger,
	matchingFailureThreshold int,
) *ChallengeService {
	return &ChallengeService{
		settings:  settings,
		source:    source,
		sampler:   sampler,
		recorders: recorders,
		runs:      runs,
		logger:    logger,
		threshold: matchingFailureThreshold,
	}
}

// Start fetches questions in the user's category and begins a new run,
// replacing any run the user had.
func (s *ChallengeService) Start(ctx context.Context, userID int64, format entities.Format) (storage.Run, error) {
	if !format.Valid() {
		return storage.Run{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	category, err := s.category(ctx, userID)
	if err != nil {
		return storage.Run{}, err
	}

	bank, err := s.source.Fetch(ctx, format, category)
	if err != nil {
		s.logger.Warn("fetch questions",
			zap.Int64("user_id", userID),
			zap.String("format", string(format)),
			zap.String("category", string(category)),
			zap.Error(err),
		)
		return storage.Run{}, fmt.Errorf("%w: %w", ErrNoQuestionsAvailable, err)
	}

	questions := s.sampler.Sample(format, bank)
	if len(questions) == 0 {
		return storage.Run{}, ErrNoQuestionsAvailable
	}

	ctrl := engine.NewController(
		engine.WithRecorder(s.recorders.Recorder(userID)),
		engine.WithLogger(s.logger.With(zap.Int64("user_id", userID))),
		engine.WithRand(rand.New(rand.NewSource(time.Now().UnixNano()))),
		engine.WithMatchingFailureThreshold(s.threshold),
	)

	session, err := ctrl.Start(questions)
	if err != nil {
		return storage.Run{}, fmt.Errorf("%w: %w", ErrNoQuestionsAvailable, err)
	}

	run := storage.Run{
		ID:         uuid.NewString(),
		UserID:     userID,
		Format:     format,
		Category:   category,
		Status:     storage.RunReady,
		Controller: ctrl,
		Session:    session,
		Pending:    map[int]struct{}{},
		StartedAt:  time.Now(),
	}
	if err := s.prepareCurrent(&run); err != nil {
		return storage.Run{}, err
	}

	s.runs.Store(run)

	s.logger.Info("run started",
		zap.Int64("user_id", userID),
		zap.String("run_id", run.ID),
		zap.String("format", string(format)),
		zap.String("category", string(category)),
		zap.Int("questions", session.Total()),
	)

	return run, nil
}

func (s *ChallengeService) category(ctx context.Context, userID int64) (entities.Category, error) {
	settings, err := s.settings.GetSettings(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrSettingsNotFound) {
			return entities.DefaultCategory, nil
		}
		return "", fmt.Errorf("get settings: %w", err)
	}
	return settings.Category, nil
}

// AnswerTrueFalse answers the current true/false question.
func (s *ChallengeService) AnswerTrueFalse(userID int64, ref Ref, value bool) (storage.Run, error) {
	return s.act(userID, ref, func(run *storage.Run) error {
		return s.submit(run, entities.TrueFalseAnswer(value))
	})
}

// AnswerSingle answers the current single choice question with the option at optionIndex.
func (s *ChallengeService) AnswerSingle(userID int64, ref Ref, optionIndex int) (storage.Run, error) {
	return s.act(userID, ref, func(run *storage.Run) error {
		q, _ := run.Session.CurrentQuestion()
		option, ok := q.OptionAt(optionIndex)
		if !ok {
			return ErrInvalidOption
		}
		return s.submit(run, entities.SingleChoiceAnswer(option))
	})
}

// ToggleOption flips the selection of an option of the current multi choice question.
func (s *ChallengeService) ToggleOption(userID int64, ref Ref, optionIndex int) (storage.Run, error) {
	return s.act(userID, ref, func(run *storage.Run) error {
		q, _ := run.Session.CurrentQuestion()
		if q.Format != entities.FormatMultiChoice {
			return fmt.Errorf("%w: toggle on %s question", engine.ErrAnswerFormat, q.Format)
		}
		if _, ok := q.OptionAt(optionIndex); !ok {
			return ErrInvalidOption
		}

		if run.IsPending(optionIndex) {
			delete(run.Pending, optionIndex)
		} else {
			run.Pending[optionIndex] = struct{}{}
		}
		return nil
	})
}

// SubmitMulti answers the current multi choice question with the toggled options.
func (s *ChallengeService) SubmitMulti(userID int64, ref Ref) (storage.Run, error) {
	return s.act(userID, ref, func(run *storage.Run) error {
		if len(run.Pending) == 0 {
			return ErrNothingSelected
		}

		q, _ := run.Session.CurrentQuestion()
		selected := make([]string, 0, len(run.Pending))
		for i, option := range q.Options {
			if run.IsPending(i) {
				selected = append(selected, option)
			}
		}
		return s.submit(run, entities.MultiChoiceAnswer(selected...))
	})
}

// SelectLeft selects a left item of the current matching question.
func (s *ChallengeService) SelectLeft(userID int64, ref Ref, index int) (storage.Run, error) {
	return s.act(userID, ref, func(run *storage.Run) error {
		step, err := run.Controller.SelectLeft(run.Session, run.Item, index)
		if err != nil {
			return err
		}
		return s.applyStep(run, step)
	})
}

// SelectRight selects a right item of the current matching question.
func (s *ChallengeService) SelectRight(userID int64, ref Ref, index int) (storage.Run, error) {
	return s.act(userID, ref, func(run *storage.Run) error {
		step, err := run.Controller.SelectRight(run.Session, run.Item, index)
		if err != nil {
			return err
		}
		return s.applyStep(run, step)
	})
}

// Restart plays the same questions of run runID again from the beginning.
// runID is the short id the restart button was rendered for.
func (s *ChallengeService) Restart(userID int64, runID string) (storage.Run, error) {
	run, err := s.runs.Update(userID, func(run *storage.Run) error {
		if run.ShortID() != runID {
			return ErrStaleAction
		}
		run.Session = run.Controller.Restart(run.Session)
		run.Status = storage.RunReady
		run.Pending = map[int]struct{}{}
		run.Last = nil
		run.Outcome = engine.OutcomeNone
		run.Item = engine.MatchItemState{}
		return s.prepareCurrent(run)
	})
	if errors.Is(err, storage.ErrRunNotFound) {
		return storage.Run{}, ErrNoActiveRun
	}
	if err == nil {
		s.logger.Info("run restarted", zap.Int64("user_id", userID), zap.String("run_id", run.ID))
	}
	return run, err
}

// Result summarizes the user's complete run runID.
func (s *ChallengeService) Result(userID int64, runID string) (engine.SessionResult, storage.Run, error) {
	run, ok := s.runs.Get(userID)
	if !ok {
		return engine.SessionResult{}, storage.Run{}, ErrNoActiveRun
	}
	if run.ShortID() != runID {
		return engine.SessionResult{}, run, ErrStaleAction
	}
	if run.Status != storage.RunComplete {
		return engine.SessionResult{}, run, ErrRunInProgress
	}

	res, err := run.Controller.Aggregate(run.Session)
	if err != nil {
		return engine.SessionResult{}, run, err
	}
	return res, run, nil
}

// Current returns the user's run, if any.
func (s *ChallengeService) Current(userID int64) (storage.Run, bool) {
	return s.runs.Get(userID)
}

// Abandon discards the user's run.
func (s *ChallengeService) Abandon(userID int64) {
	s.runs.Delete(userID)
}

// AttachMessage remembers the message the run is rendered in.
func (s *ChallengeService) AttachMessage(userID int64, runID string, messageID int) {
	_, _ = s.runs.Update(userID, func(run *storage.Run) error {
		if run.ID != runID {
			return ErrStaleAction
		}
		run.MessageID = messageID
		return nil
	})
}

func (s *ChallengeService) act(userID int64, ref Ref, fn func(run *storage.Run) error) (storage.Run, error) {
	run, err := s.runs.Update(userID, func(run *storage.Run) error {
		if run.Status != storage.RunReady || ref.RunID != run.ShortID() || ref.Index != run.Session.CurrentIndex() {
			return ErrStaleAction
		}
		return fn(run)
	})
	if errors.Is(err, storage.ErrRunNotFound) {
		return storage.Run{}, ErrNoActiveRun
	}
	return run, err
}

func (s *ChallengeService) submit(run *storage.Run, answer entities.Answer) error {
	q, _ := run.Session.CurrentQuestion()

	next, err := run.Controller.Submit(run.Session, answer)
	if err != nil {
		return err
	}

	run.Last = &storage.Feedback{Question: q, Correct: next.Score() > run.Session.Score()}
	run.Session = next
	run.Pending = map[int]struct{}{}
	return s.prepareCurrent(run)
}

func (s *ChallengeService) applyStep(run *storage.Run, step engine.MatchStep) error {
	run.Outcome = step.Outcome
	if !step.Advanced {
		run.Item = step.Item
		return nil
	}

	q := step.Item.Question()
	run.Last = &storage.Feedback{Question: q, Correct: step.Session.Score() > run.Session.Score()}
	run.Session = step.Session
	return s.prepareCurrent(run)
}

// prepareCurrent marks complete runs and sets up the matching item of the
// current question.
func (s *ChallengeService) prepareCurrent(run *storage.Run) error {
	if run.Session.IsComplete() {
		run.Status = storage.RunComplete
		run.Item = engine.MatchItemState{}
		s.logger.Info("run complete",
			zap.Int64("user_id", run.UserID),
			zap.String("run_id", run.ID),
			zap.Int("score", run.Session.Score()),
			zap.Int("total", run.Session.Total()),
		)
		return nil
	}

	if run.Format != entities.FormatMatching {
		return nil
	}
	item, err := run.Controller.BeginItem(run.Session)
	if err != nil {
		return err
	}
	run.Item = item
	return nil
}
