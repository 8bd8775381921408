package questionsource

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/aliskhannn/daily-challenge-bot/internal/domain/entities"
)

const (
	dailyChallengesFile = "daily_challenges.json"
	programmingTipsFile = "programming_tips.json"
)

var bankFiles = map[entities.Format]string{
	entities.FormatTrueFalse:    "true_or_false_challenges",
	entities.FormatSingleChoice: "multiple_choice_challenges",
	entities.FormatMultiChoice:  "multiple_select_challenges",
	entities.FormatMatching:     "matching_challenges",
}

// BankFile returns the file name of the bank for format and category.
func BankFile(format entities.Format, category entities.Category) (string, error) {
	base, ok := bankFiles[format]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return base + "_" + category.Slug() + ".json", nil
}

// evicter is implemented by loaders that keep copies of loaded files.
type evicter interface {
	Evict(ctx context.Context, name string)
}

// Source reads question banks, daily challenges and tips through a Loader.
type Source struct {
	loader   Loader
	validate *validator.Validate
	logger   *zap.Logger
}

func New(loader Loader, logger *zap.Logger) *Source {
	return &Source{
		loader:   loader,
		validate: newValidator(),
		logger:   logger,
	}
}

// Fetch returns every question of the bank for format and category.
func (s *Source) Fetch(ctx context.Context, format entities.Format, category entities.Category) ([]entities.Question, error) {
	name, err := BankFile(format, category)
	if err != nil {
		return nil, err
	}

	raw, err := s.loader.Load(ctx, name)
	if err != nil {
		return nil, err
	}

	questions, err := decode(s.validate, format, raw)
	if err != nil {
		s.logger.Error("bank rejected", zap.String("file", name), zap.Error(err))
		s.evict(ctx, name)
		return nil, err
	}

	s.logger.Debug("bank loaded", zap.String("file", name), zap.Int("questions", len(questions)))
	return questions, nil
}

var defaultDailyChallenges = []entities.DailyChallenge{
	{
		ID:         "1",
		Difficulty: "Easy",
		Question: "You want to show a FloatingActionButton (FAB) only after scrolling past the first few items. " +
			"You've got access to scroll state, now you need to connect that to visibility. How would you do it?",
		QuestionCode: "val listState = rememberLazyListState()\n\n" +
			"LazyColumn(state = listState) {\n  items(100) { Text(\"Item $it\") }\n}\n\n" +
			"// Show a FAB only when the first visible index > 4",
		AnswerCode: "val listState = rememberLazyListState()\n\n" +
			"val showFab by remember {\n    derivedStateOf {\n        listState.firstVisibleItemIndex > 2\n    }\n}\n\n" +
			"AnimatedVisibility(\n    visible = showFab,\n    enter = fadeIn() + slideInVertically { it },\n" +
			"    exit = fadeOut() + slideOutVertically { it }\n) {\n" +
			"    FloatingActionButton(onClick = { /* Action */ }) {\n        // FAB content\n    }\n}",
	},
}

var (
	fallbackTip = entities.Tip{
		ID:       "fallback",
		Category: "Programming Knowledge",
		Tip:      "Write clean, maintainable code. Future you will thank present you!",
	}
	defaultTip = entities.Tip{
		ID:       "default",
		Category: "Best Practices",
		Tip:      "Keep learning and coding every day!",
	}
)

// DefaultTip is shown when no tip can be picked.
func DefaultTip() entities.Tip { return defaultTip }

// DailyChallenges returns the published daily challenges, or the built-in
// list when they cannot be loaded.
func (s *Source) DailyChallenges(ctx context.Context) []entities.DailyChallenge {
	var challenges []entities.DailyChallenge
	if err := s.loadJSON(ctx, dailyChallengesFile, &challenges); err != nil || len(challenges) == 0 {
		return defaultDailyChallenges
	}
	return challenges
}

// Tips returns the published programming tips, or a single fallback tip.
func (s *Source) Tips(ctx context.Context) []entities.Tip {
	var tips []entities.Tip
	if err := s.loadJSON(ctx, programmingTipsFile, &tips); err != nil {
		return []entities.Tip{fallbackTip}
	}
	return tips
}

func (s *Source) loadJSON(ctx context.Context, name string, dst any) error {
	raw, err := s.loader.Load(ctx, name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.logger.Warn("malformed file", zap.String("file", name), zap.Error(err))
		s.evict(ctx, name)
		return fmt.Errorf("%w: %v", ErrParse, err)
	}
	return nil
}

func (s *Source) evict(ctx context.Context, name string) {
	if e, ok := s.loader.(evicter); ok {
		e.Evict(ctx, name)
	}
}
