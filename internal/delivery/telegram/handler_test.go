package telegram

import (
	"context"
	"slices"
	"strconv"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/daily-challenge-bot/internal/domain/entities"
	"github.com/aliskhannn/daily-challenge-bot/internal/engine"
	"github.com/aliskhannn/daily-challenge-bot/internal/service"
	"github.com/aliskhannn/daily-challenge-bot/internal/storage"
)

const (
	testUserID = int64(7)
	testChatID = int64(70)
)

type fakeBot struct {
	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	lastID   int
	updates  chan tgbotapi.Update
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, c)
	b.lastID++
	return tgbotapi.Message{MessageID: b.lastID}, nil
}

func (b *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (b *fakeBot) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return b.updates
}

func (b *fakeBot) StopReceivingUpdates() {}

func (b *fakeBot) lastSent() tgbotapi.Chattable {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.sent) == 0 {
		return nil
	}
	return b.sent[len(b.sent)-1]
}

func (b *fakeBot) lastNotice(t *testing.T) string {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()
	require.NotEmpty(t, b.requests)
	cb, ok := b.requests[len(b.requests)-1].(tgbotapi.CallbackConfig)
	require.True(t, ok)
	return cb.Text
}

type fakeProfile struct {
	ensured  []int64
	category entities.Category
	groups   []service.FailedGroup
	cleared  bool
}

func (f *fakeProfile) EnsureUser(_ context.Context, userID, _ int64, _, _ string) error {
	f.ensured = append(f.ensured, userID)
	return nil
}

func (f *fakeProfile) Category(context.Context, int64) (entities.Category, error) {
	return f.category, nil
}

func (f *fakeProfile) SetCategory(_ context.Context, _ int64, c entities.Category) error {
	f.category = c
	return nil
}

func (f *fakeProfile) FailedItems(context.Context, int64) ([]service.FailedGroup, error) {
	return f.groups, nil
}

func (f *fakeProfile) ClearFailedItems(context.Context, int64) (int64, error) {
	f.cleared = true
	return int64(len(f.groups)), nil
}

func (f *fakeProfile) GetSettings(_ context.Context, userID int64) (*entities.UserSettings, error) {
	s := entities.NewUserSettings(userID)
	s.Category = f.category
	return s, nil
}

type bankSource map[entities.Format][]entities.Question

func (b bankSource) Fetch(_ context.Context, format entities.Format, _ entities.Category) ([]entities.Question, error) {
	return b[format], nil
}

type keepOrder struct{}

func (keepOrder) Sample(_ entities.Format, qs []entities.Question) []entities.Question { return qs }

type nopRecorders struct{}

func (nopRecorders) Recorder(int64) engine.FailedItemRecorder {
	return engine.RecorderFunc(func(entities.FailedItem) {})
}

type fakeContent struct {
	challenges []entities.DailyChallenge
}

func (f fakeContent) DailyChallenge(context.Context, time.Time) (entities.DailyChallenge, bool) {
	if len(f.challenges) == 0 {
		return entities.DailyChallenge{}, false
	}
	return f.challenges[0], true
}

func (f fakeContent) Challenges(context.Context) []entities.DailyChallenge {
	return f.challenges
}

func (f fakeContent) Challenge(_ context.Context, id string) (entities.DailyChallenge, bool) {
	for _, ch := range f.challenges {
		if ch.ID == id {
			return ch, true
		}
	}
	return entities.DailyChallenge{}, false
}

func (f fakeContent) RandomChallenge(context.Context) (entities.DailyChallenge, bool) {
	if len(f.challenges) == 0 {
		return entities.DailyChallenge{}, false
	}
	return f.challenges[len(f.challenges)-1], true
}

func (fakeContent) RandomTip(context.Context) entities.Tip {
	return entities.Tip{Tip: "Prefer val"}
}

type testEnv struct {
	bot        *fakeBot
	profile    *fakeProfile
	challenges *service.ChallengeService
	handler    *Handler
}

func newTestEnv() *testEnv {
	bank := bankSource{
		entities.FormatTrueFalse: {
			entities.NewTrueFalse("Kotlin has null safety", true),
			entities.NewTrueFalse("Swift is garbage collected", false),
		},
		entities.FormatMultiChoice: {
			entities.NewMultiChoice("Scope functions", []string{"let", "map", "run"}, []string{"let", "run"}),
		},
		entities.FormatMatching: {
			entities.NewMatching("Match", []entities.Pair{{Left: "a", Right: "1"}, {Left: "b", Right: "2"}}),
		},
	}

	bot := &fakeBot{}
	profile := &fakeProfile{category: entities.CategoryKotlin}
	challenges := service.NewChallengeService(profile, bank, keepOrder{}, nopRecorders{},
		storage.NewRunStorage(), zap.NewNop(), engine.DefaultMatchingFailureThreshold)

	return &testEnv{
		bot:        bot,
		profile:    profile,
		challenges: challenges,
		handler:    NewHandler(bot, zap.NewNop(), profile, challenges, fakeContent{challenges: testChallenges()}),
	}
}

func testChallenges() []entities.DailyChallenge {
	challenges := []entities.DailyChallenge{{
		ID:         "1",
		Question:   "Reverse a list",
		AnswerCode: "xs.reversed()",
	}}
	for i := 2; i <= 7; i++ {
		challenges = append(challenges, entities.DailyChallenge{
			ID:         strconv.Itoa(i),
			Question:   "Challenge " + strconv.Itoa(i),
			AnswerCode: "answer " + strconv.Itoa(i),
		})
	}
	return challenges
}

func (e *testEnv) command(name string) {
	text := "/" + name
	e.handler.handleUpdate(context.Background(), tgbotapi.Update{
		Message: &tgbotapi.Message{
			MessageID: 100,
			From:      &tgbotapi.User{ID: testUserID, FirstName: "Ada"},
			Chat:      &tgbotapi.Chat{ID: testChatID},
			Text:      text,
			Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(text)}},
		},
	})
}

func (e *testEnv) callback(messageID int, data string) {
	e.handler.handleUpdate(context.Background(), tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:      "cb",
			From:    &tgbotapi.User{ID: testUserID},
			Message: &tgbotapi.Message{MessageID: messageID, Chat: &tgbotapi.Chat{ID: testChatID}},
			Data:    data,
		},
	})
}

func TestTrueFalseFlow(t *testing.T) {
	env := newTestEnv()

	env.command("truefalse")
	assert.Equal(t, []int64{testUserID}, env.profile.ensured)

	msg, ok := env.bot.lastSent().(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Contains(t, msg.Text, "Kotlin has null safety")
	assert.Contains(t, msg.Text, "Question 1 of 2")

	run, ok := env.challenges.Current(testUserID)
	require.True(t, ok)
	assert.Equal(t, 1, run.MessageID)

	kb, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, kb.InlineKeyboard[0], 2)
	first := *kb.InlineKeyboard[0][0].CallbackData
	assert.Equal(t, "tf:"+run.ShortID()+":0:1", first)

	env.callback(1, first)
	edit, ok := env.bot.lastSent().(tgbotapi.EditMessageTextConfig)
	require.True(t, ok)
	assert.Equal(t, 1, edit.MessageID)
	assert.Contains(t, edit.Text, "Correct!")
	assert.Contains(t, edit.Text, "Swift is garbage collected")
	assert.Empty(t, env.bot.lastNotice(t))

	// The same button pressed again.
	sentBefore := len(env.bot.sent)
	env.callback(1, first)
	assert.Equal(t, msgStaleAction, env.bot.lastNotice(t))
	assert.Len(t, env.bot.sent, sentBefore)

	env.callback(1, buildTrueFalseCallback(service.Ref{RunID: run.ShortID(), Index: 1}, true))
	edit, ok = env.bot.lastSent().(tgbotapi.EditMessageTextConfig)
	require.True(t, ok)
	assert.Contains(t, edit.Text, "Incorrect.")
	assert.Contains(t, edit.Text, "Challenge complete")
	assert.Contains(t, edit.Text, "1 / 2")

	require.NotNil(t, edit.ReplyMarkup)
	kb = *edit.ReplyMarkup
	assert.Equal(t, "run:result:"+run.ShortID(), *kb.InlineKeyboard[0][0].CallbackData)

	env.callback(1, buildRunCallback(runResult, run.ShortID()))
	edit, ok = env.bot.lastSent().(tgbotapi.EditMessageTextConfig)
	require.True(t, ok)
	assert.Contains(t, edit.Text, "(50%)")
	assert.Contains(t, edit.Text, "Swift is garbage collected")

	env.callback(1, buildRunCallback(runRestart, run.ShortID()))
	edit, ok = env.bot.lastSent().(tgbotapi.EditMessageTextConfig)
	require.True(t, ok)
	assert.Contains(t, edit.Text, "Question 1 of 2")
	assert.NotContains(t, edit.Text, "Correct!")
}

func TestResultWhileInProgress(t *testing.T) {
	env := newTestEnv()

	env.callback(1, buildRunCallback(runResult, "1a2b3c4d"))
	assert.Equal(t, msgNoActiveRun, env.bot.lastNotice(t))

	env.command("truefalse")
	run, ok := env.challenges.Current(testUserID)
	require.True(t, ok)
	env.callback(1, buildRunCallback(runResult, run.ShortID()))
	assert.Equal(t, msgRunInProgress, env.bot.lastNotice(t))
}

func TestRunButtonsOfOlderRun(t *testing.T) {
	env := newTestEnv()

	env.command("truefalse")
	old, ok := env.challenges.Current(testUserID)
	require.True(t, ok)

	env.command("multi")
	run, ok := env.challenges.Current(testUserID)
	require.True(t, ok)
	env.callback(run.MessageID, buildToggleCallback(service.RefOf(run), 0))
	assert.Empty(t, env.bot.lastNotice(t))

	sentBefore := len(env.bot.sent)
	env.callback(old.MessageID, buildRunCallback(runRestart, old.ShortID()))
	assert.Equal(t, msgStaleAction, env.bot.lastNotice(t))
	env.callback(old.MessageID, buildRunCallback(runResult, old.ShortID()))
	assert.Equal(t, msgStaleAction, env.bot.lastNotice(t))
	assert.Len(t, env.bot.sent, sentBefore)

	current, ok := env.challenges.Current(testUserID)
	require.True(t, ok)
	assert.Equal(t, run.ID, current.ID)
	assert.Equal(t, entities.FormatMultiChoice, current.Format)
	assert.True(t, current.IsPending(0))
	assert.Zero(t, current.Session.CurrentIndex())
}

func TestMatchingFlow(t *testing.T) {
	env := newTestEnv()

	env.callback(5, buildPlayCallback(entities.FormatMatching))
	edit, ok := env.bot.lastSent().(tgbotapi.EditMessageTextConfig)
	require.True(t, ok)
	assert.Equal(t, 5, edit.MessageID)
	assert.Contains(t, edit.Text, "Matched: 0 of 2")

	run, ok := env.challenges.Current(testUserID)
	require.True(t, ok)
	assert.Equal(t, 5, run.MessageID)

	ref := service.RefOf(run)
	a := slices.Index(run.Item.Left(), "a")
	one := slices.Index(run.Item.Right(), "1")
	two := slices.Index(run.Item.Right(), "2")

	env.callback(5, buildMatchCallback(ref, sideLeft, a))
	assert.Empty(t, env.bot.lastNotice(t))

	env.callback(5, buildMatchCallback(ref, sideRight, two))
	assert.Equal(t, msgMismatched, env.bot.lastNotice(t))

	env.callback(5, buildMatchCallback(ref, sideLeft, a))
	env.callback(5, buildMatchCallback(ref, sideRight, one))
	assert.Equal(t, msgMatched, env.bot.lastNotice(t))

	edit, ok = env.bot.lastSent().(tgbotapi.EditMessageTextConfig)
	require.True(t, ok)
	assert.Contains(t, edit.Text, "Matched: 1 of 2")
	assert.Contains(t, edit.Text, "Mistakes: 1")

	env.callback(5, buildMatchCallback(ref, sideRight, one))
	assert.Equal(t, msgAlreadyMatched, env.bot.lastNotice(t))

	env.callback(5, "mt:"+ref.RunID+":0:X:0")
	assert.Equal(t, msgInvalidOption, env.bot.lastNotice(t))
}

func TestCategoryFlow(t *testing.T) {
	env := newTestEnv()

	env.command("category")
	msg, ok := env.bot.lastSent().(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Contains(t, msg.Text, "Kotlin")

	env.callback(1, buildCategoryCallback(entities.CategoryFlutter))
	assert.Equal(t, entities.CategoryFlutter, env.profile.category)
	assert.Equal(t, "Category: Flutter", env.bot.lastNotice(t))

	env.callback(1, "cat:COBOL")
	assert.Equal(t, entities.CategoryFlutter, env.profile.category)
	assert.Equal(t, msgCategoryUnchanged, env.bot.lastNotice(t))
}

func TestFailedAndClear(t *testing.T) {
	env := newTestEnv()

	env.command("failed")
	msg := env.bot.lastSent().(tgbotapi.MessageConfig)
	assert.Equal(t, msgNoFailedItems, msg.Text)

	env.profile.groups = []service.FailedGroup{{
		Format:    entities.FormatTrueFalse,
		Questions: []entities.Question{entities.NewTrueFalse("Kotlin has null safety", true)},
	}}

	env.command("failed")
	msg = env.bot.lastSent().(tgbotapi.MessageConfig)
	assert.Contains(t, msg.Text, "Kotlin has null safety")

	env.command("clear")
	msg = env.bot.lastSent().(tgbotapi.MessageConfig)
	assert.Equal(t, msgClearConfirm, msg.Text)

	env.callback(3, buildClearCallback(clearCancel))
	assert.False(t, env.profile.cleared)

	env.callback(3, buildClearCallback(clearConfirm))
	assert.True(t, env.profile.cleared)
	edit := env.bot.lastSent().(tgbotapi.EditMessageTextConfig)
	assert.Contains(t, edit.Text, "Removed 1")
}

func TestContentCommands(t *testing.T) {
	env := newTestEnv()

	env.command("daily")
	msg := env.bot.lastSent().(tgbotapi.MessageConfig)
	assert.Contains(t, msg.Text, "Reverse a list")
	assert.NotContains(t, msg.Text, "xs.reversed()")
	kb, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	solution := *kb.InlineKeyboard[0][0].CallbackData
	assert.Equal(t, buildSolutionCallback("1"), solution)

	env.callback(9, solution)
	edit := env.bot.lastSent().(tgbotapi.EditMessageTextConfig)
	assert.Equal(t, 9, edit.MessageID)
	assert.Contains(t, edit.Text, "<pre><code>xs.reversed()</code></pre>")
	require.NotNil(t, edit.ReplyMarkup)
	assert.Len(t, edit.ReplyMarkup.InlineKeyboard, 1)

	env.command("random")
	msg = env.bot.lastSent().(tgbotapi.MessageConfig)
	assert.Contains(t, msg.Text, "Random challenge")
	assert.Contains(t, msg.Text, "Challenge 7")
	assert.NotContains(t, msg.Text, "answer 7")

	env.command("tip")
	assert.Contains(t, env.bot.lastSent().(tgbotapi.MessageConfig).Text, "Prefer val")

	env.command("nope")
	assert.Equal(t, msgUnknownCommand, env.bot.lastSent().(tgbotapi.MessageConfig).Text)
}

func TestChallengeList(t *testing.T) {
	env := newTestEnv()

	env.command("challenges")
	msg := env.bot.lastSent().(tgbotapi.MessageConfig)
	assert.Contains(t, msg.Text, "page 1 of 2")
	kb, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, kb.InlineKeyboard, challengesPageSize+1)
	assert.Equal(t, buildChallengeCallback("1"), *kb.InlineKeyboard[0][0].CallbackData)

	env.callback(4, buildChallengePageCallback(1))
	edit := env.bot.lastSent().(tgbotapi.EditMessageTextConfig)
	assert.Equal(t, 4, edit.MessageID)
	assert.Contains(t, edit.Text, "page 2 of 2")
	require.NotNil(t, edit.ReplyMarkup)
	assert.Equal(t, buildChallengeCallback("6"), *edit.ReplyMarkup.InlineKeyboard[0][0].CallbackData)

	// Pages past the end show the last one.
	env.callback(4, buildChallengePageCallback(9))
	assert.Contains(t, env.bot.lastSent().(tgbotapi.EditMessageTextConfig).Text, "page 2 of 2")

	env.callback(4, buildChallengeCallback("6"))
	edit = env.bot.lastSent().(tgbotapi.EditMessageTextConfig)
	assert.Contains(t, edit.Text, "Challenge 6")
	assert.NotContains(t, edit.Text, "answer 6")
	assert.Empty(t, env.bot.lastNotice(t))

	env.callback(4, buildChallengeCallback("99"))
	assert.Equal(t, msgChallengeGone, env.bot.lastNotice(t))

	env.callback(4, "chlp:x")
	assert.Equal(t, msgInvalidOption, env.bot.lastNotice(t))
}

func TestChallengeCommands_Empty(t *testing.T) {
	env := newTestEnv()
	env.handler.content = fakeContent{}

	env.command("daily")
	assert.Equal(t, msgNoDailyChallenge, env.bot.lastSent().(tgbotapi.MessageConfig).Text)
	env.command("random")
	assert.Equal(t, msgNoChallenges, env.bot.lastSent().(tgbotapi.MessageConfig).Text)
	env.command("challenges")
	assert.Equal(t, msgNoChallenges, env.bot.lastSent().(tgbotapi.MessageConfig).Text)
}

func TestRun_StopsOnClosedUpdates(t *testing.T) {
	env := newTestEnv()
	env.bot.updates = make(chan tgbotapi.Update)
	close(env.bot.updates)

	assert.NoError(t, env.handler.Run(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	env.bot.updates = make(chan tgbotapi.Update)
	assert.ErrorIs(t, env.handler.Run(ctx), context.Canceled)
}
