package telegram

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/daily-challenge-bot/internal/domain/entities"
	"github.com/aliskhannn/daily-challenge-bot/internal/engine"
	"github.com/aliskhannn/daily-challenge-bot/internal/service"
	"github.com/aliskhannn/daily-challenge-bot/internal/storage"
)

func TestCorrectAnswerText(t *testing.T) {
	testCases := []struct {
		name string
		q    entities.Question
		want string
	}{
		{"true", entities.NewTrueFalse("q", true), "True"},
		{"false", entities.NewTrueFalse("q", false), "False"},
		{"single", entities.NewSingleChoice("q", []string{"a", "b"}, "b"), "b"},
		{"multi", entities.NewMultiChoice("q", []string{"a", "b", "c"}, []string{"a", "c"}), "a, c"},
		{"matching", entities.NewMatching("q", []entities.Pair{{Left: "x", Right: "1"}, {Left: "y", Right: "2"}}), "x → 1; y → 2"},
		{"unknown", entities.Question{Format: "essay"}, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, correctAnswerText(tc.q))
		})
	}
}

func TestRenderFeedback_EscapesHTML(t *testing.T) {
	q := entities.NewSingleChoice("q", []string{"<T>", "T?"}, "<T>")

	assert.Equal(t, "✅ <b>Correct!</b>", renderFeedback(storage.Feedback{Question: q, Correct: true}))

	text := renderFeedback(storage.Feedback{Question: q})
	assert.Contains(t, text, "&lt;T&gt;")
	assert.NotContains(t, text, "<T>")
}

func TestRenderResult(t *testing.T) {
	missed := entities.NewTrueFalse("Swift is garbage collected", false)
	missed.Explanation = "Swift uses ARC & reference counting."

	res := engine.SessionResult{Score: 1, Total: 2, Missed: []entities.Question{missed}}
	run := storage.Run{Format: entities.FormatTrueFalse, Category: entities.CategorySwift}

	text := renderResult(res, run)
	assert.Contains(t, text, "1 / 2")
	assert.Contains(t, text, "(50%)")
	assert.Contains(t, text, "Swift is garbage collected")
	assert.Contains(t, text, "ARC &amp; reference counting")
	assert.Contains(t, text, "✔️ False")

	perfect := renderResult(engine.SessionResult{Score: 2, Total: 2}, run)
	assert.Contains(t, perfect, "No mistakes")
}

func TestRenderResult_StaysWithinLimit(t *testing.T) {
	var missed []entities.Question
	for i := 0; i < 40; i++ {
		q := entities.NewTrueFalse(strings.Repeat("long prompt ", 20), true)
		q.Explanation = strings.Repeat("because ", 30)
		missed = append(missed, q)
	}

	text := renderResult(engine.SessionResult{Total: 40, Missed: missed}, storage.Run{Format: entities.FormatTrueFalse})
	assert.LessOrEqual(t, len([]rune(text)), maxMessageLen+40)
	assert.Contains(t, text, "more.")
}

func TestRenderFailed(t *testing.T) {
	groups := []service.FailedGroup{
		{Format: entities.FormatTrueFalse, Questions: []entities.Question{entities.NewTrueFalse("a", true), entities.NewTrueFalse("b", true)}},
		{Format: entities.FormatMatching, Questions: []entities.Question{entities.NewMatching("m", []entities.Pair{{Left: "x", Right: "y"}})}},
	}

	text := renderFailed(groups)
	assert.Contains(t, text, "True or False</b> (2)")
	assert.Contains(t, text, "Pair Matching</b> (1)")
	assert.Less(t, strings.Index(text, "True or False"), strings.Index(text, "Pair Matching"))
	assert.Contains(t, text, "x → y")
}

func TestRenderChallengeAndTip(t *testing.T) {
	ch := entities.DailyChallenge{
		ID:           "1",
		Difficulty:   "Easy",
		Question:     "Reverse a list",
		QuestionCode: "fun <T> reverse(xs: List<T>)",
		AnswerCode:   "xs.reversed()",
	}

	daily := renderChallenge(headerDaily, ch, false)
	assert.Contains(t, daily, "Daily challenge")
	assert.Contains(t, daily, "Easy")
	assert.Contains(t, daily, "fun &lt;T&gt; reverse")
	assert.NotContains(t, daily, "xs.reversed()")
	assert.NotContains(t, daily, "Solution")

	solved := renderChallenge(headerChallenge, ch, true)
	assert.Contains(t, solved, "<pre><code>xs.reversed()</code></pre>")

	// Without an id no button can reveal it, so it is hidden behind a spoiler.
	ch.ID = ""
	spoiler := renderChallenge(headerRandom, ch, false)
	assert.Contains(t, spoiler, "<tg-spoiler>xs.reversed()</tg-spoiler>")

	tip := renderTip(entities.Tip{Category: "Kotlin", Tip: "Use val by default"})
	assert.Contains(t, tip, "Kotlin")
	assert.Contains(t, tip, "Use val by default")
}

func TestChallengeKeyboards(t *testing.T) {
	ch := entities.DailyChallenge{ID: "7", Question: "q", AnswerCode: "a"}

	kb := buildChallengeKeyboard(ch, false)
	require.Len(t, kb.InlineKeyboard, 2)
	assert.Equal(t, "chl:7:sol", *kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "chlp:0", *kb.InlineKeyboard[1][0].CallbackData)

	assert.Len(t, buildChallengeKeyboard(ch, true).InlineKeyboard, 1)

	challenges := make([]entities.DailyChallenge, 12)
	for i := range challenges {
		challenges[i] = entities.DailyChallenge{ID: strconv.Itoa(i), Question: "q"}
	}
	assert.Equal(t, 3, pageCount(len(challenges)))
	assert.Equal(t, 1, pageCount(0))

	first := buildChallengeListKeyboard(challenges, 0)
	require.Len(t, first.InlineKeyboard, challengesPageSize+1)
	assert.Equal(t, "chl:0", *first.InlineKeyboard[0][0].CallbackData)
	nav := first.InlineKeyboard[challengesPageSize]
	require.Len(t, nav, 2)
	assert.Equal(t, "1 / 3", nav[0].Text)
	assert.Equal(t, "chlp:1", *nav[1].CallbackData)

	last := buildChallengeListKeyboard(challenges, 2)
	require.Len(t, last.InlineKeyboard, 3)
	assert.Equal(t, "chl:10", *last.InlineKeyboard[0][0].CallbackData)
	nav = last.InlineKeyboard[2]
	require.Len(t, nav, 2)
	assert.Equal(t, "chlp:1", *nav[0].CallbackData)
	assert.Equal(t, "3 / 3", nav[1].Text)
}

func TestOptionLabel(t *testing.T) {
	assert.Equal(t, "A", optionLabel(0))
	assert.Equal(t, "Z", optionLabel(25))
	assert.Equal(t, "AA", optionLabel(26))
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "héllo", truncateRunes("héllo", 5))
	assert.Equal(t, "hé…", truncateRunes("héllo", 3))
}
