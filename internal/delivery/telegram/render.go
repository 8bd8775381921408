package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/daily-challenge-bot/internal/domain/entities"
	"github.com/aliskhannn/daily-challenge-bot/internal/engine"
	"github.com/aliskhannn/daily-challenge-bot/internal/service"
	"github.com/aliskhannn/daily-challenge-bot/internal/storage"
)

const (
	maxPromptLen = 1500
	maxOptionLen = 300
)

func formatTitle(f entities.Format) string {
	switch f {
	case entities.FormatTrueFalse:
		return "✅ True or False"
	case entities.FormatSingleChoice:
		return "🔘 Single Choice"
	case entities.FormatMultiChoice:
		return "☑️ Multiple Select"
	case entities.FormatMatching:
		return "🔗 Pair Matching"
	default:
		return string(f)
	}
}

// renderRun renders the run's current screen: the question being asked or
// the completion notice.
func renderRun(run storage.Run) (string, tgbotapi.InlineKeyboardMarkup) {
	if run.Status == storage.RunComplete {
		return renderComplete(run), buildCompleteKeyboard(run.ShortID())
	}
	return renderQuestion(run), buildQuestionKeyboard(run)
}

func renderQuestion(run storage.Run) string {
	q, _ := run.Session.CurrentQuestion()

	var sb strings.Builder
	if run.Last != nil {
		sb.WriteString(renderFeedback(*run.Last))
		sb.WriteString("\n\n")
	}

	fmt.Fprintf(&sb, "<b>%s</b> · %s\n", formatTitle(run.Format), esc(run.Category.Title()))
	fmt.Fprintf(&sb, "Question %d of %d", run.Session.CurrentIndex()+1, run.Session.Total())
	if q.Difficulty != "" {
		fmt.Fprintf(&sb, " · %s", esc(string(q.Difficulty)))
	}
	sb.WriteString("\n\n")
	sb.WriteString("<b>" + esc(truncateRunes(q.Prompt, maxPromptLen)) + "</b>\n")

	switch q.Format {
	case entities.FormatSingleChoice, entities.FormatMultiChoice:
		sb.WriteString("\n")
		for i, option := range q.Options {
			fmt.Fprintf(&sb, "%s. %s\n", optionLabel(i), esc(truncateRunes(option, maxOptionLen)))
		}
		if q.Format == entities.FormatMultiChoice {
			sb.WriteString("\n<i>Select every correct option, then submit.</i>")
		}
	case entities.FormatMatching:
		sb.WriteString("\n<i>Tap an item on the left and its pair on the right.</i>\n")
		fmt.Fprintf(&sb, "Matched: %d of %d", len(run.Item.Matched()), len(q.Pairs))
		if n := run.Item.IncorrectAttempts(); n > 0 {
			fmt.Fprintf(&sb, " · Mistakes: %d", n)
		}
	}

	return sb.String()
}

func renderFeedback(fb storage.Feedback) string {
	if fb.Correct {
		return "✅ <b>Correct!</b>"
	}

	text := "❌ <b>Incorrect.</b>"
	if answer := correctAnswerText(fb.Question); answer != "" {
		text += " Correct answer: " + esc(truncateRunes(answer, maxPromptLen))
	}
	return text
}

// correctAnswerText describes the expected answer of q in one line.
func correctAnswerText(q entities.Question) string {
	switch q.Format {
	case entities.FormatTrueFalse:
		if q.CorrectAnswer {
			return "True"
		}
		return "False"
	case entities.FormatSingleChoice:
		return q.CorrectOption
	case entities.FormatMultiChoice:
		return strings.Join(q.CorrectOptions, ", ")
	case entities.FormatMatching:
		pairs := make([]string, 0, len(q.Pairs))
		for _, p := range q.Pairs {
			pairs = append(pairs, p.Left+" → "+p.Right)
		}
		return strings.Join(pairs, "; ")
	default:
		return ""
	}
}

func renderComplete(run storage.Run) string {
	var sb strings.Builder
	if run.Last != nil {
		sb.WriteString(renderFeedback(*run.Last))
		sb.WriteString("\n\n")
	}
	fmt.Fprintf(&sb, "🏁 <b>Challenge complete!</b>\n\nScore: <b>%d / %d</b>", run.Session.Score(), run.Session.Total())
	return sb.String()
}

// renderResult renders the score, the percentage and the missed questions.
func renderResult(res engine.SessionResult, run storage.Run) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 <b>%s</b> · %s\n\n", formatTitle(run.Format), esc(run.Category.Title()))
	fmt.Fprintf(&sb, "Score: <b>%d / %d</b> (%.0f%%)\n", res.Score, res.Total, res.Percentage())

	if len(res.Missed) == 0 {
		sb.WriteString("\n🎉 No mistakes. Well done!")
		return sb.String()
	}

	sb.WriteString("\n<b>Review your mistakes:</b>\n")
	writeLimited(&sb, len(res.Missed), func(i int) string {
		return renderMissed(i+1, res.Missed[i])
	})
	return sb.String()
}

func renderMissed(n int, q entities.Question) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%d. %s\n", n, esc(truncateRunes(q.Prompt, maxOptionLen)))
	if answer := correctAnswerText(q); answer != "" {
		fmt.Fprintf(&sb, "✔️ %s\n", esc(truncateRunes(answer, maxOptionLen)))
	}
	if q.Explanation != "" {
		fmt.Fprintf(&sb, "<i>%s</i>\n", esc(truncateRunes(q.Explanation, maxOptionLen)))
	}
	return sb.String()
}

// renderFailed renders the failed questions grouped by format.
func renderFailed(groups []service.FailedGroup) string {
	var sb strings.Builder
	sb.WriteString("📚 <b>Questions to review</b>\n")

	type entry struct {
		header string
		q      entities.Question
		n      int
	}
	var entries []entry
	for _, g := range groups {
		for i, q := range g.Questions {
			e := entry{q: q, n: i + 1}
			if i == 0 {
				e.header = fmt.Sprintf("\n<b>%s</b> (%d)\n", formatTitle(g.Format), len(g.Questions))
			}
			entries = append(entries, e)
		}
	}

	writeLimited(&sb, len(entries), func(i int) string {
		return entries[i].header + renderMissed(entries[i].n, entries[i].q)
	})
	sb.WriteString("\nClear the list with /clear.")
	return sb.String()
}

// Challenge headers.
const (
	headerDaily     = "🗓 <b>Daily challenge</b>"
	headerRandom    = "🎲 <b>Random challenge</b>"
	headerChallenge = "🧩 <b>Coding challenge</b>"
)

// renderChallenge renders a coding challenge. The solution is only written
// out once revealed; a challenge no button can refer to gets it as a spoiler.
func renderChallenge(header string, ch entities.DailyChallenge, revealed bool) string {
	var sb strings.Builder
	sb.WriteString(header)
	if ch.Difficulty != "" {
		fmt.Fprintf(&sb, " · %s", esc(ch.Difficulty))
	}
	sb.WriteString("\n\n")
	sb.WriteString(esc(truncateRunes(ch.Question, maxPromptLen)))
	if ch.QuestionCode != "" {
		fmt.Fprintf(&sb, "\n\n<pre><code>%s</code></pre>", esc(truncateRunes(ch.QuestionCode, maxPromptLen)))
	}
	if ch.AnswerCode == "" {
		return sb.String()
	}

	answer := esc(truncateRunes(ch.AnswerCode, maxPromptLen))
	switch {
	case revealed:
		fmt.Fprintf(&sb, "\n\n<b>Solution</b>\n<pre><code>%s</code></pre>", answer)
	case !linkable(ch):
		fmt.Fprintf(&sb, "\n\n<b>Solution</b>\n<tg-spoiler>%s</tg-spoiler>", answer)
	}
	return sb.String()
}

// renderChallengeList renders the heading of a challenge list page.
func renderChallengeList(page, total int) string {
	return fmt.Sprintf("🧩 <b>Coding challenges</b>\n\n%d challenges, page %d of %d. Pick one to open it.",
		total, page+1, pageCount(total))
}

func renderTip(tip entities.Tip) string {
	header := "💡 <b>Tip</b>"
	if tip.Category != "" {
		header += " · " + esc(tip.Category)
	}
	return header + "\n\n" + esc(tip.Tip)
}

// writeLimited appends the n rendered parts while they fit in a message.
// Parts are never cut, so HTML tags stay balanced.
func writeLimited(sb *strings.Builder, n int, part func(i int) string) {
	for i := 0; i < n; i++ {
		p := part(i)
		if len([]rune(sb.String()))+len([]rune(p)) > maxMessageLen {
			fmt.Fprintf(sb, "\n…and %d more.\n", n-i)
			return
		}
		sb.WriteString(p)
	}
}
