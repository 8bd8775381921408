package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/daily-challenge-bot/internal/domain/entities"
	"github.com/aliskhannn/daily-challenge-bot/internal/engine"
	"github.com/aliskhannn/daily-challenge-bot/internal/service"
	"github.com/aliskhannn/daily-challenge-bot/internal/storage"
)

const buttonTextLen = 48

// buildFormatKeyboard builds the format menu.
func buildFormatKeyboard() tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(entities.Formats))
	for _, f := range entities.Formats {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(formatTitle(f), buildPlayCallback(f)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildQuestionKeyboard builds the answer buttons of the run's current question.
func buildQuestionKeyboard(run storage.Run) tgbotapi.InlineKeyboardMarkup {
	q, _ := run.Session.CurrentQuestion()
	ref := service.RefOf(run)

	switch run.Format {
	case entities.FormatTrueFalse:
		return buildTrueFalseKeyboard(ref)
	case entities.FormatSingleChoice:
		return buildSingleChoiceKeyboard(ref, q)
	case entities.FormatMultiChoice:
		return buildMultiChoiceKeyboard(ref, q, run.IsPending)
	default:
		return buildMatchingKeyboard(ref, run.Item)
	}
}

func buildTrueFalseKeyboard(ref service.Ref) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ True", buildTrueFalseCallback(ref, true)),
			tgbotapi.NewInlineKeyboardButtonData("❌ False", buildTrueFalseCallback(ref, false)),
		),
	)
}

func buildSingleChoiceKeyboard(ref service.Ref, q entities.Question) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(q.Options))
	for i, option := range q.Options {
		text := optionLabel(i) + ". " + truncateRunes(option, buttonTextLen)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(text, buildSingleCallback(ref, i)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func buildMultiChoiceKeyboard(ref service.Ref, q entities.Question, selected func(int) bool) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(q.Options)+1)
	for i, option := range q.Options {
		mark := "⬜"
		if selected(i) {
			mark = "☑️"
		}
		text := mark + " " + optionLabel(i) + ". " + truncateRunes(option, buttonTextLen)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(text, buildToggleCallback(ref, i)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("📨 Submit", buildSubmitCallback(ref)),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildMatchingKeyboard lays out left items in the first column and right
// items in the second one. Matched items stay visible but do nothing.
func buildMatchingKeyboard(ref service.Ref, item engine.MatchItemState) tgbotapi.InlineKeyboardMarkup {
	left, right := item.Left(), item.Right()
	selLeft, hasLeft := item.SelectedLeft()
	selRight, hasRight := item.SelectedRight()

	button := func(side string, i int, text string, matched, selected bool) tgbotapi.InlineKeyboardButton {
		text = truncateRunes(text, buttonTextLen/2)
		switch {
		case matched:
			return tgbotapi.NewInlineKeyboardButtonData("✅ "+text, buildNoopCallback())
		case selected:
			return tgbotapi.NewInlineKeyboardButtonData("👉 "+text, buildMatchCallback(ref, side, i))
		default:
			return tgbotapi.NewInlineKeyboardButtonData(text, buildMatchCallback(ref, side, i))
		}
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(left))
	for i := range left {
		row := tgbotapi.NewInlineKeyboardRow(
			button(sideLeft, i, left[i], item.IsLeftMatched(i), hasLeft && selLeft == i),
		)
		if i < len(right) {
			row = append(row, button(sideRight, i, right[i], item.IsRightMatched(i), hasRight && selRight == i))
		}
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildCompleteKeyboard builds the keyboard shown when a run is over.
func buildCompleteKeyboard(runID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 See result", buildRunCallback(runResult, runID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Play again", buildRunCallback(runRestart, runID)),
			tgbotapi.NewInlineKeyboardButtonData("🎯 Other format", buildRunCallback(runMenu, "")),
		),
	)
}

// buildResultKeyboard builds the keyboard under the result summary.
func buildResultKeyboard(runID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Play again", buildRunCallback(runRestart, runID)),
			tgbotapi.NewInlineKeyboardButtonData("🎯 Other format", buildRunCallback(runMenu, "")),
		),
	)
}

// buildCategoryKeyboard builds the category menu with the current one marked.
func buildCategoryKeyboard(current entities.Category) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(entities.Categories))
	for _, c := range entities.Categories {
		text := c.Title()
		if c == current {
			text = "✅ " + text
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(text, buildCategoryCallback(c)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// challengesPageSize is the number of challenges listed per page.
const challengesPageSize = 5

// pageCount returns the number of list pages needed for n challenges.
func pageCount(n int) int {
	return max(1, (n+challengesPageSize-1)/challengesPageSize)
}

// buildChallengeListKeyboard builds one page of the challenge list with
// navigation buttons under it.
func buildChallengeListKeyboard(challenges []entities.DailyChallenge, page int) tgbotapi.InlineKeyboardMarkup {
	start := page * challengesPageSize
	end := min(start+challengesPageSize, len(challenges))

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, end-start+1)
	for i := start; i < end; i++ {
		ch := challenges[i]
		text := fmt.Sprintf("%d. %s", i+1, truncateRunes(ch.Question, buttonTextLen))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(text, buildChallengeCallback(ch.ID)),
		))
	}

	pages := pageCount(len(challenges))
	if pages > 1 {
		nav := make([]tgbotapi.InlineKeyboardButton, 0, 3)
		if page > 0 {
			nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("⬅️", buildChallengePageCallback(page-1)))
		}
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("%d / %d", page+1, pages), buildNoopCallback()))
		if page < pages-1 {
			nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("➡️", buildChallengePageCallback(page+1)))
		}
		rows = append(rows, nav)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildChallengeKeyboard builds the buttons under a single challenge.
func buildChallengeKeyboard(ch entities.DailyChallenge, revealed bool) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	if !revealed && ch.AnswerCode != "" && linkable(ch) {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💡 Show solution", buildSolutionCallback(ch.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("📋 All challenges", buildChallengePageCallback(0)),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func buildClearKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Yes, clear", buildClearCallback(clearConfirm)),
			tgbotapi.NewInlineKeyboardButtonData("Cancel", buildClearCallback(clearCancel)),
		),
	)
}

// optionLabel returns A, B, C... for option indexes.
func optionLabel(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return string(rune('A'+i/26-1)) + string(rune('A'+i%26))
}
