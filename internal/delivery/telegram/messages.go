// messages.go contains message templates for Telegram.

package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// Error and notice messages.
const (
	msgInternalError     = "Something went wrong. Please try again later."
	msgNoQuestions       = "No questions are available for this format right now. Check your connection or try another category with /category."
	msgNoActiveRun       = "There is no active challenge. Start one with /play."
	msgStaleAction       = "This question is no longer active."
	msgSelectOption      = "Select at least one option first."
	msgInvalidOption     = "That option is not available."
	msgRunInProgress     = "Finish the current challenge to see the result."
	msgMatched           = "✅ Matched!"
	msgMismatched        = "❌ Not a pair, try again."
	msgAlreadyMatched    = "This item is already matched."
	msgNoFailedItems     = "You have no failed questions. Keep it up!"
	msgClearCancelled    = "Your failed questions were kept."
	msgNoDailyChallenge  = "No daily challenge is available today."
	msgNoChallenges      = "No coding challenges are available right now."
	msgChallengeGone     = "This challenge is no longer available."
	msgCategoryUnchanged = "Unknown category."
)

const msgUnknownCommand = "Unknown command. Send /help to see what I can do."

const msgWelcome = "<b>Welcome to Daily Challenge!</b>\n\n" +
	"Practice mobile development with short quizzes in four formats: " +
	"true or false, single choice, multiple select and pair matching.\n\n" +
	"Pick a technology with /category, then start a challenge with /play.\n" +
	"Questions you get wrong are saved, so you can review them with /failed."

const msgHelp = "<b>Commands</b>\n\n" +
	"/play - choose a challenge format\n" +
	"/truefalse - true or false questions\n" +
	"/choice - single choice questions\n" +
	"/multi - multiple select questions\n" +
	"/match - pair matching\n" +
	"/category - choose the technology\n" +
	"/failed - review questions you got wrong\n" +
	"/clear - forget failed questions\n" +
	"/daily - today's coding challenge\n" +
	"/challenges - browse all coding challenges\n" +
	"/random - a random coding challenge\n" +
	"/tip - a random programming tip\n" +
	"/help - this message"

var botCommands = []tgbotapi.BotCommand{
	{Command: "play", Description: "Choose a challenge format"},
	{Command: "truefalse", Description: "True or false"},
	{Command: "choice", Description: "Single choice"},
	{Command: "multi", Description: "Multiple select"},
	{Command: "match", Description: "Pair matching"},
	{Command: "category", Description: "Choose the technology"},
	{Command: "failed", Description: "Review failed questions"},
	{Command: "clear", Description: "Forget failed questions"},
	{Command: "daily", Description: "Today's coding challenge"},
	{Command: "challenges", Description: "Browse coding challenges"},
	{Command: "random", Description: "Random coding challenge"},
	{Command: "tip", Description: "Random programming tip"},
	{Command: "help", Description: "Help"},
}
