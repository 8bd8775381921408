package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/daily-challenge-bot/internal/domain/entities"
	"github.com/aliskhannn/daily-challenge-bot/internal/engine"
	"github.com/aliskhannn/daily-challenge-bot/internal/service"
	"github.com/aliskhannn/daily-challenge-bot/internal/storage"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil || cb.Message.Chat == nil || cb.From == nil {
		h.answerCallback(cb.ID, "")
		return
	}

	data := decodeCallback(cb.Data)
	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID
	userID := cb.From.ID

	var (
		notice string
		err    error
	)

	switch data.Action {
	case actionPlay:
		err = h.startHandler(userID, entities.Format(data.param(0)), messageID)(ctx, chatID)
	case actionTrueFalse, actionSingle, actionMulti, actionMatch:
		notice, err = h.handleAnswerCallback(chatID, messageID, userID, data)
	case actionRun:
		notice, err = h.handleRunCallback(chatID, messageID, userID, data)
	case actionCategory:
		notice, err = h.handleCategoryCallback(ctx, chatID, messageID, userID, data.param(0))
	case actionClear:
		notice, err = h.handleClearCallback(ctx, chatID, messageID, userID, data.param(0))
	case actionChallenge:
		notice, err = h.handleChallengeCallback(ctx, chatID, messageID, data)
	case actionChallengePage:
		notice, err = h.handleChallengePageCallback(ctx, chatID, messageID, data)
	case actionNoop:
	default:
		h.logger.Warn("unknown callback", zap.String("data", cb.Data))
	}

	if err != nil {
		h.logger.Error("handle callback",
			zap.Int64("user_id", userID),
			zap.String("data", cb.Data),
			zap.Error(err),
		)
		notice = msgInternalError
	}

	h.answerCallback(cb.ID, notice)
}

func (h *Handler) handleAnswerCallback(chatID int64, messageID int, userID int64, data callbackData) (string, error) {
	ref, err := data.ref()
	if err != nil {
		return answerNotice(err)
	}

	var run storage.Run
	switch data.Action {
	case actionTrueFalse:
		run, err = h.challenges.AnswerTrueFalse(userID, ref, data.param(2) == "1")

	case actionSingle:
		var option int
		if option, err = data.intParam(2); err == nil {
			run, err = h.challenges.AnswerSingle(userID, ref, option)
		}

	case actionMulti:
		if data.param(2) == multiSubmit {
			run, err = h.challenges.SubmitMulti(userID, ref)
			break
		}
		var option int
		if option, err = data.intParam(2); err == nil {
			run, err = h.challenges.ToggleOption(userID, ref, option)
		}

	case actionMatch:
		var index int
		if index, err = data.intParam(3); err != nil {
			break
		}
		switch data.param(2) {
		case sideLeft:
			run, err = h.challenges.SelectLeft(userID, ref, index)
		case sideRight:
			run, err = h.challenges.SelectRight(userID, ref, index)
		default:
			err = errInvalidCallback
		}
	}

	if err != nil {
		return answerNotice(err)
	}

	h.showRun(chatID, messageID, run)

	if data.Action == actionMatch {
		switch run.Outcome {
		case engine.OutcomeMatched:
			return msgMatched, nil
		case engine.OutcomeMismatched:
			return msgMismatched, nil
		}
	}
	return "", nil
}

// answerNotice turns expected answer errors into a notice for the user.
func answerNotice(err error) (string, error) {
	switch {
	case errors.Is(err, service.ErrStaleAction),
		errors.Is(err, service.ErrNoActiveRun),
		errors.Is(err, engine.ErrSessionComplete),
		errors.Is(err, engine.ErrAnswerFormat),
		errors.Is(err, engine.ErrNotMatching):
		return msgStaleAction, nil
	case errors.Is(err, service.ErrNothingSelected):
		return msgSelectOption, nil
	case errors.Is(err, service.ErrInvalidOption),
		errors.Is(err, engine.ErrIndexOutOfRange),
		errors.Is(err, errInvalidCallback):
		return msgInvalidOption, nil
	case errors.Is(err, engine.ErrAlreadyMatched):
		return msgAlreadyMatched, nil
	default:
		return "", err
	}
}

func (h *Handler) handleRunCallback(chatID int64, messageID int, userID int64, data callbackData) (string, error) {
	runID := data.param(1)

	switch data.param(0) {
	case runRestart:
		run, err := h.challenges.Restart(userID, runID)
		switch {
		case errors.Is(err, service.ErrNoActiveRun):
			return msgNoActiveRun, nil
		case errors.Is(err, service.ErrStaleAction):
			return msgStaleAction, nil
		case err != nil:
			return "", err
		}
		h.showRun(chatID, messageID, run)

	case runResult:
		res, run, err := h.challenges.Result(userID, runID)
		switch {
		case errors.Is(err, service.ErrNoActiveRun):
			return msgNoActiveRun, nil
		case errors.Is(err, service.ErrStaleAction):
			return msgStaleAction, nil
		case errors.Is(err, service.ErrRunInProgress):
			return msgRunInProgress, nil
		case err != nil:
			return "", err
		}
		kb := buildResultKeyboard(run.ShortID())
		h.reply(chatID, messageID, renderResult(res, run), &kb)

	case runMenu:
		kb := buildFormatKeyboard()
		h.reply(chatID, messageID, msgChooseFormat, &kb)

	default:
		return answerNotice(errInvalidCallback)
	}
	return "", nil
}
