package telegram

import (
	"errors"
	"strconv"
	"strings"

	"github.com/aliskhannn/daily-challenge-bot/internal/domain/entities"
	"github.com/aliskhannn/daily-challenge-bot/internal/service"
)

// Callback action constants.
const (
	actionPlay      = "play"
	actionTrueFalse = "tf"
	actionSingle    = "sc"
	actionMulti     = "ms"
	actionMatch     = "mt"
	actionRun       = "run"
	actionCategory  = "cat"
	actionClear     = "clear"
	actionNoop      = "noop"

	actionChallenge     = "chl"
	actionChallengePage = "chlp"
)

// Run sub-actions.
const (
	runRestart = "restart"
	runResult  = "result"
	runMenu    = "menu"
)

// Multi choice sub-action. Any other parameter is an option index.
const multiSubmit = "submit"

// Matching sides.
const (
	sideLeft  = "L"
	sideRight = "R"
)

const (
	clearConfirm = "confirm"
	clearCancel  = "cancel"
)

// challengeSolution reveals the solution of a challenge.
const challengeSolution = "sol"

// maxCallbackLen is the Telegram limit for callback data, in bytes.
const maxCallbackLen = 64

var errInvalidCallback = errors.New("invalid callback data")

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// param returns the i-th parameter or an empty string.
func (cd callbackData) param(i int) string {
	if i < 0 || i >= len(cd.Params) {
		return ""
	}
	return cd.Params[i]
}

// ref parses the leading run id and question index parameters.
func (cd callbackData) ref() (service.Ref, error) {
	if len(cd.Params) < 2 || cd.Params[0] == "" {
		return service.Ref{}, errInvalidCallback
	}
	index, err := strconv.Atoi(cd.Params[1])
	if err != nil || index < 0 {
		return service.Ref{}, errInvalidCallback
	}
	return service.Ref{RunID: cd.Params[0], Index: index}, nil
}

// intParam parses the i-th parameter as a non-negative integer.
func (cd callbackData) intParam(i int) (int, error) {
	n, err := strconv.Atoi(cd.param(i))
	if err != nil || n < 0 {
		return 0, errInvalidCallback
	}
	return n, nil
}

func refParams(ref service.Ref, extra ...string) []string {
	return append([]string{ref.RunID, strconv.Itoa(ref.Index)}, extra...)
}

func buildPlayCallback(format entities.Format) string {
	return callbackData{Action: actionPlay, Params: []string{string(format)}}.encode()
}

func buildTrueFalseCallback(ref service.Ref, value bool) string {
	v := "0"
	if value {
		v = "1"
	}
	return callbackData{Action: actionTrueFalse, Params: refParams(ref, v)}.encode()
}

func buildSingleCallback(ref service.Ref, option int) string {
	return callbackData{Action: actionSingle, Params: refParams(ref, strconv.Itoa(option))}.encode()
}

func buildToggleCallback(ref service.Ref, option int) string {
	return callbackData{Action: actionMulti, Params: refParams(ref, strconv.Itoa(option))}.encode()
}

func buildSubmitCallback(ref service.Ref) string {
	return callbackData{Action: actionMulti, Params: refParams(ref, multiSubmit)}.encode()
}

func buildMatchCallback(ref service.Ref, side string, index int) string {
	return callbackData{Action: actionMatch, Params: refParams(ref, side, strconv.Itoa(index))}.encode()
}

// buildRunCallback encodes a run sub-action. Restart and result carry the
// short id of the run they were rendered for.
func buildRunCallback(sub, runID string) string {
	params := []string{sub}
	if runID != "" {
		params = append(params, runID)
	}
	return callbackData{Action: actionRun, Params: params}.encode()
}

func buildChallengeCallback(id string) string {
	return callbackData{Action: actionChallenge, Params: []string{id}}.encode()
}

func buildSolutionCallback(id string) string {
	return callbackData{Action: actionChallenge, Params: []string{id, challengeSolution}}.encode()
}

func buildChallengePageCallback(page int) string {
	return callbackData{Action: actionChallengePage, Params: []string{strconv.Itoa(page)}}.encode()
}

// linkable reports whether buttons can refer to the challenge by its id.
func linkable(ch entities.DailyChallenge) bool {
	return ch.ID != "" && !strings.Contains(ch.ID, ":") && len(buildSolutionCallback(ch.ID)) <= maxCallbackLen
}

func buildCategoryCallback(c entities.Category) string {
	return callbackData{Action: actionCategory, Params: []string{string(c)}}.encode()
}

func buildClearCallback(sub string) string {
	return callbackData{Action: actionClear, Params: []string{sub}}.encode()
}

func buildNoopCallback() string {
	return actionNoop
}
