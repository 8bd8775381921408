package questionsource

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aliskhannn/daily-challenge-bot/internal/domain/entities"
)

// Wire shapes of the published bank files.

type trueFalseItem struct {
	ID            json.RawMessage `json:"id"`
	Difficulty    string          `json:"difficulty"`
	Question      string          `json:"question" validate:"required"`
	CorrectAnswer *bool           `json:"correctAnswer" validate:"required"`
	Explanation   string          `json:"explanation"`
}

type singleChoiceItem struct {
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"min=2,unique,dive,required"`
	CorrectAnswer string   `json:"correctAnswer" validate:"required"`
	Difficulty    string   `json:"difficulty"`
	Explanation   string   `json:"explanation"`
}

type multiSelectItem struct {
	Question       string   `json:"question" validate:"required"`
	Options        []string `json:"options" validate:"min=1,unique,dive,required"`
	CorrectAnswers []string `json:"correctAnswers" validate:"min=1,unique,dive,required"`
	Difficulty     string   `json:"difficulty"`
	Explanation    string   `json:"explanation"`
}

type matchingPair struct {
	Left  string `json:"left" validate:"required"`
	Right string `json:"right" validate:"required"`
}

type matchingItem struct {
	Question    string         `json:"question" validate:"required"`
	Pairs       []matchingPair `json:"pairs" validate:"min=1,dive"`
	Difficulty  string         `json:"difficulty"`
	Explanation string         `json:"explanation"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterStructValidation(validateSingleChoice, singleChoiceItem{})
	v.RegisterStructValidation(validateMultiSelect, multiSelectItem{})
	v.RegisterStructValidation(validateMatching, matchingItem{})

	return v
}

func validateSingleChoice(sl validator.StructLevel) {
	item := sl.Current().Interface().(singleChoiceItem)
	if item.CorrectAnswer != "" && !contains(item.Options, item.CorrectAnswer) {
		sl.ReportError(item.CorrectAnswer, "correctAnswer", "CorrectAnswer", "option_member", "")
	}
}

func validateMultiSelect(sl validator.StructLevel) {
	item := sl.Current().Interface().(multiSelectItem)
	for _, c := range item.CorrectAnswers {
		if !contains(item.Options, c) {
			sl.ReportError(item.CorrectAnswers, "correctAnswers", "CorrectAnswers", "option_subset", c)
			return
		}
	}
}

func validateMatching(sl validator.StructLevel) {
	item := sl.Current().Interface().(matchingItem)
	left := make(map[string]struct{}, len(item.Pairs))
	right := make(map[string]struct{}, len(item.Pairs))
	for _, p := range item.Pairs {
		if _, dup := left[p.Left]; dup {
			sl.ReportError(item.Pairs, "pairs", "Pairs", "unique_left", p.Left)
			return
		}
		if _, dup := right[p.Right]; dup {
			sl.ReportError(item.Pairs, "pairs", "Pairs", "unique_right", p.Right)
			return
		}
		left[p.Left] = struct{}{}
		right[p.Right] = struct{}{}
	}
}

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// decode parses a bank file of the given format. A single invalid item
// rejects the whole file.
func decode(v *validator.Validate, format entities.Format, raw []byte) ([]entities.Question, error) {
	switch format {
	case entities.FormatTrueFalse:
		return decodeItems(v, raw, func(i int, it trueFalseItem) entities.Question {
			q := entities.NewTrueFalse(it.Question, *it.CorrectAnswer)
			q.ID = rawID(it.ID)
			return withMeta(q, i, it.Difficulty, it.Explanation)
		})
	case entities.FormatSingleChoice:
		return decodeItems(v, raw, func(i int, it singleChoiceItem) entities.Question {
			q := entities.NewSingleChoice(it.Question, it.Options, it.CorrectAnswer)
			return withMeta(q, i, it.Difficulty, it.Explanation)
		})
	case entities.FormatMultiChoice:
		return decodeItems(v, raw, func(i int, it multiSelectItem) entities.Question {
			q := entities.NewMultiChoice(it.Question, it.Options, it.CorrectAnswers)
			return withMeta(q, i, it.Difficulty, it.Explanation)
		})
	case entities.FormatMatching:
		return decodeItems(v, raw, func(i int, it matchingItem) entities.Question {
			pairs := make([]entities.Pair, 0, len(it.Pairs))
			for _, p := range it.Pairs {
				pairs = append(pairs, entities.Pair{Left: p.Left, Right: p.Right})
			}
			q := entities.NewMatching(it.Question, pairs)
			return withMeta(q, i, it.Difficulty, it.Explanation)
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func decodeItems[T any](v *validator.Validate, raw []byte, convert func(int, T) entities.Question) ([]entities.Question, error) {
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	out := make([]entities.Question, 0, len(items))
	for i, it := range items {
		if err := v.Struct(it); err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", ErrParse, i, err)
		}
		out = append(out, convert(i, it))
	}
	return out, nil
}

// rawID accepts both numeric and string ids.
func rawID(r json.RawMessage) string {
	s := strings.TrimSpace(string(r))
	if s == "null" {
		return ""
	}
	return strings.Trim(s, `"`)
}

func withMeta(q entities.Question, index int, difficulty, explanation string) entities.Question {
	if q.ID == "" {
		q.ID = strconv.Itoa(index + 1)
	}
	q.Difficulty = entities.ParseDifficulty(difficulty)
	q.Explanation = explanation
	return q
}
