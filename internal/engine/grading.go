package engine

import (
	"github.com/aliskhannn/daily-challenge-bot/internal/domain/entities"
)

// Strategy grades one answer for a single question format.
type Strategy interface {
	Grade(q entities.Question, a entities.Answer) bool
}

// Grader routes by question format to the correct Strategy.
// Grading never fails: unknown formats and mismatched answers are incorrect.
type Grader interface {
	Grade(q entities.Question, a entities.Answer) bool
}

type defaultGrader struct {
	strategies map[entities.Format]Strategy
}

// NewDefaultGrader installs the built-in strategies.
func NewDefaultGrader() Grader {
	return &defaultGrader{
		strategies: map[entities.Format]Strategy{
			entities.FormatTrueFalse:    trueFalseStrategy{},
			entities.FormatSingleChoice: singleChoiceStrategy{},
			entities.FormatMultiChoice:  multiChoiceStrategy{},
			entities.FormatMatching:     matchingStrategy{},
		},
	}
}

func (g *defaultGrader) Grade(q entities.Question, a entities.Answer) bool {
	if a.Format != q.Format {
		return false
	}
	s, ok := g.strategies[q.Format]
	if !ok {
		return false
	}
	return s.Grade(q, a)
}

// --- Strategies ---

type trueFalseStrategy struct{}

func (trueFalseStrategy) Grade(q entities.Question, a entities.Answer) bool {
	return a.Value == q.CorrectAnswer
}

type singleChoiceStrategy struct{}

// Grade treats an option outside the question's options as incorrect.
func (singleChoiceStrategy) Grade(q entities.Question, a entities.Answer) bool {
	if _, ok := toSet(q.Options)[a.Option]; !ok {
		return false
	}
	return a.Option == q.CorrectOption
}

// multiChoiceStrategy requires exact set equality. No partial credit.
type multiChoiceStrategy struct{}

func (multiChoiceStrategy) Grade(q entities.Question, a entities.Answer) bool {
	return setEqual(toSet(q.CorrectOptions), toSet(a.Options))
}

// matchingStrategy grades a solved item as correct only without wrong attempts.
type matchingStrategy struct{}

func (matchingStrategy) Grade(_ entities.Question, a entities.Answer) bool {
	return a.IncorrectAttempts == 0
}

// helpers

func toSet(arr []string) map[string]struct{} {
	m := make(map[string]struct{}, len(arr))
	for _, s := range arr {
		m[s] = struct{}{}
	}
	return m
}

func setEqual(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
