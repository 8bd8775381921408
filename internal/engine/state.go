package engine

import (
	"maps"

	"github.com/aliskhannn/daily-challenge-bot/internal/domain/entities"
)

// SessionState is an immutable snapshot of progress through a question list.
// Transitions return new values; the zero value is an empty, complete session.
type SessionState struct {
	questions []entities.Question
	index     int
	score     int
	answers   map[int]entities.Answer
}

func newSessionState(questions []entities.Question) SessionState {
	return SessionState{
		questions: questions,
		answers:   make(map[int]entities.Answer, len(questions)),
	}
}

// Questions returns the session's question list. It must not be modified.
func (s SessionState) Questions() []entities.Question { return s.questions }

// Total is the number of questions in the session.
func (s SessionState) Total() int { return len(s.questions) }

// CurrentIndex is the index of the question awaiting an answer.
func (s SessionState) CurrentIndex() int { return s.index }

// Score is the number of correctly answered questions.
func (s SessionState) Score() int { return s.score }

// IsComplete reports whether every question has been answered.
func (s SessionState) IsComplete() bool { return s.index >= len(s.questions) }

// CurrentQuestion returns the question awaiting an answer, if any.
func (s SessionState) CurrentQuestion() (entities.Question, bool) {
	if s.IsComplete() {
		return entities.Question{}, false
	}
	return s.questions[s.index], true
}

// Answer returns the answer recorded for question i.
func (s SessionState) Answer(i int) (entities.Answer, bool) {
	a, ok := s.answers[i]
	return a, ok
}

// Answers returns a copy of the answer log keyed by question index.
func (s SessionState) Answers() map[int]entities.Answer {
	return maps.Clone(s.answers)
}

// Progress is the share of answered questions in percent.
func (s SessionState) Progress() float64 {
	if len(s.questions) == 0 {
		return 0
	}
	return float64(s.index) / float64(len(s.questions)) * 100
}

// advance records answer for the current question and moves to the next one.
func (s SessionState) advance(answer entities.Answer, correct bool) SessionState {
	answers := make(map[int]entities.Answer, len(s.answers)+1)
	maps.Copy(answers, s.answers)
	answers[s.index] = answer

	next := SessionState{
		questions: s.questions,
		index:     s.index + 1,
		score:     s.score,
		answers:   answers,
	}
	if correct {
		next.score++
	}
	return next
}
