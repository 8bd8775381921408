package engine

import (
	"github.com/aliskhannn/daily-challenge-bot/internal/domain/entities"
)

// SessionResult is the end-of-session summary.
type SessionResult struct {
	Score   int
	Total   int
	Missed  []entities.Question // incorrectly answered, in question order
	Reviews []QuestionReview    // every question with its answer, in question order
}

// QuestionReview pairs a question with the recorded answer.
type QuestionReview struct {
	Index    int
	Question entities.Question
	Answer   entities.Answer
	Correct  bool
}

// Percentage is the score relative to the total in percent.
func (r SessionResult) Percentage() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Score) / float64(r.Total) * 100
}

// Aggregator builds SessionResult values from complete sessions.
type Aggregator struct {
	grader Grader
}

func NewAggregator(g Grader) *Aggregator {
	if g == nil {
		g = NewDefaultGrader()
	}
	return &Aggregator{grader: g}
}

// Aggregate grades the answer log again and lists the missed questions.
// It has no side effects and returns equal results for the same state.
func (a *Aggregator) Aggregate(state SessionState) (SessionResult, error) {
	if !state.IsComplete() {
		return SessionResult{}, ErrSessionIncomplete
	}

	res := SessionResult{
		Score:   state.Score(),
		Total:   state.Total(),
		Missed:  make([]entities.Question, 0),
		Reviews: make([]QuestionReview, 0, state.Total()),
	}

	for i, q := range state.Questions() {
		answer, ok := state.Answer(i)
		correct := ok && a.grader.Grade(q, answer)
		if !correct {
			res.Missed = append(res.Missed, q)
		}
		res.Reviews = append(res.Reviews, QuestionReview{
			Index:    i,
			Question: q,
			Answer:   answer,
			Correct:  correct,
		})
	}

	return res, nil
}
