package engine

import (
	"math/rand"
	"slices"

	"github.com/aliskhannn/daily-challenge-bot/internal/domain/entities"
)

// Outcome is the result of a selection on a matching item.
type Outcome int

const (
	OutcomeNone       Outcome = iota // selection changed, nothing resolved
	OutcomeMatched                   // the selected pair was correct
	OutcomeMismatched                // the selected pair was wrong
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMatched:
		return "matched"
	case OutcomeMismatched:
		return "mismatched"
	default:
		return "none"
	}
}

// MatchedPair holds display indexes into the left and right columns.
type MatchedPair struct {
	Left  int
	Right int
}

const noSelection = -1

// MatchItemState tracks one matching question while it is current.
// Left and right columns are shuffled independently so position never
// reveals the pairing. Matched pairs only grow.
type MatchItemState struct {
	question      entities.Question
	left          []string
	right         []string
	selectedLeft  int
	selectedRight int
	matched       []MatchedPair
	incorrect     int
}

// InitItem shuffles both columns of q and clears selection and matches.
func InitItem(q entities.Question, rng *rand.Rand) (MatchItemState, error) {
	if q.Format != entities.FormatMatching {
		return MatchItemState{}, ErrNotMatching
	}

	left := make([]string, 0, len(q.Pairs))
	right := make([]string, 0, len(q.Pairs))
	for _, p := range q.Pairs {
		left = append(left, p.Left)
		right = append(right, p.Right)
	}
	shuffle(rng, left)
	shuffle(rng, right)

	return MatchItemState{
		question:      q,
		left:          left,
		right:         right,
		selectedLeft:  noSelection,
		selectedRight: noSelection,
	}, nil
}

func shuffle(rng *rand.Rand, s []string) {
	swap := func(i, j int) { s[i], s[j] = s[j], s[i] }
	if rng == nil {
		rand.Shuffle(len(s), swap)
		return
	}
	rng.Shuffle(len(s), swap)
}

func (m MatchItemState) Question() entities.Question { return m.question }

// Left returns the left column in display order.
func (m MatchItemState) Left() []string { return slices.Clone(m.left) }

// Right returns the right column in display order.
func (m MatchItemState) Right() []string { return slices.Clone(m.right) }

func (m MatchItemState) SelectedLeft() (int, bool) {
	return m.selectedLeft, m.selectedLeft != noSelection
}

func (m MatchItemState) SelectedRight() (int, bool) {
	return m.selectedRight, m.selectedRight != noSelection
}

// Matched returns the confirmed pairs in the order they were found.
func (m MatchItemState) Matched() []MatchedPair { return slices.Clone(m.matched) }

func (m MatchItemState) IncorrectAttempts() int { return m.incorrect }

func (m MatchItemState) IsLeftMatched(index int) bool {
	return slices.ContainsFunc(m.matched, func(p MatchedPair) bool { return p.Left == index })
}

func (m MatchItemState) IsRightMatched(index int) bool {
	return slices.ContainsFunc(m.matched, func(p MatchedPair) bool { return p.Right == index })
}

// IsComplete reports whether every pair has been matched.
func (m MatchItemState) IsComplete() bool {
	return len(m.question.Pairs) > 0 && len(m.matched) == len(m.question.Pairs)
}

// SelectLeft selects the left item at index. Selecting the selected item
// again clears it. When a right item is already selected the pair is resolved.
func (m MatchItemState) SelectLeft(index int) (MatchItemState, Outcome, error) {
	if index < 0 || index >= len(m.left) {
		return m, OutcomeNone, ErrIndexOutOfRange
	}
	if m.IsLeftMatched(index) {
		return m, OutcomeNone, ErrAlreadyMatched
	}

	if m.selectedLeft == index {
		m.selectedLeft = noSelection
		return m, OutcomeNone, nil
	}

	m.selectedLeft = index
	if m.selectedRight == noSelection {
		return m, OutcomeNone, nil
	}
	next, outcome := m.Resolve()
	return next, outcome, nil
}

// SelectRight mirrors SelectLeft for the right column.
func (m MatchItemState) SelectRight(index int) (MatchItemState, Outcome, error) {
	if index < 0 || index >= len(m.right) {
		return m, OutcomeNone, ErrIndexOutOfRange
	}
	if m.IsRightMatched(index) {
		return m, OutcomeNone, ErrAlreadyMatched
	}

	if m.selectedRight == index {
		m.selectedRight = noSelection
		return m, OutcomeNone, nil
	}

	m.selectedRight = index
	if m.selectedLeft == noSelection {
		return m, OutcomeNone, nil
	}
	next, outcome := m.Resolve()
	return next, outcome, nil
}

// Resolve checks the selected pair against the question. Both selections
// are consumed whatever the outcome. Without two selections it is a no-op.
func (m MatchItemState) Resolve() (MatchItemState, Outcome) {
	if m.selectedLeft == noSelection || m.selectedRight == noSelection {
		return m, OutcomeNone
	}

	pair := MatchedPair{Left: m.selectedLeft, Right: m.selectedRight}
	correct := m.question.HasPair(m.left[pair.Left], m.right[pair.Right])

	m.selectedLeft = noSelection
	m.selectedRight = noSelection

	if !correct {
		m.incorrect++
		return m, OutcomeMismatched
	}

	matched := make([]MatchedPair, len(m.matched), len(m.matched)+1)
	copy(matched, m.matched)
	m.matched = append(matched, pair)
	return m, OutcomeMatched
}
