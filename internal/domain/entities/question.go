package entities

import (
	"encoding/json"
	"strings"
)

// Format identifies one of the four quiz formats.
type Format string

const (
	FormatTrueFalse    Format = "true_false"
	FormatSingleChoice Format = "single_choice"
	FormatMultiChoice  Format = "multi_choice"
	FormatMatching     Format = "matching"
)

// Formats lists every supported format in menu order.
var Formats = []Format{FormatTrueFalse, FormatSingleChoice, FormatMultiChoice, FormatMatching}

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	switch f {
	case FormatTrueFalse, FormatSingleChoice, FormatMultiChoice, FormatMatching:
		return true
	default:
		return false
	}
}

// Difficulty is the question difficulty as published in the bank.
// Values other than Easy, Medium and Hard are kept as they are.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// ParseDifficulty normalizes the known levels case-insensitively.
func ParseDifficulty(s string) Difficulty {
	s = strings.TrimSpace(s)
	for _, d := range []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard} {
		if strings.EqualFold(s, string(d)) {
			return d
		}
	}
	return Difficulty(s)
}

// Pair is a single left/right association of a matching question.
type Pair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// Question is a tagged union over the four formats.
// Only the payload fields of Format are meaningful.
type Question struct {
	ID          string     `json:"id,omitempty"`
	Format      Format     `json:"format"`
	Difficulty  Difficulty `json:"difficulty"`
	Prompt      string     `json:"question"`
	Explanation string     `json:"explanation"`

	CorrectAnswer  bool     `json:"correct_answer,omitempty"`  // true/false
	Options        []string `json:"options,omitempty"`         // single and multi choice
	CorrectOption  string   `json:"correct_option,omitempty"`  // single choice
	CorrectOptions []string `json:"correct_options,omitempty"` // multi choice
	Pairs          []Pair   `json:"pairs,omitempty"`           // matching
}

// NewTrueFalse creates a true/false question.
func NewTrueFalse(prompt string, correct bool) Question {
	return Question{Format: FormatTrueFalse, Prompt: prompt, CorrectAnswer: correct}
}

// NewSingleChoice creates a single-select question.
func NewSingleChoice(prompt string, options []string, correct string) Question {
	return Question{Format: FormatSingleChoice, Prompt: prompt, Options: options, CorrectOption: correct}
}

// NewMultiChoice creates a multi-select question.
func NewMultiChoice(prompt string, options []string, correct []string) Question {
	return Question{Format: FormatMultiChoice, Prompt: prompt, Options: options, CorrectOptions: correct}
}

// NewMatching creates a pair-matching question.
func NewMatching(prompt string, pairs []Pair) Question {
	return Question{Format: FormatMatching, Prompt: prompt, Pairs: pairs}
}

// HasPair reports whether (left, right) is one of the question's pairs.
func (q Question) HasPair(left, right string) bool {
	for _, p := range q.Pairs {
		if p.Left == left && p.Right == right {
			return true
		}
	}
	return false
}

// OptionAt returns the option at index i.
func (q Question) OptionAt(i int) (string, bool) {
	if i < 0 || i >= len(q.Options) {
		return "", false
	}
	return q.Options[i], true
}

// Descriptor serializes the question for the failed items log.
func (q Question) Descriptor() string {
	b, err := json.Marshal(q)
	if err != nil {
		return q.Prompt
	}
	return string(b)
}

// ParseDescriptor restores a question previously serialized with Descriptor.
func ParseDescriptor(s string) (Question, error) {
	var q Question
	if err := json.Unmarshal([]byte(s), &q); err != nil {
		return Question{}, err
	}
	return q, nil
}
