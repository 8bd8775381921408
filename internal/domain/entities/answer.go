package entities

// Answer is the submitted answer for one question.
// Format selects which of the payload fields is set.
type Answer struct {
	Format            Format
	Value             bool     // true/false
	Option            string   // single choice
	Options           []string // multi choice
	IncorrectAttempts int      // matching: wrong pair attempts before the item was solved
}

// TrueFalseAnswer builds an answer for a true/false question.
func TrueFalseAnswer(v bool) Answer {
	return Answer{Format: FormatTrueFalse, Value: v}
}

// SingleChoiceAnswer builds an answer for a single-select question.
func SingleChoiceAnswer(option string) Answer {
	return Answer{Format: FormatSingleChoice, Option: option}
}

// MultiChoiceAnswer builds an answer for a multi-select question.
func MultiChoiceAnswer(options ...string) Answer {
	return Answer{Format: FormatMultiChoice, Options: append([]string(nil), options...)}
}

// MatchingAnswer builds the terminal answer of a matching question.
func MatchingAnswer(incorrectAttempts int) Answer {
	return Answer{Format: FormatMatching, IncorrectAttempts: incorrectAttempts}
}
