package engine

import "errors"

var (
	// ErrEmptySet is returned by Start for an empty question list.
	// Callers show an empty state instead of starting a session.
	ErrEmptySet = errors.New("question set is empty")

	ErrSessionComplete   = errors.New("session is already complete")
	ErrSessionIncomplete = errors.New("session is not complete")
	ErrAnswerFormat      = errors.New("answer format does not match question")
	ErrNotMatching       = errors.New("current question is not a matching question")
	ErrIndexOutOfRange   = errors.New("matching index out of range")
	ErrAlreadyMatched    = errors.New("matching item already matched")
)
