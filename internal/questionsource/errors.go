package questionsource

import "errors"

var (
	// ErrNetwork means the bank could not be downloaded.
	ErrNetwork = errors.New("question bank unavailable")
	// ErrParse means the bank was downloaded but is malformed.
	ErrParse = errors.New("question bank malformed")
	// ErrUnknownFormat is returned for formats without a bank file.
	ErrUnknownFormat = errors.New("unknown question format")

	errCacheMiss = errors.New("cache miss")
)
