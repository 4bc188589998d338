package parsing

import "errors"

var (
	// ErrFormat means the input matched no candidate pattern, or the token a
	// pattern produced did not validate. Callers report it as "could not
	// understand this input".
	ErrFormat = errors.New("unrecognized timer input")

	// ErrInvalidOperation means a token was resolved while invalid, or the
	// resolved end time came out before the start time. Neither happens for
	// tokens returned by Parse.
	ErrInvalidOperation = errors.New("invalid token operation")

	// ErrArgument means a required argument was missing.
	ErrArgument = errors.New("invalid argument")
)
