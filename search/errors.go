package search

import "errors"

// Sentinel kinds for user-facing search failures.
var (
	ErrEmptyPantry      = errors.New("pantry is empty")
	ErrNoResults        = errors.New("no results")
	ErrNoPantryResults  = errors.New("no pantry results")
	ErrNoSecondaryMatch = errors.New("no results with secondary ingredients")
	ErrRandomFailed     = errors.New("random recipe failed")
)

// Error is a failure meant to be shown to the user as-is.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string { return e.Message }

// Is matches the sentinel kind.
func (e *Error) Is(target error) bool { return target == e.Kind }

// Unwrap returns the underlying upstream failure, if any.
func (e *Error) Unwrap() error { return e.Cause }

func userError(kind error, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}
