package fetch

import "fmt"

// Status is the tag of a State.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// State is the outcome of the most recent run. It holds data only when
// loaded and an error only when failed.
type State[T any] struct {
	status Status
	data   T
	err    error
}

func Idle[T any]() State[T]    { return State[T]{status: StatusIdle} }
func Loading[T any]() State[T] { return State[T]{status: StatusLoading} }

func Loaded[T any](data T) State[T] {
	return State[T]{status: StatusLoaded, data: data}
}

func Failed[T any](err error) State[T] {
	return State[T]{status: StatusFailed, err: err}
}

func (s State[T]) Status() Status { return s.status }
func (s State[T]) Loading() bool  { return s.status == StatusLoading }

// Data returns the loaded value and whether the state is loaded.
func (s State[T]) Data() (T, bool) {
	return s.data, s.status == StatusLoaded
}

// Err returns the failure, or nil unless the state is failed.
func (s State[T]) Err() error {
	return s.err
}
