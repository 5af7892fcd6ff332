// Package fetch tracks the loading, data and error state of a single async call.
package fetch

import (
	"context"
	"log/slog"
	"sync"
)

// Func is the call a Fetcher wraps.
type Func[A, T any] func(ctx context.Context, arg A) (T, error)

// Mode selects whether Mount runs the call.
type Mode int

const (
	// Eager runs the call with the default argument on Mount.
	Eager Mode = iota
	// Lazy waits for an explicit Exec.
	Lazy
)

// Fetcher wraps one call with a State. Overlapping runs are not coalesced or
// cancelled; whichever finishes last wins.
type Fetcher[A, T any] struct {
	mu    sync.RWMutex
	fn    Func[A, T]
	arg   A
	mode  Mode
	state State[T]
}

// New returns a Fetcher whose default argument is arg. An eager fetcher
// starts out loading, a lazy one idle.
func New[A, T any](fn Func[A, T], mode Mode, arg A) *Fetcher[A, T] {
	f := &Fetcher[A, T]{fn: fn, arg: arg, mode: mode, state: Idle[T]()}
	if mode == Eager {
		f.state = Loading[T]()
	}
	return f
}

// Mount runs the call once with the default argument in eager mode. In lazy
// mode it only returns the current state.
func (f *Fetcher[A, T]) Mount(ctx context.Context) State[T] {
	if f.mode != Eager {
		return f.State()
	}
	return f.Exec(ctx, f.arg)
}

// Exec runs the call with arg and returns the state it settled in.
func (f *Fetcher[A, T]) Exec(ctx context.Context, arg A) State[T] {
	f.set(Loading[T]())

	data, err := f.fn(ctx, arg)
	if err != nil {
		slog.Warn("FETCH: call failed", "error", err)
		st := Failed[T](err)
		f.set(st)
		return st
	}
	st := Loaded(data)
	f.set(st)
	return st
}

// Go runs Exec in a goroutine. The channel receives the settled state and is
// then closed.
func (f *Fetcher[A, T]) Go(ctx context.Context, arg A) <-chan State[T] {
	ch := make(chan State[T], 1)
	go func() {
		defer close(ch)
		ch <- f.Exec(ctx, arg)
	}()
	return ch
}

// State returns a snapshot of the current state.
func (f *Fetcher[A, T]) State() State[T] {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.state
}

func (f *Fetcher[A, T]) set(st State[T]) {
	f.mu.Lock()
	f.state = st
	f.mu.Unlock()
}
