// Package flow implements the client-side state containers used by the
// interactive order flows. Each domain slice owns a Store: a reducer
// over a closed action union, wrapped by an ordered middleware chain
// that runs before the reducer and can reject an action outright.
//
// The containers validate locally what the order workflow re-checks
// server-side. The two are not transactionally linked, so a slice that
// accepted an action can still see the server refuse the submission.
package flow

import (
	"fmt"
	"sync"

	"github.com/example/giftdesk/internal/maybe"
	"github.com/example/giftdesk/internal/result"
)

// Reducer computes the next state for an action. It must be pure and
// must fail on action types it does not know.
type Reducer[S, A any] func(state S, action A) result.Result[S]

// Middleware inspects an action against the current state before the
// reducer runs. Returning an error or a false value rejects the action
// and leaves the state unchanged.
type Middleware[S, A any] struct {
	Name  string
	Check func(action A, state S) result.Result[bool]
}

// RejectedError reports an action stopped by a middleware.
type RejectedError struct {
	Middleware string
	Reason     string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("action rejected by %s middleware: %s", e.Middleware, e.Reason)
}

// UnknownActionError reports an action type a reducer has no case for.
type UnknownActionError struct {
	Slice  string
	Action string
}

func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("unknown %s action %s", e.Slice, e.Action)
}

// Store holds one domain slice's state and serializes dispatches
// through its middleware chain and reducer. One action is processed at
// a time; dispatches never interleave.
type Store[S, A any] struct {
	mu         sync.Mutex
	state      S
	reducer    Reducer[S, A]
	middleware []Middleware[S, A]
	listeners  []func(S)
}

// NewStore creates a store with an initial state. Middleware runs in
// the order given, strictly before the reducer.
func NewStore[S, A any](initial S, reducer Reducer[S, A], middleware ...Middleware[S, A]) *Store[S, A] {
	return &Store[S, A]{
		state:      initial,
		reducer:    reducer,
		middleware: middleware,
	}
}

// Dispatch runs the action through the middleware chain and, if every
// middleware passes, through the reducer. The first middleware failure
// short-circuits the chain and the state is left unchanged. A reducer
// failure likewise leaves the state unchanged.
func (s *Store[S, A]) Dispatch(action A) result.Result[S] {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, mw := range s.middleware {
		r := mw.Check(action, s.state)
		if r.IsErr() {
			return result.Err[S](&RejectedError{Middleware: mw.Name, Reason: r.Err().Error()})
		}
		if !r.Value() {
			return result.Err[S](&RejectedError{Middleware: mw.Name, Reason: "check returned false"})
		}
	}

	next := s.reducer(s.state, action)
	if next.IsErr() {
		return next
	}

	s.state = next.Value()
	for _, fn := range s.listeners {
		fn(s.state)
	}
	return next
}

// State returns the current state.
func (s *Store[S, A]) State() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers a listener called after every accepted action.
// Listeners run inside the dispatch and must not dispatch themselves.
func (s *Store[S, A]) Subscribe(fn func(S)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Select reads a value out of a store through a selector. A nil store
// yields None, so consumers can select from a slice before its provider
// is wired without panicking.
func Select[S, A, T any](s *Store[S, A], selector func(S) maybe.Maybe[T]) maybe.Maybe[T] {
	if s == nil {
		return maybe.None[T]()
	}
	return selector(s.State())
}
