// Copyright 2021 The ducks Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package store provides a minimal store for running duck thunks: it
// holds one state, folds dispatched actions into it with a reducer and
// notifies subscribers.
package store

import (
	"context"
	"sync"

	"github.com/gogama/ducks"
)

// InitType is the type of the action a store dispatches to obtain its
// initial state when none is given.
const InitType = "@@ducks/INIT"

// A Listener is notified of the state after each dispatched action.
type Listener interface {
	Changed(state ducks.State, action ducks.Action)
}

// The ListenerFunc type is an adapter to allow the use of ordinary
// functions as listeners.
type ListenerFunc func(state ducks.State, action ducks.Action)

// Changed calls f(state, action).
func (f ListenerFunc) Changed(state ducks.State, action ducks.Action) {
	f(state, action)
}

// Result is the outcome of a thunk run by Go.
type Result struct {
	Value interface{}
	Err   error
}

// Store holds application state. Dispatch is serialized, so a Store is
// safe for concurrent use by any number of running thunks.
type Store struct {
	reducer ducks.Reducer

	mu        sync.Mutex
	state     ducks.State
	listeners map[int]Listener
	nextID    int
}

// New returns a store reducing with reducer. If initial is nil, the
// initial state is obtained by reducing an InitType action into nil.
func New(reducer ducks.Reducer, initial ducks.State) *Store {
	if initial == nil {
		initial = reducer(nil, ducks.Action{Type: InitType})
	}
	return &Store{
		reducer:   reducer,
		state:     initial,
		listeners: make(map[int]Listener),
	}
}

// State returns the current state.
func (s *Store) State() ducks.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch folds action into the state. Listeners are notified before
// Dispatch returns, unless the reducer returned the very same state.
func (s *Store) Dispatch(action ducks.Action) {
	s.mu.Lock()
	prev := s.state
	next := s.reducer(prev, action)
	s.state = next
	var ls []Listener
	if !ducks.SameState(prev, next) {
		ls = make([]Listener, 0, len(s.listeners))
		for _, l := range s.listeners {
			ls = append(ls, l)
		}
	}
	s.mu.Unlock()

	for _, l := range ls {
		l.Changed(next, action)
	}
}

// Subscribe registers l and returns a function which unregisters it.
// Calling the returned function more than once is harmless.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Run runs thunk against the store on the calling goroutine.
func (s *Store) Run(ctx context.Context, thunk ducks.Thunk) (interface{}, error) {
	return thunk(ctx, s.Dispatch, s.State)
}

// Go runs thunk against the store on a new goroutine. The returned
// channel receives the result and is then closed.
func (s *Store) Go(ctx context.Context, thunk ducks.Thunk) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		v, err := s.Run(ctx, thunk)
		ch <- Result{Value: v, Err: err}
	}()
	return ch
}
