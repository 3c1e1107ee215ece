// Copyright 2021 The ducks Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package storetest provides a store for tests which records every
// action dispatched to it.
package storetest

import (
	"context"
	"sync"

	"github.com/gogama/ducks"
)

// Recorder is a store which records dispatched actions. Unless it was
// created with a reducer its state never changes.
type Recorder struct {
	reducer ducks.Reducer

	mu      sync.Mutex
	state   ducks.State
	actions []ducks.Action
}

// New returns a recorder with a fixed state.
func New(state ducks.State) *Recorder {
	return &Recorder{state: state}
}

// NewWithReducer returns a recorder which also folds each action into
// its state with reducer, starting from state.
func NewWithReducer(reducer ducks.Reducer, state ducks.State) *Recorder {
	return &Recorder{reducer: reducer, state: state}
}

// Dispatch records action.
func (r *Recorder) Dispatch(action ducks.Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, action)
	if r.reducer != nil {
		r.state = r.reducer(r.state, action)
	}
}

// State returns the current state.
func (r *Recorder) State() ducks.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Actions returns a copy of the actions recorded so far.
func (r *Recorder) Actions() []ducks.Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ducks.Action(nil), r.actions...)
}

// Types returns the types of the actions recorded so far.
func (r *Recorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]string, len(r.actions))
	for i, a := range r.actions {
		types[i] = a.Type
	}
	return types
}

// Run runs thunk against the recorder.
func (r *Recorder) Run(ctx context.Context, thunk ducks.Thunk) (interface{}, error) {
	return thunk(ctx, r.Dispatch, r.State)
}

// Reset forgets the recorded actions.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = nil
}
