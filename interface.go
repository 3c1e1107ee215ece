// Copyright 2021 The ducks Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ducks

import (
	"context"

	"github.com/gogama/ducks/request"
)

// Transport is the interface that wraps the basic Perform method.
//
// Perform carries out the request described by d and returns the
// decoded response, or an error if the request failed. A duck treats
// every error as a transport failure: it dispatches an ERROR action
// carrying the error and returns the same error to its caller.
//
// Packages plugin/fetch and plugin/axios provide implementations. Any
// function with the right signature can be used via TransportFunc.
type Transport interface {
	Perform(ctx context.Context, d request.Descriptor) (interface{}, error)
}

// The TransportFunc type is an adapter to allow the use of ordinary
// functions as transports.
type TransportFunc func(ctx context.Context, d request.Descriptor) (interface{}, error)

// Perform calls f(ctx, d).
func (f TransportFunc) Perform(ctx context.Context, d request.Descriptor) (interface{}, error) {
	return f(ctx, d)
}

// A Reducer folds an action into a state and returns the next state.
// Reducers never modify the state they are given.
type Reducer func(state State, action Action) State

// Dispatch delivers an action to the store, which folds it into its
// state before Dispatch returns.
type Dispatch func(action Action)

// GetState returns the store's current state.
type GetState func() State

// A Thunk is a deferred request. Running it with a store's dispatch and
// getState capabilities performs the request, dispatching its lifecycle
// actions along the way, and returns the transport's result.
type Thunk func(ctx context.Context, dispatch Dispatch, getState GetState) (interface{}, error)

// A Resolver takes over shaping the state after a successful request.
// It receives the state before the SUCCESS action and the action itself,
// and returns the new state. The duck adds the lifecycle flags on top.
type Resolver func(state State, action Action) State

// ActionModifiers contribute extra fields to lifecycle actions. Each
// returned map is attached to the action as its Meta, so a modifier
// cannot replace Type, Response, Error or any other computed field. Any
// of the functions may be nil.
type ActionModifiers struct {
	Begin   func(getState GetState) map[string]interface{}
	Success func(response interface{}, getState GetState) map[string]interface{}
	Error   func(err error, getState GetState) map[string]interface{}
}
