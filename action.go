// Copyright 2021 The ducks Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ducks

import (
	"reflect"

	"github.com/gogama/ducks/request"
)

// An Action is the unit of communication between a duck's thunks and
// its reducer. Which fields are set depends on the lifecycle status:
//
//	BEGIN    Type, Meta
//	SUCCESS  Type, Response, Params, Opts, Meta
//	ERROR    Type, Error, Meta
//
// Meta holds what the request's ActionModifiers contributed. Modifiers
// cannot replace any of the other fields.
type Action struct {
	Type     string
	Response interface{}
	Params   request.Params
	Opts     Opts
	Error    error
	Meta     map[string]interface{}
}

// Opts are the per-request options carried by a SUCCESS action to the
// reducer: everything in RequestOptions which is not consumed by the
// request itself.
type Opts struct {
	Resolver    Resolver
	StoreParams bool
	Extra       map[string]interface{}
}

// Well-known state keys maintained by every duck.
const (
	KeyError   = "error"
	KeyDidLoad = "didLoad"
	KeyLoading = "loading"
	KeyParams  = "params"
)

// State is a plain record of named values. A duck's state is the
// caller-supplied initial fields plus the keys error, didLoad and
// loading, and whatever successful responses merged in.
//
// States are treated as immutable: reducers return modified copies.
type State map[string]interface{}

// Clone returns a shallow copy of s. Cloning nil yields an empty state.
func (s State) Clone() State {
	c := make(State, len(s)+3)
	for k, v := range s {
		c[k] = v
	}
	return c
}

// Merge returns a shallow copy of s with fields layered on top.
func (s State) Merge(fields map[string]interface{}) State {
	c := s.Clone()
	for k, v := range fields {
		c[k] = v
	}
	return c
}

// Loading reports the loading flag.
func (s State) Loading() bool {
	b, _ := s[KeyLoading].(bool)
	return b
}

// DidLoad reports whether a request has ever succeeded.
func (s State) DidLoad() bool {
	b, _ := s[KeyDidLoad].(bool)
	return b
}

// Err returns the error of the last failed request, or nil.
func (s State) Err() error {
	err, _ := s[KeyError].(error)
	return err
}

// Slice returns the sub-state stored under key, or nil. Use it to read
// a duck's slice out of a combined store state.
func (s State) Slice(key string) State {
	switch v := s[key].(type) {
	case State:
		return v
	case map[string]interface{}:
		return State(v)
	default:
		return nil
	}
}

// SameState reports whether a and b are the same map, not merely equal
// ones. A reducer which ignores an action returns its input state, and
// SameState is how stores detect that.
func SameState(a, b State) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

// fields returns the fields of a response which is a JSON object.
func fields(response interface{}) map[string]interface{} {
	switch v := response.(type) {
	case map[string]interface{}:
		return v
	case State:
		return v
	default:
		return nil
	}
}
