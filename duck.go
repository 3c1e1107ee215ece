// Copyright 2021 The ducks Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ducks

import (
	"sync"

	"github.com/apex/log"
	"github.com/gogama/ducks/request"
)

// Config configures a duck. The zero value is usable, though without a
// BaseURL every request fails in the transport.
type Config struct {
	// BaseURL is prefixed to the path of every request.
	BaseURL string

	// InitialState holds extra fields of the duck's initial state.
	// The keys error, didLoad and loading are always reset.
	InitialState State

	// Transport performs the requests. If nil, fetch.Default is used.
	Transport Transport

	// StoreParams makes every successful request record its params in
	// the state under KeyParams.
	StoreParams bool

	// Logger receives debug output about requests. If nil, log.Log is
	// used.
	Logger log.Interface
}

// A Duck bundles the reducer and the request thunks of one named
// resource. Create ducks with New or a Factory; a Duck is safe for
// concurrent use.
type Duck struct {
	name    string
	cfg     Config
	initial State
	reducer Reducer

	mu       sync.RWMutex
	handlers map[string]handler
}

// New returns a duck named name. The name prefixes every action type
// the duck produces.
func New(name string, cfg Config) *Duck {
	initial := cfg.InitialState.Clone()
	initial[KeyError] = nil
	initial[KeyDidLoad] = false
	initial[KeyLoading] = false

	d := &Duck{
		name:     name,
		cfg:      cfg,
		initial:  initial,
		handlers: make(map[string]handler, len(request.Methods())*numStatuses),
	}
	for _, m := range request.Methods() {
		d.register(m.Upper())
	}
	d.reducer = d.reduce
	return d
}

// Name returns the duck's name.
func (d *Duck) Name() string {
	return d.name
}

// Config returns the duck's configuration.
func (d *Duck) Config() Config {
	return d.cfg
}

// Reducer returns the duck's reducer. Every call returns the same
// function value.
//
// The reducer folds the duck's lifecycle actions into state. Given a
// nil state it starts from the initial state. Actions of any other type
// leave the state untouched: the very same map is returned.
func (d *Duck) Reducer() Reducer {
	return d.reducer
}

// InitialState returns a copy of the duck's initial state.
func (d *Duck) InitialState() State {
	return d.initial.Clone()
}

func (d *Duck) logger() log.Interface {
	if d.cfg.Logger != nil {
		return d.cfg.Logger
	}
	return log.Log
}
