// Copyright 2021 The ducks Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ducks

// A handler is one lifecycle transition of a duck's state.
type handler func(d *Duck, state State, action Action) State

var transitions = [numStatuses]handler{
	begin,
	success,
	failure,
}

func begin(_ *Duck, state State, _ Action) State {
	next := state.Clone()
	next[KeyLoading] = true
	return next
}

func failure(_ *Duck, state State, action Action) State {
	next := state.Clone()
	next[KeyLoading] = false
	next[KeyError] = action.Error
	return next
}

func success(d *Duck, state State, action Action) State {
	var next State
	if action.Opts.Resolver != nil {
		next = action.Opts.Resolver(state, action).Clone()
	} else {
		next = state.Merge(fields(action.Response))
	}
	next[KeyDidLoad] = true
	next[KeyLoading] = false
	if d.storeParams(action) {
		next[KeyParams] = action.Params
	}
	return next
}

// storeParams reports whether a SUCCESS action's params are persisted.
func (d *Duck) storeParams(action Action) bool {
	return d.cfg.StoreParams || d.initial[KeyParams] != nil || action.Opts.StoreParams
}

// register adds the three lifecycle handlers of verb. The caller must
// hold d.mu for writing.
func (d *Duck) register(verb string) {
	for _, s := range Statuses() {
		d.handlers[TypeString(d.name, verb, s)] = transitions[s]
	}
}

// RegisterType makes the duck's reducer handle the BEGIN, SUCCESS and
// ERROR actions of a custom verb. Registering a verb more than once has
// no further effect. It is safe to call concurrently with the reducer
// and with requests.
func (d *Duck) RegisterType(verb string) {
	t := TypeString(d.name, verb, Begin)
	d.mu.RLock()
	_, ok := d.handlers[t]
	d.mu.RUnlock()
	if ok {
		return
	}
	d.mu.Lock()
	d.register(verb)
	d.mu.Unlock()
}

// Types returns every action type the duck currently handles, in no
// particular order.
func (d *Duck) Types() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	types := make([]string, 0, len(d.handlers))
	for t := range d.handlers {
		types = append(types, t)
	}
	return types
}

func (d *Duck) reduce(state State, action Action) State {
	if state == nil {
		state = d.initial.Clone()
	}
	d.mu.RLock()
	h := d.handlers[action.Type]
	d.mu.RUnlock()
	if h == nil {
		return state
	}
	return h(d, state, action)
}
