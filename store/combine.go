// Copyright 2021 The ducks Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package store

import "github.com/gogama/ducks"

// Combine returns a reducer whose state holds one slice per key of
// reducers, each reduced by its own reducer. Read slices back with
// State.Slice.
//
// If no slice changes, the combined reducer returns its input state.
func Combine(reducers map[string]ducks.Reducer) ducks.Reducer {
	return func(state ducks.State, action ducks.Action) ducks.State {
		changed := state == nil
		next := make(ducks.State, len(reducers))
		for key, r := range reducers {
			prev := state.Slice(key)
			slice := r(prev, action)
			if !ducks.SameState(prev, slice) {
				changed = true
			}
			next[key] = slice
		}
		if !changed {
			return state
		}
		return next
	}
}
