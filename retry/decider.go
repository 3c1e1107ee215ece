// Copyright 2021 The ducks Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"time"

	"github.com/gogama/ducks/request"
	"github.com/gogama/ducks/transient"
)

// A Decider reports whether another attempt should be made.
//
// Implementations must be safe for concurrent use.
type Decider interface {
	Decide(e *request.Execution) bool
}

// DeciderFunc adapts an ordinary function to the Decider interface and
// adds the combinators And and Or.
type DeciderFunc func(e *request.Execution) bool

// Decide calls f(e).
func (f DeciderFunc) Decide(e *request.Execution) bool {
	return f(e)
}

// And returns a decider that is true when both f and g are. g is not
// evaluated if f is false.
func (f DeciderFunc) And(g DeciderFunc) DeciderFunc {
	return func(e *request.Execution) bool {
		return f(e) && g(e)
	}
}

// Or returns a decider that is true when either f or g is. g is not
// evaluated if f is true.
func (f DeciderFunc) Or(g DeciderFunc) DeciderFunc {
	return func(e *request.Execution) bool {
		return f(e) || g(e)
	}
}

// DefaultTimes is the retry limit of DefaultDecider.
const DefaultTimes = 3

// DefaultDecider retries up to DefaultTimes times when the attempt
// failed with a transient error or received one of the statuses 429,
// 502, 503 or 504.
var DefaultDecider = Times(DefaultTimes).And(StatusCode(429, 502, 503, 504).Or(TransientErr))

// TransientErr is true when the attempt's error is transient according
// to transient.Categorize.
var TransientErr DeciderFunc = func(e *request.Execution) bool {
	return transient.Is(e.Err)
}

// Times allows up to n retries, that is n+1 attempts in total.
func Times(n int) DeciderFunc {
	return func(e *request.Execution) bool {
		return e.Attempt < n
	}
}

// Before allows retries until d has elapsed since the execution
// started.
func Before(d time.Duration) DeciderFunc {
	return func(e *request.Execution) bool {
		return e.Duration() < d
	}
}

// StatusCode is true when the attempt received a response whose status
// is one of codes.
func StatusCode(codes ...int) DeciderFunc {
	set := make(map[int]bool, len(codes))
	for _, c := range codes {
		set[c] = true
	}
	return func(e *request.Execution) bool {
		return e.Response != nil && set[e.StatusCode()]
	}
}
