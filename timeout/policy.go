// Copyright 2021 The ducks Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"time"

	"github.com/gogama/ducks/request"
)

// A Policy returns the timeout to apply to the next HTTP attempt of an
// execution.
//
// Implementations must be safe for concurrent use.
type Policy interface {
	Timeout(e *request.Execution) time.Duration
}

// PolicyFunc adapts an ordinary function to the Policy interface.
type PolicyFunc func(e *request.Execution) time.Duration

// Timeout calls f(e).
func (f PolicyFunc) Timeout(e *request.Execution) time.Duration {
	return f(e)
}

// DefaultPolicy gives every attempt ten seconds.
var DefaultPolicy = Fixed(10 * time.Second)

// Infinite never times an attempt out.
var Infinite = Fixed(1<<63 - 1)

// Fixed gives every attempt the timeout d.
func Fixed(d time.Duration) Policy {
	return PolicyFunc(func(_ *request.Execution) time.Duration {
		return d
	})
}

// Adaptive uses usual unless the previous attempt timed out. After the
// n-th timeout of the execution it uses after[n-1], repeating the last
// element of after once they run out.
//
// For example, Adaptive(200*time.Millisecond, time.Second, 10*time.Second)
// retries a first timeout with one second and any later timeout with
// ten seconds.
func Adaptive(usual time.Duration, after ...time.Duration) Policy {
	steps := append([]time.Duration{usual}, after...)
	return PolicyFunc(func(e *request.Execution) time.Duration {
		if !e.Timeout() {
			return usual
		}
		i := e.AttemptTimeouts
		if i >= len(steps) {
			i = len(steps) - 1
		}
		return steps[i]
	})
}
