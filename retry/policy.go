// Copyright 2021 The ducks Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"time"

	"github.com/gogama/ducks/request"
)

// A Policy decides, after each failed or unsatisfactory HTTP attempt,
// whether to try again and how long to wait first. Wait is only
// consulted when Decide returned true.
//
// Implementations must be safe for concurrent use.
type Policy interface {
	Decider
	Waiter
}

// DefaultPolicy combines DefaultDecider and DefaultWaiter.
var DefaultPolicy = NewPolicy(DefaultDecider, DefaultWaiter)

// Never is a policy that never retries.
var Never = NewPolicy(Times(0), NewFixedWaiter(0))

type policy struct {
	Decider
	Waiter
}

// NewPolicy composes d and w into a Policy. Neither may be nil.
func NewPolicy(d Decider, w Waiter) Policy {
	if d == nil {
		panic("ducks/retry: nil decider")
	}
	if w == nil {
		panic("ducks/retry: nil waiter")
	}
	return policy{d, w}
}

// Waiter computes the pause before the next attempt.
//
// Implementations must be safe for concurrent use.
type Waiter interface {
	Wait(e *request.Execution) time.Duration
}
