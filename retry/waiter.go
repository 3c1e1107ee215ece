// Copyright 2021 The ducks Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"math/rand"
	"sync"
	"time"

	"github.com/gogama/ducks/request"
)

// DefaultWaiter is a jittered exponential backoff starting at 50ms and
// capped at one second.
var DefaultWaiter = NewExpWaiter(50*time.Millisecond, time.Second, rand.NewSource(time.Now().UnixNano()))

// NewFixedWaiter returns a Waiter that always waits d.
func NewFixedWaiter(d time.Duration) Waiter {
	return fixedWaiter(d)
}

type fixedWaiter time.Duration

func (w fixedWaiter) Wait(_ *request.Execution) time.Duration {
	return time.Duration(w)
}

// NewExpWaiter returns a Waiter whose ceiling doubles with every
// attempt, starting at base and never exceeding max:
//
//	ceil = min(base * 2**attempt, max)
//
// With a nil src the waiter returns the ceiling itself. Otherwise it
// returns a uniformly random duration in [0, ceil) drawn from src
// ("full jitter"). The waiter serializes its use of src.
func NewExpWaiter(base, max time.Duration, src rand.Source) Waiter {
	if base <= 0 {
		panic("ducks/retry: base must be positive")
	}
	if max < base {
		panic("ducks/retry: max must be at least base")
	}
	w := &expWaiter{base: base, max: max}
	if src != nil {
		w.rand = rand.New(src)
	}
	return w
}

type expWaiter struct {
	base time.Duration
	max  time.Duration
	mu   sync.Mutex
	rand *rand.Rand
}

func (w *expWaiter) Wait(e *request.Execution) time.Duration {
	ceil := w.max
	if e.Attempt >= 0 && e.Attempt < 63 && w.base <= w.max>>uint(e.Attempt) {
		ceil = w.base << uint(e.Attempt)
	}
	if w.rand == nil {
		return ceil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return time.Duration(w.rand.Int63n(int64(ceil)))
}
