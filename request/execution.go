// Copyright 2021 The ducks Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"net/http"
	"time"

	"github.com/gogama/ducks/transient"
)

// An Execution records the progress of a transport working through one
// Descriptor, possibly over several HTTP attempts.
//
// Policies and event handlers may attach their own data using SetValue
// and Value, but must treat the exported fields as read-only. The one
// exception is Request, which a BeforeAttempt handler may replace, for
// example to sign it.
type Execution struct {
	// Descriptor is the request being executed. It is never nil.
	Descriptor *Descriptor

	// Start is the time the execution started. It is zero until then.
	Start time.Time

	// End is the time the execution ended. It is zero until then.
	End time.Time

	// Attempt is the zero-based index of the current HTTP attempt, and
	// after the execution ends, the index of the final attempt.
	Attempt int

	// AttemptTimeouts counts the attempts that ended in a timeout.
	AttemptTimeouts int

	// Request is the HTTP request for the current or most recent
	// attempt.
	Request *http.Request

	// Response is the HTTP response of the most recent attempt, or nil
	// if the attempt failed or is still underway.
	Response *http.Response

	// Err is the error of the most recent attempt, or nil. Once the
	// execution has ended it holds the same error returned to the
	// caller, always as a *url.Error.
	Err error

	// Body is the fully buffered response body of the most recent
	// attempt. It should be ignored unless Err is nil.
	Body []byte

	data context.Context
}

// StatusCode returns the HTTP status code of the most recent response,
// or zero if there is none.
func (e *Execution) StatusCode() int {
	if e.Response == nil {
		return 0
	}
	return e.Response.StatusCode
}

// Duration returns how long the execution has been running, or, once
// it has ended, how long it ran.
func (e *Execution) Duration() time.Duration {
	if !e.Started() {
		return 0
	} else if !e.Ended() {
		return time.Since(e.Start)
	}
	return e.End.Sub(e.Start)
}

// Started reports whether the execution has started.
func (e *Execution) Started() bool {
	return !e.Start.IsZero()
}

// Ended reports whether the execution has ended.
func (e *Execution) Ended() bool {
	return !e.End.IsZero()
}

// Timeout reports whether Err is a timeout.
func (e *Execution) Timeout() bool {
	return transient.Categorize(e.Err) == transient.Timeout
}

// SetValue attaches value to the execution under key. Keys follow the
// rules of context.WithValue: comparable, non-nil, and preferably of an
// unexported type.
func (e *Execution) SetValue(key, value interface{}) {
	ctx := e.data
	if ctx == nil {
		ctx = context.Background()
	}
	e.data = context.WithValue(ctx, key, value)
}

// Value returns the value attached under key, or nil.
func (e *Execution) Value(key interface{}) interface{} {
	if e.data == nil {
		return nil
	}
	return e.data.Value(key)
}
