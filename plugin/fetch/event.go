// Copyright 2021 The ducks Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fetch

// An Event identifies a point in a Plugin execution at which installed
// handlers run.
type Event int

const (
	// BeforeExecutionStart occurs once, before the first attempt. Only
	// the execution's Descriptor is set.
	BeforeExecutionStart Event = iota
	// BeforeAttempt occurs before every HTTP attempt. The execution's
	// Request holds the request about to be sent and may be replaced
	// or modified; its Header is a private copy.
	BeforeAttempt
	// AfterAttempt occurs after every HTTP attempt, before the retry
	// policy is consulted. Response, Err or both are set.
	AfterAttempt
	// AfterPlanTimeout occurs when the deadline of the context passed
	// to Perform is exceeded, either during an attempt or while
	// waiting to retry.
	AfterPlanTimeout
	// AfterExecutionEnd occurs once, after the final attempt, when End
	// has been set.
	AfterExecutionEnd

	numEvents = int(AfterExecutionEnd) + 1
)

var eventNames = [numEvents]string{
	"BeforeExecutionStart",
	"BeforeAttempt",
	"AfterAttempt",
	"AfterPlanTimeout",
	"AfterExecutionEnd",
}

// Events returns every event in the order in which they can occur.
func Events() []Event {
	return []Event{
		BeforeExecutionStart,
		BeforeAttempt,
		AfterAttempt,
		AfterPlanTimeout,
		AfterExecutionEnd,
	}
}

// String returns the name of the event.
func (evt Event) String() string {
	if evt < 0 || int(evt) >= numEvents {
		return "Event(?)"
	}
	return eventNames[evt]
}
