// Copyright 2021 The ducks Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ducks

// A Status is the lifecycle stage of a request. Every request produces
// exactly one Begin action followed by exactly one Success or Error
// action.
type Status int

const (
	// Begin is dispatched before the transport is invoked.
	Begin Status = iota
	// Success is dispatched after the transport returned a result.
	Success
	// Error is dispatched after the transport failed.
	Error

	numStatuses = int(Error) + 1
)

var statusNames = [numStatuses]string{
	"BEGIN",
	"SUCCESS",
	"ERROR",
}

// Statuses returns every status in lifecycle order.
func Statuses() []Status {
	return []Status{Begin, Success, Error}
}

// String returns the name of the status as it appears in action types.
func (s Status) String() string {
	if s < 0 || int(s) >= numStatuses {
		return "UNKNOWN"
	}
	return statusNames[s]
}
