// Copyright 2021 The ducks Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"errors"
	"io"
	"syscall"
)

// A Category is the transience category of an error as reported by
// Categorize. Every category except Not is transient.
type Category int

const (
	// Not is the category of nil errors and of errors a retry is
	// unlikely to cure.
	Not Category = iota
	// Timeout is the category of client-side timeouts: the error, or
	// an error it wraps, has a Timeout method returning true.
	Timeout
	// ConnRefused is the category of syscall.ECONNREFUSED, typically
	// seen while the remote service is (re)starting.
	ConnRefused
	// ConnReset is the category of syscall.ECONNRESET, typically seen
	// when a server or load balancer drops a live connection.
	ConnReset
	// ConnClosed is the category of a connection closed before the
	// response was complete (io.EOF or io.ErrUnexpectedEOF).
	ConnClosed
)

var categoryNames = []string{
	"Not",
	"Timeout",
	"ConnRefused",
	"ConnReset",
	"ConnClosed",
}

// String returns the name of the category.
func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "Category(?)"
	}
	return categoryNames[c]
}

// Categorize returns the category of err, looking through wrapped
// errors. Timeout takes priority over the connection categories.
// Temporary methods are ignored.
func Categorize(err error) Category {
	if err == nil {
		return Not
	}
	var t timeouter
	if errors.As(err, &t) && t.Timeout() {
		return Timeout
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ECONNREFUSED:
			return ConnRefused
		case syscall.ECONNRESET:
			return ConnReset
		}
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return ConnClosed
	}
	return Not
}

// Is reports whether err falls in any transient category.
func Is(err error) bool {
	return Categorize(err) != Not
}

type timeouter interface {
	Timeout() bool
}
