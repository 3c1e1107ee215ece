// Copyright 2021 The ducks Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"fmt"
	"net/http"
)

// A StatusError is the rejection produced by a transport when the
// server answers with a non-success HTTP status.
type StatusError struct {
	// Status is the HTTP status code received.
	Status int

	// Data is the response body, decoded from JSON when possible and
	// otherwise kept as a string. It is nil for an empty body.
	Data interface{}
}

func (err *StatusError) Error() string {
	text := http.StatusText(err.Status)
	if text == "" {
		return fmt.Sprintf("ducks/request: unexpected status %d", err.Status)
	}
	return fmt.Sprintf("ducks/request: unexpected status %d (%s)", err.Status, text)
}

// Success reports whether status is in the 2XX range.
func Success(status int) bool {
	return status >= 200 && status < 300
}
