// Copyright 2021 The ducks Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/net/http/httpguts"
)

// A Method is one of the HTTP methods a duck knows how to issue. The
// values are lower case, matching the descriptor handed to transports;
// use Upper to obtain the wire form.
type Method string

const (
	Delete Method = "delete"
	Get    Method = "get"
	Patch  Method = "patch"
	Post   Method = "post"
	Put    Method = "put"
)

// Methods returns the built-in methods in the order in which their
// action types are registered: DELETE, GET, PATCH, POST, PUT.
func Methods() []Method {
	return []Method{Delete, Get, Patch, Post, Put}
}

// Upper returns the upper-case form of m, which is both the HTTP
// method sent on the wire and the default verb in action types.
func (m Method) Upper() string {
	return strings.ToUpper(string(m))
}

// String returns the upper-case form of m.
func (m Method) String() string {
	return m.Upper()
}

// HasBody reports whether a request using m carries its parameters in
// a request body. Only PATCH, POST and PUT do.
func (m Method) HasBody() bool {
	switch Method(strings.ToLower(string(m))) {
	case Patch, Post, Put:
		return true
	default:
		return false
	}
}

// ValidToken reports whether s is a non-empty RFC 7230 token, which is
// the syntax required of an HTTP method.
func ValidToken(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !httpguts.IsTokenRune(r) {
			return false
		}
	}
	return true
}

// Params holds the optional per-request parameters. Body-bearing
// methods encode them as a JSON object.
type Params map[string]interface{}

// JSON encodes p as a JSON object. A nil p encodes to nil.
func (p Params) JSON() ([]byte, error) {
	if p == nil {
		return nil, nil
	}
	b, err := json.Marshal(map[string]interface{}(p))
	if err != nil {
		return nil, fmt.Errorf("ducks/request: cannot encode params: %w", err)
	}
	return b, nil
}

// A Descriptor describes one logical request a duck asks its transport
// to perform.
type Descriptor struct {
	// BaseURL is the prefix shared by every request of a duck, for
	// example "https://dog.ceo/api".
	BaseURL string

	// Method is the HTTP method to use.
	Method Method

	// Path is appended to BaseURL to form the target URL.
	Path string

	// Params contains the request parameters, if any.
	Params Params
}

// URL returns BaseURL and Path concatenated verbatim.
func (d Descriptor) URL() string {
	return d.BaseURL + d.Path
}

// Validate checks that the descriptor's method is usable on the wire.
// It does not check the URL; malformed URLs surface when the transport
// tries to send the request.
func (d Descriptor) Validate() error {
	if !ValidToken(d.Method.Upper()) {
		return fmt.Errorf("ducks/request: invalid method %q", string(d.Method))
	}
	return nil
}
