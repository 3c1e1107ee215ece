// Copyright 2021 The ducks Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ducks

import (
	"strings"

	"github.com/gogama/ducks/request"
)

// TypeString returns the action type of the given duck name, verb and
// status: "[name] VERB: STATUS". The verb is upper-cased.
//
// Action types are the only key used to route actions to reducers, so
// two ducks sharing a name will handle each other's actions.
func TypeString(name, verb string, status Status) string {
	return "[" + name + "] " + strings.ToUpper(verb) + ": " + status.String()
}

// TypesForAllMethods returns the action types of the given status for
// every built-in method, in the order of request.Methods.
func TypesForAllMethods(name string, status Status) []string {
	methods := request.Methods()
	types := make([]string, len(methods))
	for i, m := range methods {
		types[i] = TypeString(name, m.Upper(), status)
	}
	return types
}

// ParseType splits an action type made by TypeString into its duck
// name, verb and status. The verb is returned as it appears in the
// type, that is upper case. ok is false for any other string.
func ParseType(t string) (name, verb string, status Status, ok bool) {
	if !strings.HasPrefix(t, "[") {
		return "", "", 0, false
	}
	end := strings.LastIndex(t, "] ")
	colon := strings.LastIndex(t, ": ")
	if end < 0 || colon < end+2 {
		return "", "", 0, false
	}
	for _, s := range Statuses() {
		if t[colon+2:] == s.String() {
			return t[1:end], t[end+2 : colon], s, true
		}
	}
	return "", "", 0, false
}
