// Copyright 2021 The ducks Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package retry provides retry policies for the fetch-style transport.
//
// Ducks themselves never retry: a failed transport call becomes an
// ERROR action. A transport may however repeat HTTP attempts before
// reporting its outcome, and a Policy decides whether and after how
// long it does so. Assemble one from a Decider and a Waiter:
//
//	decider := retry.Times(3).And(retry.StatusCode(502, 503).Or(retry.TransientErr))
//	policy := retry.NewPolicy(decider, retry.NewExpWaiter(100*time.Millisecond, 2*time.Second, nil))
//	plugin := &fetch.Plugin{RetryPolicy: policy}
package retry
