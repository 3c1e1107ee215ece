// Copyright 2021 The ducks Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains the types exchanged between a duck and the
transport plugin that performs its network I/O: Descriptor (what to
send), Execution (how the sending went), and StatusError (the rejection
a transport produces for a non-success HTTP status).

A Descriptor is the whole contract between the request orchestrator and
a transport. It names a base URL, one of the five supported methods, a
path, and optional parameters:

	d := request.Descriptor{
		BaseURL: "https://dog.ceo/api",
		Method:  request.Get,
		Path:    "/breeds/list",
	}

Transports which make several HTTP attempts per descriptor, such as the
fetch-style plugin, keep track of their progress in an Execution. Retry
and timeout policies receive the Execution to make their decisions.
*/
package request
