// Copyright 2021 The ducks Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package ducks generates request ducks: named bundles of a reducer and
request thunks which track the lifecycle of network requests in state.

Create a Duck for each resource your program loads.

	widgets := ducks.New("widgets", ducks.Config{
		BaseURL: "https://api.example.com",
	})

Each request method returns a Thunk. Running it dispatches a BEGIN
action, performs the request through the duck's Transport and then
dispatches a SUCCESS or an ERROR action. The action types are strings
of the form "[widgets] GET: BEGIN".

	s := store.New(widgets.Reducer(), nil)
	resp, err := s.Run(ctx, widgets.Get("/list"))

The duck's reducer turns those actions into state. While the request is
in flight the state's loading flag is set. A successful response which
is a JSON object is merged into the state and sets didLoad. A failure
stores the error and leaves the other fields alone.

	st := s.State()
	if st.Loading() { ... }
	items := st["items"]

Requests can be given a custom verb, which replaces the method name in
their action types:

	widgets.Get("/search", ducks.RequestOptions{
		Verb:   "search",
		Params: request.Params{"q": "blue"},
	})

A Resolver takes over shaping the state on success, and ActionModifiers
attach extra Meta to each action.

# Transports

The Transport interface decouples ducks from HTTP. Without one, ducks
use fetch.Default from package plugin/fetch, which sends params as a
JSON body for PATCH, POST and PUT and decodes JSON responses. Package
plugin/axios offers the alternative that sends params as data for every
method. Any function can be a transport via TransportFunc.

# Factories

A Factory creates ducks sharing a default configuration:

	f := ducks.NewFactory(ducks.Config{BaseURL: "https://api.example.com"})
	users := f.Create("users")
	legacy := f.Create("legacy", ducks.Config{BaseURL: "https://old.example.com"})

ConfigFromEnv loads a default configuration from DUCKS_* environment
variables.
*/
package ducks
