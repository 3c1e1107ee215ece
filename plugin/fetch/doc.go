// Copyright 2021 The ducks Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package fetch provides the default transport used by ducks which were
not configured with one. It behaves like the browser fetch API wrapped
the way ducks expect:

• the URL is the descriptor's base URL followed by its path;

• the method is sent upper case;

• for PATCH, POST and PUT the parameters are sent as a JSON object and
the Content-Type header is set to application/json, unless the plugin
has its own Header, which then replaces the default headers entirely;

• a 2XX response resolves with the decoded JSON body; any other status
rejects with a *request.StatusError carrying the status and body.

The zero value Plugin is ready to use:

	duck := ducks.New("widgets", ducks.Config{
		BaseURL:   "https://api.example.com",
		Transport: &fetch.Plugin{},
	})

Unlike a browser fetch, Plugin can repeat failed attempts and time them
out individually. Both are off or generous by default; set RetryPolicy
and TimeoutPolicy to change that. Handlers installed in a HandlerGroup
run at fixed points of every execution:

	handlers := &fetch.HandlerGroup{}
	handlers.PushBack(fetch.BeforeAttempt, fetch.HandlerFunc(
		func(_ fetch.Event, e *request.Execution) {
			e.Request.Header.Set("Authorization", "Bearer "+token)
		}))
	plugin := &fetch.Plugin{Handlers: handlers}
*/
package fetch
