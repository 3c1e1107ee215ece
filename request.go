// Copyright 2021 The ducks Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ducks

import (
	"context"

	"github.com/apex/log"
	"github.com/gogama/ducks/plugin/fetch"
	"github.com/gogama/ducks/request"
)

// RequestOptions customize one request. The zero value issues a plain
// request without params.
type RequestOptions struct {
	// Params are handed to the transport and, on success, carried by
	// the SUCCESS action.
	Params request.Params

	// Verb replaces the method name in the request's action types. It
	// is registered with the duck before the request begins.
	Verb string

	// ActionModifiers contribute Meta to the lifecycle actions.
	ActionModifiers ActionModifiers

	// OnSuccess is called with the response before the SUCCESS action
	// is dispatched.
	OnSuccess func(dispatch Dispatch, getState GetState, response interface{})

	// OnError is called with the error before the ERROR action is
	// dispatched. It cannot stop the error from reaching the caller.
	OnError func(dispatch Dispatch, getState GetState, err error)

	// Resolver, StoreParams and Extra are passed to the reducer in the
	// SUCCESS action's Opts.
	Resolver    Resolver
	StoreParams bool
	Extra       map[string]interface{}
}

func (o *RequestOptions) residual() Opts {
	return Opts{
		Resolver:    o.Resolver,
		StoreParams: o.StoreParams,
		Extra:       o.Extra,
	}
}

// Request returns a thunk which performs a method request for path.
//
// Running the thunk dispatches a BEGIN action, calls the transport and
// then dispatches exactly one of SUCCESS or ERROR. On success it
// returns the transport's response. On failure it returns the
// transport's error unchanged.
//
// A custom verb in opts is registered immediately, so the duck handles
// its action types even before the thunk runs.
func (d *Duck) Request(method request.Method, path string, opts RequestOptions) Thunk {
	verb := method.Upper()
	if opts.Verb != "" {
		d.RegisterType(opts.Verb)
		verb = opts.Verb
	}
	transport := d.cfg.Transport
	if transport == nil {
		transport = fetch.Default
	}
	desc := request.Descriptor{
		BaseURL: d.cfg.BaseURL,
		Method:  method,
		Path:    path,
		Params:  opts.Params,
	}
	mods := opts.ActionModifiers

	return func(ctx context.Context, dispatch Dispatch, getState GetState) (interface{}, error) {
		ctx = orBackground(ctx)
		logger := d.logger().WithFields(log.Fields{
			"duck":   d.name,
			"method": verb,
			"path":   path,
		})

		a := Action{Type: TypeString(d.name, verb, Begin)}
		if mods.Begin != nil {
			a.Meta = mods.Begin(getState)
		}
		logger.WithField("type", a.Type).Debug("ducks: dispatch")
		dispatch(a)

		response, err := transport.Perform(ctx, desc)
		if err != nil {
			if opts.OnError != nil {
				opts.OnError(dispatch, getState, err)
			}
			a = Action{Type: TypeString(d.name, verb, Error), Error: err}
			if mods.Error != nil {
				a.Meta = mods.Error(err, getState)
			}
			logger.WithField("type", a.Type).WithError(err).Debug("ducks: dispatch")
			dispatch(a)
			return nil, err
		}

		if opts.OnSuccess != nil {
			opts.OnSuccess(dispatch, getState, response)
		}
		a = Action{
			Type:     TypeString(d.name, verb, Success),
			Response: response,
			Opts:     opts.residual(),
		}
		if len(opts.Params) > 0 {
			a.Params = opts.Params
		}
		if mods.Success != nil {
			a.Meta = mods.Success(response, getState)
		}
		logger.WithField("type", a.Type).Debug("ducks: dispatch")
		dispatch(a)
		return response, nil
	}
}

// Get returns a thunk for a GET request. See Request.
func (d *Duck) Get(path string, opts ...RequestOptions) Thunk {
	return d.Request(request.Get, path, first(opts))
}

// Post returns a thunk for a POST request. See Request.
func (d *Duck) Post(path string, opts ...RequestOptions) Thunk {
	return d.Request(request.Post, path, first(opts))
}

// Put returns a thunk for a PUT request. See Request.
func (d *Duck) Put(path string, opts ...RequestOptions) Thunk {
	return d.Request(request.Put, path, first(opts))
}

// Patch returns a thunk for a PATCH request. See Request.
func (d *Duck) Patch(path string, opts ...RequestOptions) Thunk {
	return d.Request(request.Patch, path, first(opts))
}

// Delete returns a thunk for a DELETE request. See Request.
func (d *Duck) Delete(path string, opts ...RequestOptions) Thunk {
	return d.Request(request.Delete, path, first(opts))
}

func first(opts []RequestOptions) RequestOptions {
	if len(opts) == 0 {
		return RequestOptions{}
	}
	return opts[0]
}

func orBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
