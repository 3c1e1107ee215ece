// Copyright 2021 The ducks Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/gogama/ducks/request"
	"github.com/gogama/ducks/retry"
	"github.com/gogama/ducks/timeout"
)

// An HTTPDoer sends one HTTP request and returns its response, with the
// contract of http.Client.Do from net/http.
type HTTPDoer interface {
	Do(r *http.Request) (*http.Response, error)
}

// Plugin is the fetch-style transport. Its zero value is ready to use
// and it is safe for concurrent use once configured.
type Plugin struct {
	// HTTPDoer sends the individual HTTP attempts. If nil,
	// http.DefaultClient is used.
	HTTPDoer HTTPDoer

	// RetryPolicy decides whether to repeat an attempt. If nil,
	// retry.Never is used, so a failure is reported at once.
	RetryPolicy retry.Policy

	// TimeoutPolicy sets the timeout of each attempt. If nil,
	// timeout.DefaultPolicy is used.
	TimeoutPolicy timeout.Policy

	// Header, if non-nil, replaces the default request headers
	// (which are empty, or just a JSON Content-Type for PATCH, POST
	// and PUT).
	Header http.Header

	// Handlers are run at the events of each execution. May be nil.
	Handlers *HandlerGroup

	// Logger receives debug output about retries. If nil, log.Log is
	// used.
	Logger log.Interface
}

// Default is the transport used by ducks configured without one.
var Default = &Plugin{}

// Perform sends the request described by d and decodes the JSON body
// of a 2XX response. An empty body decodes to nil.
//
// A response with any other status yields a *request.StatusError. All
// other errors are *url.Error values.
func (p *Plugin) Perform(ctx context.Context, d request.Descriptor) (interface{}, error) {
	e, err := p.Do(ctx, d)
	if err != nil {
		return nil, err
	}
	if !request.Success(e.StatusCode()) {
		return nil, &request.StatusError{
			Status: e.StatusCode(),
			Data:   decodeLenient(e.Body),
		}
	}
	v, err := decode(e.Body)
	if err != nil {
		return nil, urlErrorWrap(d, err)
	}
	return v, nil
}

// Do executes d following the plugin's retry and timeout policies and
// returns the final state of the execution. The error is the
// execution's Err. A non-2XX status is not an error at this level.
//
// The returned Execution is never nil.
func (p *Plugin) Do(ctx context.Context, d request.Descriptor) (*request.Execution, error) {
	e := &request.Execution{Descriptor: &d}
	if ctx == nil {
		e.Err = urlErrorWrap(d, errors.New("ducks/fetch: nil context"))
		return e, e.Err
	}
	body, err := prepare(d)
	if err != nil {
		e.Err = urlErrorWrap(d, err)
		return e, e.Err
	}

	doer := p.doer()
	retryPolicy := p.RetryPolicy
	if retryPolicy == nil {
		retryPolicy = retry.Never
	}
	timeoutPolicy := p.TimeoutPolicy
	if timeoutPolicy == nil {
		timeoutPolicy = timeout.DefaultPolicy
	}
	logger := p.Logger
	if logger == nil {
		logger = log.Log
	}
	header := p.header(d.Method)

	p.Handlers.run(BeforeExecutionStart, e)
	e.Start = time.Now()

RetryLoop:
	for {
		p.attempt(ctx, e, doer, timeoutPolicy, header, body)
		if e.Timeout() {
			e.AttemptTimeouts++
		}
		p.Handlers.run(AfterAttempt, e)
		ctxErr := ctx.Err()
		if ctxErr == context.DeadlineExceeded {
			p.Handlers.run(AfterPlanTimeout, e)
			break
		} else if ctxErr != nil {
			e.Err = urlErrorWrap(d, ctxErr)
			break
		} else if !retryPolicy.Decide(e) {
			break
		}

		wait := retryPolicy.Wait(e)
		logger.WithFields(log.Fields{
			"method":  d.Method.Upper(),
			"url":     d.URL(),
			"attempt": e.Attempt,
			"status":  e.StatusCode(),
			"wait":    wait,
		}).Debug("fetch: retrying")
		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			e.Err = urlErrorWrap(d, ctx.Err())
			if ctx.Err() == context.DeadlineExceeded {
				p.Handlers.run(AfterPlanTimeout, e)
			}
			break RetryLoop
		}
		e.Response = nil
		e.Body = nil
		e.Err = nil
		e.Attempt++
	}

	e.End = time.Now()
	p.Handlers.run(AfterExecutionEnd, e)
	return e, e.Err
}

func (p *Plugin) attempt(ctx context.Context, e *request.Execution, doer HTTPDoer, tp timeout.Policy, header http.Header, body []byte) {
	ctx, cancel := context.WithTimeout(ctx, tp.Timeout(e))
	defer cancel()

	d := *e.Descriptor
	var rd io.Reader
	if len(body) > 0 {
		rd = bytes.NewReader(body)
	}
	r, err := http.NewRequestWithContext(ctx, d.Method.Upper(), d.URL(), rd)
	if err != nil {
		e.Err = urlErrorWrap(d, err)
		return
	}
	r.Header = header.Clone()
	e.Request = r
	p.Handlers.run(BeforeAttempt, e)

	e.Response, err = doer.Do(e.Request)
	if err != nil {
		e.Response = nil
		e.Err = urlErrorWrap(d, err)
		return
	}
	defer func() {
		_ = e.Response.Body.Close()
	}()
	e.Body, err = io.ReadAll(e.Response.Body)
	if err != nil {
		e.Body = nil
		e.Err = urlErrorWrap(d, err)
	}
}

func (p *Plugin) doer() HTTPDoer {
	if p.HTTPDoer == nil {
		return http.DefaultClient
	}
	return p.HTTPDoer
}

func (p *Plugin) header(m request.Method) http.Header {
	if p.Header != nil {
		return p.Header.Clone()
	}
	h := make(http.Header)
	if m.HasBody() {
		h.Set("Content-Type", "application/json")
	}
	return h
}

// prepare validates d and returns the request body to send.
func prepare(d request.Descriptor) ([]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if _, err := url.Parse(d.URL()); err != nil {
		return nil, err
	}
	if !d.Method.HasBody() {
		return nil, nil
	}
	return d.Params.JSON()
}

func decode(body []byte) (interface{}, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, fmt.Errorf("ducks/fetch: invalid JSON response body: %w", err)
	}
	return v, nil
}

func decodeLenient(body []byte) interface{} {
	v, err := decode(body)
	if err != nil {
		return string(body)
	}
	return v
}

func urlErrorWrap(d request.Descriptor, err error) error {
	if _, ok := err.(*url.Error); ok {
		return err
	}
	return &url.Error{
		Op:  urlErrorOp(d.Method.Upper()),
		URL: d.URL(),
		Err: err,
	}
}

// urlErrorOp follows net/http: "GET" becomes "Get".
func urlErrorOp(method string) string {
	if method == "" {
		return "Get"
	}
	return method[:1] + strings.ToLower(method[1:])
}
