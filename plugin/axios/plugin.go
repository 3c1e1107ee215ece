// Copyright 2021 The ducks Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package axios provides a transport modelled on the axios HTTP client:
// parameters are always sent as the JSON request data, the request
// configuration is layered over the descriptor, and the transport
// resolves with the response data rather than the response itself.
//
//	duck := ducks.New("breeds", ducks.Config{
//		BaseURL:   "https://dog.ceo/api",
//		Transport: axios.New(axios.Config{DataPath: "message"}),
//	})
package axios

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gogama/ducks/request"
	"github.com/tidwall/gjson"
)

// Config is layered over every request the plugin sends.
type Config struct {
	// Header is added to every request. The JSON Content-Type is
	// always set when there is request data, unless Header sets its
	// own Content-Type.
	Header http.Header

	// Timeout bounds each request, including reading the response.
	// Zero means no timeout beyond the caller's context.
	Timeout time.Duration

	// DataPath, if set, is a gjson path selecting the part of the
	// response body to resolve with, for example "message" or
	// "data.items". A path matching nothing resolves with nil.
	DataPath string
}

// Plugin is the axios-style transport. It is safe for concurrent use.
type Plugin struct {
	// Client sends the requests. If nil, http.DefaultClient is used.
	Client *http.Client

	Config Config
}

// New returns a plugin using http.DefaultClient and cfg.
func New(cfg Config) *Plugin {
	return &Plugin{Config: cfg}
}

// Perform sends d and resolves with the decoded response data. A
// non-2XX status rejects with a *request.StatusError.
func (p *Plugin) Perform(ctx context.Context, d request.Descriptor) (interface{}, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if p.Config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Config.Timeout)
		defer cancel()
	}

	data, err := d.Params.JSON()
	if err != nil {
		return nil, err
	}
	var body io.Reader
	if data != nil {
		body = bytes.NewReader(data)
	}
	r, err := http.NewRequestWithContext(ctx, d.Method.Upper(), combineURL(d.BaseURL, d.Path), body)
	if err != nil {
		return nil, err
	}
	for k, vs := range p.Config.Header {
		for _, v := range vs {
			r.Header.Add(k, v)
		}
	}
	if data != nil && r.Header.Get("Content-Type") == "" {
		r.Header.Set("Content-Type", "application/json")
	}
	r.Header.Set("Accept", "application/json, text/plain, */*")

	resp, err := p.client().Do(r)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if !request.Success(resp.StatusCode) {
		return nil, &request.StatusError{Status: resp.StatusCode, Data: responseData(raw, "")}
	}
	return responseData(raw, p.Config.DataPath), nil
}

func (p *Plugin) client() *http.Client {
	if p.Client == nil {
		return http.DefaultClient
	}
	return p.Client
}

// responseData decodes a JSON body, falling back to the raw text the
// way axios does for bodies which are not JSON.
func responseData(raw []byte, path string) interface{} {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if !gjson.ValidBytes(raw) {
		return string(raw)
	}
	if path == "" {
		var v interface{}
		if err := json.Unmarshal(raw, &v); err != nil {
			return string(raw)
		}
		return v
	}
	res := gjson.GetBytes(raw, path)
	if !res.Exists() {
		return nil
	}
	return res.Value()
}

// combineURL joins base and path with exactly one slash, unless path is
// already absolute, in which case base is ignored.
func combineURL(base, path string) string {
	if base == "" || isAbsoluteURL(path) {
		return path
	}
	if path == "" {
		return base
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

func isAbsoluteURL(s string) bool {
	if strings.HasPrefix(s, "//") {
		return true
	}
	i := strings.Index(s, "://")
	if i <= 0 {
		return false
	}
	for j, r := range s[:i] {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case j > 0 && (r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}
