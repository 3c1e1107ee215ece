// Copyright 2021 The ducks Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ducks_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/apex/log"
	"github.com/apex/log/handlers/memory"
	"github.com/gogama/ducks"
	"github.com/gogama/ducks/request"
	"github.com/gogama/ducks/store"
	"github.com/gogama/ducks/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stub is a transport returning fixed results and recording what it
// was asked to do.
type stub struct {
	mu       sync.Mutex
	response interface{}
	err      error
	descs    []request.Descriptor
	ctxs     []context.Context
}

func (s *stub) Perform(ctx context.Context, d request.Descriptor) (interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.descs = append(s.descs, d)
	s.ctxs = append(s.ctxs, ctx)
	return s.response, s.err
}

func (s *stub) last() request.Descriptor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.descs[len(s.descs)-1]
}

func TestDuck_Request_Success(t *testing.T) {
	tr := &stub{response: map[string]interface{}{"items": []interface{}{1, 2}}}
	d := ducks.New("widgets", ducks.Config{BaseURL: "http://x", Transport: tr})
	rec := storetest.NewWithReducer(d.Reducer(), nil)

	resp, err := rec.Run(context.Background(), d.Get("/list"))

	require.NoError(t, err)
	assert.Equal(t, tr.response, resp)
	assert.Equal(t, []ducks.Action{
		{Type: "[widgets] GET: BEGIN"},
		{Type: "[widgets] GET: SUCCESS", Response: tr.response, Opts: ducks.Opts{}},
	}, rec.Actions())
	assert.Equal(t, ducks.State{
		"items":          []interface{}{1, 2},
		ducks.KeyDidLoad: true,
		ducks.KeyLoading: false,
		ducks.KeyError:   nil,
	}, rec.State())
	assert.Equal(t, request.Descriptor{BaseURL: "http://x", Method: request.Get, Path: "/list"}, tr.last())
}

func TestDuck_Request_Error(t *testing.T) {
	boom := errors.New("boom")
	tr := &stub{err: boom}
	d := ducks.New("widgets", ducks.Config{BaseURL: "http://x", Transport: tr})
	prior := ducks.State{"items": []interface{}{1}, ducks.KeyDidLoad: true, ducks.KeyLoading: false, ducks.KeyError: nil}
	rec := storetest.NewWithReducer(d.Reducer(), prior)

	resp, err := rec.Run(context.Background(), d.Get("/list"))

	assert.Nil(t, resp)
	assert.Same(t, boom, err)
	assert.Equal(t, []ducks.Action{
		{Type: "[widgets] GET: BEGIN"},
		{Type: "[widgets] GET: ERROR", Error: boom},
	}, rec.Actions())
	assert.Equal(t, ducks.State{
		"items":          []interface{}{1},
		ducks.KeyDidLoad: true,
		ducks.KeyLoading: false,
		ducks.KeyError:   boom,
	}, rec.State())
}

func TestDuck_Request_Verb(t *testing.T) {
	tr := &stub{response: map[string]interface{}{}}
	d := ducks.New("widgets", ducks.Config{Transport: tr})
	rec := storetest.NewWithReducer(d.Reducer(), nil)

	_, err := rec.Run(context.Background(), d.Get("/search", ducks.RequestOptions{Verb: "search"}))
	require.NoError(t, err)
	_, err = rec.Run(context.Background(), d.Get("/list"))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"[widgets] SEARCH: BEGIN",
		"[widgets] SEARCH: SUCCESS",
		"[widgets] GET: BEGIN",
		"[widgets] GET: SUCCESS",
	}, rec.Types())
	assert.Equal(t, request.Get, tr.last().Method)
	assert.True(t, rec.State().DidLoad())
}

func TestDuck_Request_VerbRegisteredBeforeRun(t *testing.T) {
	d := ducks.New("widgets", ducks.Config{Transport: &stub{}})
	_ = d.Post("/x", ducks.RequestOptions{Verb: "Archive"})
	next := d.Reducer()(ducks.State{}, ducks.Action{Type: "[widgets] ARCHIVE: BEGIN"})
	assert.True(t, next.Loading())
}

func TestDuck_Request_Resolver(t *testing.T) {
	tr := &stub{response: map[string]interface{}{"items": []interface{}{"a"}}}
	d := ducks.New("widgets", ducks.Config{Transport: tr})
	rec := storetest.NewWithReducer(d.Reducer(), nil)

	_, err := rec.Run(context.Background(), d.Get("/list", ducks.RequestOptions{
		Resolver: func(state ducks.State, a ducks.Action) ducks.State {
			return state.Merge(map[string]interface{}{"customKey": a.Response})
		},
	}))

	require.NoError(t, err)
	st := rec.State()
	assert.Equal(t, tr.response, st["customKey"])
	assert.NotContains(t, st, "items")
	assert.True(t, st.DidLoad())
	assert.False(t, st.Loading())
}

func TestDuck_Request_Params(t *testing.T) {
	tr := &stub{response: "ok"}
	d := ducks.New("widgets", ducks.Config{Transport: tr})

	t.Run("present", func(t *testing.T) {
		rec := storetest.New(nil)
		params := request.Params{"name": "blue"}
		_, err := rec.Run(context.Background(), d.Post("/w", ducks.RequestOptions{Params: params}))
		require.NoError(t, err)
		assert.Equal(t, params, tr.last().Params)
		assert.Equal(t, params, rec.Actions()[1].Params)
	})
	t.Run("empty omitted", func(t *testing.T) {
		rec := storetest.New(nil)
		_, err := rec.Run(context.Background(), d.Put("/w", ducks.RequestOptions{Params: request.Params{}}))
		require.NoError(t, err)
		assert.Nil(t, rec.Actions()[1].Params)
		assert.Equal(t, request.Params{}, tr.last().Params)
	})
	t.Run("stored", func(t *testing.T) {
		params := request.Params{"page": 2}
		rec := storetest.NewWithReducer(d.Reducer(), nil)
		_, err := rec.Run(context.Background(), d.Get("/w", ducks.RequestOptions{Params: params, StoreParams: true}))
		require.NoError(t, err)
		assert.Equal(t, params, rec.State()[ducks.KeyParams])
	})
}

func TestDuck_Request_Opts(t *testing.T) {
	d := ducks.New("widgets", ducks.Config{Transport: &stub{}})
	rec := storetest.New(nil)
	extra := map[string]interface{}{"page": 3}
	_, err := rec.Run(context.Background(), d.Get("/w", ducks.RequestOptions{StoreParams: true, Extra: extra}))
	require.NoError(t, err)
	assert.Equal(t, ducks.Opts{StoreParams: true, Extra: extra}, rec.Actions()[1].Opts)
}

func TestDuck_Request_Modifiers(t *testing.T) {
	boom := errors.New("boom")
	var seen []bool
	mods := ducks.ActionModifiers{
		Begin: func(getState ducks.GetState) map[string]interface{} {
			seen = append(seen, getState().Loading())
			return map[string]interface{}{"stage": "begin", "type": "ignored"}
		},
		Success: func(response interface{}, getState ducks.GetState) map[string]interface{} {
			seen = append(seen, getState().Loading())
			return map[string]interface{}{"stage": "success", "got": response}
		},
		Error: func(err error, getState ducks.GetState) map[string]interface{} {
			seen = append(seen, getState().Loading())
			return map[string]interface{}{"stage": "error", "msg": err.Error()}
		},
	}

	t.Run("success", func(t *testing.T) {
		seen = nil
		d := ducks.New("m", ducks.Config{Transport: &stub{response: "r"}})
		rec := storetest.NewWithReducer(d.Reducer(), nil)
		_, err := rec.Run(context.Background(), d.Get("/", ducks.RequestOptions{ActionModifiers: mods}))
		require.NoError(t, err)
		actions := rec.Actions()
		require.Len(t, actions, 2)
		assert.Equal(t, "[m] GET: BEGIN", actions[0].Type)
		assert.Equal(t, map[string]interface{}{"stage": "begin", "type": "ignored"}, actions[0].Meta)
		assert.Equal(t, "[m] GET: SUCCESS", actions[1].Type)
		assert.Equal(t, "r", actions[1].Response)
		assert.Equal(t, map[string]interface{}{"stage": "success", "got": "r"}, actions[1].Meta)
		assert.Equal(t, []bool{false, true}, seen)
	})
	t.Run("error", func(t *testing.T) {
		seen = nil
		d := ducks.New("m", ducks.Config{Transport: &stub{err: boom}})
		rec := storetest.NewWithReducer(d.Reducer(), nil)
		_, err := rec.Run(context.Background(), d.Delete("/", ducks.RequestOptions{ActionModifiers: mods}))
		assert.Same(t, boom, err)
		actions := rec.Actions()
		require.Len(t, actions, 2)
		assert.Equal(t, "[m] DELETE: ERROR", actions[1].Type)
		assert.Same(t, boom, actions[1].Error)
		assert.Equal(t, map[string]interface{}{"stage": "error", "msg": "boom"}, actions[1].Meta)
		assert.Equal(t, []bool{false, true}, seen)
	})
}

func TestDuck_Request_Callbacks(t *testing.T) {
	boom := errors.New("boom")

	t.Run("OnSuccess before SUCCESS", func(t *testing.T) {
		d := ducks.New("c", ducks.Config{Transport: &stub{response: 42}})
		rec := storetest.New(ducks.State{})
		var got interface{}
		_, err := rec.Run(context.Background(), d.Patch("/", ducks.RequestOptions{
			OnSuccess: func(dispatch ducks.Dispatch, _ ducks.GetState, response interface{}) {
				got = response
				dispatch(ducks.Action{Type: "side effect"})
			},
			OnError: func(ducks.Dispatch, ducks.GetState, error) {
				t.Error("OnError called on success")
			},
		}))
		require.NoError(t, err)
		assert.Equal(t, 42, got)
		assert.Equal(t, []string{"[c] PATCH: BEGIN", "side effect", "[c] PATCH: SUCCESS"}, rec.Types())
	})
	t.Run("OnError before ERROR", func(t *testing.T) {
		d := ducks.New("c", ducks.Config{Transport: &stub{err: boom}})
		rec := storetest.New(ducks.State{})
		var got error
		_, err := rec.Run(context.Background(), d.Patch("/", ducks.RequestOptions{
			OnError: func(dispatch ducks.Dispatch, _ ducks.GetState, err error) {
				got = err
				dispatch(ducks.Action{Type: "side effect"})
			},
		}))
		assert.Same(t, boom, err)
		assert.Same(t, boom, got)
		assert.Equal(t, []string{"[c] PATCH: BEGIN", "side effect", "[c] PATCH: ERROR"}, rec.Types())
	})
}

func TestDuck_Request_Methods(t *testing.T) {
	tr := &stub{}
	d := ducks.New("w", ducks.Config{Transport: tr})
	thunks := map[request.Method]ducks.Thunk{
		request.Get:    d.Get("/p"),
		request.Post:   d.Post("/p"),
		request.Put:    d.Put("/p"),
		request.Patch:  d.Patch("/p"),
		request.Delete: d.Delete("/p"),
	}
	for method, thunk := range thunks {
		rec := storetest.New(nil)
		_, err := rec.Run(context.Background(), thunk)
		require.NoError(t, err)
		assert.Equal(t, method, tr.last().Method)
		assert.Equal(t, "/p", tr.last().Path)
		assert.Equal(t, []string{
			ducks.TypeString("w", method.Upper(), ducks.Begin),
			ducks.TypeString("w", method.Upper(), ducks.Success),
		}, rec.Types())
	}
}

func TestDuck_Request_Context(t *testing.T) {
	type key struct{}
	tr := &stub{}
	d := ducks.New("w", ducks.Config{Transport: tr})
	rec := storetest.New(nil)

	ctx := context.WithValue(context.Background(), key{}, "v")
	_, _ = rec.Run(ctx, d.Get("/"))
	assert.Equal(t, "v", tr.ctxs[0].Value(key{}))

	_, _ = rec.Run(nil, d.Get("/"))
	assert.NotNil(t, tr.ctxs[1])
}

func TestDuck_Request_DefaultTransport(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"message":["hound"],"status":"success"}`)
	}))
	defer s.Close()

	d := ducks.New("breeds", ducks.Config{BaseURL: s.URL})
	st := store.New(d.Reducer(), nil)
	resp, err := st.Run(context.Background(), d.Get("/breeds/list"))

	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"message": []interface{}{"hound"}, "status": "success"}, resp)
	assert.Equal(t, []interface{}{"hound"}, st.State()["message"])
}

func TestDuck_Request_NoBaseURL(t *testing.T) {
	d := ducks.New("w", ducks.Config{})
	rec := storetest.NewWithReducer(d.Reducer(), nil)
	_, err := rec.Run(context.Background(), d.Get("/nowhere"))
	require.Error(t, err)
	assert.Equal(t, []string{"[w] GET: BEGIN", "[w] GET: ERROR"}, rec.Types())
	assert.Equal(t, err, rec.State().Err())
}

func TestDuck_Request_Logging(t *testing.T) {
	h := memory.New()
	logger := &log.Logger{Handler: h, Level: log.DebugLevel}
	boom := errors.New("boom")
	d := ducks.New("w", ducks.Config{Transport: &stub{err: boom}, Logger: logger})

	_, _ = storetest.New(nil).Run(context.Background(), d.Get("/x"))

	require.Len(t, h.Entries, 2)
	assert.Equal(t, "ducks: dispatch", h.Entries[0].Message)
	assert.Equal(t, "w", h.Entries[0].Fields["duck"])
	assert.Equal(t, "GET", h.Entries[0].Fields["method"])
	assert.Equal(t, "/x", h.Entries[0].Fields["path"])
	assert.Equal(t, "[w] GET: BEGIN", h.Entries[0].Fields["type"])
	assert.Equal(t, "[w] GET: ERROR", h.Entries[1].Fields["type"])
	assert.Equal(t, "boom", h.Entries[1].Fields["error"])
}

func TestDuck_Request_Concurrent(t *testing.T) {
	d := ducks.New("w", ducks.Config{Transport: &stub{response: map[string]interface{}{"n": 1}}})
	st := store.New(d.Reducer(), nil)

	var results []<-chan store.Result
	for i := 0; i < 8; i++ {
		results = append(results, st.Go(context.Background(), d.Get("/", ducks.RequestOptions{Verb: "fetch"})))
	}
	for _, ch := range results {
		r := <-ch
		require.NoError(t, r.Err)
	}
	assert.False(t, st.State().Loading())
	assert.True(t, st.State().DidLoad())
}
