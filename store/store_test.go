// Copyright 2021 The ducks Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gogama/ducks"
	"github.com/gogama/ducks/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counter(state ducks.State, action ducks.Action) ducks.State {
	if state == nil {
		state = ducks.State{"n": 0}
	}
	if action.Type != "inc" {
		return state
	}
	return state.Merge(map[string]interface{}{"n": state["n"].(int) + 1})
}

func TestNew(t *testing.T) {
	t.Run("nil initial", func(t *testing.T) {
		var got ducks.Action
		s := New(func(state ducks.State, a ducks.Action) ducks.State {
			got = a
			return counter(state, a)
		}, nil)
		assert.Equal(t, InitType, got.Type)
		assert.Equal(t, ducks.State{"n": 0}, s.State())
	})
	t.Run("given initial", func(t *testing.T) {
		initial := ducks.State{"n": 5}
		s := New(counter, initial)
		assert.True(t, ducks.SameState(initial, s.State()))
	})
}

func TestStore_Dispatch(t *testing.T) {
	s := New(counter, nil)
	var notified []interface{}
	unsubscribe := s.Subscribe(ListenerFunc(func(state ducks.State, a ducks.Action) {
		notified = append(notified, state["n"])
	}))

	s.Dispatch(ducks.Action{Type: "inc"})
	s.Dispatch(ducks.Action{Type: "ignored"})
	s.Dispatch(ducks.Action{Type: "inc"})
	assert.Equal(t, 2, s.State()["n"])
	assert.Equal(t, []interface{}{1, 2}, notified)

	unsubscribe()
	unsubscribe()
	s.Dispatch(ducks.Action{Type: "inc"})
	assert.Equal(t, 3, s.State()["n"])
	assert.Len(t, notified, 2)
}

func TestNew_SharedDuck(t *testing.T) {
	d := ducks.New("w", ducks.Config{})
	s1 := New(d.Reducer(), nil)
	s1.State()["extra"] = 1

	s2 := New(d.Reducer(), nil)
	assert.NotContains(t, s2.State(), "extra")
	assert.NotContains(t, d.InitialState(), "extra")
	assert.False(t, ducks.SameState(s1.State(), s2.State()))
}

func TestStore_Dispatch_FromListener(t *testing.T) {
	s := New(counter, nil)
	fired := false
	s.Subscribe(ListenerFunc(func(ducks.State, ducks.Action) {
		if !fired {
			fired = true
			s.Dispatch(ducks.Action{Type: "inc"})
		}
	}))
	s.Dispatch(ducks.Action{Type: "inc"})
	assert.Equal(t, 2, s.State()["n"])
}

func TestStore_Run(t *testing.T) {
	d := ducks.New("w", ducks.Config{
		Transport: ducks.TransportFunc(func(_ context.Context, desc request.Descriptor) (interface{}, error) {
			if desc.Path == "/fail" {
				return nil, errors.New("fail")
			}
			return map[string]interface{}{"path": desc.Path}, nil
		}),
	})
	s := New(d.Reducer(), nil)
	var types []string
	s.Subscribe(ListenerFunc(func(_ ducks.State, a ducks.Action) {
		types = append(types, a.Type)
	}))

	v, err := s.Run(context.Background(), d.Get("/ok"))
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"path": "/ok"}, v)
	assert.Equal(t, "/ok", s.State()["path"])

	_, err = s.Run(context.Background(), d.Get("/fail"))
	assert.EqualError(t, err, "fail")
	assert.EqualError(t, s.State().Err(), "fail")
	assert.Equal(t, "/ok", s.State()["path"])
	assert.Equal(t, []string{"[w] GET: BEGIN", "[w] GET: SUCCESS", "[w] GET: BEGIN", "[w] GET: ERROR"}, types)
}

func TestStore_Go(t *testing.T) {
	release := make(chan struct{})
	d := ducks.New("w", ducks.Config{
		Transport: ducks.TransportFunc(func(ctx context.Context, _ request.Descriptor) (interface{}, error) {
			select {
			case <-release:
				return map[string]interface{}{"done": true}, nil
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}),
	})
	s := New(d.Reducer(), nil)

	ch := s.Go(context.Background(), d.Get("/"))
	assert.Eventually(t, func() bool { return s.State().Loading() }, time.Second, time.Millisecond)
	close(release)
	r, ok := <-ch
	require.True(t, ok)
	require.NoError(t, r.Err)
	assert.Equal(t, map[string]interface{}{"done": true}, r.Value)
	_, ok = <-ch
	assert.False(t, ok)
	assert.False(t, s.State().Loading())
	assert.Equal(t, true, s.State()["done"])

	t.Run("cancelled", func(t *testing.T) {
		blocked := ducks.New("b", ducks.Config{
			Transport: ducks.TransportFunc(func(ctx context.Context, _ request.Descriptor) (interface{}, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			}),
		})
		s := New(blocked.Reducer(), nil)
		ctx, cancel := context.WithCancel(context.Background())
		ch := s.Go(ctx, blocked.Get("/"))
		cancel()
		r := <-ch
		assert.Same(t, context.Canceled, r.Err)
		assert.Same(t, context.Canceled, s.State().Err())
	})
}

func TestCombine(t *testing.T) {
	a := ducks.New("a", ducks.Config{})
	b := ducks.New("b", ducks.Config{})
	root := Combine(map[string]ducks.Reducer{"a": a.Reducer(), "b": b.Reducer()})

	s0 := root(nil, ducks.Action{Type: InitType})
	assert.Equal(t, a.InitialState(), s0.Slice("a"))
	assert.Equal(t, b.InitialState(), s0.Slice("b"))

	assert.True(t, ducks.SameState(s0, root(s0, ducks.Action{Type: "unknown"})))

	s1 := root(s0, ducks.Action{Type: "[a] GET: BEGIN"})
	assert.False(t, ducks.SameState(s0, s1))
	assert.True(t, s1.Slice("a").Loading())
	assert.False(t, s1.Slice("b").Loading())
	assert.True(t, ducks.SameState(s0.Slice("b"), s1.Slice("b")))
	assert.False(t, s0.Slice("a").Loading())
}
