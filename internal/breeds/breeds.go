// Copyright 2021 The ducks Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package breeds wires two ducks to the dog.ceo breeds API.
package breeds

import (
	"net/url"
	"sort"

	"github.com/gogama/ducks"
	"github.com/gogama/ducks/store"
)

// DefaultBaseURL is the base URL of the public dog.ceo API.
const DefaultBaseURL = "https://dog.ceo/api"

// Keys of the ducks' slices in the root state.
const (
	BreedsKey    = "breeds"
	SubBreedsKey = "subBreeds"
)

// Ducks holds the breeds and sub-breeds ducks.
type Ducks struct {
	Breeds    *ducks.Duck
	SubBreeds *ducks.Duck
}

// New returns the ducks configured from cfg. The breeds duck is made by
// a factory sharing cfg, while the sub-breeds duck is made directly.
// An empty cfg.BaseURL means DefaultBaseURL.
func New(cfg ducks.Config) *Ducks {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	f := ducks.NewFactory(cfg)
	return &Ducks{
		Breeds:    f.Create(BreedsKey),
		SubBreeds: ducks.New(SubBreedsKey, cfg),
	}
}

// RootReducer combines both ducks' reducers under BreedsKey and
// SubBreedsKey.
func (d *Ducks) RootReducer() ducks.Reducer {
	return store.Combine(map[string]ducks.Reducer{
		BreedsKey:    d.Breeds.Reducer(),
		SubBreedsKey: d.SubBreeds.Reducer(),
	})
}

// FetchBreeds loads the list of all breeds.
func (d *Ducks) FetchBreeds() ducks.Thunk {
	return d.Breeds.Get("/breeds/list")
}

// FetchSubBreeds loads the sub-breeds of breed.
func (d *Ducks) FetchSubBreeds(breed string) ducks.Thunk {
	return d.SubBreeds.Get("/breed/" + url.PathEscape(breed) + "/list")
}

// SelectBreeds returns the loaded breeds, or nil.
func SelectBreeds(state ducks.State) []string {
	return message(state.Slice(BreedsKey))
}

// SelectSubBreeds returns the loaded sub-breeds, or nil.
func SelectSubBreeds(state ducks.State) []string {
	return message(state.Slice(SubBreedsKey))
}

// SelectIfLoading reports whether the duck under key is loading.
func SelectIfLoading(state ducks.State, key string) bool {
	return state.Slice(key).Loading()
}

// message reads the "message" field of the dog.ceo responses: a list
// of names, or for some endpoints an object keyed by name.
func message(slice ducks.State) []string {
	switch v := slice["message"].(type) {
	case []interface{}:
		names := make([]string, 0, len(v))
		for _, x := range v {
			if s, ok := x.(string); ok {
				names = append(names, s)
			}
		}
		return names
	case map[string]interface{}:
		names := make([]string, 0, len(v))
		for k := range v {
			names = append(names, k)
		}
		sort.Strings(names)
		return names
	default:
		return nil
	}
}
