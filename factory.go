// Copyright 2021 The ducks Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ducks

// A Factory creates ducks sharing a default configuration.
type Factory struct {
	defaults Config
}

// NewFactory returns a factory whose ducks start from defaults.
func NewFactory(defaults Config) *Factory {
	return &Factory{defaults: defaults}
}

// Defaults returns the factory's default configuration.
func (f *Factory) Defaults() Config {
	return f.defaults
}

// Create returns a new duck named name. Its configuration is the
// factory's defaults with every non-zero field of each override laid
// on top, later overrides winning. A non-nil InitialState replaces the
// default one as a whole.
//
// StoreParams can be switched on by an override but not off.
func (f *Factory) Create(name string, overrides ...Config) *Duck {
	cfg := f.defaults
	for _, o := range overrides {
		cfg = merge(cfg, o)
	}
	return New(name, cfg)
}

func merge(base, o Config) Config {
	if o.BaseURL != "" {
		base.BaseURL = o.BaseURL
	}
	if o.InitialState != nil {
		base.InitialState = o.InitialState
	}
	if o.Transport != nil {
		base.Transport = o.Transport
	}
	if o.StoreParams {
		base.StoreParams = true
	}
	if o.Logger != nil {
		base.Logger = o.Logger
	}
	return base
}
