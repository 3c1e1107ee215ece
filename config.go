// Copyright 2021 The ducks Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ducks

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/gogama/ducks/plugin/fetch"
	"github.com/gogama/ducks/retry"
	"github.com/gogama/ducks/timeout"
)

// EnvPrefix prefixes the environment variables read by ConfigFromEnv.
const EnvPrefix = "DUCKS_"

type envConfig struct {
	BaseURL     string        `env:"BASE_URL"`
	StoreParams bool          `env:"STORE_PARAMS"`
	Timeout     time.Duration `env:"TIMEOUT"`
	Retries     int           `env:"RETRIES"`
}

// ConfigFromEnv reads a Config from the environment:
//
//	DUCKS_BASE_URL      Config.BaseURL
//	DUCKS_STORE_PARAMS  Config.StoreParams
//	DUCKS_TIMEOUT       per-attempt timeout of the fetch transport
//	DUCKS_RETRIES       retries of transient failures by the fetch transport
//
// The transport is only set when DUCKS_TIMEOUT or DUCKS_RETRIES is.
func ConfigFromEnv() (Config, error) {
	var ec envConfig
	if err := env.ParseWithOptions(&ec, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("ducks: parse env: %w", err)
	}
	if ec.Timeout < 0 {
		return Config{}, fmt.Errorf("ducks: negative %sTIMEOUT %s", EnvPrefix, ec.Timeout)
	}
	if ec.Retries < 0 {
		return Config{}, fmt.Errorf("ducks: negative %sRETRIES %d", EnvPrefix, ec.Retries)
	}

	cfg := Config{
		BaseURL:     ec.BaseURL,
		StoreParams: ec.StoreParams,
	}
	if ec.Timeout > 0 || ec.Retries > 0 {
		p := &fetch.Plugin{}
		if ec.Timeout > 0 {
			p.TimeoutPolicy = timeout.Fixed(ec.Timeout)
		}
		if ec.Retries > 0 {
			d := retry.Times(ec.Retries).And(retry.StatusCode(429, 502, 503, 504).Or(retry.TransientErr))
			p.RetryPolicy = retry.NewPolicy(d, retry.DefaultWaiter)
		}
		cfg.Transport = p
	}
	return cfg, nil
}
