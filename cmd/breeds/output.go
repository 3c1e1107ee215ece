// Copyright 2021 The ducks Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gogama/ducks"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// render writes v to w in format. A non-empty path first narrows v to
// the part gjson selects from its JSON form.
func render(w io.Writer, v interface{}, format, path string) error {
	if path != "" {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("select: %w", err)
		}
		r := gjson.GetBytes(b, path)
		if !r.Exists() {
			return fmt.Errorf("select: nothing at %q", path)
		}
		v = r.Value()
	}

	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return renderText(w, v)
	}
}

func renderText(w io.Writer, v interface{}) error {
	switch x := v.(type) {
	case []string:
		for _, s := range x {
			if _, err := fmt.Fprintln(w, s); err != nil {
				return err
			}
		}
		if len(x) == 0 {
			_, err := fmt.Fprintln(w, "No breeds found.")
			return err
		}
		return nil
	case []interface{}:
		for _, e := range x {
			if _, err := fmt.Fprintln(w, e); err != nil {
				return err
			}
		}
		return nil
	case string, bool, float64, nil:
		_, err := fmt.Fprintln(w, x)
		return err
	default:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(x); err != nil {
			return err
		}
		return enc.Close()
	}
}

// printable returns a copy of state fit for encoding: nested states
// are copied too and errors become their messages.
func printable(state ducks.State) map[string]interface{} {
	m := make(map[string]interface{}, len(state))
	for k, v := range state {
		switch x := v.(type) {
		case ducks.State:
			m[k] = printable(x)
		case error:
			m[k] = x.Error()
		default:
			m[k] = x
		}
	}
	return m
}

// writeMetrics writes the metrics gathered by g in the Prometheus text
// format.
func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
