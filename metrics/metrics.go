// Copyright 2021 The ducks Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package metrics exports Prometheus metrics about ducks: lifecycle
// actions seen by a store and HTTP attempts made by the fetch
// transport.
package metrics

import (
	"strconv"
	"time"

	"github.com/gogama/ducks"
	"github.com/gogama/ducks/plugin/fetch"
	"github.com/gogama/ducks/request"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector records metrics. It is a store.Listener and a
// fetch.Handler, and is safe for concurrent use. A nil *Collector
// records nothing.
type Collector struct {
	actionsTotal     *prometheus.CounterVec
	requestsInFlight *prometheus.GaugeVec

	attemptsTotal   *prometheus.CounterVec
	attemptDuration *prometheus.HistogramVec
	retriesTotal    *prometheus.CounterVec
}

// NewCollector creates a collector whose metrics are registered with
// reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	return &Collector{
		actionsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "ducks_actions_total",
				Help: "Total number of lifecycle actions reduced by a store",
			},
			[]string{"duck", "verb", "status"},
		),
		requestsInFlight: promauto.With(reg).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ducks_requests_in_flight",
				Help: "Number of requests which began but have not yet succeeded or failed",
			},
			[]string{"duck"},
		),
		attemptsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "ducks_fetch_attempts_total",
				Help: "Total number of HTTP attempts made by the fetch transport",
			},
			[]string{"method", "status_code"},
		),
		attemptDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ducks_fetch_attempt_duration_seconds",
				Help:    "Duration of HTTP attempts made by the fetch transport",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		retriesTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "ducks_fetch_retries_total",
				Help: "Total number of retries made by the fetch transport",
			},
			[]string{"method"},
		),
	}
}

// Changed counts the lifecycle action a. Other actions are ignored.
func (c *Collector) Changed(_ ducks.State, a ducks.Action) {
	if c == nil {
		return
	}
	name, verb, status, ok := ducks.ParseType(a.Type)
	if !ok {
		return
	}
	c.actionsTotal.WithLabelValues(name, verb, status.String()).Inc()
	if status == ducks.Begin {
		c.requestsInFlight.WithLabelValues(name).Inc()
	} else {
		c.requestsInFlight.WithLabelValues(name).Dec()
	}
}

type attemptStartKey struct{}

// Handle records attempts and retries of a fetch execution.
func (c *Collector) Handle(evt fetch.Event, e *request.Execution) {
	if c == nil {
		return
	}
	method := e.Descriptor.Method.Upper()
	switch evt {
	case fetch.BeforeAttempt:
		e.SetValue(attemptStartKey{}, time.Now())
	case fetch.AfterAttempt:
		code := "error"
		if e.Response != nil {
			code = strconv.Itoa(e.StatusCode())
		}
		c.attemptsTotal.WithLabelValues(method, code).Inc()
		if start, ok := e.Value(attemptStartKey{}).(time.Time); ok {
			c.attemptDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
		}
	case fetch.AfterExecutionEnd:
		if e.Attempt > 0 {
			c.retriesTotal.WithLabelValues(method).Add(float64(e.Attempt))
		}
	}
}

// Install adds c to g for every event it handles and returns g. A nil
// g is replaced by a new group.
func (c *Collector) Install(g *fetch.HandlerGroup) *fetch.HandlerGroup {
	if g == nil {
		g = &fetch.HandlerGroup{}
	}
	for _, evt := range []fetch.Event{fetch.BeforeAttempt, fetch.AfterAttempt, fetch.AfterExecutionEnd} {
		g.PushBack(evt, c)
	}
	return g
}
