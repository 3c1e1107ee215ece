// Copyright 2021 The ducks Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/gogama/ducks"
	"github.com/gogama/ducks/internal/breeds"
	"github.com/gogama/ducks/metrics"
	"github.com/gogama/ducks/plugin/axios"
	"github.com/gogama/ducks/plugin/fetch"
	"github.com/gogama/ducks/retry"
	"github.com/gogama/ducks/store"
	"github.com/gogama/ducks/timeout"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "BREEDS"

// settings are the resolved flag, environment and config file values.
type settings struct {
	BaseURL string
	Timeout time.Duration
	Retries int
	Output  string
	State   bool
	Select  string
	Verbose bool
	Metrics bool

	// Transport is "fetch" or "axios".
	Transport string
}

func loadSettings(v *viper.Viper) (settings, error) {
	s := settings{
		BaseURL: strings.TrimSpace(v.GetString("base-url")),
		Timeout: v.GetDuration("timeout"),
		Retries: v.GetInt("retries"),
		Output:  strings.ToLower(v.GetString("output")),
		State:   v.GetBool("state"),
		Select:  v.GetString("select"),
		Verbose: v.GetBool("verbose"),
		Metrics: v.GetBool("metrics"),

		Transport: strings.ToLower(v.GetString("transport")),
	}
	switch s.Output {
	case formatText, formatJSON, formatYAML:
	default:
		return settings{}, fmt.Errorf("unknown output format %q", s.Output)
	}
	if s.Transport != "fetch" && s.Transport != "axios" {
		return settings{}, fmt.Errorf("unknown transport %q", s.Transport)
	}
	if s.Timeout <= 0 {
		return settings{}, fmt.Errorf("timeout must be positive, got %s", s.Timeout)
	}
	if s.Retries < 0 {
		return settings{}, fmt.Errorf("retries must not be negative, got %d", s.Retries)
	}
	return s, nil
}

// app is what a subcommand needs to run: the ducks, a store for their
// state and the output settings.
type app struct {
	settings settings
	ducks    *breeds.Ducks
	store    *store.Store
	registry *prometheus.Registry
	out      io.Writer
	errOut   io.Writer
}

func newApp(s settings, out, errOut io.Writer) *app {
	level := log.InfoLevel
	if s.Verbose {
		level = log.DebugLevel
	}
	logger := &log.Logger{Handler: cli.New(errOut), Level: level}

	transport := &fetch.Plugin{
		TimeoutPolicy: timeout.Fixed(s.Timeout),
		Logger:        logger,
	}
	if s.Retries > 0 {
		transport.RetryPolicy = retry.NewPolicy(
			retry.Times(s.Retries).And(retry.StatusCode(429, 502, 503, 504).Or(retry.TransientErr)),
			retry.DefaultWaiter,
		)
	}

	var registry *prometheus.Registry
	var collector *metrics.Collector
	if s.Metrics {
		registry = prometheus.NewRegistry()
		collector = metrics.NewCollector(registry)
		transport.Handlers = collector.Install(nil)
	}

	cfg := ducks.Config{
		BaseURL:   s.BaseURL,
		Transport: transport,
		Logger:    logger,
	}
	if s.Transport == "axios" {
		cfg.Transport = axios.New(axios.Config{Timeout: s.Timeout})
	}
	d := breeds.New(cfg)
	st := store.New(d.RootReducer(), nil)
	st.Subscribe(store.ListenerFunc(func(state ducks.State, a ducks.Action) {
		logger.WithField("type", a.Type).Debug("state changed")
	}))
	if collector != nil {
		st.Subscribe(collector)
	}
	return &app{settings: s, ducks: d, store: st, registry: registry, out: out, errOut: errOut}
}

// run runs thunk and prints either the state or list(state).
func (a *app) run(ctx context.Context, thunk ducks.Thunk, list func(ducks.State) []string) error {
	_, err := a.store.Run(ctx, thunk)
	if a.registry != nil {
		if merr := writeMetrics(a.errOut, a.registry); merr != nil && err == nil {
			err = merr
		}
	}
	if err != nil {
		return err
	}
	st := a.store.State()
	if a.settings.State {
		return render(a.out, printable(st), a.settings.Output, a.settings.Select)
	}
	return render(a.out, list(st), a.settings.Output, a.settings.Select)
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	v := viper.New()
	var a *app

	cmd := &cobra.Command{
		Use:           "breeds",
		Short:         "Browse dog breeds through request ducks",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if path := v.GetString("config"); path != "" {
				v.SetConfigFile(path)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("read config: %w", err)
				}
			}
			s, err := loadSettings(v)
			if err != nil {
				return err
			}
			a = newApp(s, cmd.OutOrStdout(), cmd.ErrOrStderr())
			return nil
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	flags := cmd.PersistentFlags()
	flags.String("base-url", breeds.DefaultBaseURL, "Base URL of the breeds API")
	flags.String("config", "", "Path to configuration file (JSON or YAML)")
	flags.StringP("output", "o", formatText, "Output format: text, json or yaml")
	flags.Bool("state", false, "Print the whole store state instead of the list")
	flags.String("select", "", "gjson path selecting part of the output")
	flags.Duration("timeout", 10*time.Second, "Per-attempt request timeout")
	flags.Int("retries", 0, "Retries of transient failures")
	flags.BoolP("verbose", "v", false, "Log every dispatched action")
	flags.Bool("metrics", false, "Print Prometheus metrics to stderr after the request")
	flags.String("transport", "fetch", "Transport: fetch, or axios (which ignores --retries)")
	_ = v.BindPFlags(flags)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all breeds",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.run(cmd.Context(), a.ducks.FetchBreeds(), breeds.SelectBreeds)
			},
		},
		&cobra.Command{
			Use:   "sub <breed>",
			Short: "List the sub-breeds of a breed",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.run(cmd.Context(), a.ducks.FetchSubBreeds(args[0]), breeds.SelectSubBreeds)
			},
		},
	)
	return cmd
}
