// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Evlytic Ltd. All rights reserved.

package config

import (
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pkg/errors"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// fileConfig mirrors Config with optional blocks for decoding an HCL file.
// Values present in the file are overlaid onto the environment-derived
// configuration.
type fileConfig struct {
	ClickHouse     *ClickHouseConfig   `hcl:"clickhouse,block"`
	Tracker        *TrackerConfig      `hcl:"tracker,block"`
	Analytics      *AnalyticsConfig    `hcl:"analytics,block"`
	LogLevel       string              `hcl:"log_level,optional"`
	Sentry         *SentryConfig       `hcl:"sentry,block"`
	StatsReceiver  string              `hcl:"stats_receiver,optional"`
	StatsReceivers *fileStatsReceivers `hcl:"stats_receivers,block"`
}

type fileStatsReceivers struct {
	StatsD     *StatsDStatsReceiverConfig `hcl:"statsd,block"`
	TimeoutSec int                        `hcl:"timeout_sec,optional"`
	BufferSec  int                        `hcl:"buffer_sec,optional"`
}

// decodeHclFile overlays the contents of an HCL configuration file onto cfg
func decodeHclFile(filename string, cfg *Config) error {
	src, err := os.ReadFile(filename)
	if err != nil {
		return errors.Wrap(err, "Failed to read configuration file")
	}

	parser := hclparse.NewParser()
	file, diag := parser.ParseHCL(src, filename)
	if diag.HasErrors() {
		return diag
	}

	fc := fileConfig{}
	if diag := gohcl.DecodeBody(file.Body, CreateHclContext(), &fc); diag.HasErrors() {
		return diag
	}

	overlayFileConfig(cfg, &fc)
	return nil
}

// overlayFileConfig copies values set in the file over the
// environment-derived configuration.  Unset attributes decode to their
// zero value and leave the existing configuration untouched.
func overlayFileConfig(cfg *Config, fc *fileConfig) {
	if fc.ClickHouse != nil {
		overlayString(&cfg.ClickHouse.Host, fc.ClickHouse.Host)
		overlayInt(&cfg.ClickHouse.Port, fc.ClickHouse.Port)
		overlayString(&cfg.ClickHouse.Database, fc.ClickHouse.Database)
		overlayString(&cfg.ClickHouse.Username, fc.ClickHouse.Username)
		overlayString(&cfg.ClickHouse.Password, fc.ClickHouse.Password)
		cfg.ClickHouse.Secure = cfg.ClickHouse.Secure || fc.ClickHouse.Secure
		cfg.ClickHouse.SkipVerifyTLS = cfg.ClickHouse.SkipVerifyTLS || fc.ClickHouse.SkipVerifyTLS
		overlayInt(&cfg.ClickHouse.RequestTimeoutSec, fc.ClickHouse.RequestTimeoutSec)
	}
	if fc.Tracker != nil {
		overlayString(&cfg.Tracker.EventsTable, fc.Tracker.EventsTable)
		overlayInt(&cfg.Tracker.BatchSize, fc.Tracker.BatchSize)
		overlayInt(&cfg.Tracker.FlushIntervalSec, fc.Tracker.FlushIntervalSec)
		overlayInt(&cfg.Tracker.MaxRetries, fc.Tracker.MaxRetries)
		overlayInt(&cfg.Tracker.RetryDelaySec, fc.Tracker.RetryDelaySec)
	}
	if fc.Analytics != nil {
		overlayString(&cfg.Analytics.OrdersTable, fc.Analytics.OrdersTable)
	}
	overlayString(&cfg.LogLevel, fc.LogLevel)
	if fc.Sentry != nil {
		overlayString(&cfg.Sentry.Dsn, fc.Sentry.Dsn)
		overlayString(&cfg.Sentry.Tags, fc.Sentry.Tags)
		cfg.Sentry.Debug = cfg.Sentry.Debug || fc.Sentry.Debug
	}
	overlayString(&cfg.StatsReceiver, fc.StatsReceiver)
	if fc.StatsReceivers != nil {
		if fc.StatsReceivers.StatsD != nil {
			overlayString(&cfg.StatsReceivers.StatsD.Address, fc.StatsReceivers.StatsD.Address)
			overlayString(&cfg.StatsReceivers.StatsD.Prefix, fc.StatsReceivers.StatsD.Prefix)
			overlayString(&cfg.StatsReceivers.StatsD.Tags, fc.StatsReceivers.StatsD.Tags)
		}
		overlayInt(&cfg.StatsReceivers.TimeoutSec, fc.StatsReceivers.TimeoutSec)
		overlayInt(&cfg.StatsReceivers.BufferSec, fc.StatsReceivers.BufferSec)
	}
}

func overlayString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

func overlayInt(dst *int, src int) {
	if src != 0 {
		*dst = src
	}
}

// CreateHclContext creates an *hcl.EvalContext that is used in decoding HCL.
// Users can reference environment variables either as `env("MY_ENV_VAR")`
// or as `env.MY_ENV_VAR`.
func CreateHclContext() *hcl.EvalContext {
	evalCtx := &hcl.EvalContext{
		Functions: hclCtxFunctions(),
		Variables: hclCtxVariables(),
	}

	return evalCtx
}

// hclCtxFunctions constructs the Functions map of the hcl.EvalContext
func hclCtxFunctions() map[string]function.Function {
	funcs := map[string]function.Function{
		"env": envFunc(),
	}

	return funcs
}

// hclCtxVariables constructs the Variables map of the hcl.EvalContext
func hclCtxVariables() map[string]cty.Value {
	vars := map[string]cty.Value{
		"env": cty.ObjectVal(envVarsMap(os.Environ())),
	}

	return vars
}

// envFunc constructs a cty.Function that takes a key as string argument and
// returns a string representation of the environment variable behind it
func envFunc() function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{
				Name:         "key",
				Type:         cty.String,
				AllowNull:    false,
				AllowUnknown: false,
			},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			key := args[0].AsString()
			value := os.Getenv(key)
			return cty.StringVal(value), nil
		},
	})
}

// envVarsMap constructs a map of the environment variables to be used in
// hcl.EvalContext
func envVarsMap(environ []string) map[string]cty.Value {
	envMap := make(map[string]cty.Value)
	for _, s := range environ {
		for j := 1; j < len(s); j++ {
			if s[j] == '=' {
				envMap[s[0:j]] = cty.StringVal(s[j+1:])
			}
		}
	}

	return envMap
}
