// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Evlytic Ltd. All rights reserved.

package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/pkg/errors"

	"github.com/evlytic/clickbridge/pkg/analytics"
	"github.com/evlytic/clickbridge/pkg/clickhouse"
	"github.com/evlytic/clickbridge/pkg/clickhouse/clickhouseiface"
	"github.com/evlytic/clickbridge/pkg/observer"
	"github.com/evlytic/clickbridge/pkg/schema"
	"github.com/evlytic/clickbridge/pkg/statsreceiver"
	"github.com/evlytic/clickbridge/pkg/statsreceiver/statsreceiveriface"
	"github.com/evlytic/clickbridge/pkg/tracker"
)

// ---------- [ ANALYTICAL STORE ] ----------

// ClickHouseConfig configures the connection to the analytical store
type ClickHouseConfig struct {
	Host              string `hcl:"host,optional" env:"CLICKHOUSE_HOST" envDefault:"localhost"`
	Port              int    `hcl:"port,optional" env:"CLICKHOUSE_PORT"`
	Database          string `hcl:"database,optional" env:"CLICKHOUSE_DATABASE" envDefault:"analytics"`
	Username          string `hcl:"username,optional" env:"CLICKHOUSE_USERNAME" envDefault:"default"`
	Password          string `hcl:"password,optional" env:"CLICKHOUSE_PASSWORD"`
	Secure            bool   `hcl:"secure,optional" env:"CLICKHOUSE_SECURE"`
	SkipVerifyTLS     bool   `hcl:"skip_verify_tls,optional" env:"CLICKHOUSE_SKIP_VERIFY_TLS"`
	RequestTimeoutSec int    `hcl:"request_timeout_sec,optional" env:"CLICKHOUSE_REQUEST_TIMEOUT_SEC" envDefault:"30"`
}

// ResolvedPort returns the configured port, defaulting by TLS mode
func (c *ClickHouseConfig) ResolvedPort() int {
	if c.Port != 0 {
		return c.Port
	}
	if c.Secure {
		return 8443
	}
	return 8123
}

// ---------- [ EVENT PIPELINE ] ----------

// TrackerConfig configures the event batching pipeline
type TrackerConfig struct {
	EventsTable      string `hcl:"events_table,optional" env:"TRACKER_EVENTS_TABLE" envDefault:"events"`
	BatchSize        int    `hcl:"batch_size,optional" env:"TRACKER_BATCH_SIZE" envDefault:"100"`
	FlushIntervalSec int    `hcl:"flush_interval_sec,optional" env:"TRACKER_FLUSH_INTERVAL_SEC" envDefault:"10"`
	MaxRetries       int    `hcl:"max_retries,optional" env:"TRACKER_MAX_RETRIES" envDefault:"3"`
	RetryDelaySec    int    `hcl:"retry_delay_sec,optional" env:"TRACKER_RETRY_DELAY_SEC" envDefault:"1"`
}

// ---------- [ ANALYTICS ] ----------

// AnalyticsConfig configures the analytics query surface
type AnalyticsConfig struct {
	OrdersTable string `hcl:"orders_table,optional" env:"ANALYTICS_ORDERS_TABLE" envDefault:"orders"`
}

// ---------- [ OBSERVABILITY ] ----------

// SentryConfig configures the Sentry error tracker
type SentryConfig struct {
	Dsn   string `hcl:"dsn,optional" env:"SENTRY_DSN"`
	Tags  string `hcl:"tags,optional" env:"SENTRY_TAGS" envDefault:"{}"`
	Debug bool   `hcl:"debug,optional" env:"SENTRY_DEBUG"`
}

// StatsDStatsReceiverConfig configures the stats metrics receiver
type StatsDStatsReceiverConfig struct {
	Address string `hcl:"address,optional" env:"STATS_RECEIVER_STATSD_ADDRESS"`
	Prefix  string `hcl:"prefix,optional" env:"STATS_RECEIVER_STATSD_PREFIX" envDefault:"evlytic.clickbridge"`
	Tags    string `hcl:"tags,optional" env:"STATS_RECEIVER_STATSD_TAGS" envDefault:"{}"`
}

// StatsReceiversConfig holds configuration for different stats receivers
type StatsReceiversConfig struct {
	StatsD StatsDStatsReceiverConfig

	// TimeoutSec is how long the observer will wait for a new result before looping
	TimeoutSec int `env:"STATS_RECEIVER_TIMEOUT_SEC" envDefault:"1"`

	// BufferSec is how long the observer buffers results before pushing results out and resetting
	BufferSec int `env:"STATS_RECEIVER_BUFFER_SEC" envDefault:"15"`
}

// Config for holding all configuration details
type Config struct {
	ClickHouse     ClickHouseConfig
	Tracker        TrackerConfig
	Analytics      AnalyticsConfig
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	Sentry         SentryConfig
	StatsReceiver  string `env:"STATS_RECEIVER"`
	StatsReceivers StatsReceiversConfig
}

// NewConfig resolves the config from the environment, overlaid with an
// optional HCL file referenced by CLICKBRIDGE_CONFIG_FILE
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}

	filename := os.Getenv("CLICKBRIDGE_CONFIG_FILE")
	if filename == "" {
		return &cfg, nil
	}

	switch suffix := strings.ToLower(filepath.Ext(filename)); suffix {
	case ".hcl":
		if err := decodeHclFile(filename, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	default:
		return nil, errors.New("invalid extension for the configuration file")
	}
}

// GetClient builds and returns the wire client that is configured
func (c *Config) GetClient() (*clickhouse.Client, error) {
	return clickhouse.NewClient(
		c.ClickHouse.Host,
		c.ClickHouse.ResolvedPort(),
		c.ClickHouse.Database,
		c.ClickHouse.Username,
		c.ClickHouse.Password,
		c.ClickHouse.Secure,
		c.ClickHouse.SkipVerifyTLS,
		c.ClickHouse.RequestTimeoutSec,
	)
}

// GetTracker builds and returns the event pipeline that is configured
func (c *Config) GetTracker(client clickhouseiface.Client, obs *observer.Observer) (*tracker.Tracker, error) {
	return tracker.New(
		client,
		c.Tracker.EventsTable,
		c.Tracker.BatchSize,
		time.Duration(c.Tracker.FlushIntervalSec)*time.Second,
		c.Tracker.MaxRetries,
		time.Duration(c.Tracker.RetryDelaySec)*time.Second,
		obs,
	)
}

// GetAnalytics builds and returns the analytics query surface
func (c *Config) GetAnalytics(client clickhouseiface.Client) (*analytics.Analytics, error) {
	return analytics.New(client, c.Tracker.EventsTable, c.Analytics.OrdersTable)
}

// GetSchema builds and returns the schema helper
func (c *Config) GetSchema(client clickhouseiface.Client) (*schema.Schema, error) {
	return schema.New(client, c.Tracker.EventsTable, c.Analytics.OrdersTable)
}

// GetTags returns a list of tags to use in identifying this instance of clickbridge
func (c *Config) GetTags() (map[string]string, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, errors.Wrap(err, "Failed to get server hostname as tag")
	}

	processID := os.Getpid()

	tags := map[string]string{
		"hostname":   hostname,
		"process_id": strconv.Itoa(processID),
		"database":   c.ClickHouse.Database,
	}

	return tags, nil
}

// GetObserver builds and returns the observer with the embedded
// optional stats receiver
func (c *Config) GetObserver(tags map[string]string) (*observer.Observer, error) {
	sr, err := c.GetStatsReceiver(tags)
	if err != nil {
		return nil, err
	}
	return observer.New(sr, time.Duration(c.StatsReceivers.TimeoutSec)*time.Second, time.Duration(c.StatsReceivers.BufferSec)*time.Second), nil
}

// GetStatsReceiver builds and returns the stats receiver
func (c *Config) GetStatsReceiver(tags map[string]string) (statsreceiveriface.StatsReceiver, error) {
	switch c.StatsReceiver {
	case "statsd":
		return statsreceiver.NewStatsDStatsReceiver(
			c.StatsReceivers.StatsD.Address,
			c.StatsReceivers.StatsD.Prefix,
			c.StatsReceivers.StatsD.Tags,
			tags,
		)
	case "":
		return nil, nil
	default:
		return nil, errors.Errorf("Invalid stats receiver found; expected one of 'statsd' and got '%s'", c.StatsReceiver)
	}
}
