// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Evlytic Ltd. All rights reserved.

package bridge

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/evlytic/clickbridge/config"
	"github.com/evlytic/clickbridge/pkg/analytics"
	"github.com/evlytic/clickbridge/pkg/clickhouse"
	"github.com/evlytic/clickbridge/pkg/health"
	"github.com/evlytic/clickbridge/pkg/observer"
	"github.com/evlytic/clickbridge/pkg/schema"
	"github.com/evlytic/clickbridge/pkg/tracker"
)

// Bridge composes the wire client, the event pipeline, the analytics query
// surface and the schema helper behind one explicitly constructed handle.
// Whatever owns the request lifecycle holds the Bridge; there is no
// process-wide singleton.
type Bridge struct {
	Client    *clickhouse.Client
	Tracker   *tracker.Tracker
	Analytics *analytics.Analytics
	Schema    *schema.Schema

	observer   *observer.Observer
	stopHealth func()
	log        *log.Entry
}

// New builds and starts a bridge from the given configuration
func New(cfg *config.Config) (*Bridge, error) {
	client, err := cfg.GetClient()
	if err != nil {
		return nil, err
	}

	tags, err := cfg.GetTags()
	if err != nil {
		return nil, err
	}

	obs, err := cfg.GetObserver(tags)
	if err != nil {
		return nil, err
	}
	obs.Start()

	trk, err := cfg.GetTracker(client, obs)
	if err != nil {
		obs.Stop()
		return nil, err
	}
	trk.Start()

	anl, err := cfg.GetAnalytics(client)
	if err != nil {
		obs.Stop()
		return nil, err
	}

	sch, err := cfg.GetSchema(client)
	if err != nil {
		obs.Stop()
		return nil, err
	}

	return &Bridge{
		Client:     client,
		Tracker:    trk,
		Analytics:  anl,
		Schema:     sch,
		observer:   obs,
		stopHealth: health.Monitor(client, 30*time.Second),
		log:        log.WithFields(log.Fields{"name": "Bridge"}),
	}, nil
}

// Setup issues the idempotent schema DDL
func (b *Bridge) Setup() error {
	return b.Schema.Setup()
}

// Close stops the health monitor and the flush timer, then drains any
// remaining buffered events synchronously
func (b *Bridge) Close() error {
	b.stopHealth()
	err := b.Tracker.Shutdown()
	b.observer.Stop()
	if err != nil {
		b.log.WithError(err).Error("Failed to drain pending events on close")
	}
	return err
}
