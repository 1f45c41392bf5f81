// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Evlytic Ltd. All rights reserved.

package statsreceiver

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	statsd "github.com/smira/go-statsd"

	"github.com/evlytic/clickbridge/pkg/models"
)

// StatsDStatsReceiver holds a new client for writing statistics to a
// StatsD server
type StatsDStatsReceiver struct {
	client *statsd.Client
}

// NewStatsDStatsReceiver creates a new client for writing metrics to StatsD
func NewStatsDStatsReceiver(address string, prefix string, tagsRaw string, tagsMapClient map[string]string) (*StatsDStatsReceiver, error) {
	tagsMap := map[string]string{}
	err := json.Unmarshal([]byte(tagsRaw), &tagsMap)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to unmarshall STATSD_TAGS to map")
	}

	var tags []statsd.Tag
	for key, value := range tagsMap {
		tags = append(tags, statsd.StringTag(key, value))
	}
	for key, value := range tagsMapClient {
		tags = append(tags, statsd.StringTag(key, value))
	}

	client := statsd.NewClient(address,
		statsd.MaxPacketSize(1400),
		statsd.MetricPrefix(fmt.Sprintf("%s.", prefix)),
		statsd.TagStyle(statsd.TagFormatDatadog),
		statsd.DefaultTags(tags...),
		statsd.ReconnectInterval(60*time.Second),
	)

	return &StatsDStatsReceiver{
		client: client,
	}, nil
}

// Send emits the buffered metrics to the receiver
func (s *StatsDStatsReceiver) Send(b *models.ObserverBuffer) {
	s.client.Incr("event_sent", b.EventsSent)
	s.client.Incr("event_failed", b.EventsFailed)
	s.client.Incr("delivery_attempt", b.DeliveryAttempts)
	s.client.PrecisionTiming("latency_buffer_max", b.MaxBufferLatency)
	s.client.PrecisionTiming("latency_event_max", b.MaxEventLatency)
}
