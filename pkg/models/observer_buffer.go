// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Evlytic Ltd. All rights reserved.

package models

import (
	"fmt"
	"time"

	"github.com/evlytic/clickbridge/pkg/common"
)

// ObserverBuffer aggregates the delivery metrics collected over one
// reporting interval
type ObserverBuffer struct {
	BatchResults     int64
	EventsSent       int64
	EventsFailed     int64
	EventsTotal      int64
	DeliveryAttempts int64

	MaxBufferLatency time.Duration
	MinBufferLatency time.Duration
	SumBufferLatency time.Duration
	MaxEventLatency  time.Duration
	MinEventLatency  time.Duration
	SumEventLatency  time.Duration
}

// AppendWrite adds a BatchWriteResult onto the buffer and stores the result
func (b *ObserverBuffer) AppendWrite(res *BatchWriteResult) {
	if res == nil {
		return
	}

	b.BatchResults++
	b.EventsSent += res.Sent
	b.EventsFailed += res.Failed
	b.EventsTotal += res.Total()
	b.DeliveryAttempts += res.Attempts

	if b.MaxBufferLatency < res.MaxBufferLatency {
		b.MaxBufferLatency = res.MaxBufferLatency
	}
	if b.MinBufferLatency > res.MinBufferLatency || b.MinBufferLatency == time.Duration(0) {
		b.MinBufferLatency = res.MinBufferLatency
	}
	b.SumBufferLatency += res.AvgBufferLatency

	if b.MaxEventLatency < res.MaxEventLatency {
		b.MaxEventLatency = res.MaxEventLatency
	}
	if b.MinEventLatency > res.MinEventLatency || b.MinEventLatency == time.Duration(0) {
		b.MinEventLatency = res.MinEventLatency
	}
	b.SumEventLatency += res.AvgEventLatency
}

// GetAvgBufferLatency returns the average time events sat in the pending
// buffer across the appended results
func (b *ObserverBuffer) GetAvgBufferLatency() time.Duration {
	return common.GetAverageFromDuration(b.SumBufferLatency, b.BatchResults)
}

// GetAvgEventLatency returns the average time between event creation and
// delivery across the appended results
func (b *ObserverBuffer) GetAvgEventLatency() time.Duration {
	return common.GetAverageFromDuration(b.SumEventLatency, b.BatchResults)
}

func (b *ObserverBuffer) String() string {
	return fmt.Sprintf(
		"BatchResults:%d,EventsSent:%d,EventsFailed:%d,DeliveryAttempts:%d,MaxBufferLatency:%d,MaxEventLatency:%d",
		b.BatchResults,
		b.EventsSent,
		b.EventsFailed,
		b.DeliveryAttempts,
		b.MaxBufferLatency.Milliseconds(),
		b.MaxEventLatency.Milliseconds(),
	)
}
