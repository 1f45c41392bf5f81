// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Evlytic Ltd. All rights reserved.

package models

import (
	"time"

	"github.com/evlytic/clickbridge/pkg/common"
)

// BatchWriteResult contains the results from a batch delivery attempt
type BatchWriteResult struct {
	Sent   int64
	Failed int64

	// Attempts is how many delivery attempts (including retries) were
	// needed before the batch was settled
	Attempts int64

	// Delta between TimeBuffered and TimeOfWrite tells us how long events
	// sat in the pending buffer before delivery
	MaxBufferLatency time.Duration
	MinBufferLatency time.Duration
	AvgBufferLatency time.Duration

	// Delta between CreatedAt and TimeOfWrite tells us how far behind the
	// pipeline is on the events it is tracking
	MaxEventLatency time.Duration
	MinEventLatency time.Duration
	AvgEventLatency time.Duration
}

// NewBatchWriteResult uses the current time as the write time and then calls
// NewBatchWriteResultWithTime
func NewBatchWriteResult(sent int64, failed int64, attempts int64, processed []*Event) *BatchWriteResult {
	return NewBatchWriteResultWithTime(sent, failed, attempts, time.Now().UTC(), processed)
}

// NewBatchWriteResultWithTime builds a result structure to return from a
// batch delivery attempt which contains the sent and failed counts as well
// as several derived latency measures.
func NewBatchWriteResultWithTime(sent int64, failed int64, attempts int64, timeOfWrite time.Time, processed []*Event) *BatchWriteResult {
	r := BatchWriteResult{
		Sent:     sent,
		Failed:   failed,
		Attempts: attempts,
	}

	processedLen := int64(len(processed))

	var sumBufferLatency time.Duration
	var sumEventLatency time.Duration

	for _, event := range processed {
		bufferLatency := timeOfWrite.Sub(event.TimeBuffered)
		if r.MaxBufferLatency < bufferLatency {
			r.MaxBufferLatency = bufferLatency
		}
		if r.MinBufferLatency > bufferLatency || r.MinBufferLatency == time.Duration(0) {
			r.MinBufferLatency = bufferLatency
		}
		sumBufferLatency += bufferLatency

		eventLatency := timeOfWrite.Sub(event.CreatedAt)
		if r.MaxEventLatency < eventLatency {
			r.MaxEventLatency = eventLatency
		}
		if r.MinEventLatency > eventLatency || r.MinEventLatency == time.Duration(0) {
			r.MinEventLatency = eventLatency
		}
		sumEventLatency += eventLatency
	}

	if processedLen > 0 {
		r.AvgBufferLatency = common.GetAverageFromDuration(sumBufferLatency, processedLen)
		r.AvgEventLatency = common.GetAverageFromDuration(sumEventLatency, processedLen)
	}

	return &r
}

// Total returns the sum of sent + failed events
func (wr *BatchWriteResult) Total() int64 {
	return wr.Sent + wr.Failed
}
