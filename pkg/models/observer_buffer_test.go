// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Evlytic Ltd. All rights reserved.

package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestObserverBuffer_AppendWrite(t *testing.T) {
	assert := assert.New(t)

	b := ObserverBuffer{}
	assert.NotNil(b)

	timeOfWrite := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	events := []*Event{
		{
			CreatedAt:    timeOfWrite.Add(-60 * time.Second),
			TimeBuffered: timeOfWrite.Add(-30 * time.Second),
		},
		{
			CreatedAt:    timeOfWrite.Add(-20 * time.Second),
			TimeBuffered: timeOfWrite.Add(-10 * time.Second),
		},
	}

	sent := NewBatchWriteResultWithTime(2, 0, 1, timeOfWrite, events)
	failed := NewBatchWriteResultWithTime(0, 2, 3, timeOfWrite, events)

	b.AppendWrite(sent)
	b.AppendWrite(failed)
	b.AppendWrite(nil)

	assert.Equal(int64(2), b.BatchResults)
	assert.Equal(int64(2), b.EventsSent)
	assert.Equal(int64(2), b.EventsFailed)
	assert.Equal(int64(4), b.EventsTotal)
	assert.Equal(int64(4), b.DeliveryAttempts)

	assert.Equal(30*time.Second, b.MaxBufferLatency)
	assert.Equal(10*time.Second, b.MinBufferLatency)
	assert.Equal(20*time.Second, b.GetAvgBufferLatency())

	assert.Equal(60*time.Second, b.MaxEventLatency)
	assert.Equal(20*time.Second, b.MinEventLatency)
	assert.Equal(40*time.Second, b.GetAvgEventLatency())

	assert.Equal("BatchResults:2,EventsSent:2,EventsFailed:2,DeliveryAttempts:4,MaxBufferLatency:30000,MaxEventLatency:60000", b.String())
}
