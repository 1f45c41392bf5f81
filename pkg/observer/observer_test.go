// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Evlytic Ltd. All rights reserved.

package observer

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/evlytic/clickbridge/pkg/models"
)

// --- Test StatsReceiver

type TestStatsReceiver struct {
	mu      sync.Mutex
	buffers []*models.ObserverBuffer
}

func (s *TestStatsReceiver) Send(b *models.ObserverBuffer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffers = append(s.buffers, b)
}

func (s *TestStatsReceiver) Sent() []*models.ObserverBuffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffers
}

// --- Tests

func TestObserverBatchWrite(t *testing.T) {
	assert := assert.New(t)

	sr := TestStatsReceiver{}

	observer := New(&sr, 100*time.Millisecond, 300*time.Millisecond)
	assert.NotNil(observer)
	observer.Start()

	// This does nothing
	observer.Start()

	timeOfWrite := time.Now().UTC()
	events := []*models.Event{
		{
			CreatedAt:    timeOfWrite.Add(-50 * time.Minute),
			TimeBuffered: timeOfWrite.Add(-4 * time.Minute),
		},
		{
			CreatedAt:    timeOfWrite.Add(-70 * time.Minute),
			TimeBuffered: timeOfWrite.Add(-7 * time.Minute),
		},
	}
	r := models.NewBatchWriteResultWithTime(2, 0, 1, timeOfWrite, events)
	for i := 0; i < 5; i++ {
		observer.BatchWrite(r)
	}

	// Wait past the report interval for the periodic flush
	time.Sleep(500 * time.Millisecond)
	observer.Stop()

	buffers := sr.Sent()
	assert.GreaterOrEqual(len(buffers), 1)

	var totalResults, totalSent int64
	for _, b := range buffers {
		totalResults += b.BatchResults
		totalSent += b.EventsSent
	}
	assert.Equal(int64(5), totalResults)
	assert.Equal(int64(10), totalSent)
	assert.Equal(4*time.Minute, buffers[0].MinBufferLatency)
	assert.Equal(7*time.Minute, buffers[0].MaxBufferLatency)
}

func TestObserverStopWithoutStart(t *testing.T) {
	assert := assert.New(t)

	observer := New(nil, time.Second, time.Second)
	assert.NotNil(observer)

	// Stop on a never-started observer must not block
	observer.Stop()
}
