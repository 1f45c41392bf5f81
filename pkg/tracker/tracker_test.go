// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Evlytic Ltd. All rights reserved.

package tracker

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/evlytic/clickbridge/pkg/testutil"
)

func newTestTracker(t *testing.T, client *testutil.MockClient, batchSize int, flushInterval time.Duration) *Tracker {
	t.Helper()

	tracker, err := New(client, "events", batchSize, flushInterval, 3, time.Millisecond, nil)
	if err != nil {
		t.Fatal(err)
	}
	return tracker
}

// waitFor polls until the condition holds or the deadline passes
func waitFor(t *testing.T, condition func() bool, message string) {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal(message)
}

func TestNew_Validation(t *testing.T) {
	assert := assert.New(t)

	tracker, err := New(nil, "events", 100, time.Second, 3, time.Second, nil)
	assert.Nil(tracker)
	assert.NotNil(err)

	tracker, err = New(testutil.NewMockClient(), "", 100, time.Second, 3, time.Second, nil)
	assert.Nil(tracker)
	assert.NotNil(err)

	tracker, err = New(testutil.NewMockClient(), "events", 0, time.Second, 3, time.Second, nil)
	assert.Nil(tracker)
	assert.NotNil(err)

	// zero retries would let a flush extract a batch, make no delivery
	// attempt and report success
	tracker, err = New(testutil.NewMockClient(), "events", 100, time.Second, 0, time.Second, nil)
	assert.Nil(tracker)
	assert.NotNil(err)
	if err != nil {
		assert.Equal("Invalid max retries for tracker; must be greater than 0", err.Error())
	}
}

func TestTracker_EveryFlushAttemptsDelivery(t *testing.T) {
	assert := assert.New(t)

	client := testutil.NewMockClient()
	tracker := newTestTracker(t, client, 100, time.Hour)

	for _, event := range testutil.GetTestEvents(5, "page_viewed") {
		tracker.Track(event)
	}

	assert.Nil(tracker.Flush())
	assert.Equal(1, client.InsertCount())
	assert.Equal(5, client.InsertedRowCount())
}

func TestTracker_SizeTriggeredFlush(t *testing.T) {
	assert := assert.New(t)

	client := testutil.NewMockClient()
	tracker := newTestTracker(t, client, 100, time.Hour)

	for _, event := range testutil.GetTestEvents(100, "page_viewed") {
		tracker.Track(event)
	}

	waitFor(t, func() bool { return client.InsertCount() == 1 }, "expected one insert after reaching batch size")
	assert.Equal(100, client.InsertedRowCount())
	assert.Equal(0, tracker.BufferedCount())
	assert.Equal("events", client.Inserts[0].Table)
}

func TestTracker_NoDeliveryBelowThreshold(t *testing.T) {
	assert := assert.New(t)

	client := testutil.NewMockClient()
	tracker := newTestTracker(t, client, 100, time.Hour)

	for _, event := range testutil.GetTestEvents(99, "page_viewed") {
		tracker.Track(event)
	}

	time.Sleep(50 * time.Millisecond)
	assert.Equal(0, client.InsertCount())
	assert.Equal(99, tracker.BufferedCount())
}

func TestTracker_TimerFlush(t *testing.T) {
	assert := assert.New(t)

	client := testutil.NewMockClient()
	tracker := newTestTracker(t, client, 100, 20*time.Millisecond)
	tracker.Start()

	for _, event := range testutil.GetTestEvents(5, "app_opened") {
		tracker.Track(event)
	}

	waitFor(t, func() bool { return client.InsertCount() >= 1 }, "expected timer flush to deliver pending events")
	assert.Equal(5, client.InsertedRowCount())

	assert.Nil(tracker.Shutdown())
}

func TestTracker_FlushEmptyBuffer(t *testing.T) {
	assert := assert.New(t)

	client := testutil.NewMockClient()
	tracker := newTestTracker(t, client, 100, time.Hour)

	assert.Nil(tracker.Flush())
	assert.Equal(0, client.InsertCount())
}

func TestTracker_RetryExhaustionDropsBatch(t *testing.T) {
	assert := assert.New(t)

	client := testutil.NewMockClient()
	client.InsertFunc = func(table string, rows []map[string]interface{}) error {
		return errors.New("store unavailable")
	}
	tracker := newTestTracker(t, client, 100, time.Hour)

	for _, event := range testutil.GetTestEvents(10, "page_viewed") {
		tracker.Track(event)
	}

	err := tracker.Flush()
	assert.NotNil(err)
	if err != nil {
		assert.Contains(err.Error(), "Failed to deliver batch")
	}

	// three attempts for the one batch, then dropped without re-enqueue
	assert.Equal(3, client.InsertCount())
	assert.Equal(0, tracker.BufferedCount())
}

func TestTracker_RecoversAfterTransientFailure(t *testing.T) {
	assert := assert.New(t)

	var calls int
	client := testutil.NewMockClient()
	client.InsertFunc = func(table string, rows []map[string]interface{}) error {
		calls++
		if calls == 1 {
			return errors.New("store unavailable")
		}
		return nil
	}
	tracker := newTestTracker(t, client, 100, time.Hour)

	for _, event := range testutil.GetTestEvents(5, "page_viewed") {
		tracker.Track(event)
	}

	assert.Nil(tracker.Flush())
	assert.Equal(2, client.InsertCount())
	assert.Equal(0, tracker.BufferedCount())
}

func TestTracker_FlushDrainsBacklogInBatches(t *testing.T) {
	assert := assert.New(t)

	client := testutil.NewMockClient()
	tracker := newTestTracker(t, client, 10, time.Hour)

	events := testutil.GetTestEvents(25, "page_viewed")
	tracker.mu.Lock()
	tracker.buffer = append(tracker.buffer, events...)
	tracker.mu.Unlock()

	assert.Nil(tracker.Flush())
	assert.Equal(3, client.InsertCount())
	assert.Equal(10, len(client.Inserts[0].Rows))
	assert.Equal(10, len(client.Inserts[1].Rows))
	assert.Equal(5, len(client.Inserts[2].Rows))
	assert.Equal(0, tracker.BufferedCount())
}

func TestTracker_OrderPreserved(t *testing.T) {
	assert := assert.New(t)

	client := testutil.NewMockClient()
	tracker := newTestTracker(t, client, 100, time.Hour)

	events := testutil.GetTestEvents(10, "page_viewed")
	for _, event := range events {
		tracker.Track(event)
	}

	assert.Nil(tracker.Flush())
	assert.Equal(1, client.InsertCount())
	for i, row := range client.Inserts[0].Rows {
		assert.Equal(events[i].ID, row["event_id"])
	}
}

func TestTracker_ShutdownDrains(t *testing.T) {
	assert := assert.New(t)

	client := testutil.NewMockClient()
	tracker := newTestTracker(t, client, 100, time.Hour)
	tracker.Start()

	for _, event := range testutil.GetTestEvents(7, "screen_viewed") {
		tracker.Track(event)
	}

	assert.Nil(tracker.Shutdown())
	assert.Equal(7, client.InsertedRowCount())
	assert.Equal(0, tracker.BufferedCount())
}

func TestTracker_TrackNil(t *testing.T) {
	assert := assert.New(t)

	client := testutil.NewMockClient()
	tracker := newTestTracker(t, client, 100, time.Hour)

	tracker.Track(nil)
	assert.Equal(0, tracker.BufferedCount())
}
