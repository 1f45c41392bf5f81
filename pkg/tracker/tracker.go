// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Evlytic Ltd. All rights reserved.

package tracker

import (
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/evlytic/clickbridge/pkg/clickhouse/clickhouseiface"
	"github.com/evlytic/clickbridge/pkg/models"
	"github.com/evlytic/clickbridge/pkg/observer"
	"github.com/evlytic/clickbridge/pkg/retry"
)

// Tracker buffers events in memory and delivers them to the analytical
// store in batches.  A flush is triggered whenever the buffer reaches the
// configured batch size or the flush timer fires; at most one flush
// sequence executes at a time.
type Tracker struct {
	client        clickhouseiface.Client
	eventsTable   string
	batchSize     int
	flushInterval time.Duration
	maxRetries    int
	retryDelay    time.Duration
	observer      *observer.Observer

	mu       sync.Mutex
	buffer   []*models.Event
	flushing bool

	exitSignal chan struct{}
	stopDone   chan struct{}
	isRunning  bool

	log *log.Entry
}

// New creates a tracker writing events to the given table
func New(client clickhouseiface.Client, eventsTable string, batchSize int, flushInterval time.Duration, maxRetries int, retryDelay time.Duration, obs *observer.Observer) (*Tracker, error) {
	if client == nil {
		return nil, errors.New("Invalid client for tracker: nil")
	}
	if eventsTable == "" {
		return nil, errors.New("Invalid events table for tracker: ''")
	}
	if batchSize <= 0 {
		return nil, errors.New("Invalid batch size for tracker; must be greater than 0")
	}
	if maxRetries <= 0 {
		return nil, errors.New("Invalid max retries for tracker; must be greater than 0")
	}

	return &Tracker{
		client:        client,
		eventsTable:   eventsTable,
		batchSize:     batchSize,
		flushInterval: flushInterval,
		maxRetries:    maxRetries,
		retryDelay:    retryDelay,
		observer:      obs,
		exitSignal:    make(chan struct{}),
		stopDone:      make(chan struct{}),
		log:           log.WithFields(log.Fields{"name": "Tracker", "table": eventsTable}),
	}, nil
}

// Start launches a goroutine which flushes the buffer on a fixed interval
// so that events are not held indefinitely below the size threshold
func (t *Tracker) Start() {
	if t.isRunning {
		t.log.Warn("Tracker is already running")
		return
	}
	t.isRunning = true

	go func() {
		ticker := time.NewTicker(t.flushInterval)
		defer ticker.Stop()

	TimerLoop:
		for {
			select {
			case <-t.exitSignal:
				break TimerLoop
			case <-ticker.C:
				// The timer loop must never die on a delivery failure
				if err := t.Flush(); err != nil {
					t.log.WithError(err).Error("Timer flush failed")
				}
			}
		}
		t.stopDone <- struct{}{}
	}()
}

// Track appends an event to the tail of the pending buffer.  The caller is
// never blocked on network I/O; if the buffer reaches the batch size a
// flush is triggered asynchronously.
func (t *Tracker) Track(event *models.Event) {
	if event == nil {
		return
	}
	event.TimeBuffered = time.Now().UTC()

	t.mu.Lock()
	t.buffer = append(t.buffer, event)
	size := len(t.buffer)
	t.mu.Unlock()

	if size >= t.batchSize {
		go func() {
			if err := t.Flush(); err != nil {
				t.log.WithError(err).Error("Size-triggered flush failed")
			}
		}()
	}
}

// BufferedCount returns the number of events awaiting delivery
func (t *Tracker) BufferedCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.buffer)
}

// Flush drains the pending buffer in batches of at most batchSize events.
// If a flush is already in progress it returns immediately; the active
// flush's drain loop will pick up any backlog.  On retry exhaustion the
// failed batch is dropped, the remaining batches are still attempted and
// the accumulated errors are returned.
func (t *Tracker) Flush() error {
	t.mu.Lock()
	if t.flushing {
		t.mu.Unlock()
		return nil
	}
	t.flushing = true
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.flushing = false
		t.mu.Unlock()
	}()

	var accErrs *multierror.Error
	for {
		pending := t.extractPending()
		if len(pending) == 0 {
			return accErrs.ErrorOrNil()
		}
		for _, batch := range models.GetChunkedEvents(pending, t.batchSize) {
			if err := t.deliver(batch); err != nil {
				accErrs = multierror.Append(accErrs, err)
			}
		}
	}
}

// extractPending takes ownership of the pending buffer in original
// insertion order
func (t *Tracker) extractPending() []*models.Event {
	t.mu.Lock()
	defer t.mu.Unlock()

	pending := t.buffer
	t.buffer = nil
	return pending
}

// deliver attempts to write a batch via the wire client, retrying with a
// linearly increasing delay between attempts
func (t *Tracker) deliver(batch []*models.Event) error {
	rows := make([]map[string]interface{}, len(batch))
	for i, event := range batch {
		rows[i] = event.ToRow()
	}

	var attempts int64
	err := retry.RetryLinear(t.maxRetries, t.retryDelay, "Failed to deliver batch", func() error {
		attempts++
		return t.client.InsertBatch(t.eventsTable, rows)
	})

	batchLen := int64(len(batch))
	if err != nil {
		t.log.WithError(err).Errorf("Dropping batch of %d events after %d attempts", batchLen, attempts)
		if t.observer != nil {
			t.observer.BatchWrite(models.NewBatchWriteResult(0, batchLen, attempts, batch))
		}
		return err
	}

	t.log.Debugf("Successfully delivered batch of %d events", batchLen)
	if t.observer != nil {
		t.observer.BatchWrite(models.NewBatchWriteResult(batchLen, 0, attempts, batch))
	}
	return nil
}

// Shutdown cancels the flush timer and performs one final synchronous
// flush to drain any remaining buffered events
func (t *Tracker) Shutdown() error {
	if t.isRunning {
		t.exitSignal <- struct{}{}
		<-t.stopDone
		t.isRunning = false
	}
	return t.Flush()
}
