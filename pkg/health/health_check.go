// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Evlytic Ltd. All rights reserved.

package health

import (
	"sync/atomic"
	"time"

	"github.com/evlytic/clickbridge/pkg/clickhouse/clickhouseiface"
)

var isHealthy int32

// SetHealthy marks the process as healthy
func SetHealthy() {
	atomic.StoreInt32(&isHealthy, 1)
}

// SetUnhealthy marks the process as unhealthy
func SetUnhealthy() {
	atomic.StoreInt32(&isHealthy, 0)
}

// IsHealthy reports the current health state
func IsHealthy() bool {
	return atomic.LoadInt32(&isHealthy) == 1
}

// Monitor probes the store's liveness on an interval and keeps the health
// flag current.  It returns a stop function.
func Monitor(client clickhouseiface.Client, interval time.Duration) func() {
	exitSignal := make(chan struct{})

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-exitSignal:
				return
			case <-ticker.C:
				if client.Ping() {
					SetHealthy()
				} else {
					SetUnhealthy()
				}
			}
		}
	}()

	return func() { close(exitSignal) }
}
