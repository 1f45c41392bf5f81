// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Evlytic Ltd. All rights reserved.

package bridge

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/evlytic/clickbridge/config"
)

type requestLog struct {
	mu      sync.Mutex
	queries []string
	inserts []string
}

func (rl *requestLog) record(r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if insert := r.URL.Query().Get("query"); insert != "" {
		rl.inserts = append(rl.inserts, insert+"\n"+string(body))
		return
	}
	rl.queries = append(rl.queries, string(body))
}

func (rl *requestLog) insertCount() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.inserts)
}

func testConfig(t *testing.T, serverURL string) *config.Config {
	t.Helper()

	cfg, err := config.NewConfig()
	if err != nil {
		t.Fatal(err)
	}

	parsed, err := url.Parse(serverURL)
	if err != nil {
		t.Fatal(err)
	}
	port, err := strconv.Atoi(parsed.Port())
	if err != nil {
		t.Fatal(err)
	}

	cfg.ClickHouse.Host = parsed.Hostname()
	cfg.ClickHouse.Port = port
	cfg.Tracker.FlushIntervalSec = 3600
	cfg.Tracker.RetryDelaySec = 0
	return cfg
}

func TestBridgeLifecycle(t *testing.T) {
	assert := assert.New(t)

	rl := &requestLog{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rl.record(r)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	b, err := New(testConfig(t, server.URL))
	assert.Nil(err)
	assert.NotNil(b)

	assert.Nil(b.Setup())
	assert.True(b.Client.Ping())

	b.Tracker.TrackPageView("u-1", "s-1", "/home", nil)
	b.Tracker.TrackAppOpened("u-1", "s-1", nil)

	assert.Nil(b.Close())

	// schema DDL plus the ping query
	rl.mu.Lock()
	queries := make([]string, len(rl.queries))
	copy(queries, rl.queries)
	rl.mu.Unlock()

	var sawEventsDDL bool
	for _, q := range queries {
		if strings.Contains(q, "CREATE TABLE IF NOT EXISTS events") {
			sawEventsDDL = true
		}
	}
	assert.True(sawEventsDDL)

	// the buffered events were drained in one insert on close
	assert.Equal(1, rl.insertCount())
	rl.mu.Lock()
	insert := rl.inserts[0]
	rl.mu.Unlock()
	assert.Contains(insert, "INSERT INTO events FORMAT JSONEachRow")
	assert.Contains(insert, "page_viewed")
	assert.Contains(insert, "app_opened")
}

func TestBridge_SetupFailure(t *testing.T) {
	assert := assert.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Code: 241. DB::Exception: Memory limit exceeded"))
	}))
	defer server.Close()

	b, err := New(testConfig(t, server.URL))
	assert.Nil(err)

	err = b.Setup()
	assert.NotNil(err)
	if err != nil {
		assert.Contains(err.Error(), "Failed to set up schema")
	}
	assert.False(b.Client.Ping())

	b.Close()
}
