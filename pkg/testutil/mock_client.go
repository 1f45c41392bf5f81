// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Evlytic Ltd. All rights reserved.

package testutil

import (
	"sync"

	"github.com/evlytic/clickbridge/pkg/clickhouse"
)

// MockClient is an in-memory stand-in for the analytical store's wire
// client.  Every call is recorded; responses and failures are scripted
// through the hook functions.
type MockClient struct {
	mu sync.Mutex

	// QueryFunc, when set, provides the response for Query calls
	QueryFunc func(sql string, params map[string]interface{}) (*clickhouse.Result, error)
	// InsertFunc, when set, provides the outcome of InsertBatch calls
	InsertFunc func(table string, rows []map[string]interface{}) error
	// ExecuteFunc, when set, provides the outcome of Execute calls
	ExecuteFunc func(ddl string) error
	// Healthy is returned from Ping
	Healthy bool

	Queries  []string
	Inserts  []MockInsert
	Executes []string
}

// MockInsert records one InsertBatch call
type MockInsert struct {
	Table string
	Rows  []map[string]interface{}
}

// NewMockClient returns a healthy mock whose calls all succeed with
// empty results
func NewMockClient() *MockClient {
	return &MockClient{Healthy: true}
}

// Query records the rendered statement and returns the scripted result
func (m *MockClient) Query(sql string, params map[string]interface{}) (*clickhouse.Result, error) {
	m.mu.Lock()
	m.Queries = append(m.Queries, sql)
	m.mu.Unlock()

	if m.QueryFunc != nil {
		return m.QueryFunc(sql, params)
	}
	return &clickhouse.Result{}, nil
}

// InsertBatch records the call and returns the scripted outcome
func (m *MockClient) InsertBatch(table string, rows []map[string]interface{}) error {
	m.mu.Lock()
	m.Inserts = append(m.Inserts, MockInsert{Table: table, Rows: rows})
	m.mu.Unlock()

	if m.InsertFunc != nil {
		return m.InsertFunc(table, rows)
	}
	return nil
}

// Execute records the statement and returns the scripted outcome
func (m *MockClient) Execute(ddl string) error {
	m.mu.Lock()
	m.Executes = append(m.Executes, ddl)
	m.mu.Unlock()

	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ddl)
	}
	return nil
}

// Ping reports the scripted health state
func (m *MockClient) Ping() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Healthy
}

// SetHealthy flips the health state returned from Ping
func (m *MockClient) SetHealthy(healthy bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Healthy = healthy
}

// InsertCount returns the number of InsertBatch calls made so far
func (m *MockClient) InsertCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Inserts)
}

// InsertedRowCount returns the total number of rows across all
// InsertBatch calls
func (m *MockClient) InsertedRowCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := 0
	for _, insert := range m.Inserts {
		total += len(insert.Rows)
	}
	return total
}
