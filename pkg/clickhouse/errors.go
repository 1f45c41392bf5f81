// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Evlytic Ltd. All rights reserved.

package clickhouse

import (
	"fmt"
)

// QueryError is returned when the store answers a read query with a
// non-success HTTP status
type QueryError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("Query failed with status %s: %s", e.Status, e.Body)
}

// InsertError is returned when the store answers a batch insert with a
// non-success HTTP status
type InsertError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *InsertError) Error() string {
	return fmt.Sprintf("Insert failed with status %s: %s", e.Status, e.Body)
}

// ExecuteError is returned when the store answers a DDL statement with a
// non-success HTTP status
type ExecuteError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *ExecuteError) Error() string {
	return fmt.Sprintf("Execute failed with status %s: %s", e.Status, e.Body)
}
