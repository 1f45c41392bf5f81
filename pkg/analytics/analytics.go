// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Evlytic Ltd. All rights reserved.

package analytics

import (
	"strconv"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/evlytic/clickbridge/pkg/clickhouse/clickhouseiface"
)

// Analytics exposes the library of parameterized queries over the events
// and orders tables.  Queries are independent, stateless request/response
// calls; concurrent callers need no coordination.
type Analytics struct {
	client      clickhouseiface.Client
	eventsTable string
	ordersTable string
	log         *log.Entry
}

// New creates an analytics query surface over the given tables
func New(client clickhouseiface.Client, eventsTable string, ordersTable string) (*Analytics, error) {
	if client == nil {
		return nil, errors.New("Invalid client for analytics: nil")
	}
	if eventsTable == "" {
		return nil, errors.New("Invalid events table for analytics: ''")
	}

	return &Analytics{
		client:      client,
		eventsTable: eventsTable,
		ordersTable: ordersTable,
		log:         log.WithFields(log.Fields{"name": "Analytics"}),
	}, nil
}

// Row is a single result row as returned by the store
type Row = map[string]interface{}

// timeRangeParams builds the shared {from}/{to} substitution map
func timeRangeParams(from time.Time, to time.Time) map[string]interface{} {
	return map[string]interface{}{
		"from": from.UTC(),
		"to":   to.UTC(),
	}
}

// toInt64 coerces a numeric row value into an int64.  Row-oriented JSON
// responses render integers as JSON numbers or, for wide types, as
// strings.
func toInt64(value interface{}) int64 {
	switch v := value.(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	case string:
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

// toFloat64 coerces a numeric row value into a float64
func toFloat64(value interface{}) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}
