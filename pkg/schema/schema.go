// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Evlytic Ltd. All rights reserved.

package schema

import (
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/evlytic/clickbridge/pkg/clickhouse/clickhouseiface"
)

// Schema issues the idempotent DDL statements for the tables the bridge
// writes to and queries from.  There is no algorithmic content here; the
// statements are static configuration pushed through the wire client.
type Schema struct {
	client      clickhouseiface.Client
	eventsTable string
	ordersTable string
	log         *log.Entry
}

// New creates a schema helper for the given tables
func New(client clickhouseiface.Client, eventsTable string, ordersTable string) (*Schema, error) {
	if client == nil {
		return nil, errors.New("Invalid client for schema: nil")
	}
	if eventsTable == "" {
		return nil, errors.New("Invalid events table for schema: ''")
	}

	return &Schema{
		client:      client,
		eventsTable: eventsTable,
		ordersTable: ordersTable,
		log:         log.WithFields(log.Fields{"name": "Schema"}),
	}, nil
}

// eventsTableDDL is the behavioral events table
func (s *Schema) eventsTableDDL() string {
	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			event_id     String,
			event_name   LowCardinality(String),
			user_id      String,
			session_id   String,
			anonymous_id String,
			created_at   DateTime,
			properties   String,
			context      String
		)
		ENGINE = MergeTree()
		PARTITION BY toYYYYMM(created_at)
		ORDER BY (event_name, created_at, user_id)`, s.eventsTable)
}

// ordersTableDDL is the revenue-bearing orders table
func (s *Schema) ordersTableDDL() string {
	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			order_id     String,
			user_id      String,
			product_id   String,
			product_name String,
			revenue      Float64,
			created_at   DateTime
		)
		ENGINE = MergeTree()
		PARTITION BY toYYYYMM(created_at)
		ORDER BY (created_at, user_id)`, s.ordersTable)
}

// dailyActivityViewDDL pre-aggregates per-day distinct users to keep the
// activity queries cheap on large event volumes
func (s *Schema) dailyActivityViewDDL() string {
	return fmt.Sprintf(`
		CREATE MATERIALIZED VIEW IF NOT EXISTS %s_daily_activity
		ENGINE = AggregatingMergeTree()
		ORDER BY day
		AS SELECT
			toDate(created_at) AS day,
			uniqState(user_id) AS users
		FROM %s
		WHERE user_id != ''
		GROUP BY day`, s.eventsTable, s.eventsTable)
}

// Setup creates the tables and views if they do not already exist
func (s *Schema) Setup() error {
	statements := []string{
		s.eventsTableDDL(),
		s.dailyActivityViewDDL(),
	}
	if s.ordersTable != "" {
		statements = append(statements, s.ordersTableDDL())
	}

	for _, ddl := range statements {
		if err := s.client.Execute(ddl); err != nil {
			return errors.Wrap(err, "Failed to set up schema")
		}
	}

	s.log.Info("Schema setup complete")
	return nil
}
