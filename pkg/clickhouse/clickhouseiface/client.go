// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Evlytic Ltd. All rights reserved.

package clickhouseiface

import (
	"github.com/evlytic/clickbridge/pkg/clickhouse"
)

// Client describes the interface for issuing logical operations against
// the analytical store
type Client interface {
	Query(sql string, params map[string]interface{}) (*clickhouse.Result, error)
	InsertBatch(table string, rows []map[string]interface{}) error
	Execute(ddl string) error
	Ping() bool
}
