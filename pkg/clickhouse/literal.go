// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Evlytic Ltd. All rights reserved.

package clickhouse

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// RenderLiteral renders a Go value as a SQL literal following the store's
// escaping rules:
//
// - strings are single-quoted with internal quotes doubled and backslashes escaped
// - numbers are rendered as-is
// - booleans become 0/1
// - time.Time becomes a quoted UTC 'YYYY-MM-DD hh:mm:ss' string — the
//   store's DateTime text format, deliberately not the ISO-8601 'T' form,
//   which older server versions reject on comparison against DateTime
//   columns
// - slices become bracketed comma-joined escaped literals
// - nil becomes the literal NULL
//
// This is the single substitution point for query parameters; replacing it
// with native parameter binding must not change any call sites.
func RenderLiteral(value interface{}) string {
	if value == nil {
		return "NULL"
	}

	switch v := value.(type) {
	case string:
		return quoteString(v)
	case bool:
		if v {
			return "1"
		}
		return "0"
	case time.Time:
		return quoteString(v.UTC().Format("2006-01-02 15:04:05"))
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case fmt.Stringer:
		return quoteString(v.String())
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		rendered := make([]string, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			rendered[i] = RenderLiteral(rv.Index(i).Interface())
		}
		return fmt.Sprintf("[%s]", strings.Join(rendered, ","))
	}

	return quoteString(fmt.Sprintf("%v", value))
}

// quoteString single-quotes a string, doubling internal quotes and
// escaping backslashes
func quoteString(str string) string {
	escaped := strings.ReplaceAll(str, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `'`, `''`)
	return fmt.Sprintf("'%s'", escaped)
}

// substituteParams replaces each {name} placeholder in the statement with
// the escaped literal of the matching parameter
func substituteParams(sql string, params map[string]interface{}) string {
	if len(params) == 0 {
		return sql
	}
	for name, value := range params {
		sql = strings.ReplaceAll(sql, fmt.Sprintf("{%s}", name), RenderLiteral(value))
	}
	return sql
}
