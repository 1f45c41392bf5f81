// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Evlytic Ltd. All rights reserved.

package analytics

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/evlytic/clickbridge/pkg/clickhouse"
	"github.com/evlytic/clickbridge/pkg/testutil"
)

func TestNew_Validation(t *testing.T) {
	assert := assert.New(t)

	analytics, err := New(nil, "events", "orders")
	assert.Nil(analytics)
	assert.NotNil(err)

	analytics, err = New(testutil.NewMockClient(), "", "orders")
	assert.Nil(analytics)
	assert.NotNil(err)

	// orders table is optional
	analytics, err = New(testutil.NewMockClient(), "events", "")
	assert.Nil(err)
	assert.NotNil(analytics)
}

func TestActivityQueries(t *testing.T) {
	assert := assert.New(t)

	rows := []map[string]interface{}{{"day": "2026-01-01", "active_users": "12"}}
	client := testutil.NewMockClient()
	client.QueryFunc = func(sql string, params map[string]interface{}) (*clickhouse.Result, error) {
		return &clickhouse.Result{Rows: rows}, nil
	}
	analytics := newTestAnalytics(t, client)

	got, err := analytics.DailyActiveUsers(funnelFrom, funnelTo)
	assert.Nil(err)
	assert.Equal(rows, got)
	assert.Contains(client.Queries[0], "uniqExact(user_id)")
	assert.Contains(client.Queries[0], "toDate(created_at)")

	_, err = analytics.WeeklyActiveUsers(funnelFrom, funnelTo)
	assert.Nil(err)
	assert.Contains(client.Queries[1], "toStartOfWeek(created_at)")

	_, err = analytics.MonthlyActiveUsers(funnelFrom, funnelTo)
	assert.Nil(err)
	assert.Contains(client.Queries[2], "toStartOfMonth(created_at)")

	_, err = analytics.EventCounts(funnelFrom, funnelTo)
	assert.Nil(err)
	assert.Contains(client.Queries[3], "GROUP BY event_name")

	_, err = analytics.ScreensPerSession(funnelFrom, funnelTo)
	assert.Nil(err)
	assert.Contains(client.Queries[4], "GROUP BY session_id")
}

func TestActivityQueries_Error(t *testing.T) {
	assert := assert.New(t)

	client := testutil.NewMockClient()
	client.QueryFunc = func(sql string, params map[string]interface{}) (*clickhouse.Result, error) {
		return nil, errors.New("store unavailable")
	}
	analytics := newTestAnalytics(t, client)

	rows, err := analytics.DailyActiveUsers(funnelFrom, funnelTo)
	assert.Nil(rows)
	assert.NotNil(err)
}

func TestRetentionQueries(t *testing.T) {
	assert := assert.New(t)

	client := testutil.NewMockClient()
	analytics := newTestAnalytics(t, client)

	_, err := analytics.CohortRetention(funnelFrom, funnelTo)
	assert.Nil(err)
	assert.Contains(client.Queries[0], "dateDiff('week', cohort_week, activity_week)")

	_, err = analytics.NDayRetention(7, funnelFrom, funnelTo)
	assert.Nil(err)
	assert.Contains(client.Queries[1], "retention_rate")
}

func TestNDayRetention_InvalidDays(t *testing.T) {
	assert := assert.New(t)

	client := testutil.NewMockClient()
	analytics := newTestAnalytics(t, client)

	rows, err := analytics.NDayRetention(0, funnelFrom, funnelTo)
	assert.Nil(rows)
	assert.NotNil(err)
	assert.Equal(0, len(client.Queries))
}

func TestRevenueQueries(t *testing.T) {
	assert := assert.New(t)

	var gotParams map[string]interface{}
	client := testutil.NewMockClient()
	client.QueryFunc = func(sql string, params map[string]interface{}) (*clickhouse.Result, error) {
		gotParams = params
		return &clickhouse.Result{}, nil
	}
	analytics := newTestAnalytics(t, client)

	_, err := analytics.DailyRevenue(funnelFrom, funnelTo)
	assert.Nil(err)
	assert.Contains(client.Queries[0], "sum(revenue)")
	assert.Contains(client.Queries[0], "FROM orders")

	_, err = analytics.TopProducts(0, funnelFrom, funnelTo)
	assert.Nil(err)
	assert.Equal(10, gotParams["limit"])

	_, err = analytics.TopProducts(3, funnelFrom, funnelTo)
	assert.Nil(err)
	assert.Equal(3, gotParams["limit"])

	_, err = analytics.ARPU(funnelFrom, funnelTo)
	assert.Nil(err)
	assert.Contains(client.Queries[3], "total_revenue / active_users")
}

func TestPathQueries(t *testing.T) {
	assert := assert.New(t)

	var gotParams map[string]interface{}
	client := testutil.NewMockClient()
	client.QueryFunc = func(sql string, params map[string]interface{}) (*clickhouse.Result, error) {
		gotParams = params
		return &clickhouse.Result{}, nil
	}
	analytics := newTestAnalytics(t, client)

	_, err := analytics.NavigationPaths(0, funnelFrom, funnelTo)
	assert.Nil(err)
	assert.Contains(client.Queries[0], "neighbor(event_name, 1)")
	assert.Equal(25, gotParams["limit"])

	_, err = analytics.DropOffPoints(funnelFrom, funnelTo)
	assert.Nil(err)
	assert.Contains(client.Queries[1], "argMax(event_name, created_at)")

	_, err = analytics.EntryPoints(funnelFrom, funnelTo)
	assert.Nil(err)
	assert.Contains(client.Queries[2], "argMin(event_name, created_at)")

	_, err = analytics.UserJourney("u-1", 0, funnelFrom, funnelTo)
	assert.Nil(err)
	assert.Equal("u-1", gotParams["user"])
	assert.Equal(100, gotParams["limit"])

	_, err = analytics.FlowCompletion("signed_up", "purchased", 15*time.Minute, funnelFrom, funnelTo)
	assert.Nil(err)
	assert.Contains(client.Queries[4], "windowFunnel({window})")
	assert.Equal(int64(900), gotParams["window"])
}

func TestUserJourney_InvalidUser(t *testing.T) {
	assert := assert.New(t)

	client := testutil.NewMockClient()
	analytics := newTestAnalytics(t, client)

	rows, err := analytics.UserJourney("", 10, funnelFrom, funnelTo)
	assert.Nil(rows)
	assert.NotNil(err)
	assert.Equal(0, len(client.Queries))
}

func TestFlowCompletion_InvalidEvents(t *testing.T) {
	assert := assert.New(t)

	client := testutil.NewMockClient()
	analytics := newTestAnalytics(t, client)

	rows, err := analytics.FlowCompletion("", "purchased", time.Hour, funnelFrom, funnelTo)
	assert.Nil(rows)
	assert.NotNil(err)

	rows, err = analytics.FlowCompletion("signed_up", "", time.Hour, funnelFrom, funnelTo)
	assert.Nil(rows)
	assert.NotNil(err)
	assert.Equal(0, len(client.Queries))
}

func TestCoercions(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(int64(5), toInt64("5"))
	assert.Equal(int64(5), toInt64(float64(5)))
	assert.Equal(int64(5), toInt64(int64(5)))
	assert.Equal(int64(0), toInt64("not a number"))
	assert.Equal(int64(0), toInt64(nil))

	assert.Equal(2.5, toFloat64("2.5"))
	assert.Equal(2.5, toFloat64(2.5))
	assert.Equal(5.0, toFloat64(int64(5)))
	assert.Equal(0.0, toFloat64(nil))
}
