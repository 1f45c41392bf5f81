// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Evlytic Ltd. All rights reserved.

package analytics

import (
	"fmt"
	"time"
)

// DailyActiveUsers returns one row per day with the count of distinct
// active users
func (a *Analytics) DailyActiveUsers(from time.Time, to time.Time) ([]Row, error) {
	sql := fmt.Sprintf(`
		SELECT toDate(created_at) AS day, uniqExact(user_id) AS active_users
		FROM %s
		WHERE created_at >= {from} AND created_at <= {to} AND user_id != ''
		GROUP BY day
		ORDER BY day`, a.eventsTable)

	result, err := a.client.Query(sql, timeRangeParams(from, to))
	if err != nil {
		return nil, err
	}
	return result.Rows, nil
}

// WeeklyActiveUsers returns one row per ISO week with the count of
// distinct active users
func (a *Analytics) WeeklyActiveUsers(from time.Time, to time.Time) ([]Row, error) {
	sql := fmt.Sprintf(`
		SELECT toStartOfWeek(created_at) AS week, uniqExact(user_id) AS active_users
		FROM %s
		WHERE created_at >= {from} AND created_at <= {to} AND user_id != ''
		GROUP BY week
		ORDER BY week`, a.eventsTable)

	result, err := a.client.Query(sql, timeRangeParams(from, to))
	if err != nil {
		return nil, err
	}
	return result.Rows, nil
}

// MonthlyActiveUsers returns one row per month with the count of distinct
// active users
func (a *Analytics) MonthlyActiveUsers(from time.Time, to time.Time) ([]Row, error) {
	sql := fmt.Sprintf(`
		SELECT toStartOfMonth(created_at) AS month, uniqExact(user_id) AS active_users
		FROM %s
		WHERE created_at >= {from} AND created_at <= {to} AND user_id != ''
		GROUP BY month
		ORDER BY month`, a.eventsTable)

	result, err := a.client.Query(sql, timeRangeParams(from, to))
	if err != nil {
		return nil, err
	}
	return result.Rows, nil
}

// EventCounts returns the number of occurrences per event name
func (a *Analytics) EventCounts(from time.Time, to time.Time) ([]Row, error) {
	sql := fmt.Sprintf(`
		SELECT event_name, count() AS total
		FROM %s
		WHERE created_at >= {from} AND created_at <= {to}
		GROUP BY event_name
		ORDER BY total DESC`, a.eventsTable)

	result, err := a.client.Query(sql, timeRangeParams(from, to))
	if err != nil {
		return nil, err
	}
	return result.Rows, nil
}

// ScreensPerSession returns the average number of screen views per session
func (a *Analytics) ScreensPerSession(from time.Time, to time.Time) ([]Row, error) {
	sql := fmt.Sprintf(`
		SELECT avg(screens) AS avg_screens_per_session
		FROM (
			SELECT session_id, count() AS screens
			FROM %s
			WHERE created_at >= {from} AND created_at <= {to}
			  AND session_id != ''
			  AND event_name IN ('screen_viewed', 'page_viewed')
			GROUP BY session_id
		)`, a.eventsTable)

	result, err := a.client.Query(sql, timeRangeParams(from, to))
	if err != nil {
		return nil, err
	}
	return result.Rows, nil
}
