// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Evlytic Ltd. All rights reserved.

package analytics

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// CohortRetention groups users by the week of their first event and
// returns, per cohort, the count of users active in each subsequent week
func (a *Analytics) CohortRetention(from time.Time, to time.Time) ([]Row, error) {
	sql := fmt.Sprintf(`
		SELECT
			cohort_week,
			dateDiff('week', cohort_week, activity_week) AS week_number,
			uniqExact(user_id) AS active_users
		FROM (
			SELECT user_id, toStartOfWeek(created_at) AS activity_week
			FROM %s
			WHERE created_at >= {from} AND created_at <= {to} AND user_id != ''
			GROUP BY user_id, activity_week
		) AS activity
		INNER JOIN (
			SELECT user_id, toStartOfWeek(min(created_at)) AS cohort_week
			FROM %s
			WHERE user_id != ''
			GROUP BY user_id
		) AS cohorts USING (user_id)
		WHERE activity_week >= cohort_week
		GROUP BY cohort_week, week_number
		ORDER BY cohort_week, week_number`, a.eventsTable, a.eventsTable)

	result, err := a.client.Query(sql, timeRangeParams(from, to))
	if err != nil {
		return nil, err
	}
	return result.Rows, nil
}

// NDayRetention returns the fraction of users first seen in the range who
// came back exactly N days after their first event
func (a *Analytics) NDayRetention(days int, from time.Time, to time.Time) ([]Row, error) {
	if days <= 0 {
		return nil, errors.New("Invalid retention period; days must be greater than 0")
	}

	sql := fmt.Sprintf(`
		SELECT
			count() AS cohort_size,
			countIf(returned = 1) AS retained_users,
			if(count() > 0, countIf(returned = 1) / count(), 0) AS retention_rate
		FROM (
			SELECT
				first_seen.user_id,
				max(toDate(activity.created_at) = toDate(first_seen.first_day) + {days}) AS returned
			FROM (
				SELECT user_id, min(created_at) AS first_day
				FROM %s
				WHERE user_id != ''
				GROUP BY user_id
				HAVING first_day >= {from} AND first_day <= {to}
			) AS first_seen
			LEFT JOIN %s AS activity USING (user_id)
			GROUP BY first_seen.user_id
		)`, a.eventsTable, a.eventsTable)

	params := timeRangeParams(from, to)
	params["days"] = days

	result, err := a.client.Query(sql, params)
	if err != nil {
		return nil, err
	}
	return result.Rows, nil
}
