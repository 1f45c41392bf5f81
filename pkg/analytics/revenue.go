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

// DailyRevenue returns one row per day with summed order revenue
func (a *Analytics) DailyRevenue(from time.Time, to time.Time) ([]Row, error) {
	sql := fmt.Sprintf(`
		SELECT toDate(created_at) AS day, sum(revenue) AS revenue, count() AS orders
		FROM %s
		WHERE created_at >= {from} AND created_at <= {to}
		GROUP BY day
		ORDER BY day`, a.ordersTable)

	result, err := a.client.Query(sql, timeRangeParams(from, to))
	if err != nil {
		return nil, err
	}
	return result.Rows, nil
}

// TopProducts returns the highest-revenue products in the range
func (a *Analytics) TopProducts(limit int, from time.Time, to time.Time) ([]Row, error) {
	if limit <= 0 {
		limit = 10
	}

	sql := fmt.Sprintf(`
		SELECT product_id, any(product_name) AS product_name, sum(revenue) AS revenue, count() AS orders
		FROM %s
		WHERE created_at >= {from} AND created_at <= {to}
		GROUP BY product_id
		ORDER BY revenue DESC
		LIMIT {limit}`, a.ordersTable)

	params := timeRangeParams(from, to)
	params["limit"] = limit

	result, err := a.client.Query(sql, params)
	if err != nil {
		return nil, err
	}
	return result.Rows, nil
}

// ARPU returns average revenue per active user over the range
func (a *Analytics) ARPU(from time.Time, to time.Time) ([]Row, error) {
	sql := fmt.Sprintf(`
		SELECT
			if(active_users > 0, total_revenue / active_users, 0) AS arpu,
			total_revenue,
			active_users
		FROM (
			SELECT
				(SELECT sum(revenue) FROM %s WHERE created_at >= {from} AND created_at <= {to}) AS total_revenue,
				(SELECT uniqExact(user_id) FROM %s WHERE created_at >= {from} AND created_at <= {to} AND user_id != '') AS active_users
		)`, a.ordersTable, a.eventsTable)

	result, err := a.client.Query(sql, timeRangeParams(from, to))
	if err != nil {
		return nil, err
	}
	return result.Rows, nil
}
