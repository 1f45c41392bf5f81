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

// NavigationPaths returns the most common consecutive screen transitions
// per session, suitable for building a Sankey diagram
func (a *Analytics) NavigationPaths(limit int, from time.Time, to time.Time) ([]Row, error) {
	if limit <= 0 {
		limit = 25
	}

	sql := fmt.Sprintf(`
		SELECT from_screen, to_screen, count() AS transitions
		FROM (
			SELECT
				session_id,
				event_name AS from_screen,
				neighbor(event_name, 1) AS to_screen,
				neighbor(session_id, 1) AS next_session
			FROM (
				SELECT session_id, event_name, created_at
				FROM %s
				WHERE created_at >= {from} AND created_at <= {to} AND session_id != ''
				ORDER BY session_id, created_at
			)
		)
		WHERE next_session = session_id AND to_screen != ''
		GROUP BY from_screen, to_screen
		ORDER BY transitions DESC
		LIMIT {limit}`, a.eventsTable)

	params := timeRangeParams(from, to)
	params["limit"] = limit

	result, err := a.client.Query(sql, params)
	if err != nil {
		return nil, err
	}
	return result.Rows, nil
}

// DropOffPoints returns, per screen, how often it was the last event of a
// session
func (a *Analytics) DropOffPoints(from time.Time, to time.Time) ([]Row, error) {
	sql := fmt.Sprintf(`
		SELECT last_screen, count() AS sessions_ended
		FROM (
			SELECT session_id, argMax(event_name, created_at) AS last_screen
			FROM %s
			WHERE created_at >= {from} AND created_at <= {to} AND session_id != ''
			GROUP BY session_id
		)
		GROUP BY last_screen
		ORDER BY sessions_ended DESC`, a.eventsTable)

	result, err := a.client.Query(sql, timeRangeParams(from, to))
	if err != nil {
		return nil, err
	}
	return result.Rows, nil
}

// EntryPoints returns, per screen, how often it was the first event of a
// session
func (a *Analytics) EntryPoints(from time.Time, to time.Time) ([]Row, error) {
	sql := fmt.Sprintf(`
		SELECT first_screen, count() AS sessions_started
		FROM (
			SELECT session_id, argMin(event_name, created_at) AS first_screen
			FROM %s
			WHERE created_at >= {from} AND created_at <= {to} AND session_id != ''
			GROUP BY session_id
		)
		GROUP BY first_screen
		ORDER BY sessions_started DESC`, a.eventsTable)

	result, err := a.client.Query(sql, timeRangeParams(from, to))
	if err != nil {
		return nil, err
	}
	return result.Rows, nil
}

// UserJourney returns the ordered event trail for a single user
func (a *Analytics) UserJourney(userID string, limit int, from time.Time, to time.Time) ([]Row, error) {
	if userID == "" {
		return nil, errors.New("Invalid user for journey query: ''")
	}
	if limit <= 0 {
		limit = 100
	}

	sql := fmt.Sprintf(`
		SELECT event_name, session_id, created_at, properties
		FROM %s
		WHERE user_id = {user} AND created_at >= {from} AND created_at <= {to}
		ORDER BY created_at
		LIMIT {limit}`, a.eventsTable)

	params := timeRangeParams(from, to)
	params["user"] = userID
	params["limit"] = limit

	result, err := a.client.Query(sql, params)
	if err != nil {
		return nil, err
	}
	return result.Rows, nil
}

// FlowCompletion returns how many sessions that saw the start event went
// on to see the end event within the window
func (a *Analytics) FlowCompletion(startEvent string, endEvent string, window time.Duration, from time.Time, to time.Time) ([]Row, error) {
	if startEvent == "" || endEvent == "" {
		return nil, errors.New("Invalid flow configuration; start and end events are required")
	}

	sql := fmt.Sprintf(`
		SELECT
			countIf(completed = 2) AS completed_sessions,
			count() AS started_sessions,
			if(count() > 0, countIf(completed = 2) / count(), 0) AS completion_rate
		FROM (
			SELECT
				session_id,
				windowFunnel({window})(created_at, event_name = {start}, event_name = {end}) AS completed
			FROM %s
			WHERE created_at >= {from} AND created_at <= {to} AND session_id != ''
			GROUP BY session_id
			HAVING completed >= 1
		)`, a.eventsTable)

	params := timeRangeParams(from, to)
	params["start"] = startEvent
	params["end"] = endEvent
	params["window"] = int64(window.Seconds())

	result, err := a.client.Query(sql, params)
	if err != nil {
		return nil, err
	}
	return result.Rows, nil
}
