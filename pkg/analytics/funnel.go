// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Evlytic Ltd. All rights reserved.

package analytics

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// FunnelStep holds the interpreted result for one step of a funnel
type FunnelStep struct {
	Name           string
	Users          int64
	ConversionRate float64
	DropoffRate    float64
}

// FunnelReport is the interpreted result of a funnel query.  Users per
// step is monotonically non-increasing and all rates lie in [0,1].
type FunnelReport struct {
	Steps                 []FunnelStep
	TotalEntrants         int64
	OverallConversionRate float64
}

// Funnel computes, per user, the highest contiguous step reached within
// the given window between consecutive qualifying events, and interprets
// the per-level user counts into cumulative step counts and rates.  The
// inter-step window semantics are the store engine's; the window is an
// opaque parameter passed through.
func (a *Analytics) Funnel(steps []string, window time.Duration, from time.Time, to time.Time) (*FunnelReport, error) {
	if len(steps) == 0 {
		return nil, errors.New("Invalid funnel configuration; at least one step is required")
	}

	conditions := make([]string, len(steps))
	params := timeRangeParams(from, to)
	for i, step := range steps {
		name := fmt.Sprintf("step%d", i)
		conditions[i] = fmt.Sprintf("event_name = {%s}", name)
		params[name] = step
	}
	params["steps"] = steps
	params["window"] = int64(window.Seconds())

	sql := fmt.Sprintf(`
		SELECT level, count() AS users
		FROM (
			SELECT user_id, windowFunnel({window})(created_at, %s) AS level
			FROM %s
			WHERE created_at >= {from} AND created_at <= {to}
			  AND user_id != ''
			  AND event_name IN {steps}
			GROUP BY user_id
		)
		GROUP BY level
		ORDER BY level`, strings.Join(conditions, ", "), a.eventsTable)

	result, err := a.client.Query(sql, params)
	if err != nil {
		return nil, err
	}

	levelCounts := make(map[int]int64, len(result.Rows))
	for _, row := range result.Rows {
		levelCounts[int(toInt64(row["level"]))] = toInt64(row["users"])
	}

	return interpretFunnel(steps, levelCounts), nil
}

// interpretFunnel converts per-level maximum-step user counts into
// cumulative per-step counts and conversion/drop-off rates.  Level 0 means
// no steps reached; level N means the user's furthest step was N.
func interpretFunnel(steps []string, levelCounts map[int]int64) *FunnelReport {
	report := &FunnelReport{
		Steps: make([]FunnelStep, len(steps)),
	}

	// usersAtStep(i) = sum of per-level counts for all levels >= i
	usersAtStep := make([]int64, len(steps)+1)
	for i := len(steps); i >= 1; i-- {
		usersAtStep[i] = levelCounts[i]
		if i < len(steps) {
			usersAtStep[i] += usersAtStep[i+1]
		}
	}

	entrants := usersAtStep[1]
	report.TotalEntrants = entrants

	for i := 1; i <= len(steps); i++ {
		step := FunnelStep{
			Name:  steps[i-1],
			Users: usersAtStep[i],
		}
		if entrants > 0 {
			step.ConversionRate = float64(usersAtStep[i]) / float64(entrants)
		}
		if i > 1 && usersAtStep[i-1] > 0 {
			step.DropoffRate = 1 - float64(usersAtStep[i])/float64(usersAtStep[i-1])
		}
		report.Steps[i-1] = step
	}

	if entrants > 0 {
		report.OverallConversionRate = float64(usersAtStep[len(steps)]) / float64(entrants)
	}
	return report
}
