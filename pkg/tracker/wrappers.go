// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Evlytic Ltd. All rights reserved.

package tracker

import (
	"github.com/evlytic/clickbridge/pkg/models"
)

// TrackEvent builds an event from its parts and enqueues it
func (t *Tracker) TrackEvent(name string, userID string, sessionID string, anonymousID string, properties map[string]interface{}, context map[string]interface{}) {
	t.Track(models.NewEvent(name, userID, sessionID, anonymousID, properties, context))
}

// TrackPageView tracks a page view for the given path
func (t *Tracker) TrackPageView(userID string, sessionID string, path string, context map[string]interface{}) {
	t.TrackEvent("page_viewed", userID, sessionID, "", map[string]interface{}{
		"path": path,
	}, context)
}

// TrackScreenView tracks a native screen view
func (t *Tracker) TrackScreenView(userID string, sessionID string, screenName string, context map[string]interface{}) {
	t.TrackEvent("screen_viewed", userID, sessionID, "", map[string]interface{}{
		"screen_name": screenName,
	}, context)
}

// TrackIdentify ties an anonymous visitor to a known user, carrying any
// traits as event properties
func (t *Tracker) TrackIdentify(userID string, anonymousID string, traits map[string]interface{}) {
	t.TrackEvent("identify", userID, "", anonymousID, traits, nil)
}

// TrackAppOpened tracks an application open
func (t *Tracker) TrackAppOpened(userID string, sessionID string, context map[string]interface{}) {
	t.TrackEvent("app_opened", userID, sessionID, "", nil, context)
}

// TrackOrderCompleted tracks a completed order with its revenue
func (t *Tracker) TrackOrderCompleted(userID string, sessionID string, orderID string, revenue float64, properties map[string]interface{}) {
	if properties == nil {
		properties = map[string]interface{}{}
	}
	properties["order_id"] = orderID
	properties["revenue"] = revenue
	t.TrackEvent("order_completed", userID, sessionID, "", properties, nil)
}
