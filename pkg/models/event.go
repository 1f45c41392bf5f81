// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Evlytic Ltd. All rights reserved.

package models

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Event holds the structure of a single tracked action awaiting delivery
// to the analytical store.  An Event is never mutated after creation.
type Event struct {
	ID          string                 `json:"event_id"`
	Name        string                 `json:"event_name"`
	UserID      string                 `json:"user_id,omitempty"`
	SessionID   string                 `json:"session_id,omitempty"`
	AnonymousID string                 `json:"anonymous_id,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	Properties  map[string]interface{} `json:"properties,omitempty"`
	Context     map[string]interface{} `json:"context,omitempty"`

	// TimeBuffered is when the event entered the pending buffer
	TimeBuffered time.Time `json:"-"`
}

// NewEvent builds an event with a generated identifier and a UTC
// creation timestamp
func NewEvent(name string, userID string, sessionID string, anonymousID string, properties map[string]interface{}, context map[string]interface{}) *Event {
	return &Event{
		ID:          uuid.NewString(),
		Name:        name,
		UserID:      userID,
		SessionID:   sessionID,
		AnonymousID: anonymousID,
		CreatedAt:   time.Now().UTC(),
		Properties:  properties,
		Context:     context,
	}
}

// ToRow serializes the event into the flat row shape expected by the
// events table
func (e *Event) ToRow() map[string]interface{} {
	propertiesJSON, _ := json.Marshal(e.Properties)
	contextJSON, _ := json.Marshal(e.Context)

	return map[string]interface{}{
		"event_id":     e.ID,
		"event_name":   e.Name,
		"user_id":      e.UserID,
		"session_id":   e.SessionID,
		"anonymous_id": e.AnonymousID,
		"created_at":   e.CreatedAt.Format("2006-01-02 15:04:05"),
		"properties":   string(propertiesJSON),
		"context":      string(contextJSON),
	}
}

func (e *Event) String() string {
	return fmt.Sprintf(
		"ID:%s,Name:%s,UserID:%s,SessionID:%s,CreatedAt:%v",
		e.ID,
		e.Name,
		e.UserID,
		e.SessionID,
		e.CreatedAt,
	)
}

// GetChunkedEvents returns an array of chunked event arrays from the
// original slice by taking into account how many events can be in a chunk
func GetChunkedEvents(events []*Event, chunkSize int) [][]*Event {
	var divided [][]*Event
	for chunkSize < len(events) {
		events, divided = events[chunkSize:], append(divided, events[0:chunkSize:chunkSize])
	}
	divided = append(divided, events)
	return divided
}
