// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Evlytic Ltd. All rights reserved.

package testutil

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/evlytic/clickbridge/pkg/models"
)

const charset = "abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var (
	seededRand *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// GenRandomString can produce a random string of any provided length which is
// useful for testing situations that might have byte limitations
func GenRandomString(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[seededRand.Intn(len(charset))]
	}
	return string(b)
}

// GetTestEvents will return an array of events ready to be used for testing
// the tracker pipeline
func GetTestEvents(count int, name string) []*models.Event {
	var events []*models.Event
	for i := 0; i < count; i++ {
		events = append(events, models.NewEvent(
			name,
			fmt.Sprintf("user-%d", i),
			fmt.Sprintf("session-%d", i),
			"",
			map[string]interface{}{"index": i},
			nil,
		))
	}
	return events
}
