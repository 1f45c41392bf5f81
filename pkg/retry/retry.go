// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2025-2026 Evlytic Ltd. All rights reserved.

package retry

import (
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// RetryLinear retries the execution of a function with a linearly
// increasing delay between attempts (delay * attemptNumber).  The
// function is always executed at least once, whatever the attempt count.
func RetryLinear(attempts int, delay time.Duration, prefix string, f func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = f()
		if err == nil {
			return nil
		}
		logrus.Warnf("Retrying func (attempt %d of %d): %s: %s", attempt, attempts, prefix, err)

		if attempt < attempts {
			time.Sleep(delay * time.Duration(attempt))
		}
	}
	return errors.Wrap(err, prefix)
}
