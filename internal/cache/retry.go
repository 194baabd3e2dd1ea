// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package cache

import (
	"context"
	"errors"
	"time"

	"github.com/apex/log"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/staranto/todoctl/internal/item"
)

// Retry controls how a failed remote call is repeated. Attempts counts the
// retries after the first call, so Attempts: 3 makes at most four calls.
type Retry struct {
	Attempts int
	Min      time.Duration
	Max      time.Duration
}

// DefaultRetry doubles from one second up to thirty.
var DefaultRetry = Retry{
	Attempts: 3,
	Min:      1 * time.Second,
	Max:      30 * time.Second,
}

// NoRetry makes a single call.
var NoRetry = Retry{}

// Do calls fn until it succeeds, fails with an error that is not worth
// repeating, or the retries run out. The last error is returned.
func (r Retry) Do(ctx context.Context, op string, fn func(context.Context) error) error {
	for attempt := 0; ; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if !retryable(err) || attempt >= r.Attempts {
			return err
		}

		wait := retryablehttp.DefaultBackoff(r.Min, r.Max, attempt, nil)
		log.WithError(err).Debugf("%s failed, retry %d/%d in %s", op, attempt+1, r.Attempts, wait)

		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return err
		case <-t.C:
		}
	}
}

func retryable(err error) bool {
	switch {
	case errors.Is(err, item.ErrValidation):
		return false
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	}
	return true
}
