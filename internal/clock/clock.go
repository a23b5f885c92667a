// Package clock provides the time sources settlement components inject.
package clock

import (
	"context"
	"time"
)

// Now returns the current instant in UTC. Window and audit timestamps are always UTC.
func Now() time.Time {
	return time.Now().UTC()
}

// SleepWithContext waits for d or returns ctx.Err() once ctx ends.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
