// Package waitfor holds the bounded-wait helpers shared by the remote
// session polling loops and the local process runner. Every wait in this
// codebase is a flag-checked poll with an overall deadline rather than an
// unbounded blocking read, so shutdown and timeout checks stay timely.
package waitfor

import (
	"context"
	"time"
)

// DefaultInterval is the poll slice used when a caller passes 0.
const DefaultInterval = 50 * time.Millisecond

// Deadline tracks an overall time budget. The zero value (or a zero
// timeout) means no deadline.
type Deadline struct {
	at time.Time
}

// After returns a Deadline that expires timeout from now. A non-positive
// timeout yields an unlimited Deadline.
func After(timeout time.Duration) Deadline {
	if timeout <= 0 {
		return Deadline{}
	}
	return Deadline{at: time.Now().Add(timeout)}
}

// Expired reports whether the deadline has passed.
func (d Deadline) Expired() bool {
	return !d.at.IsZero() && time.Now().After(d.at)
}

// Remaining returns the time left, clamped to min when a smaller (or
// unlimited) budget remains. min keeps final drains from degenerating to
// zero-length waits.
func (d Deadline) Remaining(min time.Duration) time.Duration {
	if d.at.IsZero() {
		return min
	}
	r := time.Until(d.at)
	if r < min {
		return min
	}
	return r
}

// Poll invokes fn every interval until fn reports done, max elapses, or
// ctx is cancelled. It returns context.DeadlineExceeded when the budget
// runs out and ctx.Err() on cancellation. fn is always invoked at least
// once. interval and max of 0 mean DefaultInterval and no limit.
func Poll(ctx context.Context, interval, max time.Duration, fn func() bool) error {
	if interval <= 0 {
		interval = DefaultInterval
	}
	dl := After(max)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if fn() {
			return nil
		}
		if dl.Expired() {
			return context.DeadlineExceeded
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Settled drains output repeatedly until no new text arrives for a quiet
// window, accumulating everything seen. It returns the accumulated output
// and context.DeadlineExceeded if max elapsed before the stream went
// quiet; whatever was captured is returned either way. This is the
// client-side retry loop for "send, then poll until output stops".
func Settled(ctx context.Context, drain func() string, interval, quiet, max time.Duration) (string, error) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if quiet <= 0 {
		quiet = 2 * time.Second
	}
	var out string
	lastNew := time.Now()
	err := Poll(ctx, interval, max, func() bool {
		if chunk := drain(); chunk != "" {
			out += chunk
			lastNew = time.Now()
			return false
		}
		return time.Since(lastNew) >= quiet
	})
	return out, err
}
