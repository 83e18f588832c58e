package task

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/time/rate"
)

// ErrInvalidRate is returned when a limiter is configured with a
// non-positive call rate.
var ErrInvalidRate = errors.New("calls per second must be positive")

// Limiter enforces a global minimum interval between call starts across
// all goroutines sharing it. At a rate of R calls per second, two
// consecutive acquisitions are spaced at least 1/R seconds apart.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter creates a Limiter allowing callsPerSecond call starts per
// second. A burst of one keeps call starts evenly spaced instead of
// letting the first few proceed back to back.
func NewLimiter(callsPerSecond float64) (*Limiter, error) {
	if callsPerSecond <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidRate, callsPerSecond)
	}

	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(callsPerSecond), 1),
	}, nil
}

// Acquire blocks until the next call may start or ctx is done. Reservation
// bookkeeping is a short critical section inside the wrapped limiter;
// waiters sleep outside it, so concurrent acquirers queue without
// serializing their waits.
func (l *Limiter) Acquire(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
