package fetcher

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer blocks until the next outbound call may start.
type Pacer interface {
	Wait(ctx context.Context) error
}

// NewPacer spaces consecutive calls at least delay apart. The first call is
// not delayed. A non-positive delay disables pacing.
func NewPacer(delay time.Duration) *rate.Limiter {
	if delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(delay), 1)
}
