package adnet

import (
	"context"
	"log/slog"

	"golang.org/x/time/rate"
)

// RateLimiter paces fill requests to one ad provider.
type RateLimiter struct {
	name    string
	limiter *rate.Limiter
}

// NewRateLimiter allows rps requests per second with burst 1, so requests
// spread evenly across the second instead of arriving in clumps.
func NewRateLimiter(name string, rps int) *RateLimiter {
	slog.Debug("rate limiter created", "provider", name, "rps", rps)
	return &RateLimiter{
		name:    name,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Wait blocks until the next request is allowed or ctx is cancelled.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	err := rl.limiter.Wait(ctx)
	if err != nil {
		slog.Warn("rate limiter wait cancelled", "provider", rl.name, "error", err)
	}
	return err
}

// Name returns the provider this limiter belongs to.
func (rl *RateLimiter) Name() string {
	return rl.name
}
