package transport

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter throttles outgoing requests to the backend
type RateLimiter struct {
	limiter   *rate.Limiter
	rateLimit float64
	burstSize int
}

// NewRateLimiter creates a limiter allowing requestsPerMinute with the given burst.
// Returns nil when requestsPerMinute is not positive.
func NewRateLimiter(requestsPerMinute int, burstSize int) *RateLimiter {
	if requestsPerMinute <= 0 {
		return nil
	}
	if burstSize < 1 {
		burstSize = 1
	}
	perSecond := float64(requestsPerMinute) / 60.0 // Convert to per-second
	return &RateLimiter{
		limiter:   rate.NewLimiter(rate.Limit(perSecond), burstSize),
		rateLimit: perSecond,
		burstSize: burstSize,
	}
}

// Wait blocks until a request may be sent or ctx is done.
// A nil limiter never blocks.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if r == nil {
		return nil
	}
	return r.limiter.Wait(ctx)
}

// GetState returns the approximate remaining burst and when it refills
func (r *RateLimiter) GetState() (remaining int, resetTime time.Time) {
	if r == nil {
		return 0, time.Now()
	}

	tokens := int(r.limiter.Tokens())
	if tokens < 0 {
		tokens = 0
	}

	resetDuration := time.Duration(float64(r.burstSize-tokens)/r.rateLimit) * time.Second
	return tokens, time.Now().Add(resetDuration)
}
