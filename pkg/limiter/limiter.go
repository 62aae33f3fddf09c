package limiter

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

type DynamicRateLimiter struct {
	limiter  *rate.Limiter
	updates  chan rateParams
	interval time.Duration
	burst    int
}

type rateParams struct {
	interval time.Duration
	burst    int
	applied  chan struct{}
}

// NewDynamicRateLimiter allows one event per interval with the given burst.
// A zero interval means no limit.
func NewDynamicRateLimiter(interval time.Duration, burst int) *DynamicRateLimiter {
	limiter := rate.NewLimiter(every(interval), burst)
	updates := make(chan rateParams)
	go func() {
		for params := range updates {
			limiter.SetLimit(every(params.interval))
			limiter.SetBurst(params.burst)
			close(params.applied)
		}
	}()
	return &DynamicRateLimiter{
		limiter:  limiter,
		interval: interval,
		burst:    burst,
		updates:  updates,
	}
}

func (drl *DynamicRateLimiter) Wait(ctx context.Context) error {
	return drl.limiter.Wait(ctx)
}

func (drl *DynamicRateLimiter) Allow() bool {
	return drl.limiter.Allow()
}

// Update changes the limit. It blocks until the new limit is applied
// by the background goroutine.
func (drl *DynamicRateLimiter) Update(interval time.Duration, burst int) {
	applied := make(chan struct{})
	drl.updates <- rateParams{interval: interval, burst: burst, applied: applied}
	<-applied
}

// Stop releases the background goroutine. Update must not be called after Stop.
func (drl *DynamicRateLimiter) Stop() {
	close(drl.updates)
}

func every(interval time.Duration) rate.Limit {
	if interval <= 0 {
		return rate.Inf
	}
	return rate.Every(interval)
}
