package app

import (
	"github.com/prometheus/client_golang/prometheus"

	"foodmarket-delivery/internal/config"
	"foodmarket-delivery/internal/http/middleware/ratelimit"
	"foodmarket-delivery/internal/logx"
	"foodmarket-delivery/internal/metrics"
)

func newRateLimiter(cfg *config.Config, clock ratelimit.Clock) ratelimit.Limiter {
	rl := cfg.RateLimit
	if !rl.Enabled {
		return ratelimit.NopLimiter{}
	}
	return ratelimit.NewTokenBucketLimiter(clock, ratelimit.Config{
		Rate:       rl.Rate,
		Burst:      rl.Burst,
		TTL:        rl.TTL,
		MaxBuckets: rl.MaxBuckets,
	})
}

func newRateLimitClock() ratelimit.Clock {
	return ratelimit.RealClock{}
}

func newRateLimitCounter() prometheus.Counter {
	return mustCounter(metrics.NewRateLimitExceededTotal())
}

func newRateLimitMiddleware(logger logx.Logger, counter prometheus.Counter, limiter ratelimit.Limiter) *ratelimit.Middleware {
	return ratelimit.New(logger, counter, limiter)
}
