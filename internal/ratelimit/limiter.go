package ratelimit

import (
	"context"

	"go.uber.org/zap"
)

// Limiter guards the public checkout endpoint. Without Redis it allows
// everything; a Redis error also allows, on the theory that a degraded
// limiter should not take checkout down with it.
type Limiter struct {
	log    *zap.Logger
	bucket *TokenBucket
	rate   float64
	burst  int
}

func NewLimiter(log *zap.Logger, bucket *TokenBucket, rate float64, burst int) *Limiter {
	return &Limiter{
		log:    log.Named("ratelimit"),
		bucket: bucket,
		rate:   rate,
		burst:  burst,
	}
}

func (l *Limiter) Allow(ctx context.Context, key string) bool {
	if l == nil || l.bucket == nil {
		return true
	}
	result, err := l.bucket.Allow(ctx, "ratelimit:checkout:"+key, l.rate, l.burst)
	if err != nil {
		l.log.Warn("rate limit check failed", zap.String("key", key), zap.Error(err))
		return true
	}
	return result.Allowed
}
