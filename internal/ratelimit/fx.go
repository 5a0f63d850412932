package ratelimit

import (
	"github.com/Blits-planeet/driftv8.xyz/internal/config"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("ratelimit",
	fx.Provide(provideLimiter),
)

func provideLimiter(cfg config.Config, log *zap.Logger) *Limiter {
	if cfg.RedisAddr == "" {
		log.Named("ratelimit").Info("redis not configured, rate limiting disabled")
		return NewLimiter(log, nil, 1, 1)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	// 1 checkout/sec sustained with a burst of 5 per client
	return NewLimiter(log, NewTokenBucket(client), 1, 5)
}
