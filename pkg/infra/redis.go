package infra

import (
	"context"

	"waitline/waitline-queue-server/pkg/config"

	"github.com/go-redis/redis/v8"
)

// ProvideRedisClient builds the client used by the event publisher.
// Returns nil when no redis address is configured; the publisher
// treats a nil client as "publishing disabled".
func ProvideRedisClient(cfg *config.Config, loggerFactory *LoggerFactory) *redis.Client {
	if *cfg.RedisAddr == "" {
		return nil
	}

	logger := loggerFactory.Create("RedisClient").Sugar()
	return redis.NewClient(&redis.Options{
		Addr: *cfg.RedisAddr,
		DB:   *cfg.RedisDb,
		OnConnect: func(ctx context.Context, cn *redis.Conn) error {
			logger.Infof("redis connected to addr[%v] db[%v]", *cfg.RedisAddr, *cfg.RedisDb)
			return nil
		},
	})
}
