package config

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const redisMasterName = "mymaster"

// UseRedis reports whether sessions should live in Redis instead of Postgres.
func (c *Config) UseRedis() bool {
	return c.RedisAddr != "" || len(c.RedisSentinelAddrs) > 0
}

// NewRedisClient builds a sentinel-backed client when sentinel addresses are
// configured, and a single-node client otherwise.
func NewRedisClient(cfg *Config) redis.UniversalClient {
	if len(cfg.RedisSentinelAddrs) > 0 {
		return redis.NewFailoverClient(&redis.FailoverOptions{
			MasterName:    redisMasterName,
			SentinelAddrs: cfg.RedisSentinelAddrs,
		})
	}
	return redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
}

// ConnectRedis pings the client with exponential backoff, capped at 30s.
func ConnectRedis(ctx context.Context, client redis.UniversalClient, log logrus.FieldLogger) error {
	const maxRetries = 10

	var err error
	for i := 0; i < maxRetries; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err = client.Ping(pingCtx).Err()
		cancel()
		if err == nil {
			log.Info("connected to redis")
			return nil
		}

		backoff := time.Duration(1<<i) * time.Second
		if backoff > 30*time.Second {
			backoff = 30 * time.Second
		}
		log.WithError(err).Warnf("redis not ready, retry in %v (%d/%d)", backoff, i+1, maxRetries)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return fmt.Errorf("unable to connect to redis after %d attempts: %w", maxRetries, err)
}
