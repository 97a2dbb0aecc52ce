package initializers

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var Redis *redis.Client

// ConnectRedis dials REDIS_URL. Without one, sign-out revocation is disabled.
func ConnectRedis(ctx context.Context) error {
	if Cfg.RedisURL == "" {
		log.Warn().Msg("REDIS_URL not set, session revocation disabled")
		return nil
	}
	opts, err := redis.ParseURL(Cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	Redis = client
	return nil
}
