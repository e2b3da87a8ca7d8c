package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sbilibin2017/student-housing/internal/logger"
)

// RateLimitRepository counts events per key in fixed windows stored in Redis.
type RateLimitRepository struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
}

// NewRateLimitRepository allows limit events per key within each window.
func NewRateLimitRepository(client *redis.Client, prefix string, limit int, window time.Duration) *RateLimitRepository {
	return &RateLimitRepository{
		client: client,
		prefix: prefix,
		limit:  limit,
		window: window,
	}
}

// Allow records one event for key and reports whether it is within the limit.
func (r *RateLimitRepository) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := fmt.Sprintf("%s:%s", r.prefix, key)

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, r.window)
	_, err := pipe.Exec(ctx)

	count := incr.Val()
	logger.Log.Infow("rate limit",
		"key", redisKey,
		"count", count,
		"limit", r.limit,
		"error", err,
	)
	if err != nil {
		return false, err
	}

	return count <= int64(r.limit), nil
}
