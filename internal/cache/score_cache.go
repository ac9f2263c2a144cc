package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ScoreCache holds computed average scores keyed by movie ID.
// Lookups never fail: a cache problem is reported as a miss.
type ScoreCache interface {
	Get(ctx context.Context, movieID int64) (float64, bool)
	Set(ctx context.Context, movieID int64, avg float64)
	Invalidate(ctx context.Context, movieID int64)
}

// NoopScoreCache is used when Redis is not configured.
type NoopScoreCache struct{}

func (NoopScoreCache) Get(context.Context, int64) (float64, bool) { return 0, false }
func (NoopScoreCache) Set(context.Context, int64, float64)       {}
func (NoopScoreCache) Invalidate(context.Context, int64)         {}

type RedisScoreCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisScoreCache connects to redisURL and verifies the connection.
func NewRedisScoreCache(redisURL, password string, ttl time.Duration, logger *slog.Logger) (*RedisScoreCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisScoreCacheFromClient(client, ttl, logger), nil
}

func NewRedisScoreCacheFromClient(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisScoreCache {
	return &RedisScoreCache{client: client, ttl: ttl, logger: logger}
}

func key(movieID int64) string {
	return fmt.Sprintf("movie:avg_score:%d", movieID)
}

func (c *RedisScoreCache) Get(ctx context.Context, movieID int64) (float64, bool) {
	raw, err := c.client.Get(ctx, key(movieID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("score cache read failed", "movie_id", movieID, "error", err)
		}
		return 0, false
	}
	avg, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	c.logger.Debug("score cache hit", "movie_id", movieID)
	return avg, true
}

func (c *RedisScoreCache) Set(ctx context.Context, movieID int64, avg float64) {
	val := strconv.FormatFloat(avg, 'f', 2, 64)
	if err := c.client.Set(ctx, key(movieID), val, c.ttl).Err(); err != nil {
		c.logger.Warn("score cache write failed", "movie_id", movieID, "error", err)
	}
}

func (c *RedisScoreCache) Invalidate(ctx context.Context, movieID int64) {
	if err := c.client.Del(ctx, key(movieID)).Err(); err != nil {
		c.logger.Warn("score cache invalidate failed", "movie_id", movieID, "error", err)
	}
}

func (c *RedisScoreCache) Close() error {
	return c.client.Close()
}
