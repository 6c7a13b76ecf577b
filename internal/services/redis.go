package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jwebster45206/gift-hunt/pkg/hunt"
	"github.com/redis/go-redis/v9"
)

const huntKeyPrefix = "hunt:"

// RedisStore implements HuntStore on Redis. Snapshots are stored as JSON
// without expiry.
type RedisStore struct {
	client *redis.Client
	logger *slog.Logger
}

var _ HuntStore = (*RedisStore)(nil)

// NewRedisStore parses a redis:// URL. It does not dial; use Ping or
// WaitForConnection for that.
func NewRedisStore(redisURL string, logger *slog.Logger) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	return &RedisStore{
		client: redis.NewClient(opt),
		logger: logger,
	}, nil
}

func (r *RedisStore) Ping(ctx context.Context) error {
	cmd := r.client.Ping(ctx)
	if err := cmd.Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}

	r.logger.Debug("Redis ping successful", "result", cmd.Val())
	return nil
}

func (r *RedisStore) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}

	r.logger.Info("Redis connection closed")
	return nil
}

func (r *RedisStore) SaveHunt(ctx context.Context, key string, state *hunt.State) error {
	if state == nil {
		return errors.New("hunt state cannot be nil")
	}
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal hunt state: %w", err)
	}
	if err := r.client.Set(ctx, huntKeyPrefix+key, data, 0).Err(); err != nil {
		r.logger.Error("Redis SET failed", "key", key, "error", err)
		return fmt.Errorf("failed to save hunt: %w", err)
	}

	r.logger.Debug("Hunt snapshot saved", "key", key, "bytes", len(data))
	return nil
}

func (r *RedisStore) LoadHunt(ctx context.Context, key string) (*hunt.State, error) {
	data, err := r.client.Get(ctx, huntKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.logger.Debug("Hunt snapshot not found", "key", key)
			return nil, nil
		}
		r.logger.Error("Redis GET failed", "key", key, "error", err)
		return nil, fmt.Errorf("failed to load hunt: %w", err)
	}

	var state hunt.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal hunt state: %w", err)
	}
	return &state, nil
}

func (r *RedisStore) DeleteHunt(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, huntKeyPrefix+key).Err(); err != nil {
		r.logger.Error("Redis DEL failed", "key", key, "error", err)
		return fmt.Errorf("failed to delete hunt: %w", err)
	}
	return nil
}

func (r *RedisStore) WaitForConnection(ctx context.Context) error {
	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}
