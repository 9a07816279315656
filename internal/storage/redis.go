package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/scamshield/scamshield/pkg/progress"
)

// RedisProgressStore implements ProgressStore using Redis. Records have no
// TTL: progress outlives sessions until an explicit reset.
type RedisProgressStore struct {
	client *redis.Client
	logger *slog.Logger
}

// Ensure RedisProgressStore implements ProgressStore interface
var _ ProgressStore = (*RedisProgressStore)(nil)

// NewRedisProgressStore creates a new Redis-backed progress store.
func NewRedisProgressStore(redisURL string, logger *slog.Logger) *RedisProgressStore {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisURL,
	})

	return &RedisProgressStore{
		client: rdb,
		logger: logger,
	}
}

func progressKey(deviceID string) string {
	return "progress:" + deviceID
}

func (r *RedisProgressStore) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisProgressStore) LoadProgress(ctx context.Context, deviceID string) (*progress.Record, error) {
	cmd := r.client.Get(ctx, progressKey(deviceID))
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // no record for this device yet
		}
		r.logger.Error("Failed to load progress", "device_id", deviceID, "error", err)
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}

	var rec progress.Record
	if err := json.Unmarshal([]byte(cmd.Val()), &rec); err != nil {
		// Malformed persisted data is treated as absent, not fatal.
		r.logger.Warn("Discarding malformed progress record", "device_id", deviceID, "error", err)
		return nil, nil
	}
	rec.Normalize()
	return &rec, nil
}

func (r *RedisProgressStore) SaveProgress(ctx context.Context, deviceID string, rec *progress.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %w", err)
	}

	if err := r.client.Set(ctx, progressKey(deviceID), string(data), 0).Err(); err != nil {
		r.logger.Error("Failed to save progress", "device_id", deviceID, "error", err)
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

func (r *RedisProgressStore) DeleteProgress(ctx context.Context, deviceID string) error {
	if err := r.client.Del(ctx, progressKey(deviceID)).Err(); err != nil {
		r.logger.Error("Failed to delete progress", "device_id", deviceID, "error", err)
		return fmt.Errorf("failed to delete progress: %w", err)
	}
	return nil
}

func (r *RedisProgressStore) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisProgressStore) WaitForConnection(ctx context.Context) error {
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
