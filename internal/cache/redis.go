package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"healthrecord/internal/models"
)

type RedisClient struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(ctx context.Context, redisURL string, ttl time.Duration) (*RedisClient, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisClientFrom(client, ttl), nil
}

func NewRedisClientFrom(client *redis.Client, ttl time.Duration) *RedisClient {
	return &RedisClient{client: client, ttl: ttl}
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}

func reportsKey(userID uint) string {
	return fmt.Sprintf("reports:user:%d", userID)
}

func versionKey(userID uint) string {
	return fmt.Sprintf("reports:user:%d:version", userID)
}

// GetReports returns the cached report list of a user. found is false on a miss.
func (r *RedisClient) GetReports(ctx context.Context, userID uint) ([]models.Report, bool, error) {
	data, err := r.client.Get(ctx, reportsKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get reports from Redis: %w", err)
	}

	var reports []models.Report
	if err := json.Unmarshal(data, &reports); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal reports: %w", err)
	}
	return reports, true, nil
}

// Version returns the user's list generation. It must be read before the
// database so SetReports can tell whether an invalidation happened since.
func (r *RedisClient) Version(ctx context.Context, userID uint) (int64, error) {
	v, err := r.client.Get(ctx, versionKey(userID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get report version from Redis: %w", err)
	}
	return v, nil
}

// SetReports caches reports only while the user's generation still equals
// version. stored is false when an invalidation got there first.
func (r *RedisClient) SetReports(ctx context.Context, userID uint, version int64, reports []models.Report) (bool, error) {
	data, err := json.Marshal(reports)
	if err != nil {
		return false, fmt.Errorf("failed to marshal reports: %w", err)
	}

	vKey := versionKey(userID)
	stored := false
	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, vKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, reportsKey(userID), data, r.ttl)
			return nil
		})
		if err == nil {
			stored = true
		}
		return err
	}, vKey)

	switch {
	case errors.Is(err, redis.TxFailedErr):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("failed to store reports in Redis: %w", err)
	}
	return stored, nil
}

// Invalidate drops the cached list and bumps the generation, so fills that
// read the database before this call are discarded.
func (r *RedisClient) Invalidate(ctx context.Context, userID uint) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, versionKey(userID))
		pipe.Del(ctx, reportsKey(userID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to invalidate reports in Redis: %w", err)
	}
	return nil
}

// GetStatus reports pool statistics for the health endpoint.
func (r *RedisClient) GetStatus(ctx context.Context) (map[string]interface{}, error) {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	stats := r.client.PoolStats()

	return map[string]interface{}{
		"connected":    true,
		"hits":         stats.Hits,
		"misses":       stats.Misses,
		"active_conns": stats.TotalConns,
	}, nil
}
