package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// Cache publishes seat inventory snapshots to Redis and guards reservation
// ids with short-lived locks so the same reservation is not booked twice
// by concurrent requests.
type Cache struct {
	redis RedisClient
}

func NewCache(redis RedisClient) *Cache {
	return &Cache{
		redis: redis,
	}
}

func (c *Cache) GetLockKey(reservationID string) string {
	return fmt.Sprintf("booking:lock:%s", reservationID)
}

func (c *Cache) GetSnapshotKey(flightID string) string {
	return fmt.Sprintf("inventory:segment:%s", flightID)
}

func (c *Cache) AcquireLock(ctx context.Context, key string, timeout time.Duration) (bool, error) {
	return c.redis.SetNX(ctx, key, "1", timeout).Result()
}

func (c *Cache) ReleaseLock(ctx context.Context, key string) error {
	return c.redis.Del(ctx, key).Err()
}

func (c *Cache) SetSnapshot(ctx context.Context, snapshot Snapshot, expiration time.Duration) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	err = c.redis.Set(ctx, c.GetSnapshotKey(snapshot.FlightID), data, expiration).Err()
	if err != nil {
		return fmt.Errorf("failed to set snapshot: %w", err)
	}

	return nil
}

// GetSnapshot returns redis.Nil when no snapshot is cached for flightID.
func (c *Cache) GetSnapshot(ctx context.Context, flightID string) (Snapshot, error) {
	data, err := c.redis.Get(ctx, c.GetSnapshotKey(flightID)).Bytes()
	if err != nil {
		return Snapshot{}, err
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return Snapshot{}, err
	}

	return snapshot, nil
}
