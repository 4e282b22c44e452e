package cache

import (
	"activity-map-service/internal/domain"
	"activity-map-service/internal/platform/obs"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisActivityCache keeps each athlete's fetched activities for the length of a session.
type RedisActivityCache struct {
	Rdb       *redis.Client
	TTL       time.Duration
	KeyPrefix string
}

func NewRedisActivityCache(rdb *redis.Client, ttl time.Duration) *RedisActivityCache {
	return &RedisActivityCache{
		Rdb:       rdb,
		TTL:       ttl,
		KeyPrefix: "activities",
	}
}

func (c *RedisActivityCache) key(athleteID int64) string {
	return c.KeyPrefix + ":" + strconv.FormatInt(athleteID, 10)
}

// Fetch cached activities for an athlete.
func (c *RedisActivityCache) Get(ctx context.Context, athleteID int64) (_ []domain.Activity, _ bool, err error) {
	defer obs.Time(ctx, "activity.cache.Get")(&err)

	if c.Rdb == nil {
		return nil, false, errors.New("activity cache: redis client is nil")
	}

	raw, err := c.Rdb.Get(ctx, c.key(athleteID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get activity cache athlete=%d: %w", athleteID, err)
	}

	var activities []domain.Activity
	if err := json.Unmarshal(raw, &activities); err != nil {
		return nil, false, fmt.Errorf("get activity cache athlete=%d: decode: %w", athleteID, err)
	}

	return activities, true, nil
}

// Store an athlete's activities, replacing any previous entry.
func (c *RedisActivityCache) Put(ctx context.Context, athleteID int64, activities []domain.Activity) (err error) {
	defer obs.Time(ctx, "activity.cache.Put")(&err)

	if c.Rdb == nil {
		return errors.New("activity cache: redis client is nil")
	}
	if activities == nil {
		activities = []domain.Activity{}
	}

	data, err := json.Marshal(activities)
	if err != nil {
		return fmt.Errorf("put activity cache athlete=%d: encode: %w", athleteID, err)
	}

	if err := c.Rdb.Set(ctx, c.key(athleteID), data, c.TTL).Err(); err != nil {
		return fmt.Errorf("put activity cache athlete=%d: %w", athleteID, err)
	}
	return nil
}

// Drop an athlete's cached activities.
func (c *RedisActivityCache) Invalidate(ctx context.Context, athleteID int64) error {
	if c.Rdb == nil {
		return errors.New("activity cache: redis client is nil")
	}

	if err := c.Rdb.Del(ctx, c.key(athleteID)).Err(); err != nil {
		return fmt.Errorf("invalidate activity cache athlete=%d: %w", athleteID, err)
	}
	return nil
}
