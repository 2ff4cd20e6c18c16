package session

import (
	"context" // Context for Redis operations
	"errors"  // Error matching
	"strconv" // User id encoding
	"time"    // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

const keyPrefix = "session:" // Redis key prefix for session records

// RedisStore keeps session records in Redis with a TTL
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore wraps a connected Redis client
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

// Save records that sessionID belongs to userID until ttl passes
func (s *RedisStore) Save(ctx context.Context, sessionID string, userID uint, ttl time.Duration) error {
	return s.rdb.Set(ctx, keyPrefix+sessionID, strconv.FormatUint(uint64(userID), 10), ttl).Err()
}

// Load returns the owner of sessionID; ok is false when the session is gone
func (s *RedisStore) Load(ctx context.Context, sessionID string) (uint, bool, error) {
	val, err := s.rdb.Get(ctx, keyPrefix+sessionID).Result() // Get value from Redis
	if errors.Is(err, redis.Nil) {
		return 0, false, nil // Key does not exist
	} else if err != nil {
		return 0, false, err // Other Redis error
	}
	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return uint(id), true, nil
}

// Delete removes the session record; deleting a missing session is not an error
func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, keyPrefix+sessionID).Err() // Delete key from Redis
}
